package repos

import (
	"context"

	"minimart/internal/docstore"
	"minimart/internal/domain"
)

type OrderRepo struct{ Store docstore.Store }

func NewOrderRepo(st docstore.Store) *OrderRepo { return &OrderRepo{Store: st} }

func (r *OrderRepo) Create(ctx context.Context, o domain.Order) (string, error) {
	return r.Store.Create(ctx, ColOrders, o)
}

func (r *OrderRepo) Get(ctx context.Context, id string) (domain.Order, error) {
	doc, err := r.Store.Get(ctx, ColOrders, id)
	if err != nil {
		return domain.Order{}, err
	}
	var o domain.Order
	if err := doc.Decode(&o); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	docs, err := r.Store.Query(ctx, ColOrders, docstore.Where{Field: "user_id", Value: userID})
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.Order](docs)
}

func (r *OrderRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	docs, err := r.Store.Query(ctx, ColOrders, docstore.Where{})
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.Order](docs)
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.Store.Update(ctx, ColOrders, id, map[string]any{"status": status})
}
