package repos

import (
	"context"

	"minimart/internal/docstore"
	"minimart/internal/domain"
)

type ProductRepo struct{ Store docstore.Store }

func NewProductRepo(st docstore.Store) *ProductRepo { return &ProductRepo{Store: st} }

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	doc, err := r.Store.Get(ctx, ColProducts, id)
	if err != nil {
		return domain.Product{}, err
	}
	var p domain.Product
	if err := doc.Decode(&p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	docs, err := r.Store.Query(ctx, ColProducts, docstore.Where{})
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.Product](docs)
}
