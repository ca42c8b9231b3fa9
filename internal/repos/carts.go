package repos

import (
	"context"

	"minimart/internal/docstore"
	"minimart/internal/domain"
)

// CartRepo stores one cart document per user; the document id is the user id.
type CartRepo struct{ Store docstore.Store }

func NewCartRepo(st docstore.Store) *CartRepo { return &CartRepo{Store: st} }

func (r *CartRepo) Get(ctx context.Context, userID string) (domain.Cart, error) {
	doc, err := r.Store.Get(ctx, ColCarts, userID)
	if err == docstore.ErrNotFound {
		return domain.Cart{UserID: userID, Items: []domain.CartItem{}}, nil
	}
	if err != nil {
		return domain.Cart{}, err
	}
	var c domain.Cart
	if err := doc.Decode(&c); err != nil {
		return domain.Cart{}, err
	}
	if c.Items == nil {
		c.Items = []domain.CartItem{}
	}
	return c, nil
}

// Replace overwrites the remote cart with the given lines. Passing nil writes
// an empty item list, which is how a cart is cleared after checkout.
func (r *CartRepo) Replace(ctx context.Context, userID string, items []domain.CartItem) error {
	if items == nil {
		items = []domain.CartItem{}
	}
	return r.Store.Set(ctx, ColCarts, userID, domain.Cart{UserID: userID, Items: items})
}
