package services

import (
	"context"

	"minimart/internal/domain"
	"minimart/internal/repos"
	"minimart/internal/state"
)

// CartService keeps the in-memory cart and its remote per-user copy in step.
// Local state changes first; the remote write follows and its failure is
// surfaced to the caller.
type CartService struct {
	Carts    *repos.CartRepo
	Products *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, products *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Products: products}
}

func (s *CartService) Add(ctx context.Context, st *state.Store, userID, productID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	p, err := s.Products.Get(ctx, productID)
	if err != nil {
		return err
	}
	image := ""
	if len(p.Images) > 0 {
		image = p.Images[0]
	}
	st.Dispatch(state.AddItem{Item: domain.CartItem{
		ProductID: p.ID,
		Title:     p.Title,
		Image:     image,
		Price:     p.Price,
		Quantity:  qty,
	}})
	return s.sync(ctx, st, userID)
}

func (s *CartService) SetQuantity(ctx context.Context, st *state.Store, userID, productID string, qty int) error {
	st.Dispatch(state.SetQuantity{ProductID: productID, Quantity: qty})
	return s.sync(ctx, st, userID)
}

func (s *CartService) Remove(ctx context.Context, st *state.Store, userID, productID string) error {
	st.Dispatch(state.RemoveItem{ProductID: productID})
	return s.sync(ctx, st, userID)
}

// Load replaces the local cart with the remote copy. Called on login so a
// returning user picks up the cart they left behind.
func (s *CartService) Load(ctx context.Context, st *state.Store, userID string) error {
	remote, err := s.Carts.Get(ctx, userID)
	if err != nil {
		return err
	}
	st.Dispatch(state.ClearCart{})
	for _, it := range remote.Items {
		st.Dispatch(state.AddItem{Item: it})
	}
	return nil
}

// ClearAfterOrder clears the local cart synchronously, then replaces the
// remote copy with an empty item list. Only called after the order document
// write has succeeded; a remote failure here still propagates.
func (s *CartService) ClearAfterOrder(ctx context.Context, st *state.Store, userID string) error {
	st.Dispatch(state.ClearCart{})
	return s.Carts.Replace(ctx, userID, nil)
}

// sync pushes the local cart to the remote copy. Anonymous sessions keep a
// local-only cart.
func (s *CartService) sync(ctx context.Context, st *state.Store, userID string) error {
	if userID == "" {
		return nil
	}
	return s.Carts.Replace(ctx, userID, st.Cart())
}
