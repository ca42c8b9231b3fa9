package services

import (
	"context"
	"errors"
	"fmt"

	"minimart/internal/domain"
	applog "minimart/internal/log"
	"minimart/internal/repos"
	"minimart/internal/state"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrNotOwner       = errors.New("order belongs to another user")
	ErrNotCancellable = errors.New("order can no longer be cancelled")
)

// OrderService runs the order lifecycle. Place is strictly sequential:
// durable order write, then notification fan-out, then cart clear. Each
// stage starts only after the previous one resolved, so a cart is never
// cleared for an order that was not durably recorded.
type OrderService struct {
	Orders *repos.OrderRepo
	Cart   *CartService
	Notify *NotifyService
}

func NewOrderService(orders *repos.OrderRepo, cart *CartService, notify *NotifyService) *OrderService {
	return &OrderService{Orders: orders, Cart: cart, Notify: notify}
}

// Totals computes the order total and total quantity from cart lines. The
// total is fixed here, at creation time, and never recomputed afterwards.
func Totals(items []domain.CartItem) (total float64, quantity int) {
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
		quantity += it.Quantity
	}
	return total, quantity
}

// Place creates an order from the current cart. On a failed order write the
// cart is left untouched, local and remote. Notification fan-out is
// best-effort and cannot fail the placement; a failed remote cart clear does
// fail the placement even though the order already exists.
func (s *OrderService) Place(ctx context.Context, st *state.Store, userID string) (string, error) {
	items := st.Cart()
	if len(items) == 0 {
		return "", ErrEmptyCart
	}

	total, quantity := Totals(items)
	order := domain.Order{
		UserID:        userID,
		Items:         items,
		Total:         total,
		TotalQuantity: quantity,
		Status:        domain.StatusPending,
	}
	orderID, err := s.Orders.Create(ctx, order)
	if err != nil {
		return "", fmt.Errorf("create order: %w", err)
	}

	s.Notify.NewOrder(ctx, orderID, userID, items)

	if err := s.Cart.ClearAfterOrder(ctx, st, userID); err != nil {
		applog.Error(nil, "order.cart_clear", err, map[string]any{"order_id": orderID})
		return "", fmt.Errorf("clear cart: %w", err)
	}
	return orderID, nil
}

// Cancel moves an order to cancelled. Only the owner may cancel, and only
// while the order is still pending or in process.
func (s *OrderService) Cancel(ctx context.Context, userID, orderID string) error {
	o, err := s.Orders.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if o.UserID != userID {
		return ErrNotOwner
	}
	if !domain.Cancellable(o.Status) {
		return ErrNotCancellable
	}
	if err := s.Orders.UpdateStatus(ctx, orderID, domain.StatusCancelled); err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	s.Notify.OrderCancelled(ctx, orderID, o.UserID, o.Items)
	return nil
}
