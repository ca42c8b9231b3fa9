// Package views holds the live, derived list views: each one owns a store
// subscription, keeps a sorted snapshot, and serves filtered pages out of it.
package views

import (
	"context"
	"sort"
	"sync"

	"minimart/internal/docstore"
	"minimart/internal/domain"
	"minimart/internal/repos"
	"minimart/internal/services"
)

const OrderPageSize = 9

// Per-row cancel confirmation states.
const (
	RowIdle = iota
	RowConfirming
	RowCancelling
)

func pageCount(total, size int) int {
	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	return pages
}

// OrderHistory is the live view of one customer's orders. The subscription
// callback is the only writer of the order snapshot; everything else reads
// and mutates row state under the same mutex.
type OrderHistory struct {
	svc    *services.OrderService
	userID string
	cancel func()

	mu      sync.Mutex
	orders  []domain.Order // newest first, ties by id ascending
	filter  string         // status filter, "" = all
	page    int
	rows    map[string]int    // order id -> row state
	rowErr  map[string]string // order id -> last cancel error
	lastErr error             // subscription error, if any
}

func NewOrderHistory(st docstore.Store, svc *services.OrderService, userID string) *OrderHistory {
	v := &OrderHistory{
		svc:    svc,
		userID: userID,
		page:   1,
		rows:   map[string]int{},
		rowErr: map[string]string{},
	}
	v.cancel = st.Subscribe(repos.ColOrders,
		docstore.Where{Field: "user_id", Value: userID},
		v.apply, v.fail)
	return v
}

// Close tears the subscription down. The view keeps its last snapshot.
func (v *OrderHistory) Close() { v.cancel() }

func (v *OrderHistory) UserID() string { return v.userID }

func (v *OrderHistory) apply(docs []docstore.Doc) {
	orders := make([]domain.Order, 0, len(docs))
	for _, d := range docs {
		var o domain.Order
		if err := d.Decode(&o); err != nil {
			v.fail(err)
			return
		}
		orders = append(orders, o)
	}
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].CreatedAt != orders[j].CreatedAt {
			return orders[i].CreatedAt > orders[j].CreatedAt
		}
		return orders[i].ID < orders[j].ID
	})

	v.mu.Lock()
	v.orders = orders
	v.lastErr = nil
	v.mu.Unlock()
}

func (v *OrderHistory) fail(err error) {
	v.mu.Lock()
	v.lastErr = err
	v.mu.Unlock()
}

func (v *OrderHistory) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastErr
}

// SetFilter changes the status filter and resets to the first page.
func (v *OrderHistory) SetFilter(status string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.filter != status {
		v.filter = status
		v.page = 1
	}
}

// SetPage stores a page number clamped to the current filtered list, so the
// stored page cannot silently jump forward when the list later grows.
func (v *OrderHistory) SetPage(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if n < 1 {
		n = 1
	}
	if max := pageCount(len(v.filtered()), OrderPageSize); n > max {
		n = max
	}
	v.page = n
}

type OrderRow struct {
	domain.Order
	CanCancel  bool   `json:"can_cancel"`
	Confirming bool   `json:"confirming,omitempty"`
	Cancelling bool   `json:"cancelling,omitempty"`
	CancelErr  string `json:"cancel_error,omitempty"`
}

type OrderPage struct {
	Orders []OrderRow `json:"orders"`
	Page   int        `json:"page"`
	Pages  int        `json:"pages"`
	Total  int        `json:"total"`
	Filter string     `json:"filter,omitempty"`
}

// filtered narrows the snapshot to the active status filter. Caller holds mu.
func (v *OrderHistory) filtered() []domain.Order {
	if v.filter == "" {
		return v.orders
	}
	var out []domain.Order
	for _, o := range v.orders {
		if o.Status == v.filter {
			out = append(out, o)
		}
	}
	return out
}

// Page returns the current page of the filtered list.
func (v *OrderHistory) Page() OrderPage {
	v.mu.Lock()
	defer v.mu.Unlock()

	filtered := v.filtered()
	pages := pageCount(len(filtered), OrderPageSize)
	page := v.page
	if page > pages {
		page = pages
	}
	lo := (page - 1) * OrderPageSize
	hi := lo + OrderPageSize
	if hi > len(filtered) {
		hi = len(filtered)
	}

	rows := make([]OrderRow, 0, hi-lo)
	for _, o := range filtered[lo:hi] {
		st := v.rows[o.ID]
		rows = append(rows, OrderRow{
			Order:      o,
			CanCancel:  domain.Cancellable(o.Status),
			Confirming: st == RowConfirming,
			Cancelling: st == RowCancelling,
			CancelErr:  v.rowErr[o.ID],
		})
	}
	return OrderPage{Orders: rows, Page: page, Pages: pages, Total: len(filtered), Filter: v.filter}
}

// RequestCancel moves a row from idle to confirming. The action is only
// offered while the order status still allows cancellation.
func (v *OrderHistory) RequestCancel(orderID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	o, ok := v.find(orderID)
	if !ok {
		return docstore.ErrNotFound
	}
	if !domain.Cancellable(o.Status) {
		return services.ErrNotCancellable
	}
	if v.rows[orderID] != RowIdle {
		return nil
	}
	v.rows[orderID] = RowConfirming
	delete(v.rowErr, orderID)
	return nil
}

// AbortCancel returns a confirming row to idle.
func (v *OrderHistory) AbortCancel(orderID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.rows[orderID] == RowConfirming {
		v.rows[orderID] = RowIdle
	}
}

// ConfirmCancel runs the cancel workflow for a confirming row. The row ends
// in idle either way; a failure leaves its message attached to the row. The
// lock is released around the workflow call because a successful cancel
// re-enters the view through the subscription.
func (v *OrderHistory) ConfirmCancel(ctx context.Context, orderID string) error {
	v.mu.Lock()
	if v.rows[orderID] != RowConfirming {
		v.mu.Unlock()
		return nil
	}
	v.rows[orderID] = RowCancelling
	v.mu.Unlock()

	err := v.svc.Cancel(ctx, v.userID, orderID)

	v.mu.Lock()
	v.rows[orderID] = RowIdle
	if err != nil {
		v.rowErr[orderID] = err.Error()
	}
	v.mu.Unlock()
	return err
}

// RowState reports the confirmation state of an order row.
func (v *OrderHistory) RowState(orderID string) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rows[orderID]
}

func (v *OrderHistory) find(orderID string) (domain.Order, bool) {
	for _, o := range v.orders {
		if o.ID == orderID {
			return o, true
		}
	}
	return domain.Order{}, false
}
