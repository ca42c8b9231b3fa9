package views_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"minimart/internal/docstore"
	"minimart/internal/domain"
	"minimart/internal/repos"
	"minimart/internal/services"
	"minimart/internal/views"
)

// updateFailStore fails Update calls on selected collections.
type updateFailStore struct {
	docstore.Store
	failUpdate map[string]error
}

func (f *updateFailStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := f.failUpdate[collection]; err != nil {
		return err
	}
	return f.Store.Update(ctx, collection, id, fields)
}

func orderFixture(t *testing.T) (*updateFailStore, *repos.OrderRepo, *services.OrderService) {
	t.Helper()
	base, err := docstore.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = base.Close() })

	st := &updateFailStore{Store: base, failUpdate: map[string]error{}}
	userRepo := repos.NewUserRepo(st)
	prodRepo := repos.NewProductRepo(st)
	orderRepo := repos.NewOrderRepo(st)
	notifRepo := repos.NewNotificationRepo(st)
	cartRepo := repos.NewCartRepo(st)

	notifySvc := services.NewNotifyService(userRepo, notifRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(orderRepo, cartSvc, notifySvc)
	return st, orderRepo, orderSvc
}

func seedOrders(t *testing.T, repo *repos.OrderRepo, userID string, statuses ...string) []string {
	t.Helper()
	ids := make([]string, 0, len(statuses))
	for i, status := range statuses {
		id, err := repo.Create(context.Background(), domain.Order{
			UserID: userID,
			Items:  []domain.CartItem{{ProductID: fmt.Sprintf("p%d", i), Price: 10, Quantity: 1}},
			Total:  10, TotalQuantity: 1,
			Status: status,
		})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}
	return ids
}

func TestOrderHistoryPagination(t *testing.T) {
	st, repo, svc := orderFixture(t)

	statuses := make([]string, 12)
	for i := range statuses {
		statuses[i] = domain.StatusPending
	}
	seedOrders(t, repo, "u1", statuses...)

	v := views.NewOrderHistory(st, svc, "u1")
	defer v.Close()

	p := v.Page()
	if p.Total != 12 || p.Pages != 2 || p.Page != 1 || len(p.Orders) != 9 {
		t.Fatalf("page 1: %+v", p)
	}
	v.SetPage(2)
	p = v.Page()
	if p.Page != 2 || len(p.Orders) != 3 {
		t.Fatalf("page 2: want 3 orders, got %+v", p)
	}
	// Out-of-range pages clamp to the last page.
	v.SetPage(9)
	if p := v.Page(); p.Page != 2 {
		t.Fatalf("want clamp to page 2, got %d", p.Page)
	}
}

func TestSetPageClampIsStored(t *testing.T) {
	st, repo, svc := orderFixture(t)
	statuses := make([]string, 12)
	for i := range statuses {
		statuses[i] = domain.StatusPending
	}
	seedOrders(t, repo, "u1", statuses...)

	v := views.NewOrderHistory(st, svc, "u1")
	defer v.Close()

	// The clamp happens when the page is set, not merely when it is read:
	// growing the list afterwards must not make the view jump forward.
	v.SetPage(50)
	more := make([]string, 15)
	for i := range more {
		more[i] = domain.StatusPending
	}
	seedOrders(t, repo, "u1", more...)
	if p := v.Page(); p.Page != 2 {
		t.Fatalf("stored page drifted after growth: want 2, got %d", p.Page)
	}
}

func TestOrderHistoryFilterResetsPage(t *testing.T) {
	st, repo, svc := orderFixture(t)
	statuses := make([]string, 10)
	for i := range statuses {
		statuses[i] = domain.StatusPending
	}
	statuses = append(statuses, domain.StatusShipped, domain.StatusShipped)
	seedOrders(t, repo, "u1", statuses...)

	v := views.NewOrderHistory(st, svc, "u1")
	defer v.Close()

	v.SetPage(2)
	v.SetFilter(domain.StatusShipped)
	p := v.Page()
	if p.Page != 1 {
		t.Fatalf("filter change must reset to page 1, got %d", p.Page)
	}
	if p.Total != 2 {
		t.Fatalf("want 2 shipped orders, got %d", p.Total)
	}
	for _, o := range p.Orders {
		if o.Status != domain.StatusShipped {
			t.Fatalf("filter leak: %+v", o)
		}
		if o.CanCancel {
			t.Fatal("shipped orders must not offer cancel")
		}
	}
}

func TestOrderHistoryExcludesOtherUsers(t *testing.T) {
	st, repo, svc := orderFixture(t)
	seedOrders(t, repo, "u1", domain.StatusPending)
	seedOrders(t, repo, "u2", domain.StatusPending, domain.StatusPending)

	v := views.NewOrderHistory(st, svc, "u1")
	defer v.Close()
	if p := v.Page(); p.Total != 1 {
		t.Fatalf("want only u1 orders, got %d", p.Total)
	}
}

func TestOrderHistoryLiveUpdates(t *testing.T) {
	st, repo, svc := orderFixture(t)
	v := views.NewOrderHistory(st, svc, "u1")
	defer v.Close()

	if p := v.Page(); p.Total != 0 {
		t.Fatalf("fresh view should be empty, got %d", p.Total)
	}
	seedOrders(t, repo, "u1", domain.StatusPending)
	if p := v.Page(); p.Total != 1 {
		t.Fatalf("create not delivered, got %d", p.Total)
	}
}

func TestCancelStateMachine(t *testing.T) {
	st, repo, svc := orderFixture(t)
	ids := seedOrders(t, repo, "u1", domain.StatusPending, domain.StatusShipped)
	pending, shipped := ids[0], ids[1]

	v := views.NewOrderHistory(st, svc, "u1")
	defer v.Close()

	// Cancel is not offered outside pending / in process.
	if err := v.RequestCancel(shipped); err != services.ErrNotCancellable {
		t.Fatalf("want ErrNotCancellable, got %v", err)
	}
	if err := v.RequestCancel("missing"); err != docstore.ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	// idle -> confirming -> idle on abort
	if err := v.RequestCancel(pending); err != nil {
		t.Fatal(err)
	}
	if v.RowState(pending) != views.RowConfirming {
		t.Fatal("want confirming")
	}
	v.AbortCancel(pending)
	if v.RowState(pending) != views.RowIdle {
		t.Fatal("abort must return to idle")
	}

	// Confirm without a prior request is a no-op.
	if err := v.ConfirmCancel(context.Background(), pending); err != nil {
		t.Fatal(err)
	}
	if o, _ := repo.Get(context.Background(), pending); o.Status != domain.StatusPending {
		t.Fatal("confirm without request must not cancel")
	}

	// idle -> confirming -> cancelling -> idle, order cancelled
	if err := v.RequestCancel(pending); err != nil {
		t.Fatal(err)
	}
	if err := v.ConfirmCancel(context.Background(), pending); err != nil {
		t.Fatal(err)
	}
	if v.RowState(pending) != views.RowIdle {
		t.Fatal("row must end idle")
	}
	if o, _ := repo.Get(context.Background(), pending); o.Status != domain.StatusCancelled {
		t.Fatalf("want cancelled, got %q", o.Status)
	}
	// The subscription refreshed the snapshot.
	for _, row := range v.Page().Orders {
		if row.ID == pending && row.Status != domain.StatusCancelled {
			t.Fatalf("snapshot stale: %+v", row)
		}
	}
}

func TestCancelFailureAttachesRowError(t *testing.T) {
	st, repo, svc := orderFixture(t)
	ids := seedOrders(t, repo, "u1", domain.StatusPending)

	v := views.NewOrderHistory(st, svc, "u1")
	defer v.Close()

	if err := v.RequestCancel(ids[0]); err != nil {
		t.Fatal(err)
	}
	st.failUpdate[repos.ColOrders] = errors.New("store down")
	if err := v.ConfirmCancel(context.Background(), ids[0]); err == nil {
		t.Fatal("want error")
	}
	if v.RowState(ids[0]) != views.RowIdle {
		t.Fatal("failed cancel must re-enter idle")
	}
	found := false
	for _, row := range v.Page().Orders {
		if row.ID == ids[0] {
			found = true
			if row.CancelErr == "" {
				t.Fatal("row error missing")
			}
			if row.Status != domain.StatusPending {
				t.Fatal("failed cancel must not change status")
			}
		}
	}
	if !found {
		t.Fatal("row missing from page")
	}
}
