package state_test

import (
	"testing"

	"minimart/internal/domain"
	"minimart/internal/state"
)

func TestDispatchCartActions(t *testing.T) {
	st := state.New()

	st.Dispatch(state.AddItem{Item: domain.CartItem{ProductID: "p1", Price: 10, Quantity: 2}})
	st.Dispatch(state.AddItem{Item: domain.CartItem{ProductID: "p2", Price: 5, Quantity: 1}})
	// Adding the same product again merges the quantity.
	st.Dispatch(state.AddItem{Item: domain.CartItem{ProductID: "p1", Price: 10, Quantity: 1}})

	items := st.Cart()
	if len(items) != 2 {
		t.Fatalf("want 2 lines, got %d", len(items))
	}
	if items[0].ProductID != "p1" || items[0].Quantity != 3 {
		t.Fatalf("merge failed: %+v", items[0])
	}

	st.Dispatch(state.SetQuantity{ProductID: "p2", Quantity: 4})
	if got := st.Cart()[1].Quantity; got != 4 {
		t.Fatalf("want qty 4, got %d", got)
	}
	// Quantity zero removes the line.
	st.Dispatch(state.SetQuantity{ProductID: "p2", Quantity: 0})
	if len(st.Cart()) != 1 {
		t.Fatal("zero quantity should remove the line")
	}

	st.Dispatch(state.ClearCart{})
	if len(st.Cart()) != 0 {
		t.Fatal("cart not cleared")
	}
}

func TestCartReturnsCopy(t *testing.T) {
	st := state.New()
	st.Dispatch(state.AddItem{Item: domain.CartItem{ProductID: "p1", Quantity: 1}})

	items := st.Cart()
	items[0].Quantity = 99
	if st.Cart()[0].Quantity != 1 {
		t.Fatal("Cart leaked internal slice")
	}
}

func TestUserActions(t *testing.T) {
	st := state.New()
	if st.User() != nil {
		t.Fatal("fresh store should have no user")
	}
	st.Dispatch(state.SetUser{User: domain.User{ID: "u1", Name: "Alice"}})
	u := st.User()
	if u == nil || u.ID != "u1" {
		t.Fatalf("bad user: %+v", u)
	}
	st.Dispatch(state.ClearUser{})
	if st.User() != nil {
		t.Fatal("user not cleared")
	}
}
