// Package state is the in-memory per-session state container. Handlers and
// services mutate it only through Dispatch, so workflows can be handed a
// state handle and tested in isolation.
package state

import (
	"sync"

	"minimart/internal/domain"
)

type Action interface{ isAction() }

type AddItem struct{ Item domain.CartItem }

// SetQuantity sets the quantity of an existing line; a quantity of zero
// removes the line.
type SetQuantity struct {
	ProductID string
	Quantity  int
}
type RemoveItem struct{ ProductID string }
type ClearCart struct{}
type SetUser struct{ User domain.User }
type ClearUser struct{}

func (AddItem) isAction()     {}
func (SetQuantity) isAction() {}
func (RemoveItem) isAction()  {}
func (ClearCart) isAction()   {}
func (SetUser) isAction()     {}
func (ClearUser) isAction()   {}

type Store struct {
	mu    sync.Mutex
	items []domain.CartItem
	user  *domain.User
}

func New() *Store { return &Store{} }

func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch act := a.(type) {
	case AddItem:
		for i := range s.items {
			if s.items[i].ProductID == act.Item.ProductID {
				s.items[i].Quantity += act.Item.Quantity
				return
			}
		}
		s.items = append(s.items, act.Item)
	case SetQuantity:
		for i := range s.items {
			if s.items[i].ProductID == act.ProductID {
				if act.Quantity < 1 {
					s.items = append(s.items[:i], s.items[i+1:]...)
				} else {
					s.items[i].Quantity = act.Quantity
				}
				return
			}
		}
	case RemoveItem:
		for i := range s.items {
			if s.items[i].ProductID == act.ProductID {
				s.items = append(s.items[:i], s.items[i+1:]...)
				return
			}
		}
	case ClearCart:
		s.items = nil
	case SetUser:
		u := act.User
		s.user = &u
	case ClearUser:
		s.user = nil
	}
}

// Cart returns a copy of the current cart lines.
func (s *Store) Cart() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}
