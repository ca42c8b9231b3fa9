package handlers

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"minimart/internal/docstore"
	"minimart/internal/services"
	"minimart/internal/state"
	"minimart/internal/views"
)

// Sessions holds per-session in-memory state: the local state container and
// the live order-history view. Review views are shared per product. Views
// are torn down when the session logs out.
type Sessions struct {
	mu      sync.Mutex
	states  map[string]*state.Store
	orders  map[string]*views.OrderHistory // keyed by sid
	reviews map[string]*views.ReviewList   // keyed by product id
}

func NewSessions() *Sessions {
	return &Sessions{
		states:  map[string]*state.Store{},
		orders:  map[string]*views.OrderHistory{},
		reviews: map[string]*views.ReviewList{},
	}
}

func (s *Sessions) State(sid string) *state.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[sid]
	if !ok {
		st = state.New()
		s.states[sid] = st
	}
	return st
}

// OrderView returns the session's live order view, creating it on first use.
// A view left over from a different user (relogin on the same session) is
// closed and replaced.
func (s *Sessions) OrderView(sid, userID string, build func() *views.OrderHistory) *views.OrderHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.orders[sid]; ok {
		if v.UserID() == userID {
			return v
		}
		v.Close()
	}
	v := build()
	s.orders[sid] = v
	return v
}

func (s *Sessions) ReviewView(productID string, build func() *views.ReviewList) *views.ReviewList {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.reviews[productID]; ok {
		return v
	}
	v := build()
	s.reviews[productID] = v
	return v
}

// Drop tears down everything owned by a session. Review views are shared
// across sessions and stay up; Close owns their teardown.
func (s *Sessions) Drop(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.orders[sid]; ok {
		v.Close()
		delete(s.orders, sid)
	}
	delete(s.states, sid)
}

// Close cancels every live view subscription. Called once, on shutdown.
func (s *Sessions) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sid, v := range s.orders {
		v.Close()
		delete(s.orders, sid)
	}
	for pid, v := range s.reviews {
		v.Close()
		delete(s.reviews, pid)
	}
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // enable behind TLS
		})
	}
	return sid
}

// statusFor maps workflow errors onto HTTP statuses.
func statusFor(err error) int {
	switch err {
	case services.ErrEmptyCart:
		return fiber.StatusBadRequest
	case services.ErrNotOwner, services.ErrNotAuthor:
		return fiber.StatusForbidden
	case services.ErrNotCancellable:
		return fiber.StatusConflict
	case docstore.ErrNotFound:
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}
