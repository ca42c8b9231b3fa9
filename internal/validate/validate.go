package validate

import (
	"regexp"
	"strings"

	"minimart/internal/domain"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a simple resource identifier (product/order/review ids).
// The result is cloned: route params share fasthttp's request buffer, and
// ids returned here are retained past the request (view caches, pending
// delete/cancel state).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return strings.Clone(s), s != "" && reID.MatchString(s)
}

// Qty clamps a cart quantity to the 1..50 range.
func Qty(n int) int {
	if n < 1 {
		return 1
	}
	if n > 50 {
		return 50
	}
	return n
}

// Rating reports whether a review rating is in the 1..5 range.
func Rating(n int) bool { return n >= 1 && n <= 5 }

func Comment(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 500 {
		return "", false
	}
	return s, true
}

// Status validates an order status value for admin updates.
func Status(s string) (string, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case domain.StatusPending, domain.StatusInProcess, domain.StatusShipped,
		domain.StatusDelivered, domain.StatusCancelled, domain.StatusRefunded:
		return s, true
	}
	return "", false
}

func Password(s string) bool {
	if len(s) < 8 || len(s) > 64 {
		return false
	}
	return true
}
