package validate_test

import (
	"testing"

	"minimart/internal/validate"
)

func TestEmail(t *testing.T) {
	if _, ok := validate.Email("alice@minimart.test"); !ok {
		t.Fatal("valid email rejected")
	}
	for _, bad := range []string{"", "  ", "no-at-sign", "a@b", "a b@c.com"} {
		if _, ok := validate.Email(bad); ok {
			t.Fatalf("accepted %q", bad)
		}
	}
}

func TestID(t *testing.T) {
	if _, ok := validate.ID("p-kettle"); !ok {
		t.Fatal("valid id rejected")
	}
	for _, bad := range []string{"", "a b", "x/y", "'; drop"} {
		if _, ok := validate.ID(bad); ok {
			t.Fatalf("accepted %q", bad)
		}
	}
}

func TestQtyClamps(t *testing.T) {
	cases := map[int]int{-3: 1, 0: 1, 1: 1, 7: 7, 50: 50, 51: 50}
	for in, want := range cases {
		if got := validate.Qty(in); got != want {
			t.Fatalf("Qty(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestStatus(t *testing.T) {
	if s, ok := validate.Status(" Shipped "); !ok || s != "shipped" {
		t.Fatalf("got %q, %v", s, ok)
	}
	if _, ok := validate.Status("lost"); ok {
		t.Fatal("unknown status accepted")
	}
}
