package http_test

import (
	"net/http"
	"testing"
)

func TestOrdersRequireLogin(t *testing.T) {
	app := newApp(t)
	for _, path := range []string{"/orders", "/notifications"} {
		resp := doJSON(t, app, "GET", path, "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("GET %s without login: want 401, got %d", path, resp.StatusCode)
		}
	}
	resp := doJSON(t, app, "POST", "/orders", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("place without login: want 401, got %d", resp.StatusCode)
	}
}

func TestAdminEndpointsDenyRegularUsers(t *testing.T) {
	app := newApp(t)
	sid := login(t, app, "alice@minimart.test")

	resp := doJSON(t, app, "GET", "/admin/orders", sid, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("want 403, got %d", resp.StatusCode)
	}

	admSid := login(t, app, "admin@minimart.test")
	resp = doJSON(t, app, "GET", "/admin/orders", admSid, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin denied: %d", resp.StatusCode)
	}
}

func TestReviewDeleteEnforcesAuthorship(t *testing.T) {
	app := newApp(t)
	aliceSid := login(t, app, "alice@minimart.test")
	bobSid := login(t, app, "bob@minimart.test")

	resp := doJSON(t, app, "POST", "/products/p-kettle/reviews", aliceSid,
		map[string]any{"rating": 5, "comment": "boils fast"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create review: status %d", resp.StatusCode)
	}
	var created struct {
		ReviewID string `json:"review_id"`
	}
	decodeBody(t, resp, &created)

	// Bob can neither request nor confirm deletion of Alice's review.
	resp = doJSON(t, app, "POST", "/products/p-kettle/reviews/"+created.ReviewID+"/delete", bobSid, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("want 403 for foreign delete, got %d", resp.StatusCode)
	}
	resp = doJSON(t, app, "POST", "/products/p-kettle/reviews/delete/confirm", bobSid, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("confirm without request: want 404, got %d", resp.StatusCode)
	}

	// The review is still there.
	resp = doJSON(t, app, "GET", "/products/p-kettle/reviews", "", nil)
	var page struct {
		Total int `json:"total"`
	}
	decodeBody(t, resp, &page)
	if page.Total != 1 {
		t.Fatalf("review lost: %+v", page)
	}

	// Alice deletes her own review through the two-step flow.
	resp = doJSON(t, app, "POST", "/products/p-kettle/reviews/"+created.ReviewID+"/delete", aliceSid, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("request delete: status %d", resp.StatusCode)
	}
	resp = doJSON(t, app, "POST", "/products/p-kettle/reviews/delete/confirm", aliceSid, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("confirm delete: status %d", resp.StatusCode)
	}
	resp = doJSON(t, app, "GET", "/products/p-kettle/reviews", "", nil)
	decodeBody(t, resp, &page)
	if page.Total != 0 {
		t.Fatalf("review not deleted: %+v", page)
	}
}

func TestReviewValidation(t *testing.T) {
	app := newApp(t)
	sid := login(t, app, "alice@minimart.test")

	resp := doJSON(t, app, "POST", "/products/p-kettle/reviews", sid,
		map[string]any{"rating": 9, "comment": "x"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("rating 9: want 400, got %d", resp.StatusCode)
	}
	resp = doJSON(t, app, "POST", "/products/p-kettle/reviews", sid,
		map[string]any{"rating": 3, "comment": "   "})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("blank comment: want 400, got %d", resp.StatusCode)
	}
}
