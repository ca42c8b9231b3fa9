package http_test

import (
	"context"
	"testing"

	"minimart/internal/docstore"
	"minimart/internal/domain"
	"minimart/internal/http/handlers"
	"minimart/internal/repos"
	"minimart/internal/services"
	"minimart/internal/views"
)

func TestSessionsCloseCancelsReviewViews(t *testing.T) {
	store, err := docstore.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })

	reviewRepo := repos.NewReviewRepo(store)
	reviewSvc := services.NewReviewService(reviewRepo)

	sessions := handlers.NewSessions()
	v := sessions.ReviewView("p1", func() *views.ReviewList {
		return views.NewReviewList(store, reviewSvc, "p1")
	})

	ctx := context.Background()
	if _, err := reviewRepo.Create(ctx, domain.Review{ProductID: "p1", UserID: "u1", Rating: 4, Comment: "ok"}); err != nil {
		t.Fatal(err)
	}
	if p := v.Page(); p.Total != 1 {
		t.Fatalf("live view missed the create, got %d", p.Total)
	}

	sessions.Close()

	// The subscription is gone: further mutations no longer reach the view.
	if _, err := reviewRepo.Create(ctx, domain.Review{ProductID: "p1", UserID: "u1", Rating: 5, Comment: "again"}); err != nil {
		t.Fatal(err)
	}
	if p := v.Page(); p.Total != 1 {
		t.Fatalf("closed view still receives deliveries, got %d", p.Total)
	}
}
