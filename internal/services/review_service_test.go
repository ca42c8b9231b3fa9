package services_test

import (
	"context"
	"testing"

	"minimart/internal/docstore"
	"minimart/internal/domain"
	"minimart/internal/repos"
	"minimart/internal/services"
)

func reviewFixture(t *testing.T) (*docstore.SQLite, *repos.ReviewRepo, *services.ReviewService) {
	t.Helper()
	st, err := docstore.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = st.Close() })
	repo := repos.NewReviewRepo(st)
	return st, repo, services.NewReviewService(repo)
}

func TestAddRejectsOutOfRangeRating(t *testing.T) {
	_, _, svc := reviewFixture(t)
	for _, r := range []int{0, 6, -1} {
		if _, err := svc.Add(context.Background(), domain.Review{ProductID: "p1", UserID: "u1", Rating: r, Comment: "x"}); err == nil {
			t.Fatalf("rating %d accepted", r)
		}
	}
}

func TestDeleteOnlyByAuthor(t *testing.T) {
	_, repo, svc := reviewFixture(t)
	ctx := context.Background()

	id, err := svc.Add(ctx, domain.Review{ProductID: "p1", UserID: "u-author", Rating: 4, Comment: "nice kettle"})
	if err != nil {
		t.Fatal(err)
	}

	// Someone else's delete is rejected before any store mutation.
	if err := svc.Delete(ctx, "u-other", "p1", id); err != services.ErrNotAuthor {
		t.Fatalf("want ErrNotAuthor, got %v", err)
	}
	if _, err := repo.Get(ctx, "p1", id); err != nil {
		t.Fatal("review must survive a rejected delete")
	}

	if err := svc.Delete(ctx, "u-author", "p1", id); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Get(ctx, "p1", id); err != docstore.ErrNotFound {
		t.Fatalf("want ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteMissingReview(t *testing.T) {
	_, _, svc := reviewFixture(t)
	if err := svc.Delete(context.Background(), "u1", "p1", "missing"); err != docstore.ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
