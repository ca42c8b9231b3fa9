package services

import (
	"context"
	"errors"
	"fmt"

	"minimart/internal/domain"
	"minimart/internal/repos"
)

var ErrNotAuthor = errors.New("review belongs to another user")

type ReviewService struct {
	Reviews *repos.ReviewRepo
}

func NewReviewService(reviews *repos.ReviewRepo) *ReviewService {
	return &ReviewService{Reviews: reviews}
}

func (s *ReviewService) Add(ctx context.Context, rev domain.Review) (string, error) {
	if rev.Rating < 1 || rev.Rating > 5 {
		return "", fmt.Errorf("rating %d out of range", rev.Rating)
	}
	return s.Reviews.Create(ctx, rev)
}

// Delete removes a review. The ownership check runs before any store
// mutation: a request from anyone but the author is rejected outright.
func (s *ReviewService) Delete(ctx context.Context, actingUserID, productID, reviewID string) error {
	rev, err := s.Reviews.Get(ctx, productID, reviewID)
	if err != nil {
		return err
	}
	if rev.UserID != actingUserID {
		return ErrNotAuthor
	}
	return s.Reviews.Delete(ctx, productID, reviewID)
}
