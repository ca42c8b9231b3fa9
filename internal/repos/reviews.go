package repos

import (
	"context"

	"minimart/internal/docstore"
	"minimart/internal/domain"
)

type ReviewRepo struct{ Store docstore.Store }

func NewReviewRepo(st docstore.Store) *ReviewRepo { return &ReviewRepo{Store: st} }

func (r *ReviewRepo) Create(ctx context.Context, rev domain.Review) (string, error) {
	return r.Store.Create(ctx, ReviewsCollection(rev.ProductID), rev)
}

func (r *ReviewRepo) Get(ctx context.Context, productID, id string) (domain.Review, error) {
	doc, err := r.Store.Get(ctx, ReviewsCollection(productID), id)
	if err != nil {
		return domain.Review{}, err
	}
	var rev domain.Review
	if err := doc.Decode(&rev); err != nil {
		return domain.Review{}, err
	}
	return rev, nil
}

func (r *ReviewRepo) Delete(ctx context.Context, productID, id string) error {
	return r.Store.Delete(ctx, ReviewsCollection(productID), id)
}

func (r *ReviewRepo) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	docs, err := r.Store.Query(ctx, ReviewsCollection(productID), docstore.Where{})
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.Review](docs)
}
