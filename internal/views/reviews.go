package views

import (
	"context"
	"sort"
	"sync"

	"minimart/internal/docstore"
	"minimart/internal/domain"
	"minimart/internal/repos"
	"minimart/internal/services"
)

const ReviewPageSize = 5

const (
	SortNewest = "newest"
	SortRating = "rating"
)

// ReviewList is the live view of one product's review subcollection.
type ReviewList struct {
	svc       *services.ReviewService
	productID string
	cancel    func()

	mu      sync.Mutex
	reviews []domain.Review
	sortKey string
	page    int
	// pendingDelete holds the review id awaiting the second confirmation
	// step, keyed per acting user so confirmations cannot cross users.
	pendingDelete map[string]string
	deleteErr     map[string]string // review id -> last delete error
	lastErr       error
}

func NewReviewList(st docstore.Store, svc *services.ReviewService, productID string) *ReviewList {
	v := &ReviewList{
		svc:           svc,
		productID:     productID,
		sortKey:       SortNewest,
		page:          1,
		pendingDelete: map[string]string{},
		deleteErr:     map[string]string{},
	}
	v.cancel = st.Subscribe(repos.ReviewsCollection(productID), docstore.Where{}, v.apply, v.fail)
	return v
}

func (v *ReviewList) Close() { v.cancel() }

func (v *ReviewList) apply(docs []docstore.Doc) {
	reviews := make([]domain.Review, 0, len(docs))
	for _, d := range docs {
		var r domain.Review
		if err := d.Decode(&r); err != nil {
			v.fail(err)
			return
		}
		reviews = append(reviews, r)
	}
	v.mu.Lock()
	v.reviews = reviews
	v.lastErr = nil
	v.mu.Unlock()
}

func (v *ReviewList) fail(err error) {
	v.mu.Lock()
	v.lastErr = err
	v.mu.Unlock()
}

func (v *ReviewList) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastErr
}

// SetSort switches between newest-first and rating-descending and resets to
// the first page.
func (v *ReviewList) SetSort(key string) {
	if key != SortRating {
		key = SortNewest
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.sortKey != key {
		v.sortKey = key
		v.page = 1
	}
}

// SetPage stores a page number clamped to the current list, so the stored
// page cannot silently jump forward when the list later grows.
func (v *ReviewList) SetPage(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if n < 1 {
		n = 1
	}
	if max := pageCount(len(v.reviews), ReviewPageSize); n > max {
		n = max
	}
	v.page = n
}

type ReviewRow struct {
	domain.Review
	DeleteErr string `json:"delete_error,omitempty"`
}

type ReviewPage struct {
	Reviews []ReviewRow `json:"reviews"`
	Page    int         `json:"page"`
	Pages   int         `json:"pages"`
	Total   int         `json:"total"`
	Sort    string      `json:"sort"`
}

func (v *ReviewList) Page() ReviewPage {
	v.mu.Lock()
	defer v.mu.Unlock()

	sorted := make([]domain.Review, len(v.reviews))
	copy(sorted, v.reviews)
	// Ties fall back to id ascending so paging is stable across deliveries.
	sort.SliceStable(sorted, func(i, j int) bool {
		if v.sortKey == SortRating {
			if sorted[i].Rating != sorted[j].Rating {
				return sorted[i].Rating > sorted[j].Rating
			}
		} else if sorted[i].CreatedAt != sorted[j].CreatedAt {
			return sorted[i].CreatedAt > sorted[j].CreatedAt
		}
		return sorted[i].ID < sorted[j].ID
	})

	pages := pageCount(len(sorted), ReviewPageSize)
	page := v.page
	if page > pages {
		page = pages
	}
	lo := (page - 1) * ReviewPageSize
	hi := lo + ReviewPageSize
	if hi > len(sorted) {
		hi = len(sorted)
	}

	rows := make([]ReviewRow, 0, hi-lo)
	for _, r := range sorted[lo:hi] {
		rows = append(rows, ReviewRow{Review: r, DeleteErr: v.deleteErr[r.ID]})
	}
	return ReviewPage{Reviews: rows, Page: page, Pages: pages, Total: len(sorted), Sort: v.sortKey}
}

// RequestDelete is the first step of the confirm-then-delete interaction.
// Only the review's author may start it; anyone else is rejected before any
// store access happens.
func (v *ReviewList) RequestDelete(actingUserID, reviewID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, r := range v.reviews {
		if r.ID == reviewID {
			if r.UserID != actingUserID {
				return services.ErrNotAuthor
			}
			v.pendingDelete[actingUserID] = reviewID
			delete(v.deleteErr, reviewID)
			return nil
		}
	}
	return docstore.ErrNotFound
}

func (v *ReviewList) AbortDelete(actingUserID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.pendingDelete, actingUserID)
}

// ConfirmDelete performs the delete for a previously requested review. The
// service re-checks authorship before mutating the store.
func (v *ReviewList) ConfirmDelete(ctx context.Context, actingUserID string) error {
	v.mu.Lock()
	reviewID, ok := v.pendingDelete[actingUserID]
	if !ok {
		v.mu.Unlock()
		return docstore.ErrNotFound
	}
	delete(v.pendingDelete, actingUserID)
	v.mu.Unlock()

	err := v.svc.Delete(ctx, actingUserID, v.productID, reviewID)
	if err != nil {
		v.mu.Lock()
		v.deleteErr[reviewID] = err.Error()
		v.mu.Unlock()
	}
	return err
}

// Pending reports the review id the user is about to delete, if any.
func (v *ReviewList) Pending(actingUserID string) (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	id, ok := v.pendingDelete[actingUserID]
	return id, ok
}
