package repos

import (
	"context"

	"minimart/internal/docstore"
	"minimart/internal/domain"
)

type NotificationRepo struct{ Store docstore.Store }

func NewNotificationRepo(st docstore.Store) *NotificationRepo {
	return &NotificationRepo{Store: st}
}

func (r *NotificationRepo) Create(ctx context.Context, n domain.Notification) (string, error) {
	return r.Store.Create(ctx, ColNotifications, n)
}

func (r *NotificationRepo) Get(ctx context.Context, id string) (domain.Notification, error) {
	doc, err := r.Store.Get(ctx, ColNotifications, id)
	if err != nil {
		return domain.Notification{}, err
	}
	var n domain.Notification
	if err := doc.Decode(&n); err != nil {
		return domain.Notification{}, err
	}
	return n, nil
}

func (r *NotificationRepo) ListByUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	docs, err := r.Store.Query(ctx, ColNotifications, docstore.Where{Field: "user_id", Value: userID})
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.Notification](docs)
}

func (r *NotificationRepo) MarkRead(ctx context.Context, id string) error {
	return r.Store.Update(ctx, ColNotifications, id, map[string]any{"read": true})
}
