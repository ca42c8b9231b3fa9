package services

import (
	"context"
	"fmt"
	"sync"

	"minimart/internal/domain"
	applog "minimart/internal/log"
	"minimart/internal/repos"
)

// NotifyService writes notification documents for order events. Every entry
// point is best-effort: failures are logged and swallowed so the triggering
// workflow is never failed or rolled back by a notification problem.
type NotifyService struct {
	Users         *repos.UserRepo
	Notifications *repos.NotificationRepo
}

func NewNotifyService(users *repos.UserRepo, notifications *repos.NotificationRepo) *NotifyService {
	return &NotifyService{Users: users, Notifications: notifications}
}

// NewOrder notifies every admin that an order was placed.
func (s *NotifyService) NewOrder(ctx context.Context, orderID, ownerID string, items []domain.CartItem) {
	admins := s.adminIDs(ctx)
	msg := fmt.Sprintf("New order %s placed with %d item(s)", orderID, len(items))
	s.fanout(ctx, admins, msg, itemImages(items))
}

// OrderCancelled notifies every admin plus the order's owner.
func (s *NotifyService) OrderCancelled(ctx context.Context, orderID, ownerID string, items []domain.CartItem) {
	admins := s.adminIDs(ctx)
	images := itemImages(items)
	s.fanout(ctx, admins, fmt.Sprintf("Order %s was cancelled by the customer", orderID), images)
	s.fanout(ctx, []string{ownerID}, fmt.Sprintf("Your order %s has been cancelled", orderID), images)
}

func (s *NotifyService) adminIDs(ctx context.Context) []string {
	admins, err := s.Users.Admins(ctx)
	if err != nil {
		applog.Error(nil, "notify.resolve_admins", err, nil)
		return nil
	}
	ids := make([]string, 0, len(admins))
	for _, a := range admins {
		ids = append(ids, a.ID)
	}
	return ids
}

// fanout creates one notification per recipient. The writes run concurrently
// and the batch is awaited before returning; individual failures are logged
// and dropped, with no retry.
func (s *NotifyService) fanout(ctx context.Context, recipients []string, message string, images []string) {
	var wg sync.WaitGroup
	for _, uid := range recipients {
		wg.Add(1)
		go func(uid string) {
			defer wg.Done()
			n := domain.Notification{UserID: uid, Message: message, Images: images}
			if _, err := s.Notifications.Create(ctx, n); err != nil {
				applog.Error(nil, "notify.create", err, map[string]any{"recipient": uid})
			}
		}(uid)
	}
	wg.Wait()
}

func itemImages(items []domain.CartItem) []string {
	var out []string
	for _, it := range items {
		if it.Image != "" {
			out = append(out, it.Image)
		}
	}
	return out
}
