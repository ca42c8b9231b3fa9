package handlers

import (
	"minimart/internal/docstore"
	"minimart/internal/repos"
	"minimart/internal/services"
)

type Deps struct {
	AuthHandler         *AuthHandler
	ProductHandler      *ProductHandler
	CartHandler         *CartHandler
	OrderHandler        *OrderHandler
	ReviewHandler       *ReviewHandler
	NotificationHandler *NotificationHandler
	AdminHandler        *AdminHandler
}

func NewDeps(st docstore.Store, auth *services.AuthService, sessions *Sessions) *Deps {
	userRepo := repos.NewUserRepo(st)
	prodRepo := repos.NewProductRepo(st)
	cartRepo := repos.NewCartRepo(st)
	orderRepo := repos.NewOrderRepo(st)
	notifRepo := repos.NewNotificationRepo(st)
	reviewRepo := repos.NewReviewRepo(st)

	notifySvc := services.NewNotifyService(userRepo, notifRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(orderRepo, cartSvc, notifySvc)
	reviewSvc := services.NewReviewService(reviewRepo)

	return &Deps{
		AuthHandler:         &AuthHandler{Auth: auth, Cart: cartSvc, Sessions: sessions},
		ProductHandler:      &ProductHandler{Products: prodRepo},
		CartHandler:         &CartHandler{Cart: cartSvc, Sessions: sessions},
		OrderHandler:        &OrderHandler{Order: orderSvc, Store: st, Sessions: sessions},
		ReviewHandler:       &ReviewHandler{Review: reviewSvc, Products: prodRepo, Store: st, Sessions: sessions},
		NotificationHandler: &NotificationHandler{Notifications: notifRepo},
		AdminHandler:        &AdminHandler{Orders: orderRepo},
	}
}
