package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"minimart/internal/config"
	"minimart/internal/docstore"
	"minimart/internal/http/handlers"
	applog "minimart/internal/log"
	"minimart/internal/repos"
	"minimart/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	store, err := docstore.Open(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := repos.Seed(context.Background(), store); err != nil {
		log.Fatal(err)
	}

	userRepo := repos.NewUserRepo(store)
	authSvc := &services.AuthService{Users: userRepo}
	sessions := handlers.NewSessions()
	deps := handlers.NewDeps(store, authSvc, sessions)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(limiter.New(limiter.Config{Max: 60, Expiration: time.Minute}))

	// Catalog
	app.Get("/products", deps.ProductHandler.List)
	app.Get("/products/:id", deps.ProductHandler.Detail)

	// Reviews
	app.Get("/products/:id/reviews", deps.ReviewHandler.List)
	app.Post("/products/:id/reviews", handlers.RequireUser(authSvc), deps.ReviewHandler.Create)
	app.Post("/products/:id/reviews/:rid/delete", handlers.RequireUser(authSvc), deps.ReviewHandler.RequestDelete)
	app.Post("/products/:id/reviews/delete/confirm", handlers.RequireUser(authSvc), deps.ReviewHandler.ConfirmDelete)
	app.Post("/products/:id/reviews/delete/abort", handlers.RequireUser(authSvc), deps.ReviewHandler.AbortDelete)

	// Cart
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/cart/quantity", deps.CartHandler.SetQuantity)
	app.Post("/cart/remove", deps.CartHandler.Remove)

	// Orders
	app.Post("/orders", handlers.RequireUser(authSvc), deps.OrderHandler.Place)
	app.Get("/orders", handlers.RequireUser(authSvc), deps.OrderHandler.History)
	app.Post("/orders/:id/cancel", handlers.RequireUser(authSvc), deps.OrderHandler.RequestCancel)
	app.Post("/orders/:id/cancel/confirm", handlers.RequireUser(authSvc), deps.OrderHandler.ConfirmCancel)
	app.Post("/orders/:id/cancel/abort", handlers.RequireUser(authSvc), deps.OrderHandler.AbortCancel)

	// Notifications
	app.Get("/notifications", handlers.RequireUser(authSvc), deps.NotificationHandler.List)
	app.Post("/notifications/:id/read", handlers.RequireUser(authSvc), deps.NotificationHandler.MarkRead)

	// Auth (login throttled)
	app.Post("/login", limiter.New(limiter.Config{Max: 5, Expiration: 10 * time.Minute}), deps.AuthHandler.Login)
	app.Post("/logout", deps.AuthHandler.Logout)
	app.Get("/me", handlers.RequireUser(authSvc), deps.AuthHandler.Me)

	// Admin
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/orders", deps.AdminHandler.OrdersPage)
	admin.Post("/orders/:id/status", deps.AdminHandler.UpdateOrderStatus)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	err = app.Listen(":" + cfg.Port)
	sessions.Close()
	_ = store.Close()
	if err != nil {
		log.Fatal(err)
	}
}
