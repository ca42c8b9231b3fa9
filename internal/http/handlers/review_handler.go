package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"minimart/internal/docstore"
	"minimart/internal/domain"
	applog "minimart/internal/log"
	"minimart/internal/repos"
	"minimart/internal/services"
	"minimart/internal/validate"
	"minimart/internal/views"
)

type ReviewHandler struct {
	Review   *services.ReviewService
	Products *repos.ProductRepo
	Store    docstore.Store
	Sessions *Sessions
}

func (h *ReviewHandler) view(productID string) *views.ReviewList {
	return h.Sessions.ReviewView(productID, func() *views.ReviewList {
		return views.NewReviewList(h.Store, h.Review, productID)
	})
}

func (h *ReviewHandler) List(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	v := h.view(productID)
	if err := v.Err(); err != nil {
		applog.Error(c, "reviews.list", err, map[string]any{"product_id": productID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load reviews"})
	}
	v.SetSort(c.Query("sort"))
	if p := c.Query("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			v.SetPage(n)
		}
	}
	return c.JSON(v.Page())
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	if _, err := h.Products.Get(c.Context(), productID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad request"})
	}
	if !validate.Rating(req.Rating) {
		applog.Security(c, "validation.fail", map[string]any{"field": "rating"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "rating must be 1-5"})
	}
	comment, ok := validate.Comment(req.Comment)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "comment"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "comment is required"})
	}

	u := currentUser(c)
	id, err := h.Review.Add(c.Context(), domain.Review{
		ProductID:  productID,
		UserID:     u.ID,
		AuthorName: u.Name,
		Rating:     req.Rating,
		Comment:    comment,
	})
	if err != nil {
		applog.Error(c, "reviews.create", err, map[string]any{"product_id": productID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not save review"})
	}
	applog.Audit(c, "reviews.create", map[string]any{"review_id": id, "product_id": productID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"review_id": id})
}

// RequestDelete starts the two-step delete confirmation for the acting user.
func (h *ReviewHandler) RequestDelete(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	reviewID, ok := validate.ID(c.Params("rid"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid review id"})
	}
	u := currentUser(c)
	v := h.view(productID)
	if err := v.RequestDelete(u.ID, reviewID); err != nil {
		applog.Security(c, "reviews.delete.denied", map[string]any{"review_id": reviewID})
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"pending": reviewID})
}

func (h *ReviewHandler) ConfirmDelete(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	u := currentUser(c)
	v := h.view(productID)
	if err := v.ConfirmDelete(c.Context(), u.ID); err != nil {
		applog.Error(c, "reviews.delete.fail", err, map[string]any{"product_id": productID})
		return c.Status(statusFor(err)).JSON(v.Page())
	}
	applog.Audit(c, "reviews.delete", map[string]any{"product_id": productID})
	return c.JSON(v.Page())
}

func (h *ReviewHandler) AbortDelete(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	u := currentUser(c)
	h.view(productID).AbortDelete(u.ID)
	return c.JSON(fiber.Map{"ok": true})
}
