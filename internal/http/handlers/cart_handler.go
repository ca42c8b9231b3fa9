package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "minimart/internal/log"
	"minimart/internal/services"
	"minimart/internal/state"
	"minimart/internal/validate"
)

type CartHandler struct {
	Cart     *services.CartService
	Sessions *Sessions
}

// uid returns the signed-in user's id, or "" for an anonymous session.
// Cart routes stay usable without a login, so the id comes from the
// session state rather than the auth middleware.
func uid(st *state.Store) string {
	if u := st.User(); u != nil {
		return u.ID
	}
	return ""
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	st := h.Sessions.State(ensureSID(c))
	items := st.Cart()
	total, quantity := services.Totals(items)
	return c.JSON(fiber.Map{"items": items, "total": total, "total_quantity": quantity})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var req struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad request"})
	}
	id, ok := validate.ID(req.ProductID)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product_id"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}

	st := h.Sessions.State(sid)
	if err := h.Cart.Add(c.Context(), st, uid(st), id, validate.Qty(req.Quantity)); err != nil {
		applog.Error(c, "cart.add", err, map[string]any{"product_id": id})
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": "could not add to cart"})
	}
	return h.View(c)
}

func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var req struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad request"})
	}
	st := h.Sessions.State(sid)
	if err := h.Cart.SetQuantity(c.Context(), st, uid(st), req.ProductID, req.Quantity); err != nil {
		applog.Error(c, "cart.set_quantity", err, map[string]any{"product_id": req.ProductID})
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": "could not update cart"})
	}
	return h.View(c)
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad request"})
	}
	st := h.Sessions.State(sid)
	if err := h.Cart.Remove(c.Context(), st, uid(st), req.ProductID); err != nil {
		applog.Error(c, "cart.remove", err, map[string]any{"product_id": req.ProductID})
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": "could not update cart"})
	}
	return h.View(c)
}
