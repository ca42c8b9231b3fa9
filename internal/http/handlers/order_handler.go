package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"minimart/internal/docstore"
	applog "minimart/internal/log"
	"minimart/internal/services"
	"minimart/internal/validate"
	"minimart/internal/views"
)

type OrderHandler struct {
	Order    *services.OrderService
	Store    docstore.Store
	Sessions *Sessions
}

// Place runs the checkout workflow for the signed-in user's cart.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)
	u := currentUser(c)
	st := h.Sessions.State(sid)

	orderID, err := h.Order.Place(c.Context(), st, u.ID)
	if err != nil {
		applog.Error(c, "order.place.fail", err, map[string]any{"uid": u.ID})
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": "could not place order"})
	}
	applog.Audit(c, "order.place", map[string]any{"order_id": orderID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"order_id": orderID})
}

func (h *OrderHandler) view(c *fiber.Ctx) *views.OrderHistory {
	sid := ensureSID(c)
	u := currentUser(c)
	return h.Sessions.OrderView(sid, u.ID, func() *views.OrderHistory {
		return views.NewOrderHistory(h.Store, h.Order, u.ID)
	})
}

// History serves the current page of the live order view. The status filter
// and page come from query parameters; changing the filter resets the page.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	v := h.view(c)
	if err := v.Err(); err != nil {
		applog.Error(c, "order.history", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load orders"})
	}

	if status := c.Query("status"); status != "" {
		if s, ok := validate.Status(status); ok {
			v.SetFilter(s)
		}
	} else {
		v.SetFilter("")
	}
	if p := c.Query("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			v.SetPage(n)
		}
	}
	return c.JSON(v.Page())
}

func (h *OrderHandler) RequestCancel(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	v := h.view(c)
	if err := v.RequestCancel(id); err != nil {
		applog.Security(c, "order.cancel.denied", map[string]any{"order_id": id, "reason": err.Error()})
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(v.Page())
}

func (h *OrderHandler) ConfirmCancel(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	v := h.view(c)
	if err := v.ConfirmCancel(c.Context(), id); err != nil {
		applog.Error(c, "order.cancel.fail", err, map[string]any{"order_id": id})
		return c.Status(statusFor(err)).JSON(v.Page())
	}
	applog.Audit(c, "order.cancel", map[string]any{"order_id": id})
	return c.JSON(v.Page())
}

func (h *OrderHandler) AbortCancel(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	v := h.view(c)
	v.AbortCancel(id)
	return c.JSON(v.Page())
}
