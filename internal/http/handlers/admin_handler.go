package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "minimart/internal/log"
	"minimart/internal/repos"
	"minimart/internal/validate"
)

type AdminHandler struct {
	Orders *repos.OrderRepo
}

func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	orders, err := h.Orders.ListAll(c.Context())
	if err != nil {
		applog.Error(c, "admin.orders", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load orders"})
	}
	return c.JSON(fiber.Map{"orders": orders})
}

func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad request"})
	}
	status, ok := validate.Status(req.Status)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "status"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid status"})
	}
	if err := h.Orders.UpdateStatus(c.Context(), id, status); err != nil {
		applog.Error(c, "admin.order_status", err, map[string]any{"order_id": id})
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": "could not update order"})
	}
	applog.Audit(c, "admin.order_status", map[string]any{"order_id": id, "status": status})
	return c.JSON(fiber.Map{"ok": true})
}
