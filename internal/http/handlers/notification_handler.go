package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "minimart/internal/log"
	"minimart/internal/repos"
	"minimart/internal/validate"
)

type NotificationHandler struct {
	Notifications *repos.NotificationRepo
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	u := currentUser(c)
	list, err := h.Notifications.ListByUser(c.Context(), u.ID)
	if err != nil {
		applog.Error(c, "notifications.list", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load notifications"})
	}
	return c.JSON(fiber.Map{"notifications": list})
}

// MarkRead flips the read flag. Only the recipient may do it.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid notification id"})
	}
	u := currentUser(c)
	n, err := h.Notifications.Get(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "notification not found"})
	}
	if n.UserID != u.ID {
		applog.Security(c, "notifications.read.denied", map[string]any{"notification_id": id})
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "access denied"})
	}
	if err := h.Notifications.MarkRead(c.Context(), id); err != nil {
		applog.Error(c, "notifications.read", err, map[string]any{"notification_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not update notification"})
	}
	return c.JSON(fiber.Map{"ok": true})
}
