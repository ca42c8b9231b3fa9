package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "minimart/internal/log"
	"minimart/internal/repos"
	"minimart/internal/validate"
)

type ProductHandler struct {
	Products *repos.ProductRepo
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Products.List(c.Context())
	if err != nil {
		applog.Error(c, "products.list", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load products"})
	}
	return c.JSON(fiber.Map{"products": products})
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	p, err := h.Products.Get(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	return c.JSON(p)
}
