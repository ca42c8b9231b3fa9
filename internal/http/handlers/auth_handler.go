package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "minimart/internal/log"
	"minimart/internal/services"
	"minimart/internal/state"
	"minimart/internal/validate"
)

type AuthHandler struct {
	Auth     *services.AuthService
	Cart     *services.CartService
	Sessions *Sessions
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad request"})
	}
	email, ok := validate.Email(req.Email)
	if !ok || !validate.Password(req.Password) {
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email, "reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid email or password"})
	}

	u, err := h.Auth.Login(c.Context(), sid, email, req.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid email or password"})
	}

	st := h.Sessions.State(sid)
	st.Dispatch(state.SetUser{User: *u})
	// Pick up the cart the user left behind; a stale remote copy is not
	// worth failing the login over.
	if err := h.Cart.Load(c.Context(), st, u.ID); err != nil {
		applog.Error(c, "auth.login.cart_load", err, map[string]any{"uid": u.ID})
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.JSON(fiber.Map{"id": u.ID, "name": u.Name, "email": u.Email, "role": u.Role})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(c.Context(), sid)
	h.Sessions.Drop(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	u := currentUser(c)
	return c.JSON(fiber.Map{"id": u.ID, "name": u.Name, "email": u.Email, "role": u.Role})
}
