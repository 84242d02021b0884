package handlers

import (
	"jerkco/internal/domain"
	applog "jerkco/internal/log"
	"jerkco/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, domain.Invalid("Invalid JSON body"))
	}

	u, err := h.Auth.Register(req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		applog.Security(c, "auth.register.fail", map[string]any{"username": req.Username})
		return jsonError(c, err)
	}
	applog.Audit(c, "auth.register", map[string]any{"user_id": u.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    u,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, domain.Invalid("Invalid JSON body"))
	}
	if req.Username == "" || req.Password == "" {
		return jsonError(c, domain.Invalid("Missing username or password"))
	}

	u, err := h.Auth.Login(req.Username, req.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"username": req.Username})
		return jsonError(c, err)
	}
	applog.Audit(c, "auth.login.success", map[string]any{"user_id": u.ID})
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    u,
	})
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	id, ok := paramID(c, "user_id")
	if !ok {
		return jsonError(c, domain.NotFound("user"))
	}
	u, err := h.Auth.Profile(id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(u)
}
