package handlers

import (
	"jerkco/internal/domain"
	applog "jerkco/internal/log"
	"jerkco/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CommerceHandler struct {
	Commerce *services.CommerceService
}

// Rate handles POST /api/products/:id/rate (one rating per user/product).
func (h *CommerceHandler) Rate(c *fiber.Ctx) error {
	productID, ok := paramID(c, "id")
	if !ok {
		return jsonError(c, domain.NotFound("product"))
	}
	var req struct {
		UserID *int64 `json:"user_id"`
		Rating *int   `json:"rating"`
		Review string `json:"review"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, domain.Invalid("Invalid JSON body"))
	}
	if req.UserID == nil || req.Rating == nil {
		return jsonError(c, domain.Invalid("Missing required fields: user_id, rating"))
	}

	updated, err := h.Commerce.Rate(productID, *req.UserID, *req.Rating, req.Review)
	if err != nil {
		return jsonError(c, err)
	}
	msg := "Rating added successfully"
	if updated {
		msg = "Rating updated successfully"
	}
	applog.Audit(c, "product.rate", map[string]any{"product_id": productID, "user_id": *req.UserID})
	return c.JSON(fiber.Map{"message": msg})
}

// Purchase handles POST /api/purchase.
func (h *CommerceHandler) Purchase(c *fiber.Ctx) error {
	var req struct {
		UserID    *int64 `json:"user_id"`
		ProductID *int64 `json:"product_id"`
		Quantity  *int   `json:"quantity"`
		Size      string `json:"size"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, domain.Invalid("Invalid JSON body"))
	}
	if req.UserID == nil || req.ProductID == nil || req.Quantity == nil {
		return jsonError(c, domain.Invalid("Missing required fields: user_id, product_id, quantity"))
	}

	p, err := h.Commerce.Buy(*req.UserID, *req.ProductID, *req.Quantity, req.Size)
	if err != nil {
		applog.Security(c, "purchase.fail", map[string]any{"user_id": *req.UserID, "product_id": *req.ProductID, "error": err.Error()})
		return jsonError(c, err)
	}
	applog.Audit(c, "purchase.create", map[string]any{"purchase_id": p.ID, "total": p.TotalPrice})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Purchase created successfully",
		"purchase": p,
	})
}

// History handles GET /api/purchases/:user_id, newest first.
func (h *CommerceHandler) History(c *fiber.Ctx) error {
	userID, ok := paramID(c, "user_id")
	if !ok {
		return jsonError(c, domain.NotFound("user"))
	}
	purchases, err := h.Commerce.History(userID)
	if err != nil {
		applog.Error(c, "purchase.history.fail", err, nil)
		return jsonError(c, err)
	}
	return c.JSON(purchases)
}
