package handlers

import (
	"strconv"

	"jerkco/internal/domain"
	applog "jerkco/internal/log"
	"jerkco/internal/repos"
	"jerkco/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// queryFloat parses an optional float query param; malformed values
// are treated as absent, matching the original contract.
func queryFloat(c *fiber.Ctx, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// List handles GET /api/products with the full filter/sort/page surface.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	q := services.CatalogQuery{
		Category:  c.Query("category"),
		Brand:     c.Query("brand"),
		Color:     c.Query("color"),
		Size:      c.Query("size"),
		Search:    c.Query("search"),
		MinPrice:  queryFloat(c, "min_price"),
		MaxPrice:  queryFloat(c, "max_price"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Page:      c.QueryInt("page", 1),
		PerPage:   c.QueryInt("per_page", 10),
	}

	page, err := h.Catalog.List(q)
	if err != nil {
		applog.Error(c, "catalog.list.fail", err, nil)
		return jsonError(c, err)
	}
	return c.JSON(page)
}

type productDetail struct {
	domain.Product
	Ratings []domain.Rating `json:"ratings"`
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return jsonError(c, domain.NotFound("product"))
	}
	p, ratings, err := h.Catalog.Get(id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(productDetail{Product: p, Ratings: ratings})
}

type productBody struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	ImageURL    *string   `json:"image_url"`
	Category    *string   `json:"category"`
	Brand       *string   `json:"brand"`
	Color       *string   `json:"color"`
	Sizes       *[]string `json:"sizes"`
	Stock       *int      `json:"stock"`
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req productBody
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, domain.Invalid("Invalid JSON body"))
	}

	in := services.ProductInput{
		Name:        str(req.Name),
		Description: str(req.Description),
		Price:       req.Price,
		ImageURL:    str(req.ImageURL),
		Category:    str(req.Category),
		Brand:       str(req.Brand),
		Color:       str(req.Color),
	}
	if req.Sizes != nil {
		in.Sizes = *req.Sizes
	}
	if req.Stock != nil {
		in.Stock = *req.Stock
	}

	p, err := h.Catalog.Create(in)
	if err != nil {
		return jsonError(c, err)
	}
	applog.Audit(c, "product.create", map[string]any{"product_id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created successfully",
		"product": p,
	})
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return jsonError(c, domain.NotFound("product"))
	}
	var req productBody
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, domain.Invalid("Invalid JSON body"))
	}

	p, err := h.Catalog.Update(id, repos.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Brand:       req.Brand,
		Color:       req.Color,
		Sizes:       req.Sizes,
		Stock:       req.Stock,
	})
	if err != nil {
		return jsonError(c, err)
	}
	applog.Audit(c, "product.update", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
		"product": p,
	})
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return jsonError(c, domain.NotFound("product"))
	}
	if err := h.Catalog.Delete(id); err != nil {
		return jsonError(c, err)
	}
	applog.Audit(c, "product.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}
