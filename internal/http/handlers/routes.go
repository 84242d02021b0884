package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Register mounts the full /api surface on the app. Kept separate from
// main so handler tests run against the exact production routing.
func Register(app *fiber.App, d *Deps) {
	api := app.Group("/api")

	api.Get("/test", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "JerkCo API is running!",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api.Post("/register", d.AuthHandler.Register)
	api.Post("/login", d.AuthHandler.Login)
	api.Get("/profile/:user_id", d.AuthHandler.Profile)

	api.Get("/products", d.ProductHandler.List)
	api.Get("/products/:id", d.ProductHandler.Detail)
	api.Post("/products", d.ProductHandler.Create)
	api.Put("/products/:id", d.ProductHandler.Update)
	api.Delete("/products/:id", d.ProductHandler.Delete)

	api.Post("/products/:id/rate", d.CommerceHandler.Rate)
	api.Post("/purchase", d.CommerceHandler.Purchase)
	api.Get("/purchases/:user_id", d.CommerceHandler.History)

	api.Post("/upload", d.UploadHandler.Upload)

	admin := api.Group("/admin")
	admin.Get("/users", d.AdminHandler.UsersList)
	admin.Get("/purchases", d.AdminHandler.PurchasesList)
	admin.Get("/stats", d.AdminHandler.StatsView)
	admin.Get("/sales-report", d.AdminHandler.SalesReportView)
}
