package handlers

import (
	"time"

	"jerkco/internal/domain"
	applog "jerkco/internal/log"
	"jerkco/internal/repos"
	"jerkco/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Users     *repos.UserRepo
	Purchases *repos.PurchaseRepo
	Reports   *services.ReportService
}

// Users handles GET /api/admin/users.
func (h *AdminHandler) UsersList(c *fiber.Ctx) error {
	users, err := h.Users.All()
	if err != nil {
		applog.Error(c, "admin.users.list.fail", err, nil)
		return jsonError(c, err)
	}
	return c.JSON(users)
}

// PurchasesList handles GET /api/admin/purchases (paginated, newest first).
func (h *AdminHandler) PurchasesList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	perPage := c.QueryInt("per_page", 20)
	if perPage < 1 {
		perPage = 20
	}

	purchases, total, err := h.Purchases.ListPage(perPage, (page-1)*perPage)
	if err != nil {
		applog.Error(c, "admin.purchases.list.fail", err, nil)
		return jsonError(c, err)
	}
	if purchases == nil {
		purchases = []domain.Purchase{}
	}
	return c.JSON(fiber.Map{
		"purchases":    purchases,
		"total":        total,
		"pages":        (total + perPage - 1) / perPage,
		"current_page": page,
	})
}

// StatsView handles GET /api/admin/stats.
func (h *AdminHandler) StatsView(c *fiber.Ctx) error {
	st, err := h.Reports.Stats(time.Now().UTC())
	if err != nil {
		applog.Error(c, "admin.stats.fail", err, nil)
		return jsonError(c, err)
	}
	return c.JSON(st)
}

// SalesReportView handles GET /api/admin/sales-report.
func (h *AdminHandler) SalesReportView(c *fiber.Ctx) error {
	report, err := h.Reports.SalesReport(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		applog.Error(c, "admin.sales_report.fail", err, nil)
		return jsonError(c, err)
	}
	return c.JSON(report)
}
