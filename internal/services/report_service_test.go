package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"jerkco/internal/domain"
	"jerkco/internal/repos"
	"jerkco/internal/services"
)

func newReport(t *testing.T) (*services.ReportService, *sqlx.DB) {
	t.Helper()
	db := memdb(t)
	svc := services.NewReportService(
		repos.NewUserRepo(db),
		repos.NewProductRepo(db),
		repos.NewRatingRepo(db),
		repos.NewPurchaseRepo(db),
	)
	return svc, db
}

// insertPurchase writes a purchase row with an explicit date, bypassing
// the stock machinery; seeded users (1,2) and products (1..4) exist.
func insertPurchase(t *testing.T, db *sqlx.DB, userID, productID int64, qty int, total float64, date string) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO purchases(user_id,product_id,quantity,size,total_price,purchase_date,status)
		VALUES(?,?,?,?,?,?,'completed')`,
		userID, productID, qty, "", total, date)
	if err != nil {
		t.Fatal(err)
	}
}

func ts(t *testing.T, value string) string {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatal(err)
	}
	return parsed.UTC().Format(repos.TimeLayout)
}

func TestStatsEmptyAndWindows(t *testing.T) {
	svc, db := newReport(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	st, err := svc.Stats(now)
	if err != nil {
		t.Fatal(err)
	}
	if st.TotalUsers != 2 || st.TotalProducts != 4 {
		t.Fatalf("seed counts wrong: %+v", st)
	}
	if st.TotalPurchases != 0 || st.TotalRevenue != 0 || len(st.TopProducts) != 0 {
		t.Fatalf("want zeroed sales stats, got %+v", st)
	}

	insertPurchase(t, db, 2, 1, 1, 100, ts(t, "2026-03-15T09:00:00Z")) // today
	insertPurchase(t, db, 2, 1, 2, 200, ts(t, "2026-03-02T09:00:00Z")) // this month, not today
	insertPurchase(t, db, 2, 2, 1, 50, ts(t, "2026-02-10T09:00:00Z"))  // previous month

	st, err = svc.Stats(now)
	if err != nil {
		t.Fatal(err)
	}
	if st.TotalPurchases != 3 || st.TotalRevenue != 350 {
		t.Fatalf("totals wrong: %+v", st)
	}
	if st.TodaySales != 1 || st.TodayRevenue != 100 {
		t.Fatalf("today window wrong: %+v", st)
	}
	if st.MonthlySales != 2 || st.MonthlyRevenue != 300 {
		t.Fatalf("month window wrong: %+v", st)
	}
}

func TestStatsTopProducts(t *testing.T) {
	svc, db := newReport(t)

	insertPurchase(t, db, 2, 1, 5, 100, ts(t, "2026-03-01T09:00:00Z"))
	insertPurchase(t, db, 2, 2, 2, 40, ts(t, "2026-03-02T09:00:00Z"))
	insertPurchase(t, db, 1, 2, 2, 40, ts(t, "2026-03-03T09:00:00Z"))

	st, err := svc.Stats(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if len(st.TopProducts) != 2 {
		t.Fatalf("want 2 top products, got %d", len(st.TopProducts))
	}
	if st.TopProducts[0].TotalSold != 5 || st.TopProducts[0].TotalRevenue != 100 {
		t.Fatalf("top product wrong: %+v", st.TopProducts[0])
	}
	if st.TopProducts[1].TotalSold != 4 || st.TopProducts[1].TotalRevenue != 80 {
		t.Fatalf("second product wrong: %+v", st.TopProducts[1])
	}
}

func TestSalesReportWindow(t *testing.T) {
	svc, db := newReport(t)

	insertPurchase(t, db, 2, 1, 1, 100, ts(t, "2026-01-10T09:00:00Z"))
	insertPurchase(t, db, 2, 1, 2, 150, ts(t, "2026-01-11T15:00:00Z"))
	insertPurchase(t, db, 2, 2, 1, 50, ts(t, "2026-02-01T10:00:00Z"))

	rep, err := svc.SalesReport("2026-01-10", "2026-01-11")
	if err != nil {
		t.Fatal(err)
	}
	// The 15:00 purchase on the end date is inside the inclusive window.
	if rep.Summary.TotalSales != 2 || rep.Summary.TotalRevenue != 250 || rep.Summary.TotalQuantity != 3 {
		t.Fatalf("summary wrong: %+v", rep.Summary)
	}
	if rep.Summary.AverageOrderValue != 125 {
		t.Fatalf("want AOV 125, got %v", rep.Summary.AverageOrderValue)
	}
	if len(rep.DailySales) != 2 {
		t.Fatalf("want 2 daily keys, got %v", rep.DailySales)
	}
	d, ok := rep.DailySales["2026-01-11"]
	if !ok || d.Sales != 1 || d.Revenue != 150 || d.Quantity != 2 {
		t.Fatalf("daily rollup wrong: %+v", rep.DailySales)
	}
	// Newest first.
	if len(rep.Purchases) != 2 || rep.Purchases[0].TotalPrice != 150 {
		t.Fatalf("purchase ordering wrong: %+v", rep.Purchases)
	}

	// Open-ended bounds.
	rep, err = svc.SalesReport("", "")
	if err != nil {
		t.Fatal(err)
	}
	if rep.Summary.TotalSales != 3 {
		t.Fatalf("open window: want 3 sales, got %d", rep.Summary.TotalSales)
	}
	rep, err = svc.SalesReport("2026-02-01", "")
	if err != nil {
		t.Fatal(err)
	}
	if rep.Summary.TotalSales != 1 {
		t.Fatalf("open end: want 1 sale, got %d", rep.Summary.TotalSales)
	}
}

func TestSalesReportEmptyWindow(t *testing.T) {
	svc, db := newReport(t)
	insertPurchase(t, db, 2, 1, 1, 100, ts(t, "2026-01-10T09:00:00Z"))

	rep, err := svc.SalesReport("2025-01-01", "2025-01-02")
	if err != nil {
		t.Fatal(err)
	}
	if rep.Summary.TotalSales != 0 || rep.Summary.AverageOrderValue != 0 {
		t.Fatalf("want zero summary, got %+v", rep.Summary)
	}
	if len(rep.Purchases) != 0 || len(rep.DailySales) != 0 {
		t.Fatalf("want empty result set, got %+v", rep)
	}

	var verr domain.ValidationError
	if _, err := svc.SalesReport("not-a-date", ""); !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}
