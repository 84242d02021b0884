package services

import (
	"time"

	"jerkco/internal/domain"
	"jerkco/internal/repos"
)

type ReportService struct {
	Users     *repos.UserRepo
	Prods     *repos.ProductRepo
	Ratings   *repos.RatingRepo
	Purchases *repos.PurchaseRepo
}

func NewReportService(users *repos.UserRepo, prods *repos.ProductRepo, ratings *repos.RatingRepo, purchases *repos.PurchaseRepo) *ReportService {
	return &ReportService{Users: users, Prods: prods, Ratings: ratings, Purchases: purchases}
}

// Stats aggregates store-wide totals plus today/this-month windows,
// both relative to the given UTC instant.
func (s *ReportService) Stats(now time.Time) (domain.Stats, error) {
	now = now.UTC()
	var st domain.Stats
	var err error

	if st.TotalUsers, err = s.Users.Count(); err != nil {
		return st, err
	}
	if st.TotalProducts, err = s.Prods.Count(); err != nil {
		return st, err
	}
	if st.TotalPurchases, err = s.Purchases.Count(); err != nil {
		return st, err
	}
	if st.TotalRatings, err = s.Ratings.Count(); err != nil {
		return st, err
	}
	if st.TotalRevenue, err = s.Purchases.RevenueTotal(); err != nil {
		return st, err
	}

	today := now.Format("2006-01-02")
	if st.TodaySales, st.TodayRevenue, err = s.Purchases.SalesOn(today); err != nil {
		return st, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).Format(repos.TimeLayout)
	if st.MonthlySales, st.MonthlyRevenue, err = s.Purchases.SalesSince(monthStart); err != nil {
		return st, err
	}

	top, err := s.Purchases.TopProducts(5)
	if err != nil {
		return st, err
	}
	if top == nil {
		top = []domain.TopProduct{}
	}
	st.TopProducts = top
	return st, nil
}

// SalesReport filters purchases to an inclusive date window (either
// bound may be empty) and rolls them up per calendar day.
func (s *ReportService) SalesReport(startDate, endDate string) (domain.SalesReport, error) {
	start, err := parseBound(startDate, false)
	if err != nil {
		return domain.SalesReport{}, err
	}
	end, err := parseBound(endDate, true)
	if err != nil {
		return domain.SalesReport{}, err
	}

	purchases, err := s.Purchases.ListBetween(start, end)
	if err != nil {
		return domain.SalesReport{}, err
	}
	if purchases == nil {
		purchases = []domain.Purchase{}
	}

	summary := domain.ReportSummary{TotalSales: len(purchases)}
	daily := map[string]domain.DailySales{}
	for _, p := range purchases {
		summary.TotalRevenue += p.TotalPrice
		summary.TotalQuantity += p.Quantity

		day := p.PurchaseDate
		if len(day) > 10 {
			day = day[:10]
		}
		d := daily[day]
		d.Sales++
		d.Revenue += p.TotalPrice
		d.Quantity += p.Quantity
		daily[day] = d
	}
	if summary.TotalSales > 0 {
		summary.AverageOrderValue = summary.TotalRevenue / float64(summary.TotalSales)
	}

	return domain.SalesReport{Purchases: purchases, Summary: summary, DailySales: daily}, nil
}

// parseBound accepts a bare ISO date or a full RFC3339 timestamp. A
// bare end date covers the whole day, keeping the window inclusive.
func parseBound(s string, end bool) (string, error) {
	if s == "" {
		return "", nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		if end {
			t = t.Add(24*time.Hour - time.Millisecond)
		}
		return t.UTC().Format(repos.TimeLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Format(repos.TimeLayout), nil
	}
	return "", domain.Invalid("Invalid date: " + s)
}
