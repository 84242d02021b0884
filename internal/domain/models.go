package domain

import "math"

type Product struct {
	ID          int64    `db:"id" json:"id"`
	Name        string   `db:"name" json:"name"`
	Description string   `db:"description" json:"description"`
	Price       float64  `db:"price" json:"price"`
	ImageURL    string   `db:"image_url" json:"image_url"`
	Category    string   `db:"category" json:"category"`
	Brand       string   `db:"brand" json:"brand"`
	Color       string   `db:"color" json:"color"`
	SizesJSON   string   `db:"sizes_json" json:"-"`
	Sizes       []string `db:"-" json:"sizes"`
	Stock       int      `db:"stock" json:"stock"`
	AvgRating   float64  `db:"avg_rating" json:"average_rating"`
	RatingCount int      `db:"rating_count" json:"rating_count"`
	CreatedAt   string   `db:"created_at" json:"created_at"`
	UpdatedAt   string   `db:"updated_at" json:"updated_at"`
}

type Rating struct {
	ID        int64  `db:"id" json:"id"`
	UserID    int64  `db:"user_id" json:"user_id"`
	ProductID int64  `db:"product_id" json:"product_id"`
	Rating    int    `db:"rating" json:"rating"`
	Review    string `db:"review" json:"review"`
	CreatedAt string `db:"created_at" json:"created_at"`
	Username  string `db:"username" json:"username"`
}

type Purchase struct {
	ID           int64   `db:"id" json:"id"`
	UserID       int64   `db:"user_id" json:"user_id"`
	ProductID    int64   `db:"product_id" json:"product_id"`
	Quantity     int     `db:"quantity" json:"quantity"`
	Size         string  `db:"size" json:"size"`
	TotalPrice   float64 `db:"total_price" json:"total_price"`
	PurchaseDate string  `db:"purchase_date" json:"purchase_date"`
	Status       string  `db:"status" json:"status"`
	ProductName  string  `db:"product_name" json:"product_name"`
	ProductPrice float64 `db:"product_price" json:"product_price"`
	Username     string  `db:"username" json:"username"`
}

type TopProduct struct {
	Name         string  `db:"name" json:"name"`
	TotalSold    int     `db:"total_sold" json:"total_sold"`
	TotalRevenue float64 `db:"total_revenue" json:"total_revenue"`
}

type Stats struct {
	TotalUsers     int          `json:"total_users"`
	TotalProducts  int          `json:"total_products"`
	TotalPurchases int          `json:"total_purchases"`
	TotalRatings   int          `json:"total_ratings"`
	TotalRevenue   float64      `json:"total_revenue"`
	TodaySales     int          `json:"today_sales"`
	TodayRevenue   float64      `json:"today_revenue"`
	MonthlySales   int          `json:"monthly_sales"`
	MonthlyRevenue float64      `json:"monthly_revenue"`
	TopProducts    []TopProduct `json:"top_products"`
}

type DailySales struct {
	Sales    int     `json:"sales"`
	Revenue  float64 `json:"revenue"`
	Quantity int     `json:"quantity"`
}

type ReportSummary struct {
	TotalSales        int     `json:"total_sales"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalQuantity     int     `json:"total_quantity"`
	AverageOrderValue float64 `json:"average_order_value"`
}

type SalesReport struct {
	Purchases  []Purchase            `json:"purchases"`
	Summary    ReportSummary         `json:"summary"`
	DailySales map[string]DailySales `json:"daily_sales"`
}

// Round2 rounds derived money/rating values to two decimals for output.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
