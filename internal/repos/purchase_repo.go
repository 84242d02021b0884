package repos

import (
	"database/sql"

	"jerkco/internal/domain"

	"github.com/jmoiron/sqlx"
)

type PurchaseRepo struct{ db *sqlx.DB }

func NewPurchaseRepo(db *sqlx.DB) *PurchaseRepo { return &PurchaseRepo{db: db} }

const purchaseSelect = `
  SELECT
    pu.id, pu.user_id, pu.product_id, pu.quantity, pu.size, pu.total_price,
    pu.purchase_date, pu.status,
    p.name AS product_name, p.price AS product_price, u.username
  FROM purchases pu
  JOIN products p ON p.id = pu.product_id
  JOIN users u ON u.id = pu.user_id`

// Create decrements stock and records the purchase in one transaction.
// The guarded UPDATE is what prevents overselling: if stock < quantity
// no row changes and the transaction rolls back.
func (r *PurchaseRepo) Create(userID, productID int64, quantity int, size string) (domain.Purchase, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return domain.Purchase{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var price float64
	if err := tx.Get(&price, `SELECT price FROM products WHERE id = ?`, productID); err != nil {
		if err == sql.ErrNoRows {
			return domain.Purchase{}, domain.NotFound("product")
		}
		return domain.Purchase{}, err
	}

	res, err := tx.Exec(`
		UPDATE products SET stock = stock - ?, updated_at = ?
		WHERE id = ? AND stock >= ?
	`, quantity, nowUTC(), productID, quantity)
	if err != nil {
		return domain.Purchase{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Purchase{}, domain.Invalid("Insufficient stock")
	}

	// total_price is frozen here; later price changes must never
	// retroactively alter past purchases.
	total := price * float64(quantity)
	ins, err := tx.Exec(`
		INSERT INTO purchases(user_id,product_id,quantity,size,total_price,purchase_date,status)
		VALUES(?,?,?,?,?,?,'completed')
	`, userID, productID, quantity, size, total, nowUTC())
	if err != nil {
		return domain.Purchase{}, err
	}
	id, err := ins.LastInsertId()
	if err != nil {
		return domain.Purchase{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Purchase{}, err
	}
	return r.Get(id)
}

func (r *PurchaseRepo) Get(id int64) (domain.Purchase, error) {
	var p domain.Purchase
	if err := r.db.Get(&p, purchaseSelect+` WHERE pu.id = ?`, id); err != nil {
		if err == sql.ErrNoRows {
			return domain.Purchase{}, domain.NotFound("purchase")
		}
		return domain.Purchase{}, err
	}
	return p, nil
}

// ListByUser returns a user's purchase history, newest first.
func (r *PurchaseRepo) ListByUser(userID int64) ([]domain.Purchase, error) {
	var out []domain.Purchase
	err := r.db.Select(&out, purchaseSelect+`
		WHERE pu.user_id = ?
		ORDER BY pu.purchase_date DESC, pu.id DESC
	`, userID)
	return out, err
}

// ListPage returns one page of all purchases, newest first, plus the total count.
func (r *PurchaseRepo) ListPage(limit, offset int) ([]domain.Purchase, int, error) {
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM purchases`); err != nil {
		return nil, 0, err
	}
	var out []domain.Purchase
	err := r.db.Select(&out, purchaseSelect+`
		ORDER BY pu.purchase_date DESC, pu.id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	return out, total, err
}

// ListBetween returns purchases inside an inclusive window, newest first.
// Empty bounds leave that side open.
func (r *PurchaseRepo) ListBetween(start, end string) ([]domain.Purchase, error) {
	cond := ``
	args := []any{}
	if start != "" {
		cond += ` AND pu.purchase_date >= ?`
		args = append(args, start)
	}
	if end != "" {
		cond += ` AND pu.purchase_date <= ?`
		args = append(args, end)
	}
	var out []domain.Purchase
	err := r.db.Select(&out, purchaseSelect+`
		WHERE 1=1`+cond+`
		ORDER BY pu.purchase_date DESC, pu.id DESC
	`, args...)
	return out, err
}

func (r *PurchaseRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM purchases`)
	return n, err
}

func (r *PurchaseRepo) RevenueTotal() (float64, error) {
	var v float64
	err := r.db.Get(&v, `SELECT COALESCE(SUM(total_price),0) FROM purchases`)
	return v, err
}

// SalesOn returns the sale count and revenue for one UTC calendar date
// (ISO date string, e.g. 2026-08-28).
func (r *PurchaseRepo) SalesOn(day string) (int, float64, error) {
	var row struct {
		N int     `db:"n"`
		V float64 `db:"v"`
	}
	err := r.db.Get(&row, `
		SELECT COUNT(*) AS n, COALESCE(SUM(total_price),0) AS v
		FROM purchases WHERE substr(purchase_date,1,10) = ?
	`, day)
	return row.N, row.V, err
}

// SalesSince returns the sale count and revenue for purchases on/after ts.
func (r *PurchaseRepo) SalesSince(ts string) (int, float64, error) {
	var row struct {
		N int     `db:"n"`
		V float64 `db:"v"`
	}
	err := r.db.Get(&row, `
		SELECT COUNT(*) AS n, COALESCE(SUM(total_price),0) AS v
		FROM purchases WHERE purchase_date >= ?
	`, ts)
	return row.N, row.V, err
}

// TopProducts ranks products by total quantity sold, non-increasing.
func (r *PurchaseRepo) TopProducts(limit int) ([]domain.TopProduct, error) {
	var out []domain.TopProduct
	err := r.db.Select(&out, `
		SELECT p.name, SUM(pu.quantity) AS total_sold, SUM(pu.total_price) AS total_revenue
		FROM purchases pu
		JOIN products p ON p.id = pu.product_id
		GROUP BY p.id
		ORDER BY total_sold DESC
		LIMIT ?
	`, limit)
	return out, err
}
