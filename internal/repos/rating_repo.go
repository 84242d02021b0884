package repos

import (
	"database/sql"

	"jerkco/internal/domain"

	"github.com/jmoiron/sqlx"
)

type RatingRepo struct{ db *sqlx.DB }

func NewRatingRepo(db *sqlx.DB) *RatingRepo { return &RatingRepo{db: db} }

// Exists reports whether the (user, product) pair already has a rating.
func (r *RatingRepo) Exists(userID, productID int64) (bool, error) {
	var id int64
	err := r.db.Get(&id, `SELECT id FROM ratings WHERE user_id=? AND product_id=?`, userID, productID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Upsert writes the rating for (user, product), overwriting rating and
// review in place when the pair already exists. The UNIQUE constraint
// makes the read-then-write race harmless.
func (r *RatingRepo) Upsert(userID, productID int64, rating int, review string) error {
	_, err := r.db.Exec(`
		INSERT INTO ratings(user_id,product_id,rating,review,created_at)
		VALUES(?,?,?,?,?)
		ON CONFLICT(user_id,product_id) DO UPDATE SET rating=excluded.rating, review=excluded.review
	`, userID, productID, rating, review, nowUTC())
	return err
}

// ListByProduct returns a product's ratings with the rater's username joined.
func (r *RatingRepo) ListByProduct(productID int64) ([]domain.Rating, error) {
	var out []domain.Rating
	err := r.db.Select(&out, `
		SELECT rt.id, rt.user_id, rt.product_id, rt.rating, rt.review, rt.created_at, u.username
		FROM ratings rt
		JOIN users u ON u.id = rt.user_id
		WHERE rt.product_id = ?
		ORDER BY rt.created_at DESC
	`, productID)
	return out, err
}

func (r *RatingRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM ratings`)
	return n, err
}
