package services

import (
	"database/sql"

	"jerkco/internal/domain"
	"jerkco/internal/repos"
	"jerkco/internal/validate"
)

type CommerceService struct {
	Users     *repos.UserRepo
	Prods     *repos.ProductRepo
	Ratings   *repos.RatingRepo
	Purchases *repos.PurchaseRepo
}

func NewCommerceService(users *repos.UserRepo, prods *repos.ProductRepo, ratings *repos.RatingRepo, purchases *repos.PurchaseRepo) *CommerceService {
	return &CommerceService{Users: users, Prods: prods, Ratings: ratings, Purchases: purchases}
}

// Rate upserts the user's rating for a product. The returned flag says
// whether an existing rating was overwritten.
func (s *CommerceService) Rate(productID, userID int64, rating int, review string) (bool, error) {
	if !validate.RatingValue(rating) {
		return false, domain.Invalid("Rating must be between 1 and 5")
	}
	if _, err := s.Prods.Get(productID); err != nil {
		return false, err
	}
	if _, err := s.Users.ByID(userID); err != nil {
		if err == sql.ErrNoRows {
			return false, domain.NotFound("user")
		}
		return false, err
	}

	existed, err := s.Ratings.Exists(userID, productID)
	if err != nil {
		return false, err
	}
	if err := s.Ratings.Upsert(userID, productID, rating, review); err != nil {
		return false, err
	}
	return existed, nil
}

// Buy creates a purchase, snapshotting total_price and decrementing
// stock atomically.
func (s *CommerceService) Buy(userID, productID int64, quantity int, size string) (domain.Purchase, error) {
	if quantity < 1 {
		return domain.Purchase{}, domain.Invalid("Quantity must be positive")
	}
	if _, err := s.Users.ByID(userID); err != nil {
		if err == sql.ErrNoRows {
			return domain.Purchase{}, domain.NotFound("user")
		}
		return domain.Purchase{}, err
	}
	return s.Purchases.Create(userID, productID, quantity, size)
}

// History returns the user's purchases, newest first.
func (s *CommerceService) History(userID int64) ([]domain.Purchase, error) {
	out, err := s.Purchases.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Purchase{}
	}
	return out, nil
}
