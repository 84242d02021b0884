package services

import (
	"jerkco/internal/domain"
	"jerkco/internal/repos"
	"jerkco/internal/validate"
)

type CatalogService struct {
	Prods   *repos.ProductRepo
	Ratings *repos.RatingRepo
}

func NewCatalogService(prods *repos.ProductRepo, ratings *repos.RatingRepo) *CatalogService {
	return &CatalogService{Prods: prods, Ratings: ratings}
}

// CatalogQuery is the raw, pre-normalization query from the HTTP layer.
type CatalogQuery struct {
	Category  string
	Brand     string
	Color     string
	Size      string
	Search    string
	MinPrice  *float64
	MaxPrice  *float64
	SortBy    string
	SortOrder string
	Page      int
	PerPage   int
}

type CatalogPage struct {
	Products    []domain.Product `json:"products"`
	Total       int              `json:"total"`
	Pages       int              `json:"pages"`
	CurrentPage int              `json:"current_page"`
	PerPage     int              `json:"per_page"`
}

// List runs the filtered, sorted, paginated catalog query. A page past
// the end yields an empty slice, not an error.
func (s *CatalogService) List(q CatalogQuery) (CatalogPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = 10
	}

	f := repos.CatalogFilter{
		Category: q.Category,
		Brand:    q.Brand,
		Color:    q.Color,
		Size:     q.Size,
		Search:   q.Search,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		SortBy:   validate.SortBy(q.SortBy),
		SortOrd:  validate.SortOrder(q.SortOrder),
		Limit:    q.PerPage,
		Offset:   (q.Page - 1) * q.PerPage,
	}

	products, total, err := s.Prods.List(f)
	if err != nil {
		return CatalogPage{}, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return CatalogPage{
		Products:    products,
		Total:       total,
		Pages:       (total + q.PerPage - 1) / q.PerPage,
		CurrentPage: q.Page,
		PerPage:     q.PerPage,
	}, nil
}

// Get returns a product with its ratings.
func (s *CatalogService) Get(id int64) (domain.Product, []domain.Rating, error) {
	p, err := s.Prods.Get(id)
	if err != nil {
		return domain.Product{}, nil, err
	}
	ratings, err := s.Ratings.ListByProduct(id)
	if err != nil {
		return domain.Product{}, nil, err
	}
	if ratings == nil {
		ratings = []domain.Rating{}
	}
	return p, ratings, nil
}

// ProductInput carries a create payload; Price is a pointer so a
// missing field is distinguishable from zero.
type ProductInput struct {
	Name        string
	Description string
	Price       *float64
	ImageURL    string
	Category    string
	Brand       string
	Color       string
	Sizes       []string
	Stock       int
}

func (s *CatalogService) Create(in ProductInput) (domain.Product, error) {
	if in.Name == "" || in.Price == nil {
		return domain.Product{}, domain.Invalid("Missing required fields: name, price")
	}
	if *in.Price < 0 {
		return domain.Product{}, domain.Invalid("Price must not be negative")
	}
	if in.Stock < 0 {
		return domain.Product{}, domain.Invalid("Stock must not be negative")
	}
	return s.Prods.Create(domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       *in.Price,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
		Brand:       in.Brand,
		Color:       in.Color,
		Sizes:       in.Sizes,
		Stock:       in.Stock,
	})
}

func (s *CatalogService) Update(id int64, patch repos.ProductPatch) (domain.Product, error) {
	if patch.Price != nil && *patch.Price < 0 {
		return domain.Product{}, domain.Invalid("Price must not be negative")
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return domain.Product{}, domain.Invalid("Stock must not be negative")
	}
	return s.Prods.Update(id, patch)
}

func (s *CatalogService) Delete(id int64) error {
	return s.Prods.Delete(id)
}
