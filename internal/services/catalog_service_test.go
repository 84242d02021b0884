package services_test

import (
	"errors"
	"testing"

	"jerkco/internal/domain"
	"jerkco/internal/repos"
	"jerkco/internal/services"
)

func fp(v float64) *float64 { return &v }

func newCatalog(t *testing.T) (*services.CatalogService, *repos.ProductRepo) {
	t.Helper()
	db := memdb(t)
	prodRepo := repos.NewProductRepo(db)
	return services.NewCatalogService(prodRepo, repos.NewRatingRepo(db)), prodRepo
}

func mustCreate(t *testing.T, svc *services.CatalogService, in services.ProductInput) domain.Product {
	t.Helper()
	p, err := svc.Create(in)
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

func TestCatalogCategorySortPaginate(t *testing.T) {
	svc, _ := newCatalog(t)

	// Seed catalog already has one "Kaos" at 75000; add two more.
	mustCreate(t, svc, services.ProductInput{Name: "Kaos Polos Putih", Price: fp(50000), Category: "Kaos"})
	mustCreate(t, svc, services.ProductInput{Name: "Kaos Grafis", Price: fp(90000), Category: "Kaos"})

	page, err := svc.List(services.CatalogQuery{
		Category: "Kaos", SortBy: "price", SortOrder: "asc", Page: 1, PerPage: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Products) != 2 {
		t.Fatalf("want 2 items on page 1, got %d", len(page.Products))
	}
	if page.Total != 3 || page.Pages != 2 {
		t.Fatalf("want total=3 pages=2, got total=%d pages=%d", page.Total, page.Pages)
	}
	for i, p := range page.Products {
		if p.Category != "Kaos" {
			t.Fatalf("item %d has category %q", i, p.Category)
		}
		if i > 0 && page.Products[i-1].Price > p.Price {
			t.Fatalf("prices not non-decreasing: %v then %v", page.Products[i-1].Price, p.Price)
		}
	}

	// Past-the-end page: empty slice, same total, no error.
	page, err = svc.List(services.CatalogQuery{Category: "Kaos", Page: 5, PerPage: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Products) != 0 || page.Total != 3 {
		t.Fatalf("want empty page with total=3, got %d items total=%d", len(page.Products), page.Total)
	}
}

func TestCatalogSizeFilterExactMembership(t *testing.T) {
	svc, _ := newCatalog(t)

	a := mustCreate(t, svc, services.ProductInput{Name: "Slim Tee", Price: fp(100), Category: "tees", Sizes: []string{"XM"}})
	b := mustCreate(t, svc, services.ProductInput{Name: "Basic Tee", Price: fp(100), Category: "tees", Sizes: []string{"M", "L"}})

	page, err := svc.List(services.CatalogQuery{Category: "tees", Size: "M"})
	if err != nil {
		t.Fatal(err)
	}
	// "M" must not match the "XM" label.
	if len(page.Products) != 1 || page.Products[0].ID != b.ID {
		t.Fatalf("size=M: want only %d, got %+v", b.ID, page.Products)
	}

	page, err = svc.List(services.CatalogQuery{Category: "tees", Size: "XM"})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Products) != 1 || page.Products[0].ID != a.ID {
		t.Fatalf("size=XM: want only %d, got %+v", a.ID, page.Products)
	}
}

func TestCatalogSearchAndPriceRange(t *testing.T) {
	svc, _ := newCatalog(t)

	mustCreate(t, svc, services.ProductInput{Name: "Topi Baseball", Price: fp(40000), Category: "Topi"})
	mustCreate(t, svc, services.ProductInput{Name: "Topi Bucket", Price: fp(60000), Category: "Topi"})

	page, err := svc.List(services.CatalogQuery{Search: "Bucket"})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || page.Products[0].Name != "Topi Bucket" {
		t.Fatalf("search: got %+v", page.Products)
	}

	page, err = svc.List(services.CatalogQuery{Category: "Topi", MinPrice: fp(50000), MaxPrice: fp(70000)})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || page.Products[0].Price != 60000 {
		t.Fatalf("price range: got %+v", page.Products)
	}
}

func TestProductCreateValidation(t *testing.T) {
	svc, _ := newCatalog(t)

	var verr domain.ValidationError
	if _, err := svc.Create(services.ProductInput{Price: fp(10)}); !errors.As(err, &verr) {
		t.Fatalf("missing name: want ValidationError, got %v", err)
	}
	if _, err := svc.Create(services.ProductInput{Name: "x"}); !errors.As(err, &verr) {
		t.Fatalf("missing price: want ValidationError, got %v", err)
	}
	if _, err := svc.Create(services.ProductInput{Name: "x", Price: fp(-1)}); !errors.As(err, &verr) {
		t.Fatalf("negative price: want ValidationError, got %v", err)
	}
}

func TestProductUpdatePartial(t *testing.T) {
	svc, _ := newCatalog(t)

	p := mustCreate(t, svc, services.ProductInput{Name: "Sandal Jepit", Price: fp(25000), Category: "Sandal"})

	newPrice := 30000.0
	updated, err := svc.Update(p.ID, repos.ProductPatch{Price: &newPrice})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Price != 30000 {
		t.Fatalf("want price 30000, got %v", updated.Price)
	}
	if updated.Name != "Sandal Jepit" || updated.Category != "Sandal" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}

	var nferr domain.NotFoundError
	if _, err := svc.Update(99999, repos.ProductPatch{Price: &newPrice}); !errors.As(err, &nferr) {
		t.Fatalf("want NotFoundError, got %v", err)
	}
}

func TestProductDeleteCascades(t *testing.T) {
	db := memdb(t)
	prodRepo := repos.NewProductRepo(db)
	svc := services.NewCatalogService(prodRepo, repos.NewRatingRepo(db))

	p := mustCreate(t, svc, services.ProductInput{Name: "Short Lived", Price: fp(10), Stock: 5})

	// Attach a rating and a purchase (seeded user id 2).
	if err := repos.NewRatingRepo(db).Upsert(2, p.ID, 4, "ok"); err != nil {
		t.Fatal(err)
	}
	if _, err := repos.NewPurchaseRepo(db).Create(2, p.ID, 1, "M"); err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(p.ID); err != nil {
		t.Fatal(err)
	}

	var ratings, purchases int
	if err := db.Get(&ratings, `SELECT COUNT(*) FROM ratings WHERE product_id=?`, p.ID); err != nil {
		t.Fatal(err)
	}
	if err := db.Get(&purchases, `SELECT COUNT(*) FROM purchases WHERE product_id=?`, p.ID); err != nil {
		t.Fatal(err)
	}
	if ratings != 0 || purchases != 0 {
		t.Fatalf("cascade failed: ratings=%d purchases=%d", ratings, purchases)
	}

	var nferr domain.NotFoundError
	if err := svc.Delete(p.ID); !errors.As(err, &nferr) {
		t.Fatalf("second delete: want NotFoundError, got %v", err)
	}
}
