package handlers

import (
	"jerkco/internal/config"
	"jerkco/internal/repos"
	"jerkco/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AuthHandler     *AuthHandler
	ProductHandler  *ProductHandler
	CommerceHandler *CommerceHandler
	AdminHandler    *AdminHandler
	UploadHandler   *UploadHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	userRepo := repos.NewUserRepo(db)
	prodRepo := repos.NewProductRepo(db)
	ratingRepo := repos.NewRatingRepo(db)
	purchaseRepo := repos.NewPurchaseRepo(db)

	authSvc := services.NewAuthService(userRepo)
	catalogSvc := services.NewCatalogService(prodRepo, ratingRepo)
	commerceSvc := services.NewCommerceService(userRepo, prodRepo, ratingRepo, purchaseRepo)
	reportSvc := services.NewReportService(userRepo, prodRepo, ratingRepo, purchaseRepo)

	return &Deps{
		AuthHandler:     &AuthHandler{Auth: authSvc},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		CommerceHandler: &CommerceHandler{Commerce: commerceSvc},
		AdminHandler:    &AdminHandler{Users: userRepo, Purchases: purchaseRepo, Reports: reportSvc},
		UploadHandler:   &UploadHandler{Dir: cfg.UploadDir},
	}
}
