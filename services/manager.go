package services

import (
	"vivero_server/database"
	"vivero_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	AuthService     *AuthService
	CacheService    *CacheService
	HealthService   *HealthService
	CatalogService  *CatalogService
	OrderService    *OrderService
	ReportService   *ReportService
	WishlistService *WishlistService
	ProfileService  *ProfileService
	UploadService   *UploadService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	cacheService := NewCacheService(logger, cfg)
	authService := NewAuthService(cfg, logger, db)
	healthService := NewHealthService(logger, db, cacheService)
	catalogService := NewCatalogService(logger, db, cacheService)
	orderService := NewOrderService(logger, cfg, db, catalogService)
	reportService := NewReportService(logger, db)
	wishlistService := NewWishlistService(logger, db)
	profileService := NewProfileService(logger, db)
	uploadService := NewUploadService(logger, cfg)

	return &ServiceManager{
		AuthService:     authService,
		CacheService:    cacheService,
		HealthService:   healthService,
		CatalogService:  catalogService,
		OrderService:    orderService,
		ReportService:   reportService,
		WishlistService: wishlistService,
		ProfileService:  profileService,
		UploadService:   uploadService,
	}
}
