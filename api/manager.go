package api

import (
	"vivero_server/api/admin"
	"vivero_server/api/auth"
	"vivero_server/api/catalog"
	"vivero_server/api/health"
	"vivero_server/api/middleware"
	"vivero_server/api/profile"
	"vivero_server/api/wishlist"
	"vivero_server/database"
	"vivero_server/services"
	"vivero_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	catalogRoutes  *catalog.CatalogRoutesManager
	healthRoutes   *health.HealthRoutesManager
	authRoutes     *auth.AuthRoutesManager
	adminRoutes    *admin.AdminRoutesManager
	profileRoutes  *profile.ProfileRoutesManager
	wishlistRoutes *wishlist.WishlistRoutesManager
}

func NewRouterManager(
	logger *gecho.Logger,
	db *database.DB,
	cfg *structs.Config,
	mw *middleware.Middleware,
	sm *services.ServiceManager,
) *routerManager {
	return &routerManager{
		catalogRoutes:  catalog.NewCatalogRoutesManager(logger, sm.CatalogService),
		healthRoutes:   health.NewHealthRoutesManager(sm.HealthService),
		authRoutes:     auth.NewAuthRoutesManager(logger, sm.AuthService, cfg),
		adminRoutes:    admin.NewAdminRoutesManager(logger, sm.CatalogService, sm.OrderService, sm.ReportService, sm.UploadService, cfg, mw),
		profileRoutes:  profile.NewProfileRoutesManager(logger, sm.ProfileService, mw),
		wishlistRoutes: wishlist.NewWishlistRoutesManager(logger, sm.WishlistService, mw),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.catalogRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.authRoutes.RegisterRoutes(r)
	rm.adminRoutes.RegisterRoutes(r)
	rm.profileRoutes.RegisterRoutes(r)
	rm.wishlistRoutes.RegisterRoutes(r)
}
