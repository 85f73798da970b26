package admin

import (
	"vivero_server/api/middleware"
	"vivero_server/services"
	"vivero_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AdminRoutesManager struct {
	logger         *gecho.Logger
	catalogService *services.CatalogService
	orderService   *services.OrderService
	reportService  *services.ReportService
	uploadService  *services.UploadService
	cfg            *structs.Config
	mw             *middleware.Middleware
}

func NewAdminRoutesManager(
	logger *gecho.Logger,
	catalogService *services.CatalogService,
	orderService *services.OrderService,
	reportService *services.ReportService,
	uploadService *services.UploadService,
	cfg *structs.Config,
	mw *middleware.Middleware,
) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger:         logger,
		catalogService: catalogService,
		orderService:   orderService,
		reportService:  reportService,
		uploadService:  uploadService,
		cfg:            cfg,
		mw:             mw,
	}
}

func (arm *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(arm.mw.AdminAuthMiddleware)

		r.Get("/categories", arm.HandleListCategories)
		r.Post("/categories", arm.HandleCreateCategory)
		r.Put("/categories/{id}", arm.HandleUpdateCategory)
		r.Delete("/categories/{id}", arm.HandleDeleteCategory)

		r.Get("/products", arm.HandleListProducts)
		r.Post("/products", arm.HandleCreateProduct)
		r.Put("/products/{id}", arm.HandleUpdateProduct)
		r.Delete("/products/{id}", arm.HandleDeleteProduct)
		r.Post("/products/{id}/image", arm.HandleUploadProductImage)

		r.Get("/orders", arm.HandleListOrders)
		r.Post("/orders", arm.HandleCreateOrder)
		r.Get("/orders/{id}", arm.HandleGetOrder)

		r.Get("/reports/sales", arm.HandleSalesReport)
		r.Get("/reports/top-products", arm.HandleTopProductsReport)
		r.Get("/summary", arm.HandleSummary)
	})
}
