package catalog

import (
	"net/http"
	"strconv"
	"vivero_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// FetchCategories handles GET /categories
func (crm *CatalogRoutesManager) FetchCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := crm.catalogService.ListCategories(r.Context())
	if err != nil {
		handling.HandleServiceError(err, "Failed to fetch categories", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(categories),
		gecho.Send(),
	)
}

// FetchProducts handles GET /products with filtering, pagination, and sorting
func (crm *CatalogRoutesManager) FetchProducts(w http.ResponseWriter, r *http.Request) {
	opts := handling.ParseProductListOptions(r, false)

	crm.logger.Debug("Fetching products",
		gecho.Field("page", opts.Page),
		gecho.Field("page_size", opts.PageSize),
		gecho.Field("sort", opts.SortKey),
	)

	result, err := crm.catalogService.ListProducts(r.Context(), opts)
	if err != nil {
		handling.HandleServiceError(err, "Failed to fetch products", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products":   result.Products,
			"pagination": result.Pagination,
			"filters":    result.Filters,
		}),
		gecho.Send(),
	)
}

// FetchProductByID handles GET /products/{id}
func (crm *CatalogRoutesManager) FetchProductByID(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id < 1 {
		crm.logger.Warn("Invalid product ID format", gecho.Field("id", idStr))
		gecho.BadRequest(w,
			gecho.WithMessage("Invalid product id"),
			gecho.Send(),
		)
		return
	}

	product, err := crm.catalogService.GetProductByID(r.Context(), id)
	if err != nil {
		handling.HandleServiceError(err, "Product not found", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(product),
		gecho.Send(),
	)
}
