package admin

import (
	"net/http"
	"vivero_server/handling"
	"vivero_server/lib"
	"vivero_server/structs"

	"github.com/MonkyMars/gecho"
)

// HandleListProducts handles GET /admin/products with the wider back-office
// page size limit.
func (arm *AdminRoutesManager) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	opts := handling.ParseProductListOptions(r, true)

	result, err := arm.catalogService.ListProducts(r.Context(), opts)
	if err != nil {
		handling.HandleServiceError(err, "Failed to fetch products", arm.logger, w)
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

func (arm *AdminRoutesManager) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.ProductInput](r)
	if err != nil {
		arm.logger.Warn("Invalid product body", gecho.Field("error", err))
		handling.HandleBodyError(err, w)
		return
	}

	product, err := arm.catalogService.CreateProduct(r.Context(), body)
	if err != nil {
		handling.HandleServiceError(err, "Failed to create product", arm.logger, w)
		return
	}

	gecho.Created(w,
		gecho.WithMessage("Product created"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ProductInput](r)
	if err != nil {
		arm.logger.Warn("Invalid product body", gecho.Field("error", err))
		handling.HandleBodyError(err, w)
		return
	}

	product, err := arm.catalogService.UpdateProduct(r.Context(), id, body)
	if err != nil {
		handling.HandleServiceError(err, "Product not found", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product updated"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

// HandleDeleteProduct removes the product row, its wishlist entries and
// images, then deletes the stored image files.
func (arm *AdminRoutesManager) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	imageURLs, err := arm.catalogService.DeleteProduct(r.Context(), id)
	if err != nil {
		handling.HandleServiceError(err, "Product not found", arm.logger, w)
		return
	}

	// Row is gone; file cleanup is best effort
	for _, url := range imageURLs {
		arm.uploadService.DeleteImage(url)
	}

	gecho.Success(w,
		gecho.WithMessage("Product deleted"),
		gecho.Send(),
	)
}

// HandleUploadProductImage handles multipart POST /admin/products/{id}/image
func (arm *AdminRoutesManager) HandleUploadProductImage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	if err := r.ParseMultipartForm(arm.cfg.Upload.MaxSizeBytes); err != nil {
		arm.logger.Warn("Failed to parse multipart form", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid multipart form"), gecho.Send())
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("An image file is required"), gecho.Send())
		return
	}
	defer file.Close()

	url, err := arm.uploadService.SaveImage(file, header)
	if err != nil {
		handling.HandleServiceError(err, "Failed to store image", arm.logger, w)
		return
	}

	image, priorURLs, err := arm.catalogService.ReplaceProductImage(r.Context(), id, url)
	if err != nil {
		// The product row rejected the image; drop the stored file
		arm.uploadService.DeleteImage(url)
		handling.HandleServiceError(err, "Product not found", arm.logger, w)
		return
	}

	// Replaced rows are gone; file cleanup is best effort
	for _, prior := range priorURLs {
		arm.uploadService.DeleteImage(prior)
	}

	gecho.Success(w,
		gecho.WithMessage("Image uploaded"),
		gecho.WithData(map[string]any{
			"image": image,
			"url":   arm.uploadService.PublicURL(image.URL),
		}),
		gecho.Send(),
	)
}
