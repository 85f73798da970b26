package admin

import (
	"net/http"
	"strconv"
	"vivero_server/handling"
	"vivero_server/lib"
	"vivero_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

func parseIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id >= 1
}

func (arm *AdminRoutesManager) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := arm.catalogService.ListCategories(r.Context())
	if err != nil {
		handling.HandleServiceError(err, "Failed to fetch categories", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Categories fetched successfully"),
		gecho.WithData(categories),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CategoryRequest](r)
	if err != nil {
		arm.logger.Warn("Invalid category body", gecho.Field("error", err))
		handling.HandleBodyError(err, w)
		return
	}

	category, err := arm.catalogService.CreateCategory(r.Context(), body)
	if err != nil {
		if lib.IsUniqueViolation(err) {
			gecho.Conflict(w, gecho.WithMessage("A category with that slug already exists"), gecho.Send())
			return
		}
		handling.HandleServiceError(err, "Failed to create category", arm.logger, w)
		return
	}

	gecho.Created(w,
		gecho.WithMessage("Category created"),
		gecho.WithData(category),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) HandleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		gecho.BadRequest(w, gecho.WithMessage("Invalid category id"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CategoryUpdateRequest](r)
	if err != nil {
		arm.logger.Warn("Invalid category body", gecho.Field("error", err))
		handling.HandleBodyError(err, w)
		return
	}

	category, err := arm.catalogService.UpdateCategory(r.Context(), id, body)
	if err != nil {
		if lib.IsUniqueViolation(err) {
			gecho.Conflict(w, gecho.WithMessage("A category with that slug already exists"), gecho.Send())
			return
		}
		handling.HandleServiceError(err, "Category not found", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Category updated"),
		gecho.WithData(category),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) HandleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		gecho.BadRequest(w, gecho.WithMessage("Invalid category id"), gecho.Send())
		return
	}

	if err := arm.catalogService.DeleteCategory(r.Context(), id); err != nil {
		handling.HandleServiceError(err, "Category not found", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Category deleted"),
		gecho.Send(),
	)
}
