package wishlist

import (
	"net/http"
	"strconv"
	"vivero_server/api/middleware"
	"vivero_server/handling"
	"vivero_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

func (wrm *WishlistRoutesManager) claimsAndProduct(w http.ResponseWriter, r *http.Request) (*structs.AuthClaims, int64, bool) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Authentication required"), gecho.Send())
		return nil, 0, false
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil || productID < 1 {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return nil, 0, false
	}

	return claims, productID, true
}

func (wrm *WishlistRoutesManager) HandleList(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Authentication required"), gecho.Send())
		return
	}

	products, err := wrm.wishlistService.List(r.Context(), claims.Sub)
	if err != nil {
		handling.HandleServiceError(err, "Failed to fetch wishlist", wrm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(products),
		gecho.Send(),
	)
}

func (wrm *WishlistRoutesManager) HandleAdd(w http.ResponseWriter, r *http.Request) {
	claims, productID, ok := wrm.claimsAndProduct(w, r)
	if !ok {
		return
	}

	result, err := wrm.wishlistService.Add(r.Context(), claims.Sub, productID)
	if err != nil {
		handling.HandleServiceError(err, "Product not found", wrm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.Send(),
	)
}

func (wrm *WishlistRoutesManager) HandleRemove(w http.ResponseWriter, r *http.Request) {
	claims, productID, ok := wrm.claimsAndProduct(w, r)
	if !ok {
		return
	}

	result, err := wrm.wishlistService.Remove(r.Context(), claims.Sub, productID)
	if err != nil {
		handling.HandleServiceError(err, "Failed to update wishlist", wrm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.Send(),
	)
}
