package profile

import (
	"net/http"
	"vivero_server/api/middleware"
	"vivero_server/handling"
	"vivero_server/lib"
	"vivero_server/structs"

	"github.com/MonkyMars/gecho"
)

func (prm *ProfileRoutesManager) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Authentication required"), gecho.Send())
		return
	}

	user, err := prm.profileService.Get(r.Context(), claims.Sub)
	if err != nil {
		handling.HandleServiceError(err, "User not found", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(user),
		gecho.Send(),
	)
}

func (prm *ProfileRoutesManager) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Authentication required"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ProfileUpdateRequest](r)
	if err != nil {
		prm.logger.Warn("Invalid profile body", gecho.Field("error", err))
		handling.HandleBodyError(err, w)
		return
	}

	user, err := prm.profileService.Update(r.Context(), claims.Sub, body)
	if err != nil {
		handling.HandleServiceError(err, "User not found", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Profile updated"),
		gecho.WithData(user),
		gecho.Send(),
	)
}

func (prm *ProfileRoutesManager) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Authentication required"), gecho.Send())
		return
	}

	readiness, err := prm.profileService.Readiness(r.Context(), claims.Sub)
	if err != nil {
		handling.HandleServiceError(err, "User not found", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(readiness),
		gecho.Send(),
	)
}
