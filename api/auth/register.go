package auth

import (
	"net/http"
	"vivero_server/handling"
	"vivero_server/lib"
	"vivero_server/structs"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleRegister(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.RegisterRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract and validate request body", gecho.Field("error", err))
		handling.HandleBodyError(err, w)
		return
	}

	user, err := arm.authService.Register(r.Context(), body)
	if err != nil {
		if lib.IsUniqueViolation(err) {
			gecho.Conflict(w, gecho.WithMessage("An account with that email or username already exists"), gecho.Send())
			return
		}
		handling.HandleServiceError(err, "Registration failed", arm.logger, w)
		return
	}

	token, err := arm.authService.GenerateToken(user)
	if err != nil {
		arm.logger.Error("Failed to generate session token", gecho.Field("error", err), gecho.Field("user_id", user.ID))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to complete registration. Please try again"), gecho.Send())
		return
	}

	gecho.Created(w,
		gecho.WithMessage("User registered"),
		gecho.WithData(map[string]any{
			"user":  user.Safe(),
			"token": token,
		}),
		gecho.Send(),
	)
}
