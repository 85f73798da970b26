package auth

import (
	"net/http"
	"vivero_server/handling"
	"vivero_server/lib"
	"vivero_server/structs"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.LoginRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		handling.HandleBodyError(err, w)
		return
	}

	user, err := arm.authService.Login(r.Context(), body)
	if err != nil {
		// Same response for unknown account and wrong password
		arm.logger.Debug("Login failed", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid credentials"), gecho.Send())
		return
	}

	token, err := arm.authService.GenerateToken(user)
	if err != nil {
		arm.logger.Error("Failed to generate session token", gecho.Field("error", err), gecho.Field("user_id", user.ID))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to complete login. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Logged in"),
		gecho.WithData(map[string]any{
			"user":  user.Safe(),
			"token": token,
		}),
		gecho.Send(),
	)
}
