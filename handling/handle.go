package handling

import (
	"errors"
	"net/http"
	"vivero_server/lib"

	"github.com/MonkyMars/gecho"
)

// HandleServiceError translates a service-layer error into the matching
// HTTP response. Anything outside the known taxonomy is logged and
// reported as a 500 without leaking detail.
func HandleServiceError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) {
	var ve *lib.ValidationError
	switch {
	case errors.As(err, &ve):
		gecho.BadRequest(w,
			gecho.WithMessage("Validation failed"),
			gecho.WithData(ve.Errors),
			gecho.Send(),
		)
	case errors.Is(err, lib.ErrInvalidCredentials):
		gecho.BadRequest(w, gecho.WithMessage("Invalid credentials"), gecho.Send())
	case errors.Is(err, lib.ErrUnauthenticated),
		errors.Is(err, lib.ErrInvalidToken),
		errors.Is(err, lib.ErrExpiredToken):
		gecho.Unauthorized(w, gecho.WithMessage("Authentication required"), gecho.Send())
	case errors.Is(err, lib.ErrForbidden):
		gecho.Forbidden(w, gecho.WithMessage("Admin access required"), gecho.Send())
	case errors.Is(err, lib.ErrNotFound):
		gecho.NotFound(w, gecho.WithMessage(msg), gecho.Send())
	case errors.Is(err, lib.ErrInsufficientStock):
		gecho.Conflict(w, gecho.WithMessage(err.Error()), gecho.Send())
	case errors.Is(err, lib.ErrConflict):
		gecho.Conflict(w, gecho.WithMessage(msg), gecho.Send())
	default:
		HandleError(err, msg, logger, w)
	}
}

// HandleError reports an unexpected failure.
func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) {
	logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))

	gecho.InternalServerError(w, gecho.Send())
}

// HandleBodyError reports a malformed or invalid request body.
func HandleBodyError(err error, w http.ResponseWriter) {
	var ve *lib.ValidationError
	if errors.As(err, &ve) {
		gecho.BadRequest(w,
			gecho.WithMessage("Validation failed"),
			gecho.WithData(ve.Errors),
			gecho.Send(),
		)
		return
	}
	gecho.BadRequest(w, gecho.WithMessage("Invalid request body"), gecho.Send())
}
