package profile

import (
	"vivero_server/api/middleware"
	"vivero_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ProfileRoutesManager struct {
	logger         *gecho.Logger
	profileService *services.ProfileService
	mw             *middleware.Middleware
}

func NewProfileRoutesManager(
	logger *gecho.Logger,
	profileService *services.ProfileService,
	mw *middleware.Middleware,
) *ProfileRoutesManager {
	return &ProfileRoutesManager{
		logger:         logger,
		profileService: profileService,
		mw:             mw,
	}
}

func (prm *ProfileRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/me", func(r chi.Router) {
		r.Use(prm.mw.UserAuthMiddleware)
		r.Get("/", prm.HandleGetProfile)
		r.Put("/", prm.HandleUpdateProfile)
		r.Get("/ready", prm.HandleReadiness)
	})
}
