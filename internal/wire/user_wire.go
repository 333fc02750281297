package wire

import (
	"eventora-client/internal/adaptor"
	"eventora-client/internal/usecase"
	"eventora-client/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	service *usecase.Service,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require session) ====================
	r.Route("/api/users", func(r chi.Router) {
		r.Use(middleware.RequireSession(service.Session, log))

		r.Get("/profile", userHandler.GetProfile)
		r.Put("/profile", userHandler.UpdateProfile)
		r.Get("/dashboard", userHandler.GetDashboard)
		r.Get("/export", userHandler.ExportData)
		r.Patch("/account/deactivate", userHandler.DeactivateAccount)
		r.Delete("/account", userHandler.DeleteAccount)
	})
}
