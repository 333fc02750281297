// internal/wire/wire.go
package wire

import (
	"net/http"

	"eventora-client/internal/adaptor"
	"eventora-client/internal/gateway"
	"eventora-client/internal/usecase"
	"eventora-client/pkg/middleware"
	"eventora-client/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface
type App struct {
	Router *chi.Mux
}

// Wiring builds handlers on top of the services and mounts all routes
func Wiring(service *usecase.Service, gw *gateway.Gateway, config *utils.Config, logger *zap.Logger) *App {
	handler := adaptor.NewHandler(service, gw, logger)

	router := setupRouter(handler, service, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the Chi router
func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, logger)
	wireEvent(r, handler.Event, logger)
	wireBooking(r, handler.Booking, service, logger)
	wireUser(r, handler.User, service, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
