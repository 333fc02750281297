package wire

import (
	"eventora-client/internal/adaptor"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireEvent(
	r chi.Router,
	eventHandler *adaptor.EventHandler,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Browsing and seat maps never require a session; only booking does.
	r.Route("/api/events", func(r chi.Router) {
		r.Get("/", eventHandler.GetAllEvents)
		r.Get("/upcoming", eventHandler.GetUpcomingEvents)
		r.Get("/featured", eventHandler.GetFeaturedEvents)
		r.Get("/locations", eventHandler.GetLocations)
		r.Get("/live/sync", eventHandler.SyncLiveEvents)
		r.Get("/category/{category}", eventHandler.GetEventsByCategory)
		r.Get("/{id}", eventHandler.GetEventByID)
		r.Get("/{id}/seats", eventHandler.GetSeatAvailability)
	})
}
