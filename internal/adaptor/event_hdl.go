package adaptor

import (
	"errors"
	"net/http"

	"eventora-client/internal/gateway"
	"eventora-client/internal/usecase"
	"eventora-client/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type EventHandler struct {
	events    gateway.EventsGateway
	selection usecase.SeatSelectionService
	log       *zap.Logger
}

func NewEventHandler(events gateway.EventsGateway, selection usecase.SeatSelectionService, log *zap.Logger) *EventHandler {
	return &EventHandler{
		events:    events,
		selection: selection,
		log:       log.With(zap.String("handler", "event")),
	}
}

// GetAllEvents handles GET /api/events (public)
func (h *EventHandler) GetAllEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.GetAllEvents(r.Context(), r.URL.Query())
	if err != nil {
		h.handleServiceError(w, err, "get all events")
		return
	}

	utils.ResponseSuccess(w, "success", events)
}

// GetUpcomingEvents handles GET /api/events/upcoming (public)
func (h *EventHandler) GetUpcomingEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.GetUpcomingEvents(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get upcoming events")
		return
	}

	utils.ResponseSuccess(w, "success", events)
}

// GetFeaturedEvents handles GET /api/events/featured (public)
func (h *EventHandler) GetFeaturedEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.GetFeaturedEvents(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get featured events")
		return
	}

	utils.ResponseSuccess(w, "success", events)
}

// GetEventsByCategory handles GET /api/events/category/{category} (public)
func (h *EventHandler) GetEventsByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if category == "" {
		utils.ResponseBadRequest(w, "Category is required", nil)
		return
	}

	events, err := h.events.GetEventsByCategory(r.Context(), category)
	if err != nil {
		h.handleServiceError(w, err, "get events by category")
		return
	}

	utils.ResponseSuccess(w, "success", events)
}

// GetLocations handles GET /api/events/locations (public)
func (h *EventHandler) GetLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.events.GetLocations(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get locations")
		return
	}

	utils.ResponseSuccess(w, "success", locations)
}

// SyncLiveEvents handles GET /api/events/live/sync (public)
func (h *EventHandler) SyncLiveEvents(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	limit := utils.ParseInt(r.URL.Query().Get("limit"), 0)

	if err := h.events.SyncLiveEvents(r.Context(), city, limit); err != nil {
		h.handleServiceError(w, err, "sync live events")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// GetEventByID handles GET /api/events/{id} (public)
func (h *EventHandler) GetEventByID(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	event, err := h.events.GetEventByID(r.Context(), eventID)
	if err != nil {
		h.handleServiceError(w, err, "get event by ID")
		return
	}

	utils.ResponseSuccess(w, "success", event)
}

// GetSeatAvailability handles GET /api/events/{id}/seats (public). The
// seat map comes back with this client's advisory locks overlaid, so a
// seat submitted moments ago is not re-offered while the backend call is
// still settling.
func (h *EventHandler) GetSeatAvailability(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	availability, err := h.selection.AvailabilityWithLocks(r.Context(), eventID)
	if err != nil {
		h.handleServiceError(w, err, "get seat availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

// handleServiceError maps event lookup failures onto the response envelope
func (h *EventHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, gateway.ErrNotFound):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, "Event not found")

	default:
		if apiErr, ok := gateway.AsAPIError(err); ok {
			h.log.Warn(operation+" rejected by backend",
				zap.Error(err),
				zap.String("operation", operation))
			utils.ResponseBadRequest(w, apiErr.Message, nil)
			return
		}

		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadGateway(w, "Event service is unavailable, please try again")
	}
}
