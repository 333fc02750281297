package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"eventora-client/internal/data/entity"
	"eventora-client/internal/dto/request"
	"eventora-client/internal/dto/response"
	"eventora-client/internal/gateway"
	"eventora-client/internal/usecase"
	"eventora-client/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	payment     usecase.PaymentService
	reservation usecase.ReservationService
	lifecycle   usecase.LifecycleService
	bookings    gateway.BookingsGateway
	events      gateway.EventsGateway
	log         *zap.Logger
}

func NewBookingHandler(service *usecase.Service, bookings gateway.BookingsGateway, events gateway.EventsGateway, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		payment:     service.Payment,
		reservation: service.Reservation,
		lifecycle:   service.Lifecycle,
		bookings:    bookings,
		events:      events,
		log:         log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (protected). This is the full
// reserve pipeline: validate the card, run the simulated capture, then let
// the orchestrator lock locally and confirm with the backend.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	// Seated events send a selection; general-admission events send a
	// bare ticket count. One of the two must be present.
	if !req.HasQuantity() {
		utils.ResponseBadRequest(w, "Select seats or a number of tickets", nil)
		return
	}

	event, err := h.events.GetEventByID(r.Context(), req.EventID)
	if err != nil {
		h.handleServiceError(w, err, "load event for booking")
		return
	}

	captured, err := h.payment.Submit(r.Context(), req.Payment())
	if err != nil {
		h.handleServiceError(w, err, "capture payment")
		return
	}

	booking, err := h.reservation.Reserve(r.Context(), usecase.ReserveInput{
		Event:   event,
		Seats:   req.Seats(),
		Tickets: req.NumberOfTickets,
		Payment: captured.Details,
	})
	if err != nil {
		h.handleServiceError(w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", response.BookingToConfirmation(booking))
}

// GetMyBookings handles GET /api/bookings/my-bookings?status= (protected)
func (h *BookingHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	views, err := h.lifecycle.ListBookings(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get my bookings")
		return
	}

	status := usecase.FilterStatus(r.URL.Query().Get("status"))
	utils.ResponseSuccess(w, "success", h.lifecycle.Filter(views, status))
}

// GetBookingByID handles GET /api/bookings/{id} (protected)
func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.bookings.GetBookingByID(r.Context(), bookingID)
	if err != nil {
		h.handleServiceError(w, err, "get booking by ID")
		return
	}

	utils.ResponseSuccess(w, "success", response.BookingToView(booking, time.Now()))
}

// ProcessPayment handles POST /api/bookings/payment (protected)
func (h *BookingHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req request.ProcessPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.bookings.ProcessPayment(r.Context(), req.BookingID, entity.PaymentStatus(req.PaymentStatus)); err != nil {
		h.handleServiceError(w, err, "process payment")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// CancelBooking handles PUT /api/bookings/{id}/cancel (protected)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	if err := h.lifecycle.CancelBooking(r.Context(), bookingID); err != nil {
		h.handleServiceError(w, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// handleServiceError maps the reserve pipeline's error taxonomy onto the
// response envelope
func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated), errors.Is(err, gateway.ErrUnauthorized):
		h.log.Warn(operation+" failed - not authenticated",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnauthorized(w, "Please log in to continue")

	case errors.Is(err, usecase.ErrReservationInFlight):
		h.log.Warn(operation+" refused - reservation already in progress",
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrNotCancelable):
		h.log.Warn(operation+" failed - booking not cancelable",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, gateway.ErrNotFound):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, "Booking not found")

	case isPaymentValidationError(err):
		h.log.Warn(operation+" failed - card validation",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		if created, ok := usecase.AsBookingCreateError(err); ok {
			// The backend turned the booking down, most often because the
			// seats were taken first. The user goes back to seat selection.
			h.log.Warn(operation+" rejected by backend",
				zap.String("reason", created.Reason),
				zap.String("operation", operation))
			utils.ResponseConflict(w, created.Reason)
			return
		}

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
		utils.ResponseBadGateway(w, "Booking service is unavailable, please try again")
	}
}

func isPaymentValidationError(err error) bool {
	for _, sentinel := range []error{
		usecase.ErrInvalidCardNumber,
		usecase.ErrInvalidExpiryFormat,
		usecase.ErrExpiredCard,
		usecase.ErrInvalidCVV,
		usecase.ErrMissingCardHolder,
		usecase.ErrEmptySelection,
		usecase.ErrSelectionLimit,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
