package wire

import (
	"eventora-client/internal/adaptor"
	"eventora-client/internal/usecase"
	"eventora-client/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	service *usecase.Service,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require session) ====================
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(middleware.RequireSession(service.Session, log))

		// POST /api/bookings - Run the full reserve pipeline
		r.Post("/", bookingHandler.CreateBooking)

		// GET /api/bookings/my-bookings?status= - Booking history with filter
		r.Get("/my-bookings", bookingHandler.GetMyBookings)

		// POST /api/bookings/payment - Update payment status on a booking
		r.Post("/payment", bookingHandler.ProcessPayment)

		// GET /api/bookings/{id} - Booking details with derived status
		r.Get("/{id}", bookingHandler.GetBookingByID)

		// PUT /api/bookings/{id}/cancel - Cancel an upcoming booking
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
	})
}
