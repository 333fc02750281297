package gateway

import (
	"context"

	"eventora-client/internal/data/entity"

	"go.uber.org/zap"
)

// CreateBookingInput is the wire shape of the booking-creation call.
type CreateBookingInput struct {
	EventID         string                `json:"eventId"`
	NumberOfTickets int                   `json:"numberOfTickets"`
	SelectedSeats   []entity.Seat         `json:"selectedSeats"`
	PaymentMethod   string                `json:"paymentMethod"`
	PaymentDetails  entity.PaymentDetails `json:"paymentDetails"`
}

// BookingsGateway is the client side of the Bookings service contract.
// CreateBooking is the sole arbiter of whether seats were actually
// available; its rejection is the authoritative "seat taken" signal.
type BookingsGateway interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*entity.Booking, error)
	ProcessPayment(ctx context.Context, bookingID string, status entity.PaymentStatus) error
	GetMyBookings(ctx context.Context) ([]entity.Booking, error)
	GetBookingByID(ctx context.Context, id string) (*entity.Booking, error)
	CancelBooking(ctx context.Context, id string) error
}

type bookingsGateway struct {
	api *apiClient
	log *zap.Logger
}

func NewBookingsGateway(api *apiClient, log *zap.Logger) BookingsGateway {
	return &bookingsGateway{
		api: api,
		log: log.With(zap.String("gateway", "bookings")),
	}
}

func (g *bookingsGateway) CreateBooking(ctx context.Context, input CreateBookingInput) (*entity.Booking, error) {
	var booking entity.Booking
	if err := g.api.post(ctx, "/bookings", input, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (g *bookingsGateway) ProcessPayment(ctx context.Context, bookingID string, status entity.PaymentStatus) error {
	body := map[string]any{
		"bookingId": bookingID,
		"paymentDetails": map[string]any{
			"paymentStatus": status,
		},
	}
	return g.api.post(ctx, "/bookings/payment", body, nil)
}

func (g *bookingsGateway) GetMyBookings(ctx context.Context) ([]entity.Booking, error) {
	var bookings []entity.Booking
	if err := g.api.get(ctx, "/bookings/my-bookings", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (g *bookingsGateway) GetBookingByID(ctx context.Context, id string) (*entity.Booking, error) {
	var booking entity.Booking
	if err := g.api.get(ctx, "/bookings/"+id, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (g *bookingsGateway) CancelBooking(ctx context.Context, id string) error {
	return g.api.put(ctx, "/bookings/"+id+"/cancel", nil, nil)
}
