package request

import "eventora-client/internal/data/entity"

type SeatRequest struct {
	Row        string `json:"row" validate:"required"`
	SeatNumber int    `json:"seatNumber" validate:"required,min=1"`
}

type PaymentDetailsRequest struct {
	CardNumber string `json:"cardNumber" validate:"required"`
	ExpiryDate string `json:"expiryDate" validate:"required"`
	CVV        string `json:"cvv" validate:"required"`
	CardHolder string `json:"cardHolder"`

	// Legacy field name still sent by older clients.
	CardHolderName string `json:"cardHolderName"`
}

// CreateBookingRequest carries either a seat selection or, for
// general-admission events, a bare ticket count. When seats are present
// they determine the count.
type CreateBookingRequest struct {
	EventID         string                `json:"eventId" validate:"required"`
	NumberOfTickets int                   `json:"numberOfTickets" validate:"omitempty,min=1"`
	SelectedSeats   []SeatRequest         `json:"selectedSeats" validate:"omitempty,dive"`
	PaymentDetails  PaymentDetailsRequest `json:"paymentDetails" validate:"required"`
}

// HasQuantity reports whether the request names any tickets at all.
func (r *CreateBookingRequest) HasQuantity() bool {
	return len(r.SelectedSeats) > 0 || r.NumberOfTickets > 0
}

func (r *CreateBookingRequest) Seats() []entity.Seat {
	seats := make([]entity.Seat, len(r.SelectedSeats))
	for i, s := range r.SelectedSeats {
		seats[i] = entity.Seat{Row: s.Row, SeatNumber: s.SeatNumber}
	}
	return seats
}

func (r *CreateBookingRequest) Payment() entity.PaymentDetails {
	return entity.PaymentDetails{
		CardNumber:     r.PaymentDetails.CardNumber,
		ExpiryDate:     r.PaymentDetails.ExpiryDate,
		CVV:            r.PaymentDetails.CVV,
		CardHolder:     r.PaymentDetails.CardHolder,
		CardHolderName: r.PaymentDetails.CardHolderName,
	}
}

type ProcessPaymentRequest struct {
	BookingID     string `json:"bookingId" validate:"required"`
	PaymentStatus string `json:"paymentStatus" validate:"required,oneof=pending paid"`
}
