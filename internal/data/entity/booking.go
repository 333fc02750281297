package entity

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// DerivedStatus is the display classification of a booking. It is computed
// in exactly one place (DeriveStatus) so every view agrees on it.
type DerivedStatus string

const (
	StatusUpcoming  DerivedStatus = "upcoming"
	StatusCompleted DerivedStatus = "completed"
	StatusCancelled DerivedStatus = "cancelled"
)

// Booking is the durable record of a ticket purchase. It is created by the
// backend and never deleted client-side; the only client-initiated mutation
// is a cancel.
type Booking struct {
	ID               string        `json:"_id"`
	Event            *Event        `json:"event,omitempty"`
	EventID          string        `json:"eventId,omitempty"`
	NumberOfTickets  int           `json:"numberOfTickets"`
	SelectedSeats    []Seat        `json:"selectedSeats,omitempty"`
	TotalPrice       float64       `json:"totalPrice"`
	Status           BookingStatus `json:"status"`
	PaymentStatus    PaymentStatus `json:"paymentStatus,omitempty"`
	BookingReference string        `json:"bookingReference,omitempty"`
	CreatedAt        time.Time     `json:"createdAt,omitempty"`
}

// EventStartsAt returns the start time of the booked event, zero when the
// event reference was not populated by the backend.
func (b *Booking) EventStartsAt() time.Time {
	if b.Event == nil {
		return time.Time{}
	}
	return b.Event.StartsAt()
}

// DeriveStatus classifies a booking for display. Cancellation wins over
// date comparison; a confirmed booking for a future event is upcoming,
// anything else already happened.
func DeriveStatus(b *Booking, now time.Time) DerivedStatus {
	if b.Status == BookingStatusCancelled {
		return StatusCancelled
	}
	if b.Status == BookingStatusConfirmed && !b.EventStartsAt().Before(now) {
		return StatusUpcoming
	}
	return StatusCompleted
}

// IsUpcoming reports whether the booking is confirmed for a future event.
func IsUpcoming(b *Booking, now time.Time) bool {
	return DeriveStatus(b, now) == StatusUpcoming
}

// IsCancelable: only upcoming bookings may be cancelled.
func IsCancelable(b *Booking, now time.Time) bool {
	return IsUpcoming(b, now)
}
