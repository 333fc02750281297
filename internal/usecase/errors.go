package usecase

import (
	"errors"
	"fmt"
)

// Session / selection errors.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrEmptySelection  = errors.New("select at least one seat to continue")
	ErrSelectionLimit  = errors.New("selection exceeds the seats available for this event")
)

// Card validation errors. Messages mirror the payment form's inline copy;
// Validate reports the first failing rule in this order.
var (
	ErrInvalidCardNumber   = errors.New("Enter a valid card number to continue.")
	ErrInvalidExpiryFormat = errors.New("Enter the card expiry date in MM/YY format.")
	ErrExpiredCard         = errors.New("This card appears to be expired.")
	ErrInvalidCVV          = errors.New("Enter the 3 or 4 digit CVV from the back of your card.")
	ErrMissingCardHolder   = errors.New("Add the cardholder name as it appears on the card.")
)

// Reservation / lifecycle errors.
var (
	ErrReservationInFlight = errors.New("a reservation is already in progress")
	ErrNotCancelable       = errors.New("this booking can no longer be cancelled")
	ErrUnknownFailure      = errors.New("booking failed, please try again")
)

// BookingCreateError is the backend's authoritative rejection of a booking
// attempt, e.g. "Seats already booked". The user returns to seat selection.
type BookingCreateError struct {
	Reason string
}

func (e *BookingCreateError) Error() string {
	if e.Reason == "" {
		return "booking was rejected by the backend"
	}
	return fmt.Sprintf("booking failed: %s", e.Reason)
}

// AsBookingCreateError unwraps a BookingCreateError when present.
func AsBookingCreateError(err error) (*BookingCreateError, bool) {
	var bce *BookingCreateError
	if errors.As(err, &bce) {
		return bce, true
	}
	return nil, false
}
