package response

import (
	"fmt"
	"strconv"
	"time"

	"eventora-client/internal/data/entity"
)

// BookingView is a booking decorated with the display classification every
// dashboard widget shares. The derivation happens in exactly one place
// (entity.DeriveStatus); views only carry the result.
type BookingView struct {
	Booking       entity.Booking       `json:"booking"`
	DerivedStatus entity.DerivedStatus `json:"derivedStatus"`
	IsCancelable  bool                 `json:"isCancelable"`
	SeatLabels    []string             `json:"seatLabels,omitempty"`
}

func BookingToView(b *entity.Booking, now time.Time) BookingView {
	return BookingView{
		Booking:       *b,
		DerivedStatus: entity.DeriveStatus(b, now),
		IsCancelable:  entity.IsCancelable(b, now),
		SeatLabels:    entity.SeatLabels(b.SelectedSeats),
	}
}

// ConfirmationView is what the confirmation screen renders after a
// successful reservation.
type ConfirmationView struct {
	Booking        entity.Booking `json:"booking"`
	SeatLabels     []string       `json:"seatLabels,omitempty"`
	TotalPaidLabel string         `json:"totalPaidLabel"`
}

func BookingToConfirmation(b *entity.Booking) ConfirmationView {
	return ConfirmationView{
		Booking:        *b,
		SeatLabels:     entity.SeatLabels(b.SelectedSeats),
		TotalPaidLabel: fmt.Sprintf("Total Paid: ₹%s", strconv.FormatFloat(b.TotalPrice, 'f', -1, 64)),
	}
}
