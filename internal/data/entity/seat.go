package entity

import "fmt"

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatSelected  SeatStatus = "selected" // by the current user, transient
	SeatLocked    SeatStatus = "locked"   // held pending booking confirmation
	SeatBooked    SeatStatus = "booked"   // confirmed
)

// Seat identifies one seat within an event by row letter and number.
type Seat struct {
	Row        string `json:"row"`
	SeatNumber int    `json:"seatNumber"`
}

// Label renders the UI form of a seat, e.g. "A1".
func (s Seat) Label() string {
	return fmt.Sprintf("%s%d", s.Row, s.SeatNumber)
}

func (s Seat) Equal(other Seat) bool {
	return s.Row == other.Row && s.SeatNumber == other.SeatNumber
}

// SeatLabels renders a seat list the way the confirmation screen shows it.
func SeatLabels(seats []Seat) []string {
	labels := make([]string, len(seats))
	for i, seat := range seats {
		labels[i] = seat.Label()
	}
	return labels
}

func ContainsSeat(seats []Seat, seat Seat) bool {
	for _, s := range seats {
		if s.Equal(seat) {
			return true
		}
	}
	return false
}
