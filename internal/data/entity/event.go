package entity

import "time"

// Event is immutable from the booking flow's perspective except
// AvailableSeats, which only the backend decrements.
type Event struct {
	ID             string  `json:"_id"`
	Title          string  `json:"title"`
	Description    string  `json:"description,omitempty"`
	Category       string  `json:"category,omitempty"`
	Date           string  `json:"date"`
	Time           string  `json:"time,omitempty"`
	Location       string  `json:"location,omitempty"`
	Venue          string  `json:"venue,omitempty"`
	Price          float64 `json:"price"`
	TotalSeats     int     `json:"totalSeats"`
	AvailableSeats int     `json:"availableSeats"`
	ImageURL       string  `json:"imageUrl,omitempty"`
	Source         string  `json:"source,omitempty"`
}

// StartsAt parses the event date (and time when present).
// A zero time is returned for unparseable dates.
func (e *Event) StartsAt() time.Time {
	if e.Date == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.000Z", "2006-01-02"} {
		if t, err := time.Parse(layout, e.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}

// SeatAvailability is the Events service's seat-map payload.
type SeatAvailability struct {
	SeatLayout     SeatLayout `json:"seatLayout"`
	AvailableSeats int        `json:"availableSeats"`
	TotalSeats     int        `json:"totalSeats"`
}

type SeatLayout struct {
	Rows []SeatRow `json:"rows"`
}

type SeatRow struct {
	Row   string      `json:"row"`
	Seats []SeatState `json:"seats"`
}

type SeatState struct {
	SeatNumber int        `json:"seatNumber"`
	Status     SeatStatus `json:"status"`
}
