package entity

// LockSet is the per-event advisory record of seats presumed reserved by
// this client. It is a UX cache, not a mutual-exclusion mechanism: truth
// about seat availability lives on the backend. Version supports
// compare-and-swap writes so concurrent local writers cannot lose updates.
type LockSet struct {
	EventID string `json:"eventId"`
	Version uint64 `json:"version"`
	Seats   []Seat `json:"seats"`
}

// Contains reports whether the seat is advisory-locked.
func (l LockSet) Contains(seat Seat) bool {
	return ContainsSeat(l.Seats, seat)
}

// Merge returns a copy of the set with the given seats added, skipping
// duplicates and preserving order.
func (l LockSet) Merge(seats []Seat) LockSet {
	merged := LockSet{
		EventID: l.EventID,
		Version: l.Version,
		Seats:   append([]Seat(nil), l.Seats...),
	}
	for _, seat := range seats {
		if !ContainsSeat(merged.Seats, seat) {
			merged.Seats = append(merged.Seats, seat)
		}
	}
	return merged
}

// Snapshot returns a deep copy for rollback bookkeeping.
func (l LockSet) Snapshot() LockSet {
	return LockSet{
		EventID: l.EventID,
		Version: l.Version,
		Seats:   append([]Seat(nil), l.Seats...),
	}
}
