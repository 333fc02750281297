package usecase

import (
	"context"
	"fmt"
	"sync"

	"eventora-client/internal/data/entity"
	"eventora-client/internal/data/store"
	"eventora-client/internal/gateway"

	"go.uber.org/zap"
)

// SelectionState is the lifecycle of one seat-selection session.
type SelectionState string

const (
	SelectionLoading   SelectionState = "loading"
	SelectionReady     SelectionState = "ready"
	SelectionSelecting SelectionState = "selecting"
	SelectionSubmitted SelectionState = "submitted"
	SelectionError     SelectionState = "error"
)

// selectionTransitions is the allowed-edge table for the state machine.
// Anything not listed is a programming error, not a user error.
var selectionTransitions = map[SelectionState][]SelectionState{
	SelectionLoading:   {SelectionReady, SelectionError},
	SelectionReady:     {SelectionReady, SelectionSelecting, SelectionLoading},
	SelectionSelecting: {SelectionSelecting, SelectionSubmitted, SelectionReady},
	SelectionSubmitted: {},
	SelectionError:     {SelectionLoading},
}

func canTransition(from, to SelectionState) bool {
	for _, allowed := range selectionTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// SeatSelectionService starts seat-selection sessions and renders seat
// availability with this client's advisory locks overlaid.
type SeatSelectionService interface {
	// Load fetches the event and its seat map and returns a selection
	// session in the ready state, or in the error state (retryable) when a
	// fetch fails.
	Load(ctx context.Context, eventID string) (*SeatSelection, error)

	// AvailabilityWithLocks returns the backend's seat map with seats from
	// the local advisory set shown as locked.
	AvailabilityWithLocks(ctx context.Context, eventID string) (*entity.SeatAvailability, error)
}

type seatSelectionService struct {
	events gateway.EventsGateway
	locks  store.LockStore
	log    *zap.Logger
}

func NewSeatSelectionService(events gateway.EventsGateway, locks store.LockStore, log *zap.Logger) SeatSelectionService {
	return &seatSelectionService{
		events: events,
		locks:  locks,
		log:    log.With(zap.String("service", "seat_selection")),
	}
}

func (s *seatSelectionService) Load(ctx context.Context, eventID string) (*SeatSelection, error) {
	sel := &SeatSelection{
		svc:     s,
		eventID: eventID,
		state:   SelectionLoading,
	}

	if err := sel.load(ctx); err != nil {
		return sel, err
	}

	return sel, nil
}

func (s *seatSelectionService) AvailabilityWithLocks(ctx context.Context, eventID string) (*entity.SeatAvailability, error) {
	availability, err := s.events.GetSeatAvailability(ctx, eventID)
	if err != nil {
		return nil, err
	}

	// Advisory reads are fail-open: a storage problem must never hide the
	// seat map.
	lockSet, _ := s.locks.Read(eventID)
	overlayLocks(availability, lockSet)

	return availability, nil
}

// overlayLocks marks advisory-locked seats so the UI does not re-offer
// seats this client just reserved while the confirmation round-trip is in
// flight. Booked seats stay booked; only available ones are downgraded.
func overlayLocks(availability *entity.SeatAvailability, lockSet entity.LockSet) {
	if len(lockSet.Seats) == 0 {
		return
	}

	for i := range availability.SeatLayout.Rows {
		row := &availability.SeatLayout.Rows[i]
		for j := range row.Seats {
			seat := entity.Seat{Row: row.Row, SeatNumber: row.Seats[j].SeatNumber}
			if row.Seats[j].Status == entity.SeatAvailable && lockSet.Contains(seat) {
				row.Seats[j].Status = entity.SeatLocked
			}
		}
	}
}

// SeatSelection is one user's transient, pre-payment seat picking session.
// It holds no server-side state: nothing is reserved until the
// reservation orchestrator runs.
//
// This is the in-process surface for an embedded UI. The HTTP adaptor is
// stateless by design: it exposes only the lock-overlaid seat map and
// leaves pick/unpick interaction to the browser, so selection sessions
// are driven directly, not over a route.
type SeatSelection struct {
	svc     *seatSelectionService
	eventID string

	mu           sync.Mutex
	state        SelectionState
	event        *entity.Event
	availability *entity.SeatAvailability
	selected     []entity.Seat
	lastErr      error
}

func (sel *SeatSelection) load(ctx context.Context) error {
	sel.mu.Lock()
	defer sel.mu.Unlock()

	event, err := sel.svc.events.GetEventByID(ctx, sel.eventID)
	if err != nil {
		sel.fail(err)
		return fmt.Errorf("load event %s: %w", sel.eventID, err)
	}

	availability, err := sel.svc.events.GetSeatAvailability(ctx, sel.eventID)
	if err != nil {
		sel.fail(err)
		return fmt.Errorf("load seat map for event %s: %w", sel.eventID, err)
	}

	lockSet, _ := sel.svc.locks.Read(sel.eventID)
	overlayLocks(availability, lockSet)

	sel.event = event
	sel.availability = availability
	sel.transition(SelectionReady)
	return nil
}

func (sel *SeatSelection) fail(err error) {
	sel.lastErr = err
	sel.state = SelectionError
}

func (sel *SeatSelection) transition(to SelectionState) {
	if !canTransition(sel.state, to) {
		sel.svc.log.Warn("Illegal selection transition ignored",
			zap.String("from", string(sel.state)),
			zap.String("to", string(to)),
			zap.String("event_id", sel.eventID),
		)
		return
	}
	sel.state = to
}

func (sel *SeatSelection) State() SelectionState {
	sel.mu.Lock()
	defer sel.mu.Unlock()
	return sel.state
}

func (sel *SeatSelection) Event() *entity.Event {
	sel.mu.Lock()
	defer sel.mu.Unlock()
	return sel.event
}

// Selected returns the current selection in pick order.
func (sel *SeatSelection) Selected() []entity.Seat {
	sel.mu.Lock()
	defer sel.mu.Unlock()
	return append([]entity.Seat(nil), sel.selected...)
}

// Retry re-runs the fetch after an error. No-op in any other state.
func (sel *SeatSelection) Retry(ctx context.Context) error {
	sel.mu.Lock()
	if sel.state != SelectionError {
		sel.mu.Unlock()
		return nil
	}
	sel.state = SelectionLoading
	sel.lastErr = nil
	sel.mu.Unlock()

	return sel.load(ctx)
}

// ToggleSeat flips a seat in and out of the selection. Toggling a locked
// or booked seat is a silent no-op. Growing the selection past the event's
// remaining availability is rejected so the user can never reach payment
// with an unbookable selection.
func (sel *SeatSelection) ToggleSeat(seat entity.Seat) error {
	sel.mu.Lock()
	defer sel.mu.Unlock()

	if sel.state != SelectionReady && sel.state != SelectionSelecting {
		return nil
	}

	switch sel.seatStatus(seat) {
	case entity.SeatLocked, entity.SeatBooked:
		return nil
	}

	if entity.ContainsSeat(sel.selected, seat) {
		kept := sel.selected[:0]
		for _, s := range sel.selected {
			if !s.Equal(seat) {
				kept = append(kept, s)
			}
		}
		sel.selected = kept
	} else {
		if sel.availability != nil && len(sel.selected) >= sel.availability.AvailableSeats {
			return ErrSelectionLimit
		}
		sel.selected = append(sel.selected, seat)
	}

	sel.transition(SelectionSelecting)
	return nil
}

func (sel *SeatSelection) seatStatus(seat entity.Seat) entity.SeatStatus {
	if sel.availability == nil {
		return entity.SeatAvailable
	}
	for _, row := range sel.availability.SeatLayout.Rows {
		if row.Row != seat.Row {
			continue
		}
		for _, state := range row.Seats {
			if state.SeatNumber == seat.SeatNumber {
				return state.Status
			}
		}
	}
	return entity.SeatAvailable
}

// ConfirmSelection hands off the selection snapshot and freezes the
// session. Nothing is reserved yet; the orchestrator takes it from here.
func (sel *SeatSelection) ConfirmSelection() ([]entity.Seat, error) {
	sel.mu.Lock()
	defer sel.mu.Unlock()

	if len(sel.selected) == 0 {
		return nil, ErrEmptySelection
	}
	if sel.availability != nil && len(sel.selected) > sel.availability.AvailableSeats {
		return nil, ErrSelectionLimit
	}

	snapshot := append([]entity.Seat(nil), sel.selected...)
	sel.transition(SelectionSubmitted)
	return snapshot, nil
}

// Cancel discards the selection and returns control to the event detail
// view. The session can be reused.
func (sel *SeatSelection) Cancel() {
	sel.mu.Lock()
	defer sel.mu.Unlock()

	sel.selected = nil
	sel.transition(SelectionReady)
}
