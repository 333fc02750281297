package usecase

import (
	"context"
	"errors"
	"testing"

	"eventora-client/internal/data/entity"
	"eventora-client/internal/data/store"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testAvailability() *entity.SeatAvailability {
	return &entity.SeatAvailability{
		AvailableSeats: 3,
		TotalSeats:     4,
		SeatLayout: entity.SeatLayout{
			Rows: []entity.SeatRow{
				{
					Row: "A",
					Seats: []entity.SeatState{
						{SeatNumber: 1, Status: entity.SeatAvailable},
						{SeatNumber: 2, Status: entity.SeatAvailable},
					},
				},
				{
					Row: "B",
					Seats: []entity.SeatState{
						{SeatNumber: 1, Status: entity.SeatBooked},
						{SeatNumber: 2, Status: entity.SeatAvailable},
					},
				},
			},
		},
	}
}

func newTestSelectionService(t *testing.T, events *fakeEventsGateway) (SeatSelectionService, store.LockStore) {
	t.Helper()
	locks := store.NewLockStore(afero.NewMemMapFs(), "/data", zap.NewNop())
	return NewSeatSelectionService(events, locks, zap.NewNop()), locks
}

func happyEventsGateway() *fakeEventsGateway {
	return &fakeEventsGateway{
		getEventByID: func(ctx context.Context, id string) (*entity.Event, error) {
			return &entity.Event{ID: id, Title: "Summer Jazz Night", Price: 500, AvailableSeats: 3}, nil
		},
		getSeatAvailability: func(ctx context.Context, eventID string) (*entity.SeatAvailability, error) {
			return testAvailability(), nil
		},
	}
}

func TestSeatSelectionLoad(t *testing.T) {
	svc, _ := newTestSelectionService(t, happyEventsGateway())

	sel, err := svc.Load(context.Background(), "evt-1")
	require.NoError(t, err)

	assert.Equal(t, SelectionReady, sel.State())
	assert.Equal(t, "Summer Jazz Night", sel.Event().Title)
	assert.Empty(t, sel.Selected())
}

func TestSeatSelectionLoadFailureIsRetryable(t *testing.T) {
	calls := 0
	events := happyEventsGateway()
	events.getSeatAvailability = func(ctx context.Context, eventID string) (*entity.SeatAvailability, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("backend down")
		}
		return testAvailability(), nil
	}

	svc, _ := newTestSelectionService(t, events)

	sel, err := svc.Load(context.Background(), "evt-1")
	require.Error(t, err)
	assert.Equal(t, SelectionError, sel.State())

	// Retry re-runs the fetch and recovers.
	require.NoError(t, sel.Retry(context.Background()))
	assert.Equal(t, SelectionReady, sel.State())

	// Retry outside the error state is a no-op.
	assert.NoError(t, sel.Retry(context.Background()))
	assert.Equal(t, SelectionReady, sel.State())
}

func TestSeatSelectionToggle(t *testing.T) {
	svc, _ := newTestSelectionService(t, happyEventsGateway())

	sel, err := svc.Load(context.Background(), "evt-1")
	require.NoError(t, err)

	seatA1 := entity.Seat{Row: "A", SeatNumber: 1}
	seatA2 := entity.Seat{Row: "A", SeatNumber: 2}

	require.NoError(t, sel.ToggleSeat(seatA1))
	require.NoError(t, sel.ToggleSeat(seatA2))
	assert.Equal(t, SelectionSelecting, sel.State())
	assert.Equal(t, []entity.Seat{seatA1, seatA2}, sel.Selected())

	// Toggling again removes the seat.
	require.NoError(t, sel.ToggleSeat(seatA1))
	assert.Equal(t, []entity.Seat{seatA2}, sel.Selected())
}

func TestSeatSelectionIgnoresUnavailableSeats(t *testing.T) {
	svc, _ := newTestSelectionService(t, happyEventsGateway())

	sel, err := svc.Load(context.Background(), "evt-1")
	require.NoError(t, err)

	// B1 is booked: toggling it changes nothing and raises no error.
	require.NoError(t, sel.ToggleSeat(entity.Seat{Row: "B", SeatNumber: 1}))
	assert.Empty(t, sel.Selected())
}

func TestSeatSelectionLimit(t *testing.T) {
	events := happyEventsGateway()
	events.getSeatAvailability = func(ctx context.Context, eventID string) (*entity.SeatAvailability, error) {
		availability := testAvailability()
		availability.AvailableSeats = 1
		return availability, nil
	}
	svc, _ := newTestSelectionService(t, events)

	sel, err := svc.Load(context.Background(), "evt-1")
	require.NoError(t, err)

	require.NoError(t, sel.ToggleSeat(entity.Seat{Row: "A", SeatNumber: 1}))
	assert.ErrorIs(t, sel.ToggleSeat(entity.Seat{Row: "A", SeatNumber: 2}), ErrSelectionLimit)
	assert.Len(t, sel.Selected(), 1)
}

func TestSeatSelectionConfirm(t *testing.T) {
	svc, _ := newTestSelectionService(t, happyEventsGateway())

	sel, err := svc.Load(context.Background(), "evt-1")
	require.NoError(t, err)

	// Confirming an empty selection is refused.
	_, err = sel.ConfirmSelection()
	assert.ErrorIs(t, err, ErrEmptySelection)

	require.NoError(t, sel.ToggleSeat(entity.Seat{Row: "A", SeatNumber: 1}))

	seats, err := sel.ConfirmSelection()
	require.NoError(t, err)
	assert.Equal(t, []entity.Seat{{Row: "A", SeatNumber: 1}}, seats)
	assert.Equal(t, SelectionSubmitted, sel.State())

	// A submitted session is frozen.
	require.NoError(t, sel.ToggleSeat(entity.Seat{Row: "A", SeatNumber: 2}))
	assert.Len(t, sel.Selected(), 1)
}

func TestSeatSelectionCancel(t *testing.T) {
	svc, _ := newTestSelectionService(t, happyEventsGateway())

	sel, err := svc.Load(context.Background(), "evt-1")
	require.NoError(t, err)

	require.NoError(t, sel.ToggleSeat(entity.Seat{Row: "A", SeatNumber: 1}))
	sel.Cancel()

	assert.Empty(t, sel.Selected())
	assert.Equal(t, SelectionReady, sel.State())
}

func TestAvailabilityWithLocksOverlaysAdvisorySeats(t *testing.T) {
	svc, locks := newTestSelectionService(t, happyEventsGateway())

	_, err := locks.Write(entity.LockSet{
		EventID: "evt-1",
		Seats:   []entity.Seat{{Row: "A", SeatNumber: 1}, {Row: "B", SeatNumber: 1}},
	}, 0)
	require.NoError(t, err)

	availability, err := svc.AvailabilityWithLocks(context.Background(), "evt-1")
	require.NoError(t, err)

	// A1 was available and is now shown locked; B1 stays booked.
	assert.Equal(t, entity.SeatLocked, availability.SeatLayout.Rows[0].Seats[0].Status)
	assert.Equal(t, entity.SeatAvailable, availability.SeatLayout.Rows[0].Seats[1].Status)
	assert.Equal(t, entity.SeatBooked, availability.SeatLayout.Rows[1].Seats[0].Status)
}
