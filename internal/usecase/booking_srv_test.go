package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"eventora-client/internal/data/entity"
	"eventora-client/internal/data/store"
	"eventora-client/internal/gateway"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testEvent() *entity.Event {
	return &entity.Event{
		ID:             "evt-1",
		Title:          "Summer Jazz Night",
		Price:          500,
		AvailableSeats: 10,
	}
}

func testReserveInput() ReserveInput {
	return ReserveInput{
		Event: testEvent(),
		Seats: []entity.Seat{{Row: "A", SeatNumber: 1}, {Row: "A", SeatNumber: 2}},
		Payment: entity.PaymentDetails{
			CardNumber: "4111111111111111",
			ExpiryDate: "12/30",
			CVV:        "123",
			CardHolder: "Jane Doe",
		},
	}
}

func newReservationFixture(t *testing.T, bookings *fakeBookingsGateway, session *fakeSession) (ReservationService, store.LockStore) {
	t.Helper()
	locks := store.NewLockStore(afero.NewMemMapFs(), "/data", zap.NewNop())
	return NewReservationService(bookings, session, locks, zap.NewNop()), locks
}

func TestReserveSuccess(t *testing.T) {
	bookings := &fakeBookingsGateway{
		createBooking: func(ctx context.Context, input gateway.CreateBookingInput) (*entity.Booking, error) {
			return &entity.Booking{
				ID:               "bkg-1",
				EventID:          input.EventID,
				NumberOfTickets:  input.NumberOfTickets,
				SelectedSeats:    input.SelectedSeats,
				TotalPrice:       500 * float64(input.NumberOfTickets),
				Status:           entity.BookingStatusConfirmed,
				PaymentStatus:    entity.PaymentStatusPaid,
				BookingReference: "REF-001",
			}, nil
		},
	}
	svc, locks := newReservationFixture(t, bookings, &fakeSession{authenticated: true})

	booking, err := svc.Reserve(context.Background(), testReserveInput())
	require.NoError(t, err)

	assert.Equal(t, "bkg-1", booking.ID)
	assert.Equal(t, float64(1000), booking.TotalPrice)
	assert.Equal(t, 2, booking.NumberOfTickets)

	// The booking request carried the selection and the card payment.
	require.Len(t, bookings.createCalls, 1)
	sent := bookings.createCalls[0]
	assert.Equal(t, "evt-1", sent.EventID)
	assert.Equal(t, "card", sent.PaymentMethod)
	assert.Equal(t, "Jane Doe", sent.PaymentDetails.CardHolder)

	// The advisory set keeps the seats after a confirmed booking.
	set, err := locks.Read("evt-1")
	require.NoError(t, err)
	assert.True(t, set.Contains(entity.Seat{Row: "A", SeatNumber: 1}))
	assert.True(t, set.Contains(entity.Seat{Row: "A", SeatNumber: 2}))
}

func TestReserveGeneralAdmission(t *testing.T) {
	bookings := &fakeBookingsGateway{
		createBooking: func(ctx context.Context, input gateway.CreateBookingInput) (*entity.Booking, error) {
			return &entity.Booking{
				ID:              "bkg-ga",
				EventID:         input.EventID,
				NumberOfTickets: input.NumberOfTickets,
				TotalPrice:      500 * float64(input.NumberOfTickets),
				Status:          entity.BookingStatusConfirmed,
			}, nil
		},
	}
	svc, locks := newReservationFixture(t, bookings, &fakeSession{authenticated: true})

	input := testReserveInput()
	input.Seats = nil
	input.Tickets = 3

	booking, err := svc.Reserve(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 3, booking.NumberOfTickets)
	assert.Equal(t, float64(1500), booking.TotalPrice)

	// The ticket count went over the wire without any seats.
	require.Len(t, bookings.createCalls, 1)
	assert.Equal(t, 3, bookings.createCalls[0].NumberOfTickets)
	assert.Empty(t, bookings.createCalls[0].SelectedSeats)

	// No advisory locks are held for a seatless booking.
	set, readErr := locks.Read("evt-1")
	require.NoError(t, readErr)
	assert.Empty(t, set.Seats)
	assert.Equal(t, uint64(0), set.Version)
}

func TestReserveSeatsOverrideTicketCount(t *testing.T) {
	bookings := &fakeBookingsGateway{
		createBooking: func(ctx context.Context, input gateway.CreateBookingInput) (*entity.Booking, error) {
			return &entity.Booking{ID: "bkg-1", NumberOfTickets: input.NumberOfTickets}, nil
		},
	}
	svc, _ := newReservationFixture(t, bookings, &fakeSession{authenticated: true})

	// A stale quantity alongside a selection: the seats win.
	input := testReserveInput()
	input.Tickets = 5

	_, err := svc.Reserve(context.Background(), input)
	require.NoError(t, err)

	require.Len(t, bookings.createCalls, 1)
	assert.Equal(t, 2, bookings.createCalls[0].NumberOfTickets)
}

func TestReserveRejectsZeroTickets(t *testing.T) {
	bookings := &fakeBookingsGateway{
		createBooking: func(ctx context.Context, input gateway.CreateBookingInput) (*entity.Booking, error) {
			t.Fatal("booking must not be attempted without tickets")
			return nil, nil
		},
	}
	svc, _ := newReservationFixture(t, bookings, &fakeSession{authenticated: true})

	input := testReserveInput()
	input.Seats = nil
	input.Tickets = 0

	_, err := svc.Reserve(context.Background(), input)
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestReserveBackendRejectionRollsBackLocks(t *testing.T) {
	bookings := &fakeBookingsGateway{
		createBooking: func(ctx context.Context, input gateway.CreateBookingInput) (*entity.Booking, error) {
			return nil, &gateway.APIError{StatusCode: 400, Message: "Seats already booked"}
		},
	}
	svc, locks := newReservationFixture(t, bookings, &fakeSession{authenticated: true})

	// A seat locked by an earlier attempt must survive the rollback.
	_, err := locks.Write(entity.LockSet{
		EventID: "evt-1",
		Seats:   []entity.Seat{{Row: "C", SeatNumber: 7}},
	}, 0)
	require.NoError(t, err)

	_, err = svc.Reserve(context.Background(), testReserveInput())
	require.Error(t, err)

	created, ok := AsBookingCreateError(err)
	require.True(t, ok)
	assert.Equal(t, "Seats already booked", created.Reason)

	// The advisory set is back to the pre-attempt snapshot.
	set, readErr := locks.Read("evt-1")
	require.NoError(t, readErr)
	assert.Equal(t, []entity.Seat{{Row: "C", SeatNumber: 7}}, set.Seats)
}

func TestReserveUnauthenticatedParksIntent(t *testing.T) {
	session := &fakeSession{authenticated: false}
	bookings := &fakeBookingsGateway{
		createBooking: func(ctx context.Context, input gateway.CreateBookingInput) (*entity.Booking, error) {
			t.Fatal("booking must not be attempted without a session")
			return nil, nil
		},
	}
	svc, locks := newReservationFixture(t, bookings, session)

	_, err := svc.Reserve(context.Background(), testReserveInput())
	assert.ErrorIs(t, err, ErrUnauthenticated)

	// The resume intent points back at the event with the continue flag.
	require.Len(t, session.savedIntents, 1)
	assert.Equal(t, "/events/evt-1", session.savedIntents[0].Route)
	assert.Equal(t, "1", session.savedIntents[0].Params["continueBooking"])

	// No advisory locks were written.
	set, readErr := locks.Read("evt-1")
	require.NoError(t, readErr)
	assert.Empty(t, set.Seats)
}

func TestReserveCredentialExpiredMidFlight(t *testing.T) {
	session := &fakeSession{authenticated: true}
	bookings := &fakeBookingsGateway{
		createBooking: func(ctx context.Context, input gateway.CreateBookingInput) (*entity.Booking, error) {
			// The transport cleared the credential on the 401.
			session.authenticated = false
			return nil, fmt.Errorf("POST /bookings: %w", gateway.ErrUnauthorized)
		},
	}
	svc, locks := newReservationFixture(t, bookings, session)

	_, err := svc.Reserve(context.Background(), testReserveInput())
	assert.ErrorIs(t, err, ErrUnauthenticated)

	// The intent was parked for the post-login resume and the advisory
	// locks were rolled back.
	require.Len(t, session.savedIntents, 1)
	set, readErr := locks.Read("evt-1")
	require.NoError(t, readErr)
	assert.Empty(t, set.Seats)
}

func TestReserveMissingCardHolder(t *testing.T) {
	bookings := &fakeBookingsGateway{
		createBooking: func(ctx context.Context, input gateway.CreateBookingInput) (*entity.Booking, error) {
			t.Fatal("booking must not be attempted with an incomplete payment")
			return nil, nil
		},
	}
	svc, _ := newReservationFixture(t, bookings, &fakeSession{authenticated: true})

	input := testReserveInput()
	input.Payment.CardHolder = "  "

	_, err := svc.Reserve(context.Background(), input)
	assert.ErrorIs(t, err, ErrMissingCardHolder)
}

func TestReserveRejectsConcurrentAttempts(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	bookings := &fakeBookingsGateway{
		createBooking: func(ctx context.Context, input gateway.CreateBookingInput) (*entity.Booking, error) {
			close(started)
			<-release
			return &entity.Booking{ID: "bkg-1", Status: entity.BookingStatusConfirmed}, nil
		},
	}
	svc, _ := newReservationFixture(t, bookings, &fakeSession{authenticated: true})

	done := make(chan error, 1)
	go func() {
		_, err := svc.Reserve(context.Background(), testReserveInput())
		done <- err
	}()

	<-started
	_, err := svc.Reserve(context.Background(), testReserveInput())
	assert.ErrorIs(t, err, ErrReservationInFlight)

	close(release)
	assert.NoError(t, <-done)
}

func TestReservePanicIsContained(t *testing.T) {
	bookings := &fakeBookingsGateway{
		createBooking: func(ctx context.Context, input gateway.CreateBookingInput) (*entity.Booking, error) {
			panic("boom")
		},
	}
	svc, locks := newReservationFixture(t, bookings, &fakeSession{authenticated: true})

	booking, err := svc.Reserve(context.Background(), testReserveInput())
	assert.Nil(t, booking)
	assert.ErrorIs(t, err, ErrUnknownFailure)

	// The advisory locks written before the crash were rolled back.
	set, readErr := locks.Read("evt-1")
	require.NoError(t, readErr)
	assert.Empty(t, set.Seats)

	// The guard was released: the next attempt is allowed.
	_, err = svc.Reserve(context.Background(), testReserveInput())
	assert.ErrorIs(t, err, ErrUnknownFailure)
}

func TestReserveNetworkErrorIsWrapped(t *testing.T) {
	netErr := errors.New("connection refused")
	bookings := &fakeBookingsGateway{
		createBooking: func(ctx context.Context, input gateway.CreateBookingInput) (*entity.Booking, error) {
			return nil, netErr
		},
	}
	svc, locks := newReservationFixture(t, bookings, &fakeSession{authenticated: true})

	_, err := svc.Reserve(context.Background(), testReserveInput())
	assert.ErrorIs(t, err, netErr)

	_, ok := AsBookingCreateError(err)
	assert.False(t, ok)

	set, readErr := locks.Read("evt-1")
	require.NoError(t, readErr)
	assert.Empty(t, set.Seats)
}
