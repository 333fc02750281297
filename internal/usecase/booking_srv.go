package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"eventora-client/internal/data/entity"
	"eventora-client/internal/data/store"
	"eventora-client/internal/gateway"
	"eventora-client/pkg/utils"

	"go.uber.org/zap"
)

// ReserveInput is a confirmed seat selection plus the payment-capture
// result, ready to be turned into a durable booking. Seats may be empty
// for a general-admission event, in which case Tickets carries the
// quantity; when seats are present they determine the count.
type ReserveInput struct {
	Event   *entity.Event
	Seats   []entity.Seat
	Tickets int
	Payment entity.PaymentDetails
}

func (in ReserveInput) ticketCount() int {
	if len(in.Seats) > 0 {
		return len(in.Seats)
	}
	return in.Tickets
}

// ReservationService converts a confirmed selection into a booking. The
// local advisory lock is written before the backend call and rolled back
// when the backend says no; it narrows the window in which this client
// re-offers seats it just tried to reserve, and nothing more. The
// backend's booking-creation call is the sole arbiter of seat
// availability; the advisory set gives no cross-user guarantee.
type ReservationService interface {
	Reserve(ctx context.Context, input ReserveInput) (*entity.Booking, error)
}

const lockWriteAttempts = 3

type reservationService struct {
	bookings gateway.BookingsGateway
	session  SessionService
	locks    store.LockStore
	log      *zap.Logger

	// inFlight is the re-entrancy guard behind the disabled submit button:
	// one reservation at a time, no queueing.
	inFlight atomic.Bool
}

func NewReservationService(bookings gateway.BookingsGateway, session SessionService, locks store.LockStore, log *zap.Logger) ReservationService {
	return &reservationService{
		bookings: bookings,
		session:  session,
		locks:    locks,
		log:      log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) Reserve(ctx context.Context, input ReserveInput) (booking *entity.Booking, err error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrReservationInFlight
	}
	defer s.inFlight.Store(false)

	if input.Event == nil {
		return nil, fmt.Errorf("reserve: %w", errors.New("event not loaded"))
	}
	if input.ticketCount() <= 0 {
		return nil, ErrEmptySelection
	}

	log := s.log.With(
		zap.String("attempt_id", utils.GenerateAttemptID()),
		zap.String("event_id", input.Event.ID),
		zap.Strings("seats", entity.SeatLabels(input.Seats)),
	)

	// Step 1: re-validate the session. On failure the caller redirects to
	// login; EnsureAuthenticated has already persisted the resume intent.
	if err := s.session.EnsureAuthenticated(
		"/events/"+input.Event.ID,
		map[string]string{"continueBooking": "1"},
	); err != nil {
		log.Warn("Reservation attempted without credential")
		return nil, err
	}

	// Step 2: normalize the payment payload.
	payment := input.Payment.Normalize()
	if payment.CardHolder == "" {
		return nil, ErrMissingCardHolder
	}

	// Steps 3 and 4: read the advisory set, then lock first and confirm
	// second. The write is synchronous, so the merged set is on disk before
	// the backend request goes out. A write failure is logged and the
	// attempt proceeds: the advisory set is a UX cache, not a precondition.
	// Reads fail open to empty inside the store. A general-admission
	// attempt holds no seats, so there is nothing to lock.
	var (
		snapshot entity.LockSet
		locked   bool
	)
	if len(input.Seats) > 0 {
		snapshot, _ = s.locks.Read(input.Event.ID)
		_, locked = s.writeAdvisoryLock(snapshot, input.Seats, log)
	}

	// Anything that blows up from here on must not leave the merged set
	// behind without a confirmed booking.
	defer func() {
		if r := recover(); r != nil {
			log.Error("Reservation panicked", zap.Any("panic", r))
			if locked && booking == nil {
				s.rollbackAdvisoryLock(snapshot, input.Seats, log)
			}
			booking, err = nil, ErrUnknownFailure
		}
	}()

	// Step 5: create the authoritative booking.
	created, createErr := s.bookings.CreateBooking(ctx, gateway.CreateBookingInput{
		EventID:         input.Event.ID,
		NumberOfTickets: input.ticketCount(),
		SelectedSeats:   input.Seats,
		PaymentMethod:   entity.PaymentMethodCard,
		PaymentDetails:  payment,
	})

	if createErr != nil {
		// Step 7: the response is known, so the rollback is safe now,
		// never speculatively before.
		if locked {
			s.rollbackAdvisoryLock(snapshot, input.Seats, log)
		}

		if errors.Is(createErr, gateway.ErrUnauthorized) {
			// Credential was cleared by the transport; persist the resume
			// intent for the post-login return.
			return nil, s.session.EnsureAuthenticated(
				"/events/"+input.Event.ID,
				map[string]string{"continueBooking": "1"},
			)
		}

		if apiErr, ok := gateway.AsAPIError(createErr); ok {
			log.Warn("Backend rejected booking", zap.String("reason", apiErr.Message))
			return nil, &BookingCreateError{Reason: apiErr.Message}
		}

		log.Error("Booking creation failed", zap.Error(createErr))
		return nil, fmt.Errorf("create booking: %w", createErr)
	}

	// Step 6: idempotent confirmation of the advisory set. Best-effort;
	// the booking is already durable on the backend.
	if locked {
		if _, confirmed := s.writeAdvisoryLock(snapshot, input.Seats, log); !confirmed {
			log.Debug("Advisory confirmation write skipped", zap.String("event_id", input.Event.ID))
		}
	}

	log.Info("Booking confirmed",
		zap.String("booking_id", created.ID),
		zap.String("reference", created.BookingReference),
		zap.Float64("total_price", created.TotalPrice),
	)

	return created, nil
}

// writeAdvisoryLock merges seats into the stored set under compare-and-
// swap, retrying on version conflicts with a fresh read. Returns the
// written set and whether a write landed. Failure is non-fatal.
func (s *reservationService) writeAdvisoryLock(base entity.LockSet, seats []entity.Seat, log *zap.Logger) (entity.LockSet, bool) {
	current := base
	for attempt := 0; attempt < lockWriteAttempts; attempt++ {
		merged := current.Merge(seats)
		written, err := s.locks.Write(merged, current.Version)
		if err == nil {
			return written, true
		}

		if errors.Is(err, store.ErrVersionConflict) {
			current, _ = s.locks.Read(base.EventID)
			continue
		}

		log.Warn("Advisory lock write failed, proceeding without it", zap.Error(err))
		return entity.LockSet{}, false
	}

	log.Warn("Advisory lock write kept conflicting, proceeding without it")
	return entity.LockSet{}, false
}

// rollbackAdvisoryLock removes only the seats this attempt added, leaving
// anything a concurrent writer merged in the meantime untouched. After a
// clean single-writer attempt the stored set equals the pre-attempt
// snapshot exactly.
func (s *reservationService) rollbackAdvisoryLock(snapshot entity.LockSet, seats []entity.Seat, log *zap.Logger) {
	var added []entity.Seat
	for _, seat := range seats {
		if !snapshot.Contains(seat) {
			added = append(added, seat)
		}
	}
	if len(added) == 0 {
		return
	}

	for attempt := 0; attempt < lockWriteAttempts; attempt++ {
		current, _ := s.locks.Read(snapshot.EventID)

		reverted := entity.LockSet{EventID: snapshot.EventID}
		for _, seat := range current.Seats {
			if !entity.ContainsSeat(added, seat) {
				reverted.Seats = append(reverted.Seats, seat)
			}
		}

		if _, err := s.locks.Write(reverted, current.Version); err == nil {
			log.Info("Advisory lock rolled back", zap.Strings("seats", entity.SeatLabels(added)))
			return
		} else if !errors.Is(err, store.ErrVersionConflict) {
			log.Warn("Advisory lock rollback failed", zap.Error(err))
			return
		}
	}

	log.Warn("Advisory lock rollback kept conflicting, giving up")
}
