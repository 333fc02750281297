package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"eventora-client/internal/data/entity"
	"eventora-client/internal/dto/response"
	"eventora-client/internal/gateway"

	"go.uber.org/zap"
)

// FilterStatus is the dashboard's booking filter.
type FilterStatus string

const (
	FilterAll       FilterStatus = "all"
	FilterUpcoming  FilterStatus = "upcoming"
	FilterPast      FilterStatus = "past"
	FilterCancelled FilterStatus = "cancelled"
)

// LifecycleService lists, filters and cancels the signed-in user's
// bookings, and forwards the account-level operations that end a session.
type LifecycleService interface {
	ListBookings(ctx context.Context) ([]response.BookingView, error)
	Filter(views []response.BookingView, status FilterStatus) []response.BookingView
	CancelBooking(ctx context.Context, id string) error

	ExportUserData(ctx context.Context) (json.RawMessage, error)
	DeactivateAccount(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
}

type lifecycleService struct {
	bookings gateway.BookingsGateway
	users    gateway.UsersGateway
	session  SessionService
	log      *zap.Logger
	now      func() time.Time
}

func NewLifecycleService(bookings gateway.BookingsGateway, users gateway.UsersGateway, session SessionService, log *zap.Logger) LifecycleService {
	return &lifecycleService{
		bookings: bookings,
		users:    users,
		session:  session,
		log:      log.With(zap.String("service", "lifecycle")),
		now:      time.Now,
	}
}

func (s *lifecycleService) ListBookings(ctx context.Context) ([]response.BookingView, error) {
	bookings, err := s.bookings.GetMyBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	now := s.now()
	views := make([]response.BookingView, len(bookings))
	for i := range bookings {
		views[i] = response.BookingToView(&bookings[i], now)
	}

	s.log.Info("Bookings retrieved", zap.Int("count", len(views)))
	return views, nil
}

// Filter applies the dashboard predicate. "past" matches on event date
// alone, so a cancelled booking for a past event shows up under both
// "past" and "cancelled"; cancellation does not hide history.
func (s *lifecycleService) Filter(views []response.BookingView, status FilterStatus) []response.BookingView {
	if status == "" || status == FilterAll {
		return views
	}

	now := s.now()
	var filtered []response.BookingView
	for _, view := range views {
		switch status {
		case FilterUpcoming:
			if view.DerivedStatus == entity.StatusUpcoming {
				filtered = append(filtered, view)
			}
		case FilterPast:
			starts := view.Booking.EventStartsAt()
			if !starts.IsZero() && starts.Before(now) {
				filtered = append(filtered, view)
			}
		case FilterCancelled:
			if view.Booking.Status == entity.BookingStatusCancelled {
				filtered = append(filtered, view)
			}
		}
	}
	return filtered
}

// CancelBooking cancels an upcoming booking. Cancelling anything else,
// including a booking that is already cancelled, reports ErrNotCancelable,
// so a double cancel is a no-op with a clear answer. Seat availability is
// restored by the backend, never locally.
func (s *lifecycleService) CancelBooking(ctx context.Context, id string) error {
	booking, err := s.bookings.GetBookingByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load booking %s: %w", id, err)
	}

	if !entity.IsCancelable(booking, s.now()) {
		return ErrNotCancelable
	}

	if err := s.bookings.CancelBooking(ctx, id); err != nil {
		s.log.Error("Failed to cancel booking", zap.Error(err), zap.String("booking_id", id))
		return fmt.Errorf("cancel booking %s: %w", id, err)
	}

	s.log.Info("Booking cancelled", zap.String("booking_id", id))
	return nil
}

func (s *lifecycleService) ExportUserData(ctx context.Context) (json.RawMessage, error) {
	data, err := s.users.ExportData(ctx)
	if err != nil {
		return nil, fmt.Errorf("export user data: %w", err)
	}
	return data, nil
}

func (s *lifecycleService) DeactivateAccount(ctx context.Context) error {
	if err := s.users.DeactivateAccount(ctx); err != nil {
		return fmt.Errorf("deactivate account: %w", err)
	}

	// Deactivation ends the local session.
	if err := s.session.Clear(); err != nil {
		s.log.Warn("Failed to clear session after deactivation", zap.Error(err))
	}

	s.log.Info("Account deactivated, session terminated")
	return nil
}

func (s *lifecycleService) DeleteAccount(ctx context.Context) error {
	if err := s.users.DeleteAccount(ctx); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	if err := s.session.Clear(); err != nil {
		s.log.Warn("Failed to clear session after deletion", zap.Error(err))
	}

	s.log.Info("Account deleted, session terminated")
	return nil
}
