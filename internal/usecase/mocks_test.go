package usecase

import (
	"context"
	"encoding/json"
	"net/url"

	"eventora-client/internal/data/entity"
	"eventora-client/internal/gateway"
)

// fakeEventsGateway satisfies gateway.EventsGateway with overridable funcs.
type fakeEventsGateway struct {
	getEventByID        func(ctx context.Context, id string) (*entity.Event, error)
	getSeatAvailability func(ctx context.Context, eventID string) (*entity.SeatAvailability, error)
}

func (f *fakeEventsGateway) GetEventByID(ctx context.Context, id string) (*entity.Event, error) {
	return f.getEventByID(ctx, id)
}

func (f *fakeEventsGateway) GetSeatAvailability(ctx context.Context, eventID string) (*entity.SeatAvailability, error) {
	return f.getSeatAvailability(ctx, eventID)
}

func (f *fakeEventsGateway) GetUpcomingEvents(ctx context.Context) ([]entity.Event, error) {
	return nil, nil
}

func (f *fakeEventsGateway) GetAllEvents(ctx context.Context, params url.Values) ([]entity.Event, error) {
	return nil, nil
}

func (f *fakeEventsGateway) GetFeaturedEvents(ctx context.Context) ([]entity.Event, error) {
	return nil, nil
}

func (f *fakeEventsGateway) GetEventsByCategory(ctx context.Context, category string) ([]entity.Event, error) {
	return nil, nil
}

func (f *fakeEventsGateway) GetLocations(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (f *fakeEventsGateway) SyncLiveEvents(ctx context.Context, city string, limit int) error {
	return nil
}

// fakeBookingsGateway satisfies gateway.BookingsGateway.
type fakeBookingsGateway struct {
	createBooking  func(ctx context.Context, input gateway.CreateBookingInput) (*entity.Booking, error)
	getMyBookings  func(ctx context.Context) ([]entity.Booking, error)
	getBookingByID func(ctx context.Context, id string) (*entity.Booking, error)
	cancelBooking  func(ctx context.Context, id string) error

	createCalls []gateway.CreateBookingInput
	cancelCalls []string
}

func (f *fakeBookingsGateway) CreateBooking(ctx context.Context, input gateway.CreateBookingInput) (*entity.Booking, error) {
	f.createCalls = append(f.createCalls, input)
	return f.createBooking(ctx, input)
}

func (f *fakeBookingsGateway) ProcessPayment(ctx context.Context, bookingID string, status entity.PaymentStatus) error {
	return nil
}

func (f *fakeBookingsGateway) GetMyBookings(ctx context.Context) ([]entity.Booking, error) {
	return f.getMyBookings(ctx)
}

func (f *fakeBookingsGateway) GetBookingByID(ctx context.Context, id string) (*entity.Booking, error) {
	return f.getBookingByID(ctx, id)
}

func (f *fakeBookingsGateway) CancelBooking(ctx context.Context, id string) error {
	f.cancelCalls = append(f.cancelCalls, id)
	if f.cancelBooking != nil {
		return f.cancelBooking(ctx, id)
	}
	return nil
}

// fakeUsersGateway satisfies gateway.UsersGateway.
type fakeUsersGateway struct {
	exportData        func(ctx context.Context) (json.RawMessage, error)
	deactivateAccount func(ctx context.Context) error
	deleteAccount     func(ctx context.Context) error
}

func (f *fakeUsersGateway) GetProfile(ctx context.Context) (json.RawMessage, error) {
	return nil, nil
}

func (f *fakeUsersGateway) UpdateProfile(ctx context.Context, profile json.RawMessage) (json.RawMessage, error) {
	return nil, nil
}

func (f *fakeUsersGateway) GetDashboard(ctx context.Context) (json.RawMessage, error) {
	return nil, nil
}

func (f *fakeUsersGateway) ExportData(ctx context.Context) (json.RawMessage, error) {
	if f.exportData != nil {
		return f.exportData(ctx)
	}
	return nil, nil
}

func (f *fakeUsersGateway) DeactivateAccount(ctx context.Context) error {
	if f.deactivateAccount != nil {
		return f.deactivateAccount(ctx)
	}
	return nil
}

func (f *fakeUsersGateway) DeleteAccount(ctx context.Context) error {
	if f.deleteAccount != nil {
		return f.deleteAccount(ctx)
	}
	return nil
}

// fakeSession satisfies SessionService. EnsureAuthenticated records the
// intents it would have parked.
type fakeSession struct {
	authenticated bool
	cleared       bool
	savedIntents  []entity.PendingIntent
}

func (f *fakeSession) Credential() (string, bool) {
	if f.authenticated {
		return "token", true
	}
	return "", false
}

func (f *fakeSession) Authenticated() bool {
	return f.authenticated
}

func (f *fakeSession) EnsureAuthenticated(route string, params map[string]string) error {
	if f.authenticated {
		return nil
	}
	f.savedIntents = append(f.savedIntents, entity.PendingIntent{Route: route, Params: params})
	return ErrUnauthenticated
}

func (f *fakeSession) SaveCredential(token string) error {
	f.authenticated = true
	return nil
}

func (f *fakeSession) Clear() error {
	f.authenticated = false
	f.cleared = true
	return nil
}

func (f *fakeSession) ConsumeIntent() *entity.PendingIntent {
	if len(f.savedIntents) == 0 {
		return nil
	}
	intent := f.savedIntents[len(f.savedIntents)-1]
	f.savedIntents = f.savedIntents[:len(f.savedIntents)-1]
	return &intent
}

func (f *fakeSession) HandleUnauthorized() {}
