package adaptor

import (
	"eventora-client/internal/gateway"
	"eventora-client/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Event   *EventHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, gw *gateway.Gateway, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(gw.Auth, service.Session, log),
		User:    NewUserHandler(gw.Users, service.Lifecycle, log),
		Event:   NewEventHandler(gw.Events, service.Selection, log),
		Booking: NewBookingHandler(service, gw.Bookings, gw.Events, log),
	}
}
