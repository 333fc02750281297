package usecase

import (
	"eventora-client/internal/data/store"
	"eventora-client/internal/gateway"
	"eventora-client/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Session     SessionService
	Selection   SeatSelectionService
	Payment     PaymentService
	Reservation ReservationService
	Lifecycle   LifecycleService
}

func NewService(gw *gateway.Gateway, st *store.Store, config *utils.Config, log *zap.Logger) *Service {
	session := NewSessionService(st.Credential, st.Intent, log)
	session.BindCredentialSavedHook(gw.ResetUnauthorized)

	return &Service{
		Session:     session,
		Selection:   NewSeatSelectionService(gw.Events, st.Locks, log),
		Payment:     NewPaymentService(config.Payment.ProcessingDelay, log),
		Reservation: NewReservationService(gw.Bookings, session, st.Locks, log),
		Lifecycle:   NewLifecycleService(gw.Bookings, gw.Users, session, log),
	}
}
