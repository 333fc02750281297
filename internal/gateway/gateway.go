// Package gateway holds the HTTP clients for the backend collaborators:
// Events, Bookings, Users and Auth. The backend is the single source of
// truth for everything these clients touch; this package only moves
// requests and responses, it holds no state beyond the shared transport.
package gateway

import (
	"net/http"

	"eventora-client/internal/data/store"
	"eventora-client/pkg/utils"

	"go.uber.org/zap"
)

type Gateway struct {
	Events   EventsGateway
	Bookings BookingsGateway
	Users    UsersGateway
	Auth     AuthGateway

	api *apiClient
}

// NewGateway builds the collaborator clients on one shared transport.
// onUnauthorized fires at most once per stored credential when any call
// comes back 401; the credential is cleared before the hook runs.
func NewGateway(cfg utils.BackendConfig, creds store.CredentialStore, onUnauthorized func(), log *zap.Logger) *Gateway {
	api := newAPIClient(cfg.BaseURL, &http.Client{Timeout: cfg.Timeout}, creds, onUnauthorized, log)

	return &Gateway{
		Events:   NewEventsGateway(api, log),
		Bookings: NewBookingsGateway(api, log),
		Users:    NewUsersGateway(api, log),
		Auth:     NewAuthGateway(api, log),
		api:      api,
	}
}

// ResetUnauthorized re-arms the single-shot 401 handling. Called after a
// fresh credential is saved so the next expiry redirects again.
func (g *Gateway) ResetUnauthorized() {
	g.api.resetUnauthorized()
}
