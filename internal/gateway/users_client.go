package gateway

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// UsersGateway is the client side of the Users service contract. The
// profile and dashboard payloads are passed through untyped: this client
// does not interpret them, it only relays.
type UsersGateway interface {
	GetProfile(ctx context.Context) (json.RawMessage, error)
	UpdateProfile(ctx context.Context, profile json.RawMessage) (json.RawMessage, error)
	GetDashboard(ctx context.Context) (json.RawMessage, error)
	ExportData(ctx context.Context) (json.RawMessage, error)
	DeactivateAccount(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
}

type usersGateway struct {
	api *apiClient
	log *zap.Logger
}

func NewUsersGateway(api *apiClient, log *zap.Logger) UsersGateway {
	return &usersGateway{
		api: api,
		log: log.With(zap.String("gateway", "users")),
	}
}

func (g *usersGateway) GetProfile(ctx context.Context) (json.RawMessage, error) {
	var data json.RawMessage
	if err := g.api.get(ctx, "/users/profile", nil, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (g *usersGateway) UpdateProfile(ctx context.Context, profile json.RawMessage) (json.RawMessage, error) {
	var data json.RawMessage
	if err := g.api.put(ctx, "/users/profile", profile, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (g *usersGateway) GetDashboard(ctx context.Context) (json.RawMessage, error) {
	var data json.RawMessage
	if err := g.api.get(ctx, "/users/dashboard", nil, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (g *usersGateway) ExportData(ctx context.Context) (json.RawMessage, error) {
	var data json.RawMessage
	if err := g.api.get(ctx, "/users/export", nil, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (g *usersGateway) DeactivateAccount(ctx context.Context) error {
	return g.api.patch(ctx, "/users/account/deactivate", nil, nil)
}

func (g *usersGateway) DeleteAccount(ctx context.Context) error {
	return g.api.delete(ctx, "/users/account", nil)
}
