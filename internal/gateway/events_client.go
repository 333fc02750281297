package gateway

import (
	"context"
	"net/url"
	"strconv"

	"eventora-client/internal/data/entity"

	"go.uber.org/zap"
)

// EventsGateway is the client side of the Events service contract.
type EventsGateway interface {
	GetEventByID(ctx context.Context, id string) (*entity.Event, error)
	GetSeatAvailability(ctx context.Context, eventID string) (*entity.SeatAvailability, error)
	GetUpcomingEvents(ctx context.Context) ([]entity.Event, error)
	GetAllEvents(ctx context.Context, params url.Values) ([]entity.Event, error)
	GetFeaturedEvents(ctx context.Context) ([]entity.Event, error)
	GetEventsByCategory(ctx context.Context, category string) ([]entity.Event, error)
	GetLocations(ctx context.Context) ([]string, error)
	SyncLiveEvents(ctx context.Context, city string, limit int) error
}

type eventsGateway struct {
	api *apiClient
	log *zap.Logger
}

func NewEventsGateway(api *apiClient, log *zap.Logger) EventsGateway {
	return &eventsGateway{
		api: api,
		log: log.With(zap.String("gateway", "events")),
	}
}

func (g *eventsGateway) GetEventByID(ctx context.Context, id string) (*entity.Event, error) {
	var event entity.Event
	if err := g.api.get(ctx, "/events/"+id, nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (g *eventsGateway) GetSeatAvailability(ctx context.Context, eventID string) (*entity.SeatAvailability, error) {
	var availability entity.SeatAvailability
	if err := g.api.get(ctx, "/events/"+eventID+"/seats", nil, &availability); err != nil {
		return nil, err
	}
	return &availability, nil
}

func (g *eventsGateway) GetUpcomingEvents(ctx context.Context) ([]entity.Event, error) {
	var events []entity.Event
	if err := g.api.get(ctx, "/events/upcoming", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (g *eventsGateway) GetAllEvents(ctx context.Context, params url.Values) ([]entity.Event, error) {
	var events []entity.Event
	if err := g.api.get(ctx, "/events", params, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (g *eventsGateway) GetFeaturedEvents(ctx context.Context) ([]entity.Event, error) {
	var events []entity.Event
	if err := g.api.get(ctx, "/events/featured", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (g *eventsGateway) GetEventsByCategory(ctx context.Context, category string) ([]entity.Event, error) {
	var events []entity.Event
	if err := g.api.get(ctx, "/events/category/"+category, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (g *eventsGateway) GetLocations(ctx context.Context) ([]string, error) {
	var locations []string
	if err := g.api.get(ctx, "/events/locations", nil, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

func (g *eventsGateway) SyncLiveEvents(ctx context.Context, city string, limit int) error {
	query := url.Values{}
	if city != "" {
		query.Set("city", city)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	return g.api.get(ctx, "/events/live/sync", query, nil)
}
