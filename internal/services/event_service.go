package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"

	dbm "tiketku/internal/models/db_models"
	"tiketku/internal/models/request_models"
	"tiketku/internal/models/response_models"
	"tiketku/internal/repositories"
	"tiketku/pkg/utils"
)

const eventCacheTTL = 5 * time.Minute

type EventServiceInterface interface {
	ListEvents(ctx context.Context, search, category string, page, pageSize int) (*response_models.EventListResponse, error)
	GetEventBySlug(ctx context.Context, eventSlug string) (*response_models.EventResponse, error)
	CreateEvent(ctx context.Context, organizerID uuid.UUID, request request_models.CreateEventRequest) (*response_models.EventResponse, error)
}

type EventService struct {
	events repositories.EventRepository
	cache  CacheServiceInterface
}

func NewEventService(events repositories.EventRepository, cache CacheServiceInterface) EventServiceInterface {
	return &EventService{events: events, cache: cache}
}

func (s *EventService) ListEvents(ctx context.Context, search, category string, page, pageSize int) (*response_models.EventListResponse, error) {
	events, total, err := s.events.List(ctx, repositories.EventFilter{
		Search:   search,
		Category: category,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	data := make([]response_models.EventResponse, 0, len(events))
	for i := range events {
		data = append(data, toEventResponse(&events[i]))
	}
	return &response_models.EventListResponse{
		Data: data,
		Meta: response_models.PageMeta{Page: page, PageSize: pageSize, Total: total},
	}, nil
}

// GetEventBySlug serves detail reads through the Redis cache. Stock counts
// in a cached detail can lag up to the TTL; checkout never relies on them.
func (s *EventService) GetEventBySlug(ctx context.Context, eventSlug string) (*response_models.EventResponse, error) {
	cacheKey := "event:" + eventSlug

	if cached, found, err := s.cache.GetValue(ctx, cacheKey); err == nil && found {
		var resp response_models.EventResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return &resp, nil
		}
	}

	event, err := s.events.FindBySlug(ctx, eventSlug)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if event == nil {
		return nil, utils.ErrEventNotFound
	}

	resp := toEventResponse(event)
	if encoded, err := json.Marshal(resp); err == nil {
		if err := s.cache.SetValue(ctx, cacheKey, string(encoded), eventCacheTTL); err != nil {
			logrus.WithField("slug", eventSlug).WithError(err).Warn("event cache write failed")
		}
	}
	return &resp, nil
}

func (s *EventService) CreateEvent(ctx context.Context, organizerID uuid.UUID, request request_models.CreateEventRequest) (*response_models.EventResponse, error) {
	event := &dbm.Event{
		Title:       request.Title,
		Slug:        slug.Make(request.Title),
		Description: request.Description,
		Category:    request.Category,
		Location:    request.Location,
		StartDate:   request.StartDate,
		EndDate:     request.EndDate,
		OrganizerID: organizerID,
	}

	if err := s.events.Insert(ctx, event); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toEventResponse(event)
	return &resp, nil
}

func toEventResponse(event *dbm.Event) response_models.EventResponse {
	tickets := make([]response_models.TicketResponse, 0, len(event.Tickets))
	for _, ticket := range event.Tickets {
		tickets = append(tickets, response_models.TicketResponse{
			ID:         ticket.ID,
			Title:      ticket.Title,
			PriceMinor: ticket.PriceMinor,
			Stock:      ticket.Stock,
		})
	}
	return response_models.EventResponse{
		Title:       event.Title,
		Slug:        event.Slug,
		Description: event.Description,
		Category:    event.Category,
		Location:    event.Location,
		StartDate:   event.StartDate,
		EndDate:     event.EndDate,
		Tickets:     tickets,
	}
}
