package services

import (
	"context"

	dbm "tiketku/internal/models/db_models"
	"tiketku/internal/models/request_models"
	"tiketku/internal/models/response_models"
	"tiketku/internal/repositories"
	"tiketku/pkg/utils"
)

type TicketServiceInterface interface {
	ListByEvent(ctx context.Context, eventSlug string, page, pageSize int) ([]response_models.TicketResponse, *response_models.PageMeta, error)
	CreateTicket(ctx context.Context, request request_models.CreateTicketRequest) (*response_models.TicketResponse, error)
}

type TicketService struct {
	tickets repositories.TicketRepository
	events  repositories.EventRepository
}

func NewTicketService(tickets repositories.TicketRepository, events repositories.EventRepository) TicketServiceInterface {
	return &TicketService{tickets: tickets, events: events}
}

func (s *TicketService) ListByEvent(ctx context.Context, eventSlug string, page, pageSize int) ([]response_models.TicketResponse, *response_models.PageMeta, error) {
	event, err := s.events.FindBySlug(ctx, eventSlug)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if event == nil {
		return nil, nil, utils.ErrEventNotFound
	}

	tickets, total, err := s.tickets.ListByEvent(ctx, event.ID, page, pageSize)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}

	data := make([]response_models.TicketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		data = append(data, response_models.TicketResponse{
			ID:         ticket.ID,
			Title:      ticket.Title,
			PriceMinor: ticket.PriceMinor,
			Stock:      ticket.Stock,
		})
	}
	meta := &response_models.PageMeta{Page: page, PageSize: pageSize, Total: total}
	return data, meta, nil
}

func (s *TicketService) CreateTicket(ctx context.Context, request request_models.CreateTicketRequest) (*response_models.TicketResponse, error) {
	event, err := s.events.FindBySlug(ctx, request.EventSlug)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if event == nil {
		return nil, utils.ErrEventNotFound
	}

	ticket := &dbm.Ticket{
		EventID:    event.ID,
		Title:      request.Title,
		PriceMinor: request.PriceMinor,
		Stock:      request.Stock,
	}
	if err := s.tickets.Insert(ctx, ticket); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.TicketResponse{
		ID:         ticket.ID,
		Title:      ticket.Title,
		PriceMinor: ticket.PriceMinor,
		Stock:      ticket.Stock,
	}, nil
}
