package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tiketku/internal/models/request_models"
	"tiketku/internal/services"
	"tiketku/pkg/utils"
)

type TicketController struct {
	ticketService services.TicketServiceInterface
}

func NewTicketController(ticketService services.TicketServiceInterface) *TicketController {
	return &TicketController{ticketService: ticketService}
}

// ListByEvent godoc
// @Summary List tickets for an event
// @Tags Ticket
// @Produce json
// @Param slug path string true "Event slug"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {array} response_models.TicketResponse
// @Router /events/{slug}/tickets [get]
func (t *TicketController) ListByEvent(c *gin.Context) {
	eventSlug := c.Param("slug")
	if eventSlug == "" {
		utils.RespondError(c, http.StatusBadRequest, "Event slug is required")
		return
	}

	page, pageSize, ok := paginationParams(c)
	if !ok {
		return
	}

	tickets, meta, err := t.ticketService.ListByEvent(c.Request.Context(), eventSlug, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"data": tickets, "meta": meta}, "Tickets fetched successfully")
}

// CreateTicket godoc
// @Summary Create a ticket type
// @Tags Ticket
// @Accept json
// @Produce json
// @Param request body request_models.CreateTicketRequest true "Ticket payload"
// @Success 200 {object} response_models.TicketResponse
// @Security BearerAuth
// @Router /tickets [post]
func (t *TicketController) CreateTicket(c *gin.Context) {
	var req request_models.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid ticket payload")
		return
	}

	ticket, err := t.ticketService.CreateTicket(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, ticket, "Ticket created successfully")
}
