package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tiketku/internal/models/request_models"
	"tiketku/internal/services"
	"tiketku/pkg/utils"
)

type EventController struct {
	eventService services.EventServiceInterface
}

func NewEventController(eventService services.EventServiceInterface) *EventController {
	return &EventController{eventService: eventService}
}

// ListEvents godoc
// @Summary List events
// @Description Paginated event catalog with optional title search and category filter
// @Tags Event
// @Produce json
// @Param search query string false "Title search"
// @Param category query string false "Category filter"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} response_models.EventListResponse
// @Router /events [get]
func (e *EventController) ListEvents(c *gin.Context) {
	page, pageSize, ok := paginationParams(c)
	if !ok {
		return
	}

	events, err := e.eventService.ListEvents(c.Request.Context(),
		c.Query("search"), c.Query("category"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, events, "Events fetched successfully")
}

// GetEvent godoc
// @Summary Get event by slug
// @Tags Event
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} response_models.EventResponse
// @Failure 404 {object} utils.APIResponse
// @Router /events/{slug} [get]
func (e *EventController) GetEvent(c *gin.Context) {
	eventSlug := c.Param("slug")
	if eventSlug == "" {
		utils.RespondError(c, http.StatusBadRequest, "Event slug is required")
		return
	}

	event, err := e.eventService.GetEventBySlug(c.Request.Context(), eventSlug)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, event, "Event fetched successfully")
}

// CreateEvent godoc
// @Summary Create an event
// @Tags Event
// @Accept json
// @Produce json
// @Param request body request_models.CreateEventRequest true "Event payload"
// @Success 200 {object} response_models.EventResponse
// @Security BearerAuth
// @Router /events [post]
func (e *EventController) CreateEvent(c *gin.Context) {
	var req request_models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid event payload")
		return
	}

	organizerID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	event, err := e.eventService.CreateEvent(c.Request.Context(), organizerID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, event, "Event created successfully")
}

func paginationParams(c *gin.Context) (int, int, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return 0, 0, false
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return 0, 0, false
	}
	return page, pageSize, true
}
