package handler

import (
	"github.com/gin-gonic/gin"
	bookingapp "github.com/tourops/backend/internal/application/booking"
)

// BookingHandler handles booking API endpoints: ingestion events, operator
// actions and status resync
type BookingHandler struct {
	BaseHandler
	bookingService *bookingapp.BookingService
	eventService   *bookingapp.EventService
	statusService  *bookingapp.StatusService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(
	bookingService *bookingapp.BookingService,
	eventService *bookingapp.EventService,
	statusService *bookingapp.StatusService,
) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		eventService:   eventService,
		statusService:  statusService,
	}
}

// RegisterRoutes registers booking routes
func (h *BookingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	{
		bookings.POST("/events", h.HandleEvent)
		bookings.POST("/status/resync", h.ResyncStatuses)
		bookings.GET("/:id", h.GetBooking)
		bookings.PUT("/:id/driver", h.AssignDriver)
		bookings.POST("/:id/cancel", h.Cancel)
		bookings.POST("/:id/no-show", h.MarkNoShow)
		bookings.POST("/:id/status/resolve", h.ResolveStatus)
	}
}

// HandleEvent consumes one booking lifecycle event from the ingestion subsystem
func (h *BookingHandler) HandleEvent(c *gin.Context) {
	var req bookingapp.BookingEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.eventService.HandleEvent(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if resp.Duplicate {
		h.Success(c, resp)
		return
	}
	h.Created(c, resp)
}

// GetBooking returns one booking
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	resp, err := h.bookingService.GetBooking(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AssignDriver attaches a driver to a booking
func (h *BookingHandler) AssignDriver(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	var req bookingapp.AssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.bookingService.AssignDriver(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel applies the CANCELLED terminal override
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	resp, err := h.bookingService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MarkNoShow applies the NO_SHOW terminal override
func (h *BookingHandler) MarkNoShow(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	resp, err := h.bookingService.MarkNoShow(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ResolveStatus recomputes one booking's status on demand
func (h *BookingHandler) ResolveStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	changed, err := h.statusService.ResolveBooking(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"changed": changed})
}

// ResyncStatuses recomputes the status of every active booking
func (h *BookingHandler) ResyncStatuses(c *gin.Context) {
	result, err := h.statusService.ResyncAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
