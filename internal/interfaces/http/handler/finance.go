package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	settlementapp "github.com/tourops/backend/internal/application/settlement"
)

// FinanceHandler handles settlement ledger API endpoints
type FinanceHandler struct {
	BaseHandler
	financeService *settlementapp.FinanceService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(financeService *settlementapp.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// RegisterRoutes registers finance routes
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings/:id/finance")
	{
		bookings.GET("", h.GetFinance)
		bookings.POST("/pattern", h.AssignPattern)
		bookings.POST("/items", h.AddManualItem)
		bookings.PUT("/lock", h.SetLock)
		bookings.POST("/validate", h.Validate)
		bookings.DELETE("/validate", h.Unvalidate)
	}

	items := rg.Group("/finance/items")
	{
		items.PATCH("/:id", h.PatchItem)
		items.POST("/:id/split-commission", h.SplitCommission)
		items.POST("/settle", h.BulkSettle)
	}

	rg.GET("/finance/validation", h.ListValidation)
}

// GetFinance returns the settlement ledger for a booking
func (h *FinanceHandler) GetFinance(c *gin.Context) {
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	resp, err := h.financeService.GetFinance(c.Request.Context(), bookingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AssignPattern assigns a cost pattern to a booking, replacing its ledger items
func (h *FinanceHandler) AssignPattern(c *gin.Context) {
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	var req settlementapp.AssignPatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.financeService.AssignPattern(c.Request.Context(), bookingID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddManualItem appends a staff-entered line to a booking's ledger
func (h *FinanceHandler) AddManualItem(c *gin.Context) {
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	var req settlementapp.AddManualItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.financeService.AddManualItem(c.Request.Context(), bookingID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// PatchItem applies a manual edit to one ledger item
func (h *FinanceHandler) PatchItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req settlementapp.PatchItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.financeService.PatchItem(c.Request.Context(), itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SplitCommission expands a commission-bearing item into linked split entries
func (h *FinanceHandler) SplitCommission(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req settlementapp.SplitCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.financeService.SplitCommission(c.Request.Context(), itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// BulkSettle marks ledger items paid across bookings
func (h *FinanceHandler) BulkSettle(c *gin.Context) {
	var req settlementapp.BulkSettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.financeService.BulkSettle(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetLock toggles a booking ledger's lock
func (h *FinanceHandler) SetLock(c *gin.Context) {
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	var req settlementapp.SetLockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.financeService.SetLock(c.Request.Context(), bookingID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Validate marks a booking's ledger reviewed
func (h *FinanceHandler) Validate(c *gin.Context) {
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	resp, err := h.financeService.Validate(c.Request.Context(), bookingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Unvalidate clears the validation mark on a booking's ledger
func (h *FinanceHandler) Unvalidate(c *gin.Context) {
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	resp, err := h.financeService.Unvalidate(c.Request.Context(), bookingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListValidation lists ledgers by validation state with per-booking totals
func (h *FinanceHandler) ListValidation(c *gin.Context) {
	validated, err := strconv.ParseBool(c.DefaultQuery("validated", "false"))
	if err != nil {
		h.BadRequest(c, "validated must be true or false")
		return
	}

	entries, listErr := h.financeService.ListValidation(c.Request.Context(), validated)
	if listErr != nil {
		h.HandleError(c, listErr)
		return
	}
	h.Success(c, entries)
}
