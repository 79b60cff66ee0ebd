package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/application/service"
	"github.com/medetbek/servicepos-api/internal/presentation/http/dto/response"
)

// ShiftHandler handles shift lifecycle HTTP requests
type ShiftHandler struct {
	shiftService *service.ShiftService
}

// NewShiftHandler creates a new shift handler
func NewShiftHandler(shiftService *service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: shiftService}
}

// Open handles opening a shift on a register
func (h *ShiftHandler) Open(c *gin.Context) {
	registerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid register ID")
		return
	}

	cashierID := GetCashierID(c)
	if cashierID == nil {
		response.Unauthorized(c, "Cashier not authenticated")
		return
	}

	shift, err := h.shiftService.Open(c.Request.Context(), registerID, *cashierID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Shift opened successfully", shift)
}

// Close handles closing a shift
func (h *ShiftHandler) Close(c *gin.Context) {
	shiftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid shift ID")
		return
	}

	var req struct {
		Comment string `json:"comment"`
	}
	// Body is optional on close
	_ = c.ShouldBindJSON(&req)

	shift, err := h.shiftService.Close(c.Request.Context(), shiftID, req.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shift closed successfully", shift)
}

// Pause handles pausing a shift
func (h *ShiftHandler) Pause(c *gin.Context) {
	shiftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid shift ID")
		return
	}

	shift, err := h.shiftService.Pause(c.Request.Context(), shiftID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shift paused successfully", shift)
}

// Resume handles resuming a paused shift
func (h *ShiftHandler) Resume(c *gin.Context) {
	shiftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid shift ID")
		return
	}

	shift, err := h.shiftService.Resume(c.Request.Context(), shiftID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shift resumed successfully", shift)
}

// Get handles getting a shift with its totals
func (h *ShiftHandler) Get(c *gin.Context) {
	shiftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid shift ID")
		return
	}

	detail, err := h.shiftService.Get(c.Request.Context(), shiftID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shift retrieved successfully", detail)
}

// CheckUnclosed handles the stale-shift lookup used by clients at login
func (h *ShiftHandler) CheckUnclosed(c *gin.Context) {
	shopID, err := uuid.Parse(c.Param("shop_id"))
	if err != nil {
		response.BadRequest(c, "Invalid shop ID")
		return
	}

	cashierID := GetCashierID(c)
	if queryID := c.Query("cashier_id"); queryID != "" {
		parsed, err := uuid.Parse(queryID)
		if err != nil {
			response.BadRequest(c, "Invalid cashier ID")
			return
		}
		cashierID = &parsed
	}
	if cashierID == nil {
		response.Unauthorized(c, "Cashier not authenticated")
		return
	}

	result, err := h.shiftService.CheckUnclosed(c.Request.Context(), shopID, *cashierID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Unclosed shift check completed", result)
}
