package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/application/service"
	"github.com/medetbek/servicepos-api/internal/domain/enum"
	"github.com/medetbek/servicepos-api/internal/domain/repository"
	"github.com/medetbek/servicepos-api/internal/presentation/http/dto/response"
	"github.com/medetbek/servicepos-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// OrderHandler handles service order HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create handles creating an order under a shift
func (h *OrderHandler) Create(c *gin.Context) {
	var req struct {
		ShiftID       uuid.UUID   `json:"shift_id" binding:"required"`
		ServiceTypeID uuid.UUID   `json:"service_type_id" binding:"required"`
		VehicleID     uuid.UUID   `json:"vehicle_id" binding:"required"`
		ClientID      *uuid.UUID  `json:"client_id"`
		StaffIDs      []uuid.UUID `json:"staff_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), &service.CreateOrderInput{
		ShiftID:       req.ShiftID,
		ServiceTypeID: req.ServiceTypeID,
		VehicleID:     req.VehicleID,
		ClientID:      req.ClientID,
		StaffIDs:      req.StaffIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// List handles listing orders with shift/status filters
func (h *OrderHandler) List(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "Cashier not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
	}

	if shiftIDStr := c.Query("shift_id"); shiftIDStr != "" {
		if shiftID, err := uuid.Parse(shiftIDStr); err == nil {
			params.ShiftID = &shiftID
		}
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.OrderStatus(statusInt)
			params.Status = &status
		}
	}

	result, err := h.orderService.List(c.Request.Context(), *shopID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// Get handles getting a single order
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// UpdatePrice handles applying a discount to an order
func (h *OrderHandler) UpdatePrice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req struct {
		DiscountPercent int `json:"discount_percent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.ApplyDiscount(c.Request.Context(), id, req.DiscountPercent)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order price updated successfully", order)
}

// AttachStaff handles assigning staff to an order
func (h *OrderHandler) AttachStaff(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req struct {
		StaffIDs []uuid.UUID `json:"staff_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.AttachStaff(c.Request.Context(), id, req.StaffIDs)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff attached successfully", order)
}

// Complete handles settling an order with a payment method
func (h *OrderHandler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	cashierID := GetCashierID(c)
	if cashierID == nil {
		response.Unauthorized(c, "Cashier not authenticated")
		return
	}

	var req struct {
		PaymentMethodID uuid.UUID       `json:"payment_method_id" binding:"required"`
		FinalPrice      decimal.Decimal `json:"final_price" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, tx, err := h.orderService.Complete(c.Request.Context(), &service.CompleteOrderInput{
		OrderID:         id,
		PaymentMethodID: req.PaymentMethodID,
		FinalPrice:      req.FinalPrice,
		Actor:           *cashierID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order completed successfully", gin.H{
		"order":       order,
		"transaction": tx,
	})
}

// Cancel handles cancelling an order
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	cashierID := GetCashierID(c)
	if cashierID == nil {
		response.Unauthorized(c, "Cashier not authenticated")
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)

	order, err := h.orderService.Cancel(c.Request.Context(), id, *cashierID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order cancelled successfully", order)
}
