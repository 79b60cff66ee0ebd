package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/application/service"
	"github.com/medetbek/servicepos-api/internal/domain/enum"
	"github.com/medetbek/servicepos-api/internal/domain/repository"
	"github.com/medetbek/servicepos-api/internal/presentation/http/dto/response"
	"github.com/medetbek/servicepos-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// PaymentMethodHandler handles payment method and ledger HTTP requests
type PaymentMethodHandler struct {
	methodService *service.PaymentMethodService
	ledgerService *service.LedgerService
}

// NewPaymentMethodHandler creates a new payment method handler
func NewPaymentMethodHandler(methodService *service.PaymentMethodService, ledgerService *service.LedgerService) *PaymentMethodHandler {
	return &PaymentMethodHandler{
		methodService: methodService,
		ledgerService: ledgerService,
	}
}

// Bind handles binding a payment method to a register
func (h *PaymentMethodHandler) Bind(c *gin.Context) {
	registerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid register ID")
		return
	}

	var req struct {
		Source int    `json:"source"`
		Name   string `json:"name"`
		Code   string `json:"code"`
		Scope  int    `json:"scope"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	method, err := h.methodService.Bind(c.Request.Context(), registerID, &service.BindInput{
		Source: enum.PaymentSource(req.Source),
		Name:   req.Name,
		Code:   req.Code,
		Scope:  enum.PaymentScope(req.Scope),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment method bound successfully", method)
}

// List handles listing a register's payment methods
func (h *PaymentMethodHandler) List(c *gin.Context) {
	registerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid register ID")
		return
	}

	activeOnly := c.Query("active_only") == "true"

	methods, err := h.methodService.ListMethods(c.Request.Context(), registerID, activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment methods retrieved successfully", methods)
}

// UpdateActiveSet handles enabling/disabling bindings on a register
func (h *PaymentMethodHandler) UpdateActiveSet(c *gin.Context) {
	registerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid register ID")
		return
	}

	var req struct {
		Items []service.ActiveSetItem `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.methodService.UpdateActiveSet(c.Request.Context(), registerID, req.Items); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Active set updated successfully", nil)
}

// UpdateStatus handles activating/deactivating a payment method shop-wide
func (h *PaymentMethodHandler) UpdateStatus(c *gin.Context) {
	methodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment method ID")
		return
	}

	var req struct {
		Status int `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.methodService.SetStatus(c.Request.Context(), methodID, enum.MethodStatus(req.Status)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment method status updated successfully", nil)
}

type manualPostRequest struct {
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Note    string          `json:"note"`
	ShiftID *uuid.UUID      `json:"shift_id"`
}

func (h *PaymentMethodHandler) manualInput(c *gin.Context) (*service.ManualPostInput, bool) {
	methodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment method ID")
		return nil, false
	}

	cashierID := GetCashierID(c)
	if cashierID == nil {
		response.Unauthorized(c, "Cashier not authenticated")
		return nil, false
	}

	var req manualPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return nil, false
	}

	return &service.ManualPostInput{
		PaymentMethodID: methodID,
		Amount:          req.Amount,
		Note:            req.Note,
		Actor:           *cashierID,
		ShiftID:         req.ShiftID,
	}, true
}

// Deposit handles posting a DEPOSIT entry
func (h *PaymentMethodHandler) Deposit(c *gin.Context) {
	input, ok := h.manualInput(c)
	if !ok {
		return
	}

	tx, err := h.ledgerService.Deposit(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Deposit posted successfully", tx)
}

// Withdraw handles posting a WITHDRAWAL entry
func (h *PaymentMethodHandler) Withdraw(c *gin.Context) {
	input, ok := h.manualInput(c)
	if !ok {
		return
	}

	tx, err := h.ledgerService.Withdraw(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Withdrawal posted successfully", tx)
}

// Purchase handles posting a PURCHASE entry
func (h *PaymentMethodHandler) Purchase(c *gin.Context) {
	input, ok := h.manualInput(c)
	if !ok {
		return
	}

	tx, err := h.ledgerService.PostPurchase(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase posted successfully", tx)
}

// Adjustment handles posting a signed ADJUSTMENT entry
func (h *PaymentMethodHandler) Adjustment(c *gin.Context) {
	input, ok := h.manualInput(c)
	if !ok {
		return
	}

	tx, err := h.ledgerService.PostAdjustment(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Adjustment posted successfully", tx)
}

// Balance handles getting the reconciled balance of a payment method
func (h *PaymentMethodHandler) Balance(c *gin.Context) {
	methodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment method ID")
		return
	}

	balance, err := h.ledgerService.GetBalance(c.Request.Context(), methodID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Balance retrieved successfully", gin.H{
		"payment_method_id": methodID,
		"balance":           balance,
	})
}

// Transactions handles listing a payment method's ledger entries
func (h *PaymentMethodHandler) Transactions(c *gin.Context) {
	methodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment method ID")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))

	params := &repository.TransactionFilterParams{
		Cursor: &pagination.CursorParams{
			Cursor: c.Query("cursor"),
			Limit:  limit,
		},
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.ledgerService.ListTransactions(c.Request.Context(), methodID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transactions retrieved successfully", result)
}
