package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/domain/entity"
	"github.com/medetbek/servicepos-api/internal/domain/enum"
	"github.com/medetbek/servicepos-api/internal/domain/repository"
	"github.com/medetbek/servicepos-api/pkg/apperror"
	"github.com/medetbek/servicepos-api/pkg/pagination"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// OrderService handles service order lifecycle business logic
type OrderService struct {
	orderRepo       repository.OrderRepository
	shiftRepo       repository.ShiftRepository
	serviceTypeRepo repository.ServiceTypeRepository
	methodRepo      repository.PaymentMethodRepository
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	shiftRepo repository.ShiftRepository,
	serviceTypeRepo repository.ServiceTypeRepository,
	methodRepo repository.PaymentMethodRepository,
) *OrderService {
	return &OrderService{
		orderRepo:       orderRepo,
		shiftRepo:       shiftRepo,
		serviceTypeRepo: serviceTypeRepo,
		methodRepo:      methodRepo,
	}
}

// CreateOrderInput represents an order creation request
type CreateOrderInput struct {
	ShiftID       uuid.UUID
	ServiceTypeID uuid.UUID
	VehicleID     uuid.UUID
	ClientID      *uuid.UUID
	StaffIDs      []uuid.UUID
}

// Create opens a new order under a working shift. The price is copied from
// the service type catalog at this moment. With staff assigned the order
// starts Active, otherwise it stays Pending until staff is attached.
func (s *OrderService) Create(ctx context.Context, input *CreateOrderInput) (*entity.ServiceOrder, error) {
	shift, err := s.shiftRepo.GetByID(ctx, input.ShiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.NewNotFoundError("Shift")
	}
	if !shift.Status.IsWorking() {
		return nil, apperror.NewStateError("Orders can only be created under an open shift")
	}

	serviceType, err := s.serviceTypeRepo.GetByID(ctx, input.ServiceTypeID)
	if err != nil {
		return nil, err
	}
	if serviceType == nil {
		return nil, apperror.NewNotFoundError("Service type")
	}

	status := enum.OrderStatusPending
	if len(input.StaffIDs) > 0 {
		status = enum.OrderStatusActive
	}

	order := &entity.ServiceOrder{
		ShopID:          serviceType.ShopID,
		ShiftID:         shift.ID,
		ClientID:        input.ClientID,
		VehicleID:       input.VehicleID,
		ServiceTypeID:   input.ServiceTypeID,
		Status:          status,
		OriginalPrice:   serviceType.Price,
		DiscountPercent: 0,
		FinalPrice:      serviceType.Price,
		StartTime:       time.Now().UTC(),
	}

	if err := s.orderRepo.Create(ctx, order, input.StaffIDs); err != nil {
		return nil, err
	}

	log.Info().
		Str("order_id", order.ID.String()).
		Str("shift_id", shift.ID.String()).
		Str("status", order.Status.String()).
		Msg("Order created")

	return order, nil
}

// ApplyDiscount sets the discount percent and recomputes the final price.
func (s *OrderService) ApplyDiscount(ctx context.Context, orderID uuid.UUID, percent int) (*entity.ServiceOrder, error) {
	if percent < 0 || percent > 100 {
		return nil, apperror.NewInvalidInputError("Discount percent must be between 0 and 100")
	}

	order, err := s.getEditable(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order.DiscountPercent = percent
	order.FinalPrice = entity.ComputeFinalPrice(order.OriginalPrice, percent)

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// AttachStaff assigns staff to the order. A Pending order with its first
// staff assignment becomes Active.
func (s *OrderService) AttachStaff(ctx context.Context, orderID uuid.UUID, staffIDs []uuid.UUID) (*entity.ServiceOrder, error) {
	if len(staffIDs) == 0 {
		return nil, apperror.NewInvalidInputError("At least one staff member is required")
	}

	order, err := s.getEditable(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.AttachStaff(ctx, orderID, staffIDs); err != nil {
		return nil, err
	}

	if order.Status == enum.OrderStatusPending {
		order.Status = enum.OrderStatusActive
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// CompleteOrderInput represents an order completion request. FinalPrice is
// the amount the client showed the customer; it must match the server-side
// price so a stale screen cannot charge the wrong total.
type CompleteOrderInput struct {
	OrderID         uuid.UUID
	PaymentMethodID uuid.UUID
	FinalPrice      decimal.Decimal
	Actor           uuid.UUID
}

// Complete settles an active order with the chosen payment method. The order
// update and the SALE ledger entry commit or roll back together.
func (s *OrderService) Complete(ctx context.Context, input *CompleteOrderInput) (*entity.ServiceOrder, *entity.Transaction, error) {
	order, err := s.orderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, apperror.NewNotFoundError("Order")
	}
	if order.Status != enum.OrderStatusActive {
		return nil, nil, apperror.NewStateError("Only an active order can be completed")
	}
	if !order.FinalPrice.IsPositive() {
		return nil, nil, apperror.NewInvalidInputError("Order final price must be positive")
	}
	if !input.FinalPrice.Equal(order.FinalPrice) {
		return nil, nil, apperror.NewInvalidInputError("Final price does not match the order")
	}

	shift, err := s.shiftRepo.GetByID(ctx, order.ShiftID)
	if err != nil {
		return nil, nil, err
	}
	if shift == nil || !shift.Status.IsWorking() {
		return nil, nil, apperror.NewStateError("Order's shift is no longer open")
	}

	activeCount, err := s.methodRepo.CountActiveByRegister(ctx, shift.RegisterID)
	if err != nil {
		return nil, nil, err
	}
	if activeCount == 0 {
		return nil, nil, apperror.NewStateError("No payment method available on this register")
	}

	method, err := s.methodRepo.GetByID(ctx, input.PaymentMethodID)
	if err != nil {
		return nil, nil, err
	}
	if method == nil {
		return nil, nil, apperror.NewNotFoundError("Payment method")
	}
	if method.Status != enum.MethodStatusActive {
		return nil, nil, apperror.NewStateError("Payment method is not active")
	}
	binding, err := s.methodRepo.GetBinding(ctx, shift.RegisterID, input.PaymentMethodID)
	if err != nil {
		return nil, nil, err
	}
	if binding == nil || !binding.IsActive {
		return nil, nil, apperror.NewStateError("Payment method is not enabled on this register")
	}

	now := time.Now().UTC()
	order.Status = enum.OrderStatusCompleted
	order.EndTime = &now

	sale := &repository.PostInput{
		PaymentMethodID: input.PaymentMethodID,
		Type:            enum.TransactionTypeSale,
		Amount:          order.FinalPrice,
		Note:            fmt.Sprintf("Order %s", order.ID),
		CreatedBy:       input.Actor,
		ShiftID:         &order.ShiftID,
		OrderID:         &order.ID,
	}

	tx, err := s.orderRepo.CompleteWithSale(ctx, order, sale)
	if err != nil {
		// The shift check above is only a fast path; the repository re-checks
		// under the shift row lock and reports a close that won the race.
		if errors.Is(err, repository.ErrShiftNotOpen) {
			return nil, nil, apperror.NewStateError("Order's shift is no longer open")
		}
		return nil, nil, err
	}

	log.Info().
		Str("order_id", order.ID.String()).
		Str("transaction_id", tx.ID.String()).
		Str("amount", order.FinalPrice.String()).
		Msg("Order completed")

	return order, tx, nil
}

// Cancel voids a pending or active order. Pending orders are pre-payment, so
// abandoning one from the creation flow cancels it the same way. Any SALE
// entries already linked to the order are offset with REFUND entries in the
// same transaction.
func (s *OrderService) Cancel(ctx context.Context, orderID, actor uuid.UUID, reason string) (*entity.ServiceOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Status.IsTerminal() {
		return nil, apperror.NewStateError("Order is already finished")
	}

	now := time.Now().UTC()
	order.Status = enum.OrderStatusCancelled
	order.EndTime = &now
	order.CancelReason = reason

	refunds, err := s.orderRepo.Cancel(ctx, order, actor)
	if err != nil {
		return nil, err
	}
	if len(refunds) > 0 {
		log.Info().
			Str("order_id", order.ID.String()).
			Int("refunds", len(refunds)).
			Msg("Order cancelled with refunds")
	}
	return order, nil
}

// Get returns one order.
func (s *OrderService) Get(ctx context.Context, orderID uuid.UUID) (*entity.ServiceOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// List returns the shop's orders, filterable by shift and status.
func (s *OrderService) List(ctx context.Context, shopID uuid.UUID, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.ServiceOrder], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	orders, total, err := s.orderRepo.List(ctx, shopID, params)
	if err != nil {
		return nil, err
	}
	meta := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, meta), nil
}

func (s *OrderService) getEditable(ctx context.Context, orderID uuid.UUID) (*entity.ServiceOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Status.IsTerminal() {
		return nil, apperror.NewStateError("Order is already finished")
	}
	return order, nil
}
