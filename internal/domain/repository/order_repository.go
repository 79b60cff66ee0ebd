package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/domain/entity"
	"github.com/medetbek/servicepos-api/internal/domain/enum"
	"github.com/medetbek/servicepos-api/pkg/pagination"
)

// OrderRepository defines the interface for service order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.ServiceOrder, staffIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceOrder, error)
	Update(ctx context.Context, order *entity.ServiceOrder) error
	List(ctx context.Context, shopID uuid.UUID, params *OrderFilterParams) ([]entity.ServiceOrder, int64, error)
	AttachStaff(ctx context.Context, orderID uuid.UUID, staffIDs []uuid.UUID) error

	// CompleteWithSale persists the completed order and the SALE ledger entry
	// in one database transaction; a failure of either write rolls back both.
	CompleteWithSale(ctx context.Context, order *entity.ServiceOrder, sale *PostInput) (*entity.Transaction, error)

	// Cancel persists the cancelled order and, if SALE entries are already
	// linked to it, posts offsetting REFUND entries in the same transaction.
	// The original entries are never touched.
	Cancel(ctx context.Context, order *entity.ServiceOrder, actor uuid.UUID) ([]entity.Transaction, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	ShiftID    *uuid.UUID
	Status     *enum.OrderStatus
}
