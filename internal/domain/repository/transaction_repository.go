package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/domain/entity"
	"github.com/medetbek/servicepos-api/internal/domain/enum"
	"github.com/medetbek/servicepos-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// PostInput describes a ledger append. Amount is already signed; sign
// application for deposits/withdrawals happens in the service layer.
type PostInput struct {
	PaymentMethodID uuid.UUID
	Type            enum.TransactionType
	Amount          decimal.Decimal
	Note            string
	CreatedBy       uuid.UUID
	ShiftID         *uuid.UUID
	OrderID         *uuid.UUID

	// DisallowNegative makes the post fail with ErrInsufficientBalance if
	// the resulting balance would drop below zero. Set for cash withdrawals.
	DisallowNegative bool
}

// TransactionFilterParams contains filtering parameters for ledger queries
type TransactionFilterParams struct {
	Cursor    *pagination.CursorParams
	StartDate *time.Time
	EndDate   *time.Time
}

// TransactionRepository defines the interface for the append-only ledger.
// Post is the single mutating operation; entries are never updated or deleted.
type TransactionRepository interface {
	// Post atomically locks the payment method row, chains
	// balanceBefore/balanceAfter, appends the entry and writes through the
	// cached balance, all inside one database transaction.
	Post(ctx context.Context, input *PostInput) (*entity.Transaction, error)

	// SumAmounts replays the log for one payment method.
	SumAmounts(ctx context.Context, paymentMethodID uuid.UUID) (decimal.Decimal, error)

	// List returns entries newest first, keyset-paginated.
	List(ctx context.Context, paymentMethodID uuid.UUID, params *TransactionFilterParams) ([]entity.Transaction, error)

	// ListByOrder returns all entries linked to a service order, oldest first.
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.Transaction, error)

	// SumShiftTotals aggregates SALE/REFUND entries linked to a shift into
	// the close-time snapshot, split cash vs non-cash by method source.
	SumShiftTotals(ctx context.Context, shiftID uuid.UUID) (*entity.ShiftTotals, error)
}
