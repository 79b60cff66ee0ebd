package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/domain/entity"
	"github.com/medetbek/servicepos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// PaymentMethodRepository defines the interface for payment method data operations
type PaymentMethodRepository interface {
	Create(ctx context.Context, method *entity.PaymentMethod) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PaymentMethod, error)

	// FindShared resolves an existing warehouse-level record for the shop so
	// shared bindings reuse one balance instead of creating duplicates.
	FindShared(ctx context.Context, shopID uuid.UUID, source enum.PaymentSource, code string) (*entity.PaymentMethod, error)

	// FindDedicated resolves an existing register-scoped record so a repeated
	// dedicated bind does not mint another method row.
	FindDedicated(ctx context.Context, registerID uuid.UUID, source enum.PaymentSource, code string) (*entity.PaymentMethod, error)

	// ListByRegister returns methods bound to the register. With activeOnly,
	// only bindings with is_active=true and methods with status=Active.
	ListByRegister(ctx context.Context, registerID uuid.UUID, activeOnly bool) ([]entity.PaymentMethod, error)

	CountActiveByRegister(ctx context.Context, registerID uuid.UUID) (int64, error)

	Bind(ctx context.Context, binding *entity.RegisterPaymentMethod) error
	GetBinding(ctx context.Context, registerID, methodID uuid.UUID) (*entity.RegisterPaymentMethod, error)
	SetBindingActive(ctx context.Context, registerID, methodID uuid.UUID, active bool) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.MethodStatus) error

	// ReconcileBalance re-derives the balance from the transaction log under
	// the payment method row lock, writes it through, and returns it. Used to
	// repair a detected drift between the cached balance and the log.
	ReconcileBalance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
}
