package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/domain/entity"
)

// CashierRepository defines the interface for cashier data operations
type CashierRepository interface {
	Create(ctx context.Context, cashier *entity.Cashier) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Cashier, error)
	GetByEmail(ctx context.Context, email string) (*entity.Cashier, error)
}

// ServiceTypeRepository exposes the slice of the external service catalog the
// order engine reads prices from.
type ServiceTypeRepository interface {
	Create(ctx context.Context, serviceType *entity.ServiceType) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceType, error)
	ListByShop(ctx context.Context, shopID uuid.UUID) ([]entity.ServiceType, error)
}
