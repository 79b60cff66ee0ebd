package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/domain/entity"
	"github.com/medetbek/servicepos-api/internal/domain/enum"
)

// RegisterRepository defines the interface for cash register data operations
type RegisterRepository interface {
	Create(ctx context.Context, register *entity.CashRegister) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CashRegister, error)
	ListByShop(ctx context.Context, shopID uuid.UUID) ([]entity.CashRegister, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.RegisterStatus) error
}
