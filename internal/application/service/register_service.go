package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/domain/entity"
	"github.com/medetbek/servicepos-api/internal/domain/enum"
	"github.com/medetbek/servicepos-api/internal/domain/repository"
	"github.com/medetbek/servicepos-api/pkg/apperror"
)

// RegisterService handles cash register management
type RegisterService struct {
	registerRepo repository.RegisterRepository
	shiftRepo    repository.ShiftRepository
}

// NewRegisterService creates a new register service
func NewRegisterService(registerRepo repository.RegisterRepository, shiftRepo repository.ShiftRepository) *RegisterService {
	return &RegisterService{
		registerRepo: registerRepo,
		shiftRepo:    shiftRepo,
	}
}

// Create adds a register to the shop.
func (s *RegisterService) Create(ctx context.Context, shopID uuid.UUID, name string, regType enum.RegisterType) (*entity.CashRegister, error) {
	if name == "" {
		return nil, apperror.NewInvalidInputError("Register name is required")
	}
	register := &entity.CashRegister{
		ShopID: shopID,
		Name:   name,
		Type:   regType,
		Status: enum.RegisterStatusActive,
	}
	if err := s.registerRepo.Create(ctx, register); err != nil {
		return nil, err
	}
	return register, nil
}

// Get returns one register.
func (s *RegisterService) Get(ctx context.Context, id uuid.UUID) (*entity.CashRegister, error) {
	register, err := s.registerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if register == nil {
		return nil, apperror.NewNotFoundError("Register")
	}
	return register, nil
}

// List returns the shop's registers.
func (s *RegisterService) List(ctx context.Context, shopID uuid.UUID) ([]entity.CashRegister, error) {
	return s.registerRepo.ListByShop(ctx, shopID)
}

// SetStatus changes a register's availability. A register with a working
// shift cannot be sent to maintenance.
func (s *RegisterService) SetStatus(ctx context.Context, id uuid.UUID, status enum.RegisterStatus) (*entity.CashRegister, error) {
	register, err := s.registerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if register == nil {
		return nil, apperror.NewNotFoundError("Register")
	}

	if status == enum.RegisterStatusMaintenance {
		open, err := s.shiftRepo.GetOpenByRegister(ctx, id)
		if err != nil {
			return nil, err
		}
		if open != nil {
			return nil, apperror.NewStateError("Register has a working shift")
		}
	}

	if err := s.registerRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	register.Status = status
	return register, nil
}
