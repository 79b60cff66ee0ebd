package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/domain/entity"
	"github.com/medetbek/servicepos-api/internal/domain/enum"
	domainRepo "github.com/medetbek/servicepos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type registerRepository struct {
	db *gorm.DB
}

// NewRegisterRepository creates a new cash register repository
func NewRegisterRepository(db *gorm.DB) domainRepo.RegisterRepository {
	return &registerRepository{db: db}
}

func (r *registerRepository) Create(ctx context.Context, register *entity.CashRegister) error {
	return r.db.WithContext(ctx).Create(register).Error
}

func (r *registerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CashRegister, error) {
	var register entity.CashRegister
	err := r.db.WithContext(ctx).First(&register, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &register, nil
}

func (r *registerRepository) ListByShop(ctx context.Context, shopID uuid.UUID) ([]entity.CashRegister, error) {
	var registers []entity.CashRegister
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("created_at ASC").
		Find(&registers).Error
	return registers, err
}

func (r *registerRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.RegisterStatus) error {
	return r.db.WithContext(ctx).Model(&entity.CashRegister{}).
		Where("id = ?", id).
		Update("status", status).Error
}
