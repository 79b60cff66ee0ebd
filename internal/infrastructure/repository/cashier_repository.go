package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/domain/entity"
	domainRepo "github.com/medetbek/servicepos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type cashierRepository struct {
	db *gorm.DB
}

// NewCashierRepository creates a new cashier repository
func NewCashierRepository(db *gorm.DB) domainRepo.CashierRepository {
	return &cashierRepository{db: db}
}

func (r *cashierRepository) Create(ctx context.Context, cashier *entity.Cashier) error {
	return r.db.WithContext(ctx).Create(cashier).Error
}

func (r *cashierRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Cashier, error) {
	var cashier entity.Cashier
	err := r.db.WithContext(ctx).First(&cashier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cashier, nil
}

func (r *cashierRepository) GetByEmail(ctx context.Context, email string) (*entity.Cashier, error) {
	var cashier entity.Cashier
	err := r.db.WithContext(ctx).First(&cashier, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cashier, nil
}

type serviceTypeRepository struct {
	db *gorm.DB
}

// NewServiceTypeRepository creates a new service type repository
func NewServiceTypeRepository(db *gorm.DB) domainRepo.ServiceTypeRepository {
	return &serviceTypeRepository{db: db}
}

func (r *serviceTypeRepository) Create(ctx context.Context, serviceType *entity.ServiceType) error {
	return r.db.WithContext(ctx).Create(serviceType).Error
}

func (r *serviceTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceType, error) {
	var serviceType entity.ServiceType
	err := r.db.WithContext(ctx).First(&serviceType, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &serviceType, nil
}

func (r *serviceTypeRepository) ListByShop(ctx context.Context, shopID uuid.UUID) ([]entity.ServiceType, error) {
	var serviceTypes []entity.ServiceType
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND active = ?", shopID, true).
		Order("name ASC").
		Find(&serviceTypes).Error
	return serviceTypes, err
}
