package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/domain/entity"
	"github.com/medetbek/servicepos-api/internal/domain/enum"
	domainRepo "github.com/medetbek/servicepos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type paymentMethodRepository struct {
	db *gorm.DB
}

// NewPaymentMethodRepository creates a new payment method repository
func NewPaymentMethodRepository(db *gorm.DB) domainRepo.PaymentMethodRepository {
	return &paymentMethodRepository{db: db}
}

func (r *paymentMethodRepository) Create(ctx context.Context, method *entity.PaymentMethod) error {
	return r.db.WithContext(ctx).Create(method).Error
}

func (r *paymentMethodRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PaymentMethod, error) {
	var method entity.PaymentMethod
	err := r.db.WithContext(ctx).First(&method, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &method, nil
}

func (r *paymentMethodRepository) FindShared(ctx context.Context, shopID uuid.UUID, source enum.PaymentSource, code string) (*entity.PaymentMethod, error) {
	var method entity.PaymentMethod
	query := r.db.WithContext(ctx).
		Where("shop_id = ? AND scope = ? AND source = ?", shopID, enum.PaymentScopeShared, source)
	if source == enum.PaymentSourceCustom {
		query = query.Where("code = ?", code)
	}
	err := query.First(&method).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &method, nil
}

func (r *paymentMethodRepository) FindDedicated(ctx context.Context, registerID uuid.UUID, source enum.PaymentSource, code string) (*entity.PaymentMethod, error) {
	var method entity.PaymentMethod
	query := r.db.WithContext(ctx).
		Where("register_id = ? AND scope = ? AND source = ?", registerID, enum.PaymentScopeDedicated, source)
	if source == enum.PaymentSourceCustom {
		query = query.Where("code = ?", code)
	}
	err := query.First(&method).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &method, nil
}

func (r *paymentMethodRepository) ListByRegister(ctx context.Context, registerID uuid.UUID, activeOnly bool) ([]entity.PaymentMethod, error) {
	var methods []entity.PaymentMethod
	query := r.db.WithContext(ctx).Model(&entity.PaymentMethod{}).
		Joins("JOIN register_payment_methods b ON b.payment_method_id = payment_methods.id").
		Where("b.register_id = ?", registerID)
	if activeOnly {
		query = query.Where("b.is_active = ? AND payment_methods.status = ?", true, enum.MethodStatusActive)
	}
	err := query.Order("payment_methods.created_at ASC").Find(&methods).Error
	return methods, err
}

func (r *paymentMethodRepository) CountActiveByRegister(ctx context.Context, registerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.PaymentMethod{}).
		Joins("JOIN register_payment_methods b ON b.payment_method_id = payment_methods.id").
		Where("b.register_id = ? AND b.is_active = ? AND payment_methods.status = ?",
			registerID, true, enum.MethodStatusActive).
		Count(&count).Error
	return count, err
}

func (r *paymentMethodRepository) Bind(ctx context.Context, binding *entity.RegisterPaymentMethod) error {
	return r.db.WithContext(ctx).Create(binding).Error
}

func (r *paymentMethodRepository) GetBinding(ctx context.Context, registerID, methodID uuid.UUID) (*entity.RegisterPaymentMethod, error) {
	var binding entity.RegisterPaymentMethod
	err := r.db.WithContext(ctx).
		First(&binding, "register_id = ? AND payment_method_id = ?", registerID, methodID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &binding, nil
}

func (r *paymentMethodRepository) SetBindingActive(ctx context.Context, registerID, methodID uuid.UUID, active bool) error {
	return r.db.WithContext(ctx).Model(&entity.RegisterPaymentMethod{}).
		Where("register_id = ? AND payment_method_id = ?", registerID, methodID).
		Update("is_active", active).Error
}

func (r *paymentMethodRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.MethodStatus) error {
	return r.db.WithContext(ctx).Model(&entity.PaymentMethod{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ReconcileBalance re-derives the balance from the ledger while holding the
// payment method row lock, so an entry posted after the caller noticed the
// drift is included rather than clobbered by a stale sum.
func (r *paymentMethodRepository) ReconcileBalance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	var derived decimal.Decimal
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var method entity.PaymentMethod
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&method, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainRepo.ErrNotFound
			}
			return err
		}

		var row struct {
			Total decimal.Decimal
		}
		if err := tx.Model(&entity.Transaction{}).
			Select("COALESCE(SUM(amount), 0) AS total").
			Where("payment_method_id = ?", id).
			Scan(&row).Error; err != nil {
			return err
		}
		derived = row.Total

		return tx.Model(&entity.PaymentMethod{}).
			Where("id = ?", id).
			Update("current_balance", derived).Error
	})
	if err != nil {
		return decimal.Zero, err
	}
	return derived, nil
}
