package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/domain/entity"
	"github.com/medetbek/servicepos-api/internal/domain/enum"
	domainRepo "github.com/medetbek/servicepos-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type shiftRepository struct {
	db *gorm.DB
}

// NewShiftRepository creates a new shift repository
func NewShiftRepository(db *gorm.DB) domainRepo.ShiftRepository {
	return &shiftRepository{db: db}
}

// Open serializes shift creation by locking the register row and the cashier
// row for the duration of the checks plus the insert. Locking both rows gives
// the two required scopes: per-register and per-cashier. Unrelated registers
// and cashiers proceed independently.
func (r *shiftRepository) Open(ctx context.Context, shift *entity.Shift) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var register entity.CashRegister
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&register, "id = ?", shift.RegisterID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainRepo.ErrNotFound
			}
			return err
		}
		if !register.CanOpenShift() {
			return domainRepo.ErrRegisterUnavailable
		}

		var cashier entity.Cashier
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&cashier, "id = ?", shift.CashierID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainRepo.ErrNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&entity.Shift{}).
			Where("register_id = ? AND status <> ?", shift.RegisterID, enum.ShiftStatusClosed).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domainRepo.ErrOpenShiftOnRegister
		}

		if err := tx.Model(&entity.Shift{}).
			Where("cashier_id = ? AND status <> ?", shift.CashierID, enum.ShiftStatusClosed).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domainRepo.ErrCashierHasOpenShift
		}

		return tx.Create(shift).Error
	})
}

func (r *shiftRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	var shift entity.Shift
	err := r.db.WithContext(ctx).First(&shift, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) GetOpenByRegister(ctx context.Context, registerID uuid.UUID) (*entity.Shift, error) {
	var shift entity.Shift
	err := r.db.WithContext(ctx).
		Where("register_id = ? AND status <> ?", registerID, enum.ShiftStatusClosed).
		First(&shift).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) GetOpenByCashier(ctx context.Context, cashierID uuid.UUID) (*entity.Shift, error) {
	var shift entity.Shift
	err := r.db.WithContext(ctx).
		Where("cashier_id = ? AND status <> ?", cashierID, enum.ShiftStatusClosed).
		First(&shift).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) FindUnclosed(ctx context.Context, shopID, cashierID uuid.UUID) (*entity.Shift, error) {
	var shift entity.Shift
	err := r.db.WithContext(ctx).Model(&entity.Shift{}).
		Joins("JOIN cash_registers r ON r.id = shifts.register_id").
		Where("r.shop_id = ? AND shifts.cashier_id = ? AND shifts.status <> ?",
			shopID, cashierID, enum.ShiftStatusClosed).
		First(&shift).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

// UpdateStatus is a single conditional write: the WHERE clause carries the
// expected current status, so a transition based on a stale read affects
// zero rows instead of overwriting a newer state.
func (r *shiftRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to enum.ShiftStatus) error {
	result := r.db.WithContext(ctx).Model(&entity.Shift{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrShiftStateChanged
	}
	return nil
}

// Close locks the shift row, aggregates its ledger entries, and persists the
// frozen snapshot without releasing the lock in between. A sale committing
// concurrently holds the same row lock in CompleteWithSale, so it serializes
// entirely before or entirely after the snapshot.
func (r *shiftRepository) Close(ctx context.Context, shiftID uuid.UUID, comment string) (*entity.Shift, error) {
	var shift entity.Shift
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&shift, "id = ?", shiftID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainRepo.ErrNotFound
			}
			return err
		}
		if shift.Status == enum.ShiftStatusClosed {
			// Already frozen; retries get the stored snapshot as-is.
			return nil
		}

		totals, err := sumShiftTotalsInTx(tx, shiftID)
		if err != nil {
			return err
		}

		now := time.Now()
		shift.Status = enum.ShiftStatusClosed
		shift.ClosedAt = &now
		shift.TotalSales = totals.TotalSales
		shift.TotalCash = totals.TotalCash
		shift.TotalNonCash = totals.TotalNonCash
		shift.Returns = totals.Returns
		if comment != "" {
			shift.Comment = comment
		}

		return tx.Model(&entity.Shift{}).
			Where("id = ?", shift.ID).
			Updates(map[string]interface{}{
				"status":         shift.Status,
				"closed_at":      shift.ClosedAt,
				"total_sales":    shift.TotalSales,
				"total_cash":     shift.TotalCash,
				"total_non_cash": shift.TotalNonCash,
				"returns":        shift.Returns,
				"comment":        shift.Comment,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &shift, nil
}
