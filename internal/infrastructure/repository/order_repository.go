package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/domain/entity"
	"github.com/medetbek/servicepos-api/internal/domain/enum"
	domainRepo "github.com/medetbek/servicepos-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new service order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.ServiceOrder, staffIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for _, staffID := range staffIDs {
			assignment := entity.ServiceOrderStaff{OrderID: order.ID, StaffID: staffID}
			if err := tx.Create(&assignment).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceOrder, error) {
	var order entity.ServiceOrder
	err := r.db.WithContext(ctx).
		Preload("Staff").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Update(ctx context.Context, order *entity.ServiceOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *orderRepository) List(ctx context.Context, shopID uuid.UUID, params *domainRepo.OrderFilterParams) ([]entity.ServiceOrder, int64, error) {
	var orders []entity.ServiceOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ServiceOrder{}).
		Where("shop_id = ?", shopID)

	if params.ShiftID != nil {
		query = query.Where("shift_id = ?", *params.ShiftID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Staff").
		Order("created_at DESC").
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepository) AttachStaff(ctx context.Context, orderID uuid.UUID, staffIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, staffID := range staffIDs {
			assignment := entity.ServiceOrderStaff{OrderID: orderID, StaffID: staffID}
			if err := tx.Create(&assignment).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// CompleteWithSale runs the order mutation and the SALE ledger append inside
// one database transaction, so a crash between the two cannot leave a
// completed order without its transaction or vice versa. The shift row is
// locked and re-checked inside the transaction: the service-layer status
// check is only a fast path, and a close committing concurrently must not
// let a sale slip past its frozen snapshot.
func (r *orderRepository) CompleteWithSale(ctx context.Context, order *entity.ServiceOrder, sale *domainRepo.PostInput) (*entity.Transaction, error) {
	var entry *entity.Transaction
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var shift entity.Shift
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&shift, "id = ?", order.ShiftID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainRepo.ErrShiftNotOpen
			}
			return err
		}
		if !shift.Status.IsWorking() {
			return domainRepo.ErrShiftNotOpen
		}

		if err := tx.Save(order).Error; err != nil {
			return err
		}
		e, err := postInTx(tx, sale)
		if err != nil {
			return err
		}
		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Cancel persists the cancelled order and reverses any SALE entries already
// linked to it with offsetting REFUND entries, all in one transaction. The
// original entries stay untouched.
func (r *orderRepository) Cancel(ctx context.Context, order *entity.ServiceOrder, actor uuid.UUID) ([]entity.Transaction, error) {
	var refunds []entity.Transaction
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(order).Error; err != nil {
			return err
		}

		var sales []entity.Transaction
		if err := tx.Where("order_id = ? AND type = ?", order.ID, enum.TransactionTypeSale).
			Order("created_at ASC").
			Find(&sales).Error; err != nil {
			return err
		}

		for _, sale := range sales {
			orderID := order.ID
			refund, err := postInTx(tx, &domainRepo.PostInput{
				PaymentMethodID: sale.PaymentMethodID,
				Type:            enum.TransactionTypeRefund,
				Amount:          sale.Amount.Neg(),
				Note:            "Reversal of cancelled order " + order.ID.String(),
				CreatedBy:       actor,
				ShiftID:         sale.ShiftID,
				OrderID:         &orderID,
			})
			if err != nil {
				return err
			}
			refunds = append(refunds, *refund)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refunds, nil
}
