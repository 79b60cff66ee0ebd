package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/domain/entity"
	domainRepo "github.com/medetbek/servicepos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new ledger repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

// postInTx appends one ledger entry inside an already-running transaction.
// The SELECT ... FOR UPDATE on the payment method row serializes concurrent
// posts per method, which keeps the balanceBefore/balanceAfter chain
// monotonic even for shared methods posted to by several registers at once.
// Shared by the standalone Post and by the order completion/cancellation
// composites.
func postInTx(tx *gorm.DB, input *domainRepo.PostInput) (*entity.Transaction, error) {
	var method entity.PaymentMethod
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&method, "id = ?", input.PaymentMethodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainRepo.ErrNotFound
		}
		return nil, err
	}

	before := method.CurrentBalance
	after := before.Add(input.Amount)

	if input.DisallowNegative && after.IsNegative() {
		return nil, domainRepo.ErrInsufficientBalance
	}

	entry := &entity.Transaction{
		PaymentMethodID: method.ID,
		Type:            input.Type,
		Amount:          input.Amount,
		BalanceBefore:   before,
		BalanceAfter:    after,
		Note:            input.Note,
		ShiftID:         input.ShiftID,
		OrderID:         input.OrderID,
		CreatedBy:       input.CreatedBy,
		CreatedAt:       time.Now(),
	}
	if err := tx.Create(entry).Error; err != nil {
		return nil, err
	}

	// Write-through of the cached projection, same transaction as the append.
	if err := tx.Model(&entity.PaymentMethod{}).
		Where("id = ?", method.ID).
		Update("current_balance", after).Error; err != nil {
		return nil, err
	}

	return entry, nil
}

func (r *transactionRepository) Post(ctx context.Context, input *domainRepo.PostInput) (*entity.Transaction, error) {
	var entry *entity.Transaction
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		e, err := postInTx(tx, input)
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

func (r *transactionRepository) SumAmounts(ctx context.Context, paymentMethodID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&entity.Transaction{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("payment_method_id = ?", paymentMethodID).
		Scan(&result).Error
	return result.Total, err
}

func (r *transactionRepository) List(ctx context.Context, paymentMethodID uuid.UUID, params *domainRepo.TransactionFilterParams) ([]entity.Transaction, error) {
	var transactions []entity.Transaction

	query := r.db.WithContext(ctx).Model(&entity.Transaction{}).
		Where("payment_method_id = ?", paymentMethodID)

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	params.Cursor.Validate()
	if cursor, err := params.Cursor.DecodeCursor(); err != nil {
		return nil, err
	} else if cursor != nil {
		// Keyset condition for newest-first ordering.
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	// Fetch one extra row to detect whether a next page exists.
	err := query.Order("created_at DESC, id DESC").
		Limit(params.Cursor.Limit + 1).
		Find(&transactions).Error

	return transactions, err
}

func (r *transactionRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.Transaction, error) {
	var transactions []entity.Transaction
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&transactions).Error
	return transactions, err
}

// sumShiftTotalsInTx aggregates a shift's sale and refund entries on the
// given handle, which may be a transaction already holding the shift row
// lock. Shared by the standalone read and by the closing composite.
func sumShiftTotalsInTx(db *gorm.DB, shiftID uuid.UUID) (*entity.ShiftTotals, error) {
	var row struct {
		TotalSales   decimal.Decimal
		TotalCash    decimal.Decimal
		TotalNonCash decimal.Decimal
		Returns      decimal.Decimal
	}

	err := db.Raw(`
		SELECT
			COALESCE(SUM(CASE WHEN t.type = 0 THEN t.amount ELSE 0 END), 0)                        AS total_sales,
			COALESCE(SUM(CASE WHEN t.type = 1 THEN -t.amount ELSE 0 END), 0)                       AS returns,
			COALESCE(SUM(CASE WHEN t.type IN (0, 1) AND m.source = 0 THEN t.amount ELSE 0 END), 0) AS total_cash,
			COALESCE(SUM(CASE WHEN t.type IN (0, 1) AND m.source <> 0 THEN t.amount ELSE 0 END), 0) AS total_non_cash
		FROM transactions t
		JOIN payment_methods m ON m.id = t.payment_method_id
		WHERE t.shift_id = ?`, shiftID).Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &entity.ShiftTotals{
		TotalSales:   row.TotalSales,
		TotalCash:    row.TotalCash,
		TotalNonCash: row.TotalNonCash,
		Returns:      row.Returns,
	}, nil
}

func (r *transactionRepository) SumShiftTotals(ctx context.Context, shiftID uuid.UUID) (*entity.ShiftTotals, error) {
	return sumShiftTotalsInTx(r.db.WithContext(ctx), shiftID)
}
