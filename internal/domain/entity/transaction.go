package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is an immutable, append-only ledger entry for one payment
// method. Amount is signed: inflows positive, outflows negative. Entries are
// never updated or deleted; corrections post Adjustment entries. The chain
// invariant BalanceAfter = BalanceBefore + Amount holds for every row, and
// consecutive rows of one method link BalanceAfter -> next BalanceBefore.
type Transaction struct {
	ID              uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	PaymentMethodID uuid.UUID            `gorm:"type:uuid;not null;index" json:"payment_method_id"`
	Type            enum.TransactionType `gorm:"not null" json:"type"`
	Amount          decimal.Decimal      `gorm:"type:numeric(14,2);not null" json:"amount"`
	BalanceBefore   decimal.Decimal      `gorm:"type:numeric(14,2);not null" json:"balance_before"`
	BalanceAfter    decimal.Decimal      `gorm:"type:numeric(14,2);not null" json:"balance_after"`
	Note            string               `gorm:"size:500" json:"note,omitempty"`
	ShiftID         *uuid.UUID           `gorm:"type:uuid;index" json:"shift_id,omitempty"`
	OrderID         *uuid.UUID           `gorm:"type:uuid;index" json:"order_id,omitempty"`
	CreatedBy       uuid.UUID            `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt       time.Time            `gorm:"index" json:"created_at"`
}

// BeforeCreate generates a UUID before appending a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// Chained reports whether the row satisfies the balance chain invariant.
func (t *Transaction) Chained() bool {
	return t.BalanceBefore.Add(t.Amount).Equal(t.BalanceAfter)
}
