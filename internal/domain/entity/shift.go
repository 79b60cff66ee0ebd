package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Shift is a bounded working session for one cashier on one register.
// At most one open shift may exist per register and per cashier at any time.
// The aggregate totals are recomputed from the transaction log at close and
// frozen; they are never edited directly.
type Shift struct {
	ID         uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	RegisterID uuid.UUID        `gorm:"type:uuid;not null;index" json:"register_id"`
	CashierID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"cashier_id"`
	Status     enum.ShiftStatus `gorm:"default:0" json:"status"`
	OpenedAt   time.Time        `gorm:"not null" json:"opened_at"`
	ClosedAt   *time.Time       `json:"closed_at,omitempty"`

	TotalSales   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_sales"`
	TotalCash    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_cash"`
	TotalNonCash decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_non_cash"`
	Returns      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"returns"`

	Comment   string    `gorm:"size:500" json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Register CashRegister `gorm:"foreignKey:RegisterID" json:"-"`
	Cashier  Cashier      `gorm:"foreignKey:CashierID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new shift
func (s *Shift) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Shift model
func (Shift) TableName() string {
	return "shifts"
}

// ShiftTotals is the aggregate snapshot recomputed from the ledger.
type ShiftTotals struct {
	TotalSales   decimal.Decimal `json:"total_sales"`
	TotalCash    decimal.Decimal `json:"total_cash"`
	TotalNonCash decimal.Decimal `json:"total_non_cash"`
	Returns      decimal.Decimal `json:"returns"`
}

// UnclosedShift is the diagnostic result of the stale-shift lookup.
type UnclosedShift struct {
	HasUnclosed bool       `json:"has_unclosed"`
	ShiftID     *uuid.UUID `json:"shift_id,omitempty"`
	RegisterID  *uuid.UUID `json:"register_id,omitempty"`
	OpenedAt    *time.Time `json:"opened_at,omitempty"`
}
