package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentMethod is a named channel of funds with its own transaction log.
// A Dedicated method belongs to exactly one register (RegisterID set);
// a Shared method is a single warehouse-level record (RegisterID nil) that
// every register of the shop posts to.
//
// CurrentBalance is a cached projection of the transaction log. It is written
// through in the same database transaction as every ledger append and is
// reconciled against the log on reads; the log is the source of truth.
type PaymentMethod struct {
	ID         uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	ShopID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"shop_id"`
	RegisterID *uuid.UUID        `gorm:"type:uuid;index" json:"register_id,omitempty"`
	Source     enum.PaymentSource `gorm:"default:0" json:"source"`
	Name       string            `gorm:"size:100;not null" json:"name"`
	Code       string            `gorm:"size:50;not null" json:"code"`
	Scope      enum.PaymentScope `gorm:"default:0" json:"scope"`
	Status     enum.MethodStatus `gorm:"default:0" json:"status"`

	CurrentBalance decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"current_balance"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Transactions []Transaction `gorm:"foreignKey:PaymentMethodID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment method
func (m *PaymentMethod) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PaymentMethod model
func (PaymentMethod) TableName() string {
	return "payment_methods"
}

// IsCash reports whether the method is the cash channel, which must never
// overdraft on withdrawals.
func (m *PaymentMethod) IsCash() bool {
	return m.Source == enum.PaymentSourceCash
}

// RegisterPaymentMethod binds a payment method to a register. Shared methods
// get one binding row per register; dedicated methods get exactly one.
// IsActive hides the method from sale-time selection without losing history.
type RegisterPaymentMethod struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RegisterID      uuid.UUID `gorm:"type:uuid;not null;index:idx_register_method,unique" json:"register_id"`
	PaymentMethodID uuid.UUID `gorm:"type:uuid;not null;index:idx_register_method,unique" json:"payment_method_id"`
	IsActive        bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	PaymentMethod PaymentMethod `gorm:"foreignKey:PaymentMethodID" json:"payment_method,omitempty"`
}

// BeforeCreate generates a UUID before creating a new binding
func (b *RegisterPaymentMethod) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RegisterPaymentMethod model
func (RegisterPaymentMethod) TableName() string {
	return "register_payment_methods"
}
