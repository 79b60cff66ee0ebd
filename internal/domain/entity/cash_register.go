package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// CashRegister represents a point-of-sale terminal within a shop. A register
// owns at most one open shift and a set of payment method bindings.
type CashRegister struct {
	ID        uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	ShopID    uuid.UUID           `gorm:"type:uuid;not null;index" json:"shop_id"`
	Name      string              `gorm:"size:255;not null" json:"name"`
	Type      enum.RegisterType   `gorm:"default:0" json:"type"`
	Status    enum.RegisterStatus `gorm:"default:0" json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	DeletedAt gorm.DeletedAt      `gorm:"index" json:"-"`

	Shop     Shop                    `gorm:"foreignKey:ShopID" json:"-"`
	Bindings []RegisterPaymentMethod `gorm:"foreignKey:RegisterID" json:"bindings,omitempty"`
}

// BeforeCreate generates a UUID before creating a new register
func (r *CashRegister) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CashRegister model
func (CashRegister) TableName() string {
	return "cash_registers"
}

// CanOpenShift reports whether the register is eligible for a new shift.
func (r *CashRegister) CanOpenShift() bool {
	return r.Status != enum.RegisterStatusMaintenance
}
