package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ServiceType is the minimal slice of the external service catalog the order
// engine needs: the current list price that gets copied onto new orders.
type ServiceType struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ShopID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"shop_id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"price"`
	Active    bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new service type
func (s *ServiceType) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ServiceType model
func (ServiceType) TableName() string {
	return "service_types"
}
