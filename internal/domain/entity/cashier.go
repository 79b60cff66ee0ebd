package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cashier is the authenticated actor of the engine. Full identity management
// (OTP, password reset) is an external concern; this record only carries what
// login and audit trails need.
type Cashier struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ShopID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"shop_id"`
	FirstName string         `gorm:"size:100;not null" json:"first_name"`
	LastName  string         `gorm:"size:100" json:"last_name"`
	Email     string         `gorm:"size:255;unique;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:50;not null;default:'cashier'" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Shop Shop `gorm:"foreignKey:ShopID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new cashier
func (c *Cashier) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Cashier model
func (Cashier) TableName() string {
	return "cashiers"
}

// FullName returns the display name used in shift views
func (c *Cashier) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
