package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ServiceOrder is a single billable unit of work (a car-service sale) tied to
// a client, vehicle and shift. OriginalPrice is copied from the service type
// catalog at creation time so later price-list edits never change open orders.
// FinalPrice = round(OriginalPrice * (1 - DiscountPercent/100), 2).
type ServiceOrder struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	ShopID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"shop_id"`
	ShiftID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"shift_id"`
	ClientID      *uuid.UUID       `gorm:"type:uuid;index" json:"client_id,omitempty"`
	VehicleID     uuid.UUID        `gorm:"type:uuid;not null" json:"vehicle_id"`
	ServiceTypeID uuid.UUID        `gorm:"type:uuid;not null" json:"service_type_id"`
	Status        enum.OrderStatus `gorm:"default:0" json:"status"`

	OriginalPrice   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"original_price"`
	DiscountPercent int             `gorm:"not null;default:0" json:"discount_percent"`
	FinalPrice      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"final_price"`

	StartTime    time.Time  `gorm:"not null" json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	CancelReason string     `gorm:"size:500" json:"cancel_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Shift Shift               `gorm:"foreignKey:ShiftID" json:"-"`
	Staff []ServiceOrderStaff `gorm:"foreignKey:OrderID" json:"staff,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *ServiceOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ServiceOrder model
func (ServiceOrder) TableName() string {
	return "service_orders"
}

// ComputeFinalPrice applies the discount law at 2 decimal places.
func ComputeFinalPrice(original decimal.Decimal, discountPercent int) decimal.Decimal {
	factor := decimal.NewFromInt(100 - int64(discountPercent)).Div(decimal.NewFromInt(100))
	return original.Mul(factor).Round(2)
}

// ServiceOrderStaff assigns a staff member to an order.
type ServiceOrderStaff struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index:idx_order_staff,unique" json:"order_id"`
	StaffID   uuid.UUID `gorm:"type:uuid;not null;index:idx_order_staff,unique" json:"staff_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new staff assignment
func (s *ServiceOrderStaff) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ServiceOrderStaff model
func (ServiceOrderStaff) TableName() string {
	return "service_order_staff"
}
