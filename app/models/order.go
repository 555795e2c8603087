package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"

	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
	PaymentStatusFailed = "failed"
)

type Address struct {
	Name       string `json:"name" validate:"required,max=255"`
	Line1      string `json:"line1" validate:"required,max=255"`
	Line2      string `json:"line2,omitempty" validate:"max=255"`
	City       string `json:"city" validate:"required,max=100"`
	State      string `json:"state" validate:"max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=20"`
	Country    string `json:"country" validate:"required,max=100"`
	Phone      string `json:"phone,omitempty" validate:"max=30"`
}

type Order struct {
	ID              uint                         `gorm:"primaryKey" json:"id"`
	OrderNumber     string                       `gorm:"size:64;not null;uniqueIndex" json:"order_number"`
	UserID          *uint                        `gorm:"index" json:"user_id,omitempty"`
	Status          string                       `gorm:"size:32;not null;index" json:"status"`
	Subtotal        decimal.Decimal              `gorm:"type:decimal(16,2);not null" json:"subtotal"`
	ShippingAmount  decimal.Decimal              `gorm:"type:decimal(16,2);not null" json:"shipping_amount"`
	Total           decimal.Decimal              `gorm:"type:decimal(16,2);not null" json:"total"`
	Currency        string                       `gorm:"size:3;not null" json:"currency"`
	ShippingAddress datatypes.JSONType[Address]  `json:"shipping_address"`
	BillingAddress  datatypes.JSONType[*Address] `json:"billing_address"`
	PaymentStatus   string                       `gorm:"size:32;not null" json:"payment_status"`
	PaymentID       *uint                        `json:"payment_id,omitempty"`
	Items           []OrderItem                  `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt       time.Time                    `json:"created_at"`
	UpdatedAt       time.Time                    `json:"updated_at"`
}
