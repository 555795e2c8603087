package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Payment struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	OrderID          uint            `gorm:"not null;index" json:"order_id"`
	Gateway          string          `gorm:"size:32;not null" json:"gateway"`
	GatewayOrderID   string          `gorm:"size:128;not null;index" json:"gateway_order_id"`
	GatewayPaymentID string          `gorm:"size:128;not null;uniqueIndex" json:"gateway_payment_id"`
	GatewaySignature string          `gorm:"size:255" json:"-"`
	Amount           decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"amount"`
	Currency         string          `gorm:"size:3;not null" json:"currency"`
	Status           string          `gorm:"size:32;not null" json:"status"`
	RawPayload       datatypes.JSON  `json:"raw_payload,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
