package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	Title           string           `gorm:"size:255;not null" json:"title"`
	Slug            string           `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description     string           `gorm:"type:text" json:"description"`
	Price           decimal.Decimal  `gorm:"type:decimal(16,2);not null" json:"price"`
	Stock           int              `gorm:"not null" json:"stock"`
	Type            string           `gorm:"size:100;index" json:"type"`
	Brand           string           `gorm:"size:100;index" json:"brand"`
	Color           string           `gorm:"size:50;index" json:"color"`
	IsNew           bool             `gorm:"not null" json:"is_new"`
	IsSale          bool             `gorm:"not null" json:"is_sale"`
	IsFeatured      bool             `gorm:"not null;index" json:"is_featured"`
	MetaTitle       string           `gorm:"size:255" json:"meta_title"`
	MetaDescription string           `gorm:"size:512" json:"meta_description"`
	MetaKeywords    string           `gorm:"size:512" json:"meta_keywords"`
	Images          []ProductImage   `gorm:"constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Variants        []ProductVariant `gorm:"constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	Collections     []Collection     `gorm:"many2many:product_collections;constraint:OnDelete:CASCADE" json:"collections,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type ProductImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	URL       string    `gorm:"size:512;not null" json:"url"`
	AltText   string    `gorm:"size:255" json:"alt_text"`
	Position  int       `gorm:"not null" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProductVariant struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	ProductID uint             `gorm:"not null;index" json:"product_id"`
	Sku       string           `gorm:"size:100;uniqueIndex" json:"sku"`
	Size      string           `gorm:"size:50" json:"size"`
	Color     string           `gorm:"size:50;index" json:"color"`
	Price     *decimal.Decimal `gorm:"type:decimal(16,2)" json:"price,omitempty"`
	Stock     int              `gorm:"not null" json:"stock"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
