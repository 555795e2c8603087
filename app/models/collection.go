package models

import "time"

type Collection struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	Name           string      `gorm:"size:255;not null" json:"name"`
	Slug           string      `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description    string      `gorm:"type:text" json:"description"`
	ParentID       *uint       `gorm:"index" json:"parent_id"`
	Parent         *Collection `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
	CollectionType string      `gorm:"size:50;index" json:"collection_type"`
	Level          int         `gorm:"not null;default:0" json:"level"`
	IsActive       bool        `gorm:"not null;index" json:"is_active"`
	ImageURL       string      `gorm:"size:512" json:"image_url"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type ProductCollection struct {
	ProductID    uint      `gorm:"primaryKey" json:"product_id"`
	CollectionID uint      `gorm:"primaryKey;index" json:"collection_id"`
	CreatedAt    time.Time `json:"created_at"`
}

type MegaMenuCollection struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	CollectionID uint        `gorm:"not null;uniqueIndex" json:"collection_id"`
	Collection   *Collection `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE" json:"collection,omitempty"`
	Position     int         `gorm:"not null;default:0;index" json:"position"`
	IsActive     bool        `gorm:"not null" json:"is_active"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
