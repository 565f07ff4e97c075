package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Part struct {
	ID           uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string          `gorm:"size:50;not null" json:"name"`
	Article      *string         `gorm:"size:70;uniqueIndex" json:"article"` // optional, globally unique when set
	Description  string          `gorm:"type:text" json:"description"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	StockCount   int             `gorm:"not null;default:0" json:"stock_count"`
	Manufacturer string          `gorm:"size:50" json:"manufacturer"`

	CategoryID uint     `gorm:"index;not null" json:"category_id"`
	Category   Category `gorm:"foreignKey:CategoryID" json:"category"`

	Specifications []PartSpecification `gorm:"foreignKey:PartID;constraint:OnDelete:CASCADE" json:"specifications"`
	Images         []Image             `gorm:"foreignKey:PartID;constraint:OnDelete:CASCADE" json:"images"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PartSpecification is one open-schema attribute attached to a part.
// Names and values are data, not columns; units are optional.
type PartSpecification struct {
	ID     uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	PartID uint    `gorm:"index;not null" json:"part_id"`
	Name   string  `gorm:"size:50;not null" json:"name"`
	Value  string  `gorm:"size:100;not null" json:"value"`
	Unit   *string `gorm:"size:20" json:"unit"`
}

// Image belongs to either a car or a part, never both.
type Image struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	URL       string `gorm:"size:500;not null" json:"url"`
	AltText   string `gorm:"size:200" json:"alt_text"`
	SortOrder int    `gorm:"default:1" json:"sort_order"`

	CarID  *uint `gorm:"index" json:"car_id,omitempty"`
	PartID *uint `gorm:"index" json:"part_id,omitempty"`
}
