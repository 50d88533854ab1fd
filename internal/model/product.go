package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is one tile SKU in the catalog. Tile dimensions are stored in the
// canonical unit (feet); the original input value and unit are kept alongside
// so forms can round-trip what the user typed. BoxesOnHand is mutated only by
// order creation/deletion and truck-in receipts, and never goes negative.
type Product struct {
	ProductID       uint            `gorm:"column:product_id;primaryKey;autoIncrement" json:"product_id"`
	Brand           string          `gorm:"type:varchar(255);not null;index" json:"brand"`
	ProductName     string          `gorm:"type:varchar(255);not null" json:"product_name"`
	TileWidth       decimal.Decimal `gorm:"type:decimal(12,6);not null" json:"tile_width"`  // feet
	TileHeight      decimal.Decimal `gorm:"type:decimal(12,6);not null" json:"tile_height"` // feet
	TileWidthValue  decimal.Decimal `gorm:"type:decimal(12,4)" json:"tile_width_value"`
	TileWidthUnit   string          `gorm:"type:varchar(10);default:'ft'" json:"tile_width_unit"`
	TileHeightValue decimal.Decimal `gorm:"type:decimal(12,4)" json:"tile_height_value"`
	TileHeightUnit  string          `gorm:"type:varchar(10);default:'ft'" json:"tile_height_unit"`
	TilesPerBox     int             `gorm:"type:int;not null" json:"tiles_per_box"`
	BoxesOnHand     int             `gorm:"type:int;not null;default:0" json:"boxes_on_hand"`
	PricePerSqft    decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"price_per_sqft"`
	HSNCode         string          `gorm:"column:hsn_code;type:varchar(20)" json:"hsn_code"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Product) TableName() string {
	return "inventory"
}
