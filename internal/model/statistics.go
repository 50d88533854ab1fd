package model

import "github.com/shopspring/decimal"

// Aggregate scan shapes for the statistics queries. Values are computed in
// SQL; these structs only carry the results out.

// InventoryTotals is the stock-wide rollup: total boxes on hand and their
// sale value (boxes * area per box * catalog price).
type InventoryTotals struct {
	BoxesInStock   int64           `gorm:"column:boxes_in_stock"`
	InventoryValue decimal.Decimal `gorm:"column:inventory_value"`
}

// BrandSales ranks a brand by tax-invoice sales in a period.
type BrandSales struct {
	Brand     string          `gorm:"column:brand"`
	BoxesSold int64           `gorm:"column:boxes_sold"`
	Revenue   decimal.Decimal `gorm:"column:revenue"`
}

// BrandStock is the on-hand rollup for one brand.
type BrandStock struct {
	Brand        string          `gorm:"column:brand"`
	BoxesOnHand  int64           `gorm:"column:boxes_on_hand"`
	StockValue   decimal.Decimal `gorm:"column:stock_value"`
	ProductCount int64           `gorm:"column:product_count"`
}
