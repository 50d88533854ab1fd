package repository

import (
	"context"
	"fmt"
	"time"

	"backend/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// inventoryValueExpr prices the stock on hand: boxes times the sellable area
// of a box times the catalog rate. Dimensions are already in feet.
const inventoryValueExpr = "boxes_on_hand * tile_width * tile_height * tiles_per_box * price_per_sqft"

type StatisticsRepository interface {
	InventoryTotals(ctx context.Context) (model.InventoryTotals, error)
	StockByBrand(ctx context.Context) ([]model.BrandStock, error)
	LowStock(ctx context.Context, threshold int) ([]model.Product, error)
	OrderCount(ctx context.Context) (int64, error)
	SalesTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, int64, error)
	SalesByBrand(ctx context.Context, start, end time.Time, limit int) ([]model.BrandSales, error)
}

type statisticsRepository struct {
	db *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{db: db}
}

func (r *statisticsRepository) InventoryTotals(ctx context.Context) (model.InventoryTotals, error) {
	var totals model.InventoryTotals
	err := GetDB(ctx, r.db).Model(&model.Product{}).
		Select("COALESCE(SUM(boxes_on_hand), 0) as boxes_in_stock, COALESCE(SUM(" + inventoryValueExpr + "), 0) as inventory_value").
		Scan(&totals).Error
	if err != nil {
		return model.InventoryTotals{}, fmt.Errorf("failed to query inventory totals: %w", err)
	}
	return totals, nil
}

func (r *statisticsRepository) StockByBrand(ctx context.Context) ([]model.BrandStock, error) {
	var rows []model.BrandStock
	err := GetDB(ctx, r.db).Model(&model.Product{}).
		Select("brand, COALESCE(SUM(boxes_on_hand), 0) as boxes_on_hand, COALESCE(SUM("+inventoryValueExpr+"), 0) as stock_value, COUNT(*) as product_count").
		Group("brand").
		Order("stock_value DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query stock by brand: %w", err)
	}
	return rows, nil
}

func (r *statisticsRepository) LowStock(ctx context.Context, threshold int) ([]model.Product, error) {
	var products []model.Product
	err := GetDB(ctx, r.db).
		Where("boxes_on_hand < ?", threshold).
		Order("boxes_on_hand asc, brand asc").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query low stock products: %w", err)
	}
	return products, nil
}

func (r *statisticsRepository) OrderCount(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Order{}).Count(&count).Error
	return count, err
}

// SalesTotal sums tax-invoice revenue for the period. Quotations never count
// as sales.
func (r *statisticsRepository) SalesTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, int64, error) {
	var result struct {
		Revenue decimal.Decimal `gorm:"column:revenue"`
		Count   int64           `gorm:"column:count"`
	}
	err := GetDB(ctx, r.db).Model(&model.Order{}).
		Select("COALESCE(SUM(total_amount), 0) as revenue, COUNT(*) as count").
		Where("order_type = ? AND order_date >= ? AND order_date <= ?", model.OrderTypeTaxInvoice, start, end).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("failed to query sales total: %w", err)
	}
	return result.Revenue, result.Count, nil
}

func (r *statisticsRepository) SalesByBrand(ctx context.Context, start, end time.Time, limit int) ([]model.BrandSales, error) {
	var rows []model.BrandSales
	err := GetDB(ctx, r.db).Table("order_items").
		Select("inventory.brand as brand, COALESCE(SUM(order_items.boxes_sold), 0) as boxes_sold, COALESCE(SUM(order_items.boxes_sold * inventory.tile_width * inventory.tile_height * inventory.tiles_per_box * order_items.price_per_sqft), 0) as revenue").
		Joins("JOIN inventory ON inventory.product_id = order_items.product_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.order_type = ? AND orders.order_date >= ? AND orders.order_date <= ?", model.OrderTypeTaxInvoice, start, end).
		Group("inventory.brand").
		Order("revenue DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query sales by brand: %w", err)
	}
	return rows, nil
}
