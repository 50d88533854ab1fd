package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/repository"
)

// lowStockThreshold marks products that need a reorder on the dashboard.
const lowStockThreshold = 10

type DashboardStatsResponse struct {
	BoxesInStock   int64  `json:"boxes_in_stock"`
	InventoryValue string `json:"inventory_value"`
	OrderCount     int64  `json:"order_count"`
	SalesRevenue   string `json:"sales_revenue"`
	SalesCount     int64  `json:"sales_count"`
}

type BrandSalesResponse struct {
	Brand     string `json:"brand"`
	BoxesSold int64  `json:"boxes_sold"`
	Revenue   string `json:"revenue"`
}

type SalesReportResponse struct {
	From         string               `json:"from"`
	To           string               `json:"to"`
	TotalRevenue string               `json:"total_revenue"`
	OrderCount   int64                `json:"order_count"`
	TopBrands    []BrandSalesResponse `json:"top_brands"`
}

type BrandStockResponse struct {
	Brand        string `json:"brand"`
	BoxesOnHand  int64  `json:"boxes_on_hand"`
	StockValue   string `json:"stock_value"`
	ProductCount int64  `json:"product_count"`
}

type LowStockProductResponse struct {
	ProductID   uint   `json:"product_id"`
	Brand       string `json:"brand"`
	ProductName string `json:"product_name"`
	BoxesOnHand int    `json:"boxes_on_hand"`
}

type InventoryReportResponse struct {
	BoxesInStock   int64                     `json:"boxes_in_stock"`
	InventoryValue string                    `json:"inventory_value"`
	ByBrand        []BrandStockResponse      `json:"by_brand"`
	LowStock       []LowStockProductResponse `json:"low_stock"`
}

type StatisticsService interface {
	GetDashboardStats(ctx context.Context) (*DashboardStatsResponse, error)
	GetSalesReport(ctx context.Context, from, to time.Time) (*SalesReportResponse, error)
	GetInventoryReport(ctx context.Context) (*InventoryReportResponse, error)
}

type statisticsService struct {
	statsRepo repository.StatisticsRepository
}

func NewStatisticsService(statsRepo repository.StatisticsRepository) StatisticsService {
	return &statisticsService{statsRepo: statsRepo}
}

// GetDashboardStats returns the headline numbers: stock on hand and its
// catalog value, the lifetime order count, and tax-invoice revenue for the
// current calendar month.
func (s *statisticsService) GetDashboardStats(ctx context.Context) (*DashboardStatsResponse, error) {
	totals, err := s.statsRepo.InventoryTotals(ctx)
	if err != nil {
		return nil, err
	}

	orderCount, err := s.statsRepo.OrderCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	revenue, salesCount, err := s.statsRepo.SalesTotal(ctx, monthStart, now)
	if err != nil {
		return nil, err
	}

	return &DashboardStatsResponse{
		BoxesInStock:   totals.BoxesInStock,
		InventoryValue: totals.InventoryValue.StringFixed(2),
		OrderCount:     orderCount,
		SalesRevenue:   revenue.StringFixed(2),
		SalesCount:     salesCount,
	}, nil
}

func (s *statisticsService) GetSalesReport(ctx context.Context, from, to time.Time) (*SalesReportResponse, error) {
	revenue, count, err := s.statsRepo.SalesTotal(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byBrand, err := s.statsRepo.SalesByBrand(ctx, from, to, 10)
	if err != nil {
		return nil, err
	}

	topBrands := make([]BrandSalesResponse, 0, len(byBrand))
	for _, row := range byBrand {
		topBrands = append(topBrands, BrandSalesResponse{
			Brand:     row.Brand,
			BoxesSold: row.BoxesSold,
			Revenue:   row.Revenue.StringFixed(2),
		})
	}

	return &SalesReportResponse{
		From:         from.Format("2006-01-02"),
		To:           to.Format("2006-01-02"),
		TotalRevenue: revenue.StringFixed(2),
		OrderCount:   count,
		TopBrands:    topBrands,
	}, nil
}

func (s *statisticsService) GetInventoryReport(ctx context.Context) (*InventoryReportResponse, error) {
	totals, err := s.statsRepo.InventoryTotals(ctx)
	if err != nil {
		return nil, err
	}

	byBrand, err := s.statsRepo.StockByBrand(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.statsRepo.LowStock(ctx, lowStockThreshold)
	if err != nil {
		return nil, err
	}

	brands := make([]BrandStockResponse, 0, len(byBrand))
	for _, row := range byBrand {
		brands = append(brands, BrandStockResponse{
			Brand:        row.Brand,
			BoxesOnHand:  row.BoxesOnHand,
			StockValue:   row.StockValue.StringFixed(2),
			ProductCount: row.ProductCount,
		})
	}

	low := make([]LowStockProductResponse, 0, len(lowStock))
	for _, p := range lowStock {
		low = append(low, LowStockProductResponse{
			ProductID:   p.ProductID,
			Brand:       p.Brand,
			ProductName: p.ProductName,
			BoxesOnHand: p.BoxesOnHand,
		})
	}

	return &InventoryReportResponse{
		BoxesInStock:   totals.BoxesInStock,
		InventoryValue: totals.InventoryValue.StringFixed(2),
		ByBrand:        brands,
		LowStock:       low,
	}, nil
}
