package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/pricing"
	"backend/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

// DimensionInput is a tile dimension as entered, with its unit. The service
// converts it to feet before anything downstream sees it.
type DimensionInput struct {
	Value string `json:"value" binding:"required"`
	Unit  string `json:"unit" binding:"required,oneof=ft mm inch"`
}

type CreateProductRequest struct {
	Brand        string         `json:"brand" binding:"required"`
	ProductName  string         `json:"product_name" binding:"required"`
	TileWidth    DimensionInput `json:"tile_width" binding:"required"`
	TileHeight   DimensionInput `json:"tile_height" binding:"required"`
	TilesPerBox  int            `json:"tiles_per_box" binding:"required,gt=0"`
	BoxesOnHand  int            `json:"boxes_on_hand" binding:"gte=0"`
	PricePerSqft string         `json:"price_per_sqft" binding:"required"`
	HSNCode      string         `json:"hsn_code"`
}

type UpdateProductRequest struct {
	Brand        string         `json:"brand" binding:"required"`
	ProductName  string         `json:"product_name" binding:"required"`
	TileWidth    DimensionInput `json:"tile_width" binding:"required"`
	TileHeight   DimensionInput `json:"tile_height" binding:"required"`
	TilesPerBox  int            `json:"tiles_per_box" binding:"required,gt=0"`
	PricePerSqft string         `json:"price_per_sqft" binding:"required"`
	HSNCode      string         `json:"hsn_code"`
}

type ProductResponse struct {
	ProductID       uint   `json:"product_id"`
	Brand           string `json:"brand"`
	ProductName     string `json:"product_name"`
	TileWidth       string `json:"tile_width"`
	TileHeight      string `json:"tile_height"`
	TileWidthValue  string `json:"tile_width_value"`
	TileWidthUnit   string `json:"tile_width_unit"`
	TileHeightValue string `json:"tile_height_value"`
	TileHeightUnit  string `json:"tile_height_unit"`
	TilesPerBox     int    `json:"tiles_per_box"`
	BoxesOnHand     int    `json:"boxes_on_hand"`
	AreaPerBox      string `json:"area_per_box"`
	PricePerSqft    string `json:"price_per_sqft"`
	HSNCode         string `json:"hsn_code"`
}

type TruckEntryItemRequest struct {
	ProductID  uint                  `json:"product_id"`
	Quantity   int                   `json:"quantity" binding:"required,gt=0"`
	NewProduct *CreateProductRequest `json:"new_product,omitempty"`
}

type RecordTruckEntryRequest struct {
	TruckNumber string                  `json:"truck_number" binding:"required"`
	EntryDate   string                  `json:"entry_date" binding:"required"` // YYYY-MM-DD
	Items       []TruckEntryItemRequest `json:"items" binding:"required,min=1,dive"`
}

type TruckEntryResponse struct {
	ID          uint                     `json:"id"`
	TruckNumber string                   `json:"truck_number"`
	EntryDate   string                   `json:"entry_date"`
	Items       []TruckEntryItemResponse `json:"items"`
	CreatedAt   string                   `json:"created_at"`
}

type TruckEntryItemResponse struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// --- Interface ---

type InventoryService interface {
	GetProducts(ctx context.Context, page, limit int, search string) ([]ProductResponse, int64, error)
	GetProduct(ctx context.Context, id uint) (ProductResponse, error)
	CreateProduct(ctx context.Context, req CreateProductRequest) (ProductResponse, error)
	UpdateProduct(ctx context.Context, id uint, req UpdateProductRequest) (ProductResponse, error)
	DeleteProduct(ctx context.Context, id uint) error
	RecordTruckEntry(ctx context.Context, req RecordTruckEntryRequest) (TruckEntryResponse, error)
	ListTruckEntries(ctx context.Context, page, limit int) ([]TruckEntryResponse, int64, error)
}

// eventPublisher pushes change notifications to connected clients so they
// do not have to refetch after every mutation.
type eventPublisher interface {
	Publish(event string, data any)
}

type inventoryService struct {
	productRepo repository.ProductRepository
	truckRepo   repository.TruckEntryRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	events      eventPublisher
}

func NewInventoryService(
	productRepo repository.ProductRepository,
	truckRepo repository.TruckEntryRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	events eventPublisher,
) InventoryService {
	return &inventoryService{
		productRepo: productRepo,
		truckRepo:   truckRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		events:      events,
	}
}

// --- Implementation ---

func (s *inventoryService) GetProducts(ctx context.Context, page, limit int, search string) ([]ProductResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	products, total, err := s.productRepo.List(ctx, page, limit, search)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	res := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, toProductResponse(p))
	}
	return res, total, nil
}

func (s *inventoryService) GetProduct(ctx context.Context, id uint) (ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductResponse{}, ErrProductNotFound
		}
		return ProductResponse{}, fmt.Errorf("failed to fetch product: %w", err)
	}
	return toProductResponse(*product), nil
}

func (s *inventoryService) CreateProduct(ctx context.Context, req CreateProductRequest) (ProductResponse, error) {
	product, err := buildProduct(req)
	if err != nil {
		return ProductResponse{}, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.productRepo.Create(txCtx, product); err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		writeAudit(txCtx, s.auditRepo, model.ActionCreateProduct, fmt.Sprint(product.ProductID), product.Brand+" "+product.ProductName, req)
		return nil
	})
	if err != nil {
		return ProductResponse{}, err
	}

	s.events.Publish("stock.changed", map[string]any{"product_id": product.ProductID, "boxes_on_hand": product.BoxesOnHand})
	return toProductResponse(*product), nil
}

func (s *inventoryService) UpdateProduct(ctx context.Context, id uint, req UpdateProductRequest) (ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductResponse{}, ErrProductNotFound
		}
		return ProductResponse{}, fmt.Errorf("failed to fetch product: %w", err)
	}

	width, height, err := parseDimensions(req.TileWidth, req.TileHeight)
	if err != nil {
		return ProductResponse{}, err
	}

	price, err := parsePositiveDecimal(req.PricePerSqft, "price_per_sqft")
	if err != nil {
		return ProductResponse{}, err
	}

	product.Brand = req.Brand
	product.ProductName = req.ProductName
	product.TileWidth = width.feet
	product.TileWidthValue = width.value
	product.TileWidthUnit = string(width.unit)
	product.TileHeight = height.feet
	product.TileHeightValue = height.value
	product.TileHeightUnit = string(height.unit)
	product.TilesPerBox = req.TilesPerBox
	product.PricePerSqft = price
	product.HSNCode = req.HSNCode

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.productRepo.Update(txCtx, product); err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		writeAudit(txCtx, s.auditRepo, model.ActionUpdateProduct, fmt.Sprint(product.ProductID), product.Brand+" "+product.ProductName, req)
		return nil
	})
	if err != nil {
		return ProductResponse{}, err
	}

	return toProductResponse(*product), nil
}

func (s *inventoryService) DeleteProduct(ctx context.Context, id uint) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to fetch product: %w", err)
	}

	inUse, err := s.productRepo.ReferencedByTaxInvoice(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check product references: %w", err)
	}
	if inUse {
		return ErrProductInUse
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.productRepo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		writeAudit(txCtx, s.auditRepo, model.ActionDeleteProduct, fmt.Sprint(id), product.Brand+" "+product.ProductName, map[string]bool{"deleted": true})
		return nil
	})
}

func (s *inventoryService) RecordTruckEntry(ctx context.Context, req RecordTruckEntryRequest) (TruckEntryResponse, error) {
	entryDate, err := time.Parse("2006-01-02", req.EntryDate)
	if err != nil {
		return TruckEntryResponse{}, fmt.Errorf("invalid entry_date format (expected YYYY-MM-DD): %w", err)
	}

	var entry model.TruckEntry
	var changed []uint

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		items := make([]model.TruckEntryItem, 0, len(req.Items))

		for _, item := range req.Items {
			productID := item.ProductID

			if item.NewProduct != nil {
				np := *item.NewProduct
				np.BoxesOnHand = item.Quantity
				product, buildErr := buildProduct(np)
				if buildErr != nil {
					return buildErr
				}
				if createErr := s.productRepo.Create(txCtx, product); createErr != nil {
					return fmt.Errorf("failed to create product from truck entry: %w", createErr)
				}
				productID = product.ProductID
			} else {
				if _, findErr := s.productRepo.FindByID(txCtx, productID); findErr != nil {
					if errors.Is(findErr, gorm.ErrRecordNotFound) {
						return ErrProductNotFound
					}
					return fmt.Errorf("failed to fetch product %d: %w", productID, findErr)
				}
				if adjErr := s.productRepo.AdjustStock(txCtx, productID, item.Quantity); adjErr != nil {
					return fmt.Errorf("failed to add stock for product %d: %w", productID, adjErr)
				}
			}

			items = append(items, model.TruckEntryItem{ProductID: productID, Quantity: item.Quantity})
			changed = append(changed, productID)
		}

		entry = model.TruckEntry{
			TruckNumber: req.TruckNumber,
			EntryDate:   entryDate,
			Items:       items,
		}
		if createErr := s.truckRepo.Create(txCtx, &entry); createErr != nil {
			return fmt.Errorf("failed to record truck entry: %w", createErr)
		}

		writeAudit(txCtx, s.auditRepo, model.ActionTruckEntry, fmt.Sprint(entry.ID), req.TruckNumber, req)
		return nil
	})
	if err != nil {
		return TruckEntryResponse{}, err
	}

	for _, id := range changed {
		s.events.Publish("stock.changed", map[string]any{"product_id": id})
	}
	return toTruckEntryResponse(entry), nil
}

func (s *inventoryService) ListTruckEntries(ctx context.Context, page, limit int) ([]TruckEntryResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	entries, total, err := s.truckRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch truck entries: %w", err)
	}

	res := make([]TruckEntryResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, toTruckEntryResponse(e))
	}
	return res, total, nil
}

// --- Helpers ---

type parsedDimension struct {
	value decimal.Decimal
	unit  pricing.Unit
	feet  decimal.Decimal
}

func parseDimension(in DimensionInput) (parsedDimension, error) {
	value, err := decimal.NewFromString(in.Value)
	if err != nil {
		return parsedDimension{}, fmt.Errorf("invalid dimension value %q: %w", in.Value, err)
	}
	unit := pricing.Unit(in.Unit)
	feet, err := pricing.ToFeet(value, unit)
	if err != nil {
		return parsedDimension{}, err
	}
	return parsedDimension{value: value, unit: unit, feet: feet}, nil
}

func parseDimensions(w, h DimensionInput) (parsedDimension, parsedDimension, error) {
	width, err := parseDimension(w)
	if err != nil {
		return parsedDimension{}, parsedDimension{}, err
	}
	height, err := parseDimension(h)
	if err != nil {
		return parsedDimension{}, parsedDimension{}, err
	}
	return width, height, nil
}

func parsePositiveDecimal(raw, field string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", field, err)
	}
	if d.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%s must be positive", field)
	}
	return d, nil
}

func buildProduct(req CreateProductRequest) (*model.Product, error) {
	width, height, err := parseDimensions(req.TileWidth, req.TileHeight)
	if err != nil {
		return nil, err
	}

	if req.TilesPerBox <= 0 {
		return nil, pricing.ErrInvalidDimension
	}

	price, err := parsePositiveDecimal(req.PricePerSqft, "price_per_sqft")
	if err != nil {
		return nil, err
	}

	return &model.Product{
		Brand:           req.Brand,
		ProductName:     req.ProductName,
		TileWidth:       width.feet,
		TileWidthValue:  width.value,
		TileWidthUnit:   string(width.unit),
		TileHeight:      height.feet,
		TileHeightValue: height.value,
		TileHeightUnit:  string(height.unit),
		TilesPerBox:     req.TilesPerBox,
		BoxesOnHand:     req.BoxesOnHand,
		PricePerSqft:    price,
		HSNCode:         req.HSNCode,
	}, nil
}

// writeAudit is best-effort: a failed audit write never fails the operation.
func writeAudit(ctx context.Context, repo repository.AuditRepository, action, entityID, entityName string, details any) {
	payload, _ := json.Marshal(details)
	_ = repo.Log(ctx, &model.AuditLog{
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(payload),
	})
}

func toProductResponse(p model.Product) ProductResponse {
	area, err := pricing.AreaPerBox(p.TileWidth, p.TileHeight, p.TilesPerBox)
	if err != nil {
		area = decimal.Zero
	}
	return ProductResponse{
		ProductID:       p.ProductID,
		Brand:           p.Brand,
		ProductName:     p.ProductName,
		TileWidth:       p.TileWidth.StringFixed(4),
		TileHeight:      p.TileHeight.StringFixed(4),
		TileWidthValue:  p.TileWidthValue.String(),
		TileWidthUnit:   p.TileWidthUnit,
		TileHeightValue: p.TileHeightValue.String(),
		TileHeightUnit:  p.TileHeightUnit,
		TilesPerBox:     p.TilesPerBox,
		BoxesOnHand:     p.BoxesOnHand,
		AreaPerBox:      area.StringFixed(4),
		PricePerSqft:    p.PricePerSqft.StringFixed(2),
		HSNCode:         p.HSNCode,
	}
}

func toTruckEntryResponse(e model.TruckEntry) TruckEntryResponse {
	items := make([]TruckEntryItemResponse, 0, len(e.Items))
	for _, item := range e.Items {
		items = append(items, TruckEntryItemResponse{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return TruckEntryResponse{
		ID:          e.ID,
		TruckNumber: e.TruckNumber,
		EntryDate:   e.EntryDate.Format("2006-01-02"),
		Items:       items,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
}
