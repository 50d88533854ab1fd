package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/pricing"
	"backend/internal/repository"
	"backend/pkg/numwords"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type OrderItemRequest struct {
	ProductID   uint    `json:"product_id" binding:"required"`
	Boxes       int     `json:"boxes" binding:"required,gt=0"`
	PricePerBox *string `json:"price_per_box,omitempty"`
}

type CreateOrderRequest struct {
	OrderType       string             `json:"order_type" binding:"required,oneof=quotation tax_invoice"`
	ClientName      string             `json:"client_name" binding:"required"`
	ClientPhone     string             `json:"client_phone"`
	ClientAddress   string             `json:"client_address"`
	ClientState     string             `json:"client_state" binding:"required"`
	ClientGST       string             `json:"client_gst"`
	StateCode       string             `json:"state_code"`
	VehicleNo       string             `json:"vehicle_no"`
	EwayBill        string             `json:"eway_bill"`
	HSNCode         string             `json:"hsn_code"`
	IsReverseCharge bool               `json:"is_reverse_charge"`
	OrderDate       string             `json:"order_date"` // YYYY-MM-DD, defaults to today
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type OrderItemResponse struct {
	ItemID       uint   `json:"item_id"`
	ProductID    uint   `json:"product_id"`
	Brand        string `json:"brand"`
	ProductName  string `json:"product_name"`
	BoxesSold    int    `json:"boxes_sold"`
	AreaPerBox   string `json:"area_per_box"`
	PricePerSqft string `json:"price_per_sqft"`
	TotalSqft    string `json:"total_sqft"`
	TotalPrice   string `json:"total_price"`
}

type OrderResponse struct {
	ID              string              `json:"id"`
	OrderNo         string              `json:"order_no"`
	OrderType       string              `json:"order_type"`
	ClientName      string              `json:"client_name"`
	ClientPhone     string              `json:"client_phone"`
	ClientAddress   string              `json:"client_address"`
	ClientState     string              `json:"client_state"`
	ClientGST       string              `json:"client_gst"`
	StateCode       string              `json:"state_code"`
	VehicleNo       string              `json:"vehicle_no"`
	EwayBill        string              `json:"eway_bill"`
	HSNCode         string              `json:"hsn_code"`
	IsReverseCharge bool                `json:"is_reverse_charge"`
	GSTType         string              `json:"gst_type"`
	TotalBoxes      int                 `json:"total_boxes"`
	TotalSqft       string              `json:"total_sqft"`
	Subtotal        string              `json:"subtotal"`
	IGSTRate        string              `json:"igst_rate"`
	IGSTAmount      string              `json:"igst_amount"`
	CGSTRate        string              `json:"cgst_rate"`
	CGSTAmount      string              `json:"cgst_amount"`
	SGSTRate        string              `json:"sgst_rate"`
	SGSTAmount      string              `json:"sgst_amount"`
	TotalAmount     string              `json:"total_amount"`
	AmountInWords   string              `json:"amount_in_words"`
	OrderDate       string              `json:"order_date"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       string              `json:"created_at"`
}

// --- Interface ---

type OrderService interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (OrderResponse, error)
	GetOrder(ctx context.Context, id uuid.UUID) (OrderResponse, error)
	ListOrders(ctx context.Context, filter repository.OrderListFilter) ([]OrderResponse, int64, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	events      eventPublisher
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	events eventPublisher,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		events:      events,
	}
}

// --- Implementation ---

func (s *orderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (OrderResponse, error) {
	orderDate := time.Now()
	if req.OrderDate != "" {
		parsed, err := time.Parse("2006-01-02", req.OrderDate)
		if err != nil {
			return OrderResponse{}, fmt.Errorf("invalid order_date format (expected YYYY-MM-DD): %w", err)
		}
		orderDate = parsed
	}

	cart, products, err := s.buildCart(ctx, req.Items)
	if err != nil {
		return OrderResponse{}, err
	}

	totals, err := pricing.Aggregate(cart.Lines(), pricing.OrderType(req.OrderType), req.ClientState, req.IsReverseCharge)
	if err != nil {
		return OrderResponse{}, err
	}

	// Stock is validated against the merged lines so that two cart entries
	// for the same product cannot each pass individually and together
	// oversell. Final enforcement happens in the guarded decrement.
	if req.OrderType == model.OrderTypeTaxInvoice {
		for _, line := range cart.Lines() {
			p := products[line.ProductID]
			if line.Boxes > p.BoxesOnHand {
				return OrderResponse{}, &InsufficientStockError{
					ProductID: p.ProductID,
					Brand:     p.Brand,
					Requested: line.Boxes,
					Available: p.BoxesOnHand,
				}
			}
		}
	}

	order := model.Order{
		ID:              uuid.New(),
		OrderType:       req.OrderType,
		ClientName:      req.ClientName,
		ClientPhone:     req.ClientPhone,
		ClientAddress:   req.ClientAddress,
		ClientState:     req.ClientState,
		ClientGST:       req.ClientGST,
		StateCode:       req.StateCode,
		VehicleNo:       req.VehicleNo,
		EwayBill:        req.EwayBill,
		HSNCode:         req.HSNCode,
		IsReverseCharge: req.IsReverseCharge,
		GSTType:         string(totals.Tax.GSTType),
		Subtotal:        totals.Subtotal,
		IGSTRate:        totals.Tax.IGSTRate,
		IGSTAmount:      totals.Tax.IGSTAmount,
		CGSTRate:        totals.Tax.CGSTRate,
		CGSTAmount:      totals.Tax.CGSTAmount,
		SGSTRate:        totals.Tax.SGSTRate,
		SGSTAmount:      totals.Tax.SGSTAmount,
		TotalAmount:     totals.GrandTotal,
		OrderDate:       orderDate,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		orderNo, genErr := s.generateOrderNo(txCtx, orderDate)
		if genErr != nil {
			return genErr
		}
		order.OrderNo = orderNo

		if createErr := s.orderRepo.Create(txCtx, &order); createErr != nil {
			return fmt.Errorf("failed to create order: %w", createErr)
		}

		items := make([]model.OrderItem, 0, cart.Len())
		for _, line := range cart.Lines() {
			items = append(items, model.OrderItem{
				OrderID:      order.ID,
				ProductID:    line.ProductID,
				BoxesSold:    line.Boxes,
				PricePerSqft: line.PricePerSqft,
			})
		}
		if createErr := s.orderRepo.CreateItems(txCtx, items); createErr != nil {
			return fmt.Errorf("failed to create order items: %w", createErr)
		}

		if req.OrderType == model.OrderTypeTaxInvoice {
			for _, line := range cart.Lines() {
				if adjErr := s.productRepo.AdjustStock(txCtx, line.ProductID, -line.Boxes); adjErr != nil {
					if errors.Is(adjErr, repository.ErrStockConflict) {
						return s.stockError(txCtx, line)
					}
					return fmt.Errorf("failed to decrement stock for product %d: %w", line.ProductID, adjErr)
				}
			}
		}

		writeAudit(txCtx, s.auditRepo, model.ActionCreateOrder, order.ID.String(), order.ClientName, req)
		return nil
	})
	if err != nil {
		return OrderResponse{}, err
	}

	if req.OrderType == model.OrderTypeTaxInvoice {
		s.events.Publish("stock.changed", map[string]any{"order_id": order.ID.String()})
	}
	s.events.Publish("order.created", map[string]any{"order_id": order.ID.String(), "order_no": order.OrderNo})

	return s.toResponseFromCart(order, cart.Lines(), products), nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (OrderResponse, error) {
	order, err := s.orderRepo.FindByIDWithItems(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderResponse{}, ErrOrderNotFound
		}
		return OrderResponse{}, fmt.Errorf("failed to fetch order: %w", err)
	}
	return toOrderResponse(*order), nil
}

func (s *orderService) ListOrders(ctx context.Context, filter repository.OrderListFilter) ([]OrderResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	orders, total, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	res := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		res = append(res, toOrderResponse(o))
	}
	return res, total, nil
}

// DeleteOrder removes an order. For tax invoices the consumed stock is
// returned first, so a delete-and-recreate cycle leaves inventory where it
// started. Everything runs in one transaction.
func (s *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.FindByIDWithItems(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to fetch order: %w", err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if order.OrderType == model.OrderTypeTaxInvoice {
			for _, item := range order.Items {
				if adjErr := s.productRepo.AdjustStock(txCtx, item.ProductID, item.BoxesSold); adjErr != nil {
					// The product may have been deleted since the sale.
					// Skipping restore for a missing row is the only option
					// that still lets the order be removed.
					if errors.Is(adjErr, repository.ErrStockConflict) {
						continue
					}
					return fmt.Errorf("failed to restore stock for product %d: %w", item.ProductID, adjErr)
				}
			}
		}
		if delErr := s.orderRepo.DeleteItems(txCtx, id); delErr != nil {
			return fmt.Errorf("failed to delete order items: %w", delErr)
		}
		if delErr := s.orderRepo.Delete(txCtx, id); delErr != nil {
			return fmt.Errorf("failed to delete order: %w", delErr)
		}
		writeAudit(txCtx, s.auditRepo, model.ActionDeleteOrder, id.String(), order.ClientName, map[string]string{"order_no": order.OrderNo})
		return nil
	})
	if err != nil {
		return err
	}

	if order.OrderType == model.OrderTypeTaxInvoice {
		s.events.Publish("stock.changed", map[string]any{"order_id": id.String()})
	}
	s.events.Publish("order.deleted", map[string]any{"order_id": id.String(), "order_no": order.OrderNo})
	return nil
}

// --- Helpers ---

// buildCart snapshots the referenced products, prices each request line and
// merges duplicates. The returned map indexes the snapshotted products by ID
// for stock validation and response building.
func (s *orderService) buildCart(ctx context.Context, items []OrderItemRequest) (*pricing.Cart, map[uint]model.Product, error) {
	if len(items) == 0 {
		return nil, nil, pricing.ErrEmptyCart
	}

	cart := &pricing.Cart{}
	products := make(map[uint]model.Product)

	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			p, err := s.productRepo.FindByID(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, nil, ErrProductNotFound
				}
				return nil, nil, fmt.Errorf("failed to fetch product %d: %w", item.ProductID, err)
			}
			product = *p
			products[item.ProductID] = product
		}

		area, err := pricing.AreaPerBox(product.TileWidth, product.TileHeight, product.TilesPerBox)
		if err != nil {
			return nil, nil, err
		}

		input := pricing.LineInput{
			Product: pricing.ProductSnapshot{
				ProductID:    product.ProductID,
				Brand:        product.Brand,
				AreaPerBox:   area,
				PricePerSqft: product.PricePerSqft,
			},
			Boxes: item.Boxes,
		}
		if item.PricePerBox != nil {
			override, parseErr := decimal.NewFromString(*item.PricePerBox)
			if parseErr != nil {
				return nil, nil, fmt.Errorf("invalid price_per_box for product %d: %w", item.ProductID, parseErr)
			}
			input.PricePerBox = &override
		}

		line, err := pricing.PriceLine(input)
		if err != nil {
			return nil, nil, err
		}
		cart.Add(line)
	}

	return cart, products, nil
}

// generateOrderNo builds the next ORD-YYYYMMDD-NNNNN number for the day.
func (s *orderService) generateOrderNo(ctx context.Context, date time.Time) (string, error) {
	prefix := fmt.Sprintf("ORD-%s-", date.Format("20060102"))
	count, err := s.orderRepo.CountByPrefix(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("failed to generate order number: %w", err)
	}
	return fmt.Sprintf("%s%05d", prefix, count+1), nil
}

// stockError re-reads the product after a rejected decrement to report the
// actual available quantity in the error.
func (s *orderService) stockError(ctx context.Context, line pricing.Line) error {
	available := 0
	if p, err := s.productRepo.FindByID(ctx, line.ProductID); err == nil {
		available = p.BoxesOnHand
	}
	return &InsufficientStockError{
		ProductID: line.ProductID,
		Brand:     line.Brand,
		Requested: line.Boxes,
		Available: available,
	}
}

func (s *orderService) toResponseFromCart(order model.Order, lines []pricing.Line, products map[uint]model.Product) OrderResponse {
	res := baseOrderResponse(order)
	for _, line := range lines {
		p := products[line.ProductID]
		res.TotalBoxes += line.Boxes
		res.Items = append(res.Items, OrderItemResponse{
			ProductID:    line.ProductID,
			Brand:        line.Brand,
			ProductName:  p.ProductName,
			BoxesSold:    line.Boxes,
			AreaPerBox:   line.AreaPerBox.StringFixed(4),
			PricePerSqft: line.PricePerSqft.StringFixed(2),
			TotalSqft:    line.TotalSqft.StringFixed(4),
			TotalPrice:   line.TotalPrice.StringFixed(2),
		})
	}
	res.TotalSqft = sumLineSqft(lines).StringFixed(4)
	return res
}

func toOrderResponse(order model.Order) OrderResponse {
	res := baseOrderResponse(order)
	totalSqft := decimal.Zero
	for _, item := range order.Items {
		ir := OrderItemResponse{
			ItemID:       item.ItemID,
			ProductID:    item.ProductID,
			BoxesSold:    item.BoxesSold,
			PricePerSqft: item.PricePerSqft.StringFixed(2),
		}
		if item.Product != nil {
			ir.Brand = item.Product.Brand
			ir.ProductName = item.Product.ProductName
			if area, err := pricing.AreaPerBox(item.Product.TileWidth, item.Product.TileHeight, item.Product.TilesPerBox); err == nil {
				sqft := area.Mul(decimal.NewFromInt(int64(item.BoxesSold)))
				ir.AreaPerBox = area.StringFixed(4)
				ir.TotalSqft = sqft.StringFixed(4)
				ir.TotalPrice = sqft.Mul(item.PricePerSqft).StringFixed(2)
				totalSqft = totalSqft.Add(sqft)
			}
		}
		res.TotalBoxes += item.BoxesSold
		res.Items = append(res.Items, ir)
	}
	res.TotalSqft = totalSqft.StringFixed(4)
	return res
}

func baseOrderResponse(order model.Order) OrderResponse {
	return OrderResponse{
		ID:              order.ID.String(),
		OrderNo:         order.OrderNo,
		OrderType:       order.OrderType,
		ClientName:      order.ClientName,
		ClientPhone:     order.ClientPhone,
		ClientAddress:   order.ClientAddress,
		ClientState:     order.ClientState,
		ClientGST:       order.ClientGST,
		StateCode:       order.StateCode,
		VehicleNo:       order.VehicleNo,
		EwayBill:        order.EwayBill,
		HSNCode:         order.HSNCode,
		IsReverseCharge: order.IsReverseCharge,
		GSTType:         order.GSTType,
		Subtotal:        order.Subtotal.StringFixed(2),
		IGSTRate:        order.IGSTRate.StringFixed(2),
		IGSTAmount:      order.IGSTAmount.StringFixed(2),
		CGSTRate:        order.CGSTRate.StringFixed(2),
		CGSTAmount:      order.CGSTAmount.StringFixed(2),
		SGSTRate:        order.SGSTRate.StringFixed(2),
		SGSTAmount:      order.SGSTAmount.StringFixed(2),
		TotalAmount:     order.TotalAmount.StringFixed(2),
		AmountInWords:   numwords.Rupees(order.TotalAmount),
		OrderDate:       order.OrderDate.Format("2006-01-02"),
		CreatedAt:       order.CreatedAt.Format(time.RFC3339),
	}
}

func sumLineSqft(lines []pricing.Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.TotalSqft)
	}
	return total
}
