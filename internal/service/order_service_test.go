package service

import (
	"context"
	"errors"
	"testing"

	"backend/internal/model"
	"backend/internal/pricing"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderFixture(t *testing.T) (*orderService, *fakeProductRepo, *fakeOrderRepo, *fakePublisher) {
	t.Helper()
	products := newFakeProductRepo()
	orders := newFakeOrderRepo()
	events := &fakePublisher{}
	svc := NewOrderService(orders, products, &fakeAuditRepo{}, fakeTxManager{}, events).(*orderService)
	return svc, products, orders, events
}

func seedTile(t *testing.T, repo *fakeProductRepo, brand string, boxes int, pricePerSqft string) uint {
	t.Helper()
	p := &model.Product{
		Brand:        brand,
		ProductName:  "Glossy 2x2",
		TileWidth:    decimal.NewFromInt(2),
		TileHeight:   decimal.NewFromInt(2),
		TilesPerBox:  5,
		BoxesOnHand:  boxes,
		PricePerSqft: decimal.RequireFromString(pricePerSqft),
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p.ProductID
}

func TestCreateOrderTaxInvoice(t *testing.T) {
	svc, products, _, events := newOrderFixture(t)
	id := seedTile(t, products, "Kajaria", 100, "50")

	res, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		OrderType:   model.OrderTypeTaxInvoice,
		ClientName:  "Sharma Traders",
		ClientState: "Maharashtra",
		Items:       []OrderItemRequest{{ProductID: id, Boxes: 10}},
	})
	require.NoError(t, err)

	// 2x2 tiles, 5 per box: 20 sqft/box, 10 boxes = 200 sqft at 50 = 10000.
	assert.Equal(t, "10000.00", res.Subtotal)
	assert.Equal(t, string(pricing.GSTCGSTSGST), res.GSTType)
	assert.Equal(t, "900.00", res.CGSTAmount)
	assert.Equal(t, "900.00", res.SGSTAmount)
	assert.Equal(t, "0.00", res.IGSTAmount)
	assert.Equal(t, "11800.00", res.TotalAmount)
	assert.Equal(t, "Eleven Thousand Eight Hundred Rupees Only", res.AmountInWords)
	assert.Contains(t, res.OrderNo, "ORD-")

	p, err := products.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 90, p.BoxesOnHand)
	assert.True(t, events.has("stock.changed"))
	assert.True(t, events.has("order.created"))
}

func TestCreateOrderInterstateIGST(t *testing.T) {
	svc, products, _, _ := newOrderFixture(t)
	id := seedTile(t, products, "Somany", 50, "50")

	res, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		OrderType:   model.OrderTypeTaxInvoice,
		ClientName:  "Gujarat Ceramics",
		ClientState: "Gujarat",
		Items:       []OrderItemRequest{{ProductID: id, Boxes: 10}},
	})
	require.NoError(t, err)

	assert.Equal(t, string(pricing.GSTIGST), res.GSTType)
	assert.Equal(t, "1800.00", res.IGSTAmount)
	assert.Equal(t, "0.00", res.CGSTAmount)
	assert.Equal(t, "11800.00", res.TotalAmount)
}

func TestCreateOrderQuotationLeavesStockAlone(t *testing.T) {
	svc, products, _, events := newOrderFixture(t)
	id := seedTile(t, products, "Kajaria", 100, "50")

	res, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		OrderType:   model.OrderTypeQuotation,
		ClientName:  "Sharma Traders",
		ClientState: "Gujarat",
		Items:       []OrderItemRequest{{ProductID: id, Boxes: 10}},
	})
	require.NoError(t, err)

	assert.Equal(t, string(pricing.GSTNone), res.GSTType)
	assert.Equal(t, res.Subtotal, res.TotalAmount)
	assert.Equal(t, "0.00", res.IGSTAmount)

	p, err := products.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 100, p.BoxesOnHand, "quotation must not consume stock")
	assert.False(t, events.has("stock.changed"))
}

func TestCreateOrderReverseCharge(t *testing.T) {
	svc, products, _, _ := newOrderFixture(t)
	id := seedTile(t, products, "Kajaria", 100, "50")

	res, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		OrderType:       model.OrderTypeTaxInvoice,
		ClientName:      "Sharma Traders",
		ClientState:     "Maharashtra",
		IsReverseCharge: true,
		Items:           []OrderItemRequest{{ProductID: id, Boxes: 10}},
	})
	require.NoError(t, err)

	// Liability shifts to the buyer: no tax added, but the state split is
	// still recorded so only quotations carry the none type.
	assert.Equal(t, string(pricing.GSTCGSTSGST), res.GSTType)
	assert.Equal(t, "0.00", res.CGSTAmount)
	assert.Equal(t, res.Subtotal, res.TotalAmount)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	svc, products, orders, _ := newOrderFixture(t)
	id := seedTile(t, products, "Kajaria", 5, "50")

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		OrderType:   model.OrderTypeTaxInvoice,
		ClientName:  "Sharma Traders",
		ClientState: "Maharashtra",
		Items:       []OrderItemRequest{{ProductID: id, Boxes: 6}},
	})

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, id, stockErr.ProductID)
	assert.Equal(t, 6, stockErr.Requested)
	assert.Equal(t, 5, stockErr.Available)

	p, ferr := products.FindByID(context.Background(), id)
	require.NoError(t, ferr)
	assert.Equal(t, 5, p.BoxesOnHand)

	_, total, lerr := orders.List(context.Background(), repository.OrderListFilter{})
	require.NoError(t, lerr)
	assert.Zero(t, total, "failed order must not persist")
}

func TestCreateOrderConcurrentSaleRollsBack(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo()
	events := &fakePublisher{}
	tx := rollbackTxManager{products: products, orders: orders}
	svc := NewOrderService(orders, products, &fakeAuditRepo{}, tx, events).(*orderService)

	id := seedTile(t, products, "Kajaria", 10, "50")

	// A competing sale lands between the upfront availability check and the
	// guarded decrement, leaving only 2 boxes for a 5 box order.
	products.beforeAdjust = func(pid uint, delta int) {
		products.beforeAdjust = nil
		require.NoError(t, products.AdjustStock(context.Background(), pid, -8))
	}

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		OrderType:   model.OrderTypeTaxInvoice,
		ClientName:  "Sharma Traders",
		ClientState: "Maharashtra",
		Items:       []OrderItemRequest{{ProductID: id, Boxes: 5}},
	})

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Available)

	// the rolled back transaction leaves no order or items behind
	_, total, listErr := orders.List(context.Background(), repository.OrderListFilter{})
	require.NoError(t, listErr)
	assert.Zero(t, total)
	assert.False(t, events.has("order.created"))
	assert.False(t, events.has("stock.changed"))
}

func TestCreateOrderExactStockBoundary(t *testing.T) {
	svc, products, _, _ := newOrderFixture(t)
	id := seedTile(t, products, "Kajaria", 5, "50")

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		OrderType:   model.OrderTypeTaxInvoice,
		ClientName:  "Sharma Traders",
		ClientState: "Maharashtra",
		Items:       []OrderItemRequest{{ProductID: id, Boxes: 5}},
	})
	require.NoError(t, err)

	p, err := products.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Zero(t, p.BoxesOnHand)
}

func TestCreateOrderMergesDuplicateLinesBeforeStockCheck(t *testing.T) {
	svc, products, _, _ := newOrderFixture(t)
	id := seedTile(t, products, "Kajaria", 5, "50")

	// 3 + 3 boxes of the same product must fail against 5 on hand even
	// though each line alone would pass.
	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		OrderType:   model.OrderTypeTaxInvoice,
		ClientName:  "Sharma Traders",
		ClientState: "Maharashtra",
		Items: []OrderItemRequest{
			{ProductID: id, Boxes: 3},
			{ProductID: id, Boxes: 3},
		},
	})

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 6, stockErr.Requested)
}

func TestCreateOrderPricePerBoxOverride(t *testing.T) {
	svc, products, _, _ := newOrderFixture(t)
	id := seedTile(t, products, "Kajaria", 100, "50")

	override := "500" // 500 per 20 sqft box = 25/sqft
	res, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		OrderType:   model.OrderTypeQuotation,
		ClientName:  "Sharma Traders",
		ClientState: "Maharashtra",
		Items:       []OrderItemRequest{{ProductID: id, Boxes: 10, PricePerBox: &override}},
	})
	require.NoError(t, err)

	require.Len(t, res.Items, 1)
	assert.Equal(t, "25.00", res.Items[0].PricePerSqft)
	assert.Equal(t, "5000.00", res.Subtotal)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	svc, _, _, _ := newOrderFixture(t)

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		OrderType:   model.OrderTypeTaxInvoice,
		ClientName:  "Sharma Traders",
		ClientState: "Maharashtra",
	})
	assert.ErrorIs(t, err, pricing.ErrEmptyCart)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	svc, _, _, _ := newOrderFixture(t)

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		OrderType:   model.OrderTypeTaxInvoice,
		ClientName:  "Sharma Traders",
		ClientState: "Maharashtra",
		Items:       []OrderItemRequest{{ProductID: 999, Boxes: 1}},
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteOrderRestoresStock(t *testing.T) {
	svc, products, _, events := newOrderFixture(t)
	id := seedTile(t, products, "Kajaria", 100, "50")

	res, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		OrderType:   model.OrderTypeTaxInvoice,
		ClientName:  "Sharma Traders",
		ClientState: "Maharashtra",
		Items:       []OrderItemRequest{{ProductID: id, Boxes: 10}},
	})
	require.NoError(t, err)

	orderID, err := uuid.Parse(res.ID)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteOrder(context.Background(), orderID))

	p, err := products.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 100, p.BoxesOnHand, "delete must return consumed stock")
	assert.True(t, events.has("order.deleted"))

	err = svc.DeleteOrder(context.Background(), orderID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestDeleteQuotationDoesNotTouchStock(t *testing.T) {
	svc, products, _, _ := newOrderFixture(t)
	id := seedTile(t, products, "Kajaria", 100, "50")

	res, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		OrderType:   model.OrderTypeQuotation,
		ClientName:  "Sharma Traders",
		ClientState: "Maharashtra",
		Items:       []OrderItemRequest{{ProductID: id, Boxes: 10}},
	})
	require.NoError(t, err)

	orderID, err := uuid.Parse(res.ID)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteOrder(context.Background(), orderID))

	p, err := products.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 100, p.BoxesOnHand)
}

func TestOrderNoSequencePerDay(t *testing.T) {
	svc, products, _, _ := newOrderFixture(t)
	id := seedTile(t, products, "Kajaria", 100, "50")

	first, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		OrderType:   model.OrderTypeQuotation,
		ClientName:  "A",
		ClientState: "Maharashtra",
		OrderDate:   "2026-08-30",
		Items:       []OrderItemRequest{{ProductID: id, Boxes: 1}},
	})
	require.NoError(t, err)
	second, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		OrderType:   model.OrderTypeQuotation,
		ClientName:  "B",
		ClientState: "Maharashtra",
		OrderDate:   "2026-08-30",
		Items:       []OrderItemRequest{{ProductID: id, Boxes: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, "ORD-20260830-00001", first.OrderNo)
	assert.Equal(t, "ORD-20260830-00002", second.OrderNo)
}

func TestGetOrderNotFound(t *testing.T) {
	svc, _, _, _ := newOrderFixture(t)
	_, err := svc.GetOrder(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, ErrOrderNotFound))
}
