package handler

import (
	"errors"
	"net/http"

	"backend/internal/pricing"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderService   service.OrderService
	invoiceService service.InvoiceService
}

func NewOrderHandler(orderService service.OrderService, invoiceService service.InvoiceService) *OrderHandler {
	return &OrderHandler{orderService: orderService, invoiceService: invoiceService}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/orders")
	{
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.POST("", h.CreateOrder)
		orders.DELETE("/:id", h.DeleteOrder)
		orders.GET("/:id/invoice-data", h.GetInvoiceData)
	}
}

// CreateOrder creates a quotation or tax invoice
// @Summary      Create order
// @Description  Prices the cart, computes GST and for tax invoices consumes stock atomically
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateOrderRequest  true  "Create Order Payload"
// @Success      201      {object}  response.Response{data=service.OrderResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req)
	if err != nil {
		status, msg := mapOrderError(err)
		c.JSON(status, response.Error(status, msg))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, order))
}

// ListOrders lists orders with optional filters
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Param        type    query     string  false  "Filter by order type (quotation, tax_invoice)"
// @Param        client  query     string  false  "Filter by client name"
// @Success      200     {object}  response.Response{data=object}
// @Failure      500     {object}  response.Response
// @Router       /api/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	params := pagination.Parse(c)

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), repository.OrderListFilter{
		OrderType: c.Query("type"),
		Client:    c.Query("client"),
		Page:      params.Page,
		Limit:     params.Limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to retrieve orders: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"orders": orders,
		"total":  total,
		"page":   params.Page,
		"limit":  params.Limit,
	}))
}

// GetOrder retrieves a single order with its items
// @Summary      Get order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID (UUID)"
// @Success      200  {object}  response.Response{data=service.OrderResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid order id"))
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		status, msg := mapOrderError(err)
		c.JSON(status, response.Error(status, msg))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// DeleteOrder removes an order, restoring stock for tax invoices
// @Summary      Delete order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID (UUID)"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid order id"))
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		status, msg := mapOrderError(err)
		c.JSON(status, response.Error(status, msg))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]string{"message": "Order deleted"}))
}

// GetInvoiceData assembles everything the invoice renderer needs
// @Summary      Get invoice data
// @Description  Returns the order, totals, amount in words and seller/bank details
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID (UUID)"
// @Success      200  {object}  response.Response{data=service.InvoiceData}
// @Failure      404  {object}  response.Response
// @Router       /api/orders/{id}/invoice-data [get]
func (h *OrderHandler) GetInvoiceData(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid order id"))
		return
	}

	data, err := h.invoiceService.GetInvoiceData(c.Request.Context(), id)
	if err != nil {
		status, msg := mapOrderError(err)
		c.JSON(status, response.Error(status, msg))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, data))
}

func mapOrderError(err error) (int, string) {
	var stockErr *service.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		return http.StatusConflict, stockErr.Error()
	case errors.Is(err, service.ErrOrderNotFound):
		return http.StatusNotFound, "Order not found"
	case errors.Is(err, service.ErrProductNotFound):
		return http.StatusNotFound, "Product not found"
	case errors.Is(err, pricing.ErrEmptyCart):
		return http.StatusBadRequest, "Order must contain at least one item"
	case errors.Is(err, pricing.ErrInvalidDimension), errors.Is(err, pricing.ErrDivisionByZero):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
