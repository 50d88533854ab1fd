package handler

import (
	"errors"
	"net/http"

	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type LedgerHandler struct {
	ledgerService service.LedgerService
}

func NewLedgerHandler(ledgerService service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

func (h *LedgerHandler) RegisterRoutes(router *gin.RouterGroup) {
	ledger := router.Group("/ledger")
	{
		ledger.GET("", h.ListEntries)
		ledger.GET("/:id", h.GetEntry)
		ledger.POST("", h.CreateEntry)
		ledger.POST("/:id/payments", h.AddPayment)
		ledger.DELETE("/:id", h.DeleteEntry)
	}
}

// CreateEntry opens a ledger entry for a client balance
// @Summary      Create ledger entry
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateLedgerEntryRequest  true  "Ledger Entry Payload"
// @Success      201      {object}  response.Response{data=service.LedgerEntryResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/ledger [post]
func (h *LedgerHandler) CreateEntry(c *gin.Context) {
	var req service.CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	entry, err := h.ledgerService.CreateEntry(c.Request.Context(), req)
	if err != nil {
		status, msg := mapLedgerError(err)
		c.JSON(status, response.Error(status, msg))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, entry))
}

// AddPayment records a payment against a ledger entry
// @Summary      Add payment
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        id       path      int                        true  "Ledger Entry ID"
// @Param        payload  body      service.AddPaymentRequest  true  "Payment Payload"
// @Success      201      {object}  response.Response{data=service.LedgerEntryResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/ledger/{id}/payments [post]
func (h *LedgerHandler) AddPayment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid ledger entry id"))
		return
	}

	var req service.AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	entry, err := h.ledgerService.AddPayment(c.Request.Context(), id, req)
	if err != nil {
		status, msg := mapLedgerError(err)
		c.JSON(status, response.Error(status, msg))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, entry))
}

// GetEntry retrieves a ledger entry with payments and outstanding balance
// @Summary      Get ledger entry
// @Tags         ledger
// @Produce      json
// @Param        id   path      int  true  "Ledger Entry ID"
// @Success      200  {object}  response.Response{data=service.LedgerEntryResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/ledger/{id} [get]
func (h *LedgerHandler) GetEntry(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid ledger entry id"))
		return
	}

	entry, err := h.ledgerService.GetEntry(c.Request.Context(), id)
	if err != nil {
		status, msg := mapLedgerError(err)
		c.JSON(status, response.Error(status, msg))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, entry))
}

// ListEntries lists ledger entries
// @Summary      List ledger entries
// @Tags         ledger
// @Produce      json
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Param        client  query     string  false  "Filter by client name"
// @Success      200     {object}  response.Response{data=object}
// @Failure      500     {object}  response.Response
// @Router       /api/ledger [get]
func (h *LedgerHandler) ListEntries(c *gin.Context) {
	params := pagination.Parse(c)

	entries, total, err := h.ledgerService.ListEntries(c.Request.Context(), params.Page, params.Limit, c.Query("client"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to retrieve ledger entries: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"entries": entries,
		"total":   total,
		"page":    params.Page,
		"limit":   params.Limit,
	}))
}

// DeleteEntry removes a ledger entry and its payments
// @Summary      Delete ledger entry
// @Tags         ledger
// @Produce      json
// @Param        id   path      int  true  "Ledger Entry ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/ledger/{id} [delete]
func (h *LedgerHandler) DeleteEntry(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid ledger entry id"))
		return
	}

	if err := h.ledgerService.DeleteEntry(c.Request.Context(), id); err != nil {
		status, msg := mapLedgerError(err)
		c.JSON(status, response.Error(status, msg))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]string{"message": "Ledger entry deleted"}))
}

func mapLedgerError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrLedgerNotFound):
		return http.StatusNotFound, "Ledger entry not found"
	default:
		return http.StatusBadRequest, err.Error()
	}
}
