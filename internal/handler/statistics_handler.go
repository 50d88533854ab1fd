package handler

import (
	"net/http"
	"time"

	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statsService service.StatisticsService
}

func NewStatisticsHandler(statsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statsService: statsService}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	stats := router.Group("/stats")
	{
		stats.GET("/dashboard", h.GetDashboard)
		stats.GET("/sales", h.GetSalesReport)
		stats.GET("/inventory", h.GetInventoryReport)
	}
}

// GetDashboard returns headline stock and sales numbers
// @Summary      Dashboard statistics
// @Tags         statistics
// @Produce      json
// @Success      200  {object}  response.Response{data=service.DashboardStatsResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/stats/dashboard [get]
func (h *StatisticsHandler) GetDashboard(c *gin.Context) {
	stats, err := h.statsService.GetDashboardStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to retrieve dashboard statistics: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// GetSalesReport returns tax-invoice revenue for a date range
// @Summary      Sales report
// @Tags         statistics
// @Produce      json
// @Param        from  query     string  false  "Start date (YYYY-MM-DD, default first of current month)"
// @Param        to    query     string  false  "End date (YYYY-MM-DD, default today)"
// @Success      200   {object}  response.Response{data=service.SalesReportResponse}
// @Failure      400   {object}  response.Response
// @Failure      500   {object}  response.Response
// @Router       /api/stats/sales [get]
func (h *StatisticsHandler) GetSalesReport(c *gin.Context) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD"))
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid to date, expected YYYY-MM-DD"))
			return
		}
		// include the whole end day
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "to date must not be before from date"))
		return
	}

	report, err := h.statsService.GetSalesReport(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to build sales report: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}

// GetInventoryReport returns stock value by brand and low stock products
// @Summary      Inventory report
// @Tags         statistics
// @Produce      json
// @Success      200  {object}  response.Response{data=service.InventoryReportResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/stats/inventory [get]
func (h *StatisticsHandler) GetInventoryReport(c *gin.Context) {
	report, err := h.statsService.GetInventoryReport(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to build inventory report: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}
