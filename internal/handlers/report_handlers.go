package handlers

import (
	"context"
	"net/http"
	"time"

	"stockmaster_backend/internal/database"
	"stockmaster_backend/internal/models"
	"stockmaster_backend/internal/services"
	"stockmaster_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the dashboard aggregates.
type DashboardHandler struct {
	dashboardService services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(ds services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: ds}
}

// GetStats handles GET /api/dashboard/stats.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Error fetching dashboard stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) GetRecentActivities(c *gin.Context) {
	limit := utils.ParsePositiveInt(c.Query("limit"), models.DefaultDashboardLimit)
	activities, err := h.dashboardService.RecentActivities(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err, "Error fetching recent activities")
		return
	}
	c.JSON(http.StatusOK, activities)
}

func (h *DashboardHandler) GetRecentTransactions(c *gin.Context) {
	limit := utils.ParsePositiveInt(c.Query("limit"), models.DefaultDashboardLimit)
	transactions, err := h.dashboardService.RecentTransactions(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err, "Error fetching recent transactions")
		return
	}
	c.JSON(http.StatusOK, transactions)
}

// GetTransactionSummary aggregates the last 30 days by transaction type.
func (h *DashboardHandler) GetTransactionSummary(c *gin.Context) {
	summary, err := h.dashboardService.TransactionSummary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Error fetching transaction summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// HealthProber reports store connectivity.
type HealthProber func(ctx context.Context) database.Status

// HealthHandler serves GET /api/health. It always answers 200.
type HealthHandler struct {
	probe HealthProber
	now   func() time.Time
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(probe HealthProber) *HealthHandler {
	return &HealthHandler{probe: probe, now: time.Now}
}

func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	st := h.probe(ctx)

	dbStatus := "disconnected"
	if st.Connected {
		dbStatus = "connected"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":                      "Server is running",
		"database":                     dbStatus,
		"activity_logs_table":          tableStatus(st.ActivityLogsTable),
		"inventory_transactions_table": tableStatus(st.InventoryTransactionsTable),
		"timestamp":                    h.now().UTC().Format(time.RFC3339),
	})
}

func tableStatus(exists bool) string {
	if exists {
		return "exists"
	}
	return "missing"
}
