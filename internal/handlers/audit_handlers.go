package handlers

import (
	"net/http"
	"strings"

	"stockmaster_backend/internal/models"
	"stockmaster_backend/internal/services"
	"stockmaster_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuditHandler serves the inventory transaction ledger and the activity log.
type AuditHandler struct {
	auditService services.AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(as services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: as}
}

// GetInventoryTransactions handles fetching inventory transactions with filters and pagination.
func (h *AuditHandler) GetInventoryTransactions(c *gin.Context) {
	startDate, ok := queryDatePtr(c, "start_date") // YYYY-MM-DD
	if !ok {
		return
	}
	endDate, ok := queryDatePtr(c, "end_date") // YYYY-MM-DD
	if !ok {
		return
	}

	filters := models.TransactionFilters{
		Type:      strings.ToUpper(strings.TrimSpace(c.Query("type"))),
		UserID:    utils.ParseOptionalInt64(c.Query("user_id")),
		ProductID: utils.ParseOptionalInt64(c.Query("product_id")),
		StartDate: startDate,
		EndDate:   endDate,
		Page:      utils.ParsePositiveInt(c.Query("page"), 1),
		Limit:     utils.ParsePositiveInt(c.Query("limit"), models.DefaultTransactionLimit),
	}

	page, err := h.auditService.ListTransactions(c.Request.Context(), filters)
	if err != nil {
		respondServiceError(c, err, "Error fetching inventory transactions")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetActivityLogs handles fetching the newest activity log entries.
func (h *AuditHandler) GetActivityLogs(c *gin.Context) {
	filters := models.ActivityLogFilters{
		Type:      strings.ToUpper(strings.TrimSpace(c.Query("type"))),
		UserID:    utils.ParseOptionalInt64(c.Query("user_id")),
		ProductID: utils.ParseOptionalInt64(c.Query("product_id")),
		Limit:     utils.ParsePositiveInt(c.Query("limit"), models.DefaultActivityLimit),
	}

	logs, err := h.auditService.ListActivityLogs(c.Request.Context(), filters)
	if err != nil {
		respondServiceError(c, err, "Error fetching activity logs")
		return
	}
	c.JSON(http.StatusOK, logs)
}
