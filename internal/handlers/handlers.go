package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"stockmaster_backend/internal/middleware"
	"stockmaster_backend/internal/models"
	"stockmaster_backend/internal/services"
	"stockmaster_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// respondServiceError maps a service error kind to the HTTP error envelope.
// Unknown errors are logged and reported as a generic 500.
func respondServiceError(c *gin.Context, err error, fallback string) {
	var insufficient *services.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeInsufficientStock, insufficient.Error(), "").
			WithData(gin.H{"available": insufficient.Available, "requested": insufficient.Requested}))
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
	case errors.Is(err, services.ErrConflict):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeConflict, err.Error(), ""))
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
	default:
		utils.LogError(err, fallback, map[string]interface{}{
			"path":       c.Request.URL.Path,
			"request_id": c.GetString(utils.RequestIDKey),
		})
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, fallback, ""))
	}
}

// currentActor reads the authenticated user set by AuthMiddleware.
func currentActor(c *gin.Context) models.Actor {
	return models.Actor{UserID: c.GetInt64(middleware.ContextUserID), IPAddress: c.ClientIP()}
}

// parseIDParam reads a positive integer path parameter. On failure it writes a 400 and returns false.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := utils.StrToInt64(c.Param(name))
	if err != nil || id <= 0 {
		utils.RespondValidationFailed(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}

func queryDatePtr(c *gin.Context, name string) (*time.Time, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		utils.RespondValidationFailed(c, name+" must be a date in YYYY-MM-DD format")
		return nil, false
	}
	return &t, true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload", err.Error()))
		return false
	}
	return true
}
