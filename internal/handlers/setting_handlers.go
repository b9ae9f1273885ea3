package handlers

import (
	"net/http"

	"stockmaster_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// SettingsHandler serves the caller's preferences.
type SettingsHandler struct {
	settingsService services.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(ss services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: ss}
}

// GetUserSettings returns the settings, creating defaults on first access.
func (h *SettingsHandler) GetUserSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context(), currentActor(c).UserID)
	if err != nil {
		respondServiceError(c, err, "Error fetching user settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateUserSettings applies a partial update.
func (h *SettingsHandler) UpdateUserSettings(c *gin.Context) {
	var req services.UpdateSettingsRequest
	if !bindJSON(c, &req) {
		return
	}
	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), req, currentActor(c))
	if err != nil {
		respondServiceError(c, err, "Error updating user settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Settings updated successfully", "settings": settings})
}
