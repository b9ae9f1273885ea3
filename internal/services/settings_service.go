package services

import (
	"context"
	"strings"

	"stockmaster_backend/internal/models"
	"stockmaster_backend/internal/repositories"
)

// UpdateSettingsRequest DTO. Nil fields are left unchanged.
type UpdateSettingsRequest struct {
	Theme              *string `json:"theme"`
	Language           *string `json:"language"`
	EmailNotifications *bool   `json:"email_notifications"`
	PushNotifications  *bool   `json:"push_notifications"`
	LowStockAlerts     *bool   `json:"low_stock_alerts"`
	ItemsPerPage       *int    `json:"items_per_page"`
	DefaultView        *string `json:"default_view"`
	LowStockThreshold  *int    `json:"low_stock_threshold"`
	AutoRefresh        *bool   `json:"auto_refresh"`
	RefreshInterval    *int    `json:"refresh_interval"`
}

// SettingsService manages per-user preferences.
type SettingsService interface {
	GetSettings(ctx context.Context, userID int64) (*models.UserSettings, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest, actor models.Actor) (*models.UserSettings, error)
}

type settingsService struct {
	settingsRepo repositories.SettingsRepository
	audit        AuditRecorder
}

// NewSettingsService creates a new instance of SettingsService.
func NewSettingsService(settingsRepo repositories.SettingsRepository, audit AuditRecorder) SettingsService {
	return &settingsService{settingsRepo: settingsRepo, audit: audit}
}

// GetSettings returns the user's settings, creating the defaults on first access.
func (s *settingsService) GetSettings(ctx context.Context, userID int64) (*models.UserSettings, error) {
	return s.settingsRepo.GetOrCreate(ctx, models.DefaultUserSettings(userID))
}

func (s *settingsService) UpdateSettings(ctx context.Context, req UpdateSettingsRequest, actor models.Actor) (*models.UserSettings, error) {
	settings, err := s.GetSettings(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	changed := models.Metadata{}
	if req.Theme != nil {
		settings.Theme = strings.ToLower(strings.TrimSpace(*req.Theme))
		changed["theme"] = settings.Theme
	}
	if req.Language != nil {
		settings.Language = strings.TrimSpace(*req.Language)
		changed["language"] = settings.Language
	}
	if req.EmailNotifications != nil {
		settings.EmailNotifications = *req.EmailNotifications
		changed["email_notifications"] = settings.EmailNotifications
	}
	if req.PushNotifications != nil {
		settings.PushNotifications = *req.PushNotifications
		changed["push_notifications"] = settings.PushNotifications
	}
	if req.LowStockAlerts != nil {
		settings.LowStockAlerts = *req.LowStockAlerts
		changed["low_stock_alerts"] = settings.LowStockAlerts
	}
	if req.ItemsPerPage != nil {
		settings.ItemsPerPage = *req.ItemsPerPage
		changed["items_per_page"] = settings.ItemsPerPage
	}
	if req.DefaultView != nil {
		settings.DefaultView = strings.ToLower(strings.TrimSpace(*req.DefaultView))
		changed["default_view"] = settings.DefaultView
	}
	if req.LowStockThreshold != nil {
		settings.LowStockThreshold = *req.LowStockThreshold
		changed["low_stock_threshold"] = settings.LowStockThreshold
	}
	if req.AutoRefresh != nil {
		settings.AutoRefresh = *req.AutoRefresh
		changed["auto_refresh"] = settings.AutoRefresh
	}
	if req.RefreshInterval != nil {
		settings.RefreshInterval = *req.RefreshInterval
		changed["refresh_interval"] = settings.RefreshInterval
	}

	if err := validateSettings(settings); err != nil {
		return nil, err
	}
	if err := s.settingsRepo.UpdateSettings(ctx, settings); err != nil {
		return nil, err
	}

	s.audit.RecordActivity(ctx, models.ActivityEntry{
		Type:        models.ActivitySettingsUpdated,
		Description: "Updated user settings",
		Actor:       actor,
		Metadata:    changed,
	})
	return settings, nil
}

func validateSettings(st *models.UserSettings) error {
	switch st.Theme {
	case models.ThemeLight, models.ThemeDark, models.ThemeSystem:
	default:
		return validationError("theme must be one of light, dark, system")
	}
	switch st.DefaultView {
	case models.ViewTable, models.ViewGrid:
	default:
		return validationError("default_view must be table or grid")
	}
	if st.Language == "" {
		return validationError("language must not be empty")
	}
	if st.ItemsPerPage < 1 || st.ItemsPerPage > 100 {
		return validationError("items_per_page must be between 1 and 100")
	}
	if st.LowStockThreshold < 0 {
		return validationError("low_stock_threshold must not be negative")
	}
	if st.RefreshInterval < 5 {
		return validationError("refresh_interval must be at least 5 seconds")
	}
	return nil
}
