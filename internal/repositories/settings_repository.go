package repositories

import (
	"context"

	"stockmaster_backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// SettingsRepository defines the interface for per-user settings.
type SettingsRepository interface {
	// GetOrCreate returns the stored row, inserting defaults first when none exists.
	GetOrCreate(ctx context.Context, defaults models.UserSettings) (*models.UserSettings, error)
	UpdateSettings(ctx context.Context, settings *models.UserSettings) error
}

type settingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository creates a new instance of SettingsRepository.
func NewSettingsRepository(db *sqlx.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

const settingsColumns = `id, user_id, theme, language, email_notifications, push_notifications,
	low_stock_alerts, items_per_page, default_view, low_stock_threshold, auto_refresh,
	refresh_interval, updated_at`

func (r *settingsRepository) GetOrCreate(ctx context.Context, defaults models.UserSettings) (*models.UserSettings, error) {
	// The no-op DO UPDATE makes RETURNING yield the existing row on conflict.
	query := `INSERT INTO user_settings
	          (user_id, theme, language, email_notifications, push_notifications, low_stock_alerts,
	           items_per_page, default_view, low_stock_threshold, auto_refresh, refresh_interval)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
	          RETURNING ` + settingsColumns

	settings := &models.UserSettings{}
	err := r.db.GetContext(ctx, settings, query,
		defaults.UserID, defaults.Theme, defaults.Language, defaults.EmailNotifications,
		defaults.PushNotifications, defaults.LowStockAlerts, defaults.ItemsPerPage,
		defaults.DefaultView, defaults.LowStockThreshold, defaults.AutoRefresh, defaults.RefreshInterval)
	if err != nil {
		return nil, translateError(err, "loading user settings")
	}
	return settings, nil
}

func (r *settingsRepository) UpdateSettings(ctx context.Context, settings *models.UserSettings) error {
	query := `UPDATE user_settings
	             SET theme = $1, language = $2, email_notifications = $3, push_notifications = $4,
	                 low_stock_alerts = $5, items_per_page = $6, default_view = $7,
	                 low_stock_threshold = $8, auto_refresh = $9, refresh_interval = $10,
	                 updated_at = NOW()
	           WHERE user_id = $11
	       RETURNING updated_at`
	err := r.db.QueryRowxContext(ctx, query,
		settings.Theme, settings.Language, settings.EmailNotifications, settings.PushNotifications,
		settings.LowStockAlerts, settings.ItemsPerPage, settings.DefaultView,
		settings.LowStockThreshold, settings.AutoRefresh, settings.RefreshInterval, settings.UserID,
	).Scan(&settings.UpdatedAt)
	if err != nil {
		return translateError(err, "updating user settings")
	}
	return nil
}
