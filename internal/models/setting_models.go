package models

import "time"

const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"

	ViewTable = "table"
	ViewGrid  = "grid"
)

// UserSettings holds per-user UI preferences.
type UserSettings struct {
	ID                 int64     `json:"id" db:"id"`
	UserID             int64     `json:"user_id" db:"user_id"`
	Theme              string    `json:"theme" db:"theme"`
	Language           string    `json:"language" db:"language"`
	EmailNotifications bool      `json:"email_notifications" db:"email_notifications"`
	PushNotifications  bool      `json:"push_notifications" db:"push_notifications"`
	LowStockAlerts     bool      `json:"low_stock_alerts" db:"low_stock_alerts"`
	ItemsPerPage       int       `json:"items_per_page" db:"items_per_page"`
	DefaultView        string    `json:"default_view" db:"default_view"`
	LowStockThreshold  int       `json:"low_stock_threshold" db:"low_stock_threshold"`
	AutoRefresh        bool      `json:"auto_refresh" db:"auto_refresh"`
	RefreshInterval    int       `json:"refresh_interval" db:"refresh_interval"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultUserSettings returns the settings a user starts with.
func DefaultUserSettings(userID int64) UserSettings {
	return UserSettings{
		UserID:             userID,
		Theme:              ThemeLight,
		Language:           "en",
		EmailNotifications: true,
		PushNotifications:  true,
		LowStockAlerts:     true,
		ItemsPerPage:       10,
		DefaultView:        ViewTable,
		LowStockThreshold:  5,
		AutoRefresh:        false,
		RefreshInterval:    30,
	}
}
