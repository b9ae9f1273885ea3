package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ActivityType classifies an activity log entry.
type ActivityType string

const (
	ActivityUserRegistered  ActivityType = "USER_REGISTERED"
	ActivityUserLogin       ActivityType = "USER_LOGIN"
	ActivityProfileUpdated  ActivityType = "PROFILE_UPDATED"
	ActivityProductCreated  ActivityType = "PRODUCT_CREATED"
	ActivityProductUpdated  ActivityType = "PRODUCT_UPDATED"
	ActivityProductDeleted  ActivityType = "PRODUCT_DELETED"
	ActivityStockAdjusted   ActivityType = "STOCK_ADJUSTED"
	ActivityStockIncreased  ActivityType = "STOCK_INCREASED"
	ActivityStockDecreased  ActivityType = "STOCK_DECREASED"
	ActivityCategoryCreated ActivityType = "CATEGORY_CREATED"
	ActivityCategoryUpdated ActivityType = "CATEGORY_UPDATED"
	ActivityCategoryDeleted ActivityType = "CATEGORY_DELETED"
	ActivitySettingsUpdated ActivityType = "SETTINGS_UPDATED"
)

// Metadata is a free-form JSON object stored in a JSONB column.
type Metadata map[string]interface{}

// Value implements driver.Valuer. A nil map is stored as NULL.
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (m *Metadata) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("metadata: unsupported source type")
	}
	if len(data) == 0 {
		*m = nil
		return nil
	}
	out := Metadata{}
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("unmarshal metadata: %w", err)
	}
	*m = out
	return nil
}

// ActivityLog is an immutable audit record of a user-visible action.
type ActivityLog struct {
	ID          int64        `json:"id" db:"id"`
	Type        ActivityType `json:"type" db:"type"`
	Description string       `json:"description" db:"description"`
	UserID      *int64       `json:"user_id" db:"user_id"`
	ProductID   *int64       `json:"product_id" db:"product_id"`
	CategoryID  *int64       `json:"category_id" db:"category_id"`
	Metadata    Metadata     `json:"metadata" db:"metadata"`
	IPAddress   *string      `json:"ip_address" db:"ip_address"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UserName    *string      `json:"user_name,omitempty" db:"user_name"`
	ProductName *string      `json:"product_name,omitempty" db:"product_name"`
}

// ActivityEntry is the input for recording an activity.
type ActivityEntry struct {
	Type        ActivityType
	Description string
	Actor       Actor
	ProductID   *int64
	CategoryID  *int64
	Metadata    Metadata
}
