package models

import (
	"math"
	"time"
)

// ProductFilters narrows ListProducts.
type ProductFilters struct {
	CategoryID *int64
	Search     string
}

// ActivityLogFilters narrows ListActivityLogs.
type ActivityLogFilters struct {
	Type      string
	UserID    *int64
	ProductID *int64
	Limit     int
}

// TransactionFilters narrows ListTransactions. StartDate and EndDate compare
// against the calendar date of created_at, both inclusive.
type TransactionFilters struct {
	Type      string
	UserID    *int64
	ProductID *int64
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

const (
	DefaultActivityLimit           = 50
	DefaultTransactionLimit        = 50
	DefaultProductTransactionLimit = 20
	DefaultDashboardLimit          = 10
	DefaultLowStockLimit           = 10
	MaxPageLimit                   = 500
)

// Offset returns the row offset for Page and Limit. It saturates at
// math.MaxInt so a huge page yields an empty result set.
func (f TransactionFilters) Offset() int {
	if f.Page < 1 || f.Limit < 1 {
		return 0
	}
	if f.Page-1 > math.MaxInt/f.Limit {
		return math.MaxInt
	}
	return (f.Page - 1) * f.Limit
}
