package models

import "github.com/shopspring/decimal"

// DashboardStats holds the headline counters shown on the dashboard.
type DashboardStats struct {
	TotalProducts       int64           `json:"totalProducts"`
	TotalCategories     int64           `json:"totalCategories"`
	LowStock            int64           `json:"lowStock"`
	OutOfStock          int64           `json:"outOfStock"`
	TotalValue          decimal.Decimal `json:"totalValue"`
	RecentActivity      int64           `json:"recentActivity"`
	TodayTransactions   int64           `json:"todayTransactions"`
	WeeklyTransactions  int64           `json:"weeklyTransactions"`
	MonthlyTransactions int64           `json:"monthlyTransactions"`
}

// TransactionTypeSummary aggregates transactions of one type.
type TransactionTypeSummary struct {
	Type          TransactionType `json:"type" db:"type"`
	Count         int64           `json:"count" db:"count"`
	TotalQuantity decimal.Decimal `json:"total_quantity" db:"total_quantity"`
}

// Pagination describes one page of a larger result set.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// NewPagination computes totalPages as ceil(total/limit).
func NewPagination(page, limit int, total int64) Pagination {
	var pages int64
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// TransactionPage is a page of inventory transactions.
type TransactionPage struct {
	Transactions []InventoryTransaction `json:"transactions"`
	Pagination   Pagination             `json:"pagination"`
}
