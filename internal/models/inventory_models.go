package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Stock, price and quantity travel as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Category groups products. ProductCount is filled by list queries only.
type Category struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	ProductCount int64     `json:"product_count" db:"product_count"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Product is a stock keeping unit with its current on-hand quantity.
type Product struct {
	ID           int64           `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	Description  *string         `json:"description" db:"description"`
	SKU          string          `json:"sku" db:"sku"`
	Price        decimal.Decimal `json:"price" db:"price"`
	Stock        decimal.Decimal `json:"stock" db:"stock"`
	MinStock     decimal.Decimal `json:"min_stock" db:"min_stock"`
	CategoryID   *int64          `json:"category_id" db:"category_id"`
	CategoryName *string         `json:"category_name" db:"category_name"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// IsLowStock reports 0 < stock <= min_stock.
func (p *Product) IsLowStock() bool {
	return p.Stock.IsPositive() && p.Stock.LessThanOrEqual(p.MinStock)
}

// IsOutOfStock reports stock == 0.
func (p *Product) IsOutOfStock() bool {
	return p.Stock.IsZero()
}

// TransactionType is the kind of stock movement recorded in inventory_transactions.
type TransactionType string

const (
	TransactionIn       TransactionType = "IN"
	TransactionOut      TransactionType = "OUT"
	TransactionAdjust   TransactionType = "ADJUST"
	TransactionReturn   TransactionType = "RETURN"
	TransactionTransfer TransactionType = "TRANSFER"
)

// IsKnown reports whether the store accepts t.
func (t TransactionType) IsKnown() bool {
	switch t {
	case TransactionIn, TransactionOut, TransactionAdjust, TransactionReturn, TransactionTransfer:
		return true
	}
	return false
}

// Transaction references.
const (
	ReferenceManualAdjustment = "MANUAL_ADJUSTMENT"
	ReferenceStockUpdate      = "STOCK_UPDATE"
	ReferenceInitialStock     = "INITIAL_STOCK"
)

// InventoryTransaction is an immutable record of one stock movement.
// UserName, ProductName and ProductSKU are populated by read queries.
type InventoryTransaction struct {
	ID            int64           `json:"id" db:"id"`
	ProductID     int64           `json:"product_id" db:"product_id"`
	UserID        int64           `json:"user_id" db:"user_id"`
	Type          TransactionType `json:"type" db:"type"`
	Quantity      decimal.Decimal `json:"quantity" db:"quantity"`
	PreviousStock decimal.Decimal `json:"previous_stock" db:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock" db:"new_stock"`
	Reference     *string         `json:"reference" db:"reference"`
	Notes         *string         `json:"notes" db:"notes"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UserName      *string         `json:"user_name,omitempty" db:"user_name"`
	ProductName   *string         `json:"product_name,omitempty" db:"product_name"`
	ProductSKU    *string         `json:"product_sku,omitempty" db:"product_sku"`
}

// StockChangeSummary describes an applied stock change in API responses.
type StockChangeSummary struct {
	Type          TransactionType `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PreviousStock decimal.Decimal `json:"previousStock"`
	NewStock      decimal.Decimal `json:"newStock"`
	Notes         *string         `json:"notes"`
}
