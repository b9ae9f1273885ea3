package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stockmaster_backend/internal/models"
	"stockmaster_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

// StockChangeRequest asks for one stock movement on a product.
type StockChangeRequest struct {
	ProductID int64
	Type      models.TransactionType
	Quantity  decimal.Decimal
	Notes     *string
	Actor     models.Actor
}

// StockChangeResult is the product after the change plus a summary of the change.
type StockChangeResult struct {
	Product     *models.Product           `json:"product"`
	Transaction models.StockChangeSummary `json:"transaction"`
}

// StockService applies manual stock movements.
type StockService interface {
	ApplyStockChange(ctx context.Context, req StockChangeRequest) (*StockChangeResult, error)
}

type stockService struct {
	tx          repositories.Transactor
	productRepo repositories.ProductRepository
	audit       AuditRecorder
}

// NewStockService creates a new instance of StockService.
func NewStockService(tx repositories.Transactor, productRepo repositories.ProductRepository, audit AuditRecorder) StockService {
	return &stockService{tx: tx, productRepo: productRepo, audit: audit}
}

// maxStoredAmount is the exclusive upper bound of a NUMERIC(12,2) column.
var maxStoredAmount = decimal.New(1, 10)

// checkStoredAmount rejects values the stock and price columns would round or overflow.
func checkStoredAmount(field string, d decimal.Decimal) error {
	if !d.Equal(d.Round(2)) {
		return validationError("%s must have at most 2 decimal places", field)
	}
	if d.Abs().GreaterThanOrEqual(maxStoredAmount) {
		return validationError("%s must be less than %s", field, maxStoredAmount)
	}
	return nil
}

func checkQuantity(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return ErrInvalidQuantity
	}
	return checkStoredAmount("quantity", quantity)
}

// ComputeNewStock returns the stock that results from applying a movement of
// quantity to current. Only IN, OUT and ADJUST are accepted.
func ComputeNewStock(txType models.TransactionType, current, quantity decimal.Decimal) (decimal.Decimal, error) {
	if err := checkQuantity(quantity); err != nil {
		return decimal.Zero, err
	}
	switch txType {
	case models.TransactionIn:
		next := current.Add(quantity)
		if err := checkStoredAmount("resulting stock", next); err != nil {
			return decimal.Zero, err
		}
		return next, nil
	case models.TransactionOut:
		if quantity.GreaterThan(current) {
			return decimal.Zero, &InsufficientStockError{Requested: quantity, Available: current}
		}
		return current.Sub(quantity), nil
	case models.TransactionAdjust:
		return quantity, nil
	default:
		return decimal.Zero, ErrInvalidTransactionType
	}
}

func (s *stockService) ApplyStockChange(ctx context.Context, req StockChangeRequest) (*StockChangeResult, error) {
	if err := checkQuantity(req.Quantity); err != nil {
		return nil, err
	}
	if !isManualType(req.Type) {
		return nil, ErrInvalidTransactionType
	}

	var product *models.Product
	var previousStock, newStock decimal.Decimal

	err := s.tx.WithinTx(ctx, func(tx repositories.SQLExecutor) error {
		var err error
		product, err = s.productRepo.GetProductForUpdate(ctx, tx, req.ProductID)
		if err != nil {
			return mapProductError(err)
		}

		previousStock = product.Stock
		newStock, err = ComputeNewStock(req.Type, previousStock, req.Quantity)
		if err != nil {
			return err
		}
		return s.productRepo.UpdateStock(ctx, tx, product.ID, newStock)
	})
	if err != nil {
		return nil, err
	}

	reference := models.ReferenceManualAdjustment
	s.audit.RecordTransaction(ctx, &models.InventoryTransaction{
		ProductID:     product.ID,
		UserID:        req.Actor.UserID,
		Type:          req.Type,
		Quantity:      req.Quantity,
		PreviousStock: previousStock,
		NewStock:      newStock,
		Reference:     &reference,
		Notes:         req.Notes,
	})
	productID := product.ID
	s.audit.RecordActivity(ctx, models.ActivityEntry{
		Type: models.ActivityStockAdjusted,
		Description: fmt.Sprintf(`Stock %s for "%s": %s → %s (Δ: %s)`,
			strings.ToLower(string(req.Type)), product.Name, previousStock, newStock, req.Quantity),
		Actor:     req.Actor,
		ProductID: &productID,
		Metadata: models.Metadata{
			"type":           string(req.Type),
			"quantity":       req.Quantity.String(),
			"previous_stock": previousStock.String(),
			"new_stock":      newStock.String(),
		},
	})

	updated, err := s.productRepo.GetProductByID(ctx, product.ID)
	if err != nil {
		return nil, mapProductError(err)
	}

	return &StockChangeResult{
		Product: updated,
		Transaction: models.StockChangeSummary{
			Type:          req.Type,
			Quantity:      req.Quantity,
			PreviousStock: previousStock,
			NewStock:      newStock,
			Notes:         req.Notes,
		},
	}, nil
}

// isManualType reports whether t can be applied through ApplyStockChange.
func isManualType(t models.TransactionType) bool {
	return t == models.TransactionIn || t == models.TransactionOut || t == models.TransactionAdjust
}

func mapProductError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrProductNotFound
	}
	return err
}
