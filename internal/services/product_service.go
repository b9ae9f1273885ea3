package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"stockmaster_backend/internal/models"
	"stockmaster_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

var defaultMinStock = decimal.NewFromInt(5)

// --- Data Transfer Objects (DTOs) ---

// OptionalID distinguishes an absent JSON key from an explicit null.
type OptionalID struct {
	Set   bool
	Value *int64
}

// UnmarshalJSON is only invoked when the key is present.
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("category_id must be an integer or null: %w", err)
	}
	o.Value = &v
	return nil
}

// CreateProductRequest DTO
type CreateProductRequest struct {
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	SKU         string           `json:"sku"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *decimal.Decimal `json:"stock"`
	MinStock    *decimal.Decimal `json:"min_stock"`
	CategoryID  *int64           `json:"category_id"`
}

// UpdateProductRequest DTO. Nil fields are left unchanged.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	SKU         *string          `json:"sku"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *decimal.Decimal `json:"stock"`
	MinStock    *decimal.Decimal `json:"min_stock"`
	CategoryID  OptionalID       `json:"category_id"`
}

// --- ProductService Interface ---
type ProductService interface {
	CreateProduct(ctx context.Context, req CreateProductRequest, actor models.Actor) (*models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context, filters models.ProductFilters) ([]models.Product, error)
	ListLowStock(ctx context.Context, limit int) ([]models.Product, error)
	UpdateProduct(ctx context.Context, id int64, req UpdateProductRequest, actor models.Actor) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64, actor models.Actor) error
}

type productService struct {
	tx           repositories.Transactor
	db           repositories.SQLExecutor
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	audit        AuditRecorder
}

// NewProductService creates a new instance of ProductService.
func NewProductService(tx repositories.Transactor, db repositories.SQLExecutor, productRepo repositories.ProductRepository,
	categoryRepo repositories.CategoryRepository, audit AuditRecorder) ProductService {
	return &productService{tx: tx, db: db, productRepo: productRepo, categoryRepo: categoryRepo, audit: audit}
}

func (s *productService) CreateProduct(ctx context.Context, req CreateProductRequest, actor models.Actor) (*models.Product, error) {
	product := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		SKU:         strings.TrimSpace(req.SKU),
		CategoryID:  req.CategoryID,
		MinStock:    defaultMinStock,
	}
	if product.Name == "" || product.SKU == "" || req.Price == nil {
		return nil, validationError("name, SKU, and price are required")
	}
	product.Price = *req.Price
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.MinStock != nil {
		product.MinStock = *req.MinStock
	}
	if err := validateProductNumbers(product); err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, product.CategoryID); err != nil {
		return nil, err
	}

	if _, err := s.productRepo.CreateProduct(ctx, s.db, product); err != nil {
		return nil, mapProductWriteError(err)
	}

	productID := product.ID
	if product.Stock.IsPositive() {
		reference := models.ReferenceInitialStock
		notes := "Initial stock when product was created"
		s.audit.RecordTransaction(ctx, &models.InventoryTransaction{
			ProductID:     productID,
			UserID:        actor.UserID,
			Type:          models.TransactionIn,
			Quantity:      product.Stock,
			PreviousStock: decimal.Zero,
			NewStock:      product.Stock,
			Reference:     &reference,
			Notes:         &notes,
		})
	}
	s.audit.RecordActivity(ctx, models.ActivityEntry{
		Type: models.ActivityProductCreated,
		Description: fmt.Sprintf(`Product "%s" (SKU: %s) created with initial stock: %s`,
			product.Name, product.SKU, product.Stock),
		Actor:      actor,
		ProductID:  &productID,
		CategoryID: product.CategoryID,
		Metadata:   models.Metadata{"sku": product.SKU, "initial_stock": product.Stock.String()},
	})

	created, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, mapProductError(err)
	}
	return created, nil
}

func (s *productService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return nil, mapProductError(err)
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, filters models.ProductFilters) ([]models.Product, error) {
	return s.productRepo.ListProducts(ctx, filters)
}

func (s *productService) ListLowStock(ctx context.Context, limit int) ([]models.Product, error) {
	return s.productRepo.ListLowStock(ctx, clampLimit(limit, models.DefaultLowStockLimit))
}

// productEdit captures what an update changed, for the audit trail.
type productEdit struct {
	before        models.Product
	after         models.Product
	stockChanged  bool
	categoryMoved bool
}

func (s *productService) UpdateProduct(ctx context.Context, id int64, req UpdateProductRequest, actor models.Actor) (*models.Product, error) {
	var edit productEdit

	err := s.tx.WithinTx(ctx, func(tx repositories.SQLExecutor) error {
		current, err := s.productRepo.GetProductForUpdate(ctx, tx, id)
		if err != nil {
			return mapProductError(err)
		}
		edit.before = *current
		next := *current

		if req.Name != nil {
			next.Name = strings.TrimSpace(*req.Name)
			if next.Name == "" {
				return validationError("name must not be empty")
			}
		}
		if req.SKU != nil {
			next.SKU = strings.TrimSpace(*req.SKU)
			if next.SKU == "" {
				return validationError("SKU must not be empty")
			}
		}
		if req.Description != nil {
			next.Description = req.Description
		}
		if req.Price != nil {
			next.Price = *req.Price
		}
		if req.Stock != nil {
			next.Stock = *req.Stock
		}
		if req.MinStock != nil {
			next.MinStock = *req.MinStock
		}
		if req.CategoryID.Set {
			next.CategoryID = req.CategoryID.Value
		}
		if err := validateProductNumbers(&next); err != nil {
			return err
		}

		edit.categoryMoved = !sameID(edit.before.CategoryID, next.CategoryID)
		if edit.categoryMoved {
			if err := s.ensureCategory(ctx, next.CategoryID); err != nil {
				return err
			}
		}
		edit.stockChanged = !next.Stock.Equal(edit.before.Stock)

		if err := s.productRepo.UpdateProduct(ctx, tx, &next); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrProductNotFound
			}
			return mapProductWriteError(err)
		}
		edit.after = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordEdit(ctx, edit, actor)

	updated, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return nil, mapProductError(err)
	}
	return updated, nil
}

// recordEdit writes one activity entry per edit, plus a reconciling ADJUST
// transaction when the stock was edited directly.
func (s *productService) recordEdit(ctx context.Context, edit productEdit, actor models.Actor) {
	productID := edit.after.ID
	metadata := models.Metadata{}
	if edit.categoryMoved {
		metadata["old_category_id"] = idOrNil(edit.before.CategoryID)
		metadata["new_category_id"] = idOrNil(edit.after.CategoryID)
	}

	entry := models.ActivityEntry{
		Actor:      actor,
		ProductID:  &productID,
		CategoryID: edit.after.CategoryID,
	}

	if edit.stockChanged {
		delta := edit.after.Stock.Sub(edit.before.Stock)
		change := delta.Abs()

		reference := models.ReferenceStockUpdate
		notes := "Stock updated via product edit"
		s.audit.RecordTransaction(ctx, &models.InventoryTransaction{
			ProductID:     productID,
			UserID:        actor.UserID,
			Type:          models.TransactionAdjust,
			Quantity:      change,
			PreviousStock: edit.before.Stock,
			NewStock:      edit.after.Stock,
			Reference:     &reference,
			Notes:         &notes,
		})

		entry.Type = models.ActivityStockDecreased
		if delta.IsPositive() {
			entry.Type = models.ActivityStockIncreased
		}
		entry.Description = fmt.Sprintf(`Stock for "%s" (%s) changed from %s to %s (Δ: %s)`,
			edit.before.Name, edit.before.SKU, edit.before.Stock, edit.after.Stock, change)
		metadata["previous_stock"] = edit.before.Stock.String()
		metadata["new_stock"] = edit.after.Stock.String()
	} else {
		entry.Type = models.ActivityProductUpdated
		entry.Description = fmt.Sprintf(`Product "%s" (%s) details updated`, edit.before.Name, edit.before.SKU)
	}

	if len(metadata) > 0 {
		entry.Metadata = metadata
	}
	s.audit.RecordActivity(ctx, entry)
}

func (s *productService) DeleteProduct(ctx context.Context, id int64, actor models.Actor) error {
	deleted, err := s.productRepo.DeleteProduct(ctx, id)
	if err != nil {
		return mapProductError(err)
	}

	// The product row is gone, so the entry keeps its identity in metadata only.
	s.audit.RecordActivity(ctx, models.ActivityEntry{
		Type:        models.ActivityProductDeleted,
		Description: fmt.Sprintf(`Product "%s" (%s) deleted`, deleted.Name, deleted.SKU),
		Actor:       actor,
		Metadata:    models.Metadata{"product_id": deleted.ID, "sku": deleted.SKU},
	})
	return nil
}

func (s *productService) ensureCategory(ctx context.Context, categoryID *int64) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.categoryRepo.GetCategoryByID(ctx, *categoryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUnknownCategory
		}
		return err
	}
	return nil
}

func validateProductNumbers(p *models.Product) error {
	switch {
	case p.Price.IsNegative():
		return validationError("price must not be negative")
	case p.Stock.IsNegative():
		return validationError("stock must not be negative")
	case p.MinStock.IsNegative():
		return validationError("min_stock must not be negative")
	}
	for _, field := range []struct {
		name  string
		value decimal.Decimal
	}{{"price", p.Price}, {"stock", p.Stock}, {"min_stock", p.MinStock}} {
		if err := checkStoredAmount(field.name, field.value); err != nil {
			return err
		}
	}
	return nil
}

func mapProductWriteError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrDuplicateKey):
		return ErrSKUExists
	case errors.Is(err, repositories.ErrForeignKey):
		return ErrUnknownCategory
	}
	return err
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func idOrNil(id *int64) interface{} {
	if id == nil {
		return nil
	}
	return *id
}
