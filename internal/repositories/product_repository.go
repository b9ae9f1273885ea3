package repositories

import (
	"context"
	"fmt"

	"stockmaster_backend/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for product-related database operations.
// Methods taking an SQLExecutor may run inside a transaction.
type ProductRepository interface {
	CreateProduct(ctx context.Context, executor SQLExecutor, product *models.Product) (int64, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	GetProductForUpdate(ctx context.Context, executor SQLExecutor, id int64) (*models.Product, error)
	UpdateProduct(ctx context.Context, executor SQLExecutor, product *models.Product) error
	UpdateStock(ctx context.Context, executor SQLExecutor, id int64, stock decimal.Decimal) error
	DeleteProduct(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context, filters models.ProductFilters) ([]models.Product, error)
	ListLowStock(ctx context.Context, limit int) ([]models.Product, error)
	CountByCategory(ctx context.Context, categoryID int64) (int64, error)
}

type productRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db *sqlx.DB) ProductRepository {
	return &productRepository{db: db}
}

const productSelect = `SELECT p.id, p.name, p.description, p.sku, p.price, p.stock, p.min_stock,
	       p.category_id, c.name AS category_name, p.created_at
	  FROM products p
	  LEFT JOIN categories c ON c.id = p.category_id`

func (r *productRepository) CreateProduct(ctx context.Context, executor SQLExecutor, product *models.Product) (int64, error) {
	query := `INSERT INTO products (name, description, sku, price, stock, min_stock, category_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at`

	err := executor.QueryRowxContext(ctx, query,
		product.Name, product.Description, product.SKU, product.Price,
		product.Stock, product.MinStock, product.CategoryID,
	).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		return 0, translateError(err, "creating product")
	}
	return product.ID, nil
}

// GetProductByID returns the product with its category name.
func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	product := &models.Product{}
	if err := r.db.GetContext(ctx, product, productSelect+` WHERE p.id = $1`, id); err != nil {
		return nil, translateError(err, fmt.Sprintf("getting product %d", id))
	}
	return product, nil
}

// GetProductForUpdate reads the product and locks its row until the transaction ends.
func (r *productRepository) GetProductForUpdate(ctx context.Context, executor SQLExecutor, id int64) (*models.Product, error) {
	product := &models.Product{}
	if err := executor.GetContext(ctx, product, productSelect+` WHERE p.id = $1 FOR UPDATE OF p`, id); err != nil {
		return nil, translateError(err, fmt.Sprintf("locking product %d", id))
	}
	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, executor SQLExecutor, product *models.Product) error {
	query := `UPDATE products
	             SET name = $1, description = $2, sku = $3, price = $4, stock = $5, min_stock = $6, category_id = $7
	           WHERE id = $8`
	res, err := executor.ExecContext(ctx, query,
		product.Name, product.Description, product.SKU, product.Price,
		product.Stock, product.MinStock, product.CategoryID, product.ID)
	if err != nil {
		return translateError(err, "updating product")
	}
	return expectAffected(res, "updating product")
}

func (r *productRepository) UpdateStock(ctx context.Context, executor SQLExecutor, id int64, stock decimal.Decimal) error {
	res, err := executor.ExecContext(ctx, `UPDATE products SET stock = $1 WHERE id = $2`, stock, id)
	if err != nil {
		return translateError(err, "updating stock")
	}
	return expectAffected(res, "updating stock")
}

// DeleteProduct removes the product and returns its last id, name and sku.
func (r *productRepository) DeleteProduct(ctx context.Context, id int64) (*models.Product, error) {
	product := &models.Product{}
	err := r.db.QueryRowxContext(ctx,
		`DELETE FROM products WHERE id = $1 RETURNING id, name, sku`, id,
	).Scan(&product.ID, &product.Name, &product.SKU)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("deleting product %d", id))
	}
	return product, nil
}

func (r *productRepository) ListProducts(ctx context.Context, filters models.ProductFilters) ([]models.Product, error) {
	w := productWhere(filters)
	products := []models.Product{}
	query := productSelect + w.clause() + ` ORDER BY p.created_at DESC, p.id DESC`
	if err := r.db.SelectContext(ctx, &products, query, w.args...); err != nil {
		return nil, translateError(err, "listing products")
	}
	return products, nil
}

// ListLowStock returns products with 0 < stock <= min_stock, lowest stock first.
func (r *productRepository) ListLowStock(ctx context.Context, limit int) ([]models.Product, error) {
	products := []models.Product{}
	query := productSelect + ` WHERE p.stock <= p.min_stock AND p.stock > 0 ORDER BY p.stock ASC, p.id ASC LIMIT $1`
	if err := r.db.SelectContext(ctx, &products, query, limit); err != nil {
		return nil, translateError(err, "listing low stock products")
	}
	return products, nil
}

func (r *productRepository) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID); err != nil {
		return 0, translateError(err, "counting products by category")
	}
	return count, nil
}
