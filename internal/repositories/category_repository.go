package repositories

import (
	"context"
	"fmt"

	"stockmaster_backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// CategoryRepository defines the interface for category-related database operations.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *models.Category) (int64, error)
	GetCategoryByID(ctx context.Context, id int64) (*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]models.Category, error)
}

type categoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new instance of CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

const categorySelect = `SELECT c.id, c.name, c.description, c.created_at, COUNT(p.id) AS product_count
	  FROM categories c
	  LEFT JOIN products p ON p.category_id = c.id`

func (r *categoryRepository) CreateCategory(ctx context.Context, category *models.Category) (int64, error) {
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id, created_at`,
		category.Name, category.Description,
	).Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		return 0, translateError(err, "creating category")
	}
	return category.ID, nil
}

// GetCategoryByID returns the category with its current product count.
func (r *categoryRepository) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	category := &models.Category{}
	query := categorySelect + ` WHERE c.id = $1 GROUP BY c.id`
	if err := r.db.GetContext(ctx, category, query, id); err != nil {
		return nil, translateError(err, fmt.Sprintf("getting category %d", id))
	}
	return category, nil
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = $1, description = $2 WHERE id = $3`,
		category.Name, category.Description, category.ID)
	if err != nil {
		return translateError(err, "updating category")
	}
	return expectAffected(res, "updating category")
}

// DeleteCategory returns ErrForeignKey while any product still references the category.
func (r *categoryRepository) DeleteCategory(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return translateError(err, "deleting category")
	}
	return expectAffected(res, "deleting category")
}

func (r *categoryRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := r.db.SelectContext(ctx, &categories, categorySelect+` GROUP BY c.id ORDER BY c.name`); err != nil {
		return nil, translateError(err, "listing categories")
	}
	return categories, nil
}
