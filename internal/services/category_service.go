package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stockmaster_backend/internal/models"
	"stockmaster_backend/internal/repositories"
)

// CategoryRequest DTO, used for both create and update.
type CategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// --- CategoryService Interface ---
type CategoryService interface {
	CreateCategory(ctx context.Context, req CategoryRequest, actor models.Actor) (*models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, id int64, req CategoryRequest, actor models.Actor) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64, actor models.Actor) error
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
	audit        AuditRecorder
}

// NewCategoryService creates a new instance of CategoryService.
func NewCategoryService(categoryRepo repositories.CategoryRepository, productRepo repositories.ProductRepository, audit AuditRecorder) CategoryService {
	return &categoryService{categoryRepo: categoryRepo, productRepo: productRepo, audit: audit}
}

func (req CategoryRequest) normalize() (name, description string, err error) {
	name = strings.TrimSpace(req.Name)
	if name == "" {
		return "", "", validationError("category name is required")
	}
	if req.Description != nil {
		description = strings.TrimSpace(*req.Description)
	}
	return name, description, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req CategoryRequest, actor models.Actor) (*models.Category, error) {
	name, description, err := req.normalize()
	if err != nil {
		return nil, err
	}

	category := &models.Category{Name: name, Description: description}
	if _, err := s.categoryRepo.CreateCategory(ctx, category); err != nil {
		return nil, mapCategoryWriteError(err)
	}

	categoryID := category.ID
	s.audit.RecordActivity(ctx, models.ActivityEntry{
		Type:        models.ActivityCategoryCreated,
		Description: fmt.Sprintf(`Category "%s" created`, category.Name),
		Actor:       actor,
		CategoryID:  &categoryID,
	})
	return category, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	category, err := s.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, mapCategoryError(err)
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.ListCategories(ctx)
}

func (s *categoryService) UpdateCategory(ctx context.Context, id int64, req CategoryRequest, actor models.Actor) (*models.Category, error) {
	name, description, err := req.normalize()
	if err != nil {
		return nil, err
	}

	existing, err := s.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, mapCategoryError(err)
	}
	oldName := existing.Name

	existing.Name = name
	existing.Description = description
	if err := s.categoryRepo.UpdateCategory(ctx, existing); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, mapCategoryWriteError(err)
	}

	description = fmt.Sprintf(`Category "%s" details updated`, name)
	metadata := models.Metadata(nil)
	if oldName != name {
		description = fmt.Sprintf(`Category renamed from "%s" to "%s"`, oldName, name)
		metadata = models.Metadata{"old_name": oldName, "new_name": name}
	}
	categoryID := existing.ID
	s.audit.RecordActivity(ctx, models.ActivityEntry{
		Type:        models.ActivityCategoryUpdated,
		Description: description,
		Actor:       actor,
		CategoryID:  &categoryID,
		Metadata:    metadata,
	})
	return existing, nil
}

// DeleteCategory refuses while products reference the category. The count is
// advisory; the foreign key decides when a product is added concurrently.
func (s *categoryService) DeleteCategory(ctx context.Context, id int64, actor models.Actor) error {
	category, err := s.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		return mapCategoryError(err)
	}

	count, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryHasProducts
	}

	if err := s.categoryRepo.DeleteCategory(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrForeignKey):
			return ErrCategoryHasProducts
		case errors.Is(err, repositories.ErrNotFound):
			return ErrCategoryNotFound
		}
		return err
	}

	// category_id would be nulled by the delete, so the id goes in metadata.
	s.audit.RecordActivity(ctx, models.ActivityEntry{
		Type:        models.ActivityCategoryDeleted,
		Description: fmt.Sprintf(`Category "%s" deleted`, category.Name),
		Actor:       actor,
		Metadata:    models.Metadata{"category_id": category.ID},
	})
	return nil
}

func mapCategoryError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrCategoryNotFound
	}
	return err
}

func mapCategoryWriteError(err error) error {
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return ErrCategoryNameExists
	}
	return err
}
