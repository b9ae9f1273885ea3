package services

import (
	"context"
	"testing"

	"stockmaster_backend/internal/models"
	"stockmaster_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryFixture() (*fakeCategoryRepo, *fakeProductRepo, *fakeAudit, CategoryService) {
	categories := newFakeCategoryRepo()
	products := newFakeProductRepo(categories)
	audit := &fakeAudit{}
	return categories, products, audit, NewCategoryService(categories, products, audit)
}

func TestCreateCategory(t *testing.T) {
	_, _, audit, svc := newCategoryFixture()

	c, err := svc.CreateCategory(context.Background(), CategoryRequest{Name: " Widgets ", Description: ptr(" small parts ")}, testActor)
	require.NoError(t, err)
	assert.Equal(t, "Widgets", c.Name)
	assert.Equal(t, "small parts", c.Description)

	act := audit.activities()[0]
	assert.Equal(t, models.ActivityCategoryCreated, act.Type)
	assert.Equal(t, `Category "Widgets" created`, act.Description)
	assert.Equal(t, c.ID, *act.CategoryID)

	_, err = svc.CreateCategory(context.Background(), CategoryRequest{Name: "Widgets"}, testActor)
	assert.ErrorIs(t, err, ErrCategoryNameExists)

	_, err = svc.CreateCategory(context.Background(), CategoryRequest{Name: "   "}, testActor)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateCategory_RenameVersusDetails(t *testing.T) {
	categories, _, audit, svc := newCategoryFixture()
	c := categories.add("Widgets")

	_, err := svc.UpdateCategory(context.Background(), c.ID, CategoryRequest{Name: "Gadgets"}, testActor)
	require.NoError(t, err)
	act := audit.activities()[0]
	assert.Equal(t, `Category renamed from "Widgets" to "Gadgets"`, act.Description)
	assert.Equal(t, "Widgets", act.Metadata["old_name"])
	assert.Equal(t, "Gadgets", act.Metadata["new_name"])

	_, err = svc.UpdateCategory(context.Background(), c.ID, CategoryRequest{Name: "Gadgets", Description: ptr("new")}, testActor)
	require.NoError(t, err)
	act = audit.activities()[1]
	assert.Equal(t, `Category "Gadgets" details updated`, act.Description)
	assert.Nil(t, act.Metadata)

	_, err = svc.UpdateCategory(context.Background(), 404, CategoryRequest{Name: "X"}, testActor)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestDeleteCategory_RefusedWhileProductsReferenceIt(t *testing.T) {
	categories, products, audit, svc := newCategoryFixture()
	c := categories.add("Widgets")
	products.add(models.Product{Name: "Bolt", SKU: "B-1", CategoryID: &c.ID})

	err := svc.DeleteCategory(context.Background(), c.ID, testActor)
	assert.ErrorIs(t, err, ErrCategoryHasProducts)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, categories.categories, c.ID)
	assert.Empty(t, audit.events)
}

func TestDeleteCategory_ForeignKeyRaceMapsToConflict(t *testing.T) {
	categories, _, _, svc := newCategoryFixture()
	c := categories.add("Widgets")
	categories.deleteErr = repositories.ErrForeignKey

	assert.ErrorIs(t, svc.DeleteCategory(context.Background(), c.ID, testActor), ErrCategoryHasProducts)
}

func TestDeleteCategory_Empty(t *testing.T) {
	categories, _, audit, svc := newCategoryFixture()
	c := categories.add("Widgets")

	require.NoError(t, svc.DeleteCategory(context.Background(), c.ID, testActor))
	act := audit.activities()[0]
	assert.Equal(t, models.ActivityCategoryDeleted, act.Type)
	assert.Nil(t, act.CategoryID)
	assert.Equal(t, c.ID, act.Metadata["category_id"])

	assert.ErrorIs(t, svc.DeleteCategory(context.Background(), c.ID, testActor), ErrCategoryNotFound)
}
