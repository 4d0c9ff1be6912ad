package categories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db/models"
	pkgerrors "github.com/weddingbazaar/wedding-bazaar-backend/pkg/errors"
)

type fakeRepository struct {
	categories map[uuid.UUID]*models.Category
	fields     map[uuid.UUID][]models.CategoryField
}

func (f *fakeRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	for _, category := range f.categories {
		categories = append(categories, *category)
	}
	return categories, nil
}

func (f *fakeRepository) FindByID(ctx context.Context, categoryID uuid.UUID) (*models.Category, error) {
	if category, ok := f.categories[categoryID]; ok {
		return category, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) ListFields(ctx context.Context, categoryID uuid.UUID) ([]models.CategoryField, error) {
	return f.fields[categoryID], nil
}

func TestGetCategory(t *testing.T) {
	categoryID := uuid.New()
	repo := &fakeRepository{categories: map[uuid.UUID]*models.Category{
		categoryID: {ID: categoryID, Name: "Photography", Slug: "photography"},
	}}
	svc, err := NewService(repo)
	require.NoError(t, err)

	category, err := svc.Get(context.Background(), categoryID)
	require.NoError(t, err)
	assert.Equal(t, "photography", category.Slug)

	_, err = svc.Get(context.Background(), uuid.New())
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}

func TestFieldsRequireExistingCategory(t *testing.T) {
	categoryID := uuid.New()
	repo := &fakeRepository{
		categories: map[uuid.UUID]*models.Category{
			categoryID: {ID: categoryID, Name: "Catering", Slug: "catering"},
		},
		fields: map[uuid.UUID][]models.CategoryField{
			categoryID: {{ID: uuid.New(), CategoryID: categoryID, Name: "guest_count", Label: "Guest count", FieldType: "number", Required: true}},
		},
	}
	svc, err := NewService(repo)
	require.NoError(t, err)

	fields, err := svc.Fields(context.Background(), categoryID)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "guest_count", fields[0].Name)

	_, err = svc.Fields(context.Background(), uuid.New())
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}
