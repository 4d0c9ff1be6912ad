package categories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db/models"
	pkgerrors "github.com/weddingbazaar/wedding-bazaar-backend/pkg/errors"
)

// Service exposes the public category catalog.
type Service interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, categoryID uuid.UUID) (*models.Category, error)
	Fields(ctx context.Context, categoryID uuid.UUID) ([]models.CategoryField, error)
}

type service struct {
	repo Repository
}

// NewService wires the categories service with its repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("categories service requires a repository")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return categories, nil
}

func (s *service) Get(ctx context.Context, categoryID uuid.UUID) (*models.Category, error) {
	if categoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	category, err := s.repo.FindByID(ctx, categoryID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return category, nil
}

func (s *service) Fields(ctx context.Context, categoryID uuid.UUID) ([]models.CategoryField, error) {
	// A missing category and a category with no fields answer differently.
	if _, err := s.Get(ctx, categoryID); err != nil {
		return nil, err
	}
	fields, err := s.repo.ListFields(ctx, categoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list category fields")
	}
	return fields, nil
}
