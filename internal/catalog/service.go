package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db/models"
	pkgerrors "github.com/weddingbazaar/wedding-bazaar-backend/pkg/errors"
)

// PlanLimiter reports how many active services a vendor's plan allows.
type PlanLimiter interface {
	MaxActiveServices(ctx context.Context, vendorID uuid.UUID) (int, error)
}

// CreateServiceInput carries a new listing.
type CreateServiceInput struct {
	VendorID      uuid.UUID
	CategoryID    uuid.UUID
	Name          string
	Description   *string
	PriceCentavos int64
	Images        []string
}

// UpdateServiceInput carries a partial edit; nil fields are left alone.
type UpdateServiceInput struct {
	VendorID      uuid.UUID
	ServiceID     uuid.UUID
	Name          *string
	Description   *string
	PriceCentavos *int64
	Images        []string
	Active        *bool
}

// Service manages vendor listings and resolves them for the booking flow.
type Service interface {
	CreateService(ctx context.Context, input CreateServiceInput) (*models.Service, error)
	UpdateService(ctx context.Context, input UpdateServiceInput) (*models.Service, error)
	DeactivateService(ctx context.Context, vendorID, serviceID uuid.UUID) error
	ListVendorServices(ctx context.Context, vendorID uuid.UUID, activeOnly bool) ([]models.Service, error)
	FindActiveService(ctx context.Context, serviceID uuid.UUID) (*models.Service, error)
}

type service struct {
	repo  Repository
	plans PlanLimiter
}

// NewService builds the catalog service.
func NewService(repo Repository, plans PlanLimiter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if plans == nil {
		return nil, fmt.Errorf("plan limiter required")
	}
	return &service{repo: repo, plans: plans}, nil
}

func (s *service) CreateService(ctx context.Context, input CreateServiceInput) (*models.Service, error) {
	if input.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "vendor context missing")
	}
	if input.CategoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service name required")
	}
	if input.PriceCentavos <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}

	limit, err := s.plans.MaxActiveServices(ctx, input.VendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve plan limit")
	}
	active, err := s.repo.CountActiveByVendor(ctx, input.VendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count active services")
	}
	if active >= int64(limit) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("plan allows at most %d active services", limit))
	}

	listing := &models.Service{
		VendorID:      input.VendorID,
		CategoryID:    input.CategoryID,
		Name:          input.Name,
		Description:   input.Description,
		PriceCentavos: input.PriceCentavos,
		Images:        pq.StringArray(input.Images),
		Active:        true,
	}
	if _, err := s.repo.Create(ctx, listing); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create service")
	}
	return listing, nil
}

func (s *service) UpdateService(ctx context.Context, input UpdateServiceInput) (*models.Service, error) {
	if input.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "vendor context missing")
	}
	if input.ServiceID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service id required")
	}

	listing, err := s.repo.FindByID(ctx, input.ServiceID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load service")
	}
	if listing.VendorID != input.VendorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "service does not belong to vendor")
	}

	updates := map[string]any{}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "service name cannot be empty")
		}
		updates["name"] = *input.Name
		listing.Name = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
		listing.Description = input.Description
	}
	if input.PriceCentavos != nil {
		if *input.PriceCentavos <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
		}
		updates["price_centavos"] = *input.PriceCentavos
		listing.PriceCentavos = *input.PriceCentavos
	}
	if input.Images != nil {
		updates["images"] = pq.StringArray(input.Images)
		listing.Images = pq.StringArray(input.Images)
	}
	if input.Active != nil {
		// Re-activation counts against the plan limit again.
		if *input.Active && !listing.Active {
			limit, err := s.plans.MaxActiveServices(ctx, input.VendorID)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve plan limit")
			}
			count, err := s.repo.CountActiveByVendor(ctx, input.VendorID)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count active services")
			}
			if count >= int64(limit) {
				return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
					fmt.Sprintf("plan allows at most %d active services", limit))
			}
		}
		updates["active"] = *input.Active
		listing.Active = *input.Active
	}
	if len(updates) == 0 {
		return listing, nil
	}

	if err := s.repo.Update(ctx, listing.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update service")
	}
	return listing, nil
}

func (s *service) DeactivateService(ctx context.Context, vendorID, serviceID uuid.UUID) error {
	if vendorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeForbidden, "vendor context missing")
	}
	if serviceID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "service id required")
	}

	listing, err := s.repo.FindByID(ctx, serviceID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load service")
	}
	if listing.VendorID != vendorID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "service does not belong to vendor")
	}

	if err := s.repo.Delete(ctx, serviceID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate service")
	}
	return nil
}

func (s *service) ListVendorServices(ctx context.Context, vendorID uuid.UUID, activeOnly bool) ([]models.Service, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}
	services, err := s.repo.ListByVendor(ctx, vendorID, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list services")
	}
	return services, nil
}

func (s *service) FindActiveService(ctx context.Context, serviceID uuid.UUID) (*models.Service, error) {
	listing, err := s.repo.FindActiveByID(ctx, serviceID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load service")
	}
	return listing, nil
}
