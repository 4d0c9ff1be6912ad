package vendors

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db/models"
	pkgerrors "github.com/weddingbazaar/wedding-bazaar-backend/pkg/errors"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/pagination"
)

// legacyRefPattern matches the historical VEN-XXXXX identifier scheme that
// predates vendor id = user id.
var legacyRefPattern = regexp.MustCompile(`^VEN-\d{5}$`)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// VendorList wraps a page of vendor profiles plus the next cursor.
type VendorList struct {
	Vendors    []models.Vendor `json:"vendors"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

// UpdateProfileInput carries a partial profile edit; nil fields are left alone.
type UpdateProfileInput struct {
	VendorID     uuid.UUID
	BusinessName *string
	CategoryID   *uuid.UUID
	Description  *string
	Location     *string
}

// MappingInput assigns a legacy VEN-XXXXX reference to a canonical vendor.
type MappingInput struct {
	LegacyRef string    `json:"legacy_ref"`
	VendorID  uuid.UUID `json:"vendor_id"`
}

// MappingResult reports what FixMappings did for one reference.
type MappingResult struct {
	LegacyRef        string     `json:"legacy_ref"`
	VendorID         uuid.UUID  `json:"vendor_id"`
	PreviousVendorID *uuid.UUID `json:"previous_vendor_id,omitempty"`
	ServicesResolved int64      `json:"services_resolved"`
	Status           string     `json:"status"`
}

// Service owns vendor identity. Every place that accepts a vendor reference
// resolves it here, so the two historical id formats are handled exactly once.
type Service interface {
	CreateProfile(ctx context.Context, tx *gorm.DB, vendor *models.Vendor) error
	Resolve(ctx context.Context, ref string) (*models.Vendor, error)
	Get(ctx context.Context, vendorID uuid.UUID) (*models.Vendor, error)
	List(ctx context.Context, params pagination.Params, categoryID *uuid.UUID) (*VendorList, error)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*models.Vendor, error)
	FixMappings(ctx context.Context, mappings []MappingInput) ([]MappingResult, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds the vendors service.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vendors repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// CreateProfile writes a vendor profile sharing the owning user's id. Runs
// in the caller's transaction so registration is atomic.
func (s *service) CreateProfile(ctx context.Context, tx *gorm.DB, vendor *models.Vendor) error {
	if vendor == nil || vendor.ID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}
	if vendor.BusinessName == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "business name required")
	}
	if _, err := s.repo.WithTx(tx).Create(ctx, vendor); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vendor profile")
	}
	return nil
}

// Resolve maps a vendor-identifying string to the canonical record. UUIDs
// resolve directly; legacy VEN-XXXXX references resolve through legacy_ref.
func (s *service) Resolve(ctx context.Context, ref string) (*models.Vendor, error) {
	if ref == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor reference required")
	}

	if id, err := uuid.Parse(ref); err == nil {
		return s.Get(ctx, id)
	}
	if !legacyRefPattern.MatchString(ref) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unrecognized vendor reference format")
	}

	vendor, err := s.repo.FindByLegacyRef(ctx, ref)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve legacy vendor reference")
	}
	return vendor, nil
}

func (s *service) Get(ctx context.Context, vendorID uuid.UUID) (*models.Vendor, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}
	vendor, err := s.repo.FindByID(ctx, vendorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}
	return vendor, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, categoryID *uuid.UUID) (*VendorList, error) {
	list, err := s.repo.List(ctx, params, categoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendors")
	}
	return list, nil
}

func (s *service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*models.Vendor, error) {
	if input.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "vendor context missing")
	}

	vendor, err := s.Get(ctx, input.VendorID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.BusinessName != nil {
		if *input.BusinessName == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "business name cannot be empty")
		}
		updates["business_name"] = *input.BusinessName
		vendor.BusinessName = *input.BusinessName
	}
	if input.CategoryID != nil {
		updates["category_id"] = *input.CategoryID
		vendor.CategoryID = input.CategoryID
	}
	if input.Description != nil {
		updates["description"] = *input.Description
		vendor.Description = input.Description
	}
	if input.Location != nil {
		updates["location"] = *input.Location
		vendor.Location = input.Location
	}
	if len(updates) == 0 {
		return vendor, nil
	}

	if err := s.repo.Update(ctx, vendor.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vendor profile")
	}
	return vendor, nil
}

// FixMappings maintains the legacy_ref mapping. The schema's foreign keys
// make orphaned rows impossible, so the repair surface reduces to claiming
// or moving VEN-XXXXX references onto canonical vendor rows and reporting
// how many service listings each reference now resolves to.
func (s *service) FixMappings(ctx context.Context, mappings []MappingInput) ([]MappingResult, error) {
	if len(mappings) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one mapping required")
	}
	for _, m := range mappings {
		if !legacyRefPattern.MatchString(m.LegacyRef) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("legacy reference %q does not match VEN-XXXXX", m.LegacyRef))
		}
		if m.VendorID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required for every mapping")
		}
	}

	results := make([]MappingResult, 0, len(mappings))
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, m := range mappings {
			result := MappingResult{LegacyRef: m.LegacyRef, VendorID: m.VendorID}

			canonical, err := repo.FindByID(ctx, m.VendorID)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					result.Status = "vendor_not_found"
					results = append(results, result)
					continue
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
			}

			holder, err := repo.FindByLegacyRef(ctx, m.LegacyRef)
			switch {
			case err == gorm.ErrRecordNotFound:
				result.Status = "claimed"
			case err != nil:
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load legacy reference holder")
			case holder.ID == canonical.ID:
				result.Status = "unchanged"
			default:
				previous := holder.ID
				result.PreviousVendorID = &previous
				result.Status = "moved"
				if err := repo.Update(ctx, holder.ID, map[string]any{"legacy_ref": nil}); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release legacy reference")
				}
			}

			if result.Status != "unchanged" {
				if err := repo.Update(ctx, canonical.ID, map[string]any{"legacy_ref": m.LegacyRef}); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign legacy reference")
				}
			}

			count, err := repo.CountServices(ctx, canonical.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count vendor services")
			}
			result.ServicesResolved = count
			results = append(results, result)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
