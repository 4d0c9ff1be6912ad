package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db/models"
)

// Repository exposes persistence helpers for vendor service listings.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, service *models.Service) (*models.Service, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Service, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Service, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID, activeOnly bool) ([]models.Service, error)
	CountActiveByVendor(ctx context.Context, vendorID uuid.UUID) (int64, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, service *models.Service) (*models.Service, error) {
	if err := r.db.WithContext(ctx).Create(service).Error; err != nil {
		return nil, err
	}
	return service, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var service models.Service
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *repository) FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var service models.Service
	err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&service).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *repository) ListByVendor(ctx context.Context, vendorID uuid.UUID, activeOnly bool) ([]models.Service, error) {
	query := r.db.WithContext(ctx).Where("vendor_id = ?", vendorID)
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var services []models.Service
	if err := query.Order("created_at DESC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *repository) CountActiveByVendor(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("vendor_id = ? AND active = ?", vendorID, true).
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ?", id).
		Update("active", false).Error
}
