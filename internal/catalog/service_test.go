package catalog

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

type fakeRepo struct {
	services map[uuid.UUID]*models.Service
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{services: map[uuid.UUID]*models.Service{}}
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, service *models.Service) (*models.Service, error) {
	if service.ID == uuid.Nil {
		service.ID = uuid.New()
	}
	f.services[service.ID] = service
	return service, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	service, ok := f.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *service
	return &copied, nil
}

func (f *fakeRepo) FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	service, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !service.Active {
		return nil, gorm.ErrRecordNotFound
	}
	return service, nil
}

func (f *fakeRepo) ListByVendor(ctx context.Context, vendorID uuid.UUID, activeOnly bool) ([]models.Service, error) {
	var rows []models.Service
	for _, s := range f.services {
		if s.VendorID != vendorID {
			continue
		}
		if activeOnly && !s.Active {
			continue
		}
		rows = append(rows, *s)
	}
	return rows, nil
}

func (f *fakeRepo) CountActiveByVendor(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	var count int64
	for _, s := range f.services {
		if s.VendorID == vendorID && s.Active {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	service, ok := f.services[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if name, ok := updates["name"].(string); ok {
		service.Name = name
	}
	if price, ok := updates["price_centavos"].(int64); ok {
		service.PriceCentavos = price
	}
	if active, ok := updates["active"].(bool); ok {
		service.Active = active
	}
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	service, ok := f.services[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	service.Active = false
	return nil
}

type fakeLimiter struct {
	limit int
}

func (f fakeLimiter) MaxActiveServices(ctx context.Context, vendorID uuid.UUID) (int, error) {
	return f.limit, nil
}

func TestCreateServiceEnforcesPlanLimit(t *testing.T) {
	repo := newFakeRepo()
	svc, err := NewService(repo, fakeLimiter{limit: 1})
	require.NoError(t, err)

	vendorID := uuid.New()
	_, err = svc.CreateService(context.Background(), CreateServiceInput{
		VendorID:      vendorID,
		CategoryID:    uuid.New(),
		Name:          "Wedding photography",
		PriceCentavos: 4500000,
	})
	require.NoError(t, err)

	_, err = svc.CreateService(context.Background(), CreateServiceInput{
		VendorID:      vendorID,
		CategoryID:    uuid.New(),
		Name:          "Engagement shoot",
		PriceCentavos: 1500000,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.CodeOf(err))
	assert.Contains(t, err.Error(), "at most 1 active services")
}

func TestCreateServiceValidation(t *testing.T) {
	svc, err := NewService(newFakeRepo(), fakeLimiter{limit: 10})
	require.NoError(t, err)

	_, err = svc.CreateService(context.Background(), CreateServiceInput{
		VendorID:   uuid.New(),
		CategoryID: uuid.New(),
		Name:       "Free venue",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestUpdateServiceOwnership(t *testing.T) {
	repo := newFakeRepo()
	svc, err := NewService(repo, fakeLimiter{limit: 10})
	require.NoError(t, err)

	vendorID := uuid.New()
	listing, err := svc.CreateService(context.Background(), CreateServiceInput{
		VendorID:      vendorID,
		CategoryID:    uuid.New(),
		Name:          "Catering",
		PriceCentavos: 2000000,
	})
	require.NoError(t, err)

	newName := "Premium catering"
	_, err = svc.UpdateService(context.Background(), UpdateServiceInput{
		VendorID:  uuid.New(),
		ServiceID: listing.ID,
		Name:      &newName,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.CodeOf(err))

	updated, err := svc.UpdateService(context.Background(), UpdateServiceInput{
		VendorID:  vendorID,
		ServiceID: listing.ID,
		Name:      &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
}

func TestReactivationCountsAgainstLimit(t *testing.T) {
	repo := newFakeRepo()
	svc, err := NewService(repo, fakeLimiter{limit: 1})
	require.NoError(t, err)

	vendorID := uuid.New()
	first, err := svc.CreateService(context.Background(), CreateServiceInput{
		VendorID:      vendorID,
		CategoryID:    uuid.New(),
		Name:          "Photography",
		PriceCentavos: 100000,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateService(context.Background(), vendorID, first.ID))

	second, err := svc.CreateService(context.Background(), CreateServiceInput{
		VendorID:      vendorID,
		CategoryID:    uuid.New(),
		Name:          "Videography",
		PriceCentavos: 100000,
	})
	require.NoError(t, err)
	_ = second

	active := true
	_, err = svc.UpdateService(context.Background(), UpdateServiceInput{
		VendorID:  vendorID,
		ServiceID: first.ID,
		Active:    &active,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.CodeOf(err))
}

func TestFindActiveServiceHidesInactive(t *testing.T) {
	repo := newFakeRepo()
	svc, err := NewService(repo, fakeLimiter{limit: 5})
	require.NoError(t, err)

	vendorID := uuid.New()
	listing, err := svc.CreateService(context.Background(), CreateServiceInput{
		VendorID:      vendorID,
		CategoryID:    uuid.New(),
		Name:          "Florist",
		PriceCentavos: 50000,
	})
	require.NoError(t, err)

	found, err := svc.FindActiveService(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Equal(t, listing.ID, found.ID)

	require.NoError(t, svc.DeactivateService(context.Background(), vendorID, listing.ID))

	_, err = svc.FindActiveService(context.Background(), listing.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}
