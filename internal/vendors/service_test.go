package vendors

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db/models"
	pkgerrors "github.com/weddingbazaar/wedding-bazaar-backend/pkg/errors"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/pagination"
)

type fakeRepo struct {
	vendors       map[uuid.UUID]*models.Vendor
	serviceCounts map[uuid.UUID]int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		vendors:       map[uuid.UUID]*models.Vendor{},
		serviceCounts: map[uuid.UUID]int64{},
	}
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, vendor *models.Vendor) (*models.Vendor, error) {
	f.vendors[vendor.ID] = vendor
	return vendor, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	vendor, ok := f.vendors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *vendor
	return &copied, nil
}

func (f *fakeRepo) FindByLegacyRef(ctx context.Context, ref string) (*models.Vendor, error) {
	for _, vendor := range f.vendors {
		if vendor.LegacyRef != nil && *vendor.LegacyRef == ref {
			copied := *vendor
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) List(ctx context.Context, params pagination.Params, categoryID *uuid.UUID) (*VendorList, error) {
	var rows []models.Vendor
	for _, vendor := range f.vendors {
		rows = append(rows, *vendor)
	}
	return &VendorList{Vendors: rows}, nil
}

func (f *fakeRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	vendor, ok := f.vendors[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if name, ok := updates["business_name"].(string); ok {
		vendor.BusinessName = name
	}
	if ref, present := updates["legacy_ref"]; present {
		if ref == nil {
			vendor.LegacyRef = nil
		} else if v, ok := ref.(string); ok {
			vendor.LegacyRef = &v
		}
	}
	return nil
}

func (f *fakeRepo) CountServices(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	return f.serviceCounts[vendorID], nil
}

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, fakeTxRunner{})
	require.NoError(t, err)
	return svc
}

func seedVendor(repo *fakeRepo, legacyRef *string) *models.Vendor {
	vendor := &models.Vendor{
		ID:           uuid.New(),
		BusinessName: "Dream Weddings Co",
		LegacyRef:    legacyRef,
	}
	repo.vendors[vendor.ID] = vendor
	return vendor
}

func TestResolveByUUID(t *testing.T) {
	repo := newFakeRepo()
	vendor := seedVendor(repo, nil)
	svc := newTestService(t, repo)

	resolved, err := svc.Resolve(context.Background(), vendor.ID.String())
	require.NoError(t, err)
	assert.Equal(t, vendor.ID, resolved.ID)
}

func TestResolveByLegacyRef(t *testing.T) {
	repo := newFakeRepo()
	ref := "VEN-00123"
	vendor := seedVendor(repo, &ref)
	svc := newTestService(t, repo)

	resolved, err := svc.Resolve(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, vendor.ID, resolved.ID)
}

func TestResolveRejectsUnknownFormats(t *testing.T) {
	svc := newTestService(t, newFakeRepo())

	_, err := svc.Resolve(context.Background(), "vendor-2023-001")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	_, err = svc.Resolve(context.Background(), "VEN-1")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestResolveLegacyNotFound(t *testing.T) {
	svc := newTestService(t, newFakeRepo())

	_, err := svc.Resolve(context.Background(), "VEN-99999")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}

func TestUpdateProfile(t *testing.T) {
	repo := newFakeRepo()
	vendor := seedVendor(repo, nil)
	svc := newTestService(t, repo)

	name := "Forever After Events"
	updated, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		VendorID:     vendor.ID,
		BusinessName: &name,
	})
	require.NoError(t, err)
	assert.Equal(t, name, updated.BusinessName)
	assert.Equal(t, name, repo.vendors[vendor.ID].BusinessName)
}

func TestFixMappingsClaimsAndMoves(t *testing.T) {
	repo := newFakeRepo()
	ref := "VEN-00777"
	holder := seedVendor(repo, &ref)
	canonical := seedVendor(repo, nil)
	repo.serviceCounts[canonical.ID] = 3
	svc := newTestService(t, repo)

	results, err := svc.FixMappings(context.Background(), []MappingInput{
		{LegacyRef: ref, VendorID: canonical.ID},
		{LegacyRef: "VEN-00888", VendorID: canonical.ID},
		{LegacyRef: "VEN-00999", VendorID: uuid.New()},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "moved", results[0].Status)
	require.NotNil(t, results[0].PreviousVendorID)
	assert.Equal(t, holder.ID, *results[0].PreviousVendorID)
	assert.Equal(t, int64(3), results[0].ServicesResolved)
	assert.Nil(t, repo.vendors[holder.ID].LegacyRef)

	assert.Equal(t, "claimed", results[1].Status)
	assert.Equal(t, "vendor_not_found", results[2].Status)
}

func TestFixMappingsValidatesRefFormat(t *testing.T) {
	svc := newTestService(t, newFakeRepo())

	_, err := svc.FixMappings(context.Background(), []MappingInput{
		{LegacyRef: "BAD-1", VendorID: uuid.New()},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}
