package offdays

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db/models"
	pkgerrors "github.com/weddingbazaar/wedding-bazaar-backend/pkg/errors"
)

type fakeRepo struct {
	vendors  map[uuid.UUID]bool
	offDays  map[string]*models.VendorOffDay
	blocking map[string]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		vendors:  map[uuid.UUID]bool{},
		offDays:  map[string]*models.VendorOffDay{},
		blocking: map[string]bool{},
	}
}

func key(vendorID uuid.UUID, date time.Time) string {
	return vendorID.String() + "|" + date.Format("2006-01-02")
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, offDay *models.VendorOffDay) error {
	k := key(offDay.VendorID, offDay.OffDate)
	if _, exists := f.offDays[k]; exists {
		return errors.New(`duplicate key value violates unique constraint "idx_vendor_off_date"`)
	}
	if offDay.ID == uuid.Nil {
		offDay.ID = uuid.New()
	}
	f.offDays[k] = offDay
	return nil
}

func (f *fakeRepo) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.VendorOffDay, error) {
	var rows []models.VendorOffDay
	for _, d := range f.offDays {
		if d.VendorID == vendorID {
			rows = append(rows, *d)
		}
	}
	return rows, nil
}

func (f *fakeRepo) Delete(ctx context.Context, vendorID uuid.UUID, date time.Time) (int64, error) {
	k := key(vendorID, date)
	if _, exists := f.offDays[k]; !exists {
		return 0, nil
	}
	delete(f.offDays, k)
	return 1, nil
}

func (f *fakeRepo) LockVendor(ctx context.Context, vendorID uuid.UUID) error {
	if !f.vendors[vendorID] {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (f *fakeRepo) HasBlockingBooking(ctx context.Context, vendorID uuid.UUID, date time.Time) (bool, error) {
	return f.blocking[key(vendorID, date)], nil
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

func futureDate() time.Time {
	return time.Now().UTC().AddDate(0, 2, 0).Truncate(24 * time.Hour)
}

func TestAddOffDay(t *testing.T) {
	repo := newFakeRepo()
	vendorID := uuid.New()
	repo.vendors[vendorID] = true
	svc := newTestService(t, repo)

	date := futureDate()
	offDay, err := svc.Add(context.Background(), AddInput{VendorID: vendorID, Date: date})
	require.NoError(t, err)
	assert.Equal(t, vendorID, offDay.VendorID)

	rows, err := svc.List(context.Background(), vendorID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestAddOffDayRejectsBookedDate(t *testing.T) {
	repo := newFakeRepo()
	vendorID := uuid.New()
	repo.vendors[vendorID] = true
	date := futureDate()
	repo.blocking[key(vendorID, date)] = true
	svc := newTestService(t, repo)

	_, err := svc.Add(context.Background(), AddInput{VendorID: vendorID, Date: date})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.CodeOf(err))
	assert.Contains(t, err.Error(), "confirmed booking")
}

func TestAddOffDayDuplicate(t *testing.T) {
	repo := newFakeRepo()
	vendorID := uuid.New()
	repo.vendors[vendorID] = true
	svc := newTestService(t, repo)

	date := futureDate()
	_, err := svc.Add(context.Background(), AddInput{VendorID: vendorID, Date: date})
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), AddInput{VendorID: vendorID, Date: date})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.CodeOf(err))
}

func TestAddOffDayRejectsPastDate(t *testing.T) {
	repo := newFakeRepo()
	vendorID := uuid.New()
	repo.vendors[vendorID] = true
	svc := newTestService(t, repo)

	_, err := svc.Add(context.Background(), AddInput{
		VendorID: vendorID,
		Date:     time.Now().UTC().AddDate(0, 0, -1),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestRemoveOffDay(t *testing.T) {
	repo := newFakeRepo()
	vendorID := uuid.New()
	repo.vendors[vendorID] = true
	svc := newTestService(t, repo)

	date := futureDate()
	_, err := svc.Add(context.Background(), AddInput{VendorID: vendorID, Date: date})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), vendorID, date))

	err = svc.Remove(context.Background(), vendorID, date)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}
