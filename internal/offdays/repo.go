package offdays

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db/models"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/enums"
)

// blockingStatuses are the booking states that pin a date on the vendor's
// calendar.
var blockingStatuses = []enums.BookingStatus{
	enums.BookingStatusConfirmed,
	enums.BookingStatusDownpaymentPaid,
	enums.BookingStatusPaidInFull,
	enums.BookingStatusInProgress,
}

// Repository exposes persistence helpers for vendor calendar blackouts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, offDay *models.VendorOffDay) error
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.VendorOffDay, error)
	Delete(ctx context.Context, vendorID uuid.UUID, date time.Time) (int64, error)
	LockVendor(ctx context.Context, vendorID uuid.UUID) error
	HasBlockingBooking(ctx context.Context, vendorID uuid.UUID, date time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an off-days repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, offDay *models.VendorOffDay) error {
	return r.db.WithContext(ctx).Create(offDay).Error
}

func (r *repository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.VendorOffDay, error) {
	var rows []models.VendorOffDay
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("off_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Delete(ctx context.Context, vendorID uuid.UUID, date time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("vendor_id = ? AND off_date = ?", vendorID, date.Format("2006-01-02")).
		Delete(&models.VendorOffDay{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// LockVendor takes the same vendor row lock the booking confirmation path
// takes, so calendar writes for one vendor never interleave.
func (r *repository) LockVendor(ctx context.Context, vendorID uuid.UUID) error {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var vendor models.Vendor
	return query.Where("id = ?", vendorID).First(&vendor).Error
}

func (r *repository) HasBlockingBooking(ctx context.Context, vendorID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("vendor_id = ? AND event_date = ? AND status IN ?", vendorID, date.Format("2006-01-02"), blockingStatuses).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
