package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db/models"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/enums"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a bookings repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *repository) CreateEvent(ctx context.Context, event *models.BookingEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByIDForUpdate loads the booking under a row lock so concurrent
// transitions serialize; at most one wins per state. sqlite (tests) has no
// row locks, its transactions already serialize writers.
func (r *repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var booking models.Booking
	if err := query.Where("id = ?", id).First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) ListForCouple(ctx context.Context, coupleID uuid.UUID, params pagination.Params, filters ListFilters) (*BookingList, error) {
	return r.list(ctx, "couple_id = ?", coupleID, params, filters)
}

func (r *repository) ListForVendor(ctx context.Context, vendorID uuid.UUID, params pagination.Params, filters ListFilters) (*BookingList, error) {
	return r.list(ctx, "vendor_id = ?", vendorID, params, filters)
}

func (r *repository) list(ctx context.Context, ownerClause string, ownerID uuid.UUID, params pagination.Params, filters ListFilters) (*BookingList, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Booking{}).Where(ownerClause, ownerID)
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.DateFrom != nil {
		query = query.Where("event_date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("event_date <= ?", *filters.DateTo)
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, err
		}
		if cursor != nil {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	var rows []models.Booking
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	list := &BookingList{Bookings: rows}
	if len(rows) > normalized {
		// Encode the cursor from the last returned row: the strict
		// (created_at, id) < comparison resumes right after it.
		last := rows[normalized-1]
		list.Bookings = rows[:normalized]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return list, nil
}

func (r *repository) ListEvents(ctx context.Context, bookingID uuid.UUID) ([]models.BookingEvent, error) {
	var events []models.BookingEvent
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// LockVendor takes the vendor row lock that serializes calendar writes
// (off-day changes and booking confirmations) per vendor.
func (r *repository) LockVendor(ctx context.Context, vendorID uuid.UUID) error {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var vendor models.Vendor
	return query.Where("id = ?", vendorID).First(&vendor).Error
}

func (r *repository) HasOffDay(ctx context.Context, vendorID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.VendorOffDay{}).
		Where("vendor_id = ? AND off_date = ?", vendorID, date.Format("2006-01-02")).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindExpiredQuotes returns quote_sent bookings whose validity window closed
// before cutoff, oldest first, capped for batch processing.
func (r *repository) FindExpiredQuotes(ctx context.Context, cutoff time.Time, limit int) ([]models.Booking, error) {
	var rows []models.Booking
	err := r.db.WithContext(ctx).
		Where("status = ? AND quote_valid_until IS NOT NULL AND quote_valid_until < ?", enums.BookingStatusQuoteSent, cutoff).
		Order("quote_valid_until ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
