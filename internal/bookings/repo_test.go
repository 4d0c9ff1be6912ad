package bookings

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db/models"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/enums"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/pagination"
)

func setupBookingsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS vendors (
  id TEXT PRIMARY KEY,
  legacy_ref TEXT,
  business_name TEXT NOT NULL,
  category_id TEXT,
  description TEXT,
  location TEXT,
  rating_sum INTEGER NOT NULL DEFAULT 0,
  rating_count INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS vendor_off_days (
  id TEXT PRIMARY KEY,
  vendor_id TEXT NOT NULL,
  off_date TEXT NOT NULL,
  reason TEXT,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS bookings (
  id TEXT PRIMARY KEY,
  couple_id TEXT NOT NULL,
  vendor_id TEXT NOT NULL,
  service_id TEXT NOT NULL,
  service_name TEXT NOT NULL,
  event_date DATETIME NOT NULL,
  event_time TEXT,
  event_location TEXT,
  guest_count INTEGER,
  status TEXT NOT NULL DEFAULT 'request',
  quoted_price_centavos INTEGER,
  quoted_deposit_centavos INTEGER,
  total_paid_centavos INTEGER NOT NULL DEFAULT 0,
  remaining_balance_centavos INTEGER NOT NULL DEFAULT 0,
  quote_itemization TEXT,
  quote_sent_at DATETIME,
  quote_valid_until DATETIME,
  vendor_completed_at DATETIME,
  couple_completed_at DATETIME,
  fully_completed_at DATETIME,
  cancelled_at DATETIME,
  cancel_reason TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS booking_events (
  id TEXT PRIMARY KEY,
  booking_id TEXT NOT NULL,
  from_status TEXT NOT NULL,
  event TEXT NOT NULL,
  to_status TEXT NOT NULL,
  actor_user_id TEXT NOT NULL,
  note TEXT,
  created_at DATETIME
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedBooking(t *testing.T, db *gorm.DB, mutate func(*models.Booking)) *models.Booking {
	t.Helper()

	booking := &models.Booking{
		ID:          uuid.New(),
		CoupleID:    uuid.New(),
		VendorID:    uuid.New(),
		ServiceID:   uuid.New(),
		ServiceName: "Full-day photography",
		EventDate:   time.Date(2027, 6, 12, 0, 0, 0, 0, time.UTC),
		Status:      enums.BookingStatusRequest,
		CreatedAt:   time.Now().UTC(),
	}
	if mutate != nil {
		mutate(booking)
	}
	require.NoError(t, db.Create(booking).Error)
	return booking
}

func TestCreateAndFindBooking(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	booking := &models.Booking{
		ID:          uuid.New(),
		CoupleID:    uuid.New(),
		VendorID:    uuid.New(),
		ServiceID:   uuid.New(),
		ServiceName: "Garden venue",
		EventDate:   time.Date(2027, 3, 20, 0, 0, 0, 0, time.UTC),
		Status:      enums.BookingStatusRequest,
	}
	created, err := repo.Create(ctx, booking)
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.BookingStatusRequest, found.Status)
	assert.Equal(t, "Garden venue", found.ServiceName)
	assert.Equal(t, int64(0), found.TotalPaidCentavos)

	locked, err := repo.FindByIDForUpdate(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, locked.ID)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateAndAuditTrail(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	booking := seedBooking(t, db, nil)

	require.NoError(t, repo.Update(ctx, booking.ID, map[string]any{
		"status":                     enums.BookingStatusQuoteRequested,
		"remaining_balance_centavos": int64(0),
	}))
	require.NoError(t, repo.CreateEvent(ctx, &models.BookingEvent{
		ID:          uuid.New(),
		BookingID:   booking.ID,
		FromStatus:  enums.BookingStatusRequest,
		Event:       enums.BookingEventRequestQuote,
		ToStatus:    enums.BookingStatusQuoteRequested,
		ActorUserID: booking.CoupleID,
	}))

	found, err := repo.FindByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.BookingStatusQuoteRequested, found.Status)

	events, err := repo.ListEvents(ctx, booking.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, enums.BookingEventRequestQuote, events[0].Event)
	assert.Equal(t, booking.CoupleID, events[0].ActorUserID)
}

func TestListForCouplePaginatesAndFilters(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	coupleID := uuid.New()
	base := time.Now().UTC().Add(-3 * time.Hour)
	for i := 0; i < 3; i++ {
		offset := time.Duration(i) * time.Hour
		status := enums.BookingStatusRequest
		if i == 2 {
			status = enums.BookingStatusQuoteSent
		}
		seedBooking(t, db, func(b *models.Booking) {
			b.CoupleID = coupleID
			b.Status = status
			b.CreatedAt = base.Add(offset)
		})
	}
	// Another couple's booking never shows up.
	seedBooking(t, db, nil)

	page, err := repo.ListForCouple(ctx, coupleID, pagination.Params{Limit: 2}, ListFilters{})
	require.NoError(t, err)
	require.Len(t, page.Bookings, 2)
	require.NotEmpty(t, page.NextCursor)
	assert.True(t, page.Bookings[0].CreatedAt.After(page.Bookings[1].CreatedAt))

	rest, err := repo.ListForCouple(ctx, coupleID, pagination.Params{Limit: 2, Cursor: page.NextCursor}, ListFilters{})
	require.NoError(t, err)
	require.Len(t, rest.Bookings, 1)
	assert.Empty(t, rest.NextCursor)

	// Both pages together cover every row exactly once.
	seen := map[uuid.UUID]bool{}
	for _, b := range append(page.Bookings, rest.Bookings...) {
		require.False(t, seen[b.ID], "row %s repeated across pages", b.ID)
		seen[b.ID] = true
	}
	assert.Len(t, seen, 3)

	quoted := enums.BookingStatusQuoteSent
	filtered, err := repo.ListForCouple(ctx, coupleID, pagination.Params{}, ListFilters{Status: &quoted})
	require.NoError(t, err)
	require.Len(t, filtered.Bookings, 1)
	assert.Equal(t, quoted, filtered.Bookings[0].Status)
}

func TestListForVendorScopesByVendor(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	vendorID := uuid.New()
	seedBooking(t, db, func(b *models.Booking) { b.VendorID = vendorID })
	seedBooking(t, db, nil)

	page, err := repo.ListForVendor(ctx, vendorID, pagination.Params{}, ListFilters{})
	require.NoError(t, err)
	require.Len(t, page.Bookings, 1)
	assert.Equal(t, vendorID, page.Bookings[0].VendorID)
}

func TestFindExpiredQuotes(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	expired := seedBooking(t, db, func(b *models.Booking) {
		b.Status = enums.BookingStatusQuoteSent
		b.QuoteValidUntil = &past
	})
	seedBooking(t, db, func(b *models.Booking) {
		b.Status = enums.BookingStatusQuoteSent
		b.QuoteValidUntil = &future
	})
	seedBooking(t, db, func(b *models.Booking) {
		b.Status = enums.BookingStatusQuoteAccepted
		b.QuoteValidUntil = &past
	})

	rows, err := repo.FindExpiredQuotes(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, expired.ID, rows[0].ID)
}

func TestLockVendorAndOffDays(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	vendorID := uuid.New()
	require.NoError(t, db.Exec(
		`INSERT INTO vendors (id, business_name) VALUES (?, ?)`,
		vendorID, "Dream Weddings Co",
	).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO vendor_off_days (id, vendor_id, off_date) VALUES (?, ?, ?)`,
		uuid.New(), vendorID, "2027-06-12",
	).Error)

	require.NoError(t, repo.LockVendor(ctx, vendorID))
	assert.ErrorIs(t, repo.LockVendor(ctx, uuid.New()), gorm.ErrRecordNotFound)

	blocked, err := repo.HasOffDay(ctx, vendorID, time.Date(2027, 6, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, blocked)

	free, err := repo.HasOffDay(ctx, vendorID, time.Date(2027, 6, 13, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, free)
}
