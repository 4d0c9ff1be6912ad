package payments

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db/models"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/enums"
)

func setupReceiptsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
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
		`CREATE TABLE IF NOT EXISTS receipts (
  id TEXT PRIMARY KEY,
  booking_id TEXT NOT NULL,
  kind TEXT NOT NULL,
  receipt_number TEXT NOT NULL UNIQUE,
  amount_centavos INTEGER NOT NULL,
  provider_payment_id TEXT NOT NULL UNIQUE,
  created_at DATETIME
);`,
	}
	for _, statement := range statements {
		require.NoError(t, db.Exec(statement).Error)
	}
	return db
}

func insertReceipt(t *testing.T, db *gorm.DB, bookingID uuid.UUID, number, providerPaymentID string, amount int64) *models.Receipt {
	t.Helper()
	receipt := &models.Receipt{
		ID:                uuid.New(),
		BookingID:         bookingID,
		Kind:              enums.ReceiptKindDeposit,
		ReceiptNumber:     number,
		AmountCentavos:    amount,
		ProviderPaymentID: providerPaymentID,
	}
	require.NoError(t, db.Create(receipt).Error)
	return receipt
}

func TestFindByProviderPaymentID(t *testing.T) {
	db := setupReceiptsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	bookingID := uuid.New()
	insertReceipt(t, db, bookingID, "WB-2026-000001", "sq-pay-1", 1440000)

	found, err := repo.FindByProviderPaymentID(ctx, "sq-pay-1")
	require.NoError(t, err)
	assert.Equal(t, bookingID, found.BookingID)
	assert.Equal(t, int64(1440000), found.AmountCentavos)

	_, err = repo.FindByProviderPaymentID(ctx, "sq-pay-missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateRejectsDuplicateProviderPayment(t *testing.T) {
	db := setupReceiptsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	bookingID := uuid.New()
	insertReceipt(t, db, bookingID, "WB-2026-000001", "sq-pay-1", 1440000)

	err := repo.Create(ctx, &models.Receipt{
		ID:                uuid.New(),
		BookingID:         bookingID,
		Kind:              enums.ReceiptKindBalance,
		ReceiptNumber:     "WB-2026-000002",
		AmountCentavos:    3360000,
		ProviderPaymentID: "sq-pay-1",
	})
	require.Error(t, err)
}

func TestListByBookingOrdersByCreation(t *testing.T) {
	db := setupReceiptsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	bookingID := uuid.New()
	insertReceipt(t, db, bookingID, "WB-2026-000001", "sq-pay-1", 1440000)
	insertReceipt(t, db, bookingID, "WB-2026-000002", "sq-pay-2", 3360000)
	insertReceipt(t, db, uuid.New(), "WB-2026-000003", "sq-pay-3", 500)

	receipts, err := repo.ListByBooking(ctx, bookingID)
	require.NoError(t, err)
	require.Len(t, receipts, 2)
	assert.Equal(t, "WB-2026-000001", receipts[0].ReceiptNumber)
	assert.Equal(t, "WB-2026-000002", receipts[1].ReceiptNumber)
}

func TestFindBooking(t *testing.T) {
	db := setupReceiptsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	booking := &models.Booking{
		ID:          uuid.New(),
		CoupleID:    uuid.New(),
		VendorID:    uuid.New(),
		ServiceID:   uuid.New(),
		ServiceName: "Catering for 150",
		Status:      enums.BookingStatusCancelled,
	}
	require.NoError(t, db.Create(booking).Error)

	found, err := repo.FindBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.BookingStatusCancelled, found.Status)
}
