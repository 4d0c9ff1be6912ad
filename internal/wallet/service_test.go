package wallet

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db/models"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/enums"
	pkgerrors "github.com/weddingbazaar/wedding-bazaar-backend/pkg/errors"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/pagination"
)

type fakeRepository struct {
	entries []models.WalletTransaction
	balance int64
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) Create(ctx context.Context, entry *models.WalletTransaction) error {
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now().UTC()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeRepository) List(ctx context.Context, params listEntriesParams) ([]models.WalletTransaction, *pagination.Cursor, error) {
	var matched []models.WalletTransaction
	for _, entry := range f.entries {
		if entry.VendorID != params.VendorID {
			continue
		}
		if params.EntryType != nil && entry.Type != *params.EntryType {
			continue
		}
		matched = append(matched, entry)
	}
	return matched, nil, nil
}

func (f *fakeRepository) Balance(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	return f.balance, nil
}

func TestRecordAppendsEntry(t *testing.T) {
	repo := &fakeRepository{}
	svc, err := NewService(repo)
	require.NoError(t, err)

	entry, err := svc.Record(context.Background(), &gorm.DB{}, NewEntry{
		VendorID:       uuid.New(),
		BookingID:      uuid.New(),
		Type:           enums.WalletEntryDepositReceived,
		AmountCentavos: 1440000,
		Metadata:       map[string]any{"provider_payment_id": "sq-pay-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1440000), entry.AmountCentavos)
	assert.JSONEq(t, `{"provider_payment_id":"sq-pay-1"}`, string(entry.Metadata))
	require.Len(t, repo.entries, 1)
}

func TestRecordRequiresTransaction(t *testing.T) {
	svc, err := NewService(&fakeRepository{})
	require.NoError(t, err)

	_, err = svc.Record(context.Background(), nil, NewEntry{
		VendorID:       uuid.New(),
		BookingID:      uuid.New(),
		Type:           enums.WalletEntryBalanceReceived,
		AmountCentavos: 100,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.CodeOf(err))
}

func TestRecordValidatesInput(t *testing.T) {
	svc, err := NewService(&fakeRepository{})
	require.NoError(t, err)
	tx := &gorm.DB{}

	_, err = svc.Record(context.Background(), tx, NewEntry{
		BookingID:      uuid.New(),
		Type:           enums.WalletEntryDepositReceived,
		AmountCentavos: 100,
	})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	_, err = svc.Record(context.Background(), tx, NewEntry{
		VendorID:       uuid.New(),
		BookingID:      uuid.New(),
		Type:           enums.WalletEntryType("payout"),
		AmountCentavos: 100,
	})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	_, err = svc.Record(context.Background(), tx, NewEntry{
		VendorID:       uuid.New(),
		BookingID:      uuid.New(),
		Type:           enums.WalletEntryDepositReceived,
		AmountCentavos: 0,
	})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestListFiltersByType(t *testing.T) {
	vendorID := uuid.New()
	repo := &fakeRepository{entries: []models.WalletTransaction{
		{ID: uuid.New(), VendorID: vendorID, BookingID: uuid.New(), Type: enums.WalletEntryDepositReceived, AmountCentavos: 500},
		{ID: uuid.New(), VendorID: vendorID, BookingID: uuid.New(), Type: enums.WalletEntryRefundDue, AmountCentavos: 500},
		{ID: uuid.New(), VendorID: uuid.New(), BookingID: uuid.New(), Type: enums.WalletEntryDepositReceived, AmountCentavos: 900},
	}}
	svc, err := NewService(repo)
	require.NoError(t, err)

	refundDue := enums.WalletEntryRefundDue
	list, err := svc.List(context.Background(), vendorID, pagination.Params{}, &refundDue)
	require.NoError(t, err)
	require.Len(t, list.Entries, 1)
	assert.Equal(t, enums.WalletEntryRefundDue, list.Entries[0].Type)
}

func TestBalance(t *testing.T) {
	svc, err := NewService(&fakeRepository{balance: 3360000})
	require.NoError(t, err)

	summary, err := svc.Balance(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(3360000), summary.BalanceCentavos)

	_, err = svc.Balance(context.Background(), uuid.Nil)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.CodeOf(err))
}
