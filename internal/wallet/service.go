package wallet

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db/models"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/enums"
	pkgerrors "github.com/weddingbazaar/wedding-bazaar-backend/pkg/errors"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/pagination"
)

// NewEntry describes a ledger entry to append. Metadata carries provider
// identifiers and ends up in the jsonb column untouched.
type NewEntry struct {
	VendorID       uuid.UUID
	BookingID      uuid.UUID
	Type           enums.WalletEntryType
	AmountCentavos int64
	Metadata       map[string]any
}

// EntryList is a page of ledger entries plus the cursor for the next page.
type EntryList struct {
	Entries    []models.WalletTransaction
	NextCursor string
}

// Summary reports the net position of a vendor's wallet.
type Summary struct {
	VendorID        uuid.UUID
	BalanceCentavos int64
}

// Service manages the vendor wallet ledger.
type Service interface {
	// Record appends an entry inside the caller's transaction so the
	// ledger moves together with the booking row that caused it.
	Record(ctx context.Context, tx *gorm.DB, input NewEntry) (*models.WalletTransaction, error)
	List(ctx context.Context, vendorID uuid.UUID, params pagination.Params, entryType *enums.WalletEntryType) (*EntryList, error)
	Balance(ctx context.Context, vendorID uuid.UUID) (*Summary, error)
}

type service struct {
	repo Repository
}

// NewService wires the wallet service with its repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("wallet service requires a repository")
	}
	return &service{repo: repo}, nil
}

func (s *service) Record(ctx context.Context, tx *gorm.DB, input NewEntry) (*models.WalletTransaction, error) {
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction required to record a ledger entry")
	}
	if input.VendorID == uuid.Nil || input.BookingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ledger entry requires vendor and booking")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid wallet entry type")
	}
	if input.AmountCentavos <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ledger amount must be positive")
	}

	entry := &models.WalletTransaction{
		VendorID:       input.VendorID,
		BookingID:      input.BookingID,
		Type:           input.Type,
		AmountCentavos: input.AmountCentavos,
	}
	if len(input.Metadata) > 0 {
		raw, err := json.Marshal(input.Metadata)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "encode ledger metadata")
		}
		entry.Metadata = raw
	}

	if err := s.repo.WithTx(tx).Create(ctx, entry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create ledger entry")
	}
	return entry, nil
}

func (s *service) List(ctx context.Context, vendorID uuid.UUID, params pagination.Params, entryType *enums.WalletEntryType) (*EntryList, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "vendor identity missing")
	}
	if entryType != nil && !entryType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid wallet entry type")
	}
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	entries, next, err := s.repo.List(ctx, listEntriesParams{
		VendorID:  vendorID,
		Limit:     params.Limit,
		Cursor:    cursor,
		EntryType: entryType,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ledger entries")
	}

	list := &EntryList{Entries: entries}
	if next != nil {
		list.NextCursor = pagination.EncodeCursor(*next)
	}
	return list, nil
}

func (s *service) Balance(ctx context.Context, vendorID uuid.UUID) (*Summary, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "vendor identity missing")
	}
	balance, err := s.repo.Balance(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum ledger entries")
	}
	return &Summary{VendorID: vendorID, BalanceCentavos: balance}, nil
}
