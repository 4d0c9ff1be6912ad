package wallet

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db/models"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/enums"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/pagination"
)

// Repository exposes persistence helpers for the vendor wallet ledger.
// Entries are append-only; there is no update or delete.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *models.WalletTransaction) error
	List(ctx context.Context, params listEntriesParams) ([]models.WalletTransaction, *pagination.Cursor, error)
	Balance(ctx context.Context, vendorID uuid.UUID) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a wallet repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listEntriesParams struct {
	VendorID  uuid.UUID
	Limit     int
	Cursor    *pagination.Cursor
	EntryType *enums.WalletEntryType
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, entry *models.WalletTransaction) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repositoryImpl) List(ctx context.Context, params listEntriesParams) ([]models.WalletTransaction, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).Model(&models.WalletTransaction{}).Where("vendor_id = ?", params.VendorID)
	if params.EntryType != nil {
		query = query.Where("type = ?", *params.EntryType)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var entries []models.WalletTransaction
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, nil, err
	}

	if len(entries) > normalized {
		// Cursor comes from the last returned row so the strict < filter
		// resumes right after it.
		last := entries[normalized-1]
		entries = entries[:normalized]
		return entries, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, nil
	}
	return entries, nil, nil
}

// Balance nets the ledger for a vendor: received money counts positive,
// refund entries count negative.
func (r *repositoryImpl) Balance(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	var balance int64
	err := r.db.WithContext(ctx).
		Model(&models.WalletTransaction{}).
		Select("COALESCE(SUM(CASE WHEN type IN (?, ?) THEN amount_centavos ELSE -amount_centavos END), 0)",
			enums.WalletEntryDepositReceived, enums.WalletEntryBalanceReceived).
		Where("vendor_id = ?", vendorID).
		Scan(&balance).Error
	if err != nil {
		return 0, err
	}
	return balance, nil
}
