package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db/models"
)

// Repository exposes persistence helpers for payment receipts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, receipt *models.Receipt) error
	FindByProviderPaymentID(ctx context.Context, providerPaymentID string) (*models.Receipt, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]models.Receipt, error)
	FindBooking(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error)
	NextReceiptNumber(ctx context.Context, now time.Time) (string, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a receipts repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, receipt *models.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *repositoryImpl) FindByProviderPaymentID(ctx context.Context, providerPaymentID string) (*models.Receipt, error) {
	var receipt models.Receipt
	err := r.db.WithContext(ctx).
		Where("provider_payment_id = ?", providerPaymentID).
		First(&receipt).Error
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *repositoryImpl) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]models.Receipt, error) {
	var receipts []models.Receipt
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&receipts).Error
	if err != nil {
		return nil, err
	}
	return receipts, nil
}

func (r *repositoryImpl) FindBooking(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Where("id = ?", bookingID).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// NextReceiptNumber draws the next value from the receipt_number_seq
// sequence. Numbers are gapless only per committed receipt; a rolled back
// transaction burns its value, which is fine for display numbers.
func (r *repositoryImpl) NextReceiptNumber(ctx context.Context, now time.Time) (string, error) {
	var seq int64
	if err := r.db.WithContext(ctx).Raw("SELECT nextval('receipt_number_seq')").Scan(&seq).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("WB-%d-%06d", now.UTC().Year(), seq), nil
}
