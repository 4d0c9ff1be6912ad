package offdays

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db/models"
	pkgerrors "github.com/weddingbazaar/wedding-bazaar-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// AddInput marks a date unavailable on a vendor's calendar.
type AddInput struct {
	VendorID uuid.UUID
	Date     time.Time
	Reason   *string
}

// Service manages vendor calendar blackouts.
type Service interface {
	Add(ctx context.Context, input AddInput) (*models.VendorOffDay, error)
	List(ctx context.Context, vendorID uuid.UUID) ([]models.VendorOffDay, error)
	Remove(ctx context.Context, vendorID uuid.UUID, date time.Time) error
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds the off-days service.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("off-days repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Add(ctx context.Context, input AddInput) (*models.VendorOffDay, error) {
	if input.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "vendor context missing")
	}
	if input.Date.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date required")
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if input.Date.Before(today) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot mark a past date unavailable")
	}

	offDay := &models.VendorOffDay{
		VendorID: input.VendorID,
		OffDate:  input.Date,
		Reason:   input.Reason,
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		// The vendor row lock serializes this against booking
		// confirmations for the same vendor.
		if err := repo.LockVendor(ctx, input.VendorID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock vendor")
		}

		blocked, err := repo.HasBlockingBooking(ctx, input.VendorID, input.Date)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check bookings on date")
		}
		if blocked {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "a confirmed booking exists on this date")
		}

		if err := repo.Create(ctx, offDay); err != nil {
			if db.IsUniqueViolation(err, "idx_vendor_off_date") {
				return pkgerrors.New(pkgerrors.CodeConflict, "date is already marked unavailable")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create off-day")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return offDay, nil
}

func (s *service) List(ctx context.Context, vendorID uuid.UUID) ([]models.VendorOffDay, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}
	rows, err := s.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list off-days")
	}
	return rows, nil
}

func (s *service) Remove(ctx context.Context, vendorID uuid.UUID, date time.Time) error {
	if vendorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeForbidden, "vendor context missing")
	}
	if date.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "date required")
	}

	deleted, err := s.repo.Delete(ctx, vendorID, date)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete off-day")
	}
	if deleted == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "off-day not found")
	}
	return nil
}
