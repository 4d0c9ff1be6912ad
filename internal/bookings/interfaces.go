package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db/models"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/pagination"
)

// Repository defines persistence operations for bookings and their audit
// trail. Confirm-time calendar checks live here too because they run under
// the same vendor-row lock as the booking write.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	CreateEvent(ctx context.Context, event *models.BookingEvent) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ListForCouple(ctx context.Context, coupleID uuid.UUID, params pagination.Params, filters ListFilters) (*BookingList, error)
	ListForVendor(ctx context.Context, vendorID uuid.UUID, params pagination.Params, filters ListFilters) (*BookingList, error)
	ListEvents(ctx context.Context, bookingID uuid.UUID) ([]models.BookingEvent, error)
	LockVendor(ctx context.Context, vendorID uuid.UUID) error
	HasOffDay(ctx context.Context, vendorID uuid.UUID, date time.Time) (bool, error)
	FindExpiredQuotes(ctx context.Context, cutoff time.Time, limit int) ([]models.Booking, error)
}
