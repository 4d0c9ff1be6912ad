package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/enums"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/types"
)

// Booking is the agreement record between a couple and a vendor for a service
// on an event date. Rows are never hard-deleted; cancellation is a status.
// Status and the monetary columns are only ever mutated together through the
// bookings service transition path.
type Booking struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CoupleID uuid.UUID `gorm:"column:couple_id;type:uuid;not null;index"`
	VendorID uuid.UUID `gorm:"column:vendor_id;type:uuid;not null;index"`
	ServiceID uuid.UUID `gorm:"column:service_id;type:uuid;not null"`

	// Snapshot of the service at request time so later edits don't rewrite
	// historical bookings.
	ServiceName string `gorm:"column:service_name;not null"`

	EventDate     time.Time `gorm:"column:event_date;type:date;not null"`
	EventTime     *string   `gorm:"column:event_time"`
	EventLocation *string   `gorm:"column:event_location"`
	GuestCount    *int      `gorm:"column:guest_count"`

	Status enums.BookingStatus `gorm:"column:status;type:booking_status;not null;default:'request'"`

	QuotedPriceCentavos      *int64                 `gorm:"column:quoted_price_centavos"`
	QuotedDepositCentavos    *int64                 `gorm:"column:quoted_deposit_centavos"`
	TotalPaidCentavos        int64                  `gorm:"column:total_paid_centavos;not null;default:0"`
	RemainingBalanceCentavos int64                  `gorm:"column:remaining_balance_centavos;not null;default:0"`
	QuoteItemization         types.QuoteItemization `gorm:"column:quote_itemization;type:jsonb;serializer:json"`
	QuoteSentAt              *time.Time             `gorm:"column:quote_sent_at"`
	QuoteValidUntil          *time.Time             `gorm:"column:quote_valid_until"`

	VendorCompletedAt *time.Time `gorm:"column:vendor_completed_at"`
	CoupleCompletedAt *time.Time `gorm:"column:couple_completed_at"`
	FullyCompletedAt  *time.Time `gorm:"column:fully_completed_at"`
	CancelledAt       *time.Time `gorm:"column:cancelled_at"`
	CancelReason      *string    `gorm:"column:cancel_reason"`

	Events   []BookingEvent `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`
	Receipts []Receipt      `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// BookingEvent is an append-only audit row written in the same transaction as
// every status transition.
type BookingEvent struct {
	ID          uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	BookingID   uuid.UUID           `gorm:"column:booking_id;type:uuid;not null;index"`
	FromStatus  enums.BookingStatus `gorm:"column:from_status;type:booking_status;not null"`
	Event       enums.BookingEvent  `gorm:"column:event;type:text;not null"`
	ToStatus    enums.BookingStatus `gorm:"column:to_status;type:booking_status;not null"`
	ActorUserID uuid.UUID           `gorm:"column:actor_user_id;type:uuid;not null"`
	Note        *string             `gorm:"column:note"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
}
