package bookings

import (
	"time"

	"github.com/google/uuid"

	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db/models"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/enums"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/types"
)

// Actor identifies who is driving a lifecycle event.
type Actor struct {
	UserID   uuid.UUID
	VendorID *uuid.UUID
	Role     enums.UserRole
}

// ListFilters describe the inputs supported by the booking lists.
type ListFilters struct {
	Status   *enums.BookingStatus
	DateFrom *time.Time
	DateTo   *time.Time
}

// BookingList wraps a page of bookings plus the next page cursor.
type BookingList struct {
	Bookings   []models.Booking `json:"bookings"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// CreateRequestInput captures a couple's initial booking request.
type CreateRequestInput struct {
	Actor         Actor
	VendorID      uuid.UUID
	ServiceID     uuid.UUID
	EventDate     time.Time
	EventTime     *string
	EventLocation *string
	GuestCount    *int
	Draft         bool
}

// TransitionInput drives the generic lifecycle surface. Note is recorded on
// the audit row (cancel reasons, dispute grounds).
type TransitionInput struct {
	Actor     Actor
	BookingID uuid.UUID
	Event     enums.BookingEvent
	Note      *string
}

// SendQuoteInput carries a vendor's quote for a booking.
type SendQuoteInput struct {
	Actor          Actor
	BookingID      uuid.UUID
	Itemization    types.QuoteItemization
	DepositPercent int64
}

// PaymentApplication is what the payments flow asks the lifecycle to absorb
// once the provider has confirmed a payment.
type PaymentApplication struct {
	BookingID         uuid.UUID
	Kind              enums.ReceiptKind
	AmountCentavos    int64
	ProviderPaymentID string
}
