package enums

import "fmt"

// BookingStatus tracks the lifecycle of a booking between a couple and a vendor.
type BookingStatus string

const (
	BookingStatusDraft           BookingStatus = "draft"
	BookingStatusRequest         BookingStatus = "request"
	BookingStatusQuoteRequested  BookingStatus = "quote_requested"
	BookingStatusQuoteSent       BookingStatus = "quote_sent"
	BookingStatusQuoteAccepted   BookingStatus = "quote_accepted"
	BookingStatusConfirmed       BookingStatus = "confirmed"
	BookingStatusDownpaymentPaid BookingStatus = "downpayment_paid"
	BookingStatusPaidInFull      BookingStatus = "paid_in_full"
	BookingStatusInProgress      BookingStatus = "in_progress"
	BookingStatusCompleted       BookingStatus = "completed"
	BookingStatusCancelled       BookingStatus = "cancelled"
	BookingStatusRefunded        BookingStatus = "refunded"
	BookingStatusDisputed        BookingStatus = "disputed"
)

var validBookingStatuses = []BookingStatus{
	BookingStatusDraft,
	BookingStatusRequest,
	BookingStatusQuoteRequested,
	BookingStatusQuoteSent,
	BookingStatusQuoteAccepted,
	BookingStatusConfirmed,
	BookingStatusDownpaymentPaid,
	BookingStatusPaidInFull,
	BookingStatusInProgress,
	BookingStatusCompleted,
	BookingStatusCancelled,
	BookingStatusRefunded,
	BookingStatusDisputed,
}

// String implements fmt.Stringer.
func (b BookingStatus) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BookingStatus.
func (b BookingStatus) IsValid() bool {
	for _, candidate := range validBookingStatuses {
		if candidate == b {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is allowed from the status.
func (b BookingStatus) IsTerminal() bool {
	switch b {
	case BookingStatusCompleted, BookingStatusCancelled, BookingStatusRefunded:
		return true
	}
	return false
}

// ParseBookingStatus converts raw input into a BookingStatus.
func ParseBookingStatus(value string) (BookingStatus, error) {
	for _, candidate := range validBookingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid booking status %q", value)
}
