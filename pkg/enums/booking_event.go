package enums

import "fmt"

// BookingEvent names an action that can move a booking through its lifecycle.
type BookingEvent string

const (
	BookingEventSubmitRequest BookingEvent = "submit_request"
	BookingEventRequestQuote  BookingEvent = "request_quote"
	BookingEventSendQuote     BookingEvent = "send_quote"
	BookingEventAcceptQuote   BookingEvent = "accept_quote"
	BookingEventDeclineQuote  BookingEvent = "decline_quote"
	BookingEventConfirm       BookingEvent = "confirm"
	BookingEventRecordDeposit BookingEvent = "record_deposit"
	BookingEventRecordBalance BookingEvent = "record_balance"
	BookingEventStartService  BookingEvent = "start_service"
	BookingEventComplete      BookingEvent = "complete"
	BookingEventCancel        BookingEvent = "cancel"
	BookingEventRefund        BookingEvent = "refund"
	BookingEventDispute       BookingEvent = "dispute"
	BookingEventExpireQuote   BookingEvent = "expire_quote"
)

var validBookingEvents = []BookingEvent{
	BookingEventSubmitRequest,
	BookingEventRequestQuote,
	BookingEventSendQuote,
	BookingEventAcceptQuote,
	BookingEventDeclineQuote,
	BookingEventConfirm,
	BookingEventRecordDeposit,
	BookingEventRecordBalance,
	BookingEventStartService,
	BookingEventComplete,
	BookingEventCancel,
	BookingEventRefund,
	BookingEventDispute,
	BookingEventExpireQuote,
}

// String implements fmt.Stringer.
func (b BookingEvent) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BookingEvent.
func (b BookingEvent) IsValid() bool {
	for _, candidate := range validBookingEvents {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBookingEvent converts raw input into a BookingEvent.
func ParseBookingEvent(value string) (BookingEvent, error) {
	for _, candidate := range validBookingEvents {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid booking event %q", value)
}
