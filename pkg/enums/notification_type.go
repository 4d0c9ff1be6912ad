package enums

import "fmt"

// NotificationType maps to the notification_type enum in Postgres.
type NotificationType string

const (
	NotificationTypeBookingUpdate  NotificationType = "booking_update"
	NotificationTypeQuoteReceived  NotificationType = "quote_received"
	NotificationTypePaymentAlert   NotificationType = "payment_alert"
	NotificationTypeRefundAlert    NotificationType = "refund_alert"
	NotificationTypeSystemMessage  NotificationType = "system_message"
	NotificationTypeCalendarChange NotificationType = "calendar_change"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeBookingUpdate,
	NotificationTypeQuoteReceived,
	NotificationTypePaymentAlert,
	NotificationTypeRefundAlert,
	NotificationTypeSystemMessage,
	NotificationTypeCalendarChange,
}

// IsValid checks whether the given type matches the canonical enum.
func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw strings into NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}
