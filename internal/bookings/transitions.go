package bookings

import (
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/enums"
)

// rule describes one legal lifecycle edge. Roles lists who may trigger the
// event over HTTP; an empty list marks an internal-only event (payment
// recording, quote expiry) that never passes through the role guard.
type rule struct {
	to    enums.BookingStatus
	roles []enums.UserRole
}

var coupleOrVendor = []enums.UserRole{enums.UserRoleCouple, enums.UserRoleVendor}

// transitions is the single authoritative table of legal
// (fromStatus, event) pairs. Every route and job that can change a
// booking's status resolves its move here; anything absent is illegal.
// Terminal statuses (completed, cancelled, refunded) have no outgoing
// edges at all.
var transitions = map[enums.BookingStatus]map[enums.BookingEvent]rule{
	enums.BookingStatusDraft: {
		enums.BookingEventSubmitRequest: {to: enums.BookingStatusRequest, roles: []enums.UserRole{enums.UserRoleCouple}},
		enums.BookingEventCancel:        {to: enums.BookingStatusCancelled, roles: []enums.UserRole{enums.UserRoleCouple}},
	},
	enums.BookingStatusRequest: {
		enums.BookingEventRequestQuote: {to: enums.BookingStatusQuoteRequested, roles: []enums.UserRole{enums.UserRoleCouple}},
		enums.BookingEventSendQuote:    {to: enums.BookingStatusQuoteSent, roles: []enums.UserRole{enums.UserRoleVendor}},
		enums.BookingEventCancel:       {to: enums.BookingStatusCancelled, roles: coupleOrVendor},
	},
	enums.BookingStatusQuoteRequested: {
		enums.BookingEventSendQuote: {to: enums.BookingStatusQuoteSent, roles: []enums.UserRole{enums.UserRoleVendor}},
		enums.BookingEventCancel:    {to: enums.BookingStatusCancelled, roles: coupleOrVendor},
	},
	enums.BookingStatusQuoteSent: {
		// A vendor may revise an outstanding quote before the couple decides.
		enums.BookingEventSendQuote:    {to: enums.BookingStatusQuoteSent, roles: []enums.UserRole{enums.UserRoleVendor}},
		enums.BookingEventAcceptQuote:  {to: enums.BookingStatusQuoteAccepted, roles: []enums.UserRole{enums.UserRoleCouple}},
		enums.BookingEventDeclineQuote: {to: enums.BookingStatusQuoteRequested, roles: []enums.UserRole{enums.UserRoleCouple}},
		enums.BookingEventExpireQuote:  {to: enums.BookingStatusQuoteRequested},
		enums.BookingEventCancel:       {to: enums.BookingStatusCancelled, roles: coupleOrVendor},
	},
	enums.BookingStatusQuoteAccepted: {
		enums.BookingEventConfirm: {to: enums.BookingStatusConfirmed, roles: []enums.UserRole{enums.UserRoleVendor}},
		enums.BookingEventCancel:  {to: enums.BookingStatusCancelled, roles: coupleOrVendor},
	},
	enums.BookingStatusConfirmed: {
		enums.BookingEventRecordDeposit: {to: enums.BookingStatusDownpaymentPaid},
		enums.BookingEventRecordBalance: {to: enums.BookingStatusPaidInFull},
		enums.BookingEventCancel:        {to: enums.BookingStatusCancelled, roles: coupleOrVendor},
	},
	enums.BookingStatusDownpaymentPaid: {
		enums.BookingEventRecordBalance: {to: enums.BookingStatusPaidInFull},
		enums.BookingEventStartService:  {to: enums.BookingStatusInProgress, roles: []enums.UserRole{enums.UserRoleVendor}},
		enums.BookingEventCancel:        {to: enums.BookingStatusCancelled, roles: coupleOrVendor},
		enums.BookingEventDispute:       {to: enums.BookingStatusDisputed, roles: coupleOrVendor},
	},
	enums.BookingStatusPaidInFull: {
		enums.BookingEventStartService: {to: enums.BookingStatusInProgress, roles: []enums.UserRole{enums.UserRoleVendor}},
		enums.BookingEventCancel:       {to: enums.BookingStatusCancelled, roles: coupleOrVendor},
		enums.BookingEventDispute:      {to: enums.BookingStatusDisputed, roles: coupleOrVendor},
	},
	enums.BookingStatusInProgress: {
		enums.BookingEventComplete: {to: enums.BookingStatusCompleted, roles: coupleOrVendor},
		enums.BookingEventCancel:   {to: enums.BookingStatusCancelled, roles: coupleOrVendor},
		enums.BookingEventDispute:  {to: enums.BookingStatusDisputed, roles: coupleOrVendor},
	},
	enums.BookingStatusDisputed: {
		enums.BookingEventRefund:   {to: enums.BookingStatusRefunded, roles: []enums.UserRole{enums.UserRoleAdmin}},
		enums.BookingEventCancel:   {to: enums.BookingStatusCancelled, roles: []enums.UserRole{enums.UserRoleAdmin}},
		enums.BookingEventComplete: {to: enums.BookingStatusCompleted, roles: []enums.UserRole{enums.UserRoleAdmin}},
	},
}

// Next resolves the target status for (from, event). The second return is
// false when the pair is not a legal edge.
func Next(from enums.BookingStatus, event enums.BookingEvent) (enums.BookingStatus, bool) {
	edges, ok := transitions[from]
	if !ok {
		return "", false
	}
	r, ok := edges[event]
	if !ok {
		return "", false
	}
	return r.to, true
}

// RoleAllowed reports whether the given role may trigger event from the
// given status. Internal-only edges return false for every role.
func RoleAllowed(from enums.BookingStatus, event enums.BookingEvent, role enums.UserRole) bool {
	edges, ok := transitions[from]
	if !ok {
		return false
	}
	r, ok := edges[event]
	if !ok {
		return false
	}
	for _, allowed := range r.roles {
		if allowed == role {
			return true
		}
	}
	return false
}
