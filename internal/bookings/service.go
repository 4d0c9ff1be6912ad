package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/weddingbazaar/wedding-bazaar-backend/internal/notifications"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db/models"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/enums"
	pkgerrors "github.com/weddingbazaar/wedding-bazaar-backend/pkg/errors"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/pagination"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/types"
)

// quoteValidity is how long a sent quote stays acceptable.
const quoteValidity = 14 * 24 * time.Hour

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type notifier interface {
	Notify(ctx context.Context, tx *gorm.DB, input notifications.NewNotification) error
}

// ServiceCatalog resolves the requested offering at booking creation.
type ServiceCatalog interface {
	FindActiveService(ctx context.Context, serviceID uuid.UUID) (*models.Service, error)
}

// BookingDetail bundles a booking with its audit trail.
type BookingDetail struct {
	Booking models.Booking        `json:"booking"`
	Events  []models.BookingEvent `json:"events"`
}

// Service is the single surface through which booking status ever changes.
type Service interface {
	CreateRequest(ctx context.Context, input CreateRequestInput) (*models.Booking, error)
	Get(ctx context.Context, actor Actor, bookingID uuid.UUID) (*BookingDetail, error)
	ListForCouple(ctx context.Context, actor Actor, params pagination.Params, filters ListFilters) (*BookingList, error)
	ListForVendor(ctx context.Context, actor Actor, params pagination.Params, filters ListFilters) (*BookingList, error)
	SendQuote(ctx context.Context, input SendQuoteInput) (*models.Booking, error)
	Transition(ctx context.Context, input TransitionInput) (*models.Booking, error)

	// ApplyEvent is Transition without the transaction wrapper, for
	// callers that already hold one.
	ApplyEvent(ctx context.Context, tx *gorm.DB, input TransitionInput) (*models.Booking, error)

	// ApplyPayment runs inside the caller's transaction so the status
	// change, receipt and ledger entry commit or roll back together.
	ApplyPayment(ctx context.Context, tx *gorm.DB, input PaymentApplication) (*models.Booking, error)

	// ExpireQuotes sweeps quote_sent bookings whose validity window closed.
	ExpireQuotes(ctx context.Context, now time.Time, batchSize int) (int, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	catalog  ServiceCatalog
	notifier notifier
}

// NewService builds the bookings service with the required dependencies.
func NewService(repo Repository, tx txRunner, catalog ServiceCatalog, notifier notifier) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("bookings repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("service catalog required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	return &service{repo: repo, tx: tx, catalog: catalog, notifier: notifier}, nil
}

func (s *service) CreateRequest(ctx context.Context, input CreateRequestInput) (*models.Booking, error) {
	if input.Actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.Actor.Role != enums.UserRoleCouple {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only couples can request bookings")
	}
	if input.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}
	if input.ServiceID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service id required")
	}
	if input.EventDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event date required")
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if input.EventDate.Before(today) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event date cannot be in the past")
	}

	offering, err := s.catalog.FindActiveService(ctx, input.ServiceID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
		}
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load service")
	}
	if offering.VendorID != input.VendorID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service does not belong to vendor")
	}

	status := enums.BookingStatusRequest
	if input.Draft {
		status = enums.BookingStatusDraft
	}

	booking := &models.Booking{
		CoupleID:      input.Actor.UserID,
		VendorID:      input.VendorID,
		ServiceID:     offering.ID,
		ServiceName:   offering.Name,
		EventDate:     input.EventDate,
		EventTime:     input.EventTime,
		EventLocation: input.EventLocation,
		GuestCount:    input.GuestCount,
		Status:        status,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.Create(ctx, booking); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create booking")
		}
		if input.Draft {
			return nil
		}
		audit := &models.BookingEvent{
			BookingID:   booking.ID,
			FromStatus:  enums.BookingStatusDraft,
			Event:       enums.BookingEventSubmitRequest,
			ToStatus:    enums.BookingStatusRequest,
			ActorUserID: input.Actor.UserID,
		}
		if err := repo.CreateEvent(ctx, audit); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create booking event")
		}
		return s.notifier.Notify(ctx, tx, notifications.NewNotification{
			UserID:  booking.VendorID,
			Type:    enums.NotificationTypeBookingUpdate,
			Title:   "New booking request",
			Message: fmt.Sprintf("A couple requested %s for %s.", booking.ServiceName, booking.EventDate.Format("January 2, 2006")),
		})
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *service) Get(ctx context.Context, actor Actor, bookingID uuid.UUID) (*BookingDetail, error) {
	if bookingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking id required")
	}

	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}
	if err := checkOwnership(booking, actor); err != nil {
		return nil, err
	}

	events, err := s.repo.ListEvents(ctx, bookingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking events")
	}
	return &BookingDetail{Booking: *booking, Events: events}, nil
}

func (s *service) ListForCouple(ctx context.Context, actor Actor, params pagination.Params, filters ListFilters) (*BookingList, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	list, err := s.repo.ListForCouple(ctx, actor.UserID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bookings")
	}
	return list, nil
}

func (s *service) ListForVendor(ctx context.Context, actor Actor, params pagination.Params, filters ListFilters) (*BookingList, error) {
	if actor.VendorID == nil || *actor.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "vendor context missing")
	}
	list, err := s.repo.ListForVendor(ctx, *actor.VendorID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bookings")
	}
	return list, nil
}

func (s *service) SendQuote(ctx context.Context, input SendQuoteInput) (*models.Booking, error) {
	if input.BookingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking id required")
	}
	if input.Actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.Actor.VendorID == nil || *input.Actor.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "vendor context missing")
	}
	if len(input.Itemization) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quote itemization required")
	}
	if err := input.Itemization.Validate(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, err.Error())
	}
	if input.DepositPercent <= 0 || input.DepositPercent > 100 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "deposit percent must be between 1 and 100")
	}

	var booking *models.Booking
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		loaded, err := repo.FindByIDForUpdate(ctx, input.BookingID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
		}
		if loaded.VendorID != *input.Actor.VendorID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "booking does not belong to vendor")
		}

		to, ok := Next(loaded.Status, enums.BookingEventSendQuote)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot send a quote in the current state")
		}

		now := time.Now().UTC()
		total := input.Itemization.TotalCentavos()
		deposit := types.DepositFor(total, decimal.NewFromInt(input.DepositPercent))
		validUntil := now.Add(quoteValidity)

		updates := map[string]any{
			"status":                     to,
			"quoted_price_centavos":      total,
			"quoted_deposit_centavos":    deposit,
			"remaining_balance_centavos": total,
			"quote_itemization":          input.Itemization,
			"quote_sent_at":              now,
			"quote_valid_until":          validUntil,
		}
		if err := repo.Update(ctx, loaded.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update booking")
		}

		audit := &models.BookingEvent{
			BookingID:   loaded.ID,
			FromStatus:  loaded.Status,
			Event:       enums.BookingEventSendQuote,
			ToStatus:    to,
			ActorUserID: input.Actor.UserID,
		}
		if err := repo.CreateEvent(ctx, audit); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create booking event")
		}

		loaded.Status = to
		loaded.QuotedPriceCentavos = &total
		loaded.QuotedDepositCentavos = &deposit
		loaded.RemainingBalanceCentavos = total
		loaded.QuoteItemization = input.Itemization
		loaded.QuoteSentAt = &now
		loaded.QuoteValidUntil = &validUntil
		booking = loaded

		return s.notifier.Notify(ctx, tx, notifications.NewNotification{
			UserID:  loaded.CoupleID,
			Type:    enums.NotificationTypeQuoteReceived,
			Title:   "Quote received",
			Message: fmt.Sprintf("Your vendor sent a quote for %s.", loaded.ServiceName),
		})
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *service) Transition(ctx context.Context, input TransitionInput) (*models.Booking, error) {
	var booking *models.Booking
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		updated, err := s.ApplyEvent(ctx, tx, input)
		if err != nil {
			return err
		}
		booking = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// ApplyEvent runs one lifecycle transition inside the caller's transaction.
// Transition wraps it; the payments flow calls it directly so the refund
// status change and its ledger entry commit together.
func (s *service) ApplyEvent(ctx context.Context, tx *gorm.DB, input TransitionInput) (*models.Booking, error) {
	if input.BookingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking id required")
	}
	if input.Actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if !input.Event.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid booking event")
	}

	repo := s.repo.WithTx(tx)
	loaded, err := repo.FindByIDForUpdate(ctx, input.BookingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}
	if err := checkOwnership(loaded, input.Actor); err != nil {
		return nil, err
	}

	if loaded.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, statusConflictMessage(loaded.Status, input.Event))
	}
	to, ok := Next(loaded.Status, input.Event)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, statusConflictMessage(loaded.Status, input.Event))
	}
	if !RoleAllowed(loaded.Status, input.Event, input.Actor.Role) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "action not permitted for role")
	}

	now := time.Now().UTC()
	updates := map[string]any{"status": to}

	switch input.Event {
	case enums.BookingEventAcceptQuote:
		if loaded.QuoteValidUntil == nil || loaded.QuoteValidUntil.Before(now) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "quote validity has elapsed")
		}
	case enums.BookingEventConfirm:
		// Vendor row lock serializes against off-day writes for the
		// same vendor.
		if err := repo.LockVendor(ctx, loaded.VendorID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock vendor")
		}
		blocked, err := repo.HasOffDay(ctx, loaded.VendorID, loaded.EventDate)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check vendor calendar")
		}
		if blocked {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "event date is marked unavailable by the vendor")
		}
	case enums.BookingEventComplete:
		to = applyCompletion(loaded, input.Actor.Role, now, updates)
	case enums.BookingEventCancel:
		updates["cancelled_at"] = now
		if input.Note != nil {
			updates["cancel_reason"] = *input.Note
		}
		loaded.CancelledAt = &now
		loaded.CancelReason = input.Note
	}
	updates["status"] = to

	if err := repo.Update(ctx, loaded.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update booking")
	}

	audit := &models.BookingEvent{
		BookingID:   loaded.ID,
		FromStatus:  loaded.Status,
		Event:       input.Event,
		ToStatus:    to,
		ActorUserID: input.Actor.UserID,
		Note:        input.Note,
	}
	if err := repo.CreateEvent(ctx, audit); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create booking event")
	}

	loaded.Status = to

	if note := counterpartNotification(loaded, input.Actor, input.Event); note != nil {
		if err := s.notifier.Notify(ctx, tx, *note); err != nil {
			return nil, err
		}
	}
	return loaded, nil
}

// ApplyPayment moves the booking along a payment edge and adjusts the
// monetary columns in the same UPDATE. The caller owns the transaction and
// writes the receipt and wallet ledger rows alongside.
func (s *service) ApplyPayment(ctx context.Context, tx *gorm.DB, input PaymentApplication) (*models.Booking, error) {
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction required to apply a payment")
	}
	if input.AmountCentavos <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment amount must be positive")
	}

	repo := s.repo.WithTx(tx)
	loaded, err := repo.FindByIDForUpdate(ctx, input.BookingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}

	event := enums.BookingEventRecordBalance
	if input.Kind == enums.ReceiptKindDeposit {
		event = enums.BookingEventRecordDeposit
	}
	to, ok := Next(loaded.Status, event)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, statusConflictMessage(loaded.Status, event))
	}

	switch input.Kind {
	case enums.ReceiptKindDeposit:
		if loaded.QuotedDepositCentavos == nil || input.AmountCentavos != *loaded.QuotedDepositCentavos {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment amount does not match the quoted deposit")
		}
	case enums.ReceiptKindBalance:
		if input.AmountCentavos != loaded.RemainingBalanceCentavos {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment amount does not match the remaining balance")
		}
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid receipt kind")
	}

	totalPaid := loaded.TotalPaidCentavos + input.AmountCentavos
	remaining := loaded.RemainingBalanceCentavos - input.AmountCentavos
	updates := map[string]any{
		"status":                     to,
		"total_paid_centavos":        totalPaid,
		"remaining_balance_centavos": remaining,
	}
	if err := repo.Update(ctx, loaded.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update booking")
	}

	audit := &models.BookingEvent{
		BookingID:   loaded.ID,
		FromStatus:  loaded.Status,
		Event:       event,
		ToStatus:    to,
		ActorUserID: loaded.CoupleID,
	}
	if err := repo.CreateEvent(ctx, audit); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create booking event")
	}

	if err := s.notifier.Notify(ctx, tx, notifications.NewNotification{
		UserID:  loaded.VendorID,
		Type:    enums.NotificationTypePaymentAlert,
		Title:   "Payment received",
		Message: fmt.Sprintf("A payment of %s was recorded for %s.", formatCentavos(input.AmountCentavos), loaded.ServiceName),
	}); err != nil {
		return nil, err
	}

	loaded.Status = to
	loaded.TotalPaidCentavos = totalPaid
	loaded.RemainingBalanceCentavos = remaining
	return loaded, nil
}

func (s *service) ExpireQuotes(ctx context.Context, now time.Time, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 100
	}

	candidates, err := s.repo.FindExpiredQuotes(ctx, now, batchSize)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find expired quotes")
	}

	swept := 0
	var errs error
	for _, candidate := range candidates {
		err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			repo := s.repo.WithTx(tx)
			loaded, err := repo.FindByIDForUpdate(ctx, candidate.ID)
			if err != nil {
				return err
			}
			// A concurrent accept or cancel may have won already.
			if loaded.Status != enums.BookingStatusQuoteSent {
				return nil
			}
			if loaded.QuoteValidUntil == nil || !loaded.QuoteValidUntil.Before(now) {
				return nil
			}

			to, ok := Next(loaded.Status, enums.BookingEventExpireQuote)
			if !ok {
				return nil
			}
			if err := repo.Update(ctx, loaded.ID, map[string]any{"status": to}); err != nil {
				return err
			}

			note := "quote validity elapsed"
			audit := &models.BookingEvent{
				BookingID:   loaded.ID,
				FromStatus:  loaded.Status,
				Event:       enums.BookingEventExpireQuote,
				ToStatus:    to,
				ActorUserID: loaded.VendorID,
				Note:        &note,
			}
			if err := repo.CreateEvent(ctx, audit); err != nil {
				return err
			}

			swept++
			return s.notifier.Notify(ctx, tx, notifications.NewNotification{
				UserID:  loaded.CoupleID,
				Type:    enums.NotificationTypeBookingUpdate,
				Title:   "Quote expired",
				Message: fmt.Sprintf("The quote for %s expired. You can request a new one.", loaded.ServiceName),
			})
		})
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("expire quote for booking %s: %w", candidate.ID, err))
		}
	}
	return swept, errs
}

// applyCompletion records the acting side's completion flag and only closes
// the booking once both sides have signed off. Admins resolving a dispute
// close it outright.
func applyCompletion(booking *models.Booking, role enums.UserRole, now time.Time, updates map[string]any) enums.BookingStatus {
	switch role {
	case enums.UserRoleVendor:
		if booking.VendorCompletedAt == nil {
			updates["vendor_completed_at"] = now
			booking.VendorCompletedAt = &now
		}
	case enums.UserRoleCouple:
		if booking.CoupleCompletedAt == nil {
			updates["couple_completed_at"] = now
			booking.CoupleCompletedAt = &now
		}
	case enums.UserRoleAdmin:
		updates["fully_completed_at"] = now
		booking.FullyCompletedAt = &now
		return enums.BookingStatusCompleted
	}

	if booking.VendorCompletedAt != nil && booking.CoupleCompletedAt != nil {
		updates["fully_completed_at"] = now
		booking.FullyCompletedAt = &now
		return enums.BookingStatusCompleted
	}
	return booking.Status
}

func checkOwnership(booking *models.Booking, actor Actor) error {
	switch actor.Role {
	case enums.UserRoleAdmin:
		return nil
	case enums.UserRoleCouple:
		if booking.CoupleID != actor.UserID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "booking does not belong to user")
		}
	case enums.UserRoleVendor:
		if actor.VendorID == nil || booking.VendorID != *actor.VendorID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "booking does not belong to vendor")
		}
	default:
		return pkgerrors.New(pkgerrors.CodeForbidden, "unknown role")
	}
	return nil
}

func statusConflictMessage(from enums.BookingStatus, event enums.BookingEvent) string {
	switch {
	case from.IsTerminal():
		return fmt.Sprintf("booking is already %s", from)
	case event == enums.BookingEventAcceptQuote:
		return "cannot accept a quote that was never sent"
	case event == enums.BookingEventDeclineQuote:
		return "cannot decline a quote that was never sent"
	default:
		return fmt.Sprintf("%s is not allowed while the booking is %s", event, from)
	}
}

// counterpartNotification tells the other party what just happened. Internal
// events and admin moves notify both sides where it matters.
func counterpartNotification(booking *models.Booking, actor Actor, event enums.BookingEvent) *notifications.NewNotification {
	recipient := booking.VendorID
	if actor.Role == enums.UserRoleVendor {
		recipient = booking.CoupleID
	}

	switch event {
	case enums.BookingEventAcceptQuote:
		return &notifications.NewNotification{
			UserID:  booking.VendorID,
			Type:    enums.NotificationTypeBookingUpdate,
			Title:   "Quote accepted",
			Message: fmt.Sprintf("Your quote for %s was accepted.", booking.ServiceName),
		}
	case enums.BookingEventDeclineQuote:
		return &notifications.NewNotification{
			UserID:  booking.VendorID,
			Type:    enums.NotificationTypeBookingUpdate,
			Title:   "Quote declined",
			Message: fmt.Sprintf("Your quote for %s was declined.", booking.ServiceName),
		}
	case enums.BookingEventConfirm:
		return &notifications.NewNotification{
			UserID:  booking.CoupleID,
			Type:    enums.NotificationTypeBookingUpdate,
			Title:   "Booking confirmed",
			Message: fmt.Sprintf("Your booking for %s is confirmed.", booking.ServiceName),
		}
	case enums.BookingEventCancel:
		return &notifications.NewNotification{
			UserID:  recipient,
			Type:    enums.NotificationTypeBookingUpdate,
			Title:   "Booking cancelled",
			Message: fmt.Sprintf("The booking for %s was cancelled.", booking.ServiceName),
		}
	case enums.BookingEventDispute:
		return &notifications.NewNotification{
			UserID:  recipient,
			Type:    enums.NotificationTypeSystemMessage,
			Title:   "Booking disputed",
			Message: fmt.Sprintf("The booking for %s was disputed and is under review.", booking.ServiceName),
		}
	case enums.BookingEventStartService:
		return &notifications.NewNotification{
			UserID:  booking.CoupleID,
			Type:    enums.NotificationTypeBookingUpdate,
			Title:   "Service started",
			Message: fmt.Sprintf("Your vendor started work on %s.", booking.ServiceName),
		}
	case enums.BookingEventComplete:
		if booking.Status == enums.BookingStatusCompleted {
			return &notifications.NewNotification{
				UserID:  recipient,
				Type:    enums.NotificationTypeBookingUpdate,
				Title:   "Booking completed",
				Message: fmt.Sprintf("The booking for %s is complete.", booking.ServiceName),
			}
		}
		return &notifications.NewNotification{
			UserID:  recipient,
			Type:    enums.NotificationTypeBookingUpdate,
			Title:   "Completion pending",
			Message: fmt.Sprintf("The other party marked %s as done. Confirm to close the booking.", booking.ServiceName),
		}
	case enums.BookingEventRefund:
		return &notifications.NewNotification{
			UserID:  booking.CoupleID,
			Type:    enums.NotificationTypeRefundAlert,
			Title:   "Refund issued",
			Message: fmt.Sprintf("A refund was issued for %s.", booking.ServiceName),
		}
	case enums.BookingEventSubmitRequest:
		return &notifications.NewNotification{
			UserID:  booking.VendorID,
			Type:    enums.NotificationTypeBookingUpdate,
			Title:   "New booking request",
			Message: fmt.Sprintf("A couple requested %s for %s.", booking.ServiceName, booking.EventDate.Format("January 2, 2006")),
		}
	}
	return nil
}

func formatCentavos(amount int64) string {
	return fmt.Sprintf("PHP %d.%02d", amount/100, amount%100)
}
