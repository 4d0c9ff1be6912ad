package payments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	sq "github.com/square/square-go-sdk"
	"gorm.io/gorm"

	"github.com/weddingbazaar/wedding-bazaar-backend/internal/bookings"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/notifications"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/wallet"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db/models"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/enums"
	pkgerrors "github.com/weddingbazaar/wedding-bazaar-backend/pkg/errors"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/square"
)

const currency = "PHP"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type lifecycle interface {
	Get(ctx context.Context, actor bookings.Actor, bookingID uuid.UUID) (*bookings.BookingDetail, error)
	ApplyEvent(ctx context.Context, tx *gorm.DB, input bookings.TransitionInput) (*models.Booking, error)
	ApplyPayment(ctx context.Context, tx *gorm.DB, input bookings.PaymentApplication) (*models.Booking, error)
}

type gateway interface {
	CreatePayment(ctx context.Context, params square.PaymentCreateParams) (*sq.Payment, error)
	RefundPayment(ctx context.Context, params square.RefundCreateParams) (*sq.PaymentRefund, error)
	LocationID() string
	NewIdempotencyKey(prefix string) string
}

type ledger interface {
	Record(ctx context.Context, tx *gorm.DB, input wallet.NewEntry) (*models.WalletTransaction, error)
}

type notifier interface {
	Notify(ctx context.Context, tx *gorm.DB, input notifications.NewNotification) error
}

// CreatePaymentInput captures a couple paying a deposit or balance with a
// tokenized card source.
type CreatePaymentInput struct {
	Actor          bookings.Actor
	BookingID      uuid.UUID
	Kind           enums.ReceiptKind
	SourceID       string
	IdempotencyKey string
}

// ConfirmedPayment describes a payment the provider has already captured,
// either synchronously or via webhook redelivery.
type ConfirmedPayment struct {
	BookingID         uuid.UUID
	Kind              enums.ReceiptKind
	AmountCentavos    int64
	ProviderPaymentID string
}

// RefundInput drives the admin resolution of a disputed booking.
type RefundInput struct {
	Actor     bookings.Actor
	BookingID uuid.UUID
	Reason    string
}

// PaymentResult pairs the receipt with the booking as it stands after the
// payment was absorbed.
type PaymentResult struct {
	Receipt *models.Receipt
	Booking *models.Booking
}

// Service charges cards through the provider and records the outcome. Every
// local write happens in one transaction: booking status, receipt and wallet
// ledger entry commit or roll back together.
type Service interface {
	CreatePayment(ctx context.Context, input CreatePaymentInput) (*PaymentResult, error)
	RecordConfirmedPayment(ctx context.Context, input ConfirmedPayment) (*models.Receipt, error)
	ListReceipts(ctx context.Context, actor bookings.Actor, bookingID uuid.UUID) ([]models.Receipt, error)
	Refund(ctx context.Context, input RefundInput) (*models.Booking, error)
}

type service struct {
	repo      Repository
	tx        txRunner
	lifecycle lifecycle
	gateway   gateway
	ledger    ledger
	notifier  notifier
}

// NewService wires the payments service with its collaborators.
func NewService(repo Repository, tx txRunner, lc lifecycle, gw gateway, ld ledger, n notifier) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payments service requires a repository")
	}
	if tx == nil {
		return nil, fmt.Errorf("payments service requires a transaction runner")
	}
	if lc == nil {
		return nil, fmt.Errorf("payments service requires the booking lifecycle")
	}
	if gw == nil {
		return nil, fmt.Errorf("payments service requires a payment gateway")
	}
	if ld == nil {
		return nil, fmt.Errorf("payments service requires the wallet ledger")
	}
	if n == nil {
		return nil, fmt.Errorf("payments service requires a notifier")
	}
	return &service{repo: repo, tx: tx, lifecycle: lc, gateway: gw, ledger: ld, notifier: n}, nil
}

// CreatePayment charges the card first, then records the confirmed payment.
// The provider call sits outside the transaction; the idempotency key ties
// retries to the same charge, and RecordConfirmedPayment absorbs redelivery.
func (s *service) CreatePayment(ctx context.Context, input CreatePaymentInput) (*PaymentResult, error) {
	if input.Actor.Role != enums.UserRoleCouple {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the couple can pay for a booking")
	}
	if !input.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment kind")
	}
	if strings.TrimSpace(input.SourceID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment source required")
	}

	detail, err := s.lifecycle.Get(ctx, input.Actor, input.BookingID)
	if err != nil {
		return nil, err
	}
	booking := &detail.Booking

	event := enums.BookingEventRecordBalance
	if input.Kind == enums.ReceiptKindDeposit {
		event = enums.BookingEventRecordDeposit
	}
	// Reject before money moves; the transition runs again under lock.
	if _, ok := bookings.Next(booking.Status, event); !ok {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("a %s payment is not allowed while the booking is %s", input.Kind, booking.Status))
	}

	amount, err := expectedAmount(booking, input.Kind)
	if err != nil {
		return nil, err
	}

	payment, err := s.gateway.CreatePayment(ctx, square.PaymentCreateParams{
		AmountCentavos: amount,
		Currency:       currency,
		LocationID:     s.gateway.LocationID(),
		SourceID:       input.SourceID,
		IdempotencyKey: input.IdempotencyKey,
		ReferenceID:    booking.ID.String(),
		Note:           fmt.Sprintf("%s for %s", input.Kind, booking.ServiceName),
	})
	if err != nil {
		return nil, err
	}
	if status := paymentStatus(payment); status != "COMPLETED" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("payment was not completed by the provider (status %s)", status))
	}

	receipt, err := s.RecordConfirmedPayment(ctx, ConfirmedPayment{
		BookingID:         booking.ID,
		Kind:              input.Kind,
		AmountCentavos:    amount,
		ProviderPaymentID: paymentID(payment),
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.FindBooking(ctx, booking.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload booking")
	}
	return &PaymentResult{Receipt: receipt, Booking: updated}, nil
}

// RecordConfirmedPayment makes a captured provider payment durable. It is
// idempotent on the provider payment id: the webhook path and the synchronous
// path can both deliver the same payment and only one receipt row exists.
func (s *service) RecordConfirmedPayment(ctx context.Context, input ConfirmedPayment) (*models.Receipt, error) {
	if strings.TrimSpace(input.ProviderPaymentID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "provider payment id required")
	}
	if !input.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment kind")
	}

	if existing, err := s.repo.FindByProviderPaymentID(ctx, input.ProviderPaymentID); err == nil {
		return existing, nil
	} else if err != gorm.ErrRecordNotFound {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up receipt")
	}

	var receipt *models.Receipt
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		booking, err := s.lifecycle.ApplyPayment(ctx, tx, bookings.PaymentApplication{
			BookingID:         input.BookingID,
			Kind:              input.Kind,
			AmountCentavos:    input.AmountCentavos,
			ProviderPaymentID: input.ProviderPaymentID,
		})
		if err != nil {
			if pkgerrors.CodeOf(err) == pkgerrors.CodeStateConflict {
				receipt, err = s.recordAfterConflict(ctx, tx, repo, input, err)
			}
			return err
		}

		created, err := s.writeReceiptAndLedger(ctx, tx, repo, booking, input)
		if err != nil {
			return err
		}
		receipt = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// recordAfterConflict handles the provider confirming a payment for a booking
// the couple already cancelled. The booking stays cancelled; the money is
// acknowledged with a receipt and a refund_due ledger entry so the vendor sees
// the obligation.
func (s *service) recordAfterConflict(ctx context.Context, tx *gorm.DB, repo Repository, input ConfirmedPayment, cause error) (*models.Receipt, error) {
	booking, err := repo.FindBooking(ctx, input.BookingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}
	if booking.Status != enums.BookingStatusCancelled {
		return nil, cause
	}

	receipt, err := s.createReceipt(ctx, repo, booking.ID, input)
	if err != nil {
		return nil, err
	}

	if _, err := s.ledger.Record(ctx, tx, wallet.NewEntry{
		VendorID:       booking.VendorID,
		BookingID:      booking.ID,
		Type:           enums.WalletEntryRefundDue,
		AmountCentavos: input.AmountCentavos,
		Metadata: map[string]any{
			"provider_payment_id": input.ProviderPaymentID,
			"receipt_number":      receipt.ReceiptNumber,
		},
	}); err != nil {
		return nil, err
	}

	err = s.notifier.Notify(ctx, tx, notifications.NewNotification{
		UserID:  booking.VendorID,
		Type:    enums.NotificationTypeRefundAlert,
		Title:   "Refund due",
		Message: fmt.Sprintf("A payment arrived for the cancelled booking %s and must be refunded.", booking.ServiceName),
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

func (s *service) writeReceiptAndLedger(ctx context.Context, tx *gorm.DB, repo Repository, booking *models.Booking, input ConfirmedPayment) (*models.Receipt, error) {
	receipt, err := s.createReceipt(ctx, repo, booking.ID, input)
	if err != nil {
		return nil, err
	}

	entryType := enums.WalletEntryBalanceReceived
	if input.Kind == enums.ReceiptKindDeposit {
		entryType = enums.WalletEntryDepositReceived
	}
	if _, err := s.ledger.Record(ctx, tx, wallet.NewEntry{
		VendorID:       booking.VendorID,
		BookingID:      booking.ID,
		Type:           entryType,
		AmountCentavos: input.AmountCentavos,
		Metadata: map[string]any{
			"provider_payment_id": input.ProviderPaymentID,
			"receipt_number":      receipt.ReceiptNumber,
		},
	}); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (s *service) createReceipt(ctx context.Context, repo Repository, bookingID uuid.UUID, input ConfirmedPayment) (*models.Receipt, error) {
	number, err := repo.NextReceiptNumber(ctx, time.Now().UTC())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "allocate receipt number")
	}

	receipt := &models.Receipt{
		BookingID:         bookingID,
		Kind:              input.Kind,
		ReceiptNumber:     number,
		AmountCentavos:    input.AmountCentavos,
		ProviderPaymentID: input.ProviderPaymentID,
	}
	if err := repo.Create(ctx, receipt); err != nil {
		// A concurrent delivery of the same provider payment won the race.
		if db.IsUniqueViolation(err, "idx_receipts_provider_payment_id") {
			return repo.FindByProviderPaymentID(ctx, input.ProviderPaymentID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create receipt")
	}
	return receipt, nil
}

func (s *service) ListReceipts(ctx context.Context, actor bookings.Actor, bookingID uuid.UUID) ([]models.Receipt, error) {
	// Get enforces that the actor is a party to the booking.
	if _, err := s.lifecycle.Get(ctx, actor, bookingID); err != nil {
		return nil, err
	}
	receipts, err := s.repo.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list receipts")
	}
	return receipts, nil
}

// Refund resolves a disputed booking: every captured payment is refunded at
// the provider, then the status change and the refund_issued ledger entry
// commit together.
func (s *service) Refund(ctx context.Context, input RefundInput) (*models.Booking, error) {
	if input.Actor.Role != enums.UserRoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only an administrator can issue a refund")
	}

	booking, err := s.repo.FindBooking(ctx, input.BookingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}
	if booking.Status != enums.BookingStatusDisputed {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only a disputed booking can be refunded")
	}
	if booking.TotalPaidCentavos <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "booking has no captured payments to refund")
	}

	receipts, err := s.repo.ListByBooking(ctx, booking.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list receipts")
	}

	refundIDs := make([]string, 0, len(receipts))
	for _, receipt := range receipts {
		refund, err := s.gateway.RefundPayment(ctx, square.RefundCreateParams{
			PaymentID:      receipt.ProviderPaymentID,
			AmountCentavos: receipt.AmountCentavos,
			Currency:       currency,
			Reason:         input.Reason,
			IdempotencyKey: s.gateway.NewIdempotencyKey("refund-" + receipt.ReceiptNumber),
		})
		if err != nil {
			return nil, err
		}
		if id := refund.GetID(); id != "" {
			refundIDs = append(refundIDs, id)
		}
	}

	var refunded *models.Booking
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		note := strings.TrimSpace(input.Reason)
		transition := bookings.TransitionInput{
			Actor:     input.Actor,
			BookingID: booking.ID,
			Event:     enums.BookingEventRefund,
		}
		if note != "" {
			transition.Note = &note
		}
		updated, err := s.lifecycle.ApplyEvent(ctx, tx, transition)
		if err != nil {
			return err
		}
		refunded = updated

		_, err = s.ledger.Record(ctx, tx, wallet.NewEntry{
			VendorID:       booking.VendorID,
			BookingID:      booking.ID,
			Type:           enums.WalletEntryRefundIssued,
			AmountCentavos: booking.TotalPaidCentavos,
			Metadata:       map[string]any{"provider_refund_ids": refundIDs},
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return refunded, nil
}

func expectedAmount(booking *models.Booking, kind enums.ReceiptKind) (int64, error) {
	switch kind {
	case enums.ReceiptKindDeposit:
		if booking.QuotedDepositCentavos == nil || *booking.QuotedDepositCentavos <= 0 {
			return 0, pkgerrors.New(pkgerrors.CodeStateConflict, "booking has no quoted deposit")
		}
		return *booking.QuotedDepositCentavos, nil
	case enums.ReceiptKindBalance:
		if booking.RemainingBalanceCentavos <= 0 {
			return 0, pkgerrors.New(pkgerrors.CodeStateConflict, "booking has no outstanding balance")
		}
		return booking.RemainingBalanceCentavos, nil
	}
	return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment kind")
}

func paymentID(payment *sq.Payment) string {
	if payment == nil || payment.GetID() == nil {
		return ""
	}
	return *payment.GetID()
}

func paymentStatus(payment *sq.Payment) string {
	if payment == nil || payment.GetStatus() == nil {
		return "UNKNOWN"
	}
	return *payment.GetStatus()
}
