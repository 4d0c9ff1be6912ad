package squarewebhook

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/weddingbazaar/wedding-bazaar-backend/internal/payments"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/subscriptions"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db/models"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/enums"
	pkgerrors "github.com/weddingbazaar/wedding-bazaar-backend/pkg/errors"
)

type paymentRecorder interface {
	RecordConfirmedPayment(ctx context.Context, input payments.ConfirmedPayment) (*models.Receipt, error)
}

type subscriptionSyncer interface {
	SyncFromProvider(ctx context.Context, input subscriptions.ProviderSync) error
}

// ServiceParams wires webhook handling dependencies.
type ServiceParams struct {
	Payments      paymentRecorder
	Subscriptions subscriptionSyncer
}

// Service routes verified Square events to the owning domain service.
type Service struct {
	payments      paymentRecorder
	subscriptions subscriptionSyncer
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Payments == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "payments service required")
	}
	if params.Subscriptions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "subscriptions service required")
	}
	return &Service{payments: params.Payments, subscriptions: params.Subscriptions}, nil
}

// Event is the envelope Square posts to the webhook endpoint.
type Event struct {
	EventID string    `json:"event_id"`
	Type    string    `json:"type"`
	Data    EventData `json:"data"`
}

// EventData carries the typed payload of an event.
type EventData struct {
	Type   string      `json:"type"`
	ID     string      `json:"id"`
	Object EventObject `json:"object"`
}

// EventObject holds whichever resource the event describes.
type EventObject struct {
	Payment      *PaymentPayload      `json:"payment,omitempty"`
	Subscription *SubscriptionPayload `json:"subscription,omitempty"`
}

// PaymentPayload is the subset of Square's payment object the handler reads.
type PaymentPayload struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	ReferenceID string `json:"reference_id"`
	Note        string `json:"note"`
	AmountMoney Money  `json:"amount_money"`
}

// Money mirrors Square's money shape; amounts arrive in the smallest unit.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// SubscriptionPayload is the subset of Square's subscription object the
// handler reads.
type SubscriptionPayload struct {
	ID                 string  `json:"id"`
	Status             string  `json:"status"`
	CanceledDate       *string `json:"canceled_date,omitempty"`
	ChargedThroughDate *string `json:"charged_through_date,omitempty"`
}

// HandleEvent processes one verified Square event. Events the platform does
// not care about are acknowledged without side effects.
func (s *Service) HandleEvent(ctx context.Context, event *Event) error {
	if event == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "square event required")
	}

	switch strings.ToLower(event.Type) {
	case "payment.created", "payment.updated":
		return s.handlePayment(ctx, event.Data.Object.Payment)
	case "subscription.created", "subscription.updated", "subscription.canceled", "invoice.paid", "invoice.payment_failed":
		return s.handleSubscription(ctx, event.Data.Object.Subscription)
	default:
		return nil
	}
}

func (s *Service) handlePayment(ctx context.Context, payment *PaymentPayload) error {
	if payment == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment payload missing")
	}
	// Only terminal success matters; pending and failed updates carry no
	// booking consequence.
	if !strings.EqualFold(payment.Status, "COMPLETED") {
		return nil
	}
	if payment.ID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment id missing")
	}

	bookingID, err := uuid.Parse(strings.TrimSpace(payment.ReferenceID))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "payment reference is not a booking id")
	}

	kind, err := receiptKindFromNote(payment.Note)
	if err != nil {
		return err
	}

	_, err = s.payments.RecordConfirmedPayment(ctx, payments.ConfirmedPayment{
		BookingID:         bookingID,
		Kind:              kind,
		AmountCentavos:    payment.AmountMoney.Amount,
		ProviderPaymentID: payment.ID,
	})
	return err
}

// receiptKindFromNote recovers the payment kind the charge was created with.
// Notes are written as "<kind> for <service>".
func receiptKindFromNote(note string) (enums.ReceiptKind, error) {
	token := strings.TrimSpace(note)
	if idx := strings.IndexByte(token, ' '); idx > 0 {
		token = token[:idx]
	}
	kind, err := enums.ParseReceiptKind(token)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "payment note does not carry a kind")
	}
	return kind, nil
}

func (s *Service) handleSubscription(ctx context.Context, subscription *SubscriptionPayload) error {
	if subscription == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "subscription payload missing")
	}
	if subscription.ID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "subscription id missing")
	}

	sync := subscriptions.ProviderSync{
		SquareSubscriptionID: subscription.ID,
		Status:               subscription.Status,
		CancelAtPeriodEnd:    subscription.CanceledDate != nil && *subscription.CanceledDate != "",
	}
	if subscription.ChargedThroughDate != nil && *subscription.ChargedThroughDate != "" {
		periodEnd, err := time.Parse("2006-01-02", *subscription.ChargedThroughDate)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid charged_through_date")
		}
		sync.CurrentPeriodEnd = &periodEnd
	}

	return s.subscriptions.SyncFromProvider(ctx, sync)
}
