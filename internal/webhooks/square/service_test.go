package squarewebhook

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weddingbazaar/wedding-bazaar-backend/internal/payments"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/subscriptions"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db/models"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/enums"
	pkgerrors "github.com/weddingbazaar/wedding-bazaar-backend/pkg/errors"
)

type fakeRecorder struct {
	recorded []payments.ConfirmedPayment
	err      error
}

func (f *fakeRecorder) RecordConfirmedPayment(ctx context.Context, input payments.ConfirmedPayment) (*models.Receipt, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.recorded = append(f.recorded, input)
	return &models.Receipt{ID: uuid.New(), BookingID: input.BookingID}, nil
}

type fakeSyncer struct {
	synced []subscriptions.ProviderSync
	err    error
}

func (f *fakeSyncer) SyncFromProvider(ctx context.Context, input subscriptions.ProviderSync) error {
	if f.err != nil {
		return f.err
	}
	f.synced = append(f.synced, input)
	return nil
}

func newWebhookService(t *testing.T) (*Service, *fakeRecorder, *fakeSyncer) {
	t.Helper()
	recorder := &fakeRecorder{}
	syncer := &fakeSyncer{}
	svc, err := NewService(ServiceParams{Payments: recorder, Subscriptions: syncer})
	require.NoError(t, err)
	return svc, recorder, syncer
}

func TestHandleCompletedPayment(t *testing.T) {
	svc, recorder, _ := newWebhookService(t)
	bookingID := uuid.New()

	err := svc.HandleEvent(context.Background(), &Event{
		EventID: "evt-1",
		Type:    "payment.updated",
		Data: EventData{Object: EventObject{Payment: &PaymentPayload{
			ID:          "sq-pay-1",
			Status:      "COMPLETED",
			ReferenceID: bookingID.String(),
			Note:        "deposit for Full-Day Photography",
			AmountMoney: Money{Amount: 1440000, Currency: "PHP"},
		}}},
	})
	require.NoError(t, err)
	require.Len(t, recorder.recorded, 1)
	recorded := recorder.recorded[0]
	assert.Equal(t, bookingID, recorded.BookingID)
	assert.Equal(t, enums.ReceiptKindDeposit, recorded.Kind)
	assert.Equal(t, int64(1440000), recorded.AmountCentavos)
	assert.Equal(t, "sq-pay-1", recorded.ProviderPaymentID)
}

func TestHandlePaymentIgnoresNonTerminalStatus(t *testing.T) {
	svc, recorder, _ := newWebhookService(t)

	err := svc.HandleEvent(context.Background(), &Event{
		Type: "payment.updated",
		Data: EventData{Object: EventObject{Payment: &PaymentPayload{
			ID:     "sq-pay-2",
			Status: "PENDING",
		}}},
	})
	require.NoError(t, err)
	assert.Empty(t, recorder.recorded)
}

func TestHandlePaymentRejectsUnknownReference(t *testing.T) {
	svc, _, _ := newWebhookService(t)

	err := svc.HandleEvent(context.Background(), &Event{
		Type: "payment.updated",
		Data: EventData{Object: EventObject{Payment: &PaymentPayload{
			ID:          "sq-pay-3",
			Status:      "COMPLETED",
			ReferenceID: "not-a-uuid",
			Note:        "deposit for something",
		}}},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestHandleSubscriptionEvent(t *testing.T) {
	svc, _, syncer := newWebhookService(t)
	chargedThrough := "2026-09-30"
	canceled := "2026-09-01"

	err := svc.HandleEvent(context.Background(), &Event{
		Type: "subscription.updated",
		Data: EventData{Object: EventObject{Subscription: &SubscriptionPayload{
			ID:                 "sq-sub-1",
			Status:             "ACTIVE",
			CanceledDate:       &canceled,
			ChargedThroughDate: &chargedThrough,
		}}},
	})
	require.NoError(t, err)
	require.Len(t, syncer.synced, 1)
	synced := syncer.synced[0]
	assert.Equal(t, "sq-sub-1", synced.SquareSubscriptionID)
	assert.True(t, synced.CancelAtPeriodEnd)
	require.NotNil(t, synced.CurrentPeriodEnd)
	assert.Equal(t, time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC), *synced.CurrentPeriodEnd)
}

func TestHandleEventIgnoresUnknownTypes(t *testing.T) {
	svc, recorder, syncer := newWebhookService(t)

	err := svc.HandleEvent(context.Background(), &Event{Type: "catalog.version.updated"})
	require.NoError(t, err)
	assert.Empty(t, recorder.recorded)
	assert.Empty(t, syncer.synced)
}
