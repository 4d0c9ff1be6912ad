package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/weddingbazaar/wedding-bazaar-backend/internal/bookings"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/payments"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db/models"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/enums"
)

type testPaymentsService struct {
	createFn func(ctx context.Context, input payments.CreatePaymentInput) (*payments.PaymentResult, error)
	refundFn func(ctx context.Context, input payments.RefundInput) (*models.Booking, error)
	listFn   func(ctx context.Context, actor bookings.Actor, bookingID uuid.UUID) ([]models.Receipt, error)
}

func (s *testPaymentsService) CreatePayment(ctx context.Context, input payments.CreatePaymentInput) (*payments.PaymentResult, error) {
	if s.createFn != nil {
		return s.createFn(ctx, input)
	}
	return &payments.PaymentResult{}, nil
}

func (s *testPaymentsService) RecordConfirmedPayment(ctx context.Context, input payments.ConfirmedPayment) (*models.Receipt, error) {
	return nil, nil
}

func (s *testPaymentsService) ListReceipts(ctx context.Context, actor bookings.Actor, bookingID uuid.UUID) ([]models.Receipt, error) {
	if s.listFn != nil {
		return s.listFn(ctx, actor, bookingID)
	}
	return nil, nil
}

func (s *testPaymentsService) Refund(ctx context.Context, input payments.RefundInput) (*models.Booking, error) {
	if s.refundFn != nil {
		return s.refundFn(ctx, input)
	}
	return &models.Booking{ID: input.BookingID}, nil
}

func TestCreatePaymentForwardsKindAndSource(t *testing.T) {
	coupleID := uuid.New()
	bookingID := uuid.New()

	var captured payments.CreatePaymentInput
	svc := &testPaymentsService{
		createFn: func(ctx context.Context, input payments.CreatePaymentInput) (*payments.PaymentResult, error) {
			captured = input
			return &payments.PaymentResult{
				Receipt: &models.Receipt{ID: uuid.New(), BookingID: input.BookingID},
				Booking: &models.Booking{ID: input.BookingID},
			}, nil
		},
	}

	body := `{"kind":"deposit","source_id":"cnon:card-nonce","idempotency_key":"key-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/"+bookingID.String()+"/payments", strings.NewReader(body))
	req = asCouple(t, req, coupleID)
	req = addRouteParam(req, "bookingID", bookingID.String())

	resp := httptest.NewRecorder()
	CreatePayment(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if captured.Kind != enums.ReceiptKindDeposit {
		t.Fatalf("unexpected kind %s", captured.Kind)
	}
	if captured.SourceID != "cnon:card-nonce" {
		t.Fatalf("unexpected source %s", captured.SourceID)
	}
	if captured.IdempotencyKey != "key-1" {
		t.Fatalf("unexpected idempotency key %s", captured.IdempotencyKey)
	}
}

func TestCreatePaymentRejectsUnknownKind(t *testing.T) {
	bookingID := uuid.New()
	body := `{"kind":"tip","source_id":"cnon:card-nonce"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/"+bookingID.String()+"/payments", strings.NewReader(body))
	req = asCouple(t, req, uuid.New())
	req = addRouteParam(req, "bookingID", bookingID.String())

	resp := httptest.NewRecorder()
	CreatePayment(&testPaymentsService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminRefundRequiresReason(t *testing.T) {
	bookingID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/bookings/"+bookingID.String()+"/refund", strings.NewReader(`{}`))
	ctxReq := asCouple(t, req, uuid.New())
	ctxReq = addRouteParam(ctxReq, "bookingID", bookingID.String())

	resp := httptest.NewRecorder()
	AdminRefundBooking(&testPaymentsService{}, testLogger())(resp, ctxReq)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
