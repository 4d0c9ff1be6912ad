package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/enums"
)

// Receipt is an immutable record of a single confirmed payment event. The
// unique ProviderPaymentID column is the idempotency key: a second
// confirmation for the same provider payment can never create a second row.
type Receipt struct {
	ID                uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	BookingID         uuid.UUID         `gorm:"column:booking_id;type:uuid;not null;index"`
	Kind              enums.ReceiptKind `gorm:"column:kind;type:receipt_kind;not null"`
	ReceiptNumber     string            `gorm:"column:receipt_number;not null;uniqueIndex"`
	AmountCentavos    int64             `gorm:"column:amount_centavos;not null"`
	ProviderPaymentID string            `gorm:"column:provider_payment_id;not null;uniqueIndex"`
	CreatedAt         time.Time         `gorm:"column:created_at;autoCreateTime"`
}
