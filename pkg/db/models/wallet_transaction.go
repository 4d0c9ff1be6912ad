package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/enums"
)

// WalletTransaction records an immutable money lifecycle event on a vendor's
// wallet, written in the same transaction as the booking state change that
// caused it.
type WalletTransaction struct {
	ID             uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID       uuid.UUID             `gorm:"column:vendor_id;type:uuid;not null;index"`
	BookingID      uuid.UUID             `gorm:"column:booking_id;type:uuid;not null;index"`
	Type           enums.WalletEntryType `gorm:"column:type;type:wallet_entry_type;not null"`
	AmountCentavos int64                 `gorm:"column:amount_centavos;not null"`
	Metadata       json.RawMessage       `gorm:"column:metadata;type:jsonb"`
	CreatedAt      time.Time             `gorm:"column:created_at;autoCreateTime"`
}
