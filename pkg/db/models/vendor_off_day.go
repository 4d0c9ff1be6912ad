package models

import (
	"time"

	"github.com/google/uuid"
)

// VendorOffDay is a vendor-declared unavailable date. The (vendor_id,
// off_date) pair is unique; calendar writes serialize on the vendor row.
type VendorOffDay struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID  uuid.UUID `gorm:"column:vendor_id;type:uuid;not null;uniqueIndex:idx_vendor_off_date"`
	OffDate   time.Time `gorm:"column:off_date;type:date;not null;uniqueIndex:idx_vendor_off_date"`
	Reason    *string   `gorm:"column:reason"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
