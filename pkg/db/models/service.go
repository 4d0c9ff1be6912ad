package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Service is a vendor's offering. VendorID carries a real foreign key to the
// vendors table from creation time.
type Service struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID      uuid.UUID      `gorm:"column:vendor_id;type:uuid;not null;index"`
	Vendor        *Vendor        `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE"`
	CategoryID    uuid.UUID      `gorm:"column:category_id;type:uuid;not null"`
	Name          string         `gorm:"type:text;not null"`
	Description   *string        `gorm:"type:text"`
	PriceCentavos int64          `gorm:"column:price_centavos;not null"`
	Images        pq.StringArray `gorm:"column:images;type:text[]"`
	Active        bool           `gorm:"column:active;not null;default:true"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
