package models

import (
	"time"

	"github.com/google/uuid"
)

// Vendor is the business-facing profile of a vendor user. Its primary key IS
// the owning user's id; there is deliberately no second identifier column.
// LegacyRef only exists so requests carrying historical VEN-XXXXX references
// can still be resolved to the canonical id.
type Vendor struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	User         *User      `gorm:"foreignKey:ID;constraint:OnDelete:CASCADE"`
	LegacyRef    *string    `gorm:"column:legacy_ref;uniqueIndex"`
	BusinessName string     `gorm:"column:business_name;not null"`
	CategoryID   *uuid.UUID `gorm:"column:category_id;type:uuid"`
	Description  *string    `gorm:"column:description"`
	Location     *string    `gorm:"column:location"`
	RatingSum    int64      `gorm:"column:rating_sum;not null;default:0"`
	RatingCount  int64      `gorm:"column:rating_count;not null;default:0"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
