package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a vendor service category (photography, catering, venue, ...).
type Category struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string          `gorm:"type:text;not null"`
	Slug      string          `gorm:"type:text;not null;uniqueIndex"`
	SortOrder int             `gorm:"column:sort_order;not null;default:0"`
	Fields    []CategoryField `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// CategoryField describes a category-specific intake field shown on the
// booking request form.
type CategoryField struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID uuid.UUID `gorm:"column:category_id;type:uuid;not null;index"`
	Name       string    `gorm:"type:text;not null"`
	Label      string    `gorm:"type:text;not null"`
	FieldType  string    `gorm:"column:field_type;type:text;not null;default:'text'"`
	Required   bool      `gorm:"column:required;not null;default:false"`
	SortOrder  int       `gorm:"column:sort_order;not null;default:0"`
}
