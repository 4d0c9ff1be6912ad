package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/enums"
)

// Plan is a row of the subscription plan catalog.
type Plan struct {
	Code              enums.SubscriptionPlan `gorm:"column:code;type:subscription_plan;primaryKey"`
	Name              string                 `gorm:"type:text;not null"`
	MonthlyPrice      decimal.Decimal        `gorm:"column:monthly_price;type:numeric(10,2);not null"`
	MaxActiveServices int                    `gorm:"column:max_active_services;not null"`
	SquarePlanID      *string                `gorm:"column:square_plan_id"`
	CreatedAt         time.Time              `gorm:"column:created_at;autoCreateTime"`
}

// Subscription persists a vendor's plan state, synced from the billing
// provider's webhook events.
type Subscription struct {
	ID                   uuid.UUID                `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID             uuid.UUID                `gorm:"column:vendor_id;type:uuid;not null;index"`
	Plan                 enums.SubscriptionPlan   `gorm:"column:plan;type:subscription_plan;not null;default:'free'"`
	Status               enums.SubscriptionStatus `gorm:"column:status;type:subscription_status;not null;default:'active'"`
	SquareSubscriptionID *string                  `gorm:"column:square_subscription_id;uniqueIndex"`
	CurrentPeriodEnd     *time.Time               `gorm:"column:current_period_end"`
	CancelAtPeriodEnd    bool                     `gorm:"column:cancel_at_period_end;not null;default:false"`
	CanceledAt           *time.Time               `gorm:"column:canceled_at"`
	CreatedAt            time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
