package subscriptions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	sq "github.com/square/square-go-sdk"
	"gorm.io/gorm"

	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db/models"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/enums"
	pkgerrors "github.com/weddingbazaar/wedding-bazaar-backend/pkg/errors"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/square"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gateway interface {
	CreateSubscription(ctx context.Context, params square.SubscriptionCreateParams) (*sq.Subscription, error)
	CancelSubscription(ctx context.Context, subscriptionID string) (*sq.Subscription, error)
	LocationID() string
}

// SubscribeInput starts paid billing for a vendor.
type SubscribeInput struct {
	VendorID   uuid.UUID
	Plan       enums.SubscriptionPlan
	CustomerID string
	CardID     string
}

// ProviderSync carries the subscription state extracted from a provider
// webhook event.
type ProviderSync struct {
	SquareSubscriptionID string
	Status               string
	CurrentPeriodEnd     *time.Time
	CancelAtPeriodEnd    bool
}

// VendorSubscription pairs the subscription row with its plan limits. Vendors
// without a row are reported on the free plan.
type VendorSubscription struct {
	Subscription *models.Subscription
	Plan         models.Plan
}

// Service manages vendor plan tiers and their billing lifecycle. It also
// backs the catalog's plan limiter.
type Service interface {
	Plans(ctx context.Context) ([]models.Plan, error)
	Current(ctx context.Context, vendorID uuid.UUID) (*VendorSubscription, error)
	Subscribe(ctx context.Context, input SubscribeInput) (*models.Subscription, error)
	Cancel(ctx context.Context, vendorID uuid.UUID) (*models.Subscription, error)
	SyncFromProvider(ctx context.Context, input ProviderSync) error

	// MaxActiveServices implements catalog.PlanLimiter. Anything but an
	// active subscription counts as the free tier.
	MaxActiveServices(ctx context.Context, vendorID uuid.UUID) (int, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	gateway gateway
}

// NewService wires the subscriptions service with its collaborators.
func NewService(repo Repository, tx txRunner, gw gateway) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("subscriptions service requires a repository")
	}
	if tx == nil {
		return nil, fmt.Errorf("subscriptions service requires a transaction runner")
	}
	if gw == nil {
		return nil, fmt.Errorf("subscriptions service requires a billing gateway")
	}
	return &service{repo: repo, tx: tx, gateway: gw}, nil
}

func (s *service) Plans(ctx context.Context) ([]models.Plan, error) {
	plans, err := s.repo.ListPlans(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list plans")
	}
	return plans, nil
}

func (s *service) Current(ctx context.Context, vendorID uuid.UUID) (*VendorSubscription, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "vendor identity missing")
	}

	subscription, err := s.repo.FindByVendor(ctx, vendorID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load subscription")
	}

	code := enums.SubscriptionPlanFree
	if subscription != nil && subscription.Status == enums.SubscriptionStatusActive {
		code = subscription.Plan
	}
	plan, err := s.repo.FindPlan(ctx, code)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load plan")
	}
	return &VendorSubscription{Subscription: subscription, Plan: *plan}, nil
}

func (s *service) Subscribe(ctx context.Context, input SubscribeInput) (*models.Subscription, error) {
	if input.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "vendor identity missing")
	}
	if !input.Plan.IsValid() || input.Plan == enums.SubscriptionPlanFree {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a paid plan is required")
	}
	if strings.TrimSpace(input.CustomerID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "billing customer id required")
	}
	if strings.TrimSpace(input.CardID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "card id required")
	}

	plan, err := s.repo.FindPlan(ctx, input.Plan)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "plan not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load plan")
	}
	if plan.SquarePlanID == nil || strings.TrimSpace(*plan.SquarePlanID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "plan is not configured for billing")
	}

	existing, err := s.repo.FindByVendor(ctx, input.VendorID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load subscription")
	}
	if existing != nil && existing.Status == enums.SubscriptionStatusActive && existing.SquareSubscriptionID != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "an active subscription already exists")
	}

	created, err := s.gateway.CreateSubscription(ctx, square.SubscriptionCreateParams{
		LocationID:      s.gateway.LocationID(),
		PlanVariationID: *plan.SquarePlanID,
		CustomerID:      input.CustomerID,
		CardID:          input.CardID,
	})
	if err != nil {
		return nil, err
	}
	providerID := created.GetID()
	if providerID == nil || *providerID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "provider returned a subscription without an id")
	}

	var subscription *models.Subscription
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if existing != nil {
			updates := map[string]any{
				"plan":                   input.Plan,
				"status":                 enums.SubscriptionStatusActive,
				"square_subscription_id": *providerID,
				"cancel_at_period_end":   false,
				"canceled_at":            nil,
			}
			if err := repo.Update(ctx, existing.ID, updates); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update subscription")
			}
			existing.Plan = input.Plan
			existing.Status = enums.SubscriptionStatusActive
			existing.SquareSubscriptionID = providerID
			existing.CancelAtPeriodEnd = false
			existing.CanceledAt = nil
			subscription = existing
			return nil
		}

		subscription = &models.Subscription{
			VendorID:             input.VendorID,
			Plan:                 input.Plan,
			Status:               enums.SubscriptionStatusActive,
			SquareSubscriptionID: providerID,
		}
		if err := repo.Create(ctx, subscription); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create subscription")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return subscription, nil
}

// Cancel asks the provider to stop billing. The row keeps its plan until the
// provider confirms via webhook; cancel_at_period_end marks the intent.
func (s *service) Cancel(ctx context.Context, vendorID uuid.UUID) (*models.Subscription, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "vendor identity missing")
	}

	subscription, err := s.repo.FindByVendor(ctx, vendorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no subscription to cancel")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load subscription")
	}
	if subscription.SquareSubscriptionID == nil || subscription.Status != enums.SubscriptionStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "subscription is not active")
	}

	if _, err := s.gateway.CancelSubscription(ctx, *subscription.SquareSubscriptionID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updates := map[string]any{
		"cancel_at_period_end": true,
		"canceled_at":          now,
	}
	if err := s.repo.Update(ctx, subscription.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update subscription")
	}
	subscription.CancelAtPeriodEnd = true
	subscription.CanceledAt = &now
	return subscription, nil
}

// SyncFromProvider applies a webhook snapshot to the local row. Unknown
// subscriptions are ignored; the provider may emit events for sandboxes or
// deleted vendors.
func (s *service) SyncFromProvider(ctx context.Context, input ProviderSync) error {
	if strings.TrimSpace(input.SquareSubscriptionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "provider subscription id required")
	}

	subscription, err := s.repo.FindBySquareID(ctx, input.SquareSubscriptionID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load subscription")
	}

	status := mapProviderStatus(input.Status)
	updates := map[string]any{
		"status":               status,
		"cancel_at_period_end": input.CancelAtPeriodEnd,
	}
	if input.CurrentPeriodEnd != nil {
		updates["current_period_end"] = *input.CurrentPeriodEnd
	}
	if status == enums.SubscriptionStatusCanceled && subscription.CanceledAt == nil {
		updates["canceled_at"] = time.Now().UTC()
	}

	if err := s.repo.Update(ctx, subscription.ID, updates); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update subscription")
	}
	return nil
}

func (s *service) MaxActiveServices(ctx context.Context, vendorID uuid.UUID) (int, error) {
	current, err := s.Current(ctx, vendorID)
	if err != nil {
		return 0, err
	}
	return current.Plan.MaxActiveServices, nil
}

func mapProviderStatus(raw string) enums.SubscriptionStatus {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "ACTIVE":
		return enums.SubscriptionStatusActive
	case "CANCELED", "DEACTIVATED":
		return enums.SubscriptionStatusCanceled
	case "PAUSED", "PAST_DUE":
		return enums.SubscriptionStatusPastDue
	default:
		return enums.SubscriptionStatusUnpaid
	}
}
