// internal/domain/subscription/service.go
package subscription

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/your-org/workshop-backend/internal/config"
	"github.com/your-org/workshop-backend/internal/infrastructure/database/redis"
)

// Service handles plan and subscription business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
	cache  *redis.Client
}

// NewService creates a new subscription service
func NewService(db *gorm.DB, cfg *config.Config, cache *redis.Client) *Service {
	return &Service{
		db:     db,
		config: cfg,
		cache:  cache,
	}
}

// ExtendRequest represents an admin payment registration
type ExtendRequest struct {
	PaidUntil time.Time `json:"paid_until" binding:"required"`
}

// ChangePlanRequest switches a workshop to another plan
type ChangePlanRequest struct {
	PlanSlug string `json:"plan_slug" binding:"required"`
}

// StartTrial creates the trial subscription for a new workshop
func (s *Service) StartTrial(workshopID uint) (*Subscription, error) {
	plan, err := s.GetPlanBySlug(s.config.Subscription.DefaultPlanSlug)
	if err != nil {
		return nil, err
	}

	sub := &Subscription{
		WorkshopID:  workshopID,
		PlanID:      plan.ID,
		TrialEndsAt: time.Now().AddDate(0, 0, s.config.Subscription.TrialDays),
	}
	if err := s.db.Create(sub).Error; err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return sub, nil
}

// GetSubscription retrieves a workshop's subscription with its plan
func (s *Service) GetSubscription(workshopID uint) (*Subscription, error) {
	var sub Subscription
	err := s.db.Preload("Plan").Where("workshop_id = ?", workshopID).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("subscription not found")
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return &sub, nil
}

// GetStatus resolves the workshop's status, serving from cache when fresh
func (s *Service) GetStatus(workshopID uint) (SubscriptionStatus, error) {
	ctx := context.Background()
	key := statusCacheKey(workshopID)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err == nil && cached != "" {
			return SubscriptionStatus(cached), nil
		}
		if err != nil && !redis.IsNil(err) {
			log.Printf("⚠️ Subscription status cache read failed: %v", err)
		}
	}

	sub, err := s.GetSubscription(workshopID)
	if err != nil {
		return "", err
	}
	status := sub.ResolveStatus(time.Now(), s.config.Subscription.GraceDays)

	if s.cache != nil {
		// A stale entry only delays a block by the TTL, acceptable for this check.
		_ = s.cache.Set(ctx, key, string(status), s.config.Subscription.StatusCacheTTL)
	}
	return status, nil
}

// Extend registers a payment and pushes the paid-until date forward
func (s *Service) Extend(workshopID uint, req *ExtendRequest) (*Subscription, error) {
	sub, err := s.GetSubscription(workshopID)
	if err != nil {
		return nil, err
	}
	if !req.PaidUntil.After(time.Now()) {
		return nil, errors.New("paid_until must be in the future")
	}

	sub.PaidUntil = &req.PaidUntil
	sub.CanceledAt = nil
	if err := s.db.Save(sub).Error; err != nil {
		return nil, fmt.Errorf("failed to extend subscription: %w", err)
	}

	s.invalidateStatus(workshopID)
	return sub, nil
}

// ChangePlan switches the workshop to another active plan
func (s *Service) ChangePlan(workshopID uint, req *ChangePlanRequest) (*Subscription, error) {
	plan, err := s.GetPlanBySlug(req.PlanSlug)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, fmt.Errorf("plan %s is not available", plan.Slug)
	}

	sub, err := s.GetSubscription(workshopID)
	if err != nil {
		return nil, err
	}

	sub.PlanID = plan.ID
	if err := s.db.Save(sub).Error; err != nil {
		return nil, fmt.Errorf("failed to change plan: %w", err)
	}

	s.invalidateStatus(workshopID)
	return sub, nil
}

// Cancel marks the subscription as canceled
func (s *Service) Cancel(workshopID uint) (*Subscription, error) {
	sub, err := s.GetSubscription(workshopID)
	if err != nil {
		return nil, err
	}
	if sub.CanceledAt != nil {
		return nil, errors.New("subscription is already canceled")
	}

	now := time.Now()
	sub.CanceledAt = &now
	if err := s.db.Save(sub).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel subscription: %w", err)
	}

	s.invalidateStatus(workshopID)
	return sub, nil
}

// ListPlans returns the active plans. Plans only change on deploys, so the
// listing is cached for an hour.
func (s *Service) ListPlans() ([]Plan, error) {
	ctx := context.Background()

	if s.cache != nil {
		var cached []Plan
		if err := s.cache.GetJSON(ctx, plansCacheKey, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	var plans []Plan
	if err := s.db.Where("is_active = ?", true).Order("monthly_price ASC").Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	if s.cache != nil && len(plans) > 0 {
		_ = s.cache.SetJSON(ctx, plansCacheKey, plans, time.Hour)
	}
	return plans, nil
}

// GetPlanBySlug looks up a plan by its slug
func (s *Service) GetPlanBySlug(slug string) (*Plan, error) {
	var plan Plan
	err := s.db.Where("slug = ?", slug).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("plan not found: %s", slug)
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return &plan, nil
}

func (s *Service) invalidateStatus(workshopID uint) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(context.Background(), statusCacheKey(workshopID))
}

const plansCacheKey = "subscription:plans"

func statusCacheKey(workshopID uint) string {
	return fmt.Sprintf("subscription:status:%d", workshopID)
}
