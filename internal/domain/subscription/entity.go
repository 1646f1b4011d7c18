// internal/domain/subscription/entity.go
package subscription

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SubscriptionStatus is the resolved access state of a workshop
type SubscriptionStatus string

const (
	StatusTrialing SubscriptionStatus = "trialing"
	StatusActive   SubscriptionStatus = "active"
	StatusPastDue  SubscriptionStatus = "past_due"
	StatusBlocked  SubscriptionStatus = "blocked"
	StatusCanceled SubscriptionStatus = "canceled"
)

// Plan represents a billing plan a workshop subscribes to
type Plan struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Slug         string          `gorm:"uniqueIndex;not null;size:50" json:"slug"`
	Name         string          `gorm:"not null;size:100" json:"name"`
	Description  string          `gorm:"type:text" json:"description"`
	MonthlyPrice decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"monthly_price"`
	MaxUsers     int             `gorm:"default:0" json:"max_users"` // 0 means unlimited
	IsActive     bool            `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Subscription binds a workshop to a plan
type Subscription struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	WorkshopID  uint           `gorm:"uniqueIndex;not null" json:"workshop_id"`
	PlanID      uint           `gorm:"not null;index" json:"plan_id"`
	TrialEndsAt time.Time      `gorm:"not null" json:"trial_ends_at"`
	PaidUntil   *time.Time     `json:"paid_until"`
	CanceledAt  *time.Time     `json:"canceled_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Plan Plan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}

// TableName overrides
func (Plan) TableName() string         { return "plans" }
func (Subscription) TableName() string { return "subscriptions" }

// ResolveStatus derives the access state from the subscription dates.
// A paid period wins over the trial. A lapsed payment gets graceDays of
// past_due before the workshop is blocked.
func (s *Subscription) ResolveStatus(now time.Time, graceDays int) SubscriptionStatus {
	if s.CanceledAt != nil && now.After(*s.CanceledAt) {
		return StatusCanceled
	}
	if s.PaidUntil != nil {
		if now.Before(*s.PaidUntil) {
			return StatusActive
		}
		grace := s.PaidUntil.AddDate(0, 0, graceDays)
		if now.Before(grace) {
			return StatusPastDue
		}
		return StatusBlocked
	}
	if now.Before(s.TrialEndsAt) {
		return StatusTrialing
	}
	return StatusBlocked
}

// AllowsAccess reports whether the workshop may use the system
func (st SubscriptionStatus) AllowsAccess() bool {
	return st == StatusTrialing || st == StatusActive || st == StatusPastDue
}
