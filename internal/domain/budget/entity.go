// internal/domain/budget/entity.go
package budget

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Status represents the budget lifecycle state
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

// Budget represents a repair quote presented to a client
type Budget struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	WorkshopID   uint            `gorm:"not null;index" json:"workshop_id"`
	Number       string          `gorm:"uniqueIndex;not null;size:50" json:"number"`
	ClientID     uint            `gorm:"not null;index" json:"client_id"`
	VehicleID    *uint           `gorm:"index" json:"vehicle_id"`
	Status       Status          `gorm:"not null;size:20;default:'pending'" json:"status"`
	Description  string          `gorm:"type:text" json:"description"`
	LaborAmount  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"labor_amount"`
	PartsAmount  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"parts_amount"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount_amount"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	ValidUntil   *time.Time      `json:"valid_until"`
	ApprovedAt   *time.Time      `json:"approved_at"`
	RejectedAt   *time.Time      `json:"rejected_at"`
	CreatedBy    uint            `gorm:"index" json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Items []BudgetItem `gorm:"foreignKey:BudgetID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items,omitempty"`
}

// BudgetItem is one catalog item (part or labor) quoted on a budget
type BudgetItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	BudgetID  uint            `gorm:"not null;index" json:"budget_id"`
	ItemID    uint            `gorm:"not null;index" json:"item_id"`
	ItemKind  string          `gorm:"size:20" json:"item_kind"` // product or service
	Name      string          `gorm:"not null;size:255" json:"name"`
	Quantity  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_price"`
	Total     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName overrides
func (Budget) TableName() string     { return "budgets" }
func (BudgetItem) TableName() string { return "budget_items" }

// CanTransitionTo reports whether a status change is allowed
func (b *Budget) CanTransitionTo(next Status) bool {
	if b.Status == StatusPending {
		return next == StatusApproved || next == StatusRejected || next == StatusExpired
	}
	return false
}

// IsExpired reports whether the budget validity has lapsed
func (b *Budget) IsExpired() bool {
	return b.ValidUntil != nil && time.Now().After(*b.ValidUntil)
}
