// internal/domain/serviceorder/entity.go
package serviceorder

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Status represents the service order lifecycle state
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// ServiceOrder represents a repair job on a client's vehicle
type ServiceOrder struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	WorkshopID  uint            `gorm:"not null;index" json:"workshop_id"`
	Number      string          `gorm:"uniqueIndex;not null;size:50" json:"number"`
	ClientID    uint            `gorm:"not null;index" json:"client_id"`
	VehicleID   *uint           `gorm:"index" json:"vehicle_id"`
	BudgetID    *uint           `gorm:"index" json:"budget_id"` // set when created from an approved budget
	MechanicID  *uint           `gorm:"index" json:"mechanic_id"`
	Status      Status          `gorm:"not null;size:20;default:'open'" json:"status"`
	Description string          `gorm:"type:text" json:"description"`
	Diagnosis   string          `gorm:"type:text" json:"diagnosis"`
	LaborAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"labor_amount"`
	PartsAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"parts_amount"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount_amount"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	StartedAt   *time.Time      `json:"started_at"`
	FinishedAt  *time.Time      `json:"finished_at"`
	DeliveredAt *time.Time      `json:"delivered_at"`
	CreatedBy   uint            `gorm:"index" json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items,omitempty"`
}

// OrderItem is one catalog item (part or labor) applied on a service order
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ItemID    uint            `gorm:"not null;index" json:"item_id"`
	ItemKind  string          `gorm:"size:20" json:"item_kind"`
	Name      string          `gorm:"not null;size:255" json:"name"`
	Quantity  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_price"`
	Total     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName overrides
func (ServiceOrder) TableName() string { return "service_orders" }
func (OrderItem) TableName() string    { return "service_order_items" }

// CanTransitionTo reports whether a status change is allowed
func (o *ServiceOrder) CanTransitionTo(next Status) bool {
	switch o.Status {
	case StatusOpen:
		return next == StatusInProgress || next == StatusCancelled
	case StatusInProgress:
		return next == StatusFinished || next == StatusCancelled
	case StatusFinished:
		return next == StatusDelivered
	default:
		return false
	}
}

// ValidateTransition returns a descriptive error for a forbidden transition
func (o *ServiceOrder) ValidateTransition(next Status) error {
	if !o.CanTransitionTo(next) {
		return fmt.Errorf("cannot change service order from %s to %s", o.Status, next)
	}
	return nil
}
