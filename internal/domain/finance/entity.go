// internal/domain/finance/entity.go
package finance

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType distinguishes money owed to the workshop from money it owes
type TransactionType string

const (
	TypeReceivable TransactionType = "receivable"
	TypePayable    TransactionType = "payable"
)

// TransactionStatus represents the settlement state
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusPaid      TransactionStatus = "paid"
	StatusCancelled TransactionStatus = "cancelled"
)

// Transaction represents one receivable or payable entry
type Transaction struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	WorkshopID    uint              `gorm:"not null;index" json:"workshop_id"`
	Type          TransactionType   `gorm:"not null;size:20;index" json:"type"`
	Status        TransactionStatus `gorm:"not null;size:20;default:'pending'" json:"status"`
	Description   string            `gorm:"not null;size:255" json:"description"`
	Category      string            `gorm:"size:100" json:"category"`
	Amount        decimal.Decimal   `gorm:"type:decimal(20,4);not null" json:"amount"`
	DueDate       time.Time         `gorm:"not null;index" json:"due_date"`
	PaidAt        *time.Time        `json:"paid_at"`
	PaymentMethod string            `gorm:"size:50" json:"payment_method"`
	ClientID      *uint             `gorm:"index" json:"client_id"`
	SupplierID    *uint             `gorm:"index" json:"supplier_id"`
	ReferenceType string            `gorm:"size:50" json:"reference_type"`
	ReferenceID   string            `gorm:"size:100" json:"reference_id"`
	CreatedBy     uint              `gorm:"index" json:"created_by"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt    `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Transaction) TableName() string {
	return "finance_transactions"
}

// IsOverdue reports whether a pending entry passed its due date
func (t *Transaction) IsOverdue(now time.Time) bool {
	return t.Status == StatusPending && now.After(t.DueDate)
}

// Summary aggregates the cash position over a period
type Summary struct {
	TotalReceivable   decimal.Decimal `json:"total_receivable"`
	TotalPayable      decimal.Decimal `json:"total_payable"`
	ReceivedAmount    decimal.Decimal `json:"received_amount"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	OverdueReceivable decimal.Decimal `json:"overdue_receivable"`
	OverduePayable    decimal.Decimal `json:"overdue_payable"`
	Balance           decimal.Decimal `json:"balance"`
}
