// internal/domain/finance/service.go
package finance

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/your-org/workshop-backend/internal/config"
)

// Service handles financial transaction business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new finance service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateTransactionRequest represents a manual entry
type CreateTransactionRequest struct {
	Type        TransactionType `json:"type" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	DueDate     time.Time       `json:"due_date" binding:"required"`
	ClientID    *uint           `json:"client_id"`
	SupplierID  *uint           `json:"supplier_id"`
}

// ListTransactionsRequest represents list filters
type ListTransactionsRequest struct {
	Type    string    `form:"type"`
	Status  string    `form:"status"`
	From    time.Time `form:"from" time_format:"2006-01-02"`
	To      time.Time `form:"to" time_format:"2006-01-02"`
	Overdue bool      `form:"overdue"`
	Page    int       `form:"page"`
	Limit   int       `form:"limit"`
}

// CreateTransaction records a new receivable or payable
func (s *Service) CreateTransaction(workshopID, userID uint, req *CreateTransactionRequest) (*Transaction, error) {
	if req.Type != TypeReceivable && req.Type != TypePayable {
		return nil, fmt.Errorf("invalid transaction type: %s", req.Type)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("amount must be greater than zero")
	}

	transaction := &Transaction{
		WorkshopID:  workshopID,
		Type:        req.Type,
		Status:      StatusPending,
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
		DueDate:     req.DueDate,
		ClientID:    req.ClientID,
		SupplierID:  req.SupplierID,
		CreatedBy:   userID,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return transaction, nil
}

// CreateReceivableForOrder posts the receivable when a service order is delivered
func (s *Service) CreateReceivableForOrder(workshopID, userID, clientID uint, orderNumber string, amount decimal.Decimal) (*Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}

	transaction := &Transaction{
		WorkshopID:    workshopID,
		Type:          TypeReceivable,
		Status:        StatusPending,
		Description:   fmt.Sprintf("Service order %s", orderNumber),
		Category:      "service_order",
		Amount:        amount,
		DueDate:       time.Now(),
		ClientID:      &clientID,
		ReferenceType: "service_order",
		ReferenceID:   orderNumber,
		CreatedBy:     userID,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, fmt.Errorf("failed to create receivable: %w", err)
	}
	return transaction, nil
}

// GetTransaction retrieves a transaction scoped to the workshop
func (s *Service) GetTransaction(workshopID, transactionID uint) (*Transaction, error) {
	var transaction Transaction
	err := s.db.Where("id = ? AND workshop_id = ?", transactionID, workshopID).
		First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("transaction not found")
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// ListTransactions retrieves transactions with pagination and filters
func (s *Service) ListTransactions(workshopID uint, req *ListTransactionsRequest) ([]Transaction, int64, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&Transaction{}).Where("workshop_id = ?", workshopID)
	if req.Type != "" {
		query = query.Where("type = ?", req.Type)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if !req.From.IsZero() {
		query = query.Where("due_date >= ?", req.From)
	}
	if !req.To.IsZero() {
		query = query.Where("due_date < ?", req.To.AddDate(0, 0, 1))
	}
	if req.Overdue {
		query = query.Where("status = ? AND due_date < ?", StatusPending, time.Now())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	var transactions []Transaction
	offset := (req.Page - 1) * req.Limit
	err := query.Order("due_date ASC").
		Offset(offset).Limit(req.Limit).
		Find(&transactions).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	return transactions, total, nil
}

// MarkPaid settles a pending transaction
func (s *Service) MarkPaid(workshopID, transactionID uint, paymentMethod string) (*Transaction, error) {
	transaction, err := s.GetTransaction(workshopID, transactionID)
	if err != nil {
		return nil, err
	}
	if transaction.Status != StatusPending {
		return nil, fmt.Errorf("transaction is already %s", transaction.Status)
	}

	now := time.Now()
	transaction.Status = StatusPaid
	transaction.PaidAt = &now
	transaction.PaymentMethod = paymentMethod
	if err := s.db.Save(transaction).Error; err != nil {
		return nil, fmt.Errorf("failed to mark transaction paid: %w", err)
	}
	return transaction, nil
}

// CancelTransaction voids a pending entry
func (s *Service) CancelTransaction(workshopID, transactionID uint) (*Transaction, error) {
	transaction, err := s.GetTransaction(workshopID, transactionID)
	if err != nil {
		return nil, err
	}
	if transaction.Status != StatusPending {
		return nil, fmt.Errorf("transaction is already %s", transaction.Status)
	}

	transaction.Status = StatusCancelled
	if err := s.db.Save(transaction).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel transaction: %w", err)
	}
	return transaction, nil
}

// GetSummary aggregates the cash position for a date window
func (s *Service) GetSummary(workshopID uint, from, to time.Time) (*Summary, error) {
	var transactions []Transaction
	query := s.db.Where("workshop_id = ? AND status <> ?", workshopID, StatusCancelled)
	if !from.IsZero() {
		query = query.Where("due_date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("due_date < ?", to.AddDate(0, 0, 1))
	}
	if err := query.Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	return ComputeSummary(transactions, time.Now()), nil
}

// ComputeSummary folds transactions into period totals
func ComputeSummary(transactions []Transaction, now time.Time) *Summary {
	summary := &Summary{
		TotalReceivable:   decimal.Zero,
		TotalPayable:      decimal.Zero,
		ReceivedAmount:    decimal.Zero,
		PaidAmount:        decimal.Zero,
		OverdueReceivable: decimal.Zero,
		OverduePayable:    decimal.Zero,
	}

	for _, t := range transactions {
		if t.Status == StatusCancelled {
			continue
		}
		switch t.Type {
		case TypeReceivable:
			summary.TotalReceivable = summary.TotalReceivable.Add(t.Amount)
			if t.Status == StatusPaid {
				summary.ReceivedAmount = summary.ReceivedAmount.Add(t.Amount)
			}
			if t.IsOverdue(now) {
				summary.OverdueReceivable = summary.OverdueReceivable.Add(t.Amount)
			}
		case TypePayable:
			summary.TotalPayable = summary.TotalPayable.Add(t.Amount)
			if t.Status == StatusPaid {
				summary.PaidAmount = summary.PaidAmount.Add(t.Amount)
			}
			if t.IsOverdue(now) {
				summary.OverduePayable = summary.OverduePayable.Add(t.Amount)
			}
		}
	}

	summary.Balance = summary.ReceivedAmount.Sub(summary.PaidAmount)
	return summary
}
