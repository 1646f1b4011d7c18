// internal/domain/budget/service.go
package budget

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/workshop-backend/internal/config"
	"github.com/your-org/workshop-backend/internal/domain/catalog"
	"github.com/your-org/workshop-backend/internal/domain/client"
	"gorm.io/gorm"
)

// Service handles budget business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new budget service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ItemRequest represents one quoted line on a budget
type ItemRequest struct {
	ItemID    uint            `json:"item_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price"` // overrides the catalog price when set
}

// CreateBudgetRequest represents budget creation data
type CreateBudgetRequest struct {
	ClientID      uint            `json:"client_id" binding:"required"`
	VehicleID     *uint           `json:"vehicle_id"`
	Description   string          `json:"description"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	ValidDays     int             `json:"valid_days"`
	Items         []ItemRequest   `json:"items" binding:"required"`
}

// CreateBudget creates a budget with its quoted items and computed totals
func (s *Service) CreateBudget(workshopID uint, req *CreateBudgetRequest, userID uint) (*Budget, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("budget must have at least one item")
	}

	var owner client.Client
	if err := s.db.Where("id = ? AND workshop_id = ?", req.ClientID, workshopID).First(&owner).Error; err != nil {
		return nil, fmt.Errorf("client not found")
	}

	var b *Budget
	err := s.db.Transaction(func(tx *gorm.DB) error {
		b = &Budget{
			WorkshopID:     workshopID,
			ClientID:       req.ClientID,
			VehicleID:      req.VehicleID,
			Status:         StatusPending,
			Description:    req.Description,
			DiscountAmount: req.DiscountAmount,
			CreatedBy:      userID,
		}

		if req.ValidDays > 0 {
			until := time.Now().AddDate(0, 0, req.ValidDays)
			b.ValidUntil = &until
		}

		if err := tx.Create(b).Error; err != nil {
			return fmt.Errorf("failed to create budget: %w", err)
		}

		b.Number = generateBudgetNumber(b.ID)

		items := make([]BudgetItem, 0, len(req.Items))
		for _, ir := range req.Items {
			var catalogItem catalog.Item
			if err := tx.Where("id = ? AND workshop_id = ?", ir.ItemID, workshopID).First(&catalogItem).Error; err != nil {
				return fmt.Errorf("catalog item %d not found", ir.ItemID)
			}
			if !catalogItem.IsActive {
				return fmt.Errorf("catalog item '%s' is inactive", catalogItem.Name)
			}

			price := catalogItem.UnitPrice
			if ir.UnitPrice != nil {
				price = *ir.UnitPrice
			}

			items = append(items, BudgetItem{
				BudgetID:  b.ID,
				ItemID:    catalogItem.ID,
				ItemKind:  string(catalogItem.Kind),
				Name:      catalogItem.Name,
				Quantity:  ir.Quantity,
				UnitPrice: price,
				Total:     price.Mul(ir.Quantity),
			})
		}

		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to create budget items: %w", err)
		}
		b.Items = items

		b.LaborAmount, b.PartsAmount, b.TotalAmount = ComputeTotals(items, b.DiscountAmount)

		if err := tx.Save(b).Error; err != nil {
			return fmt.Errorf("failed to save budget totals: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return b, nil
}

// ComputeTotals splits budget item totals into labor and parts and applies
// the discount to produce the grand total.
func ComputeTotals(items []BudgetItem, discount decimal.Decimal) (labor, parts, total decimal.Decimal) {
	for _, it := range items {
		if it.ItemKind == string(catalog.KindService) {
			labor = labor.Add(it.Total)
		} else {
			parts = parts.Add(it.Total)
		}
	}
	total = labor.Add(parts).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return labor, parts, total
}

// GetBudget retrieves a budget with its items
func (s *Service) GetBudget(workshopID, budgetID uint) (*Budget, error) {
	var b Budget
	if err := s.db.Preload("Items").
		Where("id = ? AND workshop_id = ?", budgetID, workshopID).
		First(&b).Error; err != nil {
		return nil, fmt.Errorf("budget not found")
	}
	return &b, nil
}

// ListBudgets lists budgets for a workshop, optionally filtered by status
func (s *Service) ListBudgets(workshopID uint, status Status, page, limit int) ([]Budget, int64, error) {
	query := s.db.Model(&Budget{}).Where("workshop_id = ?", workshopID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count budgets: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var budgets []Budget
	if err := query.Preload("Items").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&budgets).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list budgets: %w", err)
	}

	return budgets, total, nil
}

// Approve marks a pending budget as approved
func (s *Service) Approve(workshopID, budgetID uint) (*Budget, error) {
	return s.transition(workshopID, budgetID, StatusApproved)
}

// Reject marks a pending budget as rejected
func (s *Service) Reject(workshopID, budgetID uint) (*Budget, error) {
	return s.transition(workshopID, budgetID, StatusRejected)
}

func (s *Service) transition(workshopID, budgetID uint, next Status) (*Budget, error) {
	b, err := s.GetBudget(workshopID, budgetID)
	if err != nil {
		return nil, err
	}

	if !b.CanTransitionTo(next) {
		return nil, fmt.Errorf("cannot change budget from %s to %s", b.Status, next)
	}

	// A lapsed validity window blocks approval and flips the budget to expired.
	if next == StatusApproved && b.IsExpired() {
		b.Status = StatusExpired
		if err := s.db.Save(b).Error; err != nil {
			return nil, fmt.Errorf("failed to update budget: %w", err)
		}
		return nil, fmt.Errorf("budget %s expired on %s", b.Number, b.ValidUntil.Format("02/01/2006"))
	}

	now := time.Now()
	b.Status = next
	switch next {
	case StatusApproved:
		b.ApprovedAt = &now
	case StatusRejected:
		b.RejectedAt = &now
	}

	if err := s.db.Save(b).Error; err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	return b, nil
}

// DeleteBudget soft-deletes a pending budget
func (s *Service) DeleteBudget(workshopID, budgetID uint) error {
	b, err := s.GetBudget(workshopID, budgetID)
	if err != nil {
		return err
	}
	if b.Status != StatusPending {
		return fmt.Errorf("only pending budgets can be deleted")
	}

	if err := s.db.Delete(b).Error; err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}

func generateBudgetNumber(budgetID uint) string {
	// Format: BDG-YYYYMMDD-XXXXX
	return fmt.Sprintf("BDG-%s-%05d", time.Now().Format("20060102"), budgetID)
}
