// internal/domain/serviceorder/service.go
package serviceorder

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/your-org/workshop-backend/internal/config"
	"github.com/your-org/workshop-backend/internal/domain/budget"
	"github.com/your-org/workshop-backend/internal/domain/catalog"
)

// Service handles service order business logic
type Service struct {
	db      *gorm.DB
	config  *config.Config
	catalog *catalog.Service
}

// NewService creates a new service order service
func NewService(db *gorm.DB, cfg *config.Config, catalogService *catalog.Service) *Service {
	return &Service{
		db:      db,
		config:  cfg,
		catalog: catalogService,
	}
}

// CreateOrderRequest represents a service order creation request
type CreateOrderRequest struct {
	ClientID    uint               `json:"client_id" binding:"required"`
	VehicleID   *uint              `json:"vehicle_id"`
	MechanicID  *uint              `json:"mechanic_id"`
	Description string             `json:"description" binding:"required"`
	Diagnosis   string             `json:"diagnosis"`
	Discount    decimal.Decimal    `json:"discount"`
	Items       []OrderItemRequest `json:"items"`
}

// OrderItemRequest represents one line in a creation request
type OrderItemRequest struct {
	ItemID    uint             `json:"item_id" binding:"required"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// UpdateOrderRequest represents mutable fields of an open order
type UpdateOrderRequest struct {
	MechanicID  *uint  `json:"mechanic_id"`
	Description string `json:"description"`
	Diagnosis   string `json:"diagnosis"`
}

// ListOrdersRequest represents list filters
type ListOrdersRequest struct {
	Status     string `form:"status"`
	ClientID   uint   `form:"client_id"`
	MechanicID uint   `form:"mechanic_id"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

// CreateOrder creates a service order with its items
func (s *Service) CreateOrder(workshopID, userID uint, req *CreateOrderRequest) (*ServiceOrder, error) {
	order := &ServiceOrder{
		WorkshopID:     workshopID,
		ClientID:       req.ClientID,
		VehicleID:      req.VehicleID,
		MechanicID:     req.MechanicID,
		Status:         StatusOpen,
		Description:    req.Description,
		Diagnosis:      req.Diagnosis,
		DiscountAmount: req.Discount,
		CreatedBy:      userID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		number, err := s.generateOrderNumber(tx, workshopID)
		if err != nil {
			return err
		}
		order.Number = number

		items, err := s.buildItems(workshopID, req.Items)
		if err != nil {
			return err
		}
		order.Items = items
		s.applyTotals(order)

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create service order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// CreateFromBudget opens a service order carrying an approved budget's items
func (s *Service) CreateFromBudget(workshopID, userID, budgetID uint) (*ServiceOrder, error) {
	var b budget.Budget
	if err := s.db.Preload("Items").
		Where("id = ? AND workshop_id = ?", budgetID, workshopID).
		First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("budget not found")
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}

	if b.Status != budget.StatusApproved {
		return nil, fmt.Errorf("budget %s is %s, only approved budgets open service orders", b.Number, b.Status)
	}

	var existing int64
	if err := s.db.Model(&ServiceOrder{}).
		Where("budget_id = ? AND workshop_id = ?", b.ID, workshopID).
		Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to check existing orders: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("budget %s already has a service order", b.Number)
	}

	order := &ServiceOrder{
		WorkshopID:     workshopID,
		ClientID:       b.ClientID,
		VehicleID:      b.VehicleID,
		BudgetID:       &b.ID,
		Status:         StatusOpen,
		Description:    b.Description,
		DiscountAmount: b.DiscountAmount,
		CreatedBy:      userID,
	}
	for _, bi := range b.Items {
		order.Items = append(order.Items, OrderItem{
			ItemID:    bi.ItemID,
			ItemKind:  bi.ItemKind,
			Name:      bi.Name,
			Quantity:  bi.Quantity,
			UnitPrice: bi.UnitPrice,
			Total:     bi.Total,
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		number, err := s.generateOrderNumber(tx, workshopID)
		if err != nil {
			return err
		}
		order.Number = number
		s.applyTotals(order)

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create service order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// GetOrder retrieves a service order scoped to the workshop
func (s *Service) GetOrder(workshopID, orderID uint) (*ServiceOrder, error) {
	var order ServiceOrder
	err := s.db.Preload("Items").
		Where("id = ? AND workshop_id = ?", orderID, workshopID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("service order not found")
		}
		return nil, fmt.Errorf("failed to get service order: %w", err)
	}
	return &order, nil
}

// ListOrders retrieves service orders with pagination and filters
func (s *Service) ListOrders(workshopID uint, req *ListOrdersRequest) ([]ServiceOrder, int64, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&ServiceOrder{}).Where("workshop_id = ?", workshopID)
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.ClientID > 0 {
		query = query.Where("client_id = ?", req.ClientID)
	}
	if req.MechanicID > 0 {
		query = query.Where("mechanic_id = ?", req.MechanicID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count service orders: %w", err)
	}

	var orders []ServiceOrder
	offset := (req.Page - 1) * req.Limit
	err := query.Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(req.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list service orders: %w", err)
	}

	return orders, total, nil
}

// UpdateOrder edits descriptive fields while the order is open or in progress
func (s *Service) UpdateOrder(workshopID, orderID uint, req *UpdateOrderRequest) (*ServiceOrder, error) {
	order, err := s.GetOrder(workshopID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != StatusOpen && order.Status != StatusInProgress {
		return nil, fmt.Errorf("cannot edit a %s service order", order.Status)
	}

	if req.MechanicID != nil {
		order.MechanicID = req.MechanicID
	}
	if req.Description != "" {
		order.Description = req.Description
	}
	if req.Diagnosis != "" {
		order.Diagnosis = req.Diagnosis
	}

	if err := s.db.Save(order).Error; err != nil {
		return nil, fmt.Errorf("failed to update service order: %w", err)
	}
	return order, nil
}

// Start moves an open order to in_progress
func (s *Service) Start(workshopID, orderID uint) (*ServiceOrder, error) {
	order, err := s.GetOrder(workshopID, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.ValidateTransition(StatusInProgress); err != nil {
		return nil, err
	}

	now := time.Now()
	order.Status = StatusInProgress
	order.StartedAt = &now
	if err := s.db.Save(order).Error; err != nil {
		return nil, fmt.Errorf("failed to start service order: %w", err)
	}
	return order, nil
}

// Finish closes the work and consumes product stock for every part used
func (s *Service) Finish(workshopID, orderID, userID uint) (*ServiceOrder, error) {
	order, err := s.GetOrder(workshopID, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.ValidateTransition(StatusFinished); err != nil {
		return nil, err
	}

	// Stock leaves when the work is done, not when the order is opened.
	for _, item := range order.Items {
		if item.ItemKind != string(catalog.KindProduct) {
			continue
		}
		_, err := s.catalog.RecordMovement(workshopID, &catalog.StockMovementRequest{
			ItemID:        item.ItemID,
			MovementType:  catalog.MovementTypeOutbound,
			Quantity:      item.Quantity,
			Reason:        fmt.Sprintf("Service order %s", order.Number),
			ReferenceType: "service_order",
			ReferenceID:   order.Number,
		}, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to consume stock for %s: %w", item.Name, err)
		}
	}

	now := time.Now()
	order.Status = StatusFinished
	order.FinishedAt = &now
	if err := s.db.Save(order).Error; err != nil {
		return nil, fmt.Errorf("failed to finish service order: %w", err)
	}
	return order, nil
}

// Deliver hands the vehicle back to the client
func (s *Service) Deliver(workshopID, orderID uint) (*ServiceOrder, error) {
	order, err := s.GetOrder(workshopID, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.ValidateTransition(StatusDelivered); err != nil {
		return nil, err
	}

	now := time.Now()
	order.Status = StatusDelivered
	order.DeliveredAt = &now
	if err := s.db.Save(order).Error; err != nil {
		return nil, fmt.Errorf("failed to deliver service order: %w", err)
	}
	return order, nil
}

// Cancel aborts an order that has not been finished
func (s *Service) Cancel(workshopID, orderID uint) (*ServiceOrder, error) {
	order, err := s.GetOrder(workshopID, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.ValidateTransition(StatusCancelled); err != nil {
		return nil, err
	}

	order.Status = StatusCancelled
	if err := s.db.Save(order).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel service order: %w", err)
	}
	return order, nil
}

// buildItems resolves catalog items into order lines
func (s *Service) buildItems(workshopID uint, reqs []OrderItemRequest) ([]OrderItem, error) {
	items := make([]OrderItem, 0, len(reqs))
	for _, r := range reqs {
		catalogItem, err := s.catalog.GetItem(workshopID, r.ItemID)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", r.ItemID, err)
		}
		if !catalogItem.IsActive {
			return nil, fmt.Errorf("item %s is inactive", catalogItem.Name)
		}

		price := catalogItem.UnitPrice
		if r.UnitPrice != nil {
			price = *r.UnitPrice
		}
		items = append(items, OrderItem{
			ItemID:    catalogItem.ID,
			ItemKind:  string(catalogItem.Kind),
			Name:      catalogItem.Name,
			Quantity:  r.Quantity,
			UnitPrice: price,
			Total:     price.Mul(r.Quantity),
		})
	}
	return items, nil
}

// applyTotals recomputes labor, parts and total from the order items
func (s *Service) applyTotals(order *ServiceOrder) {
	labor := decimal.Zero
	parts := decimal.Zero
	for _, item := range order.Items {
		if item.ItemKind == string(catalog.KindService) {
			labor = labor.Add(item.Total)
		} else {
			parts = parts.Add(item.Total)
		}
	}
	total := labor.Add(parts).Sub(order.DiscountAmount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	order.LaborAmount = labor
	order.PartsAmount = parts
	order.TotalAmount = total
}

// generateOrderNumber produces a sequential workshop-scoped number
func (s *Service) generateOrderNumber(tx *gorm.DB, workshopID uint) (string, error) {
	var count int64
	today := time.Now().Format("20060102")
	err := tx.Model(&ServiceOrder{}).
		Where("workshop_id = ? AND number LIKE ?", workshopID, fmt.Sprintf("OS-%s-%%", today)).
		Count(&count).Error
	if err != nil {
		return "", fmt.Errorf("failed to count service orders: %w", err)
	}
	return fmt.Sprintf("OS-%s-%05d", today, count+1), nil
}
