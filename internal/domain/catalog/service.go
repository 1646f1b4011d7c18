// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/your-org/workshop-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles catalog and stock business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateItemRequest represents catalog item creation data
type CreateItemRequest struct {
	Code              string          `json:"code" binding:"required"`
	Kind              ItemKind        `json:"kind" binding:"required"`
	Name              string          `json:"name" binding:"required"`
	Description       string          `json:"description"`
	Unit              string          `json:"unit"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	StockQuantity     decimal.Decimal `json:"stock_quantity"`
	MinStockThreshold decimal.Decimal `json:"min_stock_threshold"`
}

// StockMovementRequest represents a manual stock movement
type StockMovementRequest struct {
	ItemID       uint            `json:"item_id" binding:"required"`
	MovementType MovementType    `json:"movement_type" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	Reason       string          `json:"reason"`
	// Set internally when another domain drives the movement. Manual API calls leave them empty.
	ReferenceType string `json:"-"`
	ReferenceID   string `json:"-"`
}

// ITEM MANAGEMENT

// CreateItem creates a new catalog item
func (s *Service) CreateItem(workshopID uint, req *CreateItemRequest) (*Item, error) {
	var existing Item
	if err := s.db.Where("workshop_id = ? AND code = ? AND kind = ?", workshopID, req.Code, req.Kind).
		First(&existing).Error; err == nil {
		return nil, fmt.Errorf("item with code '%s' already exists", req.Code)
	}

	unit := req.Unit
	if unit == "" {
		unit = "un"
	}

	item := &Item{
		WorkshopID:        workshopID,
		Code:              req.Code,
		Kind:              req.Kind,
		Name:              req.Name,
		Description:       req.Description,
		Unit:              unit,
		UnitPrice:         req.UnitPrice,
		CostPrice:         req.CostPrice,
		StockQuantity:     req.StockQuantity,
		MinStockThreshold: req.MinStockThreshold,
		IsActive:          true,
	}

	if err := s.db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return item, nil
}

// GetItem retrieves an item by ID
func (s *Service) GetItem(workshopID, itemID uint) (*Item, error) {
	var item Item
	if err := s.db.Where("id = ? AND workshop_id = ?", itemID, workshopID).First(&item).Error; err != nil {
		return nil, fmt.Errorf("item not found")
	}
	return &item, nil
}

// FindProductByCode looks up a product item by code within a workshop.
// Returns (nil, nil) when no product with that code exists.
func (s *Service) FindProductByCode(workshopID uint, code string) (*Item, error) {
	var item Item
	err := s.db.Where("workshop_id = ? AND code = ? AND kind = ?", workshopID, code, KindProduct).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up item: %w", err)
	}
	return &item, nil
}

// ListItems lists catalog items, optionally filtered by kind
func (s *Service) ListItems(workshopID uint, kind ItemKind, search string, page, limit int) ([]Item, int64, error) {
	query := s.db.Model(&Item{}).Where("workshop_id = ?", workshopID)

	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var items []Item
	if err := query.Order("name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list items: %w", err)
	}

	return items, total, nil
}

// UpdateItem updates catalog item data
func (s *Service) UpdateItem(workshopID, itemID uint, req *CreateItemRequest) (*Item, error) {
	item, err := s.GetItem(workshopID, itemID)
	if err != nil {
		return nil, err
	}

	item.Code = req.Code
	item.Name = req.Name
	item.Description = req.Description
	if req.Unit != "" {
		item.Unit = req.Unit
	}
	item.UnitPrice = req.UnitPrice
	item.CostPrice = req.CostPrice
	item.MinStockThreshold = req.MinStockThreshold

	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	return item, nil
}

// DeactivateItem marks an item inactive; it stops appearing in new budgets
func (s *Service) DeactivateItem(workshopID, itemID uint) error {
	result := s.db.Model(&Item{}).
		Where("id = ? AND workshop_id = ?", itemID, workshopID).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("item not found")
	}
	return nil
}

// STOCK MOVEMENTS

// RecordMovement applies a manual stock movement and writes the audit record
func (s *Service) RecordMovement(workshopID uint, req *StockMovementRequest, userID uint) (*StockMovement, error) {
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("quantity must be greater than zero")
	}

	var movement *StockMovement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item Item
		if err := tx.Where("id = ? AND workshop_id = ?", req.ItemID, workshopID).First(&item).Error; err != nil {
			return fmt.Errorf("item not found")
		}
		if item.Kind != KindProduct {
			return fmt.Errorf("stock movements only apply to products")
		}

		before := item.StockQuantity
		var after decimal.Decimal

		switch req.MovementType {
		case MovementTypeInbound:
			after = before.Add(req.Quantity)
		case MovementTypeOutbound:
			after = before.Sub(req.Quantity)
			if after.IsNegative() {
				return fmt.Errorf("insufficient stock: available %s, requested %s", before.String(), req.Quantity.String())
			}
		case MovementTypeAdjustment:
			after = req.Quantity
		default:
			return fmt.Errorf("invalid movement type: %s", req.MovementType)
		}

		if err := tx.Model(&item).Update("stock_quantity", after).Error; err != nil {
			return fmt.Errorf("failed to update stock: %w", err)
		}

		item.StockQuantity = after
		if item.IsOutOfStock() {
			log.Printf("⚠️ Item %s (%s) is out of stock", item.Name, item.Code)
		} else if item.IsLowStock() {
			log.Printf("⚠️ Item %s (%s) is below its minimum threshold: %s left", item.Name, item.Code, after.String())
		}

		referenceType := req.ReferenceType
		if referenceType == "" {
			referenceType = "manual"
		}
		movement = &StockMovement{
			WorkshopID:     workshopID,
			ItemID:         item.ID,
			MovementType:   req.MovementType,
			Quantity:       req.Quantity,
			QuantityBefore: before,
			QuantityAfter:  after,
			Reason:         req.Reason,
			ReferenceType:  referenceType,
			ReferenceID:    req.ReferenceID,
			CreatedBy:      userID,
		}
		if err := tx.Create(movement).Error; err != nil {
			return fmt.Errorf("failed to record movement: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return movement, nil
}

// ListMovements lists recent movements of an item
func (s *Service) ListMovements(workshopID, itemID uint, limit int) ([]StockMovement, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var movements []StockMovement
	if err := s.db.Where("workshop_id = ? AND item_id = ?", workshopID, itemID).
		Order("created_at DESC").
		Limit(limit).
		Find(&movements).Error; err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return movements, nil
}

// ListLowStock lists products at or below their minimum threshold
func (s *Service) ListLowStock(workshopID uint) ([]Item, error) {
	var items []Item
	if err := s.db.Where("workshop_id = ? AND kind = ? AND is_active = ? AND stock_quantity <= min_stock_threshold",
		workshopID, KindProduct, true).
		Order("stock_quantity ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list low stock items: %w", err)
	}
	return items, nil
}
