// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ItemKind distinguishes sellable products (stock tracked) from labor services
type ItemKind string

const (
	KindProduct ItemKind = "product"
	KindService ItemKind = "service"
)

// MovementType represents the type of stock movement
type MovementType string

const (
	MovementTypeInbound    MovementType = "inbound"    // Purchase, supplier invoice import
	MovementTypeOutbound   MovementType = "outbound"   // Service order consumption, sale
	MovementTypeAdjustment MovementType = "adjustment" // Manual correction
)

// DefaultMinStockThreshold is applied to items created by invoice import
const DefaultMinStockThreshold = 5

// Item represents a catalog entry: a product with stock tracking or a
// labor service. Identity within a workshop is (code, kind).
type Item struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	WorkshopID        uint            `gorm:"not null;index:idx_items_workshop_code_kind" json:"workshop_id"`
	Code              string          `gorm:"not null;size:100;index:idx_items_workshop_code_kind" json:"code"`
	Kind              ItemKind        `gorm:"not null;size:20;default:'product';index:idx_items_workshop_code_kind" json:"kind"`
	Name              string          `gorm:"not null;size:255" json:"name"`
	Description       string          `gorm:"type:text" json:"description"`
	Unit              string          `gorm:"size:10;default:'un'" json:"unit"`
	UnitPrice         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unit_price"`
	CostPrice         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"cost_price"`
	StockQuantity     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"stock_quantity"`
	MinStockThreshold decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"min_stock_threshold"`
	IsActive          bool            `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Movements []StockMovement `gorm:"foreignKey:ItemID" json:"movements,omitempty"`
}

// StockMovement is the append-only audit trail of stock changes
type StockMovement struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	WorkshopID     uint            `gorm:"not null;index" json:"workshop_id"`
	ItemID         uint            `gorm:"not null;index" json:"item_id"`
	MovementType   MovementType    `gorm:"not null;size:20" json:"movement_type"`
	Quantity       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	QuantityBefore decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity_before"`
	QuantityAfter  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity_after"`
	Reason         string          `gorm:"size:255" json:"reason"`
	ReferenceType  string          `gorm:"size:50" json:"reference_type"` // "invoice_import", "service_order", "manual"
	ReferenceID    string          `gorm:"size:100" json:"reference_id"`
	CreatedBy      uint            `gorm:"index" json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`

	// Relationships
	Item Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// TableName overrides
func (Item) TableName() string          { return "catalog_items" }
func (StockMovement) TableName() string { return "stock_movements" }

// IsLowStock checks if the item is at or below its minimum threshold
func (i *Item) IsLowStock() bool {
	if i.Kind != KindProduct {
		return false
	}
	return i.StockQuantity.LessThanOrEqual(i.MinStockThreshold)
}

// IsOutOfStock checks if the item has no stock left
func (i *Item) IsOutOfStock() bool {
	return i.Kind == KindProduct && i.StockQuantity.LessThanOrEqual(decimal.Zero)
}
