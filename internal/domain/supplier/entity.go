// internal/domain/supplier/entity.go
package supplier

import (
	"time"

	"gorm.io/gorm"
)

// Supplier represents a parts supplier. Identity within a workshop is the
// tax id (CNPJ): imports reuse an existing supplier with the same tax id
// instead of creating a duplicate.
type Supplier struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	WorkshopID uint           `gorm:"not null;index:idx_suppliers_workshop_taxid" json:"workshop_id"`
	Name       string         `gorm:"not null;size:255" json:"name"`
	TaxID      string         `gorm:"not null;size:20;index:idx_suppliers_workshop_taxid" json:"tax_id"`
	Email      string         `gorm:"size:255" json:"email"`
	Phone      string         `gorm:"size:20" json:"phone"`
	Address    string         `gorm:"size:255" json:"address"`
	City       string         `gorm:"size:100" json:"city"`
	State      string         `gorm:"size:2" json:"state"`
	PostalCode string         `gorm:"size:20" json:"postal_code"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name for Supplier
func (Supplier) TableName() string {
	return "suppliers"
}
