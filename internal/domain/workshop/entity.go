// internal/domain/workshop/entity.go
package workshop

import (
	"time"

	"gorm.io/gorm"
)

// Workshop represents a tenant account. Every domain record in the system
// belongs to exactly one workshop.
type Workshop struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"not null;size:255" json:"name"`
	Document   string         `gorm:"index;size:20" json:"document"` // CNPJ, optional at registration
	Email      string         `gorm:"size:255" json:"email"`
	Phone      string         `gorm:"size:20" json:"phone"`
	Address    string         `gorm:"size:255" json:"address"`
	City       string         `gorm:"size:100" json:"city"`
	State      string         `gorm:"size:2" json:"state"`
	PostalCode string         `gorm:"size:20" json:"postal_code"`
	LogoURL    string         `gorm:"size:500" json:"logo_url"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name for Workshop
func (Workshop) TableName() string {
	return "workshops"
}
