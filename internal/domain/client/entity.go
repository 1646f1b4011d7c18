// internal/domain/client/entity.go
package client

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Client represents a workshop customer
type Client struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	WorkshopID uint           `gorm:"not null;index:idx_clients_workshop" json:"workshop_id"`
	Name       string         `gorm:"not null;size:255" json:"name"`
	Document   string         `gorm:"size:20;index" json:"document"` // CPF or CNPJ
	Email      string         `gorm:"size:255" json:"email"`
	Phone      string         `gorm:"size:20" json:"phone"`
	Address    string         `gorm:"size:255" json:"address"`
	City       string         `gorm:"size:100" json:"city"`
	State      string         `gorm:"size:2" json:"state"`
	PostalCode string         `gorm:"size:20" json:"postal_code"`
	Notes      string         `gorm:"type:text" json:"notes"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Vehicles []Vehicle `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"vehicles,omitempty"`
}

// Vehicle represents a client's vehicle
type Vehicle struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	WorkshopID uint           `gorm:"not null;index" json:"workshop_id"`
	ClientID   uint           `gorm:"not null;index" json:"client_id"`
	Plate      string         `gorm:"not null;size:10;index:idx_vehicles_workshop_plate" json:"plate"`
	Make       string         `gorm:"size:50" json:"make"`
	Model      string         `gorm:"size:100" json:"model"`
	Year       int            `json:"year"`
	Color      string         `gorm:"size:30" json:"color"`
	VIN        string         `gorm:"size:30" json:"vin"`
	Mileage    int            `json:"mileage"`
	Notes      string         `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Client Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

// TableName overrides
func (Client) TableName() string  { return "clients" }
func (Vehicle) TableName() string { return "vehicles" }

// BeforeCreate hook to normalize the plate
func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	v.Plate = strings.ToUpper(strings.ReplaceAll(v.Plate, "-", ""))
	return nil
}
