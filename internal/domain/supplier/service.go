// internal/domain/supplier/service.go
package supplier

import (
	"errors"
	"fmt"

	"github.com/your-org/workshop-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles supplier business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new supplier service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateSupplierRequest represents supplier creation data
type CreateSupplierRequest struct {
	Name       string `json:"name" binding:"required"`
	TaxID      string `json:"tax_id" binding:"required"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// CreateSupplier creates a new supplier for a workshop
func (s *Service) CreateSupplier(workshopID uint, req *CreateSupplierRequest) (*Supplier, error) {
	var existing Supplier
	if err := s.db.Where("workshop_id = ? AND tax_id = ?", workshopID, req.TaxID).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("supplier with tax id '%s' already exists", req.TaxID)
	}

	sup := &Supplier{
		WorkshopID: workshopID,
		Name:       req.Name,
		TaxID:      req.TaxID,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		IsActive:   true,
	}

	if err := s.db.Create(sup).Error; err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}

	return sup, nil
}

// GetSupplier retrieves a supplier by ID
func (s *Service) GetSupplier(workshopID, supplierID uint) (*Supplier, error) {
	var sup Supplier
	if err := s.db.Where("id = ? AND workshop_id = ?", supplierID, workshopID).First(&sup).Error; err != nil {
		return nil, fmt.Errorf("supplier not found")
	}
	return &sup, nil
}

// FindByTaxID looks up a supplier by tax id within a workshop.
// Returns (nil, nil) when no supplier with that tax id exists.
func (s *Service) FindByTaxID(workshopID uint, taxID string) (*Supplier, error) {
	var sup Supplier
	err := s.db.Where("workshop_id = ? AND tax_id = ?", workshopID, taxID).First(&sup).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up supplier: %w", err)
	}
	return &sup, nil
}

// ListSuppliers lists suppliers for a workshop
func (s *Service) ListSuppliers(workshopID uint) ([]Supplier, error) {
	var suppliers []Supplier
	if err := s.db.Where("workshop_id = ?", workshopID).Order("name ASC").Find(&suppliers).Error; err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	return suppliers, nil
}

// UpdateSupplier updates supplier data
func (s *Service) UpdateSupplier(workshopID, supplierID uint, req *CreateSupplierRequest) (*Supplier, error) {
	sup, err := s.GetSupplier(workshopID, supplierID)
	if err != nil {
		return nil, err
	}

	sup.Name = req.Name
	sup.TaxID = req.TaxID
	sup.Email = req.Email
	sup.Phone = req.Phone
	sup.Address = req.Address
	sup.City = req.City
	sup.State = req.State
	sup.PostalCode = req.PostalCode

	if err := s.db.Save(sup).Error; err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}

	return sup, nil
}

// DeleteSupplier soft-deletes a supplier
func (s *Service) DeleteSupplier(workshopID, supplierID uint) error {
	result := s.db.Where("id = ? AND workshop_id = ?", supplierID, workshopID).Delete(&Supplier{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete supplier: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("supplier not found")
	}
	return nil
}
