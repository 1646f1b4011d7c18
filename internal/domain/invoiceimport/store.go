// internal/domain/invoiceimport/store.go
package invoiceimport

import (
	"errors"

	"github.com/your-org/workshop-backend/internal/domain/catalog"
	"github.com/your-org/workshop-backend/internal/domain/supplier"
	"gorm.io/gorm"
)

// GormStore is the production Store backed by the application database
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store over the given database handle
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// FindSupplierByTaxID looks up a supplier by (workshop, tax id)
func (s *GormStore) FindSupplierByTaxID(workshopID uint, taxID string) (*supplier.Supplier, error) {
	var sup supplier.Supplier
	err := s.db.Where("workshop_id = ? AND tax_id = ?", workshopID, taxID).First(&sup).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sup, nil
}

// CreateSupplier inserts a new supplier
func (s *GormStore) CreateSupplier(sup *supplier.Supplier) error {
	return s.db.Create(sup).Error
}

// FindProductByCode looks up a catalog product by (workshop, code)
func (s *GormStore) FindProductByCode(workshopID uint, code string) (*catalog.Item, error) {
	var item catalog.Item
	err := s.db.Where("workshop_id = ? AND code = ? AND kind = ?", workshopID, code, catalog.KindProduct).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem inserts a new catalog item
func (s *GormStore) CreateItem(item *catalog.Item) error {
	return s.db.Create(item).Error
}

// SaveItem persists changes to an existing catalog item
func (s *GormStore) SaveItem(item *catalog.Item) error {
	return s.db.Save(item).Error
}

// CreateMovement inserts a stock movement audit record
func (s *GormStore) CreateMovement(movement *catalog.StockMovement) error {
	return s.db.Create(movement).Error
}
