// internal/domain/invoiceimport/importer.go
package invoiceimport

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/workshop-backend/internal/domain/catalog"
	"github.com/your-org/workshop-backend/internal/domain/supplier"
)

// Store is the persistence port the reconciliation engine runs against.
// The find methods return (nil, nil) when no record matches, so callers
// can distinguish "absent" from a storage failure.
type Store interface {
	FindSupplierByTaxID(workshopID uint, taxID string) (*supplier.Supplier, error)
	CreateSupplier(sup *supplier.Supplier) error

	FindProductByCode(workshopID uint, code string) (*catalog.Item, error)
	CreateItem(item *catalog.Item) error
	SaveItem(item *catalog.Item) error
	CreateMovement(movement *catalog.StockMovement) error
}

// Importer reconciles a parsed invoice against the workshop's catalog
type Importer struct {
	store  Store
	logger *logrus.Entry
}

// NewImporter creates a new importer over the given store
func NewImporter(store Store) *Importer {
	return &Importer{
		store:  store,
		logger: logrus.WithField("component", "invoice_import"),
	}
}

// Run applies a parsed invoice to the workshop's supplier and catalog
// stores and returns the ledger of outcomes.
//
// The supplier is resolved once, before the item loop; a failure there is
// fatal. Each line item is then processed independently: a failure is
// recorded in the ledger and the remaining items still run. Items already
// applied before a failure stay applied.
func (imp *Importer) Run(workshopID uint, inv *ParsedInvoice, userID uint) (*ImportResult, error) {
	if len(inv.Products) == 0 {
		return nil, ErrNoProducts
	}

	result := &ImportResult{
		InvoiceNumber: inv.InvoiceNumber,
		Processed:     make([]LineItem, 0, len(inv.Products)),
		Created:       []LineItem{},
		Updated:       []LineItem{},
		Failed:        []ItemError{},
	}

	if inv.Supplier != nil {
		if err := imp.resolveSupplier(workshopID, inv.Supplier); err != nil {
			return nil, err
		}
	}

	for _, item := range inv.Products {
		created, err := imp.processItem(workshopID, inv.InvoiceNumber, item, userID)
		if err != nil {
			imp.logger.WithFields(logrus.Fields{
				"workshop_id": workshopID,
				"invoice":     inv.InvoiceNumber,
				"item":        item.Name,
			}).WithError(err).Warn("Invoice line item failed")

			result.Failed = append(result.Failed, ItemError{
				Item:  item.Name,
				Error: err.Error(),
			})
			continue
		}

		result.Processed = append(result.Processed, item)
		if created {
			result.Created = append(result.Created, item)
		} else {
			result.Updated = append(result.Updated, item)
		}
	}

	imp.logger.WithFields(logrus.Fields{
		"workshop_id": workshopID,
		"invoice":     inv.InvoiceNumber,
		"processed":   len(result.Processed),
		"created":     len(result.Created),
		"updated":     len(result.Updated),
		"failed":      len(result.Failed),
	}).Info("Invoice import finished")

	return result, nil
}

// resolveSupplier reuses an existing supplier with the same tax id or
// creates a new one.
func (imp *Importer) resolveSupplier(workshopID uint, parsed *ParsedSupplier) error {
	existing, err := imp.store.FindSupplierByTaxID(workshopID, parsed.TaxID)
	if err != nil {
		return fmt.Errorf("supplier lookup failed: %w", err)
	}
	if existing != nil {
		return nil
	}

	sup := &supplier.Supplier{
		WorkshopID: workshopID,
		Name:       parsed.Name,
		TaxID:      parsed.TaxID,
		Email:      parsed.Email,
		Phone:      parsed.Phone,
		Address:    parsed.Address,
		City:       parsed.City,
		State:      parsed.State,
		PostalCode: parsed.PostalCode,
		IsActive:   true,
	}
	if err := imp.store.CreateSupplier(sup); err != nil {
		return fmt.Errorf("supplier creation failed: %w", err)
	}

	return nil
}

// processItem reconciles one line item: update-in-place when the code
// already exists in the catalog, insert-new otherwise. Exactly one inbound
// movement is written either way. Returns true when a new item was created.
func (imp *Importer) processItem(workshopID uint, invoiceNumber string, line LineItem, userID uint) (bool, error) {
	existing, err := imp.store.FindProductByCode(workshopID, line.Code)
	if err != nil {
		return false, err
	}

	reason := fmt.Sprintf("NFe import %s", invoiceNumber)

	if existing != nil {
		before := existing.StockQuantity
		existing.StockQuantity = before.Add(line.Quantity)
		// Both prices take the invoice unit price, matching the legacy
		// import behavior.
		existing.UnitPrice = line.UnitPrice
		existing.CostPrice = line.UnitPrice

		if err := imp.store.SaveItem(existing); err != nil {
			return false, err
		}

		if err := imp.store.CreateMovement(&catalog.StockMovement{
			WorkshopID:     workshopID,
			ItemID:         existing.ID,
			MovementType:   catalog.MovementTypeInbound,
			Quantity:       line.Quantity,
			QuantityBefore: before,
			QuantityAfter:  existing.StockQuantity,
			Reason:         reason,
			ReferenceType:  "invoice_import",
			ReferenceID:    invoiceNumber,
			CreatedBy:      userID,
		}); err != nil {
			return false, err
		}

		return false, nil
	}

	item := &catalog.Item{
		WorkshopID:        workshopID,
		Code:              line.Code,
		Kind:              catalog.KindProduct,
		Name:              line.Name,
		UnitPrice:         line.UnitPrice,
		CostPrice:         line.UnitPrice,
		StockQuantity:     line.Quantity,
		MinStockThreshold: decimal.NewFromInt(catalog.DefaultMinStockThreshold),
		IsActive:          true,
	}
	if err := imp.store.CreateItem(item); err != nil {
		return false, err
	}

	if err := imp.store.CreateMovement(&catalog.StockMovement{
		WorkshopID:     workshopID,
		ItemID:         item.ID,
		MovementType:   catalog.MovementTypeInbound,
		Quantity:       line.Quantity,
		QuantityBefore: decimal.Zero,
		QuantityAfter:  line.Quantity,
		Reason:         reason,
		ReferenceType:  "invoice_import",
		ReferenceID:    invoiceNumber,
		CreatedBy:      userID,
	}); err != nil {
		return true, err
	}

	return true, nil
}
