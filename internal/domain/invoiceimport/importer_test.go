// internal/domain/invoiceimport/importer_test.go
package invoiceimport

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/your-org/workshop-backend/internal/domain/catalog"
	"github.com/your-org/workshop-backend/internal/domain/supplier"
)

// fakeStore is an in-memory Store for reconciliation tests
type fakeStore struct {
	suppliers []*supplier.Supplier
	items     []*catalog.Item
	movements []*catalog.StockMovement

	nextItemID     uint
	nextSupplierID uint

	failItemCodes    map[string]error
	failSupplierFind error
}

func newFakeStore() *fakeStore {
	return &fakeStore{failItemCodes: map[string]error{}}
}

func (f *fakeStore) FindSupplierByTaxID(workshopID uint, taxID string) (*supplier.Supplier, error) {
	if f.failSupplierFind != nil {
		return nil, f.failSupplierFind
	}
	for _, s := range f.suppliers {
		if s.WorkshopID == workshopID && s.TaxID == taxID {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateSupplier(sup *supplier.Supplier) error {
	f.nextSupplierID++
	sup.ID = f.nextSupplierID
	f.suppliers = append(f.suppliers, sup)
	return nil
}

func (f *fakeStore) FindProductByCode(workshopID uint, code string) (*catalog.Item, error) {
	if err, ok := f.failItemCodes[code]; ok {
		return nil, err
	}
	for _, it := range f.items {
		if it.WorkshopID == workshopID && it.Code == code && it.Kind == catalog.KindProduct {
			return it, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateItem(item *catalog.Item) error {
	f.nextItemID++
	item.ID = f.nextItemID
	f.items = append(f.items, item)
	return nil
}

func (f *fakeStore) SaveItem(item *catalog.Item) error {
	return nil // items are shared pointers, mutation already applied
}

func (f *fakeStore) CreateMovement(movement *catalog.StockMovement) error {
	f.movements = append(f.movements, movement)
	return nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testInvoice(items ...LineItem) *ParsedInvoice {
	return &ParsedInvoice{
		Products:      items,
		InvoiceNumber: "12345",
	}
}

func TestRun_CreatesNewItemsWithZeroBaseline(t *testing.T) {
	store := newFakeStore()
	imp := NewImporter(store)

	inv := testInvoice(
		LineItem{Code: "X1", Name: "Oil Filter", Quantity: dec("10"), UnitPrice: dec("25.50")},
		LineItem{Code: "B2", Name: "Brake Pad", Quantity: dec("4"), UnitPrice: dec("89.90")},
		LineItem{Code: "S3", Name: "Spark Plug", Quantity: dec("8"), UnitPrice: dec("12.00")},
	)

	result, err := imp.Run(1, inv, 7)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(result.Created) != 3 || len(result.Updated) != 0 || len(result.Failed) != 0 {
		t.Fatalf("expected 3 created, got created=%d updated=%d failed=%d",
			len(result.Created), len(result.Updated), len(result.Failed))
	}
	if len(store.items) != 3 {
		t.Fatalf("expected 3 catalog items, got %d", len(store.items))
	}
	if len(store.movements) != 3 {
		t.Fatalf("expected 3 stock movements, got %d", len(store.movements))
	}

	for _, m := range store.movements {
		if !m.QuantityBefore.IsZero() {
			t.Fatalf("expected quantity_before 0 for new item, got %s", m.QuantityBefore.String())
		}
		if m.MovementType != catalog.MovementTypeInbound {
			t.Fatalf("expected inbound movement, got %s", m.MovementType)
		}
	}

	for _, it := range store.items {
		if it.MinStockThreshold.String() != "5" {
			t.Fatalf("expected default min stock threshold 5, got %s", it.MinStockThreshold.String())
		}
		if !it.IsActive {
			t.Fatal("expected created items to be active")
		}
	}
}

func TestRun_UpdatesExistingItemAndClobbersPrices(t *testing.T) {
	store := newFakeStore()
	store.CreateItem(&catalog.Item{
		WorkshopID:    1,
		Code:          "X1",
		Kind:          catalog.KindProduct,
		Name:          "Oil Filter",
		UnitPrice:     dec("39.90"),
		CostPrice:     dec("18.00"),
		StockQuantity: dec("5"),
	})

	imp := NewImporter(store)
	inv := testInvoice(LineItem{Code: "X1", Name: "Oil Filter", Quantity: dec("10"), UnitPrice: dec("25.50")})

	result, err := imp.Run(1, inv, 7)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(result.Updated) != 1 || len(result.Created) != 0 {
		t.Fatalf("expected 1 updated, got created=%d updated=%d", len(result.Created), len(result.Updated))
	}
	if len(store.items) != 1 {
		t.Fatalf("expected no duplicate item, got %d items", len(store.items))
	}

	item := store.items[0]
	if item.StockQuantity.String() != "15" {
		t.Fatalf("expected stock 15, got %s", item.StockQuantity.String())
	}
	// The sale price is overwritten with the invoice's purchase price and
	// cost price gets the same value, matching the legacy import.
	if item.UnitPrice.String() != "25.5" {
		t.Fatalf("expected unit price 25.5, got %s", item.UnitPrice.String())
	}
	if item.CostPrice.String() != "25.5" {
		t.Fatalf("expected cost price 25.5, got %s", item.CostPrice.String())
	}

	if len(store.movements) != 1 {
		t.Fatalf("expected 1 movement, got %d", len(store.movements))
	}
	m := store.movements[0]
	if m.QuantityBefore.String() != "5" || m.QuantityAfter.String() != "15" {
		t.Fatalf("expected movement 5 -> 15, got %s -> %s", m.QuantityBefore.String(), m.QuantityAfter.String())
	}
}

func TestRun_ReimportIsNotIdempotent(t *testing.T) {
	store := newFakeStore()
	imp := NewImporter(store)

	inv := testInvoice(LineItem{Code: "X1", Name: "Oil Filter", Quantity: dec("10"), UnitPrice: dec("25.50")})

	if _, err := imp.Run(1, inv, 7); err != nil {
		t.Fatalf("first Run returned error: %v", err)
	}
	if _, err := imp.Run(1, inv, 7); err != nil {
		t.Fatalf("second Run returned error: %v", err)
	}

	// Importing the same document twice doubles the stock. There is no
	// deduplication by invoice number.
	if len(store.items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(store.items))
	}
	if store.items[0].StockQuantity.String() != "20" {
		t.Fatalf("expected doubled stock 20, got %s", store.items[0].StockQuantity.String())
	}
	if len(store.movements) != 2 {
		t.Fatalf("expected 2 movements, got %d", len(store.movements))
	}
}

func TestRun_NoProductsFailsBeforePersistence(t *testing.T) {
	store := newFakeStore()
	imp := NewImporter(store)

	inv := &ParsedInvoice{
		Supplier:      &ParsedSupplier{Name: "Fornecedor", TaxID: "111"},
		Products:      []LineItem{},
		InvoiceNumber: "12345",
	}

	_, err := imp.Run(1, inv, 7)
	if !errors.Is(err, ErrNoProducts) {
		t.Fatalf("expected ErrNoProducts, got %v", err)
	}

	if len(store.suppliers) != 0 || len(store.items) != 0 || len(store.movements) != 0 {
		t.Fatal("expected no writes when the document has no products")
	}
}

func TestRun_PerItemFailureDoesNotStopRemainingItems(t *testing.T) {
	store := newFakeStore()
	store.failItemCodes["B2"] = errors.New("connection reset")
	imp := NewImporter(store)

	inv := testInvoice(
		LineItem{Code: "X1", Name: "Oil Filter", Quantity: dec("10"), UnitPrice: dec("25.50")},
		LineItem{Code: "B2", Name: "Brake Pad", Quantity: dec("4"), UnitPrice: dec("89.90")},
		LineItem{Code: "S3", Name: "Spark Plug", Quantity: dec("8"), UnitPrice: dec("12.00")},
	)

	result, err := imp.Run(1, inv, 7)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(result.Processed) != 2 || len(result.Created) != 2 {
		t.Fatalf("expected 2 processed, got processed=%d created=%d", len(result.Processed), len(result.Created))
	}
	if len(result.Failed) != 1 {
		t.Fatalf("expected 1 failed item, got %d", len(result.Failed))
	}
	if result.Failed[0].Item != "Brake Pad" {
		t.Fatalf("expected failed item Brake Pad, got %q", result.Failed[0].Item)
	}
	if !strings.Contains(result.Failed[0].Error, "connection reset") {
		t.Fatalf("expected underlying error message, got %q", result.Failed[0].Error)
	}

	// Items applied before and after the failure stay applied
	if len(store.items) != 2 || len(store.movements) != 2 {
		t.Fatalf("expected 2 items and 2 movements, got %d and %d", len(store.items), len(store.movements))
	}
}

func TestRun_SupplierReusedByTaxID(t *testing.T) {
	store := newFakeStore()
	store.CreateSupplier(&supplier.Supplier{WorkshopID: 1, Name: "Existente", TaxID: "12345678000190"})
	imp := NewImporter(store)

	inv := testInvoice(LineItem{Code: "X1", Name: "Oil Filter", Quantity: dec("1"), UnitPrice: dec("1")})
	inv.Supplier = &ParsedSupplier{Name: "Outro Nome", TaxID: "12345678000190"}

	if _, err := imp.Run(1, inv, 7); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(store.suppliers) != 1 {
		t.Fatalf("expected supplier to be reused, got %d suppliers", len(store.suppliers))
	}
}

func TestRun_NewSupplierCreatedOnce(t *testing.T) {
	store := newFakeStore()
	imp := NewImporter(store)

	inv := testInvoice(
		LineItem{Code: "X1", Name: "Oil Filter", Quantity: dec("1"), UnitPrice: dec("1")},
		LineItem{Code: "B2", Name: "Brake Pad", Quantity: dec("1"), UnitPrice: dec("1")},
	)
	inv.Supplier = &ParsedSupplier{Name: "Fornecedor Novo", TaxID: "99887766000155", City: "Campinas"}

	if _, err := imp.Run(1, inv, 7); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(store.suppliers) != 1 {
		t.Fatalf("expected exactly 1 supplier, got %d", len(store.suppliers))
	}
	if store.suppliers[0].City != "Campinas" {
		t.Fatalf("expected parsed supplier fields persisted, got %+v", store.suppliers[0])
	}
}

func TestRun_SupplierFailureIsFatal(t *testing.T) {
	store := newFakeStore()
	store.failSupplierFind = errors.New("database unavailable")
	imp := NewImporter(store)

	inv := testInvoice(LineItem{Code: "X1", Name: "Oil Filter", Quantity: dec("1"), UnitPrice: dec("1")})
	inv.Supplier = &ParsedSupplier{Name: "Fornecedor", TaxID: "111"}

	_, err := imp.Run(1, inv, 7)
	if err == nil {
		t.Fatal("expected fatal error from supplier resolution")
	}

	if len(store.items) != 0 || len(store.movements) != 0 {
		t.Fatal("expected no item writes after fatal supplier failure")
	}
}

func TestRun_MovementReasonCarriesInvoiceNumber(t *testing.T) {
	store := newFakeStore()
	imp := NewImporter(store)

	inv := testInvoice(
		LineItem{Code: "X1", Name: "Oil Filter", Quantity: dec("2"), UnitPrice: dec("10")},
		LineItem{Code: "B2", Name: "Brake Pad", Quantity: dec("3"), UnitPrice: dec("20")},
	)
	inv.InvoiceNumber = "IMP-1725000000000" // synthetic numbers flow through unchanged

	if _, err := imp.Run(1, inv, 7); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	for _, m := range store.movements {
		if !strings.Contains(m.Reason, "IMP-1725000000000") {
			t.Fatalf("expected reason to reference invoice number, got %q", m.Reason)
		}
		if m.ReferenceID != "IMP-1725000000000" {
			t.Fatalf("expected reference id to be the invoice number, got %q", m.ReferenceID)
		}
	}
}
