// internal/domain/invoiceimport/entity.go
package invoiceimport

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidDocument indicates the uploaded file could not be parsed as an NFe document
	ErrInvalidDocument = errors.New("invalid invoice document")

	// ErrNoProducts indicates the document parsed but contained no usable line items
	ErrNoProducts = errors.New("no products found in invoice")
)

// LineItem is one row of a parsed invoice: a purchased quantity of one product
type LineItem struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// ParsedSupplier holds the issuer data extracted from the invoice.
// Name and TaxID are always set; the remaining fields may be empty.
type ParsedSupplier struct {
	Name       string `json:"name"`
	TaxID      string `json:"tax_id"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// ParsedInvoice is the parser output. Products is never nil; Supplier is
// nil when the issuer block lacked a tax id or a name.
type ParsedInvoice struct {
	Supplier      *ParsedSupplier `json:"supplier,omitempty"`
	Products      []LineItem      `json:"products"`
	InvoiceNumber string          `json:"invoice_number"`
}

// ItemError records a line item that failed during reconciliation
type ItemError struct {
	Item  string `json:"item"`
	Error string `json:"error"`
}

// ImportResult is the in-memory ledger of one import run. It is returned
// to the caller and never persisted.
type ImportResult struct {
	InvoiceNumber string      `json:"invoice_number"`
	Processed     []LineItem  `json:"processed"`
	Created       []LineItem  `json:"created"`
	Updated       []LineItem  `json:"updated"`
	Failed        []ItemError `json:"failed"`
}
