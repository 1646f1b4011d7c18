// internal/domain/invoiceimport/parser.go
package invoiceimport

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// NFe documents arrive either wrapped in <nfeProc> or as a bare <NFe>
// element. Both carry the payload under infNFe.
type xmlRoot struct {
	XMLName xml.Name
	NFe     *xmlNFe    `xml:"NFe"`
	InfNFe  *xmlInfNFe `xml:"infNFe"`
}

type xmlNFe struct {
	InfNFe *xmlInfNFe `xml:"infNFe"`
}

type xmlInfNFe struct {
	Ide  xmlIde   `xml:"ide"`
	Emit xmlEmit  `xml:"emit"`
	Det  []xmlDet `xml:"det"`
}

type xmlIde struct {
	NNF string `xml:"nNF"`
}

type xmlEmit struct {
	CNPJ  string       `xml:"CNPJ"`
	CPF   string       `xml:"CPF"`
	XNome string       `xml:"xNome"`
	Email string       `xml:"email"`
	Ender xmlEnderEmit `xml:"enderEmit"`
}

type xmlEnderEmit struct {
	XLgr    string `xml:"xLgr"`
	Nro     string `xml:"nro"`
	XBairro string `xml:"xBairro"`
	XMun    string `xml:"xMun"`
	UF      string `xml:"UF"`
	CEP     string `xml:"CEP"`
	Fone    string `xml:"fone"`
}

type xmlDet struct {
	Prod xmlProd `xml:"prod"`
}

type xmlProd struct {
	CProd  string `xml:"cProd"`
	XProd  string `xml:"xProd"`
	QCom   string `xml:"qCom"`
	VUnCom string `xml:"vUnCom"`
}

// Parse converts a raw NFe XML blob into a ParsedInvoice.
//
// The issuer is extracted only when both a tax id and a name are present;
// missing optional issuer fields are left empty. A line item is kept only
// when both its code and description are non-empty. Quantity and unit price
// fall back to 1 and 0 via coerceDecimal when absent or non-numeric.
func Parse(data []byte) (*ParsedInvoice, error) {
	var root xmlRoot
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	inf := root.InfNFe
	if inf == nil && root.NFe != nil {
		inf = root.NFe.InfNFe
	}
	if inf == nil {
		return nil, fmt.Errorf("%w: missing infNFe element", ErrInvalidDocument)
	}

	invoice := &ParsedInvoice{
		Products:      make([]LineItem, 0, len(inf.Det)),
		InvoiceNumber: strings.TrimSpace(inf.Ide.NNF),
	}

	// No idempotency: a document without a number gets a fresh synthetic
	// number on every import.
	if invoice.InvoiceNumber == "" {
		invoice.InvoiceNumber = fmt.Sprintf("IMP-%d", time.Now().UnixMilli())
	}

	invoice.Supplier = parseSupplier(&inf.Emit)

	for _, det := range inf.Det {
		code := strings.TrimSpace(det.Prod.CProd)
		name := strings.TrimSpace(det.Prod.XProd)
		if code == "" || name == "" {
			// Filtered here, never reported as a reconciliation failure
			continue
		}

		invoice.Products = append(invoice.Products, LineItem{
			Code:      code,
			Name:      name,
			Quantity:  coerceDecimal(det.Prod.QCom, decimal.NewFromInt(1)),
			UnitPrice: coerceDecimal(det.Prod.VUnCom, decimal.Zero),
		})
	}

	return invoice, nil
}

// parseSupplier extracts the issuer. Both the tax id and the name are
// required; everything else is best-effort.
func parseSupplier(emit *xmlEmit) *ParsedSupplier {
	taxID := strings.TrimSpace(emit.CNPJ)
	if taxID == "" {
		taxID = strings.TrimSpace(emit.CPF)
	}
	name := strings.TrimSpace(emit.XNome)
	if taxID == "" || name == "" {
		return nil
	}

	sup := &ParsedSupplier{
		Name:       name,
		TaxID:      taxID,
		Email:      strings.TrimSpace(emit.Email),
		Phone:      strings.TrimSpace(emit.Ender.Fone),
		City:       strings.TrimSpace(emit.Ender.XMun),
		State:      strings.TrimSpace(emit.Ender.UF),
		PostalCode: strings.TrimSpace(emit.Ender.CEP),
	}

	street := strings.TrimSpace(emit.Ender.XLgr)
	number := strings.TrimSpace(emit.Ender.Nro)
	switch {
	case street != "" && number != "":
		sup.Address = street + ", " + number
	case street != "":
		sup.Address = street
	}

	return sup
}

// coerceDecimal converts a raw document field to a decimal, falling back
// to the given default when the field is absent or non-numeric. Invoice
// fields are coerced, never rejected.
func coerceDecimal(raw string, fallback decimal.Decimal) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fallback
	}
	return d
}
