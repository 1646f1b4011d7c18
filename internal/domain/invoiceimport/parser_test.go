// internal/domain/invoiceimport/parser_test.go
package invoiceimport

import (
	"errors"
	"strings"
	"testing"
)

const sampleNFe = `<?xml version="1.0" encoding="UTF-8"?>
<nfeProc xmlns="http://www.portalfiscal.inf.br/nfe" versao="4.00">
  <NFe>
    <infNFe Id="NFe35240112345678000190550010000123451000123456" versao="4.00">
      <ide>
        <nNF>12345</nNF>
      </ide>
      <emit>
        <CNPJ>12345678000190</CNPJ>
        <xNome>Auto Pecas Silva LTDA</xNome>
        <enderEmit>
          <xLgr>Rua das Oficinas</xLgr>
          <nro>100</nro>
          <xMun>Sao Paulo</xMun>
          <UF>SP</UF>
          <CEP>01234000</CEP>
          <fone>1133334444</fone>
        </enderEmit>
        <email>vendas@autopecassilva.com.br</email>
      </emit>
      <det nItem="1">
        <prod>
          <cProd>X1</cProd>
          <xProd>Oil Filter</xProd>
          <qCom>10</qCom>
          <vUnCom>25.50</vUnCom>
        </prod>
      </det>
      <det nItem="2">
        <prod>
          <cProd>B2</cProd>
          <xProd>Brake Pad</xProd>
          <qCom>4.0000</qCom>
          <vUnCom>89.90</vUnCom>
        </prod>
      </det>
    </infNFe>
  </NFe>
</nfeProc>`

func TestParse_FullDocument(t *testing.T) {
	inv, err := Parse([]byte(sampleNFe))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if inv.InvoiceNumber != "12345" {
		t.Fatalf("expected invoice number 12345, got %q", inv.InvoiceNumber)
	}

	if inv.Supplier == nil {
		t.Fatal("expected supplier to be parsed")
	}
	if inv.Supplier.TaxID != "12345678000190" {
		t.Fatalf("expected supplier tax id 12345678000190, got %q", inv.Supplier.TaxID)
	}
	if inv.Supplier.Name != "Auto Pecas Silva LTDA" {
		t.Fatalf("unexpected supplier name %q", inv.Supplier.Name)
	}
	if inv.Supplier.Address != "Rua das Oficinas, 100" {
		t.Fatalf("unexpected supplier address %q", inv.Supplier.Address)
	}
	if inv.Supplier.State != "SP" {
		t.Fatalf("unexpected supplier state %q", inv.Supplier.State)
	}

	if len(inv.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(inv.Products))
	}
	first := inv.Products[0]
	if first.Code != "X1" || first.Name != "Oil Filter" {
		t.Fatalf("unexpected first product %+v", first)
	}
	if first.Quantity.String() != "10" {
		t.Fatalf("expected quantity 10, got %s", first.Quantity.String())
	}
	if first.UnitPrice.String() != "25.5" {
		t.Fatalf("expected unit price 25.5, got %s", first.UnitPrice.String())
	}
}

func TestParse_BareNFeRoot(t *testing.T) {
	doc := `<NFe><infNFe><ide><nNF>77</nNF></ide><emit/><det><prod><cProd>A</cProd><xProd>Part</xProd><qCom>1</qCom><vUnCom>2</vUnCom></prod></det></infNFe></NFe>`

	inv, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if inv.InvoiceNumber != "77" {
		t.Fatalf("expected invoice number 77, got %q", inv.InvoiceNumber)
	}
	if len(inv.Products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(inv.Products))
	}
}

func TestParse_SupplierRequiresTaxIDAndName(t *testing.T) {
	cases := []struct {
		name string
		emit string
	}{
		{"missing tax id", `<emit><xNome>Fornecedor</xNome></emit>`},
		{"missing name", `<emit><CNPJ>12345678000190</CNPJ></emit>`},
		{"empty emit", `<emit/>`},
	}

	for _, tc := range cases {
		doc := `<nfeProc><NFe><infNFe><ide><nNF>1</nNF></ide>` + tc.emit +
			`<det><prod><cProd>A</cProd><xProd>Part</xProd></prod></det></infNFe></NFe></nfeProc>`

		inv, err := Parse([]byte(doc))
		if err != nil {
			t.Fatalf("%s: Parse returned error: %v", tc.name, err)
		}
		if inv.Supplier != nil {
			t.Fatalf("%s: expected nil supplier, got %+v", tc.name, inv.Supplier)
		}
		// Items still parse without a supplier
		if len(inv.Products) != 1 {
			t.Fatalf("%s: expected 1 product, got %d", tc.name, len(inv.Products))
		}
	}
}

func TestParse_SupplierOptionalFieldsTolerated(t *testing.T) {
	doc := `<nfeProc><NFe><infNFe><ide><nNF>1</nNF></ide>
		<emit><CNPJ>111</CNPJ><xNome>Fornecedor</xNome></emit>
		<det><prod><cProd>A</cProd><xProd>Part</xProd></prod></det>
	</infNFe></NFe></nfeProc>`

	inv, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if inv.Supplier == nil {
		t.Fatal("expected supplier to be parsed")
	}
	if inv.Supplier.Email != "" || inv.Supplier.Phone != "" || inv.Supplier.Address != "" {
		t.Fatalf("expected optional fields empty, got %+v", inv.Supplier)
	}
}

func TestParse_ItemsMissingCodeOrNameAreDropped(t *testing.T) {
	doc := `<nfeProc><NFe><infNFe><ide><nNF>1</nNF></ide><emit/>
		<det><prod><cProd></cProd><xProd>No Code</xProd><qCom>1</qCom></prod></det>
		<det><prod><cProd>C2</cProd><xProd></xProd><qCom>1</qCom></prod></det>
		<det><prod><cProd>C3</cProd><xProd>Kept</xProd><qCom>1</qCom></prod></det>
	</infNFe></NFe></nfeProc>`

	inv, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(inv.Products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(inv.Products))
	}
	if inv.Products[0].Code != "C3" {
		t.Fatalf("expected surviving product C3, got %q", inv.Products[0].Code)
	}
}

func TestParse_NumericCoercionDefaults(t *testing.T) {
	cases := []struct {
		name          string
		qCom, vUnCom  string
		wantQty       string
		wantUnitPrice string
	}{
		{"both valid", "<qCom>3</qCom>", "<vUnCom>9.90</vUnCom>", "3", "9.9"},
		{"missing quantity", "", "<vUnCom>9.90</vUnCom>", "1", "9.9"},
		{"non-numeric quantity", "<qCom>abc</qCom>", "<vUnCom>9.90</vUnCom>", "1", "9.9"},
		{"missing price", "<qCom>3</qCom>", "", "3", "0"},
		{"non-numeric price", "<qCom>3</qCom>", "<vUnCom>N/A</vUnCom>", "3", "0"},
		{"both missing", "", "", "1", "0"},
	}

	for _, tc := range cases {
		doc := `<nfeProc><NFe><infNFe><ide><nNF>1</nNF></ide><emit/>
			<det><prod><cProd>A</cProd><xProd>Part</xProd>` + tc.qCom + tc.vUnCom + `</prod></det>
		</infNFe></NFe></nfeProc>`

		inv, err := Parse([]byte(doc))
		if err != nil {
			t.Fatalf("%s: Parse returned error: %v", tc.name, err)
		}
		if len(inv.Products) != 1 {
			t.Fatalf("%s: expected 1 product, got %d", tc.name, len(inv.Products))
		}
		item := inv.Products[0]
		if item.Quantity.String() != tc.wantQty {
			t.Fatalf("%s: expected quantity %s, got %s", tc.name, tc.wantQty, item.Quantity.String())
		}
		if item.UnitPrice.String() != tc.wantUnitPrice {
			t.Fatalf("%s: expected unit price %s, got %s", tc.name, tc.wantUnitPrice, item.UnitPrice.String())
		}
	}
}

func TestParse_MissingInvoiceNumberSynthesized(t *testing.T) {
	doc := `<nfeProc><NFe><infNFe><ide/><emit/>
		<det><prod><cProd>A</cProd><xProd>Part</xProd></prod></det>
	</infNFe></NFe></nfeProc>`

	inv, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if inv.InvoiceNumber == "" {
		t.Fatal("expected synthetic invoice number, got empty string")
	}
	if !strings.HasPrefix(inv.InvoiceNumber, "IMP-") {
		t.Fatalf("expected synthetic IMP- prefix, got %q", inv.InvoiceNumber)
	}
}

func TestParse_StructuralFailure(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"not xml", "this is not an invoice"},
		{"truncated xml", "<nfeProc><NFe><infNFe>"},
		{"xml without infNFe", "<nfeProc><outroElemento/></nfeProc>"},
	}

	for _, tc := range cases {
		_, err := Parse([]byte(tc.doc))
		if err == nil {
			t.Fatalf("%s: expected error, got nil", tc.name)
		}
		if !errors.Is(err, ErrInvalidDocument) {
			t.Fatalf("%s: expected ErrInvalidDocument, got %v", tc.name, err)
		}
	}
}

func TestParse_EmptyDetProducesEmptySlice(t *testing.T) {
	doc := `<nfeProc><NFe><infNFe><ide><nNF>5</nNF></ide><emit/></infNFe></NFe></nfeProc>`

	inv, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if inv.Products == nil {
		t.Fatal("Products must never be nil")
	}
	if len(inv.Products) != 0 {
		t.Fatalf("expected no products, got %d", len(inv.Products))
	}
}
