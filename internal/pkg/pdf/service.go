// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/shopspring/decimal"

	"github.com/your-org/workshop-backend/internal/config"
	"github.com/your-org/workshop-backend/internal/domain/budget"
	"github.com/your-org/workshop-backend/internal/domain/serviceorder"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// PartyInfo carries client and vehicle details printed on the document
type PartyInfo struct {
	ClientName  string
	ClientPhone string
	ClientEmail string
	Vehicle     string
	Plate       string
}

// GenerateBudget generates a PDF printout of a budget
func (s *Service) GenerateBudget(b *budget.Budget, party PartyInfo) (*bytes.Buffer, error) {
	data := documentData{
		Title:      "ORÇAMENTO",
		Number:     b.Number,
		Date:       b.CreatedAt.Format("02/01/2006"),
		Status:     string(b.Status),
		Party:      party,
		Company:    s.companyInfo(),
		Labor:      money(b.LaborAmount),
		Parts:      money(b.PartsAmount),
		Discount:   money(b.DiscountAmount),
		Total:      money(b.TotalAmount),
		HasDiscount: b.DiscountAmount.IsPositive(),
	}
	if b.ValidUntil != nil {
		data.ValidUntil = b.ValidUntil.Format("02/01/2006")
	}
	for _, item := range b.Items {
		data.Lines = append(data.Lines, lineData{
			Name:      item.Name,
			Kind:      kindLabel(item.ItemKind),
			Quantity:  item.Quantity.String(),
			UnitPrice: money(item.UnitPrice),
			Total:     money(item.Total),
		})
	}

	return s.render(data)
}

// GenerateServiceOrder generates a PDF printout of a service order
func (s *Service) GenerateServiceOrder(o *serviceorder.ServiceOrder, party PartyInfo) (*bytes.Buffer, error) {
	data := documentData{
		Title:       "ORDEM DE SERVIÇO",
		Number:      o.Number,
		Date:        o.CreatedAt.Format("02/01/2006"),
		Status:      string(o.Status),
		Description: o.Description,
		Diagnosis:   o.Diagnosis,
		Party:       party,
		Company:     s.companyInfo(),
		Labor:       money(o.LaborAmount),
		Parts:       money(o.PartsAmount),
		Discount:    money(o.DiscountAmount),
		Total:       money(o.TotalAmount),
		HasDiscount: o.DiscountAmount.IsPositive(),
	}
	for _, item := range o.Items {
		data.Lines = append(data.Lines, lineData{
			Name:      item.Name,
			Kind:      kindLabel(item.ItemKind),
			Quantity:  item.Quantity.String(),
			UnitPrice: money(item.UnitPrice),
			Total:     money(item.Total),
		})
	}

	return s.render(data)
}

// render converts the document HTML to PDF
func (s *Service) render(data documentData) (*bytes.Buffer, error) {
	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	// Set PDF options
	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	// Add page from HTML content
	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	err = pdfg.Create()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data documentData) (string, error) {
	tmpl := template.Must(template.New("document").Parse(documentTemplate))

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

func (s *Service) companyInfo() companyInfo {
	return companyInfo{
		Name:    s.config.App.CompanyName,
		Address: s.config.App.CompanyAddress,
		Phone:   s.config.App.CompanyPhone,
		Email:   s.config.App.CompanyEmail,
		Website: s.config.App.CompanyWebsite,
	}
}

func money(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}

func kindLabel(kind string) string {
	if kind == "service" {
		return "Serviço"
	}
	return "Peça"
}

// documentData represents the data passed to the document template
type documentData struct {
	Title       string
	Number      string
	Date        string
	ValidUntil  string
	Status      string
	Description string
	Diagnosis   string
	Party       PartyInfo
	Company     companyInfo
	Lines       []lineData
	Labor       string
	Parts       string
	Discount    string
	Total       string
	HasDiscount bool
}

type lineData struct {
	Name      string
	Kind      string
	Quantity  string
	UnitPrice string
	Total     string
}

type companyInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
	Website string
}

// Document HTML template
const documentTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Title}} {{.Number}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        .header {
            display: flex;
            justify-content: space-between;
            margin-bottom: 30px;
            border-bottom: 2px solid #eee;
            padding-bottom: 20px;
        }
        .company-info {
            flex: 1;
        }
        .document-info {
            text-align: right;
            flex: 1;
        }
        .document-title {
            font-size: 28px;
            font-weight: bold;
            color: #2563eb;
            margin-bottom: 10px;
        }
        .party-info {
            margin-bottom: 30px;
        }
        .section-title {
            font-size: 16px;
            font-weight: bold;
            margin-bottom: 10px;
            color: #374151;
        }
        .items-table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 30px;
        }
        .items-table th,
        .items-table td {
            border: 1px solid #ddd;
            padding: 12px 8px;
            text-align: left;
        }
        .items-table th {
            background-color: #f8f9fa;
            font-weight: bold;
        }
        .items-table .qty-col,
        .items-table .price-col,
        .items-table .total-col {
            text-align: right;
            width: 100px;
        }
        .totals {
            float: right;
            width: 300px;
        }
        .totals table {
            width: 100%;
            border-collapse: collapse;
        }
        .totals td {
            padding: 8px;
            border-bottom: 1px solid #eee;
        }
        .totals .label {
            text-align: right;
            font-weight: bold;
        }
        .totals .amount {
            text-align: right;
            width: 120px;
        }
        .total-row {
            font-size: 18px;
            font-weight: bold;
            border-top: 2px solid #333 !important;
        }
        .footer {
            margin-top: 50px;
            padding-top: 20px;
            border-top: 1px solid #eee;
            text-align: center;
            color: #666;
            font-size: 12px;
        }
        .status-badge {
            display: inline-block;
            padding: 4px 8px;
            border-radius: 4px;
            font-size: 12px;
            font-weight: bold;
            text-transform: uppercase;
            background-color: #f3f4f6;
            color: #374151;
        }
    </style>
</head>
<body>
    <div class="header">
        <div class="company-info">
            <h1>{{.Company.Name}}</h1>
            <p>{{.Company.Address}}</p>
            <p>Telefone: {{.Company.Phone}}</p>
            <p>Email: {{.Company.Email}}</p>
            <p>{{.Company.Website}}</p>
        </div>
        <div class="document-info">
            <div class="document-title">{{.Title}}</div>
            <p><strong>Número:</strong> {{.Number}}</p>
            <p><strong>Data:</strong> {{.Date}}</p>
            {{if .ValidUntil}}<p><strong>Válido até:</strong> {{.ValidUntil}}</p>{{end}}
            <p><span class="status-badge">{{.Status}}</span></p>
        </div>
    </div>

    <div class="party-info">
        <div class="section-title">Cliente</div>
        <p><strong>{{.Party.ClientName}}</strong></p>
        {{if .Party.ClientPhone}}<p>Telefone: {{.Party.ClientPhone}}</p>{{end}}
        {{if .Party.ClientEmail}}<p>Email: {{.Party.ClientEmail}}</p>{{end}}
        {{if .Party.Vehicle}}<p>Veículo: {{.Party.Vehicle}}{{if .Party.Plate}} ({{.Party.Plate}}){{end}}</p>{{end}}
    </div>

    {{if .Description}}
    <div class="party-info">
        <div class="section-title">Descrição</div>
        <p>{{.Description}}</p>
    </div>
    {{end}}

    {{if .Diagnosis}}
    <div class="party-info">
        <div class="section-title">Diagnóstico</div>
        <p>{{.Diagnosis}}</p>
    </div>
    {{end}}

    <table class="items-table">
        <thead>
            <tr>
                <th>Item</th>
                <th>Tipo</th>
                <th class="qty-col">Qtd</th>
                <th class="price-col">Preço Unit.</th>
                <th class="total-col">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Lines}}
            <tr>
                <td><strong>{{.Name}}</strong></td>
                <td>{{.Kind}}</td>
                <td class="qty-col">{{.Quantity}}</td>
                <td class="price-col">{{.UnitPrice}}</td>
                <td class="total-col">{{.Total}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">
        <table>
            <tr>
                <td class="label">Mão de obra:</td>
                <td class="amount">{{.Labor}}</td>
            </tr>
            <tr>
                <td class="label">Peças:</td>
                <td class="amount">{{.Parts}}</td>
            </tr>
            {{if .HasDiscount}}
            <tr>
                <td class="label">Desconto:</td>
                <td class="amount">-{{.Discount}}</td>
            </tr>
            {{end}}
            <tr class="total-row">
                <td class="label">Total:</td>
                <td class="amount">{{.Total}}</td>
            </tr>
        </table>
    </div>

    <div style="clear: both;"></div>

    <div class="footer">
        <p>Obrigado pela preferência!</p>
        <p>Dúvidas sobre este documento? Fale conosco pelo {{.Company.Phone}} ou {{.Company.Email}}</p>
    </div>
</body>
</html>
`
