// internal/pkg/email/service.go
package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/your-org/workshop-backend/internal/config"
)

// Email represents an outgoing message
type Email struct {
	To          []string
	Subject     string
	HTMLContent string
}

// EmailService handles all email operations
type EmailService struct {
	config *config.Config
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		config: cfg,
	}
}

// SendEmail sends an email using the configured provider
func (s *EmailService) SendEmail(email *Email) error {
	switch s.config.Email.Provider {
	case "smtp":
		return s.sendSMTPEmail(email)
	case "none", "":
		// Email delivery disabled, nothing to do.
		return nil
	default:
		return fmt.Errorf("unsupported email provider: %s", s.config.Email.Provider)
	}
}

// SendWelcomeEmail greets a newly registered workshop admin
func (s *EmailService) SendWelcomeEmail(userEmail, userName, workshopName string) error {
	htmlContent, err := renderTemplate(welcomeTemplate, map[string]string{
		"UserName":     userName,
		"WorkshopName": workshopName,
		"AppName":      s.config.App.Name,
	})
	if err != nil {
		return fmt.Errorf("failed to render welcome email: %w", err)
	}

	return s.SendEmail(&Email{
		To:          []string{userEmail},
		Subject:     fmt.Sprintf("Bem-vindo ao %s!", s.config.App.Name),
		HTMLContent: htmlContent,
	})
}

// SendBudgetEmail delivers a budget summary to the client
func (s *EmailService) SendBudgetEmail(clientEmail, clientName, budgetNumber, total string) error {
	htmlContent, err := renderTemplate(budgetTemplate, map[string]string{
		"ClientName":   clientName,
		"BudgetNumber": budgetNumber,
		"Total":        total,
		"CompanyName":  s.config.App.CompanyName,
		"CompanyPhone": s.config.App.CompanyPhone,
	})
	if err != nil {
		return fmt.Errorf("failed to render budget email: %w", err)
	}

	return s.SendEmail(&Email{
		To:          []string{clientEmail},
		Subject:     fmt.Sprintf("Orçamento %s - %s", budgetNumber, s.config.App.CompanyName),
		HTMLContent: htmlContent,
	})
}

// SendAppointmentReminder reminds a client of an upcoming appointment
func (s *EmailService) SendAppointmentReminder(clientEmail, clientName, title, when string) error {
	htmlContent, err := renderTemplate(appointmentTemplate, map[string]string{
		"ClientName":  clientName,
		"Title":       title,
		"When":        when,
		"CompanyName": s.config.App.CompanyName,
	})
	if err != nil {
		return fmt.Errorf("failed to render appointment email: %w", err)
	}

	return s.SendEmail(&Email{
		To:          []string{clientEmail},
		Subject:     fmt.Sprintf("Lembrete de agendamento - %s", s.config.App.CompanyName),
		HTMLContent: htmlContent,
	})
}

func renderTemplate(text string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(text)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const welcomeTemplate = `
<html><body style="font-family: Arial, sans-serif; color: #333;">
<h2>Olá, {{.UserName}}!</h2>
<p>A oficina <strong>{{.WorkshopName}}</strong> foi cadastrada no {{.AppName}}.</p>
<p>Seu período de avaliação já está ativo. Bom trabalho!</p>
</body></html>
`

const budgetTemplate = `
<html><body style="font-family: Arial, sans-serif; color: #333;">
<h2>Olá, {{.ClientName}}!</h2>
<p>Seu orçamento <strong>{{.BudgetNumber}}</strong> está pronto.</p>
<p>Valor total: <strong>{{.Total}}</strong></p>
<p>Em caso de dúvidas, fale com a {{.CompanyName}} pelo {{.CompanyPhone}}.</p>
</body></html>
`

const appointmentTemplate = `
<html><body style="font-family: Arial, sans-serif; color: #333;">
<h2>Olá, {{.ClientName}}!</h2>
<p>Lembrete do seu agendamento: <strong>{{.Title}}</strong></p>
<p>Data e horário: <strong>{{.When}}</strong></p>
<p>Até breve, equipe {{.CompanyName}}.</p>
</body></html>
`
