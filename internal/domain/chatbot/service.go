// internal/domain/chatbot/service.go
package chatbot

import (
	"strings"

	"github.com/your-org/workshop-backend/internal/config"
)

// Service answers client questions with canned replies
type Service struct {
	config *config.Config
	rules  []rule
}

// rule maps keywords to a reply. Rules are checked in order, first match wins.
type rule struct {
	keywords []string
	reply    string
}

// Reply is the chatbot answer to one message
type Reply struct {
	Message string `json:"message"`
	Matched bool   `json:"matched"`
}

// AskRequest represents an incoming chat message
type AskRequest struct {
	Message string `json:"message" binding:"required"`
}

// NewService creates a new chatbot service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		rules: []rule{
			{
				keywords: []string{"horário", "horario", "aberto", "funcionamento"},
				reply:    "Atendemos de segunda a sexta, das 8h às 18h, e aos sábados das 8h às 12h.",
			},
			{
				keywords: []string{"orçamento", "orcamento", "quanto custa", "preço", "preco"},
				reply:    "Para um orçamento, traga seu veículo até a oficina ou agende uma avaliação. O orçamento é gratuito.",
			},
			{
				keywords: []string{"agendar", "agendamento", "marcar", "horário disponível"},
				reply:    "Para agendar um serviço, entre em contato por telefone ou responda com a data e o horário desejados.",
			},
			{
				keywords: []string{"pronto", "ficou pronto", "status", "andamento", "meu carro"},
				reply:    "Para consultar o andamento do seu serviço, informe o número da ordem de serviço.",
			},
			{
				keywords: []string{"endereço", "endereco", "onde fica", "localização", "localizacao"},
				reply:    "Você encontra nosso endereço e como chegar na página de contato da oficina.",
			},
			{
				keywords: []string{"garantia"},
				reply:    "Nossos serviços têm garantia de 90 dias, e as peças seguem a garantia do fabricante.",
			},
			{
				keywords: []string{"pagamento", "cartão", "cartao", "pix", "parcelar"},
				reply:    "Aceitamos dinheiro, PIX e cartões de crédito e débito, com opção de parcelamento.",
			},
		},
	}
}

// Ask matches the message against the rules and returns the first reply
func (s *Service) Ask(message string) *Reply {
	normalized := strings.ToLower(strings.TrimSpace(message))
	if normalized == "" {
		return s.fallback()
	}

	for _, r := range s.rules {
		for _, kw := range r.keywords {
			if strings.Contains(normalized, kw) {
				return &Reply{Message: r.reply, Matched: true}
			}
		}
	}
	return s.fallback()
}

func (s *Service) fallback() *Reply {
	return &Reply{
		Message: "Não entendi sua mensagem. Posso ajudar com horários, orçamentos, agendamentos ou o andamento do seu serviço.",
		Matched: false,
	}
}
