// internal/domain/chatbot/service_test.go
package chatbot

import (
	"strings"
	"testing"
)

func TestAsk(t *testing.T) {
	svc := NewService(nil)

	cases := []struct {
		name    string
		message string
		contains string
		matched bool
	}{
		{"opening hours", "Qual o horário de funcionamento?", "segunda a sexta", true},
		{"quote request", "quanto custa trocar o óleo?", "orçamento", true},
		{"booking", "quero agendar uma revisão", "agendar", true},
		{"order status", "meu carro já ficou pronto?", "ordem de serviço", true},
		{"case insensitive", "GARANTIA das peças", "90 dias", true},
		{"unknown message", "qwerty asdf", "Não entendi", false},
		{"empty message", "   ", "Não entendi", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reply := svc.Ask(tc.message)
			if reply.Matched != tc.matched {
				t.Errorf("Matched = %v, want %v", reply.Matched, tc.matched)
			}
			if !strings.Contains(reply.Message, tc.contains) {
				t.Errorf("reply %q does not contain %q", reply.Message, tc.contains)
			}
		})
	}
}

func TestAskFirstRuleWins(t *testing.T) {
	svc := NewService(nil)

	// "horário" appears in the opening-hours rule before the booking rule.
	reply := svc.Ask("qual o horário para agendar?")
	if !reply.Matched {
		t.Fatal("expected a match")
	}
	if !strings.Contains(reply.Message, "segunda a sexta") {
		t.Errorf("expected the opening-hours reply, got %q", reply.Message)
	}
}
