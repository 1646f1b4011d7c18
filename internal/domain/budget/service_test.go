// internal/domain/budget/service_test.go
package budget

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeTotals(t *testing.T) {
	cases := []struct {
		name      string
		items     []BudgetItem
		discount  string
		wantLabor string
		wantParts string
		wantTotal string
	}{
		{
			name: "parts and labor",
			items: []BudgetItem{
				{ItemKind: "product", Total: dec("150.00")},
				{ItemKind: "product", Total: dec("49.90")},
				{ItemKind: "service", Total: dec("200.00")},
			},
			discount:  "0",
			wantLabor: "200",
			wantParts: "199.9",
			wantTotal: "399.9",
		},
		{
			name: "discount applied",
			items: []BudgetItem{
				{ItemKind: "service", Total: dec("100.00")},
			},
			discount:  "15.50",
			wantLabor: "100",
			wantParts: "0",
			wantTotal: "84.5",
		},
		{
			name: "discount larger than total clamps to zero",
			items: []BudgetItem{
				{ItemKind: "product", Total: dec("10.00")},
			},
			discount:  "50",
			wantLabor: "0",
			wantParts: "10",
			wantTotal: "0",
		},
	}

	for _, tc := range cases {
		labor, parts, total := ComputeTotals(tc.items, dec(tc.discount))
		if labor.String() != tc.wantLabor {
			t.Fatalf("%s: expected labor %s, got %s", tc.name, tc.wantLabor, labor.String())
		}
		if parts.String() != tc.wantParts {
			t.Fatalf("%s: expected parts %s, got %s", tc.name, tc.wantParts, parts.String())
		}
		if total.String() != tc.wantTotal {
			t.Fatalf("%s: expected total %s, got %s", tc.name, tc.wantTotal, total.String())
		}
	}
}

func TestBudgetTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusExpired, true},
		{StatusApproved, StatusRejected, false},
		{StatusRejected, StatusApproved, false},
		{StatusExpired, StatusApproved, false},
	}

	for _, tc := range cases {
		b := &Budget{Status: tc.from}
		if got := b.CanTransitionTo(tc.to); got != tc.allowed {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestBudgetIsExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	if (&Budget{ValidUntil: &past}).IsExpired() != true {
		t.Fatal("expected budget with past validity to be expired")
	}
	if (&Budget{ValidUntil: &future}).IsExpired() != false {
		t.Fatal("expected budget with future validity to be valid")
	}
	if (&Budget{}).IsExpired() != false {
		t.Fatal("expected budget without validity to never expire")
	}
}
