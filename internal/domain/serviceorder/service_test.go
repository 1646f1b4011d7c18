// internal/domain/serviceorder/service_test.go
package serviceorder

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestApplyTotals(t *testing.T) {
	cases := []struct {
		name     string
		items    []OrderItem
		discount string
		labor    string
		parts    string
		total    string
	}{
		{
			name: "labor and parts split by kind",
			items: []OrderItem{
				{ItemKind: "service", Total: dec("150")},
				{ItemKind: "product", Total: dec("80.50")},
				{ItemKind: "product", Total: dec("19.50")},
			},
			discount: "0",
			labor:    "150",
			parts:    "100",
			total:    "250",
		},
		{
			name: "discount subtracted from total",
			items: []OrderItem{
				{ItemKind: "service", Total: dec("200")},
			},
			discount: "50",
			labor:    "200",
			parts:    "0",
			total:    "150",
		},
		{
			name:     "discount larger than sum clamps at zero",
			items:    []OrderItem{{ItemKind: "product", Total: dec("30")}},
			discount: "100",
			labor:    "0",
			parts:    "30",
			total:    "0",
		},
	}

	svc := &Service{}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := &ServiceOrder{Items: tc.items, DiscountAmount: dec(tc.discount)}
			svc.applyTotals(order)

			if !order.LaborAmount.Equal(dec(tc.labor)) {
				t.Errorf("labor = %s, want %s", order.LaborAmount, tc.labor)
			}
			if !order.PartsAmount.Equal(dec(tc.parts)) {
				t.Errorf("parts = %s, want %s", order.PartsAmount, tc.parts)
			}
			if !order.TotalAmount.Equal(dec(tc.total)) {
				t.Errorf("total = %s, want %s", order.TotalAmount, tc.total)
			}
		})
	}
}

func TestOrderTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusOpen, StatusInProgress, true},
		{StatusOpen, StatusCancelled, true},
		{StatusOpen, StatusFinished, false},
		{StatusOpen, StatusDelivered, false},
		{StatusInProgress, StatusFinished, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusInProgress, StatusDelivered, false},
		{StatusFinished, StatusDelivered, true},
		{StatusFinished, StatusCancelled, false},
		{StatusDelivered, StatusOpen, false},
		{StatusCancelled, StatusInProgress, false},
	}

	for _, tc := range cases {
		order := &ServiceOrder{Status: tc.from}
		if got := order.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}
