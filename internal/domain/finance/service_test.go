// internal/domain/finance/service_test.go
package finance

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

func TestComputeSummary(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	transactions := []Transaction{
		{Type: TypeReceivable, Status: StatusPaid, Amount: dec("500"), DueDate: yesterday},
		{Type: TypeReceivable, Status: StatusPending, Amount: dec("300"), DueDate: tomorrow},
		{Type: TypeReceivable, Status: StatusPending, Amount: dec("120"), DueDate: yesterday}, // overdue
		{Type: TypePayable, Status: StatusPaid, Amount: dec("200"), DueDate: yesterday},
		{Type: TypePayable, Status: StatusPending, Amount: dec("80"), DueDate: yesterday}, // overdue
		{Type: TypePayable, Status: StatusCancelled, Amount: dec("999"), DueDate: yesterday},
	}

	summary := ComputeSummary(transactions, now)

	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"total receivable", summary.TotalReceivable, "920"},
		{"total payable", summary.TotalPayable, "280"},
		{"received", summary.ReceivedAmount, "500"},
		{"paid", summary.PaidAmount, "200"},
		{"overdue receivable", summary.OverdueReceivable, "120"},
		{"overdue payable", summary.OverduePayable, "80"},
		{"balance", summary.Balance, "300"},
	}
	for _, c := range checks {
		if !c.got.Equal(dec(c.want)) {
			t.Errorf("%s = %s, want %s", c.name, c.got, c.want)
		}
	}
}

func TestTransactionIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		status TransactionStatus
		due    time.Time
		want   bool
	}{
		{"pending past due", StatusPending, now.AddDate(0, 0, -2), true},
		{"pending not yet due", StatusPending, now.AddDate(0, 0, 2), false},
		{"paid past due", StatusPaid, now.AddDate(0, 0, -2), false},
		{"cancelled past due", StatusCancelled, now.AddDate(0, 0, -2), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := &Transaction{Status: tc.status, DueDate: tc.due}
			if got := tr.IsOverdue(now); got != tc.want {
				t.Errorf("IsOverdue = %v, want %v", got, tc.want)
			}
		})
	}
}
