// internal/domain/subscription/entity_test.go
package subscription

import (
	"testing"
	"time"
)

func TestResolveStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	days := func(n int) time.Time { return now.AddDate(0, 0, n) }
	ptr := func(tm time.Time) *time.Time { return &tm }

	const graceDays = 3

	cases := []struct {
		name string
		sub  Subscription
		want SubscriptionStatus
	}{
		{
			name: "inside trial",
			sub:  Subscription{TrialEndsAt: days(7)},
			want: StatusTrialing,
		},
		{
			name: "trial expired without payment",
			sub:  Subscription{TrialEndsAt: days(-1)},
			want: StatusBlocked,
		},
		{
			name: "paid period active",
			sub:  Subscription{TrialEndsAt: days(-30), PaidUntil: ptr(days(10))},
			want: StatusActive,
		},
		{
			name: "payment wins over expired trial",
			sub:  Subscription{TrialEndsAt: days(-60), PaidUntil: ptr(days(1))},
			want: StatusActive,
		},
		{
			name: "payment lapsed inside grace window",
			sub:  Subscription{TrialEndsAt: days(-30), PaidUntil: ptr(days(-2))},
			want: StatusPastDue,
		},
		{
			name: "payment lapsed past grace window",
			sub:  Subscription{TrialEndsAt: days(-30), PaidUntil: ptr(days(-5))},
			want: StatusBlocked,
		},
		{
			name: "canceled subscription",
			sub:  Subscription{TrialEndsAt: days(30), PaidUntil: ptr(days(30)), CanceledAt: ptr(days(-1))},
			want: StatusCanceled,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.sub.ResolveStatus(now, graceDays); got != tc.want {
				t.Errorf("ResolveStatus = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestStatusAllowsAccess(t *testing.T) {
	allowed := []SubscriptionStatus{StatusTrialing, StatusActive, StatusPastDue}
	denied := []SubscriptionStatus{StatusBlocked, StatusCanceled}

	for _, st := range allowed {
		if !st.AllowsAccess() {
			t.Errorf("status %s should allow access", st)
		}
	}
	for _, st := range denied {
		if st.AllowsAccess() {
			t.Errorf("status %s should deny access", st)
		}
	}
}
