// internal/domain/schedule/service_test.go
package schedule

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name   string
		aStart time.Time
		aEnd   time.Time
		bStart time.Time
		bEnd   time.Time
		want   bool
	}{
		{"identical ranges", at(9, 0), at(10, 0), at(9, 0), at(10, 0), true},
		{"partial overlap at end", at(9, 0), at(10, 0), at(9, 30), at(10, 30), true},
		{"partial overlap at start", at(9, 30), at(10, 30), at(9, 0), at(10, 0), true},
		{"contained range", at(9, 0), at(12, 0), at(10, 0), at(11, 0), true},
		{"touching edges do not overlap", at(9, 0), at(10, 0), at(10, 0), at(11, 0), false},
		{"disjoint ranges", at(9, 0), at(10, 0), at(14, 0), at(15, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Errorf("Overlaps = %v, want %v", got, tc.want)
			}
			// overlap is symmetric
			if got := Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd); got != tc.want {
				t.Errorf("Overlaps reversed = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestValidateSlot(t *testing.T) {
	if err := validateSlot(at(9, 0), at(10, 0)); err != nil {
		t.Errorf("valid slot rejected: %v", err)
	}
	if err := validateSlot(at(10, 0), at(9, 0)); err == nil {
		t.Error("expected error for end before start")
	}
	if err := validateSlot(at(9, 0), at(9, 0)); err == nil {
		t.Error("expected error for zero-length slot")
	}
}

func TestAppointmentIsActive(t *testing.T) {
	active := []AppointmentStatus{AppointmentScheduled, AppointmentConfirmed}
	inactive := []AppointmentStatus{AppointmentCompleted, AppointmentCancelled, AppointmentNoShow}

	for _, st := range active {
		if !(&Appointment{Status: st}).IsActive() {
			t.Errorf("status %s should be active", st)
		}
	}
	for _, st := range inactive {
		if (&Appointment{Status: st}).IsActive() {
			t.Errorf("status %s should not be active", st)
		}
	}
}
