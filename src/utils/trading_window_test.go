package utils

import (
	"testing"
	"time"

	"portfolio-observer/src/logger"
)

// Fallback-mode window: Mon-Fri, no holiday calendar, deterministic.
func newTestWindow(policy string) *TradingWindow {
	return &TradingWindow{
		Fallback:       true,
		Timezone:       time.UTC,
		Interval:       2 * time.Minute,
		OffHoursPolicy: policy,
		Logger:         logger.NewLogger("ERROR", "test"),
	}
}

// 2026-09-01 is a Tuesday.
func tuesday(hour, min int) time.Time {
	return time.Date(2026, 9, 1, hour, min, 0, 0, time.UTC)
}

func TestIsTradingNow(t *testing.T) {
	tw := newTestWindow(PolicyReschedule)

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"Saturday morning", time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC), false},
		{"Saturday night", time.Date(2026, 9, 5, 22, 0, 0, 0, time.UTC), false},
		{"Sunday", time.Date(2026, 9, 6, 10, 0, 0, 0, time.UTC), false},
		{"Tuesday before open", tuesday(9, 29), false},
		{"Tuesday at open", tuesday(9, 30), true},
		{"Tuesday mid-morning", tuesday(10, 45), true},
		{"Tuesday morning close", tuesday(11, 30), true},
		{"Tuesday lunch", tuesday(12, 0), false},
		{"Tuesday afternoon open", tuesday(13, 0), true},
		{"Tuesday late afternoon", tuesday(14, 59), true},
		{"Tuesday at 15:00", tuesday(15, 0), false},
		{"Tuesday evening", tuesday(18, 0), false},
	}

	for _, tt := range tests {
		if got := tw.IsTradingNow(tt.t); got != tt.want {
			t.Errorf("%s: IsTradingNow(%v) = %v, want %v", tt.name, tt.t, got, tt.want)
		}
	}
}

func TestNextWakeDuringTradingHours(t *testing.T) {
	for _, policy := range []string{PolicyReschedule, PolicySuspend} {
		tw := newTestWindow(policy)
		if got := tw.NextWakeDuration(tuesday(10, 0)); got != 2*time.Minute {
			t.Errorf("policy %s: in-session wake = %v, want 2m", policy, got)
		}
	}
}

func TestNextWakeReschedule(t *testing.T) {
	tw := newTestWindow(PolicyReschedule)

	tests := []struct {
		name string
		t    time.Time
		want time.Duration
	}{
		{"before open wakes at 09:30", tuesday(8, 0), 90 * time.Minute},
		{"lunch break wakes at 13:00", tuesday(12, 0), time.Hour},
		{"after close wakes next day 09:30", tuesday(16, 0), 17*time.Hour + 30*time.Minute},
		// 2026-09-04 is a Friday; after close the next session is Monday.
		{"Friday after close", time.Date(2026, 9, 4, 15, 30, 0, 0, time.UTC), 66 * time.Hour},
		{"Saturday", time.Date(2026, 9, 5, 12, 0, 0, 0, time.UTC), 45*time.Hour + 30*time.Minute},
		{"Sunday", time.Date(2026, 9, 6, 12, 0, 0, 0, time.UTC), 21*time.Hour + 30*time.Minute},
	}

	for _, tt := range tests {
		if got := tw.NextWakeDuration(tt.t); got != tt.want {
			t.Errorf("%s: NextWakeDuration(%v) = %v, want %v", tt.name, tt.t, got, tt.want)
		}
	}
}

func TestNextWakeSuspendOffHours(t *testing.T) {
	tw := newTestWindow(PolicySuspend)

	got := tw.NextWakeDuration(tuesday(20, 0))
	if got != suspendDuration {
		t.Errorf("suspend off-hours wake = %v, want %v", got, suspendDuration)
	}
}

func TestNextWakeAlwaysPositive(t *testing.T) {
	instants := []time.Time{
		tuesday(0, 0),
		tuesday(9, 29),
		tuesday(9, 30),
		tuesday(11, 30),
		tuesday(11, 31),
		tuesday(12, 59),
		tuesday(13, 0),
		tuesday(14, 59),
		tuesday(15, 0),
		tuesday(23, 59),
		time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), // Saturday
		time.Date(2026, 9, 6, 23, 59, 0, 0, time.UTC), // Sunday
	}

	for _, policy := range []string{PolicyReschedule, PolicySuspend} {
		tw := newTestWindow(policy)
		for _, instant := range instants {
			if got := tw.NextWakeDuration(instant); got <= 0 {
				t.Errorf("policy %s: NextWakeDuration(%v) = %v, must be positive", policy, instant, got)
			}
		}
	}
}

func TestIsTradingDayWeekend(t *testing.T) {
	tw := newTestWindow(PolicyReschedule)

	if tw.IsTradingDay(time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)) {
		t.Error("Saturday must never be a trading day")
	}
	if tw.IsTradingDay(time.Date(2026, 9, 6, 10, 0, 0, 0, time.UTC)) {
		t.Error("Sunday must never be a trading day")
	}
	if !tw.IsTradingDay(tuesday(10, 0)) {
		t.Error("fallback mode should treat a weekday as a trading day")
	}
}
