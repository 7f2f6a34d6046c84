package classifier

import (
	"math"
	"testing"
)

func TestLimitUpThresholdSegments(t *testing.T) {
	c := NewThresholdClassifier("segment")

	tests := []struct {
		symbol string
		want   string
	}{
		{"sz300001", "19.9"}, // ChiNext
		{"sh688981", "19.9"}, // STAR
		{"bj430510", "29.9"}, // Beijing exchange
		{"sh600657", "9.9"},  // main board
		{"sz000099", "9.9"},  // main board
		{"sz002194", "9.9"},  // SME board counts as main
	}

	for _, tt := range tests {
		got := c.LimitUpThreshold(tt.symbol).String()
		if got != tt.want {
			t.Errorf("LimitUpThreshold(%s) = %s, want %s", tt.symbol, got, tt.want)
		}
	}
}

func TestLimitUpThresholdFlatPolicy(t *testing.T) {
	c := NewThresholdClassifier("flat")

	for _, symbol := range []string{"sz300001", "bj430510", "sh600657"} {
		if got := c.LimitUpThreshold(symbol).String(); got != "9.9" {
			t.Errorf("flat policy LimitUpThreshold(%s) = %s, want 9.9", symbol, got)
		}
	}
}

func TestIsLimitUp(t *testing.T) {
	c := NewThresholdClassifier("segment")

	tests := []struct {
		symbol string
		change float64
		want   bool
	}{
		{"sz300001", 19.95, true},
		{"sz300001", 19.85, false},
		{"sh600657", 9.90, true},
		{"sh600657", 9.89, false},
		{"bj430510", 29.90, true},
		{"bj430510", 29.89, false},
		// Rounding to 2 decimals happens before the comparison.
		{"sh600657", 9.895, true},
		{"sh600657", 9.894, false},
		{"sh600657", math.NaN(), false},
		{"sh600657", math.Inf(1), false},
	}

	for _, tt := range tests {
		if got := c.IsLimitUp(tt.symbol, tt.change); got != tt.want {
			t.Errorf("IsLimitUp(%s, %v) = %v, want %v", tt.symbol, tt.change, got, tt.want)
		}
	}
}

func TestIsCostRecovered(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		cost  float64
		want  bool
	}{
		{"exactly at cost", 10.00, 10.00, true},
		{"just below cost", 9.999, 10.00, false},
		{"above cost", 10.01, 10.00, true},
		{"no cost basis configured", 10.00, 0, false},
		{"negative cost basis", 10.00, -5, false},
		{"nan cost basis", 10.00, math.NaN(), false},
		{"inf cost basis", 10.00, math.Inf(1), false},
		{"nan price", math.NaN(), 10.00, false},
	}

	for _, tt := range tests {
		if got := IsCostRecovered(tt.price, tt.cost); got != tt.want {
			t.Errorf("%s: IsCostRecovered(%v, %v) = %v, want %v", tt.name, tt.price, tt.cost, got, tt.want)
		}
	}
}

func TestChangePercent(t *testing.T) {
	tests := []struct {
		price     float64
		prevClose float64
		want      float64
	}{
		{11.0, 10.0, 10.0},
		{10.0, 10.0, 0.0},
		{9.0, 10.0, -10.0},
		{10.99, 10.0, 9.9},
		// Rounded to 2 decimals.
		{10.0333, 10.0, 0.33},
		// Guard rails: non-positive previous close.
		{10.0, 0, 0},
		{10.0, -1, 0},
	}

	for _, tt := range tests {
		if got := ChangePercent(tt.price, tt.prevClose); got != tt.want {
			t.Errorf("ChangePercent(%v, %v) = %v, want %v", tt.price, tt.prevClose, got, tt.want)
		}
	}
}
