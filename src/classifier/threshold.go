package classifier

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// -----------------------------------------------------------------------------
// ThresholdClassifier — pure limit-up / cost-recovery predicates.
//
// Comparisons run on the 2-decimal rounded change percent, matching what is
// displayed, so a boundary value like exactly 9.90% always counts.
// -----------------------------------------------------------------------------

// Policy selects the limit-up threshold rule.
type Policy string

const (
	// PolicySegment applies board-specific thresholds: ChiNext/STAR 19.9,
	// Beijing exchange 29.9, main board 9.9.
	PolicySegment Policy = "segment"
	// PolicyFlat applies 9.9 to every symbol.
	PolicyFlat Policy = "flat"
)

var (
	thresholdMain   = decimal.NewFromFloat(9.9)
	thresholdGrowth = decimal.NewFromFloat(19.9)
	thresholdBJ     = decimal.NewFromFloat(29.9)
)

// -----------------------------------------------------------------------------

type ThresholdClassifier struct {
	policy Policy
}

// -----------------------------------------------------------------------------

func NewThresholdClassifier(policy string) *ThresholdClassifier {
	p := Policy(policy)
	if p != PolicyFlat {
		p = PolicySegment
	}
	return &ThresholdClassifier{policy: p}
}

// -----------------------------------------------------------------------------

// LimitUpThreshold returns the applicable daily limit-up percentage for a
// symbol based on its market-segment prefix.
func (c *ThresholdClassifier) LimitUpThreshold(symbol string) decimal.Decimal {
	if c.policy == PolicyFlat {
		return thresholdMain
	}
	if strings.HasPrefix(symbol, "sz300") || strings.HasPrefix(symbol, "sh688") {
		return thresholdGrowth
	}
	if strings.HasPrefix(symbol, "bj") {
		return thresholdBJ
	}
	return thresholdMain
}

// -----------------------------------------------------------------------------

// IsLimitUp reports whether the change percent reached the symbol's limit-up
// threshold.
func (c *ThresholdClassifier) IsLimitUp(symbol string, changePercent float64) bool {
	if math.IsNaN(changePercent) || math.IsInf(changePercent, 0) {
		return false
	}
	pct := decimal.NewFromFloat(changePercent).Round(2)
	return pct.GreaterThanOrEqual(c.LimitUpThreshold(symbol))
}

// -----------------------------------------------------------------------------

// IsCostRecovered reports whether the price has recovered to-or-above the
// holder's cost basis. A missing cost basis (zero, negative or non-finite)
// means recovery is undefined and evaluates to false.
func IsCostRecovered(price, costBasis float64) bool {
	if costBasis <= 0 || math.IsNaN(costBasis) || math.IsInf(costBasis, 0) {
		return false
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return false
	}
	return decimal.NewFromFloat(price).GreaterThanOrEqual(decimal.NewFromFloat(costBasis))
}

// -----------------------------------------------------------------------------

// ChangePercent computes (price - previousClose) / previousClose * 100
// rounded to 2 decimal places. previousClose must be positive.
func ChangePercent(price, previousClose float64) float64 {
	if previousClose <= 0 {
		return 0
	}
	raw := (price - previousClose) / previousClose * 100
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0
	}
	pct, _ := decimal.NewFromFloat(raw).Round(2).Float64()
	return pct
}
