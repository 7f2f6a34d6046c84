package engine

import (
	"errors"
	"testing"

	"portfolio-observer/src/models"
)

func aggregatorConfig(positions ...models.MPosition) *models.MConfig {
	return &models.MConfig{
		Network: models.MNetworkConfig{ConcurrentRequests: 2},
		Portfolio: models.MPortfolioConfig{
			IndexSymbol: "sh000001",
			Positions:   positions,
		},
	}
}

func TestObserveTalliesCounts(t *testing.T) {
	src := newFakeSource()
	src.quotes["sh000001"] = liveQuote("sh000001", 3500.0, 3450.0)
	src.quotes["sz300001"] = liveQuote("sz300001", 11.995, 10.0) // limit-up
	src.quotes["sh600657"] = liveQuote("sh600657", 5.20, 5.15)   // break-even at cost 5.165
	src.quotes["sz000099"] = liveQuote("sz000099", 20.0, 19.8)   // neither

	e := newTestEngine(src)
	a := NewPortfolioAggregator(aggregatorConfig(
		models.MPosition{Symbol: "sz300001", Cost: 50.0},
		models.MPosition{Symbol: "sh600657", Cost: 5.165},
		models.MPosition{Symbol: "sz000099", Cost: 27.201},
	), e, e.Logger)

	snap, err := a.Observe()
	if err != nil {
		t.Fatalf("Observe() error: %v", err)
	}

	if snap.IndexQuote == nil {
		t.Fatal("snapshot should carry the index quote")
	}
	if len(snap.Quotes) != 3 {
		t.Errorf("quotes = %d, want 3", len(snap.Quotes))
	}
	if snap.LimitUpCount != 1 {
		t.Errorf("LimitUpCount = %d, want 1", snap.LimitUpCount)
	}
	if snap.BreakEvenCount != 1 {
		t.Errorf("BreakEvenCount = %d, want 1", snap.BreakEvenCount)
	}
	if len(snap.Errors) != 0 {
		t.Errorf("Errors = %v, want none", snap.Errors)
	}
}

func TestObserveReportsPerSymbolFailures(t *testing.T) {
	src := newFakeSource()
	src.quotes["sh000001"] = liveQuote("sh000001", 3500.0, 3450.0)
	src.quotes["sh600657"] = liveQuote("sh600657", 5.20, 5.15)
	src.errs["sz300364"] = errors.New("connection refused")

	e := newTestEngine(src)
	a := NewPortfolioAggregator(aggregatorConfig(
		models.MPosition{Symbol: "sh600657", Cost: 5.165},
		models.MPosition{Symbol: "sz300364", Cost: 27.208},
	), e, e.Logger)

	snap, err := a.Observe()
	if err != nil {
		t.Fatalf("one failing symbol must not abort the run: %v", err)
	}

	if _, ok := snap.Quotes["sh600657"]; !ok {
		t.Error("healthy symbol missing from snapshot")
	}
	if _, ok := snap.Errors["sz300364"]; !ok {
		t.Errorf("failed symbol missing from errors map: %v", snap.Errors)
	}
}

func TestObserveFailsWhenEverySymbolFails(t *testing.T) {
	src := newFakeSource()
	src.errs["sh000001"] = errors.New("blocked")
	src.errs["sh600657"] = errors.New("blocked")
	src.errs["sz300364"] = errors.New("blocked")

	e := newTestEngine(src)
	a := NewPortfolioAggregator(aggregatorConfig(
		models.MPosition{Symbol: "sh600657", Cost: 5.165},
		models.MPosition{Symbol: "sz300364", Cost: 27.208},
	), e, e.Logger)

	if _, err := a.Observe(); err == nil {
		t.Fatal("Observe() should fail when every position fails")
	}
}
