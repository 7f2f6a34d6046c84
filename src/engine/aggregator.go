package engine

import (
	"fmt"
	"sync"
	"time"

	"portfolio-observer/src/logger"
	"portfolio-observer/src/models"
)

// -----------------------------------------------------------------------------
// PortfolioAggregator — fans the resolution engine out over the configured
// positions and tallies break-even / limit-up counts.
// -----------------------------------------------------------------------------

type PortfolioAggregator struct {
	Config *models.MConfig
	Engine *ResolutionEngine
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPortfolioAggregator(cfg *models.MConfig, eng *ResolutionEngine, log *logger.Logger) *PortfolioAggregator {
	return &PortfolioAggregator{
		Config: cfg,
		Engine: eng,
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

// Observe runs one full pass: index quote plus every position, concurrently
// with a bounded fan-out. One symbol's failure is reported in the snapshot's
// errors map while the others proceed; the run only fails as a whole when
// every position fails.
func (a *PortfolioAggregator) Observe() (*models.MSnapshot, error) {
	snap := &models.MSnapshot{
		Type:      "UPDATE",
		Quotes:    make(map[string]models.MResolvedQuote),
		Errors:    make(map[string]string),
		Timestamp: time.Now().Unix(),
	}

	// Index quote has no cost basis; cost recovery never applies to it.
	if idx := a.Config.Portfolio.IndexSymbol; idx != "" {
		quote, _, err := a.Engine.Resolve(idx, 0)
		if err != nil {
			a.Logger.Warning("Index fetch failed: %v", err)
			snap.Errors[idx] = err.Error()
		} else {
			snap.IndexQuote = &quote
		}
	}

	positions := a.Config.Portfolio.Positions

	var mu sync.Mutex
	var wg sync.WaitGroup

	// Semaphore for concurrency limit
	sem := make(chan struct{}, a.Config.Network.ConcurrentRequests)

	for _, pos := range positions {
		wg.Add(1)
		go func(pos models.MPosition) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			quote, fromCache, err := a.Engine.Resolve(pos.Symbol, pos.Cost)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				a.Logger.Error("Resolve failed for %s: %v", pos.Symbol, err)
				snap.Errors[pos.Symbol] = err.Error()
				return
			}
			snap.Quotes[pos.Symbol] = quote
			if !fromCache {
				a.Logger.Debug("%s resolved live: change=%.2f%%", pos.Symbol, quote.ChangePercent)
			}
		}(pos)
	}

	wg.Wait()

	if len(snap.Quotes) == 0 && len(snap.Errors) > 0 {
		return nil, fmt.Errorf("all fetches failed: %s", firstError(snap.Errors))
	}

	for _, quote := range snap.Quotes {
		if quote.IsBreakEven {
			snap.BreakEvenCount++
		}
		if quote.IsLimitUp {
			snap.LimitUpCount++
		}
	}

	a.Logger.Info("Observed %d/%d positions: break-even=%d limit-up=%d",
		len(snap.Quotes), len(positions), snap.BreakEvenCount, snap.LimitUpCount)

	return snap, nil
}

// -----------------------------------------------------------------------------

func firstError(errs map[string]string) string {
	for sym, msg := range errs {
		return fmt.Sprintf("%s: %s", sym, msg)
	}
	return ""
}
