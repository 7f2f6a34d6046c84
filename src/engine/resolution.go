package engine

import (
	"portfolio-observer/src/cache"
	"portfolio-observer/src/classifier"
	"portfolio-observer/src/helpers"
	"portfolio-observer/src/interfaces"
	"portfolio-observer/src/logger"
	"portfolio-observer/src/models"
)

// -----------------------------------------------------------------------------
// ResolutionEngine — decides, per symbol per day, whether a fetch is needed.
//
// A symbol already in the daily cache is a pure cache read: no network call
// for the rest of the calendar day. On a miss the engine fetches, classifies,
// and writes terminal quotes back into the cache.
// -----------------------------------------------------------------------------

type ResolutionEngine struct {
	Cache      *cache.DailyCacheStore
	Source     interfaces.IQuoteSource
	Classifier *classifier.ThresholdClassifier
	Logger     *logger.Logger
}

// -----------------------------------------------------------------------------

func NewResolutionEngine(c *cache.DailyCacheStore, src interfaces.IQuoteSource, cls *classifier.ThresholdClassifier, log *logger.Logger) *ResolutionEngine {
	return &ResolutionEngine{
		Cache:      c,
		Source:     src,
		Classifier: cls,
		Logger:     log,
	}
}

// -----------------------------------------------------------------------------

// Resolve returns the quote for a symbol, fromCache reports whether the
// terminal-state cache answered. Fetch failures surface as *helpers.FetchError
// and are neither retried nor cached.
func (e *ResolutionEngine) Resolve(symbol string, costBasis float64) (models.MResolvedQuote, bool, error) {
	c := e.Cache.Load()

	if quote, ok := e.Cache.Get(c, symbol); ok {
		reason := "break-even"
		if quote.IsLimitUp {
			reason = "limit-up"
		}
		e.Logger.Info("%s already %s today, using cached data", symbol, reason)
		return quote, true, nil
	}

	live, err := e.Source.Fetch(symbol)
	if err != nil {
		return models.MResolvedQuote{}, false, helpers.NewFetchError(symbol, err)
	}

	isLimitUp := e.Classifier.IsLimitUp(symbol, live.ChangePercent)
	isBreakEven := classifier.IsCostRecovered(live.Price, costBasis)

	quote := models.MResolvedQuote{
		Name:          live.Name,
		Price:         live.Price,
		PreviousClose: live.PreviousClose,
		ChangePercent: live.ChangePercent,
		IsLimitUp:     isLimitUp,
		IsBreakEven:   isBreakEven,
	}

	if isLimitUp || isBreakEven {
		reason := "break-even"
		if isLimitUp {
			reason = "limit-up"
		}
		e.Logger.Info("%s hit %s (change=%.2f%%, price=%.2f), caching for the day",
			symbol, reason, quote.ChangePercent, quote.Price)

		// Read-modify-write against the cache loaded above. Concurrent
		// resolvers can clobber a sibling write; the dropped entry is just
		// re-fetched on the next run.
		e.Cache.Put(&c, symbol, quote)
		if err := e.Cache.Save(c); err != nil {
			e.Logger.Warning("Failed to persist daily cache for %s: %v", symbol, err)
		}
	}

	return quote, false, nil
}
