package cache

import (
	"encoding/json"
	"time"

	"portfolio-observer/src/helpers"
	"portfolio-observer/src/interfaces"
	"portfolio-observer/src/logger"
	"portfolio-observer/src/models"
)

// -----------------------------------------------------------------------------
// DailyCacheStore — owns the per-day set of resolved symbols.
//
// The backing slot holds one JSON blob. Whatever goes wrong reading it
// (absent, corrupt, stamped with another day) collapses to the same outcome:
// a fresh empty cache for today. Load never returns an error.
// -----------------------------------------------------------------------------

const dateLayout = "2006-01-02"

type DailyCacheStore struct {
	Slot   interfaces.ISlotStore
	Logger *logger.Logger

	loc *time.Location
	now func() time.Time
}

// -----------------------------------------------------------------------------

func NewDailyCacheStore(slot interfaces.ISlotStore, log *logger.Logger, loc *time.Location) *DailyCacheStore {
	if loc == nil {
		loc = time.Local
	}
	return &DailyCacheStore{
		Slot:   slot,
		Logger: log,
		loc:    loc,
		now:    time.Now,
	}
}

// -----------------------------------------------------------------------------

// Today returns the current calendar day in the store's time zone.
func (s *DailyCacheStore) Today() string {
	return s.now().In(s.loc).Format(dateLayout)
}

// -----------------------------------------------------------------------------

// Load reads the persisted blob. Absence, a parse failure or a date mismatch
// all reset to an empty cache stamped with today; stale entries are never
// carried forward.
func (s *DailyCacheStore) Load() models.MDailyCache {
	today := s.Today()

	payload, err := s.Slot.Read()
	if err != nil {
		s.Logger.Warning("Slot read failed, resetting cache: %v", err)
		return s.fresh(today)
	}
	if payload == "" {
		return s.fresh(today)
	}

	var stored models.MDailyCache
	if err := json.Unmarshal([]byte(payload), &stored); err != nil {
		perr := &helpers.CacheParseError{ObserverError: helpers.ObserverError{
			Message: "failed to parse cached slot", Cause: err,
		}}
		s.Logger.Warning("%v, resetting cache", perr)
		return s.fresh(today)
	}

	if stored.Date != today {
		s.Logger.Info("Cache date %s does not match today %s, resetting", stored.Date, today)
		return s.fresh(today)
	}

	if stored.Cached == nil {
		stored.Cached = make(map[string]models.MResolvedQuote)
	}
	return stored
}

// -----------------------------------------------------------------------------

func (s *DailyCacheStore) fresh(today string) models.MDailyCache {
	return models.MDailyCache{
		Date:   today,
		Cached: make(map[string]models.MResolvedQuote),
	}
}

// -----------------------------------------------------------------------------

// Save serializes the cache and overwrites the slot unconditionally
// (last-writer-wins). The cache must be stamped with today's date.
func (s *DailyCacheStore) Save(c models.MDailyCache) error {
	data, err := json.Marshal(c)
	if err != nil {
		return helpers.NewStorageError("failed to serialize daily cache", err)
	}
	if err := s.Slot.Write(string(data)); err != nil {
		return helpers.NewStorageError("failed to write slot", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

// Get returns the resolved quote for a symbol, if present.
func (s *DailyCacheStore) Get(c models.MDailyCache, symbol string) (models.MResolvedQuote, bool) {
	q, ok := c.Cached[symbol]
	return q, ok
}

// -----------------------------------------------------------------------------

// Put inserts a resolved quote. An already-present symbol is left untouched:
// terminal state is monotonic for the day.
func (s *DailyCacheStore) Put(c *models.MDailyCache, symbol string, quote models.MResolvedQuote) {
	if c.Cached == nil {
		c.Cached = make(map[string]models.MResolvedQuote)
	}
	if _, exists := c.Cached[symbol]; exists {
		return
	}
	c.Cached[symbol] = quote
}
