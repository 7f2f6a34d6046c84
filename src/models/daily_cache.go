package models

// MDailyCache is the persisted unit of state: one calendar day worth of
// resolved symbols. The whole blob is replaced by an empty one the moment
// its date no longer matches the current local day.
type MDailyCache struct {
	Date   string                    `json:"date"` // "YYYY-MM-DD", local time zone
	Cached map[string]MResolvedQuote `json:"cached"`
}
