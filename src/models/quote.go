package models

// MLiveQuote is one freshly fetched quote. It lives for a single resolution
// pass and is never persisted as-is.
type MLiveQuote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	PreviousClose float64 `json:"pre_close"`
	ChangePercent float64 `json:"change_percent"`
}

// MResolvedQuote is a quote that hit a terminal condition for the day
// (limit-up or break-even) and was written into the daily cache. The reason
// flags are persisted so a cached entry can always explain itself.
type MResolvedQuote struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	PreviousClose float64 `json:"pre_close"`
	ChangePercent float64 `json:"change_percent"`
	IsLimitUp     bool    `json:"isLimitUp"`
	IsBreakEven   bool    `json:"isBreakEven"`
}
