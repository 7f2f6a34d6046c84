package models

// -----------------------------------------------------------------------------
// Server State Structure
// -----------------------------------------------------------------------------

// MSnapshot is the aggregate result of one observation run. It is what the
// HTTP API serves and the websocket hub broadcasts.
type MSnapshot struct {
	Type            string                    `json:"type"` // "INITIAL" or "UPDATE"
	IndexQuote      *MResolvedQuote           `json:"index_quote,omitempty"`
	Quotes          map[string]MResolvedQuote `json:"quotes"`
	BreakEvenCount  int                       `json:"break_even_count"`
	LimitUpCount    int                       `json:"limit_up_count"`
	Errors          map[string]string         `json:"errors,omitempty"`
	NextWakeSeconds float64                   `json:"next_wake_seconds"`
	Timestamp       int64                     `json:"timestamp"`
}

// -----------------------------------------------------------------------------
// SubscribeCommand for client messages
// -----------------------------------------------------------------------------

type MSubscribeCommand struct {
	Command string   `json:"command"`
	Symbols []string `json:"symbols"`
}
