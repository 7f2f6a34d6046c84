package interfaces

import "portfolio-observer/src/models"

// -----------------------------------------------------------------------------
// IQuoteSource interface for fetching a single quote from an external provider.
// -----------------------------------------------------------------------------

type IQuoteSource interface {

	// Name returns the unique identifier of the source
	Name() string

	// -----------------------------------------------------------------------------

	// Fetch performs one network request for the given symbol and parses the
	// provider payload into a live quote. No caching logic lives here.
	Fetch(symbol string) (models.MLiveQuote, error)
}
