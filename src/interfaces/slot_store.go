package interfaces

// -----------------------------------------------------------------------------
// ISlotStore defines the contract for the single ambient key-value slot that
// holds the serialized daily cache. One cell, last-writer-wins, no locking.
// -----------------------------------------------------------------------------

type ISlotStore interface {

	// Read returns the current payload. An absent slot is not an error: it
	// returns ("", nil) and the caller resets to an empty cache.
	Read() (string, error)

	// -----------------------------------------------------------------------------

	// Write overwrites the slot unconditionally.
	Write(payload string) error

	// -----------------------------------------------------------------------------

	// Close releases the backing resource, if any.
	Close() error
}
