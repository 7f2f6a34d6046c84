package helpers

import (
	"fmt"

	"portfolio-observer/src/logger"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type ObserverError struct {
	Message string
	Cause   error
}

func (e *ObserverError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ObserverError) Unwrap() error {
	return e.Cause
}

// Distinct error types for errors.As checks

// ConfigurationError signals an invalid or unreadable configuration.
type ConfigurationError struct{ ObserverError }

// FetchError signals a failed quote fetch (network or provider payload).
// It is surfaced per symbol and never retried.
type FetchError struct {
	ObserverError
	Symbol string
}

// CacheParseError signals a corrupt or missing persisted slot. It is always
// recovered locally by resetting to an empty cache for today.
type CacheParseError struct{ ObserverError }

// StorageError signals a slot backend failure.
type StorageError struct{ ObserverError }

// -----------------------------------------------------------------------------

func NewFetchError(symbol string, cause error) *FetchError {
	return &FetchError{
		ObserverError: ObserverError{
			Message: fmt.Sprintf("fetch failed for %s", symbol),
			Cause:   cause,
		},
		Symbol: symbol,
	}
}

// -----------------------------------------------------------------------------

func NewStorageError(message string, cause error) *StorageError {
	return &StorageError{ObserverError{Message: message, Cause: cause}}
}

// -----------------------------------------------------------------------------
// Error Handler
// -----------------------------------------------------------------------------

type ErrorHandler struct {
	Logger *logger.Logger
}

func NewErrorHandler(level string) *ErrorHandler {
	return &ErrorHandler{
		Logger: logger.NewLogger(level, "ErrorHandler"),
	}
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) Handle(err error, context string) {
	if err != nil {
		e.Logger.Error("Error in %s: %v", context, err)
	}
}
