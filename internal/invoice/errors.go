package invoice

import (
	"errors"
	"fmt"
)

// ErrNoLineItems is returned when a request carries neither line items nor a
// flat amount to synthesize one from. Such a request is a caller-contract
// violation and is rejected rather than defaulted to a zero invoice.
var ErrNoLineItems = errors.New("no line items and no fallback amount provided")

// NormalizationError wraps errors with context about which normalization
// step failed.
type NormalizationError struct {
	// Op is the operation that failed (e.g., "Normalize", "resolveItems").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *NormalizationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("invoice: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("invoice: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *NormalizationError) Unwrap() error {
	return e.Err
}

// Is implements error matching against the package sentinels.
func (e *NormalizationError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewNormalizationError creates a NormalizationError for the given operation.
func NewNormalizationError(op string, err error, details string) *NormalizationError {
	return &NormalizationError{Op: op, Err: err, Details: details}
}
