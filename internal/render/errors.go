package render

import (
	"errors"
	"fmt"
)

// Rendering and persistence errors. All are terminal for the current
// request; the renderer performs no retries.
var (
	// ErrRenderFailed is returned when the document cannot be composed,
	// e.g. an unreadable or malformed logo image.
	ErrRenderFailed = errors.New("invoice rendering failed")

	// ErrStorageWrite is returned when the artifact cannot be written to
	// the output directory. A failed write never leaves a partial file at
	// the final filename.
	ErrStorageWrite = errors.New("artifact storage write failed")
)

// RenderError wraps errors with context about which rendering step failed.
type RenderError struct {
	// Op is the operation that failed (e.g., "Render", "writeArtifact").
	Op string

	// Err is the underlying sentinel.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("render: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("render: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *RenderError) Unwrap() error {
	return e.Err
}

// Is implements error matching against the package sentinels.
func (e *RenderError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewRenderError creates a RenderError for the given operation.
func NewRenderError(op string, err error, details string) *RenderError {
	return &RenderError{Op: op, Err: err, Details: details}
}
