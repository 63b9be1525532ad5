package export

import (
	"errors"
	"fmt"
)

// Common export errors
var (
	// ErrUnsupportedFormat is returned for an output format the exporter does not know.
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// ErrEmptyHTML is returned when a template produced no markup to print.
	ErrEmptyHTML = errors.New("HTML content is empty")

	// ErrRenderFailed is returned when Chrome could not print the page.
	ErrRenderFailed = errors.New("PDF rendering failed")

	// ErrRenderTimeout is returned when printing did not finish in time.
	ErrRenderTimeout = errors.New("PDF rendering timed out")

	// ErrRendererUnavailable is returned for PDF output when no renderer is configured.
	ErrRendererUnavailable = errors.New("no PDF renderer configured")

	// ErrTemplate is returned when a document template fails to parse or execute.
	ErrTemplate = errors.New("document template failed")
)

// ExportError wraps errors with additional context about export failures.
type ExportError struct {
	// Op is the operation that failed (e.g., "RenderHTML", "RenderPDF").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string

	// Format is the requested output format (if available).
	Format string
}

// Error implements the error interface.
func (e *ExportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("export: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	if e.Format != "" {
		return fmt.Sprintf("export: %s failed (format: %s): %v", e.Op, e.Format, e.Err)
	}
	return fmt.Sprintf("export: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ExportError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *ExportError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewExportError creates a new ExportError with the specified operation and underlying error.
func NewExportError(op string, err error, details string) *ExportError {
	return &ExportError{
		Op:      op,
		Err:     err,
		Details: details,
	}
}

// WrapExportError wraps an error as an ExportError if it isn't already one.
func WrapExportError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var exportErr *ExportError
	if errors.As(err, &exportErr) {
		return err
	}

	return NewExportError(op, err, details)
}
