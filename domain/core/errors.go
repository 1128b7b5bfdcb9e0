package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrDatasetNotFound = fmt.Errorf("%w: dataset", ErrNotFound)
	ErrReportNotFound  = fmt.Errorf("%w: report", ErrNotFound)
	ErrJobNotFound     = fmt.Errorf("%w: job", ErrNotFound)
	ErrColumnNotFound  = fmt.Errorf("%w: column", ErrNotFound)

	// Load errors
	ErrEmptyDataset    = errors.New("dataset has no rows or columns")
	ErrUnsupportedFile = errors.New("unsupported file type")

	// Treatment errors
	ErrNotNumeric    = errors.New("column is not numeric")
	ErrHasMissing    = errors.New("column contains missing values")
	ErrUnknownTask   = errors.New("unknown task type")
	ErrInvalidParams = errors.New("invalid task parameters")

	// Statistical degeneracy is not an error; analyzers resolve it to nulls.
	// ErrInsufficientData exists for callers that ask for a statistic directly.
	ErrInsufficientData = errors.New("insufficient data for analysis")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewColumnError(column string, err error) error {
	return fmt.Errorf("column %q: %w", column, err)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsLoadError(err error) bool {
	return errors.Is(err, ErrEmptyDataset) || errors.Is(err, ErrUnsupportedFile)
}
