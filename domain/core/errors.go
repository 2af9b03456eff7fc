package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Data precondition errors
	ErrInsufficientData  = errors.New("insufficient data for analysis")
	ErrZeroOpportunities = errors.New("zero opportunities in discrete data")

	// Specification errors
	ErrInvalidSpec = errors.New("invalid specification limits")

	// Projection errors
	ErrInvalidTarget = errors.New("target sigma below current sigma")
	ErrZeroBaseline  = errors.New("zero DPMO baseline, nothing to improve")

	// Persistence errors
	ErrNotFound         = errors.New("resource not found")
	ErrSnapshotNotFound = fmt.Errorf("%w: analysis snapshot", ErrNotFound)
	ErrDatasetNotFound  = fmt.Errorf("%w: dataset", ErrNotFound)
	ErrColumnNotFound   = fmt.Errorf("%w: column", ErrNotFound)
)

// Error constructors with context
func NewInsufficientDataError(need, got int) error {
	return fmt.Errorf("%w: need at least %d points, got %d", ErrInsufficientData, need, got)
}

func NewInvalidTargetError(current, target float64) error {
	return fmt.Errorf("%w: current %.2f, target %.2f", ErrInvalidTarget, current, target)
}

func NewInvalidSpecError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidSpec, reason)
}

// Error checking helpers
func IsInsufficientData(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
