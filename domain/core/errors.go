package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Configuration errors
	ErrNoCandidates   = errors.New("candidate generation produced zero candidates")
	ErrInvalidGap     = errors.New("distance gap must be positive")
	ErrRangeCollapsed = errors.New("value range too narrow for configured gaps")

	// Data errors
	ErrEmptyHistory = errors.New("draw history contains no observations")
	ErrInvalidDraw  = errors.New("draw violates slot value ranges")

	// Selection errors
	ErrScoreMismatch = errors.New("candidate and score lists differ in length")
)

// Error constructors with context
func NewRangeError(maxValue, spanNeeded int) error {
	return fmt.Errorf("%w: max %d, span %d", ErrRangeCollapsed, maxValue, spanNeeded)
}

func NewDrawError(slot, value int) error {
	return fmt.Errorf("%w: slot %d value %d", ErrInvalidDraw, slot, value)
}

// Error checking helpers
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrNoCandidates) ||
		errors.Is(err, ErrInvalidGap) ||
		errors.Is(err, ErrRangeCollapsed)
}

func IsDataError(err error) bool {
	return errors.Is(err, ErrEmptyHistory) || errors.Is(err, ErrInvalidDraw)
}
