package astro

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is the sentinel matched by every InvalidInputError.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError reports a non-finite or out-of-domain input to one of the
// engine computations. There is no recovery: the caller has to supply valid
// catalog data.
type InvalidInputError struct {
	Op     string  // Operation that rejected the input, e.g. "EquatorialToCartesian"
	Field  string  // Offending input field
	Value  float64 // Offending value (NaN for non-numeric fields)
	Reason string
}

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	if math.IsNaN(e.Value) && e.Field == "" {
		return fmt.Sprintf("%s: invalid input: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("%s: invalid input %s=%v: %s", e.Op, e.Field, e.Value, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidInput) match.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInvalidInput builds an InvalidInputError.
func NewInvalidInput(op, field string, value float64, reason string) error {
	return &InvalidInputError{Op: op, Field: field, Value: value, Reason: reason}
}

// RequireFinite returns an InvalidInputError when v is NaN or infinite.
func RequireFinite(op, field string, v float64) error {
	if !isFinite(v) {
		return NewInvalidInput(op, field, v, "must be finite")
	}
	return nil
}

// RequirePositive returns an InvalidInputError unless v is finite and > 0.
func RequirePositive(op, field string, v float64) error {
	if err := RequireFinite(op, field, v); err != nil {
		return err
	}
	if v <= 0 {
		return NewInvalidInput(op, field, v, "must be > 0")
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
