package projection

import (
	"errors"
	"fmt"
	"math"
)

// Common projection errors
var (
	ErrInvalidParameter = errors.New("invalid projection parameter")
	ErrUnknownField     = errors.New("unknown parameter field")
	ErrOutOfRange       = errors.New("projection amount out of range")
)

// InvalidParameterError reports an input outside its valid domain.
// It is returned before any simulation work is done.
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s (%g): %s", e.Field, e.Value, e.Reason)
}

// Unwrap lets callers match with errors.Is(err, ErrInvalidParameter)
func (e *InvalidParameterError) Unwrap() error {
	return ErrInvalidParameter
}

func invalid(field string, value float64, reason string) error {
	return &InvalidParameterError{Field: field, Value: value, Reason: reason}
}

// OutOfRangeError reports a computed amount that is not finite or exceeds
// MaxAmount. Year 0 refers to the derived constants.
type OutOfRangeError struct {
	Year   int
	Column string
	Value  float64
}

func (e *OutOfRangeError) Error() string {
	if e.Year == 0 {
		return fmt.Sprintf("%s (%g) exceeds the supported range of ±%g", e.Column, e.Value, MaxAmount)
	}
	return fmt.Sprintf("%s in year %d (%g) exceeds the supported range of ±%g", e.Column, e.Year, e.Value, MaxAmount)
}

func (e *OutOfRangeError) Unwrap() error {
	return ErrOutOfRange
}

// checkAmount fails for NaN, infinities and magnitudes above MaxAmount
func checkAmount(year int, column string, v float64) error {
	if math.IsNaN(v) || math.Abs(v) > MaxAmount {
		return &OutOfRangeError{Year: year, Column: column, Value: v}
	}
	return nil
}
