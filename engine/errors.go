/*
errors.go - Centralized error types for the engine's write boundary

PURPOSE:
  All validation errors in one place. These are raised ONLY when records are
  created or updated; the read-side aggregation never raises them, since the
  store may hold historical data that predates today's rules.

USAGE:
  Callers branch with errors.Is / the helpers below:

    if engine.IsValidation(err) {
        // reject the write with a 400
    }
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMissingFields is returned when a record lacks the fields its kind
	// requires (e.g. a fuel entry with none of distance/liters/cost).
	ErrMissingFields = errors.New("required fields missing")

	// ErrNegativeValue is returned for negative distance/liters/cost/amount.
	ErrNegativeValue = errors.New("negative value")

	// ErrNonNumericValue is returned when a submitted field failed numeric
	// coercion (the normalizer recorded it in the Invalid list).
	ErrNonNumericValue = errors.New("non-numeric value")

	// ErrMalformedDate is returned for dates not shaped YYYY-MM-DD.
	ErrMalformedDate = errors.New("malformed date")

	// ErrMalformedMonthKey is returned for month keys not matching YYYY-MM.
	ErrMalformedMonthKey = errors.New("malformed month key")

	// ErrInvalidKind is returned for an unrecognized adjustment kind.
	ErrInvalidKind = errors.New("invalid adjustment kind")

	// ErrNotFound is returned by stores for a missing record.
	ErrNotFound = errors.New("record not found")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// FieldError reports which field failed validation and why.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidation reports whether err is a rejected-write validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrNegativeValue) ||
		errors.Is(err, ErrNonNumericValue) ||
		errors.Is(err, ErrMalformedDate) ||
		errors.Is(err, ErrMalformedMonthKey) ||
		errors.Is(err, ErrInvalidKind)
}

// IsNotFound reports whether err indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
