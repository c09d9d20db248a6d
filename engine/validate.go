package engine

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// =============================================================================
// WRITE-BOUNDARY VALIDATION
// =============================================================================
// Fail fast on creation/update; never during read-side aggregation.

var (
	monthKeyRe = regexp.MustCompile(`^\d{4}-\d{2}$`)
	dateRe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidateFuelEntry checks a fuel entry at the write boundary:
// a well-formed date, at least one of distance/liters/cost present,
// no negative values, and no fields that failed numeric coercion.
func ValidateFuelEntry(e FuelEntry) error {
	if len(e.Invalid) > 0 {
		return &FieldError{Field: e.Invalid[0], Err: ErrNonNumericValue}
	}
	if !dateRe.MatchString(e.Date) {
		return &FieldError{Field: "date", Err: ErrMalformedDate}
	}
	if !e.Distance.Valid && !e.Liters.Valid && !e.Cost.Valid {
		return ErrMissingFields
	}
	for _, f := range []struct {
		name string
		val  decimal.NullDecimal
	}{
		{"distance", e.Distance},
		{"liters", e.Liters},
		{"cost", e.Cost},
	} {
		if f.val.Valid && f.val.Decimal.IsNegative() {
			return &FieldError{Field: f.name, Err: ErrNegativeValue}
		}
	}
	return nil
}

// ValidateAdjustment checks an adjustment at the write boundary.
//
// Kind-specific invariants:
//   - compensation_payment: amount required, liters forbidden
//   - debt_deduction: amount or liters (or both) required
func ValidateAdjustment(a AdjustmentEntry) error {
	if len(a.Invalid) > 0 {
		return &FieldError{Field: a.Invalid[0], Err: ErrNonNumericValue}
	}
	if !monthKeyRe.MatchString(a.MonthKey) {
		return &FieldError{Field: "monthKey", Err: ErrMalformedMonthKey}
	}
	if a.Amount.Valid && a.Amount.Decimal.IsNegative() {
		return &FieldError{Field: "amount", Err: ErrNegativeValue}
	}
	if a.Liters.Valid && a.Liters.Decimal.IsNegative() {
		return &FieldError{Field: "liters", Err: ErrNegativeValue}
	}

	switch a.Kind {
	case AdjustmentCompensationPayment:
		if !a.Amount.Valid {
			return &FieldError{Field: "amount", Err: ErrMissingFields}
		}
		if a.Liters.Valid {
			return &FieldError{Field: "liters", Err: ErrInvalidKind}
		}
	case AdjustmentDebtDeduction:
		if !a.Amount.Valid && !a.Liters.Valid {
			return ErrMissingFields
		}
	default:
		return &FieldError{Field: "kind", Err: ErrInvalidKind}
	}
	return nil
}

// ValidDate reports whether s is a well-formed ISO YYYY-MM-DD date.
func ValidDate(s string) bool {
	return dateRe.MatchString(s)
}

// FirstOfMonth derives the stored date for an adjustment from its month key
// ("2025-06" -> "2025-06-01"). Returns "" for malformed keys.
func FirstOfMonth(monthKey string) string {
	if !monthKeyRe.MatchString(monthKey) {
		return ""
	}
	return monthKey + "-01"
}
