/*
normalize.go - Raw stored JSON -> typed records

PURPOSE:
  The record store holds loosely-typed JSON documents that accumulated over
  time, including data written before today's validation rules existed. The
  normalizer is the single point where that loose shape becomes the tagged
  union {FuelEntry, AdjustmentEntry}; nothing downstream ever touches a raw
  map.

RULES:
  - Kind is discriminated by the "recordType" field. Anything other than the
    literal adjustment marker is a fuel entry (the default kind).
  - Numeric fields: absent/null stays absent; numbers and numeric strings
    convert; a present but non-numeric value is recorded in the record's
    Invalid list and treated as absent. Write-time validation rejects such
    records; read-side aggregation tolerates them.
  - Dates are truncated to the first 10 characters, defensively dropping any
    timestamp suffix a client may have stored.
  - The normalizer NEVER errors. Validation happens at the creation boundary
    (validate.go), not at read time.
*/
package engine

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DISCRIMINATOR
// =============================================================================

const (
	// recordTypeField discriminates stored record kinds.
	recordTypeField = "recordType"

	// recordTypeAdjustment is the literal adjustment marker. Any other value
	// (including absence) means a fuel entry.
	recordTypeAdjustment = "adjustment"
)

// Record is the tagged union produced by the normalizer.
// Exactly one of Fuel/Adjustment is non-nil, matching Kind.
type Record struct {
	Kind       RecordKind
	Fuel       *FuelEntry
	Adjustment *AdjustmentEntry
}

// =============================================================================
// NORMALIZATION
// =============================================================================

// NormalizeRecord converts one raw stored document into a typed record.
func NormalizeRecord(raw map[string]any) Record {
	if s, ok := raw[recordTypeField].(string); ok && s == recordTypeAdjustment {
		adj := NormalizeAdjustment(raw)
		return Record{Kind: KindAdjustment, Adjustment: &adj}
	}
	fuel := NormalizeFuel(raw)
	return Record{Kind: KindFuel, Fuel: &fuel}
}

// NormalizeFuel coerces a raw document into a FuelEntry.
func NormalizeFuel(raw map[string]any) FuelEntry {
	e := FuelEntry{
		ID:   coerceString(raw["id"]),
		Date: coerceDate(raw["date"]),
	}
	e.Distance = coerceNumber(raw, "distance", &e.Invalid)
	e.Liters = coerceNumber(raw, "liters", &e.Invalid)
	e.Cost = coerceNumber(raw, "cost", &e.Invalid)
	return e
}

// NormalizeAdjustment coerces a raw document into an AdjustmentEntry.
func NormalizeAdjustment(raw map[string]any) AdjustmentEntry {
	a := AdjustmentEntry{
		ID:       coerceString(raw["id"]),
		Date:     coerceDate(raw["date"]),
		Kind:     AdjustmentKind(coerceString(raw["kind"])),
		MonthKey: coerceString(raw["monthKey"]),
		Comment:  coerceString(raw["comment"]),
	}
	a.Amount = coerceNumber(raw, "amount", &a.Invalid)
	a.Liters = coerceNumber(raw, "liters", &a.Invalid)
	return a
}

// =============================================================================
// COERCION HELPERS
// =============================================================================

// coerceNumber converts a stored field to a nullable decimal.
// Absent or null stays absent. A present but non-numeric value is appended
// to invalid and also left absent, so read-side sums treat it as zero.
func coerceNumber(raw map[string]any, field string, invalid *[]string) decimal.NullDecimal {
	v, ok := raw[field]
	if !ok || v == nil {
		return decimal.NullDecimal{}
	}
	switch n := v.(type) {
	case float64:
		return decimal.NewNullDecimal(decimal.NewFromFloat(n))
	case int:
		return decimal.NewNullDecimal(decimal.NewFromInt(int64(n)))
	case int64:
		return decimal.NewNullDecimal(decimal.NewFromInt(n))
	case json.Number:
		if d, err := decimal.NewFromString(n.String()); err == nil {
			return decimal.NewNullDecimal(d)
		}
	case string:
		if d, err := decimal.NewFromString(n); err == nil {
			return decimal.NewNullDecimal(d)
		}
	case bool:
		// fall through to invalid
	}
	*invalid = append(*invalid, field)
	return decimal.NullDecimal{}
}

// coerceDate truncates any stored date-ish value to its first 10 characters
// (the ISO date prefix). Non-strings become "".
func coerceDate(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

func coerceString(v any) string {
	s, _ := v.(string)
	return s
}
