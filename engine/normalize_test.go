package engine_test

import (
	"testing"

	"github.com/warp/fuel-ledger/engine"
)

// =============================================================================
// KIND DISCRIMINATION
// =============================================================================

func TestNormalizeRecord_DefaultsToFuel(t *testing.T) {
	// Anything without the literal adjustment marker is a fuel entry,
	// including records with no recordType at all.
	for _, raw := range []map[string]any{
		{"date": "2025-06-15", "distance": 100.0},
		{"recordType": "fuel", "date": "2025-06-15"},
		{"recordType": "something_else", "date": "2025-06-15"},
		{"recordType": 42, "date": "2025-06-15"},
	} {
		rec := engine.NormalizeRecord(raw)
		if rec.Kind != engine.KindFuel || rec.Fuel == nil {
			t.Errorf("record %v: kind = %v, want fuel", raw, rec.Kind)
		}
	}
}

func TestNormalizeRecord_AdjustmentMarker(t *testing.T) {
	rec := engine.NormalizeRecord(map[string]any{
		"recordType": "adjustment",
		"kind":       "compensation_payment",
		"monthKey":   "2025-06",
		"amount":     5000.0,
	})

	if rec.Kind != engine.KindAdjustment || rec.Adjustment == nil {
		t.Fatalf("kind = %v, want adjustment", rec.Kind)
	}
	if rec.Adjustment.Kind != engine.AdjustmentCompensationPayment {
		t.Errorf("adjustment kind = %v", rec.Adjustment.Kind)
	}
	if !rec.Adjustment.Amount.Valid || !rec.Adjustment.Amount.Decimal.Equal(dec(5000)) {
		t.Errorf("amount = %v, want 5000", rec.Adjustment.Amount)
	}
}

// =============================================================================
// NUMERIC COERCION
// =============================================================================

func TestNormalizeFuel_Coercion(t *testing.T) {
	e := engine.NormalizeFuel(map[string]any{
		"id":       "rec-1",
		"date":     "2025-06-15",
		"distance": 412.0,    // JSON number
		"liters":   "31.5",   // numeric string: converts
		"cost":     "a lot",  // non-numeric: invalid, treated as absent
	})

	if !e.Distance.Valid || !e.Distance.Decimal.Equal(dec(412)) {
		t.Errorf("distance = %v, want 412", e.Distance)
	}
	if !e.Liters.Valid || !e.Liters.Decimal.Equal(dec(31.5)) {
		t.Errorf("liters = %v, want 31.5", e.Liters)
	}
	if e.Cost.Valid {
		t.Errorf("non-numeric cost should be absent, got %v", e.Cost)
	}
	if len(e.Invalid) != 1 || e.Invalid[0] != "cost" {
		t.Errorf("invalid = %v, want [cost]", e.Invalid)
	}
}

func TestNormalizeFuel_AbsentAndNullStayAbsent(t *testing.T) {
	e := engine.NormalizeFuel(map[string]any{
		"date":   "2025-06-15",
		"liters": nil,
	})

	if e.Distance.Valid || e.Liters.Valid || e.Cost.Valid {
		t.Errorf("absent/null fields must stay absent: %+v", e)
	}
	if len(e.Invalid) != 0 {
		t.Errorf("absent fields are not invalid: %v", e.Invalid)
	}
}

// =============================================================================
// DATE COERCION
// =============================================================================

func TestNormalizeFuel_DateTruncatedToISOPrefix(t *testing.T) {
	// Defensive truncation of any timestamp suffix a client stored.
	e := engine.NormalizeFuel(map[string]any{
		"date": "2025-06-15T13:45:00.000Z",
	})
	if e.Date != "2025-06-15" {
		t.Errorf("date = %q, want 2025-06-15", e.Date)
	}

	e = engine.NormalizeFuel(map[string]any{"date": 20250615})
	if e.Date != "" {
		t.Errorf("non-string date = %q, want empty", e.Date)
	}
}

func TestFuelEntry_MonthKey(t *testing.T) {
	// MonthKey takes the first 7 characters and requires a YYYY-MM shape.
	cases := map[string]string{
		"2025-06-15": "2025-06",
		"2025-06":    "2025-06",
		"garbage":    "",
		"06/15/2025": "",
		"":           "",
	}

	for date, want := range cases {
		e := engine.FuelEntry{Date: date}
		if got := e.MonthKey(); got != want {
			t.Errorf("monthKey(%q) = %q, want %q", date, got, want)
		}
	}
}
