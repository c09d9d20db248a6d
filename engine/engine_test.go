package engine_test

import (
	"strings"
	"testing"

	"github.com/warp/fuel-ledger/engine"
)

// =============================================================================
// AGGREGATION
// =============================================================================

func TestAggregation_Additivity(t *testing.T) {
	// GIVEN: two fuel entries in the same month, one on a step date
	// THEN: the aggregate sums distances/liters and per-entry norms

	e := newTestEngine()
	s := e.Summarize([]engine.FuelEntry{
		fuel("2025-12-10", 400, 35),
		fuel("2025-12-31", 600, 50), // step date: 600 * 10.058 / 100
	}, nil)

	if len(s.Monthly) != 1 {
		t.Fatalf("expected one month, got %d", len(s.Monthly))
	}
	m := s.Monthly[0]

	if !m.TotalDistance.Equal(dec(1000)) {
		t.Errorf("totalDistance = %v, want 1000", m.TotalDistance)
	}
	if !m.TotalLiters.Equal(dec(85)) {
		t.Errorf("totalLiters = %v, want 85", m.TotalLiters)
	}
	wantNorm := dec(400).Mul(dec(9.4)).Div(dec(100)).
		Add(dec(600).Mul(dec(9.4)).Mul(dec(1.07)).Div(dec(100)))
	if !m.FuelNorm.Equal(wantNorm) {
		t.Errorf("fuelNorm = %v, want %v (sum of per-entry norms)", m.FuelNorm, wantNorm)
	}
}

func TestAggregation_MonthsSortedChronologically(t *testing.T) {
	e := newTestEngine()
	s := e.Summarize([]engine.FuelEntry{
		fuel("2025-11-02", 100, 10),
		fuel("2025-02-09", 100, 10),
		fuel("2024-12-20", 100, 10),
	}, nil)

	var keys []string
	for _, m := range s.Monthly {
		keys = append(keys, m.MonthKey)
	}
	want := []string{"2024-12", "2025-02", "2025-11"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("month order = %v, want %v", keys, want)
		}
	}
}

func TestAggregation_ZeroDistanceMonth(t *testing.T) {
	// A month with entries but zero total distance has fuelNorm = 0 and
	// fuelDiff = -totalLiters: all fuel purchased counts as a deficit
	// against a zero allowance.
	e := newTestEngine()
	s := e.Summarize([]engine.FuelEntry{
		{Date: "2025-03-05", Liters: nd(42), Cost: nd(3100)},
	}, nil)

	m := s.Monthly[0]
	if !m.FuelNorm.IsZero() {
		t.Errorf("fuelNorm = %v, want 0", m.FuelNorm)
	}
	if !m.FuelDiff.Equal(dec(-42)) {
		t.Errorf("fuelDiff = %v, want -42", m.FuelDiff)
	}
}

// =============================================================================
// CONCRETE SPEC SCENARIOS
// =============================================================================

func TestScenario_OrdinaryDate_ClosedMonth(t *testing.T) {
	// 1000 km on 2025-06-15 (not a step date), 80 L purchased:
	// norm = 94, diff = +14 (surplus), accrued = 5000;
	// a 5000 payment closes the month.
	e := newTestEngine()

	s := e.Summarize(
		[]engine.FuelEntry{fuel("2025-06-15", 1000, 80)},
		[]engine.AdjustmentEntry{payment("2025-06", 5000)},
	)

	m := s.Monthly[0]
	if !m.FuelNorm.Equal(dec(94)) {
		t.Errorf("fuelNorm = %v, want 94", m.FuelNorm)
	}
	if !m.FuelDiff.Equal(dec(14)) {
		t.Errorf("fuelDiff = %v, want 14", m.FuelDiff)
	}
	if !m.AccruedCompensation.Equal(dec(5000)) {
		t.Errorf("accrued = %v, want 5000", m.AccruedCompensation)
	}
	if !m.Remaining.IsZero() {
		t.Errorf("remaining = %v, want 0", m.Remaining)
	}
	if m.Status != engine.StatusClosed {
		t.Errorf("status = %v, want closed", m.Status)
	}
}

func TestScenario_StepDate(t *testing.T) {
	// Same distance/liters on 2025-12-31 (step date):
	// rate = 9.4 * 1.07 = 10.058 -> norm = 100.58, diff = 20.58.
	e := newTestEngine()

	s := e.Summarize([]engine.FuelEntry{fuel("2025-12-31", 1000, 80)}, nil)

	m := s.Monthly[0]
	if !m.FuelNorm.Equal(dec(100.58)) {
		t.Errorf("fuelNorm = %v, want 100.58", m.FuelNorm)
	}
	if !m.FuelDiff.Equal(dec(20.58)) {
		t.Errorf("fuelDiff = %v, want 20.58", m.FuelDiff)
	}
}

// =============================================================================
// PERIOD TOTALS
// =============================================================================

func TestTotals_AdjustedBalanceIdentity(t *testing.T) {
	// adjustedFuelDiff == (totalNorm - totalLiters) + totalDebtDeductionLiters
	// exactly, for any combination of entries and deductions.
	e := newTestEngine()

	s := e.Summarize(
		[]engine.FuelEntry{
			fuel("2025-06-15", 1000, 108),
			fuel("2025-07-20", 500, 60),
		},
		[]engine.AdjustmentEntry{
			litersDeduction("2025-06", 10),
			{Kind: engine.AdjustmentDebtDeduction, MonthKey: "2025-07", Amount: nd(300), Liters: nd(4)},
		},
	)

	want := s.Totals.TotalNorm.Sub(s.Totals.TotalLiters).Add(s.Totals.TotalDebtDeductionLiters)
	if !s.Totals.AdjustedFuelDiff.Equal(want) {
		t.Errorf("adjustedFuelDiff = %v, want %v", s.Totals.AdjustedFuelDiff, want)
	}
	if !s.Totals.TotalDebtDeductionLiters.Equal(dec(14)) {
		t.Errorf("deducted liters = %v, want 14", s.Totals.TotalDebtDeductionLiters)
	}
}

func TestTotals_NetCompensationMayBeNegative(t *testing.T) {
	// Paid more than accrued: net must be displayable as negative, not
	// clamped.
	e := newTestEngine()

	s := e.Summarize(
		[]engine.FuelEntry{fuel("2025-06-15", 100, 10)}, // accrues 500
		[]engine.AdjustmentEntry{payment("2025-06", 2000)},
	)

	if !s.Totals.NetCompensation.Equal(dec(-1500)) {
		t.Errorf("netCompensation = %v, want -1500", s.Totals.NetCompensation)
	}
}

func TestTotals_AdjustmentOnlyMonth_StillCounted(t *testing.T) {
	// An adjustment targeting a month with no fuel entries never appears in
	// the monthly list but must still count in the period totals.
	e := newTestEngine()

	s := e.Summarize(
		[]engine.FuelEntry{fuel("2025-06-15", 1000, 80)},
		[]engine.AdjustmentEntry{payment("2025-01", 1200)},
	)

	if len(s.Monthly) != 1 {
		t.Fatalf("expected one month, got %d", len(s.Monthly))
	}
	if !s.Totals.TotalPaid.Equal(dec(1200)) {
		t.Errorf("totalPaid = %v, want 1200", s.Totals.TotalPaid)
	}
}

// =============================================================================
// EXPLANATION LINE
// =============================================================================

func TestExplanation_MarksEstimates(t *testing.T) {
	e := newTestEngine()

	s := e.Summarize(
		[]engine.FuelEntry{fuel("2025-06-15", 1000, 80)},
		[]engine.AdjustmentEntry{litersDeduction("2025-06", 10)},
	)

	if s.Explanation == "" {
		t.Fatal("explanation must not be empty")
	}
	if !strings.Contains(s.Explanation, "≈") {
		t.Errorf("estimated totals must surface the ≈ marker: %q", s.Explanation)
	}
}

func TestSummarize_EmptySnapshot(t *testing.T) {
	// The engine never fails; an empty store yields an empty, zeroed summary.
	e := newTestEngine()
	s := e.Summarize(nil, nil)

	if len(s.Monthly) != 0 {
		t.Errorf("expected no months, got %d", len(s.Monthly))
	}
	if !s.Totals.NetCompensation.IsZero() || !s.Totals.CarryoverDebtAmount.IsZero() {
		t.Errorf("empty snapshot should produce zero totals: %+v", s.Totals)
	}
	if s.Explanation == "" {
		t.Error("explanation should still render for an empty period")
	}
}
