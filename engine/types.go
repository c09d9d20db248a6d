/*
Package engine implements the fuel/compensation reconciliation engine.

PURPOSE:
  This package contains the pure computation at the heart of the tracker:
  turning a snapshot of stored records (fuel purchases + ledger adjustments)
  into a period summary — monthly rollups, the compensation ledger with
  month-to-month debt carry-forward, and grand totals.

KEY CONCEPTS IN THIS FILE (types.go):
  - FuelEntry: one fuel purchase / odometer reading
  - AdjustmentEntry: a compensation-ledger correction (payment or deduction)
  - MonthlyAggregate: one calendar month's rollup of fuel entries
  - MonthlyLedgerResult: the aggregate plus the compensation ledger state
  - PeriodSummary: the engine's complete output

DESIGN PRINCIPLES:
  1. Purity: the engine owns no mutable state; it is a function from a
     record snapshot to an immutable summary. Concurrent invocations never
     interfere.
  2. Precision: all quantities use decimal.Decimal; optional stored values
     use decimal.NullDecimal.
  3. Read-side tolerance: stored data that predates today's validation is
     never rejected during aggregation. Validation happens only at the
     write boundary (validate.go).

SEE ALSO:
  - config.go: the constants every calculation depends on
  - normalize.go: raw stored JSON -> these types
  - ledger.go: the chronological fold with carry-forward
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RECORD KINDS
// =============================================================================

type RecordKind string

const (
	KindFuel       RecordKind = "fuel"
	KindAdjustment RecordKind = "adjustment"
)

type AdjustmentKind string

const (
	// AdjustmentCompensationPayment records cash paid to the operator.
	// Carries an amount, never liters.
	AdjustmentCompensationPayment AdjustmentKind = "compensation_payment"

	// AdjustmentDebtDeduction records debt written off against the
	// accumulated deficit. Carries an amount, a liter figure, or both;
	// the two are tracked independently.
	AdjustmentDebtDeduction AdjustmentKind = "debt_deduction"
)

// =============================================================================
// FUEL ENTRY - One fuel purchase / odometer reading
// =============================================================================

// FuelEntry is one stored fuel record.
//
// Distance, Liters and Cost are all optional: an entry with only liters and
// cost is a pure refuel that accrues no allowance; an entry with only
// distance is an odometer reading. At least one of the three must be present
// to create an entry (enforced in validate.go, not here).
type FuelEntry struct {
	ID   string
	Date string // ISO YYYY-MM-DD; primary ordering key

	Distance decimal.NullDecimal // kilometers since the prior entry
	Liters   decimal.NullDecimal // fuel volume purchased
	Cost     decimal.NullDecimal // currency spent

	// Invalid lists fields whose stored value was present but non-numeric.
	// Set by the normalizer; rejected at write time, tolerated at read time.
	Invalid []string
}

// MonthKey returns the YYYY-MM bucket for this entry, or "" when the stored
// date does not start with a parseable YYYY-MM prefix. The empty key is the
// "unknown" bucket: retained in totals, excluded from carry-forward.
func (e FuelEntry) MonthKey() string {
	return monthKeyOf(e.Date)
}

// =============================================================================
// ADJUSTMENT ENTRY - Compensation-ledger correction
// =============================================================================

// AdjustmentEntry is a non-fuel ledger record targeting one month.
type AdjustmentEntry struct {
	ID   string
	Date string // stored as the first day of the target month
	Kind AdjustmentKind

	// MonthKey is the YYYY-MM the adjustment applies to.
	MonthKey string

	// Amount is required for payments, optional for deductions.
	Amount decimal.NullDecimal

	// Liters is only meaningful for debt deductions.
	Liters decimal.NullDecimal

	Comment string

	Invalid []string
}

// =============================================================================
// MONTHLY AGGREGATE - Derived, never persisted
// =============================================================================

// MonthlyAggregate is one calendar month's rollup of fuel entries.
// Recomputed from scratch on every read; a pure view over the record store.
type MonthlyAggregate struct {
	MonthKey string // "" = unknown bucket
	Label    string // e.g. "June 2025", or "unknown"

	TotalDistance decimal.Decimal
	TotalLiters   decimal.Decimal
	TotalCost     decimal.Decimal

	// FuelNorm is the allowed volume: sum over entries of
	// distance * rate(date) / 100.
	FuelNorm decimal.Decimal

	// FuelDiff = FuelNorm - TotalLiters.
	// Positive = under-consumed (surplus), negative = over-consumed (deficit).
	FuelDiff decimal.Decimal
}

// =============================================================================
// MONTHLY LEDGER RESULT - Aggregate + compensation ledger state
// =============================================================================

// ClosureStatus is a pure function of the adjustments accumulated for the
// month: open -> partially_closed -> closed. It is recomputed on every read,
// never mutated, so no backward-transition logic exists.
type ClosureStatus string

const (
	StatusOpen            ClosureStatus = "open"
	StatusPartiallyClosed ClosureStatus = "partially_closed"
	StatusClosed          ClosureStatus = "closed"
)

// MonthlyLedgerResult extends the aggregate with the compensation ledger.
//
// The ledger runs two independent debt threads:
//   - currency: accrued compensation vs. payments + deductions
//   - liters:   the fuel deficit vs. liter-denominated deductions
//
// Neither thread is netted against the other; both are surfaced.
type MonthlyLedgerResult struct {
	MonthlyAggregate

	// AccruedCompensation = TotalDistance * per-km compensation rate.
	AccruedCompensation decimal.Decimal

	// PaidCompensation sums this month's compensation_payment adjustments.
	PaidCompensation decimal.Decimal

	// DebtDeduction sums this month's debt_deduction adjustments; amount and
	// liters are independent sums (a deduction may carry either or both).
	DebtDeductionAmount decimal.Decimal
	DebtDeductionLiters decimal.Decimal

	// EffectiveApplied = paid + deducted, with liters-only deductions valued
	// at the approximate per-liter price. Estimated reports whether that
	// approximation was used.
	EffectiveApplied decimal.Decimal
	Estimated        bool

	// Remaining = AccruedCompensation - EffectiveApplied.
	Remaining decimal.Decimal

	Status ClosureStatus

	// Debt carried in from the immediately preceding chronological month.
	IncomingDebtAmount decimal.Decimal
	IncomingDebtLiters decimal.Decimal

	// Debt passed forward to the next month after applying this month.
	CarryoverDebtAmount decimal.Decimal
	CarryoverDebtLiters decimal.Decimal
}

// =============================================================================
// PERIOD TOTALS & SUMMARY
// =============================================================================

// PeriodTotals folds every month plus every adjustment into grand totals.
type PeriodTotals struct {
	TotalDistance decimal.Decimal
	TotalLiters   decimal.Decimal
	TotalCost     decimal.Decimal
	TotalNorm     decimal.Decimal
	FuelDiff      decimal.Decimal // TotalNorm - TotalLiters

	TotalAccrued decimal.Decimal
	TotalPaid    decimal.Decimal

	// TotalDebtDeductionAmount includes liters*price approximations for
	// deductions recorded without an explicit amount; Estimated is true
	// whenever any such approximation (or the derived carryover liters)
	// contributed, so the presentation layer can render an ≈ marker.
	TotalDebtDeductionAmount decimal.Decimal
	TotalDebtDeductionLiters decimal.Decimal
	Estimated                bool

	// NetCompensation = TotalAccrued - TotalPaid - TotalDebtDeductionAmount.
	// May be negative (paid more than accrued); never clamped.
	NetCompensation decimal.Decimal

	// AdjustedFuelDiff = FuelDiff + TotalDebtDeductionLiters: debt already
	// deducted in liters resolves exactly that much of the deficit.
	AdjustedFuelDiff decimal.Decimal

	// Unresolved debt at period end, from the last chronological month.
	// The liter form is derived via the approximate price and is always an
	// approximation.
	CarryoverDebtAmount decimal.Decimal
	CarryoverDebtLiters decimal.Decimal
}

// PeriodSummary is the engine's complete output.
type PeriodSummary struct {
	Monthly []MonthlyLedgerResult // chronological; unknown bucket last
	Totals  PeriodTotals

	// Explanation is a one-line human-readable net surplus/deficit summary.
	Explanation string
}

// =============================================================================
// MONTH KEY HELPERS
// =============================================================================

// monthKeyOf extracts the YYYY-MM prefix of an ISO date, or "" when the
// prefix is not a well-formed month key.
func monthKeyOf(date string) string {
	if len(date) < 7 {
		return ""
	}
	key := date[:7]
	if !monthKeyRe.MatchString(key) {
		return ""
	}
	return key
}

// monthLabel renders a human label for a month key ("2025-06" -> "June 2025").
func monthLabel(key string) string {
	if key == "" {
		return "unknown"
	}
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("January 2006")
}
