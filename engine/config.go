package engine

import "github.com/shopspring/decimal"

// =============================================================================
// CONFIG - Every constant the engine depends on, in one place
// =============================================================================

// Config carries the published allowance schedule and compensation rates.
// The engine is constructed with a Config; nothing inside the calculators is
// hard-coded, so tests can exercise alternate schedules.
type Config struct {
	// BaselineRate is the allowed fuel volume in liters per 100 km.
	BaselineRate decimal.Decimal

	// StepDates are the literal calendar dates (YYYY-MM-DD) on which the
	// authority published a rate revision. An entry dated exactly on a step
	// date uses BaselineRate * (1 + StepIncrease); any other date uses the
	// baseline. The schedule is a literal set, not a continuous function,
	// matching how revisions are announced.
	StepDates []string

	// StepIncrease is the fractional increase on step dates (0.07 = +7%).
	StepIncrease decimal.Decimal

	// CompensationPerKm is the currency accrued per kilometer traveled.
	CompensationPerKm decimal.Decimal

	// PricePerLiter is the approximate currency-per-liter price used ONLY
	// for display-side debt estimation (valuing liters-only deductions and
	// deriving the liter form of currency debt). Figures derived through it
	// are always flagged as estimates.
	PricePerLiter decimal.Decimal
}

// DefaultConfig returns the published schedule the tracker ships with.
func DefaultConfig() Config {
	return Config{
		BaselineRate: decimal.NewFromFloat(9.4),
		StepDates: []string{
			"2024-12-31",
			"2025-12-31",
		},
		StepIncrease:      decimal.NewFromFloat(0.07),
		CompensationPerKm: decimal.NewFromInt(5),
		PricePerLiter:     decimal.NewFromInt(76),
	}
}

// IsStepDate reports whether date is exactly one of the revision dates.
func (c Config) IsStepDate(date string) bool {
	for _, d := range c.StepDates {
		if d == date {
			return true
		}
	}
	return false
}
