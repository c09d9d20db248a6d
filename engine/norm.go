package engine

import "github.com/shopspring/decimal"

// =============================================================================
// FUEL NORM CALCULATOR - rate(date) and norm(distance, date)
// =============================================================================

var hundred = decimal.NewFromInt(100)

// Rate returns the allowed liters per 100 km effective for entries dated on
// the given day. Step dates get the fixed percentage increase over baseline;
// every other date gets the baseline.
func (c Config) Rate(date string) decimal.Decimal {
	if c.IsStepDate(date) {
		return c.BaselineRate.Mul(decimal.NewFromInt(1).Add(c.StepIncrease))
	}
	return c.BaselineRate
}

// Norm returns the allowed fuel volume for a single entry:
// distance * rate(date) / 100 when distance is present and positive,
// zero otherwise. An entry with fuel or cost but no distance is a pure
// refuel with no allowance accrual, regardless of date.
func (c Config) Norm(distance decimal.NullDecimal, date string) decimal.Decimal {
	if !distance.Valid || !distance.Decimal.IsPositive() {
		return decimal.Zero
	}
	return distance.Decimal.Mul(c.Rate(date)).Div(hundred)
}
