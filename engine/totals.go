package engine

import "fmt"

// =============================================================================
// PERIOD TOTALS REDUCER
// =============================================================================

// reduceTotals folds all monthly results plus ALL adjustments (including
// those targeting months with no fuel entries) into grand totals.
func (e *Engine) reduceTotals(monthly []MonthlyLedgerResult, adjustments []AdjustmentEntry, carried carriedDebt) PeriodTotals {
	t := PeriodTotals{}

	for _, m := range monthly {
		t.TotalDistance = t.TotalDistance.Add(m.TotalDistance)
		t.TotalLiters = t.TotalLiters.Add(m.TotalLiters)
		t.TotalCost = t.TotalCost.Add(m.TotalCost)
		t.TotalNorm = t.TotalNorm.Add(m.FuelNorm)
		t.TotalAccrued = t.TotalAccrued.Add(m.AccruedCompensation)
	}
	t.FuelDiff = t.TotalNorm.Sub(t.TotalLiters)

	// Adjustments are summed over the full set, not via the monthly results:
	// an adjustment may target a month with no fuel entries and must still
	// count here.
	for _, adj := range adjustments {
		switch adj.Kind {
		case AdjustmentCompensationPayment:
			if adj.Amount.Valid {
				t.TotalPaid = t.TotalPaid.Add(adj.Amount.Decimal)
			}
		case AdjustmentDebtDeduction:
			switch {
			case adj.Amount.Valid:
				t.TotalDebtDeductionAmount = t.TotalDebtDeductionAmount.Add(adj.Amount.Decimal)
			case adj.Liters.Valid:
				// No explicit amount recorded: approximate from liters.
				t.TotalDebtDeductionAmount = t.TotalDebtDeductionAmount.Add(adj.Liters.Decimal.Mul(e.cfg.PricePerLiter))
				t.Estimated = true
			}
			if adj.Liters.Valid {
				t.TotalDebtDeductionLiters = t.TotalDebtDeductionLiters.Add(adj.Liters.Decimal)
			}
		}
	}

	// May be negative: the operator was paid more than accrued. Displayable,
	// never clamped.
	t.NetCompensation = t.TotalAccrued.Sub(t.TotalPaid).Sub(t.TotalDebtDeductionAmount)

	// Liter debt already deducted resolves exactly that much of the deficit.
	t.AdjustedFuelDiff = t.FuelDiff.Add(t.TotalDebtDeductionLiters)

	t.CarryoverDebtAmount = carried.Amount
	if carried.Amount.IsPositive() && e.cfg.PricePerLiter.IsPositive() {
		// Liter form of the currency debt is only ever derived, never stored.
		t.CarryoverDebtLiters = carried.Amount.Div(e.cfg.PricePerLiter)
		t.Estimated = true
	}

	return t
}

// =============================================================================
// EXPLANATION - One-line human-readable summary
// =============================================================================

func explanation(t PeriodTotals) string {
	approx := ""
	if t.Estimated {
		approx = "≈"
	}

	var fuel string
	switch {
	case t.AdjustedFuelDiff.IsNegative():
		fuel = fmt.Sprintf("fuel deficit of %s L against the norm", t.AdjustedFuelDiff.Neg().Round(2))
	case t.AdjustedFuelDiff.IsZero():
		fuel = "fuel consumption exactly on the norm"
	default:
		fuel = fmt.Sprintf("fuel surplus of %s L against the norm", t.AdjustedFuelDiff.Round(2))
	}

	var comp string
	switch {
	case t.NetCompensation.IsNegative():
		comp = fmt.Sprintf("compensation overpaid by %s%s", approx, t.NetCompensation.Neg().Round(2))
	case t.NetCompensation.IsZero():
		comp = "compensation fully settled"
	default:
		comp = fmt.Sprintf("net compensation payable %s%s", approx, t.NetCompensation.Round(2))
	}

	if t.CarryoverDebtAmount.IsPositive() {
		return fmt.Sprintf("%s; %s; carryover debt %s%s (%s%s L)",
			fuel, comp,
			approx, t.CarryoverDebtAmount.Round(2),
			approx, t.CarryoverDebtLiters.Round(2))
	}
	return fmt.Sprintf("%s; %s", fuel, comp)
}
