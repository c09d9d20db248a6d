/*
ledger.go - Compensation ledger with month-to-month debt carry-forward

PURPOSE:
  Walks the sorted month sequence strictly in chronological order and, for
  each month, computes accrued compensation, applies that month's
  adjustments, determines closure status, and threads unresolved debt into
  the next month.

ORDERING IS LOAD-BEARING:
  The carry-forward makes each month depend on the previous one. Processing
  out of order corrupts every subsequent month's incoming debt, which is why
  the fold runs over the aggregator's sorted output and the unknown-date
  bucket is kept out of the sequence entirely.

TWO PARALLEL DEBT THREADS:
  currency: accrued compensation minus payments/deductions. A month's
            positive remainder joins the running debt; an overpayment
            reduces it, but never below zero (no credit carries).
  liters:   the fuel deficit (negative FuelDiff). A surplus month reduces
            carried liter debt, again floored at zero. Liter-denominated
            deductions resolve liter debt directly.

  The threads are never netted against each other. The only liter<->currency
  conversion anywhere is the display-side valuation of liters-only
  deductions at the approximate price, and results touched by it carry an
  Estimated flag.

IMPLEMENTATION NOTE:
  The carry is an explicit left-fold threading an immutable carriedDebt
  value from month i to month i+1 — there is no shared mutable accumulator
  referenced by multiple months.
*/
package engine

import "github.com/shopspring/decimal"

// carriedDebt is the immutable value threaded through the fold.
type carriedDebt struct {
	Amount decimal.Decimal
	Liters decimal.Decimal
}

// runLedger folds the compensation ledger over the sorted months and returns
// the per-month results plus the debt left unresolved after the last
// chronological month.
func (e *Engine) runLedger(aggs []MonthlyAggregate, adjustments []AdjustmentEntry) ([]MonthlyLedgerResult, carriedDebt) {
	byMonth := make(map[string][]AdjustmentEntry)
	for _, adj := range adjustments {
		byMonth[adj.MonthKey] = append(byMonth[adj.MonthKey], adj)
	}

	results := make([]MonthlyLedgerResult, 0, len(aggs))
	carried := carriedDebt{}

	for _, agg := range aggs {
		if agg.MonthKey == "" {
			// Unknown bucket: ledger math still runs so totals stay complete,
			// but it neither receives nor produces carried debt.
			results = append(results, e.ledgerMonth(agg, byMonth[agg.MonthKey], carriedDebt{}).MonthlyLedgerResult)
			continue
		}
		step := e.ledgerMonth(agg, byMonth[agg.MonthKey], carried)
		results = append(results, step.MonthlyLedgerResult)
		carried = step.carried
	}

	return results, carried
}

type ledgerStep struct {
	MonthlyLedgerResult
	carried carriedDebt
}

// ledgerMonth applies one month of the fold.
func (e *Engine) ledgerMonth(agg MonthlyAggregate, adjustments []AdjustmentEntry, incoming carriedDebt) ledgerStep {
	res := MonthlyLedgerResult{
		MonthlyAggregate:    agg,
		AccruedCompensation: agg.TotalDistance.Mul(e.cfg.CompensationPerKm),
		IncomingDebtAmount:  incoming.Amount,
		IncomingDebtLiters:  incoming.Liters,
	}

	for _, adj := range adjustments {
		switch adj.Kind {
		case AdjustmentCompensationPayment:
			if adj.Amount.Valid {
				res.PaidCompensation = res.PaidCompensation.Add(adj.Amount.Decimal)
			}
		case AdjustmentDebtDeduction:
			if adj.Amount.Valid {
				res.DebtDeductionAmount = res.DebtDeductionAmount.Add(adj.Amount.Decimal)
			}
			if adj.Liters.Valid {
				res.DebtDeductionLiters = res.DebtDeductionLiters.Add(adj.Liters.Decimal)
			}
		}
	}

	res.EffectiveApplied = res.PaidCompensation.Add(res.DebtDeductionAmount)
	// Liters-only deductions are valued at the approximate price so they can
	// participate in the currency ledger at all. Approximation, never exact.
	for _, adj := range adjustments {
		if adj.Kind == AdjustmentDebtDeduction && !adj.Amount.Valid && adj.Liters.Valid {
			res.EffectiveApplied = res.EffectiveApplied.Add(adj.Liters.Decimal.Mul(e.cfg.PricePerLiter))
			res.Estimated = true
		}
	}

	res.Remaining = res.AccruedCompensation.Sub(res.EffectiveApplied)
	res.Status = closureStatus(res.AccruedCompensation, res.EffectiveApplied)

	// Currency thread: unpaid compensation joins the running debt;
	// overpayment reduces it, floored at zero.
	nextAmount := incoming.Amount.Add(res.Remaining)
	if nextAmount.IsNegative() {
		nextAmount = decimal.Zero
	}

	// Liter thread: this month's deficit adds, surplus and liter-denominated
	// deductions subtract, floored at zero.
	nextLiters := incoming.Liters.Sub(agg.FuelDiff).Sub(res.DebtDeductionLiters)
	if nextLiters.IsNegative() {
		nextLiters = decimal.Zero
	}

	res.CarryoverDebtAmount = nextAmount
	res.CarryoverDebtLiters = nextLiters

	return ledgerStep{
		MonthlyLedgerResult: res,
		carried:             carriedDebt{Amount: nextAmount, Liters: nextLiters},
	}
}

// closureStatus is the month state machine:
//
//	closed:           applied >= accrued > 0
//	partially_closed: 0 < applied < accrued
//	open:             everything else, including zero accrual
func closureStatus(accrued, applied decimal.Decimal) ClosureStatus {
	switch {
	case accrued.IsPositive() && applied.GreaterThanOrEqual(accrued):
		return StatusClosed
	case applied.IsPositive() && applied.LessThan(accrued):
		return StatusPartiallyClosed
	default:
		return StatusOpen
	}
}
