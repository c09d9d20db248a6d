package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warp/fuel-ledger/engine"
)

func TestValidateFuelEntry(t *testing.T) {
	valid := engine.FuelEntry{Date: "2025-06-15", Distance: nd(100)}
	assert.NoError(t, engine.ValidateFuelEntry(valid))

	// At least one of distance/liters/cost must be present on creation.
	empty := engine.FuelEntry{Date: "2025-06-15"}
	assert.ErrorIs(t, engine.ValidateFuelEntry(empty), engine.ErrMissingFields)

	negative := engine.FuelEntry{Date: "2025-06-15", Liters: nd(-3)}
	assert.ErrorIs(t, engine.ValidateFuelEntry(negative), engine.ErrNegativeValue)

	badDate := engine.FuelEntry{Date: "15.06.2025", Distance: nd(100)}
	assert.ErrorIs(t, engine.ValidateFuelEntry(badDate), engine.ErrMalformedDate)

	// Non-numeric stored input was flagged by the normalizer; the write is
	// rejected here, not silently at read time.
	coerced := engine.NormalizeFuel(map[string]any{
		"date": "2025-06-15", "distance": "four hundred",
	})
	err := engine.ValidateFuelEntry(coerced)
	assert.ErrorIs(t, err, engine.ErrNonNumericValue)
	assert.True(t, engine.IsValidation(err))
}

func TestValidateAdjustment(t *testing.T) {
	pay := engine.AdjustmentEntry{
		Kind: engine.AdjustmentCompensationPayment, MonthKey: "2025-06", Amount: nd(5000),
	}
	assert.NoError(t, engine.ValidateAdjustment(pay))

	// A compensation_payment has no liters.
	payWithLiters := pay
	payWithLiters.Liters = nd(5)
	assert.Error(t, engine.ValidateAdjustment(payWithLiters))

	// A payment requires an amount.
	payNoAmount := engine.AdjustmentEntry{Kind: engine.AdjustmentCompensationPayment, MonthKey: "2025-06"}
	assert.ErrorIs(t, engine.ValidateAdjustment(payNoAmount), engine.ErrMissingFields)

	// A debt_deduction needs an amount or liters (or both).
	ded := engine.AdjustmentEntry{Kind: engine.AdjustmentDebtDeduction, MonthKey: "2025-06", Liters: nd(10)}
	assert.NoError(t, engine.ValidateAdjustment(ded))
	dedEmpty := engine.AdjustmentEntry{Kind: engine.AdjustmentDebtDeduction, MonthKey: "2025-06"}
	assert.ErrorIs(t, engine.ValidateAdjustment(dedEmpty), engine.ErrMissingFields)

	badKey := engine.AdjustmentEntry{Kind: engine.AdjustmentDebtDeduction, MonthKey: "June 2025", Liters: nd(10)}
	assert.ErrorIs(t, engine.ValidateAdjustment(badKey), engine.ErrMalformedMonthKey)

	badKind := engine.AdjustmentEntry{Kind: "bonus", MonthKey: "2025-06", Amount: nd(10)}
	assert.ErrorIs(t, engine.ValidateAdjustment(badKind), engine.ErrInvalidKind)
}

func TestFirstOfMonth(t *testing.T) {
	assert.Equal(t, "2025-06-01", engine.FirstOfMonth("2025-06"))
	assert.Equal(t, "", engine.FirstOfMonth("garbage"))
}
