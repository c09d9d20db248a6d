/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal decimal-based domain model from the external API contract:
  clients send and receive plain JSON numbers, nullable fields are
  pointers, and absent stays null.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done at the store write boundary, not in DTOs. DTOs are
  pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - engine/types.go: The domain model these mirror
*/
package api

import (
	"github.com/shopspring/decimal"
	"github.com/warp/fuel-ledger/engine"
	"github.com/warp/fuel-ledger/store"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ErrorResponse is the JSON body for all error statuses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// FuelEntryDTO represents a fuel entry in API responses.
type FuelEntryDTO struct {
	ID       string   `json:"id"`
	Date     string   `json:"date"`
	Distance *float64 `json:"distance"`
	Liters   *float64 `json:"liters"`
	Cost     *float64 `json:"cost"`
}

// AdjustmentDTO represents a ledger adjustment in API responses.
type AdjustmentDTO struct {
	ID      string   `json:"id"`
	Date    string   `json:"date"`
	Kind    string   `json:"kind"`
	Month   string   `json:"month"`
	Amount  *float64 `json:"amount"`
	Liters  *float64 `json:"liters"`
	Comment string   `json:"comment,omitempty"`
}

// MaintenanceDTO represents a maintenance record in API responses.
type MaintenanceDTO struct {
	ID          string   `json:"id"`
	Date        string   `json:"date"`
	Odometer    *float64 `json:"odometer"`
	Description string   `json:"description"`
	Cost        *float64 `json:"cost"`
}

// MaintenanceRequest is the request to create or update a maintenance record.
type MaintenanceRequest struct {
	Date        string   `json:"date"`
	Odometer    *float64 `json:"odometer"`
	Description string   `json:"description"`
	Cost        *float64 `json:"cost"`
}

// MonthlyRowDTO is one month of the reconciliation ledger.
type MonthlyRowDTO struct {
	Month               string  `json:"month"`
	Label               string  `json:"label"`
	TotalDistance       float64 `json:"total_distance"`
	TotalLiters         float64 `json:"total_liters"`
	TotalCost           float64 `json:"total_cost"`
	FuelNorm            float64 `json:"fuel_norm"`
	FuelDiff            float64 `json:"fuel_diff"`
	AccruedCompensation float64 `json:"accrued_compensation"`
	PaidCompensation    float64 `json:"paid_compensation"`
	DebtDeductionAmount float64 `json:"debt_deduction_amount"`
	DebtDeductionLiters float64 `json:"debt_deduction_liters"`
	EffectiveApplied    float64 `json:"effective_applied"`
	Estimated           bool    `json:"estimated"`
	Remaining           float64 `json:"remaining"`
	Status              string  `json:"status"`
	IncomingDebtAmount  float64 `json:"incoming_debt_amount"`
	IncomingDebtLiters  float64 `json:"incoming_debt_liters"`
	CarryoverDebtAmount float64 `json:"carryover_debt_amount"`
	CarryoverDebtLiters float64 `json:"carryover_debt_liters"`
}

// TotalsDTO is the whole-period reconciliation bottom line.
type TotalsDTO struct {
	TotalDistance            float64 `json:"total_distance"`
	TotalLiters              float64 `json:"total_liters"`
	TotalCost                float64 `json:"total_cost"`
	TotalNorm                float64 `json:"total_norm"`
	FuelDiff                 float64 `json:"fuel_diff"`
	TotalAccrued             float64 `json:"total_accrued"`
	TotalPaid                float64 `json:"total_paid"`
	TotalDebtDeductionAmount float64 `json:"total_debt_deduction_amount"`
	TotalDebtDeductionLiters float64 `json:"total_debt_deduction_liters"`
	Estimated                bool    `json:"estimated"`
	NetCompensation          float64 `json:"net_compensation"`
	AdjustedFuelDiff         float64 `json:"adjusted_fuel_diff"`
	CarryoverDebtAmount      float64 `json:"carryover_debt_amount"`
	CarryoverDebtLiters      float64 `json:"carryover_debt_liters"`
}

// SummaryDTO is the full reconciliation response.
type SummaryDTO struct {
	Monthly     []MonthlyRowDTO `json:"monthly"`
	Totals      TotalsDTO       `json:"totals"`
	Explanation string          `json:"explanation"`
}

// ConfigDTO exposes the reconciliation constants in effect.
type ConfigDTO struct {
	BaselineRate      float64  `json:"baseline_rate"`
	StepDates         []string `json:"step_dates"`
	StepIncrease      float64  `json:"step_increase"`
	CompensationPerKm float64  `json:"compensation_per_km"`
	PricePerLiter     float64  `json:"price_per_liter"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func nullFloat(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.InexactFloat64()
	return &f
}

func toNullDecimal(f *float64) decimal.NullDecimal {
	if f == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(*f))
}

func toFuelDTO(e engine.FuelEntry) FuelEntryDTO {
	return FuelEntryDTO{
		ID:       e.ID,
		Date:     e.Date,
		Distance: nullFloat(e.Distance),
		Liters:   nullFloat(e.Liters),
		Cost:     nullFloat(e.Cost),
	}
}

func toAdjustmentDTO(a engine.AdjustmentEntry) AdjustmentDTO {
	return AdjustmentDTO{
		ID:      a.ID,
		Date:    a.Date,
		Kind:    string(a.Kind),
		Month:   a.MonthKey,
		Amount:  nullFloat(a.Amount),
		Liters:  nullFloat(a.Liters),
		Comment: a.Comment,
	}
}

func toMaintenanceDTO(m store.MaintenanceRecord) MaintenanceDTO {
	return MaintenanceDTO{
		ID:          m.ID,
		Date:        m.Date,
		Odometer:    nullFloat(m.Odometer),
		Description: m.Description,
		Cost:        nullFloat(m.Cost),
	}
}

func toMonthlyRowDTO(m engine.MonthlyLedgerResult) MonthlyRowDTO {
	return MonthlyRowDTO{
		Month:               m.MonthKey,
		Label:               m.Label,
		TotalDistance:       m.TotalDistance.InexactFloat64(),
		TotalLiters:         m.TotalLiters.InexactFloat64(),
		TotalCost:           m.TotalCost.InexactFloat64(),
		FuelNorm:            m.FuelNorm.InexactFloat64(),
		FuelDiff:            m.FuelDiff.InexactFloat64(),
		AccruedCompensation: m.AccruedCompensation.InexactFloat64(),
		PaidCompensation:    m.PaidCompensation.InexactFloat64(),
		DebtDeductionAmount: m.DebtDeductionAmount.InexactFloat64(),
		DebtDeductionLiters: m.DebtDeductionLiters.InexactFloat64(),
		EffectiveApplied:    m.EffectiveApplied.InexactFloat64(),
		Estimated:           m.Estimated,
		Remaining:           m.Remaining.InexactFloat64(),
		Status:              string(m.Status),
		IncomingDebtAmount:  m.IncomingDebtAmount.InexactFloat64(),
		IncomingDebtLiters:  m.IncomingDebtLiters.InexactFloat64(),
		CarryoverDebtAmount: m.CarryoverDebtAmount.InexactFloat64(),
		CarryoverDebtLiters: m.CarryoverDebtLiters.InexactFloat64(),
	}
}

func toSummaryDTO(s engine.PeriodSummary) SummaryDTO {
	monthly := make([]MonthlyRowDTO, len(s.Monthly))
	for i, m := range s.Monthly {
		monthly[i] = toMonthlyRowDTO(m)
	}
	t := s.Totals
	return SummaryDTO{
		Monthly: monthly,
		Totals: TotalsDTO{
			TotalDistance:            t.TotalDistance.InexactFloat64(),
			TotalLiters:              t.TotalLiters.InexactFloat64(),
			TotalCost:                t.TotalCost.InexactFloat64(),
			TotalNorm:                t.TotalNorm.InexactFloat64(),
			FuelDiff:                 t.FuelDiff.InexactFloat64(),
			TotalAccrued:             t.TotalAccrued.InexactFloat64(),
			TotalPaid:                t.TotalPaid.InexactFloat64(),
			TotalDebtDeductionAmount: t.TotalDebtDeductionAmount.InexactFloat64(),
			TotalDebtDeductionLiters: t.TotalDebtDeductionLiters.InexactFloat64(),
			Estimated:                t.Estimated,
			NetCompensation:          t.NetCompensation.InexactFloat64(),
			AdjustedFuelDiff:         t.AdjustedFuelDiff.InexactFloat64(),
			CarryoverDebtAmount:      t.CarryoverDebtAmount.InexactFloat64(),
			CarryoverDebtLiters:      t.CarryoverDebtLiters.InexactFloat64(),
		},
		Explanation: s.Explanation,
	}
}

func toConfigDTO(c engine.Config) ConfigDTO {
	steps := make([]string, len(c.StepDates))
	copy(steps, c.StepDates)
	return ConfigDTO{
		BaselineRate:      c.BaselineRate.InexactFloat64(),
		StepDates:         steps,
		StepIncrease:      c.StepIncrease.InexactFloat64(),
		CompensationPerKm: c.CompensationPerKm.InexactFloat64(),
		PricePerLiter:     c.PricePerLiter.InexactFloat64(),
	}
}
