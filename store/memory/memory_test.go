package memory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/fuel-ledger/engine"
	"github.com/warp/fuel-ledger/store"
	"github.com/warp/fuel-ledger/store/memory"
)

func nd(f float64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromFloat(f))
}

func TestMemory_FuelCRUD(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	created, err := s.CreateFuel(ctx, engine.FuelEntry{
		Date: "2025-06-15", Distance: nd(412), Liters: nd(31.5),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := s.GetFuel(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Distance.Decimal.Equal(decimal.NewFromInt(412)))

	created.Liters = nd(32)
	require.NoError(t, s.UpdateFuel(ctx, created))

	require.NoError(t, s.DeleteFuel(ctx, created.ID))
	_, err = s.GetFuel(ctx, created.ID)
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestMemory_CreateFuel_RejectsInvalid(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	// No distance, liters, or cost: the write boundary fails fast.
	_, err := s.CreateFuel(ctx, engine.FuelEntry{Date: "2025-06-15"})
	assert.ErrorIs(t, err, engine.ErrMissingFields)
	assert.True(t, engine.IsValidation(err))
}

func TestMemory_ListFuel_SortedByDate(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	for _, date := range []string{"2025-07-01", "2025-05-20", "2025-06-15"} {
		_, err := s.CreateFuel(ctx, engine.FuelEntry{Date: date, Distance: nd(100)})
		require.NoError(t, err)
	}

	list, err := s.ListFuel(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2025-05-20", list[0].Date)
	assert.Equal(t, "2025-07-01", list[2].Date)
}

func TestMemory_CreateAdjustment_DerivesDate(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	a, err := s.CreateAdjustment(ctx, engine.AdjustmentEntry{
		Kind:     engine.AdjustmentCompensationPayment,
		MonthKey: "2025-06",
		Amount:   nd(5000),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", a.Date, "adjustments store the first day of the target month")
}

func TestMemory_Snapshot_FeedsEngine(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	_, err := s.CreateFuel(ctx, engine.FuelEntry{Date: "2025-06-15", Distance: nd(1000), Liters: nd(80)})
	require.NoError(t, err)
	_, err = s.CreateAdjustment(ctx, engine.AdjustmentEntry{
		Kind: engine.AdjustmentCompensationPayment, MonthKey: "2025-06", Amount: nd(5000),
	})
	require.NoError(t, err)

	fuel, adjustments, err := s.Snapshot(ctx)
	require.NoError(t, err)

	summary := engine.New(engine.DefaultConfig()).Summarize(fuel, adjustments)
	require.Len(t, summary.Monthly, 1)
	assert.Equal(t, engine.StatusClosed, summary.Monthly[0].Status)
}

func TestMemory_MaintenanceCRUD(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	m, err := s.CreateMaintenance(ctx, store.MaintenanceRecord{
		Date: "2025-04-02", Description: "oil change", Odometer: nd(84200), Cost: nd(4500),
	})
	require.NoError(t, err)
	require.NotEmpty(t, m.ID)

	_, err = s.CreateMaintenance(ctx, store.MaintenanceRecord{Date: "2025-04-02"})
	assert.Error(t, err, "description is required")

	list, err := s.ListMaintenance(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	m.Cost = nd(4800)
	require.NoError(t, s.UpdateMaintenance(ctx, m))
	require.NoError(t, s.DeleteMaintenance(ctx, m.ID))
	assert.ErrorIs(t, s.DeleteMaintenance(ctx, m.ID), engine.ErrNotFound)
}
