/*
Package store defines the persistence interfaces for the tracker's records.

PURPOSE:
  The engine is a pure function over a snapshot; this package owns the
  records. Unlike an audit ledger, the record book is editable — operators
  fix typos in past entries — so the interfaces are plain CRUD, and the
  summary is simply recomputed after every change.

WRITE vs READ VALIDATION:
  Create/Update validate via engine.Validate* and reject bad records (fail
  fast). Reads never validate: stores may hold historical data written
  before today's rules, and the engine tolerates it.

IMPLEMENTATIONS:
  - store/memory: in-memory, for tests and dev
  - store/sqlite: production persistence
*/
package store

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/warp/fuel-ledger/engine"
)

// =============================================================================
// RECORD STORE - Fuel entries and ledger adjustments
// =============================================================================

// RecordStore persists the two record kinds the engine consumes.
// List results are ordered by date ascending; ties keep insertion order.
type RecordStore interface {
	// CreateFuel validates, assigns an ID, and persists a fuel entry.
	CreateFuel(ctx context.Context, e engine.FuelEntry) (engine.FuelEntry, error)

	// UpdateFuel validates and replaces an existing entry by ID.
	UpdateFuel(ctx context.Context, e engine.FuelEntry) error

	DeleteFuel(ctx context.Context, id string) error
	GetFuel(ctx context.Context, id string) (engine.FuelEntry, error)
	ListFuel(ctx context.Context) ([]engine.FuelEntry, error)

	// CreateAdjustment validates, assigns an ID, derives the stored date
	// (first day of the target month), and persists an adjustment.
	CreateAdjustment(ctx context.Context, a engine.AdjustmentEntry) (engine.AdjustmentEntry, error)

	DeleteAdjustment(ctx context.Context, id string) error
	ListAdjustments(ctx context.Context) ([]engine.AdjustmentEntry, error)

	// Snapshot returns the complete entry set in one call — the engine's
	// input contract. No partial reads.
	Snapshot(ctx context.Context) ([]engine.FuelEntry, []engine.AdjustmentEntry, error)
}

// =============================================================================
// MAINTENANCE STORE - Separate record book, not consumed by the engine
// =============================================================================

// MaintenanceRecord is one service/repair entry for the vehicle.
type MaintenanceRecord struct {
	ID          string
	Date        string // ISO YYYY-MM-DD
	Odometer    decimal.NullDecimal
	Description string
	Cost        decimal.NullDecimal
}

// MaintenanceStore persists maintenance records. The reconciliation engine
// never reads these; they are plumbing for the record screens.
type MaintenanceStore interface {
	CreateMaintenance(ctx context.Context, m MaintenanceRecord) (MaintenanceRecord, error)
	UpdateMaintenance(ctx context.Context, m MaintenanceRecord) error
	DeleteMaintenance(ctx context.Context, id string) error
	ListMaintenance(ctx context.Context) ([]MaintenanceRecord, error)
}

// ValidateMaintenance checks a maintenance record at the write boundary.
func ValidateMaintenance(m MaintenanceRecord) error {
	if !engine.ValidDate(m.Date) {
		return &engine.FieldError{Field: "date", Err: engine.ErrMalformedDate}
	}
	if m.Description == "" {
		return engine.ErrMissingFields
	}
	if m.Odometer.Valid && m.Odometer.Decimal.IsNegative() {
		return &engine.FieldError{Field: "odometer", Err: engine.ErrNegativeValue}
	}
	if m.Cost.Valid && m.Cost.Decimal.IsNegative() {
		return &engine.FieldError{Field: "cost", Err: engine.ErrNegativeValue}
	}
	return nil
}
