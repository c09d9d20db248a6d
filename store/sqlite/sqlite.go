/*
Package sqlite provides the SQLite-backed record store.

PURPOSE:
  Production persistence for fuel entries, ledger adjustments, and
  maintenance records.

STORAGE SHAPE:
  Fuel and adjustment records are stored as JSON documents (payload_json)
  with the date and record type lifted into columns for ordering and
  filtering. Reads decode the document and pass it through the engine's
  normalizer — the same tolerant path that handles historical data written
  by older versions of the tracker. Maintenance records are plain columns;
  nothing downstream needs their loose shape.

VALIDATION:
  Writes validate (fail fast); reads never do.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  st, err := sqlite.New("./data/fuel.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

SEE ALSO:
  - store/store.go: Interface definitions
  - engine/normalize.go: The tolerant read-side decoding
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/fuel-ledger/engine"
	"github.com/warp/fuel-ledger/store"
)

// Store implements store.RecordStore and store.MaintenanceStore on SQLite.
type Store struct {
	db *sql.DB
}

var (
	_ store.RecordStore      = (*Store)(nil)
	_ store.MaintenanceStore = (*Store)(nil)
)

// New opens (or creates) the database at dbPath.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Fuel entries and ledger adjustments, as JSON documents.
	-- record_type and date are lifted into columns for ordering/filtering;
	-- payload_json is the document the normalizer decodes on read.
	CREATE TABLE IF NOT EXISTS records (
		id TEXT PRIMARY KEY,
		record_type TEXT NOT NULL,
		date TEXT NOT NULL,
		payload_json TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now')),
		updated_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE INDEX IF NOT EXISTS idx_records_type_date
		ON records(record_type, date);

	-- Maintenance records (separate book, plain columns)
	CREATE TABLE IF NOT EXISTS maintenance (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		odometer TEXT,
		description TEXT NOT NULL,
		cost TEXT,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE INDEX IF NOT EXISTS idx_maintenance_date
		ON maintenance(date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// FUEL ENTRIES
// =============================================================================

func (s *Store) CreateFuel(ctx context.Context, e engine.FuelEntry) (engine.FuelEntry, error) {
	if err := engine.ValidateFuelEntry(e); err != nil {
		return engine.FuelEntry{}, err
	}
	e.ID = uuid.NewString()

	payload, err := json.Marshal(fuelDoc(e))
	if err != nil {
		return engine.FuelEntry{}, fmt.Errorf("failed to encode record: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO records (id, record_type, date, payload_json) VALUES (?, 'fuel', ?, ?)`,
		e.ID, e.Date, string(payload))
	if err != nil {
		return engine.FuelEntry{}, fmt.Errorf("failed to insert fuel entry: %w", err)
	}
	return e, nil
}

func (s *Store) UpdateFuel(ctx context.Context, e engine.FuelEntry) error {
	if err := engine.ValidateFuelEntry(e); err != nil {
		return err
	}
	payload, err := json.Marshal(fuelDoc(e))
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE records SET date = ?, payload_json = ?, updated_at = datetime('now')
		 WHERE id = ? AND record_type = 'fuel'`,
		e.Date, string(payload), e.ID)
	if err != nil {
		return fmt.Errorf("failed to update fuel entry: %w", err)
	}
	return requireRow(res)
}

func (s *Store) DeleteFuel(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM records WHERE id = ? AND record_type = 'fuel'`, id)
	if err != nil {
		return fmt.Errorf("failed to delete fuel entry: %w", err)
	}
	return requireRow(res)
}

func (s *Store) GetFuel(ctx context.Context, id string) (engine.FuelEntry, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload_json FROM records WHERE id = ? AND record_type = 'fuel'`, id).
		Scan(&payload)
	if err == sql.ErrNoRows {
		return engine.FuelEntry{}, engine.ErrNotFound
	}
	if err != nil {
		return engine.FuelEntry{}, fmt.Errorf("failed to load fuel entry: %w", err)
	}
	e := engine.NormalizeFuel(decodeDoc(payload))
	e.ID = id
	return e, nil
}

func (s *Store) ListFuel(ctx context.Context) ([]engine.FuelEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, payload_json FROM records WHERE record_type = 'fuel' ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list fuel entries: %w", err)
	}
	defer rows.Close()

	var result []engine.FuelEntry
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, err
		}
		e := engine.NormalizeFuel(decodeDoc(payload))
		e.ID = id
		result = append(result, e)
	}
	return result, rows.Err()
}

// =============================================================================
// ADJUSTMENTS
// =============================================================================

func (s *Store) CreateAdjustment(ctx context.Context, a engine.AdjustmentEntry) (engine.AdjustmentEntry, error) {
	if err := engine.ValidateAdjustment(a); err != nil {
		return engine.AdjustmentEntry{}, err
	}
	a.ID = uuid.NewString()
	a.Date = engine.FirstOfMonth(a.MonthKey)

	payload, err := json.Marshal(adjustmentDoc(a))
	if err != nil {
		return engine.AdjustmentEntry{}, fmt.Errorf("failed to encode record: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO records (id, record_type, date, payload_json) VALUES (?, 'adjustment', ?, ?)`,
		a.ID, a.Date, string(payload))
	if err != nil {
		return engine.AdjustmentEntry{}, fmt.Errorf("failed to insert adjustment: %w", err)
	}
	return a, nil
}

func (s *Store) DeleteAdjustment(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM records WHERE id = ? AND record_type = 'adjustment'`, id)
	if err != nil {
		return fmt.Errorf("failed to delete adjustment: %w", err)
	}
	return requireRow(res)
}

func (s *Store) ListAdjustments(ctx context.Context) ([]engine.AdjustmentEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, payload_json FROM records WHERE record_type = 'adjustment' ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments: %w", err)
	}
	defer rows.Close()

	var result []engine.AdjustmentEntry
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, err
		}
		a := engine.NormalizeAdjustment(decodeDoc(payload))
		a.ID = id
		result = append(result, a)
	}
	return result, rows.Err()
}

// Snapshot loads the complete entry set — the engine's input contract.
func (s *Store) Snapshot(ctx context.Context) ([]engine.FuelEntry, []engine.AdjustmentEntry, error) {
	fuel, err := s.ListFuel(ctx)
	if err != nil {
		return nil, nil, err
	}
	adjustments, err := s.ListAdjustments(ctx)
	if err != nil {
		return nil, nil, err
	}
	return fuel, adjustments, nil
}

// =============================================================================
// MAINTENANCE RECORDS
// =============================================================================

func (s *Store) CreateMaintenance(ctx context.Context, m store.MaintenanceRecord) (store.MaintenanceRecord, error) {
	if err := store.ValidateMaintenance(m); err != nil {
		return store.MaintenanceRecord{}, err
	}
	m.ID = uuid.NewString()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO maintenance (id, date, odometer, description, cost) VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.Date, decimalArg(m.Odometer), m.Description, decimalArg(m.Cost))
	if err != nil {
		return store.MaintenanceRecord{}, fmt.Errorf("failed to insert maintenance record: %w", err)
	}
	return m, nil
}

func (s *Store) UpdateMaintenance(ctx context.Context, m store.MaintenanceRecord) error {
	if err := store.ValidateMaintenance(m); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE maintenance SET date = ?, odometer = ?, description = ?, cost = ? WHERE id = ?`,
		m.Date, decimalArg(m.Odometer), m.Description, decimalArg(m.Cost), m.ID)
	if err != nil {
		return fmt.Errorf("failed to update maintenance record: %w", err)
	}
	return requireRow(res)
}

func (s *Store) DeleteMaintenance(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM maintenance WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete maintenance record: %w", err)
	}
	return requireRow(res)
}

func (s *Store) ListMaintenance(ctx context.Context) ([]store.MaintenanceRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, odometer, description, cost FROM maintenance ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance records: %w", err)
	}
	defer rows.Close()

	var result []store.MaintenanceRecord
	for rows.Next() {
		var m store.MaintenanceRecord
		var odometer, cost sql.NullString
		if err := rows.Scan(&m.ID, &m.Date, &odometer, &m.Description, &cost); err != nil {
			return nil, err
		}
		m.Odometer = scanDecimal(odometer)
		m.Cost = scanDecimal(cost)
		result = append(result, m)
	}
	return result, rows.Err()
}

// =============================================================================
// ENCODING HELPERS
// =============================================================================

// fuelDoc renders the canonical JSON document for a fuel entry. Numbers are
// stored as decimal strings to keep precision; the normalizer converts them
// back on read.
func fuelDoc(e engine.FuelEntry) map[string]any {
	doc := map[string]any{
		"recordType": "fuel",
		"date":       e.Date,
	}
	putDecimal(doc, "distance", e.Distance)
	putDecimal(doc, "liters", e.Liters)
	putDecimal(doc, "cost", e.Cost)
	return doc
}

func adjustmentDoc(a engine.AdjustmentEntry) map[string]any {
	doc := map[string]any{
		"recordType": "adjustment",
		"kind":       string(a.Kind),
		"monthKey":   a.MonthKey,
		"date":       a.Date,
	}
	putDecimal(doc, "amount", a.Amount)
	putDecimal(doc, "liters", a.Liters)
	if a.Comment != "" {
		doc["comment"] = a.Comment
	}
	return doc
}

func putDecimal(doc map[string]any, field string, v decimal.NullDecimal) {
	if v.Valid {
		doc[field] = v.Decimal.String()
	}
}

func decimalArg(v decimal.NullDecimal) any {
	if !v.Valid {
		return nil
	}
	return v.Decimal.String()
}

func scanDecimal(v sql.NullString) decimal.NullDecimal {
	if !v.Valid {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(v.String)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// decodeDoc decodes a stored payload into the loose map the normalizer
// expects. A corrupt payload yields an empty map, which normalizes to an
// empty record: rejected at write time, tolerated at read time.
func decodeDoc(payload string) map[string]any {
	var raw map[string]any
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return map[string]any{}
	}
	return raw
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return engine.ErrNotFound
	}
	return nil
}
