// Package memory provides an in-memory store implementation (for testing/dev).
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/warp/fuel-ledger/engine"
	"github.com/warp/fuel-ledger/store"
)

// =============================================================================
// MEMORY STORE
// =============================================================================

type Store struct {
	mu          sync.RWMutex
	fuel        map[string]engine.FuelEntry
	adjustments map[string]engine.AdjustmentEntry
	maintenance map[string]store.MaintenanceRecord
}

func New() *Store {
	return &Store{
		fuel:        make(map[string]engine.FuelEntry),
		adjustments: make(map[string]engine.AdjustmentEntry),
		maintenance: make(map[string]store.MaintenanceRecord),
	}
}

var (
	_ store.RecordStore      = (*Store)(nil)
	_ store.MaintenanceStore = (*Store)(nil)
)

// =============================================================================
// FUEL ENTRIES
// =============================================================================

func (s *Store) CreateFuel(_ context.Context, e engine.FuelEntry) (engine.FuelEntry, error) {
	if err := engine.ValidateFuelEntry(e); err != nil {
		return engine.FuelEntry{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = uuid.NewString()
	s.fuel[e.ID] = e
	return e, nil
}

func (s *Store) UpdateFuel(_ context.Context, e engine.FuelEntry) error {
	if err := engine.ValidateFuelEntry(e); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.fuel[e.ID]; !ok {
		return engine.ErrNotFound
	}
	s.fuel[e.ID] = e
	return nil
}

func (s *Store) DeleteFuel(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.fuel[id]; !ok {
		return engine.ErrNotFound
	}
	delete(s.fuel, id)
	return nil
}

func (s *Store) GetFuel(_ context.Context, id string) (engine.FuelEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.fuel[id]
	if !ok {
		return engine.FuelEntry{}, engine.ErrNotFound
	}
	return e, nil
}

func (s *Store) ListFuel(_ context.Context) ([]engine.FuelEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listFuelLocked(), nil
}

func (s *Store) listFuelLocked() []engine.FuelEntry {
	result := make([]engine.FuelEntry, 0, len(s.fuel))
	for _, e := range s.fuel {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// =============================================================================
// ADJUSTMENTS
// =============================================================================

func (s *Store) CreateAdjustment(_ context.Context, a engine.AdjustmentEntry) (engine.AdjustmentEntry, error) {
	if err := engine.ValidateAdjustment(a); err != nil {
		return engine.AdjustmentEntry{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = uuid.NewString()
	a.Date = engine.FirstOfMonth(a.MonthKey)
	s.adjustments[a.ID] = a
	return a, nil
}

func (s *Store) DeleteAdjustment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.adjustments[id]; !ok {
		return engine.ErrNotFound
	}
	delete(s.adjustments, id)
	return nil
}

func (s *Store) ListAdjustments(_ context.Context) ([]engine.AdjustmentEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listAdjustmentsLocked(), nil
}

func (s *Store) listAdjustmentsLocked() []engine.AdjustmentEntry {
	result := make([]engine.AdjustmentEntry, 0, len(s.adjustments))
	for _, a := range s.adjustments {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].MonthKey != result[j].MonthKey {
			return result[i].MonthKey < result[j].MonthKey
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// Snapshot returns the complete entry set under a single read lock, so a
// concurrent write can never split the engine's input.
func (s *Store) Snapshot(_ context.Context) ([]engine.FuelEntry, []engine.AdjustmentEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listFuelLocked(), s.listAdjustmentsLocked(), nil
}

// =============================================================================
// MAINTENANCE RECORDS
// =============================================================================

func (s *Store) CreateMaintenance(_ context.Context, m store.MaintenanceRecord) (store.MaintenanceRecord, error) {
	if err := store.ValidateMaintenance(m); err != nil {
		return store.MaintenanceRecord{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = uuid.NewString()
	s.maintenance[m.ID] = m
	return m, nil
}

func (s *Store) UpdateMaintenance(_ context.Context, m store.MaintenanceRecord) error {
	if err := store.ValidateMaintenance(m); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.maintenance[m.ID]; !ok {
		return engine.ErrNotFound
	}
	s.maintenance[m.ID] = m
	return nil
}

func (s *Store) DeleteMaintenance(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.maintenance[id]; !ok {
		return engine.ErrNotFound
	}
	delete(s.maintenance, id)
	return nil
}

func (s *Store) ListMaintenance(_ context.Context) ([]store.MaintenanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]store.MaintenanceRecord, 0, len(s.maintenance))
	for _, m := range s.maintenance {
		result = append(result, m)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}
