/*
handlers.go - HTTP API handlers for the fuel compensation tracker

PURPOSE:
  Exposes the reconciliation engine and record stores via REST API.
  Handles HTTP request/response, JSON serialization, and delegates to
  domain logic.

ENDPOINTS:
  Fuel entries:
    GET    /api/fuel                   List all fuel entries
    POST   /api/fuel                   Create fuel entry
    GET    /api/fuel/{id}              Get one entry
    PUT    /api/fuel/{id}              Update entry
    DELETE /api/fuel/{id}              Delete entry

  Adjustments:
    GET    /api/adjustments            List all adjustments
    POST   /api/adjustments            Create adjustment
    DELETE /api/adjustments/{id}       Delete adjustment

  Maintenance:
    GET    /api/maintenance            List maintenance records
    POST   /api/maintenance            Create maintenance record
    PUT    /api/maintenance/{id}       Update maintenance record
    DELETE /api/maintenance/{id}       Delete maintenance record

  Reconciliation:
    GET    /api/summary                Full monthly ledger + period totals
    GET    /api/config                 Constants in effect

REQUEST FLOW:
  Fuel and adjustment bodies are decoded into raw maps and run through
  the engine normalizer, so the API accepts the same loose numeric
  shapes as any other ingestion path (numeric strings coerce; garbage
  is flagged and rejected at the store's write validation).

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Record not found
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/warp/fuel-ledger/engine"
	"github.com/warp/fuel-ledger/store"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Records     store.RecordStore
	Maintenance store.MaintenanceStore
	Engine      *engine.Engine
}

// NewHandler creates a new handler over the given stores and engine.
func NewHandler(records store.RecordStore, maintenance store.MaintenanceStore, eng *engine.Engine) *Handler {
	return &Handler{
		Records:     records,
		Maintenance: maintenance,
		Engine:      eng,
	}
}

// =============================================================================
// FUEL ENTRY HANDLERS
// =============================================================================

// ListFuel returns all fuel entries, date ascending.
func (h *Handler) ListFuel(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Records.ListFuel(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list fuel entries", err)
		return
	}

	dtos := make([]FuelEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toFuelDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateFuel creates a fuel entry from a loose JSON body.
func (h *Handler) CreateFuel(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	entry := engine.NormalizeFuel(raw)
	created, err := h.Records.CreateFuel(r.Context(), entry)
	if err != nil {
		writeStoreError(w, "Failed to create fuel entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, toFuelDTO(created))
}

// GetFuel returns one fuel entry by ID.
func (h *Handler) GetFuel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, err := h.Records.GetFuel(r.Context(), id)
	if err != nil {
		writeStoreError(w, "Failed to get fuel entry", err)
		return
	}
	writeJSON(w, http.StatusOK, toFuelDTO(entry))
}

// UpdateFuel replaces an existing fuel entry.
func (h *Handler) UpdateFuel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	entry := engine.NormalizeFuel(raw)
	entry.ID = id
	if err := h.Records.UpdateFuel(r.Context(), entry); err != nil {
		writeStoreError(w, "Failed to update fuel entry", err)
		return
	}
	writeJSON(w, http.StatusOK, toFuelDTO(entry))
}

// DeleteFuel removes a fuel entry.
func (h *Handler) DeleteFuel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Records.DeleteFuel(r.Context(), id); err != nil {
		writeStoreError(w, "Failed to delete fuel entry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// ADJUSTMENT HANDLERS
// =============================================================================

// ListAdjustments returns all adjustments, month ascending.
func (h *Handler) ListAdjustments(w http.ResponseWriter, r *http.Request) {
	adjustments, err := h.Records.ListAdjustments(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list adjustments", err)
		return
	}

	dtos := make([]AdjustmentDTO, len(adjustments))
	for i, a := range adjustments {
		dtos[i] = toAdjustmentDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateAdjustment creates a compensation payment or debt deduction.
func (h *Handler) CreateAdjustment(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	adj := engine.NormalizeAdjustment(raw)
	created, err := h.Records.CreateAdjustment(r.Context(), adj)
	if err != nil {
		writeStoreError(w, "Failed to create adjustment", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAdjustmentDTO(created))
}

// DeleteAdjustment removes an adjustment.
func (h *Handler) DeleteAdjustment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Records.DeleteAdjustment(r.Context(), id); err != nil {
		writeStoreError(w, "Failed to delete adjustment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// MAINTENANCE HANDLERS
// =============================================================================

// ListMaintenance returns all maintenance records, date ascending.
func (h *Handler) ListMaintenance(w http.ResponseWriter, r *http.Request) {
	records, err := h.Maintenance.ListMaintenance(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list maintenance records", err)
		return
	}

	dtos := make([]MaintenanceDTO, len(records))
	for i, m := range records {
		dtos[i] = toMaintenanceDTO(m)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateMaintenance creates a maintenance record.
func (h *Handler) CreateMaintenance(w http.ResponseWriter, r *http.Request) {
	var req MaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	created, err := h.Maintenance.CreateMaintenance(r.Context(), store.MaintenanceRecord{
		Date:        req.Date,
		Odometer:    toNullDecimal(req.Odometer),
		Description: req.Description,
		Cost:        toNullDecimal(req.Cost),
	})
	if err != nil {
		writeStoreError(w, "Failed to create maintenance record", err)
		return
	}
	writeJSON(w, http.StatusCreated, toMaintenanceDTO(created))
}

// UpdateMaintenance replaces an existing maintenance record.
func (h *Handler) UpdateMaintenance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req MaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	record := store.MaintenanceRecord{
		ID:          id,
		Date:        req.Date,
		Odometer:    toNullDecimal(req.Odometer),
		Description: req.Description,
		Cost:        toNullDecimal(req.Cost),
	}
	if err := h.Maintenance.UpdateMaintenance(r.Context(), record); err != nil {
		writeStoreError(w, "Failed to update maintenance record", err)
		return
	}
	writeJSON(w, http.StatusOK, toMaintenanceDTO(record))
}

// DeleteMaintenance removes a maintenance record.
func (h *Handler) DeleteMaintenance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Maintenance.DeleteMaintenance(r.Context(), id); err != nil {
		writeStoreError(w, "Failed to delete maintenance record", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// RECONCILIATION HANDLERS
// =============================================================================

// GetSummary recomputes and returns the full reconciliation.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	fuel, adjustments, err := h.Records.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load records", err)
		return
	}

	summary := h.Engine.Summarize(fuel, adjustments)
	writeJSON(w, http.StatusOK, toSummaryDTO(summary))
}

// GetConfig returns the reconciliation constants in effect.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toConfigDTO(h.Engine.Config()))
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeStoreError maps store/engine errors onto HTTP statuses.
func writeStoreError(w http.ResponseWriter, message string, err error) {
	switch {
	case engine.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case engine.IsValidation(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
