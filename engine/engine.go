package engine

// =============================================================================
// ENGINE - Pure snapshot-in, summary-out
// =============================================================================

// Engine computes period summaries from record snapshots. It holds only the
// configured constants; it never fetches, caches, persists, or mutates
// anything, so a single Engine is safe for concurrent use.
type Engine struct {
	cfg Config
}

// New creates an engine with the given schedule and rates.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the constants this engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Summarize is the engine's single entry point: a complete snapshot of fuel
// entries and adjustments in, an immutable PeriodSummary out.
//
// No ordering is assumed about the input; the engine sorts months itself.
// Data-quality problems (non-numeric stored values, unparseable dates) are
// tolerated per the normalizer's rules — the worst case is an incomplete or
// estimated summary, never an error.
func (e *Engine) Summarize(fuel []FuelEntry, adjustments []AdjustmentEntry) PeriodSummary {
	aggs := e.aggregateMonths(fuel)
	monthly, carried := e.runLedger(aggs, adjustments)
	totals := e.reduceTotals(monthly, adjustments, carried)

	return PeriodSummary{
		Monthly:     monthly,
		Totals:      totals,
		Explanation: explanation(totals),
	}
}
