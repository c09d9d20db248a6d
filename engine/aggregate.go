package engine

import "sort"

// =============================================================================
// MONTHLY AGGREGATOR - Group fuel entries by calendar month
// =============================================================================

// aggregateMonths groups fuel entries (only fuel entries) by month key and
// sums distance/liters/cost/norm per month. Months come back sorted
// ascending by key; lexicographic YYYY-MM order is chronological order.
// Entries with an unparseable date land in the "" bucket, which is appended
// last so it stays out of the carry-forward sequence.
func (e *Engine) aggregateMonths(entries []FuelEntry) []MonthlyAggregate {
	buckets := make(map[string][]FuelEntry)
	for _, entry := range entries {
		key := entry.MonthKey()
		buckets[key] = append(buckets[key], entry)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		if key != "" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	if _, ok := buckets[""]; ok {
		keys = append(keys, "")
	}

	aggs := make([]MonthlyAggregate, 0, len(keys))
	for _, key := range keys {
		aggs = append(aggs, e.aggregateOne(key, buckets[key]))
	}
	return aggs
}

func (e *Engine) aggregateOne(key string, entries []FuelEntry) MonthlyAggregate {
	agg := MonthlyAggregate{
		MonthKey: key,
		Label:    monthLabel(key),
	}
	for _, entry := range entries {
		if entry.Distance.Valid {
			agg.TotalDistance = agg.TotalDistance.Add(entry.Distance.Decimal)
		}
		if entry.Liters.Valid {
			agg.TotalLiters = agg.TotalLiters.Add(entry.Liters.Decimal)
		}
		if entry.Cost.Valid {
			agg.TotalCost = agg.TotalCost.Add(entry.Cost.Decimal)
		}
		agg.FuelNorm = agg.FuelNorm.Add(e.cfg.Norm(entry.Distance, entry.Date))
	}
	// A month with entries but zero distance has a zero norm, so FuelDiff is
	// the negative of everything purchased. Intentional: all fuel counts as
	// a deficit against a zero allowance.
	agg.FuelDiff = agg.FuelNorm.Sub(agg.TotalLiters)
	return agg
}
