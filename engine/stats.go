package engine

// EntityStats is a point-in-time snapshot of one entity's derived state
// size, useful for admin diagnostics and tests asserting on index/bundle
// persistence rules.
type EntityStats struct {
	RecordCount        int
	IndexCount         int
	UniquesBundleCount int
	ViewCount          int
	LookupFieldCount   int
}

// Stats snapshots every registered entity.
type Stats struct {
	Entities map[string]EntityStats
}

// Stats returns a fresh snapshot of every entity's current size (record
// count, live index count, live uniques bundle count, registered view
// count, and the number of lookup fields that currently hold at least one
// value).
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := Stats{Entities: make(map[string]EntityStats, len(e.entities))}
	for name, st := range e.entities {
		st.mu.RLock()
		out.Entities[name] = EntityStats{
			RecordCount:        len(st.primary),
			IndexCount:         len(st.indexes),
			UniquesBundleCount: len(st.uniques),
			ViewCount:          len(st.views),
			LookupFieldCount:   len(st.lookups),
		}
		st.mu.RUnlock()
	}
	return out
}
