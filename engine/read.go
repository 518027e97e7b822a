package engine

// Get returns a copy of the record stored under id, or ok=false if no such
// record exists (spec §4.7).
func (e *Engine) Get(entityName, id string) (rec Record, ok bool, err error) {
	st, err := e.entity(entityName)
	if err != nil {
		return nil, false, err
	}
	st.mu.RLock()
	defer st.mu.RUnlock()
	r, found := st.primary[id]
	if !found {
		return nil, false, nil
	}
	return r.Clone(), true, nil
}

// GetRecords returns every record under prefilter, ordered by hint (spec
// §4.7). The zero OrderHint means the entity's first configured field,
// ascending (spec §3: "the first FieldConfig in EntityConfig.Fields is the
// default sort").
func (e *Engine) GetRecords(entityName string, prefilter Prefilter, hint OrderHint) ([]Record, error) {
	st, err := e.entity(entityName)
	if err != nil {
		return nil, err
	}
	field, dir := hint.Field, hint.Dir
	if field == "" {
		field = st.cfg.firstField()
		dir = Asc
	}

	st.mu.RLock()
	defer st.mu.RUnlock()

	asc, desc := st.indexPair(prefilter, field)
	ids := asc
	if dir == Desc {
		ids = desc
	}
	out := make([]Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, st.primary[id].Clone())
	}
	return out, nil
}

// GetBy returns every record whose field equals value, via the entity's
// reverse lookup map (spec §4.7). field must be one of EntityConfig.Lookups.
func (e *Engine) GetBy(entityName, field string, value Value) ([]Record, error) {
	st, err := e.entity(entityName)
	if err != nil {
		return nil, err
	}
	st.mu.RLock()
	defer st.mu.RUnlock()

	ids := st.lookupGet(field, value)
	out := make([]Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, st.primary[id].Clone())
	}
	return out, nil
}

// GetUniquesMap returns a fresh value→count snapshot for (prefilter, field)
// (spec §4.7). An unconfigured/empty bundle reads back as an empty map.
func (e *Engine) GetUniquesMap(entityName string, prefilter Prefilter, field string) (map[Value]int, error) {
	st, err := e.entity(entityName)
	if err != nil {
		return nil, err
	}
	st.mu.RLock()
	defer st.mu.RUnlock()

	b, ok := st.bundleIfExists(prefilter, field)
	if !ok {
		return map[Value]int{}, nil
	}
	return b.snapshotMap(), nil
}

// GetUniquesList returns a fresh, naturally-sorted value snapshot for
// (prefilter, field) (spec §4.7).
func (e *Engine) GetUniquesList(entityName string, prefilter Prefilter, field string) ([]Value, error) {
	st, err := e.entity(entityName)
	if err != nil {
		return nil, err
	}
	st.mu.RLock()
	defer st.mu.RUnlock()

	b, ok := st.bundleIfExists(prefilter, field)
	if !ok {
		return nil, nil
	}
	return b.snapshotList(), nil
}
