package engine

import "sort"

// CreateView registers a fingerprinted filtered view over entityName (spec
// §4.5). The fingerprint is derived from params (spec §4.9's
// fingerprint(params)); callers that want a stable, reproducible fingerprint
// pass the same params used to build prefilter/predicate. Returns
// ErrDuplicate if a view with that fingerprint is already registered.
func (e *Engine) CreateView(entityName string, prefilter Prefilter, predicate func(Record) bool, maintainUnique []string, params map[string]Value) (string, error) {
	st, err := e.entity(entityName)
	if err != nil {
		return "", err
	}
	fingerprint := Fingerprint(params)

	st.mu.Lock()
	defer st.mu.Unlock()

	if _, exists := st.views[fingerprint]; exists {
		return "", errDuplicate(fingerprint)
	}

	vs := &viewState{spec: ViewSpec{
		Prefilter:      prefilter,
		Predicate:      predicate,
		MaintainUnique: maintainUnique,
		Params:         params,
	}}
	st.views[fingerprint] = vs

	// The view's deterministic order comes from the existing sorted index of
	// its base prefilter under the entity's first field (spec §4.5): that
	// index is already maintained in insertion-order-stable sorted order, so
	// filtering it through the predicate preserves tie order instead of
	// re-deriving it from Go's randomized map iteration.
	baseField := st.cfg.Fields[0].Name
	baseAsc, _ := st.indexPair(prefilter, baseField)
	var ids []string
	for _, id := range baseAsc {
		if predicate == nil || predicate(st.primary[id]) {
			ids = append(ids, id)
		}
	}

	scope := ViewPrefilter(fingerprint)
	for _, f := range st.cfg.Fields {
		asc := ids
		if f.Name != baseField {
			asc = stableSortAsc(ids, f.Name, f.Sort, st.valueOf(f.Name))
		}
		st.setIndexPair(scope, f.Name, asc, reverseIDs(asc))
	}
	for _, f := range maintainUnique {
		b := st.bundle(scope, f)
		for _, id := range ids {
			b.add(st.primary[id].Get(f))
		}
	}

	return fingerprint, nil
}

// DestroyView removes a view and every derived structure addressed under
// its fingerprint (spec §4.5).
func (e *Engine) DestroyView(entityName, fingerprint string) error {
	st, err := e.entity(entityName)
	if err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	vs, exists := st.views[fingerprint]
	if !exists {
		return errNotFound(fingerprint)
	}

	scope := ViewPrefilter(fingerprint)
	for _, f := range st.cfg.Fields {
		delete(st.indexes, indexKey(st.cfg.Name, scope, Asc, f.Name))
		delete(st.indexes, indexKey(st.cfg.Name, scope, Desc, f.Name))
	}
	for _, f := range vs.spec.MaintainUnique {
		delete(st.uniques, uniquesBaseKey(st.cfg.Name, scope, f))
	}
	delete(st.views, fingerprint)
	return nil
}

// GetView returns the registered ViewSpec for fingerprint.
func (e *Engine) GetView(entityName, fingerprint string) (ViewSpec, error) {
	st, err := e.entity(entityName)
	if err != nil {
		return ViewSpec{}, err
	}
	st.mu.RLock()
	defer st.mu.RUnlock()
	vs, ok := st.views[fingerprint]
	if !ok {
		return ViewSpec{}, errNotFound(fingerprint)
	}
	return vs.spec, nil
}

// GetViews lists every registered view's fingerprint for entityName, sorted
// for deterministic output.
func (e *Engine) GetViews(entityName string) ([]string, error) {
	st, err := e.entity(entityName)
	if err != nil {
		return nil, err
	}
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]string, 0, len(st.views))
	for fp := range st.views {
		out = append(out, fp)
	}
	sort.Strings(out)
	return out, nil
}
