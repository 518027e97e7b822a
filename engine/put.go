package engine

// Put inserts or updates a record in entityName, the way spec §4.3
// describes: compute the record's id, then drive the null prefilter, every
// configured field prefilter, and every registered view through the
// membership transition implied by the record's old and new field values.
//
// Put is idempotent: if id already maps to a byte-equal record, the call is
// a no-op and nothing is touched, indexed, or published.
func (e *Engine) Put(entityName string, record Record) error {
	st, err := e.entity(entityName)
	if err != nil {
		return err
	}
	rec := record.Clone()
	id, err := st.cfg.IDKey.ID(rec)
	if err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	prev, existed := st.primary[id]
	if existed && prev.Equal(rec) {
		return nil
	}
	st.primary[id] = rec

	// Null prefilter: the record is always in it once inserted.
	e.applyMembership(st, NullPrefilter(), id, prev, rec, existed, true, st.cfg.nullBundleFields(), "")

	// Field prefilters: a value change is a move between two distinct
	// (field, value) scopes, not an in-place update of one scope.
	for _, pf := range st.cfg.fieldPrefilters() {
		nv := rec.Get(pf.Field)
		if !existed {
			e.applyMembership(st, FieldPrefilter(pf.Field, nv), id, prev, rec, false, true, pf.MaintainUnique, "")
			continue
		}
		ov := prev.Get(pf.Field)
		if ov.Equal(nv) {
			e.applyMembership(st, FieldPrefilter(pf.Field, nv), id, prev, rec, true, true, pf.MaintainUnique, "")
		} else {
			e.applyMembership(st, FieldPrefilter(pf.Field, ov), id, prev, rec, true, false, pf.MaintainUnique, "")
			e.applyMembership(st, FieldPrefilter(pf.Field, nv), id, prev, rec, false, true, pf.MaintainUnique, "")
		}
	}

	// Views: membership is under_prefilter(record, view.prefilter) &&
	// predicate(record), re-evaluated against both the old and new record.
	for fingerprint, vs := range st.views {
		wasIn := existed && viewMatches(prev, vs, st.views)
		isIn := viewMatches(rec, vs, st.views)
		e.applyMembership(st, ViewPrefilter(fingerprint), id, prev, rec, wasIn, isIn, vs.spec.MaintainUnique, fingerprint)
	}

	// Lookups.
	for _, field := range st.cfg.Lookups {
		nv := rec.Get(field)
		if !existed {
			st.lookupAdd(field, rec, id)
			continue
		}
		ov := prev.Get(field)
		if !ov.Equal(nv) {
			st.lookupRemove(field, ov, id)
			st.lookupAdd(field, rec, id)
		}
	}

	return nil
}

// viewMatches reports whether record currently belongs to the view: under
// its base prefilter and, if set, its predicate (spec §3).
func viewMatches(record Record, vs *viewState, views map[string]*viewState) bool {
	if !underPrefilter(record, vs.spec.Prefilter, views) {
		return false
	}
	if vs.spec.Predicate == nil {
		return true
	}
	return vs.spec.Predicate(record)
}
