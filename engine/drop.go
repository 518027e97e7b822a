package engine

// Drop removes a record from entityName. Per spec §4.4 it is modeled as the
// mirror of Put with an empty new record: every scope the record belonged
// to transitions In→Absent, including any view it matched.
func (e *Engine) Drop(entityName, id string) error {
	st, err := e.entity(entityName)
	if err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	prev, existed := st.primary[id]
	if !existed {
		return errNotFound(id)
	}
	delete(st.primary, id)

	empty := Record{}

	e.applyMembership(st, NullPrefilter(), id, prev, empty, true, false, st.cfg.nullBundleFields(), "")

	for _, pf := range st.cfg.fieldPrefilters() {
		scope := FieldPrefilter(pf.Field, prev.Get(pf.Field))
		e.applyMembership(st, scope, id, prev, empty, true, false, pf.MaintainUnique, "")
	}

	for fingerprint, vs := range st.views {
		if viewMatches(prev, vs, st.views) {
			e.applyMembership(st, ViewPrefilter(fingerprint), id, prev, empty, true, false, vs.spec.MaintainUnique, fingerprint)
		}
	}

	for _, field := range st.cfg.Lookups {
		st.lookupRemove(field, prev.Get(field), id)
	}

	return nil
}
