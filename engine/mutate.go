package engine

// mutate.go holds the scope-transition primitives shared by Put and Drop:
// inserting/removing an id from one (prefilter, field) index, and the four
// membership transitions of spec §4.3 (Absent→In, In→In same scope,
// In→In moved scope, In→Absent), expressed once so null prefilters, field
// prefilters, and views all drive the same code path.

func (st *entityState) valueOf(field string) func(string) Value {
	return func(id string) Value { return st.primary[id].Get(field) }
}

// insertID adds id to every configured field's sorted index for scope.
func (st *entityState) insertID(scope Prefilter, id string, rec Record) {
	for _, f := range st.cfg.Fields {
		asc, _ := st.indexPair(scope, f.Name)
		asc = insertByAsc(asc, id, rec.Get(f.Name), f.Sort, st.valueOf(f.Name))
		st.setIndexPair(scope, f.Name, asc, reverseIDs(asc))
	}
}

// removeIDFromScope removes id from every configured field's sorted index
// for scope, deleting the index entirely once it empties out (spec §4.3
// "Index persistence rule", via setIndexPair).
func (st *entityState) removeIDFromScope(scope Prefilter, id string) {
	for _, f := range st.cfg.Fields {
		asc, _ := st.indexPair(scope, f.Name)
		asc = removeID(asc, id)
		st.setIndexPair(scope, f.Name, asc, reverseIDs(asc))
	}
}

// moveIDInField repositions id within one field's sorted index for scope,
// for use when the record stays in scope but that field's value changed.
func (st *entityState) moveIDInField(scope Prefilter, field string, strategy SortStrategy, id string, newValue Value) {
	asc, _ := st.indexPair(scope, field)
	asc = removeID(asc, id)
	asc = insertByAsc(asc, id, newValue, strategy, st.valueOf(field))
	st.setIndexPair(scope, field, asc, reverseIDs(asc))
}

// addToBundles adds rec's value in each maintain_unique field to scope's
// uniques bundle, publishing an EventUniques per field that gained a new
// distinct value, when scope is a fingerprint-scoped view prefilter (spec
// §4.3 "Observability").
func (e *Engine) addToBundles(st *entityState, scope Prefilter, rec Record, fields []string, fingerprint string) {
	for _, f := range fields {
		b := st.bundle(scope, f)
		v := rec.Get(f)
		if listChanged := b.add(v); listChanged && fingerprint != "" {
			e.publish(fingerprint, Event{
				Kind:        EventUniques,
				Fingerprint: fingerprint,
				Field:       f,
				Changes:     []UniquesChange{{Added: true, Value: v}},
			})
		}
	}
}

// removeFromBundles removes rec's value in each maintain_unique field from
// scope's uniques bundle, publishing an EventUniques per field whose value
// disappeared entirely, when scope is a fingerprint-scoped view prefilter.
func (e *Engine) removeFromBundles(st *entityState, scope Prefilter, rec Record, fields []string, fingerprint string) {
	for _, f := range fields {
		b, ok := st.bundleIfExists(scope, f)
		if !ok {
			continue
		}
		v := rec.Get(f)
		listChanged, _ := b.remove(v)
		st.persistBundle(scope, f, b)
		if listChanged && fingerprint != "" {
			e.publish(fingerprint, Event{
				Kind:        EventUniques,
				Fingerprint: fingerprint,
				Field:       f,
				Changes:     []UniquesChange{{Added: false, Value: v}},
			})
		}
	}
}

// swapInBundles moves a record's value in each maintain_unique field from
// its previous value to its new one, publishing one EventUniques per field
// that lists both the (:remove, old) and (:add, new) pairs that actually
// changed the bundle's list, when scope is a fingerprint-scoped view
// prefilter.
func (e *Engine) swapInBundles(st *entityState, scope Prefilter, fields []string, prev, rec Record, fingerprint string) {
	for _, f := range fields {
		ov, nv := prev.Get(f), rec.Get(f)
		if ov.Equal(nv) {
			continue
		}
		b := st.bundle(scope, f)
		var changes []UniquesChange
		if removedChanged, _ := b.remove(ov); removedChanged {
			changes = append(changes, UniquesChange{Added: false, Value: ov})
		}
		if addedChanged := b.add(nv); addedChanged {
			changes = append(changes, UniquesChange{Added: true, Value: nv})
		}
		st.persistBundle(scope, f, b)
		if len(changes) > 0 && fingerprint != "" {
			e.publish(fingerprint, Event{
				Kind:        EventUniques,
				Fingerprint: fingerprint,
				Field:       f,
				Changes:     changes,
			})
		}
	}
}

// applyMembership drives one scope through the membership transition implied
// by (wasIn, isIn), maintaining that scope's sorted indexes and
// maintain_unique bundles, and — only when fingerprint != "" (spec §4.3
// "Observability": events fire only for fingerprint-scoped view prefilters)
// — publishing the corresponding pub/sub event.
func (e *Engine) applyMembership(st *entityState, scope Prefilter, id string, prev, rec Record, wasIn, isIn bool, maintainFields []string, fingerprint string) {
	switch {
	case !wasIn && isIn:
		st.insertID(scope, id, rec)
		e.addToBundles(st, scope, rec, maintainFields, fingerprint)
		if fingerprint != "" {
			e.publish(fingerprint, Event{Kind: EventAdd, Record: rec.Clone()})
		}
	case wasIn && !isIn:
		st.removeIDFromScope(scope, id)
		e.removeFromBundles(st, scope, prev, maintainFields, fingerprint)
		if fingerprint != "" {
			e.publish(fingerprint, Event{Kind: EventRemove, ID: id})
		}
	case wasIn && isIn:
		for _, f := range st.cfg.Fields {
			ov, nv := prev.Get(f.Name), rec.Get(f.Name)
			if !ov.Equal(nv) {
				st.moveIDInField(scope, f.Name, f.Sort, id, nv)
			}
		}
		e.swapInBundles(st, scope, maintainFields, prev, rec, fingerprint)
		if fingerprint != "" && !prev.Equal(rec) {
			e.publish(fingerprint, Event{Kind: EventUpdate, Record: rec.Clone()})
		}
	}
}
