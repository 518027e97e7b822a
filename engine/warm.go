package engine

// Warm builds one entity's full set of derived structures from bulk data
// (spec §4.2). It must be called once per entity before Put/Drop/reads
// target it; calling it twice for the same entity name replaces that
// entity's state entirely.
func (e *Engine) Warm(cfg EntityConfig, data WarmData) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if data.HintField != "" {
		if _, ok := cfg.FieldConfig(data.HintField); !ok {
			return errConfigInvalid("entity " + cfg.Name + ": hint field " + data.HintField + " is not a configured field")
		}
	}

	st := newEntityState(cfg)

	ids := make([]string, 0, len(data.Records))
	for _, r := range data.Records {
		id, err := cfg.IDKey.ID(r)
		if err != nil {
			return err
		}
		st.primary[id] = r.Clone()
		ids = append(ids, id)
	}

	valueOf := func(field string) func(id string) Value {
		return func(id string) Value { return st.primary[id].Get(field) }
	}

	// Null-prefilter sorted indexes, per field, honoring the warm hint.
	nullAsc := make(map[string][]string, len(cfg.Fields))
	for _, f := range cfg.Fields {
		var asc []string
		if f.Name == data.HintField {
			if data.HintDir == Asc {
				asc = append([]string(nil), ids...)
			} else {
				asc = reverseIDs(ids)
			}
		} else {
			asc = stableSortAsc(ids, f.Name, f.Sort, valueOf(f.Name))
		}
		nullAsc[f.Name] = asc
		st.setIndexPair(NullPrefilter(), f.Name, asc, reverseIDs(asc))
	}

	// Null-prefilter bundles: the null scope's own maintain_unique fields
	// plus every prefilter field (discovery of live partitions), deduped.
	for _, field := range cfg.nullBundleFields() {
		b := st.bundle(NullPrefilter(), field)
		for _, id := range ids {
			b.add(st.primary[id].Get(field))
		}
	}

	// Non-null prefilters: partition, per-partition sorted indexes (derived
	// by filtering the already-sorted null-prefilter lists, which preserves
	// sortedness without a second sort), and per-partition maintain_unique
	// bundles.
	for _, pf := range cfg.fieldPrefilters() {
		groups := make(map[string][]string) // value sortKey -> ids, in ids order
		groupValue := make(map[string]Value)
		for _, id := range ids {
			v := st.primary[id].Get(pf.Field)
			vk := v.sortKey()
			groups[vk] = append(groups[vk], id)
			groupValue[vk] = v
		}

		for vk, groupIDs := range groups {
			v := groupValue[vk]
			p := FieldPrefilter(pf.Field, v)
			inGroup := make(map[string]bool, len(groupIDs))
			for _, id := range groupIDs {
				inGroup[id] = true
			}
			for _, f := range cfg.Fields {
				asc := make([]string, 0, len(groupIDs))
				for _, id := range nullAsc[f.Name] {
					if inGroup[id] {
						asc = append(asc, id)
					}
				}
				st.setIndexPair(p, f.Name, asc, reverseIDs(asc))
			}
			for _, muField := range pf.MaintainUnique {
				b := st.bundle(p, muField)
				for _, id := range groupIDs {
					b.add(st.primary[id].Get(muField))
				}
			}
		}
	}

	// Lookups: fold records into value -> [id].
	for _, field := range cfg.Lookups {
		for _, id := range ids {
			st.lookupAdd(field, st.primary[id], id)
		}
	}

	e.registerEntity(st)
	return nil
}
