package engine

// lookupAdd appends id under record[field]'s value in the reverse lookup
// map (spec §4.3 step 4: "if inserting, append id under record[field]").
func (e *entityState) lookupAdd(field string, record Record, id string) {
	key := lookupKey(e.cfg.Name, field)
	m, ok := e.lookups[key]
	if !ok {
		m = make(map[string][]string)
		e.lookups[key] = m
	}
	vk := record.Get(field).sortKey()
	if !containsID(m[vk], id) {
		m[vk] = append(m[vk], id)
	}
}

// lookupRemove removes id from the list under value, deleting the value's
// entry entirely once empty (spec §3: "value ∈ keys(lookup) ⇔ ∃ id...").
func (e *entityState) lookupRemove(field string, value Value, id string) {
	key := lookupKey(e.cfg.Name, field)
	m, ok := e.lookups[key]
	if !ok {
		return
	}
	vk := value.sortKey()
	ids := removeID(m[vk], id)
	if len(ids) == 0 {
		delete(m, vk)
	} else {
		m[vk] = ids
	}
	if len(m) == 0 {
		delete(e.lookups, key)
	}
}

// lookupGet returns the ids currently associated with value for field.
func (e *entityState) lookupGet(field string, value Value) []string {
	m, ok := e.lookups[lookupKey(e.cfg.Name, field)]
	if !ok {
		return nil
	}
	return m[value.sortKey()]
}
