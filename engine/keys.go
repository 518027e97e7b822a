package engine

// Key encoding (spec §4.9). These strings are internal, but stable within a
// single process lifetime; pubsub topics reuse the fingerprint form.

func pfTag(p Prefilter) string {
	switch p.kind {
	case pfNull:
		return "[]"
	case pfField:
		return "[" + p.field + "=" + p.value.inspect() + "]"
	case pfView:
		return "<" + p.fingerprint + ">"
	default:
		return "[]"
	}
}

func dirTag(d Direction) string {
	if d == Asc {
		return "asc"
	}
	return "desc"
}

// indexKey is the key for one (entity, prefilter, field, dir) sorted index.
func indexKey(entity string, p Prefilter, dir Direction, field string) string {
	return "idx_" + entity + pfTag(p) + dirTag(dir) + "_" + field
}

// uniquesMapKey/uniquesListKey are the two external names for the same
// Uniques Bundle under (entity, prefilter, field); both resolve to the
// same *uniquesBundle internally (see entity.go).
func uniquesMapKey(entity string, p Prefilter, field string) string {
	return "uniques_map_" + entity + pfTag(p) + field
}

func uniquesListKey(entity string, p Prefilter, field string) string {
	return "uniques_list_" + entity + pfTag(p) + field
}

// lookupKey is the key for one (entity, field) reverse lookup map.
func lookupKey(entity, field string) string {
	return "lookup_" + entity + field
}

// viewsKey is the key for an entity's view registry.
func viewsKey(entity string) string {
	return "views_" + entity
}

// uniquesBaseKey is the internal map key shared by both the map/list
// external names above — there is exactly one Uniques Bundle per
// (entity, prefilter, field), so both external names address it.
func uniquesBaseKey(entity string, p Prefilter, field string) string {
	return uniquesMapKey(entity, p, field)
}
