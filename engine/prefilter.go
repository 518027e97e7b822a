package engine

// pfKind distinguishes the three prefilter shapes from spec §3.
type pfKind int

const (
	pfNull pfKind = iota
	pfField
	pfView
)

// Prefilter is a scope selector for indexes: all records, a (field, value)
// equality, or a view fingerprint (spec §3).
type Prefilter struct {
	kind        pfKind
	field       string
	value       Value
	fingerprint string
}

// NullPrefilter selects every record of the entity.
func NullPrefilter() Prefilter { return Prefilter{kind: pfNull} }

// FieldPrefilter selects records whose field equals value.
func FieldPrefilter(field string, value Value) Prefilter {
	return Prefilter{kind: pfField, field: field, value: value}
}

// ViewPrefilter selects records belonging to a registered view.
func ViewPrefilter(fingerprint string) Prefilter {
	return Prefilter{kind: pfView, fingerprint: fingerprint}
}

func (p Prefilter) IsNull() bool  { return p.kind == pfNull }
func (p Prefilter) IsField() bool { return p.kind == pfField }
func (p Prefilter) IsView() bool  { return p.kind == pfView }

// Field/Value are only meaningful when IsField() is true.
func (p Prefilter) Field() string  { return p.field }
func (p Prefilter) Value() Value   { return p.value }
func (p Prefilter) Fingerprint() string { return p.fingerprint }

// underPrefilter implements spec §4.3's under_prefilter(record, prefilter).
// View prefilters are resolved through views and recurse into the view's
// own base prefilter and predicate; an unknown fingerprint matches nothing.
func underPrefilter(record Record, p Prefilter, views map[string]*viewState) bool {
	switch p.kind {
	case pfNull:
		return true
	case pfField:
		return record.Get(p.field).Equal(p.value)
	case pfView:
		vs, ok := views[p.fingerprint]
		if !ok {
			return false
		}
		if !underPrefilter(record, vs.spec.Prefilter, views) {
			return false
		}
		if vs.spec.Predicate == nil {
			return true
		}
		return vs.spec.Predicate(record)
	default:
		return false
	}
}
