package engine

// Record is an opaque map of field name to Value (spec §3: "an opaque map
// with at least the id field. No schema is enforced; only the configured
// fields must be gettable.").
type Record map[string]Value

// Get returns the value for field, or Nil if the record has no such key.
func (r Record) Get(field string) Value {
	if r == nil {
		return Nil
	}
	v, ok := r[field]
	if !ok {
		return Nil
	}
	return v
}

// Clone returns a shallow copy of the record. Values are immutable scalars,
// so a shallow copy is a full deep copy for the engine's purposes (spec §5:
// "Records handed to put are conceptually copied: external mutation of a
// previously-inserted record object must not be observable through the
// engine.").
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Equal reports whether two records carry the same fields and values
// (spec §4.3: "If prev is byte-equal to record, the call is a no-op.").
func (r Record) Equal(o Record) bool {
	if len(r) != len(o) {
		return false
	}
	for k, v := range r {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// IDKey extracts a record's identifier. Implementations are either a named
// field lookup or an arbitrary pure function of the record (spec §3).
type IDKey interface {
	ID(r Record) (string, error)
}

// FieldIDKey extracts the id from a single named field, rendered via its
// natural string representation.
type FieldIDKey string

func (f FieldIDKey) ID(r Record) (string, error) {
	v, ok := r[string(f)]
	if !ok {
		return "", errMissingField(string(f))
	}
	if v.Kind() == KindString {
		return v.AsString(), nil
	}
	return v.inspect(), nil
}

// FuncIDKey extracts the id via an arbitrary caller-supplied function.
type FuncIDKey func(r Record) (string, error)

func (f FuncIDKey) ID(r Record) (string, error) { return f(r) }
