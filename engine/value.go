package engine

import (
	"fmt"
	"strconv"
	"time"
)

// Kind identifies the dynamic type carried by a Value.
//
// The set is closed by design (spec Design Note "Comparator selection"):
// comparisons dispatch on Kind rather than on a stored compare callback,
// so they stay inlinable and the set of representable field values stays
// small and explicit.
type Kind int

const (
	KindNil Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	default:
		return "unknown"
	}
}

// Value is a tagged scalar used for record field values, prefilter values,
// and view/fingerprint params. Callers compare and sort heterogeneous
// field values without the engine needing static per-entity Go types.
type Value struct {
	kind Kind
	str  string
	i    int64
	f    float64
	b    bool
	t    time.Time
}

// Nil is the absence of a value (a missing field, for example).
var Nil = Value{kind: KindNil}

func String(s string) Value  { return Value{kind: KindString, str: s} }
func Int(i int64) Value      { return Value{kind: KindInt, i: i} }
func Float(f float64) Value  { return Value{kind: KindFloat, f: f} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

func (v Value) Kind() Kind        { return v.kind }
func (v Value) IsNil() bool       { return v.kind == KindNil }
func (v Value) AsString() string  { return v.str }
func (v Value) AsInt() int64      { return v.i }
func (v Value) AsFloat() float64  { return v.f }
func (v Value) AsBool() bool      { return v.b }
func (v Value) AsTime() time.Time { return v.t }

// Equal implements the value's natural equality (spec §4.1: "equality uses
// the value's natural equality" for the purposes of the uniques bundle, and
// is also used by put/drop field-change detection).
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindString:
		return v.str == o.str
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindBool:
		return v.b == o.b
	case KindTime:
		return v.t.Equal(o.t)
	default:
		return false
	}
}

// Less orders two values under the given sort strategy. Both natural and
// datetime strategies are total orders over their expected Kind; comparing
// across unrelated kinds falls back to a stable Kind-then-representation
// order so that misconfigured data never panics mid-sort.
func (v Value) Less(o Value, strategy SortStrategy) bool {
	if strategy == SortDatetime && v.kind == KindTime && o.kind == KindTime {
		return v.t.Before(o.t)
	}
	if v.kind != o.kind {
		return v.kind < o.kind
	}
	switch v.kind {
	case KindNil:
		return false
	case KindString:
		return v.str < o.str
	case KindInt:
		return v.i < o.i
	case KindFloat:
		return v.f < o.f
	case KindBool:
		return !v.b && o.b
	case KindTime:
		return v.t.Before(o.t)
	default:
		return false
	}
}

// inspect renders the value the way fingerprint derivation (§4.5) needs:
// scalars render directly, everything else uses an unambiguous
// inspect-style representation.
func (v Value) inspect() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTime:
		return v.t.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// sortKey is the canonical string used as a map key for the uniques bundle's
// counts map, and for lookup reverse-index values. It must be injective over
// distinct Values of the same Kind.
func (v Value) sortKey() string {
	return v.kind.String() + ":" + v.inspect()
}
