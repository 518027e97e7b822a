package engine

import "sort"

// uniquesBundle is the Uniques Bundle of spec §4.1: a value→count map plus
// a sorted list of keys. list is always kept in natural-ascending order
// regardless of the field's configured sort strategy ("for the purposes of
// the bundle itself, equality uses the value's natural equality").
//
// Per Design Note "Uniques bundle idempotence", listChanged/lastRemoved are
// computed per-call from the mutation just performed, not carried as
// ambient mutable state across calls.
type uniquesBundle struct {
	counts map[string]int
	values map[string]Value
	list   []Value
}

func newUniquesBundle() *uniquesBundle {
	return &uniquesBundle{
		counts: make(map[string]int),
		values: make(map[string]Value),
	}
}

// add increments value's count, inserting it into list on first occurrence.
// Returns listChanged.
func (b *uniquesBundle) add(v Value) (listChanged bool) {
	key := v.sortKey()
	if b.counts[key] > 0 {
		b.counts[key]++
		return false
	}
	b.counts[key] = 1
	b.values[key] = v

	i := sort.Search(len(b.list), func(i int) bool {
		return v.Less(b.list[i], SortNatural) || v.Equal(b.list[i])
	})
	b.list = append(b.list, Nil)
	copy(b.list[i+1:], b.list[i:])
	b.list[i] = v
	return true
}

// remove decrements value's count, deleting it from list when it hits zero.
// Returns (listChanged, lastRemoved). Calling remove on a value with count 0
// is a caller bug (it should only be called on values known to be present);
// it is treated as a no-op rather than panicking, since the engine calls it
// speculatively from membership-flag transitions that already guard presence.
func (b *uniquesBundle) remove(v Value) (listChanged, lastRemoved bool) {
	key := v.sortKey()
	n, ok := b.counts[key]
	if !ok || n <= 0 {
		return false, false
	}
	if n > 1 {
		b.counts[key] = n - 1
		return false, false
	}

	delete(b.counts, key)
	delete(b.values, key)
	i := sort.Search(len(b.list), func(i int) bool {
		return !b.list[i].Less(v, SortNatural)
	})
	for i < len(b.list) && !b.list[i].Equal(v) {
		i++
	}
	if i < len(b.list) {
		b.list = append(b.list[:i], b.list[i+1:]...)
	}
	return true, true
}

// isEmpty reports whether the bundle currently tracks no values.
func (b *uniquesBundle) isEmpty() bool { return len(b.counts) == 0 }

// snapshotMap returns a fresh value→count map for external reads.
func (b *uniquesBundle) snapshotMap() map[Value]int {
	out := make(map[Value]int, len(b.counts))
	for k, n := range b.counts {
		out[b.values[k]] = n
	}
	return out
}

// snapshotList returns a fresh copy of the sorted value list.
func (b *uniquesBundle) snapshotList() []Value {
	out := make([]Value, len(b.list))
	copy(out, b.list)
	return out
}
