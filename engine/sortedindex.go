package engine

import "sort"

// removeID returns ids with the first occurrence of id removed.
func removeID(ids []string, id string) []string {
	for i, existing := range ids {
		if existing == id {
			out := make([]string, 0, len(ids)-1)
			out = append(out, ids[:i]...)
			out = append(out, ids[i+1:]...)
			return out
		}
	}
	return ids
}

// indexOfID returns the position of id in ids, or -1 if absent.
func indexOfID(ids []string, id string) int {
	for i, existing := range ids {
		if existing == id {
			return i
		}
	}
	return -1
}

func containsID(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

// reverseIDs returns a new slice with ids in reverse order.
func reverseIDs(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}
	return out
}

// insertByDesc implements spec §4.3's insert_by over a descending-ordered
// id list: scan for the first id whose value is strictly smaller than
// value under strategy, insert immediately before it; append if none is
// found. Ties place the new id after existing equal-valued ids.
func insertByDesc(descIDs []string, id string, value Value, strategy SortStrategy, valueOf func(id string) Value) []string {
	pos := len(descIDs)
	for i, existing := range descIDs {
		if valueOf(existing).Less(value, strategy) {
			pos = i
			break
		}
	}
	out := make([]string, 0, len(descIDs)+1)
	out = append(out, descIDs[:pos]...)
	out = append(out, id)
	out = append(out, descIDs[pos:]...)
	return out
}

// insertByAsc implements insert_by over an ascending-ordered id list: scan
// for the first id whose value is strictly greater than value under
// strategy, insert immediately before it; append if none is found. Ties
// place the new id after existing equal-valued ids (spec §4.3 "insert_by").
func insertByAsc(ascIDs []string, id string, value Value, strategy SortStrategy, valueOf func(id string) Value) []string {
	pos := len(ascIDs)
	for i, existing := range ascIDs {
		if value.Less(valueOf(existing), strategy) {
			pos = i
			break
		}
	}
	out := make([]string, 0, len(ascIDs)+1)
	out = append(out, ascIDs[:pos]...)
	out = append(out, id)
	out = append(out, ascIDs[pos:]...)
	return out
}

// stableSortAsc returns ids sorted ascending by field under strategy, with
// ties broken by original input order (spec §4.2: "sorts must be stable").
func stableSortAsc(ids []string, field string, strategy SortStrategy, valueOf func(id string) Value) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	vals := make(map[string]Value, len(out))
	for _, id := range out {
		if _, ok := vals[id]; !ok {
			vals[id] = valueOf(id)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return vals[out[i]].Less(vals[out[j]], strategy)
	})
	return out
}
