package engine

import (
	"errors"
	"testing"
)

func requireNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func requireErr(t *testing.T, err error, want error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %v, got nil", want)
	}
	if !errors.Is(err, want) {
		t.Fatalf("expected error %v, got %v", want, err)
	}
}

// orderConfig is the shared entity configuration used across engine tests:
// three sortable fields, a status prefilter with a maintained unique
// customer set, and a customer_id lookup.
func orderConfig() EntityConfig {
	return EntityConfig{
		Name:  "orders",
		IDKey: FieldIDKey("id"),
		Fields: []FieldConfig{
			{Name: "id", Sort: SortNatural},
			{Name: "total", Sort: SortNatural},
			{Name: "placed_at", Sort: SortDatetime},
		},
		Prefilters: []PrefilterConfig{
			{Field: "", MaintainUnique: []string{"status"}},
			{Field: "status", MaintainUnique: []string{"customer_id"}},
		},
		Lookups: []string{"customer_id"},
	}
}

func order(id, status, customer string, total int64) Record {
	return Record{
		"id":          String(id),
		"status":      String(status),
		"customer_id": String(customer),
		"total":       Int(total),
	}
}

func idsOf(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Get("id").AsString()
	}
	return out
}

func eqIDs(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("id count mismatch: got %v want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("id mismatch at %d: got %v want %v", i, got, want)
		}
	}
}
