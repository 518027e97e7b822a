package engine

import "testing"

func TestStats_ReflectsWarmAndMutations(t *testing.T) {
	t.Parallel()

	e := newWarmEngine(t)
	stats := e.Stats()
	orders, ok := stats.Entities["orders"]
	if !ok {
		t.Fatalf("expected orders entity in stats")
	}
	if orders.RecordCount != 2 {
		t.Fatalf("expected 2 records, got %d", orders.RecordCount)
	}

	requireNoErr(t, e.Put("orders", order("o3", "shipped", "c1", 99)))
	stats = e.Stats()
	if stats.Entities["orders"].RecordCount != 3 {
		t.Fatalf("expected 3 records after put, got %d", stats.Entities["orders"].RecordCount)
	}
}
