package engine

import "testing"

func newWarmEngine(t *testing.T) *Engine {
	t.Helper()
	e := New()
	requireNoErr(t, e.Warm(orderConfig(), WarmData{Records: []Record{
		order("o1", "shipped", "c1", 10),
		order("o2", "pending", "c2", 30),
	}}))
	return e
}

func TestPut_InsertsNewRecordIntoAllScopes(t *testing.T) {
	t.Parallel()

	e := newWarmEngine(t)
	requireNoErr(t, e.Put("orders", order("o3", "shipped", "c1", 5)))

	got, ok, err := e.Get("orders", "o3")
	requireNoErr(t, err)
	if !ok {
		t.Fatalf("expected o3 to exist")
	}
	if got.Get("total").AsInt() != 5 {
		t.Fatalf("unexpected total: %v", got.Get("total"))
	}

	recs, err := e.GetRecords("orders", FieldPrefilter("status", String("shipped")), OrderHint{Field: "total", Dir: Asc})
	requireNoErr(t, err)
	eqIDs(t, idsOf(recs), "o3", "o1")

	uniq, err := e.GetUniquesMap("orders", FieldPrefilter("status", String("shipped")), "customer_id")
	requireNoErr(t, err)
	if uniq[String("c1")] != 2 {
		t.Fatalf("expected c1 count 2, got %v", uniq)
	}

	byCustomer, err := e.GetBy("orders", "customer_id", String("c1"))
	requireNoErr(t, err)
	eqIDs(t, idsOf(byCustomer), "o1", "o3")
}

func TestPut_IsIdempotentOnByteEqualRecord(t *testing.T) {
	t.Parallel()

	e := newWarmEngine(t)
	before := e.Stats()
	requireNoErr(t, e.Put("orders", order("o1", "shipped", "c1", 10)))
	after := e.Stats()
	if before.Entities["orders"] != after.Entities["orders"] {
		t.Fatalf("expected stats unchanged on no-op put: before=%v after=%v", before, after)
	}
}

func TestPut_MovesRecordBetweenPrefilterPartitions(t *testing.T) {
	t.Parallel()

	e := newWarmEngine(t)
	requireNoErr(t, e.Put("orders", order("o1", "cancelled", "c1", 10)))

	shipped, err := e.GetRecords("orders", FieldPrefilter("status", String("shipped")), OrderHint{})
	requireNoErr(t, err)
	if len(shipped) != 0 {
		t.Fatalf("expected no shipped orders left, got %v", idsOf(shipped))
	}

	cancelled, err := e.GetRecords("orders", FieldPrefilter("status", String("cancelled")), OrderHint{})
	requireNoErr(t, err)
	eqIDs(t, idsOf(cancelled), "o1")

	// The shipped partition's last instance is gone: its uniques bundle
	// must have been pruned (spec §4.3 "last-instance pruning").
	uniq, err := e.GetUniquesMap("orders", FieldPrefilter("status", String("shipped")), "customer_id")
	requireNoErr(t, err)
	if len(uniq) != 0 {
		t.Fatalf("expected pruned bundle, got %v", uniq)
	}
}

func TestPut_UpdatesLookupOnFieldChange(t *testing.T) {
	t.Parallel()

	e := newWarmEngine(t)
	requireNoErr(t, e.Put("orders", order("o1", "shipped", "c9", 10)))

	byOld, err := e.GetBy("orders", "customer_id", String("c1"))
	requireNoErr(t, err)
	if len(byOld) != 0 {
		t.Fatalf("expected no orders left under old customer, got %v", idsOf(byOld))
	}
	byNew, err := e.GetBy("orders", "customer_id", String("c9"))
	requireNoErr(t, err)
	eqIDs(t, idsOf(byNew), "o1")
}

func TestPut_RejectsMissingIDField(t *testing.T) {
	t.Parallel()

	e := newWarmEngine(t)
	err := e.Put("orders", Record{"status": String("shipped")})
	requireErr(t, err, ErrMissingField)
}

func TestPut_UnknownEntity(t *testing.T) {
	t.Parallel()

	e := New()
	err := e.Put("missing", order("o1", "shipped", "c1", 1))
	requireErr(t, err, ErrUnknownEntity)
}
