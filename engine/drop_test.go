package engine

import "testing"

func TestDrop_RemovesRecordFromAllScopes(t *testing.T) {
	t.Parallel()

	e := newWarmEngine(t)
	requireNoErr(t, e.Drop("orders", "o1"))

	_, ok, err := e.Get("orders", "o1")
	requireNoErr(t, err)
	if ok {
		t.Fatalf("expected o1 to be gone")
	}

	recs, err := e.GetRecords("orders", NullPrefilter(), OrderHint{})
	requireNoErr(t, err)
	eqIDs(t, idsOf(recs), "o2")

	byCustomer, err := e.GetBy("orders", "customer_id", String("c1"))
	requireNoErr(t, err)
	if len(byCustomer) != 0 {
		t.Fatalf("expected lookup entry removed, got %v", idsOf(byCustomer))
	}

	shippedUniq, err := e.GetUniquesMap("orders", FieldPrefilter("status", String("shipped")), "customer_id")
	requireNoErr(t, err)
	if len(shippedUniq) != 0 {
		t.Fatalf("expected pruned shipped bundle, got %v", shippedUniq)
	}
}

func TestDrop_NotFound(t *testing.T) {
	t.Parallel()

	e := newWarmEngine(t)
	err := e.Drop("orders", "does-not-exist")
	requireErr(t, err, ErrNotFound)
}

func TestDrop_UnknownEntity(t *testing.T) {
	t.Parallel()

	e := New()
	err := e.Drop("missing", "o1")
	requireErr(t, err, ErrUnknownEntity)
}
