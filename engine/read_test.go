package engine

import "testing"

func TestGetRecords_DefaultOrderIsFirstFieldAscending(t *testing.T) {
	t.Parallel()

	e := New()
	requireNoErr(t, e.Warm(orderConfig(), WarmData{Records: []Record{
		order("o2", "shipped", "c1", 10),
		order("o1", "shipped", "c1", 10),
	}}))

	recs, err := e.GetRecords("orders", NullPrefilter(), OrderHint{})
	requireNoErr(t, err)
	eqIDs(t, idsOf(recs), "o1", "o2") // first field is "id", ascending
}

func TestGet_MissingID(t *testing.T) {
	t.Parallel()

	e := newWarmEngine(t)
	_, ok, err := e.Get("orders", "nope")
	requireNoErr(t, err)
	if ok {
		t.Fatalf("expected not found")
	}
}

func TestGet_UnknownEntity(t *testing.T) {
	t.Parallel()

	e := New()
	_, _, err := e.Get("missing", "o1")
	requireErr(t, err, ErrUnknownEntity)
}

func TestGetUniquesMap_UnconfiguredBundleReadsEmpty(t *testing.T) {
	t.Parallel()

	e := newWarmEngine(t)
	m, err := e.GetUniquesMap("orders", FieldPrefilter("status", String("does-not-exist")), "customer_id")
	requireNoErr(t, err)
	if len(m) != 0 {
		t.Fatalf("expected empty map, got %v", m)
	}
}
