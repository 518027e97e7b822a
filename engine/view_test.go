package engine

import "testing"

type recordingBroadcaster struct {
	events []Event
}

func (b *recordingBroadcaster) Publish(_ string, msg Event) {
	b.events = append(b.events, msg)
}

func TestView_CreateAndRead(t *testing.T) {
	t.Parallel()

	e := newWarmEngine(t)
	fp, err := e.CreateView("orders", NullPrefilter(), func(r Record) bool {
		return r.Get("total").AsInt() >= 20
	}, []string{"customer_id"}, map[string]Value{"min_total": Int(20)})
	requireNoErr(t, err)

	recs, err := e.GetRecords("orders", ViewPrefilter(fp), OrderHint{Field: "total", Dir: Asc})
	requireNoErr(t, err)
	eqIDs(t, idsOf(recs), "o2")
}

func TestView_DuplicateFingerprintRejected(t *testing.T) {
	t.Parallel()

	e := newWarmEngine(t)
	params := map[string]Value{"x": Int(1)}
	_, err := e.CreateView("orders", NullPrefilter(), nil, nil, params)
	requireNoErr(t, err)

	_, err = e.CreateView("orders", NullPrefilter(), nil, nil, params)
	requireErr(t, err, ErrDuplicate)
}

func TestView_DestroyRemovesItFromRegistry(t *testing.T) {
	t.Parallel()

	e := newWarmEngine(t)
	fp, err := e.CreateView("orders", NullPrefilter(), nil, nil, map[string]Value{"x": Int(1)})
	requireNoErr(t, err)

	requireNoErr(t, e.DestroyView("orders", fp))
	_, err = e.GetView("orders", fp)
	requireErr(t, err, ErrNotFound)

	err = e.DestroyView("orders", fp)
	requireErr(t, err, ErrNotFound)
}

func TestView_MembershipTracksPutAndDrop(t *testing.T) {
	t.Parallel()

	e := newWarmEngine(t)
	bc := &recordingBroadcaster{}
	e.broadcaster = bc

	fp, err := e.CreateView("orders", NullPrefilter(), func(r Record) bool {
		return r.Get("status").Equal(String("shipped"))
	}, nil, map[string]Value{"status": String("shipped")})
	requireNoErr(t, err)
	bc.events = nil // ignore anything from CreateView itself

	// o2 is pending; put it as shipped and it should join the view.
	requireNoErr(t, e.Put("orders", order("o2", "shipped", "c2", 30)))
	recs, err := e.GetRecords("orders", ViewPrefilter(fp), OrderHint{})
	requireNoErr(t, err)
	eqIDs(t, idsOf(recs), "o1", "o2")

	foundAdd := false
	for _, ev := range bc.events {
		if ev.Kind == EventAdd && ev.Record.Get("id").AsString() == "o2" {
			foundAdd = true
		}
	}
	if !foundAdd {
		t.Fatalf("expected an EventAdd for o2 joining the view, got %v", bc.events)
	}

	// Dropping o1 (in the view) should emit EventRemove and leave the view.
	bc.events = nil
	requireNoErr(t, e.Drop("orders", "o1"))
	recs, err = e.GetRecords("orders", ViewPrefilter(fp), OrderHint{})
	requireNoErr(t, err)
	eqIDs(t, idsOf(recs), "o2")

	foundRemove := false
	for _, ev := range bc.events {
		if ev.Kind == EventRemove && ev.ID == "o1" {
			foundRemove = true
		}
	}
	if !foundRemove {
		t.Fatalf("expected an EventRemove for o1 leaving the view, got %v", bc.events)
	}
}

func TestView_EmitsUniquesChangeEvents(t *testing.T) {
	t.Parallel()

	e := newWarmEngine(t)
	bc := &recordingBroadcaster{}
	e.broadcaster = bc

	fp, err := e.CreateView("orders", NullPrefilter(), func(r Record) bool {
		return r.Get("status").Equal(String("shipped"))
	}, []string{"customer_id"}, map[string]Value{"status": String("shipped")})
	requireNoErr(t, err)
	bc.events = nil

	// o2 (customer c2) joins the view as shipped: customer_id "c2" is new to
	// the view's bundle, so an EventUniques add should fire.
	requireNoErr(t, e.Put("orders", order("o2", "shipped", "c2", 30)))

	var uniquesEvents []Event
	for _, ev := range bc.events {
		if ev.Kind == EventUniques {
			uniquesEvents = append(uniquesEvents, ev)
		}
	}
	if len(uniquesEvents) != 1 {
		t.Fatalf("expected exactly one EventUniques, got %v", bc.events)
	}
	ev := uniquesEvents[0]
	if ev.Fingerprint != fp || ev.Field != "customer_id" {
		t.Fatalf("unexpected EventUniques fingerprint/field: %+v", ev)
	}
	if len(ev.Changes) != 1 || !ev.Changes[0].Added || !ev.Changes[0].Value.Equal(String("c2")) {
		t.Fatalf("unexpected EventUniques changes: %+v", ev.Changes)
	}

	// Dropping o1 (the view's only other member, customer c1) should remove
	// "c1" from the bundle's list and emit a corresponding EventUniques.
	bc.events = nil
	requireNoErr(t, e.Drop("orders", "o1"))

	uniquesEvents = nil
	for _, ev := range bc.events {
		if ev.Kind == EventUniques {
			uniquesEvents = append(uniquesEvents, ev)
		}
	}
	if len(uniquesEvents) != 1 {
		t.Fatalf("expected exactly one EventUniques on drop, got %v", bc.events)
	}
	ev = uniquesEvents[0]
	if len(ev.Changes) != 1 || ev.Changes[0].Added || !ev.Changes[0].Value.Equal(String("c1")) {
		t.Fatalf("unexpected EventUniques changes on drop: %+v", ev.Changes)
	}
}

func TestView_BaseFieldOrderIsDeterministicAcrossTies(t *testing.T) {
	t.Parallel()

	e := New()
	recs := []Record{
		order("o1", "pending", "c1", 10),
		order("o2", "pending", "c2", 10),
		order("o3", "pending", "c3", 10),
		order("o4", "pending", "c4", 10),
	}
	requireNoErr(t, e.Warm(orderConfig(), WarmData{Records: recs}))

	for i := 0; i < 5; i++ {
		fp, err := e.CreateView("orders", NullPrefilter(), nil, nil, map[string]Value{"n": Int(int64(i))})
		requireNoErr(t, err)

		got, err := e.GetRecords("orders", ViewPrefilter(fp), OrderHint{Field: "id", Dir: Asc})
		requireNoErr(t, err)
		eqIDs(t, idsOf(got), "o1", "o2", "o3", "o4")

		requireNoErr(t, e.DestroyView("orders", fp))
	}
}

func TestView_NoEventsForNonViewPrefilters(t *testing.T) {
	t.Parallel()

	e := newWarmEngine(t)
	bc := &recordingBroadcaster{}
	e.broadcaster = bc

	requireNoErr(t, e.Put("orders", order("o3", "shipped", "c3", 1)))
	requireNoErr(t, e.Drop("orders", "o3"))

	if len(bc.events) != 0 {
		t.Fatalf("expected no events without a registered view, got %v", bc.events)
	}
}
