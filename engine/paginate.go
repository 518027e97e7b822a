package engine

// Page is one window of a cursor-paginated read (spec §4.6).
type Page struct {
	Records    []Record
	HasNext    bool
	HasPrev    bool
	NextCursor string
	PrevCursor string
}

// PaginateOptions configures one Paginate call (spec §4.6). Limit defaults
// to 10 when <= 0. At most one of After/Before may be set. Filter, if set,
// excludes ids from the page without counting against Limit (a filtered-out
// id still advances the scan position); Prepare, if set, transforms each
// record before Filter sees it and before it is returned.
type PaginateOptions struct {
	Limit   int
	After   string
	Before  string
	Filter  func(Record) bool
	Prepare func(Record) Record
}

type pageItem struct {
	id  string
	rec Record
}

// Paginate walks the sorted index for (prefilter, field, dir) in pages of
// opts.Limit records, applying opts.Filter/opts.Prepare per spec §4.6. Each
// direction peeks one extra passing record past the requested window to
// compute the flag in its direction of travel (HasNext forward, HasPrev
// backward). Forward paging sets HasPrev by re-checking the ids before the
// After cursor against the filter; backward paging sets HasNext whenever
// the Before cursor's id is found.
func (e *Engine) Paginate(entityName string, prefilter Prefilter, field string, dir Direction, opts PaginateOptions) (Page, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}
	if opts.After != "" && opts.Before != "" {
		return Page{}, errBadCursor("after and before are mutually exclusive")
	}

	st, err := e.entity(entityName)
	if err != nil {
		return Page{}, err
	}

	st.mu.RLock()
	defer st.mu.RUnlock()

	asc, desc := st.indexPair(prefilter, field)
	ids := asc
	if dir == Desc {
		ids = desc
	}

	if opts.Before != "" {
		return st.paginateBackward(ids, field, dir, limit, opts)
	}
	return st.paginateForward(ids, field, dir, limit, opts)
}

func (st *entityState) prepare(rec Record, opts PaginateOptions) Record {
	if opts.Prepare != nil {
		return opts.Prepare(rec)
	}
	return rec
}

func (st *entityState) passes(rec Record, opts PaginateOptions) bool {
	return opts.Filter == nil || opts.Filter(rec)
}

func (st *entityState) paginateForward(ids []string, field string, dir Direction, limit int, opts PaginateOptions) (Page, error) {
	start := 0
	if opts.After != "" {
		f, d, id, err := decodeCursor(opts.After)
		if err != nil {
			return Page{}, err
		}
		if f != field || d != dir {
			return Page{}, errBadCursor("cursor does not match this field/direction")
		}
		idx := indexOfID(ids, id)
		if idx < 0 {
			return Page{}, errBadCursor("cursor id no longer present")
		}
		start = idx + 1
	}

	var window []pageItem
	i := start
	for i < len(ids) && len(window) < limit+1 {
		id := ids[i]
		rec := st.prepare(st.primary[id], opts)
		if st.passes(rec, opts) {
			window = append(window, pageItem{id: id, rec: rec})
		}
		i++
	}

	hasNext := len(window) > limit
	if hasNext {
		window = window[:limit]
	}
	hasPrev := st.anyPasses(ids[:start], opts)

	return buildPage(window, field, dir, hasNext, hasPrev), nil
}

// anyPasses reports whether any id in ids would pass opts.Filter (after
// opts.Prepare), used to retroactively decide whether a previous page
// exists across a span the caller already skipped (spec §4.6 step 4).
func (st *entityState) anyPasses(ids []string, opts PaginateOptions) bool {
	if opts.Filter == nil {
		return len(ids) > 0
	}
	for _, id := range ids {
		if st.passes(st.prepare(st.primary[id], opts), opts) {
			return true
		}
	}
	return false
}

func (st *entityState) paginateBackward(ids []string, field string, dir Direction, limit int, opts PaginateOptions) (Page, error) {
	f, d, id, err := decodeCursor(opts.Before)
	if err != nil {
		return Page{}, err
	}
	if f != field || d != dir {
		return Page{}, errBadCursor("cursor does not match this field/direction")
	}
	end := indexOfID(ids, id)
	if end < 0 {
		return Page{}, errBadCursor("cursor id no longer present")
	}

	var reversed []pageItem // nearest-preceding first
	i := end - 1
	for i >= 0 && len(reversed) < limit+1 {
		cid := ids[i]
		rec := st.prepare(st.primary[cid], opts)
		if st.passes(rec, opts) {
			reversed = append(reversed, pageItem{id: cid, rec: rec})
		}
		i--
	}

	hasPrev := len(reversed) > limit
	if hasPrev {
		reversed = reversed[:limit]
	}
	hasNext := end < len(ids)

	window := make([]pageItem, len(reversed))
	for i, it := range reversed {
		window[len(reversed)-1-i] = it
	}

	return buildPage(window, field, dir, hasNext, hasPrev), nil
}

func buildPage(window []pageItem, field string, dir Direction, hasNext, hasPrev bool) Page {
	records := make([]Record, 0, len(window))
	for _, it := range window {
		records = append(records, it.rec.Clone())
	}
	page := Page{Records: records, HasNext: hasNext, HasPrev: hasPrev}
	if len(window) > 0 {
		if hasNext {
			page.NextCursor = encodeCursor(field, dir, window[len(window)-1].id)
		}
		if hasPrev {
			page.PrevCursor = encodeCursor(field, dir, window[0].id)
		}
	}
	return page
}
