package engine

import "sync"

// viewState is a registered view together with its derived sorted indexes
// and uniques bundles, which live in the owning entityState's shared
// indexes/uniques maps under a pfView Prefilter keyed by the fingerprint —
// the same storage a field prefilter uses, per spec §4.5's "Register the
// ViewSpec in the entity's view registry" plus "for each field, produce a
// sorted id list for the view".
type viewState struct {
	spec ViewSpec
}

// ViewSpec is the registered definition of a view (spec §3).
type ViewSpec struct {
	Prefilter      Prefilter
	Predicate      func(Record) bool
	MaintainUnique []string
	Params         map[string]Value
}

// entityState holds every derived structure for one configured entity:
// the primary store, every sorted index, every uniques bundle, every
// lookup, and the view registry. All mutating entity operations hold mu
// for the duration of the call, giving the atomicity guarantees of spec §5.
type entityState struct {
	mu sync.RWMutex

	cfg EntityConfig

	primary map[string]Record
	indexes map[string][]string
	uniques map[string]*uniquesBundle
	lookups map[string]map[string][]string
	views   map[string]*viewState
}

func newEntityState(cfg EntityConfig) *entityState {
	return &entityState{
		cfg:     cfg,
		primary: make(map[string]Record),
		indexes: make(map[string][]string),
		uniques: make(map[string]*uniquesBundle),
		lookups: make(map[string]map[string][]string),
		views:   make(map[string]*viewState),
	}
}

// underPrefilterLocked is underPrefilter bound to this entity's view
// registry; callers must hold at least a read lock on mu.
func (e *entityState) underPrefilterLocked(r Record, p Prefilter) bool {
	return underPrefilter(r, p, e.views)
}

// bundle returns (creating if necessary) the uniques bundle for
// (prefilter, field).
func (e *entityState) bundle(p Prefilter, field string) *uniquesBundle {
	key := uniquesBaseKey(e.cfg.Name, p, field)
	b, ok := e.uniques[key]
	if !ok {
		b = newUniquesBundle()
		e.uniques[key] = b
	}
	return b
}

// bundleIfExists returns the uniques bundle for (prefilter, field) without
// creating it.
func (e *entityState) bundleIfExists(p Prefilter, field string) (*uniquesBundle, bool) {
	b, ok := e.uniques[uniquesBaseKey(e.cfg.Name, p, field)]
	return b, ok
}

// persistBundle applies the index-persistence-rule equivalent for uniques
// (spec §4.1 persist): a (field, value) field-prefilter's empty bundle is
// deleted outright; null-prefilter and view-prefilter bundles are retained
// empty (they are destroyed explicitly by Drop/DestroyView machinery, not
// by going-empty).
func (e *entityState) persistBundle(p Prefilter, field string, b *uniquesBundle) {
	if p.IsField() && b.isEmpty() {
		delete(e.uniques, uniquesBaseKey(e.cfg.Name, p, field))
	}
}

// indexPair reads the current asc/desc id lists for (prefilter, field).
func (e *entityState) indexPair(p Prefilter, field string) (asc, desc []string) {
	asc = e.indexes[indexKey(e.cfg.Name, p, Asc, field)]
	desc = e.indexes[indexKey(e.cfg.Name, p, Desc, field)]
	return
}

// setIndexPair writes asc/desc back, deleting either list's backing entry
// when it becomes empty (spec §4.3 "Index persistence rule").
func (e *entityState) setIndexPair(p Prefilter, field string, asc, desc []string) {
	ak := indexKey(e.cfg.Name, p, Asc, field)
	dk := indexKey(e.cfg.Name, p, Desc, field)
	if len(asc) == 0 {
		delete(e.indexes, ak)
	} else {
		e.indexes[ak] = asc
	}
	if len(desc) == 0 {
		delete(e.indexes, dk)
	} else {
		e.indexes[dk] = desc
	}
}

