package engine

// SortStrategy is the closed set of per-field comparators (spec §3, §9
// Design Note "Comparator selection"). Adding a third strategy means adding
// a case to Value.Less, not a new interface.
type SortStrategy int

const (
	SortNatural SortStrategy = iota
	SortDatetime
)

// Direction is a sort direction for a sorted index or an order hint.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// FieldConfig names one of an entity's ordered, sortable fields. The first
// FieldConfig in EntityConfig.Fields is the default sort for pagination and
// GetRecords (spec §3).
type FieldConfig struct {
	Name string
	Sort SortStrategy
}

// PrefilterConfig declares a partition dimension. Field == "" denotes the
// implicit, always-present null prefilter; it may be declared explicitly
// only to carry maintain_unique options (spec §4.2: "an explicit null
// literal in the prefilters list without options is rejected").
type PrefilterConfig struct {
	Field         string
	MaintainUnique []string
}

// EntityConfig is one entity's warm-time configuration. Lookups are plain
// field names, declared separately from Fields because a lookup field need
// not be sorted (spec §3).
type EntityConfig struct {
	Name       string
	IDKey      IDKey
	Fields     []FieldConfig
	Prefilters []PrefilterConfig
	Lookups    []string
}

// FieldConfig looks up the configuration of one of the entity's declared
// fields by name.
func (c EntityConfig) FieldConfig(name string) (FieldConfig, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldConfig{}, false
}

func (c EntityConfig) firstField() string {
	if len(c.Fields) == 0 {
		return ""
	}
	return c.Fields[0].Name
}

// Validate enforces the warm-time configuration errors from spec §4.2.
func (c EntityConfig) Validate() error {
	if c.Name == "" {
		return errConfigInvalid("entity name is empty")
	}
	if c.IDKey == nil {
		return errConfigInvalid("entity " + c.Name + " has no id_key")
	}
	// A maintain_unique field counts as configured when the entity names it
	// anywhere: as a sorted field, a prefilter field, or a lookup field.
	declared := map[string]bool{}
	for _, f := range c.Fields {
		declared[f.Name] = true
	}
	for _, pf := range c.Prefilters {
		if pf.Field != "" {
			declared[pf.Field] = true
		}
	}
	for _, l := range c.Lookups {
		declared[l] = true
	}
	seenPF := map[string]bool{}
	seenNull := false
	for _, pf := range c.Prefilters {
		if pf.Field == "" {
			if len(pf.MaintainUnique) == 0 {
				return errConfigInvalid("entity " + c.Name + ": explicit null prefilter entry without maintain_unique options is illegal, it is implicit")
			}
			if seenNull {
				return errConfigInvalid("entity " + c.Name + ": duplicate null prefilter entry")
			}
			seenNull = true
		} else {
			if seenPF[pf.Field] {
				return errConfigInvalid("entity " + c.Name + ": duplicate prefilter field " + pf.Field)
			}
			seenPF[pf.Field] = true
		}
		for _, mu := range pf.MaintainUnique {
			if !declared[mu] {
				return errConfigInvalid("entity " + c.Name + ": maintain_unique field " + mu + " under prefilter " + pf.Field + " is not a configured field")
			}
		}
	}
	return nil
}

// nullMaintainUnique returns the maintain_unique fields declared for the
// implicit null prefilter, if any were configured.
func (c EntityConfig) nullMaintainUnique() []string {
	for _, pf := range c.Prefilters {
		if pf.Field == "" {
			return pf.MaintainUnique
		}
	}
	return nil
}

// fieldPrefilters returns only the non-null (field, value)-partitioning
// prefilter declarations.
func (c EntityConfig) fieldPrefilters() []PrefilterConfig {
	out := make([]PrefilterConfig, 0, len(c.Prefilters))
	for _, pf := range c.Prefilters {
		if pf.Field != "" {
			out = append(out, pf)
		}
	}
	return out
}

// nullBundleFields is the deduped union of the null prefilter's own
// maintain_unique fields and every configured prefilter field: the latter
// must be tracked at the null scope regardless of maintain_unique, since a
// prefilter's set of live (field, value) partitions is discovered from this
// bundle (spec §4.2 "the prefilter's own field is always maintained at the
// null scope, whether or not it is separately listed under maintain_unique").
func (c EntityConfig) nullBundleFields() []string {
	seen := map[string]bool{}
	var out []string
	add := func(f string) {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	for _, f := range c.nullMaintainUnique() {
		add(f)
	}
	for _, pf := range c.fieldPrefilters() {
		add(pf.Field)
	}
	return out
}

// WarmData is the bulk input for one entity at Warm time (spec §4.2).
type WarmData struct {
	// HintField/HintDir, if HintField != "", mean Records is already sorted
	// by HintField in HintDir order; the engine takes that direction as-is
	// and reverses it for the other direction instead of sorting.
	HintField string
	HintDir   Direction
	Records   []Record
}

// OrderHint selects the sorted index used by GetRecords (spec §4.7).
// The zero value means "default": (first configured field, ascending).
type OrderHint struct {
	Field string
	Dir   Direction
}
