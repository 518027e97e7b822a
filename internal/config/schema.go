package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/soltiHQ/gridstore/engine"
)

// Schema is the YAML document describing every entity to warm at startup
// (spec §3/§4.2). It is the human-edited counterpart to the
// environment-driven ServerConfig.
type Schema struct {
	Entities []EntitySchema `yaml:"entities"`
}

// EntitySchema is one entity's warm-time configuration.
type EntitySchema struct {
	Name       string            `yaml:"name"`
	IDField    string            `yaml:"id_field"`
	Fields     []FieldSchema     `yaml:"fields"`
	Prefilters []PrefilterSchema `yaml:"prefilters"`
	Lookups    []string          `yaml:"lookups"`
}

// FieldSchema is one sortable field declaration.
type FieldSchema struct {
	Name string `yaml:"name"`
	Sort string `yaml:"sort"` // "natural" (default) or "datetime"
}

// PrefilterSchema declares one partition dimension. An empty Field denotes
// the implicit null prefilter's maintain_unique list (spec §4.2).
type PrefilterSchema struct {
	Field          string   `yaml:"field"`
	MaintainUnique []string `yaml:"maintain_unique"`
}

// LoadSchema reads and parses a YAML entity schema document from path.
func LoadSchema(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, err
	}
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Schema{}, err
	}
	return s, nil
}

// EntityConfigs converts the parsed schema into engine.EntityConfig values,
// ready to pass to engine.Warm.
func (s Schema) EntityConfigs() []engine.EntityConfig {
	out := make([]engine.EntityConfig, 0, len(s.Entities))
	for _, es := range s.Entities {
		out = append(out, es.entityConfig())
	}
	return out
}

func (es EntitySchema) entityConfig() engine.EntityConfig {
	fields := make([]engine.FieldConfig, 0, len(es.Fields))
	for _, f := range es.Fields {
		fields = append(fields, engine.FieldConfig{Name: f.Name, Sort: sortStrategy(f.Sort)})
	}

	prefilters := make([]engine.PrefilterConfig, 0, len(es.Prefilters))
	for _, pf := range es.Prefilters {
		prefilters = append(prefilters, engine.PrefilterConfig{
			Field:          pf.Field,
			MaintainUnique: pf.MaintainUnique,
		})
	}

	return engine.EntityConfig{
		Name:       es.Name,
		IDKey:      engine.FieldIDKey(es.IDField),
		Fields:     fields,
		Prefilters: prefilters,
		Lookups:    es.Lookups,
	}
}

func sortStrategy(s string) engine.SortStrategy {
	if s == "datetime" {
		return engine.SortDatetime
	}
	return engine.SortNatural
}
