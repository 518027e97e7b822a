package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"github.com/soltiHQ/gridstore/engine"
)

// FixtureDocument is the on-disk shape of a fixtures file: entity name to
// a list of field maps. A record missing its configured id field is
// assigned a generated ksuid, matching the teacher's own id-generation
// fallback for demo/test seed data.
type FixtureDocument map[string][]map[string]any

// EnsureFixturesStep loads records from Path (if set) and Puts any record
// whose id isn't already present, leaving existing records untouched.
// Puts are made one at a time rather than via Warm so the step stays
// idempotent against data a caller may have already written through the
// admin surface.
type EnsureFixturesStep struct {
	Path    string
	Schemas map[string]engine.EntityConfig
}

// Name of the step.
func (EnsureFixturesStep) Name() string {
	return "ensure_fixtures"
}

// Run a step process.
func (s EnsureFixturesStep) Run(ctx context.Context, logger zerolog.Logger, eng *engine.Engine) error {
	if s.Path == "" {
		return nil
	}

	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return fmt.Errorf("bootstrap: read fixtures %q: %w", s.Path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc FixtureDocument
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("bootstrap: parse fixtures %q: %w", s.Path, err)
	}

	for entityName, rows := range doc {
		if err := ctx.Err(); err != nil {
			return err
		}
		cfg, ok := s.Schemas[entityName]
		if !ok {
			logger.Warn().Str("entity", entityName).Msg("BOOTSTRAP: fixture entity not in schema, skipped")
			continue
		}

		put := 0
		for _, row := range rows {
			rec, err := decodeFixtureRecord(row, cfg)
			if err != nil {
				return fmt.Errorf("bootstrap: entity %q: %w", entityName, err)
			}
			id, err := cfg.IDKey.ID(rec)
			if err != nil || id == "" {
				id = ksuid.New().String()
				rec[idFieldName(cfg)] = engine.String(id)
			}
			if _, ok, err := eng.Get(entityName, id); err != nil {
				return err
			} else if ok {
				continue
			}
			if err := eng.Put(entityName, rec); err != nil {
				return err
			}
			put++
		}
		if put > 0 {
			logger.Info().Str("entity", entityName).Int("count", put).Msg("BOOTSTRAP: seeded fixture records")
		}
	}
	return nil
}

func idFieldName(cfg engine.EntityConfig) string {
	if fk, ok := cfg.IDKey.(engine.FieldIDKey); ok {
		return string(fk)
	}
	return "id"
}

func decodeFixtureRecord(row map[string]any, cfg engine.EntityConfig) (engine.Record, error) {
	rec := make(engine.Record, len(row))
	for field, v := range row {
		fc, configured := cfg.FieldConfig(field)
		val, err := decodeFixtureValue(v, fc, configured)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		rec[field] = val
	}
	return rec, nil
}

func decodeFixtureValue(raw any, fc engine.FieldConfig, configured bool) (engine.Value, error) {
	switch v := raw.(type) {
	case nil:
		return engine.Nil, nil
	case bool:
		return engine.Bool(v), nil
	case string:
		if configured && fc.Sort == engine.SortDatetime {
			t, err := time.Parse(time.RFC3339Nano, v)
			if err != nil {
				return engine.Value{}, fmt.Errorf("invalid timestamp %q: %w", v, err)
			}
			return engine.Time(t), nil
		}
		return engine.String(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return engine.Int(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return engine.Value{}, fmt.Errorf("invalid number %q: %w", v.String(), err)
		}
		return engine.Float(f), nil
	default:
		return engine.Value{}, fmt.Errorf("unsupported fixture value type %T", raw)
	}
}
