package adminserver

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/soltiHQ/gridstore/engine"
)

// encodeValue renders an engine.Value as a JSON-marshalable Go value.
func encodeValue(v engine.Value) any {
	switch v.Kind() {
	case engine.KindNil:
		return nil
	case engine.KindString:
		return v.AsString()
	case engine.KindInt:
		return v.AsInt()
	case engine.KindFloat:
		return v.AsFloat()
	case engine.KindBool:
		return v.AsBool()
	case engine.KindTime:
		return v.AsTime().UTC().Format(time.RFC3339Nano)
	default:
		return nil
	}
}

// encodeRecord renders a Record as a JSON-marshalable map.
func encodeRecord(r engine.Record) map[string]any {
	out := make(map[string]any, len(r))
	for k, v := range r {
		out[k] = encodeValue(v)
	}
	return out
}

// decodeValue converts a JSON-decoded value (produced with
// json.Decoder.UseNumber) into an engine.Value. When fc/configured
// indicates the field is a configured datetime field, string values are
// parsed as RFC3339Nano timestamps rather than left as strings.
func decodeValue(raw any, fc engine.FieldConfig, configured bool) (engine.Value, error) {
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
		return engine.Value{}, fmt.Errorf("unsupported JSON value type %T", raw)
	}
}

// decodeRecord converts a JSON-decoded field map into a Record, using cfg
// to decide which fields are datetimes.
func decodeRecord(raw map[string]any, cfg engine.EntityConfig) (engine.Record, error) {
	rec := make(engine.Record, len(raw))
	for field, v := range raw {
		fc, configured := cfg.FieldConfig(field)
		val, err := decodeValue(v, fc, configured)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		rec[field] = val
	}
	return rec, nil
}

// decodeQueryValue converts a raw query-string value into an engine.Value,
// trying the field's configured kind first and falling back through
// int/float/bool to a plain string: the most specific kind that parses.
func decodeQueryValue(s string, fc engine.FieldConfig, configured bool) engine.Value {
	if configured && fc.Sort == engine.SortDatetime {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return engine.Time(t)
		}
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return engine.Int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return engine.Float(f)
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return engine.Bool(b)
	}
	return engine.String(s)
}
