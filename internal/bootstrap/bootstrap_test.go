package bootstrap

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/soltiHQ/gridstore/engine"
)

func ordersConfig() engine.EntityConfig {
	return engine.EntityConfig{
		Name:  "orders",
		IDKey: engine.FieldIDKey("id"),
		Fields: []engine.FieldConfig{
			{Name: "id", Sort: engine.SortNatural},
			{Name: "total", Sort: engine.SortNatural},
		},
	}
}

func TestEnsureSchemaStep_WarmsUnregisteredEntity(t *testing.T) {
	eng := engine.New()
	step := EnsureSchemaStep{Configs: []engine.EntityConfig{ordersConfig()}}

	if err := step.Run(context.Background(), zerolog.Nop(), eng); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, ok := eng.Stats().Entities["orders"]; !ok {
		t.Fatalf("expected orders entity registered")
	}
}

func TestEnsureSchemaStep_SkipsAlreadyRegisteredEntity(t *testing.T) {
	eng := engine.New()
	cfg := ordersConfig()
	if err := eng.Warm(cfg, engine.WarmData{}); err != nil {
		t.Fatalf("warm: %v", err)
	}
	if err := eng.Put("orders", engine.Record{"id": engine.String("o1"), "total": engine.Int(5)}); err != nil {
		t.Fatalf("put: %v", err)
	}

	step := EnsureSchemaStep{Configs: []engine.EntityConfig{cfg}}
	if err := step.Run(context.Background(), zerolog.Nop(), eng); err != nil {
		t.Fatalf("run: %v", err)
	}

	rec, ok, err := eng.Get("orders", "o1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatalf("expected previously put record to survive a second bootstrap run")
	}
	if rec.Get("id").AsString() != "o1" {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestEnsureFixturesStep_SeedsMissingRecords(t *testing.T) {
	eng := engine.New()
	cfg := ordersConfig()
	if err := eng.Warm(cfg, engine.WarmData{}); err != nil {
		t.Fatalf("warm: %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "fixtures.json")
	doc := map[string]any{
		"orders": []map[string]any{
			{"id": "o1", "total": 10},
			{"id": "o2", "total": 20},
		},
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal fixtures: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write fixtures: %v", err)
	}

	step := EnsureFixturesStep{Path: path, Schemas: map[string]engine.EntityConfig{"orders": cfg}}
	if err := step.Run(context.Background(), zerolog.Nop(), eng); err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, id := range []string{"o1", "o2"} {
		if _, ok, err := eng.Get("orders", id); err != nil || !ok {
			t.Fatalf("expected record %q seeded, ok=%v err=%v", id, ok, err)
		}
	}
}

func TestEnsureFixturesStep_DoesNotOverwriteExisting(t *testing.T) {
	eng := engine.New()
	cfg := ordersConfig()
	if err := eng.Warm(cfg, engine.WarmData{}); err != nil {
		t.Fatalf("warm: %v", err)
	}
	if err := eng.Put("orders", engine.Record{"id": engine.String("o1"), "total": engine.Int(999)}); err != nil {
		t.Fatalf("put: %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "fixtures.json")
	doc := map[string]any{"orders": []map[string]any{{"id": "o1", "total": 10}}}
	data, _ := json.Marshal(doc)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write fixtures: %v", err)
	}

	step := EnsureFixturesStep{Path: path, Schemas: map[string]engine.EntityConfig{"orders": cfg}}
	if err := step.Run(context.Background(), zerolog.Nop(), eng); err != nil {
		t.Fatalf("run: %v", err)
	}

	rec, _, _ := eng.Get("orders", "o1")
	if rec.Get("total").AsInt() != 999 {
		t.Fatalf("expected existing record untouched, got total=%d", rec.Get("total").AsInt())
	}
}

func TestEnsureFixturesStep_NoPathIsNoop(t *testing.T) {
	eng := engine.New()
	step := EnsureFixturesStep{}
	if err := step.Run(context.Background(), zerolog.Nop(), eng); err != nil {
		t.Fatalf("run: %v", err)
	}
}
