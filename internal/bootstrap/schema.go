package bootstrap

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/soltiHQ/gridstore/engine"
)

// EnsureSchemaStep warms every entity named in Configs that isn't already
// registered. Warm replaces an entity's state wholesale, so this step
// checks the engine's current stats first to stay idempotent across
// repeated bootstrap runs.
type EnsureSchemaStep struct {
	Configs []engine.EntityConfig
}

// Name of the step.
func (EnsureSchemaStep) Name() string {
	return "ensure_schema"
}

// Run a step process.
func (s EnsureSchemaStep) Run(_ context.Context, logger zerolog.Logger, eng *engine.Engine) error {
	existing := eng.Stats().Entities

	for _, cfg := range s.Configs {
		if _, ok := existing[cfg.Name]; ok {
			continue
		}
		if err := eng.Warm(cfg, engine.WarmData{}); err != nil {
			return err
		}
		logger.Info().Str("entity", cfg.Name).Msg("BOOTSTRAP: warmed entity schema")
	}
	return nil
}
