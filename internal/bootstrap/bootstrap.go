// Package bootstrap applies a sequence of idempotent startup steps against
// a running *engine.Engine: warming the configured entities and seeding
// fixture data.
package bootstrap

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/soltiHQ/gridstore/engine"
)

// Step is one idempotent bootstrap action.
type Step interface {
	// Name is used for logs.
	Name() string
	// Run applies the step idempotently.
	Run(ctx context.Context, logger zerolog.Logger, eng *engine.Engine) error
}

// Run applies steps in order, stopping at the first failure.
func Run(ctx context.Context, logger zerolog.Logger, eng *engine.Engine, steps ...Step) error {
	logger = logger.With().Str("type", "bootstrap").Logger()

	for _, s := range steps {
		if err := s.Run(ctx, logger, eng); err != nil {
			logger.Error().Str("step", s.Name()).Err(err).Msg("bootstrap: failed")
			return err
		}
		logger.Debug().Str("step", s.Name()).Msg("bootstrap: ok")
	}
	return nil
}
