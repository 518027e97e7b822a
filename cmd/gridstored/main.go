package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/soltiHQ/gridstore/engine"
	"github.com/soltiHQ/gridstore/engine/pubsub/memory"
	"github.com/soltiHQ/gridstore/internal/auth/jwt"
	"github.com/soltiHQ/gridstore/internal/bootstrap"
	"github.com/soltiHQ/gridstore/internal/config"
	"github.com/soltiHQ/gridstore/internal/credentials"
	"github.com/soltiHQ/gridstore/internal/transport/adminserver"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	logger := log.With().Str("app", "gridstored").Logger()

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadServerConfig()
	if err != nil {
		logger.Error().Err(err).Msg("failed to load server config")
		return
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(lvl)
	}

	schema, err := config.LoadSchema(cfg.SchemaPath)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.SchemaPath).Msg("failed to load entity schema")
		return
	}
	entityConfigs := schema.EntityConfigs()
	schemas := make(map[string]engine.EntityConfig, len(entityConfigs))
	for _, c := range entityConfigs {
		schemas[c.Name] = c
	}

	broadcaster := memory.New()
	eng := engine.New(engine.WithBroadcaster(broadcaster))

	if err := bootstrap.Run(rootCtx, logger, eng,
		bootstrap.EnsureSchemaStep{Configs: entityConfigs},
		bootstrap.EnsureFixturesStep{Path: cfg.FixturesPath, Schemas: schemas},
	); err != nil {
		logger.Error().Err(err).Msg("bootstrap failed")
		return
	}

	adminPasswordHash, err := ensureAdminPasswordHash(logger, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("failed to resolve admin credential")
		return
	}

	jwtSecret := []byte(cfg.JWTSecret)
	issuer := jwt.NewIssuer(cfg.JWTIssuer, cfg.JWTAudience, jwtSecret, cfg.JWTTokenTTL)
	verifier := jwt.NewVerifier(cfg.JWTIssuer, cfg.JWTAudience, jwtSecret)

	admin := adminserver.NewAdminServer(
		adminserver.NewConfig(
			adminserver.WithHTTPAddr(cfg.HTTPAddr),
			adminserver.WithLogLevel(logger.GetLevel()),
			adminserver.WithVerifier(verifier),
			adminserver.WithIssuer(issuer),
			adminserver.WithAdminPasswordHash(adminPasswordHash),
			adminserver.WithCORSAllowOrigins("*"),
		),
		logger,
		eng,
		schemas,
	)

	g, ctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		logger.Info().Msg("starting admin server")
		return admin.Run(ctx)
	})

	g.Go(func() error {
		return logStatsPeriodically(ctx, logger, eng, cfg.StatsLogInterval)
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("gridstored terminated with error")
	} else {
		logger.Info().Msg("gridstored stopped cleanly")
	}
}

// ensureAdminPasswordHash resolves the bcrypt hash checked by POST
// /v1/login: a configured hash wins, then a configured plaintext password
// is hashed, and otherwise the hash is empty and every login attempt fails
// (the operator must set one of the two env vars to enable mutating routes).
func ensureAdminPasswordHash(logger zerolog.Logger, cfg config.ServerConfig) (string, error) {
	if cfg.AdminPasswordHash != "" {
		return cfg.AdminPasswordHash, nil
	}
	if cfg.AdminPassword == "" {
		logger.Warn().Msg("GRIDSTORE_ADMIN_PASSWORD(_HASH) not set; admin login is disabled")
		return "", nil
	}
	hash, err := credentials.Hash(cfg.AdminPassword)
	if err != nil {
		return "", err
	}
	return hash, nil
}

func logStatsPeriodically(ctx context.Context, logger zerolog.Logger, eng *engine.Engine, interval time.Duration) error {
	if interval <= 0 {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			stats := eng.Stats()
			for name, st := range stats.Entities {
				logger.Info().
					Str("entity", name).
					Int("records", st.RecordCount).
					Int("indexes", st.IndexCount).
					Int("uniques_bundles", st.UniquesBundleCount).
					Int("views", st.ViewCount).
					Msg("entity stats")
			}
		}
	}
}
