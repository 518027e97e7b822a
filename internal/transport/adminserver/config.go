package adminserver

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/soltiHQ/gridstore/internal/auth/jwt"
)

// Config configures an AdminServer (grounded on the teacher's
// edgeserver.Config/Option pair).
type Config struct {
	addrHTTP string
	logLevel zerolog.Level

	verifier *jwt.Verifier
	issuer   *jwt.Issuer

	adminPasswordHash string

	readHeaderTimeout time.Duration
	readTimeout       time.Duration
	writeTimeout      time.Duration
	idleTimeout       time.Duration

	corsAllowOrigins []string
}

// Option configures a Config at construction time.
type Option func(*Config)

// NewConfig builds a Config with package defaults, then applies opts.
func NewConfig(opts ...Option) Config {
	cfg := Config{
		logLevel:          zerolog.InfoLevel,
		readHeaderTimeout: 5 * time.Second,
		readTimeout:       15 * time.Second,
		writeTimeout:      30 * time.Second,
		idleTimeout:       90 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithHTTPAddr sets the listen address.
func WithHTTPAddr(addr string) Option {
	return func(c *Config) { c.addrHTTP = addr }
}

// WithLogLevel overrides the default logging level.
func WithLogLevel(level zerolog.Level) Option {
	return func(c *Config) { c.logLevel = level }
}

// WithVerifier enables bearer-token auth on mutating routes. Without one,
// mutating routes are rejected outright (fail closed).
func WithVerifier(v *jwt.Verifier) Option {
	return func(c *Config) { c.verifier = v }
}

// WithIssuer enables POST /v1/login, which exchanges the admin password
// for a bearer token. Without one, the route is disabled.
func WithIssuer(i *jwt.Issuer) Option {
	return func(c *Config) { c.issuer = i }
}

// WithAdminPasswordHash sets the bcrypt hash POST /v1/login checks
// submitted passwords against.
func WithAdminPasswordHash(hash string) Option {
	return func(c *Config) { c.adminPasswordHash = hash }
}

// WithCORSAllowOrigins sets the CORS allow-list ("*" allows all).
func WithCORSAllowOrigins(origins ...string) Option {
	return func(c *Config) { c.corsAllowOrigins = origins }
}
