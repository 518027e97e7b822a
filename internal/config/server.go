// Package config loads process-level settings for cmd/gridstored: server
// env vars via envconfig, and the entity warm schema via YAML.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// ServerConfig is the process-level configuration, populated from the
// environment under the GRIDSTORE_ prefix (e.g. GRIDSTORE_HTTP_ADDR).
type ServerConfig struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8090"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	SchemaPath   string `envconfig:"SCHEMA_PATH" required:"true"`
	FixturesPath string `envconfig:"FIXTURES_PATH"`

	JWTSecret   string        `envconfig:"JWT_SECRET" required:"true"`
	JWTIssuer   string        `envconfig:"JWT_ISSUER" default:"gridstore"`
	JWTAudience string        `envconfig:"JWT_AUDIENCE" default:"gridstore-admin"`
	JWTTokenTTL time.Duration `envconfig:"JWT_TOKEN_TTL" default:"15m"`

	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"`
	AdminPassword     string `envconfig:"ADMIN_PASSWORD"`

	PubsubBuffer int `envconfig:"PUBSUB_BUFFER" default:"64"`

	StatsLogInterval time.Duration `envconfig:"STATS_LOG_INTERVAL" default:"1m"`
}

// LoadServerConfig reads ServerConfig from the environment.
func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := envconfig.Process("gridstore", &cfg); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}
