// Package config loads pgw-sessiond's runtime configuration from the
// environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the process-wide configuration.
type Config struct {
	// Object store (only consulted when PersistSessions is true).
	RedisHost string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort string `envconfig:"REDIS_PORT" default:"6379"`
	RedisPass string `envconfig:"REDIS_PASS"`

	PersistSessions bool `envconfig:"PERSIST_SESSIONS" default:"false"`

	// Data-plane peer (pipelined-style enforcer).
	DataPlaneAddr string `envconfig:"DATAPLANE_ADDR" default:"http://127.0.0.1:8080"`

	// Metrics/health listen address.
	MetricsAddr string `envconfig:"METRICS_ADDR" default:":9110"`

	// Optional JSON file of static policy rules loaded at startup.
	RulesFile string `envconfig:"RULES_FILE"`

	// Logging.
	LogMaskSID bool `envconfig:"LOG_MASK_SID" default:"true"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// RedisAddr returns the "host:port" Redis connection address.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
