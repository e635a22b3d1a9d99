package cachegraph

import (
	"fmt"
	"os"
	"time"
)

// Env maps environment variable names for cache configuration.
type Env struct {
	TTL string
}

// Config holds cache freshness settings.
type Config struct {
	// TTL is the freshness window of a fetched value. "0s" disables
	// time-based staleness; explicit invalidation still applies.
	TTL string `toml:"ttl"`
}

// TTLDuration parses and returns the freshness window as a time.Duration.
func (c *Config) TTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TTL)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	c.loadEnv(env)
	return c.validate()
}

// Merge applies non-zero values from the overlay configuration.
func (c *Config) Merge(overlay *Config) {
	if overlay.TTL != "" {
		c.TTL = overlay.TTL
	}
}

func (c *Config) loadDefaults() {
	if c.TTL == "" {
		c.TTL = "30s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env == nil {
		return
	}
	if v := os.Getenv(env.TTL); v != "" {
		c.TTL = v
	}
}

func (c *Config) validate() error {
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return fmt.Errorf("invalid ttl: %w", err)
	}
	if d < 0 {
		return fmt.Errorf("ttl must not be negative")
	}
	return nil
}
