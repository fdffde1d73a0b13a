// Package config loads runtime configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/fx"
)

// Config carries all runtime settings for the marketplace analytics service.
type Config struct {
	Environment string

	Database  DatabaseConfig
	Bootstrap BootstrapConfig
	Sweep     SweepConfig
}

// DatabaseConfig selects the storage engine and connection string.
type DatabaseConfig struct {
	// Driver is either "postgres" or "sqlite".
	Driver string
	DSN    string
}

// BootstrapConfig controls startup seeding for non-production environments.
type BootstrapConfig struct {
	SeedDemoData bool
}

// SweepConfig bounds fleet-wide segmentation sweeps.
type SweepConfig struct {
	Concurrency          int
	Timeout              time.Duration
	DistributionCacheTTL time.Duration
}

// Load reads configuration from environment variables with defaults that suit
// local development.
func Load() (Config, error) {
	cfg := Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Driver: strings.ToLower(getEnv("DATABASE_DRIVER", "sqlite")),
			DSN:    getEnv("DATABASE_DSN", "file:marketplace.db?cache=shared"),
		},
		Bootstrap: BootstrapConfig{
			SeedDemoData: getEnvBool("BOOTSTRAP_SEED_DEMO_DATA", false),
		},
		Sweep: SweepConfig{
			Concurrency:          getEnvInt("SWEEP_CONCURRENCY", 8),
			Timeout:              getEnvDuration("SWEEP_TIMEOUT", 30*time.Second),
			DistributionCacheTTL: getEnvDuration("SWEEP_DISTRIBUTION_CACHE_TTL", time.Minute),
		},
	}
	return cfg, nil
}

// IsProduction reports whether the service runs in a production environment.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}

// Module provides Config to the fx graph.
var Module = fx.Module("config",
	fx.Provide(Load),
)
