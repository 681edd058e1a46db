// Package config loads process configuration from the environment and bot
// settings from an optional YAML file.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds process-level settings read from the environment.
type Config struct {
	Port               string   `env:"PORT" envDefault:"8080"`
	DBPath             string   `env:"DB_PATH" envDefault:"./lookout.db"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	SettingsPath       string   `env:"LOOKOUT_SETTINGS_PATH"`

	// Data Dragon access
	DataDragonBaseURL string        `env:"DATA_DRAGON_BASE_URL" envDefault:"https://dd.b.pvp.net"`
	DataDragonRPS     float64       `env:"DATA_DRAGON_RPS" envDefault:"5"`
	DataDragonBurst   int           `env:"DATA_DRAGON_BURST" envDefault:"5"`
	DataDragonTimeout time.Duration `env:"DATA_DRAGON_TIMEOUT" envDefault:"30s"`

	// Caching
	CatalogCacheSize int           `env:"LOOKOUT_CATALOG_CACHE_SIZE" envDefault:"16"`
	BundleDir        string        `env:"LOOKOUT_BUNDLE_DIR"`
	PrefetchBundles  bool          `env:"LOOKOUT_PREFETCH_BUNDLES" envDefault:"false"`
	RedisURL         string        `env:"REDIS_URL"`
	DocumentTTL      time.Duration `env:"LOOKOUT_DOCUMENT_TTL" envDefault:"24h"`

	// How often "latest" catalogs are evicted and refetched; zero disables it
	CatalogRefreshInterval time.Duration `env:"LOOKOUT_CATALOG_REFRESH_INTERVAL" envDefault:"6h"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	if cfg.CatalogCacheSize <= 0 {
		return nil, fmt.Errorf("LOOKOUT_CATALOG_CACHE_SIZE must be positive, got %d", cfg.CatalogCacheSize)
	}
	if cfg.DataDragonRPS <= 0 {
		return nil, fmt.Errorf("DATA_DRAGON_RPS must be positive, got %v", cfg.DataDragonRPS)
	}
	return cfg, nil
}
