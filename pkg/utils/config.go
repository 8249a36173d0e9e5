package utils

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full server configuration, read from POKEHUB_* environment
// variables. Defaults mirror the original system: ids 1..1025, 20 per page.
type Config struct {
	ListenAddr    string        `env:"POKEHUB_LISTEN_ADDR" envDefault:":8080"`
	UpstreamURL   string        `env:"POKEHUB_UPSTREAM_URL" envDefault:"https://pokeapi.co/api/v2"`
	FirstID       int           `env:"POKEHUB_FIRST_ID" envDefault:"1"`
	LastID        int           `env:"POKEHUB_LAST_ID" envDefault:"1025"`
	PageSize      int           `env:"POKEHUB_PAGE_SIZE" envDefault:"20"`
	ClientTimeout time.Duration `env:"POKEHUB_CLIENT_TIMEOUT" envDefault:"15s"`
	// MaxInFlight caps concurrent bulk-load fetches; 0 dispatches every
	// request at once.
	MaxInFlight int `env:"POKEHUB_MAX_IN_FLIGHT" envDefault:"0"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env config: %w", err)
	}
	if cfg.FirstID < 1 || cfg.LastID < cfg.FirstID {
		return cfg, fmt.Errorf("invalid id range %d..%d", cfg.FirstID, cfg.LastID)
	}
	if cfg.PageSize <= 0 {
		return cfg, fmt.Errorf("invalid page size %d", cfg.PageSize)
	}
	return cfg, nil
}
