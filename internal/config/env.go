package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// FromEnv applies TICKLIST_* environment overrides to cfg.
func FromEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
