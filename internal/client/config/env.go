package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays the fields tagged with env; unset variables leave the
// current values alone.
func parseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse env: %w", err)
	}
	return nil
}
