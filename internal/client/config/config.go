package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the CLI.
type Config struct {
	APIBaseURL            string `env:"LYNQ_API_URL"`
	DataDir               string
	RequestTimeout        time.Duration
	ConflictRedirectDelay time.Duration
	ResendNoticeTTL       time.Duration
	LogLevel              string `env:"LYNQ_LOG_LEVEL"`
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.DataDir = ".lynq"
	c.RequestTimeout = 15 * time.Second
	c.ConflictRedirectDelay = 2 * time.Second
	c.ResendNoticeTTL = 3 * time.Second
	c.LogLevel = "info"
}

// DatabasePath is the sqlite file holding the persistent store.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "lynq.db")
}

// LoadConfig applies defaults, then the JSON file, the environment and the
// flags found in os.Args, in that order.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
