package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/lynq-cli/internal/flagx"
	"github.com/dmitrijs2005/lynq-cli/internal/timex"
)

// jsonConfig is the on-disk shape. Fields missing from the file keep their
// earlier values.
type jsonConfig struct {
	APIBaseURL            string         `json:"api_base_url"`
	DataDir               string         `json:"data_dir"`
	RequestTimeout        timex.Duration `json:"request_timeout"`
	ConflictRedirectDelay timex.Duration `json:"conflict_redirect_delay"`
	ResendNoticeTTL       timex.Duration `json:"resend_notice_ttl"`
	LogLevel              string         `json:"log_level"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.ConflictRedirectDelay.Duration != 0 {
		cfg.ConflictRedirectDelay = jc.ConflictRedirectDelay.Duration
	}
	if jc.ResendNoticeTTL.Duration != 0 {
		cfg.ResendNoticeTTL = jc.ResendNoticeTTL.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}
