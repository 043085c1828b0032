package config

import (
	"encoding/json"
	"errors"
	"path/filepath"
)

var ErrMissingOriginURL = errors.New("config: search.origin_url is required")

const (
	EngineRod      = "rod"
	EngineChromedp = "chromedp"
)

func ParseConfig(byteConfig []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(byteConfig, &cfg); err != nil {
		return nil, err
	}
	if cfg.Search.OriginURL == "" {
		return nil, ErrMissingOriginURL
	}
	applyDefaults(&cfg)

	if cfg.Browser.Chromedp.UserDataDir != "" {
		absPath, err := filepath.Abs(cfg.Browser.Chromedp.UserDataDir)
		if err != nil {
			return nil, err
		}
		cfg.Browser.Chromedp.UserDataDir = absPath
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Search.Workers <= 0 {
		cfg.Search.Workers = 1
	}
	if cfg.Search.MaxPages <= 0 {
		cfg.Search.MaxPages = 50
	}
	if cfg.Search.DelayMinMs <= 0 {
		cfg.Search.DelayMinMs = 500
	}
	if cfg.Search.DelayMaxMs < cfg.Search.DelayMinMs {
		cfg.Search.DelayMaxMs = cfg.Search.DelayMinMs + 500
	}
	if cfg.Search.ScrollSteps <= 0 {
		cfg.Search.ScrollSteps = 10
	}
	if cfg.Search.ShowMoreRounds <= 0 {
		cfg.Search.ShowMoreRounds = 3
	}
	if cfg.Search.NextWaitSeconds <= 0 {
		cfg.Search.NextWaitSeconds = 12
	}
	if cfg.Search.PathPattern == "" {
		cfg.Search.PathPattern = "/apartments/"
	}
	if cfg.Output.ResultCSV == "" {
		cfg.Output.ResultCSV = "results.csv"
	}
	if cfg.Output.AuditCSV == "" {
		cfg.Output.AuditCSV = "screened_log.csv"
	}
	if cfg.Browser.Engine == "" {
		cfg.Browser.Engine = EngineRod
	}
	if cfg.Browser.PageLoadTimeoutSec <= 0 {
		cfg.Browser.PageLoadTimeoutSec = 25
	}
	if cfg.Embedder.BatchSize <= 0 {
		cfg.Embedder.BatchSize = 16
	}
}
