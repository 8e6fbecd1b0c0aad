package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// envOverrides captures the environment-level switches. Unset variables leave
// the file (or default) values untouched.
type envOverrides struct {
	ForceRefresh      *bool  `env:"LYRICS_FORCE_REFRESH"`
	BurstWindowMillis *int64 `env:"LYRICS_RATE_BURST_MILLIS"`
	IntervalMillis    *int64 `env:"LYRICS_RATE_INTERVAL_MILLIS"`
	CacheDB           string `env:"LYRICIST_CACHE_DB"`
	LogLevel          string `env:"LYRICIST_LOG_LEVEL"`
}

func (c *Config) applyEnv() error {
	overrides, err := env.ParseAs[envOverrides]()
	if err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	if overrides.ForceRefresh != nil {
		c.Lyrics.ForceRefresh = *overrides.ForceRefresh
	}
	if overrides.BurstWindowMillis != nil {
		c.RateLimit.BurstWindowMillis = *overrides.BurstWindowMillis
	}
	if overrides.IntervalMillis != nil {
		c.RateLimit.IntervalMillis = *overrides.IntervalMillis
	}
	if value := strings.TrimSpace(overrides.CacheDB); value != "" {
		c.Paths.CacheDB = value
	}
	if value := strings.TrimSpace(overrides.LogLevel); value != "" {
		c.Logging.Level = value
	}
	return nil
}
