package testsupport

import (
	"path/filepath"
	"testing"

	"lyricist/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Rate limiting is disabled unless WithRateLimit is supplied.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = base
	cfgVal.Paths.CacheDB = filepath.Join(base, "lyrics-cache.db")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.RateLimit.IntervalMillis = 0
	cfgVal.RateLimit.LockPath = filepath.Join(base, "genius-rate.lock")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithRateLimit enables the resolver throttle on the test config.
func WithRateLimit(intervalMillis, burstWindowMillis int64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.RateLimit.IntervalMillis = intervalMillis
		b.cfg.RateLimit.BurstWindowMillis = burstWindowMillis
	}
}

// WithForceRefresh toggles cache bypass on the test config.
func WithForceRefresh(force bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Lyrics.ForceRefresh = force
	}
}

// WithArtistFallback toggles whether resolver searches may settle for an
// artist-only match.
func WithArtistFallback(allow bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Lyrics.AllowArtistFallback = allow
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return cfg.Paths.DataDir
}
