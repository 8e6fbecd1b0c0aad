package config

const (
	defaultConfigPath          = "~/.config/lyricist/config.toml"
	defaultDataDir             = "~/.local/share/lyricist"
	defaultCacheDBName         = "lyrics-cache.db"
	defaultRateIntervalMillis  = 1000
	defaultBurstWindowMillis   = 2500
	defaultAllowArtistFallback = true
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Lyrics: Lyrics{
			AllowArtistFallback: defaultAllowArtistFallback,
		},
		RateLimit: RateLimit{
			IntervalMillis:    defaultRateIntervalMillis,
			BurstWindowMillis: defaultBurstWindowMillis,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
