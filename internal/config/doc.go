// Package config loads, normalizes, and validates lyricist configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// LYRICS_FORCE_REFRESH and LYRICS_RATE_BURST_MILLIS. The Config type
// centralizes the cache location, resolver throttle, and logging knobs so the
// CLI and any embedding application discover them in one pass.
package config
