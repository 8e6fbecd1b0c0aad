// Package logging builds the slog loggers used by lyricist.
//
// Two handlers are available: a single-line console handler for interactive
// use and a JSON handler for machine consumption. Context helpers attach the
// request ID and operation name recorded by the lyrics service so every line
// emitted while resolving a query can be correlated.
package logging
