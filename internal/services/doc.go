// Package services defines shared utilities consumed by the lyrics service,
// the cache store, and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp correlation identifiers and operation names
//     for logging.
//   - Structured error markers plus the Wrap helper so failures can be
//     classified consistently (validation vs storage vs transient) even though
//     the public lyrics API collapses them to "not found".
package services
