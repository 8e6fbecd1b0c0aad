// Package store persists resolved lyrics in a SQLite cache keyed by resolver
// path.
//
// A Store owns one database connection guarded by a mutex, so every public
// method runs alone: lookups, upserts, and the correction flows that rewrite
// the most recently updated entry never interleave within a process. Writes
// retry briefly when another process holds the database lock.
//
// Entries are never evicted. The only deletions come from ReplaceMostRecent,
// which drops the superseded row when a correction lands on a different path,
// and from the explicit Delete used by maintenance tooling.
package store
