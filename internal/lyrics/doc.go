// Package lyrics resolves free-text or URL queries into cached lyrics
// entries.
//
// Service first tries a sequence of cache lookups (exact path, URL, "Artist -
// Title", every artist/title token split, scored substring search, and a
// heuristic match against the most recent entry). On a miss it asks a
// Resolver for a canonical path and the lyrics text, derives artist and title
// guesses from the path slug, and stores the result. Failures never escape
// the public methods: callers get an entry or nothing, while ResolveDetailed
// reports which outcome occurred for logs and tooling.
package lyrics
