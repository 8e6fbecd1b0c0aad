// Package main hosts the lyricist CLI entrypoint and command graph.
//
// Commands resolve configuration once, open the lyrics cache, and hand the
// work to internal/lyrics and internal/store. Lookups here never reach the
// network: imports and corrections read lyrics from local files through a
// file-backed resolver, so the same cache and correction rules apply as for
// bot-driven lookups.
package main
