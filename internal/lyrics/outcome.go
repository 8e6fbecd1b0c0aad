package lyrics

import (
	"time"

	"lyricist/internal/store"
)

// Outcome classifies how a resolve call ended.
type Outcome int

const (
	OutcomeNoMatch Outcome = iota
	OutcomeCacheHit
	OutcomeFetched
	OutcomeInvalidQuery
	OutcomeFetchFailed
	OutcomeStoreFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCacheHit:
		return "cache_hit"
	case OutcomeFetched:
		return "fetched"
	case OutcomeInvalidQuery:
		return "invalid_query"
	case OutcomeFetchFailed:
		return "fetch_failed"
	case OutcomeStoreFailed:
		return "store_failed"
	default:
		return "no_match"
	}
}

// Found reports whether the outcome carries an entry.
func (o Outcome) Found() bool {
	return o == OutcomeCacheHit || o == OutcomeFetched
}

// Strategy names the cached lookup step that produced a hit.
type Strategy string

const (
	StrategyNone           Strategy = ""
	StrategyPath           Strategy = "path"
	StrategyURL            Strategy = "url"
	StrategyArtistTitle    Strategy = "artist_title"
	StrategyTokenSplit     Strategy = "token_split"
	StrategyScoredSearch   Strategy = "scored_search"
	StrategySearchFallback Strategy = "search_fallback"
	StrategyPhrase         Strategy = "phrase"
	StrategyRecent         Strategy = "recent"
)

// Result describes one resolve call.
type Result struct {
	Entry     *store.Entry
	Outcome   Outcome
	Strategy  Strategy
	Query     string
	RequestID string
	Elapsed   time.Duration
}
