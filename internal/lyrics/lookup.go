package lyrics

import (
	"context"
	"strings"

	"lyricist/internal/store"
	"lyricist/internal/validate"
)

const (
	searchCandidates = 10
	// legacyPhrase gets a dedicated search when the scored search finds
	// nothing; kept for queries users already rely on.
	legacyPhrase = "what it sounds like"
)

// CachedLookup tries each cache strategy in order and returns the first hit
// with the strategy that found it. A miss returns a nil entry and no error.
func (s *Service) CachedLookup(ctx context.Context, query string) (*store.Entry, Strategy, error) {
	if strings.TrimSpace(query) == "" {
		return nil, StrategyNone, nil
	}
	lowered := strings.ToLower(query)

	if strings.HasPrefix(query, "/") {
		entry, err := s.cache.FindByPath(ctx, query)
		if err != nil || entry != nil {
			return entry, StrategyPath, err
		}
	}

	if strings.HasPrefix(query, "http") {
		if path, ok := validate.ExtractPath(query); ok {
			entry, err := s.cache.FindByPath(ctx, path)
			if err != nil || entry != nil {
				return entry, StrategyURL, err
			}
		}
	}

	if artist, title, ok := strings.Cut(query, " - "); ok {
		entry, err := s.cache.FindByArtistTitle(ctx, strings.TrimSpace(artist), strings.TrimSpace(title))
		if err != nil || entry != nil {
			return entry, StrategyArtistTitle, err
		}
	}

	tokens := strings.Split(query, " ")
	for split := 1; split < len(tokens); split++ {
		artist := strings.Join(tokens[:split], " ")
		title := strings.Join(tokens[split:], " ")
		entry, err := s.cache.FindByArtistTitle(ctx, artist, title)
		if err != nil || entry != nil {
			return entry, StrategyTokenSplit, err
		}
	}

	candidates, err := s.cache.Search(ctx, query, searchCandidates)
	if err != nil {
		return nil, StrategyScoredSearch, err
	}
	if len(candidates) > 0 {
		entry, accepted := pickCandidate(query, candidates)
		if accepted {
			return &entry, StrategyScoredSearch, nil
		}
		return &entry, StrategySearchFallback, nil
	}

	if strings.Contains(lowered, legacyPhrase) {
		matches, err := s.cache.Search(ctx, legacyPhrase, 1)
		if err != nil {
			return nil, StrategyPhrase, err
		}
		if len(matches) > 0 {
			return &matches[0], StrategyPhrase, nil
		}
	}

	last, err := s.cache.MostRecentlyUpdated(ctx)
	if err != nil {
		return nil, StrategyRecent, err
	}
	if last != nil && matchesRecent(lowered, last.Keywords) {
		return last, StrategyRecent, nil
	}
	return nil, StrategyNone, nil
}

// matchesRecent reports whether all but at most one of the query tokens
// appear in keywords.
func matchesRecent(query, keywords string) bool {
	tokens := strings.Fields(validate.NormalizeForMatch(query))
	if len(tokens) == 0 {
		return false
	}
	matched := 0
	for _, token := range tokens {
		if strings.Contains(keywords, token) {
			matched++
		}
	}
	return matched >= max(1, len(tokens)-1)
}
