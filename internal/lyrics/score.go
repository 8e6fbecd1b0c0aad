package lyrics

import (
	"strings"

	"lyricist/internal/store"
	"lyricist/internal/validate"
)

const (
	// acceptScore is the minimum candidate score for a scored search hit.
	acceptScore = 0.35
	// phraseBonus rewards a title containing the whole query.
	phraseBonus = 0.25
	// suffixBonus rewards a title ending with the query during candidate scans.
	suffixBonus = 0.05
	// leadingTokenPenalty applies per title token before the phrase match,
	// capped at maxLeadingPenalty.
	leadingTokenPenalty = 0.02
	maxLeadingPenalty   = 0.15
)

// Score rates how well title matches query: the Jaccard similarity of their
// normalized token sets, plus a bonus when the title contains the whole query,
// minus a small penalty for title tokens ahead of that match. It reports false
// when either side normalizes to nothing. The result is not clamped.
func Score(query, title string) (float64, bool) {
	normQuery := validate.NormalizeForMatch(query)
	normTitle := validate.NormalizeForMatch(title)
	if normQuery == "" || normTitle == "" {
		return 0, false
	}

	qset := tokenSet(normQuery)
	tset := tokenSet(normTitle)
	intersection := 0
	for token := range qset {
		if _, ok := tset[token]; ok {
			intersection++
		}
	}
	union := len(qset) + len(tset) - intersection
	score := float64(intersection) / float64(union)

	idx := strings.Index(normTitle, normQuery)
	if idx >= 0 {
		score += phraseBonus
	}
	if idx > 0 {
		leading := len(strings.Fields(normTitle[:idx]))
		score -= min(maxLeadingPenalty, float64(leading)*leadingTokenPenalty)
	}
	return score, true
}

func tokenSet(normalized string) map[string]struct{} {
	fields := strings.Fields(normalized)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// pickCandidate returns the best scoring entry when it clears acceptScore,
// and otherwise the first (most recent) candidate.
func pickCandidate(query string, candidates []store.Entry) (store.Entry, bool) {
	lowered := strings.ToLower(query)
	bestIdx := -1
	bestScore := -1.0
	for i, c := range candidates {
		s, _ := Score(lowered, c.Title)
		if strings.HasSuffix(strings.ToLower(c.Title), lowered) {
			s += suffixBonus
		}
		if s > bestScore {
			bestScore = s
			bestIdx = i
		}
	}
	if bestIdx >= 0 && bestScore >= acceptScore {
		return candidates[bestIdx], true
	}
	return candidates[0], false
}
