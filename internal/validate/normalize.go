package validate

import "strings"

// NormalizeKeywords lowercases s, replaces every character outside
// [a-z0-9 ] with a space, and collapses the result to single-spaced words.
// This is the form stored in the keywords column.
func NormalizeKeywords(s string) string {
	return normalizeWords(s)
}

// NormalizeForMatch applies the keyword normalization to text compared by
// the fuzzy title scorer and the recent-entry heuristic.
func NormalizeForMatch(s string) string {
	return normalizeWords(s)
}

func normalizeWords(s string) string {
	lowered := strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(lowered))
	space := true
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	return strings.TrimSuffix(b.String(), " ")
}
