package validate

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const (
	// MaxQueryChars bounds a sanitized query, counted in runes.
	MaxQueryChars = 300
	// MaxLyricsChars bounds sanitized lyrics text, counted in runes.
	MaxLyricsChars = 50000
)

// zeroWidth covers U+200B..U+200D (zero-width space, non-joiner, joiner) and
// the byte order mark.
var zeroWidth = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x200B, Hi: 0x200D, Stride: 1},
		{Lo: 0xFEFF, Hi: 0xFEFF, Stride: 1},
	},
}

var excessNewlines = regexp.MustCompile(`\n{5,}`)

// SanitizeQuery cleans a free-text query. It reports false when nothing
// usable remains or when the query contains ": ", which downstream search
// syntax would interpret as a field qualifier.
func SanitizeQuery(raw string) (string, bool) {
	q := strings.TrimSpace(raw)
	q = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, q)
	q = stripInvisible(q)
	q = strings.Join(strings.Fields(q), " ")
	if q == "" {
		return "", false
	}
	q = strings.TrimSpace(truncateRunes(q, MaxQueryChars))
	if strings.Contains(q, ": ") {
		return "", false
	}
	return q, true
}

// SanitizeLyrics normalizes fetched lyrics text. Carriage returns are dropped,
// other control characters except LF and TAB become spaces, and runs of five
// or more newlines shrink to three. It reports false when the result is empty.
func SanitizeLyrics(raw string) (string, bool) {
	l := strings.ReplaceAll(raw, "\r", "")
	l = strings.Map(func(r rune) rune {
		if r != '\n' && r != '\t' && unicode.IsControl(r) {
			return ' '
		}
		return r
	}, l)
	l = excessNewlines.ReplaceAllString(l, "\n\n\n")
	l = strings.TrimSpace(truncateRunes(l, MaxLyricsChars))
	if l == "" {
		return "", false
	}
	return l, true
}

func stripInvisible(s string) string {
	out, _, err := transform.String(runes.Remove(runes.In(zeroWidth)), s)
	if err != nil {
		return s
	}
	return out
}

func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
