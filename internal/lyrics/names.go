package lyrics

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"lyricist/internal/validate"
)

// DeriveNames guesses artist and title from a resolver path. The final path
// segment, minus the "-lyrics" suffix, is split on hyphens: the last piece is
// the title and the rest form the artist. Underscores become spaces and each
// word gets an upper-case first letter. Trailing empty pieces are ignored
// when counting; a single piece yields only a title, taken from the whole
// slug. slug is the suffix-free final segment.
func DeriveNames(path string) (artist, title, slug string) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(path), "/")
	slug = trimmed[strings.LastIndex(trimmed, "/")+1:]
	if len(slug) >= len(validate.PathSuffix) && strings.EqualFold(slug[len(slug)-len(validate.PathSuffix):], validate.PathSuffix) {
		slug = slug[:len(slug)-len(validate.PathSuffix)]
	}

	segs := strings.Split(slug, "-")
	for len(segs) > 0 && segs[len(segs)-1] == "" {
		segs = segs[:len(segs)-1]
	}
	if len(segs) > 1 {
		title = capitalizeWords(strings.ReplaceAll(segs[len(segs)-1], "_", " "))
		artist = capitalizeWords(strings.ReplaceAll(strings.Join(segs[:len(segs)-1], " "), "_", " "))
		return artist, title, slug
	}
	return "", capitalizeWords(strings.ReplaceAll(slug, "_", " ")), slug
}

// BuildKeywords assembles the searchable keyword text for a fetched entry.
func BuildKeywords(query, slug, artist, title string) string {
	return strings.ToLower(strings.Join([]string{
		query,
		strings.ReplaceAll(slug, "-", " "),
		artist,
		title,
	}, " "))
}

// capitalizeWords upper-cases the first letter of each space-separated word
// and leaves the rest untouched. Empty words are dropped.
func capitalizeWords(s string) string {
	parts := strings.Split(s, " ")
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(p)
		words = append(words, string(unicode.ToUpper(r))+p[size:])
	}
	return strings.Join(words, " ")
}
