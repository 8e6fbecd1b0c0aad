package validate_test

import (
	"strings"
	"testing"

	"lyricist/internal/validate"
)

func TestSanitizeQuery(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{name: "plain", raw: "Queen - Bohemian Rhapsody", want: "Queen - Bohemian Rhapsody", wantOK: true},
		{name: "trims and collapses", raw: "  queen \t\r\n  bohemian   rhapsody ", want: "queen bohemian rhapsody", wantOK: true},
		{name: "control chars become spaces", raw: "queen\x00bohemian\x07rhapsody", want: "queen bohemian rhapsody", wantOK: true},
		{name: "zero width removed", raw: "bohe\u200bmian\u200d rhap\ufeffsody", want: "bohemian rhapsody", wantOK: true},
		{name: "empty", raw: "   ", wantOK: false},
		{name: "only invisible", raw: "\u200b\ufeff", wantOK: false},
		{name: "field injection", raw: "artist: queen", wantOK: false},
		{name: "colon without space allowed", raw: "re:member", want: "re:member", wantOK: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := validate.SanitizeQuery(tc.raw)
			if ok != tc.wantOK {
				t.Fatalf("SanitizeQuery(%q) ok = %v, want %v", tc.raw, ok, tc.wantOK)
			}
			if got != tc.want {
				t.Fatalf("SanitizeQuery(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestSanitizeQueryTruncates(t *testing.T) {
	raw := strings.Repeat("é", validate.MaxQueryChars+50)
	got, ok := validate.SanitizeQuery(raw)
	if !ok {
		t.Fatal("expected long query to survive truncation")
	}
	if n := len([]rune(got)); n != validate.MaxQueryChars {
		t.Fatalf("expected %d runes, got %d", validate.MaxQueryChars, n)
	}
}

func TestSanitizeQueryIsIdempotent(t *testing.T) {
	inputs := []string{
		"Queen - Bohemian Rhapsody",
		"  a\tb\nc  ",
		"x\u200by",
		strings.Repeat("ab ", 200),
		strings.Repeat("word", 74) + "   tail",
		"/Queen-bohemian-rhapsody-lyrics",
	}
	for _, in := range inputs {
		once, ok := validate.SanitizeQuery(in)
		if !ok {
			continue
		}
		twice, ok := validate.SanitizeQuery(once)
		if !ok {
			t.Fatalf("second pass rejected %q", once)
		}
		if once != twice {
			t.Fatalf("not idempotent: %q -> %q", once, twice)
		}
	}
}

func TestSanitizeQueryRejectsFieldSeparator(t *testing.T) {
	for _, raw := range []string{"a: b", "title: x", "lyrics for song: name", "x :  y: z"} {
		if _, ok := validate.SanitizeQuery(raw); ok {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}

func TestSanitizeLyrics(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{name: "strips carriage returns", raw: "line one\r\nline two\r\n", want: "line one\nline two", wantOK: true},
		{name: "keeps tabs", raw: "a\tb", want: "a\tb", wantOK: true},
		{name: "control chars", raw: "a\x01b", want: "a b", wantOK: true},
		{name: "collapses blank runs", raw: "verse\n\n\n\n\n\n\nchorus", want: "verse\n\n\nchorus", wantOK: true},
		{name: "four newlines untouched", raw: "verse\n\n\n\nchorus", want: "verse\n\n\n\nchorus", wantOK: true},
		{name: "empty", raw: "\r\n  \n", wantOK: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := validate.SanitizeLyrics(tc.raw)
			if ok != tc.wantOK || got != tc.want {
				t.Fatalf("SanitizeLyrics(%q) = (%q, %v), want (%q, %v)", tc.raw, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestSanitizeLyricsTruncates(t *testing.T) {
	got, ok := validate.SanitizeLyrics(strings.Repeat("la", validate.MaxLyricsChars))
	if !ok {
		t.Fatal("expected lyrics")
	}
	if n := len([]rune(got)); n != validate.MaxLyricsChars {
		t.Fatalf("expected %d runes, got %d", validate.MaxLyricsChars, n)
	}
}
