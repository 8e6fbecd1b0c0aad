package validate_test

import (
	"testing"

	"lyricist/internal/validate"
)

func TestNormalizeKeywords(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Queen - Bohemian Rhapsody", "queen bohemian rhapsody"},
		{"  AC/DC: Back-in_Black!! ", "ac dc back in black"},
		{"https://genius.com/Artist-song-lyrics", "https genius com artist song lyrics"},
		{"Beyoncé", "beyonc"},
		{"---", ""},
		{"", ""},
	}
	for _, tc := range tests {
		if got := validate.NormalizeKeywords(tc.in); got != tc.want {
			t.Errorf("NormalizeKeywords(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if got := validate.NormalizeForMatch(tc.in); got != tc.want {
			t.Errorf("NormalizeForMatch(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
