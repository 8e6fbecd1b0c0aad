package validate_test

import (
	"testing"

	"lyricist/internal/validate"
)

func TestIsValidPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/Queen-bohemian-rhapsody-lyrics", true},
		{"/queen-bohemian-rhapsody-LYRICS", true},
		{"/Queen-bohemian-rhapsody-lyrics/", true},
		{"  /Queen-bohemian-rhapsody-lyrics  ", true},
		{"/albums/queen/a.night-at_the-opera-lyrics", true},
		{"/-lyrics", true},
		{"Queen-bohemian-rhapsody-lyrics", false},
		{"/Queen-bohemian-rhapsody", false},
		{"/Queen-bohemian-rhapsody-lyrics?x=1", false},
		{"/Queen bohemian-lyrics", false},
		{"/Beyoncé-halo-lyrics", false},
		{"https://genius.com/Queen-bohemian-rhapsody-lyrics", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := validate.IsValidPath(tc.path); got != tc.want {
			t.Errorf("IsValidPath(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://genius.com/Queen-bohemian-rhapsody-lyrics", true},
		{"http://www.genius.com/Queen-bohemian-rhapsody-lyrics/", true},
		{"genius.com/Queen-bohemian-rhapsody-lyrics", true},
		{"HTTPS://GENIUS.COM/Queen-bohemian-rhapsody-lyrics", true},
		{"https://example.com/Queen-bohemian-rhapsody-lyrics", false},
		{"https://genius.com/Queen-bohemian-rhapsody", false},
		{"ftp://genius.com/Queen-bohemian-rhapsody-lyrics", false},
	}
	for _, tc := range tests {
		if got := validate.IsValidURL(tc.url); got != tc.want {
			t.Errorf("IsValidURL(%q) = %v, want %v", tc.url, got, tc.want)
		}
	}
}

func TestExtractPath(t *testing.T) {
	tests := []struct {
		url    string
		want   string
		wantOK bool
	}{
		{"https://genius.com/Artist-song-lyrics", "/Artist-song-lyrics", true},
		{"genius.com/Artist-song-lyrics", "/Artist-song-lyrics", true},
		{"https://www.genius.com/albums/x/Artist-song-lyrics", "/albums/x/Artist-song-lyrics", true},
		{"/Artist-song-lyrics", "/Artist-song-lyrics", true},
		{"https://genius.com/Artist-song-lyrics/", "", false},
		{"https://genius.com/Artist-song", "", false},
		{"https://example.com/Artist-song-lyrics", "", false},
		{"Artist-song-lyrics", "", false},
	}
	for _, tc := range tests {
		got, ok := validate.ExtractPath(tc.url)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("ExtractPath(%q) = (%q, %v), want (%q, %v)", tc.url, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestSourceURL(t *testing.T) {
	if got := validate.SourceURL("/Artist-song-lyrics"); got != "https://genius.com/Artist-song-lyrics" {
		t.Fatalf("unexpected source url %q", got)
	}
}
