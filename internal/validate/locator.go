package validate

import (
	"regexp"
	"strings"
)

const (
	// PathSuffix terminates every resolver locator.
	PathSuffix = "-lyrics"
	// SourceHost is the host whose URLs carry resolver locators.
	SourceHost = "genius.com"
	// SourceBaseURL prefixes a locator to form its attributable source URL.
	SourceBaseURL = "https://" + SourceHost
)

var (
	pathPattern = regexp.MustCompile(`(?i)^/[-a-z0-9_/.]*?-lyrics/?$`)
	urlPattern  = regexp.MustCompile(`(?i)^(https?://)?(www\.)?genius\.com/[-a-z0-9_/.]*?-lyrics/?$`)
)

// IsValidPath reports whether path is a bare resolver locator such as
// "/Queen-bohemian-rhapsody-lyrics".
func IsValidPath(path string) bool {
	return pathPattern.MatchString(strings.TrimSpace(path))
}

// IsValidURL reports whether url is a full source URL wrapping a valid
// locator. The scheme and "www." prefix are optional.
func IsValidURL(url string) bool {
	return urlPattern.MatchString(strings.TrimSpace(url))
}

// ExtractPath pulls the locator out of a source URL. A bare locator is
// returned unchanged. Extraction fails when the remainder does not end in
// PathSuffix.
func ExtractPath(url string) (string, bool) {
	if idx := strings.Index(url, SourceHost+"/"); idx >= 0 {
		path := url[idx+len(SourceHost):]
		if !strings.HasSuffix(path, PathSuffix) {
			return "", false
		}
		return path, true
	}
	if strings.HasPrefix(url, "/") && strings.HasSuffix(url, PathSuffix) {
		return url, true
	}
	return "", false
}

// SourceURL builds the attributable URL for a locator.
func SourceURL(path string) string {
	return SourceBaseURL + path
}
