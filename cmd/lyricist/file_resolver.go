package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"lyricist/internal/validate"
)

// fileResolver serves lyrics for one known path from a local file. It never
// searches, so only the URL flows of the lyrics service can use it.
type fileResolver struct {
	path string
	file string
}

func newFileResolver(url, file string) (*fileResolver, error) {
	path, ok := validate.ExtractPath(url)
	if !ok {
		return nil, fmt.Errorf("%q is not a lyrics URL", url)
	}
	if strings.TrimSpace(file) == "" {
		return nil, fmt.Errorf("a lyrics file is required")
	}
	return &fileResolver{path: path, file: file}, nil
}

func (r *fileResolver) FindPath(context.Context, string, bool) (string, error) {
	return "", nil
}

func (r *fileResolver) FetchText(_ context.Context, path string) (string, error) {
	if path != r.path {
		return "", nil
	}
	data, err := os.ReadFile(r.file)
	if err != nil {
		return "", fmt.Errorf("read lyrics file: %w", err)
	}
	return string(data), nil
}

// normalizeLyricsURL accepts URLs without a scheme and rejects anything that
// is not a lyrics page on the source host.
func normalizeLyricsURL(raw string) (string, error) {
	url := strings.TrimSpace(raw)
	if url == "" {
		return "", fmt.Errorf("a %s lyrics URL is required", validate.SourceHost)
	}
	if !strings.Contains(url, validate.SourceHost) {
		return "", fmt.Errorf("provide a valid %s lyrics URL", validate.SourceHost)
	}
	if !strings.HasPrefix(url, "http") {
		url = "https://" + url
	}
	if !validate.IsValidURL(url) {
		return "", fmt.Errorf("%q doesn't look like a valid lyrics URL", url)
	}
	return url, nil
}
