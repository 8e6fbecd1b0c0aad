package store

import (
	"database/sql"
	"strings"
	"time"
)

// Entry is one cached song. Timestamps are epoch milliseconds.
type Entry struct {
	ID        int64  `json:"id"`
	Artist    string `json:"artist"`
	Title     string `json:"title"`
	Path      string `json:"path"`
	Keywords  string `json:"keywords"`
	Lyrics    string `json:"lyrics"`
	SourceURL string `json:"source_url"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

// Created returns CreatedAt as a time.
func (e Entry) Created() time.Time { return time.UnixMilli(e.CreatedAt) }

// Updated returns UpdatedAt as a time.
func (e Entry) Updated() time.Time { return time.UnixMilli(e.UpdatedAt) }

// DisplayTitle renders "Artist - Title", or just the title when the artist
// is unknown.
func (e Entry) DisplayTitle() string {
	if strings.TrimSpace(e.Artist) == "" {
		return e.Title
	}
	return e.Artist + " - " + e.Title
}

// UpsertParams carries the fields written by Upsert and ReplaceMostRecent.
// Lyrics and Keywords are sanitized by the store before writing.
type UpsertParams struct {
	Artist    string
	Title     string
	Path      string
	Keywords  string
	Lyrics    string
	SourceURL string
}

const entryColumns = "id, artist, title, path, keywords, lyrics, source_url, created_at, updated_at"

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*Entry, error) {
	var (
		id        int64
		artist    sql.NullString
		title     sql.NullString
		path      sql.NullString
		keywords  sql.NullString
		lyrics    sql.NullString
		sourceURL sql.NullString
		createdAt sql.NullInt64
		updatedAt sql.NullInt64
	)
	if err := scanner.Scan(
		&id,
		&artist,
		&title,
		&path,
		&keywords,
		&lyrics,
		&sourceURL,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	return &Entry{
		ID:        id,
		Artist:    artist.String,
		Title:     title.String,
		Path:      path.String,
		Keywords:  keywords.String,
		Lyrics:    lyrics.String,
		SourceURL: sourceURL.String,
		CreatedAt: createdAt.Int64,
		UpdatedAt: updatedAt.Int64,
	}, nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a case-folded substring pattern with LIKE wildcards in
// term matched literally.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// sqlLimit maps a non-positive limit to SQLite's "no limit".
func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}
