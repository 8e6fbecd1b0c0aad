package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"lyricist/internal/validate"
)

// FindByArtistTitle returns the first entry whose artist and title match
// case-insensitively, or nil when none does.
func (s *Store) FindByArtistTitle(ctx context.Context, artist, title string) (*Entry, error) {
	ctx = ensureContext(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM songs WHERE lower(artist) = ? AND lower(title) = ? LIMIT 1",
		strings.ToLower(artist), strings.ToLower(title),
	)
	return scanOptional(row, "find by artist/title")
}

// FindByPath returns the entry stored under path, or nil.
func (s *Store) FindByPath(ctx context.Context, path string) (*Entry, error) {
	ctx = ensureContext(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	return findByPath(ctx, s.db, path)
}

// GetByID returns the entry with the given id, or nil.
func (s *Store) GetByID(ctx context.Context, id int64) (*Entry, error) {
	ctx = ensureContext(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRowContext(ctx, "SELECT "+entryColumns+" FROM songs WHERE id = ?", id)
	return scanOptional(row, "get by id")
}

// Search returns up to limit entries whose artist, title, or keywords contain
// term, most recently updated first.
func (s *Store) Search(ctx context.Context, term string, limit int) ([]Entry, error) {
	ctx = ensureContext(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	like := likePattern(term)
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+entryColumns+` FROM songs
		WHERE lower(artist) LIKE ? ESCAPE '\' OR lower(title) LIKE ? ESCAPE '\' OR keywords LIKE ? ESCAPE '\'
		ORDER BY updated_at DESC, id DESC LIMIT ?`,
		like, like, like, sqlLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("search songs: %w", err)
	}
	return scanEntries(rows)
}

// List returns up to limit entries, most recently updated first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	ctx = ensureContext(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+entryColumns+" FROM songs ORDER BY updated_at DESC, id DESC LIMIT ?",
		sqlLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	return scanEntries(rows)
}

// MostRecentlyUpdated returns the entry with the greatest updated_at, or nil
// when the cache is empty.
func (s *Store) MostRecentlyUpdated(ctx context.Context) (*Entry, error) {
	ctx = ensureContext(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	return mostRecent(ctx, s.db)
}

// Upsert writes an entry keyed by path. An existing row for the path keeps
// its id and created_at; every other field and updated_at are replaced.
func (s *Store) Upsert(ctx context.Context, params UpsertParams) (*Entry, error) {
	ctx = ensureContext(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	var entry *Entry
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		entry, err = s.upsert(ctx, tx, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes the entry with the given id and reports whether a row existed.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	ctx = ensureContext(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	var affected int64
	err := retryOnBusy(ctx, func() error {
		res, err := s.db.ExecContext(ctx, "DELETE FROM songs WHERE id = ?", id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return false, fmt.Errorf("delete song %d: %w", id, err)
	}
	return affected > 0, nil
}

// Count returns the number of cached entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM songs").Scan(&count); err != nil {
		return 0, fmt.Errorf("count songs: %w", err)
	}
	return count, nil
}

func (s *Store) upsert(ctx context.Context, q queryer, params UpsertParams) (*Entry, error) {
	path := strings.TrimSpace(params.Path)
	if !validate.IsValidPath(path) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	lyrics, _ := validate.SanitizeLyrics(params.Lyrics)
	keywords := validate.NormalizeKeywords(params.Keywords)

	now, err := s.nextTimestamp(ctx, q)
	if err != nil {
		return nil, err
	}

	_, err = q.ExecContext(ctx, `INSERT INTO songs (artist, title, path, keywords, lyrics, source_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			artist = excluded.artist,
			title = excluded.title,
			keywords = excluded.keywords,
			lyrics = excluded.lyrics,
			source_url = excluded.source_url,
			updated_at = excluded.updated_at`,
		strings.TrimSpace(params.Artist),
		strings.TrimSpace(params.Title),
		path,
		keywords,
		lyrics,
		strings.TrimSpace(params.SourceURL),
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert song %s: %w", path, err)
	}

	entry, err := findByPath(ctx, q, path)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("upsert song %s: row missing after write", path)
	}
	return entry, nil
}

// nextTimestamp returns the wall clock in milliseconds, bumped past the
// newest updated_at in the table so successive writes always order strictly.
func (s *Store) nextTimestamp(ctx context.Context, q queryer) (int64, error) {
	now := s.clock().UnixMilli()
	var latest sql.NullInt64
	if err := q.QueryRowContext(ctx, "SELECT MAX(updated_at) FROM songs").Scan(&latest); err != nil {
		return 0, fmt.Errorf("read latest timestamp: %w", err)
	}
	if latest.Valid && now <= latest.Int64 {
		now = latest.Int64 + 1
	}
	return now, nil
}

func findByPath(ctx context.Context, q queryer, path string) (*Entry, error) {
	row := q.QueryRowContext(ctx, "SELECT "+entryColumns+" FROM songs WHERE path = ? LIMIT 1", path)
	return scanOptional(row, "find by path")
}

func mostRecent(ctx context.Context, q queryer) (*Entry, error) {
	row := q.QueryRowContext(ctx, "SELECT "+entryColumns+" FROM songs ORDER BY updated_at DESC, id DESC LIMIT 1")
	return scanOptional(row, "most recent")
}

func scanOptional(row *sql.Row, op string) (*Entry, error) {
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entry, nil
}
