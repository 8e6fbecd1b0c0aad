package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"lyricist/internal/logging"
	"lyricist/internal/validate"
)

// CorrectMostRecent re-points the most recently updated entry at newURL. The
// previous artist and title are kept, newURL is appended to the keywords so
// the entry stays findable under both identities, and newLyrics replaces the
// stored text unless it sanitizes to nothing. When no locator can be
// extracted from newURL the previous path is reused.
func (s *Store) CorrectMostRecent(ctx context.Context, newURL, newLyrics string) (*Entry, error) {
	ctx = ensureContext(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	var entry *Entry
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		prev, err := mostRecent(ctx, tx)
		if err != nil {
			return err
		}
		if prev == nil {
			return ErrNothingToCorrect
		}

		path, ok := validate.ExtractPath(newURL)
		if !ok {
			path = prev.Path
		}
		if !validate.IsValidPath(path) {
			return fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
		lyrics, ok := validate.SanitizeLyrics(newLyrics)
		if !ok {
			lyrics = prev.Lyrics
		}

		entry, err = s.upsert(ctx, tx, UpsertParams{
			Artist:    prev.Artist,
			Title:     prev.Title,
			Path:      path,
			Keywords:  strings.ToLower(prev.Keywords + " " + newURL),
			Lyrics:    lyrics,
			SourceURL: newURL,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ReplaceMostRecent upserts params and then deletes the entry that was most
// recent beforehand, provided it is a different row under a different path.
// The capture, write, and delete commit together.
func (s *Store) ReplaceMostRecent(ctx context.Context, params UpsertParams) (*Entry, error) {
	ctx = ensureContext(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		entry      *Entry
		replacedID int64
	)
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		replacedID = 0
		prev, err := mostRecent(ctx, tx)
		if err != nil {
			return err
		}
		entry, err = s.upsert(ctx, tx, params)
		if err != nil {
			return err
		}
		if prev == nil || prev.ID == entry.ID || prev.Path == entry.Path {
			return nil
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM songs WHERE id = ?", prev.ID); err != nil {
			return fmt.Errorf("delete superseded song %d: %w", prev.ID, err)
		}
		replacedID = prev.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	if replacedID != 0 {
		s.logger.Info("replaced most recent entry",
			logging.Int64("replaced_id", replacedID),
			logging.Int64("entry_id", entry.ID),
			logging.String("path", entry.Path),
		)
	}
	return entry, nil
}
