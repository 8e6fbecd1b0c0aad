package lyrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"lyricist/internal/logging"
	"lyricist/internal/services"
	"lyricist/internal/store"
	"lyricist/internal/validate"
)

// Cache is the subset of store.Store the service reads and writes.
type Cache interface {
	FindByPath(ctx context.Context, path string) (*store.Entry, error)
	FindByArtistTitle(ctx context.Context, artist, title string) (*store.Entry, error)
	Search(ctx context.Context, term string, limit int) ([]store.Entry, error)
	MostRecentlyUpdated(ctx context.Context) (*store.Entry, error)
	Upsert(ctx context.Context, params store.UpsertParams) (*store.Entry, error)
	ReplaceMostRecent(ctx context.Context, params store.UpsertParams) (*store.Entry, error)
}

const (
	opResolve    = "resolve"
	opResolveURL = "resolve_url"
	opCorrect    = "correct"
)

// Service resolves queries against the cache and the resolver.
type Service struct {
	cache        Cache
	resolver     Resolver
	logger       *slog.Logger
	forceRefresh bool
	clock        func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logging.NewComponentLogger(logger, "lyrics")
	}
}

// WithForceRefresh makes Resolve skip cached lookups and always ask the
// resolver.
func WithForceRefresh(force bool) Option {
	return func(s *Service) {
		s.forceRefresh = force
	}
}

// WithClock overrides the clock used to time calls.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewService wires a service around cache and resolver. A nil resolver
// limits the service to cached lookups.
func NewService(cache Cache, resolver Resolver, opts ...Option) *Service {
	s := &Service{
		cache:    cache,
		resolver: resolver,
		logger:   logging.NewComponentLogger(nil, "lyrics"),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve returns lyrics for a free-text query, from the cache when possible.
func (s *Service) Resolve(ctx context.Context, rawQuery string, allowArtistFallback bool) (*store.Entry, bool) {
	result, _ := s.ResolveDetailed(ctx, rawQuery, allowArtistFallback)
	return result.Entry, result.Outcome.Found()
}

// ResolveByURL fetches and caches the lyrics at a source URL.
func (s *Service) ResolveByURL(ctx context.Context, url string) (*store.Entry, bool) {
	result, _ := s.ResolveURLDetailed(ctx, url)
	return result.Entry, result.Outcome.Found()
}

// CorrectMostRecentByURL fetches the lyrics at url and substitutes them for
// the most recently updated entry.
func (s *Service) CorrectMostRecentByURL(ctx context.Context, url string) (*store.Entry, bool) {
	result, _ := s.CorrectDetailed(ctx, url)
	return result.Entry, result.Outcome.Found()
}

// ResolveDetailed is Resolve with the outcome, strategy, and the underlying
// error exposed.
func (s *Service) ResolveDetailed(ctx context.Context, rawQuery string, allowArtistFallback bool) (result Result, err error) {
	ctx, logger, start := s.begin(ctx, opResolve)
	result.RequestID = requestID(ctx)
	defer func() { s.finish(logger, &result, err, start) }()

	query, ok := validate.SanitizeQuery(rawQuery)
	if !ok {
		result.Outcome = OutcomeInvalidQuery
		return result, nil
	}
	result.Query = query

	if !s.forceRefresh {
		entry, strategy, lookupErr := s.CachedLookup(ctx, query)
		switch {
		case lookupErr != nil:
			logging.WarnWithContext(logger, "cached lookup failed", "cache_lookup_failed",
				logging.String("strategy", string(strategy)),
				logging.Error(lookupErr),
				logging.String(logging.FieldErrorHint, "check the cache database with 'lyricist stats'"),
				logging.String(logging.FieldImpact, "falling back to the resolver"),
			)
		case entry != nil:
			result.Entry = entry
			result.Outcome = OutcomeCacheHit
			result.Strategy = strategy
			return result, nil
		}
	}

	if s.resolver == nil {
		result.Outcome = OutcomeNoMatch
		return result, nil
	}
	path, err := s.resolver.FindPath(ctx, query, allowArtistFallback)
	if err != nil {
		result.Outcome = OutcomeFetchFailed
		return result, services.Wrap(services.ErrTransient, "lyrics", "find path", "resolver search failed", err)
	}
	path = strings.TrimSpace(path)
	if path == "" || !validate.IsValidPath(path) {
		logger.Debug("resolver returned no usable path", logging.String("path", path))
		result.Outcome = OutcomeNoMatch
		return result, nil
	}

	artist, title, slug := DeriveNames(path)
	err = s.fetchAndStore(ctx, &result, false, store.UpsertParams{
		Artist:    artist,
		Title:     title,
		Path:      path,
		Keywords:  BuildKeywords(query, slug, artist, title),
		SourceURL: validate.SourceURL(path),
	})
	return result, err
}

// ResolveURLDetailed is ResolveByURL with the outcome and error exposed.
func (s *Service) ResolveURLDetailed(ctx context.Context, url string) (Result, error) {
	return s.fetchURL(ctx, opResolveURL, url, false)
}

// CorrectDetailed is CorrectMostRecentByURL with the outcome and error exposed.
func (s *Service) CorrectDetailed(ctx context.Context, url string) (Result, error) {
	return s.fetchURL(ctx, opCorrect, url, true)
}

// fetchURL skips the resolver search because the URL already names the path.
// With replace set, the write supersedes the most recent entry.
func (s *Service) fetchURL(ctx context.Context, op, url string, replace bool) (result Result, err error) {
	ctx, logger, start := s.begin(ctx, op)
	url = strings.TrimSpace(url)
	result.RequestID = requestID(ctx)
	result.Query = url
	defer func() { s.finish(logger, &result, err, start) }()

	path, ok := validate.ExtractPath(url)
	if !ok || !validate.IsValidPath(path) {
		result.Outcome = OutcomeInvalidQuery
		return result, nil
	}
	if s.resolver == nil {
		result.Outcome = OutcomeNoMatch
		return result, nil
	}

	artist, title, slug := DeriveNames(path)
	err = s.fetchAndStore(ctx, &result, replace, store.UpsertParams{
		Artist:    artist,
		Title:     title,
		Path:      path,
		Keywords:  BuildKeywords(url, slug, artist, title),
		SourceURL: url,
	})
	return result, err
}

// fetchAndStore fetches lyrics for params.Path and writes the entry.
func (s *Service) fetchAndStore(ctx context.Context, result *Result, replace bool, params store.UpsertParams) error {
	text, err := s.resolver.FetchText(ctx, params.Path)
	if err != nil {
		result.Outcome = OutcomeFetchFailed
		return services.Wrap(services.ErrTransient, "lyrics", "fetch text", "resolver fetch failed", err)
	}
	// Text that sanitizes to nothing is a failed fetch: nothing is written
	// and nothing is replaced.
	lyricsText, ok := validate.SanitizeLyrics(text)
	if !ok {
		result.Outcome = OutcomeFetchFailed
		return nil
	}
	params.Lyrics = lyricsText

	var entry *store.Entry
	if replace {
		entry, err = s.cache.ReplaceMostRecent(ctx, params)
	} else {
		entry, err = s.cache.Upsert(ctx, params)
	}
	if err != nil {
		result.Outcome = OutcomeStoreFailed
		marker := services.ErrStorage
		if errors.Is(err, services.ErrValidation) {
			marker = services.ErrValidation
		}
		return services.Wrap(marker, "lyrics", "store entry", fmt.Sprintf("write %s", params.Path), err)
	}
	result.Entry = entry
	result.Outcome = OutcomeFetched
	return nil
}

func (s *Service) begin(ctx context.Context, op string) (context.Context, *slog.Logger, time.Time) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := services.RequestIDFromContext(ctx); !ok {
		ctx = services.WithRequestID(ctx, uuid.NewString())
	}
	ctx = services.WithOperation(ctx, op)
	return ctx, logging.WithContext(ctx, s.logger), s.clock()
}

func (s *Service) finish(logger *slog.Logger, result *Result, err error, start time.Time) {
	result.Elapsed = s.clock().Sub(start)
	attrs := []logging.Attr{
		logging.String("outcome", result.Outcome.String()),
		logging.String("query", result.Query),
		logging.Duration("elapsed", result.Elapsed),
	}
	if result.Strategy != StrategyNone {
		attrs = append(attrs, logging.DecisionAttrs("cache_strategy", string(result.Strategy), "first matching lookup step")...)
	}
	if result.Entry != nil {
		attrs = append(attrs,
			logging.Int64("entry_id", result.Entry.ID),
			logging.String("path", result.Entry.Path),
		)
	}
	if err != nil {
		attrs = append(attrs, logging.Error(err), logging.String("error_kind", services.ErrorKind(err)))
	}

	switch {
	case result.Outcome == OutcomeFetchFailed || result.Outcome == OutcomeStoreFailed:
		logging.WarnWithContext(logger, "lyrics unavailable", "lyrics_"+result.Outcome.String(),
			append(attrs, logging.String(logging.FieldImpact, "caller receives no lyrics"))...)
	case result.Outcome.Found():
		logger.Info("lyrics resolved", logging.Args(attrs...)...)
	default:
		logger.Info("no lyrics found", logging.Args(attrs...)...)
	}
}

func requestID(ctx context.Context) string {
	id, _ := services.RequestIDFromContext(ctx)
	return id
}
