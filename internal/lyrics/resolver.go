package lyrics

import (
	"context"
	"time"
)

// Resolver finds and fetches lyrics from the external source. An empty
// result and an error both mean "no data".
type Resolver interface {
	FindPath(ctx context.Context, query string, allowArtistFallback bool) (string, error)
	FetchText(ctx context.Context, path string) (string, error)
}

// Limiter paces resolver calls. ratelimit.Limiter satisfies it.
type Limiter interface {
	Acquire(ctx context.Context, burstEligible bool) time.Duration
}

// LimitedResolver acquires the limiter before every call to the wrapped
// resolver. Searches wait out the full interval; fetches are burst-eligible
// because they follow a search as part of the same request.
type LimitedResolver struct {
	next    Resolver
	limiter Limiter
}

// NewLimitedResolver wraps next. A nil limiter passes calls straight through.
func NewLimitedResolver(next Resolver, limiter Limiter) *LimitedResolver {
	return &LimitedResolver{next: next, limiter: limiter}
}

func (r *LimitedResolver) FindPath(ctx context.Context, query string, allowArtistFallback bool) (string, error) {
	if r.limiter != nil {
		r.limiter.Acquire(ctx, false)
	}
	return r.next.FindPath(ctx, query, allowArtistFallback)
}

func (r *LimitedResolver) FetchText(ctx context.Context, path string) (string, error) {
	if r.limiter != nil {
		r.limiter.Acquire(ctx, true)
	}
	return r.next.FetchText(ctx, path)
}
