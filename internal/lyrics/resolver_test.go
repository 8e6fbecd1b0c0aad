package lyrics_test

import (
	"context"
	"testing"
	"time"

	"lyricist/internal/lyrics"
)

type recordingLimiter struct {
	flags []bool
}

func (l *recordingLimiter) Acquire(_ context.Context, burstEligible bool) time.Duration {
	l.flags = append(l.flags, burstEligible)
	return 0
}

func TestLimitedResolverPacesSearchesAndFetches(t *testing.T) {
	inner := newFakeResolver()
	inner.paths["abba waterloo"] = "/Abba-waterloo-lyrics"
	inner.texts["/Abba-waterloo-lyrics"] = "My my"
	limiter := &recordingLimiter{}
	resolver := lyrics.NewLimitedResolver(inner, limiter)

	path, err := resolver.FindPath(context.Background(), "abba waterloo", false)
	if err != nil || path != "/Abba-waterloo-lyrics" {
		t.Fatalf("FindPath = %q, %v", path, err)
	}
	text, err := resolver.FetchText(context.Background(), path)
	if err != nil || text != "My my" {
		t.Fatalf("FetchText = %q, %v", text, err)
	}
	if len(limiter.flags) != 2 || limiter.flags[0] || !limiter.flags[1] {
		t.Fatalf("expected search then burst fetch, got %v", limiter.flags)
	}
}

func TestLimitedResolverWithoutLimiter(t *testing.T) {
	inner := newFakeResolver()
	inner.texts["/Abba-waterloo-lyrics"] = "My my"
	resolver := lyrics.NewLimitedResolver(inner, nil)

	text, err := resolver.FetchText(context.Background(), "/Abba-waterloo-lyrics")
	if err != nil || text != "My my" {
		t.Fatalf("FetchText = %q, %v", text, err)
	}
}

func TestServiceThroughLimitedResolver(t *testing.T) {
	inner := newFakeResolver()
	inner.paths["Abba Waterloo"] = "/Abba-waterloo-lyrics"
	inner.texts["/Abba-waterloo-lyrics"] = "My my"
	limiter := &recordingLimiter{}
	svc, _ := newService(t, lyrics.NewLimitedResolver(inner, limiter))

	if _, ok := svc.Resolve(context.Background(), "Abba Waterloo", false); !ok {
		t.Fatal("expected an entry")
	}
	if _, ok := svc.Resolve(context.Background(), "Abba Waterloo", false); !ok {
		t.Fatal("expected a cache hit")
	}
	if len(limiter.flags) != 2 {
		t.Fatalf("cache hits must not touch the limiter, got %v", limiter.flags)
	}
}
