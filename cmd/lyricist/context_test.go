package main

import (
	"context"
	"testing"

	"github.com/spf13/cobra"

	"lyricist/internal/lyrics"
	"lyricist/internal/store"
	"lyricist/internal/testsupport"
)

// searchRecorder records the fallback flag of each search and never matches.
type searchRecorder struct {
	fallbacks []bool
}

func (r *searchRecorder) FindPath(_ context.Context, _ string, allowArtistFallback bool) (string, error) {
	r.fallbacks = append(r.fallbacks, allowArtistFallback)
	return "", nil
}

func (r *searchRecorder) FetchText(context.Context, string) (string, error) {
	return "", nil
}

func TestResolveQueryPassesConfiguredArtistFallback(t *testing.T) {
	for _, allow := range []bool{true, false} {
		env := setupCLITestEnv(t, testsupport.WithArtistFallback(allow))
		configPath, level, jsonFlag := env.configPath, "", false
		cmdCtx := newCommandContext(&configPath, &level, &jsonFlag)
		cmd := &cobra.Command{}
		cmd.SetContext(context.Background())

		recorder := &searchRecorder{}
		err := cmdCtx.withStore(cmd, func(st *store.Store) error {
			svc, err := cmdCtx.newService(st, recorder)
			if err != nil {
				return err
			}
			result, err := cmdCtx.resolveQuery(cmd, svc, "Queen Bohemian Rhapsody")
			if err != nil {
				return err
			}
			if result.Outcome != lyrics.OutcomeNoMatch {
				t.Fatalf("allow=%t: expected no match, got %s", allow, result.Outcome)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("allow=%t: resolve: %v", allow, err)
		}
		if len(recorder.fallbacks) != 1 || recorder.fallbacks[0] != allow {
			t.Fatalf("allow=%t: resolver saw fallbacks %v", allow, recorder.fallbacks)
		}
	}
}

func TestLookupIgnoresForceRefresh(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithForceRefresh(true))
	st := testsupport.MustOpenStore(t, env.cfg)
	testsupport.MustUpsert(t, st, store.UpsertParams{
		Artist: "Abba", Title: "Waterloo", Path: "/Abba-waterloo-lyrics", Keywords: "abba waterloo", Lyrics: "My my",
	})

	out, _, err := runCLI(t, []string{"lookup", "Abba", "Waterloo"}, env.configPath)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	requireContains(t, out, "Abba - Waterloo")
}
