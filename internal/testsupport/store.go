package testsupport

import (
	"context"
	"testing"

	"lyricist/internal/config"
	"lyricist/internal/store"
)

// MustOpenStore opens the cache database named by cfg and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config, opts ...store.Option) *store.Store {
	t.Helper()

	st, err := store.Open(context.Background(), cfg.Paths.CacheDB, nil, opts...)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

// MustUpsert writes an entry for tests and fails the test on error.
func MustUpsert(t testing.TB, st *store.Store, params store.UpsertParams) *store.Entry {
	t.Helper()

	entry, err := st.Upsert(context.Background(), params)
	if err != nil {
		t.Fatalf("store.Upsert(%s): %v", params.Path, err)
	}
	return entry
}
