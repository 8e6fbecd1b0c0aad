package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lyricist/internal/store"
	"lyricist/internal/testsupport"
)

func TestAddLookupAndShow(t *testing.T) {
	env := setupCLITestEnv(t)
	lyricsFile := testsupport.WriteFile(t, filepath.Join(env.baseDir, "waterloo.txt"), "My my\r\nAt Waterloo Napoleon did surrender\n")

	out, _, err := runCLI(t, []string{"add", "--url", "genius.com/Abba-waterloo-lyrics", "--file", lyricsFile}, env.configPath)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	requireContains(t, out, "Cached https://genius.com/Abba-waterloo-lyrics")

	out, _, err = runCLI(t, []string{"lookup", "Abba", "Waterloo"}, env.configPath)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	requireContains(t, out, "Matched by artist/title split")
	requireContains(t, out, "Abba - Waterloo")

	out, _, err = runCLI(t, []string{"show", "/Abba-waterloo-lyrics"}, env.configPath)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	requireContains(t, out, "At Waterloo Napoleon did surrender")
	if strings.Contains(out, "\r") {
		t.Fatalf("expected carriage returns to be stripped, got %q", out)
	}
}

func TestLookupJSONMiss(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"--json", "lookup", "nothing", "cached"}, env.configPath)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	var payload lookupOutput
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if payload.Entry != nil || payload.Query != "nothing cached" {
		t.Fatalf("unexpected payload %#v", payload)
	}
}

func TestLookupRejectsInvalidQuery(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"lookup", "artist:", "queen"}, env.configPath); err == nil {
		t.Fatal("expected invalid query to fail")
	}
}

func TestCorrectReplacesMostRecent(t *testing.T) {
	env := setupCLITestEnv(t)
	wrong := testsupport.WriteFile(t, filepath.Join(env.baseDir, "wrong.txt"), "wrong words")
	right := testsupport.WriteFile(t, filepath.Join(env.baseDir, "right.txt"), "right words")

	if _, _, err := runCLI(t, []string{"add", "-u", "https://genius.com/Wrong-song-lyrics", "-f", wrong}, env.configPath); err != nil {
		t.Fatalf("add: %v", err)
	}
	out, _, err := runCLI(t, []string{"correct", "-u", "https://genius.com/Right-song-lyrics", "-f", right}, env.configPath)
	if err != nil {
		t.Fatalf("correct: %v", err)
	}
	requireContains(t, out, "Updated lyrics cache to use https://genius.com/Right-song-lyrics")

	out, _, err = runCLI(t, []string{"--json", "recent"}, env.configPath)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	var entries []store.Entry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(entries) != 1 || entries[0].Path != "/Right-song-lyrics" || entries[0].Lyrics != "right words" {
		t.Fatalf("expected only the corrected entry, got %#v", entries)
	}
}

func TestCorrectRejectsForeignURL(t *testing.T) {
	env := setupCLITestEnv(t)
	file := testsupport.WriteFile(t, filepath.Join(env.baseDir, "x.txt"), "x")

	_, _, err := runCLI(t, []string{"correct", "-u", "https://example.com/Song-lyrics", "-f", file}, env.configPath)
	if err == nil {
		t.Fatal("expected foreign URL to be rejected")
	}
	requireContains(t, err.Error(), "genius.com")
}

func TestAddFailsWithEmptyFile(t *testing.T) {
	env := setupCLITestEnv(t)
	empty := testsupport.WriteFile(t, filepath.Join(env.baseDir, "empty.txt"), "  \n")

	_, _, err := runCLI(t, []string{"add", "-u", "https://genius.com/Abba-waterloo-lyrics", "-f", empty}, env.configPath)
	if err == nil {
		t.Fatal("expected empty lyrics to fail")
	}
	requireContains(t, err.Error(), "fetch_failed")
}

func TestAmendKeepsNamesAndAppendsURL(t *testing.T) {
	env := setupCLITestEnv(t)
	st := testsupport.MustOpenStore(t, env.cfg)
	testsupport.MustUpsert(t, st, store.UpsertParams{
		Artist: "Abba", Title: "Waterloo", Path: "/Abba-waterloo-lyrics", Keywords: "abba waterloo", Lyrics: "L0",
	})

	out, _, err := runCLI(t, []string{"amend", "--url", "https://genius.com/Abba-waterloo-live-lyrics"}, env.configPath)
	if err != nil {
		t.Fatalf("amend: %v", err)
	}
	requireContains(t, out, "Amended Abba - Waterloo")

	entry, err := st.FindByPath(context.Background(), "/Abba-waterloo-live-lyrics")
	if err != nil || entry == nil {
		t.Fatalf("expected amended entry, got %#v (%v)", entry, err)
	}
	if entry.Lyrics != "L0" || entry.Artist != "Abba" {
		t.Fatalf("unexpected amended entry %#v", entry)
	}
	requireContains(t, entry.Keywords, "abba waterloo")
	requireContains(t, entry.Keywords, "waterloo live lyrics")
}

func TestAmendEmptyCache(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"amend", "--url", "https://genius.com/Abba-waterloo-lyrics"}, env.configPath)
	if err == nil {
		t.Fatal("expected amend on empty cache to fail")
	}
	requireContains(t, err.Error(), "nothing to amend")
}

func TestSearchDeleteAndStats(t *testing.T) {
	env := setupCLITestEnv(t)
	st := testsupport.MustOpenStore(t, env.cfg)
	testsupport.MustUpsert(t, st, store.UpsertParams{Artist: "Abba", Title: "Waterloo", Path: "/Abba-waterloo-lyrics", Lyrics: "My my"})
	entry := testsupport.MustUpsert(t, st, store.UpsertParams{Artist: "Abba", Title: "Dancing Queen", Path: "/Abba-dancing-queen-lyrics", Lyrics: "You can dance"})

	out, _, err := runCLI(t, []string{"search", "abba"}, env.configPath)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "2\tAbba\tDancing Queen") {
		t.Fatalf("unexpected search output %q", out)
	}

	out, _, err = runCLI(t, []string{"delete", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	requireContains(t, out, "Deleted Abba - Dancing Queen")
	if got, _ := st.GetByID(context.Background(), entry.ID); got != nil {
		t.Fatalf("expected entry %d to be removed", entry.ID)
	}

	out, _, err = runCLI(t, []string{"--json", "stats"}, env.configPath)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	var payload statsOutput
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if payload.Stats.Entries != 1 || !payload.Health.IntegrityCheck || payload.Health.SchemaVersion != 1 {
		t.Fatalf("unexpected stats %#v", payload)
	}

	out, _, err = runCLI(t, []string{"search", "nomatch"}, env.configPath)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	requireContains(t, out, "No cached entries match")
}

func TestShowMissingEntry(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"show", "42"}, env.configPath); err == nil {
		t.Fatal("expected missing entry to fail")
	}
}

func TestThrottleRecordsTimestamp(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithRateLimit(10, 2500))

	out, _, err := runCLI(t, []string{"--json", "throttle"}, env.configPath)
	if err != nil {
		t.Fatalf("throttle: %v", err)
	}
	var payload throttleOutput
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if payload.LockPath != env.cfg.RateLimit.LockPath || payload.IntervalMs != 10 || payload.LastCallMs <= 0 {
		t.Fatalf("unexpected throttle payload %#v", payload)
	}
	if _, err := os.Stat(env.cfg.RateLimit.LockPath); err != nil {
		t.Fatalf("expected lock file: %v", err)
	}
}

func TestThrottleDisabled(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"throttle"}, env.configPath)
	if err != nil {
		t.Fatalf("throttle: %v", err)
	}
	requireContains(t, out, "Rate limiting disabled")
}

func TestConfigInitAndShow(t *testing.T) {
	env := setupCLITestEnv(t)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected existing config to be preserved")
	}

	out, _, err = runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "[rate_limit]")
	requireContains(t, out, env.cfg.Paths.CacheDB)
}
