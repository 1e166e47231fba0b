package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyperifyio/digitruns/internal/numbers"
)

func TestKey_DependsOnInputAndOptions(t *testing.T) {
	a := Key([]byte("A56B"), "text")
	if a != Key([]byte("A56B"), "text") {
		t.Fatalf("key must be deterministic")
	}
	if a == Key([]byte("A56B"), "html") {
		t.Fatalf("options must change the key")
	}
	if a == Key([]byte("A57B"), "text") {
		t.Fatalf("input must change the key")
	}
	if len(a) != 64 {
		t.Fatalf("expected hex sha256, got %q", a)
	}
}

func TestResultCache_SaveLoad(t *testing.T) {
	t.Parallel()
	c := &ResultCache{Dir: filepath.Join(t.TempDir(), "results")}
	key := Key([]byte("A56B455VB23GTY23J"), "text")
	want := numbers.Extract("A56B455VB23GTY23J")
	if err := c.Save(context.Background(), key, Entry{Numbers: want, Stats: numbers.Stats{Bytes: 17, Runs: 4, Distinct: 3}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	e, err := c.Load(context.Background(), key)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if e.Key != key || e.SavedAt.IsZero() {
		t.Fatalf("entry metadata not populated: %+v", e)
	}
	got := numbers.Strings(e.Numbers)
	if len(got) != 3 || got[0] != "23" || got[2] != "455" {
		t.Fatalf("round trip mismatch: %v", got)
	}
	if e.Stats.Runs != 4 {
		t.Fatalf("stats not preserved: %+v", e.Stats)
	}
}

func TestResultCache_Miss(t *testing.T) {
	t.Parallel()
	c := &ResultCache{Dir: t.TempDir()}
	if _, err := c.Load(context.Background(), "missing"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestResultCache_NotConfigured(t *testing.T) {
	var c *ResultCache
	if _, err := c.Load(context.Background(), "k"); err == nil {
		t.Fatalf("expected error for nil cache")
	}
}

func TestResultCache_StrictPerms(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "strict")
	c := &ResultCache{Dir: dir, StrictPerms: true}
	key := Key([]byte("1"), "")
	if err := c.Save(context.Background(), key, Entry{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat dir: %v", err)
	}
	if got := info.Mode() & 0o777; got != 0o700 {
		t.Fatalf("dir mode = %o, want 0700", got)
	}
	finfo, err := os.Stat(filepath.Join(dir, key+".json"))
	if err != nil {
		t.Fatalf("stat file: %v", err)
	}
	if got := finfo.Mode() & 0o777; got != 0o600 {
		t.Fatalf("file mode = %o, want 0600", got)
	}
}

func TestPurgeByAge(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	c := &ResultCache{Dir: dir}
	old := Key([]byte("old"), "")
	fresh := Key([]byte("fresh"), "")
	if err := c.Save(context.Background(), old, Entry{SavedAt: time.Now().Add(-48 * time.Hour)}); err != nil {
		t.Fatalf("save old: %v", err)
	}
	if err := c.Save(context.Background(), fresh, Entry{}); err != nil {
		t.Fatalf("save fresh: %v", err)
	}
	removed, err := PurgeByAge(dir, 24*time.Hour)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if _, err := c.Load(context.Background(), old); err == nil {
		t.Fatalf("expected old entry purged")
	}
	if _, err := c.Load(context.Background(), fresh); err != nil {
		t.Fatalf("fresh entry should remain: %v", err)
	}
}

func TestPurgeByAge_MissingDir(t *testing.T) {
	removed, err := PurgeByAge(filepath.Join(t.TempDir(), "nope"), time.Hour)
	if err != nil || removed != 0 {
		t.Fatalf("expected no-op for missing dir, got removed=%d err=%v", removed, err)
	}
}

func TestClearDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "x.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ClearDir(dir); err != nil {
		t.Fatalf("ClearDir: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected empty dir, got %d entries err=%v", len(entries), err)
	}
	if err := ClearDir(" "); err == nil {
		t.Fatalf("expected error for blank dir")
	}
}
