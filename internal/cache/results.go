package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hyperifyio/digitruns/internal/numbers"
)

// Entry is one cached extraction result.
type Entry struct {
	Key     string           `json:"key"`
	Numbers []numbers.Number `json:"numbers"`
	Stats   numbers.Stats    `json:"stats"`
	SavedAt time.Time        `json:"saved_at"`
}

// ResultCache stores extraction results on disk as <key>.json where key is
// derived from the input bytes and the options that change the result.
// No size-based eviction; see PurgeByAge.
type ResultCache struct {
	Dir string
	// StrictPerms enforces 0700 on the directory and 0600 on files.
	StrictPerms bool
}

// Key digests input together with an options fingerprint.
func Key(input []byte, opts string) string {
	h := sha256.New()
	h.Write([]byte(opts))
	h.Write([]byte{0})
	h.Write(input)
	return hex.EncodeToString(h.Sum(nil))
}

func (c *ResultCache) ensureDir() error {
	if c == nil || c.Dir == "" {
		return errors.New("cache dir not configured")
	}
	perm := os.FileMode(0o755)
	if c.StrictPerms {
		perm = 0o700
	}
	if err := os.MkdirAll(c.Dir, perm); err != nil {
		return err
	}
	if c.StrictPerms {
		if info, err := os.Stat(c.Dir); err == nil && info.Mode()&0o777 != 0o700 {
			_ = os.Chmod(c.Dir, 0o700)
		}
	}
	return nil
}

func (c *ResultCache) pathFor(key string) string {
	return filepath.Join(c.Dir, key+".json")
}

// Load returns the entry for key. A missing entry yields an error matching
// os.ErrNotExist.
func (c *ResultCache) Load(_ context.Context, key string) (*Entry, error) {
	if err := c.ensureDir(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		return nil, err
	}
	var e Entry
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, fmt.Errorf("decode cache entry: %w", err)
	}
	return &e, nil
}

// Save writes e under key atomically via a temp file and rename.
func (c *ResultCache) Save(_ context.Context, key string, e Entry) error {
	if err := c.ensureDir(); err != nil {
		return err
	}
	e.Key = key
	if e.SavedAt.IsZero() {
		e.SavedAt = time.Now().UTC()
	}
	b, err := json.Marshal(&e)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	perm := os.FileMode(0o644)
	if c.StrictPerms {
		perm = 0o600
	}
	tmp := c.pathFor(key) + ".tmp"
	if err := os.WriteFile(tmp, b, perm); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return os.Rename(tmp, c.pathFor(key))
}
