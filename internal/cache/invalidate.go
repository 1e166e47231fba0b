package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ClearDir removes the directory and all contents, then recreates it empty.
func ClearDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return errors.New("empty dir")
	}
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

// PurgeByAge removes entries whose SavedAt is older than maxAge. Entries that
// cannot be decoded fall back to file modification time. A missing directory
// is not an error.
func PurgeByAge(dir string, maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		return 0, nil
	}
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	now := time.Now().UTC()
	removed := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		saved, ok := savedAt(path)
		if !ok {
			info, err := d.Info()
			if err != nil {
				return nil
			}
			saved = info.ModTime().UTC()
		}
		if now.Sub(saved) <= maxAge {
			return nil
		}
		removed++
		_ = os.Remove(path)
		return nil
	})
	return removed, err
}

func savedAt(path string) (time.Time, bool) {
	b, err := os.ReadFile(path)
	if err != nil {
		return time.Time{}, false
	}
	var e struct {
		SavedAt time.Time `json:"saved_at"`
	}
	if err := json.Unmarshal(b, &e); err != nil || e.SavedAt.IsZero() {
		return time.Time{}, false
	}
	return e.SavedAt, true
}
