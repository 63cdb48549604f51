package filecache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Jatinprajapati7869/gitpulse/core"
)

const cacheSubdir = "cache"
const cacheFileSuffix = "_contributions.json"

// Store keeps one pretty-printed JSON calendar per username under
// <dataDir>/cache. Freshness is judged entirely by the file's mtime against
// the TTL; content is never inspected until the file qualifies as fresh.
// Individual file operations rely on the filesystem's own atomicity; there
// is no cross-process locking, so concurrent writers for the same username
// race and the last one wins.
type Store struct {
	dir string
	ttl time.Duration
}

func New(dataDir string, ttl time.Duration) (*Store, error) {
	dataDir = strings.TrimSpace(dataDir)
	if dataDir == "" {
		return nil, fmt.Errorf("filecache: data dir is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("filecache: ttl must be positive")
	}
	return &Store{
		dir: filepath.Join(dataDir, cacheSubdir),
		ttl: ttl,
	}, nil
}

// Dir returns the cache directory the store writes under.
func (s *Store) Dir() string {
	if s == nil {
		return ""
	}
	return s.dir
}

// Path returns the deterministic cache file path for a username. The
// username is embedded in the file name so no two users share a file.
func (s *Store) Path(username string) string {
	if s == nil {
		return ""
	}
	return filepath.Join(s.dir, strings.TrimSpace(username)+cacheFileSuffix)
}

// Probe classifies the cache file for a username as fresh, stale, absent, or
// corrupt, returning the parsed days only for a fresh file. A stat or read
// failure other than absence is reported as an error; callers treat every
// non-fresh outcome as a miss.
func (s *Store) Probe(_ context.Context, username string) (core.CacheProbe, error) {
	if s == nil {
		return core.CacheProbe{State: core.CacheAbsent}, fmt.Errorf("filecache: store is not configured")
	}
	path := s.Path(username)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return core.CacheProbe{State: core.CacheAbsent}, nil
		}
		return core.CacheProbe{State: core.CacheAbsent}, fmt.Errorf("filecache: stat %s: %w", path, err)
	}
	if time.Since(info.ModTime()) > s.ttl {
		return core.CacheProbe{State: core.CacheStale}, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return core.CacheProbe{State: core.CacheAbsent}, fmt.Errorf("filecache: read %s: %w", path, err)
	}
	var days []core.ContributionDay
	if err := json.Unmarshal(content, &days); err != nil || days == nil {
		// Invalid JSON and a literal null body are both misses, never an
		// error: the live fetch rewrites the file.
		return core.CacheProbe{State: core.CacheCorrupt}, nil
	}
	return core.CacheProbe{State: core.CacheFresh, Days: days}, nil
}

// Write persists the flattened calendar, creating the cache directory as
// needed. The file is overwritten wholesale on every successful refresh.
func (s *Store) Write(_ context.Context, username string, days []core.ContributionDay) error {
	if s == nil {
		return fmt.Errorf("filecache: store is not configured")
	}
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("filecache: username is required")
	}
	if days == nil {
		days = []core.ContributionDay{}
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("filecache: create cache dir %s: %w", s.dir, err)
	}
	content, err := json.MarshalIndent(days, "", "  ")
	if err != nil {
		return fmt.Errorf("filecache: encode calendar for %s: %w", username, err)
	}
	path := s.Path(username)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("filecache: write %s: %w", path, err)
	}
	return nil
}

// Clear removes the whole cache directory and recreates it empty.
func (s *Store) Clear(_ context.Context) error {
	if s == nil {
		return fmt.Errorf("filecache: store is not configured")
	}
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("filecache: remove cache dir %s: %w", s.dir, err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("filecache: recreate cache dir %s: %w", s.dir, err)
	}
	return nil
}

var _ core.CacheStore = (*Store)(nil)
