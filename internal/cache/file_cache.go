// Package cache holds the two caches used by the NS client: a file cache
// for raw HTTP responses shared between CLI invocations, and an in-memory
// TTL memo for decoded values such as the station list.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const entryExt = ".json"

// FileCache stores response bodies as JSON files, one per key, each with
// its own expiry.
type FileCache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

type fileEntry struct {
	Key       string    `json:"key"`
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewFileCache creates a file cache in dir, creating the directory if needed.
func NewFileCache(dir string, ttl time.Duration) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileCache{dir: dir, ttl: ttl, now: time.Now}, nil
}

// DefaultCacheDir returns $XDG_CACHE_HOME/spoor, falling back to
// ~/.cache/spoor and finally the system temp dir.
func DefaultCacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "spoor")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "spoor-cache")
	}
	return filepath.Join(home, ".cache", "spoor")
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string {
	return c.dir
}

func (c *FileCache) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+entryExt)
}

// Get returns the cached body for key. Expired or unreadable entries are
// removed and reported as a miss.
func (c *FileCache) Get(key string) ([]byte, bool) {
	name := c.path(key)
	entry, ok := c.read(name)
	if !ok || entry.Key != key {
		return nil, false
	}
	return entry.Data, true
}

// Set stores value under key using the cache's default TTL.
func (c *FileCache) Set(key string, value []byte) error {
	return c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key for ttl.
func (c *FileCache) SetWithTTL(key string, value []byte, ttl time.Duration) error {
	data, err := json.Marshal(fileEntry{
		Key:       key,
		Data:      value,
		ExpiresAt: c.now().Add(ttl),
	})
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	// Write to a temp file and rename so a concurrent reader never sees a
	// partial entry.
	tmp, err := os.CreateTemp(c.dir, "entry-*.tmp")
	if err != nil {
		return fmt.Errorf("create cache entry: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write cache entry: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write cache entry: %w", err)
	}
	return os.Rename(tmp.Name(), c.path(key))
}

// Delete removes key from the cache. Missing keys are not an error.
func (c *FileCache) Delete(key string) error {
	err := os.Remove(c.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Clear removes every entry.
func (c *FileCache) Clear() error {
	return c.walk(func(name string) {
		_ = os.Remove(name)
	})
}

// Cleanup removes expired and corrupt entries.
func (c *FileCache) Cleanup() error {
	return c.walk(func(name string) {
		c.read(name)
	})
}

func (c *FileCache) walk(fn func(name string)) error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != entryExt {
			continue
		}
		fn(filepath.Join(c.dir, e.Name()))
	}
	return nil
}

// read loads one entry file, deleting it when it is corrupt or expired.
func (c *FileCache) read(name string) (fileEntry, bool) {
	// #nosec G304 -- name is a hash inside the cache dir
	data, err := os.ReadFile(name)
	if err != nil {
		return fileEntry{}, false
	}
	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(name)
		return fileEntry{}, false
	}
	if c.now().After(entry.ExpiresAt) {
		_ = os.Remove(name)
		return fileEntry{}, false
	}
	return entry, true
}
