package caching

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

// ErrCacheBusy is returned by Clear when another process holds the run lock.
var ErrCacheBusy = errors.New("cache is in use by a running enrichment")

const lockFileName = ".lock"

// Store is a best-effort key/value table of JSON documents.
// Get never fails: anything unreadable is a miss. Set never fails either.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

// Load decodes the value stored under key into v.
// A missing entry or one that does not decode into v is reported as a miss.
func Load(s Store, key string, v any) bool {
	data, ok := s.Get(key)
	if !ok {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// Save encodes v and stores it under key. Encoding errors are dropped.
func Save(s Store, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.Set(key, data)
}

// DiskCache is a file-per-key cache. Entries never expire.
type DiskCache struct {
	path   string
	logger *slog.Logger
}

var _ Store = (*DiskCache)(nil)

// NewDiskCache creates a DiskCache rooted at path, creating the directory.
func NewDiskCache(path string, logger *slog.Logger) (*DiskCache, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DiskCache{path: path, logger: logger}, nil
}

// Path returns the cache directory.
func (c *DiskCache) Path() string {
	return c.path
}

// key generates a SHA256 hash of the cache key to use as a filename.
func (c *DiskCache) key(key string) string {
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x.json", hash)
}

// Get retrieves an item from the cache.
func (c *DiskCache) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(filepath.Join(c.path, c.key(key)))
	if err != nil {
		return nil, false
	}
	if !json.Valid(data) {
		c.logger.Debug("ignoring corrupt cache entry", "key", key)
		return nil, false
	}
	return data, true
}

// Set adds an item to the cache. Write failures are logged and dropped.
func (c *DiskCache) Set(key string, value []byte) {
	filePath := filepath.Join(c.path, c.key(key))
	if err := os.WriteFile(filePath, value, 0644); err != nil {
		c.logger.Debug("failed to write to cache", "key", key, "error", err)
	}
}

// Stats describes the cache contents.
type Stats struct {
	Entries   int
	SizeBytes int64
}

func (c *DiskCache) entries() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(c.path, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list cache entries: %w", err)
	}
	return matches, nil
}

// Stats counts entries and their total size.
func (c *DiskCache) Stats() (Stats, error) {
	var st Stats
	files, err := c.entries()
	if err != nil {
		return st, err
	}
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			continue
		}
		st.Entries++
		st.SizeBytes += info.Size()
	}
	return st, nil
}

// Clear removes every entry. It refuses while an enrichment run holds the lock.
func (c *DiskCache) Clear() (int, error) {
	lock := flock.New(filepath.Join(c.path, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return 0, fmt.Errorf("failed to lock cache: %w", err)
	}
	if !ok {
		return 0, ErrCacheBusy
	}
	defer func() { _ = lock.Unlock() }()

	files, err := c.entries()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, f := range files {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("failed to remove cache entry: %w", err)
		}
		removed++
	}
	return removed, nil
}

// LockShared marks the cache as in use by a run. Several runs may share it;
// it only keeps Clear out. The returned func releases the lock.
func (c *DiskCache) LockShared() (func(), error) {
	lock := flock.New(filepath.Join(c.path, lockFileName))
	if err := lock.RLock(); err != nil {
		return nil, fmt.Errorf("failed to lock cache: %w", err)
	}
	return func() { _ = lock.Unlock() }, nil
}

// MemoryCache is an in-process Store, used by tests and --no-cache runs.
type MemoryCache struct {
	mu sync.RWMutex
	m  map[string][]byte
}

var _ Store = (*MemoryCache)(nil)

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{m: make(map[string][]byte)}
}

func (c *MemoryCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), v...), true
}

func (c *MemoryCache) Set(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = append([]byte(nil), value...)
}

// Len reports the number of stored entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
