// Package cache provides the URL-keyed response cache used by name
// resolution. It layers a TTL-based in-memory cache (patrickmn/go-cache)
// over an optional on-disk store, so a response cached in one process
// survives into the next. Keys are the exact request URL: requests that
// differ only in mirror order still share entries per distinct URL.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/gilleslandais/astropy/pkg/constants"
	"github.com/gilleslandais/astropy/pkg/errors"
)

// Store is a URL-keyed byte cache with a memory layer and an optional
// persistent directory.
type Store struct {
	mem *gocache.Cache
	dir string
}

// New creates a store. dir may be empty for a memory-only cache; when set,
// the directory is created and every Set also writes a file there.
func New(dir string, ttl, cleanupInterval time.Duration) (*Store, error) {
	if ttl <= 0 {
		ttl = constants.DefaultCacheTTL
	}
	if cleanupInterval <= 0 {
		cleanupInterval = constants.DefaultCacheCleanupInterval
	}
	if dir != "" {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return nil, errors.WrapIO("create", dir, err)
		}
	}
	return &Store{
		mem: gocache.New(ttl, cleanupInterval),
		dir: dir,
	}, nil
}

// Get returns the cached body for url, consulting memory first and falling
// back to the persistent directory. A disk hit repopulates memory.
func (s *Store) Get(url string) ([]byte, bool) {
	key := cacheKey(url)

	if v, found := s.mem.Get(key); found {
		if body, ok := v.([]byte); ok {
			return body, true
		}
	}

	if s.dir == "" {
		return nil, false
	}
	body, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}
	s.mem.Set(key, body, gocache.DefaultExpiration)
	return body, true
}

// Set stores a body under url in memory and, when configured, on disk.
func (s *Store) Set(url string, body []byte) error {
	key := cacheKey(url)
	s.mem.Set(key, body, gocache.DefaultExpiration)

	if s.dir == "" {
		return nil
	}
	path := s.path(key)
	if err := os.WriteFile(path, body, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// Clear removes all entries from memory and the persistent directory.
func (s *Store) Clear() error {
	s.mem.Flush()
	if s.dir == "" {
		return nil
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return errors.WrapIO("read", s.dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".dat" {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			return errors.WrapIO("delete", entry.Name(), err)
		}
	}
	return nil
}

// ItemCount returns the number of entries in the memory layer.
func (s *Store) ItemCount() int {
	return s.mem.ItemCount()
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".dat")
}

// cacheKey hashes the URL so it is safe as a filename.
func cacheKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}
