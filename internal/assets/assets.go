// Package assets loads asset files from a stack of sources with caching.
package assets

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/blockforge/internal/logger"
	"github.com/Faultbox/blockforge/pkg/assetpack"
)

// ErrNotFound is returned when no source holds a path.
var ErrNotFound = errors.New("assets: file not found")

// Manager reads files from directories and archives. Sources are searched
// in reverse order, so the last one added overrides earlier ones.
type Manager struct {
	sources []assetpack.Source
	cache   *Cache
	mu      sync.RWMutex
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddPath opens a directory or zip archive and adds it as a source.
func (m *Manager) AddPath(path string) error {
	src, err := assetpack.Open(path)
	if err != nil {
		return fmt.Errorf("adding source %s: %w", path, err)
	}
	m.AddSource(src)
	logger.Info("asset source added", zap.String("path", path), zap.Int("files", len(src.List())))
	return nil
}

// AddSource adds an opened source with the highest priority.
func (m *Manager) AddSource(src assetpack.Source) {
	m.mu.Lock()
	m.sources = append(m.sources, src)
	m.mu.Unlock()
}

// Sources returns the number of sources.
func (m *Manager) Sources() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sources)
}

// Load returns the contents of path from the highest-priority source
// holding it.
func (m *Manager) Load(path string) ([]byte, error) {
	key := assetpack.NormalizePath(path)
	if data, ok := m.cache.Get(key); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.sources) - 1; i >= 0; i-- {
		src := m.sources[i]
		if !src.Contains(path) {
			continue
		}
		data, err := src.Read(path)
		if err != nil {
			return nil, err
		}
		m.cache.Set(key, data)
		return data, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
}

// Exists reports whether any source holds path.
func (m *Manager) Exists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, src := range m.sources {
		if src.Contains(path) {
			return true
		}
	}
	return false
}

// List returns the distinct paths under prefix across all sources, sorted.
// An empty prefix lists everything.
func (m *Manager) List(prefix string) []string {
	prefix = assetpack.NormalizePath(prefix)

	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for i := len(m.sources) - 1; i >= 0; i-- {
		for _, p := range m.sources[i].List() {
			key := assetpack.NormalizePath(p)
			if seen[key] || !strings.HasPrefix(key, prefix) {
				continue
			}
			seen[key] = true
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// Close closes all sources and clears the cache.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var err error
	for _, src := range m.sources {
		err = multierr.Append(err, src.Close())
	}
	m.sources = nil
	m.cache.Clear()
	return err
}

// CacheStats returns cache hits and misses.
func (m *Manager) CacheStats() (hits, misses int) {
	return m.cache.Stats()
}

// Cache is an in-memory byte cache keyed by normalized path.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
