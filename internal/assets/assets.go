// Package assets locates, caches and decodes viewer resources.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Manager reads resource files from a root directory.
// Loaded bytes are cached; it is safe for concurrent use.
type Manager struct {
	root  string
	cache *Cache
}

// NewManager creates a manager rooted at dir.
func NewManager(dir string) *Manager {
	return &Manager{
		root:  dir,
		cache: NewCache(),
	}
}

// Root returns the resource directory.
func (m *Manager) Root() string {
	return m.root
}

// Path resolves a slash-separated resource name to a file path.
func (m *Manager) Path(name string) string {
	return filepath.Join(m.root, filepath.FromSlash(name))
}

// Exists reports whether the named resource is a regular file.
func (m *Manager) Exists(name string) bool {
	info, err := os.Stat(m.Path(name))
	return err == nil && info.Mode().IsRegular()
}

// Load reads a resource. Missing files wrap ErrMissingFile.
func (m *Manager) Load(name string) ([]byte, error) {
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	data, err := os.ReadFile(m.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingFile, name)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	m.cache.Set(name, data)
	return data, nil
}

// Stats returns cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Close drops cached data.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	// Stats
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
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
