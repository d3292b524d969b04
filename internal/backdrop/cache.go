package backdrop

import (
	"image"
	"path/filepath"
	"sync"
)

// Resolver resolves a backdrop path to a decoded frame.
type Resolver interface {
	Resolve(path string) (*image.NRGBA, error)
}

// Cache is a concurrency-safe frame cache, so batch workers rendering
// several scenes over the same frame decode it once.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
}

type cacheEntry struct {
	img *image.NRGBA
	err error
}

func NewCache() *Cache {
	return &Cache{items: make(map[string]*cacheEntry)}
}

// Resolve loads and caches a frame. Failed loads are cached too.
func (c *Cache) Resolve(path string) (*image.NRGBA, error) {
	key := filepath.Clean(path)

	// Fast path: read lock
	c.mu.RLock()
	if entry, ok := c.items[key]; ok {
		c.mu.RUnlock()
		return entry.img, entry.err
	}
	c.mu.RUnlock()

	img, err := Load(key)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.items[key]; ok {
		return entry.img, entry.err
	}
	c.items[key] = &cacheEntry{img: img, err: err}
	return img, err
}

// Len returns the number of cached paths.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
