package thumb

import (
	"container/list"
	"image"
	"sync"
	"time"

	"github.com/justyntemme/foldergrid/internal/debug"
)

// CacheKey identifies one preview. A changed file gets a new key, so
// stale previews age out instead of being served.
type CacheKey struct {
	Path     string
	ModTime  int64 // UnixNano
	Size     int64
	IconSize int
}

// KeyFor builds the key of path at its current modification time and size.
func KeyFor(path string, modTime time.Time, size int64, iconSize int) CacheKey {
	return CacheKey{Path: path, ModTime: modTime.UnixNano(), Size: size, IconSize: iconSize}
}

// Cache is an in-memory LRU of previews. It lives for the process only.
type Cache struct {
	mu      sync.Mutex
	entries map[CacheKey]*list.Element
	lru     *list.List // front = most recent
	maxSize int
}

type cacheEntry struct {
	key CacheKey
	img image.Image
}

// NewCache creates a cache holding up to maxEntries previews.
func NewCache(maxEntries int) *Cache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &Cache{
		entries: make(map[CacheKey]*list.Element),
		lru:     list.New(),
		maxSize: maxEntries,
	}
}

// Get returns the cached preview for key and marks it recently used.
func (c *Cache) Get(key CacheKey) (image.Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.lru.MoveToFront(el)
	return el.Value.(*cacheEntry).img, true
}

// Put stores img under key, evicting the least recently used entries
// beyond capacity.
func (c *Cache) Put(key CacheKey, img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).img = img
		c.lru.MoveToFront(el)
		return
	}

	for c.lru.Len() >= c.maxSize {
		oldest := c.lru.Back()
		if oldest == nil {
			break
		}
		old := oldest.Value.(*cacheEntry)
		delete(c.entries, old.key)
		c.lru.Remove(oldest)
		debug.Log(debug.THUMB, "cache: evicted %s", old.key.Path)
	}
	c.entries[key] = c.lru.PushFront(&cacheEntry{key: key, img: img})
}

// Len returns the number of cached previews.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[CacheKey]*list.Element)
	c.lru.Init()
	debug.Log(debug.THUMB, "cache: cleared")
}
