// Package pagecache holds short-lived copies of rendered pages whose
// content is expensive to assemble but shared across users, such as the
// public home page and chapter listings.
//
// Entries expire on their own; mutations that change what a page would
// render (feature gate rule changes, offering publishes) call Invalidate
// to drop stale copies early.
package pagecache

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// Defaults applied when New is given zero values.
const (
	DefaultSize = 256
	DefaultTTL  = 2 * time.Minute
)

// Entry is one cached page.
type Entry struct {
	Body        []byte
	ContentType string
	RenderedAt  time.Time
}

// Cache is a bounded, expiring page cache keyed by request path.
// Safe for concurrent use.
type Cache struct {
	mu  sync.Mutex
	lru *expirable.LRU[string, Entry]
	log *zap.Logger

	hits   uint64
	misses uint64
}

// New builds a Cache. size<=0 and ttl<=0 fall back to the defaults.
func New(size int, ttl time.Duration, log *zap.Logger) *Cache {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		lru: expirable.NewLRU[string, Entry](size, nil, ttl),
		log: log,
	}
}

// Get returns the cached entry for path.
func (c *Cache) Get(path string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.lru.Get(path)
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return entry, ok
}

// Set stores a rendered page. The body is copied so callers may reuse
// their buffer.
func (c *Cache) Set(path, contentType string, body []byte) {
	entry := Entry{
		Body:        append([]byte(nil), body...),
		ContentType: contentType,
		RenderedAt:  time.Now(),
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(path, entry)
}

// Invalidate drops the entries for the given paths. Unknown paths are
// ignored.
func (c *Cache) Invalidate(paths ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for _, p := range paths {
		if c.lru.Remove(p) {
			removed++
		}
	}
	if removed > 0 && c.log != nil {
		c.log.Debug("page cache invalidated",
			zap.Int("removed", removed),
			zap.Strings("paths", paths))
	}
}

// Purge drops everything.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
}

// Stats reports hit and miss counts since startup.
func (c *Cache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
