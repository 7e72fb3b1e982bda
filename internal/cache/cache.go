package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// Entry is a cached value with its insertion time.
type Entry struct {
	Value     string
	Timestamp time.Time
}

// Cache is a bounded TTL cache. Eviction follows insertion order: reads never
// refresh an entry's position, so when full the oldest-inserted key goes.
// Re-setting an existing key counts as a fresh insertion.
//
// Safe for concurrent use. Two callers that miss on the same key may both
// populate it; the last write wins.
type Cache struct {
	mu  sync.Mutex
	lru *simplelru.LRU[string, Entry]
	ttl time.Duration
	now func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates a cache holding at most maxSize entries for ttl each.
func New(maxSize int, ttl time.Duration, opts ...Option) (*Cache, error) {
	lru, err := simplelru.NewLRU[string, Entry](maxSize, nil)
	if err != nil {
		return nil, fmt.Errorf("new cache (size %d): %w", maxSize, err)
	}
	c := &Cache{lru: lru, ttl: ttl, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Get returns the value for key if it is younger than the TTL. Expired
// entries are removed on the way out.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.lru.Peek(key)
	if !ok {
		return "", false
	}
	if c.now().Sub(e.Timestamp) >= c.ttl {
		c.lru.Remove(key)
		return "", false
	}
	return e.Value, true
}

// Set stores value under key, evicting the oldest-inserted entry if full.
func (c *Cache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Remove(key)
	c.lru.Add(key, Entry{Value: value, Timestamp: c.now()})
}

// Len counts stored entries, expired ones included until they are read.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Contains reports whether key is physically stored, ignoring the TTL.
func (c *Cache) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Contains(key)
}
