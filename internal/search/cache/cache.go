// Package cache holds live provider result sets for a short TTL and
// collapses concurrent fetches of the same query into one provider call.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/alex-user-go/tripsearch/internal/search/types"
)

// Cache is an in-memory TTL cache with request collapsing.
type Cache struct {
	mu       sync.RWMutex
	entries  map[string]*cacheEntry
	ttl      time.Duration
	inflight map[string]*inflightRequest
	done     chan struct{}
}

type cacheEntry struct {
	rs        *types.ResultSet
	expiresAt time.Time
}

type inflightRequest struct {
	done chan struct{}
	rs   *types.ResultSet
	err  error
}

// NewCache creates a new Cache with the specified TTL.
func NewCache(ttl time.Duration) *Cache {
	c := &Cache{
		entries:  make(map[string]*cacheEntry),
		ttl:      ttl,
		inflight: make(map[string]*inflightRequest),
		done:     make(chan struct{}),
	}

	go c.cleanup(min(ttl, time.Minute))

	return c
}

// Close stops the background cleanup goroutine.
func (c *Cache) Close() {
	close(c.done)
}

// Len returns the number of stored entries, expired ones included until the
// next sweep.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetOrFetch returns the cached set for key or runs fetch. Callers arriving
// while a fetch for key is in flight wait for it instead of fetching again.
// Only non-nil, error-free results are stored. The boolean reports a hit.
//
// Returned sets are shared between callers and must not be modified.
func (c *Cache) GetOrFetch(ctx context.Context, key string, fetch func() (*types.ResultSet, error)) (*types.ResultSet, bool, error) {
	c.mu.Lock()

	if entry, ok := c.entries[key]; ok && time.Now().Before(entry.expiresAt) {
		c.mu.Unlock()
		return entry.rs, true, nil
	}

	if inflight, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		select {
		case <-inflight.done:
			return inflight.rs, false, inflight.err
		case <-ctx.Done():
			return nil, false, context.Cause(ctx)
		}
	}

	inflight := &inflightRequest{done: make(chan struct{})}
	c.inflight[key] = inflight
	c.mu.Unlock()

	rs, err := fetch()

	c.mu.Lock()
	inflight.rs = rs
	inflight.err = err
	if err == nil && rs != nil && c.ttl > 0 {
		c.entries[key] = &cacheEntry{
			rs:        rs,
			expiresAt: time.Now().Add(c.ttl),
		}
	}
	delete(c.inflight, key)
	c.mu.Unlock()

	close(inflight.done)

	return rs, false, err
}

func (c *Cache) cleanup(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.entries {
				if now.After(entry.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		case <-c.done:
			return
		}
	}
}
