package recurrence

import (
	"sort"
	"sync"
	"time"
)

// cacheEntry represents one cached generation result
type cacheEntry struct {
	dates      []time.Time
	expiresAt  time.Time
	accessedAt time.Time
}

// PreviewCache caches generated occurrence sequences keyed by configuration
// fingerprint. It lets callers that regenerate on every edit (typical for
// reactive UIs) skip recomputing configurations they have already seen.
type PreviewCache struct {
	entries         map[string]*cacheEntry
	mutex           sync.RWMutex
	ttl             time.Duration
	maxEntries      int
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
}

// CacheConfig holds configuration for the preview cache
type CacheConfig struct {
	TTL             time.Duration // How long entries stay valid
	MaxEntries      int           // Maximum number of entries before eviction
	CleanupInterval time.Duration // How often to sweep expired entries
}

// DefaultCacheConfig provides sensible defaults for preview caching
var DefaultCacheConfig = CacheConfig{
	TTL:             15 * time.Minute,
	MaxEntries:      1000,
	CleanupInterval: 5 * time.Minute,
}

// NewPreviewCache creates a preview cache with the given configuration and
// starts its cleanup goroutine. Call Close when done.
func NewPreviewCache(config CacheConfig) *PreviewCache {
	if config.TTL <= 0 {
		config.TTL = DefaultCacheConfig.TTL
	}
	if config.MaxEntries <= 0 {
		config.MaxEntries = DefaultCacheConfig.MaxEntries
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = DefaultCacheConfig.CleanupInterval
	}

	cache := &PreviewCache{
		entries:         make(map[string]*cacheEntry),
		ttl:             config.TTL,
		maxEntries:      config.MaxEntries,
		cleanupInterval: config.CleanupInterval,
		stopCleanup:     make(chan struct{}),
	}

	go cache.cleanupLoop()

	return cache
}

// Get retrieves cached dates for a configuration fingerprint if present and
// not expired
func (c *PreviewCache) Get(key string) ([]time.Time, bool) {
	c.mutex.RLock()
	entry, exists := c.entries[key]
	c.mutex.RUnlock()

	if !exists {
		return nil, false
	}

	now := time.Now()
	if now.After(entry.expiresAt) {
		c.mutex.Lock()
		delete(c.entries, key)
		c.mutex.Unlock()
		return nil, false
	}

	c.mutex.Lock()
	entry.accessedAt = now
	c.mutex.Unlock()

	return entry.dates, true
}

// Set stores generated dates under a configuration fingerprint
func (c *PreviewCache) Set(key string, dates []time.Time) {
	now := time.Now()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = &cacheEntry{
		dates:      dates,
		expiresAt:  now.Add(c.ttl),
		accessedAt: now,
	}

	if len(c.entries) > c.maxEntries {
		c.evict()
	}
}

// evict removes expired entries, then least recently accessed entries until
// under the limit. Caller must hold the write lock.
func (c *PreviewCache) evict() {
	now := time.Now()

	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}

	if len(c.entries) <= c.maxEntries {
		return
	}

	type keyAccess struct {
		key        string
		accessedAt time.Time
	}
	victims := make([]keyAccess, 0, len(c.entries))
	for key, entry := range c.entries {
		victims = append(victims, keyAccess{key: key, accessedAt: entry.accessedAt})
	}
	sort.Slice(victims, func(i, j int) bool {
		return victims[i].accessedAt.Before(victims[j].accessedAt)
	})

	toRemove := len(c.entries) - c.maxEntries
	for i := 0; i < toRemove && i < len(victims); i++ {
		delete(c.entries, victims[i].key)
	}
}

// cleanupLoop runs periodic cleanup until Close is called
func (c *PreviewCache) cleanupLoop() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mutex.Lock()
			c.evict()
			c.mutex.Unlock()
		case <-c.stopCleanup:
			return
		}
	}
}

// Close stops the cleanup goroutine and clears the cache
func (c *PreviewCache) Close() {
	close(c.stopCleanup)
	c.mutex.Lock()
	c.entries = make(map[string]*cacheEntry)
	c.mutex.Unlock()
}

// Stats returns cache statistics
func (c *PreviewCache) Stats() CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	now := time.Now()
	expired := 0
	for _, entry := range c.entries {
		if now.After(entry.expiresAt) {
			expired++
		}
	}

	return CacheStats{
		TotalEntries:   len(c.entries),
		ExpiredEntries: expired,
		ActiveEntries:  len(c.entries) - expired,
	}
}

// CacheStats provides information about cache contents
type CacheStats struct {
	TotalEntries   int
	ExpiredEntries int
	ActiveEntries  int
}
