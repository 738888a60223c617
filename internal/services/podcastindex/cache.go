package podcastindex

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Cache defines the interface for caching directory API responses
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
	Clear()
}

// MemoryCache implements an in-memory cache with TTL support
type MemoryCache struct {
	mu       sync.RWMutex
	items    map[string]*cacheItem
	stopChan chan struct{}
}

type cacheItem struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache() *MemoryCache {
	cache := &MemoryCache{
		items:    make(map[string]*cacheItem),
		stopChan: make(chan struct{}),
	}

	go cache.cleanup()

	return cache
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists {
		return nil, false
	}

	if time.Now().After(item.expiresAt) {
		return nil, false
	}

	return item.data, true
}

// Set stores a value in the cache with a TTL
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = &cacheItem{
		data:      value,
		expiresAt: time.Now().Add(ttl),
	}
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// Clear removes all items from the cache
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*cacheItem)
}

// Stop stops the cleanup goroutine
func (c *MemoryCache) Stop() {
	close(c.stopChan)
}

// cleanup periodically removes expired items from the cache
func (c *MemoryCache) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopChan:
			return
		}
	}
}

func (c *MemoryCache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, key)
		}
	}
}

// CachedClient wraps a Client, caching podcast metadata lookups. Episode
// lists are never cached: refresh passes must see the live feed.
type CachedClient struct {
	*Client
	cache    Cache
	cacheTTL time.Duration
}

// NewCachedClient creates a directory client with metadata caching
func NewCachedClient(cfg Config, cache Cache, cacheTTL time.Duration) *CachedClient {
	if cache == nil {
		cache = NewMemoryCache()
	}

	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}

	return &CachedClient{
		Client:   NewClient(cfg),
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// GetPodcastByFeedURL fetches podcast metadata with caching
func (c *CachedClient) GetPodcastByFeedURL(ctx context.Context, feedURL string) (*Podcast, error) {
	cacheKey := fmt.Sprintf("podcast:%s", feedURL)

	if data, found := c.cache.Get(cacheKey); found {
		var podcast Podcast
		if err := json.Unmarshal(data, &podcast); err == nil {
			return &podcast, nil
		}
	}

	podcast, err := c.Client.GetPodcastByFeedURL(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(podcast); err == nil {
		c.cache.Set(cacheKey, data, c.cacheTTL)
	}

	return podcast, nil
}

// ClearCache clears all cached items
func (c *CachedClient) ClearCache() {
	c.cache.Clear()
}

// Stop releases the cache's background cleanup goroutine, if it has one.
// The cache stays usable afterwards; expired entries simply linger.
func (c *CachedClient) Stop() {
	if stopper, ok := c.cache.(interface{ Stop() }); ok {
		stopper.Stop()
	}
}
