package cache

import (
	"sync"
	"time"
)

// Item represents a cached sample with expiration
type Item struct {
	Value      interface{}
	Expiration int64
}

// Cache is a thread-safe in-memory cache with a default TTL
type Cache struct {
	items map[string]Item
	mu    sync.RWMutex
	ttl   time.Duration
}

// New creates a new cache with the specified default TTL
func New(ttl time.Duration) *Cache {
	return &Cache{
		items: make(map[string]Item),
		ttl:   ttl,
	}
}

// Set stores a value in the cache with the default TTL
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = Item{
		Value:      value,
		Expiration: time.Now().Add(c.ttl).UnixNano(),
	}
}

// Get retrieves a value from the cache
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, found := c.items[key]
	if !found {
		return nil, false
	}

	if time.Now().UnixNano() > item.Expiration {
		return nil, false
	}

	return item.Value, true
}

// GetOrSet retrieves a value from cache or sets it using the provided function
func (c *Cache) GetOrSet(key string, fn func() (interface{}, error)) (interface{}, error) {
	if value, found := c.Get(key); found {
		return value, nil
	}

	value, err := fn()
	if err != nil {
		return nil, err
	}

	c.Set(key, value)
	return value, nil
}

// Delete removes a value from the cache
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// Sample cache keys for readings shared between report sections
const (
	KeyVirtualMemory = "sample:vm"
	KeyCores         = "sample:cores"
	KeyLoad          = "sample:load"
)

// SampleCache holds system readings for the lifetime of one report, so
// sections that reuse a sample (core count, load average) do not trigger
// a second read of the same source.
type SampleCache struct {
	*Cache
}

// NewSampleCache creates a cache sized for a single report run
func NewSampleCache() *SampleCache {
	return &SampleCache{
		Cache: New(time.Minute),
	}
}
