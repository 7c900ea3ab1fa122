// Package service contains the business logic for the bar bending schedule service.
package service

import (
	"encoding/binary"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/guttosm/bbs-service/internal/metrics"
	"github.com/guttosm/bbs-service/internal/service/cache"
)

// ShardedCache spreads schedules across independently locked LRU shards.
// Keys are uniformly distributed digests, so the leading key bytes pick the shard.
type ShardedCache struct {
	shards    []*ttlCache
	numShards int
	shardMask uint32
}

// NewShardedCache creates a sharded cache with the total capacity and TTL.
// numShards is rounded up to a power of two; zero or less selects 16.
func NewShardedCache(capacity int, ttl time.Duration, numShards int) *ShardedCache {
	if numShards <= 0 {
		numShards = 16
	}
	n := 1
	for n < numShards {
		n <<= 1
	}

	perShard := capacity / n
	if perShard < 1 {
		perShard = 1
	}

	shards := make([]*ttlCache, n)
	for i := range shards {
		shards[i] = newTTLCache(perShard, ttl)
	}
	return &ShardedCache{shards: shards, numShards: n, shardMask: uint32(n - 1)}
}

func (sc *ShardedCache) shard(key cache.Key) *ttlCache {
	return sc.shards[binary.BigEndian.Uint32(key[:4])&sc.shardMask]
}

// Get retrieves a schedule from its shard.
func (sc *ShardedCache) Get(key cache.Key) (*model.Schedule, bool) {
	return sc.shard(key).Get(key)
}

// Set stores a schedule in its shard.
func (sc *ShardedCache) Set(key cache.Key, value *model.Schedule) {
	sc.shard(key).Set(key, value)
}

// Invalidate removes a key from its shard.
func (sc *ShardedCache) Invalidate(key cache.Key) {
	sc.shard(key).Invalidate(key)
}

// Clear empties every shard.
func (sc *ShardedCache) Clear() {
	for _, s := range sc.shards {
		s.Clear()
	}
}

// Stop shuts down the cleanup goroutine of every shard.
func (sc *ShardedCache) Stop() {
	for _, s := range sc.shards {
		s.Stop()
	}
}

// Metrics sums the metrics of all shards.
func (sc *ShardedCache) Metrics() cache.Metrics {
	var total cache.Metrics
	for _, s := range sc.shards {
		m := s.Metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	return total
}

// ttlCache is a thread-safe LRU cache whose entries also expire after a TTL.
type ttlCache struct {
	mu        sync.Mutex
	capacity  int
	ttl       time.Duration
	items     map[cache.Key]*cacheEntry
	head      *cacheEntry
	tail      *cacheEntry
	stopCh    chan struct{}
	stopOnce  sync.Once
	hits      int64
	misses    int64
	evictions int64
}

type cacheEntry struct {
	key       cache.Key
	value     *model.Schedule
	expiresAt time.Time
	prev      *cacheEntry
	next      *cacheEntry
}

// newTTLCache creates a cache and starts its periodic cleanup.
func newTTLCache(capacity int, ttl time.Duration) *ttlCache {
	c := &ttlCache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[cache.Key]*cacheEntry, capacity),
		stopCh:   make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (c *ttlCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

// Metrics returns current cache performance metrics.
func (c *ttlCache) Metrics() cache.Metrics {
	c.mu.Lock()
	size := len(c.items)
	c.mu.Unlock()

	return cache.Metrics{
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Evictions: atomic.LoadInt64(&c.evictions),
		Size:      size,
		Capacity:  c.capacity,
	}
}

// Get returns a live entry and marks it most recently used.
func (c *ttlCache) Get(key cache.Key) (*model.Schedule, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[key]
	if !ok {
		atomic.AddInt64(&c.misses, 1)
		metrics.RecordCacheOperation("get", "miss")
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.removeEntry(entry)
		atomic.AddInt64(&c.misses, 1)
		metrics.RecordCacheOperation("get", "expired")
		return nil, false
	}

	c.moveToFront(entry)
	atomic.AddInt64(&c.hits, 1)
	metrics.RecordCacheOperation("get", "hit")
	return entry.value, true
}

// Set adds or refreshes an entry, evicting the least recently used one when full.
func (c *ttlCache) Set(key cache.Key, value *model.Schedule) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expires := time.Now().Add(c.ttl)
	if entry, ok := c.items[key]; ok {
		entry.value = value
		entry.expiresAt = expires
		c.moveToFront(entry)
		return
	}

	entry := &cacheEntry{key: key, value: value, expiresAt: expires}
	c.items[key] = entry
	c.pushFront(entry)

	if len(c.items) > c.capacity && c.tail != nil {
		c.removeEntry(c.tail)
		atomic.AddInt64(&c.evictions, 1)
		metrics.RecordCacheOperation("evict", "capacity")
	}
	metrics.RecordCacheOperation("set", "success")
}

// Invalidate removes a specific key.
func (c *ttlCache) Invalidate(key cache.Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.items[key]; ok {
		c.removeEntry(entry)
		metrics.RecordCacheOperation("invalidate", "success")
	}
}

// Clear drops every entry and resets the counters.
func (c *ttlCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[cache.Key]*cacheEntry, c.capacity)
	c.head, c.tail = nil, nil
	atomic.StoreInt64(&c.hits, 0)
	atomic.StoreInt64(&c.misses, 0)
	atomic.StoreInt64(&c.evictions, 0)
	metrics.RecordCacheOperation("clear", "success")
}

func (c *ttlCache) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopCh:
			return
		}
	}
}

func (c *ttlCache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for _, entry := range c.items {
		if now.After(entry.expiresAt) {
			c.removeEntry(entry)
		}
	}
}

func (c *ttlCache) removeEntry(entry *cacheEntry) {
	delete(c.items, entry.key)
	c.unlink(entry)
}

func (c *ttlCache) moveToFront(entry *cacheEntry) {
	if entry == c.head {
		return
	}
	c.unlink(entry)
	c.pushFront(entry)
}

func (c *ttlCache) pushFront(entry *cacheEntry) {
	entry.prev = nil
	entry.next = c.head
	if c.head != nil {
		c.head.prev = entry
	}
	c.head = entry
	if c.tail == nil {
		c.tail = entry
	}
}

func (c *ttlCache) unlink(entry *cacheEntry) {
	if entry.prev != nil {
		entry.prev.next = entry.next
	} else {
		c.head = entry.next
	}
	if entry.next != nil {
		entry.next.prev = entry.prev
	} else {
		c.tail = entry.prev
	}
	entry.prev, entry.next = nil, nil
}
