package middleware

import (
	"container/list"
	"sync"
	"time"
)

// maxIdempotencyEntries bounds the replay cache; the oldest entry goes first.
const maxIdempotencyEntries = 10000

// idempotencyCache holds replayable responses keyed by request fingerprint.
// Every entry lives for the same ttl, so insertion order is expiry order and
// pruning only ever looks at the front of the list.
type idempotencyCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	max   int
	order *list.List
	items map[string]*list.Element
	now   func() time.Time
}

type idempotencyEntry struct {
	key  string
	resp *cachedResponse
}

func newIdempotencyCache(ttl time.Duration, maxEntries int) *idempotencyCache {
	if maxEntries <= 0 {
		maxEntries = maxIdempotencyEntries
	}
	return &idempotencyCache{
		ttl:   ttl,
		max:   maxEntries,
		order: list.New(),
		items: make(map[string]*list.Element),
		now:   time.Now,
	}
}

func (c *idempotencyCache) Get(key string) (*cachedResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	resp := el.Value.(*idempotencyEntry).resp
	if c.expired(resp) {
		c.remove(el)
		return nil, false
	}
	return resp, true
}

// Set stores resp under key, replacing any earlier response.
func (c *idempotencyCache) Set(key string, resp *cachedResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.remove(el)
	}
	resp.Timestamp = c.now()
	c.items[key] = c.order.PushBack(&idempotencyEntry{key: key, resp: resp})
	c.prune()
}

func (c *idempotencyCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *idempotencyCache) prune() {
	for front := c.order.Front(); front != nil; front = c.order.Front() {
		if c.order.Len() <= c.max && !c.expired(front.Value.(*idempotencyEntry).resp) {
			return
		}
		c.remove(front)
	}
}

func (c *idempotencyCache) expired(resp *cachedResponse) bool {
	return c.now().Sub(resp.Timestamp) > c.ttl
}

func (c *idempotencyCache) remove(el *list.Element) {
	delete(c.items, el.Value.(*idempotencyEntry).key)
	c.order.Remove(el)
}
