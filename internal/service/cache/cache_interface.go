// Package cache defines the schedule cache contract and its content-addressed keys.
package cache

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/guttosm/bbs-service/internal/domain/model"
	"golang.org/x/crypto/blake2b"
)

// Key is the BLAKE2b-256 digest of a canonical calculation request.
type Key [blake2b.Size256]byte

// String returns the hex form of the key.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// KeyOf derives a key from the JSON encoding of parts. encoding/json sorts map keys, so equal
// requests always hash to the same key.
func KeyOf(parts ...any) (Key, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return Key{}, err
	}
	enc := json.NewEncoder(h)
	for i, p := range parts {
		if err := enc.Encode(p); err != nil {
			return Key{}, fmt.Errorf("encode cache key part %d: %w", i, err)
		}
	}
	var k Key
	copy(k[:], h.Sum(nil))
	return k, nil
}

// Cache defines the interface for schedule cache operations.
// Cached schedules are shared between callers and must be treated as read-only.
type Cache interface {
	Get(key Key) (*model.Schedule, bool)
	Set(key Key, value *model.Schedule)
	Invalidate(key Key)
	Clear()
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}
