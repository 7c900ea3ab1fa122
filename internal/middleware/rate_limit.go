package middleware

import (
	"hash/fnv"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bbs-service/internal/domain/dto"
	"github.com/guttosm/bbs-service/internal/i18n"
	"golang.org/x/time/rate"
)

const defaultNumShards = 16

// visitor is one caller's token bucket.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiterShard struct {
	mu       sync.Mutex
	visitors map[string]*visitor
}

// ShardedRateLimiter keeps a token bucket per caller, spread over shards to reduce lock contention.
// Each bucket holds rate tokens and refills rate tokens per window.
type ShardedRateLimiter struct {
	shards    []*rateLimiterShard
	numShards int
	rate      int
	window    time.Duration
	limit     rate.Limit
	stopCh    chan struct{}
	stopOnce  sync.Once
}

// RateLimiter is the limiter used by the router.
type RateLimiter = ShardedRateLimiter

// NewRateLimiter allows rate requests per window for each caller.
func NewRateLimiter(rate int, window time.Duration) *ShardedRateLimiter {
	return NewShardedRateLimiter(rate, window, defaultNumShards)
}

// NewShardedRateLimiter is NewRateLimiter with a custom shard count.
func NewShardedRateLimiter(requests int, window time.Duration, numShards int) *ShardedRateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}
	if requests <= 0 {
		requests = 1
	}
	if window <= 0 {
		window = time.Minute
	}

	shards := make([]*rateLimiterShard, numShards)
	for i := range shards {
		shards[i] = &rateLimiterShard{visitors: make(map[string]*visitor)}
	}

	rl := &ShardedRateLimiter{
		shards:    shards,
		numShards: numShards,
		rate:      requests,
		window:    window,
		limit:     rate.Every(window / time.Duration(requests)),
		stopCh:    make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

func (rl *ShardedRateLimiter) getShard(identifier string) *rateLimiterShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(identifier))
	return rl.shards[h.Sum32()%uint32(rl.numShards)]
}

// checkRateLimit takes a token for identifier. retryAfter is set when the request is refused.
func (rl *ShardedRateLimiter) checkRateLimit(identifier string) (allowed bool, remaining int, retryAfter time.Duration) {
	shard := rl.getShard(identifier)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	now := time.Now()
	v, ok := shard.visitors[identifier]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.rate)}
		shard.visitors[identifier] = v
	}
	v.lastSeen = now

	allowed = v.limiter.AllowN(now, 1)
	tokens := v.limiter.TokensAt(now)
	remaining = int(math.Max(0, math.Floor(tokens)))
	if !allowed {
		retryAfter = time.Duration((1 - tokens) / float64(rl.limit) * float64(time.Second))
	}
	return allowed, remaining, retryAfter
}

// RateLimit returns a middleware that limits requests per client IP.
func (rl *ShardedRateLimiter) RateLimit() gin.HandlerFunc {
	return rl.handler(func(c *gin.Context) string { return "ip:" + c.ClientIP() })
}

// ActorRateLimit returns a middleware that limits requests per authenticated actor,
// falling back to the client IP for anonymous callers.
func (rl *ShardedRateLimiter) ActorRateLimit() gin.HandlerFunc {
	return rl.handler(rl.getIdentifier)
}

func (rl *ShardedRateLimiter) handler(identify func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, retryAfter := rl.checkRateLimit(identify(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.rate))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			abortWith(c, http.StatusTooManyRequests, dto.ErrCodeRateLimit, i18n.ErrKeyRateLimitExceeded)
			return
		}
		c.Next()
	}
}

func (rl *ShardedRateLimiter) getIdentifier(c *gin.Context) string {
	if actor := GetActor(c); actor != "" && actor != APIKeyActor {
		return "actor:" + actor
	}
	return "ip:" + c.ClientIP()
}

func (rl *ShardedRateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupExpired()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanupExpired forgets callers idle for two windows; their buckets would be full again anyway.
func (rl *ShardedRateLimiter) cleanupExpired() {
	now := time.Now()
	threshold := rl.window * 2

	for _, shard := range rl.shards {
		shard.mu.Lock()
		for id, v := range shard.visitors {
			if now.Sub(v.lastSeen) > threshold {
				delete(shard.visitors, id)
			}
		}
		shard.mu.Unlock()
	}
}

// Stop ends the cleanup goroutine.
func (rl *ShardedRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Stats returns the number of tracked callers, in total and per shard.
func (rl *ShardedRateLimiter) Stats() (totalVisitors int, perShard []int) {
	perShard = make([]int, rl.numShards)
	for i, shard := range rl.shards {
		shard.mu.Lock()
		perShard[i] = len(shard.visitors)
		totalVisitors += perShard[i]
		shard.mu.Unlock()
	}
	return totalVisitors, perShard
}
