package service

import (
	"testing"
	"time"

	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/guttosm/bbs-service/internal/service/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T, parts ...any) cache.Key {
	t.Helper()
	k, err := cache.KeyOf(parts...)
	require.NoError(t, err)
	return k
}

func scheduleFor(code model.DesignCode) *model.Schedule {
	return &model.Schedule{CodeUsed: code}
}

func TestTTLCache_Get(t *testing.T) {
	key := testKey(t, "beam-b1")

	tests := []struct {
		name          string
		setupCache    func() *ttlCache
		expectedValue *model.Schedule
		expectedFound bool
	}{
		{
			name: "returns value when exists and not expired",
			setupCache: func() *ttlCache {
				c := newTTLCache(10, time.Minute)
				c.Set(key, scheduleFor(model.CodeACI))
				return c
			},
			expectedValue: scheduleFor(model.CodeACI),
			expectedFound: true,
		},
		{
			name: "returns false when key not found",
			setupCache: func() *ttlCache {
				return newTTLCache(10, time.Minute)
			},
			expectedFound: false,
		},
		{
			name: "returns false when expired",
			setupCache: func() *ttlCache {
				c := newTTLCache(10, 50*time.Millisecond)
				c.Set(key, scheduleFor(model.CodeIS))
				time.Sleep(100 * time.Millisecond)
				return c
			},
			expectedFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.setupCache()
			defer c.Stop()

			value, found := c.Get(key)
			assert.Equal(t, tt.expectedFound, found)
			if tt.expectedFound {
				assert.Equal(t, tt.expectedValue, value)
			}
		})
	}
}

func TestTTLCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := newTTLCache(2, time.Minute)
	defer c.Stop()

	k1, k2, k3 := testKey(t, 1), testKey(t, 2), testKey(t, 3)
	c.Set(k1, scheduleFor(model.CodeIS))
	c.Set(k2, scheduleFor(model.CodeNBC))

	_, found := c.Get(k1)
	require.True(t, found)

	c.Set(k3, scheduleFor(model.CodeACI))

	_, found = c.Get(k2)
	assert.False(t, found, "k2 was least recently used")
	_, found = c.Get(k1)
	assert.True(t, found)
	_, found = c.Get(k3)
	assert.True(t, found)
	assert.Equal(t, int64(1), c.Metrics().Evictions)
}

func TestTTLCache_SetRefreshesExisting(t *testing.T) {
	c := newTTLCache(2, time.Minute)
	defer c.Stop()

	k := testKey(t, "same")
	c.Set(k, scheduleFor(model.CodeIS))
	c.Set(k, scheduleFor(model.CodeACI))

	got, found := c.Get(k)
	require.True(t, found)
	assert.Equal(t, model.CodeACI, got.CodeUsed)
	assert.Equal(t, 1, c.Metrics().Size)
}

func TestTTLCache_Invalidate(t *testing.T) {
	c := newTTLCache(10, time.Minute)
	defer c.Stop()

	k := testKey(t, "gone")
	c.Set(k, scheduleFor(model.CodeIS))
	c.Invalidate(k)
	c.Invalidate(testKey(t, "never-set"))

	_, found := c.Get(k)
	assert.False(t, found)
}

func TestTTLCache_Clear(t *testing.T) {
	c := newTTLCache(10, time.Minute)
	defer c.Stop()

	for i := 0; i < 5; i++ {
		c.Set(testKey(t, i), scheduleFor(model.CodeIS))
	}
	c.Get(testKey(t, 0))
	c.Clear()

	m := c.Metrics()
	assert.Equal(t, 0, m.Size)
	assert.Zero(t, m.Hits)
	assert.Zero(t, m.Misses)
}

func TestTTLCache_Metrics(t *testing.T) {
	c := newTTLCache(10, time.Minute)
	defer c.Stop()

	k := testKey(t, "m")
	c.Set(k, scheduleFor(model.CodeIS))
	c.Get(k)
	c.Get(k)
	c.Get(testKey(t, "missing"))

	m := c.Metrics()
	assert.Equal(t, int64(2), m.Hits)
	assert.Equal(t, int64(1), m.Misses)
	assert.Equal(t, 1, m.Size)
	assert.Equal(t, 10, m.Capacity)
}

func TestTTLCache_RemoveExpired(t *testing.T) {
	c := newTTLCache(10, 20*time.Millisecond)
	defer c.Stop()

	c.Set(testKey(t, "a"), scheduleFor(model.CodeIS))
	c.Set(testKey(t, "b"), scheduleFor(model.CodeIS))
	time.Sleep(50 * time.Millisecond)

	c.removeExpired()
	assert.Equal(t, 0, c.Metrics().Size)
}

func TestTTLCache_StopIsIdempotent(t *testing.T) {
	c := newTTLCache(1, time.Minute)
	assert.NotPanics(t, func() {
		c.Stop()
		c.Stop()
	})
}
