package service

import (
	"testing"
	"time"

	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
)

func TestNewShardedCache(t *testing.T) {
	tests := []struct {
		name       string
		capacity   int
		numShards  int
		wantShards int
		wantPer    int
	}{
		{name: "default shards when zero", capacity: 160, numShards: 0, wantShards: 16, wantPer: 10},
		{name: "default shards when negative", capacity: 160, numShards: -1, wantShards: 16, wantPer: 10},
		{name: "rounds up to power of 2", capacity: 100, numShards: 3, wantShards: 4, wantPer: 25},
		{name: "exact power of 2", capacity: 100, numShards: 8, wantShards: 8, wantPer: 12},
		{name: "at least one slot per shard", capacity: 2, numShards: 8, wantShards: 8, wantPer: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewShardedCache(tt.capacity, time.Minute, tt.numShards)
			defer c.Stop()

			assert.Equal(t, tt.wantShards, c.numShards)
			assert.Equal(t, uint32(tt.wantShards-1), c.shardMask)
			assert.Len(t, c.shards, tt.wantShards)
			assert.Equal(t, tt.wantPer, c.shards[0].capacity)
		})
	}
}

func TestShardedCache_GetSet(t *testing.T) {
	tests := []struct {
		name  string
		parts []any
		value *model.Schedule
	}{
		{
			name:  "single beam group",
			parts: []any{"beam", 16, 4},
			value: &model.Schedule{CodeUsed: model.CodeIS, Summary: model.ScheduleSummary{TotalBars: 4}},
		},
		{
			name:  "empty key parts",
			parts: nil,
			value: &model.Schedule{CodeUsed: model.CodeNBC},
		},
		{
			name:  "priced schedule",
			parts: []any{map[string]float64{"rate": 70}},
			value: &model.Schedule{CodeUsed: model.CodeACI, Currency: "USD"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewShardedCache(100, time.Minute, 4)
			defer c.Stop()
			key := testKey(t, tt.parts...)

			_, found := c.Get(key)
			assert.False(t, found)

			c.Set(key, tt.value)

			got, found := c.Get(key)
			assert.True(t, found)
			assert.Same(t, tt.value, got)
		})
	}
}

func TestShardedCache_Invalidate(t *testing.T) {
	c := NewShardedCache(100, time.Minute, 4)
	defer c.Stop()

	for i := 1; i <= 3; i++ {
		c.Set(testKey(t, i), scheduleFor(model.CodeIS))
	}

	c.Invalidate(testKey(t, 2))

	_, found := c.Get(testKey(t, 2))
	assert.False(t, found)
	for _, i := range []int{1, 3} {
		_, found := c.Get(testKey(t, i))
		assert.True(t, found)
	}
}

func TestShardedCache_Clear(t *testing.T) {
	c := NewShardedCache(100, time.Minute, 4)
	defer c.Stop()

	for i := 0; i < 10; i++ {
		c.Set(testKey(t, i), scheduleFor(model.CodeIS))
	}
	c.Clear()

	for i := 0; i < 10; i++ {
		_, found := c.Get(testKey(t, i))
		assert.False(t, found)
	}
}

func TestShardedCache_Metrics(t *testing.T) {
	c := NewShardedCache(100, time.Minute, 4)
	defer c.Stop()

	for i := 0; i < 5; i++ {
		c.Set(testKey(t, i), scheduleFor(model.CodeIS))
	}
	for i := 0; i < 5; i++ {
		c.Get(testKey(t, i))
	}
	for i := 100; i < 105; i++ {
		c.Get(testKey(t, i))
	}

	m := c.Metrics()
	assert.Equal(t, int64(5), m.Hits)
	assert.Equal(t, int64(5), m.Misses)
	assert.Equal(t, 5, m.Size)
	assert.Equal(t, 100, m.Capacity)
}

func TestShardedCache_ShardDistribution(t *testing.T) {
	c := NewShardedCache(4000, time.Minute, 4)
	defer c.Stop()

	for i := 0; i < 100; i++ {
		c.Set(testKey(t, i), scheduleFor(model.CodeIS))
	}

	used := 0
	for _, s := range c.shards {
		if s.Metrics().Size > 0 {
			used++
		}
	}
	assert.Greater(t, used, 1, "digest keys should spread across shards")

	for i := 0; i < 100; i++ {
		_, found := c.Get(testKey(t, i))
		assert.True(t, found)
	}
}
