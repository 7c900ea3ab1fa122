//go:build !integration

package cache

import (
	"testing"

	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyOf(t *testing.T) {
	items := []model.BarGroupInput{{ElementType: model.ElementBeam, BarType: model.BarMain, BarDiameterMM: 16, NumBars: 4, ClearLengthM: 5}}
	opts := model.Options{Code: model.CodeIS, RatesByDiameter: map[int]float64{16: 70, 8: 72, 12: 71}}

	first, err := KeyOf(items, opts)
	require.NoError(t, err)

	reordered := model.Options{Code: model.CodeIS, RatesByDiameter: map[int]float64{12: 71, 16: 70, 8: 72}}
	second, err := KeyOf(items, reordered)
	require.NoError(t, err)
	assert.Equal(t, first, second, "map order must not change the key")

	items[0].NumBars = 5
	third, err := KeyOf(items, opts)
	require.NoError(t, err)
	assert.NotEqual(t, first, third)

	assert.Len(t, first.String(), 64)
}

func TestKeyOf_PartBoundaries(t *testing.T) {
	a, err := KeyOf("ab", "c")
	require.NoError(t, err)
	b, err := KeyOf("a", "bc")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestKeyOf_UnencodableValue(t *testing.T) {
	_, err := KeyOf(make(chan int))
	assert.Error(t, err)
}

type mapCache struct {
	items map[Key]*model.Schedule
}

func (m *mapCache) Get(key Key) (*model.Schedule, bool) {
	v, ok := m.items[key]
	return v, ok
}
func (m *mapCache) Set(key Key, value *model.Schedule) { m.items[key] = value }
func (m *mapCache) Invalidate(key Key)                 { delete(m.items, key) }
func (m *mapCache) Clear()                             { m.items = map[Key]*model.Schedule{} }
func (m *mapCache) Stop()                              {}

func TestCacheInterface(t *testing.T) {
	var c Cache = &mapCache{items: map[Key]*model.Schedule{}}

	key, err := KeyOf("schedule")
	require.NoError(t, err)

	_, found := c.Get(key)
	assert.False(t, found)

	c.Set(key, &model.Schedule{CodeUsed: model.CodeIS})
	got, found := c.Get(key)
	require.True(t, found)
	assert.Equal(t, model.CodeIS, got.CodeUsed)

	c.Invalidate(key)
	_, found = c.Get(key)
	assert.False(t, found)
	c.Stop()
}
