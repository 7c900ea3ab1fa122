//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateCardsRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := openTestDB(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	repo := NewRateCardsRepository(db)
	rate := 70.0

	t.Run("get active when none exists", func(t *testing.T) {
		active, err := repo.GetActive(ctx)
		assert.NoError(t, err)
		assert.Nil(t, active)
	})

	t.Run("create first card", func(t *testing.T) {
		card, err := repo.Create(ctx, RateCard{
			DefaultRatePerKg: &rate,
			Rates:            RatesFromMap(map[int]float64{8: 74, 16: 70}),
			Currency:         "INR",
			CreatedBy:        "estimator",
		})
		require.NoError(t, err)
		assert.True(t, card.Active)
		assert.Equal(t, 1, card.Version)
		assert.False(t, card.ID.IsZero())
		assert.Equal(t, "estimator", card.CreatedBy)
	})

	t.Run("active card round-trips rates", func(t *testing.T) {
		active, err := repo.GetActive(ctx)
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, map[int]float64{8: 74, 16: 70}, active.RateMap())
		require.NotNil(t, active.DefaultRatePerKg)
		assert.InDelta(t, 70.0, *active.DefaultRatePerKg, 1e-9)
	})

	t.Run("new card bumps version and deactivates old", func(t *testing.T) {
		card, err := repo.Create(ctx, RateCard{Currency: "USD"})
		require.NoError(t, err)
		assert.Equal(t, 2, card.Version)

		active, err := repo.GetActive(ctx)
		require.NoError(t, err)
		assert.Equal(t, card.ID, active.ID)
		assert.Equal(t, "USD", active.Currency)
	})

	t.Run("list newest first with limit", func(t *testing.T) {
		cards, err := repo.List(ctx, 10)
		require.NoError(t, err)
		require.Len(t, cards, 2)
		assert.Equal(t, 2, cards[0].Version)
		assert.True(t, cards[0].Active)
		assert.False(t, cards[1].Active)

		limited, err := repo.List(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)
	})
}
