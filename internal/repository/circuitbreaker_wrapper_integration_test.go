//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/bbs-service/internal/circuitbreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateCardsRepositoryWithCircuitBreaker_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := openTestDB(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	cb := circuitbreaker.New(circuitbreaker.DefaultConfig())
	wrapped := NewRateCardsRepositoryWithCircuitBreaker(NewRateCardsRepository(db), cb)

	_, err := wrapped.Create(ctx, RateCard{Currency: "INR", CreatedBy: "user1"})
	require.NoError(t, err)
	_, err = wrapped.Create(ctx, RateCard{Currency: "USD", CreatedBy: "user2"})
	require.NoError(t, err)

	active, err := wrapped.GetActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "USD", active.Currency)

	cards, err := wrapped.List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, cards, 2)
	assert.Same(t, cb, wrapped.GetCircuitBreaker())
	assert.True(t, cb.GetStats().IsHealthy)
}

func TestSchedulesRepositoryWithCircuitBreaker_ClosedConnection(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := openTestDB(t)
	cb := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
		Name:             "schedules",
	})
	wrapped := NewSchedulesRepositoryWithCircuitBreaker(NewSchedulesRepository(db), cb)

	require.NoError(t, db.Close(ctx))

	err := wrapped.Create(ctx, &SavedSchedule{Reference: "after-close"})
	assert.Error(t, err)
	assert.True(t, cb.IsOpen())

	_, err = wrapped.List(ctx, ScheduleQueryOptions{})
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
}
