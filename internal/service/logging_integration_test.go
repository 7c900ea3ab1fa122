//go:build integration

package service

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/bbs-service/internal/circuitbreaker"
	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/guttosm/bbs-service/internal/repository"
	"github.com/guttosm/bbs-service/internal/repository/repotest"
	"github.com/guttosm/bbs-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupIntegrationDB(t *testing.T) *repository.MongoDB {
	t.Helper()
	ctx := context.Background()

	mongoContainer, err := testutil.SetupMongoDB(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mongoContainer.Cleanup(ctx))
	})

	return repotest.NewDatabase(t, mongoContainer.URI)
}

func TestLoggingService_Integration(t *testing.T) {
	ctx := context.Background()
	db := setupIntegrationDB(t)
	require.NoError(t, db.SetLogsTTL(ctx, 30*24*time.Hour))

	loggingService := NewLoggingService(repository.NewLogsRepository(db))

	t.Run("create request and audit logs", func(t *testing.T) {
		entry := &model.LogEntry{Level: "info", Message: "POST /api/bbs/calculate", RequestID: "req-1", Method: "POST", Path: "/api/bbs/calculate"}
		require.NoError(t, loggingService.CreateLog(ctx, entry))
		assert.False(t, entry.ID.IsZero())

		require.NoError(t, loggingService.CreateLogs(ctx, []*model.LogEntry{
			{Level: "info", Message: "rate card updated", Actor: "admin", ActionType: model.ActionUpdateRateCard},
			{Level: "info", Message: "schedule saved", Actor: "site", ActionType: model.ActionSaveSchedule, Reference: "BBS-1"},
		}))
	})

	t.Run("query by action", func(t *testing.T) {
		entries, err := loggingService.QueryLogs(ctx, model.LogQueryOptions{ActionType: model.ActionSaveSchedule})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "BBS-1", entries[0].Reference)
	})

	t.Run("count within time range", func(t *testing.T) {
		start := time.Now().Add(-time.Hour)
		count, err := loggingService.CountLogs(ctx, model.LogQueryOptions{StartTime: &start})
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})
}

func TestScheduleServices_Integration(t *testing.T) {
	ctx := context.Background()
	db := setupIntegrationDB(t)

	breaker := func(name string) *circuitbreaker.CircuitBreaker {
		return circuitbreaker.New(circuitbreaker.Config{
			FailureThreshold: 2,
			SuccessThreshold: 1,
			Timeout:          100 * time.Millisecond,
			Name:             name,
		})
	}
	rateRepo := repository.NewRateCardsRepositoryWithCircuitBreaker(repository.NewRateCardsRepository(db), breaker("rate_cards"))
	scheduleRepo := repository.NewSchedulesRepositoryWithCircuitBreaker(repository.NewSchedulesRepository(db), breaker("schedules"))

	rateCards := NewRateCardsService(rateRepo)
	schedules := NewSchedulesService(scheduleRepo)
	calc := NewScheduleCalculatorService(WithRateCards(rateCards), WithCache(100, time.Minute))

	_, err := rateCards.Update(ctx, model.RateCardUpdate{
		DefaultRatePerKg: model.Float(70),
		RatesByDiameter:  map[int]float64{12: 72},
		Currency:         "INR",
	}, "admin")
	require.NoError(t, err)

	items := []model.BarGroupInput{{
		ElementType:   model.ElementBeam,
		MemberID:      "B1",
		BarType:       model.BarMain,
		BarDiameterMM: 12,
		NumBars:       4,
		ClearLengthM:  4,
	}}
	result, err := calc.Calculate(ctx, items, model.Options{Project: model.ProjectMeta{Name: "Block C"}})
	require.NoError(t, err)
	require.NotNil(t, result.Summary.TotalCost)
	assert.Equal(t, "INR", result.Currency)

	saved, err := schedules.Save(ctx, items, result, "site")
	require.NoError(t, err)

	got, err := schedules.Get(ctx, saved.Reference)
	require.NoError(t, err)
	assert.InDelta(t, result.Summary.TotalSteelWeightKg, got.Result.Summary.TotalSteelWeightKg, 1e-9)

	list, err := schedules.List(ctx, "block", 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = schedules.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}
