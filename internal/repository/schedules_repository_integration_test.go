//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulesRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := openTestDB(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	repo := NewSchedulesRepository(db)
	cost := 2400.5

	saved := &SavedSchedule{
		Reference: "ref-tower-a",
		Project:   model.ProjectMeta{Name: "Tower A", Client: "Acme"},
		Code:      model.CodeIS,
		Items: []model.BarGroupInput{{
			ElementType: model.ElementBeam, MemberID: "B1", BarType: model.BarMain,
			BarDiameterMM: 16, NumBars: 4, ClearLengthM: 5, HookType: model.Hook90,
		}},
		Result: &model.Schedule{
			Results: []model.ScheduleRow{{BarMark: "B1", MemberID: "B1", BarDiameterMM: 16, NumBars: 4, CuttingLengthM: 5.288}},
			Summary: model.ScheduleSummary{TotalBars: 4, TotalCost: &cost},
			Project: model.ProjectMeta{Name: "Tower A"},
		},
		CreatedBy: "estimator",
	}

	t.Run("create", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, saved))
		assert.False(t, saved.ID.IsZero())
		assert.False(t, saved.CreatedAt.IsZero())
	})

	t.Run("get by reference", func(t *testing.T) {
		got, err := repo.GetByReference(ctx, "ref-tower-a")
		require.NoError(t, err)
		assert.Equal(t, "Tower A", got.Project.Name)
		require.Len(t, got.Items, 1)
		assert.Equal(t, model.Hook90, got.Items[0].HookType)
		require.NotNil(t, got.Result)
		assert.InDelta(t, 5.288, got.Result.Results[0].CuttingLengthM, 1e-9)
		require.NotNil(t, got.Result.Summary.TotalCost)
	})

	t.Run("duplicate reference", func(t *testing.T) {
		err := repo.Create(ctx, &SavedSchedule{Reference: "ref-tower-a"})
		assert.ErrorIs(t, err, ErrDuplicateReference)
	})

	t.Run("missing reference", func(t *testing.T) {
		_, err := repo.GetByReference(ctx, "nope")
		assert.ErrorIs(t, err, ErrScheduleNotFound)
	})

	t.Run("list filters by project and omits rows", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &SavedSchedule{
			Reference: "ref-bridge",
			Project:   model.ProjectMeta{Name: "River Bridge"},
			CreatedAt: time.Now().Add(time.Minute),
		}))

		all, err := repo.List(ctx, ScheduleQueryOptions{Limit: 10})
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "ref-bridge", all[0].Reference)

		towers, err := repo.List(ctx, ScheduleQueryOptions{Project: "tower"})
		require.NoError(t, err)
		require.Len(t, towers, 1)
		assert.Empty(t, towers[0].Items)
		require.NotNil(t, towers[0].Result)
		assert.Empty(t, towers[0].Result.Results)
		assert.Equal(t, 4, towers[0].Result.Summary.TotalBars)
	})
}
