package bbs

import (
	"testing"

	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduleRow(mark string, d, n int, cutting, weight float64) model.ScheduleRow {
	return model.ScheduleRow{
		BarMark:        mark,
		ShapeCode:      model.ShapeStraight,
		BarDiameterMM:  d,
		NumBars:        n,
		CuttingLengthM: cutting,
		TotalLengthM:   cutting * float64(n),
		TotalWeightKg:  weight,
		Remarks:        []string{"development length 0.640 m"},
	}
}

func TestAnnotate_RatePrecedence(t *testing.T) {
	rows := []model.ScheduleRow{scheduleRow("B1", 16, 4, 5, 10), scheduleRow("B2", 12, 2, 3, 4), scheduleRow("B3", 8, 2, 3, 1)}
	facts := []RowFacts{{ItemRate: model.Float(90)}}
	opts := model.Options{
		SteelRatePerKg:  model.Float(70),
		RatesByDiameter: map[int]float64{16: 75, 12: 80},
	}

	out, notes, err := Annotate(rows, facts, opts)
	require.NoError(t, err)
	require.Len(t, out, 3)

	tests := []struct {
		mark string
		rate float64
		cost float64
	}{
		{"B1", 90, 900},
		{"B2", 80, 320},
		{"B3", 70, 70},
	}
	for i, tt := range tests {
		t.Run(tt.mark, func(t *testing.T) {
			require.NotNil(t, out[i].RatePerKg)
			assert.Equal(t, tt.rate, *out[i].RatePerKg)
			assert.InDelta(t, tt.cost, *out[i].TotalCost, 1e-9)
		})
	}
	assert.Empty(t, notes)
	assert.Nil(t, rows[0].TotalCost, "input rows are left untouched")
}

func TestAnnotate_ZeroRatePricesAtZero(t *testing.T) {
	out, notes, err := Annotate([]model.ScheduleRow{scheduleRow("S1", 10, 5, 2, 3)}, nil, model.Options{SteelRatePerKg: model.Float(0)})
	require.NoError(t, err)

	require.NotNil(t, out[0].TotalCost)
	assert.Zero(t, *out[0].TotalCost)
	assert.Empty(t, notes)
}

func TestAnnotate_Notes(t *testing.T) {
	stirrup := scheduleRow("C1", 8, 10, 0.1, 0.4)
	stirrup.ShapeCode = model.ShapeStirrup
	spliced := scheduleRow("B1", 16, 2, 15, 47)
	spliced.SpliceCount = 1
	spliced.LapLengthM = model.Float(0.64)

	rows := []model.ScheduleRow{spliced, stirrup}
	facts := []RowFacts{
		{Notes: []string{"shape preference \"zigzag\" ignored"}, CoverDefaulted: true},
		{CoverDefaulted: true},
	}

	_, notes, err := Annotate(rows, facts, model.Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"B1: shape preference \"zigzag\" ignored",
		"B1: cutting length 15.000 m exceeds one stock length, 1 splice(s) with 0.640 m lap each",
		"C1: stirrup cutting length 0.100 m is under 20d, check the leg length or member section",
		"cover not supplied for B1, C1, IS default of 25 mm assumed",
		"no steel rate resolved, costs omitted",
	}, notes)
}

func TestAnnotate_UnknownCode(t *testing.T) {
	_, _, err := Annotate(nil, nil, model.Options{Code: "EC2"})
	assert.ErrorIs(t, err, ErrUnknownCode)
}

func TestAggregate(t *testing.T) {
	t.Run("groups by ascending diameter", func(t *testing.T) {
		a := scheduleRow("B1", 16, 4, 5, 31.6)
		a.TotalCost = model.Float(100)
		b := scheduleRow("B2", 8, 10, 1, 3.95)
		b.TotalCost = model.Float(20)
		c := scheduleRow("B3", 16, 2, 2, 6.32)
		c.TotalCost = model.Float(30)

		summary := Aggregate([]model.ScheduleRow{a, b, c})

		assert.Equal(t, 16, summary.TotalBars)
		assert.InDelta(t, 34.0, summary.GrandTotalLengthM, 1e-9)
		assert.InDelta(t, 41.87, summary.TotalSteelWeightKg, 1e-9)
		require.NotNil(t, summary.TotalCost)
		assert.InDelta(t, 150.0, *summary.TotalCost, 1e-9)
		require.Len(t, summary.ByDiameter, 2)
		assert.Equal(t, 8, summary.ByDiameter[0].BarDiameterMM)
		assert.Equal(t, 16, summary.ByDiameter[1].BarDiameterMM)
		assert.Equal(t, 6, summary.ByDiameter[1].Count)
		assert.InDelta(t, 37.92, summary.ByDiameter[1].TotalWeightKg, 1e-9)
	})

	t.Run("one unpriced row drops the total cost", func(t *testing.T) {
		a := scheduleRow("B1", 16, 4, 5, 31.6)
		a.TotalCost = model.Float(100)

		summary := Aggregate([]model.ScheduleRow{a, scheduleRow("B2", 8, 10, 1, 3.95)})

		assert.Nil(t, summary.TotalCost)
	})

	t.Run("empty", func(t *testing.T) {
		summary := Aggregate(nil)

		assert.Zero(t, summary.TotalBars)
		assert.Nil(t, summary.TotalCost)
		assert.NotNil(t, summary.ByDiameter)
	})
}
