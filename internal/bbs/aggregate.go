package bbs

import (
	"sort"

	"github.com/guttosm/bbs-service/internal/domain/model"
)

// Aggregate sums the rows into schedule totals and a per-diameter breakdown sorted by
// ascending diameter. Values are plain sums; rounding is left to presentation.
func Aggregate(rows []model.ScheduleRow) model.ScheduleSummary {
	summary := model.ScheduleSummary{ByDiameter: []model.DiameterSummary{}}

	byDiameter := make(map[int]*model.DiameterSummary)
	var cost float64
	priced := len(rows) > 0

	for _, r := range rows {
		summary.TotalBars += r.NumBars
		summary.GrandTotalLengthM += r.TotalLengthM
		summary.TotalSteelWeightKg += r.TotalWeightKg
		summary.TotalWeightWithWastageKg += r.WeightWithWastageKg

		if r.TotalCost != nil {
			cost += *r.TotalCost
		} else {
			priced = false
		}

		g, ok := byDiameter[r.BarDiameterMM]
		if !ok {
			g = &model.DiameterSummary{BarDiameterMM: r.BarDiameterMM}
			byDiameter[r.BarDiameterMM] = g
		}
		g.Count += r.NumBars
		g.TotalLengthM += r.TotalLengthM
		g.TotalWeightKg += r.TotalWeightKg
	}

	for _, g := range byDiameter {
		summary.ByDiameter = append(summary.ByDiameter, *g)
	}
	sort.Slice(summary.ByDiameter, func(i, j int) bool {
		return summary.ByDiameter[i].BarDiameterMM < summary.ByDiameter[j].BarDiameterMM
	})

	if priced {
		summary.TotalCost = model.Float(cost)
	}
	return summary
}
