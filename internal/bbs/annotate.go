package bbs

import (
	"fmt"
	"strings"

	"github.com/guttosm/bbs-service/internal/domain/model"
)

// stirrupMinDiameters is the cutting length, in bar diameters, below which a stirrup is
// reported as possibly under-specified.
const stirrupMinDiameters = 20

// RowFacts carries what the annotator needs to know about a row beyond the row itself.
type RowFacts struct {
	ItemRate *float64
	Notes    []string
	// CoverDefaulted is set when a defaulted cover entered the cutting length.
	CoverDefaulted bool
}

// Annotate prices each row and collects the compliance notes. Notes never fail the call.
// The rate is resolved from the item, then the per-diameter rates, then the default rate.
func Annotate(rows []model.ScheduleRow, facts []RowFacts, opts model.Options) ([]model.ScheduleRow, []string, error) {
	s, err := resolveOptions(opts)
	if err != nil {
		return nil, nil, err
	}
	out, notes := annotate(rows, facts, s)
	return out, notes, nil
}

func annotate(rows []model.ScheduleRow, facts []RowFacts, s settings) ([]model.ScheduleRow, []string) {
	out := make([]model.ScheduleRow, len(rows))
	notes := []string{}

	var unpriced, coverDefaulted []string
	for i, r := range rows {
		var f RowFacts
		if i < len(facts) {
			f = facts[i]
		}

		if rate := resolveRate(f.ItemRate, r.BarDiameterMM, s); rate != nil {
			r.RatePerKg = model.Float(*rate)
			r.TotalCost = model.Float(r.TotalWeightKg * *rate)
		} else {
			r.RatePerKg, r.TotalCost = nil, nil
			unpriced = append(unpriced, r.BarMark)
		}

		for _, n := range f.Notes {
			notes = append(notes, r.BarMark+": "+n)
		}
		if r.SpliceCount > 0 && r.LapLengthM != nil {
			notes = append(notes, fmt.Sprintf("%s: cutting length %.3f m exceeds one stock length, %d splice(s) with %.3f m lap each",
				r.BarMark, r.CuttingLengthM, r.SpliceCount, *r.LapLengthM))
		}
		if r.ShapeCode == model.ShapeStirrup && r.CuttingLengthM < stirrupMinDiameters*float64(r.BarDiameterMM)/1000 {
			notes = append(notes, fmt.Sprintf("%s: stirrup cutting length %.3f m is under %dd, check the leg length or member section",
				r.BarMark, r.CuttingLengthM, stirrupMinDiameters))
		}
		if f.CoverDefaulted {
			coverDefaulted = append(coverDefaulted, r.BarMark)
		}

		r.Remarks = append([]string(nil), r.Remarks...)
		out[i] = r
	}

	if len(coverDefaulted) > 0 {
		notes = append(notes, fmt.Sprintf("cover not supplied for %s, %s default of %s mm assumed",
			strings.Join(coverDefaulted, ", "), s.table.Code, model.FormatFloat(s.coverMM)))
	}
	switch {
	case len(rows) > 0 && len(unpriced) == len(rows):
		notes = append(notes, "no steel rate resolved, costs omitted")
	case len(unpriced) > 0:
		notes = append(notes, fmt.Sprintf("no steel rate for %s, schedule total cost omitted", strings.Join(unpriced, ", ")))
	}
	return out, notes
}

func resolveRate(itemRate *float64, diameter int, s settings) *float64 {
	if itemRate != nil {
		return itemRate
	}
	if r, ok := s.rates[diameter]; ok {
		return &r
	}
	return s.rate
}
