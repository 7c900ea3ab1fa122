// Package bbs computes bar bending schedules.
//
// Calculate is a pure function: items and options go in by value, a freshly allocated
// schedule comes out, and the first invalid bar group fails the whole call. The stages run in
// one direction: Normalize, Classifier.Classify, ComputeCuttingLength, ResolveLaps, Annotate
// and Aggregate.
package bbs

import (
	"fmt"
	"strings"

	"github.com/guttosm/bbs-service/internal/domain/model"
)

// Engine runs the schedule pipeline with a configurable shape classifier.
type Engine struct {
	classifier Classifier
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithClassifier replaces the default shape classifier.
func WithClassifier(c Classifier) EngineOption {
	return func(e *Engine) {
		if c != nil {
			e.classifier = c
		}
	}
}

// NewEngine creates an Engine with the given options.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{classifier: DefaultClassifier()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = NewEngine()

// Calculate computes a schedule with the default engine.
func Calculate(items []model.BarGroupInput, opts model.Options) (*model.Schedule, error) {
	return defaultEngine.Calculate(items, opts)
}

// Calculate computes the schedule for items. No partial schedule is ever returned.
func (e *Engine) Calculate(items []model.BarGroupInput, opts model.Options) (*model.Schedule, error) {
	if len(items) == 0 {
		return nil, validationErr("items", "must contain at least one bar group")
	}
	s, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	rows := make([]model.ScheduleRow, 0, len(items))
	facts := make([]RowFacts, 0, len(items))
	marks := barMarks{}
	for i, item := range items {
		row, f, err := e.computeRow(item, s)
		if err != nil {
			return nil, atItem(err, i, strings.TrimSpace(item.MemberID))
		}
		row.BarMark = marks.next(row.ElementType)
		rows = append(rows, row)
		facts = append(facts, f)
	}

	rows, notes := annotate(rows, facts, s)
	return &model.Schedule{
		Results:         rows,
		Summary:         Aggregate(rows),
		Project:         s.project,
		CodeUsed:        s.table.Code,
		Currency:        s.currency,
		ComplianceNotes: notes,
	}, nil
}

func (e *Engine) computeRow(item model.BarGroupInput, s settings) (model.ScheduleRow, RowFacts, error) {
	n, err := normalizeItem(item, s)
	if err != nil {
		return model.ScheduleRow{}, RowFacts{}, err
	}

	class := e.classifier.Classify(n)
	cut, err := ComputeCuttingLength(n, class.Shape)
	if err != nil {
		return model.ScheduleRow{}, RowFacts{}, err
	}
	lap := ResolveLaps(cut.CuttingLengthM, n)

	count := float64(n.NumBars)
	unitWeight := UnitWeight(n.DiameterMM)
	totalLength := cut.CuttingLengthM*count + float64(lap.SpliceCount)*lap.LapLengthM*count
	totalWeight := totalLength * unitWeight

	row := model.ScheduleRow{
		MemberID:            n.MemberID,
		ElementType:         n.ElementType,
		BarType:             n.BarType,
		ShapeCode:           cut.Shape,
		BarDiameterMM:       n.DiameterMM,
		NumBars:             n.NumBars,
		CuttingLengthM:      cut.CuttingLengthM,
		TotalLengthM:        totalLength,
		UnitWeightKgPerM:    unitWeight,
		TotalWeightKg:       totalWeight,
		HookDetails:         cut.HookDetails,
		SpliceCount:         lap.SpliceCount,
		DevelopmentLengthM:  cut.DevelopmentLengthM,
		WastagePercent:      n.WastagePercent,
		WeightWithWastageKg: totalWeight * (1 + n.WastagePercent/100),
		Remarks:             cut.Remarks,
	}
	if lap.Spliced() {
		row.LapLengthM = model.Float(lap.LapLengthM)
		row.Remarks = append(row.Remarks, fmt.Sprintf("%d splice(s) at %.3f m stock, %.3f m consumed per bar",
			lap.SpliceCount, lap.StockLengthM, lap.SplicedLengthM))
	}
	if n.SpacingMM > 0 && cut.Shape != model.ShapeSpiral {
		row.Remarks = append(row.Remarks, fmt.Sprintf("spacing %s mm", model.FormatFloat(n.SpacingMM)))
	}

	notes := append(append([]string(nil), class.Notes...), cut.Notes...)
	return row, RowFacts{ItemRate: n.SteelRatePerKg, Notes: notes, CoverDefaulted: n.CoverDefaulted && cut.CoverUsed}, nil
}

var markPrefixes = map[model.ElementType]string{
	model.ElementBeam:    "B",
	model.ElementColumn:  "C",
	model.ElementSlab:    "S",
	model.ElementFooting: "F",
	model.ElementWall:    "W",
	model.ElementStair:   "ST",
	model.ElementCustom:  "X",
}

// barMarks numbers bar marks sequentially per element type: B1, B2, C1, ...
type barMarks map[string]int

func (m barMarks) next(et model.ElementType) string {
	prefix, ok := markPrefixes[et]
	if !ok {
		prefix = "X"
	}
	m[prefix]++
	return fmt.Sprintf("%s%d", prefix, m[prefix])
}
