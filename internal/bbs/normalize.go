package bbs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/guttosm/bbs-service/internal/domain/model"
)

// NormalizedItem is a bar group resolved to metric units with every default applied.
type NormalizedItem struct {
	ElementType model.ElementType
	MemberID    string
	BarType     model.BarType

	DiameterMM   int
	NumBars      int
	ClearLengthM float64
	SpacingMM    float64

	HookType     model.HookType
	HookLengthMM *float64
	BendAngles   []float64

	DevelopmentLengthM *float64
	CoverMM            float64
	CoverDefaulted     bool
	WastagePercent     float64
	LapLengthM         *float64
	StockLengthM       float64
	SteelRatePerKg     *float64

	ShapePreference         model.ShapeCode
	MemberBreadthMM         float64
	MemberDepthMM           float64
	RequiresFullDevelopment bool

	Table CodeTable
}

// DiameterM returns the bar diameter in metres.
func (n NormalizedItem) DiameterM() float64 {
	return float64(n.DiameterMM) / 1000
}

// HasSection reports whether both member cross-section dimensions were supplied.
func (n NormalizedItem) HasSection() bool {
	return n.MemberBreadthMM > 0 && n.MemberDepthMM > 0
}

// settings are the validated schedule options.
type settings struct {
	table          CodeTable
	scale          unitScale
	stockLengthM   float64
	coverMM        float64
	wastagePercent float64
	rate           *float64
	rates          map[int]float64
	currency       string
	project        model.ProjectMeta
}

func resolveOptions(opts model.Options) (settings, error) {
	table, err := LookupCode(opts.Code)
	if err != nil {
		return settings{}, err
	}

	scale, ok := scaleFor(opts.Units, unitScales[model.UnitsMetric])
	if !ok {
		return settings{}, validationErr("units", fmt.Sprintf("unknown unit system %q", opts.Units))
	}

	numbers := []struct {
		field string
		v     float64
	}{
		{"stock_length_m", opts.StockLengthM},
		{"default_cover_mm", opts.DefaultCoverMM},
		{"wastage_percent_default", opts.WastagePercentDefault},
	}
	for _, n := range numbers {
		if err := checkValue(n.field, n.v); err != nil {
			return settings{}, err
		}
	}
	if err := checkOptional("steel_rate_per_kg", opts.SteelRatePerKg); err != nil {
		return settings{}, err
	}
	if opts.WastagePercentDefault > 100 {
		return settings{}, validationErr("wastage_percent_default", "must not exceed 100")
	}

	s := settings{
		table:          table,
		scale:          scale,
		stockLengthM:   DefaultStockLengthM,
		coverMM:        table.DefaultCoverMM,
		wastagePercent: table.DefaultWastagePercent,
		currency:       opts.Currency,
		project:        opts.Project,
	}
	if opts.StockLengthM > 0 {
		s.stockLengthM = scale.metres(opts.StockLengthM)
	}
	if opts.DefaultCoverMM > 0 {
		s.coverMM = scale.mm(opts.DefaultCoverMM)
	}
	if opts.WastagePercentDefault > 0 {
		s.wastagePercent = opts.WastagePercentDefault
	}
	if opts.SteelRatePerKg != nil {
		s.rate = model.Float(*opts.SteelRatePerKg)
	}
	if len(opts.RatesByDiameter) > 0 {
		diameters := make([]int, 0, len(opts.RatesByDiameter))
		for d := range opts.RatesByDiameter {
			diameters = append(diameters, d)
		}
		sort.Ints(diameters)

		s.rates = make(map[int]float64, len(diameters))
		for _, d := range diameters {
			r := opts.RatesByDiameter[d]
			if err := checkValue(fmt.Sprintf("rates_by_diameter[%d]", d), r); err != nil {
				return settings{}, err
			}
			s.rates[d] = r
		}
	}
	return s, nil
}

// Normalize validates one bar group and resolves it against the options.
func Normalize(item model.BarGroupInput, opts model.Options) (NormalizedItem, error) {
	s, err := resolveOptions(opts)
	if err != nil {
		return NormalizedItem{}, err
	}
	return normalizeItem(item, s)
}

func normalizeItem(item model.BarGroupInput, s settings) (NormalizedItem, error) {
	scale, ok := scaleFor(item.Units, s.scale)
	if !ok {
		return NormalizedItem{}, validationErr("units", fmt.Sprintf("unknown unit system %q", item.Units))
	}

	elementType, ok := model.ParseElementType(string(item.ElementType))
	if !ok {
		return NormalizedItem{}, enumErr("element_type", string(item.ElementType))
	}
	barType, ok := model.ParseBarType(string(item.BarType))
	if !ok {
		return NormalizedItem{}, enumErr("bar_type", string(item.BarType))
	}

	if err := checkNumbers(item); err != nil {
		return NormalizedItem{}, err
	}

	if item.BarDiameterMM == 0 {
		return NormalizedItem{}, validationErr("bar_diameter_mm", "must be positive")
	}
	diameter, ok := scale.diameter(item.BarDiameterMM)
	if !ok {
		return NormalizedItem{}, validationErr("bar_diameter_mm",
			fmt.Sprintf("%s is not a catalog diameter (6, 8, 10, 12, 16, 20, 25, 32 mm)", model.FormatFloat(item.BarDiameterMM)))
	}
	if item.NumBars == 0 {
		return NormalizedItem{}, validationErr("num_bars", "must be a positive integer")
	}
	if item.ClearLengthM == 0 {
		return NormalizedItem{}, validationErr("clear_length_m", "must be positive")
	}

	positive := []struct {
		field string
		v     *float64
	}{
		{"spacing_mm", item.SpacingMM},
		{"development_length_m", item.DevelopmentLengthM},
		{"stock_length_m", item.StockLengthM},
		{"member_breadth_mm", item.MemberBreadthMM},
		{"member_depth_mm", item.MemberDepthMM},
		{"lap_length_m", item.LapLengthM},
	}
	for _, p := range positive {
		if err := requirePositive(p.field, p.v); err != nil {
			return NormalizedItem{}, err
		}
	}
	if item.WastagePercent != nil && *item.WastagePercent > 100 {
		return NormalizedItem{}, validationErr("wastage_percent", "must not exceed 100")
	}

	angles := make([]float64, 0, len(item.BendAngles))
	for i, a := range item.BendAngles {
		if a == 0 || a > 180 {
			return NormalizedItem{}, validationErr(fmt.Sprintf("bend_angles[%d]", i), "must be in (0, 180] degrees")
		}
		angles = append(angles, a)
	}

	hookType, ok := model.ParseHookType(string(item.HookType))
	if !ok {
		return NormalizedItem{}, enumErr("hook_type", string(item.HookType))
	}
	if hookType == model.HookCustom && item.HookLengthMM == nil {
		return NormalizedItem{}, validationErr("hook_length_mm", "is required for a custom hook")
	}

	n := NormalizedItem{
		ElementType:             elementType,
		MemberID:                strings.TrimSpace(item.MemberID),
		BarType:                 barType,
		DiameterMM:              diameter,
		NumBars:                 item.NumBars,
		ClearLengthM:            scale.metres(item.ClearLengthM),
		HookType:                hookType,
		HookLengthMM:            scale.mmPtr(item.HookLengthMM),
		BendAngles:              angles,
		DevelopmentLengthM:      scale.metresPtr(item.DevelopmentLengthM),
		CoverMM:                 s.coverMM,
		CoverDefaulted:          item.CoverMM == nil,
		WastagePercent:          s.wastagePercent,
		LapLengthM:              scale.metresPtr(item.LapLengthM),
		StockLengthM:            s.stockLengthM,
		ShapePreference:         model.ShapeCode(strings.TrimSpace(string(item.ShapePreference))),
		RequiresFullDevelopment: item.RequiresFullDevelopment,
		Table:                   s.table,
	}
	if item.SpacingMM != nil {
		n.SpacingMM = scale.mm(*item.SpacingMM)
	}
	if item.CoverMM != nil {
		n.CoverMM = scale.mm(*item.CoverMM)
	}
	if item.WastagePercent != nil {
		n.WastagePercent = *item.WastagePercent
	}
	if item.StockLengthM != nil {
		n.StockLengthM = scale.metres(*item.StockLengthM)
	}
	if item.SteelRatePerKg != nil {
		n.SteelRatePerKg = model.Float(*item.SteelRatePerKg)
	}
	if item.MemberBreadthMM != nil {
		n.MemberBreadthMM = scale.mm(*item.MemberBreadthMM)
	}
	if item.MemberDepthMM != nil {
		n.MemberDepthMM = scale.mm(*item.MemberDepthMM)
	}
	return n, nil
}

// checkNumbers rejects non-finite and negative values before any range rule applies.
func checkNumbers(item model.BarGroupInput) error {
	if err := checkValue("bar_diameter_mm", item.BarDiameterMM); err != nil {
		return err
	}
	if item.NumBars < 0 {
		return unitErr("num_bars", float64(item.NumBars))
	}
	if err := checkValue("clear_length_m", item.ClearLengthM); err != nil {
		return err
	}

	optional := []struct {
		field string
		v     *float64
	}{
		{"spacing_mm", item.SpacingMM},
		{"hook_length_mm", item.HookLengthMM},
		{"development_length_m", item.DevelopmentLengthM},
		{"cover_mm", item.CoverMM},
		{"wastage_percent", item.WastagePercent},
		{"lap_length_m", item.LapLengthM},
		{"stock_length_m", item.StockLengthM},
		{"steel_rate_per_kg", item.SteelRatePerKg},
		{"member_breadth_mm", item.MemberBreadthMM},
		{"member_depth_mm", item.MemberDepthMM},
		{"lap_length_m", item.LapLengthM},
	}
	for _, o := range optional {
		if err := checkOptional(o.field, o.v); err != nil {
			return err
		}
	}
	for i, a := range item.BendAngles {
		if err := checkValue(fmt.Sprintf("bend_angles[%d]", i), a); err != nil {
			return err
		}
	}
	return nil
}

func enumErr(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return validationErr(field, "is required")
	}
	return validationErr(field, fmt.Sprintf("has unknown value %q", value))
}
