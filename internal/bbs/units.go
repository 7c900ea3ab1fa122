package bbs

import (
	"math"
	"strings"

	"github.com/guttosm/bbs-service/internal/domain/model"
)

// Conversion factors to metric.
const (
	MetresPerFoot = 0.3048
	MMPerInch     = 25.4
)

// diameterSnapToleranceMM is how far a converted diameter may sit from a catalog size.
const diameterSnapToleranceMM = 1.0

// unitScale converts input fields to metric: long lengths to metres, small dimensions to mm.
type unitScale struct {
	system model.UnitSystem
	length float64
	small  float64
}

var unitScales = map[model.UnitSystem]unitScale{
	model.UnitsMetric:   {system: model.UnitsMetric, length: 1, small: 1},
	model.UnitsImperial: {system: model.UnitsImperial, length: MetresPerFoot, small: MMPerInch},
}

// scaleFor resolves a unit system name, falling back to def when empty.
func scaleFor(u model.UnitSystem, def unitScale) (unitScale, bool) {
	name := model.UnitSystem(strings.ToLower(strings.TrimSpace(string(u))))
	if name == "" {
		return def, true
	}
	s, ok := unitScales[name]
	return s, ok
}

func (s unitScale) metres(v float64) float64 { return v * s.length }
func (s unitScale) mm(v float64) float64     { return v * s.small }

func (s unitScale) metresPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return model.Float(s.metres(*v))
}

func (s unitScale) mmPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return model.Float(s.mm(*v))
}

// diameter maps an input diameter onto the catalog. Metric input must match exactly;
// converted imperial input snaps to the nearest size within tolerance.
func (s unitScale) diameter(v float64) (int, bool) {
	if s.system == model.UnitsMetric {
		r := math.Round(v)
		if math.Abs(v-r) > 1e-9 || !IsCatalogDiameter(int(r)) {
			return 0, false
		}
		return int(r), true
	}

	mm := s.mm(v)
	best, bestDiff := 0, math.MaxFloat64
	for _, c := range DiameterCatalog {
		if diff := math.Abs(mm - float64(c)); diff < bestDiff {
			best, bestDiff = c, diff
		}
	}
	if bestDiff > diameterSnapToleranceMM {
		return 0, false
	}
	return best, true
}

func checkValue(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return unitErr(field, v)
	}
	return nil
}

func checkOptional(field string, v *float64) error {
	if v == nil {
		return nil
	}
	return checkValue(field, *v)
}

func requirePositive(field string, v *float64) error {
	if v != nil && *v == 0 {
		return validationErr(field, "must be positive")
	}
	return nil
}
