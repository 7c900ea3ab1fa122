package bbs

import (
	"strings"

	"github.com/guttosm/bbs-service/internal/domain/model"
)

// DefaultStockLengthM is the standard manufactured bar length.
const DefaultStockLengthM = 12.0

// DiameterCatalog lists the nominal bar diameters in mm.
var DiameterCatalog = []int{6, 8, 10, 12, 16, 20, 25, 32}

// CodeTable holds the per-code multipliers, all expressed in bar diameters (d).
type CodeTable struct {
	Code        model.DesignCode `json:"code"`
	Description string           `json:"description"`

	Hook90  float64 `json:"hook_90_d"`
	Hook135 float64 `json:"hook_135_d"`
	Hook180 float64 `json:"hook_180_d"`

	Development float64 `json:"development_d"`
	Lap         float64 `json:"lap_d"`

	// Crank45 is the extra inclined length added by one 45° crank.
	Crank45 float64 `json:"crank_45_d"`

	DefaultCoverMM        float64 `json:"default_cover_mm"`
	DefaultWastagePercent float64 `json:"default_wastage_percent"`
}

var codeTables = map[model.DesignCode]CodeTable{
	// IS 2502 / SP 34 detailing practice.
	model.CodeIS: {
		Code:                  model.CodeIS,
		Description:           "IS 2502 / SP 34",
		Hook90:                9,
		Hook135:               12,
		Hook180:               16,
		Development:           40,
		Lap:                   40,
		Crank45:               0.42,
		DefaultCoverMM:        25,
		DefaultWastagePercent: 3,
	},
	// NBC follows the IS tables with a higher site wastage allowance.
	model.CodeNBC: {
		Code:                  model.CodeNBC,
		Description:           "NBC (IS tables, site wastage 5%)",
		Hook90:                9,
		Hook135:               12,
		Hook180:               16,
		Development:           40,
		Lap:                   40,
		Crank45:               0.42,
		DefaultCoverMM:        25,
		DefaultWastagePercent: 5,
	},
	// ACI 318 standard hook extensions: 12d (90°), 6d (135° seismic), 4d (180°).
	model.CodeACI: {
		Code:                  model.CodeACI,
		Description:           "ACI 318 standard hooks",
		Hook90:                12,
		Hook135:               6,
		Hook180:               4,
		Development:           48,
		Lap:                   40,
		Crank45:               0.42,
		DefaultCoverMM:        40,
		DefaultWastagePercent: 3,
	},
}

// LookupCode returns the table for a design code. The empty code selects IS.
func LookupCode(code model.DesignCode) (CodeTable, error) {
	c := model.DesignCode(strings.ToUpper(strings.TrimSpace(string(code))))
	if c == "" {
		c = model.CodeIS
	}
	t, ok := codeTables[c]
	if !ok {
		return CodeTable{}, &UnknownCodeError{Code: string(code)}
	}
	return t, nil
}

// CodeTables returns all supported tables ordered IS, NBC, ACI.
func CodeTables() []CodeTable {
	return []CodeTable{codeTables[model.CodeIS], codeTables[model.CodeNBC], codeTables[model.CodeACI]}
}

// HookMultiplier returns the hook allowance in bar diameters for a hook type.
func (t CodeTable) HookMultiplier(h model.HookType) float64 {
	switch h {
	case model.Hook90:
		return t.Hook90
	case model.Hook135:
		return t.Hook135
	case model.Hook180:
		return t.Hook180
	}
	return 0
}

// CrankMultiplier returns the extra length in bar diameters contributed by one bend.
// It is piecewise linear through 0° -> 0, 45° -> Crank45, 90° -> Hook90 and 180° -> Hook180.
func (t CodeTable) CrankMultiplier(angle float64) float64 {
	switch {
	case angle <= 0:
		return 0
	case angle <= 45:
		return t.Crank45 * angle / 45
	case angle <= 90:
		return t.Crank45 + (t.Hook90-t.Crank45)*(angle-45)/45
	case angle <= 180:
		return t.Hook90 + (t.Hook180-t.Hook90)*(angle-90)/90
	}
	return t.Hook180
}

// UnitWeight returns the mass per metre of a bar in kg/m (d²/162, d in mm).
func UnitWeight(diameterMM int) float64 {
	d := float64(diameterMM)
	return d * d / 162
}

// IsCatalogDiameter reports whether d is a nominal catalog diameter.
func IsCatalogDiameter(d int) bool {
	for _, c := range DiameterCatalog {
		if c == d {
			return true
		}
	}
	return false
}
