// Package model defines the core domain entities for the bar bending schedule service.
package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ElementType is the structural member a bar group belongs to.
type ElementType string

// Supported element types.
const (
	ElementBeam    ElementType = "beam"
	ElementColumn  ElementType = "column"
	ElementSlab    ElementType = "slab"
	ElementFooting ElementType = "footing"
	ElementWall    ElementType = "wall"
	ElementStair   ElementType = "stair"
	ElementCustom  ElementType = "custom"
)

// ElementTypes lists every supported element type in display order.
var ElementTypes = []ElementType{
	ElementBeam, ElementColumn, ElementSlab, ElementFooting, ElementWall, ElementStair, ElementCustom,
}

// ParseElementType resolves a case-insensitive element type name.
func ParseElementType(s string) (ElementType, bool) {
	v := ElementType(strings.ToLower(strings.TrimSpace(s)))
	for _, et := range ElementTypes {
		if et == v {
			return et, true
		}
	}
	return "", false
}

// BarType is the structural role of a bar group.
type BarType string

// Supported bar types.
const (
	BarMain         BarType = "Main"
	BarSecondary    BarType = "Secondary"
	BarStirrup      BarType = "Stirrups/Ties"
	BarDistribution BarType = "Distribution"
	BarExtra        BarType = "Extra"
)

// BarTypes lists every supported bar type in display order.
var BarTypes = []BarType{BarMain, BarSecondary, BarStirrup, BarDistribution, BarExtra}

var barTypeAliases = map[string]BarType{
	"main":          BarMain,
	"secondary":     BarSecondary,
	"stirrups/ties": BarStirrup,
	"stirrups":      BarStirrup,
	"stirrup":       BarStirrup,
	"ties":          BarStirrup,
	"tie":           BarStirrup,
	"distribution":  BarDistribution,
	"extra":         BarExtra,
}

// ParseBarType resolves a bar type name, accepting common aliases for stirrups and ties.
func ParseBarType(s string) (BarType, bool) {
	bt, ok := barTypeAliases[strings.ToLower(strings.TrimSpace(s))]
	return bt, ok
}

// HookType is the bend angle of an end hook. It decodes from JSON strings or numbers.
type HookType string

// Supported hook types.
const (
	HookNone   HookType = ""
	Hook90     HookType = "90"
	Hook135    HookType = "135"
	Hook180    HookType = "180"
	HookCustom HookType = "custom"
)

// ParseHookType resolves a hook type. The empty string means no hook.
func ParseHookType(s string) (HookType, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.TrimSuffix(v, "°")
	switch HookType(v) {
	case HookNone, Hook90, Hook135, Hook180, HookCustom:
		return HookType(v), true
	}
	return "", false
}

// UnmarshalJSON accepts both 135 and "135".
func (h *HookType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*h = HookType(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*h = HookType(n.String())
	return nil
}

// ShapeCode is the canonical bar shape used to select a cutting-length formula.
type ShapeCode string

// Supported shape codes.
const (
	ShapeStraight ShapeCode = "straight"
	ShapeL        ShapeCode = "L"
	ShapeU        ShapeCode = "U"
	ShapeCrank    ShapeCode = "crank"
	ShapeStirrup  ShapeCode = "stirrup"
	ShapeSpiral   ShapeCode = "spiral"
	ShapeCustom   ShapeCode = "custom"
)

// ShapeCodes lists every supported shape code.
var ShapeCodes = []ShapeCode{ShapeStraight, ShapeL, ShapeU, ShapeCrank, ShapeStirrup, ShapeSpiral, ShapeCustom}

// ParseShapeCode resolves a shape code name. "l" and "u" are accepted in lower case.
func ParseShapeCode(s string) (ShapeCode, bool) {
	v := strings.TrimSpace(s)
	for _, sc := range ShapeCodes {
		if strings.EqualFold(string(sc), v) {
			return sc, true
		}
	}
	if strings.EqualFold(v, "tie") || strings.EqualFold(v, "stirrup/tie") {
		return ShapeStirrup, true
	}
	return "", false
}

// DesignCode selects the default multiplier tables.
type DesignCode string

// Supported design codes.
const (
	CodeIS  DesignCode = "IS"
	CodeNBC DesignCode = "NBC"
	CodeACI DesignCode = "ACI"
)

// UnitSystem selects how numeric input fields are interpreted.
type UnitSystem string

// Supported unit systems.
const (
	UnitsMetric   UnitSystem = "metric"
	UnitsImperial UnitSystem = "imperial"
)

// BarGroupInput describes N identical bars in a member.
//
// In imperial units the *_m fields are read as feet and the *_mm fields as inches.
//
// @Description One bar group of a bar bending schedule
type BarGroupInput struct {
	ElementType   ElementType `json:"element_type" yaml:"element_type" bson:"element_type" example:"beam"`
	MemberID      string      `json:"member_id" yaml:"member_id" bson:"member_id" example:"B1"`
	BarType       BarType     `json:"bar_type" yaml:"bar_type" bson:"bar_type" example:"Main"`
	BarDiameterMM float64     `json:"bar_diameter_mm" yaml:"bar_diameter_mm" bson:"bar_diameter_mm" example:"16"`
	NumBars       int         `json:"num_bars" yaml:"num_bars" bson:"num_bars" example:"4"`
	ClearLengthM  float64     `json:"clear_length_m" yaml:"clear_length_m" bson:"clear_length_m" example:"5"`

	SpacingMM    *float64  `json:"spacing_mm,omitempty" yaml:"spacing_mm,omitempty" bson:"spacing_mm,omitempty"`
	HookType     HookType  `json:"hook_type,omitempty" yaml:"hook_type,omitempty" bson:"hook_type,omitempty" swaggertype:"string" example:"135"`
	HookLengthMM *float64  `json:"hook_length_mm,omitempty" yaml:"hook_length_mm,omitempty" bson:"hook_length_mm,omitempty"`
	BendAngles   []float64 `json:"bend_angles,omitempty" yaml:"bend_angles,omitempty" bson:"bend_angles,omitempty"`

	DevelopmentLengthM *float64 `json:"development_length_m,omitempty" yaml:"development_length_m,omitempty" bson:"development_length_m,omitempty"`
	CoverMM            *float64 `json:"cover_mm,omitempty" yaml:"cover_mm,omitempty" bson:"cover_mm,omitempty"`
	WastagePercent     *float64 `json:"wastage_percent,omitempty" yaml:"wastage_percent,omitempty" bson:"wastage_percent,omitempty"`
	LapLengthM         *float64 `json:"lap_length_m,omitempty" yaml:"lap_length_m,omitempty" bson:"lap_length_m,omitempty"`
	StockLengthM       *float64 `json:"stock_length_m,omitempty" yaml:"stock_length_m,omitempty" bson:"stock_length_m,omitempty"`
	SteelRatePerKg     *float64 `json:"steel_rate_per_kg,omitempty" yaml:"steel_rate_per_kg,omitempty" bson:"steel_rate_per_kg,omitempty"`

	ShapePreference ShapeCode `json:"shape_preference,omitempty" yaml:"shape_preference,omitempty" bson:"shape_preference,omitempty"`

	// MemberBreadthMM and MemberDepthMM describe the member cross-section for stirrups and spirals.
	MemberBreadthMM *float64 `json:"member_breadth_mm,omitempty" yaml:"member_breadth_mm,omitempty" bson:"member_breadth_mm,omitempty"`
	MemberDepthMM   *float64 `json:"member_depth_mm,omitempty" yaml:"member_depth_mm,omitempty" bson:"member_depth_mm,omitempty"`

	// RequiresFullDevelopment flags an unsupported end. It is reported, never added to the length.
	RequiresFullDevelopment bool       `json:"requires_full_development,omitempty" yaml:"requires_full_development,omitempty" bson:"requires_full_development,omitempty"`
	Units                   UnitSystem `json:"units,omitempty" yaml:"units,omitempty" bson:"units,omitempty"`
}

// ProjectMeta is pass-through project information.
type ProjectMeta struct {
	Name      string `json:"name,omitempty" yaml:"name,omitempty" bson:"name,omitempty"`
	Location  string `json:"location,omitempty" yaml:"location,omitempty" bson:"location,omitempty"`
	Designer  string `json:"designer,omitempty" yaml:"designer,omitempty" bson:"designer,omitempty"`
	Client    string `json:"client,omitempty" yaml:"client,omitempty" bson:"client,omitempty"`
	Reference string `json:"reference,omitempty" yaml:"reference,omitempty" bson:"reference,omitempty"`
}

// Options are the schedule-wide defaults applied when an item does not override them.
// Zero numeric values select the design code default.
//
// @Description Schedule-wide calculation options
type Options struct {
	Code                  DesignCode      `json:"code,omitempty" yaml:"code,omitempty" example:"IS"`
	StockLengthM          float64         `json:"stock_length_m,omitempty" yaml:"stock_length_m,omitempty" example:"12"`
	DefaultCoverMM        float64         `json:"default_cover_mm,omitempty" yaml:"default_cover_mm,omitempty" example:"25"`
	WastagePercentDefault float64         `json:"wastage_percent_default,omitempty" yaml:"wastage_percent_default,omitempty" example:"3"`
	SteelRatePerKg        *float64        `json:"steel_rate_per_kg,omitempty" yaml:"steel_rate_per_kg,omitempty"`
	RatesByDiameter       map[int]float64 `json:"rates_by_diameter,omitempty" yaml:"rates_by_diameter,omitempty"`
	Currency              string          `json:"currency,omitempty" yaml:"currency,omitempty" example:"INR"`
	Units                 UnitSystem      `json:"units,omitempty" yaml:"units,omitempty" example:"metric"`
	Project               ProjectMeta     `json:"project,omitempty" yaml:"project,omitempty"`
}

// Float returns a pointer to v. It keeps optional-field literals short.
func Float(v float64) *float64 {
	return &v
}

// FormatFloat renders v without trailing zeros.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
