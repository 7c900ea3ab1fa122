package bbs

import (
	"fmt"
	"math"

	"github.com/guttosm/bbs-service/internal/domain/model"
)

// CuttingResult is the fabricated length of one representative bar of a group.
type CuttingResult struct {
	// Shape is the shape actually computed. A spiral without pitch or section degrades to custom.
	Shape              model.ShapeCode
	CuttingLengthM     float64
	HookDetails        string
	DevelopmentLengthM float64
	Remarks            []string
	Notes              []string
	// CoverUsed is set when the cover entered the formula.
	CoverUsed bool
}

type formula func(item NormalizedItem) (CuttingResult, error)

var formulas = map[model.ShapeCode]formula{
	model.ShapeStraight: straightLength,
	model.ShapeL:        lLength,
	model.ShapeU:        uLength,
	model.ShapeStirrup:  stirrupLength,
	model.ShapeCrank:    crankLength,
	model.ShapeSpiral:   spiralLength,
	model.ShapeCustom:   customLength,
}

// ComputeCuttingLength derives the cutting length of one bar for the given shape.
func ComputeCuttingLength(item NormalizedItem, shape model.ShapeCode) (CuttingResult, error) {
	f, ok := formulas[shape]
	if !ok {
		return CuttingResult{}, validationErr("shape_preference", fmt.Sprintf("has unknown value %q", shape))
	}
	res, err := f(item)
	if err != nil {
		return CuttingResult{}, err
	}
	if res.Shape == "" {
		res.Shape = shape
	}
	if res.CuttingLengthM <= 0 || math.IsNaN(res.CuttingLengthM) {
		return CuttingResult{}, geometryErr("clear_length_m", res.CuttingLengthM,
			fmt.Sprintf("gives a cutting length of %.3f m for a %s bar", res.CuttingLengthM, res.Shape))
	}

	dev, remark := developmentLength(item)
	res.DevelopmentLengthM = dev
	res.Remarks = append(res.Remarks, remark)
	if item.RequiresFullDevelopment {
		res.Remarks = append(res.Remarks, "full development length required at an unsupported end, not included in the cutting length")
	}
	return res, nil
}

// hook is the resolved end-hook allowance of a bar.
type hook struct {
	count      int
	lengthMM   float64
	kind       model.HookType
	multiplier float64
	explicit   bool
}

func (h hook) totalM() float64 {
	return float64(h.count) * h.lengthMM / 1000
}

func (h hook) String() string {
	switch {
	case h.count == 0:
		return "no hooks"
	case h.explicit:
		return fmt.Sprintf("%d x hook @ %s mm (explicit)", h.count, model.FormatFloat(h.lengthMM))
	}
	return fmt.Sprintf("%d x %s° hook @ %s mm (%sd)", h.count, h.kind, model.FormatFloat(h.lengthMM), model.FormatFloat(h.multiplier))
}

// resolveHook applies the hook allowance: explicit length first, then the code multiplier for
// the hook type, falling back to def when the item names no hook type.
func resolveHook(item NormalizedItem, ends int, def model.HookType) hook {
	if item.HookLengthMM != nil {
		return hook{count: ends, lengthMM: *item.HookLengthMM, kind: item.HookType, explicit: true}
	}
	kind := item.HookType
	if kind == model.HookNone {
		kind = def
	}
	m := item.Table.HookMultiplier(kind)
	if m == 0 {
		return hook{}
	}
	return hook{count: ends, lengthMM: m * float64(item.DiameterMM), kind: kind, multiplier: m}
}

func straightLength(item NormalizedItem) (CuttingResult, error) {
	h := resolveHook(item, 2, model.HookNone)
	return CuttingResult{CuttingLengthM: item.ClearLengthM + h.totalM(), HookDetails: h.String()}, nil
}

func lLength(item NormalizedItem) (CuttingResult, error) {
	h := resolveHook(item, 1, model.Hook90)
	return CuttingResult{CuttingLengthM: item.ClearLengthM + h.totalM(), HookDetails: h.String()}, nil
}

func uLength(item NormalizedItem) (CuttingResult, error) {
	h := resolveHook(item, 2, model.Hook90)
	return CuttingResult{CuttingLengthM: item.ClearLengthM + h.totalM(), HookDetails: h.String()}, nil
}

// stirrupLength uses the member core perimeter when the section is known, otherwise the
// supplied leg length. Section dimensions are never guessed.
func stirrupLength(item NormalizedItem) (CuttingResult, error) {
	h := resolveHook(item, 2, model.Hook135)
	d := item.DiameterM()

	if !item.HasSection() {
		return CuttingResult{
			CuttingLengthM: item.ClearLengthM + h.totalM(),
			HookDetails:    h.String(),
			Remarks:        []string{"leg length taken as supplied clear_length_m, member section not given"},
		}, nil
	}

	coreB := item.MemberBreadthMM - 2*item.CoverMM
	coreD := item.MemberDepthMM - 2*item.CoverMM
	if coreB <= 0 || coreD <= 0 {
		return CuttingResult{}, geometryErr("cover_mm", 0, fmt.Sprintf("of %s mm leaves no core inside a %sx%s mm section",
			model.FormatFloat(item.CoverMM), model.FormatFloat(item.MemberBreadthMM), model.FormatFloat(item.MemberDepthMM)))
	}

	perimeter := 2 * (coreB + coreD) / 1000
	return CuttingResult{
		CuttingLengthM: perimeter + h.totalM() - 3*2*d,
		HookDetails:    h.String(),
		Remarks: []string{fmt.Sprintf("core %sx%s mm, 3 x 90° bend deductions of 2d",
			model.FormatFloat(coreB), model.FormatFloat(coreD))},
		CoverUsed: true,
	}, nil
}

func crankLength(item NormalizedItem) (CuttingResult, error) {
	h := resolveHook(item, 2, model.HookNone)
	d := item.DiameterM()

	var extra float64
	for _, a := range item.BendAngles {
		extra += item.Table.CrankMultiplier(a) * d
	}
	return CuttingResult{
		CuttingLengthM: item.ClearLengthM + h.totalM() + extra,
		HookDetails:    h.String(),
		Remarks:        []string{fmt.Sprintf("%d bends add %.3f m of inclined length", len(item.BendAngles), extra)},
	}, nil
}

// spiralLength treats clear_length_m as the helix height and spacing_mm as the pitch.
func spiralLength(item NormalizedItem) (CuttingResult, error) {
	if item.SpacingMM <= 0 || item.MemberBreadthMM <= 0 {
		res, err := customLength(item)
		if err != nil {
			return CuttingResult{}, err
		}
		res.Shape = model.ShapeCustom
		res.Notes = append(res.Notes, "spiral needs spacing_mm (pitch) and member_breadth_mm, computed as custom")
		return res, nil
	}

	core := item.MemberBreadthMM - 2*item.CoverMM - float64(item.DiameterMM)
	if core <= 0 {
		return CuttingResult{}, geometryErr("cover_mm", 0, fmt.Sprintf("of %s mm leaves no spiral core inside a %s mm member",
			model.FormatFloat(item.CoverMM), model.FormatFloat(item.MemberBreadthMM)))
	}

	h := resolveHook(item, 2, model.HookNone)
	turns := item.ClearLengthM * 1000 / item.SpacingMM
	perTurnMM := math.Hypot(math.Pi*core, item.SpacingMM)
	return CuttingResult{
		CuttingLengthM: turns*perTurnMM/1000 + h.totalM(),
		HookDetails:    h.String(),
		Remarks: []string{fmt.Sprintf("%.2f turns at %s mm pitch on a %s mm core",
			turns, model.FormatFloat(item.SpacingMM), model.FormatFloat(core))},
		CoverUsed: true,
	}, nil
}

// customLength makes no formula assumptions: clear length plus one explicit hook length.
func customLength(item NormalizedItem) (CuttingResult, error) {
	res := CuttingResult{CuttingLengthM: item.ClearLengthM, HookDetails: "no hooks"}
	if item.HookLengthMM != nil {
		res.CuttingLengthM += *item.HookLengthMM / 1000
		res.HookDetails = fmt.Sprintf("explicit allowance %s mm", model.FormatFloat(*item.HookLengthMM))
	}
	return res, nil
}

func developmentLength(item NormalizedItem) (float64, string) {
	if item.DevelopmentLengthM != nil {
		return *item.DevelopmentLengthM, fmt.Sprintf("development length %.3f m (supplied)", *item.DevelopmentLengthM)
	}
	ld := item.Table.Development * item.DiameterM()
	return ld, fmt.Sprintf("development length %.3f m (%sd)", ld, model.FormatFloat(item.Table.Development))
}
