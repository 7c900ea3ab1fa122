package bbs

import (
	"fmt"

	"github.com/guttosm/bbs-service/internal/domain/model"
)

// Classification is the shape chosen for a bar group.
type Classification struct {
	Shape model.ShapeCode
	// Fallback is set when no rule matched and the custom shape was used.
	Fallback bool
	Notes    []string
}

// Classifier maps a normalized bar group to a canonical shape. It never fails.
type Classifier interface {
	Classify(item NormalizedItem) Classification
}

// ShapeRule recognises one shape family.
type ShapeRule interface {
	Match(item NormalizedItem) (model.ShapeCode, bool)
}

// RuleClassifier evaluates an explicit shape preference, then its rules in order.
type RuleClassifier struct {
	rules []ShapeRule
}

// NewRuleClassifier creates a classifier from ordered rules.
func NewRuleClassifier(rules ...ShapeRule) *RuleClassifier {
	r := make([]ShapeRule, len(rules))
	copy(r, rules)
	return &RuleClassifier{rules: r}
}

// DefaultClassifier returns the standard rule order.
func DefaultClassifier() *RuleClassifier {
	return NewRuleClassifier(StirrupRule{}, CrankRule{}, StraightRule{}, URule{}, LRule{})
}

// Classify implements Classifier.
func (c *RuleClassifier) Classify(item NormalizedItem) Classification {
	var notes []string
	if item.ShapePreference != "" {
		if sc, ok := model.ParseShapeCode(string(item.ShapePreference)); ok {
			return Classification{Shape: sc}
		}
		notes = append(notes, fmt.Sprintf("shape preference %q not recognised, shape inferred instead", item.ShapePreference))
	}

	for _, rule := range c.rules {
		if sc, ok := rule.Match(item); ok {
			return Classification{Shape: sc, Notes: notes}
		}
	}

	notes = append(notes, "shape could not be inferred, custom shape used (clear length plus explicit hook length only)")
	return Classification{Shape: model.ShapeCustom, Fallback: true, Notes: notes}
}

// StirrupRule classifies stirrups and ties.
type StirrupRule struct{}

// Match implements ShapeRule.
func (StirrupRule) Match(item NormalizedItem) (model.ShapeCode, bool) {
	return model.ShapeStirrup, item.BarType == model.BarStirrup
}

// CrankRule classifies main column bars with several bends and bars with only inclined bends.
type CrankRule struct{}

// Match implements ShapeRule.
func (CrankRule) Match(item NormalizedItem) (model.ShapeCode, bool) {
	if item.BarType == model.BarMain && item.ElementType == model.ElementColumn && len(item.BendAngles) > 1 {
		return model.ShapeCrank, true
	}
	if len(item.BendAngles) < 2 {
		return "", false
	}
	for _, a := range item.BendAngles {
		if a >= 80 {
			return "", false
		}
	}
	return model.ShapeCrank, true
}

// StraightRule classifies bars without bends. Column and custom members are
// left to the fallback, so their unbent bars carry a compliance note.
type StraightRule struct{}

// Match implements ShapeRule.
func (StraightRule) Match(item NormalizedItem) (model.ShapeCode, bool) {
	switch item.ElementType {
	case model.ElementColumn, model.ElementCustom:
		return "", false
	}
	return model.ShapeStraight, len(item.BendAngles) == 0
}

// URule classifies a single right-angle bend hooked at both ends, and bars
// with a right-angle bend at each end.
type URule struct{}

// Match implements ShapeRule.
func (URule) Match(item NormalizedItem) (model.ShapeCode, bool) {
	switch len(item.BendAngles) {
	case 1:
		return model.ShapeU, rightAngle(item.BendAngles[0]) && hooked(item)
	case 2:
		return model.ShapeU, rightAngle(item.BendAngles[0]) && rightAngle(item.BendAngles[1])
	}
	return "", false
}

// LRule classifies bars with a single right-angle bend and no end hooks.
type LRule struct{}

// Match implements ShapeRule.
func (LRule) Match(item NormalizedItem) (model.ShapeCode, bool) {
	return model.ShapeL, len(item.BendAngles) == 1 && rightAngle(item.BendAngles[0]) && !hooked(item)
}

// hooked reports whether the bar carries end hooks. Hooks always come in pairs.
func hooked(item NormalizedItem) bool {
	return item.HookType != model.HookNone || item.HookLengthMM != nil
}

func rightAngle(a float64) bool {
	return a >= 80 && a <= 100
}
