package model

// ScheduleRow is the computed result for one bar group.
//
// CuttingLengthM is the geometric length of one bar. TotalLengthM is the steel consumed by the
// whole group, laps included.
//
// @Description One bar mark of a computed schedule
type ScheduleRow struct {
	BarMark       string      `json:"bar_mark" bson:"bar_mark" example:"B1"`
	MemberID      string      `json:"member_id" bson:"member_id" example:"B1"`
	ElementType   ElementType `json:"element_type" bson:"element_type" example:"beam"`
	BarType       BarType     `json:"bar_type" bson:"bar_type" example:"Main"`
	ShapeCode     ShapeCode   `json:"shape_code" bson:"shape_code" example:"straight"`
	BarDiameterMM int         `json:"bar_diameter_mm" bson:"bar_diameter_mm" example:"16"`
	NumBars       int         `json:"num_bars" bson:"num_bars" example:"4"`

	CuttingLengthM      float64  `json:"cutting_length_m" bson:"cutting_length_m" example:"5.384"`
	TotalLengthM        float64  `json:"total_length_m" bson:"total_length_m" example:"21.536"`
	UnitWeightKgPerM    float64  `json:"unit_weight_kg_per_m" bson:"unit_weight_kg_per_m" example:"1.58"`
	TotalWeightKg       float64  `json:"total_weight_kg" bson:"total_weight_kg" example:"34.03"`
	HookDetails         string   `json:"hook_details" bson:"hook_details" example:"2 x 135° hook @ 192 mm (12d)"`
	LapLengthM          *float64 `json:"lap_length_m,omitempty" bson:"lap_length_m,omitempty"`
	SpliceCount         int      `json:"splice_count" bson:"splice_count"`
	DevelopmentLengthM  float64  `json:"development_length_m" bson:"development_length_m"`
	WastagePercent      float64  `json:"wastage_percent" bson:"wastage_percent"`
	WeightWithWastageKg float64  `json:"weight_with_wastage_kg" bson:"weight_with_wastage_kg"`
	RatePerKg           *float64 `json:"rate_per_kg,omitempty" bson:"rate_per_kg,omitempty"`
	TotalCost           *float64 `json:"total_cost,omitempty" bson:"total_cost,omitempty"`
	Remarks             []string `json:"remarks" bson:"remarks"`
}

// Priced reports whether a steel rate was resolved for the row.
func (r ScheduleRow) Priced() bool {
	return r.TotalCost != nil
}

// DiameterSummary aggregates all rows of one nominal diameter.
type DiameterSummary struct {
	BarDiameterMM int     `json:"bar_diameter_mm" bson:"bar_diameter_mm" example:"16"`
	Count         int     `json:"count" bson:"count" example:"4"`
	TotalLengthM  float64 `json:"total_length_m" bson:"total_length_m"`
	TotalWeightKg float64 `json:"total_weight_kg" bson:"total_weight_kg"`
}

// ScheduleSummary holds the schedule totals.
type ScheduleSummary struct {
	TotalBars                int               `json:"total_bars" bson:"total_bars"`
	GrandTotalLengthM        float64           `json:"grand_total_length_m" bson:"grand_total_length_m"`
	TotalSteelWeightKg       float64           `json:"total_steel_weight_kg" bson:"total_steel_weight_kg"`
	TotalWeightWithWastageKg float64           `json:"total_weight_with_wastage_kg" bson:"total_weight_with_wastage_kg"`
	TotalCost                *float64          `json:"total_cost,omitempty" bson:"total_cost,omitempty"`
	ByDiameter               []DiameterSummary `json:"by_diameter" bson:"by_diameter"`
}

// Schedule is the complete result of a bar bending schedule calculation.
// Callers treat it as a read-only snapshot.
//
// @Description Computed bar bending schedule
type Schedule struct {
	Results         []ScheduleRow   `json:"results" bson:"results"`
	Summary         ScheduleSummary `json:"summary" bson:"summary"`
	Project         ProjectMeta     `json:"project" bson:"project"`
	CodeUsed        DesignCode      `json:"code_used" bson:"code_used" example:"IS"`
	Currency        string          `json:"currency,omitempty" bson:"currency,omitempty" example:"INR"`
	ComplianceNotes []string        `json:"compliance_notes" bson:"compliance_notes"`
}
