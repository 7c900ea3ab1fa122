// Package export renders computed schedules as CSV, XLSX, PDF and plain-text tables.
// Values are rounded here and only here: lengths to 3 decimals, weights and money to 2.
package export

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/guttosm/bbs-service/internal/domain/model"
)

// ErrUnsupportedFormat is returned for unknown export formats.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format is an export file format.
type Format string

// Supported formats.
const (
	FormatCSV   Format = "csv"
	FormatXLSX  Format = "xlsx"
	FormatPDF   Format = "pdf"
	FormatTable Format = "table"
)

var contentTypes = map[Format]string{
	FormatCSV:   "text/csv; charset=utf-8",
	FormatXLSX:  "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatPDF:   "application/pdf",
	FormatTable: "text/plain; charset=utf-8",
}

// ParseFormat resolves a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := contentTypes[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
	return f, nil
}

// ContentType returns the MIME type of a format.
func (f Format) ContentType() string {
	return contentTypes[f]
}

// Filename returns a download name for the schedule, derived from the project reference or name.
func (f Format) Filename(s *model.Schedule) string {
	base := "bbs"
	if s != nil {
		for _, v := range []string{s.Project.Reference, s.Project.Name} {
			if slug := slugify(v); slug != "" {
				base = "bbs-" + slug
				break
			}
		}
	}
	ext := string(f)
	if f == FormatTable {
		ext = "txt"
	}
	return base + "." + ext
}

// Write renders s in format f.
func Write(w io.Writer, s *model.Schedule, f Format) error {
	if s == nil {
		return errors.New("nil schedule")
	}
	switch f {
	case FormatCSV:
		return WriteCSV(w, s)
	case FormatXLSX:
		return WriteXLSX(w, s)
	case FormatPDF:
		return WritePDF(w, s)
	case FormatTable:
		return WriteTable(w, s)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

type column struct {
	title string
	// value returns a string, an int or an already rounded float64.
	value func(model.ScheduleRow) interface{}
}

func scheduleColumns(currency string) []column {
	money := "Cost"
	rate := "Rate/kg"
	if currency != "" {
		money += " (" + currency + ")"
		rate += " (" + currency + ")"
	}
	return []column{
		{"Bar Mark", func(r model.ScheduleRow) interface{} { return r.BarMark }},
		{"Member", func(r model.ScheduleRow) interface{} { return r.MemberID }},
		{"Element", func(r model.ScheduleRow) interface{} { return string(r.ElementType) }},
		{"Bar Type", func(r model.ScheduleRow) interface{} { return string(r.BarType) }},
		{"Shape", func(r model.ScheduleRow) interface{} { return string(r.ShapeCode) }},
		{"Dia (mm)", func(r model.ScheduleRow) interface{} { return r.BarDiameterMM }},
		{"No. of Bars", func(r model.ScheduleRow) interface{} { return r.NumBars }},
		{"Cutting Length (m)", func(r model.ScheduleRow) interface{} { return Length(r.CuttingLengthM) }},
		{"Total Length (m)", func(r model.ScheduleRow) interface{} { return Length(r.TotalLengthM) }},
		{"Unit Wt (kg/m)", func(r model.ScheduleRow) interface{} { return round(r.UnitWeightKgPerM, 3) }},
		{"Weight (kg)", func(r model.ScheduleRow) interface{} { return Weight(r.TotalWeightKg) }},
		{"Wastage (%)", func(r model.ScheduleRow) interface{} { return round(r.WastagePercent, 2) }},
		{"Weight incl. Wastage (kg)", func(r model.ScheduleRow) interface{} { return Weight(r.WeightWithWastageKg) }},
		{"Lap (m)", func(r model.ScheduleRow) interface{} { return optional(r.LapLengthM, 3) }},
		{"Splices", func(r model.ScheduleRow) interface{} { return r.SpliceCount }},
		{rate, func(r model.ScheduleRow) interface{} { return optional(r.RatePerKg, 2) }},
		{money, func(r model.ScheduleRow) interface{} { return optional(r.TotalCost, 2) }},
		{"Hook Details", func(r model.ScheduleRow) interface{} { return r.HookDetails }},
		{"Remarks", func(r model.ScheduleRow) interface{} { return strings.Join(r.Remarks, "; ") }},
	}
}

// summaryLines returns the label/value pairs printed under every schedule.
func summaryLines(s *model.Schedule) [][2]string {
	sum := s.Summary
	lines := [][2]string{
		{"Design code", string(s.CodeUsed)},
		{"Total bars", strconv.Itoa(sum.TotalBars)},
		{"Grand total length (m)", text(Length(sum.GrandTotalLengthM))},
		{"Total steel weight (kg)", text(Weight(sum.TotalSteelWeightKg))},
		{"Total weight incl. wastage (kg)", text(Weight(sum.TotalWeightWithWastageKg))},
	}
	if sum.TotalCost != nil {
		label := "Total cost"
		if s.Currency != "" {
			label += " (" + s.Currency + ")"
		}
		lines = append(lines, [2]string{label, text(Weight(*sum.TotalCost))})
	}
	return lines
}

func projectLines(p model.ProjectMeta) [][2]string {
	var lines [][2]string
	for _, kv := range [][2]string{
		{"Project", p.Name},
		{"Location", p.Location},
		{"Client", p.Client},
		{"Designer", p.Designer},
		{"Reference", p.Reference},
	} {
		if strings.TrimSpace(kv[1]) != "" {
			lines = append(lines, kv)
		}
	}
	return lines
}

var diameterHeader = []string{"Dia (mm)", "Bars", "Total Length (m)", "Weight (kg)"}

func diameterRow(d model.DiameterSummary) []interface{} {
	return []interface{}{d.BarDiameterMM, d.Count, Length(d.TotalLengthM), Weight(d.TotalWeightKg)}
}

// Length rounds a length in metres for display.
func Length(v float64) float64 { return round(v, 3) }

// Weight rounds a weight in kg, or an amount of money, for display.
func Weight(v float64) float64 { return round(v, 2) }

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func optional(v *float64, places int) interface{} {
	if v == nil {
		return ""
	}
	return round(*v, places)
}

func text(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
