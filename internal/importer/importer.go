// Package importer reads bar groups from CSV and XLSX sheets with the fixed BBS column schema.
package importer

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/guttosm/bbs-service/internal/domain/model"
)

// Header is the fixed column schema, in template order.
var Header = []string{
	"element_type",
	"member_id",
	"bar_type",
	"bar_diameter_mm",
	"num_bars",
	"spacing_mm",
	"clear_length_m",
	"hook_type",
	"hook_length_mm",
	"bend_angles",
	"development_length_m",
	"cover_mm",
	"wastage_percent",
	"lap_length_m",
	"stock_length_m",
	"steel_rate_per_kg",
}

// OptionalHeader lists trailing columns accepted after Header.
var OptionalHeader = []string{"shape_preference", "member_breadth_mm", "member_depth_mm"}

var requiredColumns = []string{"element_type", "bar_type", "bar_diameter_mm", "num_bars", "clear_length_m"}

var (
	// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptySheet is returned when a sheet has a header but no bar rows.
	ErrEmptySheet = errors.New("sheet has no bar rows")
)

// Format is an import file format.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat resolves a format name such as "csv" or ".XLSX".
func ParseFormat(s string) (Format, error) {
	switch Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatOf picks the format from a file name extension.
func FormatOf(filename string) (Format, error) {
	return ParseFormat(filepath.Ext(filename))
}

// RowError locates a parse failure. Row is the 1-based line or sheet row.
type RowError struct {
	Row    int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("row %d, column %s: %v", e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Batch is the result of an import. Rows[i] is the sheet row of Items[i].
type Batch struct {
	Items []model.BarGroupInput
	Rows  []int
}

// RowOf returns the sheet row of item index i, or 0 when i is out of range.
func (b *Batch) RowOf(i int) int {
	if b == nil || i < 0 || i >= len(b.Rows) {
		return 0
	}
	return b.Rows[i]
}

// Read parses r in the given format.
func Read(r io.Reader, format Format) (*Batch, error) {
	switch format {
	case FormatCSV:
		return ReadCSV(r)
	case FormatXLSX:
		return ReadXLSX(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// record is one sheet row with its 1-based line number.
type record struct {
	line  int
	cells []string
}

func numbered(rows [][]string) []record {
	out := make([]record, len(rows))
	for i, r := range rows {
		out[i] = record{line: i + 1, cells: r}
	}
	return out
}

// parseRows maps sheet rows to bar groups. The first non-blank row is the header.
func parseRows(rows []record) (*Batch, error) {
	headerRow := -1
	for i, row := range rows {
		if !blank(row.cells) {
			headerRow = i
			break
		}
	}
	if headerRow < 0 {
		return nil, ErrEmptySheet
	}

	columns, err := indexHeader(rows[headerRow].cells, rows[headerRow].line)
	if err != nil {
		return nil, err
	}

	batch := &Batch{}
	for _, rec := range rows[headerRow+1:] {
		if blank(rec.cells) {
			continue
		}
		p := rowParser{row: rec.line, cells: rec.cells, columns: columns}
		item, err := p.item()
		if err != nil {
			return nil, err
		}
		batch.Items = append(batch.Items, item)
		batch.Rows = append(batch.Rows, rec.line)
	}
	if len(batch.Items) == 0 {
		return nil, ErrEmptySheet
	}
	return batch, nil
}

func indexHeader(header []string, row int) (map[string]int, error) {
	known := make(map[string]bool, len(Header)+len(OptionalHeader))
	for _, h := range Header {
		known[h] = true
	}
	for _, h := range OptionalHeader {
		known[h] = true
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if !known[name] {
			continue
		}
		if _, dup := columns[name]; dup {
			return nil, &RowError{Row: row, Column: name, Err: errors.New("duplicate column")}
		}
		columns[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, &RowError{Row: row, Column: name, Err: errors.New("missing required column")}
		}
	}
	return columns, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

type rowParser struct {
	row     int
	cells   []string
	columns map[string]int
}

func (p rowParser) cell(name string) string {
	i, ok := p.columns[name]
	if !ok || i >= len(p.cells) {
		return ""
	}
	return strings.TrimSpace(p.cells[i])
}

func (p rowParser) fail(column string, err error) error {
	return &RowError{Row: p.row, Column: column, Err: err}
}

func (p rowParser) number(name string) (float64, error) {
	v, err := p.optional(name)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, p.fail(name, errors.New("value is required"))
	}
	return *v, nil
}

func (p rowParser) optional(name string) (*float64, error) {
	s := p.cell(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, p.fail(name, fmt.Errorf("%q is not a number", s))
	}
	return &v, nil
}

func (p rowParser) item() (model.BarGroupInput, error) {
	var item model.BarGroupInput

	et, ok := model.ParseElementType(p.cell("element_type"))
	if !ok {
		return item, p.fail("element_type", fmt.Errorf("unknown element type %q", p.cell("element_type")))
	}
	bt, ok := model.ParseBarType(p.cell("bar_type"))
	if !ok {
		return item, p.fail("bar_type", fmt.Errorf("unknown bar type %q", p.cell("bar_type")))
	}
	hook, ok := model.ParseHookType(p.cell("hook_type"))
	if !ok {
		return item, p.fail("hook_type", fmt.Errorf("unknown hook type %q", p.cell("hook_type")))
	}
	var shape model.ShapeCode
	if s := p.cell("shape_preference"); s != "" {
		if shape, ok = model.ParseShapeCode(s); !ok {
			return item, p.fail("shape_preference", fmt.Errorf("unknown shape %q", s))
		}
	}

	diameter, err := p.number("bar_diameter_mm")
	if err != nil {
		return item, err
	}
	numBars, err := p.number("num_bars")
	if err != nil {
		return item, err
	}
	if numBars != float64(int(numBars)) {
		return item, p.fail("num_bars", fmt.Errorf("%s is not a whole number", p.cell("num_bars")))
	}
	clear, err := p.number("clear_length_m")
	if err != nil {
		return item, err
	}
	angles, err := p.angles()
	if err != nil {
		return item, err
	}

	item = model.BarGroupInput{
		ElementType:     et,
		MemberID:        p.cell("member_id"),
		BarType:         bt,
		BarDiameterMM:   diameter,
		NumBars:         int(numBars),
		ClearLengthM:    clear,
		HookType:        hook,
		BendAngles:      angles,
		ShapePreference: shape,
	}

	optionals := []struct {
		column string
		dst    **float64
	}{
		{"spacing_mm", &item.SpacingMM},
		{"hook_length_mm", &item.HookLengthMM},
		{"development_length_m", &item.DevelopmentLengthM},
		{"cover_mm", &item.CoverMM},
		{"wastage_percent", &item.WastagePercent},
		{"lap_length_m", &item.LapLengthM},
		{"stock_length_m", &item.StockLengthM},
		{"steel_rate_per_kg", &item.SteelRatePerKg},
		{"member_breadth_mm", &item.MemberBreadthMM},
		{"member_depth_mm", &item.MemberDepthMM},
	}
	for _, o := range optionals {
		v, err := p.optional(o.column)
		if err != nil {
			return item, err
		}
		*o.dst = v
	}
	return item, nil
}

// angles parses the ';'-delimited bend_angles cell. Empty entries are skipped.
func (p rowParser) angles() ([]float64, error) {
	s := p.cell("bend_angles")
	if s == "" {
		return nil, nil
	}
	var out []float64
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSuffix(part, "°"), 64)
		if err != nil {
			return nil, p.fail("bend_angles", fmt.Errorf("%q is not an angle", part))
		}
		out = append(out, v)
	}
	return out, nil
}
