package export

import (
	"io"

	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the XLSX export.
const (
	ScheduleSheet = "Schedule"
	SummarySheet  = "Summary"
)

// WriteXLSX writes a workbook with the bar marks on ScheduleSheet and the project details,
// diameter totals and compliance notes on SummarySheet.
func WriteXLSX(w io.Writer, s *model.Schedule) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName(f.GetSheetName(0), ScheduleSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	sw := sheetWriter{f: f, sheet: ScheduleSheet, bold: bold}
	cols := scheduleColumns(s.Currency)
	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = c.title
	}
	sw.row(header, true)
	for _, r := range s.Results {
		cells := make([]interface{}, len(cols))
		for i, c := range cols {
			cells[i] = c.value(r)
		}
		sw.row(cells, false)
	}
	sw.freezeHeader()
	sw.widths(len(cols), 14)

	sum := sheetWriter{f: f, sheet: SummarySheet, bold: bold}
	for _, kv := range projectLines(s.Project) {
		sum.row([]interface{}{kv[0], kv[1]}, false)
	}
	for _, kv := range summaryLines(s) {
		sum.row([]interface{}{kv[0], kv[1]}, false)
	}
	sum.blank()
	sum.row(toCells(diameterHeader), true)
	for _, d := range s.Summary.ByDiameter {
		sum.row(diameterRow(d), false)
	}
	if len(s.ComplianceNotes) > 0 {
		sum.blank()
		sum.row([]interface{}{"Compliance notes"}, true)
		for _, note := range s.ComplianceNotes {
			sum.row([]interface{}{note}, false)
		}
	}
	sum.widths(2, 32)

	if sw.err != nil {
		return sw.err
	}
	if sum.err != nil {
		return sum.err
	}
	return f.Write(w)
}

// sheetWriter appends rows to one sheet and keeps the first error.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	bold  int
	next  int
	err   error
}

func (w *sheetWriter) row(cells []interface{}, header bool) {
	if w.err != nil {
		return
	}
	w.next++
	start, err := excelize.CoordinatesToCellName(1, w.next)
	if err != nil {
		w.err = err
		return
	}
	if w.err = w.f.SetSheetRow(w.sheet, start, &cells); w.err != nil || !header {
		return
	}
	end, err := excelize.CoordinatesToCellName(len(cells), w.next)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellStyle(w.sheet, start, end, w.bold)
}

func (w *sheetWriter) blank() {
	w.next++
}

func (w *sheetWriter) freezeHeader() {
	if w.err != nil {
		return
	}
	w.err = w.f.SetPanes(w.sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func (w *sheetWriter) widths(n int, width float64) {
	if w.err != nil {
		return
	}
	last, err := excelize.ColumnNumberToName(n)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetColWidth(w.sheet, "A", last, width)
}

func toCells(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
