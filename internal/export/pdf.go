package export

import (
	"fmt"
	"io"
	"time"

	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/phpdave11/gofpdf"
)

type pdfColumn struct {
	title string
	width float64
	align string
	value func(model.ScheduleRow) string
}

var pdfColumns = []pdfColumn{
	{"Mark", 16, "L", func(r model.ScheduleRow) string { return r.BarMark }},
	{"Member", 20, "L", func(r model.ScheduleRow) string { return r.MemberID }},
	{"Element", 16, "L", func(r model.ScheduleRow) string { return string(r.ElementType) }},
	{"Bar Type", 22, "L", func(r model.ScheduleRow) string { return string(r.BarType) }},
	{"Shape", 16, "L", func(r model.ScheduleRow) string { return string(r.ShapeCode) }},
	{"Dia", 12, "R", func(r model.ScheduleRow) string { return fmt.Sprint(r.BarDiameterMM) }},
	{"Nos", 12, "R", func(r model.ScheduleRow) string { return fmt.Sprint(r.NumBars) }},
	{"Cut L (m)", 20, "R", func(r model.ScheduleRow) string { return text(Length(r.CuttingLengthM)) }},
	{"Total L (m)", 22, "R", func(r model.ScheduleRow) string { return text(Length(r.TotalLengthM)) }},
	{"kg/m", 18, "R", func(r model.ScheduleRow) string { return text(round(r.UnitWeightKgPerM, 3)) }},
	{"Wt (kg)", 20, "R", func(r model.ScheduleRow) string { return text(Weight(r.TotalWeightKg)) }},
	{"Wt+W (kg)", 22, "R", func(r model.ScheduleRow) string { return text(Weight(r.WeightWithWastageKg)) }},
	{"Laps", 14, "R", func(r model.ScheduleRow) string { return fmt.Sprint(r.SpliceCount) }},
	{"Cost", 22, "R", func(r model.ScheduleRow) string { return text(optional(r.TotalCost, 2)) }},
	{"Hooks", 25, "L", func(r model.ScheduleRow) string { return r.HookDetails }},
}

const (
	pdfRowHeight    = 6.0
	pdfBottomMargin = 15.0
)

// WritePDF writes a landscape A4 schedule with the bar table, the diameter summary and the
// compliance notes.
func WritePDF(w io.Writer, s *model.Schedule) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, pdfBottomMargin)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-10)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Bar Bending Schedule")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	for _, kv := range projectLines(s.Project) {
		pdf.Cell(0, 5, tr(fmt.Sprintf("%s: %s", kv[0], kv[1])))
		pdf.Ln(5)
	}
	pdf.Cell(0, 5, fmt.Sprintf("Design code: %s    Date: %s", s.CodeUsed, time.Now().Format("2006-01-02")))
	pdf.Ln(8)

	_, pageHeight := pdf.GetPageSize()
	tableHeader := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(230, 230, 230)
		for _, c := range pdfColumns {
			pdf.CellFormat(c.width, pdfRowHeight, c.title, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
	}

	tableHeader()
	for _, r := range s.Results {
		if pdf.GetY()+pdfRowHeight > pageHeight-pdfBottomMargin {
			pdf.AddPage()
			tableHeader()
		}
		for _, c := range pdfColumns {
			pdf.CellFormat(c.width, pdfRowHeight, tr(c.value(r)), "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 6, "Summary by diameter")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "B", 8)
	for _, h := range diameterHeader {
		pdf.CellFormat(35, pdfRowHeight, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 8)
	for _, d := range s.Summary.ByDiameter {
		for _, v := range diameterRow(d) {
			pdf.CellFormat(35, pdfRowHeight, text(v), "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 10)
	for _, kv := range summaryLines(s) {
		pdf.Cell(0, 5, tr(fmt.Sprintf("%s: %s", kv[0], kv[1])))
		pdf.Ln(5)
	}

	if len(s.ComplianceNotes) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(0, 6, "Compliance notes")
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 9)
		for _, note := range s.ComplianceNotes {
			pdf.MultiCell(0, 5, tr("- "+note), "", "L", false)
		}
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
