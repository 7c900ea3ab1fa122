package export

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/guttosm/bbs-service/internal/domain/model"
)

var tableColumns = []string{"Bar Mark", "Member", "Dia (mm)", "No. of Bars", "Cutting Length (m)", "Total Length (m)", "Weight (kg)", "Splices", "Shape"}

// WriteTable writes an aligned plain-text schedule for terminals.
func WriteTable(w io.Writer, s *model.Schedule) error {
	if lines := projectLines(s.Project); len(lines) > 0 {
		if err := writePairs(w, lines); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tableColumns, "\t"))
	for _, r := range s.Results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\t%s\t%d\t%s\n",
			r.BarMark, r.MemberID, r.BarDiameterMM, r.NumBars,
			text(Length(r.CuttingLengthM)), text(Length(r.TotalLengthM)), text(Weight(r.TotalWeightKg)),
			r.SpliceCount, r.ShapeCode)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	if err := writePairs(w, summaryLines(s)); err != nil {
		return err
	}
	for _, note := range s.ComplianceNotes {
		if _, err := fmt.Fprintf(w, "* %s\n", note); err != nil {
			return err
		}
	}
	return nil
}

func writePairs(w io.Writer, pairs [][2]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, kv := range pairs {
		fmt.Fprintf(tw, "%s:\t%s\n", kv[0], kv[1])
	}
	return tw.Flush()
}
