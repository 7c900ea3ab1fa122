package export

import (
	"encoding/csv"
	"io"

	"github.com/guttosm/bbs-service/internal/domain/model"
)

// WriteCSV writes one row per bar mark followed by the diameter summary, totals and notes.
// Sections are separated by a blank record.
func WriteCSV(w io.Writer, s *model.Schedule) error {
	cw := csv.NewWriter(w)
	cols := scheduleColumns(s.Currency)

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.title
	}
	records := [][]string{header}
	for _, r := range s.Results {
		rec := make([]string, len(cols))
		for i, c := range cols {
			rec[i] = text(c.value(r))
		}
		records = append(records, rec)
	}

	records = append(records, nil, diameterHeader)
	for _, d := range s.Summary.ByDiameter {
		records = append(records, texts(diameterRow(d)))
	}

	records = append(records, nil)
	for _, kv := range summaryLines(s) {
		records = append(records, []string{kv[0], kv[1]})
	}
	for _, note := range s.ComplianceNotes {
		records = append(records, []string{"Note", note})
	}

	for _, rec := range records {
		if rec == nil {
			rec = []string{""}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func texts(vs []interface{}) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = text(v)
	}
	return out
}
