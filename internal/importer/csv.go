package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ReadCSV parses comma-separated bar rows. Rows may have fewer cells than the header and
// RowError.Row is the line number in the file.
func ReadCSV(r io.Reader) (*Batch, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []record
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &RowError{Row: pe.StartLine, Err: pe.Err}
			}
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, record{line: line, cells: rec})
	}
	return parseRows(rows)
}

// WriteCSVTemplate writes the import header, optional columns included.
func WriteCSVTemplate(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(templateHeader()); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func templateHeader() []string {
	out := make([]string, 0, len(Header)+len(OptionalHeader))
	out = append(out, Header...)
	return append(out, OptionalHeader...)
}
