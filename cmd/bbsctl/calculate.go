package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/guttosm/bbs-service/config"
	"github.com/guttosm/bbs-service/internal/bbs"
	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/guttosm/bbs-service/internal/export"
	"github.com/guttosm/bbs-service/internal/service"
	"github.com/spf13/cobra"
)

const formatJSON = "json"

type calculateOptions struct {
	input   string
	options string
	format  string
	out     string
}

func newCalculateCmd() *cobra.Command {
	var o calculateOptions

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Compute a bar bending schedule",
		Long: "Reads bar groups from --input and prints the schedule. Options in --options replace those in the input file; " +
			"anything still unset falls back to the BBS_* environment defaults and then the design code.",
		Example: "  bbsctl calculate --input slab.xlsx --options tower-a.yaml --format pdf --out tower-a.pdf",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalculate(cmd, o)
		},
	}

	cmd.Flags().StringVarP(&o.input, "input", "i", "", "bar groups file (.csv, .xlsx, .yaml or .json)")
	cmd.Flags().StringVar(&o.options, "options", "", "options file (.yaml or .json)")
	cmd.Flags().StringVarP(&o.format, "format", "f", string(export.FormatTable), "output format: table, json, csv, xlsx or pdf")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "write to this file instead of stdout")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runCalculate(cmd *cobra.Command, o calculateOptions) error {
	render, binary, err := renderer(o.format)
	if err != nil {
		return err
	}
	if binary && o.out == "" {
		return fmt.Errorf("--out is required for %s output", o.format)
	}

	in, err := loadInput(o.input)
	if err != nil {
		return err
	}
	if o.options != "" {
		if in.Options, err = loadOptions(o.options); err != nil {
			return err
		}
	}

	calculator := service.NewScheduleCalculatorService(service.WithDefaults(config.Load().BBS.Options()))
	schedule, err := calculator.Calculate(cmd.Context(), in.Items, in.Options)
	if err != nil {
		return locate(err, in)
	}

	var buf bytes.Buffer
	if err := render(&buf, schedule); err != nil {
		return err
	}
	if o.out == "" {
		_, err = buf.WriteTo(cmd.OutOrStdout())
		return err
	}
	if err := os.WriteFile(o.out, buf.Bytes(), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bar groups, %.2f kg)\n", o.out, len(schedule.Results), schedule.Summary.TotalSteelWeightKg)
	return nil
}

// renderer returns the writer for a format and whether its output is binary.
func renderer(format string) (func(io.Writer, *model.Schedule) error, bool, error) {
	if format == formatJSON {
		return writeJSON, false, nil
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, false, err
	}
	binary := f == export.FormatXLSX || f == export.FormatPDF
	return func(w io.Writer, s *model.Schedule) error { return export.Write(w, s, f) }, binary, nil
}

func writeJSON(w io.Writer, s *model.Schedule) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// locate prefixes engine errors on sheet input with the offending sheet row.
func locate(err error, in *input) error {
	if in.Batch == nil {
		return err
	}
	if loc, ok := bbs.Locate(err); ok && loc.ItemIndex != bbs.OptionsIndex {
		return fmt.Errorf("row %d: %w", in.Batch.RowOf(loc.ItemIndex), err)
	}
	return err
}
