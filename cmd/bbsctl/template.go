package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/guttosm/bbs-service/internal/importer"
	"github.com/spf13/cobra"
)

func newTemplateCmd() *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write a blank import sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := importer.ParseFormat(format)
			if err != nil {
				return err
			}
			if f == importer.FormatXLSX && out == "" {
				return fmt.Errorf("--out is required for %s output", f)
			}

			var buf bytes.Buffer
			if f == importer.FormatXLSX {
				err = importer.WriteXLSXTemplate(&buf)
			} else {
				err = importer.WriteCSVTemplate(&buf)
			}
			if err != nil {
				return err
			}

			if out == "" {
				_, err = buf.WriteTo(cmd.OutOrStdout())
				return err
			}
			return os.WriteFile(out, buf.Bytes(), 0o644)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(importer.FormatCSV), "sheet format: csv or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of stdout")
	return cmd
}
