package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/guttosm/bbs-service/internal/bbs"
	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/spf13/cobra"
)

func newCodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "List the supported design codes and bar catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tHOOK 90\tHOOK 135\tHOOK 180\tDEVELOPMENT\tLAP\tCOVER (mm)\tWASTAGE (%)\tDESCRIPTION")
			for _, t := range bbs.CodeTables() {
				fmt.Fprintf(tw, "%s\t%sd\t%sd\t%sd\t%sd\t%sd\t%s\t%s\t%s\n",
					t.Code,
					model.FormatFloat(t.Hook90), model.FormatFloat(t.Hook135), model.FormatFloat(t.Hook180),
					model.FormatFloat(t.Development), model.FormatFloat(t.Lap),
					model.FormatFloat(t.DefaultCoverMM), model.FormatFloat(t.DefaultWastagePercent),
					t.Description)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			diameters := make([]string, len(bbs.DiameterCatalog))
			for i, d := range bbs.DiameterCatalog {
				diameters[i] = fmt.Sprintf("%d", d)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "\nDiameters (mm): %s\n", strings.Join(diameters, ", "))
			return err
		},
	}
}
