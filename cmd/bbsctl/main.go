// Command bbsctl computes bar bending schedules from item sheets without running the service.
package main

import (
	"fmt"
	"os"

	"github.com/guttosm/bbs-service/internal/logger"
	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func newRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:          "bbsctl",
		Short:        "Bar bending schedule calculator",
		Long:         "bbsctl computes cutting lengths, weights, laps and costs for reinforcement bar groups read from CSV, XLSX, YAML or JSON files.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(logLevel, true)
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newCalculateCmd())
	cmd.AddCommand(newTemplateCmd())
	cmd.AddCommand(newCodesCmd())
	cmd.AddCommand(newKeysCmd())
	cmd.AddCommand(newTokenCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bbsctl %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
