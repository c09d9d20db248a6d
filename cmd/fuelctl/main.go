/*
main.go - Command-line reconciliation report

PURPOSE:
  Reads the record database directly and prints the reconciliation the
  server would serve, without needing the HTTP process up. Useful for
  checking the books from a shell or a cron mail.

COMMANDS:
  fuelctl summary --db fuel.db    Monthly ledger table + period totals
  fuelctl explain --db fuel.db    One-line bottom line only

SEE ALSO:
  - engine/engine.go: The computation this prints
  - store/sqlite/sqlite.go: Database access
*/
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/warp/fuel-ledger/engine"
	"github.com/warp/fuel-ledger/store/sqlite"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var dbPath string

	rootCmd := &cobra.Command{
		Use:   "fuelctl",
		Short: "Fuel and compensation reconciliation from the command line",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "fuel.db", "SQLite database path")

	rootCmd.AddCommand(newSummaryCommand(&dbPath))
	rootCmd.AddCommand(newExplainCommand(&dbPath))

	return rootCmd
}

func newSummaryCommand(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the monthly ledger and period totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := loadSummary(cmd.Context(), *dbPath)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}
}

func newExplainCommand(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "explain",
		Short: "Print the one-line reconciliation bottom line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := loadSummary(cmd.Context(), *dbPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), summary.Explanation)
			return nil
		},
	}
}

func loadSummary(ctx context.Context, dbPath string) (engine.PeriodSummary, error) {
	s, err := sqlite.New(dbPath)
	if err != nil {
		return engine.PeriodSummary{}, fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	fuel, adjustments, err := s.Snapshot(ctx)
	if err != nil {
		return engine.PeriodSummary{}, fmt.Errorf("loading records: %w", err)
	}

	return engine.New(engine.DefaultConfig()).Summarize(fuel, adjustments), nil
}

func printSummary(out io.Writer, s engine.PeriodSummary) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MONTH\tKM\tLITERS\tNORM\tDIFF\tACCRUED\tAPPLIED\tREMAINING\tSTATUS")
	for _, m := range s.Monthly {
		applied := m.EffectiveApplied.StringFixed(2)
		if m.Estimated {
			applied = "≈" + applied
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			m.Label,
			m.TotalDistance.StringFixed(0),
			m.TotalLiters.StringFixed(2),
			m.FuelNorm.StringFixed(2),
			m.FuelDiff.StringFixed(2),
			m.AccruedCompensation.StringFixed(2),
			applied,
			m.Remaining.StringFixed(2),
			m.Status,
		)
	}
	w.Flush()

	t := s.Totals
	marker := ""
	if t.Estimated {
		marker = "≈"
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Total distance:     %s km\n", t.TotalDistance.StringFixed(0))
	fmt.Fprintf(out, "Total liters:       %s (norm %s)\n", t.TotalLiters.StringFixed(2), t.TotalNorm.StringFixed(2))
	fmt.Fprintf(out, "Fuel balance:       %s l (adjusted %s%s l)\n", t.FuelDiff.StringFixed(2), marker, t.AdjustedFuelDiff.StringFixed(2))
	fmt.Fprintf(out, "Net compensation:   %s%s\n", marker, t.NetCompensation.StringFixed(2))
	if t.CarryoverDebtAmount.IsPositive() {
		fmt.Fprintf(out, "Carried debt:       %s (≈%s l)\n", t.CarryoverDebtAmount.StringFixed(2), t.CarryoverDebtLiters.StringFixed(2))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, s.Explanation)
}
