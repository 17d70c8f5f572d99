package main

import (
	"fmt"
	"log/slog"
	"strings"

	"benchsweep/internal/benchmark"
	"benchsweep/internal/config"
	"benchsweep/internal/ui"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	reportBaseline string
	reportPretty   bool
	reportWidth    int
)

var reportCmd = &cobra.Command{
	Use:   "report <snapshot>",
	Short: "Recompute the report from a saved snapshot",
	Long: `Loads a JSON or YAML snapshot written by 'benchsweep run' and prints the
statistics table again. With --baseline, a second table compares the mean of
every parameter present in both snapshots.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&reportBaseline, "baseline", "b", "", "Snapshot to compare against")
	reportCmd.Flags().BoolVar(&reportPretty, "pretty", false, "Render the tables for the terminal")
	reportCmd.Flags().IntVar(&reportWidth, "width", 100, "Word wrap width for --pretty")
}

func runReport(cmd *cobra.Command, args []string) error {
	rs, err := benchmark.LoadSnapshot(args[0])
	if err != nil {
		return err
	}

	table, err := benchmark.Report(rs)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	sections := []string{table}

	if reportBaseline != "" {
		baseline, err := benchmark.LoadSnapshot(reportBaseline)
		if err != nil {
			return err
		}

		comparisons, err := benchmark.Compare(baseline, rs)
		if err != nil {
			return err
		}
		for _, c := range comparisons {
			slog.Debug("compared", "comparison", c.String())
		}

		if len(comparisons) == 0 {
			sections = append(sections, "No parameters in common with "+reportBaseline+".")
		} else {
			diff, err := benchmark.RenderTable(benchmark.ComparisonRows(comparisons))
			if err != nil {
				return err
			}
			sections = append(sections, diff)
		}
	}

	return printMarkdown(cmd, strings.Join(sections, "\n\n"))
}

// printMarkdown writes md as is, or rendered for the terminal with --pretty.
func printMarkdown(cmd *cobra.Command, md string) error {
	if !reportPretty {
		fmt.Fprintln(cmd.OutOrStdout(), md)
		return nil
	}

	rendered, err := ui.RenderMarkdown(md, reportWidth, viper.GetBool(config.KeyNoColor))
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}
