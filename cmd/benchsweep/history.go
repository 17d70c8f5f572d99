package main

import (
	"errors"
	"fmt"
	"strconv"

	"benchsweep/internal/benchmark"
	"benchsweep/internal/config"
	"benchsweep/internal/db"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List runs recorded in the history database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.ListRuns(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
			return nil
		}

		table, err := benchmark.RenderTable(historyRows(runs))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), table)
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the report of a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		rec, rs, err := store.LoadRun(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Run %s: %s on %s (%s/%s), started %s\n", rec.ID, rec.Executable,
			rec.Host.Hostname, rec.Host.OS, rec.Host.Arch, rec.StartedAt.Local().Format(timeLayout))
		if rec.Aborted {
			fmt.Fprintln(out, "The run was interrupted.")
		}

		table, err := benchmark.Report(rs)
		if errors.Is(err, benchmark.ErrEmptyInput) {
			fmt.Fprintln(out, "No samples recorded.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(out, table)
		return nil
	},
}

const timeLayout = "2006-01-02 15:04:05"

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to show")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistory() (db.Store, error) {
	path := viper.GetString(config.KeyHistoryDB)
	if path == "" {
		return nil, errors.New("no history database configured (set history_db or --history-db)")
	}
	return db.NewStore(db.StoreConfig{Type: "sqlite", ConnectionString: path})
}

func historyRows(runs []db.RunSummary) []benchmark.Row {
	columns := []string{"ID", "Started", "Executable", "Params", "Samples", "Status"}

	rows := make([]benchmark.Row, 0, len(runs))
	for _, r := range runs {
		status := "complete"
		if r.Aborted {
			status = "interrupted"
		}
		rows = append(rows, benchmark.MustRow(columns, map[string]string{
			"ID":         r.ID,
			"Started":    r.StartedAt.Local().Format(timeLayout),
			"Executable": r.Executable,
			"Params":     strconv.Itoa(r.Params),
			"Samples":    strconv.Itoa(r.SampleCount),
			"Status":     status,
		}))
	}
	return rows
}
