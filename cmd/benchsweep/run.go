package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"benchsweep/internal/benchmark"
	"benchsweep/internal/config"
	"benchsweep/internal/db"
	"benchsweep/internal/telemetry"
	"benchsweep/internal/ui"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// defaultParams mirrors the default of the parameters key.
var defaultParams = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark sweep",
	Long: `Invokes the configured executable for every parameter value: first the
warmup runs, whose timings are discarded, then the measured runs. Each
invocation must print its execution time in microseconds on stdout.

Press Ctrl-C to stop early. The samples collected so far are saved and
reported; the invocation in flight is left to finish and its result dropped.`,
	Args: cobra.NoArgs,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("executable", "e", "./target/release/bogosort", "Program to benchmark, with optional leading arguments")
	runCmd.Flags().StringSlice("args", []string{benchmark.ParamPlaceholder}, "Argument templates; {n} is replaced by the parameter value")
	runCmd.Flags().IntP("warmup", "w", benchmark.DefaultWarmup, "Discarded invocations per parameter")
	runCmd.Flags().IntP("samples", "s", benchmark.DefaultSamples, "Measured invocations per parameter")
	runCmd.Flags().VarP(benchmark.NewParamsValue(defaultParams), "params", "p", "Parameter values, e.g. 1-13 or 1-5,8")
	runCmd.Flags().StringP("output-dir", "o", "benchmarks", "Directory for result snapshots")
	runCmd.Flags().String("format", "json", "Snapshot format: json or yaml")
	runCmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this file when done")
	runCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address while running")

	viper.BindPFlag(config.KeyExecutable, runCmd.Flags().Lookup("executable"))
	viper.BindPFlag(config.KeyArgs, runCmd.Flags().Lookup("args"))
	viper.BindPFlag(config.KeyWarmupCount, runCmd.Flags().Lookup("warmup"))
	viper.BindPFlag(config.KeySampleCount, runCmd.Flags().Lookup("samples"))
	viper.BindPFlag(config.KeyParameters, runCmd.Flags().Lookup("params"))
	viper.BindPFlag(config.KeyOutputDir, runCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag(config.KeyFormat, runCmd.Flags().Lookup("format"))
	viper.BindPFlag(config.KeyMetricsFile, runCmd.Flags().Lookup("metrics-file"))
	viper.BindPFlag(config.KeyMetricsAddr, runCmd.Flags().Lookup("metrics-addr"))
}

func runSweep(cmd *cobra.Command, args []string) error {
	settings, err := config.Current()
	if err != nil {
		return err
	}

	params, err := settings.Params()
	if err != nil {
		return err
	}
	exe, argsFn, err := settings.Command()
	if err != nil {
		return err
	}
	format, err := settings.SnapshotFormat()
	if err != nil {
		return err
	}

	store, err := benchmark.NewFileStore(settings.OutputDir, format)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printer := ui.NewPrinter(out, settings.NoColor)
	metrics := telemetry.NewMetrics()

	if settings.MetricsAddr != "" {
		srv, err := telemetry.StartMetricsServer(settings.MetricsAddr, metrics)
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		}()
	}

	host := benchmark.CollectHost(cmd.Context())
	slog.Info("starting sweep", "executable", exe, "params", benchmark.FormatParams(params), "host", host)

	loop := &benchmark.Loop{
		Runner:     benchmark.NewProcessRunner(cmd.ErrOrStderr()),
		Executable: exe,
		Args:       argsFn,
		Warmup:     settings.WarmupCount,
		Samples:    settings.SampleCount,
		Progress:   benchmark.MultiProgress{printer, metrics},
		Logger:     slog.Default(),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printer.Header(exe, params, loop.Warmup, loop.Samples)

	started := time.Now()
	rs, err := loop.Run(ctx, params)
	aborted := errors.Is(err, benchmark.ErrAborted)
	if err != nil && !aborted {
		return err
	}
	// A second interrupt while finalizing terminates the process.
	stop()

	rec := benchmark.RunRecord{
		StartedAt:  started,
		FinishedAt: time.Now(),
		Executable: settings.Executable,
		Aborted:    aborted,
		Host:       host,
	}
	return finalize(cmd, settings, store, metrics, printer, rec, rs)
}

// finalize persists rs exactly once and prints the report.
func finalize(cmd *cobra.Command, settings config.Settings, store benchmark.Store, metrics *telemetry.Metrics,
	printer *ui.Printer, rec benchmark.RunRecord, rs *benchmark.ResultSet) error {
	out := cmd.OutOrStdout()

	path, err := store.Save(rs)
	if err != nil {
		return err
	}
	rec.Snapshot = path
	slog.Info("saved results", "path", path, "params", rs.Len(), "samples", rs.SampleCount(), "aborted", rec.Aborted)
	fmt.Fprintf(out, "Results saved to %s\n", path)

	if settings.HistoryDB != "" {
		id, err := recordHistory(cmd.Context(), settings.HistoryDB, rec, rs)
		telemetry.LogError("Failed to record run history", err, "db", settings.HistoryDB)
		if err == nil {
			slog.Info("recorded run", "id", id, "db", settings.HistoryDB)
		}
	}

	if settings.MetricsFile != "" {
		telemetry.LogError("Failed to write metrics", metrics.WriteTextfile(settings.MetricsFile))
	}

	table, err := benchmark.Report(rs)
	if errors.Is(err, benchmark.ErrEmptyInput) && rec.Aborted {
		printer.Notice("No samples were collected before the interruption.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, table)
	return nil
}

func recordHistory(ctx context.Context, path string, rec benchmark.RunRecord, rs *benchmark.ResultSet) (string, error) {
	store, err := db.NewStore(db.StoreConfig{Type: "sqlite", ConnectionString: path})
	if err != nil {
		return "", err
	}
	defer store.Close()

	return store.SaveRun(ctx, rec, rs)
}
