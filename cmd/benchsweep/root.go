package main

import (
	"fmt"
	"os"

	"benchsweep/internal/config"
	"benchsweep/internal/telemetry"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exit = os.Exit
var cfgFile string

// closeLog releases the log file opened by initConfig.
var closeLog = func() error { return nil }

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "benchsweep",
	Short: "Sweep a program over input sizes and report its execution times",
	Long: `benchsweep runs an external program once per invocation for a range of
parameter values. The program prints its own execution time in microseconds;
benchsweep discards warmup runs, collects the rest, saves them to a timestamped
snapshot and prints a Markdown table of the trimmed statistics.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Wrap Execute in panic recovery for graceful shutdown
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n=== CRITICAL ERROR: Command Execution Panic ===\n")
			fmt.Fprintf(os.Stderr, "Error: %v\n", r)
			exit(1)
		}
	}()

	err := rootCmd.Execute()
	closeLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'benchsweep --help' for usage.")
		exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./benchsweep.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("log-file", "", "Also write JSON logs to this file")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().String("history-db", "", "SQLite database recording every run (disabled when empty)")

	viper.BindPFlag(config.KeyVerbose, rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag(config.KeyLogFile, rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag(config.KeyNoColor, rootCmd.PersistentFlags().Lookup("no-color"))
	viper.BindPFlag(config.KeyHistoryDB, rootCmd.PersistentFlags().Lookup("history-db"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		exit(1)
		return
	}

	// Validate configuration values
	if err := config.ValidateConfig(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		exit(1)
		return
	}

	closeLog()
	closeLog = telemetry.InitLogger(viper.GetBool(config.KeyVerbose), viper.GetString(config.KeyLogFile))
}
