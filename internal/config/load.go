package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyExecutable  = "executable"
	KeyArgs        = "args"
	KeyWarmupCount = "warmup_count"
	KeySampleCount = "sample_count"
	KeyParameters  = "parameters"
	KeyOutputDir   = "output_dir"
	KeyFormat      = "format"
	KeyHistoryDB   = "history_db"
	KeyMetricsFile = "metrics_file"
	KeyMetricsAddr = "metrics_addr"
	KeyVerbose     = "verbose"
	KeyLogFile     = "log_file"
	KeyNoColor     = "no_color"
)

// EnvPrefix is prepended to every key when read from the environment.
const EnvPrefix = "BENCHSWEEP"

// Load initializes the configuration from file and environment variables.
// A missing default config file is not an error; an unreadable or malformed
// one is, as is a missing file passed explicitly.
func Load(cfgFile string) error {
	// explicit .env loading, a missing file is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for benchsweep.yaml in the working directory.
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("benchsweep")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	return nil
}

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault(KeyExecutable, "./target/release/bogosort")
	viper.SetDefault(KeyArgs, []string{"{n}"})
	viper.SetDefault(KeyWarmupCount, 2)
	viper.SetDefault(KeySampleCount, 30)
	viper.SetDefault(KeyParameters, "1-13")
	viper.SetDefault(KeyOutputDir, "benchmarks")
	viper.SetDefault(KeyFormat, "json")
	viper.SetDefault(KeyHistoryDB, "")
	viper.SetDefault(KeyMetricsFile, "")
	viper.SetDefault(KeyMetricsAddr, "")
	viper.SetDefault(KeyVerbose, false)
	viper.SetDefault(KeyLogFile, "")
	viper.SetDefault(KeyNoColor, false)
}
