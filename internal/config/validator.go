package config

import (
	"fmt"
	"strings"

	"benchsweep/internal/benchmark"

	"github.com/spf13/viper"
)

// ValidateConfig validates configuration values and returns an error listing
// every invalid one. It should be called after Load.
func ValidateConfig() error {
	var errors []string

	if strings.TrimSpace(viper.GetString(KeyExecutable)) == "" {
		errors = append(errors, "executable must not be empty")
	} else if _, _, err := benchmark.SplitCommand(viper.GetString(KeyExecutable)); err != nil {
		errors = append(errors, fmt.Sprintf("executable: %v", err))
	}

	// Validate counts
	if warmup := viper.GetInt(KeyWarmupCount); warmup < 0 {
		errors = append(errors, fmt.Sprintf("warmup_count must not be negative, got: %d", warmup))
	}
	if samples := viper.GetInt(KeySampleCount); samples <= 0 {
		errors = append(errors, fmt.Sprintf("sample_count must be positive, got: %d", samples))
	}

	if _, err := benchmark.ParseParams(viper.GetString(KeyParameters)); err != nil {
		errors = append(errors, fmt.Sprintf("parameters: %v", err))
	}

	if _, err := benchmark.ParseFormat(viper.GetString(KeyFormat)); err != nil {
		errors = append(errors, fmt.Sprintf("format: %v", err))
	}

	if viper.GetString(KeyOutputDir) == "" {
		errors = append(errors, "output_dir must not be empty")
	}

	// Validate metrics_addr (if set, must contain a port)
	if addr := viper.GetString(KeyMetricsAddr); addr != "" && !strings.Contains(addr, ":") {
		errors = append(errors, fmt.Sprintf("metrics_addr must be host:port, got: %s", addr))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errors, "\n  "))
	}

	return nil
}
