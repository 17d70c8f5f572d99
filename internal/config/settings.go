package config

import (
	"fmt"

	"benchsweep/internal/benchmark"

	"github.com/spf13/viper"
)

// Settings is the typed view of the resolved configuration.
type Settings struct {
	Executable  string   `mapstructure:"executable" yaml:"executable"`
	Args        []string `mapstructure:"args" yaml:"args"`
	WarmupCount int      `mapstructure:"warmup_count" yaml:"warmup_count"`
	SampleCount int      `mapstructure:"sample_count" yaml:"sample_count"`
	Parameters  string   `mapstructure:"parameters" yaml:"parameters"`
	OutputDir   string   `mapstructure:"output_dir" yaml:"output_dir"`
	Format      string   `mapstructure:"format" yaml:"format"`
	HistoryDB   string   `mapstructure:"history_db" yaml:"history_db"`
	MetricsFile string   `mapstructure:"metrics_file" yaml:"metrics_file"`
	MetricsAddr string   `mapstructure:"metrics_addr" yaml:"metrics_addr"`
	Verbose     bool     `mapstructure:"verbose" yaml:"verbose"`
	LogFile     string   `mapstructure:"log_file" yaml:"log_file"`
	NoColor     bool     `mapstructure:"no_color" yaml:"no_color"`
}

// Current decodes the resolved configuration.
func Current() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return s, nil
}

// Params parses the configured parameter list.
func (s Settings) Params() ([]int, error) {
	return benchmark.ParseParams(s.Parameters)
}

// Command splits the configured executable and returns it together with a
// builder for the arguments of each parameter.
func (s Settings) Command() (string, func(int) []string, error) {
	exe, fixed, err := benchmark.SplitCommand(s.Executable)
	if err != nil {
		return "", nil, err
	}
	return exe, benchmark.ArgsBuilder(fixed, s.Args), nil
}

// SnapshotFormat validates the configured snapshot format.
func (s Settings) SnapshotFormat() (benchmark.Format, error) {
	return benchmark.ParseFormat(s.Format)
}
