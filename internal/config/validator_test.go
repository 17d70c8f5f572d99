package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name      string
		setup     func()
		wantError bool
		errMsg    string
	}{
		{
			name:      "Defaults",
			setup:     func() {},
			wantError: false,
		},
		{
			name: "Valid Configuration",
			setup: func() {
				viper.Set(KeyWarmupCount, 0)
				viper.Set(KeySampleCount, 1)
				viper.Set(KeyParameters, "1-3,7")
				viper.Set(KeyFormat, "yaml")
				viper.Set(KeyMetricsAddr, "127.0.0.1:9100")
			},
			wantError: false,
		},
		{
			name: "Empty Executable",
			setup: func() {
				viper.Set(KeyExecutable, "  ")
			},
			wantError: true,
			errMsg:    "executable must not be empty",
		},
		{
			name: "Unbalanced Quotes",
			setup: func() {
				viper.Set(KeyExecutable, `./prog "oops`)
			},
			wantError: true,
			errMsg:    "invalid command",
		},
		{
			name: "Negative Warmup",
			setup: func() {
				viper.Set(KeyWarmupCount, -1)
			},
			wantError: true,
			errMsg:    "warmup_count must not be negative",
		},
		{
			name: "Zero Samples",
			setup: func() {
				viper.Set(KeySampleCount, 0)
			},
			wantError: true,
			errMsg:    "sample_count must be positive",
		},
		{
			name: "Bad Parameters",
			setup: func() {
				viper.Set(KeyParameters, "5-1")
			},
			wantError: true,
			errMsg:    "parameters:",
		},
		{
			name: "Unknown Format",
			setup: func() {
				viper.Set(KeyFormat, "xml")
			},
			wantError: true,
			errMsg:    "unsupported snapshot format",
		},
		{
			name: "Metrics Address Without Port",
			setup: func() {
				viper.Set(KeyMetricsAddr, "localhost")
			},
			wantError: true,
			errMsg:    "metrics_addr must be host:port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			defer viper.Reset()
			SetDefaults()
			tt.setup()

			err := ValidateConfig()
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateConfig() error = %v, wantError %v", err, tt.wantError)
				return
			}
			if tt.wantError && tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("ValidateConfig() error = %v, want error containing %q", err, tt.errMsg)
			}
		})
	}
}

func TestValidateConfig_ReportsAllErrors(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()
	viper.Set(KeySampleCount, -3)
	viper.Set(KeyFormat, "csv")

	err := ValidateConfig()
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{"sample_count", "format"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}
