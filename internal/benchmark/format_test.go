package benchmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		us   float64
		want string
	}{
		{0, "0 µs"},
		{0.5, "0.5 µs"},
		{999, "999 µs"},
		{1000, "1 ms"},
		{1234, "1.23 ms"},
		{1500000, "1.5 s"},
		{2000000, "2 s"},
		{2500, "2.5 ms"},
		{5000000000, "5000 s"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.us))
		})
	}
}

func TestFormatDurationStdDev(t *testing.T) {
	assert.Equal(t, "1 ms ± 0.05 ms", FormatDurationStdDev(1000, 50))
	assert.Equal(t, "100 µs ± 0 µs", FormatDurationStdDev(100, 0))
	assert.Equal(t, "1.5 s ± 0.2 s", FormatDurationStdDev(1500000, 200000))
	// The deviation follows the unit of the value even when it is much smaller.
	assert.Equal(t, "2 s ± 0 s", FormatDurationStdDev(2000000, 1))
}
