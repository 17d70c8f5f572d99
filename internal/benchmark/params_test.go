package benchmark

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr string
	}{
		{in: "1-13", want: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}},
		{in: "5", want: []int{5}},
		{in: "1-3, 8,10-11", want: []int{1, 2, 3, 8, 10, 11}},
		{in: "9,2", want: []int{9, 2}},
		{in: "", wantErr: "no parameters"},
		{in: "0", wantErr: "must be positive"},
		{in: "1-3,2", wantErr: "listed twice"},
		{in: "3-1", wantErr: "end before start"},
		{in: "a", wantErr: "invalid parameter"},
		{in: "1-b", wantErr: "invalid range"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseParams(tt.in)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatParams(t *testing.T) {
	assert.Equal(t, "1-13", FormatParams([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}))
	assert.Equal(t, "1-3,8,10-11", FormatParams([]int{1, 2, 3, 8, 10, 11}))
	assert.Equal(t, "9,2", FormatParams([]int{9, 2}))
	assert.Equal(t, "", FormatParams(nil))
}

func TestParamsValue(t *testing.T) {
	v := NewParamsValue([]int{1, 2, 3})

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Var(v, "params", "parameter values")

	assert.Equal(t, "1-3", fs.Lookup("params").DefValue)
	assert.Equal(t, "params", fs.Lookup("params").Value.Type())

	require.NoError(t, fs.Parse([]string{"--params", "4,6-7"}))
	assert.Equal(t, []int{4, 6, 7}, v.Params)
	assert.Equal(t, "4,6-7", v.String())

	assert.Error(t, fs.Parse([]string{"--params", "0"}))
}
