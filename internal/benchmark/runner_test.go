package benchmark

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    float64
		wantErr bool
	}{
		{name: "integer", output: "100", want: 100},
		{name: "trailing newline", output: "1234.5\n", want: 1234.5},
		{name: "surrounding whitespace", output: "  42 \r\n", want: 42},
		{name: "zero", output: "0", want: 0},
		{name: "exponent", output: "1e3", want: 1000},
		{name: "empty", output: "", wantErr: true},
		{name: "text", output: "fast", wantErr: true},
		{name: "two values", output: "1 2", wantErr: true},
		{name: "negative", output: "-5", wantErr: true},
		{name: "nan", output: "NaN", wantErr: true},
		{name: "infinity", output: "+Inf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDuration("prog", tt.output)
			if tt.wantErr {
				var malformed *MalformedOutputError
				assert.ErrorAs(t, err, &malformed)
				assert.Equal(t, "prog", malformed.Path)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProcessRunner_Measure(t *testing.T) {
	script := writeScript(t, `echo "$1"`)

	r := NewProcessRunner(nil)
	us, err := r.Measure(context.Background(), script, []string{"250"})
	require.NoError(t, err)
	assert.Equal(t, 250.0, us)
}

func TestProcessRunner_ForwardsStderr(t *testing.T) {
	script := writeScript(t, `echo "diagnostics" >&2; echo 7`)

	var stderr bytes.Buffer
	r := NewProcessRunner(&stderr)
	us, err := r.Measure(context.Background(), script, nil)
	require.NoError(t, err)
	assert.Equal(t, 7.0, us)
	assert.Contains(t, stderr.String(), "diagnostics")
}

func TestProcessRunner_LaunchError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	_, err := NewProcessRunner(nil).Measure(context.Background(), missing, nil)

	var launch *ProcessLaunchError
	require.ErrorAs(t, err, &launch)
	assert.Equal(t, missing, launch.Path)
}

func TestProcessRunner_MalformedOutput(t *testing.T) {
	script := writeScript(t, `echo "not a number"`)

	_, err := NewProcessRunner(nil).Measure(context.Background(), script, nil)

	var malformed *MalformedOutputError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "not a number", malformed.Output)
}

func TestProcessRunner_ExitError(t *testing.T) {
	script := writeScript(t, `echo 100; exit 3`)

	_, err := NewProcessRunner(nil).Measure(context.Background(), script, []string{"5"})

	var exit *ProcessExitError
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, []string{"5"}, exit.Args)
	assert.Equal(t, "100\n", exit.Output)
	assert.Contains(t, err.Error(), `(output: "100")`)
}

func TestProcessExitError_Message(t *testing.T) {
	err := &ProcessExitError{Path: "./bogosort", Args: []string{"3"}, Err: errors.New("exit status 1")}
	assert.Equal(t, "./bogosort 3 failed: exit status 1", err.Error())

	err.Output = "  \n"
	assert.Equal(t, "./bogosort 3 failed: exit status 1", err.Error(), "blank output is omitted")
}

func TestProcessRunner_CancelledBeforeStart(t *testing.T) {
	script := writeScript(t, `echo 1`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProcessRunner(nil).Measure(ctx, script, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
