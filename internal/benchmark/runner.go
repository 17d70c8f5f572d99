package benchmark

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// Runner measures one invocation of an external program.
type Runner interface {
	Measure(ctx context.Context, executable string, args []string) (float64, error)
}

// ProcessRunner implements Runner by starting the program and reading the
// execution time, in microseconds, that it prints on stdout.
type ProcessRunner struct {
	// Stderr receives the child's stderr. Nil discards it.
	Stderr io.Writer
}

func NewProcessRunner(stderr io.Writer) *ProcessRunner {
	return &ProcessRunner{Stderr: stderr}
}

// Measure runs executable with args and blocks until it exits.
//
// The child is never killed: ctx is only consulted before the process is
// started, cancellation is handled by the caller between invocations.
func (r *ProcessRunner) Measure(ctx context.Context, executable string, args []string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	cmd := exec.Command(executable, args...)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = r.Stderr

	if err := cmd.Start(); err != nil {
		return 0, &ProcessLaunchError{Path: executable, Err: err}
	}

	if err := cmd.Wait(); err != nil {
		return 0, &ProcessExitError{Path: executable, Args: args, Err: err, Output: out.String()}
	}

	return ParseDuration(executable, out.String())
}

// ParseDuration parses program output as a non-negative, finite microsecond value.
func ParseDuration(executable, output string) (float64, error) {
	text := strings.TrimSpace(output)

	us, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, &MalformedOutputError{Path: executable, Output: text, Err: err}
	}

	if math.IsNaN(us) || math.IsInf(us, 0) {
		return 0, &MalformedOutputError{Path: executable, Output: text, Err: errors.New("not a finite number")}
	}

	if us < 0 {
		return 0, &MalformedOutputError{Path: executable, Output: text, Err: errors.New("negative duration")}
	}

	return us, nil
}
