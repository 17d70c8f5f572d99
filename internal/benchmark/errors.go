package benchmark

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInsufficientData is returned when statistics are requested for an empty sample set.
	ErrInsufficientData = errors.New("insufficient data: no samples")
	// ErrEmptyInput is returned when a table is rendered without rows.
	ErrEmptyInput = errors.New("empty input: no rows to render")
	// ErrColumnMismatch is returned when a row's columns differ from the first row's.
	ErrColumnMismatch = errors.New("row columns do not match table header")
	// ErrAborted is returned by Loop.Run when the context was cancelled mid-sweep.
	ErrAborted = errors.New("benchmark aborted")
)

// ProcessLaunchError means the executable could not be started at all.
type ProcessLaunchError struct {
	Path string
	Err  error
}

func (e *ProcessLaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Path, e.Err)
}

func (e *ProcessLaunchError) Unwrap() error { return e.Err }

// ProcessExitError means the executable ran but exited with a non-zero status.
type ProcessExitError struct {
	Path   string
	Args   []string
	Err    error
	Output string
}

func (e *ProcessExitError) Error() string {
	msg := fmt.Sprintf("%s %s failed: %v", e.Path, strings.Join(e.Args, " "), e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += fmt.Sprintf(" (output: %q)", out)
	}
	return msg
}

func (e *ProcessExitError) Unwrap() error { return e.Err }

// MalformedOutputError means the executable's stdout was not a usable duration.
type MalformedOutputError struct {
	Path   string
	Output string
	Err    error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed output from %s: %q: %v", e.Path, e.Output, e.Err)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }
