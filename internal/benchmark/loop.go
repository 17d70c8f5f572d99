package benchmark

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
)

// Defaults used when a Loop is built with NewLoop.
const (
	DefaultWarmup  = 2
	DefaultSamples = 30
)

// Progress observes a running Loop. All calls happen on the loop's goroutine.
type Progress interface {
	// Before is called right before an invocation starts.
	Before(inv Invocation)
	// After is called with the measured duration once an invocation succeeded.
	After(inv Invocation, us float64)
	// Done is called when all measured invocations of a parameter finished.
	Done(run ParameterRun)
	// Aborted is called once when the sweep is cancelled while on param.
	Aborted(param int)
}

// MultiProgress forwards every call to each of its members.
type MultiProgress []Progress

func (m MultiProgress) Before(inv Invocation) {
	for _, p := range m {
		p.Before(inv)
	}
}

func (m MultiProgress) After(inv Invocation, us float64) {
	for _, p := range m {
		p.After(inv, us)
	}
}

func (m MultiProgress) Done(run ParameterRun) {
	for _, p := range m {
		p.Done(run)
	}
}

func (m MultiProgress) Aborted(param int) {
	for _, p := range m {
		p.Aborted(param)
	}
}

type nopProgress struct{}

func (nopProgress) Before(Invocation)         {}
func (nopProgress) After(Invocation, float64) {}
func (nopProgress) Done(ParameterRun)         {}
func (nopProgress) Aborted(int)               {}

// Loop sweeps parameter values, running Warmup discarded invocations followed
// by Samples measured ones for each value. Invocations never overlap.
type Loop struct {
	Runner     Runner
	Executable string
	// Args builds the argument list for a parameter. Nil passes the value as the only argument.
	Args     func(param int) []string
	Warmup   int
	Samples  int
	Progress Progress
	Logger   *slog.Logger
}

// NewLoop returns a Loop with the default warmup and sample counts.
func NewLoop(runner Runner, executable string) *Loop {
	return &Loop{
		Runner:     runner,
		Executable: executable,
		Warmup:     DefaultWarmup,
		Samples:    DefaultSamples,
	}
}

// Run executes the sweep over params.
//
// Cancellation of ctx is observed between invocations. When it happens, the
// result of the invocation in flight is discarded, remaining parameters are
// skipped and Run returns the samples collected so far together with an error
// matching ErrAborted. Any other failure aborts the sweep and returns a nil
// ResultSet.
func (l *Loop) Run(ctx context.Context, params []int) (*ResultSet, error) {
	if err := l.validate(); err != nil {
		return nil, err
	}

	rs := NewResultSet()
	for _, param := range params {
		if err := ctx.Err(); err != nil {
			return rs, l.abort(param, err)
		}

		rs.Begin(param)
		l.logger().Info("benchmarking", "n", param, "warmup", l.Warmup, "samples", l.Samples)

		for i := 0; i < l.Warmup; i++ {
			inv := Invocation{Param: param, Phase: PhaseWarmup, Index: i, Total: l.Warmup}
			if _, err := l.invoke(ctx, inv); err != nil {
				return l.fail(rs, err)
			}
		}

		for j := 0; j < l.Samples; j++ {
			inv := Invocation{Param: param, Phase: PhaseMeasure, Index: j, Total: l.Samples}
			us, err := l.invoke(ctx, inv)
			if err != nil {
				return l.fail(rs, err)
			}
			rs.Append(param, us)
		}

		run, _ := rs.Get(param)
		l.progress().Done(run)
	}

	return rs, nil
}

func (l *Loop) invoke(ctx context.Context, inv Invocation) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, l.abort(inv.Param, err)
	}

	l.progress().Before(inv)
	us, err := l.Runner.Measure(ctx, l.Executable, l.args(inv.Param))

	// A cancelled sweep discards whatever the in-flight invocation produced.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return 0, l.abort(inv.Param, ctxErr)
	}
	if err != nil {
		return 0, fmt.Errorf("n=%d %s #%d: %w", inv.Param, inv.Phase, inv.Index+1, err)
	}

	l.logger().Debug("invocation", "n", inv.Param, "phase", inv.Phase.String(), "index", inv.Index, "us", us)
	l.progress().After(inv, us)
	return us, nil
}

func (l *Loop) fail(rs *ResultSet, err error) (*ResultSet, error) {
	if errors.Is(err, ErrAborted) {
		return rs, err
	}
	return nil, err
}

func (l *Loop) abort(param int, cause error) error {
	l.logger().Warn("benchmark interrupted", "n", param)
	l.progress().Aborted(param)
	return fmt.Errorf("%w at n=%d: %w", ErrAborted, param, cause)
}

func (l *Loop) validate() error {
	switch {
	case l.Runner == nil:
		return errors.New("loop has no runner")
	case l.Executable == "":
		return errors.New("loop has no executable")
	case l.Warmup < 0:
		return fmt.Errorf("warmup count must not be negative, got %d", l.Warmup)
	case l.Samples < 1:
		return fmt.Errorf("sample count must be positive, got %d", l.Samples)
	}
	return nil
}

func (l *Loop) args(param int) []string {
	if l.Args == nil {
		return []string{strconv.Itoa(param)}
	}
	return l.Args(param)
}

func (l *Loop) progress() Progress {
	if l.Progress == nil {
		return nopProgress{}
	}
	return l.Progress
}

func (l *Loop) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}
