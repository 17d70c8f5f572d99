package benchmark

import "time"

// Phase identifies what an invocation is used for.
type Phase int

const (
	// PhaseWarmup invocations are discarded.
	PhaseWarmup Phase = iota
	// PhaseMeasure invocations are appended to the parameter's samples.
	PhaseMeasure
)

func (p Phase) String() string {
	switch p {
	case PhaseWarmup:
		return "warmup"
	case PhaseMeasure:
		return "measure"
	default:
		return "unknown"
	}
}

// Invocation describes a single run of the program under test.
type Invocation struct {
	Param int
	Phase Phase
	Index int // position within the phase, starting at 0
	Total int // invocations in the phase
}

// ParameterRun holds the samples, in microseconds, collected for one parameter value.
type ParameterRun struct {
	Param   int
	Samples []float64
}

// Stats summarizes a ParameterRun. All values are in microseconds.
type Stats struct {
	Average float64
	Min     float64
	Max     float64
	StdDev  float64
	Median  float64
}

// RunRecord describes a finished sweep for the history store.
type RunRecord struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Executable string
	Aborted    bool
	Snapshot   string
	Host       HostInfo
}
