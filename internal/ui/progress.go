package ui

import (
	"fmt"
	"io"
	"strconv"

	"benchsweep/internal/benchmark"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Printer writes one line per invocation: the label is printed before the
// program starts and the measured time once it returns, so a slow run shows
// which parameter it is on. It implements benchmark.Progress.
type Printer struct {
	w       io.Writer
	st      styles
	midLine bool
}

// NewPrinter returns a Printer for w. With noColor set, or when w is not a
// terminal, output carries no escape sequences.
func NewPrinter(w io.Writer, noColor bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{w: w, st: newStyles(r)}
}

// Header announces the sweep.
func (p *Printer) Header(executable string, params []int, warmup, samples int) {
	title := p.st.header.Render("benchsweep")
	fmt.Fprintf(p.w, "%s %s  n=%s  warmup=%d  samples=%d\n",
		title, executable, benchmark.FormatParams(params), warmup, samples)
}

func (p *Printer) Before(inv benchmark.Invocation) {
	label := "n=" + strconv.Itoa(inv.Param)
	if inv.Phase == benchmark.PhaseWarmup {
		fmt.Fprint(p.w, p.st.warmup.Render("Warmup: "+label)+" ")
	} else {
		fmt.Fprint(p.w, p.st.param.Render(label)+" ")
	}
	p.midLine = true
}

func (p *Printer) After(_ benchmark.Invocation, us float64) {
	fmt.Fprintln(p.w, p.st.value.Render(benchmark.FormatDuration(us)))
	p.midLine = false
}

func (p *Printer) Done(run benchmark.ParameterRun) {
	stats, err := benchmark.Reduce(run.Samples)
	if err != nil {
		return
	}
	line := fmt.Sprintf("n=%d: %s over %d samples", run.Param,
		benchmark.FormatDurationStdDev(stats.Average, stats.StdDev), len(run.Samples))
	fmt.Fprintln(p.w, p.st.summary.Render(line))
}

// Aborted ends the line of the discarded invocation, if any, with a marker.
func (p *Printer) Aborted(int) {
	fmt.Fprintln(p.w, p.st.abort.Render("interrupted"))
	p.midLine = false
}

// Notice prints an informational line, e.g. when there is nothing to report.
func (p *Printer) Notice(format string, args ...any) {
	p.endLine()
	fmt.Fprintln(p.w, p.st.notice.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) endLine() {
	if p.midLine {
		fmt.Fprintln(p.w)
		p.midLine = false
	}
}
