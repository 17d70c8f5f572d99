package benchmark

import "strconv"

// Report column labels.
const (
	ColParam = "n"
	ColMean  = "Mean"
	ColMin   = "Min"
	ColMax   = "Max"
)

var reportColumns = []string{ColParam, ColMean, ColMin, ColMax}

// Summary is the reduced form of one ParameterRun.
type Summary struct {
	Param int
	Count int // samples collected, before trimming
	Stats Stats
}

// Summarize reduces every run that has at least one sample. Runs without
// samples are skipped.
func Summarize(rs *ResultSet) ([]Summary, error) {
	var out []Summary
	for _, run := range rs.Runs() {
		if len(run.Samples) == 0 {
			continue
		}

		stats, err := Reduce(run.Samples)
		if err != nil {
			return nil, err
		}
		out = append(out, Summary{Param: run.Param, Count: len(run.Samples), Stats: stats})
	}
	return out, nil
}

// BuildRows turns summaries into report rows: parameter, mean ± std-dev, min, max.
func BuildRows(summaries []Summary) []Row {
	rows := make([]Row, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, MustRow(reportColumns, map[string]string{
			ColParam: strconv.Itoa(s.Param),
			ColMean:  FormatDurationStdDev(s.Stats.Average, s.Stats.StdDev),
			ColMin:   FormatDuration(s.Stats.Min),
			ColMax:   FormatDuration(s.Stats.Max),
		}))
	}
	return rows
}

// Report renders the Markdown summary table for rs. It returns ErrEmptyInput
// when no parameter has samples.
func Report(rs *ResultSet) (string, error) {
	summaries, err := Summarize(rs)
	if err != nil {
		return "", err
	}
	return RenderTable(BuildRows(summaries))
}
