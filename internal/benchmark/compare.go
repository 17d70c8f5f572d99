package benchmark

import (
	"fmt"
	"strconv"
)

// Comparison columns.
const (
	ColBaseline = "Baseline"
	ColCurrent  = "Current"
	ColDiff     = "Diff"
)

var comparisonColumns = []string{ColParam, ColBaseline, ColCurrent, ColDiff}

// Comparison relates the statistics of one parameter across two runs.
type Comparison struct {
	Param    int
	Prev     Stats
	Curr     Stats
	MeanDiff float64 // percentage change of the mean
}

// Compare returns a comparison for every parameter that has samples in both
// result sets, in the order of curr.
func Compare(prev, curr *ResultSet) ([]Comparison, error) {
	prevSummaries, err := Summarize(prev)
	if err != nil {
		return nil, err
	}

	prevMap := make(map[int]Stats, len(prevSummaries))
	for _, s := range prevSummaries {
		prevMap[s.Param] = s.Stats
	}

	currSummaries, err := Summarize(curr)
	if err != nil {
		return nil, err
	}

	var comparisons []Comparison
	for _, c := range currSummaries {
		p, ok := prevMap[c.Param]
		if !ok {
			continue
		}

		comp := Comparison{Param: c.Param, Prev: p, Curr: c.Stats}
		if p.Average > 0 {
			comp.MeanDiff = (c.Stats.Average - p.Average) / p.Average * 100
		}
		comparisons = append(comparisons, comp)
	}
	return comparisons, nil
}

func (c Comparison) String() string {
	return fmt.Sprintf("n=%d: %+.2f%% mean", c.Param, c.MeanDiff)
}

// ComparisonRows renders comparisons as table rows.
func ComparisonRows(comparisons []Comparison) []Row {
	rows := make([]Row, 0, len(comparisons))
	for _, c := range comparisons {
		rows = append(rows, MustRow(comparisonColumns, map[string]string{
			ColParam:    strconv.Itoa(c.Param),
			ColBaseline: FormatDurationStdDev(c.Prev.Average, c.Prev.StdDev),
			ColCurrent:  FormatDurationStdDev(c.Curr.Average, c.Curr.StdDev),
			ColDiff:     fmt.Sprintf("%+.2f%%", c.MeanDiff),
		}))
	}
	return rows
}
