package benchmark

import (
	"strconv"
	"strings"
)

var timeUnits = []string{"µs", "ms", "s"}

const unitStep = 1000

// FormatDuration renders a microsecond value with an automatically chosen unit,
// e.g. 1234 -> "1.23 ms".
func FormatDuration(us float64) string {
	value, _, unit := scale(us, 0)
	return trimFloat(value) + " " + unit
}

// FormatDurationStdDev renders a value and its standard deviation in the same
// unit, e.g. (1000, 50) -> "1 ms ± 0.05 ms".
func FormatDurationStdDev(us, stdDev float64) string {
	value, sd, unit := scale(us, stdDev)
	return trimFloat(value) + " " + unit + " ± " + trimFloat(sd) + " " + unit
}

// scale promotes value (and sd alongside it) up the unit ladder while it is at
// least 1000. Seconds is the last unit regardless of magnitude.
func scale(value, sd float64) (float64, float64, string) {
	i := 0
	for i < len(timeUnits)-1 && value >= unitStep {
		value /= unitStep
		sd /= unitStep
		i++
	}
	return value, sd, timeUnits[i]
}

// trimFloat formats with two decimals and drops trailing zeros and a trailing point.
func trimFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
