package benchmark

import (
	"math"
	"slices"
)

// trimThreshold is the sample count above which the lowest and highest
// samples are dropped before computing statistics.
const trimThreshold = 3

// Reduce computes summary statistics for a set of samples.
//
// When there are more than three samples, one occurrence of the minimum and
// one of the maximum are discarded first. The standard deviation divides by N
// and the median is the upper middle element for even counts.
func Reduce(samples []float64) (Stats, error) {
	if len(samples) == 0 {
		return Stats{}, ErrInsufficientData
	}

	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	if len(sorted) > trimThreshold {
		sorted = sorted[1 : len(sorted)-1]
	}

	n := float64(len(sorted))

	sum := 0.0
	for _, s := range sorted {
		sum += s
	}
	avg := sum / n

	variance := 0.0
	for _, s := range sorted {
		diff := s - avg
		variance += diff * diff
	}
	variance /= n

	return Stats{
		Average: avg,
		Min:     sorted[0],
		Max:     sorted[len(sorted)-1],
		StdDev:  math.Sqrt(variance),
		Median:  sorted[len(sorted)/2],
	}, nil
}
