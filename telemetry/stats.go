package telemetry

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Percentile returns the p-quantile (p in [0,1]) of an ascending-sorted
// slice, linearly interpolated between neighboring samples.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// DurationQuantiles returns the p50 and p90 of a slice of durations
// expressed as float64 nanoseconds. The slice is sorted in place.
func DurationQuantiles(durations []float64) (p50, p90 time.Duration) {
	if len(durations) == 0 {
		return 0, 0
	}
	sort.Float64s(durations)
	return time.Duration(Percentile(durations, 0.5)), time.Duration(Percentile(durations, 0.9))
}

// Summary aggregates a sample of tick durations for benchmark reporting.
type Summary struct {
	Mean   time.Duration
	StdDev time.Duration
	P50    time.Duration
	P90    time.Duration
	Min    time.Duration
	Max    time.Duration
}

// Summarize computes a Summary over raw tick durations.
func Summarize(samples []time.Duration) Summary {
	if len(samples) == 0 {
		return Summary{}
	}

	ns := make([]float64, len(samples))
	min, max := samples[0], samples[0]
	for i, d := range samples {
		ns[i] = float64(d)
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	sort.Float64s(ns)

	mean, std := stat.MeanStdDev(ns, nil)
	if len(ns) < 2 {
		std = 0
	}
	return Summary{
		Mean:   time.Duration(mean),
		StdDev: time.Duration(std),
		P50:    time.Duration(Percentile(ns, 0.5)),
		P90:    time.Duration(Percentile(ns, 0.9)),
		Min:    min,
		Max:    max,
	}
}
