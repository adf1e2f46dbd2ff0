// Package score turns raw review sentiment metrics into a headline average
// and a three-level quality band.
//
// All metrics live on a 1.0 to 5.0 scale. Workload and difficulty are
// inverted: a high raw value is a worse student experience.
package score

import (
	"math"
)

const (
	Min = 1.0
	Max = 5.0

	// inversionPivot maps a raw inverted value v onto 6-v, so 1<->5 and 3<->3.
	inversionPivot = Min + Max

	goodThreshold     = 4.0
	moderateThreshold = 3.0
)

// Metric identifies one of the scored dimensions.
type Metric int

const (
	Workload Metric = iota
	Difficulty
	Usefulness
	Enjoyability
	// Overall is the headline average. It is never inverted.
	Overall
)

var metricLabels = map[Metric]string{
	Workload:     "Workload",
	Difficulty:   "Difficulty",
	Usefulness:   "Usefulness",
	Enjoyability: "Enjoyability",
	Overall:      "Overall",
}

func (m Metric) String() string {
	if label, ok := metricLabels[m]; ok {
		return label
	}
	return "Unknown"
}

// Inverted reports whether a higher raw value is worse.
func (m Metric) Inverted() bool {
	return m == Workload || m == Difficulty
}

// Band is the quality classification of a score.
type Band string

const (
	Good     Band = "good"
	Moderate Band = "moderate"
	Poor     Band = "poor"
)

// Color is the presentation color token for the band.
func (b Band) Color() string {
	switch b {
	case Good:
		return "green"
	case Moderate:
		return "yellow"
	default:
		return "peach"
	}
}

// Classify bands value for the given metric. Thresholds are closed below:
// >= 4.0, [3.0, 4.0) and < 3.0. For inverted metrics the raw value is
// compared directly and the good/poor labels swap.
func Classify(metric Metric, value float64) Band {
	value = Clamp(value)

	var band Band
	switch {
	case value >= goodThreshold:
		band = Good
	case value >= moderateThreshold:
		band = Moderate
	default:
		band = Poor
	}

	if metric.Inverted() {
		switch band {
		case Good:
			return Poor
		case Poor:
			return Good
		}
	}
	return band
}

// Average is the headline score: the mean of the four metrics after
// inverting workload and difficulty, rounded to the nearest 0.5.
func Average(workload, difficulty, usefulness, enjoyability float64) float64 {
	sum := Clamp(usefulness) +
		Clamp(enjoyability) +
		Normalize(Workload, workload) +
		Normalize(Difficulty, difficulty)
	return Clamp(RoundHalf(sum / 4))
}

// Normalize places value on the scale where 5 is always best.
func Normalize(metric Metric, value float64) float64 {
	value = Clamp(value)
	if metric.Inverted() {
		return inversionPivot - value
	}
	return value
}

// snapPrecision absorbs float error from summing decimal metrics, so a mean
// that is a quarter point in decimal is treated as exactly that.
const snapPrecision = 1e9

// RoundHalf rounds x to the nearest multiple of 0.5. Exact quarter points
// round up, so 3.25 becomes 3.5 and 3.75 becomes 4.0.
func RoundHalf(x float64) float64 {
	doubled := math.Round(x*2*snapPrecision) / snapPrecision
	return math.Floor(doubled+0.5) / 2
}

// Clamp keeps v inside [Min, Max]. NaN is treated as Min.
func Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < Min:
		return Min
	case v > Max:
		return Max
	default:
		return v
	}
}

// Score is one banded metric value.
type Score struct {
	Metric Metric
	Value  float64
	Band   Band
}

// Label is the display name of the metric.
func (s Score) Label() string {
	return s.Metric.String()
}

// Scores bands the four metrics in display order.
func Scores(workload, difficulty, usefulness, enjoyability float64) []Score {
	raw := []struct {
		metric Metric
		value  float64
	}{
		{Workload, workload},
		{Difficulty, difficulty},
		{Usefulness, usefulness},
		{Enjoyability, enjoyability},
	}

	scores := make([]Score, 0, len(raw))
	for _, r := range raw {
		v := Clamp(r.value)
		scores = append(scores, Score{Metric: r.metric, Value: v, Band: Classify(r.metric, v)})
	}
	return scores
}
