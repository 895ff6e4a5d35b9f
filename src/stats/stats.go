// Package stats computes the per-axis summary used to place the quadrant
// lines and the axis limits of a chart.
package stats

import (
	"math"

	"github.com/ajbenz18/nfl-analysis/src/dataset"
)

// DefaultMarginFactor is half a standard deviation.
const DefaultMarginFactor = 0.5

// AxisStats summarizes the plotted values of one axis.
type AxisStats struct {
	Column string
	N      int
	Mean   float64
	// StdDev is the sample standard deviation (n-1 denominator).
	StdDev float64
	Min    float64
	Max    float64
	// Margin is the padding added on both sides of [Min, Max].
	Margin float64
}

// Compute summarizes values. Fewer than two values give a zero deviation and
// zero margin; no values give the zero AxisStats.
func Compute(values []float64, marginFactor float64) AxisStats {
	s := AxisStats{N: len(values)}
	if s.N == 0 {
		return s
	}
	s.Min, s.Max = values[0], values[0]
	sum := 0.0
	for _, v := range values {
		sum += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean = sum / float64(s.N)
	if s.N > 1 {
		ss := 0.0
		for _, v := range values {
			d := v - s.Mean
			ss += d * d
		}
		s.StdDev = math.Sqrt(ss / float64(s.N-1))
	}
	s.Margin = s.StdDev * marginFactor
	return s
}

// ForColumn summarizes the numeric cells of col.
func ForColumn(ds *dataset.Dataset, col string, marginFactor float64) AxisStats {
	s := Compute(ds.Floats(col), marginFactor)
	s.Column = col
	return s
}

// Empty reports whether no values were summarized.
func (s AxisStats) Empty() bool { return s.N == 0 }

// Degenerate reports whether the deviation could not be estimated.
func (s AxisStats) Degenerate() bool { return s.N <= 1 }

// Limits returns the padded range [Min-Margin, Max+Margin].
func (s AxisStats) Limits() (lo, hi float64) {
	return s.Min - s.Margin, s.Max + s.Margin
}

// Percent reports whether the axis should be labelled as a percentage: the
// column was declared one, or every value is at most 1.
func (s AxisStats) Percent(declared bool) bool {
	return declared || (!s.Empty() && s.Max <= 1)
}
