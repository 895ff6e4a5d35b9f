package render

import (
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/ajbenz18/nfl-analysis/src/stats"
)

// Axis is a finalized axis range. Lo and Hi come from the statistics alone;
// Inverted only flips the drawing direction.
type Axis struct {
	Lo, Hi   float64
	Inverted bool
	Percent  bool
}

// NewAxis derives the visible range [min-margin, max+margin] from s. A
// zero-width range is widened by a small pad so it can be drawn; inversion
// is applied afterwards and never changes Lo or Hi.
func NewAxis(s stats.AxisStats, invert, declaredPercent bool) Axis {
	lo, hi := s.Limits()
	if s.Empty() {
		lo, hi = 0, 1
	}
	if hi-lo <= 0 {
		pad := math.Abs(lo) * 0.05
		if pad == 0 {
			pad = 0.05
		}
		lo, hi = lo-pad, hi+pad
	}
	return Axis{Lo: lo, Hi: hi, Inverted: invert, Percent: s.Percent(declaredPercent)}
}

// Contains reports whether v lies inside the visible range.
func (a Axis) Contains(v float64) bool { return v >= a.Lo && v <= a.Hi }

func (a Axis) chartRange() *chart.ContinuousRange {
	return &chart.ContinuousRange{Min: a.Lo, Max: a.Hi, Descending: a.Inverted}
}

func (a Axis) formatter() chart.ValueFormatter {
	if a.Percent {
		return func(v interface{}) string {
			if f, ok := v.(float64); ok {
				return formatPercent(f)
			}
			return ""
		}
	}
	return func(v interface{}) string {
		if f, ok := v.(float64); ok {
			return formatTick(f)
		}
		return ""
	}
}

// formatPercent renders a fraction as a percentage: 0.25 -> "25%".
func formatPercent(v float64) string {
	p := v * 100
	if math.Abs(p-math.Round(p)) < 1e-9 {
		return fmt.Sprintf("%.0f%%", p)
	}
	return fmt.Sprintf("%.1f%%", p)
}

func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	switch {
	case av >= 100:
		return fmt.Sprintf("%.0f", v)
	case av >= 10:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
