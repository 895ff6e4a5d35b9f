// Package normalize turns raw loaded cells into plottable numbers: it coerces
// text to floats, converts percent columns to the 0-1 scale exactly once,
// applies name transforms and drops rows that cannot be plotted.
package normalize

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ajbenz18/nfl-analysis/src/dataset"
	"github.com/ajbenz18/nfl-analysis/src/logging"
)

var log = logging.For("normalize")

// parseCell converts one cell to a float. pct is true when the text carried
// a trailing '%'. ok is false for empty or unparsable cells.
func parseCell(v dataset.Value) (f float64, pct, ok bool) {
	switch v.Kind() {
	case dataset.KindNumber:
		f, _ = v.Float()
		return f, false, true
	case dataset.KindText:
		s := strings.TrimSpace(v.String())
		s = strings.ReplaceAll(s, ",", "")
		if strings.HasSuffix(s, "%") {
			pct = true
			s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
		}
		if s == "" {
			return 0, false, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false, false
		}
		return f, pct, true
	default:
		return 0, false, false
	}
}

// Coerce converts every cell of col to a number or missing and returns how
// many cells ended up missing. A column is a percentage when percent is set or
// when any of its cells is written with a trailing '%', as in "45%". Every
// value of a percentage column, suffixed or not, is divided by 100 and the
// column is marked fractional. A column already marked fractional is never
// rescaled again.
func Coerce(ds *dataset.Dataset, col string, percent bool) int {
	already := ds.IsFractional(col)
	if !already && !percent {
		percent = hasPercentSuffix(ds, col)
	}
	missing := 0
	for _, r := range ds.Records {
		v := r.Get(col)
		if v.Kind() == dataset.KindNumber && already {
			continue
		}
		f, _, ok := parseCell(v)
		if !ok {
			r[col] = dataset.Missing()
			missing++
			continue
		}
		if !already && percent {
			f /= 100
		}
		r[col] = dataset.Number(f)
	}
	if percent {
		ds.MarkFractional(col)
	}
	return missing
}

// hasPercentSuffix reports whether any parsable text cell of col ends in '%'.
func hasPercentSuffix(ds *dataset.Dataset, col string) bool {
	for _, r := range ds.Records {
		if _, pct, ok := parseCell(r.Get(col)); ok && pct {
			return true
		}
	}
	return false
}

// ScaleIfPercent applies the percentage heuristic to col: when the column is
// not fractional yet and the mean of its numeric cells exceeds 1, every cell
// is divided by 100 and the column is marked. It reports whether it scaled.
func ScaleIfPercent(ds *dataset.Dataset, col string) bool {
	if ds.IsFractional(col) {
		return false
	}
	vals := ds.Floats(col)
	if len(vals) == 0 {
		return false
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	if sum/float64(len(vals)) <= 1 {
		return false
	}
	for _, r := range ds.Records {
		if f, ok := r.Get(col).Float(); ok {
			r[col] = dataset.Number(f / 100)
		}
	}
	ds.MarkFractional(col)
	return true
}

// StripQualifier drops everything up to and including the first ". ", so a
// ranked name like "1. P. Mahomes" becomes "P. Mahomes". Strings without the
// separator are returned unchanged.
func StripQualifier(s string) string {
	if i := strings.Index(s, ". "); i >= 0 {
		return s[i+2:]
	}
	return s
}

// AtLeast keeps records whose numeric col is >= min. Records with a missing
// count are excluded. It returns the filtered dataset and the dropped count.
func AtLeast(ds *dataset.Dataset, col string, min float64) (*dataset.Dataset, int) {
	out := ds.Filter(func(r dataset.Record) bool {
		f, ok := r.Get(col).Float()
		return ok && f >= min
	})
	return out, ds.Len() - out.Len()
}

// DropMissing keeps records that have a number in every listed column.
func DropMissing(ds *dataset.Dataset, cols ...string) (*dataset.Dataset, int) {
	out := ds.Filter(func(r dataset.Record) bool {
		for _, c := range cols {
			if _, ok := r.Get(c).Float(); !ok {
				return false
			}
		}
		return true
	})
	return out, ds.Len() - out.Len()
}

// Options selects which normalizations Run applies.
type Options struct {
	XCol, YCol string
	// NameCol gets StripQualifier applied when StripNames is set.
	NameCol    string
	StripNames bool
	// Numeric columns are coerced; Percent columns are coerced and divided by 100.
	Numeric []string
	Percent []string
	// Heuristic enables ScaleIfPercent on the two axis columns.
	Heuristic bool
	// CountCol and MinCount enable the minimum-sample filter when CountCol is set.
	CountCol string
	MinCount float64
}

// Result is the normalized dataset plus what was done to get there.
type Result struct {
	Data *dataset.Dataset
	// Missing counts cells per column that could not be coerced.
	Missing map[string]int
	// Scaled lists the columns converted to the 0-1 scale, sorted.
	Scaled         []string
	BelowThreshold int
	Dropped        int
}

// Run normalizes ds in place and returns the plottable subset. The order is
// fixed: name transform, coercion, percentage heuristic, minimum-sample
// filter, then exclusion of rows missing either axis.
func Run(ds *dataset.Dataset, opts Options) (*Result, error) {
	defer log.TimeTrack(time.Now(), "normalize "+ds.Name)
	if opts.XCol == "" || opts.YCol == "" {
		return nil, fmt.Errorf("normalize %s: both axis columns are required", ds.Name)
	}

	if opts.StripNames && opts.NameCol != "" {
		for _, r := range ds.Records {
			v := r.Get(opts.NameCol)
			if v.Kind() == dataset.KindText {
				r[opts.NameCol] = dataset.Text(StripQualifier(v.String()))
			}
		}
	}

	res := &Result{Missing: map[string]int{}}
	scaled := map[string]bool{}
	percent := map[string]bool{}
	for _, c := range opts.Percent {
		percent[c] = true
	}

	cols := append([]string{opts.XCol, opts.YCol}, opts.Numeric...)
	cols = append(cols, opts.Percent...)
	if opts.CountCol != "" {
		cols = append(cols, opts.CountCol)
	}
	done := map[string]bool{}
	for _, c := range cols {
		if done[c] {
			continue
		}
		done[c] = true
		wasFrac := ds.IsFractional(c)
		if n := Coerce(ds, c, percent[c]); n > 0 {
			res.Missing[c] = n
		}
		if !wasFrac && ds.IsFractional(c) {
			scaled[c] = true
		}
	}

	if opts.Heuristic {
		for _, c := range []string{opts.XCol, opts.YCol} {
			if !percent[c] && ScaleIfPercent(ds, c) {
				scaled[c] = true
			}
		}
	}

	data := ds
	if opts.CountCol != "" {
		data, res.BelowThreshold = AtLeast(data, opts.CountCol, opts.MinCount)
	}
	data, res.Dropped = DropMissing(data, opts.XCol, opts.YCol)
	res.Data = data

	for c := range scaled {
		res.Scaled = append(res.Scaled, c)
	}
	sort.Strings(res.Scaled)

	if res.BelowThreshold > 0 || res.Dropped > 0 {
		log.Debugf("%s: %d rows below %s threshold, %d rows missing an axis value, %d kept",
			ds.Name, res.BelowThreshold, opts.CountCol, res.Dropped, data.Len())
	}
	return res, nil
}
