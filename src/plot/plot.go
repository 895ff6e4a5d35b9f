// Package plot wires the chart pipeline together: load, validate, normalize,
// aggregate, resolve markers, render. Each stage only feeds the next.
package plot

import (
	"errors"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/ajbenz18/nfl-analysis/src/dataset"
	"github.com/ajbenz18/nfl-analysis/src/logging"
	"github.com/ajbenz18/nfl-analysis/src/marker"
	"github.com/ajbenz18/nfl-analysis/src/normalize"
	"github.com/ajbenz18/nfl-analysis/src/render"
	"github.com/ajbenz18/nfl-analysis/src/stats"
)

var log = logging.For("plot")

// ErrNothingToPlot is returned when every row was filtered out.
var ErrNothingToPlot = errors.New("no rows left to plot")

// Report describes what happened to the rows of one chart.
type Report struct {
	RowsLoaded     int
	RowsPlotted    int
	BelowThreshold int
	// Dropped counts rows excluded for a missing axis value.
	Dropped int
	// Missing counts uncoercible cells per column.
	Missing         map[string]int
	Scaled          []string
	WithAsset       int
	WithoutAsset    int
	X, Y            stats.AxisStats
	XPercent        bool
	YPercent        bool
	Title, Subtitle string
}

// Chart is a rendered figure and its report.
type Chart struct {
	Image  *image.RGBA
	Report Report
}

// Prepare validates spec and runs its data stages: load, join, schema check,
// normalize and aggregate. It is what Run does before drawing.
func Prepare(spec PlotSpec) (*dataset.Dataset, Report, error) {
	if err := spec.Validate(); err != nil {
		return nil, Report{}, err
	}
	r, err := spec.resolve()
	if err != nil {
		return nil, Report{}, err
	}
	return r.prepare()
}

func (r resolved) prepare() (*dataset.Dataset, Report, error) {
	var rep Report
	ds, err := dataset.Load(r.source(r.Primary))
	if err != nil {
		return nil, rep, err
	}
	if r.Secondary != "" {
		sec, err := dataset.Load(r.source(r.Secondary))
		if err != nil {
			return nil, rep, err
		}
		if ds, err = dataset.LeftJoin(ds, sec, r.JoinKey, r.JoinSuffix); err != nil {
			return nil, rep, err
		}
	}
	rep.RowsLoaded = ds.Len()
	if err := r.schema().Validate(ds); err != nil {
		return nil, rep, err
	}

	opts := normalize.Options{
		XCol:       r.X,
		YCol:       r.Y,
		NameCol:    r.LabelCol,
		StripNames: r.domain.StripNames,
		Heuristic:  r.domain.Heuristic,
		CountCol:   r.CountCol,
		MinCount:   r.minCount,
	}
	for _, c := range ds.Columns() {
		switch {
		case r.isPercent(c):
			opts.Percent = append(opts.Percent, c)
		case r.domain.CoerceAll && !r.domain.isText(c) && c != r.LabelCol:
			opts.Numeric = append(opts.Numeric, c)
		}
	}
	res, err := normalize.Run(ds, opts)
	if err != nil {
		return nil, rep, err
	}
	data := res.Data
	rep.RowsPlotted = data.Len()
	rep.BelowThreshold = res.BelowThreshold
	rep.Dropped = res.Dropped
	rep.Missing = res.Missing
	rep.Scaled = res.Scaled

	rep.X = stats.ForColumn(data, r.X, r.domain.MarginFactor)
	rep.Y = stats.ForColumn(data, r.Y, r.domain.MarginFactor)
	rep.XPercent = rep.X.Percent(r.isPercent(r.X))
	rep.YPercent = rep.Y.Percent(r.isPercent(r.Y))
	if rep.X.Degenerate() || rep.Y.Degenerate() {
		log.Debugf("%s: %d rows, axis margins fall back to zero", r.label(), data.Len())
	}
	rep.Title = r.DisplayTitle()
	rep.Subtitle = r.Subtitle
	return data, rep, nil
}

// Run produces the chart described by spec. A *dataset.LoadError aborts the
// run; missing cells, absent assets and degenerate statistics do not.
func Run(spec PlotSpec) (*Chart, error) {
	defer log.TimeTrack(time.Now(), "chart "+spec.label())
	data, rep, err := Prepare(spec)
	if err != nil {
		return nil, err
	}
	r, err := spec.resolve()
	if err != nil {
		return nil, err
	}
	if data.Len() == 0 {
		return &Chart{Report: rep}, fmt.Errorf("chart %s: %w (%d loaded, %d below threshold, %d missing an axis)",
			r.label(), ErrNothingToPlot, rep.RowsLoaded, rep.BelowThreshold, rep.Dropped)
	}

	var store marker.Resolver
	store.Size = r.LogoSize
	if r.AssetDir != "" {
		store.Store = os.DirFS(r.AssetDir)
	}
	markers := marker.Build(data, store, marker.Options{
		XCol:        r.X,
		YCol:        r.Y,
		LabelCol:    r.LabelCol,
		IdentityCol: r.IdentityCol,
	})
	for _, m := range markers {
		if m.Image != nil {
			rep.WithAsset++
		} else {
			rep.WithoutAsset++
		}
	}

	img, err := render.Render(markers, rep.X, rep.Y, render.Options{
		Width:       r.Width,
		Height:      r.Height,
		Title:       rep.Title,
		Subtitle:    rep.Subtitle,
		XLabel:      r.XName(),
		YLabel:      r.YName(),
		InvertX:     r.InvertX,
		InvertY:     r.InvertY,
		XPercent:    r.isPercent(r.X),
		YPercent:    r.isPercent(r.Y),
		LabelOffset: r.domain.LabelOffset,
	})
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", r.label(), err)
	}
	log.Infof("chart %s: %d of %d rows plotted, %d logos, %d fallback points",
		r.label(), rep.RowsPlotted, rep.RowsLoaded, rep.WithAsset, rep.WithoutAsset)
	return &Chart{Image: img, Report: rep}, nil
}

// Save writes the chart as PNG.
func Save(c *Chart, path string) error {
	if c == nil || c.Image == nil {
		return fmt.Errorf("save %s: empty chart", path)
	}
	return render.SavePNG(path, c.Image)
}
