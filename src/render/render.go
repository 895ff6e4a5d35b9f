// Package render draws the annotated scatter plot: styled axes and grid,
// dashed mean lines splitting the plot into quadrants, one image or fallback
// point per record, and a bold label under each point.
//
// The axes, grid and series are drawn by go-chart. Marker images, labels and
// the left-aligned title are composited afterwards onto the decoded chart,
// using the canvas box captured from the chart's final layout so both layers
// share one coordinate mapping.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/ajbenz18/nfl-analysis/src/logging"
	"github.com/ajbenz18/nfl-analysis/src/marker"
	"github.com/ajbenz18/nfl-analysis/src/stats"
)

var log = logging.For("render")

// ErrNoMarkers is returned when there is no record to plot.
var ErrNoMarkers = errors.New("no plottable records")

// DefaultLabelOffset is the distance in pixels from a point to the top of its
// label when Options.LabelOffset is zero.
const DefaultLabelOffset = 12

// Options describes one figure.
type Options struct {
	Width, Height int

	Title    string
	Subtitle string
	XLabel   string
	YLabel   string

	InvertX, InvertY bool
	// XPercent and YPercent declare the axis a percentage regardless of its
	// observed maximum.
	XPercent, YPercent bool

	// LabelOffset is the fixed vertical distance between a point and its label.
	LabelOffset int
}

// Render draws markers onto a new figure. xs and ys provide the mean lines
// and the axis limits. It keeps no state between calls.
func Render(markers []marker.Marker, xs, ys stats.AxisStats, opts Options) (*image.RGBA, error) {
	defer log.TimeTrack(time.Now(), "render")
	img, _, err := render(markers, xs, ys, opts)
	return img, err
}

// frame maps data coordinates to pixels of a rendered figure.
type frame struct {
	canvas chart.Box
	xr, yr *chart.ContinuousRange
}

func (f frame) project(x, y float64) (int, int) {
	return f.canvas.Left + f.xr.Translate(x), f.canvas.Bottom - f.yr.Translate(y)
}

func render(markers []marker.Marker, xs, ys stats.AxisStats, opts Options) (*image.RGBA, frame, error) {
	var fr frame
	if len(markers) == 0 {
		return nil, fr, ErrNoMarkers
	}
	fs, err := loadFonts()
	if err != nil {
		return nil, fr, err
	}
	titleFace, err := newFace(fs.overlayBold, titleFontSize)
	if err != nil {
		return nil, fr, fmt.Errorf("title face: %w", err)
	}
	defer titleFace.Close()
	subFace, err := newFace(fs.overlayRegular, subFontSize)
	if err != nil {
		return nil, fr, fmt.Errorf("subtitle face: %w", err)
	}
	defer subFace.Close()
	labelFace, err := newFace(fs.overlayBold, labelFontSize)
	if err != nil {
		return nil, fr, fmt.Errorf("label face: %w", err)
	}
	defer labelFace.Close()

	w, h := FigureSize(opts.Width, opts.Height)
	xa := NewAxis(xs, opts.InvertX, opts.XPercent)
	ya := NewAxis(ys, opts.InvertY, opts.YPercent)
	xr, yr := xa.chartRange(), ya.chartRange()

	header := 16 + lineHeight(titleFace) + 12
	if opts.Subtitle != "" {
		header += lineHeight(subFace) + 4
	}

	series := quadrantSeries(xs, ys, xa, ya)
	var fx, fy []float64
	for _, m := range markers {
		if !hasImage(m) {
			fx = append(fx, m.X)
			fy = append(fy, m.Y)
		}
	}
	if len(fx) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    "fallback",
			Style:   pointStyle(colorFallback),
			XValues: fx,
			YValues: fy,
		})
	}
	if len(series) == 0 {
		return nil, fr, fmt.Errorf("render: nothing visible to draw")
	}

	var canvas chart.Box
	ch := chart.Chart{
		Width:  w,
		Height: h,
		Font:   fs.regular,
		Background: chart.Style{
			FillColor: colorBackground,
			Padding:   chart.Box{Top: header, Left: 24, Right: 40, Bottom: 16, IsSet: true},
		},
		// no top or right spine: the canvas border blends into the background
		Canvas: chart.Style{FillColor: colorBackground, StrokeColor: colorBackground},
		XAxis: chart.XAxis{
			Name:           opts.XLabel,
			NameStyle:      axisNameStyle(fs),
			Style:          axisStyle(),
			ValueFormatter: xa.formatter(),
			Range:          xr,
			GridMajorStyle: gridStyle(),
			GridMinorStyle: gridStyle(),
		},
		YAxis: chart.YAxis{
			Name:           opts.YLabel,
			NameStyle:      axisNameStyle(fs),
			Style:          axisStyle(),
			AxisType:       chart.YAxisSecondary,
			Zero:           chart.GridLine{Style: chart.Hidden()},
			ValueFormatter: ya.formatter(),
			Range:          yr,
			GridMajorStyle: gridStyle(),
			GridMinorStyle: gridStyle(),
		},
		YAxisSecondary: chart.HideYAxis(),
		Series:         series,
		Log:            chartLog(),
		Elements: []chart.Renderable{
			func(_ chart.Renderer, cb chart.Box, _ chart.Style) { canvas = cb },
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fr, fmt.Errorf("render chart: %w", err)
	}
	base, err := png.Decode(&buf)
	if err != nil {
		return nil, fr, fmt.Errorf("decode chart: %w", err)
	}
	out := image.NewRGBA(base.Bounds())
	draw.Draw(out, out.Bounds(), base, base.Bounds().Min, draw.Src)

	fr = frame{canvas: canvas, xr: xr, yr: yr}
	project := fr.project

	offset := opts.LabelOffset
	if offset <= 0 {
		offset = DefaultLabelOffset
	}
	images := 0
	for _, m := range markers {
		if !hasImage(m) {
			continue
		}
		px, py := project(m.X, m.Y)
		drawCentered(out, m.Image, px, py)
		images++
	}
	for _, m := range markers {
		px, py := project(m.X, m.Y)
		drawText(out, labelFace, m.Label, px, py+offset, colorLabel, alignCenter)
	}

	titleTop := 16
	drawText(out, titleFace, opts.Title, canvas.Left, titleTop, colorTitle, alignLeft)
	if opts.Subtitle != "" {
		drawText(out, subFace, opts.Subtitle, canvas.Left, titleTop+lineHeight(titleFace)+4, colorSubtitle, alignLeft)
	}

	log.Debugf("drew %d markers (%d images, %d points) on %dx%d", len(markers), images, len(fx), w, h)
	return out, fr, nil
}

func hasImage(m marker.Marker) bool {
	return m.Image != nil && !m.Image.Bounds().Empty()
}

// quadrantSeries returns the dashed lines at the x and y means, spanning the
// full visible range of the other axis.
func quadrantSeries(xs, ys stats.AxisStats, xa, ya Axis) []chart.Series {
	var out []chart.Series
	if !xs.Empty() {
		out = append(out, chart.ContinuousSeries{
			Name:    "x mean",
			Style:   meanLineStyle(),
			XValues: []float64{xs.Mean, xs.Mean},
			YValues: []float64{ya.Lo, ya.Hi},
		})
	}
	if !ys.Empty() {
		out = append(out, chart.ContinuousSeries{
			Name:    "y mean",
			Style:   meanLineStyle(),
			XValues: []float64{xa.Lo, xa.Hi},
			YValues: []float64{ys.Mean, ys.Mean},
		})
	}
	return out
}
