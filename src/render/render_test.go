package render

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ajbenz18/nfl-analysis/src/marker"
	"github.com/ajbenz18/nfl-analysis/src/stats"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// redCentroid returns the mean position of pure red pixels.
func redCentroid(t *testing.T, img *image.RGBA) (float64, float64) {
	t.Helper()
	var sx, sy, n float64
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == (color.RGBA{R: 255, A: 255}) {
				sx += float64(x)
				sy += float64(y)
				n++
			}
		}
	}
	if n == 0 {
		t.Fatalf("no marker image pixels found")
	}
	return sx / n, sy / n
}

func TestNewAxisBoundsEveryValue(t *testing.T) {
	vals := []float64{0.31, 0.42, 0.18, 0.55, 0.47}
	s := stats.Compute(vals, 0.5)
	a := NewAxis(s, false, false)
	for _, v := range vals {
		if !a.Contains(v) {
			t.Fatalf("value %v outside axis [%v, %v]", v, a.Lo, a.Hi)
		}
	}
	if !a.Percent {
		t.Fatalf("max <= 1 should format as percent")
	}
}

func TestInversionKeepsLimits(t *testing.T) {
	xs := stats.Compute([]float64{1, 5, 9}, 0.5)
	ys := stats.Compute([]float64{-0.2, 0.1, 0.3}, 0.5)

	plainX, plainY := NewAxis(xs, false, false), NewAxis(ys, false, false)
	invX, invY := NewAxis(xs, true, false), NewAxis(ys, false, false)
	if plainY != invY {
		t.Fatalf("inverting x changed the y axis: %+v vs %+v", plainY, invY)
	}
	if plainX.Lo != invX.Lo || plainX.Hi != invX.Hi || !invX.Inverted {
		t.Fatalf("inversion must only flip direction: %+v vs %+v", plainX, invX)
	}
	r := invX.chartRange()
	if r.Min != plainX.Lo || r.Max != plainX.Hi || !r.Descending {
		t.Fatalf("chart range %+v does not match axis %+v", r, invX)
	}
}

func TestNewAxisDegenerate(t *testing.T) {
	a := NewAxis(stats.Compute([]float64{0.4}, 0.5), false, false)
	if !(a.Lo < 0.4 && a.Hi > 0.4) {
		t.Fatalf("single value should be padded, got [%v, %v]", a.Lo, a.Hi)
	}
	z := NewAxis(stats.Compute([]float64{0, 0}, 0.5), false, false)
	if !(z.Lo < 0 && z.Hi > 0) {
		t.Fatalf("constant zero column should be padded, got [%v, %v]", z.Lo, z.Hi)
	}
	e := NewAxis(stats.AxisStats{}, false, false)
	if e.Lo != 0 || e.Hi != 1 || e.Percent {
		t.Fatalf("empty stats axis %+v", e)
	}
}

func TestDeclaredPercent(t *testing.T) {
	a := NewAxis(stats.Compute([]float64{5, 40}, 0.5), false, true)
	if !a.Percent {
		t.Fatalf("declared percent axis should format as percent")
	}
	if NewAxis(stats.Compute([]float64{5, 40}, 0.5), false, false).Percent {
		t.Fatalf("values above 1 should not format as percent")
	}
}

func TestFormatters(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{0.25, "25%"},
		{0.125, "12.5%"},
		{0, "0%"},
		{-0.05, "-5%"},
	}
	for _, c := range cases {
		if got := formatPercent(c.v); got != c.want {
			t.Fatalf("formatPercent(%v)=%q want %q", c.v, got, c.want)
		}
	}
	if got := formatTick(250.4); got != "250" {
		t.Fatalf("formatTick(250.4)=%q", got)
	}
	if got := formatTick(0.125); got != "0.13" && got != "0.12" {
		t.Fatalf("formatTick(0.125)=%q", got)
	}
	pf := Axis{Percent: true}.formatter()
	if got := pf(0.5); got != "50%" {
		t.Fatalf("percent formatter gave %q", got)
	}
	if got := pf("x"); got != "" {
		t.Fatalf("non-float should format empty, got %q", got)
	}
}

func renderPair(t *testing.T, opts Options) *image.RGBA {
	t.Helper()
	red := solid(12, 12, color.RGBA{R: 255, A: 255})
	ms := []marker.Marker{
		{X: 0, Y: 0, Key: "A", Label: "A"},
		{X: 1, Y: 1, Key: "B", Label: "B", Image: red},
	}
	xs := stats.Compute([]float64{0, 1}, 0.5)
	ys := stats.Compute([]float64{0, 1}, 0.5)
	opts.Width, opts.Height = 600, 400
	img, err := Render(ms, xs, ys, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return img
}

func TestRenderPlacesImageMarker(t *testing.T) {
	img := renderPair(t, Options{Title: "x vs y", Subtitle: "2024 Regular Season"})
	if sz := img.Bounds().Size(); sz.X != 600 || sz.Y != 400 {
		t.Fatalf("figure size %v", sz)
	}
	x, y := redCentroid(t, img)
	if x < 300 || y > 200 {
		t.Fatalf("high x/high y marker should sit top-right, got (%.0f, %.0f)", x, y)
	}
}

func TestRenderInvertsAxes(t *testing.T) {
	x, y := redCentroid(t, renderPair(t, Options{InvertY: true}))
	if x < 300 || y < 200 {
		t.Fatalf("inverted y should move marker down, got (%.0f, %.0f)", x, y)
	}
	x, y = redCentroid(t, renderPair(t, Options{InvertX: true}))
	if x > 300 || y > 200 {
		t.Fatalf("inverted x should move marker left, got (%.0f, %.0f)", x, y)
	}
}

func TestRenderSinglePointFallback(t *testing.T) {
	ms := []marker.Marker{{X: 0.4, Y: 12, Label: "DAL"}}
	img, err := Render(ms, stats.Compute([]float64{0.4}, 0.5), stats.Compute([]float64{12}, 0.5), Options{})
	if err != nil {
		t.Fatalf("single point should render: %v", err)
	}
	if sz := img.Bounds().Size(); sz.X != DefaultWidth || sz.Y != DefaultHeight {
		t.Fatalf("default size not applied: %v", sz)
	}
}

func TestRenderNoMarkers(t *testing.T) {
	_, err := Render(nil, stats.AxisStats{}, stats.AxisStats{}, Options{})
	if !errors.Is(err, ErrNoMarkers) {
		t.Fatalf("expected ErrNoMarkers, got %v", err)
	}
}

func TestSavePNG(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out", "nested", "chart.png")
	if err := SavePNG(p, solid(500, 350, color.RGBA{R: 248, G: 249, B: 250, A: 255})); err != nil {
		t.Fatalf("save: %v", err)
	}
	f, err := os.Open(p)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sz := img.Bounds().Size(); sz.X != 500 || sz.Y != 350 {
		t.Fatalf("saved size %v", sz)
	}
	if err := WritePNG(nil, nil); err == nil {
		t.Fatalf("nil image should fail")
	}
}

func TestFigureSize(t *testing.T) {
	if w, h := FigureSize(0, 0); w != DefaultWidth || h != DefaultHeight {
		t.Fatalf("defaults: %dx%d", w, h)
	}
	if w, h := FigureSize(100, 50); w != minWidth || h != minHeight {
		t.Fatalf("minimums: %dx%d", w, h)
	}
}

// meanGrey matches the translucent mean-line grey blended over the background.
func meanGrey(c color.RGBA) bool {
	near := func(a, b uint8) bool { return a-b <= 4 || b-a <= 4 }
	return c.R > 150 && c.R < 215 && near(c.R, c.G) && near(c.G, c.B)
}

func greyCoverage(img *image.RGBA, x0, x1, y0, y1 int) float64 {
	hit, total := 0, 0
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			found := false
			// one pixel of slack across the line for antialiasing
			for d := -1; d <= 1 && !found; d++ {
				px, py := x, y
				if x0 == x1 {
					px += d
				} else {
					py += d
				}
				found = meanGrey(img.RGBAAt(px, py))
			}
			if found {
				hit++
			}
			total++
		}
	}
	return float64(hit) / float64(total)
}

func TestRenderDrawsMeanLines(t *testing.T) {
	red := solid(12, 12, color.RGBA{R: 255, A: 255})
	ms := []marker.Marker{
		{X: 0.1, Y: 0.2, Label: "A", Image: red},
		{X: 0.3, Y: 0.5, Label: "B", Image: red},
		{X: 0.8, Y: 0.5, Label: "C", Image: red},
	}
	xs := stats.Compute([]float64{0.1, 0.3, 0.8}, 0.5)
	ys := stats.Compute([]float64{0.2, 0.5, 0.5}, 0.5)
	img, fr, err := render(ms, xs, ys, Options{Width: 600, Height: 400})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	c := fr.canvas
	mx, my := fr.project(xs.Mean, ys.Mean)

	if cov := greyCoverage(img, mx, mx, c.Top+2, c.Bottom-2); cov < 0.35 {
		t.Fatalf("x mean line at column %d covers %.2f of the plot height", mx, cov)
	}
	if cov := greyCoverage(img, c.Left+2, c.Right-2, my, my); cov < 0.35 {
		t.Fatalf("y mean line at row %d covers %.2f of the plot width", my, cov)
	}

	away, _ := fr.project((xs.Mean+0.8)/2, ys.Mean)
	if cov := greyCoverage(img, away, away, c.Top+2, c.Bottom-2); cov > 0.1 {
		t.Fatalf("column %d away from the mean covers %.2f", away, cov)
	}
}

func TestRenderLabelBelowMarker(t *testing.T) {
	red := solid(12, 12, color.RGBA{R: 255, A: 255})
	ms := []marker.Marker{
		{X: 0, Y: 0, Label: "A", Image: red},
		{X: 1, Y: 1, Label: "W", Image: red},
	}
	xs := stats.Compute([]float64{0, 1}, 0.5)
	ys := stats.Compute([]float64{0, 1}, 0.5)
	const offset = 20
	img, fr, err := render(ms, xs, ys, Options{Width: 600, Height: 400, LabelOffset: offset})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	px, py := fr.project(1, 1)

	minX, maxX, minY := 1<<30, -1, 1<<30
	for y := py + 7; y < py+offset+40; y++ {
		for x := px - 40; x <= px+40; x++ {
			c := img.RGBAAt(x, y)
			if c.R < 120 && c.G < 120 && c.B < 120 {
				minX, maxX = min(minX, x), max(maxX, x)
				minY = min(minY, y)
			}
		}
	}
	if maxX < 0 {
		t.Fatalf("no label pixels under marker at (%d, %d)", px, py)
	}
	if minY < py+offset || minY > py+offset+6 {
		t.Fatalf("label top at %d, want within [%d, %d]", minY, py+offset, py+offset+6)
	}
	if mid := (minX + maxX) / 2; mid < px-3 || mid > px+3 {
		t.Fatalf("label centred at x=%d, marker at x=%d", mid, px)
	}
}
