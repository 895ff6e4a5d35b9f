package plot

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajbenz18/nfl-analysis/src/dataset"
)

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func writeLogo(t *testing.T, dir, key string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 10, G: 120, B: 40, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, key+".png"))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

const offense = `,,Passing,Rushing
Rk,Tm,PACT%,MOT%
1,DAL,45,30
2,KC,55,40
3,NYG,35,
4,PHI,50,25
`

const defense = `,,Defense
Rk,Tm,Sacks
1,DAL,50
2,KC,44
`

func TestRunTeamChart(t *testing.T) {
	dir := t.TempDir()
	assets := filepath.Join(dir, "logos")
	require.NoError(t, os.MkdirAll(assets, 0o755))
	writeLogo(t, assets, "DAL")

	spec := PlotSpec{
		Primary:   write(t, dir, "offense.csv", offense),
		Secondary: write(t, dir, "defense.csv", defense),
		JoinKey:   "Tm",
		X:         "PACT%",
		Y:         "MOT%",
		InvertY:   true,
		AssetDir:  assets,
		Width:     800,
		Height:    600,
	}
	c, err := Run(spec)
	require.NoError(t, err)
	require.NotNil(t, c.Image)

	rep := c.Report
	assert.Equal(t, 4, rep.RowsLoaded)
	assert.Equal(t, 3, rep.RowsPlotted)
	assert.Equal(t, 1, rep.Dropped)
	assert.Equal(t, []string{"MOT%", "PACT%"}, rep.Scaled)
	assert.Equal(t, 1, rep.WithAsset)
	assert.Equal(t, 2, rep.WithoutAsset)
	assert.Equal(t, "PACT% vs MOT%", rep.Title)
	assert.True(t, rep.XPercent)
	assert.True(t, rep.YPercent)
	assert.InDelta(t, 0.5, rep.X.Mean, 1e-9)
	assert.InDelta(t, 0.5*rep.X.StdDev, rep.X.Margin, 1e-12)

	out := filepath.Join(dir, "out", "team.png")
	require.NoError(t, Save(c, out))
	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRunMissingColumnIsLoadError(t *testing.T) {
	dir := t.TempDir()
	spec := PlotSpec{Primary: write(t, dir, "offense.csv", offense), X: "PACT%", Y: "EPA/Play"}
	_, err := Run(spec)
	var le *dataset.LoadError
	require.ErrorAs(t, err, &le)
	assert.ErrorIs(t, err, dataset.ErrMissingColumn)
}

func TestRunUnreadableSource(t *testing.T) {
	_, err := Run(PlotSpec{Primary: filepath.Join(t.TempDir(), "absent.csv"), X: "a", Y: "b"})
	var le *dataset.LoadError
	require.ErrorAs(t, err, &le)
}

const qbColumns = `Player Name
Team
Plays
EPA/Play
Success %
[source: weekly charting]
`

const qbData = `[
 ["1. P. Mahomes", "KC", 610, 0.21, "49.5"],
 ["2. J. Allen", "BUF", 580, 0.18, "47.1%"],
 ["3. B. Backup", "NYJ", 40, -0.3, "30.0"],
 ["4. D. Prescott", "DAL", 560, "", "46.0"]
]`

func TestRunQBChart(t *testing.T) {
	dir := t.TempDir()
	spec := PlotSpec{
		Domain:  "qb",
		Primary: write(t, dir, "qb.json", qbData),
		Columns: write(t, dir, "columns.txt", qbColumns),
		X:       "EPA/Play",
		Y:       "Success %",
		Season:  "2025",
	}
	data, rep, err := Prepare(spec)
	require.NoError(t, err)
	assert.Equal(t, 4, rep.RowsLoaded)
	assert.Equal(t, 1, rep.BelowThreshold)
	assert.Equal(t, 1, rep.Dropped)
	assert.Equal(t, 2, rep.RowsPlotted)
	assert.Equal(t, "2025 Regular Season | Minimum 100 Plays", rep.Subtitle)
	assert.True(t, rep.YPercent)
	// EPA/Play never exceeds 1, so it is labelled as a percentage too
	assert.True(t, rep.XPercent)
	assert.Equal(t, []string{"Success %"}, rep.Scaled)
	assert.InDeltaSlice(t, []float64{0.495, 0.471}, data.Floats("Success %"), 1e-9)
	assert.Equal(t, "P. Mahomes", data.Records[0].Get("Player Name").String())
	assert.InDelta(t, 0.4*rep.Y.StdDev, rep.Y.Margin, 1e-12)

	c, err := Run(spec)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Report.WithoutAsset)
}

func TestRunNothingToPlot(t *testing.T) {
	dir := t.TempDir()
	minPlays := 1000.0
	spec := PlotSpec{
		Domain:   "qb",
		Primary:  write(t, dir, "qb.json", qbData),
		Columns:  write(t, dir, "columns.txt", qbColumns),
		X:        "EPA/Play",
		Y:        "Success %",
		MinCount: &minPlays,
	}
	c, err := Run(spec)
	assert.True(t, errors.Is(err, ErrNothingToPlot))
	require.NotNil(t, c)
	assert.Equal(t, 4, c.Report.BelowThreshold)
	assert.Equal(t, "Minimum 1000 Plays", c.Report.Subtitle)
}

func TestValidate(t *testing.T) {
	ok := PlotSpec{Primary: "a.csv", X: "x", Y: "y"}
	assert.NoError(t, ok.Validate())

	cases := map[string]PlotSpec{
		"missing x":        {Primary: "a.csv", Y: "y"},
		"missing primary":  {X: "x", Y: "y"},
		"join without key": {Primary: "a.csv", Secondary: "b.csv", X: "x", Y: "y"},
		"unknown domain":   {Primary: "a.csv", X: "x", Y: "y", Domain: "hockey"},
		"negative width":   {Primary: "a.csv", X: "x", Y: "y", Width: -1},
	}
	for name, spec := range cases {
		assert.Error(t, spec.Validate(), name)
	}
	neg := -5.0
	assert.Error(t, PlotSpec{Primary: "a.csv", X: "x", Y: "y", MinCount: &neg}.Validate())
}

func TestPrepareValidates(t *testing.T) {
	dir := t.TempDir()
	_, _, err := Prepare(PlotSpec{Primary: write(t, dir, "offense.csv", offense), X: "PACT%"})
	require.Error(t, err)
	var le *dataset.LoadError
	assert.False(t, errors.As(err, &le), "invalid settings must fail before loading")
}

func TestDisplayDefaults(t *testing.T) {
	s := PlotSpec{X: "PACT%", Y: "MOT%"}
	assert.Equal(t, "PACT% vs MOT%", s.DisplayTitle())
	s.XLabel, s.YLabel = "Play action", "Motion"
	assert.Equal(t, "Play action vs Motion", s.DisplayTitle())
	s.Title = "Tendencies"
	assert.Equal(t, "Tendencies", s.DisplayTitle())

	d, ok := LookupDomain("")
	require.True(t, ok)
	assert.Equal(t, "team", d.Name)
	assert.Equal(t, []string{"qb", "team"}, DomainNames())
}
