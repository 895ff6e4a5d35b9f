// Package config loads chart jobs: a YAML file listing charts plus shared
// settings, layered over defaults and overridden by NFLPLOT_* environment
// variables. Single-chart commands reuse the same layering for their flags.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ajbenz18/nfl-analysis/src/plot"
)

// EnvPrefix prefixes every environment override, e.g. NFLPLOT_ASSET_DIR.
const EnvPrefix = "NFLPLOT_"

// Config is a chart-job file.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// AssetDir holds "<identity>.png" marker images for charts that set none.
	AssetDir string `koanf:"asset_dir"`

	// OutDir receives charts whose output path is relative or unset.
	OutDir string `koanf:"out_dir"`

	// Width and Height are the default figure size in pixels.
	Width  int `koanf:"width" validate:"gte=0"`
	Height int `koanf:"height" validate:"gte=0"`

	Charts []plot.PlotSpec `koanf:"charts"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		LogLevel: "info",
		AssetDir: filepath.Join("data", "logos"),
		OutDir:   "charts",
		Width:    1400,
		Height:   1000,
	}
}

var validate = validator.New()

// ErrNoCharts is returned by ValidateJobs when the file lists no chart.
var ErrNoCharts = errors.New("no charts configured")

// Validate checks the shared settings.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ValidateJobs checks the shared settings, every chart and that no two charts
// write the same file.
func (c *Config) ValidateJobs() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if len(c.Charts) == 0 {
		return ErrNoCharts
	}
	seen := map[string]int{}
	for i, s := range c.Specs() {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("chart %d: %w", i+1, err)
		}
		if j, dup := seen[s.Out]; dup {
			return fmt.Errorf("charts %d and %d both write %s", j+1, i+1, s.Out)
		}
		seen[s.Out] = i
	}
	return nil
}

// Specs returns the configured charts with shared defaults applied.
func (c *Config) Specs() []plot.PlotSpec {
	out := make([]plot.PlotSpec, len(c.Charts))
	for i, s := range c.Charts {
		out[i] = c.Apply(s)
	}
	return out
}

// Apply fills the fields s leaves empty from the shared settings.
func (c *Config) Apply(s plot.PlotSpec) plot.PlotSpec {
	if s.AssetDir == "" {
		s.AssetDir = c.AssetDir
	}
	if s.Width == 0 {
		s.Width = c.Width
	}
	if s.Height == 0 {
		s.Height = c.Height
	}
	if s.Out == "" {
		s.Out = Slug(s) + ".png"
	}
	if !filepath.IsAbs(s.Out) && c.OutDir != "" {
		s.Out = filepath.Join(c.OutDir, s.Out)
	}
	return s
}

var nonWord = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives a file name from the chart name, or from its axes.
func Slug(s plot.PlotSpec) string {
	name := s.Name
	if name == "" {
		name = s.Domain + " " + s.X + " vs " + s.Y
	}
	slug := strings.Trim(nonWord.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if slug == "" {
		return "chart"
	}
	return slug
}
