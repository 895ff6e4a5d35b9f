package plot

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ajbenz18/nfl-analysis/src/dataset"
)

// PlotSpec is the configuration of one chart. Zero fields fall back to the
// domain preset.
type PlotSpec struct {
	Name   string `koanf:"name"`
	Domain string `koanf:"domain" validate:"omitempty,domain"`

	Primary string `koanf:"primary" validate:"required"`
	// Columns is the sidecar column list of a JSON record-list source.
	Columns    string `koanf:"columns"`
	Secondary  string `koanf:"secondary"`
	JoinKey    string `koanf:"join" validate:"required_with=Secondary"`
	JoinSuffix string `koanf:"join_suffix"`
	// HeaderRow overrides the preset header line when set.
	HeaderRow *int   `koanf:"header_row" validate:"omitempty,gte=0"`
	Sheet     string `koanf:"sheet"`

	X        string `koanf:"x" validate:"required"`
	Y        string `koanf:"y" validate:"required"`
	XLabel   string `koanf:"x_label"`
	YLabel   string `koanf:"y_label"`
	Title    string `koanf:"title"`
	Subtitle string `koanf:"subtitle"`
	Season   string `koanf:"season"`

	LabelCol    string `koanf:"label"`
	IdentityCol string `koanf:"identity"`
	InvertX     bool   `koanf:"invert_x"`
	InvertY     bool   `koanf:"invert_y"`

	CountCol string   `koanf:"count"`
	MinCount *float64 `koanf:"min_count" validate:"omitempty,gte=0"`
	Percent  []string `koanf:"percent"`

	AssetDir string `koanf:"assets"`
	Out      string `koanf:"out"`
	Width    int    `koanf:"width" validate:"gte=0"`
	Height   int    `koanf:"height" validate:"gte=0"`
	LogoSize int    `koanf:"logo_size" validate:"gte=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("domain", func(fl validator.FieldLevel) bool {
		_, ok := LookupDomain(fl.Field().String())
		return ok
	})
	return v
}

// Validate checks the chart's required fields and value ranges.
func (s PlotSpec) Validate() error {
	if err := validate.Struct(s); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid chart %s: %s", s.label(), strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid chart %s: %w", s.label(), err)
	}
	return nil
}

func (s PlotSpec) label() string {
	if s.Name != "" {
		return s.Name
	}
	if s.X != "" || s.Y != "" {
		return fmt.Sprintf("%q", s.X+" vs "+s.Y)
	}
	return filepath.Base(s.Primary)
}

// XName returns the x axis display label.
func (s PlotSpec) XName() string {
	if s.XLabel != "" {
		return s.XLabel
	}
	return s.X
}

// YName returns the y axis display label.
func (s PlotSpec) YName() string {
	if s.YLabel != "" {
		return s.YLabel
	}
	return s.Y
}

// DisplayTitle returns the title, defaulting to "<x label> vs <y label>".
func (s PlotSpec) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return s.XName() + " vs " + s.YName()
}

// resolved is a PlotSpec with every preset default applied.
type resolved struct {
	PlotSpec
	domain    Domain
	headerRow int
	minCount  float64
	percent   []string
}

func (s PlotSpec) resolve() (resolved, error) {
	d, ok := LookupDomain(s.Domain)
	if !ok {
		return resolved{}, fmt.Errorf("unknown domain %q (known: %s)", s.Domain, strings.Join(DomainNames(), ", "))
	}
	r := resolved{PlotSpec: s, domain: d, headerRow: d.HeaderRow, minCount: d.MinCount}
	if s.HeaderRow != nil {
		r.headerRow = *s.HeaderRow
	}
	if s.MinCount != nil {
		r.minCount = *s.MinCount
	}
	if r.LabelCol == "" {
		r.LabelCol = d.LabelCol
	}
	if r.IdentityCol == "" {
		r.IdentityCol = d.IdentityCol
	}
	if r.CountCol == "" {
		r.CountCol = d.CountCol
	}
	if r.LogoSize == 0 {
		r.LogoSize = d.LogoSize
	}
	if r.JoinSuffix == "" {
		r.JoinSuffix = dataset.DefaultSuffix
	}
	if r.Subtitle == "" && d.Subtitle != nil {
		r.Subtitle = d.Subtitle(s, r.minCount)
	}
	r.percent = append(append([]string{}, d.Percent...), s.Percent...)
	return r, nil
}

func (r resolved) isPercent(col string) bool {
	for _, c := range r.percent {
		if c == col {
			return true
		}
	}
	return false
}

func (r resolved) source(path string) dataset.Source {
	src := dataset.Source{Path: path, HeaderRow: r.headerRow, Sheet: r.Sheet}
	if dataset.DetectFormat(path) == "json" {
		src.ColumnsPath = r.Columns
	}
	return src
}

// schema lists the columns the chart reads from the joined dataset.
func (r resolved) schema() dataset.Schema {
	axisType := func(col string) dataset.ColumnType {
		if r.isPercent(col) {
			return dataset.TypePercent
		}
		return dataset.TypeNumeric
	}
	s := dataset.Schema{}.
		With(r.X, axisType(r.X)).
		With(r.Y, axisType(r.Y)).
		With(r.LabelCol, dataset.TypeText)
	if r.CountCol != "" {
		s = s.With(r.CountCol, dataset.TypeNumeric)
	}
	return s
}
