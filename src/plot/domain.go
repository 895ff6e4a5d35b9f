package plot

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Domain is a preset of defaults for one kind of chart.
type Domain struct {
	Name string
	// HeaderRow is the default header line of delimited and workbook sources.
	HeaderRow int
	LabelCol  string
	// IdentityCol keys the asset lookup; empty means the label text.
	IdentityCol string
	// StripNames removes a leading "X. " qualifier from LabelCol.
	StripNames bool
	// Percent columns hold 0-100 values that are always divided by 100.
	Percent []string
	// CoerceAll coerces every column except TextCols, not just the axes.
	CoerceAll bool
	TextCols  []string
	// Heuristic enables mean > 1 percentage detection on the axes.
	Heuristic    bool
	CountCol     string
	MinCount     float64
	MarginFactor float64
	LogoSize     int
	LabelOffset  int
	// Subtitle builds the default subtitle from the chart settings and the effective
	// minimum count; nil means none.
	Subtitle func(s PlotSpec, minCount float64) string
}

// Team charts read season team tables whose first line is a column grouping
// row, keyed and labelled by the "Tm" column.
var Team = Domain{
	Name:         "team",
	HeaderRow:    1,
	LabelCol:     "Tm",
	IdentityCol:  "Tm",
	Heuristic:    true,
	MarginFactor: 0.5,
	LogoSize:     55,
	LabelOffset:  32,
}

// QB charts read a JSON record list of quarterback rows with a sidecar
// column list, restricted to players with enough plays.
var QB = Domain{
	Name:         "qb",
	LabelCol:     "Player Name",
	StripNames:   true,
	Percent:      []string{"Scramble %", "Sack %", "Success %", "Comp %"},
	CoerceAll:    true,
	TextCols:     []string{"Player Name", "Season", "Team"},
	CountCol:     "Plays",
	MinCount:     100,
	MarginFactor: 0.4,
	LogoSize:     38,
	LabelOffset:  26,
	Subtitle: func(s PlotSpec, minCount float64) string {
		plays := fmt.Sprintf("Minimum %s Plays", strconv.FormatFloat(minCount, 'f', -1, 64))
		if s.Season == "" {
			return plays
		}
		return fmt.Sprintf("%s Regular Season | %s", s.Season, plays)
	},
}

var domains = map[string]Domain{
	Team.Name: Team,
	QB.Name:   QB,
}

// DefaultDomain is used when a PlotSpec names none.
const DefaultDomain = "team"

// LookupDomain returns the named preset. The empty name is DefaultDomain.
func LookupDomain(name string) (Domain, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultDomain
	}
	d, ok := domains[name]
	return d, ok
}

// DomainNames lists the known presets, sorted.
func DomainNames() []string {
	out := make([]string, 0, len(domains))
	for n := range domains {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (d Domain) isPercent(col string) bool {
	for _, c := range d.Percent {
		if c == col {
			return true
		}
	}
	return false
}

func (d Domain) isText(col string) bool {
	for _, c := range d.TextCols {
		if c == col {
			return true
		}
	}
	return false
}
