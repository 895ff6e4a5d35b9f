package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/ajbenz18/nfl-analysis/src/plot"
)

// Load builds a Config by layering, from low to high precedence:
//  1. Defaults()
//  2. the YAML file at path, when path is not empty
//  3. environment variables prefixed NFLPLOT_ (NFLPLOT_ASSET_DIR -> asset_dir)
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	// Flat keys: NFLPLOT_OUT_DIR -> out_dir, underscores kept to match the tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	cfg := Defaults()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// flagKeys maps CLI flag names whose koanf key is not simply the name with
// dashes turned into underscores.
var flagKeys = map[string]string{
	"label-col":    "label",
	"identity-col": "identity",
	"min-plays":    "min_count",
}

// SpecFromFlags overlays the flags the user explicitly set onto base. Flags
// that do not name a PlotSpec field are ignored.
func SpecFromFlags(base plot.PlotSpec, flags *pflag.FlagSet) (plot.PlotSpec, error) {
	k := koanf.New(".")
	p := posflag.ProviderWithFlag(flags, ".", nil, func(f *pflag.Flag) (string, interface{}) {
		key, ok := flagKeys[f.Name]
		if !ok {
			key = strings.ReplaceAll(f.Name, "-", "_")
		}
		return key, posflag.FlagVal(flags, f)
	})
	if err := k.Load(p, nil); err != nil {
		return base, fmt.Errorf("read flags: %w", err)
	}
	spec := base
	if err := k.UnmarshalWithConf("", &spec, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return base, fmt.Errorf("decode flags: %w", err)
	}
	return spec, nil
}
