// Package preset provides named parameter presets for the growth model.
//
// Presets capture the model's illustrative regimes ("ideal types"): parameter
// combinations under which the simulated ecosystem visibly deepens,
// proliferates, or consolidates. Built-in presets cover the published
// regimes; additional presets load from TOML files:
//
//	name = "my-regime"
//	description = "low founding pressure"
//
//	[params]
//	gamma = 1.0
//	lambda = 0.2
//	delta = 3.0
//	mu = 0.5
//	theta = 0.5
//	xi = 2.0
package preset

import (
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/sproutsim/sprout/pkg/errors"
	"github.com/sproutsim/sprout/pkg/sim"
)

// Preset is a named, validated parameter set.
type Preset struct {
	Name        string     `toml:"name"`
	Description string     `toml:"description"`
	Params      sim.Params `toml:"params"`
}

// builtin is the table of published ideal-type regimes. Theta and xi are
// carried at their defaults; they are inert but part of the configuration
// surface.
var builtin = map[string]Preset{
	"baseline": {
		Name:        "baseline",
		Description: "default parameters of the published model",
		Params:      sim.DefaultParams(),
	},
	"deepening": {
		Name:        "deepening",
		Description: "weak depth penalty; contributions chase leverage in deep modules",
		Params:      sim.Params{Gamma: 1, Lambda: 0.2, Delta: 3, Mu: 1.5, Theta: sim.DefaultTheta, Xi: sim.DefaultXi},
	},
	"proliferating": {
		Name:        "proliferating",
		Description: "flat rewards across depths; founding new modules dominates",
		Params:      sim.Params{Gamma: 0.2, Lambda: 0, Delta: 3, Mu: 0.1, Theta: sim.DefaultTheta, Xi: sim.DefaultXi},
	},
	"consolidating": {
		Name:        "consolidating",
		Description: "strong rich-get-richer pull toward heavily contributed modules",
		Params:      sim.Params{Gamma: 3, Lambda: 2, Delta: 3, Mu: 0.5, Theta: sim.DefaultTheta, Xi: sim.DefaultXi},
	},
}

// Names returns the built-in preset names in sorted order.
func Names() []string {
	out := make([]string, 0, len(builtin))
	for name := range builtin {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// All returns the built-in presets in name order.
func All() []Preset {
	names := Names()
	out := make([]Preset, 0, len(names))
	for _, name := range names {
		out = append(out, builtin[name])
	}
	return out
}

// Lookup resolves a built-in preset by name (case-insensitive).
// Unknown names are INVALID_PRESET errors listing the valid choices.
func Lookup(name string) (Preset, error) {
	p, ok := builtin[strings.ToLower(name)]
	if !ok {
		return Preset{}, errors.New(errors.ErrCodeInvalidPreset,
			"unknown preset %q (valid: %s)", name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// LoadFile reads a preset from a TOML file and validates its parameters.
func LoadFile(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read preset %s", path)
	}
	return Parse(data)
}

// Parse decodes a TOML preset document and validates its parameters.
func Parse(data []byte) (Preset, error) {
	// Unspecified parameter keys fall back to the model defaults rather
	// than zero values, so partial presets stay valid.
	p := Preset{Params: sim.DefaultParams()}
	if err := toml.Unmarshal(data, &p); err != nil {
		return Preset{}, errors.Wrap(errors.ErrCodeInvalidPreset, err, "parse preset")
	}
	if p.Name == "" {
		return Preset{}, errors.New(errors.ErrCodeInvalidPreset, "preset is missing a name")
	}
	if err := p.Params.Validate(); err != nil {
		return Preset{}, err
	}
	return p, nil
}
