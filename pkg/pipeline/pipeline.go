// Package pipeline provides the core simulate → snapshot → render pipeline
// for sprout.
//
// This package implements the complete run pipeline used by the CLI. By
// centralizing this logic, behavior stays consistent across entry points and
// the simulation core remains free of any I/O concerns.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Simulate: grow a module tree for the requested number of steps
//  2. Snapshot: capture the final tree as a serialization-ready snapshot
//  3. Render: generate output artifacts (JSON, DOT, SVG, PNG)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Preset:  "baseline",
//	    Steps:   500,
//	    Seed:    42,
//	    Formats: []string{"json", "svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/sproutsim/sprout/pkg/errors"
	"github.com/sproutsim/sprout/pkg/preset"
	"github.com/sproutsim/sprout/pkg/sim"
)

// Default values shared by all pipeline entry points.
const (
	// DefaultSteps is the default number of growth steps per run.
	DefaultSteps = 500

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = int64(42)

	// DefaultPreset is the parameter preset used when neither a preset nor
	// explicit parameters are given.
	DefaultPreset = "baseline"

	// MaxSteps bounds a single run; a million-step tree is far past anything
	// the model's plots need and mostly signals a typo'd flag.
	MaxSteps = 1_000_000
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, dot, svg, png)", format)
	}
	return nil
}

// Options contains all configuration for a simulation run.
type Options struct {
	// Simulation options. Params wins over Preset when both are set;
	// with neither, DefaultPreset applies.
	Preset     string      `json:"preset,omitempty"`
	PresetFile string      `json:"preset_file,omitempty"` // TOML preset file, overrides Preset
	Params     *sim.Params `json:"params,omitempty"`
	Steps      int         `json:"steps,omitempty"`
	Seed       int64       `json:"seed,omitempty"`
	RootLabel  string      `json:"root_label,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Idempotent: repeated calls have the same effect as one.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Steps == 0 {
		o.Steps = DefaultSteps
	}
	if o.Steps < 0 || o.Steps > MaxSteps {
		return errors.New(errors.ErrCodeInvalidInput, "steps must be between 1 and %d, got %d", MaxSteps, o.Steps)
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	for _, f := range o.Formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ResolveParams determines the parameter set for the run: explicit Params,
// then a preset file, then a named preset, then the default preset. The
// result is always validated.
func (o *Options) ResolveParams() (sim.Params, error) {
	if o.Params != nil {
		if err := o.Params.Validate(); err != nil {
			return sim.Params{}, err
		}
		return *o.Params, nil
	}
	if o.PresetFile != "" {
		p, err := preset.LoadFile(o.PresetFile)
		if err != nil {
			return sim.Params{}, err
		}
		return p.Params, nil
	}
	name := o.Preset
	if name == "" {
		name = DefaultPreset
	}
	p, err := preset.Lookup(name)
	if err != nil {
		return sim.Params{}, err
	}
	return p.Params, nil
}
