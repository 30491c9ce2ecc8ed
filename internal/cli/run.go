package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sproutsim/sprout/pkg/pipeline"
	"github.com/sproutsim/sprout/pkg/preset"
	"github.com/sproutsim/sprout/pkg/sim"
)

func newRunCmd() *cobra.Command {
	var (
		presetName string
		presetFile string
		steps      int
		seed       int64
		formats    []string
		output     string
		detailed   bool
		rootLabel  string

		gamma, lambda, delta, mu, theta, xi float64
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Grow a module tree and export snapshot artifacts",
		Long: `Run grows a fresh module tree for the requested number of steps and
exports the final state in one or more formats.

Parameters come from a built-in preset (see "sprout presets"), a TOML preset
file, or individual flags; individual flags override the preset they build on.

Examples:
  sprout run --steps 500 --seed 42
  sprout run --preset proliferating --format svg --output ecosystem
  sprout run --preset baseline --lambda 0.2 --format json --format dot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			params, err := resolveRunParams(cmd, presetName, presetFile)
			if err != nil {
				return err
			}
			logger.Debug("resolved parameters",
				"gamma", params.Gamma, "lambda", params.Lambda,
				"delta", params.Delta, "mu", params.Mu)

			opts := pipeline.Options{
				Params:    &params,
				Steps:     steps,
				Seed:      seed,
				RootLabel: rootLabel,
				Formats:   formats,
				Detailed:  detailed,
				Logger:    logger,
			}

			prog := newProgress(logger)
			result, err := pipeline.NewRunner(logger).Execute(cmd.Context(), opts)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Simulated %d steps", result.Stats.Steps))

			for _, format := range opts.Formats {
				path := output + "." + format
				if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				printFile(path)
			}

			printSuccess("Grew %s modules (max depth %s)",
				StyleNumber.Render(fmt.Sprint(result.Stats.ModuleCount)),
				StyleNumber.Render(fmt.Sprint(result.Stats.MaxDepth)))
			printKeyValue("run id", result.RunID)
			printKeyValue("seed", fmt.Sprint(opts.Seed))
			printDepthHistogram(result.Snapshot.DepthHistogram())
			return nil
		},
	}

	cmd.Flags().StringVarP(&presetName, "preset", "p", "", "built-in parameter preset")
	cmd.Flags().StringVar(&presetFile, "preset-file", "", "TOML preset file (overrides --preset)")
	cmd.Flags().IntVarP(&steps, "steps", "n", pipeline.DefaultSteps, "number of growth steps")
	cmd.Flags().Int64Var(&seed, "seed", pipeline.DefaultSeed, "random seed for reproducible runs")
	cmd.Flags().StringSliceVarP(&formats, "format", "f", []string{pipeline.FormatJSON}, "output formats (json, dot, svg, png)")
	cmd.Flags().StringVarP(&output, "output", "o", "sprout-tree", "output path base (extension added per format)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "annotate rendered nodes with x, c, and reward")
	cmd.Flags().StringVar(&rootLabel, "root-label", "", "display label for the root module")

	cmd.Flags().Float64Var(&gamma, "gamma", sim.DefaultGamma, "contribution-count exponent")
	cmd.Flags().Float64Var(&lambda, "lambda", sim.DefaultLambda, "depth penalty exponent")
	cmd.Flags().Float64Var(&delta, "delta", sim.DefaultDelta, "exponential contribution rate")
	cmd.Flags().Float64Var(&mu, "mu", sim.DefaultMu, "depth leverage exponent")
	cmd.Flags().Float64Var(&theta, "theta", sim.DefaultTheta, "reserved model parameter")
	cmd.Flags().Float64Var(&xi, "xi", sim.DefaultXi, "reserved model parameter")

	return cmd
}

// resolveRunParams builds the run's parameter set: a preset (file, named, or
// the default) overridden by whichever parameter flags were set explicitly.
func resolveRunParams(cmd *cobra.Command, presetName, presetFile string) (sim.Params, error) {
	var params sim.Params
	switch {
	case presetFile != "":
		p, err := preset.LoadFile(presetFile)
		if err != nil {
			return sim.Params{}, err
		}
		params = p.Params
	case presetName != "":
		p, err := preset.Lookup(presetName)
		if err != nil {
			return sim.Params{}, err
		}
		params = p.Params
	default:
		params = sim.DefaultParams()
	}

	overrides := map[string]*float64{
		"gamma":  &params.Gamma,
		"lambda": &params.Lambda,
		"delta":  &params.Delta,
		"mu":     &params.Mu,
		"theta":  &params.Theta,
		"xi":     &params.Xi,
	}
	for name, target := range overrides {
		if cmd.Flags().Changed(name) {
			v, err := cmd.Flags().GetFloat64(name)
			if err != nil {
				return sim.Params{}, err
			}
			*target = v
		}
	}

	if err := params.Validate(); err != nil {
		return sim.Params{}, err
	}
	return params, nil
}

// printDepthHistogram prints the module count per depth with proportional
// bars, shallowest first.
func printDepthHistogram(hist map[int]int) {
	depths := make([]int, 0, len(hist))
	max := 0
	for d, c := range hist {
		depths = append(depths, d)
		if c > max {
			max = c
		}
	}
	sort.Ints(depths)

	fmt.Println(StyleTitle.Render("depth distribution"))
	for _, d := range depths {
		label := fmt.Sprintf("  depth %-3d %4d ", d, hist[d])
		fmt.Println(StyleDim.Render(label) + histogramBar(hist[d], max, 40))
	}
}
