package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sproutsim/sprout/pkg/preset"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in parameter presets",
		Long: `Presets lists the built-in "ideal type" parameter regimes and the
parameter values each one carries. Pass a preset to "sprout run" with
--preset, or start from one and override individual parameters.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range preset.All() {
				fmt.Println(StyleTitle.Render(p.Name))
				fmt.Println("  " + StyleDim.Render(p.Description))
				printKeyValue("  gamma", fmt.Sprint(p.Params.Gamma))
				printKeyValue("  lambda", fmt.Sprint(p.Params.Lambda))
				printKeyValue("  delta", fmt.Sprint(p.Params.Delta))
				printKeyValue("  mu", fmt.Sprint(p.Params.Mu))
				printKeyValue("  theta", fmt.Sprint(p.Params.Theta))
				printKeyValue("  xi", fmt.Sprint(p.Params.Xi))
				fmt.Println()
			}
			return nil
		},
	}
}
