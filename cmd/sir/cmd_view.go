package main

import (
	"github.com/spf13/cobra"

	"sir-ca/internal/app"
	"sir-ca/internal/core"
	"sir-ca/internal/sims/sir"
)

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Watch the automaton evolve in a window",
		Long: `Open a window showing the grid live, with the parameters and current
counts in a side panel.

Keys: space pause, n single step, r reset with the same seed, s reset with a
new seed, q or escape quit.

The viewer is only available in binaries built with -tags ebiten.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			simCfg := cfg.Sim()
			simCfg.Seed = core.SeedOrNow(simCfg.Seed)
			a, err := sir.New(simCfg)
			if err != nil {
				return err
			}

			opts := app.DefaultOptions()
			opts.Seed = simCfg.Seed
			opts.Scale, _ = cmd.Flags().GetInt("scale")
			opts.TPS, _ = cmd.Flags().GetInt("tps")
			opts.StepsPerSecond, _ = cmd.Flags().GetInt("sps")
			opts.PanelWidth, _ = cmd.Flags().GetInt("panel-width")
			return app.Run(a, opts)
		},
	}
	bindSimFlags(cmd)
	defaults := app.DefaultOptions()
	cmd.Flags().Int("scale", defaults.Scale, "pixel scale multiplier")
	cmd.Flags().Int("tps", defaults.TPS, "ticks per second")
	cmd.Flags().Int("sps", defaults.StepsPerSecond, "simulation steps per second")
	cmd.Flags().Int("panel-width", defaults.PanelWidth, "side panel width in pixels (0 hides it)")
	return cmd
}
