package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"sir-ca/internal/sims/sir"
)

func newParamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Print the effective parameters",
		Long: `Print the grid and transition parameters a run would use after the
config file, environment and flags are applied.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")

			a, err := sir.New(cfg.Sim())
			if err != nil {
				return err
			}
			snap := a.Parameters()
			out := cmd.OutOrStdout()
			if jsonOut {
				values := make(map[string]string)
				for _, g := range snap.Groups {
					for _, p := range g.Params {
						values[p.Key] = p.Value
					}
				}
				values["steps"] = fmt.Sprint(cfg.Run.Steps)
				return json.NewEncoder(out).Encode(values)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, g := range snap.Groups {
				fmt.Fprintf(tw, "%s\n", g.Name)
				for _, p := range g.Params {
					if p.Description != "" {
						fmt.Fprintf(tw, "  %s\t%s\t%s\n", p.Label, p.Value, p.Description)
					} else {
						fmt.Fprintf(tw, "  %s\t%s\t\n", p.Label, p.Value)
					}
				}
			}
			fmt.Fprintf(tw, "Run\n  Steps\t%d\t\n", cfg.Run.Steps)
			return tw.Flush()
		},
	}
	bindSimFlags(cmd)
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}
