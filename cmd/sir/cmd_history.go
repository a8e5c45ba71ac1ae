package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"sir-ca/internal/store"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List runs recorded in a database",
		Long: `List the runs that 'sir run --db' recorded, newest first.

With --run, print that run's per-step counts as CSV instead.`,
		Example: `  sir history --db runs.db
  sir history --db runs.db --run 3 > run3.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Output.DB == "" {
				return fmt.Errorf("no database: pass --db or set output.db in the config")
			}
			runID, _ := cmd.Flags().GetInt64("run")
			jsonOut, _ := cmd.Flags().GetBool("json")

			st, err := store.Open(cfg.Output.DB)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if runID > 0 {
				h, err := st.LoadHistory(ctx, runID)
				if err != nil {
					return err
				}
				return h.WriteCSV(out)
			}

			runs, err := st.ListRuns(ctx)
			if err != nil {
				return err
			}
			if jsonOut {
				return json.NewEncoder(out).Encode(runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded.")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tLABEL\tSIZE\tSEED\tSTEPS\tK\tPEAK I\tPEAK STEP")
			for _, r := range runs {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%dx%d\t%d\t%d\t%g\t%d\t%d\n",
					r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Label,
					r.Config.Width, r.Config.Height, r.Config.Seed, r.Steps,
					r.Config.Params.K, r.PeakInfected, r.PeakStep)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().String("db", "", "sqlite database written by 'sir run --db'")
	cmd.Flags().Int64("run", 0, "print the per-step counts of this run as CSV")
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}
