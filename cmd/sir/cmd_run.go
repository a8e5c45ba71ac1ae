package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sir-ca/internal/chart"
	"sir-ca/internal/core"
	"sir-ca/internal/logging"
	"sir-ca/internal/runner"
	"sir-ca/internal/sims/sir"
	"sir-ca/internal/store"
	"sir-ca/internal/video"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the automaton headless and write the results",
		Long: `Run the automaton for a fixed number of steps, recording the number of
susceptible, infected and recovered cells after every step.

The history is drawn as a PNG chart and can also be written as CSV, stored in
a sqlite database, and rendered frame by frame into an MJPEG video.`,
		Example: `  sir run --steps 200 --k 1.5 --chart sir.png
  sir run --width 100 --height 100 --csv sir.csv --video sir.avi
  sir run --db runs.db --label baseline`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			label, _ := cmd.Flags().GetString("label")
			log := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())

			simCfg := cfg.Sim()
			simCfg.Seed = core.SeedOrNow(simCfg.Seed)
			a, err := sir.New(simCfg)
			if err != nil {
				return err
			}

			r := runner.New(log)

			if cfg.Output.Video != "" {
				rec, verr := video.New(cfg.Output.Video, a.Size(), a.Palette(), cfg.Output.VideoScale, cfg.Output.VideoFPS)
				if verr != nil {
					return verr
				}
				defer func() {
					if cerr := rec.Close(); cerr != nil {
						err = errors.Join(err, cerr)
					}
				}()
				r.Observe(rec)
			}
			if cfg.Output.Chart != "" {
				renderer, err := chart.NewRenderer(cfg.Output.ChartBackend, chart.Options{
					Width:  cfg.Output.ChartWidth,
					Height: cfg.Output.ChartHeight,
				})
				if err != nil {
					return err
				}
				r.AddSink(chart.File(cfg.Output.Chart, renderer))
			}
			if cfg.Output.CSV != "" {
				r.AddSink(runner.CSVFile(cfg.Output.CSV))
			}
			if cfg.Output.DB != "" {
				st, err := store.Open(cfg.Output.DB)
				if err != nil {
					return err
				}
				defer st.Close()
				r.AddSink(st.Sink(cmd.Context(), store.RunMeta{Label: label, Config: simCfg}))
			}

			h, err := r.Run(a, cfg.Run.Steps)
			if err != nil {
				return err
			}

			peakStep, peak := h.PeakInfected()
			last := h.At(h.Len() - 1)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Ran %d steps on %dx%d (seed %d)\n", h.Len(), simCfg.Width, simCfg.Height, simCfg.Seed)
			fmt.Fprintf(out, "  peak infected: %d at step %d\n", peak, peakStep)
			fmt.Fprintf(out, "  final: S=%d I=%d R=%d\n", last.Susceptible, last.Infected, last.Recovered)
			for _, p := range []struct{ name, path string }{
				{"chart", cfg.Output.Chart},
				{"csv", cfg.Output.CSV},
				{"video", cfg.Output.Video},
				{"db", cfg.Output.DB},
			} {
				if p.path != "" {
					fmt.Fprintf(out, "  %s: %s\n", p.name, p.path)
				}
			}
			return nil
		},
	}
	bindSimFlags(cmd)
	cmd.Flags().String("label", "", "label stored with the run (with --db)")
	return cmd
}
