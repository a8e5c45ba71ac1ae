// Package sweep evaluates a grid of parameter combinations, one independent
// run per combination, on a bounded worker pool.
package sweep

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"sir-ca/internal/runner"
	"sir-ca/internal/sims/sir"
)

// Axis is one swept parameter and the values it takes.
type Axis struct {
	Key    string
	Values []string
}

// Combo is a set of key/value overrides applied on top of the base config.
type Combo map[string]string

// String renders the overrides in key order.
func (c Combo) String() string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + c[k]
	}
	return strings.Join(parts, " ")
}

// Grid returns the cartesian product of the axes. Axes without values are
// skipped; no axes yield a single empty combo.
func Grid(axes []Axis) []Combo {
	combos := []Combo{{}}
	for _, ax := range axes {
		if len(ax.Values) == 0 {
			continue
		}
		next := make([]Combo, 0, len(combos)*len(ax.Values))
		for _, base := range combos {
			for _, v := range ax.Values {
				c := make(Combo, len(base)+1)
				for k, bv := range base {
					c[k] = bv
				}
				c[ax.Key] = v
				next = append(next, c)
			}
		}
		combos = next
	}
	return combos
}

// Result summarizes one run.
type Result struct {
	Combo        Combo
	PeakInfected int
	PeakStep     int
	Final        sir.Counts
}

// Options controls a sweep.
type Options struct {
	Steps   int
	Workers int
	Log     *slog.Logger
}

// Run evaluates every combo against base. Results keep the order of combos.
// Cancellation is honoured between runs; the first failing run cancels the rest.
func Run(ctx context.Context, base sir.Config, combos []Combo, opts Options) ([]Result, error) {
	if opts.Steps <= 0 {
		return nil, fmt.Errorf("%w: got %d", runner.ErrInvalidSteps, opts.Steps)
	}
	log := opts.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	results := make([]Result, len(combos))
	g, ctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	for i, combo := range combos {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := evaluate(base, combo, opts.Steps)
			if err != nil {
				return fmt.Errorf("combo %s: %w", combo, err)
			}
			log.Debug("combo done", "combo", combo.String(), "peak_infected", res.PeakInfected, "peak_step", res.PeakStep)
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func evaluate(base sir.Config, combo Combo, steps int) (Result, error) {
	cfg, err := base.Apply(combo)
	if err != nil {
		return Result{}, err
	}
	a, err := sir.New(cfg)
	if err != nil {
		return Result{}, err
	}
	h, err := runner.New(nil).Run(a, steps)
	if err != nil {
		return Result{}, err
	}
	peakStep, peak := h.PeakInfected()
	return Result{
		Combo:        combo,
		PeakInfected: peak,
		PeakStep:     peakStep,
		Final:        h.At(h.Len() - 1),
	}, nil
}

// ByPeak sorts results by descending peak infected, earliest peak first on ties.
func ByPeak(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].PeakInfected != results[j].PeakInfected {
			return results[i].PeakInfected > results[j].PeakInfected
		}
		return results[i].PeakStep < results[j].PeakStep
	})
}
