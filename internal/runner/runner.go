// Package runner drives an automaton for a fixed number of steps and records
// the population of each compartment after every step.
package runner

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"sir-ca/internal/core"
	"sir-ca/internal/sims/sir"
)

// ErrInvalidSteps is returned when a run is asked for a non-positive step count.
var ErrInvalidSteps = errors.New("runner: step count must be positive")

// Automaton is what the runner needs from a simulation.
type Automaton interface {
	core.Sim
	Count(sir.HealthState) int
}

// Observer is notified after every completed step.
type Observer interface {
	Observe(step int, a Automaton) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(step int, a Automaton) error

// Observe calls f.
func (f ObserverFunc) Observe(step int, a Automaton) error { return f(step, a) }

// Sink receives the completed history once all steps have run. The chart
// renderer is the main sink; CSV files and the run store are others.
type Sink interface {
	Consume(h History) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(h History) error

// Consume calls f.
func (f SinkFunc) Consume(h History) error { return f(h) }

// Runner records per-step population counts.
type Runner struct {
	log       *slog.Logger
	observers []Observer
	sinks     []Sink
}

// New returns a runner that logs through log. A nil logger discards output.
func New(log *slog.Logger) *Runner {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{log: log}
}

// Observe registers an observer called after every step.
func (r *Runner) Observe(o Observer) { r.observers = append(r.observers, o) }

// AddSink registers a sink that receives the history after the run.
func (r *Runner) AddSink(s Sink) { r.sinks = append(r.sinks, s) }

// Run steps a exactly steps times, appending the susceptible, infected and
// recovered counts after each step, then hands the history to every sink.
// An observer or sink error aborts the run; the history recorded so far is
// returned with it.
func (r *Runner) Run(a Automaton, steps int) (History, error) {
	if steps <= 0 {
		return History{}, fmt.Errorf("%w: got %d", ErrInvalidSteps, steps)
	}
	h := NewHistory(steps)
	size := a.Size()
	r.log.Info("run starting", "sim", a.Name(), "width", size.W, "height", size.H, "steps", steps)

	for t := 0; t < steps; t++ {
		a.Step()
		h.Append(a.Count(sir.Susceptible), a.Count(sir.Infected), a.Count(sir.Recovered))
		r.log.Debug("step", "t", t,
			"susceptible", h.Susceptible[t],
			"infected", h.Infected[t],
			"recovered", h.Recovered[t])
		for _, o := range r.observers {
			if err := o.Observe(t, a); err != nil {
				return h, fmt.Errorf("observer at step %d: %w", t, err)
			}
		}
	}

	peakStep, peak := h.PeakInfected()
	last := h.At(h.Len() - 1)
	r.log.Info("run finished",
		"steps", h.Len(),
		"peak_infected", peak,
		"peak_step", peakStep,
		"final_susceptible", last.Susceptible,
		"final_infected", last.Infected,
		"final_recovered", last.Recovered)

	for _, s := range r.sinks {
		if err := s.Consume(h); err != nil {
			return h, err
		}
	}
	return h, nil
}

// CSVFile returns a sink writing the history as CSV to path.
func CSVFile(path string) Sink {
	return SinkFunc(func(h History) error {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating csv file: %w", err)
		}
		if err := h.WriteCSV(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	})
}
