// Package chart renders a run history as a PNG line chart with one series per
// health state.
package chart

import (
	"errors"
	"fmt"
	"io"
	"os"

	"sir-ca/internal/runner"
)

// ErrEmptyHistory is returned when there is nothing to draw.
var ErrEmptyHistory = errors.New("chart: history is empty")

const (
	defaultTitle  = "SIR evolution"
	defaultXLabel = "Step"
	defaultYLabel = "Population"
)

// Series names, in plotting order.
var seriesNames = [...]string{"Susceptible", "Infected", "Recovered"}

// Renderer draws a history as PNG to w.
type Renderer interface {
	Render(w io.Writer, h runner.History) error
}

// Options sizes and labels a chart.
type Options struct {
	Width  int
	Height int
	Title  string
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 600
	}
	if o.Title == "" {
		o.Title = defaultTitle
	}
	return o
}

// NewRenderer returns the renderer for the named backend ("gochart" or
// "gonum"). An empty name selects gochart.
func NewRenderer(backend string, opts Options) (Renderer, error) {
	switch backend {
	case "", "gochart":
		return &GoChart{Options: opts.withDefaults()}, nil
	case "gonum":
		return &Gonum{Options: opts.withDefaults()}, nil
	}
	return nil, fmt.Errorf("chart: unknown backend %q", backend)
}

// File returns a runner sink that renders the history to path.
func File(path string, r Renderer) runner.Sink {
	return runner.SinkFunc(func(h runner.History) error {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating chart file: %w", err)
		}
		if err := r.Render(f, h); err != nil {
			f.Close()
			return fmt.Errorf("rendering chart: %w", err)
		}
		return f.Close()
	})
}

func toFloats(vals []int) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = float64(v)
	}
	return out
}

func series(h runner.History) [3][]int {
	return [3][]int{h.Susceptible, h.Infected, h.Recovered}
}
