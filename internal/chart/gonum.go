package chart

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"sir-ca/internal/runner"
	"sir-ca/internal/sims/sir"
)

// Gonum renders with gonum.org/v1/plot.
type Gonum struct {
	Options
}

// pixelsPerInch converts the pixel options into vg lengths at 96 DPI.
const pixelsPerInch = 96

// Render draws the three series against the step index.
func (g *Gonum) Render(w io.Writer, h runner.History) error {
	if h.Len() == 0 {
		return ErrEmptyHistory
	}
	p := plot.New()
	p.Title.Text = g.Title
	p.X.Label.Text = defaultXLabel
	p.Y.Label.Text = defaultYLabel
	p.Y.Min = 0
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	all := series(h)
	for i, state := range sir.States {
		pts := make(plotter.XYs, h.Len())
		for j, v := range all[i] {
			pts[j].X = float64(j)
			pts[j].Y = float64(v)
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("building %s line: %w", seriesNames[i], err)
		}
		line.Color = sir.StateColor(state)
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(seriesNames[i], line)
	}

	p.X.Min = 0
	p.X.Max = float64(max(h.Len()-1, 1))

	width := vg.Length(g.Width) * vg.Inch / pixelsPerInch
	height := vg.Length(g.Height) * vg.Inch / pixelsPerInch
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("preparing png writer: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}
