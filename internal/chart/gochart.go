package chart

import (
	"fmt"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"sir-ca/internal/runner"
	"sir-ca/internal/sims/sir"
)

// GoChart renders with github.com/wcharczuk/go-chart.
type GoChart struct {
	Options
}

func stateStrokeColor(s sir.HealthState) drawing.Color {
	c := sir.StateColor(s)
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Render draws the three series against the step index.
func (g *GoChart) Render(w io.Writer, h runner.History) error {
	if h.Len() == 0 {
		return ErrEmptyHistory
	}
	xs := toFloats(h.Steps())
	all := series(h)

	var ss []gochart.Series
	for i, state := range sir.States {
		ss = append(ss, gochart.ContinuousSeries{
			Name:    seriesNames[i],
			XValues: xs,
			YValues: toFloats(all[i]),
			Style: gochart.Style{
				StrokeColor: stateStrokeColor(state),
				StrokeWidth: 2.0,
			},
		})
	}

	graph := gochart.Chart{
		Title:  g.Title,
		Width:  g.Width,
		Height: g.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		XAxis: gochart.XAxis{
			Name:  defaultXLabel,
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(max(h.Len()-1, 1))},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: gochart.YAxis{
			Name:  defaultYLabel,
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(max(h.Population(), 1))},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		Series: ss,
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}

	return graph.Render(gochart.PNG, w)
}
