package runner

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"sir-ca/internal/sims/sir"
)

// History holds one population count per completed step for each state.
// The three series always have the same length.
type History struct {
	Susceptible []int
	Infected    []int
	Recovered   []int
}

// NewHistory preallocates room for steps entries.
func NewHistory(steps int) History {
	if steps < 0 {
		steps = 0
	}
	return History{
		Susceptible: make([]int, 0, steps),
		Infected:    make([]int, 0, steps),
		Recovered:   make([]int, 0, steps),
	}
}

// Append records the counts of one step.
func (h *History) Append(s, i, r int) {
	h.Susceptible = append(h.Susceptible, s)
	h.Infected = append(h.Infected, i)
	h.Recovered = append(h.Recovered, r)
}

// Len returns the number of recorded steps.
func (h History) Len() int { return len(h.Susceptible) }

// Steps returns the step index series 0..Len()-1.
func (h History) Steps() []int {
	out := make([]int, h.Len())
	for i := range out {
		out[i] = i
	}
	return out
}

// Series returns the series for a single state.
func (h History) Series(s sir.HealthState) []int {
	switch s {
	case sir.Susceptible:
		return h.Susceptible
	case sir.Infected:
		return h.Infected
	case sir.Recovered:
		return h.Recovered
	}
	return nil
}

// At returns the counts recorded for step i.
func (h History) At(i int) sir.Counts {
	return sir.Counts{
		Susceptible: h.Susceptible[i],
		Infected:    h.Infected[i],
		Recovered:   h.Recovered[i],
	}
}

// PeakInfected returns the step with the most infected cells and that count.
// Ties resolve to the earliest step. An empty history returns (-1, 0).
func (h History) PeakInfected() (step, count int) {
	step = -1
	for i, v := range h.Infected {
		if step < 0 || v > count {
			step, count = i, v
		}
	}
	return step, count
}

// Population returns the total cell count, taken from the first step.
func (h History) Population() int {
	if h.Len() == 0 {
		return 0
	}
	return h.At(0).Total()
}

// WriteCSV writes a header and one row per step.
func (h History) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"step", "susceptible", "infected", "recovered"}); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for i := 0; i < h.Len(); i++ {
		row := []string{
			strconv.Itoa(i),
			strconv.Itoa(h.Susceptible[i]),
			strconv.Itoa(h.Infected[i]),
			strconv.Itoa(h.Recovered[i]),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
