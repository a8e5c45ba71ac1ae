// Package sir implements a probabilistic SIR cellular automaton with
// vaccination and mortality transitions on a toroidal grid.
package sir

import (
	"fmt"

	"sir-ca/internal/core"
)

// Automaton owns the grid of cells and advances it with a synchronous
// decide-then-commit step.
type Automaton struct {
	cfg   Config
	torus core.Torus

	cells []Cell
	grid  [][]Cell

	rng   *core.RNG
	trial *Trial

	display []uint8
	steps   int
}

// New validates cfg and returns an automaton seeded from cfg.Seed.
func New(cfg Config) (*Automaton, error) {
	rng := core.NewRNG(core.SeedOrNow(cfg.Seed))
	a, err := NewWithSource(cfg, rng)
	if err != nil {
		return nil, err
	}
	a.rng = rng
	return a, nil
}

// NewWithSource validates cfg and returns an automaton drawing every random
// value from src, including the initial infected placement.
func NewWithSource(cfg Config, src Source) (*Automaton, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	total := cfg.Width * cfg.Height
	a := &Automaton{
		cfg:     cfg,
		torus:   core.NewTorus(cfg.Width, cfg.Height),
		cells:   make([]Cell, total),
		grid:    make([][]Cell, cfg.Height),
		trial:   NewTrial(cfg.Params, src),
		display: make([]uint8, total),
	}
	for r := range a.grid {
		a.grid[r] = a.cells[r*cfg.Width : (r+1)*cfg.Width : (r+1)*cfg.Width]
	}
	a.populate()
	return a, nil
}

// Name returns the simulation identifier.
func (a *Automaton) Name() string { return "sir" }

// Size reports the grid dimensions.
func (a *Automaton) Size() core.Size { return core.Size{W: a.torus.W, H: a.torus.H} }

// Config returns the configuration the automaton was built with.
func (a *Automaton) Config() Config { return a.cfg }

// Params returns the shared transition parameters.
func (a *Automaton) Params() Params { return a.trial.Params }

// Steps reports how many steps have completed since the last reset.
func (a *Automaton) Steps() int { return a.steps }

// Cells exposes the display buffer: one HealthState code per cell, row-major.
func (a *Automaton) Cells() []uint8 { return a.display }

// GridView is a read-only view of an automaton's cells. Coordinates wrap.
type GridView struct {
	a *Automaton
}

// Rows reports the grid height.
func (v GridView) Rows() int { return v.a.torus.H }

// Cols reports the grid width.
func (v GridView) Cols() int { return v.a.torus.W }

// At returns a copy of the cell at (row, col).
func (v GridView) At(row, col int) Cell { return *v.a.cellAt(row, col) }

// State returns the committed state of the cell at (row, col).
func (v GridView) State(row, col int) HealthState { return v.a.cellAt(row, col).state }

// Grid returns a read-only view of the cells.
func (a *Automaton) Grid() GridView { return GridView{a: a} }

// Cell returns a copy of the cell at (row, col), wrapping out-of-range
// coordinates.
func (a *Automaton) Cell(row, col int) Cell { return *a.cellAt(row, col) }

func (a *Automaton) cellAt(row, col int) *Cell {
	row, col = a.torus.Wrap(row, col)
	return &a.grid[row][col]
}

// Set places a cell into state s with no pending transition and a fresh
// infection streak.
func (a *Automaton) Set(row, col int, s HealthState) {
	c := a.cellAt(row, col)
	*c = NewCell(s)
	a.display[a.torus.Index(a.torus.Wrap(row, col))] = uint8(s)
}

// Fill places every cell into state s.
func (a *Automaton) Fill(s HealthState) {
	for i := range a.cells {
		a.cells[i] = NewCell(s)
	}
	a.rebuildDisplay()
}

// Reset re-seeds the random source and repopulates the grid. A zero seed
// reuses the configured seed. Automata built with NewWithSource keep drawing
// from their source without reseeding.
func (a *Automaton) Reset(seed int64) {
	if a.rng != nil {
		effective := seed
		if effective == 0 {
			effective = core.SeedOrNow(a.cfg.Seed)
		}
		a.rng.Seed(effective)
	}
	a.populate()
}

func (a *Automaton) populate() {
	for i := range a.cells {
		if a.trial.Bernoulli(a.cfg.InitialInfected) {
			a.cells[i] = NewCell(Infected)
			continue
		}
		a.cells[i] = NewCell(Susceptible)
	}
	a.steps = 0
	a.rebuildDisplay()
}

// Neighborhood returns the toroidal 3x3 window centred on (row, col).
func (a *Automaton) Neighborhood(row, col int) Neighborhood {
	var nb Neighborhood
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			nr, nc := a.torus.Offset(row, col, dr, dc)
			nb[dr+1][dc+1] = &a.grid[nr][nc]
		}
	}
	return nb
}

// Step advances the grid by one synchronous generation.
func (a *Automaton) Step() {
	a.DecideAll()
	a.CommitAll()
}

// DecideAll runs the decision rule for every cell against the committed
// grid. No state changes until CommitAll.
func (a *Automaton) DecideAll() {
	for r := range a.grid {
		for c := range a.grid[r] {
			nb := a.Neighborhood(r, c)
			a.grid[r][c].Decide(&nb, a.trial)
		}
	}
}

// CommitAll applies every staged decision and completes the step.
func (a *Automaton) CommitAll() {
	for i := range a.cells {
		a.cells[i].Commit()
	}
	a.steps++
	a.rebuildDisplay()
}

// Count tallies the cells currently in state s.
func (a *Automaton) Count(s HealthState) int {
	n := 0
	for i := range a.cells {
		if a.cells[i].state == s {
			n++
		}
	}
	return n
}

// Counts tallies every state in a single pass.
func (a *Automaton) Counts() Counts {
	var c Counts
	for i := range a.cells {
		c.add(a.cells[i].state)
	}
	return c
}

// Status returns short human-readable lines describing the current step.
func (a *Automaton) Status() []string {
	c := a.Counts()
	return []string{
		fmt.Sprintf("step %d", a.steps),
		fmt.Sprintf("S %d", c.Susceptible),
		fmt.Sprintf("I %d", c.Infected),
		fmt.Sprintf("R %d", c.Recovered),
	}
}

func (a *Automaton) rebuildDisplay() {
	for i := range a.cells {
		a.display[i] = uint8(a.cells[i].state)
	}
}
