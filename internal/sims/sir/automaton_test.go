package sir

import (
	"errors"
	"slices"
	"testing"
)

func smallConfig(w, h int) Config {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Seed = 7
	return cfg
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, ErrInvalidSize},
		{"negative height", func(c *Config) { c.Height = -2 }, ErrInvalidSize},
		{"probability above one", func(c *Config) { c.Params.Pc = 1.2 }, ErrInvalidParams},
		{"negative k", func(c *Config) { c.Params.K = -1 }, ErrInvalidParams},
		{"initial infected above one", func(c *Config) { c.InitialInfected = 1.5 }, ErrInvalidParams},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := smallConfig(4, 4)
			c.mutate(&cfg)
			if _, err := New(cfg); !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
}

func TestConservation(t *testing.T) {
	cfg := smallConfig(30, 20)
	a, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	total := cfg.Width * cfg.Height
	for step := 0; step < 60; step++ {
		a.Step()
		s, i, r := a.Count(Susceptible), a.Count(Infected), a.Count(Recovered)
		if s+i+r != total {
			t.Fatalf("step %d: %d+%d+%d != %d", step, s, i, r, total)
		}
		c := a.Counts()
		if c.Susceptible != s || c.Infected != i || c.Recovered != r {
			t.Fatalf("step %d: Counts() %+v disagrees with Count", step, c)
		}
	}
	if a.Steps() != 60 {
		t.Fatalf("Steps() = %d, want 60", a.Steps())
	}
}

func TestToroidalNeighborhood(t *testing.T) {
	const w, h = 5, 4
	a, err := New(smallConfig(w, h))
	if err != nil {
		t.Fatal(err)
	}

	nb := a.Neighborhood(0, 0)
	if nb[0][0] != &a.grid[h-1][w-1] {
		t.Fatal("neighborhood of (0,0) must include (h-1,w-1)")
	}
	if nb[1][1] != &a.grid[0][0] {
		t.Fatal("centre must be the cell itself")
	}
	if nb[2][2] != &a.grid[1][1] {
		t.Fatal("bottom-right neighbor of (0,0) must be (1,1)")
	}
	if nb[0][1] != &a.grid[h-1][0] || nb[1][0] != &a.grid[0][w-1] {
		t.Fatal("edge neighbors must wrap on both axes")
	}

	seen := map[*Cell]bool{}
	for r := range a.grid {
		for c := range a.grid[r] {
			seen[&a.grid[r][c]] = true
		}
	}
	for _, row := range nb {
		for _, c := range row {
			if !seen[c] {
				t.Fatal("neighborhood references a cell outside the grid")
			}
		}
	}

	corner := a.Neighborhood(h-1, w-1)
	if corner[2][2] != &a.grid[0][0] {
		t.Fatal("neighborhood of (h-1,w-1) must include (0,0)")
	}
}

func TestTwoPhaseStepIsSynchronous(t *testing.T) {
	a, err := New(smallConfig(12, 9))
	if err != nil {
		t.Fatal(err)
	}
	// Seed a few infections so neighbor counts matter.
	a.Set(4, 4, Infected)
	a.Set(0, 0, Infected)

	for step := 0; step < 10; step++ {
		before := stateSnapshot(a)
		a.DecideAll()
		if got := stateSnapshot(a); !slices.Equal(before, got) {
			t.Fatalf("step %d: states changed during decide phase", step)
		}
		staged := make([]HealthState, 0, len(before))
		for _, row := range a.grid {
			for i := range row {
				staged = append(staged, row[i].pending)
			}
		}
		a.CommitAll()
		if got := stateSnapshot(a); !slices.Equal(staged, got) {
			t.Fatalf("step %d: committed states differ from staged", step)
		}
	}
}

func stateSnapshot(a *Automaton) []HealthState {
	var out []HealthState
	v := a.Grid()
	for r := 0; r < v.Rows(); r++ {
		for c := 0; c < v.Cols(); c++ {
			out = append(out, v.State(r, c))
		}
	}
	return out
}

func TestSingleCellCures(t *testing.T) {
	cfg := smallConfig(1, 1)
	cfg.InitialInfected = 1
	cfg.Params = Params{Pc: 1}
	a, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if a.Count(Infected) != 1 {
		t.Fatalf("expected single infected cell, got %+v", a.Counts())
	}
	nb := a.Neighborhood(0, 0)
	for _, row := range nb {
		for _, c := range row {
			if c != &a.grid[0][0] {
				t.Fatal("every position of a 1x1 neighborhood must be the cell itself")
			}
		}
	}

	a.Step()
	if a.Count(Recovered) != 1 {
		t.Fatalf("expected recovered after one step, got %+v", a.Counts())
	}
	if got := a.Cell(0, 0); got.Streak() != 0 {
		t.Fatalf("streak = %d, want 0", got.Streak())
	}
}

func TestZeroInfectivityStasis(t *testing.T) {
	cfg := smallConfig(3, 3)
	cfg.InitialInfected = 0
	cfg.Params = Params{Pv: 0, Ps: 0, K: 0, Pc: 0.5, Pd: 0.5, Po: 0.5}
	a, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for step := 0; step < 50; step++ {
		a.Step()
		if got := a.Count(Susceptible); got != 9 {
			t.Fatalf("step %d: %d susceptible, want 9", step, got)
		}
	}
}

func TestSeededRunsAreReproducible(t *testing.T) {
	cfg := smallConfig(24, 24)
	cfg.InitialInfected = 0.05
	a, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 8; i++ {
		a.Step()
		b.Step()
	}
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatal("identical seeds produced different grids")
	}

	final := append([]uint8(nil), a.Cells()...)
	a.Reset(0)
	if a.Steps() != 0 {
		t.Fatalf("Reset should clear the step counter, got %d", a.Steps())
	}
	for i := 0; i < 8; i++ {
		a.Step()
	}
	if !slices.Equal(final, a.Cells()) {
		t.Fatal("Reset with the configured seed did not reproduce the run")
	}

	a.Reset(12345)
	other := append([]uint8(nil), a.Cells()...)
	b.Reset(12345)
	if !slices.Equal(other, b.Cells()) {
		t.Fatal("Reset with an explicit seed is not deterministic")
	}
}

func TestInitialInfectedFraction(t *testing.T) {
	a, err := New(smallConfig(200, 200))
	if err != nil {
		t.Fatal(err)
	}
	// Expected 400 infected out of 40000 with a standard deviation of ~20.
	got := a.Count(Infected)
	if got < 250 || got > 550 {
		t.Fatalf("initial infected = %d, want roughly 1%%", got)
	}
	if a.Count(Recovered) != 0 {
		t.Fatal("no cell should start recovered")
	}
	v := a.Grid()
	for r := 0; r < v.Rows(); r++ {
		for c := 0; c < v.Cols(); c++ {
			if cell := v.At(r, c); cell.Streak() != 0 {
				t.Fatal("initial streaks must be zero")
			}
		}
	}
}

func TestDisplayBufferTracksStates(t *testing.T) {
	a, err := New(smallConfig(6, 5))
	if err != nil {
		t.Fatal(err)
	}
	a.Fill(Susceptible)
	a.Set(2, 3, Recovered)
	idx := 2*6 + 3
	if a.Cells()[idx] != uint8(Recovered) {
		t.Fatalf("display[%d] = %d, want %d", idx, a.Cells()[idx], Recovered)
	}
	a.Step()
	for i, v := range a.Cells() {
		r, c := i/6, i%6
		if HealthState(v) != a.Grid().State(r, c) {
			t.Fatalf("display out of sync at (%d,%d)", r, c)
		}
	}
	if len(a.Palette()) != len(States) {
		t.Fatalf("palette has %d entries, want %d", len(a.Palette()), len(States))
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg, err := FromMap(map[string]string{"w": "10", "height": "12", "k": "0.25", "seed": "9", "initial_infected": "0.2"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 10 || cfg.Height != 12 || cfg.Params.K != 0.25 || cfg.Seed != 9 || cfg.InitialInfected != 0.2 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Params.Pc != DefaultConfig().Params.Pc {
		t.Fatal("untouched keys must keep defaults")
	}
	if _, err := FromMap(map[string]string{"bogus": "1"}); err == nil {
		t.Fatal("expected error for unknown key")
	}
	if _, err := FromMap(map[string]string{"pv": "lots"}); err == nil {
		t.Fatal("expected error for unparsable value")
	}
}

func TestParametersSnapshot(t *testing.T) {
	a, err := New(smallConfig(8, 8))
	if err != nil {
		t.Fatal(err)
	}
	p, ok := a.Parameters().Lookup("k")
	if !ok || p.Value != "1" {
		t.Fatalf("k parameter = %+v, %v", p, ok)
	}
	if p, ok := a.Parameters().Lookup("w"); !ok || p.Value != "8" {
		t.Fatalf("w parameter = %+v, %v", p, ok)
	}
	if len(a.Status()) != 4 {
		t.Fatalf("unexpected status lines %v", a.Status())
	}
}

func TestGridViewIsReadOnly(t *testing.T) {
	a, err := New(smallConfig(4, 3))
	if err != nil {
		t.Fatal(err)
	}
	a.Fill(Susceptible)

	v := a.Grid()
	if v.Rows() != 3 || v.Cols() != 4 {
		t.Fatalf("view is %dx%d, want 4x3", v.Cols(), v.Rows())
	}
	c := v.At(1, 2)
	c.Propose(Infected)
	c.Commit()
	cell := a.Cell(1, 2)
	cell.Propose(Recovered)
	cell.Commit()

	if v.State(1, 2) != Susceptible || a.Count(Susceptible) != 12 {
		t.Fatal("changing a copied cell must not touch the grid")
	}
	if v.State(-1, -1) != v.State(2, 3) {
		t.Fatal("view coordinates must wrap")
	}
	a.Set(2, 3, Infected)
	if v.State(-1, -1) != Infected {
		t.Fatal("view must reflect the live grid")
	}
}
