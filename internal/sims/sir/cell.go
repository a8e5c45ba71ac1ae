package sir

// Cell is a single individual. Decide stages the next state in pending;
// Commit makes it current. Between the two only state is ever read.
type Cell struct {
	state   HealthState
	pending HealthState
	streak  int
}

// NewCell returns a cell in the given state with no pending transition.
func NewCell(s HealthState) Cell {
	return Cell{state: s, pending: s}
}

// State returns the committed health state.
func (c *Cell) State() HealthState { return c.state }

// Streak returns the number of consecutive steps the cell has stayed infected.
func (c *Cell) Streak() int { return c.streak }

// Propose stages s as the next state without affecting State.
func (c *Cell) Propose(s HealthState) { c.pending = s }

// Commit replaces the current state with the staged one. Calling it again
// without a new proposal is a no-op.
func (c *Cell) Commit() { c.state = c.pending }

// Neighborhood is the 3x3 Moore window around a cell, indexed
// [row offset + 1][col offset + 1]. The centre is the cell itself.
type Neighborhood [3][3]*Cell

// Center returns the cell the window was built around.
func (nb *Neighborhood) Center() *Cell { return nb[1][1] }

// Count returns how many cells in the window currently hold state s. The
// centre cell is included.
func (nb *Neighborhood) Count(s HealthState) int {
	n := 0
	for _, row := range nb {
		for _, c := range row {
			if c != nil && c.state == s {
				n++
			}
		}
	}
	return n
}

// Decide stages exactly one proposal for the next step. It only reads
// committed states. Within each branch draws are made in a fixed order and
// the first success wins.
func (c *Cell) Decide(nb *Neighborhood, tr *Trial) {
	switch c.state {
	case Susceptible:
		switch {
		case tr.Bernoulli(tr.Pv):
			c.Propose(Recovered)
		case tr.Bernoulli(tr.Ps):
			c.Propose(Infected)
		case tr.Bernoulli(tr.InfectionProbability(nb.Count(Infected))):
			c.Propose(Infected)
		default:
			c.Propose(Susceptible)
		}
	case Infected:
		switch {
		case tr.Bernoulli(tr.Pc):
			c.Propose(Recovered)
			c.streak = 0
		case tr.Bernoulli(tr.Pd):
			c.Propose(Susceptible)
			c.streak = 0
		default:
			c.Propose(Infected)
			c.streak++
		}
	case Recovered:
		if tr.Bernoulli(tr.Po) {
			c.Propose(Susceptible)
		} else {
			c.Propose(Recovered)
		}
	}
}
