package sir

// HealthState enumerates the compartments a cell can occupy.
type HealthState uint8

const (
	Susceptible HealthState = iota
	Infected
	Recovered
)

// States lists every health state in display order.
var States = [...]HealthState{Susceptible, Infected, Recovered}

func (s HealthState) String() string {
	switch s {
	case Susceptible:
		return "susceptible"
	case Infected:
		return "infected"
	case Recovered:
		return "recovered"
	default:
		return "unknown"
	}
}

// Counts tallies the population of each compartment.
type Counts struct {
	Susceptible int
	Infected    int
	Recovered   int
}

// Of returns the count for a single state.
func (c Counts) Of(s HealthState) int {
	switch s {
	case Susceptible:
		return c.Susceptible
	case Infected:
		return c.Infected
	case Recovered:
		return c.Recovered
	}
	return 0
}

// Total returns the population size.
func (c Counts) Total() int { return c.Susceptible + c.Infected + c.Recovered }

func (c *Counts) add(s HealthState) {
	switch s {
	case Susceptible:
		c.Susceptible++
	case Infected:
		c.Infected++
	case Recovered:
		c.Recovered++
	}
}
