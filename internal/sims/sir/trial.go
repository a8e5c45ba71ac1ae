package sir

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is returned when transition parameters are out of range.
var ErrInvalidParams = errors.New("sir: invalid transition parameters")

// Source is a uniform random source over [0, 1). *rand.Rand and core.RNG
// both satisfy it.
type Source interface {
	Float64() float64
}

// Params holds the transition probabilities shared by every cell of a run.
type Params struct {
	// Pv is the chance a susceptible cell is vaccinated (S -> R).
	Pv float64
	// Ps is the chance a susceptible cell becomes an imported case (S -> I).
	Ps float64
	// Pc is the chance an infected cell is cured (I -> R).
	Pc float64
	// Pd is the chance an infected cell dies and is replaced (I -> S).
	Pd float64
	// Po is the chance a recovered cell dies and is replaced (R -> S).
	Po float64
	// K is the infectivity coefficient used by InfectionProbability.
	K float64
}

// NewParams builds a validated parameter set.
func NewParams(pv, ps, pc, pd, po, k float64) (Params, error) {
	p := Params{Pv: pv, Ps: ps, Pc: pc, Pd: pd, Po: po, K: k}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate rejects probabilities outside [0, 1] and negative or non-finite K.
func (p Params) Validate() error {
	probs := []struct {
		name string
		v    float64
	}{
		{"pv", p.Pv},
		{"ps", p.Ps},
		{"pc", p.Pc},
		{"pd", p.Pd},
		{"po", p.Po},
	}
	for _, pr := range probs {
		if math.IsNaN(pr.v) || pr.v < 0 || pr.v > 1 {
			return fmt.Errorf("%w: %s=%v must be within [0, 1]", ErrInvalidParams, pr.name, pr.v)
		}
	}
	if math.IsNaN(p.K) || math.IsInf(p.K, 0) || p.K < 0 {
		return fmt.Errorf("%w: k=%v must be a finite value >= 0", ErrInvalidParams, p.K)
	}
	return nil
}

// InfectionProbability returns 1 - exp(-k*n), the chance that a susceptible
// cell with n infected cells in its window catches the disease.
func InfectionProbability(n int, k float64) float64 {
	if n <= 0 || k <= 0 {
		return 0
	}
	return 1 - math.Exp(-k*float64(n))
}

// Trial samples Bernoulli outcomes for a fixed parameter set.
type Trial struct {
	Params
	src Source
}

// NewTrial binds params to a random source.
func NewTrial(p Params, src Source) *Trial {
	return &Trial{Params: p, src: src}
}

// Bernoulli draws once from the source and reports whether the draw fell
// below p. p <= 0 never fires, p >= 1 always fires.
func (t *Trial) Bernoulli(p float64) bool {
	return t.src.Float64() < p
}

// InfectionProbability applies the trial's K to n infected neighbors.
func (t *Trial) InfectionProbability(n int) float64 {
	return InfectionProbability(n, t.K)
}
