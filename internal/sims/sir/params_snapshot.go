package sir

import (
	"strconv"

	"sir-ca/internal/core"
)

// Parameters describes the automaton's configuration for display.
func (a *Automaton) Parameters() core.ParameterSnapshot {
	p := a.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				intParam("w", "Width", a.cfg.Width),
				intParam("h", "Height", a.cfg.Height),
				int64Param("seed", "Seed", a.cfg.Seed),
				floatParam("initial_infected", "Initial infected", a.cfg.InitialInfected, "chance a cell starts infected"),
			},
		},
		{
			Name: "Transitions",
			Params: []core.Parameter{
				floatParam("pv", "Vaccination", p.Pv, "S -> R"),
				floatParam("ps", "Imported case", p.Ps, "S -> I"),
				floatParam("pc", "Cure", p.Pc, "I -> R"),
				floatParam("pd", "Death while infected", p.Pd, "I -> S"),
				floatParam("po", "Death while recovered", p.Po, "R -> S"),
				floatParam("k", "Infectivity", p.K, "P(infection) = 1 - exp(-k n)"),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64, desc string) core.Parameter {
	return core.Parameter{
		Key:         key,
		Label:       label,
		Type:        core.ParamTypeFloat,
		Value:       strconv.FormatFloat(value, 'f', -1, 64),
		Description: desc,
	}
}
