package sir

import "image/color"

var sirPalette = []color.RGBA{
	Susceptible: {R: 70, G: 90, B: 130, A: 255},
	Infected:    {R: 220, G: 50, B: 40, A: 255},
	Recovered:   {R: 70, G: 170, B: 90, A: 255},
}

// Palette exposes the colors used to render each HealthState code.
func (a *Automaton) Palette() []color.RGBA {
	return sirPalette
}

// StateColor returns the display color for s.
func StateColor(s HealthState) color.RGBA {
	if int(s) < len(sirPalette) {
		return sirPalette[s]
	}
	return color.RGBA{A: 255}
}
