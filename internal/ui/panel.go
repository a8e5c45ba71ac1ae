package ui

import (
	"fmt"
	"strings"

	"sir-ca/internal/core"
)

// LineKind tells the HUD how to style a panel line.
type LineKind int

const (
	LineTitle LineKind = iota
	LineGroup
	LineParam
	LineStatus
)

// Line is a single row of the side panel.
type Line struct {
	Kind  LineKind
	Text  string
	Value string
}

// StatusProvider is implemented by sims that report live statistics.
type StatusProvider interface {
	Status() []string
}

// PanelLines lays out the side panel for sim: a title, every parameter group
// from its snapshot and, if available, its status lines.
func PanelLines(sim core.Sim) []Line {
	lines := []Line{{Kind: LineTitle, Text: panelTitle(sim)}}
	if provider, ok := sim.(core.ParameterProvider); ok {
		for _, group := range provider.Parameters().Groups {
			lines = append(lines, Line{Kind: LineGroup, Text: group.Name})
			for _, p := range group.Params {
				lines = append(lines, Line{Kind: LineParam, Text: p.Label, Value: p.Value})
			}
		}
	}
	if provider, ok := sim.(StatusProvider); ok {
		status := provider.Status()
		if len(status) > 0 {
			lines = append(lines, Line{Kind: LineGroup, Text: "Status"})
		}
		for _, s := range status {
			lines = append(lines, Line{Kind: LineStatus, Text: s})
		}
	}
	return lines
}

func panelTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Parameters"
	}
	return fmt.Sprintf("%s Parameters", strings.ToUpper(sim.Name()))
}
