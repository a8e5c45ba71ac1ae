package ui

import (
	"testing"

	"sir-ca/internal/core"
	"sir-ca/internal/sims/sir"
)

type bareSim struct{}

func (bareSim) Name() string { return "" }
func (bareSim) Size() core.Size { return core.Size{W: 1, H: 1} }
func (bareSim) Reset(int64) {}
func (bareSim) Step() {}
func (bareSim) Cells() []uint8 { return []uint8{0} }

func TestPanelLinesForAutomaton(t *testing.T) {
	cfg := sir.DefaultConfig()
	cfg.Width, cfg.Height = 8, 8
	a, err := sir.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	lines := PanelLines(a)
	if lines[0].Kind != LineTitle || lines[0].Text != "SIR Parameters" {
		t.Fatalf("unexpected title %+v", lines[0])
	}

	var groups []string
	params := map[string]string{}
	status := 0
	for _, l := range lines {
		switch l.Kind {
		case LineGroup:
			groups = append(groups, l.Text)
		case LineParam:
			params[l.Text] = l.Value
		case LineStatus:
			status++
		}
	}
	if len(groups) != 3 || groups[0] != "Grid" || groups[1] != "Transitions" || groups[2] != "Status" {
		t.Fatalf("unexpected groups %v", groups)
	}
	if params["Width"] != "8" || params["Infectivity"] != "1" {
		t.Fatalf("unexpected params %v", params)
	}
	if status != len(a.Status()) {
		t.Fatalf("got %d status lines, want %d", status, len(a.Status()))
	}
}

func TestPanelLinesWithoutProviders(t *testing.T) {
	lines := PanelLines(bareSim{})
	if len(lines) != 1 || lines[0].Text != "Parameters" {
		t.Fatalf("expected title only, got %+v", lines)
	}
}
