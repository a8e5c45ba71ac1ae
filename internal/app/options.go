package app

import (
	"errors"
	"image/color"

	"sir-ca/internal/core"
)

// ErrNoGUI is returned by Run in builds without the ebiten tag.
var ErrNoGUI = errors.New("app: the live viewer requires building with -tags ebiten")

// Sim is what the viewer needs: a steppable grid with a colour per state.
type Sim interface {
	core.Sim
	Palette() []color.RGBA
}

// Options configures the viewer window and pacing.
type Options struct {
	Scale          int
	TPS            int
	StepsPerSecond int
	PanelWidth     int
	Seed           int64
	Title          string
}

// DefaultOptions returns the standard viewer settings.
func DefaultOptions() Options {
	return Options{Scale: 3, TPS: 60, StepsPerSecond: 10, PanelWidth: 240, Seed: 42, Title: "sir-ca"}
}

func windowTitle(title, sim string) string {
	if title == "" {
		title = "sir-ca"
	}
	if sim == "" {
		return title
	}
	return title + ": " + sim
}

// control holds the viewer's pause/step state independent of input handling.
type control struct {
	paused   bool
	tickOnce bool
	seed     int64
	pace     *core.FixedStep
}

func newControl(seed int64, sps int) *control {
	return &control{seed: seed, pace: core.NewFixedStep(sps)}
}

func (c *control) togglePause() { c.paused = !c.paused }

func (c *control) stepOnce() { c.tickOnce = true }

// shouldStep reports whether the sim advances this frame. A single-step
// request fires even while paused; otherwise steps follow the fixed rate.
func (c *control) shouldStep() bool {
	if c.tickOnce {
		c.tickOnce = false
		return true
	}
	if c.paused {
		return false
	}
	return c.pace.ShouldStep()
}
