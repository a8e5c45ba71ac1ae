//go:build !ebiten

package app

// Run always fails in the headless build.
func Run(Sim, Options) error {
	return ErrNoGUI
}
