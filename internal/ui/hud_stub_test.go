//go:build !ebiten

package ui

import (
	"testing"

	"sir-ca/internal/sims/sir"
)

func TestHeadlessHUDIsInert(t *testing.T) {
	cfg := sir.DefaultConfig()
	cfg.Width, cfg.Height = 4, 4
	a, err := sir.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	h := NewHUD(a, 240)
	if h != nil {
		t.Fatal("headless NewHUD should return nil")
	}
	h.Update()
	h.Draw(nil, 0, 1)
	if h.Width() != 0 {
		t.Fatalf("headless HUD width = %d, want 0", h.Width())
	}
}
