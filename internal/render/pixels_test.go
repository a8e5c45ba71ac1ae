package render

import (
	"image/color"
	"testing"

	"sir-ca/internal/core"
)

var testPalette = []color.RGBA{
	{R: 1, G: 2, B: 3, A: 255},
	{R: 200, G: 0, B: 0, A: 255},
}

func TestFillPaletteRGBA(t *testing.T) {
	buf := make([]byte, 12)
	fillPaletteRGBA(buf, []uint8{0, 1, 7}, testPalette)
	want := []byte{1, 2, 3, 255, 200, 0, 0, 255, 200, 0, 0, 255}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("buf[%d] = %d, want %d", i, buf[i], want[i])
		}
	}

	fillPaletteRGBA(buf, []uint8{0, 1, 0}, nil)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("empty palette should clear, buf[%d] = %d", i, b)
		}
	}
}

func TestImageScalesCells(t *testing.T) {
	size := core.Size{W: 2, H: 1}
	img := Image([]uint8{0, 1}, size, testPalette, 3)
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 3 {
		t.Fatalf("bounds = %v, want 6x3", b)
	}
	if got := img.RGBAAt(2, 2); got != testPalette[0] {
		t.Fatalf("pixel (2,2) = %v, want %v", got, testPalette[0])
	}
	if got := img.RGBAAt(3, 0); got != testPalette[1] {
		t.Fatalf("pixel (3,0) = %v, want %v", got, testPalette[1])
	}

	flat := Image([]uint8{1, 0}, size, testPalette, 1)
	if got := flat.RGBAAt(0, 0); got != testPalette[1] {
		t.Fatalf("unscaled pixel = %v", got)
	}
}

func TestImageIgnoresMismatchedCells(t *testing.T) {
	img := Image([]uint8{1}, core.Size{W: 2, H: 2}, testPalette, 1)
	if got := img.RGBAAt(0, 0); got != (color.RGBA{}) {
		t.Fatalf("expected blank image, got %v", got)
	}
}
