package core

// Torus describes a W x H grid whose edges wrap in both axes. Coordinates are
// (row, col) with row in [0, H) and col in [0, W).
type Torus struct {
	W, H int
}

// NewTorus returns a torus with the given dimensions. Non-positive
// dimensions are clamped to 1.
func NewTorus(w, h int) Torus {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return Torus{W: w, H: h}
}

// Index returns the row-major linear index for (row, col).
func (t Torus) Index(row, col int) int { return row*t.W + col }

// Wrap applies toroidal wrapping to the provided coordinates.
func (t Torus) Wrap(row, col int) (int, int) {
	row = (row%t.H + t.H) % t.H
	col = (col%t.W + t.W) % t.W
	return row, col
}

// Offset returns the wrapped coordinates of (row+dr, col+dc).
func (t Torus) Offset(row, col, dr, dc int) (int, int) {
	return (row + dr + t.H) % t.H, (col + dc + t.W) % t.W
}
