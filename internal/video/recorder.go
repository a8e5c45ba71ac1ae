// Package video records one MJPEG frame per simulation step into an AVI file.
package video

import (
	"bytes"
	"fmt"
	"image/color"
	"image/jpeg"

	"github.com/icza/mjpeg"

	"sir-ca/internal/core"
	"sir-ca/internal/render"
	"sir-ca/internal/runner"
)

// Recorder writes frames of a fixed-size grid to an AVI container.
type Recorder struct {
	aw      mjpeg.AviWriter
	size    core.Size
	palette []color.RGBA
	scale   int
	buf     bytes.Buffer
	opts    jpeg.Options
	frames  int
}

// New creates the AVI file at path for a grid of the given size. Each cell is
// drawn as a scale x scale block.
func New(path string, size core.Size, palette []color.RGBA, scale, fps int) (*Recorder, error) {
	if scale <= 0 {
		scale = 1
	}
	if fps <= 0 {
		fps = 10
	}
	aw, err := mjpeg.New(path, int32(size.W*scale), int32(size.H*scale), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("creating mjpeg writer: %w", err)
	}
	return &Recorder{
		aw:      aw,
		size:    size,
		palette: palette,
		scale:   scale,
		opts:    jpeg.Options{Quality: 90},
	}, nil
}

// AddFrame encodes cells as one JPEG frame.
func (r *Recorder) AddFrame(cells []uint8) error {
	img := render.Image(cells, r.size, r.palette, r.scale)
	r.buf.Reset()
	if err := jpeg.Encode(&r.buf, img, &r.opts); err != nil {
		return fmt.Errorf("encoding frame %d: %w", r.frames, err)
	}
	if err := r.aw.AddFrame(r.buf.Bytes()); err != nil {
		return fmt.Errorf("adding frame %d: %w", r.frames, err)
	}
	r.frames++
	return nil
}

// Observe implements runner.Observer by recording the automaton's cells.
func (r *Recorder) Observe(step int, a runner.Automaton) error {
	return r.AddFrame(a.Cells())
}

// Frames reports how many frames have been written.
func (r *Recorder) Frames() int { return r.frames }

// Close finalizes the AVI index and closes the file.
func (r *Recorder) Close() error {
	return r.aw.Close()
}
