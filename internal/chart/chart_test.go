package chart

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sir-ca/internal/runner"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func sampleHistory() runner.History {
	var h runner.History
	h.Append(95, 5, 0)
	h.Append(90, 8, 2)
	h.Append(84, 9, 7)
	h.Append(80, 6, 14)
	return h
}

func TestRenderersProducePNG(t *testing.T) {
	for _, backend := range []string{"gochart", "gonum"} {
		t.Run(backend, func(t *testing.T) {
			r, err := NewRenderer(backend, Options{Width: 320, Height: 240})
			if err != nil {
				t.Fatal(err)
			}
			var buf bytes.Buffer
			if err := r.Render(&buf, sampleHistory()); err != nil {
				t.Fatalf("render: %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
				t.Fatal("output is not a PNG")
			}
		})
	}
}

func TestRenderSingleStep(t *testing.T) {
	var h runner.History
	h.Append(90, 10, 0)
	for _, backend := range []string{"gochart", "gonum"} {
		r, err := NewRenderer(backend, Options{Width: 320, Height: 240})
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		if err := r.Render(&buf, h); err != nil {
			t.Fatalf("%s: rendering one step: %v", backend, err)
		}
		if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
			t.Fatalf("%s: output is not a PNG", backend)
		}
	}
}

func TestRenderRejectsEmptyHistory(t *testing.T) {
	for _, backend := range []string{"gochart", "gonum"} {
		r, err := NewRenderer(backend, Options{})
		if err != nil {
			t.Fatal(err)
		}
		if err := r.Render(&bytes.Buffer{}, runner.History{}); !errors.Is(err, ErrEmptyHistory) {
			t.Fatalf("%s: expected ErrEmptyHistory, got %v", backend, err)
		}
	}
}

func TestNewRendererUnknownBackend(t *testing.T) {
	if _, err := NewRenderer("ascii", Options{}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
	r, err := NewRenderer("", Options{})
	if err != nil {
		t.Fatal(err)
	}
	gc, ok := r.(*GoChart)
	if !ok {
		t.Fatalf("empty backend should select gochart, got %T", r)
	}
	if gc.Width != 800 || gc.Height != 600 || gc.Title != "SIR evolution" {
		t.Fatalf("defaults not applied: %+v", gc.Options)
	}
}

func TestFileSink(t *testing.T) {
	r, err := NewRenderer("gochart", Options{Width: 200, Height: 150})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "sir.png")
	if err := File(path, r).Consume(sampleHistory()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Fatal("chart file is not a PNG")
	}
}
