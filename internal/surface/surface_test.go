package surface

import (
	"bytes"
	"errors"
	"image/color"
	"log"
	"testing"

	"github.com/example/touchpaint/internal/slots"
)

var (
	black = color.RGBA{0, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
)

func TestNewRejectsInvalidSize(t *testing.T) {
	tests := []struct{ w, h int }{{0, 10}, {10, 0}, {-1, 5}}
	for _, tt := range tests {
		if _, err := New(tt.w, tt.h, black); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("New(%d, %d) err = %v", tt.w, tt.h, err)
		}
	}
}

func TestLineMarksMidpoint(t *testing.T) {
	s, err := New(64, 64, black)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	img := s.Image()
	if got := img.RGBAAt(32, 32); got != black {
		t.Fatalf("fresh surface pixel = %v", got)
	}
	if err := s.Line(slots.Point{X: 8.5, Y: 32.5}, slots.Point{X: 56.5, Y: 32.5}, 6, white); err != nil {
		t.Fatalf("Line: %v", err)
	}
	if got := s.Image().RGBAAt(32, 32); got == black {
		t.Fatalf("midpoint unchanged after stroke")
	}
	if got := s.Image().RGBAAt(32, 8); got != black {
		t.Fatalf("pixel far from the stroke changed: %v", got)
	}
}

func TestDotAndClear(t *testing.T) {
	s, err := New(32, 32, black)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Dot(slots.Point{X: 16.5, Y: 16.5}, 8, white); err != nil {
		t.Fatalf("Dot: %v", err)
	}
	if s.Image().RGBAAt(16, 16) == black {
		t.Fatalf("dot centre unchanged")
	}
	s.Clear()
	if got := s.Image().RGBAAt(16, 16); got != black {
		t.Fatalf("Clear left %v", got)
	}
}

func TestResize(t *testing.T) {
	s, err := New(10, 10, black)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Resize(0, 5); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("Resize(0, 5) err = %v", err)
	}
	if w, h := s.Size(); w != 10 || h != 10 {
		t.Fatalf("rejected resize changed size to %dx%d", w, h)
	}
	if err := s.Resize(40, 20); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	img := s.Image()
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 20 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if got := img.RGBAAt(39, 19); got != black {
		t.Fatalf("resized surface not cleared: %v", got)
	}
}

func TestTranslucentBackgroundIsOpaque(t *testing.T) {
	want := color.RGBA{0x11, 0x22, 0x33, 0xff}
	s, err := New(8, 8, color.RGBA{0x11, 0x22, 0x33, 0x80})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := s.Image().RGBAAt(4, 4); got != want {
		t.Fatalf("New background pixel = %v, want %v", got, want)
	}
	if s.Background() != want {
		t.Fatalf("Background() = %v", s.Background())
	}
	s.SetBackground(color.RGBA{0x11, 0x22, 0x33, 0x00})
	s.Clear()
	if got := s.Image().RGBAAt(4, 4); got != want {
		t.Fatalf("SetBackground pixel = %v, want %v", got, want)
	}
}

func TestImageFlushLogsNothingOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	defer log.SetOutput(log.Writer())
	log.SetOutput(&buf)
	s, err := New(8, 8, black)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Dot(slots.Point{X: 4.5, Y: 4.5}, 4, white); err != nil {
		t.Fatalf("Dot: %v", err)
	}
	if s.Image().RGBAAt(4, 4) == black {
		t.Fatalf("dot missing after flush")
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected log output: %q", buf.String())
	}
}
