// Package surface is the off-screen raster that accumulates paint strokes.
package surface

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/gogpu/gg"

	"github.com/example/touchpaint/internal/slots"
)

// ErrInvalidSize is returned for non-positive dimensions.
var ErrInvalidSize = errors.New("invalid surface size")

// Surface wraps a gg drawing context sized to the visible window.
type Surface struct {
	dc *gg.Context
	bg color.RGBA
}

// New allocates a w by h surface filled with bg. The alpha of bg is
// ignored.
func New(w, h int, bg color.RGBA) (*Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	s := &Surface{dc: gg.NewContext(w, h), bg: opaque(bg)}
	s.Clear()
	return s, nil
}

// Resize reallocates the backing store and clears it. Invalid sizes leave
// the surface untouched.
func (s *Surface) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	if err := s.dc.Resize(w, h); err != nil {
		return fmt.Errorf("resize surface: %w", err)
	}
	s.Clear()
	return nil
}

// Size returns the surface dimensions in pixels.
func (s *Surface) Size() (int, int) { return s.dc.Width(), s.dc.Height() }

// Background returns the clear colour.
func (s *Surface) Background() color.RGBA { return s.bg }

// SetBackground changes the clear colour used by later clears. The alpha of
// c is ignored.
func (s *Surface) SetBackground(c color.RGBA) { s.bg = opaque(c) }

// opaque drops the alpha channel of c.
func opaque(c color.RGBA) color.RGBA {
	c.A = 255
	return c
}

// Clear fills the whole surface with the background colour.
func (s *Surface) Clear() {
	s.dc.ClearWithColor(gg.FromColor(s.bg))
}

// Line strokes a segment from a to b with round caps and joins.
func (s *Surface) Line(a, b slots.Point, width float64, col color.Color) error {
	s.brush(width, col)
	s.dc.DrawLine(float64(a.X), float64(a.Y), float64(b.X), float64(b.Y))
	if err := s.dc.Stroke(); err != nil {
		return fmt.Errorf("stroke line: %w", err)
	}
	return nil
}

// Dot paints a round point of the given diameter centred on p.
func (s *Surface) Dot(p slots.Point, width float64, col color.Color) error {
	s.dc.SetColor(col)
	s.dc.DrawCircle(float64(p.X), float64(p.Y), width/2)
	if err := s.dc.Fill(); err != nil {
		return fmt.Errorf("fill dot: %w", err)
	}
	return nil
}

func (s *Surface) brush(width float64, col color.Color) {
	s.dc.SetColor(col)
	s.dc.SetLineWidth(width)
	s.dc.SetLineCap(gg.LineCapRound)
	s.dc.SetLineJoin(gg.LineJoinRound)
}

// Image returns an RGBA view sharing the surface's pixel memory. The view is
// invalidated by Resize. The background is forced opaque and strokes are
// composited over it, so straight and premultiplied alpha coincide.
func (s *Surface) Image() *image.RGBA {
	if err := s.dc.FlushGPU(); err != nil {
		log.Printf("surface flush: %v", err)
	}
	pm := s.dc.ResizeTarget()
	w, h := pm.Width(), pm.Height()
	return &image.RGBA{
		Pix:    pm.Data(),
		Stride: w * 4,
		Rect:   image.Rect(0, 0, w, h),
	}
}
