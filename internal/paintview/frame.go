package paintview

import (
	"image"
	"image/color"

	"github.com/example/touchpaint/internal/slots"
)

// FrameKind says how a Frame is painted.
type FrameKind int

const (
	// FrameSurface blits the accumulated paint surface.
	FrameSurface FrameKind = iota
	// FrameFill paints one flat colour.
	FrameFill
	// FrameMarkers paints the fill colour and a square marker per point.
	FrameMarkers
)

// Frame describes one redraw. Surface aliases the view's pixel memory and
// must not be retained past the next event.
type Frame struct {
	Kind        FrameKind
	Fill        color.RGBA
	Surface     *image.RGBA
	Markers     []slots.Point
	MarkerSize  float64
	MarkerColor color.RGBA
}

// Palette holds the colours the view paints with.
type Palette struct {
	Background color.RGBA
	Foreground color.RGBA
	Brush      color.RGBA
	Marker     color.RGBA
}

// DefaultPalette is white on black.
func DefaultPalette() Palette {
	white := color.RGBA{255, 255, 255, 255}
	return Palette{
		Background: color.RGBA{0, 0, 0, 255},
		Foreground: white,
		Brush:      white,
		Marker:     white,
	}
}

// Frame returns what the host should paint now. In blank mode it also
// requests the next redraw.
func (v *View) Frame() Frame {
	switch v.mode {
	case ModePaint:
		if v.surf == nil {
			return Frame{Kind: FrameFill, Fill: v.palette.Background}
		}
		return Frame{Kind: FrameSurface, Fill: v.palette.Background, Surface: v.surf.Image()}
	case ModeFill:
		c := v.palette.Background
		if v.fillDown {
			c = v.palette.Foreground
		}
		return Frame{Kind: FrameFill, Fill: c}
	case ModeFollow:
		return Frame{
			Kind:        FrameMarkers,
			Fill:        v.palette.Background,
			Markers:     v.tracker.Points(),
			MarkerSize:  v.dpToPx(FollowBoxDp),
			MarkerColor: v.palette.Marker,
		}
	}
	v.invalidate()
	return Frame{Kind: FrameFill, Fill: v.palette.Background}
}
