// Package render rasterises paint view frames and overlays into RGBA
// buffers supplied by the hosts.
package render

import (
	"image"
	"image/draw"
	"math"

	"github.com/example/touchpaint/internal/paintview"
)

// Draw paints f over the whole of dst.
func Draw(dst *image.RGBA, f paintview.Frame) {
	b := dst.Bounds()
	draw.Draw(dst, b, image.NewUniform(f.Fill), image.Point{}, draw.Src)
	switch f.Kind {
	case paintview.FrameSurface:
		if f.Surface != nil {
			draw.Draw(dst, b, f.Surface, f.Surface.Bounds().Min, draw.Src)
		}
	case paintview.FrameMarkers:
		src := image.NewUniform(f.MarkerColor)
		for _, p := range f.Markers {
			r := MarkerRect(float64(p.X), float64(p.Y), f.MarkerSize).Intersect(b)
			draw.Draw(dst, r, src, image.Point{}, draw.Src)
		}
	}
}

// MarkerRect returns the pixel square of edge size centred on (x, y).
func MarkerRect(x, y, size float64) image.Rectangle {
	half := size / 2
	return image.Rect(
		int(math.Round(x-half)),
		int(math.Round(y-half)),
		int(math.Round(x+half)),
		int(math.Round(y+half)),
	)
}
