package theme

import (
	"image/color"

	"github.com/example/touchpaint/internal/paintview"
	"github.com/example/touchpaint/internal/render"
)

// Theme defines the colours used by the paint view and its overlays.
type Theme struct {
	Name string

	// Canvas
	Background color.RGBA // Cleared canvas and idle fill colour
	Foreground color.RGBA // Fill mode colour while a finger is down
	Brush      color.RGBA
	Marker     color.RGBA // Follow mode boxes

	// Toast
	ToastText       color.RGBA
	ToastBackground color.RGBA
	ToastBorder     color.RGBA
}

// Default returns the hardcoded white on black theme (fallback).
func Default() *Theme {
	p := paintview.DefaultPalette()
	tc := render.DefaultToastColors()
	return &Theme{
		Name:            "Default",
		Background:      p.Background,
		Foreground:      p.Foreground,
		Brush:           p.Brush,
		Marker:          p.Marker,
		ToastText:       tc.Text,
		ToastBackground: tc.Background,
		ToastBorder:     tc.Border,
	}
}

// Palette returns the canvas colours.
func (t *Theme) Palette() paintview.Palette {
	return paintview.Palette{
		Background: t.Background,
		Foreground: t.Foreground,
		Brush:      t.Brush,
		Marker:     t.Marker,
	}
}

// ToastColors returns the overlay colours.
func (t *Theme) ToastColors() render.ToastColors {
	return render.ToastColors{
		Text:       t.ToastText,
		Background: t.ToastBackground,
		Border:     t.ToastBorder,
	}
}
