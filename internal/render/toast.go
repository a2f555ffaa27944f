package render

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ToastDuration is how long a toast stays up.
const ToastDuration = 2 * time.Second

const (
	toastPad    = 12
	toastMargin = 48
	toastBorder = 2
)

var toastFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	toastFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 24, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// ToastColors are the overlay colours.
type ToastColors struct {
	Text       color.RGBA
	Background color.RGBA
	Border     color.RGBA
}

// DefaultToastColors is dark text on a translucent light box.
func DefaultToastColors() ToastColors {
	return ToastColors{
		Text:       color.RGBA{0, 0, 0, 255},
		Background: color.RGBA{240, 240, 240, 230},
		Border:     color.RGBA{0, 0, 0, 255},
	}
}

// Toast is a short lived message overlay. Showing a new message replaces
// the current one and restarts its timer.
type Toast struct {
	text  string
	until time.Time
}

// Show displays text until now+ToastDuration.
func (t *Toast) Show(text string, now time.Time) {
	t.text = text
	t.until = now.Add(ToastDuration)
}

// Hide drops the current message.
func (t *Toast) Hide() { t.text = "" }

// Active returns the message visible at now.
func (t *Toast) Active(now time.Time) (string, bool) {
	if t.text == "" || !now.Before(t.until) {
		return "", false
	}
	return t.text, true
}

// Draw paints the toast onto dst if it is visible at now.
func (t *Toast) Draw(dst *image.RGBA, now time.Time, cols ToastColors) bool {
	msg, ok := t.Active(now)
	if !ok {
		return false
	}
	DrawToast(dst, msg, cols)
	return true
}

// ToastRect returns the box a message occupies, centred horizontally near
// the bottom of bounds.
func ToastRect(bounds image.Rectangle, msg string) image.Rectangle {
	d := &font.Drawer{Face: toastFace}
	w := d.MeasureString(msg).Ceil()
	m := toastFace.Metrics()
	h := m.Ascent.Ceil() + m.Descent.Ceil()
	x := bounds.Min.X + (bounds.Dx()-w)/2
	y := bounds.Max.Y - toastMargin - h
	if y < bounds.Min.Y+toastPad {
		y = bounds.Min.Y + toastPad
	}
	return image.Rect(x-toastPad, y-toastPad, x+w+toastPad, y+h+toastPad)
}

// DrawToast paints msg in a bordered, shadowed box.
func DrawToast(dst *image.RGBA, msg string, cols ToastColors) {
	rect := ToastRect(dst.Bounds(), msg)
	DrawShadow(dst, rect, DefaultShadowOptions())
	draw.Draw(dst, rect, image.NewUniform(cols.Background), image.Point{}, draw.Over)
	drawBorder(dst, rect, cols.Border, toastBorder)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(cols.Text), Face: toastFace}
	d.Dot = fixed.P(rect.Min.X+toastPad, rect.Min.Y+toastPad+toastFace.Metrics().Ascent.Ceil())
	d.DrawString(msg)
}

func drawBorder(dst *image.RGBA, r image.Rectangle, col color.Color, thick int) {
	src := image.NewUniform(col)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thick),
		image.Rect(r.Min.X, r.Max.Y-thick, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+thick, r.Max.Y),
		image.Rect(r.Max.X-thick, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(dst.Bounds()), src, image.Point{}, draw.Src)
	}
}
