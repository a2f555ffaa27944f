// Package clipboard publishes canvas snapshots to the system clipboard as
// PNG data.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
)

// ErrNoDisplay is returned on unix when neither X11 nor Wayland is reachable.
var ErrNoDisplay = errors.New("clipboard needs DISPLAY or WAYLAND_DISPLAY")

// ErrEmptyImage is returned for images with no pixels.
var ErrEmptyImage = errors.New("nothing to copy: empty image")

// snapshot is an encoded image ready to hand to the clipboard.
type snapshot struct {
	png  []byte
	size image.Point
}

// WriteImage publishes img to the clipboard as image/png. On X11 without
// cgo the process keeps serving the data until another client takes the
// selection.
func WriteImage(img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		return ErrEmptyImage
	}
	snap, err := encode(img)
	if err != nil {
		return err
	}
	return publish(snap)
}

func encode(img image.Image) (snapshot, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return snapshot{}, fmt.Errorf("encode png: %w", err)
	}
	return snapshot{png: buf.Bytes(), size: img.Bounds().Size()}, nil
}

func displayAvailable() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}
