// Package clipboard places PNG images on the desktop clipboard and reads
// them back.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
)

// ErrNoDisplay means neither X11 nor Wayland is reachable.
var ErrNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")

// ErrEmpty means the clipboard holds no image.
var ErrEmpty = errors.New("clipboard does not contain image data")

// System is the desktop clipboard.
type System struct{}

func (System) WriteImage(img image.Image) error { return WriteImage(img) }
func (System) ReadImage() (image.Image, error)  { return ReadImage() }

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func decodePNG(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode clipboard png: %w", err)
	}
	return img, nil
}
