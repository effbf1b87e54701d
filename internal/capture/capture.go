// Package capture produces the full-screen image a session annotates.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Method picks the capture backend.
type Method int

const (
	// MethodAuto tries the portal first on Wayland and X11 first elsewhere.
	MethodAuto Method = iota
	MethodPortal
	MethodX11
)

func (m Method) String() string {
	switch m {
	case MethodPortal:
		return "portal"
	case MethodX11:
		return "x11"
	}
	return "capture"
}

// ParseMethod accepts "capture" (or "auto", or empty), "portal" and "x11".
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "capture", "auto":
		return MethodAuto, nil
	case "portal":
		return MethodPortal, nil
	case "x11":
		return MethodX11, nil
	}
	return MethodAuto, fmt.Errorf("unknown capture mode %q", s)
}

// Options controls Screen.
type Options struct {
	Method Method
	// Display crops the capture to one monitor: an index, "primary", or
	// part of the output name.
	Display       string
	IncludeCursor bool
}

// ErrNoDisplay means there is no X11 or Wayland session to capture.
var ErrNoDisplay = errors.New("capture requires DISPLAY or WAYLAND_DISPLAY")

var (
	portalScreenshotFn = portalScreenshot
	x11ScreenshotFn    = func(Options) (*image.RGBA, error) { return backend.CaptureRoot() }
)

// Screen captures the whole desktop, or one monitor when Display is set.
func Screen(opts Options) (*image.RGBA, error) {
	img, err := grab(opts)
	if err != nil {
		return nil, err
	}
	if opts.Display == "" {
		return img, nil
	}
	monitors, err := ListMonitors()
	if err != nil {
		return nil, fmt.Errorf("capture display %q: %w", opts.Display, err)
	}
	mon, err := FindMonitor(monitors, opts.Display)
	if err != nil {
		return nil, err
	}
	return cropToRect(img, mon.Rect)
}

type grabber struct {
	name string
	fn   func(Options) (*image.RGBA, error)
}

func grab(opts Options) (*image.RGBA, error) {
	portal := grabber{"portal", portalScreenshotFn}
	x11 := grabber{"x11", x11ScreenshotFn}

	var order []grabber
	switch opts.Method {
	case MethodPortal:
		order = []grabber{portal}
	case MethodX11:
		order = []grabber{x11}
	default:
		if !hasDisplay() {
			return nil, ErrNoDisplay
		}
		order = []grabber{x11, portal}
		if runningOnWayland() {
			order = []grabber{portal, x11}
		}
	}

	var errs []error
	for _, g := range order {
		img, err := g.fn(opts)
		if err == nil {
			return img, nil
		}
		errs = append(errs, fmt.Errorf("%s capture: %w", g.name, err))
	}
	return nil, errors.Join(errs...)
}

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// FromFile decodes an image file (PNG, JPEG, BMP, TIFF or WebP) for
// annotation.
func FromFile(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return toRGBA(img), nil
}

func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}
