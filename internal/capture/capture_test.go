package capture

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakeBackend struct {
	monitors    []MonitorInfo
	monitorsErr error
}

func (f fakeBackend) ListMonitors() ([]MonitorInfo, error) {
	return f.monitors, f.monitorsErr
}

func (f fakeBackend) CaptureRoot() (*image.RGBA, error) {
	return nil, errors.New("not used")
}

// stubGrabbers replaces both capture paths and records the call order.
func stubGrabbers(t *testing.T, portalErr, x11Err error) (*[]string, *image.RGBA) {
	t.Helper()
	prevPortal, prevX11 := portalScreenshotFn, x11ScreenshotFn
	t.Cleanup(func() { portalScreenshotFn, x11ScreenshotFn = prevPortal, prevX11 })

	var calls []string
	img := image.NewRGBA(image.Rect(0, 0, 300, 100))
	portalScreenshotFn = func(Options) (*image.RGBA, error) {
		calls = append(calls, "portal")
		if portalErr != nil {
			return nil, portalErr
		}
		return img, nil
	}
	x11ScreenshotFn = func(Options) (*image.RGBA, error) {
		calls = append(calls, "x11")
		if x11Err != nil {
			return nil, x11Err
		}
		return img, nil
	}
	return &calls, img
}

func TestAutoPrefersX11OutsideWayland(t *testing.T) {
	t.Setenv("DISPLAY", ":0")
	t.Setenv("WAYLAND_DISPLAY", "")
	t.Setenv("XDG_SESSION_TYPE", "x11")
	calls, want := stubGrabbers(t, nil, nil)

	got, err := Screen(Options{})
	if err != nil || got != want {
		t.Fatalf("Screen = %v, %v", got, err)
	}
	if strings.Join(*calls, ",") != "x11" {
		t.Fatalf("calls = %v", *calls)
	}
}

func TestAutoFallsBackToPortal(t *testing.T) {
	t.Setenv("DISPLAY", ":0")
	t.Setenv("WAYLAND_DISPLAY", "")
	t.Setenv("XDG_SESSION_TYPE", "x11")
	calls, _ := stubGrabbers(t, nil, errors.New("BadMatch"))

	if _, err := Screen(Options{}); err != nil {
		t.Fatalf("Screen: %v", err)
	}
	if strings.Join(*calls, ",") != "x11,portal" {
		t.Fatalf("calls = %v", *calls)
	}
}

func TestAllBackendsFailing(t *testing.T) {
	t.Setenv("DISPLAY", ":0")
	x11Err := errors.New("BadMatch")
	portalErr := errors.New("no portal")
	stubGrabbers(t, portalErr, x11Err)

	_, err := Screen(Options{})
	if !errors.Is(err, x11Err) || !errors.Is(err, portalErr) {
		t.Fatalf("error %v does not wrap both causes", err)
	}
	if !strings.Contains(err.Error(), "x11 capture") {
		t.Fatalf("missing backend context: %v", err)
	}
}

func TestExplicitMethodSkipsFallback(t *testing.T) {
	calls, _ := stubGrabbers(t, errors.New("denied"), nil)
	if _, err := Screen(Options{Method: MethodPortal}); err == nil {
		t.Fatal("expected portal error")
	}
	if strings.Join(*calls, ",") != "portal" {
		t.Fatalf("calls = %v", *calls)
	}
}

func TestNoDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")
	calls, _ := stubGrabbers(t, nil, nil)
	if _, err := Screen(Options{}); !errors.Is(err, ErrNoDisplay) {
		t.Fatalf("err = %v, want ErrNoDisplay", err)
	}
	if len(*calls) != 0 {
		t.Fatalf("backends called without a display: %v", *calls)
	}
}

func TestScreenCropsToMonitor(t *testing.T) {
	_, img := stubGrabbers(t, nil, nil)
	img.Set(250, 50, color.RGBA{1, 2, 3, 255})
	prev := backend
	backend = fakeBackend{monitors: []MonitorInfo{
		{Index: 0, Name: "eDP-1", Rect: image.Rect(0, 0, 200, 100)},
		{Index: 1, Name: "HDMI-1", Rect: image.Rect(200, 0, 300, 100), Primary: true},
	}}
	t.Cleanup(func() { backend = prev })

	got, err := Screen(Options{Method: MethodX11, Display: "hdmi"})
	if err != nil {
		t.Fatalf("Screen: %v", err)
	}
	if got.Bounds() != image.Rect(0, 0, 100, 100) {
		t.Fatalf("bounds = %v", got.Bounds())
	}
	if got.RGBAAt(50, 50) != (color.RGBA{1, 2, 3, 255}) {
		t.Fatalf("crop offset wrong: %v", got.RGBAAt(50, 50))
	}
}

func TestFindMonitor(t *testing.T) {
	mons := []MonitorInfo{
		{Index: 0, Name: "eDP-1"},
		{Index: 1, Name: "HDMI-1", Primary: true},
	}
	cases := map[string]int{"": 0, "primary": 1, "#1": 1, "0": 0, "edp": 0}
	for sel, want := range cases {
		got, err := FindMonitor(mons, sel)
		if err != nil || got.Index != want {
			t.Errorf("FindMonitor(%q) = %d, %v; want %d", sel, got.Index, err, want)
		}
	}
	if _, err := FindMonitor(mons, "5"); err == nil {
		t.Error("out of range index accepted")
	}
	if _, err := FindMonitor(nil, ""); !errors.Is(err, errNoMonitors) {
		t.Errorf("empty list: %v", err)
	}
}

func TestParseMethod(t *testing.T) {
	for in, want := range map[string]Method{"": MethodAuto, "capture": MethodAuto, "Portal": MethodPortal, "x11": MethodX11} {
		if got, err := ParseMethod(in); err != nil || got != want {
			t.Errorf("ParseMethod(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMethod("vnc"); err == nil {
		t.Error("unknown method accepted")
	}
}

func TestFromFileNormalizesOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	src.Set(3, 2, color.RGBA{9, 8, 7, 255})
	path := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	got, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if got.Bounds() != image.Rect(0, 0, 4, 3) || got.RGBAAt(3, 2) != (color.RGBA{9, 8, 7, 255}) {
		t.Fatalf("image = %v %v", got.Bounds(), got.RGBAAt(3, 2))
	}
	if _, err := FromFile(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatal("missing file decoded")
	}
}
