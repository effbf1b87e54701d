//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"errors"
	"image"
)

var errUnsupported = errors.New("screen capture is not supported on this platform")

type unsupportedBackend struct{}

func newBackend() platformBackend { return unsupportedBackend{} }

func (unsupportedBackend) ListMonitors() ([]MonitorInfo, error) { return nil, errUnsupported }

func (unsupportedBackend) CaptureRoot() (*image.RGBA, error) { return nil, errUnsupported }

func runningOnWayland() bool { return false }
