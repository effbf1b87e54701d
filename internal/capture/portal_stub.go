//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import "image"

func portalScreenshot(Options) (*image.RGBA, error) { return nil, errUnsupported }
