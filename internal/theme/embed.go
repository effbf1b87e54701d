package theme

import "embed"

// Embedded holds the themes shipped with the binary.
//
//go:embed defaults/*.theme
var Embedded embed.FS
