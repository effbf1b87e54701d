package theme

import (
	"image/color"
)

// Theme is the palette for the annotation window chrome and note badges.
type Theme struct {
	Name string

	// Selection chrome
	SelectionBorder color.RGBA
	Handle          color.RGBA
	Overlay         color.RGBA // dims the screen outside the selection

	// Size label shown while choosing a region
	SizeLabel           color.RGBA
	SizeLabelBackground color.RGBA

	// Status strip along the bottom edge
	Toolbar       color.RGBA
	ToolbarBorder color.RGBA
	ToolbarText   color.RGBA

	// Annotation colours that are not user-picked
	NoteBadge    color.RGBA
	NoteNumber   color.RGBA
	BubbleFill   color.RGBA
	BubbleBorder color.RGBA
	Mask         color.RGBA
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:                "default",
		SelectionBorder:     color.RGBA{0, 105, 148, 255},
		Handle:              color.RGBA{0, 0, 255, 255},
		Overlay:             color.RGBA{0, 0, 0, 100},
		SizeLabel:           color.RGBA{0, 0, 0, 255},
		SizeLabelBackground: color.RGBA{255, 255, 255, 200},
		Toolbar:             color.RGBA{0xF0, 0xF0, 0xF0, 255},
		ToolbarBorder:       color.RGBA{0xD0, 0xD0, 0xD0, 255},
		ToolbarText:         color.RGBA{0, 0, 0, 255},
		NoteBadge:           color.RGBA{255, 0, 0, 255},
		NoteNumber:          color.RGBA{255, 255, 255, 255},
		BubbleFill:          color.RGBA{200, 200, 200, 128},
		BubbleBorder:        color.RGBA{0, 0, 0, 255},
		Mask:                color.RGBA{160, 160, 164, 255},
	}
}
