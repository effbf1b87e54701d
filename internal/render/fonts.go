package render

import (
	"image"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// NoteFontSize is the fixed size of the numeral drawn in a note badge.
const NoteFontSize = 16

// Padding added around note bubble text.
const (
	bubblePadX = 20
	bubblePadY = 10
)

var (
	regular *truetype.Font
	faces   sync.Map // int -> font.Face
)

func init() {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		slog.Error("parse font", "err", err)
		panic(err)
	}
	regular = f
}

// Face returns the regular face at size pixels, cached per size.
func Face(size int) font.Face {
	if size <= 0 {
		size = NoteFontSize
	}
	if f, ok := faces.Load(size); ok {
		return f.(font.Face)
	}
	face := truetype.NewFace(regular, &truetype.Options{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	actual, _ := faces.LoadOrStore(size, face)
	return actual.(font.Face)
}

// Fonts measures text the same way the compositor lays it out.
type Fonts struct{}

func measureContext(size int) *gg.Context {
	dc := gg.NewContext(1, 1)
	dc.SetFontFace(Face(size))
	return dc
}

// TextSize returns the size of body word-wrapped to maxWidth pixels.
func (Fonts) TextSize(body string, size, maxWidth int) image.Point {
	if body == "" {
		return image.Point{}
	}
	dc := measureContext(size)
	if maxWidth <= 0 {
		maxWidth = 1
	}
	lines := dc.WordWrap(body, float64(maxWidth))
	w := 0.0
	for _, l := range lines {
		lw, _ := dc.MeasureString(l)
		w = math.Max(w, lw)
	}
	h := float64(len(lines)) * dc.FontHeight()
	return image.Pt(int(math.Ceil(w)), int(math.Ceil(h)))
}

// NoteSize returns the bubble size for a note body: the widest line plus
// horizontal padding by the line height times the line count plus vertical
// padding.
func (Fonts) NoteSize(body string, size int) image.Point {
	dc := measureContext(size)
	lines := strings.Split(body, "\n")
	w := 0.0
	for _, l := range lines {
		lw, _ := dc.MeasureString(l)
		w = math.Max(w, lw)
	}
	lh := int(math.Ceil(dc.FontHeight()))
	return image.Pt(int(math.Ceil(w))+bubblePadX, lh*len(lines)+bubblePadY)
}
