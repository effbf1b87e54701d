package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/example/snipmark/internal/shape"
)

var (
	red  = color.RGBA{255, 0, 0, 255}
	blue = color.RGBA{0, 0, 255, 255}
	gray = color.RGBA{128, 128, 128, 255}
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func sampleStore() *shape.Store {
	var st shape.Store
	st.Append(&shape.Rect{Rect: image.Rect(10, 10, 60, 60), Width: 2, Color: red})
	st.Append(&shape.Ellipse{Rect: image.Rect(30, 30, 90, 70), Width: 3, Color: blue})
	st.Append(&shape.TextBox{Rect: image.Rect(5, 80, 120, 100), Body: "hello world", FontSize: 14, Color: red})
	anchor := image.Rect(100, 10, 100+shape.NoteSize, 10+shape.NoteSize)
	st.Append(&shape.Note{
		Anchor: anchor, Number: 3, Body: "note", FontSize: 14, Color: red,
		Bubble:      shape.BubbleFor(anchor, image.Pt(50, 30)),
		BubbleColor: color.RGBA{200, 200, 200, 128}, BubbleBorder: color.RGBA{A: 255},
	})
	st.Append(&shape.PenStroke{Stroke: shape.Stroke{Points: []image.Point{{0, 0}, {40, 20}, {60, 5}}, Width: 2, Color: blue}})
	st.Append(&shape.ArrowLine{Points: []image.Point{{20, 110}, {150, 110}}, Width: 2, Color: red})
	return &st
}

func TestFrameIsIdempotent(t *testing.T) {
	c := NewCompositor(solid(200, 140, color.RGBA{240, 240, 240, 255}), DefaultPalette())
	c.Redraw(sampleStore())
	c.Preview(&shape.Rect{Rect: image.Rect(1, 1, 30, 30), Width: 1, Color: blue})
	a := c.Frame()
	b := c.Frame()
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("two frames without state change differ")
	}
}

func TestPreviewPaintsOverShapes(t *testing.T) {
	c := NewCompositor(solid(100, 100, color.RGBA{255, 255, 255, 255}), DefaultPalette())
	var st shape.Store
	st.Append(&shape.Rect{Rect: image.Rect(10, 10, 50, 50), Width: 4, Color: red})
	c.Redraw(&st)
	if got := c.Frame().RGBAAt(10, 30); got != red {
		t.Fatalf("rectangle edge pixel = %+v, want red", got)
	}
	c.Preview(&shape.Rect{Rect: image.Rect(10, 10, 50, 50), Width: 4, Color: blue})
	if got := c.Frame().RGBAAt(10, 30); got != blue {
		t.Fatalf("preview edge pixel = %+v, want blue", got)
	}
	c.ClearPreview()
	if got := c.Frame().RGBAAt(10, 30); got != red {
		t.Fatalf("edge pixel after clearing preview = %+v, want red", got)
	}
}

func TestRectangleInteriorUnfilled(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	var st shape.Store
	st.Append(&shape.Rect{Rect: image.Rect(10, 10, 90, 90), Width: 2, Color: red})
	out := Flatten(solid(100, 100, white), &st, DefaultPalette())
	if got := out.RGBAAt(50, 50); got != white {
		t.Fatalf("interior pixel = %+v, want base colour", got)
	}
}

func TestRedrawDropsUndoneShapes(t *testing.T) {
	base := solid(80, 80, color.RGBA{10, 20, 30, 255})
	c := NewCompositor(base, DefaultPalette())
	var st shape.Store
	st.Append(&shape.Ellipse{Rect: image.Rect(5, 5, 70, 70), Width: 5, Color: red})
	c.Redraw(&st)
	st.PopLast()
	c.Redraw(&st)
	if !bytes.Equal(c.Frame().Pix, base.Pix) {
		t.Fatal("frame after undo still shows the ellipse")
	}
}

func TestMaskCoversContent(t *testing.T) {
	base := solid(60, 60, color.RGBA{0, 200, 0, 255})
	var st shape.Store
	st.Append(&shape.MaskStroke{Stroke: shape.Stroke{Points: []image.Point{{5, 30}, {55, 30}}, Width: 10, Color: gray}})
	out := Flatten(base, &st, DefaultPalette())
	if got := out.RGBAAt(30, 30); got != gray {
		t.Fatalf("masked pixel = %+v, want %+v", got, gray)
	}
	if got := out.RGBAAt(30, 10); got != base.RGBAAt(30, 10) {
		t.Fatalf("pixel away from mask changed: %+v", got)
	}
}

func TestSetBaseResizesLayers(t *testing.T) {
	c := NewCompositor(solid(50, 50, red), DefaultPalette())
	c.SetBase(solid(80, 30, blue))
	if c.Bounds() != image.Rect(0, 0, 80, 30) {
		t.Fatalf("bounds = %v", c.Bounds())
	}
	if got := c.Frame().Bounds(); got != image.Rect(0, 0, 80, 30) {
		t.Fatalf("frame bounds = %v", got)
	}
}

func TestSetBaseNormalizesOrigin(t *testing.T) {
	full := solid(100, 100, blue)
	sub := full.SubImage(image.Rect(20, 20, 60, 50))
	c := NewCompositor(sub, DefaultPalette())
	if c.Bounds() != image.Rect(0, 0, 40, 30) {
		t.Fatalf("bounds = %v", c.Bounds())
	}
}

func TestNoteSize(t *testing.T) {
	var f Fonts
	one := f.NoteSize("abc", 16)
	two := f.NoteSize("abc\nabc", 16)
	if one.X <= bubblePadX {
		t.Fatalf("note width %d has no room for text", one.X)
	}
	if one.X != two.X {
		t.Fatalf("widths differ for equal lines: %d vs %d", one.X, two.X)
	}
	lh := one.Y - bubblePadY
	if two.Y != 2*lh+bubblePadY {
		t.Fatalf("two-line height = %d, want %d", two.Y, 2*lh+bubblePadY)
	}
}

func TestTextSizeWraps(t *testing.T) {
	var f Fonts
	wide := f.TextSize("one two three four", 16, 1000)
	narrow := f.TextSize("one two three four", 16, 60)
	if narrow.Y <= wide.Y {
		t.Fatalf("narrow layout height %d not taller than %d", narrow.Y, wide.Y)
	}
	if f.TextSize("", 16, 100) != (image.Point{}) {
		t.Fatal("empty text has a size")
	}
}
