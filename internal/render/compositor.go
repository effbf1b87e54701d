// Package render composites annotation shapes over a base image.
package render

import (
	"image"
	"image/draw"

	"github.com/example/snipmark/internal/shape"
)

// Compositor keeps three layers: the base image, the committed shapes and a
// transient preview. Frames are always painted in that order.
type Compositor struct {
	Palette Palette

	base    *image.RGBA
	shapes  *image.RGBA
	preview *image.RGBA
}

// NewCompositor returns a compositor over base.
func NewCompositor(base image.Image, palette Palette) *Compositor {
	c := &Compositor{Palette: palette}
	c.SetBase(base)
	return c
}

// SetBase replaces the base image wholesale. The shape and preview layers
// follow its size; callers redraw shapes afterwards.
func (c *Compositor) SetBase(img image.Image) {
	c.base = toRGBA(img)
	b := c.base.Bounds()
	if c.shapes == nil || c.shapes.Bounds() != b {
		c.shapes = image.NewRGBA(b)
		c.preview = image.NewRGBA(b)
	}
}

// Base returns the current base image.
func (c *Compositor) Base() *image.RGBA { return c.base }

// Bounds is the canvas size.
func (c *Compositor) Bounds() image.Rectangle { return c.base.Bounds() }

// Redraw clears the shapes layer and repaints every shape in creation order.
func (c *Compositor) Redraw(st *shape.Store) {
	clearLayer(c.shapes)
	for _, s := range st.All() {
		c.Palette.DrawShape(c.shapes, s)
	}
}

// Preview replaces the preview layer with a drawing of s.
func (c *Compositor) Preview(s shape.Shape) {
	clearLayer(c.preview)
	if s != nil {
		c.Palette.DrawShape(c.preview, s)
	}
}

// ClearPreview empties the preview layer.
func (c *Compositor) ClearPreview() {
	clearLayer(c.preview)
}

// Frame returns a new image holding base, shapes and preview merged.
func (c *Compositor) Frame() *image.RGBA {
	b := c.base.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, c.base, b.Min, draw.Src)
	draw.Draw(out, b, c.shapes, b.Min, draw.Over)
	draw.Draw(out, b, c.preview, b.Min, draw.Over)
	return out
}

// Flatten draws every shape of st over a copy of base.
func Flatten(base image.Image, st *shape.Store, palette Palette) *image.RGBA {
	c := NewCompositor(base, palette)
	c.Redraw(st)
	return c.Frame()
}

func clearLayer(img *image.RGBA) {
	clear(img.Pix)
}

// toRGBA returns img as a zero-origin RGBA, copying when needed.
func toRGBA(img image.Image) *image.RGBA {
	if img == nil {
		return image.NewRGBA(image.Rectangle{})
	}
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
