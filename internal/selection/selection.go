// Package selection tracks the crop rectangle chosen on the captured screen.
package selection

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/example/snipmark/internal/geometry"
)

// Engine owns the two corners of the crop rectangle in screen coordinates.
// Every mutation keeps both corners inside the screen.
type Engine struct {
	source *image.RGBA
	screen image.Rectangle

	start, end image.Point
	size       image.Point
}

// New returns an engine selecting from screen. The image is used as the
// source for every crop and is never modified.
func New(screen image.Image) *Engine {
	b := screen.Bounds()
	src, ok := screen.(*image.RGBA)
	if !ok || b.Min != (image.Point{}) {
		src = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(src, src.Bounds(), screen, b.Min, draw.Src)
	}
	return &Engine{source: src, screen: src.Bounds()}
}

// Screen is the full capture the selection is cut from.
func (e *Engine) Screen() *image.RGBA { return e.source }

// Begin starts a rubber-band selection at p.
func (e *Engine) Begin(p image.Point) {
	e.start = e.clampScreen(p)
	e.end = e.start
}

// Extend moves the free corner of a rubber-band selection.
func (e *Engine) Extend(p image.Point) {
	e.end = e.clampScreen(p)
}

// SetRect replaces the selection outright.
func (e *Engine) SetRect(r image.Rectangle) {
	r = r.Canon().Intersect(e.screen)
	e.start, e.end = r.Min, r.Max
	e.size = r.Size()
}

// Rect returns the normalized selection.
func (e *Engine) Rect() image.Rectangle {
	return image.Rectangle{Min: e.start, Max: e.end}.Canon()
}

// Crop re-samples the selection from the original capture.
func (e *Engine) Crop() *image.RGBA {
	r := e.Rect()
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), e.source, r.Min, draw.Src)
	return out
}

// Resize drags handle h to p keeping the opposite corner or edge fixed.
// The moving coordinate is clamped to the screen first and then against the
// fixed coordinate, stopping one pixel short of it so the rectangle never
// inverts or collapses.
func (e *Engine) Resize(h geometry.Handle, p image.Point) {
	p = e.clampScreen(p)
	switch h {
	case geometry.HandleTopLeft:
		e.start.X = min(p.X, e.end.X-1)
		e.start.Y = min(p.Y, e.end.Y-1)
	case geometry.HandleTop:
		e.start.Y = min(p.Y, e.end.Y-1)
	case geometry.HandleTopRight:
		e.start.Y = min(p.Y, e.end.Y-1)
		e.end.X = max(p.X, e.start.X+1)
	case geometry.HandleRight:
		e.end.X = max(p.X, e.start.X+1)
	case geometry.HandleBottomRight:
		e.end.X = max(p.X, e.start.X+1)
		e.end.Y = max(p.Y, e.start.Y+1)
	case geometry.HandleBottom:
		e.end.Y = max(p.Y, e.start.Y+1)
	case geometry.HandleBottomLeft:
		e.start.X = min(p.X, e.end.X-1)
		e.end.Y = max(p.Y, e.start.Y+1)
	case geometry.HandleLeft:
		e.start.X = min(p.X, e.end.X-1)
	}
}

// MoveTo places the selection with its size fixed at the last Reset. A
// position that would leave the screen is pulled back so the rectangle
// rests against the edge.
func (e *Engine) MoveTo(topLeft image.Point) image.Rectangle {
	size := e.size
	topLeft.X = geometry.Clamp(topLeft.X, 0, e.screen.Dx()-size.X)
	topLeft.Y = geometry.Clamp(topLeft.Y, 0, e.screen.Dy()-size.Y)
	e.start = topLeft
	e.end = topLeft.Add(size)
	return e.Rect()
}

// Reset ends a resize or rubber-band drag. The corners are normalized, the
// size used by MoveTo is captured, and the new crop is returned.
func (e *Engine) Reset() (image.Rectangle, *image.RGBA) {
	r := e.Rect()
	e.start, e.end = r.Min, r.Max
	e.size = r.Size()
	return r, e.Crop()
}

// SizeText labels the selection as "<w>x<h>".
func (e *Engine) SizeText() string {
	r := e.Rect()
	return fmt.Sprintf("%dx%d", r.Dx(), r.Dy())
}

func (e *Engine) clampScreen(p image.Point) image.Point {
	return geometry.ClampPoint(p, e.screen.Min, e.screen.Max)
}
