// Package hittest resolves a canvas point to the topmost shape it strikes.
package hittest

import (
	"fmt"
	"image"

	"github.com/example/snipmark/internal/geometry"
	"github.com/example/snipmark/internal/shape"
)

// DefaultTolerance is the half-width of the border band, arrow band and
// arrow endpoint hotspots.
const DefaultTolerance = 10

// Part tells which region of a shape was struck.
type Part int

const (
	// PartBody is a hit that translates the whole shape.
	PartBody Part = iota
	// PartBubble is a hit inside a note's bubble.
	PartBubble
	// PartArrowStart and PartArrowEnd are hits on an arrow endpoint
	// hotspot; dragging moves only that endpoint.
	PartArrowStart
	PartArrowEnd
)

func (p Part) String() string {
	switch p {
	case PartBody:
		return "body"
	case PartBubble:
		return "bubble"
	case PartArrowStart:
		return "arrow-start"
	case PartArrowEnd:
		return "arrow-end"
	}
	return fmt.Sprintf("Part(%d)", int(p))
}

// Hit identifies a struck shape by its store index.
type Hit struct {
	Index int
	Part  Part
}

// Endpoint reports whether the hit latched a single arrow endpoint.
func (h Hit) Endpoint() bool {
	return h.Part == PartArrowStart || h.Part == PartArrowEnd
}

// Test walks the store topmost first and returns the first shape whose hit
// region contains p.
func Test(st *shape.Store, p image.Point, tol int) (Hit, bool) {
	for i, s := range st.Backward() {
		if part, ok := TestShape(s, p, tol); ok {
			return Hit{Index: i, Part: part}, true
		}
	}
	return Hit{Index: -1}, false
}

// TestShape applies the per-kind hit rule to a single shape.
func TestShape(s shape.Shape, p image.Point, tol int) (Part, bool) {
	switch v := s.(type) {
	case *shape.Rect:
		return PartBody, geometry.OnRectBorder(v.Rect, p, tol)
	case *shape.Ellipse:
		return PartBody, geometry.OnEllipseBorder(v.Rect, p, tol)
	case *shape.TextBox:
		return PartBody, p.In(v.Rect)
	case *shape.Note:
		if p.In(v.Anchor) {
			return PartBody, true
		}
		if !v.Bubble.Empty() && p.In(v.Bubble) {
			return PartBubble, true
		}
		return PartBody, false
	case *shape.PenStroke, *shape.MaskStroke:
		return PartBody, false
	case *shape.ArrowLine:
		return testArrow(v, p, tol)
	}
	panic(fmt.Sprintf("hittest: unknown shape %T", s))
}

func testArrow(a *shape.ArrowLine, p image.Point, tol int) (Part, bool) {
	if !a.Complete() {
		return PartBody, false
	}
	start, end := a.Points[0], a.Points[1]
	if p.In(geometry.Hotspot(start, tol)) {
		return PartArrowStart, true
	}
	if p.In(geometry.Hotspot(end, tol)) {
		return PartArrowEnd, true
	}
	band := geometry.SegmentBand(start, end, float64(tol))
	return PartBody, geometry.InPolygon(band[:], geometry.Vec(p))
}
