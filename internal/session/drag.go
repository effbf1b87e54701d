package session

import (
	"fmt"
	"image"

	"github.com/example/snipmark/internal/geometry"
	"github.com/example/snipmark/internal/hittest"
	"github.com/example/snipmark/internal/shape"
)

// dragReference is the point of s that follows the cursor when part is
// dragged.
func dragReference(s shape.Shape, part hittest.Part) image.Point {
	switch v := s.(type) {
	case *shape.Rect:
		return v.Rect.Min
	case *shape.Ellipse:
		return v.Rect.Min
	case *shape.TextBox:
		return v.Rect.Min
	case *shape.Note:
		if part == hittest.PartBubble {
			return v.Bubble.Min
		}
		return v.Anchor.Min
	case *shape.ArrowLine:
		switch part {
		case hittest.PartArrowStart:
			return v.Points[0]
		case hittest.PartArrowEnd:
			return v.Points[1]
		}
		return v.Points[0]
	case *shape.PenStroke, *shape.MaskStroke:
		return s.Bounds().Min
	}
	panic(fmt.Sprintf("session: unknown shape %T", s))
}

// dragShape moves the latched shape so its reference point sits at
// p minus the drag offset.
func (s *Session) dragShape(p image.Point) {
	target := s.store.At(s.st.Target.Index)
	if target == nil {
		s.st = idle()
		return
	}
	if a, ok := target.(*shape.ArrowLine); ok && s.st.Target.Endpoint() {
		c := s.canvas()
		i := 0
		if s.st.Target.Part == hittest.PartArrowEnd {
			i = 1
		}
		a.Points[i] = geometry.ClampPoint(p, c.Min, c.Max)
		return
	}
	want := p.Sub(s.st.Offset)
	d := want.Sub(dragReference(target, s.st.Target.Part))
	target.Translate(s.keepInside(target, d))
}

// keepInside trims the translation d so the shape's bounds stay on the
// canvas. Outlined shapes, arrows and notes keep clear of the inset; text
// may touch the edge.
func (s *Session) keepInside(target shape.Shape, d image.Point) image.Point {
	c := s.canvas()
	b := target.Bounds().Add(d)
	lo, pad := s.inset, s.inset+1
	if target.Kind() == shape.KindText {
		lo, pad = 0, 0
	}
	x := geometry.Clamp(b.Min.X, lo, c.Dx()-b.Dx()-pad)
	y := geometry.Clamp(b.Min.Y, lo, c.Dy()-b.Dy()-pad)
	return d.Add(image.Pt(x-b.Min.X, y-b.Min.Y))
}

// CursorAt returns the pointer affordance for a screen position.
func (s *Session) CursorAt(screen image.Point) geometry.Cursor {
	if s.phase != PhaseEditing {
		return geometry.CursorCross
	}
	switch s.st.State {
	case DraggingHandle:
		return s.st.Handle.Cursor()
	case DraggingShape, DraggingWindow:
		return geometry.CursorMove
	}
	p := screen.Sub(s.sel.Rect().Min)
	if hit, ok := hittest.Test(&s.store, p, s.tolerance); ok {
		if hit.Endpoint() {
			return geometry.CursorCross
		}
		return geometry.CursorMove
	}
	switch s.mode {
	case ModeManipulate:
		if h := geometry.HandleAt(s.canvas(), p); h != geometry.HandleNone {
			return h.Cursor()
		}
		if s.dragMode {
			return geometry.CursorOpenHand
		}
	case ModeMask:
		return geometry.CursorDot
	}
	return geometry.CursorDefault
}
