package geometry

import "image"

// Handle identifies one of the eight resize handles of a rectangle.
type Handle int

const (
	HandleNone Handle = iota
	HandleTopLeft
	HandleTop
	HandleTopRight
	HandleRight
	HandleBottomRight
	HandleBottom
	HandleBottomLeft
	HandleLeft
)

// Handles lists every handle in hit-test order.
var Handles = [8]Handle{
	HandleTopLeft, HandleTop, HandleTopRight, HandleRight,
	HandleBottomRight, HandleBottom, HandleBottomLeft, HandleLeft,
}

func (h Handle) String() string {
	switch h {
	case HandleTopLeft:
		return "top-left"
	case HandleTop:
		return "top"
	case HandleTopRight:
		return "top-right"
	case HandleRight:
		return "right"
	case HandleBottomRight:
		return "bottom-right"
	case HandleBottom:
		return "bottom"
	case HandleBottomLeft:
		return "bottom-left"
	case HandleLeft:
		return "left"
	}
	return "none"
}

// Cursor returns the resize cursor matching the handle orientation.
func (h Handle) Cursor() Cursor {
	switch h {
	case HandleTopLeft, HandleBottomRight:
		return CursorResizeNWSE
	case HandleTopRight, HandleBottomLeft:
		return CursorResizeNESW
	case HandleTop, HandleBottom:
		return CursorResizeNS
	case HandleLeft, HandleRight:
		return CursorResizeEW
	}
	return CursorDefault
}

// HandleSize scales handles with the selection: a twentieth of the smaller
// side, kept within [4,16].
func HandleSize(w, h int) int {
	return Clamp(min(w, h)/20, 4, 16)
}

// HandleRects returns the handle squares for r ordered like Handles. Corner
// handles sit flush inside the corners, edge handles are centred on the edge.
func HandleRects(r image.Rectangle) [8]image.Rectangle {
	s := HandleSize(r.Dx(), r.Dy())
	half := s / 2
	cx := r.Min.X + r.Dx()/2 - half
	cy := r.Min.Y + r.Dy()/2 - half
	sq := func(x, y int) image.Rectangle { return image.Rect(x, y, x+s, y+s) }
	return [8]image.Rectangle{
		sq(r.Min.X, r.Min.Y),     // tl
		sq(cx, r.Min.Y),          // t
		sq(r.Max.X-s, r.Min.Y),   // tr
		sq(r.Max.X-s, cy),        // r
		sq(r.Max.X-s, r.Max.Y-s), // br
		sq(cx, r.Max.Y-s),        // b
		sq(r.Min.X, r.Max.Y-s),   // bl
		sq(r.Min.X, cy),          // l
	}
}

// HandleAt returns the handle of r under p, or HandleNone.
func HandleAt(r image.Rectangle, p image.Point) Handle {
	for i, hr := range HandleRects(r) {
		if p.In(hr) {
			return Handles[i]
		}
	}
	return HandleNone
}
