package geometry

// Cursor is the pointer affordance a host should show.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorMove
	CursorCross
	CursorOpenHand
	CursorResizeNWSE
	CursorResizeNESW
	CursorResizeNS
	CursorResizeEW
	// CursorDot is the brush outline shown while masking.
	CursorDot
)

var cursorNames = [...]string{
	CursorDefault:    "default",
	CursorMove:       "move",
	CursorCross:      "crosshair",
	CursorOpenHand:   "grab",
	CursorResizeNWSE: "nwse-resize",
	CursorResizeNESW: "nesw-resize",
	CursorResizeNS:   "ns-resize",
	CursorResizeEW:   "ew-resize",
	CursorDot:        "dot",
}

func (c Cursor) String() string {
	if c < 0 || int(c) >= len(cursorNames) {
		return "default"
	}
	return cursorNames[c]
}
