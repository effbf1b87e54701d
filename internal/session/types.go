package session

import (
	"fmt"
	"image"
	"image/color"

	"github.com/example/snipmark/internal/geometry"
	"github.com/example/snipmark/internal/hittest"
	"github.com/example/snipmark/internal/shape"
)

// Mode is the active tool.
type Mode int

const (
	ModeManipulate Mode = iota
	ModeRectangle
	ModeEllipse
	ModeText
	ModePen
	ModeMask
	ModeNote
	ModeArrow
)

var modeNames = [...]string{
	ModeManipulate: "manipulate",
	ModeRectangle:  "rectangle",
	ModeEllipse:    "ellipse",
	ModeText:       "text",
	ModePen:        "pen",
	ModeMask:       "mask",
	ModeNote:       "note",
	ModeArrow:      "arrow",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode maps a tool name to its Mode.
func ParseMode(name string) (Mode, error) {
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return ModeManipulate, fmt.Errorf("unknown mode %q", name)
}

// State is the interaction currently in progress.
type State int

const (
	Idle State = iota
	Drawing
	DraggingShape
	DraggingHandle
	DraggingWindow
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	case DraggingShape:
		return "dragging-shape"
	case DraggingHandle:
		return "dragging-handle"
	case DraggingWindow:
		return "dragging-window"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Phase separates choosing the region from annotating it.
type Phase int

const (
	PhaseSelecting Phase = iota
	PhaseEditing
)

// InteractionState is all mutable context of the current gesture. It is
// replaced as a whole on every transition.
type InteractionState struct {
	State State
	// Handle is the resize handle held in DraggingHandle.
	Handle geometry.Handle
	// Target is the latched store entry: the dragged shape or the stroke
	// being drawn. Index is -1 when nothing is latched.
	Target hittest.Hit
	// Offset is the cursor minus the dragged shape's reference point.
	Offset image.Point
	// Last is the previous cursor position in screen coordinates.
	Last image.Point
	// Origin is the selection when a handle drag began.
	Origin image.Rectangle
	// Start is where a draw began, in canvas coordinates.
	Start image.Point
	// Draft is a rectangle, ellipse or arrow that is not yet committed.
	Draft shape.Shape
}

func idle() InteractionState {
	return InteractionState{Target: hittest.Hit{Index: -1}}
}

// EventKind distinguishes pointer events.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	// PointerDoubleClick replaces the second press of a double click. When
	// there is no text or note to edit it acts as PointerDown.
	PointerDoubleClick
)

// Button is the mouse button of a pointer event.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
)

// PointerEvent is a normalized pointer event in screen coordinates.
type PointerEvent struct {
	Kind   EventKind
	Button Button
	Pos    image.Point
	Shift  bool
}

// Key names the non-character keys the session reacts to.
type Key int

const (
	KeyNone Key = iota
	KeyEnter
	KeyEscape
)

// KeyEvent is a normalized key press.
type KeyEvent struct {
	Rune  rune
	Key   Key
	Ctrl  bool
	Shift bool
}

// Renderable produces the current frame.
type Renderable interface {
	Frame() *image.RGBA
}

// InputSink consumes normalized input.
type InputSink interface {
	HandlePointer(ev PointerEvent)
	HandleKey(ev KeyEvent)
}

// TextInput collects multi-line text synchronously. ok is false when the
// user cancelled.
type TextInput interface {
	RequestText(title, initial string) (text string, ok bool)
}

// Metrics measures text the way the compositor lays it out.
type Metrics interface {
	TextSize(body string, fontSize, maxWidth int) image.Point
	NoteSize(body string, fontSize int) image.Point
}

// Listener receives notifications meant for the host window and toolbar.
type Listener interface {
	ModeChanged(m Mode)
	// ManipulationStarted and ManipulationEnded bracket handle and window
	// drags so the host can hide auxiliary UI.
	ManipulationStarted()
	ManipulationEnded()
	HandleDragged(h geometry.Handle, screen image.Point)
	HandleReleased()
	// SelectionRestarted reports that editing was abandoned and a new
	// region is being chosen.
	SelectionRestarted()
	FinishRequested(frame *image.RGBA)
	CancelRequested()
}

// NopListener ignores every notification.
type NopListener struct{}

func (NopListener) ModeChanged(Mode)                           {}
func (NopListener) ManipulationStarted()                       {}
func (NopListener) ManipulationEnded()                         {}
func (NopListener) HandleDragged(geometry.Handle, image.Point) {}
func (NopListener) HandleReleased()                            {}
func (NopListener) SelectionRestarted()                        {}
func (NopListener) FinishRequested(*image.RGBA)                {}
func (NopListener) CancelRequested()                           {}

type noText struct{}

func (noText) RequestText(string, string) (string, bool) { return "", false }

// Style is applied to shapes when they are created.
type Style struct {
	StrokeColor  color.RGBA
	StrokeWidth  int
	PenColor     color.RGBA
	PenWidth     int
	TextColor    color.RGBA
	FontSize     int
	MaskColor    color.RGBA
	MosaicSize   int
	BubbleColor  color.RGBA
	BubbleBorder color.RGBA
}

// Ranges offered by the toolbar.
const (
	MinFontSize   = 8
	MaxFontSize   = 72
	MinMosaicSize = 5
	MaxMosaicSize = 50
	MinWidth      = 1
	MaxWidth      = 10
)

// DefaultStyle is red strokes of width 2, 16px text and a 10px gray mask.
func DefaultStyle() Style {
	red := color.RGBA{255, 0, 0, 255}
	return Style{
		StrokeColor:  red,
		StrokeWidth:  2,
		PenColor:     red,
		PenWidth:     2,
		TextColor:    red,
		FontSize:     16,
		MaskColor:    color.RGBA{160, 160, 164, 255},
		MosaicSize:   10,
		BubbleColor:  color.RGBA{200, 200, 200, 128},
		BubbleBorder: color.RGBA{0, 0, 0, 255},
	}
}

// Clamped bounds every size to its toolbar range.
func (s Style) Clamped() Style {
	s.StrokeWidth = geometry.Clamp(s.StrokeWidth, MinWidth, MaxWidth)
	s.PenWidth = geometry.Clamp(s.PenWidth, MinWidth, MaxWidth)
	s.FontSize = geometry.Clamp(s.FontSize, MinFontSize, MaxFontSize)
	s.MosaicSize = geometry.Clamp(s.MosaicSize, MinMosaicSize, MaxMosaicSize)
	return s
}
