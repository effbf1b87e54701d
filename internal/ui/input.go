package ui

import (
	"image"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/snipmark/internal/session"
)

const (
	doubleClickInterval = 400 * time.Millisecond
	doubleClickSlop     = 4
)

// Translator turns shiny input events into session events. The second left
// press inside doubleClickInterval and doubleClickSlop is reported as a
// double click instead of a press.
type Translator struct {
	now func() time.Time

	lastPress time.Time
	lastPos   image.Point
}

// NewTranslator returns a Translator using the wall clock.
func NewTranslator() *Translator { return &Translator{now: time.Now} }

// Pointer converts a mouse event. ok is false for events the session does
// not use (wheel steps, middle button).
func (t *Translator) Pointer(e mouse.Event) (ev session.PointerEvent, ok bool) {
	ev = session.PointerEvent{
		Pos:   image.Pt(int(e.X), int(e.Y)),
		Shift: e.Modifiers&key.ModShift != 0,
	}
	switch e.Button {
	case mouse.ButtonLeft:
		ev.Button = session.ButtonLeft
	case mouse.ButtonRight:
		ev.Button = session.ButtonRight
	case mouse.ButtonNone:
	default:
		return ev, false
	}

	switch e.Direction {
	case mouse.DirNone:
		ev.Kind = session.PointerMove
	case mouse.DirPress:
		ev.Kind = session.PointerDown
		if ev.Button == session.ButtonLeft {
			ev.Kind = t.press(ev.Pos)
		}
	case mouse.DirRelease:
		ev.Kind = session.PointerUp
	default:
		return ev, false
	}
	return ev, true
}

func (t *Translator) press(p image.Point) session.EventKind {
	now := t.now()
	d := p.Sub(t.lastPos)
	if !t.lastPress.IsZero() && now.Sub(t.lastPress) <= doubleClickInterval &&
		abs(d.X) <= doubleClickSlop && abs(d.Y) <= doubleClickSlop {
		t.lastPress = time.Time{}
		return session.PointerDoubleClick
	}
	t.lastPress, t.lastPos = now, p
	return session.PointerDown
}

// Key converts a key press. Releases and unmapped keys give ok false.
func (t *Translator) Key(e key.Event) (ev session.KeyEvent, ok bool) {
	if e.Direction != key.DirPress {
		return ev, false
	}
	ev = session.KeyEvent{
		Rune:  e.Rune,
		Ctrl:  e.Modifiers&key.ModControl != 0,
		Shift: e.Modifiers&key.ModShift != 0,
	}
	switch e.Code {
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		ev.Key, ev.Rune = session.KeyEnter, 0
		return ev, true
	case key.CodeEscape:
		ev.Key, ev.Rune = session.KeyEscape, 0
		return ev, true
	}
	// Some drivers report Ctrl+letter as the ASCII control character.
	if ev.Ctrl && ev.Rune >= 1 && ev.Rune <= 26 {
		ev.Rune = 'a' + ev.Rune - 1
	}
	if ev.Rune <= 0 {
		return ev, false
	}
	return ev, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
