package ui

import (
	"image"
	"testing"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"

	"github.com/example/snipmark/internal/session"
	"github.com/example/snipmark/internal/shape"
)

func typed(r rune) key.Event {
	return key.Event{Rune: r, Direction: key.DirPress}
}

func keyCode(code key.Code, mods key.Modifiers) key.Event {
	return key.Event{Code: code, Modifiers: mods, Direction: key.DirPress}
}

// scripted makes w read events from evs in its nested text loop.
func scripted(w *Window, evs ...any) *[]any {
	rest := evs
	w.next = func() any {
		if len(rest) == 0 {
			return lifecycle.Event{To: lifecycle.StageDead}
		}
		e := rest[0]
		rest = rest[1:]
		return e
	}
	return &rest
}

func newTypingWindow(t *testing.T) (*Window, *session.Session) {
	t.Helper()
	w := New(Options{})
	s := session.New(image.NewRGBA(image.Rect(0, 0, 200, 200)), session.WithListener(w), session.WithTextInput(w))
	w.Attach(s)
	if !s.Select(image.Rect(10, 10, 110, 110)) {
		t.Fatal("select failed")
	}
	return w, s
}

func TestTypedNoteBody(t *testing.T) {
	w, s := newTypingWindow(t)
	var shown []string
	w.repaint = func() {
		if sc := w.scene(); sc.Edit != nil {
			shown = append(shown, sc.Edit.Title+"="+sc.Edit.Text())
		}
	}
	rest := scripted(w,
		typed('h'), typed('i'),
		paint.Event{},
		mouse.Event{X: 90, Y: 90, Button: mouse.ButtonLeft, Direction: mouse.DirPress},
		keyCode(key.CodeReturnEnter, key.ModShift),
		typed('x'),
		keyCode(key.CodeDeleteBackspace, 0),
		typed('y'),
		keyCode(key.CodeReturnEnter, 0),
	)

	pressKey(w, key.CodeN, 'n')
	w.handle(mouse.Event{X: 30, Y: 30, Button: mouse.ButtonLeft, Direction: mouse.DirPress})

	if len(*rest) != 0 {
		t.Fatalf("%d events left unread", len(*rest))
	}
	if s.Shapes().Len() != 1 {
		t.Fatalf("shapes = %d", s.Shapes().Len())
	}
	n := s.Shapes().At(0).(*shape.Note)
	if n.Body != "hi\ny" || n.Number != 1 {
		t.Fatalf("note = %d %q", n.Number, n.Body)
	}
	if len(shown) != 1 || shown[0] != "Numbered note=hi" {
		t.Fatalf("painted %q", shown)
	}
	if w.scene().Edit != nil {
		t.Fatal("text panel still shown after Enter")
	}
	if s.State().State != session.Idle {
		t.Fatalf("state = %v", s.State().State)
	}
}

func TestTypingEscapeCancels(t *testing.T) {
	w, s := newTypingWindow(t)
	scripted(w, typed('a'), keyCode(key.CodeEscape, 0))
	pressKey(w, key.CodeT, 't')
	w.handle(mouse.Event{X: 30, Y: 30, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	if s.Shapes().Len() != 0 {
		t.Fatalf("cancelled text created %d shapes", s.Shapes().Len())
	}
	if w.quit {
		t.Fatal("escape in the text panel closed the window")
	}
}

func TestDoubleClickEditsTypedText(t *testing.T) {
	w, s := newTypingWindow(t)
	scripted(w, typed('o'), typed('k'), keyCode(key.CodeReturnEnter, 0))
	pressKey(w, key.CodeT, 't')
	w.handle(mouse.Event{X: 30, Y: 30, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	w.handle(mouse.Event{X: 30, Y: 30, Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
	pressKey(w, key.CodeM, 'm')

	scripted(w, keyCode(key.CodeDeleteBackspace, 0), typed('!'), keyCode(key.CodeKeypadEnter, 0))
	w.input.lastPress = w.now()
	w.input.lastPos = image.Pt(32, 32)
	w.handle(mouse.Event{X: 32, Y: 32, Button: mouse.ButtonLeft, Direction: mouse.DirPress})

	tb := s.Shapes().At(0).(*shape.TextBox)
	if tb.Body != "o!" {
		t.Fatalf("body = %q", tb.Body)
	}
}

func TestWindowClosedWhileTyping(t *testing.T) {
	w, s := newTypingWindow(t)
	scripted(w, typed('a'))
	pressKey(w, key.CodeN, 'n')
	w.handle(mouse.Event{X: 30, Y: 30, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	if !w.quit {
		t.Fatal("window death not noticed")
	}
	if s.Shapes().Len() != 0 {
		t.Fatal("note created from an abandoned entry")
	}
}

func TestRequestTextWithoutWindow(t *testing.T) {
	w := New(Options{})
	if body, ok := w.RequestText("Text", "seed"); ok || body != "" {
		t.Fatalf("RequestText = %q %v before Run", body, ok)
	}
}

func TestTextEditKeys(t *testing.T) {
	ed := newTextEdit("Text", "ab")
	steps := []struct {
		ev   key.Event
		done bool
		ok   bool
	}{
		{typed('c'), false, false},
		{key.Event{Rune: 'c', Direction: key.DirRelease}, false, false},
		{key.Event{Rune: 's', Modifiers: key.ModControl, Direction: key.DirPress}, false, false},
		{typed(0x7f), false, false},
		{keyCode(key.CodeDeleteBackspace, 0), false, false},
		{keyCode(key.CodeReturnEnter, key.ModShift), false, false},
		{typed('d'), false, false},
		{keyCode(key.CodeReturnEnter, 0), true, true},
	}
	for i, st := range steps {
		done, ok := ed.key(st.ev)
		if done != st.done || ok != st.ok {
			t.Fatalf("step %d: done=%v ok=%v", i, done, ok)
		}
	}
	if ed.Text() != "ab\nd" {
		t.Fatalf("text = %q", ed.Text())
	}
	if done, ok := newTextEdit("Text", "").key(keyCode(key.CodeEscape, 0)); !done || ok {
		t.Fatalf("escape: done=%v ok=%v", done, ok)
	}
}

func TestChromeShowsTextPanel(t *testing.T) {
	sc := editingScene()
	sc.Edit = newTextEdit("Text", "hello")
	dst := image.NewRGBA(image.Rect(0, 0, 100, 100))
	NewChrome(nil).Draw(dst, sc)
	if got := dst.RGBAAt(40, 40); got == red {
		t.Fatal("text panel not drawn over the selection")
	}
}
