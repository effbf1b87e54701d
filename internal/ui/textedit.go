package ui

import (
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

const textEditHint = "Enter done  Shift+Enter new line  Backspace delete  Esc cancel"

// TextEdit is the text being typed into the window for a text box or note.
type TextEdit struct {
	Title string
	text  []rune
}

func newTextEdit(title, initial string) *TextEdit {
	return &TextEdit{Title: title, text: []rune(initial)}
}

// Text returns what has been typed so far.
func (t *TextEdit) Text() string { return string(t.text) }

// key applies one key event. done reports that editing ended and ok that
// the text was accepted rather than cancelled.
func (t *TextEdit) key(e key.Event) (done, ok bool) {
	if e.Direction == key.DirRelease {
		return false, false
	}
	switch e.Code {
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		if e.Modifiers&key.ModShift != 0 {
			t.text = append(t.text, '\n')
			return false, false
		}
		return true, true
	case key.CodeEscape:
		return true, false
	case key.CodeDeleteBackspace:
		if len(t.text) > 0 {
			t.text = t.text[:len(t.text)-1]
		}
		return false, false
	}
	if e.Modifiers&(key.ModControl|key.ModMeta) != 0 {
		return false, false
	}
	if e.Rune == '\t' || (e.Rune >= ' ' && e.Rune != 0x7f) {
		t.text = append(t.text, e.Rune)
	}
	return false, false
}

// RequestText implements session.TextInput. It runs a nested event loop on
// the window, drawing the text as it is typed, until Enter accepts it or
// Escape cancels. Pointer input is ignored meanwhile.
func (w *Window) RequestText(title, initial string) (string, bool) {
	if w.next == nil {
		return "", false
	}
	ed := newTextEdit(title, initial)
	w.edit = ed
	defer func() {
		w.edit = nil
		w.send(paint.Event{})
	}()
	w.send(paint.Event{})

	for !w.quit {
		switch e := w.next().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				w.quit = true
			}
		case size.Event:
			w.size = e.Size()
			w.send(paint.Event{})
		case paint.Event:
			w.repaint()
		case key.Event:
			if done, ok := ed.key(e); done {
				w.log.Debug("text entry finished", "title", title, "accepted", ok)
				return ed.Text(), ok
			}
			w.send(paint.Event{})
		case exportedEvent:
			w.handle(e)
		}
	}
	return "", false
}
