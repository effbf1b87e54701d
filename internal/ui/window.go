// Package ui hosts an annotation session in a shiny window.
package ui

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/snipmark/internal/geometry"
	"github.com/example/snipmark/internal/session"
	"github.com/example/snipmark/internal/theme"
)

// ErrCancelled is returned by Run when the user closed the window without
// exporting.
var ErrCancelled = errors.New("annotation cancelled")

const messageDuration = 3 * time.Second

// Finisher exports the finished frame; see export.Finisher.
type Finisher interface {
	Finish(frame *image.RGBA, done func(error)) error
}

// Options configures a Window.
type Options struct {
	Title    string
	Theme    *theme.Theme
	Finisher Finisher
	Logger   *slog.Logger
}

// exportedEvent carries the clipboard confirmation back onto the event loop.
type exportedEvent struct{ err error }

// Window drives a session from shiny events and implements
// session.Listener and session.TextInput for it.
type Window struct {
	opts   Options
	chrome Chrome
	input  *Translator
	log    *slog.Logger

	sess *session.Session
	send func(any)
	now  func() time.Time
	// next and repaint are bound to the shiny window by Run.
	next    func() any
	repaint func()
	edit    *TextEdit

	size         image.Point
	cursor       geometry.Cursor
	manipulating bool
	exporting    bool
	message      string
	messageUntil time.Time

	quit bool
	err  error
}

// New creates a Window. Attach a session before calling Run.
func New(opts Options) *Window {
	l := opts.Logger
	if l == nil {
		l = slog.Default()
	}
	return &Window{
		opts:    opts,
		chrome:  NewChrome(opts.Theme),
		input:   NewTranslator(),
		log:     l,
		send:    func(any) {},
		now:     time.Now,
		repaint: func() {},
	}
}

// Attach sets the session shown by the window. The session should have been
// created with this Window as its listener.
func (w *Window) Attach(s *session.Session) {
	w.sess = s
	w.size = s.Screen().Bounds().Size()
}

// Run opens the window and blocks until the frame was exported or the
// window was closed. It returns ErrCancelled when nothing was exported.
func (w *Window) Run() error {
	if w.sess == nil {
		return errors.New("ui: no session attached")
	}
	driver.Main(w.main)
	return w.err
}

func (w *Window) main(s screen.Screen) {
	win, err := s.NewWindow(&screen.NewWindowOptions{Width: w.size.X, Height: w.size.Y, Title: w.opts.Title})
	if err != nil {
		w.err = fmt.Errorf("new window: %w", err)
		return
	}
	defer win.Release()
	w.send = win.Send
	w.next = win.NextEvent
	w.repaint = func() { w.paint(s, win) }
	w.err = ErrCancelled

	for !w.quit {
		switch e := w.next().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			w.size = e.Size()
			win.Send(paint.Event{})
		case paint.Event:
			w.paint(s, win)
		default:
			w.handle(e)
		}
	}
}

// handle processes input and export events. It is separate from main so
// it can run without a display.
func (w *Window) handle(e any) {
	switch e := e.(type) {
	case mouse.Event:
		ev, ok := w.input.Pointer(e)
		if !ok {
			return
		}
		w.sess.HandlePointer(ev)
		w.cursor = w.sess.CursorAt(ev.Pos)
	case key.Event:
		ev, ok := w.input.Key(e)
		if !ok {
			return
		}
		w.sess.HandleKey(ev)
	case exportedEvent:
		w.exporting = false
		if e.err != nil {
			w.log.Warn("clipboard export not confirmed", "err", e.err)
			w.flash("Copy failed: " + e.err.Error())
			break
		}
		w.log.Info("annotation exported")
		w.err = nil
		w.quit = true
		return
	default:
		return
	}
	w.send(paint.Event{})
}

func (w *Window) paint(s screen.Screen, win screen.Window) {
	b, err := s.NewBuffer(w.size)
	if err != nil {
		w.log.Error("new buffer", "err", err)
		return
	}
	defer b.Release()
	w.chrome.Draw(b.RGBA(), w.scene())
	win.Upload(image.Point{}, b, b.Bounds())
	win.Publish()
}

func (w *Window) scene() Scene {
	sc := Scene{
		Screen:       w.sess.Screen(),
		Phase:        w.sess.Phase(),
		Selection:    w.sess.Selection(),
		Frame:        w.sess.Frame(),
		SizeText:     w.sess.SizeText(),
		Mode:         w.sess.Mode(),
		DragMode:     w.sess.DragMode(),
		Cursor:       w.cursor,
		Manipulating: w.manipulating,
		Edit:         w.edit,
	}
	if w.message != "" && w.now().Before(w.messageUntil) {
		sc.Message = w.message
	}
	return sc
}

func (w *Window) flash(msg string) {
	w.message = msg
	w.messageUntil = w.now().Add(messageDuration)
}

// ModeChanged implements session.Listener.
func (w *Window) ModeChanged(m session.Mode) {
	w.log.Debug("mode changed", "mode", m)
}

// ManipulationStarted implements session.Listener.
func (w *Window) ManipulationStarted() { w.manipulating = true }

// ManipulationEnded implements session.Listener.
func (w *Window) ManipulationEnded() { w.manipulating = false }

// HandleDragged implements session.Listener.
func (w *Window) HandleDragged(h geometry.Handle, _ image.Point) { w.cursor = h.Cursor() }

// HandleReleased implements session.Listener.
func (w *Window) HandleReleased() { w.cursor = geometry.CursorDefault }

// SelectionRestarted implements session.Listener.
func (w *Window) SelectionRestarted() {
	w.manipulating = false
	w.message = ""
}

// FinishRequested implements session.Listener by exporting frame. The
// window closes once the clipboard confirms the image.
func (w *Window) FinishRequested(frame *image.RGBA) {
	if w.exporting {
		return
	}
	if w.opts.Finisher == nil {
		w.flash("Nothing to export to")
		return
	}
	send := w.send
	err := w.opts.Finisher.Finish(frame, func(err error) { send(exportedEvent{err}) })
	if err != nil {
		w.log.Error("export failed", "err", err)
		w.flash("Export failed: " + err.Error())
		return
	}
	w.exporting = true
	w.flash("Copying...")
}

// CancelRequested implements session.Listener.
func (w *Window) CancelRequested() {
	w.log.Debug("annotation cancelled")
	w.quit = true
}

var (
	_ session.Listener  = (*Window)(nil)
	_ session.TextInput = (*Window)(nil)
)
