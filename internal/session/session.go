// Package session drives an annotation session: it turns pointer and key
// input into selection changes and shape edits and keeps the composited
// frame current.
package session

import (
	"image"
	"log/slog"

	"github.com/example/snipmark/internal/hittest"
	"github.com/example/snipmark/internal/render"
	"github.com/example/snipmark/internal/selection"
	"github.com/example/snipmark/internal/shape"
)

// Session owns the shape store, the selection and the interaction state.
// All methods must be called from a single goroutine.
type Session struct {
	sel   *selection.Engine
	store shape.Store
	comp  *render.Compositor

	phase    Phase
	banding  bool
	mode     Mode
	dragMode bool
	st       InteractionState
	style    Style
	nextNote int

	inset     int
	tolerance int
	palette   render.Palette

	text     TextInput
	metrics  Metrics
	listener Listener
	log      *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithTextInput sets the service used to collect text and note bodies.
func WithTextInput(t TextInput) Option { return func(s *Session) { s.text = t } }

// WithListener registers the host notified of mode and drag changes.
func WithListener(l Listener) Option { return func(s *Session) { s.listener = l } }

// WithMetrics overrides the text measurement used for layout.
func WithMetrics(m Metrics) Option { return func(s *Session) { s.metrics = m } }

// WithStyle sets the initial style.
func WithStyle(st Style) Option { return func(s *Session) { s.style = st.Clamped() } }

// WithInset sets how far drawn shapes stay from the canvas edge.
func WithInset(px int) Option { return func(s *Session) { s.inset = max(px, 0) } }

// WithTolerance sets the hit-test tolerance in pixels.
func WithTolerance(px int) Option { return func(s *Session) { s.tolerance = max(px, 1) } }

// WithPalette sets the colours used for note badges.
func WithPalette(p render.Palette) Option { return func(s *Session) { s.palette = p } }

// WithDragMode sets whether dragging the background moves the selection.
func WithDragMode(on bool) Option { return func(s *Session) { s.dragMode = on } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(s *Session) { s.log = l } }

// New starts a session over a captured screen. The session begins by
// choosing a region.
func New(screen image.Image, opts ...Option) *Session {
	s := &Session{
		sel:       selection.New(screen),
		st:        idle(),
		style:     DefaultStyle(),
		nextNote:  1,
		dragMode:  true,
		inset:     1,
		tolerance: hittest.DefaultTolerance,
		palette:   render.DefaultPalette(),
		text:      noText{},
		metrics:   render.Fonts{},
		listener:  NopListener{},
		log:       slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Select starts editing r directly, skipping the rubber-band phase.
func (s *Session) Select(r image.Rectangle) bool {
	s.sel.SetRect(r)
	return s.enterEditing()
}

func (s *Session) enterEditing() bool {
	r, crop := s.sel.Reset()
	if r.Empty() {
		s.log.Debug("selection empty, still selecting", "rect", r)
		s.phase = PhaseSelecting
		return false
	}
	s.phase = PhaseEditing
	s.st = idle()
	if s.comp == nil {
		s.comp = render.NewCompositor(crop, s.palette)
	} else {
		s.comp.SetBase(crop)
	}
	s.comp.ClearPreview()
	s.comp.Redraw(&s.store)
	s.log.Debug("editing", "rect", r, "size", s.sel.SizeText())
	return true
}

// Phase reports whether a region is being chosen or annotated.
func (s *Session) Phase() Phase { return s.phase }

// Mode returns the active tool.
func (s *Session) Mode() Mode { return s.mode }

// State returns a copy of the interaction state.
func (s *Session) State() InteractionState { return s.st }

// Selection is the crop rectangle in screen coordinates.
func (s *Session) Selection() image.Rectangle { return s.sel.Rect() }

// SizeText labels the selection size.
func (s *Session) SizeText() string { return s.sel.SizeText() }

// Screen is the full captured screen.
func (s *Session) Screen() *image.RGBA { return s.sel.Screen() }

// Shapes exposes the store for reading.
func (s *Session) Shapes() *shape.Store { return &s.store }

// Style returns the style applied to the next shape.
func (s *Session) Style() Style { return s.style }

// DragMode reports whether background drags move the selection.
func (s *Session) DragMode() bool { return s.dragMode }

// Frame returns the composited canvas. Before a region is chosen it is the
// bare crop of the current selection.
func (s *Session) Frame() *image.RGBA {
	if s.phase != PhaseEditing || s.comp == nil {
		return s.sel.Crop()
	}
	return s.comp.Frame()
}

// SetMode switches tools and drops whatever gesture was in progress.
func (s *Session) SetMode(m Mode) {
	s.abandonStroke()
	s.mode = m
	s.st = idle()
	if s.comp != nil {
		s.comp.ClearPreview()
		s.comp.Redraw(&s.store)
	}
	s.log.Debug("mode set, state reset", "mode", m)
	s.listener.ModeChanged(m)
}

// SetDragMode toggles moving the selection by dragging its background.
func (s *Session) SetDragMode(on bool) {
	s.dragMode = on
	s.log.Debug("drag mode", "enabled", on)
}

// SetStyle changes the style used for shapes created from now on.
func (s *Session) SetStyle(st Style) { s.style = st.Clamped() }

// Undo removes the most recent shape. It is ignored mid-gesture.
func (s *Session) Undo() bool {
	if s.phase != PhaseEditing || s.st.State != Idle {
		return false
	}
	if _, ok := s.store.PopLast(); !ok {
		return false
	}
	s.comp.Redraw(&s.store)
	return true
}

// Finish hands the composited frame to the host for export. The session
// stays open until the host closes it.
func (s *Session) Finish() {
	if s.phase != PhaseEditing {
		return
	}
	s.listener.FinishRequested(s.comp.Frame())
}

// Cancel asks the host to close without exporting.
func (s *Session) Cancel() {
	s.st = idle()
	s.listener.CancelRequested()
}

// restart abandons editing and returns to choosing a region.
func (s *Session) restart() {
	s.store.Clear()
	s.st = idle()
	s.banding = false
	s.phase = PhaseSelecting
	if s.comp != nil {
		s.comp.ClearPreview()
		s.comp.Redraw(&s.store)
	}
	s.log.Debug("editing cancelled, selecting again")
	s.listener.SelectionRestarted()
}

// abandonStroke drops a stroke that is still too short to keep.
func (s *Session) abandonStroke() {
	if s.st.State != Drawing || s.st.Target.Index < 0 {
		return
	}
	if st := s.store.At(s.st.Target.Index); st != nil && shape.Degenerate(st) && s.st.Target.Index == s.store.Len()-1 {
		s.store.PopLast()
	}
}

// HandleKey maps toolbar shortcuts onto session triggers.
func (s *Session) HandleKey(ev KeyEvent) {
	switch {
	case ev.Key == KeyEscape:
		s.Cancel()
		return
	case ev.Key == KeyEnter:
		s.Finish()
		return
	case ev.Ctrl && (ev.Rune == 'z' || ev.Rune == 'Z'):
		s.Undo()
		return
	case ev.Ctrl:
		return
	}
	if s.phase != PhaseEditing {
		return
	}
	switch ev.Rune {
	case 'm', 'M':
		s.SetMode(ModeManipulate)
	case 'r', 'R':
		s.SetMode(ModeRectangle)
	case 'e', 'E':
		s.SetMode(ModeEllipse)
	case 't', 'T':
		s.SetMode(ModeText)
	case 'p', 'P':
		s.SetMode(ModePen)
	case 'x', 'X':
		s.SetMode(ModeMask)
	case 'n', 'N':
		s.SetMode(ModeNote)
	case 'a', 'A':
		s.SetMode(ModeArrow)
	case 'd', 'D':
		s.SetDragMode(!s.dragMode)
	}
}
