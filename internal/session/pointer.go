package session

import (
	"image"

	"github.com/example/snipmark/internal/geometry"
	"github.com/example/snipmark/internal/hittest"
	"github.com/example/snipmark/internal/shape"
)

// HandlePointer routes one pointer event. Positions are screen coordinates.
func (s *Session) HandlePointer(ev PointerEvent) {
	if ev.Button == ButtonRight && ev.Kind == PointerDown {
		if s.phase == PhaseEditing {
			s.restart()
		}
		return
	}
	if s.phase == PhaseSelecting {
		s.handleSelecting(ev)
		return
	}
	local := ev.Pos.Sub(s.sel.Rect().Min)
	switch ev.Kind {
	case PointerDown:
		if ev.Button == ButtonLeft {
			s.pointerDown(ev, local)
		}
	case PointerMove:
		s.pointerMove(ev, local)
	case PointerUp:
		if ev.Button == ButtonLeft || ev.Button == ButtonNone {
			s.pointerUp(ev, local)
		}
	case PointerDoubleClick:
		if ev.Button == ButtonLeft && !s.doubleClick(local) {
			s.pointerDown(ev, local)
		}
	}
}

func (s *Session) handleSelecting(ev PointerEvent) {
	switch ev.Kind {
	case PointerDown, PointerDoubleClick:
		if ev.Button == ButtonLeft {
			s.banding = true
			s.sel.Begin(ev.Pos)
		}
	case PointerMove:
		if s.banding {
			s.sel.Extend(ev.Pos)
		}
	case PointerUp:
		if s.banding {
			s.banding = false
			s.sel.Extend(ev.Pos)
			s.enterEditing()
		}
	}
}

func (s *Session) canvas() image.Rectangle { return s.comp.Bounds() }

func (s *Session) pointerDown(ev PointerEvent, p image.Point) {
	if s.st.State != Idle {
		return
	}
	if !p.In(s.canvas()) {
		return
	}
	if s.mode == ModeManipulate {
		if hit, ok := hittest.Test(&s.store, p, s.tolerance); ok {
			s.startShapeDrag(hit, p, ev.Pos)
			return
		}
		if h := geometry.HandleAt(s.canvas(), p); h != geometry.HandleNone {
			s.st = InteractionState{State: DraggingHandle, Handle: h, Target: hittest.Hit{Index: -1}, Last: ev.Pos, Origin: s.sel.Rect()}
			s.log.Debug("handle pressed", "handle", h, "at", p)
			s.listener.ManipulationStarted()
			s.listener.HandleDragged(h, ev.Pos)
			return
		}
		if s.dragMode {
			s.st = InteractionState{State: DraggingWindow, Target: hittest.Hit{Index: -1}, Last: ev.Pos}
			s.log.Debug("start dragging selection", "at", ev.Pos)
			s.listener.ManipulationStarted()
		}
		return
	}
	s.startDrawing(p)
}

func (s *Session) pointerMove(ev PointerEvent, p image.Point) {
	switch s.st.State {
	case DraggingWindow:
		d := ev.Pos.Sub(s.st.Last)
		s.sel.MoveTo(s.sel.Rect().Min.Add(d))
		s.comp.SetBase(s.sel.Crop())
		s.comp.Redraw(&s.store)
		s.st.Last = ev.Pos
	case DraggingHandle:
		s.sel.Resize(s.st.Handle, ev.Pos)
		s.st.Last = ev.Pos
		s.listener.HandleDragged(s.st.Handle, ev.Pos)
	case DraggingShape:
		s.dragShape(p)
		s.comp.Redraw(&s.store)
	case Drawing:
		s.extendDrawing(p, ev.Shift)
	}
}

func (s *Session) pointerUp(ev PointerEvent, p image.Point) {
	switch s.st.State {
	case DraggingWindow:
		s.st = idle()
		s.log.Debug("stop dragging selection", "rect", s.sel.Rect())
		s.listener.ManipulationEnded()
	case DraggingHandle:
		origin := s.st.Origin
		s.st = idle()
		s.listener.HandleReleased()
		if !s.enterEditing() {
			s.log.Debug("handle drag left no area, restoring selection", "rect", origin)
			s.sel.SetRect(origin)
			s.enterEditing()
		}
		s.listener.ManipulationEnded()
	case DraggingShape:
		s.st = idle()
		s.comp.Redraw(&s.store)
	case Drawing:
		s.finishDrawing(p, ev.Shift)
	}
}

func (s *Session) startShapeDrag(hit hittest.Hit, p, screen image.Point) {
	target := s.store.At(hit.Index)
	s.st = InteractionState{
		State:  DraggingShape,
		Target: hit,
		Offset: p.Sub(dragReference(target, hit.Part)),
		Last:   screen,
	}
	s.log.Debug("dragging shape", "kind", target.Kind(), "part", hit.Part, "offset", s.st.Offset)
}

func (s *Session) startDrawing(p image.Point) {
	st := s.style
	s.st = InteractionState{State: Drawing, Target: hittest.Hit{Index: -1}, Start: p}
	switch s.mode {
	case ModeRectangle:
		s.st.Draft = &shape.Rect{Rect: image.Rectangle{Min: p, Max: p}, Width: st.StrokeWidth, Color: st.StrokeColor}
	case ModeEllipse:
		s.st.Draft = &shape.Ellipse{Rect: image.Rectangle{Min: p, Max: p}, Width: st.StrokeWidth, Color: st.StrokeColor}
	case ModeArrow:
		s.st.Draft = &shape.ArrowLine{Points: []image.Point{p}, Width: st.StrokeWidth, Color: st.StrokeColor}
	case ModePen:
		stroke := &shape.PenStroke{Stroke: shape.Stroke{Points: []image.Point{p}, Width: st.PenWidth, Color: st.PenColor}}
		s.st.Target.Index = s.store.Append(stroke)
	case ModeMask:
		stroke := &shape.MaskStroke{Stroke: shape.Stroke{Points: []image.Point{p}, Width: st.MosaicSize, Color: st.MaskColor}}
		s.st.Target.Index = s.store.Append(stroke)
	case ModeText:
		s.st = idle()
		s.addText(p)
	case ModeNote:
		s.st = idle()
		s.addNote(p)
	}
	s.log.Debug("start drawing", "mode", s.mode, "at", p)
}

func (s *Session) addText(p image.Point) {
	body, ok := s.text.RequestText("Text", "")
	if !ok || body == "" {
		return
	}
	size := s.metrics.TextSize(body, s.style.FontSize, s.canvas().Dx()-p.X)
	s.store.Append(&shape.TextBox{
		Rect:     image.Rectangle{Min: p, Max: p.Add(size)},
		Body:     body,
		FontSize: s.style.FontSize,
		Color:    s.style.TextColor,
	})
	s.comp.Redraw(&s.store)
}

func (s *Session) addNote(p image.Point) {
	body, ok := s.text.RequestText("Numbered note", "")
	if !ok || body == "" {
		return
	}
	anchor := image.Rectangle{Min: p, Max: p.Add(image.Pt(shape.NoteSize, shape.NoteSize))}
	n := &shape.Note{
		Anchor:       anchor,
		Number:       s.nextNote,
		Body:         body,
		FontSize:     s.style.FontSize,
		Color:        s.style.TextColor,
		Bubble:       shape.BubbleFor(anchor, s.metrics.NoteSize(body, s.style.FontSize)),
		BubbleColor:  s.style.BubbleColor,
		BubbleBorder: s.style.BubbleBorder,
	}
	s.nextNote++
	s.store.Append(n)
	s.comp.Redraw(&s.store)
}

func (s *Session) extendDrawing(p image.Point, shift bool) {
	switch d := s.st.Draft.(type) {
	case *shape.Rect:
		d.Rect = s.drawnRect(s.st.Start, p, shift)
	case *shape.Ellipse:
		d.Rect = s.drawnRect(s.st.Start, p, shift)
	case *shape.ArrowLine:
		if len(d.Points) == 1 {
			d.Points = append(d.Points, p)
		} else {
			d.Points[1] = p
		}
	}
	if s.st.Draft != nil {
		s.comp.Preview(s.st.Draft)
		return
	}
	switch v := s.store.At(s.st.Target.Index).(type) {
	case *shape.PenStroke:
		if shift {
			v.Points = []image.Point{s.st.Start, geometry.AxisSnap(s.st.Start, p)}
		} else {
			v.Points = append(v.Points, p)
		}
		s.comp.Preview(v)
	case *shape.MaskStroke:
		v.Points = append(v.Points, p)
		s.comp.Preview(v)
	}
}

func (s *Session) finishDrawing(p image.Point, shift bool) {
	switch d := s.st.Draft.(type) {
	case *shape.Rect:
		d.Rect = s.drawnRect(s.st.Start, p, shift)
	case *shape.Ellipse:
		d.Rect = s.drawnRect(s.st.Start, p, shift)
	}
	if d := s.st.Draft; d != nil {
		if shape.Degenerate(d) {
			s.log.Debug("dropped degenerate shape", "kind", d.Kind())
		} else {
			s.store.Append(d)
		}
	} else {
		s.abandonStroke()
	}
	s.st = idle()
	s.comp.ClearPreview()
	s.comp.Redraw(&s.store)
}

// drawnRect builds the rectangle spanned by a draw from start to p, kept
// inside the canvas inset. With lock set it is a square anchored at start.
func (s *Session) drawnRect(start, p image.Point, lock bool) image.Rectangle {
	c := s.canvas()
	lo := image.Pt(s.inset, s.inset)
	hi := image.Pt(c.Dx()-s.inset-1, c.Dy()-s.inset-1)
	a := geometry.ClampPoint(start, lo, hi)
	b := geometry.ClampPoint(p, lo, hi)
	r := image.Rectangle{Min: a, Max: b}.Canon()
	if !lock {
		return r
	}
	side := min(r.Dx(), r.Dy())
	if b.X < a.X {
		r.Min.X = r.Max.X - side
	} else {
		r.Max.X = r.Min.X + side
	}
	if b.Y < a.Y {
		r.Min.Y = r.Max.Y - side
	} else {
		r.Max.Y = r.Min.Y + side
	}
	if r.Max.X > hi.X {
		r = r.Add(image.Pt(hi.X-r.Max.X, 0))
	}
	if r.Max.Y > hi.Y {
		r = r.Add(image.Pt(0, hi.Y-r.Max.Y))
	}
	return r
}

// doubleClick edits the text or note under p. It reports false when there
// was nothing to edit so the click counts as a plain press.
func (s *Session) doubleClick(p image.Point) bool {
	if s.mode != ModeManipulate || s.st.State != Idle {
		return false
	}
	hit, ok := hittest.Test(&s.store, p, s.tolerance)
	if !ok {
		return false
	}
	switch v := s.store.At(hit.Index).(type) {
	case *shape.TextBox:
		body, ok := s.text.RequestText("Edit text", v.Body)
		if !ok || body == "" {
			return true
		}
		v.Body = body
		size := s.metrics.TextSize(body, v.FontSize, s.canvas().Dx()-v.Rect.Min.X)
		v.Rect.Max = v.Rect.Min.Add(size)
	case *shape.Note:
		body, ok := s.text.RequestText("Edit note", shape.BodyFromText(v.Text()))
		if !ok || body == "" {
			return true
		}
		v.Body = body
		v.Bubble = shape.BubbleFor(v.Anchor, s.metrics.NoteSize(body, v.FontSize))
	default:
		return false
	}
	s.comp.Redraw(&s.store)
	return true
}
