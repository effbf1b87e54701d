package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/snipmark/internal/geometry"
	"github.com/example/snipmark/internal/session"
	"github.com/example/snipmark/internal/theme"
)

const (
	statusHeight = 20
	labelPad     = 4
	borderWidth  = 1
)

// Scene is everything the chrome needs to paint one frame.
type Scene struct {
	Screen    *image.RGBA
	Phase     session.Phase
	Selection image.Rectangle
	// Frame is the composited canvas placed at Selection.Min.
	Frame    *image.RGBA
	SizeText string
	Mode     session.Mode
	DragMode bool
	Cursor   geometry.Cursor
	// Manipulating hides the status strip during handle and window drags.
	Manipulating bool
	Message      string
	// Edit is the text being typed, shown in a panel over the selection.
	Edit *TextEdit
}

// Chrome paints the dimmed screen, the selection frame and its decorations.
type Chrome struct {
	Theme *theme.Theme
	Face  font.Face
}

// NewChrome returns a Chrome for t using the fixed 7x13 face.
func NewChrome(t *theme.Theme) Chrome {
	if t == nil {
		t = theme.Default()
	}
	return Chrome{Theme: t, Face: basicfont.Face7x13}
}

// Draw paints sc onto dst.
func (c Chrome) Draw(dst *image.RGBA, sc Scene) {
	bounds := dst.Bounds()
	if sc.Screen != nil {
		draw.Draw(dst, bounds, sc.Screen, bounds.Min, draw.Src)
	}
	sel := sc.Selection.Intersect(bounds)
	c.dim(dst, sel)
	if sel.Empty() {
		if sc.Phase == session.PhaseSelecting {
			c.status(dst, "Drag to select a region  Esc quit")
		}
		return
	}

	if sc.Frame != nil {
		draw.Draw(dst, sc.Selection, sc.Frame, sc.Frame.Bounds().Min, draw.Src)
	}
	strokeRect(dst, sc.Selection.Inset(-borderWidth), c.Theme.SelectionBorder, borderWidth)

	editing := sc.Phase == session.PhaseEditing
	if editing && sc.Mode == session.ModeManipulate {
		for _, hr := range geometry.HandleRects(sc.Selection) {
			draw.Draw(dst, hr, image.NewUniform(c.Theme.Handle), image.Point{}, draw.Src)
		}
	}
	if !editing || sc.Manipulating {
		c.sizeLabel(dst, sc.Selection, sc.SizeText)
	}
	if sc.Edit != nil {
		c.textPanel(dst, sc.Selection, sc.Edit)
		c.status(dst, textEditHint)
		return
	}
	if editing && !sc.Manipulating {
		text := StatusText(sc.Mode, sc.DragMode, sc.Cursor)
		if sc.Message != "" {
			text = sc.Message + "  |  " + text
		}
		c.status(dst, text)
	}
}

// textPanel shows the title and the typed text with a caret, centred on
// sel and kept on screen.
func (c Chrome) textPanel(dst *image.RGBA, sel image.Rectangle, ed *TextEdit) {
	lines := append([]string{ed.Title + ":"}, strings.Split(ed.Text()+"|", "\n")...)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c.Theme.SizeLabel), Face: c.Face}
	m := c.Face.Metrics()
	lineH := (m.Ascent + m.Descent).Ceil()
	w := 0
	for _, l := range lines {
		w = max(w, d.MeasureString(l).Ceil())
	}
	size := image.Pt(w+2*labelPad, len(lines)*lineH+2*labelPad)
	mid := sel.Min.Add(sel.Size().Div(2))
	b := dst.Bounds()
	minX := geometry.Clamp(mid.X-size.X/2, b.Min.X, b.Max.X-size.X)
	minY := geometry.Clamp(mid.Y-size.Y/2, b.Min.Y, b.Max.Y-statusHeight-size.Y)
	box := image.Rectangle{Min: image.Pt(minX, minY), Max: image.Pt(minX, minY).Add(size)}

	draw.Draw(dst, box, image.NewUniform(c.Theme.SizeLabelBackground), image.Point{}, draw.Over)
	strokeRect(dst, box, c.Theme.SelectionBorder, borderWidth)
	for i, l := range lines {
		d.Dot = fixed.P(box.Min.X+labelPad, box.Min.Y+labelPad+i*lineH+m.Ascent.Ceil())
		d.DrawString(l)
	}
}

// dim darkens everything outside sel.
func (c Chrome) dim(dst *image.RGBA, sel image.Rectangle) {
	src := image.NewUniform(c.Theme.Overlay)
	b := dst.Bounds()
	if sel.Empty() {
		draw.Draw(dst, b, src, image.Point{}, draw.Over)
		return
	}
	for _, r := range []image.Rectangle{
		image.Rect(b.Min.X, b.Min.Y, b.Max.X, sel.Min.Y),
		image.Rect(b.Min.X, sel.Max.Y, b.Max.X, b.Max.Y),
		image.Rect(b.Min.X, sel.Min.Y, sel.Min.X, sel.Max.Y),
		image.Rect(sel.Max.X, sel.Min.Y, b.Max.X, sel.Max.Y),
	} {
		if !r.Empty() {
			draw.Draw(dst, r, src, image.Point{}, draw.Over)
		}
	}
}

// sizeLabel shows "WxH" above the selection, or inside it when there is no
// room above.
func (c Chrome) sizeLabel(dst *image.RGBA, sel image.Rectangle, text string) {
	if text == "" {
		return
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c.Theme.SizeLabel), Face: c.Face}
	m := c.Face.Metrics()
	w := d.MeasureString(text).Ceil() + 2*labelPad
	h := (m.Ascent + m.Descent).Ceil() + 2*labelPad
	box := image.Rect(sel.Min.X, sel.Min.Y-h-borderWidth, sel.Min.X+w, sel.Min.Y-borderWidth)
	if box.Min.Y < dst.Bounds().Min.Y {
		box = box.Add(image.Pt(0, h+2*borderWidth))
	}
	draw.Draw(dst, box, image.NewUniform(c.Theme.SizeLabelBackground), image.Point{}, draw.Over)
	d.Dot = fixed.P(box.Min.X+labelPad, box.Min.Y+labelPad+m.Ascent.Ceil())
	d.DrawString(text)
}

// status paints the strip along the bottom edge.
func (c Chrome) status(dst *image.RGBA, text string) {
	b := dst.Bounds()
	strip := image.Rect(b.Min.X, b.Max.Y-statusHeight, b.Max.X, b.Max.Y)
	draw.Draw(dst, strip, image.NewUniform(c.Theme.Toolbar), image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(strip.Min.X, strip.Min.Y, strip.Max.X, strip.Min.Y+1), image.NewUniform(c.Theme.ToolbarBorder), image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c.Theme.ToolbarText), Face: c.Face}
	asc := c.Face.Metrics().Ascent.Ceil()
	d.Dot = fixed.P(strip.Min.X+labelPad, strip.Min.Y+(statusHeight+asc)/2)
	d.DrawString(text)
}

var modeKeys = []struct {
	key  rune
	mode session.Mode
}{
	{'M', session.ModeManipulate},
	{'R', session.ModeRectangle},
	{'E', session.ModeEllipse},
	{'A', session.ModeArrow},
	{'P', session.ModePen},
	{'X', session.ModeMask},
	{'T', session.ModeText},
	{'N', session.ModeNote},
}

// StatusText lists the tool shortcuts with the active tool in brackets.
func StatusText(mode session.Mode, dragMode bool, cursor geometry.Cursor) string {
	var b strings.Builder
	for i, mk := range modeKeys {
		if i > 0 {
			b.WriteByte(' ')
		}
		if mk.mode == mode {
			fmt.Fprintf(&b, "[%c:%s]", mk.key, mk.mode)
		} else {
			fmt.Fprintf(&b, "%c:%s", mk.key, mk.mode)
		}
	}
	drag := "off"
	if dragMode {
		drag = "on"
	}
	fmt.Fprintf(&b, "  D:drag %s  ^Z undo  Enter copy  Esc quit", drag)
	if cursor != geometry.CursorDefault {
		fmt.Fprintf(&b, "  (%s)", cursor)
	}
	return b.String()
}

func strokeRect(dst *image.RGBA, r image.Rectangle, col color.RGBA, thick int) {
	src := image.NewUniform(col)
	for _, e := range []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thick),
		image.Rect(r.Min.X, r.Max.Y-thick, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+thick, r.Max.Y),
		image.Rect(r.Max.X-thick, r.Min.Y, r.Max.X, r.Max.Y),
	} {
		draw.Draw(dst, e.Intersect(dst.Bounds()), src, image.Point{}, draw.Src)
	}
}
