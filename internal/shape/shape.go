package shape

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// Kind identifies the variant of a Shape.
type Kind int

const (
	KindRectangle Kind = iota
	KindEllipse
	KindText
	KindPen
	KindMask
	KindNote
	KindArrow
)

func (k Kind) String() string {
	switch k {
	case KindRectangle:
		return "rectangle"
	case KindEllipse:
		return "ellipse"
	case KindText:
		return "text"
	case KindPen:
		return "pen"
	case KindMask:
		return "mask"
	case KindNote:
		return "note"
	case KindArrow:
		return "arrow"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// NoteSize is the side of the circular badge anchoring a numbered note.
const NoteSize = 32

// Shape is one annotation object. The set of implementations is closed;
// code that needs per-kind behaviour switches on the concrete type.
type Shape interface {
	Kind() Kind
	// Bounds returns the area the shape covers, used for clamping.
	Bounds() image.Rectangle
	// Translate moves the whole shape by d.
	Translate(d image.Point)
	isShape()
}

// Rect is an outlined rectangle.
type Rect struct {
	Rect  image.Rectangle
	Width int
	Color color.RGBA
}

// Ellipse is an outlined ellipse inscribed in Rect.
type Ellipse struct {
	Rect  image.Rectangle
	Width int
	Color color.RGBA
}

// TextBox is a block of word-wrapped text laid out inside Rect.
type TextBox struct {
	Rect     image.Rectangle
	Body     string
	FontSize int
	Color    color.RGBA
}

// Stroke is a freehand polyline. Pen and Mask share it.
type Stroke struct {
	Points []image.Point
	Width  int
	Color  color.RGBA
}

// PenStroke is a visible freehand line.
type PenStroke struct{ Stroke }

// MaskStroke is a heavy stroke painted over content to hide it.
type MaskStroke struct{ Stroke }

// Note is a numbered badge with an optional bubble holding Body.
type Note struct {
	Anchor       image.Rectangle
	Number       int
	Body         string
	FontSize     int
	Color        color.RGBA
	Bubble       image.Rectangle
	BubbleColor  color.RGBA
	BubbleBorder color.RGBA
}

// ArrowLine is a straight arrow from Points[0] to Points[1]. It is only
// complete once it carries two points.
type ArrowLine struct {
	Points []image.Point
	Width  int
	Color  color.RGBA
}

func (*Rect) Kind() Kind       { return KindRectangle }
func (*Ellipse) Kind() Kind    { return KindEllipse }
func (*TextBox) Kind() Kind    { return KindText }
func (*PenStroke) Kind() Kind  { return KindPen }
func (*MaskStroke) Kind() Kind { return KindMask }
func (*Note) Kind() Kind       { return KindNote }
func (*ArrowLine) Kind() Kind  { return KindArrow }

func (*Rect) isShape()       {}
func (*Ellipse) isShape()    {}
func (*TextBox) isShape()    {}
func (*PenStroke) isShape()  {}
func (*MaskStroke) isShape() {}
func (*Note) isShape()       {}
func (*ArrowLine) isShape()  {}

func (r *Rect) Bounds() image.Rectangle    { return r.Rect }
func (e *Ellipse) Bounds() image.Rectangle { return e.Rect }
func (t *TextBox) Bounds() image.Rectangle { return t.Rect }
func (s *Stroke) Bounds() image.Rectangle  { return pointBounds(s.Points) }

func (n *Note) Bounds() image.Rectangle {
	if n.Bubble.Empty() {
		return n.Anchor
	}
	return n.Anchor.Union(n.Bubble)
}

func (a *ArrowLine) Bounds() image.Rectangle { return pointBounds(a.Points) }

func (r *Rect) Translate(d image.Point)    { r.Rect = r.Rect.Add(d) }
func (e *Ellipse) Translate(d image.Point) { e.Rect = e.Rect.Add(d) }
func (t *TextBox) Translate(d image.Point) { t.Rect = t.Rect.Add(d) }
func (s *Stroke) Translate(d image.Point)  { translatePoints(s.Points, d) }

// Translate moves the anchor and the bubble together so the bubble keeps
// its offset from the anchor.
func (n *Note) Translate(d image.Point) {
	n.Anchor = n.Anchor.Add(d)
	if !n.Bubble.Empty() {
		n.Bubble = n.Bubble.Add(d)
	}
}

func (a *ArrowLine) Translate(d image.Point) { translatePoints(a.Points, d) }

// Text returns the displayed text of the note, "<number>. <body>".
func (n *Note) Text() string {
	return fmt.Sprintf("%d. %s", n.Number, n.Body)
}

// BodyFromText strips the "<number>. " prefix produced by Note.Text.
func BodyFromText(text string) string {
	if i := strings.Index(text, ". "); i >= 0 {
		return text[i+2:]
	}
	return text
}

// BubbleFor places a bubble of the given size beside a note anchor.
func BubbleFor(anchor image.Rectangle, size image.Point) image.Rectangle {
	x := anchor.Min.X + NoteSize + 2 + 5
	y := anchor.Min.Y - (size.Y-NoteSize)/2
	return image.Rect(x, y, x+size.X, y+size.Y)
}

// Complete reports whether the arrow has both endpoints.
func (a *ArrowLine) Complete() bool { return len(a.Points) == 2 }

// Degenerate reports whether the shape would render as nothing and must not
// be committed.
func Degenerate(s Shape) bool {
	switch v := s.(type) {
	case *Rect:
		return v.Rect.Dx() == 0 || v.Rect.Dy() == 0
	case *Ellipse:
		return v.Rect.Dx() == 0 || v.Rect.Dy() == 0
	case *TextBox:
		return v.Body == ""
	case *PenStroke:
		return len(v.Points) < 2
	case *MaskStroke:
		return len(v.Points) < 2
	case *Note:
		return v.Body == ""
	case *ArrowLine:
		return !v.Complete() || v.Points[0] == v.Points[1]
	}
	panic(fmt.Sprintf("shape: unknown shape %T", s))
}

func pointBounds(pts []image.Point) image.Rectangle {
	if len(pts) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	return r
}

func translatePoints(pts []image.Point, d image.Point) {
	for i := range pts {
		pts[i] = pts[i].Add(d)
	}
}
