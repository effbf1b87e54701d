package render

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/fogleman/gg"

	"github.com/example/snipmark/internal/geometry"
	"github.com/example/snipmark/internal/shape"
)

// Palette holds colours that are not captured on the shapes themselves.
type Palette struct {
	NoteBadge  color.RGBA
	NoteNumber color.RGBA
}

// DefaultPalette draws red badges with white numerals.
func DefaultPalette() Palette {
	return Palette{
		NoteBadge:  color.RGBA{255, 0, 0, 255},
		NoteNumber: color.RGBA{255, 255, 255, 255},
	}
}

const bubbleRadius = 5

// DrawShape paints s onto dst.
func (p Palette) DrawShape(dst *image.RGBA, s shape.Shape) {
	dc := gg.NewContextForRGBA(dst)
	switch v := s.(type) {
	case *shape.Rect:
		r := v.Rect
		dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
		strokeWith(dc, v.Color, v.Width)
	case *shape.Ellipse:
		r := v.Rect
		rx, ry := float64(r.Dx())/2, float64(r.Dy())/2
		dc.DrawEllipse(float64(r.Min.X)+rx, float64(r.Min.Y)+ry, rx, ry)
		strokeWith(dc, v.Color, v.Width)
	case *shape.TextBox:
		drawText(dc, v)
	case *shape.PenStroke:
		drawPolyline(dc, v.Points, v.Color, v.Width)
	case *shape.MaskStroke:
		drawPolyline(dc, v.Points, v.Color, v.Width)
	case *shape.Note:
		p.drawNote(dc, v)
	case *shape.ArrowLine:
		drawArrow(dc, v)
	default:
		panic(fmt.Sprintf("render: unknown shape %T", s))
	}
}

func strokeWith(dc *gg.Context, c color.RGBA, width int) {
	dc.SetColor(c)
	dc.SetLineWidth(float64(max(width, 1)))
	dc.Stroke()
}

func drawPolyline(dc *gg.Context, pts []image.Point, c color.RGBA, width int) {
	if len(pts) < 2 {
		return
	}
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.MoveTo(float64(pts[0].X), float64(pts[0].Y))
	for _, pt := range pts[1:] {
		dc.LineTo(float64(pt.X), float64(pt.Y))
	}
	strokeWith(dc, c, width)
}

func drawArrow(dc *gg.Context, a *shape.ArrowLine) {
	if !a.Complete() {
		return
	}
	start, end := a.Points[0], a.Points[1]
	p1, p2 := geometry.ArrowHead(start, end, a.Width)
	ex, ey := float64(end.X), float64(end.Y)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.DrawLine(float64(start.X), float64(start.Y), ex, ey)
	dc.DrawLine(ex, ey, p1.X, p1.Y)
	dc.DrawLine(ex, ey, p2.X, p2.Y)
	strokeWith(dc, a.Color, a.Width)
}

func drawText(dc *gg.Context, t *shape.TextBox) {
	if t.Body == "" {
		return
	}
	dc.SetFontFace(Face(t.FontSize))
	dc.SetColor(t.Color)
	r := t.Rect
	dc.DrawStringWrapped(t.Body, float64(r.Min.X), float64(r.Min.Y), 0, 0, float64(max(r.Dx(), 1)), 1, gg.AlignLeft)
}

func (p Palette) drawNote(dc *gg.Context, n *shape.Note) {
	half := float64(shape.NoteSize) / 2
	cx := float64(n.Anchor.Min.X) + half
	cy := float64(n.Anchor.Min.Y) + half
	dc.DrawCircle(cx, cy, half)
	dc.SetColor(p.NoteBadge)
	dc.Fill()

	dc.SetFontFace(Face(NoteFontSize))
	dc.SetColor(p.NoteNumber)
	dc.DrawStringAnchored(strconv.Itoa(n.Number), cx, cy, 0.5, 0.35)

	if n.Bubble.Empty() {
		return
	}
	b := n.Bubble
	dc.DrawRoundedRectangle(float64(b.Min.X), float64(b.Min.Y), float64(b.Dx()), float64(b.Dy()), bubbleRadius)
	dc.SetColor(n.BubbleColor)
	dc.FillPreserve()
	dc.SetColor(n.BubbleBorder)
	dc.SetLineWidth(1)
	dc.Stroke()

	dc.SetFontFace(Face(n.FontSize))
	dc.SetColor(n.Color)
	bx := float64(b.Min.X) + float64(b.Dx())/2
	by := float64(b.Min.Y) + float64(b.Dy())/2
	dc.DrawStringWrapped(n.Body, bx, by, 0.5, 0.5, float64(b.Dx()), 1, gg.AlignCenter)
}
