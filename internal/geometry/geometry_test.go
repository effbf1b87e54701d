package geometry

import (
	"image"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestHandleSizeClamped(t *testing.T) {
	cases := []struct{ w, h, want int }{
		{10, 10, 4},
		{100, 400, 5},
		{1000, 1000, 16},
		{2000, 60, 4},
	}
	for _, c := range cases {
		if got := HandleSize(c.w, c.h); got != c.want {
			t.Errorf("HandleSize(%d,%d) = %d, want %d", c.w, c.h, got, c.want)
		}
	}
}

func TestHandleRectsLayout(t *testing.T) {
	r := image.Rect(0, 0, 200, 100)
	rects := HandleRects(r)
	if rects[0] != image.Rect(0, 0, 5, 5) {
		t.Fatalf("top-left handle = %v", rects[0])
	}
	if rects[4] != image.Rect(195, 95, 200, 100) {
		t.Fatalf("bottom-right handle = %v", rects[4])
	}
	if rects[1].Min.X != 98 || rects[1].Min.Y != 0 {
		t.Fatalf("top handle = %v", rects[1])
	}
	for i, hr := range rects {
		if !hr.In(r) {
			t.Errorf("handle %v = %v lies outside %v", Handles[i], hr, r)
		}
	}
}

func TestHandleAt(t *testing.T) {
	r := image.Rect(0, 0, 200, 100)
	if h := HandleAt(r, image.Pt(1, 1)); h != HandleTopLeft {
		t.Fatalf("HandleAt corner = %v", h)
	}
	if h := HandleAt(r, image.Pt(199, 50)); h != HandleRight {
		t.Fatalf("HandleAt right edge = %v", h)
	}
	if h := HandleAt(r, image.Pt(100, 50)); h != HandleNone {
		t.Fatalf("HandleAt centre = %v", h)
	}
}

func TestHandleCursor(t *testing.T) {
	want := map[Handle]Cursor{
		HandleTopLeft:     CursorResizeNWSE,
		HandleBottomRight: CursorResizeNWSE,
		HandleTopRight:    CursorResizeNESW,
		HandleBottomLeft:  CursorResizeNESW,
		HandleTop:         CursorResizeNS,
		HandleBottom:      CursorResizeNS,
		HandleLeft:        CursorResizeEW,
		HandleRight:       CursorResizeEW,
		HandleNone:        CursorDefault,
	}
	for h, c := range want {
		if h.Cursor() != c {
			t.Errorf("%v.Cursor() = %v, want %v", h, h.Cursor(), c)
		}
	}
}

func TestOnRectBorder(t *testing.T) {
	r := image.Rect(0, 0, 100, 100)
	if OnRectBorder(r, image.Pt(50, 50), 10) {
		t.Fatal("centre of rectangle reported on border")
	}
	if !OnRectBorder(r, image.Pt(1, 50), 10) {
		t.Fatal("point 1px inside left edge not on border")
	}
	if OnRectBorder(r, image.Pt(-20, 50), 10) {
		t.Fatal("point far outside reported on border")
	}
}

func TestOnEllipseBorder(t *testing.T) {
	r := image.Rect(0, 0, 100, 60)
	if !OnEllipseBorder(r, image.Pt(0, 30), 10) {
		t.Fatal("leftmost point of ellipse not on border")
	}
	if OnEllipseBorder(r, image.Pt(50, 30), 10) {
		t.Fatal("centre of ellipse reported on border")
	}
	if OnEllipseBorder(image.Rect(5, 5, 5, 20), image.Pt(5, 10), 10) {
		t.Fatal("degenerate ellipse reported a hit")
	}
}

func TestSegmentBand(t *testing.T) {
	band := SegmentBand(image.Pt(0, 0), image.Pt(100, 0), 10)
	if !InPolygon(band[:], r2.Vec{X: 50, Y: 5}) {
		t.Fatal("point near segment outside band")
	}
	if InPolygon(band[:], r2.Vec{X: 50, Y: 15}) {
		t.Fatal("point beyond tolerance inside band")
	}
	if InPolygon(band[:], r2.Vec{X: 110, Y: 0}) {
		t.Fatal("point past the end inside band")
	}
}

func TestArrowHead(t *testing.T) {
	end := image.Pt(100, 0)
	p1, p2 := ArrowHead(image.Pt(0, 0), end, 2)
	reverse := r2.Vec{X: -1}
	for _, p := range []r2.Vec{p1, p2} {
		seg := r2.Sub(p, Vec(end))
		if l := r2.Norm(seg); math.Abs(l-6) > 1e-9 {
			t.Fatalf("head segment length = %v, want 6", l)
		}
		angle := math.Acos(r2.Dot(seg, reverse) / r2.Norm(seg))
		if math.Abs(angle-math.Pi/6) > 1e-9 {
			t.Fatalf("head segment angle = %v, want pi/6", angle)
		}
	}
	if math.Signbit(p1.Y) == math.Signbit(p2.Y) {
		t.Fatalf("head segments on the same side: %v %v", p1, p2)
	}
}

func TestArrowHeadDegenerate(t *testing.T) {
	p1, p2 := ArrowHead(image.Pt(5, 5), image.Pt(5, 5), 3)
	if p1 != Vec(image.Pt(5, 5)) || p2 != p1 {
		t.Fatalf("zero length arrow head = %v %v", p1, p2)
	}
}

func TestAxisSnap(t *testing.T) {
	if got := AxisSnap(image.Pt(10, 10), image.Pt(50, 20)); got != image.Pt(50, 10) {
		t.Fatalf("horizontal snap = %v", got)
	}
	if got := AxisSnap(image.Pt(10, 10), image.Pt(12, 40)); got != image.Pt(10, 40) {
		t.Fatalf("vertical snap = %v", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 10, 0) != 10 {
		t.Fatal("inverted range should return lo")
	}
	if got := ClampPoint(image.Pt(-3, 50), image.Pt(0, 0), image.Pt(20, 20)); got != image.Pt(0, 20) {
		t.Fatalf("ClampPoint = %v", got)
	}
}
