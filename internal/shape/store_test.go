package shape

import (
	"image"
	"testing"
)

func TestUndoIsLIFO(t *testing.T) {
	var st Store
	a := &Rect{Rect: image.Rect(0, 0, 10, 10)}
	b := &Ellipse{Rect: image.Rect(5, 5, 20, 20)}
	c := &ArrowLine{Points: []image.Point{{0, 0}, {5, 5}}}
	st.Append(a)
	st.Append(b)
	st.Append(c)

	if got, ok := st.PopLast(); !ok || got != Shape(c) {
		t.Fatalf("first undo removed %v, want arrow", got)
	}
	if got, ok := st.PopLast(); !ok || got != Shape(b) {
		t.Fatalf("second undo removed %v, want ellipse", got)
	}
	if st.Len() != 1 || st.At(0) != Shape(a) {
		t.Fatalf("store after undo = %d shapes, want only the rectangle", st.Len())
	}
}

func TestPopLastEmpty(t *testing.T) {
	var st Store
	if _, ok := st.PopLast(); ok {
		t.Fatal("PopLast on empty store reported a shape")
	}
}

func TestIterationOrder(t *testing.T) {
	var st Store
	for i := 0; i < 3; i++ {
		st.Append(&Rect{Width: i + 1})
	}
	var forward, backward []int
	for _, s := range st.All() {
		forward = append(forward, s.(*Rect).Width)
	}
	for _, s := range st.Backward() {
		backward = append(backward, s.(*Rect).Width)
	}
	if forward[0] != 1 || forward[2] != 3 {
		t.Fatalf("All order = %v", forward)
	}
	if backward[0] != 3 || backward[2] != 1 {
		t.Fatalf("Backward order = %v", backward)
	}
}

func TestAtOutOfRange(t *testing.T) {
	var st Store
	st.Append(&Rect{})
	if st.At(-1) != nil || st.At(1) != nil {
		t.Fatal("At out of range returned a shape")
	}
	st.Clear()
	if st.Len() != 0 || st.Last() != nil {
		t.Fatal("Clear left shapes behind")
	}
}

func TestNoteTextRoundTrip(t *testing.T) {
	n := &Note{Number: 7, Body: "check. this value"}
	if n.Text() != "7. check. this value" {
		t.Fatalf("Text = %q", n.Text())
	}
	if BodyFromText(n.Text()) != n.Body {
		t.Fatalf("BodyFromText = %q", BodyFromText(n.Text()))
	}
}

func TestNoteTranslateKeepsBubbleOffset(t *testing.T) {
	anchor := image.Rect(10, 10, 10+NoteSize, 10+NoteSize)
	n := &Note{Anchor: anchor, Bubble: BubbleFor(anchor, image.Pt(60, 40))}
	before := n.Bubble.Min.Sub(n.Anchor.Min)
	n.Translate(image.Pt(15, -4))
	if got := n.Bubble.Min.Sub(n.Anchor.Min); got != before {
		t.Fatalf("bubble offset changed from %v to %v", before, got)
	}
	if n.Bubble.Min.X != n.Anchor.Min.X+39 {
		t.Fatalf("bubble x = %d, anchor x = %d", n.Bubble.Min.X, n.Anchor.Min.X)
	}
}

func TestDegenerate(t *testing.T) {
	cases := []struct {
		s    Shape
		want bool
	}{
		{&Rect{Rect: image.Rect(5, 5, 5, 5)}, true},
		{&Rect{Rect: image.Rect(5, 5, 6, 9)}, false},
		{&Ellipse{Rect: image.Rect(0, 0, 10, 0)}, true},
		{&PenStroke{Stroke{Points: []image.Point{{1, 1}}}}, true},
		{&MaskStroke{Stroke{Points: []image.Point{{1, 1}, {2, 2}}}}, false},
		{&ArrowLine{Points: []image.Point{{1, 1}}}, true},
		{&ArrowLine{Points: []image.Point{{1, 1}, {1, 1}}}, true},
		{&TextBox{}, true},
		{&Note{Body: "x"}, false},
	}
	for _, c := range cases {
		if got := Degenerate(c.s); got != c.want {
			t.Errorf("Degenerate(%v %+v) = %v, want %v", c.s.Kind(), c.s, got, c.want)
		}
	}
}

func TestKinds(t *testing.T) {
	cases := []struct {
		s    Shape
		kind Kind
		name string
	}{
		{&Rect{}, KindRectangle, "rectangle"},
		{&Ellipse{}, KindEllipse, "ellipse"},
		{&TextBox{}, KindText, "text"},
		{&PenStroke{}, KindPen, "pen"},
		{&MaskStroke{}, KindMask, "mask"},
		{&Note{}, KindNote, "note"},
		{&ArrowLine{}, KindArrow, "arrow"},
	}
	seen := map[Kind]bool{}
	for _, c := range cases {
		if got := c.s.Kind(); got != c.kind {
			t.Errorf("%T.Kind() = %v, want %v", c.s, got, c.kind)
		}
		if got := c.kind.String(); got != c.name {
			t.Errorf("%T kind name = %q, want %q", c.s, got, c.name)
		}
		if seen[c.kind] {
			t.Errorf("%T shares kind %v", c.s, c.kind)
		}
		seen[c.kind] = true
	}
	if got := Kind(99).String(); got != "Kind(99)" {
		t.Errorf("unknown kind = %q", got)
	}
}
