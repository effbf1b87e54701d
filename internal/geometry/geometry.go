// Package geometry holds the integer and vector math shared by the
// annotation engine: handle layout, clamping, hit bands and arrow heads.
package geometry

import (
	"image"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Clamp bounds v to [lo, hi]. When hi < lo the result is lo.
func Clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// ClampPoint bounds each coordinate of p to the inclusive box lo..hi.
func ClampPoint(p, lo, hi image.Point) image.Point {
	return image.Pt(Clamp(p.X, lo.X, hi.X), Clamp(p.Y, lo.Y, hi.Y))
}

// Vec converts an image point to a vector.
func Vec(p image.Point) r2.Vec {
	return r2.Vec{X: float64(p.X), Y: float64(p.Y)}
}

// OnRectBorder reports whether p lies in the band of half-width tol around
// the edge of r. The interior beyond the band is not part of it.
func OnRectBorder(r image.Rectangle, p image.Point, tol int) bool {
	outer := r.Inset(-tol)
	inner := r.Inset(tol)
	return p.In(outer) && !p.In(inner)
}

// OnEllipseBorder reports whether p is near the outline of the ellipse
// inscribed in r, using the implicit equation with a tolerance scaled by
// the horizontal semi-axis.
func OnEllipseBorder(r image.Rectangle, p image.Point, tol int) bool {
	a := float64(r.Dx()) / 2
	b := float64(r.Dy()) / 2
	if a <= 0 || b <= 0 {
		return false
	}
	x := float64(p.X) - (float64(r.Min.X) + a)
	y := float64(p.Y) - (float64(r.Min.Y) + b)
	v := x*x/(a*a) + y*y/(b*b)
	return math.Abs(v-1) <= float64(tol)/a
}

// SegmentBand returns the quadrilateral covering the segment a-b widened by
// tol on each side along its normal.
func SegmentBand(a, b image.Point, tol float64) [4]r2.Vec {
	va, vb := Vec(a), Vec(b)
	d := r2.Sub(vb, va)
	var n r2.Vec
	if l := r2.Norm(d); l > 0 {
		n = r2.Scale(tol/l, r2.Vec{X: d.Y, Y: -d.X})
	}
	return [4]r2.Vec{
		r2.Add(va, n),
		r2.Sub(va, n),
		r2.Sub(vb, n),
		r2.Add(vb, n),
	}
}

// InPolygon tests p against poly with the odd-even rule.
func InPolygon(poly []r2.Vec, p r2.Vec) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		pi, pj := poly[i], poly[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			x := pj.X + (p.Y-pj.Y)*(pi.X-pj.X)/(pi.Y-pj.Y)
			if p.X < x {
				in = !in
			}
		}
	}
	return in
}

// Hotspot is the square of half-side r centred on p.
func Hotspot(p image.Point, r int) image.Rectangle {
	return image.Rect(p.X-r, p.Y-r, p.X+r, p.Y+r)
}

// ArrowHeadAngle is the angle between the shaft and each head segment.
const ArrowHeadAngle = math.Pi / 6

// ArrowHead returns the two outer points of the chevron drawn at end. Each
// head segment is 3*width long and sits ArrowHeadAngle off the reverse
// direction of the shaft.
func ArrowHead(start, end image.Point, width int) (r2.Vec, r2.Vec) {
	ve := Vec(end)
	d := r2.Sub(ve, Vec(start))
	if r2.Norm(d) == 0 {
		return ve, ve
	}
	back := r2.Scale(float64(3*width), r2.Unit(d))
	var origin r2.Vec
	p1 := r2.Sub(ve, r2.Rotate(back, ArrowHeadAngle, origin))
	p2 := r2.Sub(ve, r2.Rotate(back, -ArrowHeadAngle, origin))
	return p1, p2
}

// AxisSnap returns p moved onto the horizontal or vertical line through
// origin, whichever axis has the larger delta.
func AxisSnap(origin, p image.Point) image.Point {
	d := p.Sub(origin)
	if abs(d.X) > abs(d.Y) {
		return image.Pt(p.X, origin.Y)
	}
	return image.Pt(origin.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
