package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow added to exported frames.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadow is a soft shadow offset down and to the right.
func DefaultShadow() ShadowOptions {
	return ShadowOptions{Radius: 12, Offset: image.Pt(8, 8), Opacity: 0.5}
}

// Enabled reports whether the options produce any shadow.
func (o ShadowOptions) Enabled() bool { return o.Opacity > 0 }

// Shadow returns frame on a larger transparent canvas with a blurred
// shadow of its alpha behind it.
func Shadow(frame *image.RGBA, opts ShadowOptions) *image.RGBA {
	if frame == nil || frame.Bounds().Empty() || !opts.Enabled() {
		return frame
	}
	opacity := min(opts.Opacity, 1)
	radius := max(opts.Radius, 0)

	src := frame.Bounds()
	padded := src.Inset(-radius)
	cast := padded.Add(opts.Offset)
	total := src.Union(cast)

	alpha := image.NewGray(padded.Sub(padded.Min))
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			if a := frame.RGBAAt(x, y).A; a != 0 {
				alpha.SetGray(x-padded.Min.X, y-padded.Min.Y, color.Gray{Y: a})
			}
		}
	}
	blurred := boxBlur(alpha, radius)

	out := image.NewRGBA(total.Sub(total.Min))
	tint := image.NewUniform(color.RGBA{A: uint8(opacity*255 + 0.5)})
	draw.DrawMask(out, blurred.Bounds().Add(cast.Min.Sub(total.Min)), tint, image.Point{}, blurred, image.Point{}, draw.Over)
	draw.Draw(out, src.Sub(total.Min), frame, src.Min, draw.Over)
	return out
}

// boxBlur runs a horizontal then a vertical running-mean pass over src.
func boxBlur(src *image.Gray, radius int) *image.Gray {
	out := image.NewGray(src.Bounds())
	copy(out.Pix, src.Pix)
	if radius <= 0 {
		return out
	}
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	tmp := image.NewGray(src.Bounds())
	for y := 0; y < h; y++ {
		blurLine(src.Pix[y*src.Stride:], tmp.Pix[y*tmp.Stride:], w, 1, radius)
	}
	for x := 0; x < w; x++ {
		blurLine(tmp.Pix[x:], out.Pix[x:], h, tmp.Stride, radius)
	}
	return out
}

// blurLine averages n samples spaced step apart over a window of radius.
func blurLine(in, out []uint8, n, step, radius int) {
	sums := make([]int, n+1)
	for i := 0; i < n; i++ {
		sums[i+1] = sums[i] + int(in[i*step])
	}
	for i := 0; i < n; i++ {
		lo := max(i-radius, 0)
		hi := min(i+radius, n-1)
		out[i*step] = uint8((sums[hi+1] - sums[lo]) / (hi - lo + 1))
	}
}
