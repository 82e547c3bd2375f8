// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

import (
	"image"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/sketch/internal/blend"
)

// kappa is the cubic Bezier control distance for a quarter circle of radius 1.
const kappa = 0.5522847498

// strokeSegment rasterizes one straight segment from a to b with round caps
// and composites it into pm. Coordinates and width are in device pixels.
//
// A zero-length segment paints a dot of the stroke diameter.
func strokeSegment(pm *Pixmap, a, b Point, width float64, src [4]byte, mode blend.Mode) {
	r := width / 2
	if !(r > 0) || math.IsInf(r, 0) || !finite(a) || !finite(b) {
		return
	}

	// Only the part of the segment within r of the pixmap can cover a
	// pixel, so clip it to the pixmap grown by more than r first. The
	// dropped ends and their caps lie entirely outside the pixmap.
	pad := r + 1
	bounds := pm.Bounds()
	a, b, ok := clipSegment(a, b,
		float64(bounds.Min.X)-pad, float64(bounds.Min.Y)-pad,
		float64(bounds.Max.X)+pad, float64(bounds.Max.Y)+pad)
	if !ok {
		return
	}

	// Rasterize in a local box around the clipped capsule so that every
	// path coordinate lies inside the rasterizer.
	box := image.Rect(
		int(math.Floor(math.Min(a.X, b.X)-pad)),
		int(math.Floor(math.Min(a.Y, b.Y)-pad)),
		int(math.Ceil(math.Max(a.X, b.X)+pad)),
		int(math.Ceil(math.Max(a.Y, b.Y)+pad)),
	)
	clip := box.Intersect(bounds)
	if clip.Empty() {
		return
	}

	off := Pt(float64(box.Min.X), float64(box.Min.Y))
	z := vector.NewRasterizer(box.Dx(), box.Dy())
	capsule(z, a.Sub(off), b.Sub(off), r)

	mask := image.NewAlpha(image.Rect(0, 0, box.Dx(), box.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		row := pm.Row(y)[clip.Min.X*4 : clip.Max.X*4]
		my := y - box.Min.Y
		mx := clip.Min.X - box.Min.X
		cov := mask.Pix[my*mask.Stride+mx : my*mask.Stride+mx+clip.Dx()]
		blend.MaskSpan(row, cov, src, mode)
	}
}

// clipSegment clips the segment ab to the rectangle [x0,x1]x[y0,y1]
// (Liang-Barsky). It reports false when no part of the segment is inside.
func clipSegment(a, b Point, x0, y0, x1, y1 float64) (Point, Point, bool) {
	d := b.Sub(a)
	t0, t1 := 0.0, 1.0
	for _, e := range [4][2]float64{
		{-d.X, a.X - x0},
		{d.X, x1 - a.X},
		{-d.Y, a.Y - y0},
		{d.Y, y1 - a.Y},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = math.Max(t0, t)
		} else {
			t1 = math.Min(t1, t)
		}
		if t0 > t1 {
			return a, b, false
		}
	}
	return a.Add(d.Mul(t0)), a.Add(d.Mul(t1)), true
}

func finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// capsule adds the outline of a round-capped segment of radius r to z.
func capsule(z *vector.Rasterizer, a, b Point, r float64) {
	d := b.Sub(a).Normalize()
	if d == (Point{}) {
		d = Pt(1, 0)
	}
	u := d.Mul(r)        // along the segment
	v := d.Perp().Mul(r) // across the segment
	k := kappa

	moveTo(z, a.Add(v))
	lineTo(z, b.Add(v))
	cubeTo(z, b.Add(v).Add(u.Mul(k)), b.Add(u).Add(v.Mul(k)), b.Add(u))
	cubeTo(z, b.Add(u).Sub(v.Mul(k)), b.Sub(v).Add(u.Mul(k)), b.Sub(v))
	lineTo(z, a.Sub(v))
	cubeTo(z, a.Sub(v).Sub(u.Mul(k)), a.Sub(u).Sub(v.Mul(k)), a.Sub(u))
	cubeTo(z, a.Sub(u).Add(v.Mul(k)), a.Add(v).Sub(u.Mul(k)), a.Add(v))
	z.ClosePath()
}

func moveTo(z *vector.Rasterizer, p Point) {
	z.MoveTo(float32(p.X), float32(p.Y))
}

func lineTo(z *vector.Rasterizer, p Point) {
	z.LineTo(float32(p.X), float32(p.Y))
}

func cubeTo(z *vector.Rasterizer, c1, c2, p Point) {
	z.CubeTo(float32(c1.X), float32(c1.Y), float32(c2.X), float32(c2.Y), float32(p.X), float32(p.Y))
}
