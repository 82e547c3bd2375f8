// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Matrix is a 2x3 affine transform mapping (x, y) to
// (A*x + B*y + C, D*x + E*y + F). Surfaces hold one for the device
// scale; the compositor chains them to place images.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Translate returns a transform that moves points by (dx, dy).
func Translate(dx, dy float64) Matrix {
	return Matrix{A: 1, C: dx, E: 1, F: dy}
}

// Scale returns a transform that scales about the origin.
func Scale(sx, sy float64) Matrix {
	return Matrix{A: sx, E: sy}
}

// Multiply returns m applied after n.
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.B*n.D, B: m.A*n.B + m.B*n.E, C: m.TransformPoint(Pt(n.C, n.F)).X,
		D: m.D*n.A + m.E*n.D, E: m.D*n.B + m.E*n.E, F: m.TransformPoint(Pt(n.C, n.F)).Y,
	}
}

// TransformPoint maps p.
func (m Matrix) TransformPoint(p Point) Point {
	return Pt(m.A*p.X+m.B*p.Y+m.C, m.D*p.X+m.E*p.Y+m.F)
}

// LineScale is the factor applied to stroke widths: the square root of
// the absolute determinant.
func (m Matrix) LineScale() float64 {
	return math.Sqrt(math.Abs(m.A*m.E - m.B*m.D))
}

// Aff3 returns m in the form golang.org/x/image/draw transformers take.
func (m Matrix) Aff3() f64.Aff3 {
	return f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}
