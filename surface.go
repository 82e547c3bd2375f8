// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

import (
	"image"
	"math"
)

// eraseSource is the premultiplied source used for destination-out strokes.
// Only its alpha matters.
var eraseSource = [4]byte{0, 0, 0, 255}

// Surface is the drawable bitmap of one layer (its stroke buffer).
//
// The pixel buffer is sized in device pixels. All drawing methods take
// logical coordinates; the surface applies its device scale once through
// its matrix.
type Surface struct {
	geom   Geometry
	pixmap *Pixmap
	matrix Matrix
}

// NewSurface creates a transparent surface for the given geometry.
func NewSurface(g Geometry) *Surface {
	g = g.normalize()
	w, h := g.DeviceSize()
	return &Surface{
		geom:   g,
		pixmap: NewPixmap(w, h),
		matrix: g.Transform(),
	}
}

// Geometry returns the geometry the surface was sized for.
func (s *Surface) Geometry() Geometry {
	return s.geom
}

// Pixmap returns the device pixel buffer.
func (s *Surface) Pixmap() *Pixmap {
	return s.pixmap
}

// Matrix returns the logical-to-device transform.
func (s *Surface) Matrix() Matrix {
	return s.matrix
}

// Stroke draws a single straight segment from a to b in logical
// coordinates with round caps. ToolPaint composites color source-over;
// ToolErase clears the destination and ignores color. Non-positive widths
// draw nothing.
func (s *Surface) Stroke(a, b Point, mode ToolMode, c RGBA, width float64) {
	src := c.Premul()
	if mode == ToolErase {
		src = eraseSource
	}
	strokeSegment(
		s.pixmap,
		s.matrix.TransformPoint(a),
		s.matrix.TransformPoint(b),
		width*s.matrix.LineScale(),
		src,
		mode.blendMode(),
	)
}

// Fill paints the whole surface with an opaque or translucent color.
func (s *Surface) Fill(c RGBA) {
	s.pixmap.Clear(c)
}

// Clear makes the whole surface transparent.
func (s *Surface) Clear() {
	s.pixmap.Clear(Transparent)
}

// Pixel returns the color of the device pixel under a logical point.
func (s *Surface) Pixel(x, y float64) RGBA {
	d := s.matrix.TransformPoint(Pt(x, y))
	return s.pixmap.GetPixel(int(math.Floor(d.X)), int(math.Floor(d.Y)))
}

// Image returns a read-only view of the device pixels.
func (s *Surface) Image() image.Image {
	return s.pixmap.ToImage()
}

// snapshot copies the current raster content.
func (s *Surface) snapshot() *Pixmap {
	return s.pixmap.Clone()
}
