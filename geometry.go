// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

import "math"

const (
	// MinSurfaceSize is the smallest logical width or height of the
	// painting area. Smaller measurements are raised to it.
	MinSurfaceSize = 10

	// DefaultSurfaceSize replaces a logical width or height that could not
	// be measured (zero, negative or NaN).
	DefaultSurfaceSize = 600
)

// Geometry describes the shared painting area: its logical (CSS pixel)
// size, the device scale factor and the viewport position of its top-left
// corner.
//
// Every layer surface shares one Geometry. Device pixel dimensions are
// the logical dimensions multiplied by Scale, rounded to integers.
type Geometry struct {
	Width  float64
	Height float64
	Scale  float64
	Origin Point
}

// NewGeometry returns a normalized geometry for the given logical size and
// device scale, with the origin at the viewport origin.
func NewGeometry(width, height, scale float64) Geometry {
	return Geometry{Width: width, Height: height, Scale: scale}.normalize()
}

// normalize substitutes safe values for degenerate measurements.
func (g Geometry) normalize() Geometry {
	g.Width = normalizeLength(g.Width)
	g.Height = normalizeLength(g.Height)
	if !(g.Scale >= 1) || math.IsInf(g.Scale, 0) {
		g.Scale = 1
	}
	return g
}

func normalizeLength(v float64) float64 {
	switch {
	case !(v > 0) || math.IsInf(v, 0):
		return DefaultSurfaceSize
	case v < MinSurfaceSize:
		return MinSurfaceSize
	default:
		return math.Round(v)
	}
}

// DeviceSize returns the surface dimensions in device pixels.
func (g Geometry) DeviceSize() (width, height int) {
	return int(math.Round(g.Width * g.Scale)), int(math.Round(g.Height * g.Scale))
}

// Transform returns the one-time logical-to-device scale transform
// applied to every surface.
func (g Geometry) Transform() Matrix {
	return Scale(g.Scale, g.Scale)
}

// ToLocal converts a viewport point to painting-area local coordinates.
func (g Geometry) ToLocal(viewport Point) Point {
	return viewport.Sub(g.Origin)
}

// ToViewport converts a painting-area local point to viewport coordinates.
func (g Geometry) ToViewport(local Point) Point {
	return local.Add(g.Origin)
}

// Bounds returns the painting area in local coordinates.
func (g Geometry) Bounds() Rect {
	return Rect{Max: Pt(g.Width, g.Height)}
}

// Contains reports whether a local point lies inside the painting area.
func (g Geometry) Contains(local Point) bool {
	return g.Bounds().Contains(local)
}

// SameSize reports whether two geometries have the same logical size.
func (g Geometry) SameSize(other Geometry) bool {
	return g.Width == other.Width && g.Height == other.Height
}
