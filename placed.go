// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

import "math"

// Placed image defaults.
const (
	// DefaultMinImageScale is the smallest scale a gesture or wheel can reach.
	DefaultMinImageScale = 0.05

	// DefaultWheelStep is the relative scale change of one wheel notch.
	DefaultWheelStep = 0.1
)

// ImageID identifies a placed image within its stack.
type ImageID uint64

// PlacedImage is a raster image positioned on one layer.
//
// Position is the top-left corner in local logical coordinates. Scale
// multiplies the natural size; it never drops below the configured
// minimum. A PlacedImage is part of a Stack and follows its ownership
// rules: mutate it only through the stack's owner.
type PlacedImage struct {
	id     ImageID
	layer  LayerID
	src    ImageSource
	size   Point // natural size in logical pixels
	pos    Point
	scale  float64
	min    float64
	step   float64
	active bool
	g      gesture
}

func newPlacedImage(id ImageID, layer LayerID, src ImageSource, size, pos Point, scale float64, o *options) *PlacedImage {
	p := &PlacedImage{
		id:    id,
		layer: layer,
		src:   src,
		size:  size,
		pos:   pos,
		min:   o.minImageScale,
		step:  o.wheelStep,
	}
	p.setScale(scale)
	return p
}

// ID returns the image identifier.
func (p *PlacedImage) ID() ImageID { return p.id }

// Layer returns the owning layer.
func (p *PlacedImage) Layer() LayerID { return p.layer }

// Source returns the image source the placement decodes from.
func (p *PlacedImage) Source() ImageSource { return p.src }

// Position returns the top-left corner in local logical coordinates.
func (p *PlacedImage) Position() Point { return p.pos }

// Scale returns the current scale factor.
func (p *PlacedImage) Scale() float64 { return p.scale }

// NaturalSize returns the decoded width and height.
func (p *PlacedImage) NaturalSize() Point { return p.size }

// Size returns the displayed width and height.
func (p *PlacedImage) Size() Point { return p.size.Mul(p.scale) }

// Bounds returns the displayed rectangle in local logical coordinates.
func (p *PlacedImage) Bounds() Rect {
	return Rect{Min: p.pos, Max: p.pos.Add(p.Size())}
}

// Interactive reports whether the image accepts pointer input. Only images
// on the active layer are interactive.
func (p *PlacedImage) Interactive() bool { return p.active }

// Gesture returns the current gesture state.
func (p *PlacedImage) Gesture() GestureState { return p.g.state }

// Pointers returns the number of pointers currently held on the image.
func (p *PlacedImage) Pointers() int { return p.g.active() }

// Contains reports whether a local logical point lies on the image.
func (p *PlacedImage) Contains(pt Point) bool {
	return p.Bounds().Contains(pt)
}

func (p *PlacedImage) setScale(s float64) {
	if math.IsNaN(s) || s < p.min {
		s = p.min
	}
	p.scale = s
}

func (p *PlacedImage) setInteractive(on bool) {
	p.active = on
	if !on {
		p.g.reset()
	}
}

// pointerDown, pointerMove and pointerUp take local logical points.

func (p *PlacedImage) pointerDown(id int, at Point) {
	p.g.down(id, at, p)
}

func (p *PlacedImage) pointerMove(id int, at Point) {
	p.g.move(id, at, p)
}

func (p *PlacedImage) pointerUp(id int) {
	p.g.up(id)
}

// wheel scales the image by one notch: up (deltaY < 0) enlarges by the
// wheel step, down shrinks by it. A zero delta is a no-op.
func (p *PlacedImage) wheel(deltaY float64) {
	switch {
	case deltaY < 0:
		p.setScale(p.scale * (1 + p.step))
	case deltaY > 0:
		p.setScale(p.scale * (1 - p.step))
	}
}
