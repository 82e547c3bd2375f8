// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Default layer names.
const (
	BackgroundLayerName = "Background"
	firstLayerName      = "Layer 1"
)

// HitKind classifies the result of a hit test.
type HitKind uint8

const (
	// HitNone means nothing pointer-eligible is under the point.
	HitNone HitKind = iota

	// HitSurface means the active layer's stroke surface is under the point.
	HitSurface

	// HitImage means an interactive placed image is under the point.
	HitImage
)

// String returns the hit kind name.
func (k HitKind) String() string {
	switch k {
	case HitNone:
		return "none"
	case HitSurface:
		return "surface"
	case HitImage:
		return "image"
	default:
		return "unknown"
	}
}

// Hit is the result of Stack.HitTest.
type Hit struct {
	Kind  HitKind
	Layer *Layer
	Image *PlacedImage
	// Local is the hit point in painting-area local coordinates.
	Local Point
}

// Stack is the ordered collection of layers with exactly one active layer.
//
// Index 0 is the bottom of the stack and renders first. The stack never
// holds fewer than one layer. Every layer surface shares the stack
// geometry.
//
// Stack is not safe for concurrent use. Session serializes access for
// multi-goroutine hosts.
type Stack struct {
	opts   options
	geom   Geometry
	layers []*Layer
	active int

	nextLayer LayerID
	nextImage ImageID

	// selected is the wheel target: the last image pressed.
	selected *PlacedImage
}

// NewStack creates a stack sized to the configured geometry.
//
// By default the stack holds a "Background" layer filled with the
// background color and an empty "Layer 1" above it, which is active.
// WithoutBackground starts with the single empty layer instead.
func NewStack(opts ...Option) *Stack {
	o := buildOptions(opts)
	s := &Stack{opts: o, geom: o.geometry}
	if !o.noBackground {
		s.AddLayer(BackgroundLayerName)
		s.layers[0].surface.Fill(o.background)
	}
	s.AddLayer(firstLayerName)
	return s
}

// Geometry returns the shared surface geometry.
func (s *Stack) Geometry() Geometry {
	return s.geom
}

// SetOrigin moves the painting area within the viewport. Surfaces are not
// touched.
func (s *Stack) SetOrigin(x, y float64) {
	s.geom.Origin = Pt(x, y)
}

// Len returns the number of layers.
func (s *Stack) Len() int {
	return len(s.layers)
}

// Layer returns the layer at index i, or nil when out of range.
func (s *Stack) Layer(i int) *Layer {
	if i < 0 || i >= len(s.layers) {
		return nil
	}
	return s.layers[i]
}

// Layers returns the layers bottom to top. The slice is a copy.
func (s *Stack) Layers() []*Layer {
	out := make([]*Layer, len(s.layers))
	copy(out, s.layers)
	return out
}

// IndexOf returns the index of the layer with the given id, or -1.
func (s *Stack) IndexOf(id LayerID) int {
	for i, l := range s.layers {
		if l.id == id {
			return i
		}
	}
	return -1
}

// Active returns the active layer.
func (s *Stack) Active() *Layer {
	return s.layers[s.active]
}

// ActiveIndex returns the index of the active layer.
func (s *Stack) ActiveIndex() int {
	return s.active
}

// CanRemove reports whether RemoveLayer could succeed.
func (s *Stack) CanRemove() bool {
	return len(s.layers) > 1
}

// AddLayer appends a new empty layer on top of the stack and makes it
// active. An empty name becomes "Layer N" where N is the new index.
func (s *Stack) AddLayer(name string) LayerID {
	if name == "" {
		name = fmt.Sprintf("Layer %d", len(s.layers))
	}
	s.nextLayer++
	l := &Layer{
		id:      s.nextLayer,
		name:    name,
		surface: NewSurface(s.geom),
		z:       len(s.layers),
	}
	s.layers = append(s.layers, l)
	s.SetActive(len(s.layers) - 1)

	logFor(logStack).Debug("sketch: layer added", "id", uint64(l.id), "name", name, "layers", len(s.layers))
	return l.id
}

// RemoveLayer removes the layer at index i. It does nothing and returns
// false when only one layer remains or i is out of range.
//
// The removed layer's images are destroyed; sources no longer placed on
// any remaining layer are released. The active selection moves to
// min(previous active, new length - 1).
func (s *Stack) RemoveLayer(i int) bool {
	if len(s.layers) <= 1 || i < 0 || i >= len(s.layers) {
		return false
	}
	removed := s.layers[i]
	s.layers = append(s.layers[:i], s.layers[i+1:]...)
	for z, l := range s.layers {
		l.z = z
	}
	if s.selected != nil && s.selected.layer == removed.id {
		s.selected = nil
	}
	s.releaseImages(removed)
	s.SetActive(min(s.active, len(s.layers)-1))

	logFor(logStack).Debug("sketch: layer removed", "id", uint64(removed.id), "layers", len(s.layers))
	return true
}

// RemoveActiveLayer removes the active layer.
func (s *Stack) RemoveActiveLayer() bool {
	return s.RemoveLayer(s.active)
}

// releaseImages destroys the images of a removed layer. Each one drops
// its reference on the source; a source still placed elsewhere stays alive.
func (s *Stack) releaseImages(removed *Layer) {
	for _, img := range removed.images {
		img.setInteractive(false)
		if ps, ok := img.src.(placedSource); ok {
			ps.drop()
		}
	}
	removed.images = nil
}

// SetActive selects the layer at index i and recomputes pointer
// eligibility of every layer's surface and images. It does nothing and
// returns false when i is out of range. Selecting the active layer again
// is harmless.
func (s *Stack) SetActive(i int) bool {
	if i < 0 || i >= len(s.layers) {
		return false
	}
	s.active = i
	for j, l := range s.layers {
		l.setActive(j == i)
	}
	if s.selected != nil && !s.selected.active {
		s.selected = nil
	}
	return true
}

// ClearActive makes the active layer's surface transparent. Placed images
// are kept.
func (s *Stack) ClearActive() {
	s.Active().surface.Clear()
}

// HitTest resolves a viewport point to the top-most pointer-eligible
// element. Only the active layer is eligible. Its images are checked
// last-placed first and take priority over its surface.
func (s *Stack) HitTest(viewport Point) Hit {
	local := s.geom.ToLocal(viewport)
	for i := len(s.layers) - 1; i >= 0; i-- {
		l := s.layers[i]
		if !l.active {
			continue
		}
		if img := l.imageAt(local); img != nil {
			return Hit{Kind: HitImage, Layer: l, Image: img, Local: local}
		}
		if s.geom.Contains(local) {
			return Hit{Kind: HitSurface, Layer: l, Local: local}
		}
	}
	return Hit{Kind: HitNone, Local: local}
}

// Selected returns the current wheel target, or nil.
func (s *Stack) Selected() *PlacedImage {
	return s.selected
}

func (s *Stack) selectImage(img *PlacedImage) {
	s.selected = img
}

// Wheel scales the selected image by one wheel notch. It returns false
// when no interactive image is selected or deltaY is zero.
func (s *Stack) Wheel(deltaY float64) bool {
	img := s.selected
	if img == nil || !img.active || deltaY == 0 || math.IsNaN(deltaY) {
		return false
	}
	img.wheel(deltaY)
	return true
}

// PlaceImage decodes src once and places it on the active layer.
//
// With a nil point the image is centered on the painting area and fitted
// against the whole area. Otherwise its top-left corner is anchored at the
// viewport point and it is fitted against the area right of and below the
// anchor. The fit scale is min(1, r*availW/w, r*availH/h) with r the
// configured fit ratio.
//
// A decode failure returns an error wrapping ErrDecode and places nothing.
func (s *Stack) PlaceImage(ctx context.Context, src ImageSource, at *Point) (*PlacedImage, error) {
	size, err := naturalSize(ctx, src)
	if err != nil {
		return nil, err
	}
	return s.place(src, size, at), nil
}

// naturalSize decodes src once and returns its pixel dimensions.
func naturalSize(ctx context.Context, src ImageSource) (Point, error) {
	if src == nil {
		return Point{}, fmt.Errorf("sketch: place image: %w: nil source", ErrDecode)
	}
	img, err := src.Decode(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return Point{}, ctx.Err()
		}
		return Point{}, fmt.Errorf("sketch: place image: %w", wrapDecode(err))
	}
	b := img.Bounds()
	if b.Empty() {
		return Point{}, fmt.Errorf("sketch: place image: %w: empty bounds", ErrDecode)
	}
	return Pt(float64(b.Dx()), float64(b.Dy())), nil
}

// place binds an image of known natural size to the active layer.
func (s *Stack) place(src ImageSource, size Point, at *Point) *PlacedImage {
	var pos Point
	var scale float64
	if at == nil {
		scale = s.fitScale(size, s.geom.Width, s.geom.Height)
		shown := size.Mul(scale)
		pos = Pt((s.geom.Width-shown.X)/2, (s.geom.Height-shown.Y)/2)
	} else {
		pos = s.geom.ToLocal(*at)
		scale = s.fitScale(size, s.geom.Width-pos.X, s.geom.Height-pos.Y)
	}

	layer := s.Active()
	s.nextImage++
	p := newPlacedImage(s.nextImage, layer.id, src, size, pos, scale, &s.opts)
	p.setInteractive(true)
	if ps, ok := src.(placedSource); ok {
		ps.retain()
	}
	layer.images = append(layer.images, p)
	s.selected = p

	logFor(logStack).Debug("sketch: image placed", "id", uint64(p.id), "layer", uint64(layer.id), "scale", scale)
	return p
}

func (s *Stack) fitScale(size Point, availW, availH float64) float64 {
	r := s.opts.fitRatio
	scale := 1.0
	if size.X > 0 && availW > 0 {
		scale = math.Min(scale, r*availW/size.X)
	}
	if size.Y > 0 && availH > 0 {
		scale = math.Min(scale, r*availH/size.Y)
	}
	return scale
}

// wrapDecode makes sure a decode error matches ErrDecode.
func wrapDecode(err error) error {
	if errors.Is(err, ErrDecode) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrDecode, err)
}
