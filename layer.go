// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

// LayerID identifies a layer within its stack. IDs are never reused.
type LayerID uint64

// Layer is one independently drawable plane: a stroke surface plus the
// images placed on it. Images are held in placement order; later images
// paint above earlier ones.
type Layer struct {
	id      LayerID
	name    string
	surface *Surface
	images  []*PlacedImage
	active  bool
	z       int
}

// ID returns the layer identifier.
func (l *Layer) ID() LayerID { return l.id }

// Name returns the display name.
func (l *Layer) Name() string { return l.name }

// Surface returns the stroke surface.
func (l *Layer) Surface() *Surface { return l.surface }

// Active reports whether this is the active layer.
func (l *Layer) Active() bool { return l.active }

// Z returns the stacking index: 0 is the bottom of the stack.
func (l *Layer) Z() int { return l.z }

// Images returns the placed images in paint order. The slice is a copy.
func (l *Layer) Images() []*PlacedImage {
	out := make([]*PlacedImage, len(l.images))
	copy(out, l.images)
	return out
}

// setActive toggles the layer and the pointer eligibility of its images.
func (l *Layer) setActive(on bool) {
	l.active = on
	for _, img := range l.images {
		img.setInteractive(on)
	}
}

// imageAt returns the top-most image on the layer containing the local
// point, or nil.
func (l *Layer) imageAt(pt Point) *PlacedImage {
	for i := len(l.images) - 1; i >= 0; i-- {
		if l.images[i].Contains(pt) {
			return l.images[i]
		}
	}
	return nil
}
