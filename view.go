// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

// StackView is a read-only projection of a Stack for presentation layers:
// layer-list widgets and image overlays. It shares no state with the
// stack.
type StackView struct {
	Width  float64
	Height float64
	Scale  float64
	Active int
	Layers []LayerView // bottom to top
}

// LayerView describes one layer.
type LayerView struct {
	ID     LayerID
	Name   string
	Z      int
	Active bool
	Images []ImageView // paint order
}

// ImageView describes one placed image in local logical coordinates.
type ImageView struct {
	ID          ImageID
	X, Y        float64
	Scale       float64
	Width       float64 // displayed
	Height      float64 // displayed
	Interactive bool
	Selected    bool
}

// View returns the current projection of the stack.
func (s *Stack) View() StackView {
	v := StackView{
		Width:  s.geom.Width,
		Height: s.geom.Height,
		Scale:  s.geom.Scale,
		Active: s.active,
		Layers: make([]LayerView, len(s.layers)),
	}
	for i, l := range s.layers {
		lv := LayerView{
			ID:     l.id,
			Name:   l.name,
			Z:      l.z,
			Active: l.active,
			Images: make([]ImageView, len(l.images)),
		}
		for j, img := range l.images {
			size := img.Size()
			lv.Images[j] = ImageView{
				ID:          img.id,
				X:           img.pos.X,
				Y:           img.pos.Y,
				Scale:       img.scale,
				Width:       size.X,
				Height:      size.Y,
				Interactive: img.active,
				Selected:    img == s.selected,
			}
		}
		v.Layers[i] = lv
	}
	return v
}

// TopDown returns the layers top first, the order layer lists display.
func (v StackView) TopDown() []LayerView {
	out := make([]LayerView, len(v.Layers))
	for i, l := range v.Layers {
		out[len(v.Layers)-1-i] = l
	}
	return out
}
