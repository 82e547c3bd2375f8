// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

// GestureState is the interaction state of one placed image.
type GestureState uint8

const (
	// GestureIdle means no gesture is in progress.
	GestureIdle GestureState = iota

	// GestureDragging means one pointer is moving the image.
	GestureDragging

	// GesturePinching means two pointers are scaling the image.
	GesturePinching
)

// String returns the gesture state name.
func (s GestureState) String() string {
	switch s {
	case GestureIdle:
		return "idle"
	case GestureDragging:
		return "dragging"
	case GesturePinching:
		return "pinching"
	default:
		return "unknown"
	}
}

// gesture tracks the pointers held on one placed image and the baselines
// of the drag or pinch they drive.
//
// Pointer positions are local logical coordinates. Only deltas and
// distances are used, so the painting-area origin cancels out.
type gesture struct {
	pointers map[int]Point
	order    []int // pointer ids in press order

	state GestureState

	// drag baseline
	dragID    int
	dragStart Point
	basePos   Point

	// pinch baseline
	pinchA, pinchB int
	initialDist    float64
	baseScale      float64
}

func (g *gesture) active() int {
	return len(g.order)
}

// down registers a pointer. The first pointer starts a drag, the second
// starts a pinch; further pointers are tracked but ignored.
func (g *gesture) down(id int, at Point, img *PlacedImage) {
	if g.pointers == nil {
		g.pointers = make(map[int]Point, 2)
	}
	if _, held := g.pointers[id]; held {
		g.pointers[id] = at
		return
	}
	g.pointers[id] = at
	g.order = append(g.order, id)

	switch len(g.order) {
	case 1:
		g.state = GestureDragging
		g.dragID = id
		g.dragStart = at
		g.basePos = img.pos
	case 2:
		// Drag stops accumulating; the pinch baseline is taken fresh from
		// the two current pointer positions.
		g.state = GesturePinching
		g.pinchA, g.pinchB = g.order[0], g.order[1]
		g.initialDist = g.pointers[g.pinchA].Distance(g.pointers[g.pinchB])
		g.baseScale = img.scale
	}
}

// move updates a held pointer and applies the drag or pinch it drives.
func (g *gesture) move(id int, at Point, img *PlacedImage) {
	if _, held := g.pointers[id]; !held {
		return
	}
	g.pointers[id] = at

	switch g.state {
	case GestureDragging:
		if id == g.dragID {
			img.pos = g.basePos.Add(at.Sub(g.dragStart))
		}
	case GesturePinching:
		if (id == g.pinchA || id == g.pinchB) && g.initialDist > 0 {
			d := g.pointers[g.pinchA].Distance(g.pointers[g.pinchB])
			img.setScale(g.baseScale * d / g.initialDist)
		}
	}
}

// up releases a pointer. Ending a pinch does not resume dragging with the
// remaining pointer; a fresh press is needed. When no pointers remain all
// baselines are cleared.
func (g *gesture) up(id int) {
	if _, held := g.pointers[id]; !held {
		return
	}
	delete(g.pointers, id)
	for i, p := range g.order {
		if p == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}

	switch g.state {
	case GestureDragging:
		if id == g.dragID {
			g.state = GestureIdle
		}
	case GesturePinching:
		if id == g.pinchA || id == g.pinchB {
			g.state = GestureIdle
		}
	}

	if len(g.order) == 0 {
		g.reset()
	}
}

// reset drops every pointer and baseline.
func (g *gesture) reset() {
	*g = gesture{}
}
