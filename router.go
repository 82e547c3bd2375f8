// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

// RouterState is the stroke state of a Router.
type RouterState uint8

const (
	// RouterIdle means no stroke is in progress.
	RouterIdle RouterState = iota

	// RouterStroking means a pointer is drawing on the active layer.
	RouterStroking

	numRouterStates
)

// String returns the state name.
func (s RouterState) String() string {
	switch s {
	case RouterIdle:
		return "idle"
	case RouterStroking:
		return "stroking"
	default:
		return "unknown"
	}
}

type handler func(r *Router, ev Event)

// dispatch is the transition table keyed by state and event kind.
// A nil entry ignores the event.
var dispatch = [numRouterStates][numEventKinds]handler{
	RouterIdle: {
		PointerDown:   (*Router).down,
		PointerMove:   (*Router).moveCaptured,
		PointerUp:     (*Router).release,
		PointerCancel: (*Router).release,
		Wheel:         (*Router).wheel,
	},
	RouterStroking: {
		PointerDown:   (*Router).down,
		PointerMove:   (*Router).strokeMove,
		PointerUp:     (*Router).endStroke,
		PointerCancel: (*Router).endStroke,
		Wheel:         (*Router).wheel,
	},
}

// Router turns pointer events into strokes on the active layer and
// gestures on placed images.
//
// A press on the active layer's surface starts a stroke; each move of the
// stroking pointer draws one straight segment from the previous point, in
// the tool mode read at that moment. Any release ends the stroke. A press
// on an interactive image captures that pointer for the image until it is
// released.
//
// Router is not safe for concurrent use.
type Router struct {
	stack *Stack
	tool  Tool
	state RouterState

	strokePointer int
	last          Point

	captured map[int]*PlacedImage
}

// NewRouter creates a router feeding the given stack. A nil tool uses a
// default ToolState.
func NewRouter(stack *Stack, tool Tool) *Router {
	if tool == nil {
		tool = NewToolState()
	}
	return &Router{
		stack:    stack,
		tool:     tool,
		captured: make(map[int]*PlacedImage),
	}
}

// State returns the current stroke state.
func (r *Router) State() RouterState {
	return r.state
}

// Tool returns the tool provider.
func (r *Router) Tool() Tool {
	return r.tool
}

// Captured returns the image the pointer is bound to, or nil.
func (r *Router) Captured(pointer int) *PlacedImage {
	return r.captured[pointer]
}

// Dispatch handles one event.
func (r *Router) Dispatch(ev Event) {
	if ev.Kind >= numEventKinds {
		return
	}
	if h := dispatch[r.state][ev.Kind]; h != nil {
		h(r, ev)
	}
}

func (r *Router) down(ev Event) {
	r.stack.selectImage(nil)

	hit := r.stack.HitTest(ev.Point())
	switch hit.Kind {
	case HitImage:
		r.captured[ev.Pointer] = hit.Image
		r.stack.selectImage(hit.Image)
		hit.Image.pointerDown(ev.Pointer, hit.Local)
	case HitSurface:
		if r.state != RouterIdle {
			return
		}
		r.state = RouterStroking
		r.strokePointer = ev.Pointer
		r.last = hit.Local
		logFor(logRouter).Debug("sketch: stroke started",
			"layer", uint64(hit.Layer.id), "pointer", ev.Pointer,
			"op", r.tool.Mode().blendMode().String())
	}
}

// moveCaptured forwards a move of a captured pointer to its image.
func (r *Router) moveCaptured(ev Event) {
	img, ok := r.captured[ev.Pointer]
	if !ok {
		return
	}
	if !img.active {
		delete(r.captured, ev.Pointer)
		return
	}
	img.pointerMove(ev.Pointer, r.stack.geom.ToLocal(ev.Point()))
}

func (r *Router) strokeMove(ev Event) {
	if ev.Pointer != r.strokePointer {
		r.moveCaptured(ev)
		return
	}
	cur := r.stack.geom.ToLocal(ev.Point())
	r.stack.Active().surface.Stroke(r.last, cur, r.tool.Mode(), r.tool.StrokeColor(), r.tool.StrokeWidth())
	r.last = cur
}

// release unbinds a captured pointer.
func (r *Router) release(ev Event) {
	img, ok := r.captured[ev.Pointer]
	if !ok {
		return
	}
	delete(r.captured, ev.Pointer)
	img.pointerUp(ev.Pointer)
}

func (r *Router) endStroke(ev Event) {
	r.release(ev)
	r.state = RouterIdle
	logFor(logRouter).Debug("sketch: stroke ended", "pointer", ev.Pointer)
}

func (r *Router) wheel(ev Event) {
	r.stack.Wheel(ev.DeltaY)
}
