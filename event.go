// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

// EventKind identifies a pointer or wheel event.
type EventKind uint8

const (
	// PointerDown is a press of a mouse button, pen or finger.
	PointerDown EventKind = iota

	// PointerMove is a movement of a pointer.
	PointerMove

	// PointerUp is a release.
	PointerUp

	// PointerCancel is an interruption by the host (lost capture, gesture
	// takeover). It is handled like PointerUp.
	PointerCancel

	// Wheel is a scroll notch. Only DeltaY is used.
	Wheel

	numEventKinds
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	case Wheel:
		return "wheel"
	default:
		return "unknown"
	}
}

// Event is one input event in viewport coordinates.
type Event struct {
	Kind    EventKind
	Pointer int // pointer id; distinguishes fingers in multi-touch
	X, Y    float64
	DeltaY  float64 // Wheel only; negative scrolls up
}

// Point returns the event position.
func (e Event) Point() Point {
	return Pt(e.X, e.Y)
}

// Down returns a PointerDown event.
func Down(pointer int, x, y float64) Event {
	return Event{Kind: PointerDown, Pointer: pointer, X: x, Y: y}
}

// Move returns a PointerMove event.
func Move(pointer int, x, y float64) Event {
	return Event{Kind: PointerMove, Pointer: pointer, X: x, Y: y}
}

// Up returns a PointerUp event.
func Up(pointer int, x, y float64) Event {
	return Event{Kind: PointerUp, Pointer: pointer, X: x, Y: y}
}

// Cancel returns a PointerCancel event.
func Cancel(pointer int) Event {
	return Event{Kind: PointerCancel, Pointer: pointer}
}

// Scroll returns a Wheel event.
func Scroll(x, y, deltaY float64) Event {
	return Event{Kind: Wheel, X: x, Y: y, DeltaY: deltaY}
}
