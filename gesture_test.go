// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

import (
	"testing"
)

func testImage(pos Point, scale float64) *PlacedImage {
	o := defaultOptions()
	p := newPlacedImage(1, 1, StaticImage(solidImage(100, 50, opaqueRed)), Pt(100, 50), pos, scale, &o)
	p.setInteractive(true)
	return p
}

func TestGestureDrag(t *testing.T) {
	p := testImage(Pt(10, 10), 1)

	p.pointerDown(1, Pt(20, 20))
	if p.Gesture() != GestureDragging {
		t.Fatalf("state = %v, want dragging", p.Gesture())
	}
	p.pointerMove(1, Pt(50, 35))
	if got := p.Position(); got != Pt(40, 25) {
		t.Errorf("Position() = %v, want (40,25)", got)
	}
	p.pointerMove(1, Pt(15, 20))
	if got := p.Position(); got != Pt(5, 10) {
		t.Errorf("Position() = %v, want (5,10)", got)
	}
	p.pointerUp(1)
	if p.Gesture() != GestureIdle || p.Pointers() != 0 {
		t.Errorf("after up: state=%v pointers=%d", p.Gesture(), p.Pointers())
	}
	if p.Scale() != 1 {
		t.Errorf("drag changed scale to %v", p.Scale())
	}
}

func TestGesturePinchThenDrag(t *testing.T) {
	p := testImage(Pt(0, 0), 1)

	p.pointerDown(1, Pt(0, 0))
	p.pointerDown(2, Pt(100, 0))
	if p.Gesture() != GesturePinching {
		t.Fatalf("state = %v, want pinching", p.Gesture())
	}
	p.pointerMove(2, Pt(150, 0))
	if !near(p.Scale(), 1.5) {
		t.Errorf("Scale() = %v, want 1.5", p.Scale())
	}
	if p.Position() != (Point{}) {
		t.Errorf("pinch moved image to %v", p.Position())
	}
	p.pointerUp(1)
	p.pointerUp(2)

	p.pointerDown(3, Pt(10, 10))
	p.pointerMove(3, Pt(20, 30))
	if got := p.Position(); got != Pt(10, 20) {
		t.Errorf("Position() = %v, want (10,20)", got)
	}
	if !near(p.Scale(), 1.5) {
		t.Errorf("drag changed scale to %v, want 1.5", p.Scale())
	}
}

func TestGesturePinchReleaseDoesNotResumeDrag(t *testing.T) {
	p := testImage(Pt(5, 5), 1)

	p.pointerDown(1, Pt(10, 10))
	p.pointerMove(1, Pt(20, 10)) // drag to (15,5)
	p.pointerDown(2, Pt(60, 10))
	p.pointerUp(2)
	if p.Gesture() != GestureIdle {
		t.Fatalf("state after pinch release = %v, want idle", p.Gesture())
	}
	p.pointerMove(1, Pt(90, 90))
	if got := p.Position(); got != Pt(15, 5) {
		t.Errorf("remaining pointer moved image to %v, want (15,5)", got)
	}
	if p.Pointers() != 1 {
		t.Errorf("Pointers() = %d, want 1", p.Pointers())
	}
	p.pointerUp(1)

	// A fresh press drags again without a jump.
	p.pointerDown(1, Pt(90, 90))
	p.pointerMove(1, Pt(91, 92))
	if got := p.Position(); got != Pt(16, 7) {
		t.Errorf("Position() = %v, want (16,7)", got)
	}
}

func TestGesturePinchScaleClamp(t *testing.T) {
	p := testImage(Pt(0, 0), 1)
	p.pointerDown(1, Pt(0, 0))
	p.pointerDown(2, Pt(100, 0))
	p.pointerMove(2, Pt(1, 0))
	if !near(p.Scale(), DefaultMinImageScale) {
		t.Errorf("Scale() = %v, want %v", p.Scale(), DefaultMinImageScale)
	}
}

func TestGesturePinchZeroInitialDistance(t *testing.T) {
	p := testImage(Pt(0, 0), 2)
	p.pointerDown(1, Pt(30, 30))
	p.pointerDown(2, Pt(30, 30))
	p.pointerMove(2, Pt(80, 30))
	if p.Scale() != 2 {
		t.Errorf("Scale() = %v, want 2 (zero baseline ignored)", p.Scale())
	}
}

func TestGestureThirdPointerIgnored(t *testing.T) {
	p := testImage(Pt(0, 0), 1)
	p.pointerDown(1, Pt(0, 0))
	p.pointerDown(2, Pt(100, 0))
	p.pointerDown(3, Pt(50, 50))
	p.pointerMove(3, Pt(500, 500))
	if p.Scale() != 1 || p.Position() != (Point{}) {
		t.Errorf("third pointer changed image: scale=%v pos=%v", p.Scale(), p.Position())
	}
	if p.Pointers() != 3 {
		t.Errorf("Pointers() = %d, want 3", p.Pointers())
	}
}

func TestGestureResetOnDeactivate(t *testing.T) {
	p := testImage(Pt(0, 0), 1)
	p.pointerDown(1, Pt(0, 0))
	p.setInteractive(false)
	p.pointerMove(1, Pt(40, 40))
	if p.Position() != (Point{}) {
		t.Errorf("inactive image moved to %v", p.Position())
	}
	if p.Gesture() != GestureIdle {
		t.Errorf("state = %v, want idle", p.Gesture())
	}
}

func TestPlacedImageWheel(t *testing.T) {
	tests := []struct {
		name   string
		deltas []float64
		want   float64
	}{
		{"up", []float64{-1}, 1.1},
		{"down", []float64{3}, 0.9},
		{"zero", []float64{0}, 1},
		{"up then down", []float64{-1, 1}, 0.99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testImage(Pt(0, 0), 1)
			for _, d := range tt.deltas {
				p.wheel(d)
			}
			if !near(p.Scale(), tt.want) {
				t.Errorf("Scale() = %v, want %v", p.Scale(), tt.want)
			}
		})
	}
}

func TestPlacedImageWheelFloor(t *testing.T) {
	p := testImage(Pt(0, 0), 1)
	for range 100 {
		p.wheel(1)
	}
	if !near(p.Scale(), DefaultMinImageScale) {
		t.Errorf("Scale() = %v, want %v", p.Scale(), DefaultMinImageScale)
	}
}

func TestPlacedImageBounds(t *testing.T) {
	p := testImage(Pt(10, 20), 0.5)
	b := p.Bounds()
	if b.Min != Pt(10, 20) || b.Max != Pt(60, 45) {
		t.Errorf("Bounds() = %v, want (10,20)-(60,45)", b)
	}
	if !p.Contains(Pt(10, 20)) || p.Contains(Pt(60, 30)) {
		t.Error("Contains() disagrees with half-open bounds")
	}
	if got := p.NaturalSize(); got != Pt(100, 50) {
		t.Errorf("NaturalSize() = %v", got)
	}
}
