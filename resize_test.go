// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestStackResizeKeepsRaster(t *testing.T) {
	s := NewStack(WithGeometry(100, 100, 2))
	s.Active().Surface().Fill(Red)
	img, _ := s.PlaceImage(context.Background(), StaticImage(solidImage(10, 10, opaqueBlue)), &Point{X: 30, Y: 40})
	pos, scale := img.Position(), img.Scale()

	if !s.Resize(200, 50) {
		t.Fatal("Resize(200, 50) = false")
	}
	g := s.Geometry()
	if g.Width != 200 || g.Height != 50 || g.Scale != 2 {
		t.Fatalf("Geometry() = %+v", g)
	}
	for i, l := range s.Layers() {
		pm := l.Surface().Pixmap()
		if pm.Width() != 400 || pm.Height() != 100 {
			t.Errorf("layer %d device size = %dx%d, want 400x100", i, pm.Width(), pm.Height())
		}
		if l.Surface().Matrix() != Scale(2, 2) {
			t.Errorf("layer %d matrix = %+v", i, l.Surface().Matrix())
		}
	}
	if c := s.Active().Surface().Pixel(150, 25); c.A < 0.99 || c.R < 0.99 {
		t.Errorf("stretched raster = %+v, want red", c)
	}
	if c := s.Layer(0).Surface().Pixel(190, 45); c.A < 0.99 || c.G < 0.99 {
		t.Errorf("background after resize = %+v, want white", c)
	}
	if img.Position() != pos || img.Scale() != scale {
		t.Error("resize moved a placed image")
	}
}

func TestStackResizeNoop(t *testing.T) {
	s := NewStack(WithGeometry(100, 100, 1))
	before := s.Active().Surface()
	if s.Resize(100, 100) {
		t.Error("Resize to the same size = true")
	}
	if s.Active().Surface() != before {
		t.Error("no-op resize replaced the surface")
	}
	if s.Resize(100.2, 99.8) {
		t.Error("sub-pixel change after rounding = true")
	}
}

func TestStackResizeDegenerate(t *testing.T) {
	s := NewStack(WithGeometry(100, 100, 1))
	if !s.Resize(0, -5) {
		t.Fatal("Resize(0, -5) = false")
	}
	if g := s.Geometry(); g.Width != DefaultSurfaceSize || g.Height != DefaultSurfaceSize {
		t.Errorf("Geometry() = %+v, want 600x600", g)
	}
	s.Resize(3, 4)
	if g := s.Geometry(); g.Width != MinSurfaceSize || g.Height != MinSurfaceSize {
		t.Errorf("Geometry() = %+v, want 10x10", g)
	}
}

func TestStackResizeStrokesAfter(t *testing.T) {
	s := NewStack(WithGeometry(50, 50, 1), WithoutBackground())
	s.Resize(100, 100)
	r := NewRouter(s, nil)
	r.Dispatch(Down(1, 60, 80))
	r.Dispatch(Move(1, 95, 80))
	r.Dispatch(Up(1, 95, 80))
	if a := s.Active().Surface().Pixmap().ToImage().RGBAAt(80, 80).A; a < 250 {
		t.Errorf("stroke in grown area alpha = %d, want opaque", a)
	}
}

type applyRecorder struct {
	mu    sync.Mutex
	calls [][2]float64
	ch    chan struct{}
}

func newApplyRecorder() *applyRecorder {
	return &applyRecorder{ch: make(chan struct{}, 16)}
}

func (a *applyRecorder) apply(w, h float64) {
	a.mu.Lock()
	a.calls = append(a.calls, [2]float64{w, h})
	a.mu.Unlock()
	a.ch <- struct{}{}
}

func (a *applyRecorder) snapshot() [][2]float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([][2]float64(nil), a.calls...)
}

func TestReconcilerFlushAppliesLast(t *testing.T) {
	rec := newApplyRecorder()
	r := NewReconciler(rec.apply, WithResizeDebounce(time.Hour))
	t.Cleanup(r.Stop)

	r.Notify(100, 100)
	r.Notify(300, 200)
	if !r.Pending() {
		t.Fatal("Pending() = false after Notify")
	}
	if len(rec.snapshot()) != 0 {
		t.Fatal("applied before the debounce delay")
	}
	if !r.Flush() {
		t.Fatal("Flush() = false with a pending size")
	}
	calls := rec.snapshot()
	if len(calls) != 1 || calls[0] != [2]float64{300, 200} {
		t.Errorf("calls = %v, want [[300 200]]", calls)
	}
	if r.Flush() {
		t.Error("second Flush() = true")
	}
}

func TestReconcilerDebounce(t *testing.T) {
	rec := newApplyRecorder()
	r := NewReconciler(rec.apply, WithResizeDebounce(20*time.Millisecond))
	t.Cleanup(r.Stop)

	for i := range 5 {
		r.Notify(float64(100+i), 100)
	}
	select {
	case <-rec.ch:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced resize never applied")
	}
	calls := rec.snapshot()
	if len(calls) != 1 || calls[0] != [2]float64{104, 100} {
		t.Errorf("calls = %v, want [[104 100]]", calls)
	}
}

func TestReconcilerZeroDelay(t *testing.T) {
	rec := newApplyRecorder()
	r := NewReconciler(rec.apply, WithResizeDebounce(0))
	r.Notify(10, 20)
	r.Notify(30, 40)
	if calls := rec.snapshot(); len(calls) != 2 {
		t.Errorf("calls = %v, want 2 immediate applies", calls)
	}
}

func TestReconcilerStop(t *testing.T) {
	rec := newApplyRecorder()
	r := NewReconciler(rec.apply, WithResizeDebounce(time.Hour))
	r.Notify(100, 100)
	r.Stop()
	if r.Flush() {
		t.Error("Flush() after Stop = true")
	}
	r.Notify(200, 200)
	if r.Pending() || len(rec.snapshot()) != 0 {
		t.Error("stopped reconciler accepted a notification")
	}
}
