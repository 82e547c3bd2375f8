// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

import (
	"sync"
	"time"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
)

// Resize changes the logical size of the painting area and rescales every
// layer surface in place. The device scale and origin are kept.
//
// For each layer the current raster is snapshotted, a surface of the new
// device size is allocated with the scale transform reapplied, and the
// snapshot is redrawn stretched to the new size with bilinear filtering.
// Placed images keep their logical position and scale.
//
// Degenerate sizes are normalized as for NewGeometry. Resize returns false
// and touches nothing when the normalized size is unchanged.
func (s *Stack) Resize(width, height float64) bool {
	next := NewGeometry(width, height, s.geom.Scale)
	next.Origin = s.geom.Origin
	if next.SameSize(s.geom) {
		return false
	}
	dw, dh := next.DeviceSize()
	for _, l := range s.layers {
		l.surface = resizeSurface(l.surface, next, dw, dh)
	}
	logFor(logResize).Debug("sketch: resized",
		"from_w", s.geom.Width, "from_h", s.geom.Height,
		"to_w", next.Width, "to_h", next.Height)
	s.geom = next
	return true
}

func resizeSurface(old *Surface, g Geometry, dw, dh int) *Surface {
	snap := clone.AsRGBA(old.pixmap.ToImage())
	scaled := transform.Resize(snap, dw, dh, transform.Linear)
	return &Surface{
		geom:   g,
		pixmap: FromImage(scaled),
		matrix: g.Transform(),
	}
}

// Reconciler debounces painting-area size notifications. Bursts of
// notifications produce one resize with the last size once the debounce
// delay has passed without a new notification.
//
// Reconciler is safe for concurrent use. The apply function runs on the
// timer goroutine, or on the caller's goroutine for Flush and a zero
// delay.
type Reconciler struct {
	apply func(width, height float64)
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	width   float64
	height  float64
	stopped bool
}

// NewReconciler returns a reconciler calling apply with the settled size.
// WithResizeDebounce sets the delay.
func NewReconciler(apply func(width, height float64), opts ...Option) *Reconciler {
	o := buildOptions(opts)
	return &Reconciler{apply: apply, delay: o.resizeDebounce}
}

// Notify records a new size and restarts the debounce delay.
func (r *Reconciler) Notify(width, height float64) {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.width, r.height = width, height
	r.pending = true
	if r.delay == 0 {
		r.mu.Unlock()
		r.Flush()
		return
	}
	if r.timer == nil {
		r.timer = time.AfterFunc(r.delay, func() { r.Flush() })
	} else {
		r.timer.Reset(r.delay)
	}
	r.mu.Unlock()
}

// Pending reports whether a notification is waiting to be applied.
func (r *Reconciler) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

// Flush applies a pending size immediately. It returns false when nothing
// was pending.
func (r *Reconciler) Flush() bool {
	r.mu.Lock()
	if !r.pending || r.stopped {
		r.mu.Unlock()
		return false
	}
	w, h := r.width, r.height
	r.pending = false
	if r.timer != nil {
		r.timer.Stop()
	}
	r.mu.Unlock()

	r.apply(w, h)
	return true
}

// Stop drops any pending size and ignores later notifications.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
	r.pending = false
	if r.timer != nil {
		r.timer.Stop()
	}
}
