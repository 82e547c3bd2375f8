// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

import (
	"math"
	"runtime"
	"time"
)

// Default option values.
const (
	// DefaultFitRatio is the share of the available area a dropped image may
	// cover before it is scaled down.
	DefaultFitRatio = 0.9

	// DefaultResizeDebounce is how long the reconciler waits for geometry
	// notifications to settle.
	DefaultResizeDebounce = 150 * time.Millisecond
)

// Option configures a Stack, Compositor or Session during creation.
//
// Example:
//
//	// Default 600x600 stack with a white background layer
//	s := sketch.NewStack()
//
//	// Retina area measured by the host
//	s := sketch.NewStack(sketch.WithGeometry(800, 600, 2))
type Option func(*options)

// options holds optional configuration shared by the engine types.
type options struct {
	geometry       Geometry
	minImageScale  float64
	wheelStep      float64
	fitRatio       float64
	background     RGBA
	noBackground   bool
	exportWorkers  int
	resizeDebounce time.Duration
}

// defaultOptions returns the default options.
func defaultOptions() options {
	return options{
		geometry:       NewGeometry(DefaultSurfaceSize, DefaultSurfaceSize, 1),
		minImageScale:  DefaultMinImageScale,
		wheelStep:      DefaultWheelStep,
		fitRatio:       DefaultFitRatio,
		background:     White,
		exportWorkers:  runtime.GOMAXPROCS(0),
		resizeDebounce: DefaultResizeDebounce,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithGeometry sets the logical painting-area size and the device scale.
// Degenerate values are normalized as described on Geometry.
func WithGeometry(width, height, scale float64) Option {
	return func(o *options) {
		origin := o.geometry.Origin
		o.geometry = NewGeometry(width, height, scale)
		o.geometry.Origin = origin
	}
}

// WithOrigin sets the viewport position of the painting area's top-left
// corner. Pointer events are given in viewport coordinates.
func WithOrigin(x, y float64) Option {
	return func(o *options) {
		o.geometry.Origin = Pt(x, y)
	}
}

// WithMinImageScale sets the lower bound of placed image scale.
// Non-positive values are ignored.
func WithMinImageScale(s float64) Option {
	return func(o *options) {
		if s > 0 && !math.IsInf(s, 0) {
			o.minImageScale = s
		}
	}
}

// WithWheelStep sets the relative scale change of one wheel notch.
// Values outside (0, 1) are ignored.
func WithWheelStep(step float64) Option {
	return func(o *options) {
		if step > 0 && step < 1 {
			o.wheelStep = step
		}
	}
}

// WithFitRatio sets the share of the available area a placed image may
// cover at scale 1. Values outside (0, 1] are ignored.
func WithFitRatio(r float64) Option {
	return func(o *options) {
		if r > 0 && r <= 1 {
			o.fitRatio = r
		}
	}
}

// WithBackground sets the export background and the fill of the default
// background layer.
func WithBackground(c RGBA) Option {
	return func(o *options) {
		o.background = c.clamped()
	}
}

// WithoutBackground starts the stack with a single empty layer instead of
// a filled background layer below "Layer 1".
func WithoutBackground() Option {
	return func(o *options) {
		o.noBackground = true
	}
}

// WithExportWorkers bounds the number of concurrent decodes during export.
// Values below 1 are ignored.
func WithExportWorkers(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.exportWorkers = n
		}
	}
}

// WithResizeDebounce sets the resize reconciler settle delay. Zero applies
// every notification immediately; negative values are ignored.
func WithResizeDebounce(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.resizeDebounce = d
		}
	}
}
