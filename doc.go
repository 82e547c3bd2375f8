// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package sketch provides the layer and composition engine of a layered
// raster painting surface.
//
// # Overview
//
// sketch models a stack of independently editable raster layers, each with
// its own drawable surface and a list of placed images. It routes pointer
// input to the active layer (freehand paint and erase strokes, image drag,
// pinch and wheel zoom) and flattens the whole stack into a single PNG for
// export.
//
// # Quick Start
//
//	import "github.com/gogpu/sketch"
//
//	stack := sketch.NewStack(sketch.WithGeometry(800, 600, 2))
//	tool := sketch.NewToolState()
//	router := sketch.NewRouter(stack, tool)
//
//	router.Dispatch(sketch.Event{Kind: sketch.PointerDown, X: 10, Y: 10})
//	router.Dispatch(sketch.Event{Kind: sketch.PointerMove, X: 120, Y: 80})
//	router.Dispatch(sketch.Event{Kind: sketch.PointerUp})
//
//	var buf bytes.Buffer
//	_, err := sketch.NewCompositor().Export(ctx, stack, &buf)
//
// # Coordinate System
//
// All public coordinates are logical (CSS) pixels:
//   - Viewport coordinates are what pointer events report
//   - Local coordinates are relative to the painting area origin
//   - Device pixels = logical pixels x device scale, used only by surfaces
//
// Each surface applies its device scale once through a [Matrix]; every
// drawing call is issued in logical units.
//
// # Concurrency
//
// [Stack], [Router] and [PlacedImage] are not safe for concurrent use. A
// multi-goroutine host should use [Session], which owns the stack on a
// single goroutine and accepts work by message passing.
package sketch

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
