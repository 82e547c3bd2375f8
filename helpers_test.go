// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync/atomic"
	"testing"
)

var errBoom = errors.New("boom")

// solidImage returns an opaque w x h image of one color.
func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// pngBytes encodes img as PNG.
func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// failingSource never decodes.
type failingSource struct{}

func (failingSource) Decode(context.Context) (image.Image, error) {
	return nil, errBoom
}

// flakySource decodes successfully the first n times, then fails.
type flakySource struct {
	img   image.Image
	ok    int32
	calls atomic.Int32
}

func (s *flakySource) Decode(context.Context) (image.Image, error) {
	if s.calls.Add(1) > s.ok {
		return nil, errBoom
	}
	return s.img, nil
}

// countedSource tracks placement references the way Resource does.
type countedSource struct {
	img  image.Image
	refs atomic.Int32
	// dropped counts references that reached zero.
	dropped atomic.Int32
}

func (s *countedSource) Decode(context.Context) (image.Image, error) { return s.img, nil }
func (s *countedSource) retain()                                     { s.refs.Add(1) }
func (s *countedSource) drop() {
	if s.refs.Add(-1) == 0 {
		s.dropped.Add(1)
	}
}

// decodePNG decodes PNG bytes.
func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	return img
}

// rgba8 returns the 8-bit premultiplied color of img at (x, y).
func rgba8(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

// sameColor compares colors with a per-channel tolerance.
func sameColor(a, b color.RGBA, tol int) bool {
	d := func(x, y uint8) bool { return math.Abs(float64(x)-float64(y)) <= float64(tol) }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

var (
	opaqueWhite = color.RGBA{255, 255, 255, 255}
	opaqueBlack = color.RGBA{0, 0, 0, 255}
	opaqueRed   = color.RGBA{255, 0, 0, 255}
	opaqueGreen = color.RGBA{0, 255, 0, 255}
	opaqueBlue  = color.RGBA{0, 0, 255, 255}
)
