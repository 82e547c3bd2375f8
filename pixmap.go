// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
)

// Pixmap represents a rectangular buffer of device pixels.
// Pixels are stored as premultiplied RGBA, 4 bytes per pixel, the same
// layout as image.RGBA, so a Pixmap can be handed to image/draw without
// copying.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// Ensure Pixmap can be used as a draw target.
var _ draw.Image = (*Pixmap)(nil)

// NewPixmap creates a new transparent pixmap with the given dimensions.
// Non-positive dimensions produce an empty pixmap.
func NewPixmap(width, height int) *Pixmap {
	width = max(width, 0)
	height = max(height, 0)
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (premultiplied RGBA).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// Row returns the bytes of row y, or nil if y is out of range.
func (p *Pixmap) Row(y int) []uint8 {
	if y < 0 || y >= p.height {
		return nil
	}
	stride := p.width * 4
	return p.data[y*stride : (y+1)*stride : (y+1)*stride]
}

// SetPixel sets the color of a single pixel.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	v := c.Premul()
	copy(p.data[i:i+4], v[:])
}

// GetPixel returns the straight-alpha color of a single pixel.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	a := float64(p.data[i+3]) / 255
	if a == 0 {
		return Transparent
	}
	return RGBA{
		R: float64(p.data[i+0]) / 255 / a,
		G: float64(p.data[i+1]) / 255 / a,
		B: float64(p.data[i+2]) / 255 / a,
		A: a,
	}
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	v := c.Premul()
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = v[0]
		p.data[i+1] = v[1]
		p.data[i+2] = v[2]
		p.data[i+3] = v[3]
	}
}

// ToImage returns an image.RGBA view of the pixmap.
// The returned image shares memory with the pixmap.
func (p *Pixmap) ToImage() *image.RGBA {
	return &image.RGBA{
		Pix:    p.data,
		Stride: p.width * 4,
		Rect:   image.Rect(0, 0, p.width, p.height),
	}
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	c := &Pixmap{width: p.width, height: p.height, data: make([]uint8, len(p.data))}
	copy(c.data, p.data)
	return c
}

// FromImage creates a pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	b := img.Bounds()
	pm := NewPixmap(b.Dx(), b.Dy())
	draw.Draw(pm.ToImage(), pm.Bounds(), img, b.Min, draw.Src)
	return pm
}

// EncodePNG encodes the pixmap as PNG to the given writer.
func (p *Pixmap) EncodePNG(w io.Writer) error {
	return png.Encode(w, p.ToImage())
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.RGBA{}
	}
	i := (y*p.width + x) * 4
	return color.RGBA{R: p.data[i], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// Set implements the draw.Image interface.
func (p *Pixmap) Set(x, y int, c color.Color) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	v := color.RGBAModel.Convert(c).(color.RGBA)
	i := (y*p.width + x) * 4
	p.data[i], p.data[i+1], p.data[i+2], p.data[i+3] = v.R, v.G, v.B, v.A
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.RGBAModel
}
