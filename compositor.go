// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"slices"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// ExportName is the fixed output name handed to export sinks.
const ExportName = "drawing.png"

// Plan is a read-only snapshot of a stack taken for compositing. It owns
// copies of every layer raster and the image records, so rendering a plan
// never touches the live stack.
type Plan struct {
	geom   Geometry
	layers []planLayer
	images int
}

type planLayer struct {
	id     LayerID
	raster *Pixmap
	images []planImage
}

type planImage struct {
	id    ImageID
	src   ImageSource
	pos   Point
	scale float64
	slot  int
}

// Snapshot captures the stack for compositing. It must be called by the
// stack's owner; the returned plan can be rendered on any goroutine.
func (s *Stack) Snapshot() *Plan {
	p := &Plan{geom: s.geom, layers: make([]planLayer, len(s.layers))}
	for i, l := range s.layers {
		pl := planLayer{
			id:     l.id,
			raster: l.surface.snapshot(),
			images: make([]planImage, len(l.images)),
		}
		for j, img := range l.images {
			src := img.src
			if pn, ok := src.(pinnable); ok {
				src = pn.pin()
			}
			pl.images[j] = planImage{
				id:    img.id,
				src:   src,
				pos:   img.pos,
				scale: img.scale,
				slot:  p.images,
			}
			p.images++
		}
		p.layers[i] = pl
	}
	return p
}

// Geometry returns the geometry the plan was taken with.
func (p *Plan) Geometry() Geometry { return p.geom }

// Images returns the number of placed images in the plan.
func (p *Plan) Images() int { return p.images }

// ExportReport summarizes one composite.
type ExportReport struct {
	Width   int // device pixels
	Height  int // device pixels
	Layers  int
	Drawn   int
	Skipped []ImageID // images whose decode failed, in paint order
}

// Compositor flattens a stack bottom to top into one opaque raster.
//
// Placed images are decoded concurrently with a bounded number of
// workers. Drawing starts only after every decode has finished, so the
// output does not depend on decode completion order. An image that fails
// to decode is skipped and the export still succeeds.
//
// Compositor is safe for concurrent use.
type Compositor struct {
	opts options
}

// NewCompositor creates a compositor. WithBackground and
// WithExportWorkers apply.
func NewCompositor(opts ...Option) *Compositor {
	return &Compositor{opts: buildOptions(opts)}
}

// Composite snapshots the stack and renders it.
func (c *Compositor) Composite(ctx context.Context, s *Stack) (*Pixmap, ExportReport, error) {
	return c.Render(ctx, s.Snapshot())
}

// Export composites the stack and writes it to w as PNG.
func (c *Compositor) Export(ctx context.Context, s *Stack, w io.Writer) (ExportReport, error) {
	return c.Encode(ctx, s.Snapshot(), w)
}

// ExportTo composites the stack and delivers the PNG to sink under
// ExportName.
func (c *Compositor) ExportTo(ctx context.Context, s *Stack, sink ExportSink) (ExportReport, error) {
	return c.Deliver(ctx, s.Snapshot(), sink)
}

// Encode renders a plan and writes it to w as PNG.
func (c *Compositor) Encode(ctx context.Context, p *Plan, w io.Writer) (ExportReport, error) {
	pm, report, err := c.Render(ctx, p)
	if err != nil {
		return report, err
	}
	if err := pm.EncodePNG(w); err != nil {
		return report, fmt.Errorf("sketch: encode export: %w", err)
	}
	return report, nil
}

// Deliver renders a plan and hands the PNG bytes to sink.
func (c *Compositor) Deliver(ctx context.Context, p *Plan, sink ExportSink) (ExportReport, error) {
	var buf bytes.Buffer
	report, err := c.Encode(ctx, p, &buf)
	if err != nil {
		return report, err
	}
	if err := sink.Deliver(ctx, ExportName, buf.Bytes()); err != nil {
		return report, fmt.Errorf("sketch: deliver export: %w", err)
	}
	return report, nil
}

// Render composites a plan into a new pixmap of the plan's device size.
// It returns ctx.Err() if ctx is canceled before drawing starts.
func (c *Compositor) Render(ctx context.Context, p *Plan) (*Pixmap, ExportReport, error) {
	w, h := p.geom.DeviceSize()
	report := ExportReport{Width: w, Height: h, Layers: len(p.layers)}

	decoded, err := c.decodeAll(ctx, p)
	if err != nil {
		return nil, report, err
	}

	out := NewPixmap(w, h)
	out.Clear(c.opts.background)
	dst := out.ToImage()
	device := p.geom.Transform()

	for _, l := range p.layers {
		drawRaster(dst, l.raster.ToImage())
		for _, img := range l.images {
			src := decoded[img.slot]
			if src == nil {
				report.Skipped = append(report.Skipped, img.id)
				continue
			}
			drawPlaced(dst, src, device, img)
			report.Drawn++
		}
	}

	logFor(logCompositor).Info("sketch: export composited",
		"width", w, "height", h,
		"layers", report.Layers,
		"drawn", report.Drawn,
		"skipped", len(report.Skipped))
	return out, report, nil
}

// decodeAll decodes every image of the plan into its slot. Slots of
// failed decodes stay nil. The only error returned is a context error.
func (c *Compositor) decodeAll(ctx context.Context, p *Plan) ([]image.Image, error) {
	decoded := make([]image.Image, p.images)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.exportWorkers)

	for _, l := range p.layers {
		for _, img := range l.images {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				if img.src == nil {
					return nil
				}
				src, err := img.src.Decode(gctx)
				if err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					logFor(logCompositor).Warn("sketch: export skipped image", "id", uint64(img.id), "err", err)
					return nil
				}
				decoded[img.slot] = src
				return nil
			})
		}
	}

	// Barrier: nothing is drawn until every decode has settled.
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return decoded, nil
}

// drawRaster composites a layer raster over dst, stretched to dst's size.
func drawRaster(dst *image.RGBA, src *image.RGBA) {
	if src.Bounds() == dst.Bounds() {
		draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Over)
		return
	}
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
}

// drawPlaced draws a decoded image at its logical position and scale.
func drawPlaced(dst *image.RGBA, src image.Image, device Matrix, img planImage) {
	b := src.Bounds()
	m := device.
		Multiply(Translate(img.pos.X, img.pos.Y)).
		Multiply(Scale(img.scale, img.scale)).
		Multiply(Translate(-float64(b.Min.X), -float64(b.Min.Y)))
	xdraw.BiLinear.Transform(dst, m.Aff3(), src, b, xdraw.Over, nil)
}

// WasSkipped reports whether the image with the given id failed to decode.
func (r ExportReport) WasSkipped(id ImageID) bool {
	return slices.Contains(r.Skipped, id)
}
