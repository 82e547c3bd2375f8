// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command sketchdemo drives a sketch session with synthetic pointer input
// and exports the composited drawing.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/gogpu/sketch"
)

func main() {
	var (
		config  = flag.String("config", "", "TOML config file")
		image   = flag.String("image", "", "image to place on a new layer")
		output  = flag.String("output", sketch.ExportName, "output file")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		sketch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg := sketch.DefaultConfig()
	if *config != "" {
		var err error
		if cfg, err = sketch.LoadConfig(*config); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	tool, err := cfg.ToolState()
	if err != nil {
		log.Fatalf("Invalid tool config: %v", err)
	}
	s := sketch.NewSession(tool, cfg.Options()...)
	defer s.Close()

	ctx := context.Background()
	v, err := s.View(ctx)
	if err != nil {
		log.Fatalf("Failed to read session: %v", err)
	}
	w, h := v.Width, v.Height

	drawWave(s, w, h)

	updateTool(s, func(t *sketch.ToolState) {
		_ = t.SetColorHex("#1e90ff")
		_ = t.SetWidth(12)
	})
	drawSpiral(s, w/2, h/2, math.Min(w, h)/3)

	updateTool(s, func(t *sketch.ToolState) { t.SetMode(sketch.ToolErase) })
	drawLine(s, 1, w*0.1, h*0.5, w*0.9, h*0.5)
	updateTool(s, func(t *sketch.ToolState) { t.SetMode(sketch.ToolPaint) })

	if *image != "" {
		if err := placeImage(ctx, s, *image); err != nil {
			log.Fatalf("Failed to place image: %v", err)
		}
	}

	sink := sketch.DirSink{Dir: filepath.Dir(*output)}
	target := filepath.Base(*output)
	report, err := s.Export(ctx, sketch.SinkFunc(func(ctx context.Context, _ string, data []byte) error {
		return sink.Deliver(ctx, target, data)
	}))
	if err != nil {
		log.Fatalf("Failed to export: %v", err)
	}

	log.Printf("Drawing saved to %s (%dx%d, %d layers, %d images)\n",
		*output, report.Width, report.Height, report.Layers, report.Drawn)
}

// updateTool changes the tool in order with the strokes queued so far.
func updateTool(s *sketch.Session, fn func(*sketch.ToolState)) {
	if err := s.UpdateTool(fn); err != nil {
		log.Fatalf("Failed to update tool: %v", err)
	}
}

func drawWave(s *sketch.Session, w, h float64) {
	const steps = 60
	_ = s.Dispatch(sketch.Down(1, 0, h*0.3))
	for i := 1; i <= steps; i++ {
		x := w * float64(i) / steps
		y := h*0.3 + math.Sin(float64(i)/steps*4*math.Pi)*h*0.1
		_ = s.Dispatch(sketch.Move(1, x, y))
	}
	_ = s.Dispatch(sketch.Up(1, w, h*0.3))
}

func drawSpiral(s *sketch.Session, cx, cy, r float64) {
	const steps = 120
	_ = s.Dispatch(sketch.Down(1, cx, cy))
	for i := 1; i <= steps; i++ {
		t := float64(i) / steps
		angle := t * 6 * math.Pi
		_ = s.Dispatch(sketch.Move(1, cx+r*t*math.Cos(angle), cy+r*t*math.Sin(angle)))
	}
	_ = s.Dispatch(sketch.Up(1, cx, cy))
}

func drawLine(s *sketch.Session, pointer int, x0, y0, x1, y1 float64) {
	_ = s.Dispatch(sketch.Down(pointer, x0, y0))
	_ = s.Dispatch(sketch.Move(pointer, x1, y1))
	_ = s.Dispatch(sketch.Up(pointer, x1, y1))
}

// placeImage loads path onto a fresh layer, then drags it and zooms in
// once with the wheel.
func placeImage(ctx context.Context, s *sketch.Session, path string) error {
	res, err := sketch.LoadResource(path)
	if err != nil {
		return err
	}
	if err := s.Do(ctx, func(st *sketch.Stack) { st.AddLayer("") }); err != nil {
		return err
	}
	id, err := s.Place(ctx, res, nil)
	if err != nil {
		return err
	}

	v, err := s.View(ctx)
	if err != nil {
		return err
	}
	for _, img := range v.Layers[v.Active].Images {
		if img.ID != id {
			continue
		}
		cx, cy := img.X+img.Width/2, img.Y+img.Height/2
		_ = s.Dispatch(sketch.Down(2, cx, cy))
		_ = s.Dispatch(sketch.Move(2, cx+20, cy+10))
		_ = s.Dispatch(sketch.Up(2, cx+20, cy+10))
		_ = s.Dispatch(sketch.Scroll(cx, cy, -1))
	}
	return nil
}
