// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig is returned when a configuration value is out of range.
var ErrInvalidConfig = errors.New("sketch: invalid config")

// Config is the declarative form of the engine options, loaded from TOML:
//
//	[surface]
//	width = 800
//	height = 600
//	scale = 2
//
//	[tool]
//	color = "#1e90ff"
//	width = 8
//	mode = "paint"
//
//	[image]
//	min_scale = 0.05
//	wheel_step = 0.1
//	fit_ratio = 0.9
//
//	[export]
//	background = "#ffffff"
//	workers = 4
//	layer_background = true
//
//	[resize]
//	debounce = "150ms"
//
// Missing keys keep their defaults.
type Config struct {
	Surface SurfaceConfig `toml:"surface"`
	Tool    ToolConfig    `toml:"tool"`
	Image   ImageConfig   `toml:"image"`
	Export  ExportConfig  `toml:"export"`
	Resize  ResizeConfig  `toml:"resize"`
}

// SurfaceConfig is the painting-area geometry.
type SurfaceConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Scale  float64 `toml:"scale"`
}

// ToolConfig is the initial tool state.
type ToolConfig struct {
	Color string  `toml:"color"`
	Width float64 `toml:"width"`
	Mode  string  `toml:"mode"`
}

// ImageConfig tunes placed image interaction.
type ImageConfig struct {
	MinScale  float64 `toml:"min_scale"`
	WheelStep float64 `toml:"wheel_step"`
	FitRatio  float64 `toml:"fit_ratio"`
}

// ExportConfig tunes compositing.
type ExportConfig struct {
	Background      string `toml:"background"`
	Workers         int    `toml:"workers"`
	LayerBackground bool   `toml:"layer_background"`
}

// ResizeConfig tunes the resize reconciler.
type ResizeConfig struct {
	Debounce string `toml:"debounce"`
}

// DefaultConfig returns the configuration matching the option defaults.
func DefaultConfig() Config {
	return Config{
		Surface: SurfaceConfig{Width: DefaultSurfaceSize, Height: DefaultSurfaceSize, Scale: 1},
		Tool:    ToolConfig{Color: Black.Hex(), Width: DefaultStrokeWidth, Mode: ToolPaint.String()},
		Image: ImageConfig{
			MinScale:  DefaultMinImageScale,
			WheelStep: DefaultWheelStep,
			FitRatio:  DefaultFitRatio,
		},
		Export: ExportConfig{Background: White.Hex(), LayerBackground: true},
		Resize: ResizeConfig{Debounce: DefaultResizeDebounce.String()},
	}
}

// ParseConfig decodes TOML from r over the defaults and validates it.
// Unknown keys are rejected.
func ParseConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("sketch: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a TOML file.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("sketch: open config: %w", err)
	}
	defer f.Close()
	return ParseConfig(f)
}

// Marshal encodes the configuration as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate checks every value that options would otherwise silently
// ignore.
func (c Config) Validate() error {
	var errs []error
	if _, err := ParseColor(c.Tool.Color); err != nil {
		errs = append(errs, fmt.Errorf("tool.color: %w", err))
	}
	if !(c.Tool.Width > 0) {
		errs = append(errs, fmt.Errorf("%w: tool.width %v", ErrInvalidConfig, c.Tool.Width))
	}
	if _, err := ParseToolMode(c.Tool.Mode); err != nil {
		errs = append(errs, fmt.Errorf("%w: tool.mode: %v", ErrInvalidConfig, err))
	}
	if !(c.Image.MinScale > 0) {
		errs = append(errs, fmt.Errorf("%w: image.min_scale %v", ErrInvalidConfig, c.Image.MinScale))
	}
	if !(c.Image.WheelStep > 0 && c.Image.WheelStep < 1) {
		errs = append(errs, fmt.Errorf("%w: image.wheel_step %v", ErrInvalidConfig, c.Image.WheelStep))
	}
	if !(c.Image.FitRatio > 0 && c.Image.FitRatio <= 1) {
		errs = append(errs, fmt.Errorf("%w: image.fit_ratio %v", ErrInvalidConfig, c.Image.FitRatio))
	}
	if _, err := ParseColor(c.Export.Background); err != nil {
		errs = append(errs, fmt.Errorf("export.background: %w", err))
	}
	if c.Export.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: export.workers %d", ErrInvalidConfig, c.Export.Workers))
	}
	if d, err := c.debounce(); err != nil || d < 0 {
		errs = append(errs, fmt.Errorf("%w: resize.debounce %q", ErrInvalidConfig, c.Resize.Debounce))
	}
	return errors.Join(errs...)
}

func (c Config) debounce() (time.Duration, error) {
	s := strings.TrimSpace(c.Resize.Debounce)
	if s == "" {
		return DefaultResizeDebounce, nil
	}
	return time.ParseDuration(s)
}

// Options converts the configuration to engine options. Call Validate
// first; invalid values fall back to defaults.
func (c Config) Options() []Option {
	opts := []Option{
		WithGeometry(c.Surface.Width, c.Surface.Height, c.Surface.Scale),
		WithMinImageScale(c.Image.MinScale),
		WithWheelStep(c.Image.WheelStep),
		WithFitRatio(c.Image.FitRatio),
	}
	if bg, err := ParseColor(c.Export.Background); err == nil {
		opts = append(opts, WithBackground(bg))
	}
	if c.Export.Workers > 0 {
		opts = append(opts, WithExportWorkers(c.Export.Workers))
	}
	if !c.Export.LayerBackground {
		opts = append(opts, WithoutBackground())
	}
	if d, err := c.debounce(); err == nil {
		opts = append(opts, WithResizeDebounce(d))
	}
	return opts
}

// ToolState builds the initial tool provider.
func (c Config) ToolState() (*ToolState, error) {
	t := NewToolState()
	if err := t.SetColorHex(c.Tool.Color); err != nil {
		return nil, err
	}
	if err := t.SetWidth(c.Tool.Width); err != nil {
		return nil, err
	}
	mode, err := ParseToolMode(c.Tool.Mode)
	if err != nil {
		return nil, err
	}
	t.SetMode(mode)
	return t, nil
}

// NewSessionFromConfig creates a session configured by c.
func NewSessionFromConfig(c Config) (*Session, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	tool, err := c.ToolState()
	if err != nil {
		return nil, err
	}
	return NewSession(tool, c.Options()...), nil
}
