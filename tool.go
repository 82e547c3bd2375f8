// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/sketch/internal/blend"
)

// ErrInvalidWidth is returned when a stroke width is not a positive number.
var ErrInvalidWidth = errors.New("sketch: stroke width must be positive")

// ToolMode selects how strokes are composited onto a layer.
type ToolMode uint8

const (
	// ToolPaint composites strokes source-over in the current color.
	ToolPaint ToolMode = iota

	// ToolErase clears destination pixels under the stroke (destination-out).
	// The stroke color is ignored.
	ToolErase
)

// String returns the tool mode name.
func (m ToolMode) String() string {
	switch m {
	case ToolPaint:
		return "paint"
	case ToolErase:
		return "erase"
	default:
		return "unknown"
	}
}

// ParseToolMode parses "paint" (or "draw") and "erase".
func ParseToolMode(s string) (ToolMode, error) {
	switch s {
	case "paint", "draw", "pen":
		return ToolPaint, nil
	case "erase", "eraser":
		return ToolErase, nil
	default:
		return ToolPaint, fmt.Errorf("sketch: unknown tool mode %q", s)
	}
}

// blendMode maps the tool mode to its Porter-Duff operator.
func (m ToolMode) blendMode() blend.Mode {
	if m == ToolErase {
		return blend.ModeDestinationOut
	}
	return blend.ModeSourceOver
}

// Tool provides the current stroke settings. The router reads it once per
// stroke segment, so changes take effect on the next segment.
type Tool interface {
	StrokeColor() RGBA
	StrokeWidth() float64
	Mode() ToolMode
}

// Default tool settings.
const (
	DefaultStrokeWidth = 5.0
)

// ToolState is a Tool whose settings are changed by UI widgets.
// All setters validate their input and leave the state unchanged on error.
//
// ToolState is safe for concurrent use.
type ToolState struct {
	mu    sync.RWMutex
	color RGBA
	width float64
	mode  ToolMode
}

// Ensure ToolState implements Tool.
var _ Tool = (*ToolState)(nil)

// NewToolState returns a tool painting black strokes of DefaultStrokeWidth.
func NewToolState() *ToolState {
	return &ToolState{color: Black, width: DefaultStrokeWidth, mode: ToolPaint}
}

// StrokeColor returns the current stroke color.
func (t *ToolState) StrokeColor() RGBA {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.color
}

// StrokeWidth returns the current stroke width in logical pixels.
func (t *ToolState) StrokeWidth() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.width
}

// Mode returns the current tool mode.
func (t *ToolState) Mode() ToolMode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mode
}

// SetColor sets the stroke color.
func (t *ToolState) SetColor(c RGBA) {
	t.mu.Lock()
	t.color = c.clamped()
	t.mu.Unlock()
}

// SetColorHex parses a "#rrggbb" value and sets it as the stroke color.
func (t *ToolState) SetColorHex(s string) error {
	c, err := ParseColor(s)
	if err != nil {
		return err
	}
	t.SetColor(c)
	return nil
}

// SetWidth sets the stroke width in logical pixels.
func (t *ToolState) SetWidth(w float64) error {
	if !(w > 0) || math.IsInf(w, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidWidth, w)
	}
	t.mu.Lock()
	t.width = w
	t.mu.Unlock()
	return nil
}

// SetMode sets the tool mode.
func (t *ToolState) SetMode(m ToolMode) {
	t.mu.Lock()
	t.mode = m
	t.mu.Unlock()
}
