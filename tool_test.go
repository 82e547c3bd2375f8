// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/gogpu/sketch/internal/blend"
)

func TestParseToolMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ToolMode
		wantErr bool
	}{
		{"paint", ToolPaint, false},
		{"draw", ToolPaint, false},
		{"pen", ToolPaint, false},
		{"erase", ToolErase, false},
		{"eraser", ToolErase, false},
		{"", ToolPaint, true},
		{"Erase", ToolPaint, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseToolMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseToolMode(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseToolMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToolModeString(t *testing.T) {
	if ToolPaint.String() != "paint" || ToolErase.String() != "erase" || ToolMode(9).String() != "unknown" {
		t.Error("unexpected ToolMode names")
	}
	if ToolPaint.blendMode() != blend.ModeSourceOver || ToolErase.blendMode() != blend.ModeDestinationOut {
		t.Error("unexpected blend mapping")
	}
}

func TestToolStateDefaults(t *testing.T) {
	tool := NewToolState()
	if tool.StrokeColor() != Black || tool.StrokeWidth() != DefaultStrokeWidth || tool.Mode() != ToolPaint {
		t.Errorf("defaults = %v %v %v", tool.StrokeColor(), tool.StrokeWidth(), tool.Mode())
	}
}

func TestToolStateSetWidth(t *testing.T) {
	for _, w := range []float64{0, -3, math.NaN(), math.Inf(1)} {
		tool := NewToolState()
		if err := tool.SetWidth(w); !errors.Is(err, ErrInvalidWidth) {
			t.Errorf("SetWidth(%v) err = %v, want ErrInvalidWidth", w, err)
		}
		if tool.StrokeWidth() != DefaultStrokeWidth {
			t.Errorf("SetWidth(%v) changed width to %v", w, tool.StrokeWidth())
		}
	}
	tool := NewToolState()
	if err := tool.SetWidth(12.5); err != nil || tool.StrokeWidth() != 12.5 {
		t.Errorf("SetWidth(12.5) = %v, width %v", err, tool.StrokeWidth())
	}
}

func TestToolStateSetColorHex(t *testing.T) {
	tool := NewToolState()
	if err := tool.SetColorHex("#ff0000"); err != nil {
		t.Fatal(err)
	}
	if tool.StrokeColor() != Red {
		t.Errorf("StrokeColor() = %v, want red", tool.StrokeColor())
	}
	if err := tool.SetColorHex("tomato"); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("err = %v, want ErrInvalidColor", err)
	}
	if tool.StrokeColor() != Red {
		t.Error("invalid hex changed the color")
	}
}

func TestToolStateConcurrent(t *testing.T) {
	tool := NewToolState()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = tool.SetWidth(float64(i + 1))
			tool.SetMode(ToolMode(i % 2))
			tool.SetColor(RGB(float64(i)/16, 0, 0))
		}()
		go func() {
			defer wg.Done()
			_ = tool.StrokeColor()
			_ = tool.StrokeWidth()
			_ = tool.Mode()
		}()
	}
	wg.Wait()
	if w := tool.StrokeWidth(); w < 1 || w > 16 {
		t.Errorf("StrokeWidth() = %v after concurrent writes", w)
	}
}
