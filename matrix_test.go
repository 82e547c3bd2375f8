// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

import (
	"math"
	"testing"
)

func TestMatrixTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		in   Point
		want Point
	}{
		{"zero translation", Translate(0, 0), Pt(3, 4), Pt(3, 4)},
		{"translate", Translate(10, -5), Pt(1, 1), Pt(11, -4)},
		{"device scale 2", Scale(2, 2), Pt(50, 25), Pt(100, 50)},
		{"scale then translate", Translate(10, 10).Multiply(Scale(2, 2)), Pt(1, 2), Pt(12, 14)},
		{"translate then scale", Scale(2, 2).Multiply(Translate(10, 10)), Pt(1, 2), Pt(22, 24)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.in)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("TransformPoint(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatrixLineScale(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want float64
	}{
		{"unit scale", Scale(1, 1), 1},
		{"uniform 2", Scale(2, 2), 2},
		{"uniform 1.5", Scale(1.5, 1.5), 1.5},
		{"translation only", Translate(5, 5), 1},
		{"non-uniform", Scale(4, 1), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.LineScale(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("LineScale() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatrixImagePlacement(t *testing.T) {
	// Device scale 2, image at (10, 5) scaled 0.5, source bounds at (4, 4).
	m := Scale(2, 2).
		Multiply(Translate(10, 5)).
		Multiply(Scale(0.5, 0.5)).
		Multiply(Translate(-4, -4))
	tests := []struct {
		in, want Point
	}{
		{Pt(4, 4), Pt(20, 10)},
		{Pt(24, 14), Pt(40, 20)},
	}
	for _, tt := range tests {
		if got := m.TransformPoint(tt.in); math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
			t.Errorf("TransformPoint(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMatrixAff3(t *testing.T) {
	m := Matrix{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	a := m.Aff3()
	for i, want := range []float64{1, 2, 3, 4, 5, 6} {
		if a[i] != want {
			t.Errorf("Aff3()[%d] = %v, want %v", i, a[i], want)
		}
	}
}
