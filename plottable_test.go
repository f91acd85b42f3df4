// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import (
	"math"
	"reflect"
	"testing"
)

func TestHistogramStats(t *testing.T) {
	h, err := NewHistogram([]float64{2, 4, 4, 4, 5, 5, 7, 9}, 4)
	if err != nil {
		t.Fatal(err)
	}
	if got := h.Mean(); !approxEq(got, 5, 1e-9) {
		t.Errorf("Mean = %g, want 5", got)
	}
	if got := h.StdDev(); !approxEq(got, 2.138, 1e-3) {
		t.Errorf("StdDev = %g, want about 2.138", got)
	}
}

func TestHistogramValidation(t *testing.T) {
	if _, err := NewHistogram(nil, 4); err == nil {
		t.Fatalf("NewHistogram accepted empty values")
	}
	if _, err := NewHistogram([]float64{1, 2}, 0); err == nil {
		t.Fatalf("NewHistogram accepted zero bins")
	}
}

func TestScatterToCurve(t *testing.T) {
	s, err := NewScatter([]float64{3, 1, 2}, []float64{30, 10, 20})
	if err != nil {
		t.Fatal(err)
	}
	c := s.ToCurve()
	if !reflect.DeepEqual(c.X, []float64{1, 2, 3}) {
		t.Fatalf("ToCurve x = %v, want sorted", c.X)
	}
	if !reflect.DeepEqual(c.Y, []float64{10, 20, 30}) {
		t.Fatalf("ToCurve y = %v", c.Y)
	}
	// The scatter itself keeps its order.
	if !reflect.DeepEqual(s.X, []float64{3, 1, 2}) {
		t.Fatalf("ToCurve reordered the scatter")
	}
}

func TestHeatmapValidation(t *testing.T) {
	if _, err := NewHeatmap(nil); err == nil {
		t.Fatalf("NewHeatmap accepted empty data")
	}
	if _, err := NewHeatmap([][]float64{{1, 2}, {1}}); err == nil {
		t.Fatalf("NewHeatmap accepted ragged data")
	}
}

func TestHeatmapFromFunction(t *testing.T) {
	h, err := NewHeatmapFromFunction(func(x, y float64) float64 { return x + y }, 0, 1, 0, 2, 3, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(h.Data) != 5 || len(h.Data[0]) != 3 {
		t.Fatalf("grid is %dx%d, want 5x3", len(h.Data), len(h.Data[0]))
	}
	// Bottom-left sample is f(0, 0); top-right is f(1, 2).
	if h.Data[0][0] != 0 || h.Data[4][2] != 3 {
		t.Fatalf("corner samples = %g, %g, want 0, 3", h.Data[0][0], h.Data[4][2])
	}
}

func TestVectorFieldValidation(t *testing.T) {
	if _, err := NewVectorField([][]float64{{1}}, [][]float64{{1}, {2}}); err == nil {
		t.Fatalf("NewVectorField accepted mismatched shapes")
	}
}

func TestStreamSample(t *testing.T) {
	s, err := NewStreamFromFunction(func(x, y float64) (float64, float64) { return x, y }, 0, 1, 0, 1, 5, 5)
	if err != nil {
		t.Fatal(err)
	}
	u, v, ok := s.sample(0.5, 0.25)
	if !ok {
		t.Fatalf("sample inside the grid reported out of range")
	}
	if !approxEq(u, 0.5, 1e-9) || !approxEq(v, 0.25, 1e-9) {
		t.Fatalf("sample = (%g, %g), want (0.5, 0.25)", u, v)
	}
	if _, _, ok := s.sample(2, 0); ok {
		t.Fatalf("sample outside the grid reported in range")
	}
}

func TestContourLevels(t *testing.T) {
	data := [][]float64{{0, 1}, {2, 3}}
	levels := spreadLevels(data, 3)
	want := []float64{0.75, 1.5, 2.25}
	for i := range want {
		if !approxEq(levels[i], want[i], 1e-9) {
			t.Fatalf("levels = %v, want %v", levels, want)
		}
	}
}

func TestDashesFor(t *testing.T) {
	if d := dashesFor("solid"); d != nil {
		t.Errorf("solid has dashes %v", d)
	}
	for _, name := range []string{"dashed", "dotted", "dashdot"} {
		if d := dashesFor(name); len(d) == 0 {
			t.Errorf("%s has no dash pattern", name)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		spec string
		ok   bool
	}{
		{"#1f77b4", true},
		{"#fff", true},
		{"#1f77b480", true},
		{"firebrick", true},
		{"not-a-color", false},
		{"", false},
	}
	for _, test := range tests {
		if _, ok := parseColor(test.spec); ok != test.ok {
			t.Errorf("parseColor(%q) ok = %v, want %v", test.spec, ok, test.ok)
		}
	}
}

func TestCurveFromFunctionSampling(t *testing.T) {
	c := NewCurveFromFunction(math.Exp, 0, 1, 11)
	if len(c.X) != 11 {
		t.Fatalf("got %d samples, want 11", len(c.X))
	}
	if c.X[0] != 0 || c.X[10] != 1 {
		t.Fatalf("endpoints = %g, %g", c.X[0], c.X[10])
	}
	if !approxEq(c.Y[10], math.E, 1e-12) {
		t.Fatalf("f(1) = %g, want e", c.Y[10])
	}
}
