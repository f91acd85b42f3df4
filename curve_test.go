// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func approxEq(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestNewCurveMismatch(t *testing.T) {
	_, err := NewCurve([]float64{1, 2, 3}, []float64{1, 2})
	var me *MismatchedDataError
	if !errors.As(err, &me) {
		t.Fatalf("NewCurve = %v, want MismatchedDataError", err)
	}
}

func TestCurveArithmetic(t *testing.T) {
	a, _ := NewCurve([]float64{0, 1, 2}, []float64{1, 2, 3})
	b, _ := NewCurve([]float64{0, 1, 2}, []float64{3, 2, 1})

	sum, err := a.AddCurve(b)
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{4, 4, 4}; !reflect.DeepEqual(sum.Y, want) {
		t.Fatalf("AddCurve y = %v, want %v", sum.Y, want)
	}
	diff, err := a.SubCurve(b)
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{-2, 0, 2}; !reflect.DeepEqual(diff.Y, want) {
		t.Fatalf("SubCurve y = %v, want %v", diff.Y, want)
	}

	// Operands are untouched.
	if !reflect.DeepEqual(a.Y, []float64{1, 2, 3}) {
		t.Fatalf("AddCurve modified its receiver")
	}

	// Mismatched grids are rejected.
	c, _ := NewCurve([]float64{0, 1, 3}, []float64{1, 2, 3})
	if _, err := a.AddCurve(c); err == nil {
		t.Fatalf("AddCurve accepted mismatched x grids")
	}
	short, _ := NewCurve([]float64{0, 1}, []float64{1, 2})
	if _, err := a.MulCurve(short); err == nil {
		t.Fatalf("MulCurve accepted mismatched lengths")
	}
}

func TestCurveScalarOps(t *testing.T) {
	a, _ := NewCurve([]float64{0, 1}, []float64{2, 4})
	if got := a.MulScalar(3).Y; !reflect.DeepEqual(got, []float64{6, 12}) {
		t.Fatalf("MulScalar y = %v", got)
	}
	if got := a.AddScalar(1).Y; !reflect.DeepEqual(got, []float64{3, 5}) {
		t.Fatalf("AddScalar y = %v", got)
	}
}

func TestCurveAt(t *testing.T) {
	c, _ := NewCurve([]float64{0, 1, 2}, []float64{0, 10, 0})
	tests := []struct {
		x, want float64
	}{
		{0, 0}, {0.5, 5}, {1, 10}, {1.5, 5}, {2, 0},
	}
	for _, test := range tests {
		got, err := c.At(test.x)
		if err != nil {
			t.Fatalf("At(%g): %v", test.x, err)
		}
		if !approxEq(got, test.want, 1e-12) {
			t.Errorf("At(%g) = %g, want %g", test.x, got, test.want)
		}
	}
	if _, err := c.At(3); err == nil {
		t.Fatalf("At accepted x outside the curve's range")
	}
}

func TestCurveCalculus(t *testing.T) {
	// y = x^2 on [0, 2].
	c := NewCurveFromFunction(func(x float64) float64 { return x * x }, 0, 2, 401)

	d := c.Derivative()
	got, err := d.At(1)
	if err != nil {
		t.Fatal(err)
	}
	if !approxEq(got, 2, 1e-2) {
		t.Fatalf("derivative of x^2 at 1 = %g, want 2", got)
	}

	in := c.Integral()
	got, err = in.At(2)
	if err != nil {
		t.Fatal(err)
	}
	if !approxEq(got, 8.0/3, 1e-3) {
		t.Fatalf("integral of x^2 over [0,2] = %g, want %g", got, 8.0/3)
	}

	area, err := c.Area(0, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !approxEq(area, 8.0/3, 1e-3) {
		t.Fatalf("Area(0, 2) = %g, want %g", area, 8.0/3)
	}

	slope, err := c.SlopeAt(1)
	if err != nil {
		t.Fatal(err)
	}
	if !approxEq(slope, 2, 1e-2) {
		t.Fatalf("SlopeAt(1) = %g, want 2", slope)
	}
}

func TestCurveArcLength(t *testing.T) {
	// A straight line from (0,0) to (3,4) has length 5.
	c, _ := NewCurve([]float64{0, 3}, []float64{0, 4})
	got, err := c.ArcLength(0, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !approxEq(got, 5, 1e-9) {
		t.Fatalf("ArcLength = %g, want 5", got)
	}
}

func TestCurveIntersections(t *testing.T) {
	a := NewCurveFromFunction(func(x float64) float64 { return x }, 0, 2, 201)
	b := NewCurveFromFunction(func(x float64) float64 { return 2 - x }, 0, 2, 201)
	pts, err := a.Intersections(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 1 {
		t.Fatalf("Intersections = %v, want one point", pts)
	}
	if !approxEq(pts[0][0], 1, 1e-2) || !approxEq(pts[0][1], 1, 1e-2) {
		t.Fatalf("intersection at (%g, %g), want (1, 1)", pts[0][0], pts[0][1])
	}
}

func TestCurveSlices(t *testing.T) {
	c, _ := NewCurve([]float64{0, 1, 2, 3}, []float64{0, 1, 2, 3})
	sl, err := c.SliceX(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(sl.X, []float64{1, 2}) {
		t.Fatalf("SliceX x = %v, want [1 2]", sl.X)
	}
	sy, err := c.SliceY(0.5, 2.5)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(sy.Y, []float64{1, 2}) {
		t.Fatalf("SliceY y = %v, want [1 2]", sy.Y)
	}
}

func TestCurveErrorBarsValidation(t *testing.T) {
	c, _ := NewCurve([]float64{0, 1, 2}, []float64{0, 1, 2})
	if err := c.SetErrorBars(nil, []float64{1, 1}); err == nil {
		t.Fatalf("SetErrorBars accepted wrong-length yerr")
	}
	if err := c.SetErrorBars([]float64{1, 1, 1}, nil); err != nil {
		t.Fatalf("SetErrorBars: %v", err)
	}
}

func TestCurveCopyIsDeep(t *testing.T) {
	c, _ := NewCurve([]float64{0, 1}, []float64{2, 3})
	c.SetErrorBars(nil, []float64{0.1, 0.1})
	cp := c.Copy()
	cp.Y[0] = 99
	cp.yerr[0] = 99
	if c.Y[0] != 2 || c.yerr[0] != 0.1 {
		t.Fatalf("Copy shares data with the original")
	}
}

func TestCurveTangentNormal(t *testing.T) {
	c := NewCurveFromFunction(func(x float64) float64 { return x * x }, 0, 2, 401)
	tan, err := c.Tangent(1)
	if err != nil {
		t.Fatal(err)
	}
	// The tangent to x^2 at x=1 passes through (1, 1) with slope 2.
	y0, err := tan.At(1)
	if err != nil {
		t.Fatal(err)
	}
	if !approxEq(y0, 1, 1e-2) {
		t.Fatalf("tangent at x=1 has y = %g, want 1", y0)
	}
	n, err := c.Normal(1)
	if err != nil {
		t.Fatal(err)
	}
	ny, err := n.At(1)
	if err != nil {
		t.Fatal(err)
	}
	if !approxEq(ny, 1, 1e-2) {
		t.Fatalf("normal at x=1 has y = %g, want 1", ny)
	}
}
