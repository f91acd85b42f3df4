// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import (
	"math"
	"testing"
)

func square(t *testing.T, x, y, side float64) *Polygon {
	t.Helper()
	p, err := NewPolygon([][2]float64{
		{x, y}, {x + side, y}, {x + side, y + side}, {x, y + side},
	})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNewPolygonValidation(t *testing.T) {
	if _, err := NewPolygon([][2]float64{{0, 0}, {1, 1}}); err == nil {
		t.Fatalf("NewPolygon accepted 2 vertices")
	}
}

func TestPolygonMeasures(t *testing.T) {
	p := square(t, 0, 0, 2)
	if got := p.Area(); !approxEq(got, 4, 1e-9) {
		t.Errorf("Area = %g, want 4", got)
	}
	if got := p.Perimeter(); !approxEq(got, 8, 1e-9) {
		t.Errorf("Perimeter = %g, want 8", got)
	}
	cx, cy := p.Centroid()
	if !approxEq(cx, 1, 1e-9) || !approxEq(cy, 1, 1e-9) {
		t.Errorf("Centroid = (%g, %g), want (1, 1)", cx, cy)
	}
}

func TestPolygonContains(t *testing.T) {
	p := square(t, 0, 0, 2)
	tests := []struct {
		x, y float64
		want bool
	}{
		{1, 1, true},
		{3, 1, false},
		{-0.1, 1, false},
	}
	for _, test := range tests {
		if got := p.Contains(test.x, test.y); got != test.want {
			t.Errorf("Contains(%g, %g) = %v, want %v", test.x, test.y, got, test.want)
		}
	}
}

func TestPolygonBooleanOps(t *testing.T) {
	a := square(t, 0, 0, 2)
	b := square(t, 1, 1, 2)

	inter, err := a.Intersection(b)
	if err != nil {
		t.Fatal(err)
	}
	if got := inter.Area(); !approxEq(got, 1, 1e-9) {
		t.Errorf("intersection area = %g, want 1", got)
	}

	union, err := a.Union(b)
	if err != nil {
		t.Fatal(err)
	}
	if got := union.Area(); !approxEq(got, 7, 1e-9) {
		t.Errorf("union area = %g, want 7", got)
	}

	diff, err := a.Difference(b)
	if err != nil {
		t.Fatal(err)
	}
	if got := diff.Area(); !approxEq(got, 3, 1e-9) {
		t.Errorf("difference area = %g, want 3", got)
	}

	// Disjoint squares have no intersection.
	far := square(t, 10, 10, 1)
	if _, err := a.Intersection(far); err == nil {
		t.Fatalf("Intersection of disjoint shapes did not fail")
	}
}

func TestPolygonTransforms(t *testing.T) {
	p := square(t, 0, 0, 2)

	moved := p.Translate(3, 4)
	cx, cy := moved.Centroid()
	if !approxEq(cx, 4, 1e-9) || !approxEq(cy, 5, 1e-9) {
		t.Errorf("translated centroid = (%g, %g), want (4, 5)", cx, cy)
	}
	// The original is untouched.
	if ox, oy := p.Centroid(); !approxEq(ox, 1, 1e-9) || !approxEq(oy, 1, 1e-9) {
		t.Errorf("Translate modified the receiver")
	}

	rot := p.Rotate(math.Pi / 2)
	if got := rot.Area(); !approxEq(got, 4, 1e-9) {
		t.Errorf("rotation changed area to %g", got)
	}
	rx, ry := rot.Centroid()
	if !approxEq(rx, 1, 1e-9) || !approxEq(ry, 1, 1e-9) {
		t.Errorf("rotation about centroid moved it to (%g, %g)", rx, ry)
	}

	big := p.Scale(2, 3)
	if got := big.Area(); !approxEq(got, 24, 1e-9) {
		t.Errorf("scaled area = %g, want 24", got)
	}
}

func TestCircle(t *testing.T) {
	c, err := NewCircle(1, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	// The derived polygon's area approaches pi*r^2.
	c.Resolution = 512
	if got, want := c.Area(), math.Pi*9; !approxEq(got, want, want*1e-3) {
		t.Errorf("Area = %g, want about %g", got, want)
	}
	if !c.Contains(1, 2) || c.Contains(5, 2) {
		t.Errorf("Contains is wrong")
	}
	if _, err := NewCircle(0, 0, -1); err == nil {
		t.Fatalf("NewCircle accepted a negative radius")
	}
}

func TestRectangle(t *testing.T) {
	r, err := NewRectangle(1, 1, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Polygon().Area(); !approxEq(got, 8, 1e-9) {
		t.Errorf("Area = %g, want 8", got)
	}
	if !r.Contains(2, 2) || r.Contains(0, 0) {
		t.Errorf("Contains is wrong")
	}
	if _, err := NewRectangle(0, 0, 0, 1); err == nil {
		t.Fatalf("NewRectangle accepted zero width")
	}
}
