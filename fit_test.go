// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import (
	"errors"
	"math"
	"testing"
)

func linspace(lo, hi float64, n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return xs
}

func curveOf(t *testing.T, f func(float64) float64, lo, hi float64, n int) *Curve {
	t.Helper()
	xs := linspace(lo, hi, n)
	ys := make([]float64, n)
	for i, x := range xs {
		ys[i] = f(x)
	}
	c, err := NewCurve(xs, ys)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestFitPolynomial(t *testing.T) {
	// y = 3x^2 - 2x + 1, noiseless.
	c := curveOf(t, func(x float64) float64 { return 3*x*x - 2*x + 1 }, -2, 2, 50)
	fit, err := FitPolynomial(c, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, -2, 3}
	if len(fit.Params) != len(want) {
		t.Fatalf("Params = %v, want 3 coefficients", fit.Params)
	}
	for i, w := range want {
		if !approxEq(fit.Params[i], w, 1e-6) {
			t.Errorf("coefficient %d = %g, want %g", i, fit.Params[i], w)
		}
	}
	if got := fit.Eval(0.5); !approxEq(got, 0.75, 1e-6) {
		t.Errorf("Eval(0.5) = %g, want 0.75", got)
	}
	if rmse := fit.RMSE(); rmse > 1e-6 {
		t.Errorf("RMSE = %g on noiseless data", rmse)
	}
}

func TestFitPolynomialValidation(t *testing.T) {
	c := curveOf(t, math.Sin, 0, 1, 3)
	if _, err := FitPolynomial(c, -1); err == nil {
		t.Fatalf("FitPolynomial accepted a negative degree")
	}
	if _, err := FitPolynomial(c, 5); err == nil {
		t.Fatalf("FitPolynomial accepted more parameters than points")
	}
}

func TestFitGaussian(t *testing.T) {
	f := func(x float64) float64 {
		d := (x - 1.5) / 0.5
		return 4 * math.Exp(-d*d/2)
	}
	c := curveOf(t, f, -1, 4, 100)
	fit, err := FitGaussian(c)
	if err != nil {
		t.Fatal(err)
	}
	if !approxEq(fit.Params[0], 4, 1e-2) {
		t.Errorf("amplitude = %g, want 4", fit.Params[0])
	}
	if !approxEq(fit.Params[1], 1.5, 1e-2) {
		t.Errorf("mean = %g, want 1.5", fit.Params[1])
	}
	if !approxEq(math.Abs(fit.Params[2]), 0.5, 1e-2) {
		t.Errorf("sigma = %g, want 0.5", fit.Params[2])
	}
}

func TestFitExponential(t *testing.T) {
	c := curveOf(t, func(x float64) float64 { return 2 * math.Exp(0.7*x) }, 0, 3, 60)
	fit, err := FitExponential(c)
	if err != nil {
		t.Fatal(err)
	}
	if !approxEq(fit.Params[0], 2, 1e-2) || !approxEq(fit.Params[1], 0.7, 1e-2) {
		t.Fatalf("params = %v, want [2 0.7]", fit.Params)
	}
}

func TestFitCustom(t *testing.T) {
	c := curveOf(t, func(x float64) float64 { return 5/(x+1) + 2 }, 0, 4, 80)
	model := func(p []float64, x float64) float64 { return p[0]/(x+1) + p[1] }
	fit, err := FitCustom(c, model, []float64{1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if !approxEq(fit.Params[0], 5, 1e-2) || !approxEq(fit.Params[1], 2, 1e-2) {
		t.Fatalf("params = %v, want [5 2]", fit.Params)
	}
}

func TestFitConvergenceError(t *testing.T) {
	c := curveOf(t, math.Sin, 0, 1, 10)
	// A model that is NaN everywhere has no finite minimum.
	model := func(p []float64, x float64) float64 { return math.NaN() }
	_, err := FitCustom(c, model, []float64{1})
	var fe *FitConvergenceError
	if !errors.As(err, &fe) {
		t.Fatalf("FitCustom = %v, want FitConvergenceError", err)
	}
	if fe.Model != "custom" {
		t.Fatalf("Model = %q, want custom", fe.Model)
	}
	// The backend diagnostic must survive.
	if errors.Unwrap(fe) == nil {
		t.Fatalf("FitConvergenceError lost its cause")
	}
}

func TestFitLOESS(t *testing.T) {
	c := curveOf(t, func(x float64) float64 { return 2*x + 1 }, 0, 10, 40)
	fit, err := FitLOESS(c, 1, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	// A degree-1 LOESS through straight-line data reproduces it.
	got, err := fit.At(5)
	if err != nil {
		t.Fatal(err)
	}
	if !approxEq(got, 11, 1e-6) {
		t.Fatalf("LOESS at 5 = %g, want 11", got)
	}
}

func TestFitLOESSValidation(t *testing.T) {
	c := curveOf(t, math.Sin, 0, 1, 20)
	if _, err := FitLOESS(c, 1, 0); err == nil {
		t.Fatalf("FitLOESS accepted span 0")
	}
	if _, err := FitLOESS(c, 1, 1.5); err == nil {
		t.Fatalf("FitLOESS accepted span > 1")
	}
}

func TestFitFromScatter(t *testing.T) {
	xs := linspace(0, 5, 30)
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 4*x - 3
	}
	s, err := NewScatter(xs, ys)
	if err != nil {
		t.Fatal(err)
	}
	fit, err := FitPolynomial(s, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !approxEq(fit.Params[0], -3, 1e-6) || !approxEq(fit.Params[1], 4, 1e-6) {
		t.Fatalf("params = %v, want [-3 4]", fit.Params)
	}
}
