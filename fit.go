// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import (
	"math"

	"github.com/aclements/go-moremath/fit"
	"gonum.org/v1/gonum/optimize"
)

// An XYSource provides paired sample data for curve fitting.
type XYSource interface {
	XYData() (x, y []float64)
}

// XYData returns the curve's sample points.
func (c *Curve) XYData() (x, y []float64) { return c.X, c.Y }

// XYData returns the scatter's sample points.
func (s *Scatter) XYData() (x, y []float64) { return s.X, s.Y }

// A Fit is a fitted model rendered as a curve over the source data's
// x range. It embeds Curve, so it plots and styles like one.
type Fit struct {
	*Curve

	// Model names the fitted functional form.
	Model string
	// Params holds the fitted parameters. Their meaning depends on
	// the model; polynomial parameters are coefficients from degree
	// zero up.
	Params []float64

	eval       func(float64) float64
	srcX, srcY []float64
}

// Eval evaluates the fitted function at x.
func (f *Fit) Eval(x float64) float64 { return f.eval(x) }

// Residuals returns the per-sample fit residuals y - f(x).
func (f *Fit) Residuals() []float64 {
	res := make([]float64, len(f.srcX))
	for i, x := range f.srcX {
		res[i] = f.srcY[i] - f.eval(x)
	}
	return res
}

// RMSE returns the root mean squared residual.
func (f *Fit) RMSE() float64 {
	sum := 0.0
	for _, r := range f.Residuals() {
		sum += r * r
	}
	return math.Sqrt(sum / float64(len(f.srcX)))
}

func newFit(model string, xs, ys, params []float64, eval func(float64) float64) *Fit {
	lo, hi := xs[0], xs[0]
	for _, x := range xs {
		lo, hi = math.Min(lo, x), math.Max(hi, x)
	}
	f := &Fit{
		Curve:  NewCurveFromFunction(eval, lo, hi, 500),
		Model:  model,
		Params: params,
		eval:   eval,
		srcX:   append([]float64(nil), xs...),
		srcY:   append([]float64(nil), ys...),
	}
	return f
}

func fitData(op string, src XYSource, minPoints int) (xs, ys []float64, err error) {
	xs, ys = src.XYData()
	if len(xs) != len(ys) {
		return nil, nil, mismatched(op, "%d x values, %d y values", len(xs), len(ys))
	}
	if len(xs) < minPoints {
		return nil, nil, mismatched(op, "%d points, need at least %d", len(xs), minPoints)
	}
	return xs, ys, nil
}

// FitPolynomial fits a polynomial of the given degree to src by least
// squares.
func FitPolynomial(src XYSource, degree int) (*Fit, error) {
	xs, ys, err := fitData("FitPolynomial", src, degree+1)
	if err != nil {
		return nil, err
	}
	if degree < 0 {
		return nil, mismatched("FitPolynomial", "degree %d", degree)
	}
	res := fit.PolynomialRegression(xs, ys, nil, degree)
	return newFit("polynomial", xs, ys, res.Coefficients, res.F), nil
}

// FitLOESS fits a locally weighted regression to src. span is the
// fraction of points in each local window, in (0, 1].
func FitLOESS(src XYSource, degree int, span float64) (*Fit, error) {
	xs, ys, err := fitData("FitLOESS", src, degree+2)
	if err != nil {
		return nil, err
	}
	if span <= 0 || span > 1 {
		return nil, mismatched("FitLOESS", "span %g not in (0, 1]", span)
	}
	f := fit.LOESS(xs, ys, degree, span)
	return newFit("loess", xs, ys, nil, f), nil
}

// FitExponential fits y = a*exp(b*x) to src.
func FitExponential(src XYSource) (*Fit, error) {
	xs, ys, err := fitData("FitExponential", src, 3)
	if err != nil {
		return nil, err
	}
	// Linearize for the starting point where the data allows it.
	a0, b0 := ys[0], 0.1
	if ys[0] > 0 && ys[len(ys)-1] > 0 && xs[len(xs)-1] != xs[0] {
		b0 = (math.Log(ys[len(ys)-1]) - math.Log(ys[0])) / (xs[len(xs)-1] - xs[0])
	}
	if a0 == 0 {
		a0 = 1
	}
	return fitNonlinear("exponential", xs, ys, []float64{a0, b0},
		func(p []float64, x float64) float64 {
			return p[0] * math.Exp(p[1]*x)
		})
}

// FitGaussian fits y = A*exp(-(x-mu)^2/(2*sigma^2)) to src.
func FitGaussian(src XYSource) (*Fit, error) {
	xs, ys, err := fitData("FitGaussian", src, 3)
	if err != nil {
		return nil, err
	}
	amp, mu := ys[0], xs[0]
	lo, hi := xs[0], xs[0]
	for i, y := range ys {
		if y > amp {
			amp, mu = y, xs[i]
		}
		lo, hi = math.Min(lo, xs[i]), math.Max(hi, xs[i])
	}
	sigma := (hi - lo) / 4
	if sigma == 0 {
		sigma = 1
	}
	return fitNonlinear("gaussian", xs, ys, []float64{amp, mu, sigma},
		func(p []float64, x float64) float64 {
			d := (x - p[1]) / p[2]
			return p[0] * math.Exp(-d*d/2)
		})
}

// FitSine fits y = a*sin(b*x+c)+d to src.
func FitSine(src XYSource) (*Fit, error) {
	xs, ys, err := fitData("FitSine", src, 4)
	if err != nil {
		return nil, err
	}
	lo, hi := ys[0], ys[0]
	xlo, xhi := xs[0], xs[0]
	mean := 0.0
	for i, y := range ys {
		lo, hi = math.Min(lo, y), math.Max(hi, y)
		xlo, xhi = math.Min(xlo, xs[i]), math.Max(xhi, xs[i])
		mean += y
	}
	mean /= float64(len(ys))
	amp := (hi - lo) / 2
	if amp == 0 {
		amp = 1
	}
	freq := 1.0
	if xhi != xlo {
		freq = 2 * math.Pi / (xhi - xlo)
	}
	return fitNonlinear("sine", xs, ys, []float64{amp, freq, 0, mean},
		func(p []float64, x float64) float64 {
			return p[0]*math.Sin(p[1]*x+p[2]) + p[3]
		})
}

// FitSquareRoot fits y = a*sqrt(x+b)+c to src.
func FitSquareRoot(src XYSource) (*Fit, error) {
	xs, ys, err := fitData("FitSquareRoot", src, 3)
	if err != nil {
		return nil, err
	}
	xlo := xs[0]
	for _, x := range xs {
		xlo = math.Min(xlo, x)
	}
	return fitNonlinear("square root", xs, ys, []float64{1, -xlo + 1, ys[0]},
		func(p []float64, x float64) float64 {
			return p[0]*math.Sqrt(x+p[1]) + p[2]
		})
}

// FitLog fits y = a*log(x+b)+c to src.
func FitLog(src XYSource) (*Fit, error) {
	xs, ys, err := fitData("FitLog", src, 3)
	if err != nil {
		return nil, err
	}
	xlo := xs[0]
	for _, x := range xs {
		xlo = math.Min(xlo, x)
	}
	return fitNonlinear("log", xs, ys, []float64{1, -xlo + 1, ys[0]},
		func(p []float64, x float64) float64 {
			return p[0]*math.Log(x+p[1]) + p[2]
		})
}

// FitCustom fits an arbitrary model f(params, x) to src starting from
// guess.
func FitCustom(src XYSource, f func(params []float64, x float64) float64, guess []float64) (*Fit, error) {
	xs, ys, err := fitData("FitCustom", src, len(guess))
	if err != nil {
		return nil, err
	}
	if len(guess) == 0 {
		return nil, mismatched("FitCustom", "empty parameter guess")
	}
	return fitNonlinear("custom", xs, ys, guess, f)
}

// fitNonlinear minimizes the sum of squared residuals of model over
// the starting parameters p0 with Nelder-Mead.
func fitNonlinear(name string, xs, ys, p0 []float64, model func(p []float64, x float64) float64) (*Fit, error) {
	problem := optimize.Problem{
		Func: func(p []float64) float64 {
			sse := 0.0
			for i, x := range xs {
				d := ys[i] - model(p, x)
				if math.IsNaN(d) || math.IsInf(d, 0) {
					return math.Inf(1)
				}
				sse += d * d
			}
			return sse
		},
	}
	res, err := optimize.Minimize(problem, append([]float64(nil), p0...), nil, &optimize.NelderMead{})
	if err != nil {
		return nil, &FitConvergenceError{Model: name, Err: err}
	}
	if math.IsInf(res.F, 0) || math.IsNaN(res.F) {
		return nil, &FitConvergenceError{Model: name, Err: errNoMinimum}
	}
	params := append([]float64(nil), res.X...)
	return newFit(name, xs, ys, params, func(x float64) float64 {
		return model(params, x)
	}), nil
}
