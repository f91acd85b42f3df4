// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import (
	"image/color"
	"math"
	"sort"

	"github.com/aclements/go-moremath/vec"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// CurveStyle holds the display parameters of a Curve. Unset
// parameters resolve through container overrides, the style preset,
// and the built-in fallbacks, in that order.
type CurveStyle struct {
	// Preset names the style preset used to resolve this curve's
	// unset parameters, overriding the enclosing figure's preset.
	Preset OptString

	Color     OptColor
	LineWidth OptFloat
	LineStyle OptString // solid, dashed, dotted, dashdot

	FillColor OptColor
	FillAlpha OptFloat

	ErrorBarsColor     OptColor
	ErrorBarsLineWidth OptFloat
	CapWidth           OptFloat

	ErrorCurvesColor OptColor
	ErrorCurvesFill  OptBool
}

// Curve is a continuous curve through (X[i], Y[i]) samples. X must be
// ascending for the analysis operations (At, Tangent, slices, ...).
type Curve struct {
	X, Y  []float64
	Label string
	Style CurveStyle

	xerr, yerr []float64
	band       []float64 // symmetric error-curve band, nil if unset

	fillTo     *Curve
	fillBounds *[2]float64
}

// NewCurve returns a curve through the given samples. X and Y must
// have the same length.
func NewCurve(x, y []float64) (*Curve, error) {
	if len(x) != len(y) {
		return nil, mismatched("NewCurve", "len(x) = %d, len(y) = %d", len(x), len(y))
	}
	return &Curve{X: x, Y: y}, nil
}

// NewCurveFromFunction samples f at n evenly spaced points on
// [xmin, xmax].
func NewCurveFromFunction(f func(float64) float64, xmin, xmax float64, n int) *Curve {
	if n < 2 {
		n = 2
	}
	xs := vec.Linspace(xmin, xmax, n)
	return &Curve{X: xs, Y: vec.Map(f, xs)}
}

// Copy returns a deep copy sharing no data with c.
func (c *Curve) Copy() *Curve {
	nc := *c
	nc.X = append([]float64(nil), c.X...)
	nc.Y = append([]float64(nil), c.Y...)
	nc.xerr = append([]float64(nil), c.xerr...)
	nc.yerr = append([]float64(nil), c.yerr...)
	nc.band = append([]float64(nil), c.band...)
	if c.fillBounds != nil {
		b := *c.fillBounds
		nc.fillBounds = &b
	}
	return &nc
}

// SetErrorBars attaches symmetric x and/or y error bars. Either slice
// may be nil; a non-nil slice must match the data length.
func (c *Curve) SetErrorBars(xerr, yerr []float64) error {
	if xerr != nil && len(xerr) != len(c.X) {
		return mismatched("SetErrorBars", "len(xerr) = %d, want %d", len(xerr), len(c.X))
	}
	if yerr != nil && len(yerr) != len(c.X) {
		return mismatched("SetErrorBars", "len(yerr) = %d, want %d", len(yerr), len(c.X))
	}
	c.xerr, c.yerr = xerr, yerr
	return nil
}

// SetErrorCurves attaches a symmetric error band of half-width
// band[i] around each sample, drawn as curves or as a shaded region
// depending on the error_curves_fill parameter.
func (c *Curve) SetErrorCurves(band []float64) error {
	if len(band) != len(c.X) {
		return mismatched("SetErrorCurves", "len(band) = %d, want %d", len(band), len(c.X))
	}
	c.band = band
	return nil
}

// FillBetween shades the area under the curve on [x1, x2].
func (c *Curve) FillBetween(x1, x2 float64) {
	c.fillBounds = &[2]float64{x1, x2}
	c.fillTo = nil
}

// FillToCurve shades the area between c and other, which must share
// c's x samples.
func (c *Curve) FillToCurve(other *Curve) error {
	if err := sameGrid("FillToCurve", c, other); err != nil {
		return err
	}
	c.fillTo = other
	c.fillBounds = nil
	return nil
}

func sameGrid(op string, a, b *Curve) error {
	if len(a.X) != len(b.X) {
		return mismatched(op, "sample counts differ: %d vs %d", len(a.X), len(b.X))
	}
	for i := range a.X {
		if a.X[i] != b.X[i] {
			return mismatched(op, "x coordinates differ at index %d: %g vs %g", i, a.X[i], b.X[i])
		}
	}
	return nil
}

func (c *Curve) binop(op string, o *Curve, f func(a, b float64) float64) (*Curve, error) {
	if err := sameGrid(op, c, o); err != nil {
		return nil, err
	}
	y := make([]float64, len(c.Y))
	for i := range y {
		y[i] = f(c.Y[i], o.Y[i])
	}
	return &Curve{X: append([]float64(nil), c.X...), Y: y}, nil
}

// AddCurve returns c + o. The curves must share x samples.
func (c *Curve) AddCurve(o *Curve) (*Curve, error) {
	return c.binop("AddCurve", o, func(a, b float64) float64 { return a + b })
}

// SubCurve returns c - o.
func (c *Curve) SubCurve(o *Curve) (*Curve, error) {
	return c.binop("SubCurve", o, func(a, b float64) float64 { return a - b })
}

// MulCurve returns the pointwise product of c and o.
func (c *Curve) MulCurve(o *Curve) (*Curve, error) {
	return c.binop("MulCurve", o, func(a, b float64) float64 { return a * b })
}

// DivCurve returns the pointwise quotient of c and o.
func (c *Curve) DivCurve(o *Curve) (*Curve, error) {
	return c.binop("DivCurve", o, func(a, b float64) float64 { return a / b })
}

func (c *Curve) scalarOp(k float64, f func(a, b float64) float64) *Curve {
	y := make([]float64, len(c.Y))
	for i := range y {
		y[i] = f(c.Y[i], k)
	}
	return &Curve{X: append([]float64(nil), c.X...), Y: y}
}

// AddScalar returns c with k added to every sample.
func (c *Curve) AddScalar(k float64) *Curve {
	return c.scalarOp(k, func(a, b float64) float64 { return a + b })
}

// SubScalar returns c with k subtracted from every sample.
func (c *Curve) SubScalar(k float64) *Curve {
	return c.scalarOp(k, func(a, b float64) float64 { return a - b })
}

// MulScalar returns c scaled by k.
func (c *Curve) MulScalar(k float64) *Curve {
	return c.scalarOp(k, func(a, b float64) float64 { return a * b })
}

// DivScalar returns c divided by k.
func (c *Curve) DivScalar(k float64) *Curve {
	return c.scalarOp(k, func(a, b float64) float64 { return a / b })
}

// At returns the curve's value at x by linear interpolation.
func (c *Curve) At(x float64) (float64, error) {
	if len(c.X) == 0 {
		return 0, mismatched("At", "empty curve")
	}
	if x < c.X[0] || x > c.X[len(c.X)-1] {
		return 0, mismatched("At", "x = %g outside curve range [%g, %g]", x, c.X[0], c.X[len(c.X)-1])
	}
	i := sort.SearchFloat64s(c.X, x)
	if i < len(c.X) && c.X[i] == x {
		return c.Y[i], nil
	}
	x0, x1 := c.X[i-1], c.X[i]
	y0, y1 := c.Y[i-1], c.Y[i]
	return y0 + (y1-y0)*(x-x0)/(x1-x0), nil
}

// SlopeAt returns the curve's slope at x.
func (c *Curve) SlopeAt(x float64) (float64, error) {
	d := c.Derivative()
	return d.At(x)
}

// Derivative returns the numerical derivative of c (central
// differences, one-sided at the endpoints).
func (c *Curve) Derivative() *Curve {
	n := len(c.X)
	y := make([]float64, n)
	if n >= 2 {
		y[0] = (c.Y[1] - c.Y[0]) / (c.X[1] - c.X[0])
		y[n-1] = (c.Y[n-1] - c.Y[n-2]) / (c.X[n-1] - c.X[n-2])
	}
	for i := 1; i < n-1; i++ {
		y[i] = (c.Y[i+1] - c.Y[i-1]) / (c.X[i+1] - c.X[i-1])
	}
	return &Curve{X: append([]float64(nil), c.X...), Y: y}
}

// Integral returns the cumulative trapezoidal integral of c, zero at
// the first sample.
func (c *Curve) Integral() *Curve {
	n := len(c.X)
	y := make([]float64, n)
	for i := 1; i < n; i++ {
		y[i] = y[i-1] + 0.5*(c.Y[i]+c.Y[i-1])*(c.X[i]-c.X[i-1])
	}
	return &Curve{X: append([]float64(nil), c.X...), Y: y}
}

// Tangent returns the tangent line to c at x, sampled on c's x grid.
func (c *Curve) Tangent(x float64) (*Curve, error) {
	y0, err := c.At(x)
	if err != nil {
		return nil, err
	}
	s, err := c.SlopeAt(x)
	if err != nil {
		return nil, err
	}
	return NewCurveFromFunction(func(t float64) float64 {
		return y0 + s*(t-x)
	}, c.X[0], c.X[len(c.X)-1], len(c.X)), nil
}

// Normal returns the line normal to c at x, sampled on c's x grid.
func (c *Curve) Normal(x float64) (*Curve, error) {
	y0, err := c.At(x)
	if err != nil {
		return nil, err
	}
	s, err := c.SlopeAt(x)
	if err != nil {
		return nil, err
	}
	if s == 0 {
		return nil, mismatched("Normal", "curve is flat at x = %g", x)
	}
	return NewCurveFromFunction(func(t float64) float64 {
		return y0 - (t-x)/s
	}, c.X[0], c.X[len(c.X)-1], len(c.X)), nil
}

// ArcLength returns the length of the curve between x1 and x2.
func (c *Curve) ArcLength(x1, x2 float64) (float64, error) {
	s, err := c.SliceX(x1, x2)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for i := 1; i < len(s.X); i++ {
		sum += math.Hypot(s.X[i]-s.X[i-1], s.Y[i]-s.Y[i-1])
	}
	return sum, nil
}

// Area returns the signed area under the curve between x1 and x2
// (trapezoidal rule).
func (c *Curve) Area(x1, x2 float64) (float64, error) {
	s, err := c.SliceX(x1, x2)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for i := 1; i < len(s.X); i++ {
		sum += 0.5 * (s.Y[i] + s.Y[i-1]) * (s.X[i] - s.X[i-1])
	}
	return sum, nil
}

// SliceX returns the part of the curve with x1 <= x <= x2.
func (c *Curve) SliceX(x1, x2 float64) (*Curve, error) {
	var xs, ys []float64
	for i := range c.X {
		if c.X[i] >= x1 && c.X[i] <= x2 {
			xs = append(xs, c.X[i])
			ys = append(ys, c.Y[i])
		}
	}
	if len(xs) < 2 {
		return nil, mismatched("SliceX", "fewer than two samples in [%g, %g]", x1, x2)
	}
	return &Curve{X: xs, Y: ys}, nil
}

// SliceY returns the part of the curve with y1 <= y <= y2.
func (c *Curve) SliceY(y1, y2 float64) (*Curve, error) {
	var xs, ys []float64
	for i := range c.Y {
		if c.Y[i] >= y1 && c.Y[i] <= y2 {
			xs = append(xs, c.X[i])
			ys = append(ys, c.Y[i])
		}
	}
	if len(xs) < 2 {
		return nil, mismatched("SliceY", "fewer than two samples in [%g, %g]", y1, y2)
	}
	return &Curve{X: xs, Y: ys}, nil
}

// XsAtY returns the x positions where the curve crosses y, by linear
// interpolation between adjacent samples.
func (c *Curve) XsAtY(y float64) []float64 {
	var xs []float64
	for i := 1; i < len(c.Y); i++ {
		y0, y1 := c.Y[i-1], c.Y[i]
		if y0 == y {
			xs = append(xs, c.X[i-1])
			continue
		}
		if (y0 < y) != (y1 < y) {
			t := (y - y0) / (y1 - y0)
			xs = append(xs, c.X[i-1]+t*(c.X[i]-c.X[i-1]))
		}
	}
	if len(c.Y) > 0 && c.Y[len(c.Y)-1] == y {
		xs = append(xs, c.X[len(c.X)-1])
	}
	return xs
}

// Intersections returns the (x, y) coordinates where c and o cross.
// The curves must overlap in x.
func (c *Curve) Intersections(o *Curve) ([][2]float64, error) {
	lo := math.Max(c.X[0], o.X[0])
	hi := math.Min(c.X[len(c.X)-1], o.X[len(o.X)-1])
	if lo >= hi {
		return nil, mismatched("Intersections", "curves do not overlap in x")
	}
	n := len(c.X)
	if len(o.X) > n {
		n = len(o.X)
	}
	xs := vec.Linspace(lo, hi, n)
	var pts [][2]float64
	var prevDiff float64
	var prevX float64
	for i, x := range xs {
		a, err := c.At(x)
		if err != nil {
			return nil, err
		}
		b, err := o.At(x)
		if err != nil {
			return nil, err
		}
		diff := a - b
		if i > 0 && (diff == 0 || (diff < 0) != (prevDiff < 0)) {
			t := 0.0
			if diff != prevDiff {
				t = prevDiff / (prevDiff - diff)
			}
			cx := prevX + t*(x-prevX)
			cy, _ := c.At(cx)
			pts = append(pts, [2]float64{cx, cy})
		}
		prevDiff, prevX = diff, x
	}
	return pts, nil
}

func (c *Curve) typeName() string { return "Curve" }

type curveParams struct {
	color     color.Color
	width     float64
	dashes    []vg.Length
	fillColor color.Color
	ebColor   color.Color
	ebWidth   float64
	capWidth  float64
	ecColor   color.Color
	ecFill    bool
}

func (c *Curve) resolve(r *resolver) (curveParams, error) {
	r, err := r.forObject(c.Style.Preset)
	if err != nil {
		return curveParams{}, err
	}
	var p curveParams
	p.color = r.colorVal("Curve", "color", c.Style.Color, color.Black)
	p.width = r.float("Curve", "line_width", c.Style.LineWidth, 2)
	p.dashes = dashesFor(r.str("Curve", "line_style", c.Style.LineStyle, "solid"))
	alpha := r.float("Curve", "fill_alpha", c.Style.FillAlpha, 0.3)
	p.fillColor = withAlpha(r.colorVal("Curve", "fill_color", c.Style.FillColor, p.color), alpha)
	p.ebColor = r.colorVal("Curve", "errorbars_color", c.Style.ErrorBarsColor, p.color)
	p.ebWidth = r.float("Curve", "errorbars_line_width", c.Style.ErrorBarsLineWidth, 1.5)
	p.capWidth = r.float("Curve", "cap_width", c.Style.CapWidth, 4)
	p.ecColor = r.colorVal("Curve", "error_curves_color", c.Style.ErrorCurvesColor, p.color)
	p.ecFill = r.boolean("Curve", "error_curves_fill", c.Style.ErrorCurvesFill, true)
	return p, nil
}

func (c *Curve) plotters(r *resolver) ([]plot.Plotter, []legendEntry, error) {
	p, err := c.resolve(r)
	if err != nil {
		return nil, nil, err
	}
	var ps []plot.Plotter

	if band := c.bandPlotters(p); band != nil {
		ps = append(ps, band...)
	}
	if fill := c.fillPlotter(p); fill != nil {
		ps = append(ps, fill)
	}

	ln, err := plotter.NewLine(xyPoints(c.X, c.Y))
	if err != nil {
		return nil, nil, err
	}
	ln.LineStyle.Color = p.color
	ln.LineStyle.Width = vg.Points(p.width)
	ln.LineStyle.Dashes = p.dashes
	ps = append(ps, ln)

	if c.xerr != nil || c.yerr != nil {
		eps, err := errBarPlotters(xyPoints(c.X, c.Y), c.xerr, c.yerr, p.ebColor, p.ebWidth, p.capWidth)
		if err != nil {
			return nil, nil, err
		}
		ps = append(ps, eps...)
	}

	var legend []legendEntry
	if c.Label != "" {
		legend = append(legend, legendEntry{c.Label, ln})
	}
	return ps, legend, nil
}

// bandPlotters renders the error-curve band, either as a shaded
// region or as two bounding curves.
func (c *Curve) bandPlotters(p curveParams) []plot.Plotter {
	if c.band == nil {
		return nil
	}
	upper := make([]float64, len(c.Y))
	lower := make([]float64, len(c.Y))
	for i := range c.Y {
		upper[i] = c.Y[i] + c.band[i]
		lower[i] = c.Y[i] - c.band[i]
	}
	if p.ecFill {
		poly, err := plotter.NewPolygon(bandPolygon(c.X, upper, lower))
		if err != nil {
			return nil
		}
		poly.Color = withAlpha(p.ecColor, 0.3)
		poly.LineStyle.Color = color.NRGBA{}
		return []plot.Plotter{poly}
	}
	var ps []plot.Plotter
	for _, ys := range [][]float64{upper, lower} {
		ln, err := plotter.NewLine(xyPoints(c.X, ys))
		if err != nil {
			continue
		}
		ln.LineStyle.Color = p.ecColor
		ln.LineStyle.Width = vg.Points(p.width / 2)
		ln.LineStyle.Dashes = dashesFor("dashed")
		ps = append(ps, ln)
	}
	return ps
}

func (c *Curve) fillPlotter(p curveParams) plot.Plotter {
	var upperX, upperY, lowerY []float64
	switch {
	case c.fillTo != nil:
		upperX, upperY, lowerY = c.X, c.Y, c.fillTo.Y
	case c.fillBounds != nil:
		s, err := c.SliceX(c.fillBounds[0], c.fillBounds[1])
		if err != nil {
			return nil
		}
		upperX, upperY = s.X, s.Y
		lowerY = make([]float64, len(s.Y))
	default:
		return nil
	}
	poly, err := plotter.NewPolygon(bandPolygon(upperX, upperY, lowerY))
	if err != nil {
		return nil
	}
	poly.Color = p.fillColor
	poly.LineStyle.Color = color.NRGBA{}
	return poly
}

// bandPolygon builds the closed polygon between an upper and a lower
// boundary sharing the same x samples.
func bandPolygon(x, upper, lower []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, 2*len(x))
	for i := range x {
		pts = append(pts, plotter.XY{X: x[i], Y: upper[i]})
	}
	for i := len(x) - 1; i >= 0; i-- {
		pts = append(pts, plotter.XY{X: x[i], Y: lower[i]})
	}
	return pts
}

// errBarPlotters builds x and/or y error-bar plotters for a series.
func errBarPlotters(xys plotter.XYs, xerr, yerr []float64, col color.Color, width, capWidth float64) ([]plot.Plotter, error) {
	var ps []plot.Plotter
	d := errData{XYs: xys, xerr: xerr, yerr: yerr}
	if yerr != nil {
		eb, err := plotter.NewYErrorBars(d)
		if err != nil {
			return nil, err
		}
		eb.LineStyle.Color = col
		eb.LineStyle.Width = vg.Points(width)
		eb.CapWidth = vg.Points(capWidth)
		ps = append(ps, eb)
	}
	if xerr != nil {
		eb, err := plotter.NewXErrorBars(d)
		if err != nil {
			return nil, err
		}
		eb.LineStyle.Color = col
		eb.LineStyle.Width = vg.Points(width)
		eb.CapWidth = vg.Points(capWidth)
		ps = append(ps, eb)
	}
	return ps, nil
}
