// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import (
	"image/color"
	"sort"

	"github.com/aclements/go-moremath/vec"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ScatterStyle holds the display parameters of a Scatter.
type ScatterStyle struct {
	Preset OptString

	FaceColor   OptColor
	EdgeColor   OptColor
	MarkerSize  OptFloat
	MarkerStyle OptString // circle, ring, square, triangle, plus, cross

	ErrorBarsColor     OptColor
	ErrorBarsLineWidth OptFloat
	CapWidth           OptFloat
}

// Scatter is a set of discrete (X[i], Y[i]) points.
type Scatter struct {
	X, Y  []float64
	Label string
	Style ScatterStyle

	xerr, yerr []float64
}

// NewScatter returns a scatter through the given points. X and Y must
// have the same length.
func NewScatter(x, y []float64) (*Scatter, error) {
	if len(x) != len(y) {
		return nil, mismatched("NewScatter", "len(x) = %d, len(y) = %d", len(x), len(y))
	}
	return &Scatter{X: x, Y: y}, nil
}

// NewScatterFromFunction samples f at n evenly spaced points on
// [xmin, xmax].
func NewScatterFromFunction(f func(float64) float64, xmin, xmax float64, n int) *Scatter {
	if n < 2 {
		n = 2
	}
	xs := vec.Linspace(xmin, xmax, n)
	return &Scatter{X: xs, Y: vec.Map(f, xs)}
}

// Copy returns a deep copy sharing no data with s.
func (s *Scatter) Copy() *Scatter {
	ns := *s
	ns.X = append([]float64(nil), s.X...)
	ns.Y = append([]float64(nil), s.Y...)
	ns.xerr = append([]float64(nil), s.xerr...)
	ns.yerr = append([]float64(nil), s.yerr...)
	return &ns
}

// SetErrorBars attaches symmetric x and/or y error bars. Either slice
// may be nil; a non-nil slice must match the data length.
func (s *Scatter) SetErrorBars(xerr, yerr []float64) error {
	if xerr != nil && len(xerr) != len(s.X) {
		return mismatched("SetErrorBars", "len(xerr) = %d, want %d", len(xerr), len(s.X))
	}
	if yerr != nil && len(yerr) != len(s.X) {
		return mismatched("SetErrorBars", "len(yerr) = %d, want %d", len(yerr), len(s.X))
	}
	s.xerr, s.yerr = xerr, yerr
	return nil
}

// ToCurve returns a curve through the scatter's points in x order.
func (s *Scatter) ToCurve() *Curve {
	idx := make([]int, len(s.X))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return s.X[idx[i]] < s.X[idx[j]] })
	c := &Curve{
		X:     make([]float64, len(s.X)),
		Y:     make([]float64, len(s.Y)),
		Label: s.Label,
	}
	for i, j := range idx {
		c.X[i], c.Y[i] = s.X[j], s.Y[j]
	}
	return c
}

func (s *Scatter) typeName() string { return "Scatter" }

func (s *Scatter) plotters(r *resolver) ([]plot.Plotter, []legendEntry, error) {
	r, err := r.forObject(s.Style.Preset)
	if err != nil {
		return nil, nil, err
	}
	face := r.colorVal("Scatter", "face_color", s.Style.FaceColor, color.Black)
	edge := r.colorVal("Scatter", "edge_color", s.Style.EdgeColor, color.Black)
	size := r.float("Scatter", "marker_size", s.Style.MarkerSize, 4)
	marker := r.str("Scatter", "marker_style", s.Style.MarkerStyle, "circle")
	ebColor := r.colorVal("Scatter", "errorbars_color", s.Style.ErrorBarsColor, face)
	ebWidth := r.float("Scatter", "errorbars_line_width", s.Style.ErrorBarsLineWidth, 1.5)
	capWidth := r.float("Scatter", "cap_width", s.Style.CapWidth, 4)

	sc, err := plotter.NewScatter(xyPoints(s.X, s.Y))
	if err != nil {
		return nil, nil, err
	}
	sc.GlyphStyle.Color = face
	sc.GlyphStyle.Radius = vg.Points(size)
	sc.GlyphStyle.Shape = glyphFor(marker)
	switch marker {
	case "ring", "plus", "cross":
		sc.GlyphStyle.Color = edge
	}

	ps := []plot.Plotter{sc}
	if s.xerr != nil || s.yerr != nil {
		eps, err := errBarPlotters(xyPoints(s.X, s.Y), s.xerr, s.yerr, ebColor, ebWidth, capWidth)
		if err != nil {
			return nil, nil, err
		}
		ps = append(ps, eps...)
	}

	var legend []legendEntry
	if s.Label != "" {
		legend = append(legend, legendEntry{s.Label, sc})
	}
	return ps, legend, nil
}
