// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

// A Plottable is one drawable element: data plus display parameters.
// Plottables are created by user code, optionally mutated, and
// attached to figures by reference; rendering never mutates them.
type Plottable interface {
	// typeName is the object type name used for style preset and
	// override lookup ("Curve", "Scatter", ...).
	typeName() string

	// plotters resolves the element's effective style against r
	// and returns the backend plotters to add to the axes, plus
	// any legend entries the element contributes.
	plotters(r *resolver) ([]plot.Plotter, []legendEntry, error)
}

// legendEntry is one (label, thumbnail) pair collected for legend
// assembly. Labels are not deduplicated: two elements labelled "Data"
// produce two entries.
type legendEntry struct {
	label string
	thumb plot.Thumbnailer
}

func xyPoints(x, y []float64) plotter.XYs {
	xys := make(plotter.XYs, len(x))
	for i := range x {
		xys[i].X = x[i]
		xys[i].Y = y[i]
	}
	return xys
}

// errData wraps an XY series with symmetric error magnitudes for the
// backend's error-bar plotters.
type errData struct {
	plotter.XYs
	xerr, yerr []float64
}

func (d errData) XError(i int) (low, high float64) {
	if d.xerr == nil {
		return 0, 0
	}
	return d.xerr[i], d.xerr[i]
}

func (d errData) YError(i int) (low, high float64) {
	if d.yerr == nil {
		return 0, 0
	}
	return d.yerr[i], d.yerr[i]
}
