// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

// ContourStyle holds the display parameters of a Contour.
type ContourStyle struct {
	Preset OptString

	ColorMap OptString
	Levels   OptInt
}

// Contour draws level lines of a scalar field sampled on a grid.
// Data is indexed [row][column] with row 0 at the bottom.
type Contour struct {
	Data                   [][]float64
	XMin, XMax, YMin, YMax float64

	// LevelValues, when non-nil, overrides the level count from the
	// style with explicit contour values.
	LevelValues []float64

	Label string
	Style ContourStyle
}

// NewContour returns a contour plot of the given value matrix. All
// rows must have the same length.
func NewContour(data [][]float64) (*Contour, error) {
	if len(data) == 0 || len(data[0]) == 0 {
		return nil, mismatched("NewContour", "empty data matrix")
	}
	for i, row := range data {
		if len(row) != len(data[0]) {
			return nil, mismatched("NewContour", "row %d has %d values, row 0 has %d", i, len(row), len(data[0]))
		}
	}
	return &Contour{Data: data}, nil
}

// NewContourFromFunction samples f on an nx x ny grid over the given
// extent.
func NewContourFromFunction(f func(x, y float64) float64, xmin, xmax, ymin, ymax float64, nx, ny int) (*Contour, error) {
	h, err := NewHeatmapFromFunction(f, xmin, xmax, ymin, ymax, nx, ny)
	if err != nil {
		return nil, mismatched("NewContourFromFunction", "grid %dx%d, need at least 2x2", nx, ny)
	}
	return &Contour{Data: h.Data, XMin: xmin, XMax: xmax, YMin: ymin, YMax: ymax}, nil
}

// SetExtent places the grid over the given axis-coordinate ranges
// instead of integer indices.
func (ct *Contour) SetExtent(xmin, xmax, ymin, ymax float64) {
	ct.XMin, ct.XMax, ct.YMin, ct.YMax = xmin, xmax, ymin, ymax
}

// Copy returns a deep copy sharing no data with ct.
func (ct *Contour) Copy() *Contour {
	nc := *ct
	nc.Data = make([][]float64, len(ct.Data))
	for i, row := range ct.Data {
		nc.Data[i] = append([]float64(nil), row...)
	}
	nc.LevelValues = append([]float64(nil), ct.LevelValues...)
	return &nc
}

func (ct *Contour) typeName() string { return "Contour" }

func (ct *Contour) plotters(r *resolver) ([]plot.Plotter, []legendEntry, error) {
	r, err := r.forObject(ct.Style.Preset)
	if err != nil {
		return nil, nil, err
	}
	name := r.str("Contour", "color_map", ct.Style.ColorMap, "kindlmann")
	nlevels := r.integer("Contour", "number_of_levels", ct.Style.Levels, 10)

	g := &heatGrid{data: ct.Data}
	g.xmin, g.xmax, g.ymin, g.ymax = ct.XMin, ct.XMax, ct.YMin, ct.YMax
	if g.xmax == g.xmin {
		g.xmin, g.xmax = 0, float64(len(ct.Data[0])-1)
	}
	if g.ymax == g.ymin {
		g.ymin, g.ymax = 0, float64(len(ct.Data)-1)
	}

	levels := ct.LevelValues
	if levels == nil {
		levels = spreadLevels(ct.Data, nlevels)
	}
	c := plotter.NewContour(g, levels, paletteFor(name, 255))
	return []plot.Plotter{c}, nil, nil
}

// spreadLevels returns n contour values evenly spaced strictly inside
// the data range. Endpoints are excluded so the extreme levels still
// produce visible lines.
func spreadLevels(data [][]float64, n int) []float64 {
	if n < 1 {
		n = 1
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range data {
		for _, v := range row {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	levels := make([]float64, n)
	for i := range levels {
		levels[i] = lo + (hi-lo)*float64(i+1)/float64(n+1)
	}
	return levels
}
