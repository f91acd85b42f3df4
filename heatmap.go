// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

// HeatmapStyle holds the display parameters of a Heatmap.
type HeatmapStyle struct {
	Preset OptString

	ColorMap    OptString
	OriginUpper OptBool
}

// Heatmap displays a matrix of values as colored cells. Data is
// indexed [row][column]; by default row 0 is drawn at the bottom.
type Heatmap struct {
	Data [][]float64
	// Extent of the data in axis coordinates. When XMax == XMin the
	// cells are placed at integer indices.
	XMin, XMax, YMin, YMax float64

	Label string
	Style HeatmapStyle
}

// NewHeatmap returns a heatmap of the given value matrix. All rows
// must have the same length.
func NewHeatmap(data [][]float64) (*Heatmap, error) {
	if len(data) == 0 || len(data[0]) == 0 {
		return nil, mismatched("NewHeatmap", "empty data matrix")
	}
	for i, row := range data {
		if len(row) != len(data[0]) {
			return nil, mismatched("NewHeatmap", "row %d has %d values, row 0 has %d", i, len(row), len(data[0]))
		}
	}
	return &Heatmap{Data: data}, nil
}

// NewHeatmapFromFunction samples f on an nx x ny grid over the given
// extent.
func NewHeatmapFromFunction(f func(x, y float64) float64, xmin, xmax, ymin, ymax float64, nx, ny int) (*Heatmap, error) {
	if nx < 2 || ny < 2 {
		return nil, mismatched("NewHeatmapFromFunction", "grid %dx%d, need at least 2x2", nx, ny)
	}
	data := make([][]float64, ny)
	for j := range data {
		y := ymin + (ymax-ymin)*float64(j)/float64(ny-1)
		data[j] = make([]float64, nx)
		for i := range data[j] {
			x := xmin + (xmax-xmin)*float64(i)/float64(nx-1)
			data[j][i] = f(x, y)
		}
	}
	return &Heatmap{Data: data, XMin: xmin, XMax: xmax, YMin: ymin, YMax: ymax}, nil
}

// SetExtent places the cells over the given axis-coordinate ranges
// instead of integer indices.
func (h *Heatmap) SetExtent(xmin, xmax, ymin, ymax float64) {
	h.XMin, h.XMax, h.YMin, h.YMax = xmin, xmax, ymin, ymax
}

// Copy returns a deep copy sharing no data with h.
func (h *Heatmap) Copy() *Heatmap {
	nh := *h
	nh.Data = make([][]float64, len(h.Data))
	for i, row := range h.Data {
		nh.Data[i] = append([]float64(nil), row...)
	}
	return &nh
}

func (h *Heatmap) typeName() string { return "Heatmap" }

func (h *Heatmap) plotters(r *resolver) ([]plot.Plotter, []legendEntry, error) {
	r, err := r.forObject(h.Style.Preset)
	if err != nil {
		return nil, nil, err
	}
	name := r.str("Heatmap", "color_map", h.Style.ColorMap, "kindlmann")
	upper := r.boolean("Heatmap", "origin_upper", h.Style.OriginUpper, false)

	g := &heatGrid{data: h.Data, flip: upper}
	g.xmin, g.xmax, g.ymin, g.ymax = h.XMin, h.XMax, h.YMin, h.YMax
	if g.xmax == g.xmin {
		g.xmin, g.xmax = 0, float64(len(h.Data[0])-1)
	}
	if g.ymax == g.ymin {
		g.ymin, g.ymax = 0, float64(len(h.Data)-1)
	}
	hm := plotter.NewHeatMap(g, paletteFor(name, 255))
	return []plot.Plotter{hm}, nil, nil
}

// heatGrid adapts a [row][column] matrix to the plotter grid
// interface. flip draws row 0 at the top.
type heatGrid struct {
	data                   [][]float64
	xmin, xmax, ymin, ymax float64
	flip                   bool
}

func (g *heatGrid) Dims() (c, r int) { return len(g.data[0]), len(g.data) }

func (g *heatGrid) Z(c, r int) float64 {
	if g.flip {
		r = len(g.data) - 1 - r
	}
	return g.data[r][c]
}

func (g *heatGrid) X(c int) float64 {
	n := len(g.data[0])
	if n == 1 {
		return g.xmin
	}
	return g.xmin + (g.xmax-g.xmin)*float64(c)/float64(n-1)
}

func (g *heatGrid) Y(r int) float64 {
	n := len(g.data)
	if n == 1 {
		return g.ymin
	}
	return g.ymin + (g.ymax-g.ymin)*float64(r)/float64(n-1)
}
