// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// VectorFieldStyle holds the display parameters of a VectorField.
type VectorFieldStyle struct {
	Preset OptString

	Color     OptColor
	LineWidth OptFloat
	HeadSize  OptFloat
	// ArrowScale multiplies vector components before drawing.
	ArrowScale OptFloat
}

// VectorField draws an arrow for each point of a grid-sampled vector
// field. U and V are indexed [row][column] with row 0 at the bottom.
type VectorField struct {
	U, V                   [][]float64
	XMin, XMax, YMin, YMax float64

	Label string
	Style VectorFieldStyle
}

// NewVectorField returns a vector field from component matrices.
// U and V must be the same rectangular shape.
func NewVectorField(u, v [][]float64) (*VectorField, error) {
	if len(u) == 0 || len(u[0]) == 0 {
		return nil, mismatched("NewVectorField", "empty component matrix")
	}
	if len(u) != len(v) {
		return nil, mismatched("NewVectorField", "u has %d rows, v has %d", len(u), len(v))
	}
	for i := range u {
		if len(u[i]) != len(u[0]) || len(v[i]) != len(u[0]) {
			return nil, mismatched("NewVectorField", "ragged component matrix at row %d", i)
		}
	}
	return &VectorField{U: u, V: v}, nil
}

// NewVectorFieldFromFunction samples f on an nx x ny grid over the
// given extent.
func NewVectorFieldFromFunction(f func(x, y float64) (u, v float64), xmin, xmax, ymin, ymax float64, nx, ny int) (*VectorField, error) {
	if nx < 2 || ny < 2 {
		return nil, mismatched("NewVectorFieldFromFunction", "grid %dx%d, need at least 2x2", nx, ny)
	}
	u := make([][]float64, ny)
	v := make([][]float64, ny)
	for j := range u {
		y := ymin + (ymax-ymin)*float64(j)/float64(ny-1)
		u[j] = make([]float64, nx)
		v[j] = make([]float64, nx)
		for i := range u[j] {
			x := xmin + (xmax-xmin)*float64(i)/float64(nx-1)
			u[j][i], v[j][i] = f(x, y)
		}
	}
	return &VectorField{U: u, V: v, XMin: xmin, XMax: xmax, YMin: ymin, YMax: ymax}, nil
}

// SetExtent places the grid over the given axis-coordinate ranges
// instead of integer indices.
func (vf *VectorField) SetExtent(xmin, xmax, ymin, ymax float64) {
	vf.XMin, vf.XMax, vf.YMin, vf.YMax = xmin, xmax, ymin, ymax
}

// Copy returns a deep copy sharing no data with vf.
func (vf *VectorField) Copy() *VectorField {
	nv := *vf
	nv.U = copyMatrix(vf.U)
	nv.V = copyMatrix(vf.V)
	return &nv
}

func copyMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

func (vf *VectorField) grid() (xs, ys []float64) {
	nx, ny := len(vf.U[0]), len(vf.U)
	xmin, xmax, ymin, ymax := vf.XMin, vf.XMax, vf.YMin, vf.YMax
	if xmax == xmin {
		xmin, xmax = 0, float64(nx-1)
	}
	if ymax == ymin {
		ymin, ymax = 0, float64(ny-1)
	}
	xs = make([]float64, nx)
	for i := range xs {
		xs[i] = xmin + (xmax-xmin)*float64(i)/float64(nx-1)
	}
	ys = make([]float64, ny)
	for j := range ys {
		ys[j] = ymin + (ymax-ymin)*float64(j)/float64(ny-1)
	}
	return xs, ys
}

func (vf *VectorField) typeName() string { return "VectorField" }

func (vf *VectorField) plotters(r *resolver) ([]plot.Plotter, []legendEntry, error) {
	r, err := r.forObject(vf.Style.Preset)
	if err != nil {
		return nil, nil, err
	}
	ls := draw.LineStyle{
		Color: r.colorVal("VectorField", "color", vf.Style.Color, color.Black),
		Width: vg.Points(r.float("VectorField", "line_width", vf.Style.LineWidth, 1)),
	}
	head := r.float("VectorField", "head_size", vf.Style.HeadSize, 4)
	scale := r.float("VectorField", "arrow_scale", vf.Style.ArrowScale, 1)

	xs, ys := vf.grid()
	fp := &fieldPlotter{
		xs: xs, ys: ys, u: vf.U, v: vf.V,
		scale: scale, style: ls, head: vg.Points(head),
	}
	var legend []legendEntry
	if vf.Label != "" {
		legend = append(legend, legendEntry{vf.Label, lineThumb{ls}})
	}
	return []plot.Plotter{fp}, legend, nil
}

type fieldPlotter struct {
	xs, ys []float64
	u, v   [][]float64
	scale  float64
	style  draw.LineStyle
	head   vg.Length
}

func (f *fieldPlotter) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for j, y := range f.ys {
		for i, x := range f.xs {
			u, v := f.u[j][i]*f.scale, f.v[j][i]*f.scale
			if u == 0 && v == 0 {
				continue
			}
			p1 := vg.Point{X: trX(x), Y: trY(y)}
			p2 := vg.Point{X: trX(x + u), Y: trY(y + v)}
			c.StrokeLines(f.style, c.ClipLinesXY([]vg.Point{p1, p2})...)
			if c.Contains(p2) {
				drawArrowHead(c, f.style, p1, p2, f.head)
			}
		}
	}
}

func (f *fieldPlotter) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = math.Inf(1), math.Inf(-1)
	for _, x := range f.xs {
		xmin, xmax = math.Min(xmin, x), math.Max(xmax, x)
	}
	ymin, ymax = math.Inf(1), math.Inf(-1)
	for _, y := range f.ys {
		ymin, ymax = math.Min(ymin, y), math.Max(ymax, y)
	}
	return
}
