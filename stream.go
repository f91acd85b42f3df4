// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// StreamStyle holds the display parameters of a Stream.
type StreamStyle struct {
	Preset OptString

	Color     OptColor
	LineWidth OptFloat
	LineStyle OptString
	// Density controls how many streamlines are seeded. 1 seeds a
	// 6x6 grid of starting points.
	Density OptFloat
}

// Stream draws streamlines of a grid-sampled vector field. U and V
// are indexed [row][column] with row 0 at the bottom.
type Stream struct {
	U, V                   [][]float64
	XMin, XMax, YMin, YMax float64

	Label string
	Style StreamStyle
}

// NewStream returns a streamline plot from component matrices. U and
// V must be the same rectangular shape.
func NewStream(u, v [][]float64) (*Stream, error) {
	vf, err := NewVectorField(u, v)
	if err != nil {
		return nil, mismatched("NewStream", "bad component matrices")
	}
	return &Stream{U: vf.U, V: vf.V}, nil
}

// NewStreamFromFunction samples f on an nx x ny grid over the given
// extent.
func NewStreamFromFunction(f func(x, y float64) (u, v float64), xmin, xmax, ymin, ymax float64, nx, ny int) (*Stream, error) {
	vf, err := NewVectorFieldFromFunction(f, xmin, xmax, ymin, ymax, nx, ny)
	if err != nil {
		return nil, err
	}
	return &Stream{U: vf.U, V: vf.V, XMin: xmin, XMax: xmax, YMin: ymin, YMax: ymax}, nil
}

// SetExtent places the grid over the given axis-coordinate ranges
// instead of integer indices.
func (s *Stream) SetExtent(xmin, xmax, ymin, ymax float64) {
	s.XMin, s.XMax, s.YMin, s.YMax = xmin, xmax, ymin, ymax
}

// Copy returns a deep copy sharing no data with s.
func (s *Stream) Copy() *Stream {
	ns := *s
	ns.U = copyMatrix(s.U)
	ns.V = copyMatrix(s.V)
	return &ns
}

func (s *Stream) extent() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax, ymin, ymax = s.XMin, s.XMax, s.YMin, s.YMax
	if xmax == xmin {
		xmin, xmax = 0, float64(len(s.U[0])-1)
	}
	if ymax == ymin {
		ymin, ymax = 0, float64(len(s.U)-1)
	}
	return
}

// sample bilinearly interpolates the field at (x, y). ok is false
// outside the grid.
func (s *Stream) sample(x, y float64) (u, v float64, ok bool) {
	xmin, xmax, ymin, ymax := s.extent()
	if x < xmin || x > xmax || y < ymin || y > ymax {
		return 0, 0, false
	}
	nx, ny := len(s.U[0]), len(s.U)
	fx := (x - xmin) / (xmax - xmin) * float64(nx-1)
	fy := (y - ymin) / (ymax - ymin) * float64(ny-1)
	i0 := int(fx)
	j0 := int(fy)
	if i0 >= nx-1 {
		i0 = nx - 2
	}
	if j0 >= ny-1 {
		j0 = ny - 2
	}
	tx, ty := fx-float64(i0), fy-float64(j0)
	lerp2 := func(m [][]float64) float64 {
		a := m[j0][i0]*(1-tx) + m[j0][i0+1]*tx
		b := m[j0+1][i0]*(1-tx) + m[j0+1][i0+1]*tx
		return a*(1-ty) + b*ty
	}
	return lerp2(s.U), lerp2(s.V), true
}

// trace integrates one streamline from (x, y) in the given direction
// using midpoint (RK2) steps.
func (s *Stream) trace(x, y, dir float64) plotter.XYs {
	xmin, xmax, ymin, ymax := s.extent()
	h := math.Min(xmax-xmin, ymax-ymin) / 200
	const maxSteps = 800

	line := plotter.XYs{{X: x, Y: y}}
	for step := 0; step < maxSteps; step++ {
		u, v, ok := s.sample(x, y)
		if !ok {
			break
		}
		speed := math.Hypot(u, v)
		if speed == 0 {
			break
		}
		// Half step along the normalized field, then a full step
		// using the midpoint direction.
		mx := x + dir*h/2*u/speed
		my := y + dir*h/2*v/speed
		u, v, ok = s.sample(mx, my)
		if !ok {
			break
		}
		speed = math.Hypot(u, v)
		if speed == 0 {
			break
		}
		x += dir * h * u / speed
		y += dir * h * v / speed
		line = append(line, plotter.XY{X: x, Y: y})
	}
	return line
}

func (s *Stream) typeName() string { return "Stream" }

func (s *Stream) plotters(r *resolver) ([]plot.Plotter, []legendEntry, error) {
	r, err := r.forObject(s.Style.Preset)
	if err != nil {
		return nil, nil, err
	}
	col := r.colorVal("Stream", "color", s.Style.Color, color.Black)
	width := r.float("Stream", "line_width", s.Style.LineWidth, 1)
	dashes := dashesFor(r.str("Stream", "line_style", s.Style.LineStyle, "solid"))
	density := r.float("Stream", "density", s.Style.Density, 1)

	n := int(math.Round(6 * density))
	if n < 1 {
		n = 1
	}
	xmin, xmax, ymin, ymax := s.extent()

	var ps []plot.Plotter
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			sx := xmin + (xmax-xmin)*(float64(i)+0.5)/float64(n)
			sy := ymin + (ymax-ymin)*(float64(j)+0.5)/float64(n)
			back := s.trace(sx, sy, -1)
			fwd := s.trace(sx, sy, 1)
			// Join the two halves at the seed.
			line := make(plotter.XYs, 0, len(back)+len(fwd))
			for k := len(back) - 1; k > 0; k-- {
				line = append(line, back[k])
			}
			line = append(line, fwd...)
			if len(line) < 2 {
				continue
			}
			ln, err := plotter.NewLine(line)
			if err != nil {
				return nil, nil, err
			}
			ln.LineStyle.Color = col
			ln.LineStyle.Width = vg.Points(width)
			ln.LineStyle.Dashes = dashes
			ps = append(ps, ln)
		}
	}

	var legend []legendEntry
	if s.Label != "" && len(ps) > 0 {
		legend = append(legend, legendEntry{s.Label, ps[0].(*plotter.Line)})
	}
	return ps, legend, nil
}
