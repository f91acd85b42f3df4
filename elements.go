// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// LineRuleStyle holds the display parameters of Hlines and Vlines.
type LineRuleStyle struct {
	Preset OptString

	Color     OptColor
	LineWidth OptFloat
	LineStyle OptString
}

// Hlines draws horizontal rules spanning the axes at the given y
// positions.
type Hlines struct {
	Ys    []float64
	Label string
	Style LineRuleStyle
}

// NewHlines returns horizontal rules at the given y positions.
func NewHlines(ys ...float64) *Hlines { return &Hlines{Ys: ys} }

// Copy returns a deep copy sharing no data with h.
func (h *Hlines) Copy() *Hlines {
	nh := *h
	nh.Ys = append([]float64(nil), h.Ys...)
	return &nh
}

func (h *Hlines) typeName() string { return "Hlines" }

func (h *Hlines) plotters(r *resolver) ([]plot.Plotter, []legendEntry, error) {
	r, err := r.forObject(h.Style.Preset)
	if err != nil {
		return nil, nil, err
	}
	ls := draw.LineStyle{
		Color:  r.colorVal("Hlines", "color", h.Style.Color, color.Black),
		Width:  vg.Points(r.float("Hlines", "line_width", h.Style.LineWidth, 1.5)),
		Dashes: dashesFor(r.str("Hlines", "line_style", h.Style.LineStyle, "solid")),
	}
	rp := &rulePlotter{positions: h.Ys, style: ls, horizontal: true}
	var legend []legendEntry
	if h.Label != "" {
		legend = append(legend, legendEntry{h.Label, lineThumb{ls}})
	}
	return []plot.Plotter{rp}, legend, nil
}

// Vlines draws vertical rules spanning the axes at the given x
// positions.
type Vlines struct {
	Xs    []float64
	Label string
	Style LineRuleStyle
}

// NewVlines returns vertical rules at the given x positions.
func NewVlines(xs ...float64) *Vlines { return &Vlines{Xs: xs} }

// Copy returns a deep copy sharing no data with v.
func (v *Vlines) Copy() *Vlines {
	nv := *v
	nv.Xs = append([]float64(nil), v.Xs...)
	return &nv
}

func (v *Vlines) typeName() string { return "Vlines" }

func (v *Vlines) plotters(r *resolver) ([]plot.Plotter, []legendEntry, error) {
	r, err := r.forObject(v.Style.Preset)
	if err != nil {
		return nil, nil, err
	}
	ls := draw.LineStyle{
		Color:  r.colorVal("Vlines", "color", v.Style.Color, color.Black),
		Width:  vg.Points(r.float("Vlines", "line_width", v.Style.LineWidth, 1.5)),
		Dashes: dashesFor(r.str("Vlines", "line_style", v.Style.LineStyle, "solid")),
	}
	rp := &rulePlotter{positions: v.Xs, style: ls}
	var legend []legendEntry
	if v.Label != "" {
		legend = append(legend, legendEntry{v.Label, lineThumb{ls}})
	}
	return []plot.Plotter{rp}, legend, nil
}

// rulePlotter draws axis-spanning rules. It deliberately has no
// DataRange so rules never widen the axes.
type rulePlotter struct {
	positions  []float64
	style      draw.LineStyle
	horizontal bool
}

func (rp *rulePlotter) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, pos := range rp.positions {
		var a, b vg.Point
		if rp.horizontal {
			y := trY(pos)
			a = vg.Point{X: c.Min.X, Y: y}
			b = vg.Point{X: c.Max.X, Y: y}
		} else {
			x := trX(pos)
			a = vg.Point{X: x, Y: c.Min.Y}
			b = vg.Point{X: x, Y: c.Max.Y}
		}
		c.StrokeLines(rp.style, c.ClipLinesXY([]vg.Point{a, b})...)
	}
}

// PointStyle holds the display parameters of a Point.
type PointStyle struct {
	Preset OptString

	Color       OptColor
	MarkerSize  OptFloat
	MarkerStyle OptString
	TextColor   OptColor
	FontSize    OptFloat
}

// Point is a single annotated point.
type Point struct {
	X, Y  float64
	Label string // drawn beside the point, not in the legend
	Style PointStyle
}

// NewPoint returns a point at (x, y).
func NewPoint(x, y float64) *Point { return &Point{X: x, Y: y} }

// Copy returns a copy of p.
func (p *Point) Copy() *Point {
	np := *p
	return &np
}

func (p *Point) typeName() string { return "Point" }

func (p *Point) plotters(r *resolver) ([]plot.Plotter, []legendEntry, error) {
	r, err := r.forObject(p.Style.Preset)
	if err != nil {
		return nil, nil, err
	}
	col := r.colorVal("Point", "color", p.Style.Color, color.Black)
	size := r.float("Point", "marker_size", p.Style.MarkerSize, 6)
	marker := r.str("Point", "marker_style", p.Style.MarkerStyle, "circle")
	textColor := r.colorVal("Point", "text_color", p.Style.TextColor, col)
	fontSize := r.float("Point", "font_size", p.Style.FontSize, 10)

	sc, err := plotter.NewScatter(plotter.XYs{{X: p.X, Y: p.Y}})
	if err != nil {
		return nil, nil, err
	}
	sc.GlyphStyle.Color = col
	sc.GlyphStyle.Radius = vg.Points(size)
	sc.GlyphStyle.Shape = glyphFor(marker)

	ps := []plot.Plotter{sc}
	if p.Label != "" {
		lbl, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    plotter.XYs{{X: p.X, Y: p.Y}},
			Labels: []string{" " + p.Label},
		})
		if err != nil {
			return nil, nil, err
		}
		for i := range lbl.TextStyle {
			lbl.TextStyle[i].Color = textColor
			lbl.TextStyle[i].Font.Size = vg.Points(fontSize)
		}
		ps = append(ps, lbl)
	}
	return ps, nil, nil
}

// TextStyle holds the display parameters of a Text annotation.
type TextStyle struct {
	Preset OptString

	Color    OptColor
	FontSize OptFloat
}

// Text is a string anchored at a data coordinate.
type Text struct {
	X, Y  float64
	S     string
	Style TextStyle
}

// NewText returns the string s anchored at (x, y).
func NewText(s string, x, y float64) *Text { return &Text{X: x, Y: y, S: s} }

// Copy returns a copy of t.
func (t *Text) Copy() *Text {
	nt := *t
	return &nt
}

func (t *Text) typeName() string { return "Text" }

func (t *Text) plotters(r *resolver) ([]plot.Plotter, []legendEntry, error) {
	r, err := r.forObject(t.Style.Preset)
	if err != nil {
		return nil, nil, err
	}
	col := r.colorVal("Text", "color", t.Style.Color, color.Black)
	size := r.float("Text", "font_size", t.Style.FontSize, 10)

	lbl, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: t.X, Y: t.Y}},
		Labels: []string{t.S},
	})
	if err != nil {
		return nil, nil, err
	}
	for i := range lbl.TextStyle {
		lbl.TextStyle[i].Color = col
		lbl.TextStyle[i].Font.Size = vg.Points(size)
	}
	return []plot.Plotter{lbl}, nil, nil
}
