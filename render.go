// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/figkit/figkit/style"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// This file is the only one that drives gonum/plot drawing: it turns
// figures and containers into plot values, lays out container grids
// on canvases, and exports through formatted canvases.

// formatOf maps a file extension to a canvas format name.
func formatOf(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "png", "svg", "pdf", "eps", "jpg", "jpeg", "tif", "tiff":
		return ext, nil
	}
	return "", fmt.Errorf("figkit: unsupported output format %q", filepath.Ext(path))
}

// saveTo writes one formatted canvas, drawn by render, to w.
func saveTo(w io.Writer, format string, width, height vg.Length, render func(draw.Canvas) error) error {
	c, err := draw.NewFormattedCanvas(width, height, format)
	if err != nil {
		return err
	}
	if err := render(draw.New(c)); err != nil {
		return err
	}
	_, err = c.WriteTo(w)
	return err
}

// save opens path, writes via render, and closes it, reporting the
// first error.
func save(path string, width, height vg.Length, render func(draw.Canvas) error) error {
	format, err := formatOf(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = saveTo(f, format, width, height, render)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// sizeOf resolves an object's size in inches: explicit dimensions
// first, then the style's two-element size list, then the fallback.
func sizeOf(r *resolver, objType string, wo, ho OptFloat, fbW, fbH float64) (w, h vg.Length) {
	sw, sh := fbW, fbH
	if v, ok := r.lookup(objType, "size"); ok {
		if list, ok := v.([]interface{}); ok && len(list) == 2 {
			if f, ok := toFloat(list[0]); ok {
				sw = f
			}
			if f, ok := toFloat(list[1]); ok {
				sh = f
			}
		}
	}
	sw = wo.Or(sw)
	sh = ho.Or(sh)
	return vg.Length(sw) * vg.Inch, vg.Length(sh) * vg.Inch
}

// Save renders the figure to path, picking the format from the
// extension.
func (f *Figure) Save(path string) error {
	s := f.storeFor()
	r := f.resolver(s, nil)
	w, h := sizeOf(r, "Figure", f.Width, f.Height, 6.4, 4.8)
	return save(path, w, h, func(c draw.Canvas) error {
		return f.renderInto(c, s, nil, "", true)
	})
}

// SaveTo renders the figure to w in the given format ("png", "svg",
// "pdf", "eps", "jpg" or "tif").
func (f *Figure) SaveTo(w io.Writer, format string) error {
	s := f.storeFor()
	r := f.resolver(s, nil)
	cw, ch := sizeOf(r, "Figure", f.Width, f.Height, 6.4, 4.8)
	return saveTo(w, format, cw, ch, func(c draw.Canvas) error {
		return f.renderInto(c, s, nil, "", true)
	})
}

// buildPlot assembles the figure's plot and its legend entries,
// without the twin axis.
func (f *Figure) buildPlot(r *resolver, showLegend bool) (*plot.Plot, []legendEntry, error) {
	p := plot.New()
	p.Title.Text = f.Title
	p.X.Label.Text = f.XLabel
	p.Y.Label.Text = f.YLabel

	if bg, ok := r.lookup("Figure", "background_color"); ok {
		if s, ok := bg.(string); ok {
			if c, ok := parseColor(s); ok {
				p.BackgroundColor = c
			}
		}
	}
	axesColor := r.colorVal("Figure", "axes_color", OptColor{}, color.Black)
	textColor := r.colorVal("Figure", "text_color", OptColor{}, color.Black)
	styleAxis(&p.X, axesColor, textColor)
	styleAxis(&p.Y, axesColor, textColor)
	p.Title.TextStyle.Color = textColor

	if r.boolean("Figure", "show_grid", f.ShowGrid, false) {
		g := plotter.NewGrid()
		g.Vertical.Color = r.colorVal("Figure", "grid_color", OptColor{}, color.Gray{Y: 0xcc})
		g.Vertical.Width = vg.Points(r.float("Figure", "grid_line_width", OptFloat{}, 0.5))
		g.Horizontal = g.Vertical
		p.Add(g)
	}

	var entries []legendEntry
	for _, e := range f.elements {
		ps, les, err := e.plotters(r)
		if err != nil {
			return nil, nil, err
		}
		for _, pl := range ps {
			p.Add(pl)
		}
		entries = append(entries, les...)
	}

	if f.LogX {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if f.LogY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if v, ok := f.XMin.Get(); ok {
		p.X.Min = v
	}
	if v, ok := f.XMax.Get(); ok {
		p.X.Max = v
	}
	if v, ok := f.YMin.Get(); ok {
		p.Y.Min = v
	}
	if v, ok := f.YMax.Get(); ok {
		p.Y.Max = v
	}
	clampRanges(p)

	if f.HideAxes {
		p.HideAxes()
	}
	if f.HideXTicks {
		p.X.Tick.Marker = plot.ConstantTicks(nil)
	}
	if f.HideYTicks {
		p.Y.Tick.Marker = plot.ConstantTicks(nil)
	}

	if showLegend && f.Legend.Or(len(entries) > 0) {
		addLegendEntries(&p.Legend, entries)
		legendPosition(&p.Legend, r.str("Figure", "legend_location", f.LegendLocation, "best"))
	}
	return p, entries, nil
}

func styleAxis(a *plot.Axis, line, text color.Color) {
	a.LineStyle.Color = line
	a.Label.TextStyle.Color = text
	a.Tick.LineStyle.Color = line
	a.Tick.Label.Color = text
}

// clampRanges replaces non-finite axis ranges, which happen when no
// plotter reported a data range, with a unit range.
func clampRanges(p *plot.Plot) {
	fix := func(min, max *float64) {
		if math.IsInf(*min, 0) || math.IsNaN(*min) || math.IsInf(*max, 0) || math.IsNaN(*max) {
			*min, *max = 0, 1
		}
	}
	fix(&p.X.Min, &p.X.Max)
	fix(&p.Y.Min, &p.Y.Max)
}

// renderInto draws the figure on c. parent is the enclosing
// container's resolver, or nil; label is the reference label to
// stamp, or "". ownLegend is false when an enclosing container
// collects labels into a general legend instead.
func (f *Figure) renderInto(c draw.Canvas, s *style.Store, parent *resolver, label string, ownLegend bool) error {
	r := f.resolver(s, parent)
	p, _, err := f.buildPlot(r, ownLegend)
	if err != nil {
		return err
	}
	p.Draw(c)

	if f.twin != nil && len(f.twin.elements) > 0 {
		if err := f.drawTwin(c, s, r, p); err != nil {
			return err
		}
	}
	if label != "" {
		drawRefLabel(c, label)
	}
	return nil
}

// drawTwin draws the twin figure's elements inside the primary plot's
// data area, scaled against their own y range, and strokes a right-
// hand axis for them.
func (f *Figure) drawTwin(c draw.Canvas, s *style.Store, r *resolver, primary *plot.Plot) error {
	tw := f.twin
	tr := tw.resolver(s, r)

	tp := plot.New()
	tp.HideAxes()
	tp.X.Min, tp.X.Max = primary.X.Min, primary.X.Max
	if f.LogX {
		tp.X.Scale = plot.LogScale{}
	}
	for _, e := range tw.elements {
		ps, _, err := e.plotters(tr)
		if err != nil {
			return err
		}
		for _, pl := range ps {
			tp.Add(pl)
		}
	}
	if v, ok := tw.YMin.Get(); ok {
		tp.Y.Min = v
	}
	if v, ok := tw.YMax.Get(); ok {
		tp.Y.Max = v
	}
	clampRanges(tp)

	dc := primary.DataCanvas(c)
	tp.Draw(dc)
	drawRightAxis(dc, tp.Y.Min, tp.Y.Max, f.twinLabel,
		r.colorVal("Figure", "axes_color", OptColor{}, color.Black))
	return nil
}

// drawRightAxis strokes a minimal y axis along the right edge of the
// data canvas: a spine, outward ticks and tick labels, and a label.
func drawRightAxis(dc draw.Canvas, min, max float64, label string, col color.Color) {
	ls := draw.LineStyle{Color: col, Width: vg.Points(0.5)}
	x := dc.Max.X
	dc.StrokeLine2(ls, x, dc.Min.Y, x, dc.Max.Y)

	sty := draw.TextStyle{
		Color:   col,
		Font:    font.From(plot.DefaultFont, vg.Points(10)),
		Handler: plot.DefaultTextHandler,
		XAlign:  draw.XLeft,
		YAlign:  draw.YCenter,
	}

	for _, t := range (plot.DefaultTicks{}).Ticks(min, max) {
		if t.IsMinor() {
			continue
		}
		y := dc.Min.Y + vg.Length((t.Value-min)/(max-min))*(dc.Max.Y-dc.Min.Y)
		dc.StrokeLine2(ls, x, y, x+vg.Points(4), y)
		dc.FillText(sty, vg.Point{X: x + vg.Points(6), Y: y}, t.Label)
	}
	if label != "" {
		lsty := sty
		lsty.XAlign = draw.XCenter
		lsty.YAlign = draw.YTop
		lsty.Rotation = -math.Pi / 2
		dc.FillText(lsty, vg.Point{X: x + vg.Points(30), Y: (dc.Min.Y + dc.Max.Y) / 2}, label)
	}
}

// drawRefLabel stamps a reference label like "a)" at the top left of
// the cell canvas.
func drawRefLabel(c draw.Canvas, label string) {
	sty := draw.TextStyle{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, vg.Points(12)),
		Handler: plot.DefaultTextHandler,
		XAlign:  draw.XLeft,
		YAlign:  draw.YTop,
	}
	c.FillText(sty, vg.Point{X: c.Min.X + vg.Points(2), Y: c.Max.Y - vg.Points(2)}, label)
}

// refLabeler hands out "a)", "b)", ..., "z)", "aa)", ... in call
// order.
type refLabeler struct {
	n int
}

func (l *refLabeler) next() string {
	i := l.n
	l.n++
	s := ""
	for {
		s = string(rune('a'+i%26)) + s
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	return s + ")"
}

// Save renders the container to path, picking the format from the
// extension.
func (m *MultiFigure) Save(path string) error {
	s := m.storeFor()
	r := m.resolver(s, nil)
	w, h := sizeOf(r, "MultiFigure", m.Width, m.Height, 9.6, 7.2)
	return save(path, w, h, func(c draw.Canvas) error {
		return m.renderInto(c, s, nil)
	})
}

// SaveTo renders the container to w in the given format.
func (m *MultiFigure) SaveTo(w io.Writer, format string) error {
	s := m.storeFor()
	r := m.resolver(s, nil)
	cw, ch := sizeOf(r, "MultiFigure", m.Width, m.Height, 9.6, 7.2)
	return saveTo(w, format, cw, ch, func(c draw.Canvas) error {
		return m.renderInto(c, s, nil)
	})
}

// subCanvas crops c to the normalized region rg, whose y axis runs
// top-down.
func subCanvas(c draw.Canvas, rg region) draw.Canvas {
	w := c.Max.X - c.Min.X
	h := c.Max.Y - c.Min.Y
	sub := c
	sub.Rectangle = vg.Rectangle{
		Min: vg.Point{X: c.Min.X + vg.Length(rg.x0)*w, Y: c.Max.Y - vg.Length(rg.y1)*h},
		Max: vg.Point{X: c.Min.X + vg.Length(rg.x1)*w, Y: c.Max.Y - vg.Length(rg.y0)*h},
	}
	return sub
}

// gridJob is one container awaiting layout during the iterative
// render walk. labels is non-nil below a container with RefLabels
// set; suppressLegend is set below a container that collects a
// general legend.
type gridJob struct {
	m              *MultiFigure
	canvas         draw.Canvas
	res            *resolver
	labels         *refLabeler
	suppressLegend bool
}

// renderInto draws the container tree on c with an explicit work
// stack. Cells are visited in reference order, so labels and the
// general legend come out deterministic regardless of insertion
// order.
func (m *MultiFigure) renderInto(c draw.Canvas, s *style.Store, parent *resolver) error {
	root := m.resolver(s, parent)

	body := c
	if m.Title != "" {
		var title draw.Canvas
		title, body = splitTop(body, vg.Points(26))
		drawCenteredTitle(title, m.Title,
			root.colorVal("Figure", "text_color", OptColor{}, color.Black))
	}
	if m.GeneralLegend {
		entries, err := m.legendEntries(s, root)
		if err != nil {
			return err
		}
		var strip draw.Canvas
		body, strip = splitBottom(body, legendStripHeight(len(entries)))
		drawLegendStrip(strip, entries, root.str("Figure", "legend_location", OptString{}, "best"))
	}

	var labels *refLabeler
	if m.RefLabels {
		labels = &refLabeler{}
	}
	stack := []gridJob{{m, body, root, labels, m.GeneralLegend}}
	for len(stack) > 0 {
		job := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		ps := job.m.grid.ordered()
		rs := job.m.grid.regions()
		// Nested containers are pushed in reverse so the stack pops
		// them in reference order.
		var nested []gridJob
		for i, p := range ps {
			cell := subCanvas(job.canvas, rs[i])
			switch content := p.content.(type) {
			case *Figure:
				label := ""
				if job.labels != nil {
					label = job.labels.next()
				}
				if err := content.renderInto(cell, s, job.res, label, !job.suppressLegend); err != nil {
					return err
				}
			case *MultiFigure:
				if content.GeneralLegend {
					// The nested container renders its own combined
					// legend; collection stopped there too.
					if err := content.renderInto(cell, s, job.res); err != nil {
						return err
					}
					continue
				}
				if content.Title != "" {
					var title draw.Canvas
					title, cell = splitTop(cell, vg.Points(20))
					drawCenteredTitle(title, content.Title,
						job.res.colorVal("Figure", "text_color", OptColor{}, color.Black))
				}
				// A nested container that turns on RefLabels under a
				// root that does not starts its own label sequence.
				childLabels := job.labels
				if childLabels == nil && content.RefLabels {
					childLabels = &refLabeler{}
				}
				nested = append(nested, gridJob{content, cell, content.resolver(s, job.res), childLabels, job.suppressLegend})
			}
		}
		for i := len(nested) - 1; i >= 0; i-- {
			stack = append(stack, nested[i])
		}
	}
	return nil
}

func splitTop(c draw.Canvas, h vg.Length) (top, rest draw.Canvas) {
	top, rest = c, c
	top.Rectangle.Min.Y = c.Max.Y - h
	rest.Rectangle.Max.Y = c.Max.Y - h
	return top, rest
}

func splitBottom(c draw.Canvas, h vg.Length) (rest, bottom draw.Canvas) {
	rest, bottom = c, c
	rest.Rectangle.Min.Y = c.Min.Y + h
	bottom.Rectangle.Max.Y = c.Min.Y + h
	return rest, bottom
}

func drawCenteredTitle(c draw.Canvas, title string, col color.Color) {
	sty := draw.TextStyle{
		Color:   col,
		Font:    font.From(plot.DefaultFont, vg.Points(16)),
		Handler: plot.DefaultTextHandler,
		XAlign:  draw.XCenter,
		YAlign:  draw.YTop,
	}
	c.FillText(sty, vg.Point{X: (c.Min.X + c.Max.X) / 2, Y: c.Max.Y - vg.Points(2)}, title)
}

func legendStripHeight(entries int) vg.Length {
	if entries == 0 {
		return vg.Points(24)
	}
	return vg.Points(16)*vg.Length(entries) + vg.Points(10)
}

// drawLegendStrip renders the combined legend in its own strip using
// an axes-less plot. An empty entry list still draws the (empty)
// legend box area.
func drawLegendStrip(c draw.Canvas, entries []legendEntry, loc string) {
	lp := plot.New()
	lp.HideAxes()
	lp.X.Min, lp.X.Max = 0, 1
	lp.Y.Min, lp.Y.Max = 0, 1
	addLegendEntries(&lp.Legend, entries)
	legendPosition(&lp.Legend, loc)
	lp.Draw(c)
}
