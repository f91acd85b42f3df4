// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// lineThumb draws a legend swatch as a horizontal line sample.
type lineThumb struct {
	ls draw.LineStyle
}

func (t lineThumb) Thumbnail(c *draw.Canvas) {
	y := c.Center().Y
	c.StrokeLine2(t.ls, c.Min.X, y, c.Max.X, y)
}

// boxThumb draws a legend swatch as a filled, outlined box. Used by
// histograms and shapes.
type boxThumb struct {
	fill color.Color
	line draw.LineStyle
}

func (t boxThumb) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	if t.fill != nil {
		var poly []vg.Point
		poly = c.ClipPolygonXY(pts)
		c.FillPolygon(t.fill, poly)
	}
	pts = append(pts, vg.Point{X: c.Min.X, Y: c.Min.Y})
	if t.line.Color != nil && t.line.Width > 0 {
		c.StrokeLines(t.line, c.ClipLinesXY(pts)...)
	}
}

// addLegendEntries appends entries to lg in order. Duplicate labels
// are kept as is.
func addLegendEntries(lg *plot.Legend, entries []legendEntry) {
	for _, e := range entries {
		lg.Add(e.label, e.thumb)
	}
}

// legendPosition maps a location name to the legend placement flags.
// Unknown names fall back to the lower right corner.
func legendPosition(lg *plot.Legend, loc string) {
	switch loc {
	case "upper left":
		lg.Top, lg.Left = true, true
	case "upper right", "best":
		lg.Top, lg.Left = true, false
	case "lower left":
		lg.Top, lg.Left = false, true
	default:
		lg.Top, lg.Left = false, false
	}
}
