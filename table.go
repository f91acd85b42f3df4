// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import (
	"image/color"
	"unicode/utf8"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// TableStyle holds the display parameters of a Table.
type TableStyle struct {
	Preset OptString

	TextColor   OptColor
	EdgeColor   OptColor
	EdgeWidth   OptFloat
	CellColor   OptColor
	HeaderColor OptColor
	FontSize    OptFloat
	// Location anchors the table inside the axes frame: "upper left",
	// "upper right", "lower left", "lower right" or "center".
	Location OptString
}

// Table draws a grid of text cells inside the axes frame, anchored by
// a location name the way a legend is. Row and column labels, when
// set, add a header column and row.
type Table struct {
	Cells [][]string
	Style TableStyle

	colLabels, rowLabels []string
}

// NewTable returns a table of the given cell text. The cell grid must
// be non-empty and rectangular.
func NewTable(cells [][]string) (*Table, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, mismatched("NewTable", "empty cell grid")
	}
	for i, row := range cells {
		if len(row) != len(cells[0]) {
			return nil, mismatched("NewTable", "row %d has %d cells, want %d", i, len(row), len(cells[0]))
		}
	}
	return &Table{Cells: cells}, nil
}

// SetColLabels sets the column header labels. There must be one per
// column.
func (t *Table) SetColLabels(labels ...string) error {
	if len(labels) != len(t.Cells[0]) {
		return mismatched("SetColLabels", "%d labels, want %d", len(labels), len(t.Cells[0]))
	}
	t.colLabels = labels
	return nil
}

// SetRowLabels sets the row header labels. There must be one per row.
func (t *Table) SetRowLabels(labels ...string) error {
	if len(labels) != len(t.Cells) {
		return mismatched("SetRowLabels", "%d labels, want %d", len(labels), len(t.Cells))
	}
	t.rowLabels = labels
	return nil
}

// Copy returns a deep copy sharing no data with t.
func (t *Table) Copy() *Table {
	nt := *t
	nt.Cells = make([][]string, len(t.Cells))
	for i, row := range t.Cells {
		nt.Cells[i] = append([]string(nil), row...)
	}
	nt.colLabels = append([]string(nil), t.colLabels...)
	nt.rowLabels = append([]string(nil), t.rowLabels...)
	return &nt
}

func (t *Table) typeName() string { return "Table" }

func (t *Table) plotters(r *resolver) ([]plot.Plotter, []legendEntry, error) {
	r, err := r.forObject(t.Style.Preset)
	if err != nil {
		return nil, nil, err
	}
	textColor := r.colorVal("Table", "text_color", t.Style.TextColor, color.Black)
	edge := r.colorVal("Table", "edge_color", t.Style.EdgeColor, color.Black)
	edgeWidth := r.float("Table", "edge_width", t.Style.EdgeWidth, 1)
	cellFill := r.colorVal("Table", "cell_color", t.Style.CellColor, color.White)
	headFill := r.colorVal("Table", "header_color", t.Style.HeaderColor, color.Gray{Y: 0xd9})
	fontSize := r.float("Table", "font_size", t.Style.FontSize, 10)
	loc := r.str("Table", "location", t.Style.Location, "best")

	// The header row and column are part of the drawn grid; record
	// which ranks they occupy.
	var grid [][]string
	var headRows, headCols int
	if t.colLabels != nil {
		headRows = 1
		head := make([]string, 0, len(t.colLabels)+1)
		if t.rowLabels != nil {
			head = append(head, "")
		}
		grid = append(grid, append(head, t.colLabels...))
	}
	if t.rowLabels != nil {
		headCols = 1
	}
	for i, row := range t.Cells {
		line := make([]string, 0, len(row)+headCols)
		if t.rowLabels != nil {
			line = append(line, t.rowLabels[i])
		}
		grid = append(grid, append(line, row...))
	}

	tp := &tablePlotter{
		grid:     grid,
		headRows: headRows,
		headCols: headCols,
		text: draw.TextStyle{
			Color:   textColor,
			Font:    font.From(plot.DefaultFont, vg.Points(fontSize)),
			Handler: plot.DefaultTextHandler,
			XAlign:  draw.XCenter,
			YAlign:  draw.YCenter,
		},
		line:     draw.LineStyle{Color: edge, Width: vg.Points(edgeWidth)},
		cellFill: cellFill,
		headFill: headFill,
		loc:      loc,
		fontSize: vg.Points(fontSize),
	}
	return []plot.Plotter{tp}, nil, nil
}

// tablePlotter draws a table in canvas space. Like rulePlotter it has
// no DataRange, so tables never widen the axes.
type tablePlotter struct {
	grid               [][]string
	headRows, headCols int
	text               draw.TextStyle
	line               draw.LineStyle
	cellFill, headFill color.Color
	loc                string
	fontSize           vg.Length
}

func (tp *tablePlotter) Plot(c draw.Canvas, _ *plot.Plot) {
	rowH := 2 * tp.fontSize
	colWs := tp.colWidths()
	var width vg.Length
	for _, w := range colWs {
		width += w
	}
	height := rowH * vg.Length(len(tp.grid))
	x0, y1 := tp.anchor(c, width, height)

	y := y1
	for i, row := range tp.grid {
		x := x0
		for j, cell := range row {
			fill := tp.cellFill
			if i < tp.headRows || j < tp.headCols {
				fill = tp.headFill
			}
			tp.drawCell(c, cell, x, y-rowH, colWs[j], rowH, fill)
			x += colWs[j]
		}
		y -= rowH
	}
}

// colWidths sizes each column to its longest cell. Text extents are
// estimated from the rune count, which is close enough for the
// default font.
func (tp *tablePlotter) colWidths() []vg.Length {
	ws := make([]vg.Length, len(tp.grid[0]))
	for _, row := range tp.grid {
		for j, cell := range row {
			w := vg.Length(utf8.RuneCountInString(cell)) * tp.fontSize * 0.62
			w += tp.fontSize // cell padding
			if w > ws[j] {
				ws[j] = w
			}
		}
	}
	return ws
}

// anchor returns the top-left corner of the table for its location
// name. Unknown names center the table.
func (tp *tablePlotter) anchor(c draw.Canvas, w, h vg.Length) (x0, y1 vg.Length) {
	in := vg.Points(5)
	switch tp.loc {
	case "upper left":
		return c.Min.X + in, c.Max.Y - in
	case "upper right", "best":
		return c.Max.X - in - w, c.Max.Y - in
	case "lower left":
		return c.Min.X + in, c.Min.Y + in + h
	case "lower right":
		return c.Max.X - in - w, c.Min.Y + in + h
	}
	return (c.Min.X+c.Max.X-w)/2, (c.Min.Y+c.Max.Y+h)/2
}

func (tp *tablePlotter) drawCell(c draw.Canvas, s string, x, y, w, h vg.Length, fill color.Color) {
	corners := []vg.Point{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
	}
	if fill != nil {
		c.FillPolygon(fill, c.ClipPolygonXY(corners))
	}
	if tp.line.Color != nil && tp.line.Width > 0 {
		outline := append(corners, corners[0])
		c.StrokeLines(tp.line, c.ClipLinesXY(outline)...)
	}
	if s != "" {
		pt := vg.Point{X: x + w/2, Y: y + h/2}
		if c.Contains(pt) {
			c.FillText(tp.text, pt, s)
		}
	}
}
