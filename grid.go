// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import "sort"

// A Cell is anything that can occupy a grid span: a Figure or a
// nested MultiFigure.
type Cell interface {
	cellNode()
}

func (*Figure) cellNode()      {}
func (*MultiFigure) cellNode() {}

// placement records one occupied span.
type placement struct {
	content          Cell
	row, col         int
	rowSpan, colSpan int
}

func (p *placement) intersects(row, col, rowSpan, colSpan int) bool {
	return row < p.row+p.rowSpan && p.row < row+rowSpan &&
		col < p.col+p.colSpan && p.col < col+colSpan
}

// A Grid is the fixed-dimension layout of a MultiFigure: rows x cols
// cells, each placement covering a rectangular span. Row 0 is the top
// row.
type Grid struct {
	rows, cols int
	places     []placement

	// widthRatios and heightRatios give relative column widths and
	// row heights. Nil means equal.
	widthRatios  []float64
	heightRatios []float64

	// PadX and PadY are the fractions of the total width and height
	// left blank around each placement.
	PadX, PadY float64
}

// NewGrid returns an empty rows x cols grid.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, &OutOfBoundsError{Rows: rows, Cols: cols, RowSpan: 1, ColSpan: 1}
	}
	return &Grid{rows: rows, cols: cols, PadX: 0.04, PadY: 0.04}, nil
}

// NewRow returns an empty 1 x n grid.
func NewRow(n int) (*Grid, error) { return NewGrid(1, n) }

// NewColumn returns an empty n x 1 grid.
func NewColumn(n int) (*Grid, error) { return NewGrid(n, 1) }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Place occupies the span (row, col, rowSpan, colSpan) with content.
// It returns an OutOfBoundsError if the span does not fit in the grid
// and an OverlapError if it intersects an existing placement. The
// grid is unmodified on error.
func (g *Grid) Place(content Cell, row, col, rowSpan, colSpan int) error {
	if row < 0 || col < 0 || rowSpan < 1 || colSpan < 1 ||
		row+rowSpan > g.rows || col+colSpan > g.cols {
		return &OutOfBoundsError{
			Row: row, Col: col, RowSpan: rowSpan, ColSpan: colSpan,
			Rows: g.rows, Cols: g.cols,
		}
	}
	for i := range g.places {
		if g.places[i].intersects(row, col, rowSpan, colSpan) {
			return &OverlapError{Row: row, Col: col, RowSpan: rowSpan, ColSpan: colSpan}
		}
	}
	g.places = append(g.places, placement{content, row, col, rowSpan, colSpan})
	return nil
}

// Remove vacates the placement whose span is exactly (row, col,
// rowSpan, colSpan) and reports whether one was removed.
//
// Only an exact span match removes anything: naming a sub-span of a
// larger placement is a no-op that leaves the placement intact, so a
// 2x2 span placed at (0,0) survives Remove(0, 0, 1, 1).
func (g *Grid) Remove(row, col, rowSpan, colSpan int) bool {
	for i := range g.places {
		p := &g.places[i]
		if p.row == row && p.col == col && p.rowSpan == rowSpan && p.colSpan == colSpan {
			g.places = append(g.places[:i], g.places[i+1:]...)
			return true
		}
	}
	return false
}

// At returns the content whose span covers (row, col), or nil.
func (g *Grid) At(row, col int) Cell {
	for i := range g.places {
		if g.places[i].intersects(row, col, 1, 1) {
			return g.places[i].content
		}
	}
	return nil
}

// Resize changes the grid dimensions. It returns a GridInUseError if
// any existing placement would fall outside the new bounds; the grid
// is unmodified on error. Explicit width and height ratios are
// dropped when the corresponding dimension changes.
func (g *Grid) Resize(rows, cols int) error {
	if rows < 1 || cols < 1 {
		return &GridInUseError{Rows: rows, Cols: cols}
	}
	for i := range g.places {
		p := &g.places[i]
		if p.row+p.rowSpan > rows || p.col+p.colSpan > cols {
			return &GridInUseError{Rows: rows, Cols: cols}
		}
	}
	if rows != g.rows {
		g.heightRatios = nil
	}
	if cols != g.cols {
		g.widthRatios = nil
	}
	g.rows, g.cols = rows, cols
	return nil
}

// SetWidthRatios sets relative column widths. len(ratios) must equal
// the column count and every ratio must be positive.
func (g *Grid) SetWidthRatios(ratios []float64) error {
	if err := checkRatios("SetWidthRatios", ratios, g.cols); err != nil {
		return err
	}
	g.widthRatios = append([]float64(nil), ratios...)
	return nil
}

// SetHeightRatios sets relative row heights. len(ratios) must equal
// the row count and every ratio must be positive.
func (g *Grid) SetHeightRatios(ratios []float64) error {
	if err := checkRatios("SetHeightRatios", ratios, g.rows); err != nil {
		return err
	}
	g.heightRatios = append([]float64(nil), ratios...)
	return nil
}

func checkRatios(op string, ratios []float64, n int) error {
	if len(ratios) != n {
		return mismatched(op, "%d ratios for %d tracks", len(ratios), n)
	}
	for i, r := range ratios {
		if r <= 0 {
			return mismatched(op, "ratio %d is %g", i, r)
		}
	}
	return nil
}

// edges converts n track ratios into n+1 cumulative boundaries in
// [0, 1].
func edges(ratios []float64, n int) []float64 {
	total := 0.0
	if ratios == nil {
		total = float64(n)
	} else {
		for _, r := range ratios {
			total += r
		}
	}
	es := make([]float64, n+1)
	acc := 0.0
	for i := 0; i < n; i++ {
		es[i] = acc / total
		if ratios == nil {
			acc++
		} else {
			acc += ratios[i]
		}
	}
	es[n] = 1
	return es
}

// region is a normalized placement rectangle with (0,0) at the top
// left of the layout and y increasing downward.
type region struct {
	x0, y0, x1, y1 float64
}

// ordered returns the placements in reference order: row-major by
// top-left corner, ties broken by column. Independent of insertion
// order.
func (g *Grid) ordered() []*placement {
	ps := make([]*placement, len(g.places))
	for i := range g.places {
		ps[i] = &g.places[i]
	}
	sort.SliceStable(ps, func(i, j int) bool {
		if ps[i].row != ps[j].row {
			return ps[i].row < ps[j].row
		}
		return ps[i].col < ps[j].col
	})
	return ps
}

// regions returns each placement's normalized rectangle, honoring
// track ratios and padding, in the same order as ordered.
func (g *Grid) regions() []region {
	colEdges := edges(g.widthRatios, g.cols)
	rowEdges := edges(g.heightRatios, g.rows)
	ps := g.ordered()
	rs := make([]region, len(ps))
	for i, p := range ps {
		rs[i] = region{
			x0: colEdges[p.col] + g.PadX/2,
			x1: colEdges[p.col+p.colSpan] - g.PadX/2,
			y0: rowEdges[p.row] + g.PadY/2,
			y1: rowEdges[p.row+p.rowSpan] - g.PadY/2,
		}
	}
	return rs
}
