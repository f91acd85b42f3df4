// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import (
	"image/color"
	"math"

	"github.com/ctessum/geom"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ShapeStyle holds the display parameters shared by Polygon, Circle
// and Rectangle.
type ShapeStyle struct {
	Preset OptString

	Fill      OptBool
	FillColor OptColor
	FillAlpha OptFloat
	EdgeColor OptColor
	LineWidth OptFloat
	LineStyle OptString
}

// Polygon is the general closed-shape representation. Boolean
// operations may produce several rings; the zero-indexed ring of a
// user-constructed polygon is its vertex list.
type Polygon struct {
	Rings [][][2]float64
	Label string
	Style ShapeStyle
}

// NewPolygon returns a polygon with the given vertex ring. At least
// three vertices are required.
func NewPolygon(vertices [][2]float64) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, mismatched("NewPolygon", "%d vertices, need at least 3", len(vertices))
	}
	return &Polygon{Rings: [][][2]float64{vertices}}, nil
}

// Vertices returns the polygon's first ring.
func (p *Polygon) Vertices() [][2]float64 {
	if len(p.Rings) == 0 {
		return nil
	}
	return p.Rings[0]
}

// Copy returns a deep copy sharing no data with p.
func (p *Polygon) Copy() *Polygon {
	np := *p
	np.Rings = make([][][2]float64, len(p.Rings))
	for i, ring := range p.Rings {
		np.Rings[i] = append([][2]float64(nil), ring...)
	}
	return &np
}

func (p *Polygon) geom() geom.Polygon {
	g := make(geom.Polygon, len(p.Rings))
	for i, ring := range p.Rings {
		pts := make([]geom.Point, len(ring))
		for j, v := range ring {
			pts[j] = geom.Point{X: v[0], Y: v[1]}
		}
		g[i] = pts
	}
	return g
}

func polygonFromGeom(g geom.Polygonal) *Polygon {
	p := &Polygon{}
	for _, poly := range g.Polygons() {
		for _, ring := range poly {
			vs := make([][2]float64, len(ring))
			for i, pt := range ring {
				vs[i] = [2]float64{pt.X, pt.Y}
			}
			p.Rings = append(p.Rings, vs)
		}
	}
	return p
}

// Area returns the polygon's area.
func (p *Polygon) Area() float64 { return p.geom().Area() }

// Perimeter returns the total boundary length.
func (p *Polygon) Perimeter() float64 {
	sum := 0.0
	for _, ring := range p.Rings {
		for i := range ring {
			j := (i + 1) % len(ring)
			sum += math.Hypot(ring[j][0]-ring[i][0], ring[j][1]-ring[i][1])
		}
	}
	return sum
}

// Centroid returns the polygon's centroid.
func (p *Polygon) Centroid() (x, y float64) {
	c := p.geom().Centroid()
	return c.X, c.Y
}

// CentroidPoint returns the centroid as a plottable Point.
func (p *Polygon) CentroidPoint() *Point {
	x, y := p.Centroid()
	return NewPoint(x, y)
}

// Contains reports whether (x, y) lies inside the polygon (the edge
// counts as inside).
func (p *Polygon) Contains(x, y float64) bool {
	return geom.Point{X: x, Y: y}.Within(p.geom()) != geom.Outside
}

// Union returns the union of p and o.
func (p *Polygon) Union(o *Polygon) (*Polygon, error) {
	return p.boolOp("Union", p.geom().Union(o.geom()))
}

// Intersection returns the intersection of p and o. Disjoint shapes
// are an error.
func (p *Polygon) Intersection(o *Polygon) (*Polygon, error) {
	return p.boolOp("Intersection", p.geom().Intersection(o.geom()))
}

// Difference returns p with o removed.
func (p *Polygon) Difference(o *Polygon) (*Polygon, error) {
	return p.boolOp("Difference", p.geom().Difference(o.geom()))
}

func (p *Polygon) boolOp(op string, g geom.Polygonal) (*Polygon, error) {
	out := polygonFromGeom(g)
	if len(out.Rings) == 0 {
		return nil, mismatched(op, "result is degenerate (empty)")
	}
	return out, nil
}

func (p *Polygon) mapVertices(f func(x, y float64) (float64, float64)) *Polygon {
	np := p.Copy()
	for _, ring := range np.Rings {
		for i := range ring {
			ring[i][0], ring[i][1] = f(ring[i][0], ring[i][1])
		}
	}
	return np
}

// Translate returns p shifted by (dx, dy).
func (p *Polygon) Translate(dx, dy float64) *Polygon {
	return p.mapVertices(func(x, y float64) (float64, float64) {
		return x + dx, y + dy
	})
}

// Rotate returns p rotated by angle radians about its centroid.
func (p *Polygon) Rotate(angle float64) *Polygon {
	cx, cy := p.Centroid()
	return p.RotateAbout(angle, cx, cy)
}

// RotateAbout returns p rotated by angle radians about (cx, cy).
func (p *Polygon) RotateAbout(angle, cx, cy float64) *Polygon {
	sin, cos := math.Sincos(angle)
	return p.mapVertices(func(x, y float64) (float64, float64) {
		x, y = x-cx, y-cy
		return cx + x*cos - y*sin, cy + x*sin + y*cos
	})
}

// Scale returns p scaled by (sx, sy) about its centroid.
func (p *Polygon) Scale(sx, sy float64) *Polygon {
	cx, cy := p.Centroid()
	return p.mapVertices(func(x, y float64) (float64, float64) {
		return cx + (x-cx)*sx, cy + (y-cy)*sy
	})
}

// Skew returns p sheared by the given x and y factors about its
// centroid.
func (p *Polygon) Skew(kx, ky float64) *Polygon {
	cx, cy := p.Centroid()
	return p.mapVertices(func(x, y float64) (float64, float64) {
		return x + kx*(y-cy), y + ky*(x-cx)
	})
}

// LinearTransform returns p with the 2x2 matrix m applied to every
// vertex.
func (p *Polygon) LinearTransform(m [2][2]float64) *Polygon {
	return p.mapVertices(func(x, y float64) (float64, float64) {
		return m[0][0]*x + m[0][1]*y, m[1][0]*x + m[1][1]*y
	})
}

func (p *Polygon) typeName() string { return "Polygon" }

func (p *Polygon) plotters(r *resolver) ([]plot.Plotter, []legendEntry, error) {
	return shapePlotters(r, p, "Polygon", p.Label, &p.Style)
}

func shapePlotters(r *resolver, p *Polygon, typ, label string, st *ShapeStyle) ([]plot.Plotter, []legendEntry, error) {
	r, err := r.forObject(st.Preset)
	if err != nil {
		return nil, nil, err
	}
	fill := r.boolean(typ, "fill", st.Fill, true)
	fillColor := r.colorVal(typ, "fill_color", st.FillColor, color.Gray{Y: 0x80})
	alpha := r.float(typ, "fill_alpha", st.FillAlpha, 0.5)
	edge := r.colorVal(typ, "edge_color", st.EdgeColor, color.Black)
	width := r.float(typ, "line_width", st.LineWidth, 1.5)
	dashes := dashesFor(r.str(typ, "line_style", st.LineStyle, "solid"))

	rings := make([]plotter.XYer, 0, len(p.Rings))
	for _, ring := range p.Rings {
		xys := make(plotter.XYs, 0, len(ring)+1)
		for _, v := range ring {
			xys = append(xys, plotter.XY{X: v[0], Y: v[1]})
		}
		if len(ring) > 0 {
			xys = append(xys, plotter.XY{X: ring[0][0], Y: ring[0][1]})
		}
		rings = append(rings, xys)
	}
	poly, err := plotter.NewPolygon(rings...)
	if err != nil {
		return nil, nil, err
	}
	if fill {
		poly.Color = withAlpha(fillColor, alpha)
	}
	poly.LineStyle.Color = edge
	poly.LineStyle.Width = vg.Points(width)
	poly.LineStyle.Dashes = dashes

	var legend []legendEntry
	if label != "" {
		legend = append(legend, legendEntry{label, boxThumb{fill: poly.Color, line: poly.LineStyle}})
	}
	return []plot.Plotter{poly}, legend, nil
}

// Circle is a regular parameterization (center and radius) that
// derives a polygon.
type Circle struct {
	CenterX, CenterY float64
	Radius           float64
	// Resolution is the number of vertices of the derived polygon.
	// Zero means 64.
	Resolution int

	Label string
	Style ShapeStyle
}

// NewCircle returns a circle of the given radius centered at (x, y).
func NewCircle(x, y, radius float64) (*Circle, error) {
	if radius <= 0 {
		return nil, mismatched("NewCircle", "radius = %g", radius)
	}
	return &Circle{CenterX: x, CenterY: y, Radius: radius}, nil
}

// Polygon returns the circle's derived vertex polygon.
func (c *Circle) Polygon() *Polygon {
	n := c.Resolution
	if n <= 0 {
		n = 64
	}
	vs := make([][2]float64, n)
	for i := range vs {
		a := 2 * math.Pi * float64(i) / float64(n)
		vs[i] = [2]float64{c.CenterX + c.Radius*math.Cos(a), c.CenterY + c.Radius*math.Sin(a)}
	}
	return &Polygon{Rings: [][][2]float64{vs}, Label: c.Label, Style: c.Style}
}

// Copy returns a copy of c.
func (c *Circle) Copy() *Circle {
	nc := *c
	return &nc
}

// Area returns the area of the derived polygon.
func (c *Circle) Area() float64 { return c.Polygon().Area() }

// Contains reports whether (x, y) is inside the circle.
func (c *Circle) Contains(x, y float64) bool {
	return math.Hypot(x-c.CenterX, y-c.CenterY) <= c.Radius
}

func (c *Circle) typeName() string { return "Circle" }

func (c *Circle) plotters(r *resolver) ([]plot.Plotter, []legendEntry, error) {
	return shapePlotters(r, c.Polygon(), "Circle", c.Label, &c.Style)
}

// Rectangle is a regular parameterization (corner and dimensions)
// that derives a polygon.
type Rectangle struct {
	X, Y          float64 // lower-left corner
	Width, Height float64

	Label string
	Style ShapeStyle
}

// NewRectangle returns a width x height rectangle with its lower-left
// corner at (x, y).
func NewRectangle(x, y, width, height float64) (*Rectangle, error) {
	if width <= 0 || height <= 0 {
		return nil, mismatched("NewRectangle", "dimensions %g x %g", width, height)
	}
	return &Rectangle{X: x, Y: y, Width: width, Height: height}, nil
}

// Polygon returns the rectangle's derived vertex polygon.
func (rc *Rectangle) Polygon() *Polygon {
	vs := [][2]float64{
		{rc.X, rc.Y},
		{rc.X + rc.Width, rc.Y},
		{rc.X + rc.Width, rc.Y + rc.Height},
		{rc.X, rc.Y + rc.Height},
	}
	return &Polygon{Rings: [][][2]float64{vs}, Label: rc.Label, Style: rc.Style}
}

// Copy returns a copy of rc.
func (rc *Rectangle) Copy() *Rectangle {
	nr := *rc
	return &nr
}

// Contains reports whether (x, y) is inside the rectangle.
func (rc *Rectangle) Contains(x, y float64) bool {
	return x >= rc.X && x <= rc.X+rc.Width && y >= rc.Y && y <= rc.Y+rc.Height
}

func (rc *Rectangle) typeName() string { return "Rectangle" }

func (rc *Rectangle) plotters(r *resolver) ([]plot.Plotter, []legendEntry, error) {
	return shapePlotters(r, rc.Polygon(), "Rectangle", rc.Label, &rc.Style)
}

// ArrowStyle holds the display parameters of an Arrow.
type ArrowStyle struct {
	Preset OptString

	Color     OptColor
	LineWidth OptFloat
	HeadSize  OptFloat
}

// Arrow points from (X1, Y1) to (X2, Y2).
type Arrow struct {
	X1, Y1, X2, Y2 float64
	Label          string
	Style          ArrowStyle
}

// NewArrow returns an arrow from (x1, y1) to (x2, y2).
func NewArrow(x1, y1, x2, y2 float64) *Arrow {
	return &Arrow{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Copy returns a copy of a.
func (a *Arrow) Copy() *Arrow {
	na := *a
	return &na
}

func (a *Arrow) typeName() string { return "Arrow" }

func (a *Arrow) plotters(r *resolver) ([]plot.Plotter, []legendEntry, error) {
	r, err := r.forObject(a.Style.Preset)
	if err != nil {
		return nil, nil, err
	}
	ls := draw.LineStyle{
		Color: r.colorVal("Arrow", "color", a.Style.Color, color.Black),
		Width: vg.Points(r.float("Arrow", "line_width", a.Style.LineWidth, 1.5)),
	}
	head := r.float("Arrow", "head_size", a.Style.HeadSize, 8)
	ap := &arrowPlotter{
		x1: a.X1, y1: a.Y1, x2: a.X2, y2: a.Y2,
		style: ls, head: vg.Points(head),
	}
	var legend []legendEntry
	if a.Label != "" {
		legend = append(legend, legendEntry{a.Label, lineThumb{ls}})
	}
	return []plot.Plotter{ap}, legend, nil
}

type arrowPlotter struct {
	x1, y1, x2, y2 float64
	style          draw.LineStyle
	head           vg.Length
}

func (a *arrowPlotter) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	p1 := vg.Point{X: trX(a.x1), Y: trY(a.y1)}
	p2 := vg.Point{X: trX(a.x2), Y: trY(a.y2)}
	c.StrokeLines(a.style, c.ClipLinesXY([]vg.Point{p1, p2})...)
	drawArrowHead(c, a.style, p1, p2, a.head)
}

func (a *arrowPlotter) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = math.Min(a.x1, a.x2), math.Max(a.x1, a.x2)
	ymin, ymax = math.Min(a.y1, a.y2), math.Max(a.y1, a.y2)
	return
}

// drawArrowHead draws the two barb strokes of an arrow head at p2,
// pointing away from p1. Canvas space, so heads do not distort with
// the axes.
func drawArrowHead(c draw.Canvas, ls draw.LineStyle, p1, p2 vg.Point, size vg.Length) {
	angle := math.Atan2(float64(p2.Y-p1.Y), float64(p2.X-p1.X))
	barb := math.Pi - math.Pi/7
	for _, da := range []float64{barb, -barb} {
		end := vg.Point{
			X: p2.X + size*vg.Length(math.Cos(angle+da)),
			Y: p2.Y + size*vg.Length(math.Sin(angle+da)),
		}
		c.StrokeLines(ls, c.ClipLinesXY([]vg.Point{p2, end})...)
	}
}

// SegmentStyle holds the display parameters of a LineSegment.
type SegmentStyle struct {
	Preset OptString

	Color     OptColor
	LineWidth OptFloat
	LineStyle OptString
}

// LineSegment is a straight segment between two data points.
type LineSegment struct {
	X1, Y1, X2, Y2 float64
	Label          string
	Style          SegmentStyle
}

// NewLineSegment returns a segment from (x1, y1) to (x2, y2).
func NewLineSegment(x1, y1, x2, y2 float64) *LineSegment {
	return &LineSegment{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Copy returns a copy of l.
func (l *LineSegment) Copy() *LineSegment {
	nl := *l
	return &nl
}

func (l *LineSegment) typeName() string { return "Line" }

func (l *LineSegment) plotters(r *resolver) ([]plot.Plotter, []legendEntry, error) {
	r, err := r.forObject(l.Style.Preset)
	if err != nil {
		return nil, nil, err
	}
	ln, err := plotter.NewLine(plotter.XYs{{X: l.X1, Y: l.Y1}, {X: l.X2, Y: l.Y2}})
	if err != nil {
		return nil, nil, err
	}
	ln.LineStyle.Color = r.colorVal("Line", "color", l.Style.Color, color.Black)
	ln.LineStyle.Width = vg.Points(r.float("Line", "line_width", l.Style.LineWidth, 1.5))
	ln.LineStyle.Dashes = dashesFor(r.str("Line", "line_style", l.Style.LineStyle, "solid"))
	var legend []legendEntry
	if l.Label != "" {
		legend = append(legend, legendEntry{l.Label, ln})
	}
	return []plot.Plotter{ln}, legend, nil
}
