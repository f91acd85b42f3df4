// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/figkit/figkit/style"
)

func TestFigureSetStyleUnknown(t *testing.T) {
	f := NewFigure()
	f.SetStore(testStore(t))
	if err := f.SetStyle("missing"); err == nil {
		t.Fatalf("SetStyle accepted an unknown preset")
	}
	if f.StyleName() != "" {
		t.Fatalf("failed SetStyle changed the style name")
	}
	if err := f.SetStyle("dark"); err != nil {
		t.Fatalf("SetStyle(dark): %v", err)
	}
}

// An element naming a preset the store does not know must fail the
// render, not quietly fall back to the built-in defaults.
func TestFigureElementPresetUnknown(t *testing.T) {
	f := NewFigure()
	f.SetStore(testStore(t))
	c, _ := NewCurve([]float64{0, 1}, []float64{0, 1})
	c.Style.Preset = String("no-such-style")
	f.AddElements(c)

	var buf bytes.Buffer
	err := f.SaveTo(&buf, "png")
	var nf *style.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("SaveTo error = %v, want *style.NotFoundError", err)
	}
	if nf.Name != "no-such-style" {
		t.Fatalf("NotFoundError.Name = %q", nf.Name)
	}
}

func TestFigureRemoveElement(t *testing.T) {
	f := NewFigure()
	a, _ := NewCurve([]float64{0, 1}, []float64{0, 1})
	b, _ := NewCurve([]float64{0, 1}, []float64{1, 0})
	f.AddElements(a, b)
	if !f.RemoveElement(a) {
		t.Fatalf("RemoveElement did not find the element")
	}
	if got := f.Elements(); len(got) != 1 || got[0] != Plottable(b) {
		t.Fatalf("Elements after removal = %v", got)
	}
	if f.RemoveElement(a) {
		t.Fatalf("RemoveElement removed an absent element")
	}
}

func TestFigureSaveTo(t *testing.T) {
	f := NewFigure()
	f.SetStore(testStore(t))
	f.Title = "test"
	f.XLabel = "x"
	f.YLabel = "y"

	c, _ := NewCurve([]float64{0, 1, 2}, []float64{0, 1, 4})
	c.Label = "data"
	s, _ := NewScatter([]float64{0, 1, 2}, []float64{4, 1, 0})
	s.Label = "points"
	f.AddElements(c, s)

	for _, format := range []string{"png", "svg"} {
		var buf bytes.Buffer
		if err := f.SaveTo(&buf, format); err != nil {
			t.Fatalf("SaveTo(%s): %v", format, err)
		}
		if buf.Len() == 0 {
			t.Fatalf("SaveTo(%s) wrote nothing", format)
		}
	}

	var buf bytes.Buffer
	if err := f.SaveTo(&buf, "bmp"); err == nil {
		t.Fatalf("SaveTo accepted an unsupported format")
	}
}

func TestFigureSave(t *testing.T) {
	f := NewFigure()
	f.SetStore(testStore(t))
	c, _ := NewCurve([]float64{0, 1}, []float64{0, 1})
	f.AddElements(c)

	path := filepath.Join(t.TempDir(), "out.png")
	if err := f.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() == 0 {
		t.Fatalf("Save wrote an empty file")
	}

	if err := f.Save(filepath.Join(t.TempDir(), "out.bmp")); err == nil {
		t.Fatalf("Save accepted an unsupported extension")
	}
}

// Rendering an empty figure (or an empty cell's legend) must not
// fail.
func TestFigureRenderEmpty(t *testing.T) {
	f := NewFigure()
	f.SetStore(testStore(t))
	f.Legend = Bool(true)
	var buf bytes.Buffer
	if err := f.SaveTo(&buf, "png"); err != nil {
		t.Fatalf("empty figure render: %v", err)
	}
}

func TestFigureRenderAllElements(t *testing.T) {
	st := testStore(t)
	f := NewFigure()
	f.SetStore(st)
	f.ShowGrid = Bool(true)

	c := NewCurveFromFunction(math.Sin, 0, 2*math.Pi, 100)
	c.Label = "sin"
	c.SetErrorCurves(constants(100, 0.1))
	sc, _ := NewScatter([]float64{1, 2, 3}, []float64{1, 2, 3})
	sc.SetErrorBars([]float64{0.1, 0.1, 0.1}, []float64{0.2, 0.2, 0.2})
	h, _ := NewHistogram([]float64{1, 2, 2, 3, 3, 3, 4}, 4)
	h.ShowPDF()
	hl := NewHlines(0.5)
	vl := NewVlines(math.Pi)
	pt := NewPoint(1, 0.5)
	pt.Label = "peak"
	txt := NewText("note", 2, -0.5)
	poly := square(t, 4, -1, 1)
	circ, _ := NewCircle(5, 0, 0.5)
	rect, _ := NewRectangle(0, -1, 1, 0.5)
	ar := NewArrow(0, 0, 1, 1)
	seg := NewLineSegment(2, 0, 3, 1)
	hm, _ := NewHeatmapFromFunction(func(x, y float64) float64 { return x * y }, 0, 1, 0, 1, 8, 8)
	ct, _ := NewContourFromFunction(func(x, y float64) float64 { return x*x + y*y }, -1, 1, -1, 1, 10, 10)
	vf, _ := NewVectorFieldFromFunction(func(x, y float64) (float64, float64) { return -y, x }, -1, 1, -1, 1, 5, 5)
	strm, _ := NewStreamFromFunction(func(x, y float64) (float64, float64) { return 1, math.Sin(x) }, 0, 2, 0, 2, 10, 10)
	fit, err := FitPolynomial(sc, 1)
	if err != nil {
		t.Fatal(err)
	}

	f.AddElements(c, sc, h, hl, vl, pt, txt, poly, circ, rect, ar, seg, hm, ct, vf, strm, fit)

	var buf bytes.Buffer
	if err := f.SaveTo(&buf, "png"); err != nil {
		t.Fatalf("render: %v", err)
	}
}

func constants(n int, v float64) []float64 {
	vs := make([]float64, n)
	for i := range vs {
		vs[i] = v
	}
	return vs
}

func TestFigureTwinY(t *testing.T) {
	f := NewFigure()
	f.SetStore(testStore(t))
	c, _ := NewCurve([]float64{0, 1, 2}, []float64{0, 1, 2})
	f.AddElements(c)

	twin := f.TwinY("rate")
	tc, _ := NewCurve([]float64{0, 1, 2}, []float64{100, 400, 900})
	twin.AddElements(tc)

	if f.TwinY("rate") != twin {
		t.Fatalf("TwinY returned a new figure on the second call")
	}

	var buf bytes.Buffer
	if err := f.SaveTo(&buf, "png"); err != nil {
		t.Fatalf("twin render: %v", err)
	}
}

func TestMultiFigureSaveTo(t *testing.T) {
	st := testStore(t)
	mk := func(label string) *Figure {
		f := NewFigure()
		f.SetStore(st)
		c, _ := NewCurve([]float64{0, 1}, []float64{0, 1})
		c.Label = label
		f.AddElements(c)
		return f
	}

	inner, err := FromRow(mk("nested"))
	if err != nil {
		t.Fatal(err)
	}
	inner.SetStore(st)

	m, err := NewMultiFigure(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	m.SetStore(st)
	m.Title = "grid"
	m.GeneralLegend = true
	m.RefLabels = true
	if err := m.Place(mk("a"), 0, 0, 1, 2); err != nil {
		t.Fatal(err)
	}
	if err := m.Place(mk("b"), 1, 0, 1, 1); err != nil {
		t.Fatal(err)
	}
	if err := m.Place(inner, 1, 1, 1, 1); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := m.SaveTo(&buf, "png"); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("SaveTo wrote nothing")
	}
}

// A nested container can turn reference labels on even when the
// enclosing container leaves them off; it then starts its own
// sequence.
func TestNestedRefLabels(t *testing.T) {
	st := testStore(t)
	sub := NewFigure()
	sub.SetStore(st)
	c, _ := NewCurve([]float64{0, 1}, []float64{0, 1})
	sub.AddElements(c)

	inner, err := FromRow(sub)
	if err != nil {
		t.Fatal(err)
	}
	inner.SetStore(st)
	inner.RefLabels = true

	m, err := FromRow(inner)
	if err != nil {
		t.Fatal(err)
	}
	m.SetStore(st)

	var buf bytes.Buffer
	if err := m.SaveTo(&buf, "svg"); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	if !strings.Contains(buf.String(), "a)") {
		t.Fatalf("nested container with reference labels drew none")
	}
}

func TestFigureOverrideAffectsRender(t *testing.T) {
	st := testStore(t)
	f := NewFigure()
	f.SetStore(st)
	f.SetOverride("Curve", "line_width", 10.0)

	s := st
	r := f.resolver(s, nil)
	if got := r.float("Curve", "line_width", OptFloat{}, 1); got != 10 {
		t.Fatalf("figure override not visible to resolver: %g", got)
	}
	f.ClearOverride("Curve", "line_width")
	r = f.resolver(s, nil)
	if got := r.float("Curve", "line_width", OptFloat{}, 1); got != 2 {
		t.Fatalf("cleared override still active: %g", got)
	}
}
