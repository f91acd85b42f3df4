// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import (
	"image/color"
	"math"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// HistogramStyle holds the display parameters of a Histogram.
type HistogramStyle struct {
	Preset OptString

	FaceColor OptColor
	EdgeColor OptColor
	LineWidth OptFloat
	Alpha     OptFloat

	// Normalize scales bin heights so the total area is 1.
	Normalize OptBool

	PDFCurveColor OptColor
}

// Histogram bins a sample of values.
type Histogram struct {
	Values []float64
	Bins   int
	Label  string
	Style  HistogramStyle

	showPDF bool
}

// NewHistogram returns a histogram of values with the given number of
// bins.
func NewHistogram(values []float64, bins int) (*Histogram, error) {
	if len(values) == 0 {
		return nil, mismatched("NewHistogram", "empty sample")
	}
	if bins < 1 {
		return nil, mismatched("NewHistogram", "bins = %d", bins)
	}
	return &Histogram{Values: values, Bins: bins}, nil
}

// Copy returns a deep copy sharing no data with h.
func (h *Histogram) Copy() *Histogram {
	nh := *h
	nh.Values = append([]float64(nil), h.Values...)
	return &nh
}

// ShowPDF overlays the normal probability density with the sample's
// mean and standard deviation. It implies normalization.
func (h *Histogram) ShowPDF() {
	h.showPDF = true
}

// Mean returns the sample mean.
func (h *Histogram) Mean() float64 {
	return stats.Sample{Xs: h.Values}.Mean()
}

// StdDev returns the sample standard deviation.
func (h *Histogram) StdDev() float64 {
	return stats.Sample{Xs: h.Values}.StdDev()
}

func (h *Histogram) typeName() string { return "Histogram" }

func (h *Histogram) plotters(r *resolver) ([]plot.Plotter, []legendEntry, error) {
	r, err := r.forObject(h.Style.Preset)
	if err != nil {
		return nil, nil, err
	}
	face := r.colorVal("Histogram", "face_color", h.Style.FaceColor, color.Gray{Y: 0x80})
	edge := r.colorVal("Histogram", "edge_color", h.Style.EdgeColor, color.Black)
	width := r.float("Histogram", "line_width", h.Style.LineWidth, 1)
	alpha := r.float("Histogram", "alpha", h.Style.Alpha, 0.8)
	normalize := r.boolean("Histogram", "normalize", h.Style.Normalize, false) || h.showPDF
	pdfColor := r.colorVal("Histogram", "pdf_curve_color", h.Style.PDFCurveColor, color.Black)

	hp, err := plotter.NewHist(plotter.Values(h.Values), h.Bins)
	if err != nil {
		return nil, nil, err
	}
	if normalize {
		hp.Normalize(1)
	}
	hp.FillColor = withAlpha(face, alpha)
	hp.LineStyle.Color = edge
	hp.LineStyle.Width = vg.Points(width)

	ps := []plot.Plotter{hp}
	if h.showPDF {
		mu, sigma := h.Mean(), h.StdDev()
		lo, hi := stats.Bounds(h.Values)
		pdf := NewCurveFromFunction(func(x float64) float64 {
			d := (x - mu) / sigma
			return math.Exp(-0.5*d*d) / (sigma * math.Sqrt(2*math.Pi))
		}, lo, hi, 200)
		ln, err := plotter.NewLine(xyPoints(pdf.X, pdf.Y))
		if err != nil {
			return nil, nil, err
		}
		ln.LineStyle.Color = pdfColor
		ln.LineStyle.Width = vg.Points(1.5)
		ps = append(ps, ln)
	}

	var legend []legendEntry
	if h.Label != "" {
		legend = append(legend, legendEntry{h.Label, boxThumb{
			fill: hp.FillColor,
			line: hp.LineStyle,
		}})
	}
	return ps, legend, nil
}
